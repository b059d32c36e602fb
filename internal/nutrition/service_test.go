package nutrition

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bezzego/healthy-bot-AI/internal/domain"
)

type memStore struct {
	record  *domain.DailyRecord
	entries map[int64]*domain.NutritionEntry
	nextID  int64
}

func newMemStore() *memStore {
	return &memStore{
		record:  &domain.DailyRecord{ID: 10, UserID: 1},
		entries: make(map[int64]*domain.NutritionEntry),
		nextID:  1,
	}
}

func (m *memStore) GetOrCreate(ctx context.Context, userID int64, date time.Time) (*domain.DailyRecord, error) {
	return m.record, nil
}

func (m *memStore) Find(ctx context.Context, userID int64, date time.Time) (*domain.DailyRecord, error) {
	return m.record, nil
}

func (m *memStore) Save(ctx context.Context, record *domain.DailyRecord) error { return nil }

func (m *memStore) Range(ctx context.Context, userID int64, from, to time.Time) ([]domain.DailyRecord, error) {
	return nil, nil
}

func (m *memStore) Add(ctx context.Context, entry *domain.NutritionEntry) error {
	entry.ID = m.nextID
	m.nextID++
	m.entries[entry.ID] = entry
	m.record.TotalCalories += entry.Calories
	m.record.TotalProtein += entry.Protein
	m.record.TotalFats += entry.Fats
	m.record.TotalCarbs += entry.Carbs
	m.record.TotalFiber += entry.Fiber
	return nil
}

func (m *memStore) Delete(ctx context.Context, entryID, userID int64) error {
	entry, ok := m.entries[entryID]
	if !ok || entry.UserID != userID {
		return domain.ErrRecordNotFound
	}
	delete(m.entries, entryID)
	m.record.TotalCalories -= entry.Calories
	m.record.TotalProtein -= entry.Protein
	m.record.TotalFats -= entry.Fats
	m.record.TotalCarbs -= entry.Carbs
	m.record.TotalFiber -= entry.Fiber
	return nil
}

func (m *memStore) ListForRecord(ctx context.Context, dailyRecordID int64) ([]domain.NutritionEntry, error) {
	var out []domain.NutritionEntry
	for id := int64(1); id < m.nextID; id++ {
		if e, ok := m.entries[id]; ok {
			out = append(out, *e)
		}
	}
	return out, nil
}

var day = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

func TestAddUpdatesTotals(t *testing.T) {
	store := newMemStore()
	svc := NewService(store, store)

	entry, err := svc.Add(context.Background(), 1, day, EntryInput{
		FoodName: "Buckwheat with chicken",
		Calories: 450, Protein: 35, Fats: 10, Carbs: 50, Fiber: 4,
	})
	require.NoError(t, err)
	require.NotZero(t, entry.ID)
	require.Equal(t, int64(10), entry.DailyRecordID)
	require.Equal(t, 450.0, store.record.TotalCalories)

	_, err = svc.Add(context.Background(), 1, day, EntryInput{FoodName: "Apple", Calories: 80})
	require.NoError(t, err)
	require.Equal(t, 530.0, store.record.TotalCalories)
	require.Equal(t, 35.0, store.record.TotalProtein)
}

func TestAddValidation(t *testing.T) {
	store := newMemStore()
	svc := NewService(store, store)

	_, err := svc.Add(context.Background(), 1, day, EntryInput{FoodName: "   ", Calories: 100})
	require.ErrorIs(t, err, ErrEmptyFoodName)

	_, err = svc.Add(context.Background(), 1, day, EntryInput{FoodName: "feast", Calories: 10001})
	require.ErrorIs(t, err, ErrInvalidCalories)

	_, err = svc.Add(context.Background(), 1, day, EntryInput{FoodName: "void", Calories: -1})
	require.ErrorIs(t, err, ErrInvalidCalories)
	require.Empty(t, store.entries)
}

func TestDeleteReversesTotals(t *testing.T) {
	store := newMemStore()
	svc := NewService(store, store)

	first, err := svc.Add(context.Background(), 1, day, EntryInput{FoodName: "Rice", Calories: 300, Carbs: 60})
	require.NoError(t, err)
	_, err = svc.Add(context.Background(), 1, day, EntryInput{FoodName: "Salmon", Calories: 400, Protein: 38})
	require.NoError(t, err)
	require.Equal(t, 700.0, store.record.TotalCalories)

	require.NoError(t, svc.Delete(context.Background(), first.ID, 1))
	require.Equal(t, 400.0, store.record.TotalCalories)
	require.Equal(t, 0.0, store.record.TotalCarbs)

	// Wrong owner and missing entry both surface not-found.
	err = svc.Delete(context.Background(), 2, 99)
	require.ErrorIs(t, err, domain.ErrRecordNotFound)
	err = svc.Delete(context.Background(), first.ID, 1)
	require.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestListDay(t *testing.T) {
	store := newMemStore()
	svc := NewService(store, store)

	for i := 0; i < 3; i++ {
		_, err := svc.Add(context.Background(), 1, day, EntryInput{FoodName: fmt.Sprintf("meal %d", i), Calories: 100})
		require.NoError(t, err)
	}
	record, entries, err := svc.ListDay(context.Background(), 1, day)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.Equal(t, 300.0, record.TotalCalories)
}

func TestFormatDay(t *testing.T) {
	record := &domain.DailyRecord{TotalCalories: 1500, TotalProtein: 90, TotalFats: 50, TotalCarbs: 160}
	entries := []domain.NutritionEntry{
		{FoodName: "Oatmeal", Calories: 350, Protein: 12, Fats: 8, Carbs: 55},
		{FoodName: "Chicken salad", Calories: 1150, Protein: 78, Fats: 42, Carbs: 105},
	}
	out := FormatDay(record, entries, 2000)
	require.Contains(t, out, "1. Oatmeal — 350 kcal")
	require.Contains(t, out, "Total: 1500 kcal")
	require.Contains(t, out, "Remaining today: 500 of 2000 kcal")

	record.TotalCalories = 2400
	out = FormatDay(record, entries, 2000)
	require.Contains(t, out, "Over today's 2000 kcal goal by 400 kcal")

	out = FormatDay(&domain.DailyRecord{}, nil, 0)
	require.Contains(t, out, "Nothing logged yet")
}

func TestLookupFoodAndPortion(t *testing.T) {
	info, ok := LookupFood("  Chicken Breast ")
	require.True(t, ok)
	require.Equal(t, "Chicken breast", info.Name)

	_, ok = LookupFood("unicorn steak")
	require.False(t, ok)

	portion := EstimatePortion(info, 150)
	require.InDelta(t, 247.5, portion.Calories, 0.001)
	require.InDelta(t, 46.5, portion.Protein, 0.001)
}
