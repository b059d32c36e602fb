// Package nutrition manages food logging: manual entries, recognized meals
// and the per-day totals kept on the daily record.
package nutrition

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bezzego/healthy-bot-AI/internal/domain"
)

var (
	ErrInvalidCalories = errors.New("calories must be between 0 and 10000")
	ErrEmptyFoodName   = errors.New("food name must not be empty")
)

// Service persists nutrition entries. Totals consistency is the repository's
// job; the service validates inputs and resolves the owning daily record.
type Service struct {
	daily   domain.DailyRepository
	entries domain.NutritionRepository
}

func NewService(daily domain.DailyRepository, entries domain.NutritionRepository) *Service {
	return &Service{daily: daily, entries: entries}
}

// EntryInput describes one food item to log. Zero macro fields are stored as
// zero; provenance IDs are optional.
type EntryInput struct {
	FoodName string
	Calories float64
	Protein  float64
	Fats     float64
	Carbs    float64
	Fiber    float64

	PhotoFileID string
	VoiceFileID string
}

// Add validates and stores an entry against the record for the given date.
func (s *Service) Add(ctx context.Context, userID int64, date time.Time, in EntryInput) (*domain.NutritionEntry, error) {
	name := strings.TrimSpace(in.FoodName)
	if name == "" {
		return nil, ErrEmptyFoodName
	}
	if in.Calories < 0 || in.Calories > 10000 {
		return nil, ErrInvalidCalories
	}

	record, err := s.daily.GetOrCreate(ctx, userID, date)
	if err != nil {
		return nil, fmt.Errorf("load daily record: %w", err)
	}

	entry := &domain.NutritionEntry{
		UserID:        userID,
		DailyRecordID: record.ID,
		FoodName:      name,
		Calories:      in.Calories,
		Protein:       in.Protein,
		Fats:          in.Fats,
		Carbs:         in.Carbs,
		Fiber:         in.Fiber,
		PhotoFileID:   in.PhotoFileID,
		VoiceFileID:   in.VoiceFileID,
		MealTime:      time.Now().UTC(),
	}
	if err := s.entries.Add(ctx, entry); err != nil {
		return nil, fmt.Errorf("save nutrition entry: %w", err)
	}
	return entry, nil
}

// ListDay returns the entries and the owning record for the given date.
func (s *Service) ListDay(ctx context.Context, userID int64, date time.Time) (*domain.DailyRecord, []domain.NutritionEntry, error) {
	record, err := s.daily.GetOrCreate(ctx, userID, date)
	if err != nil {
		return nil, nil, fmt.Errorf("load daily record: %w", err)
	}
	entries, err := s.entries.ListForRecord(ctx, record.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("list nutrition entries: %w", err)
	}
	return record, entries, nil
}

// Delete removes an entry owned by the user; the repository reverses its
// contribution to the daily totals.
func (s *Service) Delete(ctx context.Context, entryID, userID int64) error {
	if err := s.entries.Delete(ctx, entryID, userID); err != nil {
		return fmt.Errorf("delete nutrition entry: %w", err)
	}
	return nil
}

// FormatDay renders the day's food log with totals and, when a calorie goal
// is known, the remaining budget.
func FormatDay(record *domain.DailyRecord, entries []domain.NutritionEntry, calorieGoal int) string {
	var b strings.Builder
	b.WriteString("Food log for today\n")
	if len(entries) == 0 {
		b.WriteString("\nNothing logged yet. Send a meal description, photo or voice message to add one.")
		return b.String()
	}
	b.WriteString("\n")
	for i, e := range entries {
		fmt.Fprintf(&b, "%d. %s — %.0f kcal (P %.1f / F %.1f / C %.1f)\n", i+1, e.FoodName, e.Calories, e.Protein, e.Fats, e.Carbs)
	}
	fmt.Fprintf(&b, "\nTotal: %.0f kcal, protein %.1f g, fats %.1f g, carbs %.1f g",
		record.TotalCalories, record.TotalProtein, record.TotalFats, record.TotalCarbs)
	if calorieGoal > 0 {
		remaining := float64(calorieGoal) - record.TotalCalories
		if remaining >= 0 {
			fmt.Fprintf(&b, "\nRemaining today: %.0f of %d kcal", remaining, calorieGoal)
		} else {
			fmt.Fprintf(&b, "\nOver today's %d kcal goal by %.0f kcal", calorieGoal, -remaining)
		}
	}
	return b.String()
}
