package checkin

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bezzego/healthy-bot-AI/internal/domain"
)

type memDaily struct {
	records map[string]*domain.DailyRecord
	saves   int
}

func newMemDaily() *memDaily {
	return &memDaily{records: make(map[string]*domain.DailyRecord)}
}

func dayKey(userID int64, date time.Time) string {
	return fmt.Sprintf("%d/%s", userID, date.Format("2006-01-02"))
}

func (m *memDaily) GetOrCreate(ctx context.Context, userID int64, date time.Time) (*domain.DailyRecord, error) {
	key := dayKey(userID, date)
	if r, ok := m.records[key]; ok {
		return r, nil
	}
	r := &domain.DailyRecord{UserID: userID, Date: date}
	m.records[key] = r
	return r, nil
}

func (m *memDaily) Find(ctx context.Context, userID int64, date time.Time) (*domain.DailyRecord, error) {
	if r, ok := m.records[dayKey(userID, date)]; ok {
		return r, nil
	}
	return nil, domain.ErrRecordNotFound
}

func (m *memDaily) Save(ctx context.Context, record *domain.DailyRecord) error {
	m.saves++
	m.records[dayKey(record.UserID, record.Date)] = record
	return nil
}

func (m *memDaily) Range(ctx context.Context, userID int64, from, to time.Time) ([]domain.DailyRecord, error) {
	return nil, nil
}

type memMeasurements struct {
	last *domain.MonthlyMeasurement
}

func (m *memMeasurements) Upsert(ctx context.Context, mm *domain.MonthlyMeasurement) error {
	m.last = mm
	return nil
}

func (m *memMeasurements) ForMonth(ctx context.Context, userID int64, month time.Time) (*domain.MonthlyMeasurement, error) {
	return nil, domain.ErrRecordNotFound
}

type memQuestionnaires struct {
	latest *domain.QuestionnaireResult
}

func (m *memQuestionnaires) Create(ctx context.Context, result *domain.QuestionnaireResult) error {
	return nil
}

func (m *memQuestionnaires) Latest(ctx context.Context, userID int64, typ domain.QuestionnaireType) (*domain.QuestionnaireResult, error) {
	if m.latest == nil || m.latest.Type != typ {
		return nil, domain.ErrRecordNotFound
	}
	return m.latest, nil
}

type recordingEvents struct {
	kinds []string
}

func (r *recordingEvents) CheckinRecorded(ctx context.Context, userID int64, kind string, date time.Time) error {
	r.kinds = append(r.kinds, kind)
	return nil
}

func newTestService() (*Service, *memDaily, *memMeasurements, *memQuestionnaires) {
	daily := newMemDaily()
	measurements := &memMeasurements{}
	questionnaires := &memQuestionnaires{}
	return NewService(daily, measurements, questionnaires, nil), daily, measurements, questionnaires
}

var testDate = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

func TestMorningCheckin(t *testing.T) {
	svc, _, _, _ := newTestService()

	record, err := svc.Morning(context.Background(), 1, testDate, domain.SleepGood, 7.5, 4)
	require.NoError(t, err)
	require.True(t, record.MorningDone())
	require.Equal(t, domain.SleepGood, *record.MorningSleepQuality)
	require.Equal(t, 7.5, *record.MorningSleepHours)
	require.Equal(t, 4, *record.MorningEnergy)
	require.False(t, record.EveningDone())
}

func TestMorningValidation(t *testing.T) {
	svc, daily, _, _ := newTestService()

	_, err := svc.Morning(context.Background(), 1, testDate, domain.SleepGood, 8, 0)
	require.ErrorIs(t, err, ErrInvalidEnergy)
	_, err = svc.Morning(context.Background(), 1, testDate, domain.SleepGood, 8, 6)
	require.ErrorIs(t, err, ErrInvalidEnergy)
	_, err = svc.Morning(context.Background(), 1, testDate, domain.SleepGood, 25, 3)
	require.ErrorIs(t, err, ErrInvalidSleepHours)
	require.Zero(t, daily.saves)
}

func TestEveningCheckinWithActivity(t *testing.T) {
	svc, _, _, questionnaires := newTestService()
	questionnaires.latest = &domain.QuestionnaireResult{
		Type:   domain.QuestionnairePrimary,
		Weight: 105,
	}

	record, err := svc.Evening(context.Background(), 1, testDate, EveningInput{
		Mood:            domain.MoodGood,
		Steps:           9000,
		Activity:        true,
		ActivityType:    "running",
		DurationMinutes: 60,
		Stool:           domain.EveningStoolNormal,
	})
	require.NoError(t, err)
	require.True(t, record.EveningDone())
	require.Equal(t, "running", record.ActivityType)
	// 600 kcal/h at the 70 kg reference, scaled by 105/70.
	require.InDelta(t, 900.0, *record.ActiveCalories, 0.001)
}

func TestEveningCheckinNoActivity(t *testing.T) {
	svc, _, _, _ := newTestService()

	record, err := svc.Evening(context.Background(), 1, testDate, EveningInput{
		Mood:  domain.MoodTired,
		Steps: 4000,
		Stool: domain.EveningStoolNone,
	})
	require.NoError(t, err)
	require.False(t, *record.PhysicalActivity)
	require.Nil(t, record.ActiveCalories)
	require.Empty(t, record.ActivityType)
}

func TestEveningValidation(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Evening(context.Background(), 1, testDate, EveningInput{Mood: domain.MoodGood, Steps: 100001})
	require.ErrorIs(t, err, ErrInvalidSteps)
	_, err = svc.Evening(context.Background(), 1, testDate, EveningInput{Mood: domain.MoodGood, Steps: -1})
	require.ErrorIs(t, err, ErrInvalidSteps)
	_, err = svc.Evening(context.Background(), 1, testDate, EveningInput{Mood: domain.MoodGood, Activity: true})
	require.ErrorIs(t, err, ErrInvalidDuration)
}

func TestAddWaterAccumulates(t *testing.T) {
	svc, _, _, _ := newTestService()

	total, err := svc.AddWater(context.Background(), 1, testDate, 250)
	require.NoError(t, err)
	require.Equal(t, 250.0, total)

	total, err = svc.AddWater(context.Background(), 1, testDate, 500)
	require.NoError(t, err)
	require.Equal(t, 750.0, total)

	_, err = svc.AddWater(context.Background(), 1, testDate, 0)
	require.ErrorIs(t, err, ErrInvalidWater)
	_, err = svc.AddWater(context.Background(), 1, testDate, 6000)
	require.ErrorIs(t, err, ErrInvalidWater)
}

func TestRecordMeasurementNormalizesMonth(t *testing.T) {
	svc, _, measurements, _ := newTestService()

	w := 74.0
	err := svc.RecordMeasurement(context.Background(), 1, time.Date(2025, 6, 21, 14, 3, 0, 0, time.UTC), MeasurementInput{Weight: &w})
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), measurements.last.Month)
	require.Equal(t, 74.0, *measurements.last.Weight)
	require.Nil(t, measurements.last.WaistCircumference)
}

func TestCheckinEventsPublished(t *testing.T) {
	events := &recordingEvents{}
	svc := NewService(newMemDaily(), &memMeasurements{}, &memQuestionnaires{}, events)

	_, err := svc.Morning(context.Background(), 1, testDate, domain.SleepGood, 8, 4)
	require.NoError(t, err)
	_, err = svc.Evening(context.Background(), 1, testDate, EveningInput{Mood: domain.MoodGood, Steps: 9000, Stool: domain.EveningStoolNormal})
	require.NoError(t, err)

	require.Equal(t, []string{"morning", "evening"}, events.kinds)

	// Water logging is not a check-in.
	_, err = svc.AddWater(context.Background(), 1, testDate, 250)
	require.NoError(t, err)
	require.Len(t, events.kinds, 2)
}
