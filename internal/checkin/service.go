// Package checkin implements the morning and evening check-ins, water
// logging and monthly measurements on top of the daily record storage.
package checkin

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/bezzego/healthy-bot-AI/internal/domain"
	"github.com/bezzego/healthy-bot-AI/internal/health"
)

var (
	ErrInvalidSteps      = errors.New("steps must be between 0 and 100000")
	ErrInvalidEnergy     = errors.New("energy must be between 1 and 5")
	ErrInvalidSleepHours = errors.New("sleep hours must be between 0 and 24")
	ErrInvalidWater      = errors.New("water amount must be between 1 and 5000 ml")
	ErrInvalidDuration   = errors.New("activity duration must be between 1 and 1440 minutes")
)

// Events publishes check-in domain events. Publishing is best-effort: the
// check-in itself is already saved when it runs.
type Events interface {
	CheckinRecorded(ctx context.Context, userID int64, kind string, date time.Time) error
}

// Service records check-in answers. All writes go through the per-date daily
// record; the repository creates it lazily.
type Service struct {
	daily          domain.DailyRepository
	measurements   domain.MeasurementRepository
	questionnaires domain.QuestionnaireRepository
	events         Events
}

func NewService(daily domain.DailyRepository, measurements domain.MeasurementRepository, questionnaires domain.QuestionnaireRepository, events Events) *Service {
	return &Service{daily: daily, measurements: measurements, questionnaires: questionnaires, events: events}
}

func (s *Service) publish(ctx context.Context, userID int64, kind string, date time.Time) {
	if s.events == nil {
		return
	}
	if err := s.events.CheckinRecorded(ctx, userID, kind, date); err != nil {
		log.Printf("checkin: publish %s event for user %d: %v", kind, userID, err)
	}
}

// Morning captures the morning check-in answers for the given date.
func (s *Service) Morning(ctx context.Context, userID int64, date time.Time, sleep domain.SleepRating, sleepHours float64, energy int) (*domain.DailyRecord, error) {
	if energy < 1 || energy > 5 {
		return nil, ErrInvalidEnergy
	}
	if sleepHours < 0 || sleepHours > 24 {
		return nil, ErrInvalidSleepHours
	}

	record, err := s.daily.GetOrCreate(ctx, userID, date)
	if err != nil {
		return nil, fmt.Errorf("load daily record: %w", err)
	}
	record.MorningSleepQuality = &sleep
	record.MorningSleepHours = &sleepHours
	record.MorningEnergy = &energy
	if err := s.daily.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("save morning check-in: %w", err)
	}
	s.publish(ctx, userID, "morning", date)
	return record, nil
}

// EveningInput carries the evening check-in answers. ActivityType and
// DurationMinutes are consulted only when Activity is true.
type EveningInput struct {
	Mood            domain.Mood
	Steps           int
	Activity        bool
	ActivityType    string
	DurationMinutes float64
	Stool           domain.EveningStool
}

// Evening captures the evening check-in. Active calories are estimated from
// the activity type and duration, scaled by the weight from the latest
// questionnaire when one exists.
func (s *Service) Evening(ctx context.Context, userID int64, date time.Time, in EveningInput) (*domain.DailyRecord, error) {
	if in.Steps < 0 || in.Steps > 100000 {
		return nil, ErrInvalidSteps
	}
	if in.Activity && (in.DurationMinutes <= 0 || in.DurationMinutes > 1440) {
		return nil, ErrInvalidDuration
	}

	record, err := s.daily.GetOrCreate(ctx, userID, date)
	if err != nil {
		return nil, fmt.Errorf("load daily record: %w", err)
	}

	record.EveningMood = &in.Mood
	record.DailySteps = &in.Steps
	record.PhysicalActivity = &in.Activity
	record.EveningStool = &in.Stool

	if in.Activity {
		record.ActivityType = in.ActivityType
		calories := health.ActivityCalories(in.ActivityType, int(in.DurationMinutes), s.latestWeight(ctx, userID))
		record.ActiveCalories = &calories
	}

	if err := s.daily.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("save evening check-in: %w", err)
	}
	s.publish(ctx, userID, "evening", date)
	return record, nil
}

// AddWater accumulates a water portion in milliliters for the given date and
// returns the new daily total.
func (s *Service) AddWater(ctx context.Context, userID int64, date time.Time, amountML float64) (float64, error) {
	if amountML < 1 || amountML > 5000 {
		return 0, ErrInvalidWater
	}
	record, err := s.daily.GetOrCreate(ctx, userID, date)
	if err != nil {
		return 0, fmt.Errorf("load daily record: %w", err)
	}
	record.WaterIntakeML += amountML
	if err := s.daily.Save(ctx, record); err != nil {
		return 0, fmt.Errorf("save water intake: %w", err)
	}
	return record.WaterIntakeML, nil
}

// MeasurementInput carries the monthly measurement answers; nil fields were
// skipped.
type MeasurementInput struct {
	Weight *float64
	Waist  *float64
	Hips   *float64
	Chest  *float64
}

// RecordMeasurement upserts the measurement row for the month containing the
// given date.
func (s *Service) RecordMeasurement(ctx context.Context, userID int64, date time.Time, in MeasurementInput) error {
	m := &domain.MonthlyMeasurement{
		UserID:             userID,
		Month:              time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC),
		Weight:             in.Weight,
		WaistCircumference: in.Waist,
		HipsCircumference:  in.Hips,
		ChestCircumference: in.Chest,
	}
	if err := s.measurements.Upsert(ctx, m); err != nil {
		return fmt.Errorf("save monthly measurement: %w", err)
	}
	return nil
}

// latestWeight returns the weight from the newest questionnaire of either
// type, nil when the user has none.
func (s *Service) latestWeight(ctx context.Context, userID int64) *float64 {
	var newest *domain.QuestionnaireResult
	for _, typ := range []domain.QuestionnaireType{domain.QuestionnairePrimary, domain.QuestionnaireRetest} {
		r, err := s.questionnaires.Latest(ctx, userID, typ)
		if err != nil {
			continue
		}
		if newest == nil || r.CreatedAt.After(newest.CreatedAt) {
			newest = r
		}
	}
	if newest == nil {
		return nil
	}
	w := newest.Weight
	return &w
}
