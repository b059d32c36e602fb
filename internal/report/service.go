package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bezzego/healthy-bot-AI/internal/domain"
)

// Service assembles report inputs from storage and renders the messages.
type Service struct {
	daily        domain.DailyRepository
	measurements domain.MeasurementRepository
}

func NewService(daily domain.DailyRepository, measurements domain.MeasurementRepository) *Service {
	return &Service{daily: daily, measurements: measurements}
}

// Weekly builds the trailing-seven-day summary ending at the given date.
func (s *Service) Weekly(ctx context.Context, userID int64, date time.Time) (string, error) {
	to := midnightUTC(date)
	from := to.AddDate(0, 0, -6)
	records, err := s.daily.Range(ctx, userID, from, to)
	if err != nil {
		return "", fmt.Errorf("load weekly records: %w", err)
	}
	return FormatWeekly(BuildWeekly(records)), nil
}

// Monthly builds the summary for the calendar month containing the given
// date, comparing this month's measurements to the previous month's.
func (s *Service) Monthly(ctx context.Context, userID int64, date time.Time) (string, error) {
	monthStart := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	records, err := s.daily.Range(ctx, userID, monthStart, monthEnd)
	if err != nil {
		return "", fmt.Errorf("load monthly records: %w", err)
	}

	current, err := s.measurement(ctx, userID, monthStart)
	if err != nil {
		return "", err
	}
	previous, err := s.measurement(ctx, userID, monthStart.AddDate(0, -1, 0))
	if err != nil {
		return "", err
	}

	return FormatMonthly(BuildMonthly(records, current, previous)), nil
}

func (s *Service) measurement(ctx context.Context, userID int64, month time.Time) (*domain.MonthlyMeasurement, error) {
	m, err := s.measurements.ForMonth(ctx, userID, month)
	if errors.Is(err, domain.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load measurement for %s: %w", month.Format("2006-01"), err)
	}
	return m, nil
}

func midnightUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
