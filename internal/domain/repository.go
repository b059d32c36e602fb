package domain

import (
	"context"
	"time"
)

// UserRepository captures user persistence operations.
type UserRepository interface {
	// GetOrCreate returns the user for the chat ID, creating a bare record on
	// first contact.
	GetOrCreate(ctx context.Context, chatID int64, username, firstName, lastName string) (*User, error)
	GetByChatID(ctx context.Context, chatID int64) (*User, error)
	Get(ctx context.Context, userID int64) (*User, error)
	// Update persists onboarding status and notification preferences.
	Update(ctx context.Context, user *User) error
	// ListOnboarded returns every user the scheduler sweep must consider.
	ListOnboarded(ctx context.Context) ([]User, error)
}

// QuestionnaireRepository stores completed questionnaire results. Results are
// append-only; there is no update operation by design.
type QuestionnaireRepository interface {
	Create(ctx context.Context, result *QuestionnaireResult) error
	// Latest returns the most recent result of the given type, or
	// ErrRecordNotFound.
	Latest(ctx context.Context, userID int64, typ QuestionnaireType) (*QuestionnaireResult, error)
}

// DailyRepository stores per-user per-date aggregate records.
type DailyRepository interface {
	// GetOrCreate returns the record for the calendar date, creating an empty
	// one on first write access.
	GetOrCreate(ctx context.Context, userID int64, date time.Time) (*DailyRecord, error)
	// Find returns the record for the calendar date without creating one;
	// ErrRecordNotFound when the user has no data for the date yet.
	Find(ctx context.Context, userID int64, date time.Time) (*DailyRecord, error)
	// Save persists the mutable check-in and totals fields.
	Save(ctx context.Context, record *DailyRecord) error
	// Range returns records with from <= date <= to, ordered by date.
	Range(ctx context.Context, userID int64, from, to time.Time) ([]DailyRecord, error)
}

// NutritionRepository stores food entries and keeps the owning DailyRecord's
// totals consistent with them.
type NutritionRepository interface {
	// Add persists the entry and increments the daily totals in one
	// transaction.
	Add(ctx context.Context, entry *NutritionEntry) error
	// Delete removes the entry and decrements the daily totals; returns
	// ErrRecordNotFound when the entry does not exist or belongs to another
	// user.
	Delete(ctx context.Context, entryID, userID int64) error
	ListForRecord(ctx context.Context, dailyRecordID int64) ([]NutritionEntry, error)
}

// MeasurementRepository stores monthly body measurements with upsert
// semantics keyed by (user, month).
type MeasurementRepository interface {
	Upsert(ctx context.Context, m *MonthlyMeasurement) error
	// ForMonth returns the measurement for the month containing the given
	// date, or ErrRecordNotFound.
	ForMonth(ctx context.Context, userID int64, month time.Time) (*MonthlyMeasurement, error)
}

// AdminRequestRepository stores operator-facing user requests.
type AdminRequestRepository interface {
	Create(ctx context.Context, request *AdminRequest) error
	ListPending(ctx context.Context) ([]AdminRequest, error)
	UpdateStatus(ctx context.Context, requestID int64, status AdminRequestStatus, response string) error
	Stats(ctx context.Context, since time.Time) (*UsageStats, error)
}

// NotificationLogRepository records periodic-kind sends so that weekly and
// monthly reports are delivered at most once per period even if a sweep
// repeats inside the time window.
type NotificationLogRepository interface {
	// Sent reports whether the kind was already delivered for the period key.
	Sent(ctx context.Context, userID int64, kind NotificationKind, period string) (bool, error)
	// MarkSent records delivery; calling it twice for the same key is a no-op.
	MarkSent(ctx context.Context, userID int64, kind NotificationKind, period string) error
}
