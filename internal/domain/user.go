// Package domain defines the entities and persistence contracts for the
// health-tracking assistant.
package domain

import "time"

// Gender is resolved by the first questionnaire question and drives skip logic
// for female-only questions.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// User is the canonical per-chat identity record.
type User struct {
	ID         int64
	ChatID     int64
	Username   string
	FirstName  string
	LastName   string

	OnboardingCompleted   bool
	OnboardingCompletedAt *time.Time

	// Notification preferences: written once during onboarding, read by the
	// scheduler on every sweep.
	Timezone    string
	MorningTime string // HH:MM in the user's local time
	EveningTime string // HH:MM in the user's local time

	CreatedAt time.Time
	UpdatedAt time.Time
}
