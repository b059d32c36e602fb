package domain

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be located by chat ID.
	ErrUserNotFound = errors.New("user not found")
	// ErrRecordNotFound is returned when a referenced entity does not exist.
	ErrRecordNotFound = errors.New("record not found")
	// ErrOnboardingRequired indicates the operation needs a completed primary questionnaire.
	ErrOnboardingRequired = errors.New("primary questionnaire not completed")
)
