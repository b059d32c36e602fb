package domain

import "time"

// SleepRating enumerates the morning check-in sleep answers.
type SleepRating string

const (
	SleepInsomnia    SleepRating = "insomnia"
	SleepWokeTwice   SleepRating = "woke_twice_plus"
	SleepWokeOnce    SleepRating = "woke_once"
	SleepGood        SleepRating = "slept_well"
)

// Mood enumerates the evening check-in mood answers.
type Mood string

const (
	MoodIrritated Mood = "irritated"
	MoodTired     Mood = "tired"
	MoodCalm      Mood = "calm"
	MoodGood      Mood = "good"
	MoodGreat     Mood = "great"
)

// EveningStool enumerates the evening bowel answers.
type EveningStool string

const (
	EveningStoolNormal        EveningStool = "normal"
	EveningStoolHard          EveningStool = "hard"
	EveningStoolLoose         EveningStool = "loose"
	EveningStoolLooseRepeated EveningStool = "loose_repeated"
	EveningStoolNone          EveningStool = "none"
)

// DailyRecord aggregates one user's check-ins and nutrition for one calendar
// date. Exactly one record exists per (user, date); it is created lazily on
// the first write for that date.
type DailyRecord struct {
	ID     int64
	UserID int64
	Date   time.Time // calendar date, midnight UTC

	// Morning check-in. Nil until answered; the scheduler uses presence of
	// these fields as the "morning already handled today" marker.
	MorningSleepQuality *SleepRating
	MorningSleepHours   *float64
	MorningEnergy       *int // 1-5

	// Evening check-in.
	EveningMood      *Mood
	DailySteps       *int
	PhysicalActivity *bool
	ActivityType     string
	ActiveCalories   *float64
	EveningStool     *EveningStool

	// Running nutrition totals, accumulated as entries are added and
	// decremented when entries are deleted.
	TotalCalories float64
	TotalProtein  float64
	TotalFats     float64
	TotalCarbs    float64
	TotalFiber    float64

	// Accumulated milliliters.
	WaterIntakeML float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// MorningDone reports whether the morning check-in has been captured, which
// doubles as the morning-greeting idempotency marker.
func (r *DailyRecord) MorningDone() bool {
	return r.MorningSleepQuality != nil || r.MorningEnergy != nil
}

// EveningDone reports whether the evening check-in has been captured.
func (r *DailyRecord) EveningDone() bool {
	return r.EveningMood != nil
}

// NutritionEntry is one logged food item. Append-only; it contributes its
// macro values to the owning DailyRecord's totals.
type NutritionEntry struct {
	ID            int64
	UserID        int64
	DailyRecordID int64

	FoodName string
	Calories float64
	Protein  float64
	Fats     float64
	Carbs    float64
	Fiber    float64

	// Provenance when the entry came from a photo or voice message.
	PhotoFileID string
	VoiceFileID string

	MealTime  time.Time
	CreatedAt time.Time
}

// MonthlyMeasurement holds one user's body measurements for one calendar
// month, keyed by the first day of the month. Upsert semantics.
type MonthlyMeasurement struct {
	ID     int64
	UserID int64
	Month  time.Time // first day of the month, midnight UTC

	Weight             *float64
	WaistCircumference *float64
	HipsCircumference  *float64
	ChestCircumference *float64

	CreatedAt time.Time
	UpdatedAt time.Time
}
