package domain

import "time"

// QuestionnaireType distinguishes the one-off intake flow from cooldown-gated
// repeats used for progress comparison.
type QuestionnaireType string

const (
	QuestionnairePrimary QuestionnaireType = "primary"
	QuestionnaireRetest  QuestionnaireType = "retest"
)

// StoolFrequency enumerates the intake answer options for bowel regularity.
type StoolFrequency string

const (
	StoolTwoThreePerDay StoolFrequency = "2_3_per_day"
	StoolDaily          StoolFrequency = "daily"
	StoolEveryOneTwo    StoolFrequency = "every_1_2_days"
	StoolEveryTwoThree  StoolFrequency = "every_2_3_days"
	StoolEveryThreeFive StoolFrequency = "every_3_5_days"
)

// StoolCharacter enumerates stool consistency answers.
type StoolCharacter string

const (
	StoolCharNormal      StoolCharacter = "normal"
	StoolCharHard        StoolCharacter = "hard"
	StoolCharLoose       StoolCharacter = "loose"
	StoolCharMixed       StoolCharacter = "sometimes_hard_sometimes_loose"
	StoolCharAlternating StoolCharacter = "alternating"
)

// MenstrualCycle enumerates the female-only cycle question answers.
type MenstrualCycle string

const (
	CycleNone      MenstrualCycle = "none"
	CycleRegular   MenstrualCycle = "regular"
	CycleIrregular MenstrualCycle = "irregular"
)

// Appetite enumerates appetite answers.
type Appetite string

const (
	AppetiteNormal    Appetite = "normal"
	AppetiteIncreased Appetite = "increased"
	AppetiteDecreased Appetite = "decreased"
)

// ActivityFrequency enumerates weekly training frequency answers.
type ActivityFrequency string

const (
	ActivityNone       ActivityFrequency = "none"
	ActivityOneTwo     ActivityFrequency = "1_2_per_week"
	ActivityThreePlus  ActivityFrequency = "3_plus_per_week"
)

// QuestionnaireResult is one completed primary or retest flow. Derived metrics
// are computed once at completion and never mutated afterwards.
type QuestionnaireResult struct {
	ID     int64
	UserID int64
	Type   QuestionnaireType

	Gender Gender

	// Anthropometry. Circumferences are the only optional questions.
	Height             float64
	Weight             float64
	ChestCircumference *float64
	WaistCircumference *float64
	HipsCircumference  *float64

	StoolFrequency StoolFrequency
	StoolCharacter StoolCharacter

	// Female-only; zero value for males (auto-skipped).
	MenstrualCycle MenstrualCycle

	// Wellbeing scales, 1-5.
	EnergyLevel  int
	StressLevel  int
	SleepQuality int

	// Symptom flags.
	Concentration     bool
	Irritability      bool
	Sleepiness        bool
	Headaches         bool
	ShortnessOfBreath bool
	ColdHandsFeet     bool
	SkinItch          bool
	BlueSclera        bool
	OilySkin          bool
	DrySkin           bool
	LowLibido         bool
	VaginalItch       bool // female-only; false for males
	JointPain         bool
	AbdominalCramps   bool
	Gas               bool
	HairLoss          bool
	DryMouth          bool

	Appetite     Appetite
	SugarCraving bool
	FatCraving   bool

	AverageSteps       *int
	ActivityFrequency  ActivityFrequency

	// Derived metrics, immutable once created.
	BMI                 float64
	HealthScore         float64 // 0-10
	GeneralScore        float64 // 0-100
	RecommendedCalories int
	RecommendedProtein  float64
	RecommendedFats     float64
	RecommendedCarbs    float64
	RecommendedWater    float64 // liters per day

	CreatedAt time.Time
}
