// Package health implements the calculation engine: BMI, BMR, TDEE, calorie
// and macro recommendations, water norm and wellbeing scores. All functions
// are pure and deterministic so that retest comparisons stay exact.
package health

import (
	"math"

	"github.com/bezzego/healthy-bot-AI/internal/domain"
)

// BMICategory buckets a BMI value into the six WHO ranges.
type BMICategory string

const (
	Underweight BMICategory = "underweight"
	Normal      BMICategory = "normal"
	Overweight  BMICategory = "overweight"
	ObeseI      BMICategory = "obese_1"
	ObeseII     BMICategory = "obese_2"
	ObeseIII    BMICategory = "obese_3"
)

// Goal is the calorie-target direction derived from BMI.
type Goal string

const (
	GoalLoss     Goal = "loss"
	GoalMaintain Goal = "maintain"
	GoalGain     Goal = "gain"
)

// BMI computes weight/(height_m)^2 rounded to one decimal. Non-positive
// inputs yield 0 rather than an error.
func BMI(heightCM, weightKG float64) float64 {
	if heightCM <= 0 || weightKG <= 0 {
		return 0
	}
	heightM := heightCM / 100
	return round1(weightKG / (heightM * heightM))
}

// bmiBuckets partitions [0, inf) into contiguous categories; first match wins.
var bmiBuckets = []struct {
	below    float64
	category BMICategory
}{
	{18.5, Underweight},
	{25, Normal},
	{30, Overweight},
	{35, ObeseI},
	{40, ObeseII},
	{math.Inf(1), ObeseIII},
}

// CategoryForBMI returns the WHO category for a BMI value.
func CategoryForBMI(bmi float64) BMICategory {
	for _, b := range bmiBuckets {
		if bmi < b.below {
			return b.category
		}
	}
	return ObeseIII
}

// BMR computes basal metabolic rate via Mifflin-St Jeor, floored at 800 kcal.
func BMR(weightKG, heightCM float64, age int, gender domain.Gender) float64 {
	bmr := 10*weightKG + 6.25*heightCM - 5*float64(age)
	if gender == domain.GenderMale {
		bmr += 5
	} else {
		bmr -= 161
	}
	return math.Max(800, bmr)
}

// activityTiers is the ordered (predicate, factor) table for TDEE multipliers;
// evaluated top to bottom, first match wins.
var activityTiers = []struct {
	match  func(steps int, freq domain.ActivityFrequency) bool
	factor float64
}{
	{func(s int, f domain.ActivityFrequency) bool { return s >= 12000 && f == domain.ActivityThreePlus }, 1.9},
	{func(s int, f domain.ActivityFrequency) bool { return s >= 10000 && f == domain.ActivityThreePlus }, 1.725},
	{func(s int, f domain.ActivityFrequency) bool { return s >= 10000 || f == domain.ActivityThreePlus }, 1.55},
	{func(s int, f domain.ActivityFrequency) bool { return s >= 7500 || f == domain.ActivityOneTwo }, 1.375},
}

// ActivityFactor maps average daily steps and weekly training frequency to a
// TDEE multiplier. Absent inputs resolve to the sedentary tier.
func ActivityFactor(averageSteps *int, freq domain.ActivityFrequency) float64 {
	if averageSteps == nil && freq == "" {
		return 1.2
	}
	steps := 0
	if averageSteps != nil {
		steps = *averageSteps
	}
	for _, tier := range activityTiers {
		if tier.match(steps, freq) {
			return tier.factor
		}
	}
	return 1.2
}

// TDEE is total daily energy expenditure.
func TDEE(bmr, activityFactor float64) float64 {
	return bmr * activityFactor
}

// goalAdjustments maps BMI ranges to calorie deltas; first match wins.
var goalAdjustments = []struct {
	match      func(bmi float64) bool
	adjustment int
}{
	{func(bmi float64) bool { return bmi >= 30 }, -500},
	{func(bmi float64) bool { return bmi >= 25 }, -350},
	{func(bmi float64) bool { return bmi < 18.5 }, 300},
}

// GoalAdjustment returns the calorie delta applied on top of TDEE.
func GoalAdjustment(bmi float64) int {
	for _, g := range goalAdjustments {
		if g.match(bmi) {
			return g.adjustment
		}
	}
	return 0
}

// GoalForBMI derives the macro-split goal from BMI.
func GoalForBMI(bmi float64) Goal {
	switch {
	case bmi >= 25:
		return GoalLoss
	case bmi < 18.5:
		return GoalGain
	default:
		return GoalMaintain
	}
}

// CalorieInput carries everything the calorie recommendation needs. Optional
// fields default the way a dietitian would: age 30, height back-derived from
// BMI, sedentary activity.
type CalorieInput struct {
	BMI          float64
	WeightKG     float64
	HeightCM     float64 // 0 means unknown
	Gender       domain.Gender
	Age          *int
	AverageSteps *int
	Frequency    domain.ActivityFrequency
}

// RecommendedCalories computes the daily calorie target: Mifflin-St Jeor BMR,
// activity multiplier, BMI-based goal adjustment, clamped to safe bounds
// (1500-3000 male, 1200-3000 female).
func RecommendedCalories(in CalorieInput) int {
	height := in.HeightCM
	if height <= 0 {
		if in.BMI > 0 {
			// height = sqrt(weight/bmi) * 100, clamped to plausible stature
			estimated := math.Sqrt(in.WeightKG/in.BMI) * 100
			height = math.Max(140, math.Min(220, estimated))
		} else {
			height = 170
		}
	}

	age := 30
	if in.Age != nil && *in.Age >= 18 && *in.Age <= 100 {
		age = *in.Age
	}

	bmr := BMR(in.WeightKG, height, age, in.Gender)
	factor := ActivityFactor(in.AverageSteps, in.Frequency)
	calories := TDEE(bmr, factor) + float64(GoalAdjustment(in.BMI))

	minCalories := 1200.0
	if in.Gender == domain.GenderMale {
		minCalories = 1500
	}
	return int(math.Max(minCalories, math.Min(3000, math.Round(calories))))
}

// Macros is a daily macro allocation in grams.
type Macros struct {
	ProteinG float64
	FatsG    float64
	CarbsG   float64
}

// macroTables holds the calorie percentage split per goal. Protein and carbs
// convert at 4 kcal/g, fat at 9 kcal/g.
var macroTables = map[Goal]struct{ protein, fats, carbs float64 }{
	GoalLoss:     {0.32, 0.28, 0.40},
	GoalGain:     {0.25, 0.28, 0.47},
	GoalMaintain: {0.28, 0.30, 0.42},
}

// MacroSplit allocates calories into protein/fat/carb grams for the goal.
func MacroSplit(calories int, goal Goal) Macros {
	table, ok := macroTables[goal]
	if !ok {
		table = macroTables[GoalMaintain]
	}
	c := float64(calories)
	return Macros{
		ProteinG: round1(c * table.protein / 4),
		FatsG:    round1(c * table.fats / 9),
		CarbsG:   round1(c * table.carbs / 4),
	}
}

// WaterNormML is the daily water target: 30 ml per kg of body weight.
func WaterNormML(weightKG float64) float64 {
	return math.Round(weightKG * 30)
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
