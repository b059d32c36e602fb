package health

import "math"

// ActivityType describes one catalog entry for the evening check-in's
// active-calorie estimate.
type ActivityType struct {
	Name        string
	KcalPerHour float64
}

// ActivityCatalog is the fixed list offered in the evening check-in. Ratings
// assume a 70 kg reference body weight.
var ActivityCatalog = []ActivityType{
	{"walking", 280},
	{"running", 600},
	{"cycling", 500},
	{"swimming", 480},
	{"strength_training", 400},
	{"yoga", 250},
	{"pilates", 280},
	{"dancing", 350},
	{"hiit", 650},
	{"stretching", 180},
}

const (
	defaultKcalPerHour = 300
	referenceWeightKG  = 70
)

// LookupActivity returns the catalog entry for the name, or false.
func LookupActivity(name string) (ActivityType, bool) {
	for _, a := range ActivityCatalog {
		if a.Name == name {
			return a, true
		}
	}
	return ActivityType{}, false
}

// ActivityCalories estimates calories burned for an activity, scaled linearly
// by body weight against the 70 kg reference. Unknown activities use a flat
// 300 kcal/hour; nil weight uses the reference. Non-positive duration yields 0.
func ActivityCalories(activityName string, durationMinutes int, weightKG *float64) float64 {
	if durationMinutes <= 0 {
		return 0
	}
	rate := float64(defaultKcalPerHour)
	if a, ok := LookupActivity(activityName); ok {
		rate = a.KcalPerHour
	}
	weight := float64(referenceWeightKG)
	if weightKG != nil && *weightKG > 0 {
		weight = *weightKG
	}
	hours := float64(durationMinutes) / 60
	return math.Round(rate*hours*(weight/referenceWeightKG)*10) / 10
}
