package nutrition

import "strings"

// FoodInfo holds per-100g reference macros for a common food, used as a
// fallback estimate when a text entry names a food without numbers.
type FoodInfo struct {
	Name     string
	Calories float64
	Protein  float64
	Fats     float64
	Carbs    float64
	Fiber    float64
}

// referenceFoods is a small per-100g catalog of frequent staples. Unknown
// foods go through recognition instead.
var referenceFoods = map[string]FoodInfo{
	"apple":          {Name: "Apple", Calories: 52, Protein: 0.3, Fats: 0.2, Carbs: 14, Fiber: 2.4},
	"banana":         {Name: "Banana", Calories: 89, Protein: 1.1, Fats: 0.3, Carbs: 23, Fiber: 2.6},
	"buckwheat":      {Name: "Buckwheat, cooked", Calories: 110, Protein: 4, Fats: 1.1, Carbs: 21, Fiber: 2.7},
	"chicken breast": {Name: "Chicken breast", Calories: 165, Protein: 31, Fats: 3.6, Carbs: 0, Fiber: 0},
	"cottage cheese": {Name: "Cottage cheese 5%", Calories: 121, Protein: 17, Fats: 5, Carbs: 3, Fiber: 0},
	"egg":            {Name: "Egg", Calories: 155, Protein: 13, Fats: 11, Carbs: 1.1, Fiber: 0},
	"oatmeal":        {Name: "Oatmeal, cooked", Calories: 71, Protein: 2.5, Fats: 1.5, Carbs: 12, Fiber: 1.7},
	"rice":           {Name: "White rice, cooked", Calories: 130, Protein: 2.7, Fats: 0.3, Carbs: 28, Fiber: 0.4},
	"salmon":         {Name: "Salmon", Calories: 208, Protein: 20, Fats: 13, Carbs: 0, Fiber: 0},
	"yogurt":         {Name: "Plain yogurt", Calories: 61, Protein: 3.5, Fats: 3.3, Carbs: 4.7, Fiber: 0},
}

// LookupFood finds a reference food by a case-insensitive name match.
func LookupFood(name string) (FoodInfo, bool) {
	info, ok := referenceFoods[strings.ToLower(strings.TrimSpace(name))]
	return info, ok
}

// EstimatePortion scales a reference food to the given portion in grams.
func EstimatePortion(info FoodInfo, grams float64) EntryInput {
	factor := grams / 100
	return EntryInput{
		FoodName: info.Name,
		Calories: info.Calories * factor,
		Protein:  info.Protein * factor,
		Fats:     info.Fats * factor,
		Carbs:    info.Carbs * factor,
		Fiber:    info.Fiber * factor,
	}
}
