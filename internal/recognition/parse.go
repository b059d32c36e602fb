package recognition

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// ParseMeal extracts the structured meal from raw model output. It tolerates
// markdown code fences and surrounding prose, then validates the payload.
func ParseMeal(content string) (*Meal, error) {
	raw := extractJSON(content)
	if raw == "" {
		return nil, errors.New("no JSON object in model output")
	}

	var probe struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		return nil, errors.New("malformed JSON in model output")
	}
	if probe.Error != "" {
		return nil, ErrUnrecognized
	}

	var meal Meal
	if err := json.Unmarshal([]byte(raw), &meal); err != nil {
		return nil, errors.New("malformed JSON in model output")
	}
	if strings.TrimSpace(meal.FoodName) == "" || meal.Calories <= 0 {
		return nil, ErrUnrecognized
	}
	if meal.Calories > 10000 {
		meal.Calories = 10000
	}
	return &meal, nil
}

// extractJSON strips markdown fences and falls back to the first JSON object
// found anywhere in the text.
func extractJSON(content string) string {
	s := strings.TrimSpace(content)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
		s = strings.TrimSpace(s)
	}
	if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
		return s
	}
	return jsonObjectPattern.FindString(s)
}
