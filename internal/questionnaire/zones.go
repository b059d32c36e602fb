package questionnaire

import (
	"fmt"
	"strings"

	"github.com/bezzego/healthy-bot-AI/internal/domain"
	"github.com/bezzego/healthy-bot-AI/internal/health"
)

var categoryLabels = map[health.BMICategory]string{
	health.Underweight: "underweight",
	health.Normal:      "normal weight",
	health.Overweight:  "overweight",
	health.ObeseI:      "obesity, class I",
	health.ObeseII:     "obesity, class II",
	health.ObeseIII:    "obesity, class III",
}

func categoryLabel(r *domain.QuestionnaireResult) string {
	return categoryLabels[health.CategoryForBMI(r.BMI)]
}

// zoneRule pairs a predicate with the label it contributes. Rules run in a
// fixed order; GI symptoms are collected separately and merged into a single
// combined zone.
type zoneRule struct {
	match func(r *domain.QuestionnaireResult) bool
	label string
}

var wellbeingRules = []zoneRule{
	{func(r *domain.QuestionnaireResult) bool { return r.EnergyLevel > 0 && r.EnergyLevel < 3 }, "Low energy level"},
	{func(r *domain.QuestionnaireResult) bool { return r.SleepQuality > 0 && r.SleepQuality < 3 }, "Sleep problems"},
	// Stress is answered inverted: a low value means a lot of stress.
	{func(r *domain.QuestionnaireResult) bool { return r.StressLevel > 0 && r.StressLevel < 3 }, "High stress level"},
	{func(r *domain.QuestionnaireResult) bool { return r.Concentration }, "Reduced concentration"},
	{func(r *domain.QuestionnaireResult) bool { return r.Irritability }, "Daytime irritability"},
	{func(r *domain.QuestionnaireResult) bool { return r.Sleepiness }, "Daytime sleepiness"},
}

// giRules contribute to the single combined digestive zone.
var giRules = []zoneRule{
	{func(r *domain.QuestionnaireResult) bool { return r.AbdominalCramps }, "abdominal pain or cramps"},
	{func(r *domain.QuestionnaireResult) bool { return r.Gas }, "excessive gas"},
}

var symptomRules = []zoneRule{
	{func(r *domain.QuestionnaireResult) bool { return r.Headaches }, "Headaches"},
	{func(r *domain.QuestionnaireResult) bool { return r.ShortnessOfBreath }, "Shortness of breath or palpitations"},
	{func(r *domain.QuestionnaireResult) bool { return r.JointPain }, "Joint pain"},
	{func(r *domain.QuestionnaireResult) bool { return r.ColdHandsFeet }, "Cold hands and feet"},
	{func(r *domain.QuestionnaireResult) bool { return r.SkinItch }, "Skin itching"},
	{func(r *domain.QuestionnaireResult) bool { return r.DryMouth }, "Dry mouth"},
	{func(r *domain.QuestionnaireResult) bool { return r.HairLoss }, "Hair loss"},
	{func(r *domain.QuestionnaireResult) bool { return r.LowLibido }, "Reduced libido"},
	{func(r *domain.QuestionnaireResult) bool { return r.BlueSclera }, "Bluish tint of the scleras"},
	{func(r *domain.QuestionnaireResult) bool { return r.OilySkin }, "Oily facial skin"},
	{func(r *domain.QuestionnaireResult) bool { return r.DrySkin }, "Dry facial skin"},
}

var femaleRules = []zoneRule{
	{func(r *domain.QuestionnaireResult) bool { return r.VaginalItch }, "Vaginal itching"},
	{func(r *domain.QuestionnaireResult) bool { return r.MenstrualCycle == domain.CycleIrregular }, "Irregular menstrual cycle"},
}

var appetiteRules = []zoneRule{
	{func(r *domain.QuestionnaireResult) bool { return r.Appetite == domain.AppetiteIncreased }, "Increased appetite"},
	{func(r *domain.QuestionnaireResult) bool { return r.Appetite == domain.AppetiteDecreased }, "Decreased appetite"},
	{func(r *domain.QuestionnaireResult) bool { return r.SugarCraving }, "Sugar cravings"},
	{func(r *domain.QuestionnaireResult) bool { return r.FatCraving }, "Fatty food cravings"},
}

// stoolFrequencyZones maps off-normal frequencies to their labels.
var stoolFrequencyZones = map[domain.StoolFrequency]string{
	domain.StoolEveryTwoThree:  "Infrequent stool",
	domain.StoolEveryThreeFive: "Infrequent stool",
	domain.StoolTwoThreePerDay: "Frequent stool",
}

var stoolCharacterLabels = map[domain.StoolCharacter]string{
	domain.StoolCharHard:        "hard",
	domain.StoolCharLoose:       "loose",
	domain.StoolCharMixed:       "sometimes hard, sometimes loose",
	domain.StoolCharAlternating: "alternating",
}

// Zones derives the ordered list of attention zones from a completed result.
// Female-only rules are evaluated only when gender resolved female.
func Zones(r *domain.QuestionnaireResult) []string {
	var zones []string

	for _, rule := range wellbeingRules {
		if rule.match(r) {
			zones = append(zones, rule.label)
		}
	}

	var gi []string
	for _, rule := range giRules {
		if rule.match(r) {
			gi = append(gi, rule.label)
		}
	}
	if len(gi) > 0 {
		zones = append(zones, fmt.Sprintf("Digestive discomfort (%s)", strings.Join(gi, ", ")))
	}

	if label, ok := stoolFrequencyZones[r.StoolFrequency]; ok {
		zones = append(zones, label)
	}
	if label, ok := stoolCharacterLabels[r.StoolCharacter]; ok {
		zones = append(zones, fmt.Sprintf("Changed stool consistency (%s)", label))
	}

	for _, rule := range symptomRules {
		if rule.match(r) {
			zones = append(zones, rule.label)
		}
	}

	if r.Gender == domain.GenderFemale {
		for _, rule := range femaleRules {
			if rule.match(r) {
				zones = append(zones, rule.label)
			}
		}
	}

	for _, rule := range appetiteRules {
		if rule.match(r) {
			zones = append(zones, rule.label)
		}
	}

	return zones
}

// FormatZones renders the zone list as a bullet block, appending the
// specialist recommendation when more than five zones were found.
func FormatZones(zones []string) string {
	if len(zones) == 0 {
		return "No particular attention zones were found"
	}
	var b strings.Builder
	for _, zone := range zones {
		fmt.Fprintf(&b, "• %s\n", zone)
	}
	if len(zones) > 5 {
		b.WriteString("\nIt would make sense to discuss your condition with a specialist")
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatSummary renders the completion message shown after the intake flow.
func FormatSummary(r *domain.QuestionnaireResult) string {
	var b strings.Builder
	b.WriteString("Your questionnaire results\n\n")
	fmt.Fprintf(&b, "BMI: %.1f (%s)\n", r.BMI, categoryLabel(r))
	fmt.Fprintf(&b, "Health score: %.1f / 10\n", r.HealthScore)
	fmt.Fprintf(&b, "Overall score: %.1f / 100\n\n", r.GeneralScore)
	fmt.Fprintf(&b, "Recommended daily calories: %d kcal\n", r.RecommendedCalories)
	fmt.Fprintf(&b, "Protein %.1f g · Fats %.1f g · Carbs %.1f g\n", r.RecommendedProtein, r.RecommendedFats, r.RecommendedCarbs)
	fmt.Fprintf(&b, "Water: %.1f l per day\n\n", r.RecommendedWater)
	b.WriteString("Attention zones:\n")
	b.WriteString(FormatZones(Zones(r)))
	return b.String()
}
