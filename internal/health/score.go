package health

import "github.com/bezzego/healthy-bot-AI/internal/domain"

// healthScoreSymptoms is the fixed symptom set that the 0-10 score penalizes,
// 0.5 points each.
func healthScoreSymptoms(r *domain.QuestionnaireResult) []bool {
	return []bool{
		r.Concentration,
		r.Irritability,
		r.Sleepiness,
		r.Headaches,
		r.ShortnessOfBreath,
		r.ColdHandsFeet,
		r.SkinItch,
		r.AbdominalCramps,
	}
}

// generalScoreSymptoms is the wider symptom set behind the 0-100 score,
// 3 points each, capped at 40.
func generalScoreSymptoms(r *domain.QuestionnaireResult) []bool {
	return append(healthScoreSymptoms(r),
		r.Gas,
		r.HairLoss,
		r.DryMouth,
		r.JointPain,
	)
}

// HealthScore computes the 0-10 wellbeing score: 10 minus weighted deviations
// of energy, sleep and stress from the top of the 1-5 scale, minus 0.5 per
// flagged symptom. Deterministic for identical answers.
func HealthScore(r *domain.QuestionnaireResult) float64 {
	score := 10.0
	score -= float64(5-scaleOrDefault(r.EnergyLevel)) * 0.4
	score -= float64(5-scaleOrDefault(r.SleepQuality)) * 0.4
	// Stress is answered inverted: 1 means constant stress, 5 means calm.
	score -= float64(5-scaleOrDefault(r.StressLevel)) * 0.4

	for _, flagged := range healthScoreSymptoms(r) {
		if flagged {
			score -= 0.5
		}
	}
	return clamp(round1(score), 0, 10)
}

// GeneralScore computes the 0-100 analogue of HealthScore with larger weights
// and a wider symptom set.
func GeneralScore(r *domain.QuestionnaireResult) float64 {
	score := 100.0
	score -= float64(5-scaleOrDefault(r.EnergyLevel)) * 4
	score -= float64(5-scaleOrDefault(r.SleepQuality)) * 4
	score -= float64(5-scaleOrDefault(r.StressLevel)) * 4

	penalty := 0.0
	for _, flagged := range generalScoreSymptoms(r) {
		if flagged {
			penalty += 3
		}
	}
	if penalty > 40 {
		penalty = 40
	}
	score -= penalty
	return clamp(round1(score), 0, 100)
}

// scaleOrDefault substitutes the scale midpoint when a 1-5 answer is missing.
func scaleOrDefault(v int) int {
	if v < 1 || v > 5 {
		return 3
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
