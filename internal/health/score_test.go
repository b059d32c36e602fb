package health

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bezzego/healthy-bot-AI/internal/domain"
)

func perfectAnswers() *domain.QuestionnaireResult {
	return &domain.QuestionnaireResult{
		EnergyLevel:  5,
		StressLevel:  5,
		SleepQuality: 5,
	}
}

func TestHealthScorePerfect(t *testing.T) {
	require.Equal(t, 10.0, HealthScore(perfectAnswers()))
	require.Equal(t, 100.0, GeneralScore(perfectAnswers()))
}

func TestHealthScoreScalePenalties(t *testing.T) {
	r := perfectAnswers()
	r.EnergyLevel = 1 // -1.6
	r.SleepQuality = 3 // -0.8
	require.Equal(t, 7.6, HealthScore(r))
}

func TestHealthScoreSymptomPenalty(t *testing.T) {
	r := perfectAnswers()
	r.Headaches = true
	r.ColdHandsFeet = true
	require.Equal(t, 9.0, HealthScore(r))

	// Gas is outside the 0-10 symptom set but inside the 0-100 one.
	r.Gas = true
	require.Equal(t, 9.0, HealthScore(r))
	require.Equal(t, 91.0, GeneralScore(r))
}

func TestGeneralScoreSymptomCap(t *testing.T) {
	r := perfectAnswers()
	r.Concentration = true
	r.Irritability = true
	r.Sleepiness = true
	r.Headaches = true
	r.ShortnessOfBreath = true
	r.ColdHandsFeet = true
	r.SkinItch = true
	r.AbdominalCramps = true
	r.Gas = true
	r.HairLoss = true
	r.DryMouth = true
	r.JointPain = true
	// 12 symptoms x 3 = 36 < 40 cap; worst scales bring it further down.
	require.Equal(t, 64.0, GeneralScore(r))

	r.EnergyLevel = 1
	r.StressLevel = 1
	r.SleepQuality = 1
	require.Equal(t, 16.0, GeneralScore(r))
}

func TestScoresClampAtZero(t *testing.T) {
	r := &domain.QuestionnaireResult{
		EnergyLevel: 1, StressLevel: 1, SleepQuality: 1,
		Concentration: true, Irritability: true, Sleepiness: true,
		Headaches: true, ShortnessOfBreath: true, ColdHandsFeet: true,
		SkinItch: true, AbdominalCramps: true,
	}
	// 10 - 3*1.6 - 8*0.5 = 1.2
	require.Equal(t, 1.2, HealthScore(r))
	require.GreaterOrEqual(t, GeneralScore(r), 0.0)
}

func TestScoresDeterministic(t *testing.T) {
	r := perfectAnswers()
	r.EnergyLevel = 2
	r.Headaches = true
	first := HealthScore(r)
	second := HealthScore(r)
	require.Equal(t, first, second)
	require.Equal(t, GeneralScore(r), GeneralScore(r))
}

func TestMissingScalesUseMidpoint(t *testing.T) {
	r := &domain.QuestionnaireResult{}
	// All three scales default to 3: 10 - 3*0.8 = 7.6
	require.Equal(t, 7.6, HealthScore(r))
}
