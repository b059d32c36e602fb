package health

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bezzego/healthy-bot-AI/internal/domain"
)

func TestBMIBasics(t *testing.T) {
	require.InDelta(t, 24.2, BMI(170, 70), 0.001)
	require.Equal(t, 0.0, BMI(0, 70))
	require.Equal(t, 0.0, BMI(170, 0))
	require.Equal(t, 0.0, BMI(-170, -70))
}

func TestBMIMonotonicity(t *testing.T) {
	// Increasing in weight.
	prev := 0.0
	for w := 40.0; w <= 150; w += 5 {
		bmi := BMI(170, w)
		require.Greater(t, bmi, prev, "weight %.0f", w)
		prev = bmi
	}
	// Decreasing in height.
	prev = BMI(139, 70)
	for h := 140.0; h <= 220; h += 5 {
		bmi := BMI(h, 70)
		require.Less(t, bmi, prev, "height %.0f", h)
		prev = bmi
	}
}

func TestCategoryForBMIPartition(t *testing.T) {
	cases := []struct {
		bmi  float64
		want BMICategory
	}{
		{0, Underweight},
		{18.4, Underweight},
		{18.5, Normal},
		{24.9, Normal},
		{25, Overweight},
		{29.9, Overweight},
		{30, ObeseI},
		{34.9, ObeseI},
		{35, ObeseII},
		{39.9, ObeseII},
		{40, ObeseIII},
		{75, ObeseIII},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, CategoryForBMI(tc.bmi), "bmi %.1f", tc.bmi)
	}
}

func TestBMRMifflinStJeor(t *testing.T) {
	// Male: 10w + 6.25h - 5a + 5
	require.InDelta(t, 10*80+6.25*180-5*25+5, BMR(80, 180, 25, domain.GenderMale), 0.001)
	// Female: 10w + 6.25h - 5a - 161
	require.InDelta(t, 10*70+6.25*170-5*30-161, BMR(70, 170, 30, domain.GenderFemale), 0.001)
	// Safety floor.
	require.Equal(t, 800.0, BMR(20, 100, 100, domain.GenderFemale))
}

func TestActivityFactorTiers(t *testing.T) {
	steps := func(n int) *int { return &n }
	cases := []struct {
		name  string
		steps *int
		freq  domain.ActivityFrequency
		want  float64
	}{
		{"no data defaults sedentary", nil, "", 1.2},
		{"low steps only", steps(3000), domain.ActivityNone, 1.2},
		{"moderate steps", steps(8000), domain.ActivityNone, 1.375},
		{"light training only", nil, domain.ActivityOneTwo, 1.375},
		{"high steps only", steps(10500), domain.ActivityNone, 1.55},
		{"frequent training only", steps(2000), domain.ActivityThreePlus, 1.55},
		{"high steps and frequent training", steps(10500), domain.ActivityThreePlus, 1.725},
		{"very high steps and frequent training", steps(12500), domain.ActivityThreePlus, 1.9},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ActivityFactor(tc.steps, tc.freq))
		})
	}
}

func TestGoalAdjustment(t *testing.T) {
	require.Equal(t, -500, GoalAdjustment(31))
	require.Equal(t, -350, GoalAdjustment(27))
	require.Equal(t, 300, GoalAdjustment(17))
	require.Equal(t, 0, GoalAdjustment(22))
}

func TestRecommendedCaloriesScenario(t *testing.T) {
	// 170 cm / 70 kg female, age unspecified (defaults to 30), no activity
	// data: BMR 1451.5, sedentary TDEE 1741.8, BMI 24.2 so no adjustment.
	got := RecommendedCalories(CalorieInput{
		BMI:      BMI(170, 70),
		WeightKG: 70,
		HeightCM: 170,
		Gender:   domain.GenderFemale,
	})
	require.Equal(t, 1742, got)
}

func TestRecommendedCaloriesBounds(t *testing.T) {
	ages := []*int{nil, intPtr(18), intPtr(45), intPtr(100)}
	weights := []float64{20, 45, 70, 120, 300}
	heights := []float64{0, 140, 170, 220}
	for _, gender := range []domain.Gender{domain.GenderMale, domain.GenderFemale} {
		lo := 1200
		if gender == domain.GenderMale {
			lo = 1500
		}
		for _, age := range ages {
			for _, w := range weights {
				for _, h := range heights {
					got := RecommendedCalories(CalorieInput{
						BMI:      BMI(170, w),
						WeightKG: w,
						HeightCM: h,
						Gender:   gender,
						Age:      age,
					})
					require.GreaterOrEqual(t, got, lo)
					require.LessOrEqual(t, got, 3000)
				}
			}
		}
	}
}

func TestRecommendedCaloriesBackDerivesHeight(t *testing.T) {
	// Missing height is reconstructed from BMI and weight; the result must
	// stay inside the safety clamp either way.
	withHeight := RecommendedCalories(CalorieInput{BMI: 24.2, WeightKG: 70, HeightCM: 170, Gender: domain.GenderFemale})
	withoutHeight := RecommendedCalories(CalorieInput{BMI: 24.2, WeightKG: 70, Gender: domain.GenderFemale})
	require.InDelta(t, withHeight, withoutHeight, 5)
}

func TestMacroSplitSumsToCalories(t *testing.T) {
	for _, goal := range []Goal{GoalLoss, GoalMaintain, GoalGain} {
		for _, calories := range []int{1200, 1742, 2500, 3000} {
			m := MacroSplit(calories, goal)
			total := m.ProteinG*4 + m.FatsG*9 + m.CarbsG*4
			require.InDelta(t, float64(calories), total, 5, "goal %s calories %d", goal, calories)
		}
	}
}

func TestMacroSplitLossFavorsProtein(t *testing.T) {
	loss := MacroSplit(2000, GoalLoss)
	gain := MacroSplit(2000, GoalGain)
	require.Greater(t, loss.ProteinG, gain.ProteinG)
	require.Greater(t, gain.CarbsG, loss.CarbsG)
}

func TestWaterNorm(t *testing.T) {
	require.Equal(t, 2100.0, WaterNormML(70))
	require.Equal(t, 1650.0, WaterNormML(55))
}

func TestActivityCalories(t *testing.T) {
	require.Equal(t, 0.0, ActivityCalories("running", 0, nil))
	require.Equal(t, 0.0, ActivityCalories("running", -10, nil))
	// 60 min running at reference weight burns the catalog rate.
	require.Equal(t, 600.0, ActivityCalories("running", 60, nil))
	// Weight scales linearly.
	w := 105.0
	require.Equal(t, 900.0, ActivityCalories("running", 60, &w))
	// Unknown activity falls back to the flat rate.
	require.Equal(t, 150.0, ActivityCalories("juggling", 30, nil))
}

func intPtr(v int) *int { return &v }
