package questionnaire

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bezzego/healthy-bot-AI/internal/domain"
)

// defaultAnswer produces a benign raw answer for any question.
func defaultAnswer(q Question) string {
	switch q.Kind {
	case KindNumber:
		switch q.Key {
		case KeyHeight:
			return "170"
		case KeyWeight:
			return "70"
		case KeyAverageSteps:
			return "8000"
		}
		return "90"
	case KindScale:
		return "4"
	case KindYesNo:
		return "no"
	case KindChoice:
		return q.Options[0].Value
	}
	return ""
}

// runFlow answers every presented question, applying overrides by key, and
// returns the session plus the ordered list of keys that were presented.
func runFlow(t *testing.T, gender domain.Gender, overrides map[Key]string) (*Session, []Key) {
	t.Helper()
	s := NewSession(domain.QuestionnairePrimary)
	q := s.Start()
	var seen []Key
	for i := 0; i < len(Flow)+1; i++ {
		seen = append(seen, q.Key)
		raw := defaultAnswer(q)
		if q.Key == KeyGender {
			raw = string(gender)
		}
		if v, ok := overrides[q.Key]; ok {
			raw = v
		}
		next, more, err := s.Answer(q.Key, raw, false)
		require.NoError(t, err, "answering %s", q.Key)
		if !more {
			return s, seen
		}
		q = next
	}
	t.Fatal("flow did not terminate")
	return nil, nil
}

func TestFlowMaleSkipsFemaleQuestions(t *testing.T) {
	s, seen := runFlow(t, domain.GenderMale, nil)
	require.Equal(t, StateCompleted, s.State())
	require.NotContains(t, seen, KeyMenstrualCycle)
	require.NotContains(t, seen, KeyVaginalItch)
	// Auto-skips are still recorded as null answers.
	r, err := s.Result()
	require.NoError(t, err)
	require.Empty(t, string(r.MenstrualCycle))
	require.False(t, r.VaginalItch)
}

func TestFlowFemaleSeesFemaleQuestionsOnce(t *testing.T) {
	_, seen := runFlow(t, domain.GenderFemale, nil)
	count := func(key Key) int {
		n := 0
		for _, k := range seen {
			if k == key {
				n++
			}
		}
		return n
	}
	require.Equal(t, 1, count(KeyMenstrualCycle))
	require.Equal(t, 1, count(KeyVaginalItch))
	require.Len(t, seen, len(Flow))
}

func TestFlowRejectsStaleAnswer(t *testing.T) {
	s := NewSession(domain.QuestionnairePrimary)
	q := s.Start()
	require.Equal(t, KeyGender, q.Key)

	_, _, err := s.Answer(KeyWeight, "70", false)
	require.ErrorIs(t, err, ErrStaleAnswer)

	// The active question is unchanged.
	current, ok := s.Current()
	require.True(t, ok)
	require.Equal(t, KeyGender, current.Key)
}

func TestFlowValidationKeepsState(t *testing.T) {
	s := NewSession(domain.QuestionnairePrimary)
	s.Start()
	_, _, err := s.Answer(KeyGender, string(domain.GenderFemale), false)
	require.NoError(t, err)

	for _, raw := range []string{"abc", "99", "251", ""} {
		_, _, err := s.Answer(KeyHeight, raw, false)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "raw %q", raw)
		current, ok := s.Current()
		require.True(t, ok)
		require.Equal(t, KeyHeight, current.Key)
	}

	next, more, err := s.Answer(KeyHeight, "165,5", false)
	require.NoError(t, err)
	require.True(t, more)
	require.Equal(t, KeyWeight, next.Key)
}

func TestFlowSkipRules(t *testing.T) {
	s := NewSession(domain.QuestionnairePrimary)
	s.Start()

	_, _, err := s.Answer(KeyGender, "", true)
	require.ErrorIs(t, err, ErrSkipNotAllowed)

	_, _, err = s.Answer(KeyGender, string(domain.GenderMale), false)
	require.NoError(t, err)
	_, _, err = s.Answer(KeyHeight, "180", false)
	require.NoError(t, err)
	_, _, err = s.Answer(KeyWeight, "80", false)
	require.NoError(t, err)

	next, more, err := s.Answer(KeyChestCircumference, "", true)
	require.NoError(t, err)
	require.True(t, more)
	require.Equal(t, KeyWaistCircumference, next.Key)
}

func TestFlowAnswerOutsideProgress(t *testing.T) {
	s := NewSession(domain.QuestionnairePrimary)
	_, _, err := s.Answer(KeyGender, string(domain.GenderMale), false)
	require.ErrorIs(t, err, ErrNotInProgress)

	_, err = s.Result()
	require.ErrorIs(t, err, ErrNotInProgress)
}

func TestFlowResultMetrics(t *testing.T) {
	s, _ := runFlow(t, domain.GenderFemale, map[Key]string{
		KeyHeight: "170",
		KeyWeight: "70",
	})
	r, err := s.Result()
	require.NoError(t, err)

	require.InDelta(t, 24.2, r.BMI, 0.001)
	require.Equal(t, 1742, r.RecommendedCalories)
	require.InDelta(t, 2.1, r.RecommendedWater, 0.001)
	require.Greater(t, r.HealthScore, 0.0)
	require.Greater(t, r.GeneralScore, 0.0)

	// Recomputing from the same answers is stable.
	again, err := s.Result()
	require.NoError(t, err)
	require.Equal(t, r.HealthScore, again.HealthScore)
	require.Equal(t, r.RecommendedCalories, again.RecommendedCalories)
}

func TestZonesGIMerge(t *testing.T) {
	r := &domain.QuestionnaireResult{
		EnergyLevel: 4, StressLevel: 4, SleepQuality: 4,
		StoolFrequency: domain.StoolDaily,
		StoolCharacter: domain.StoolCharNormal,
		AbdominalCramps: true,
		Gas:             true,
	}
	zones := Zones(r)
	require.Len(t, zones, 1)
	require.Contains(t, zones[0], "abdominal pain or cramps")
	require.Contains(t, zones[0], "excessive gas")
}

func TestZonesStoolRules(t *testing.T) {
	r := &domain.QuestionnaireResult{
		EnergyLevel: 4, StressLevel: 4, SleepQuality: 4,
		StoolFrequency: domain.StoolEveryThreeFive,
		StoolCharacter: domain.StoolCharHard,
	}
	zones := Zones(r)
	require.Contains(t, zones, "Infrequent stool")
	require.Contains(t, zones, "Changed stool consistency (hard)")

	r.StoolFrequency = domain.StoolTwoThreePerDay
	require.Contains(t, Zones(r), "Frequent stool")

	r.StoolFrequency = domain.StoolDaily
	r.StoolCharacter = domain.StoolCharNormal
	require.NotContains(t, Zones(r), "Infrequent stool")
	require.NotContains(t, Zones(r), "Frequent stool")
}

func TestZonesFemaleGating(t *testing.T) {
	r := &domain.QuestionnaireResult{
		EnergyLevel: 4, StressLevel: 4, SleepQuality: 4,
		StoolFrequency: domain.StoolDaily,
		StoolCharacter: domain.StoolCharNormal,
		VaginalItch:    true,
		MenstrualCycle: domain.CycleIrregular,
	}

	r.Gender = domain.GenderMale
	require.Empty(t, Zones(r))

	r.Gender = domain.GenderFemale
	zones := Zones(r)
	require.Contains(t, zones, "Vaginal itching")
	require.Contains(t, zones, "Irregular menstrual cycle")
}

func TestFormatZonesSpecialistSuffix(t *testing.T) {
	few := []string{"a", "b", "c", "d", "e"}
	require.NotContains(t, FormatZones(few), "specialist")

	many := append(few, "f")
	out := FormatZones(many)
	require.Contains(t, out, "specialist")
	require.Equal(t, 6, strings.Count(out, "• "))

	require.Equal(t, "No particular attention zones were found", FormatZones(nil))
}

func TestCanRetestCooldown(t *testing.T) {
	now := time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)

	allowed, left := CanRetest(now, now.Add(-31*24*time.Hour), nil)
	require.True(t, allowed)
	require.Zero(t, left)

	// Exactly 30 days is permitted.
	allowed, _ = CanRetest(now, now.Add(-30*24*time.Hour), nil)
	require.True(t, allowed)

	allowed, left = CanRetest(now, now.Add(-29*24*time.Hour), nil)
	require.False(t, allowed)
	require.Equal(t, 1, left)

	allowed, left = CanRetest(now, now.Add(-24*time.Hour), nil)
	require.False(t, allowed)
	require.Equal(t, 29, left)
}

func TestCanRetestCountsFromLastRetest(t *testing.T) {
	now := time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)
	primary := now.Add(-90 * 24 * time.Hour)
	lastRetest := now.Add(-10 * 24 * time.Hour)

	allowed, left := CanRetest(now, primary, &lastRetest)
	require.False(t, allowed)
	require.Equal(t, 20, left)

	old := now.Add(-45 * 24 * time.Hour)
	allowed, _ = CanRetest(now, primary, &old)
	require.True(t, allowed)
}

func TestFormatComparisonMarkers(t *testing.T) {
	out := FormatComparison([]Comparison{
		{Label: "Weight, kg", Before: 80, After: 76},
		{Label: "Health score", Before: 6.5, After: 7.5},
		{Label: "BMI", Before: 24.2, After: 24.2},
	})
	require.Contains(t, out, "80.0 ↓ 76.0")
	require.Contains(t, out, "6.5 ↑ 7.5")
	require.Contains(t, out, "24.2 → 24.2")
}
