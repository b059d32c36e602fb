// Package report builds the weekly and monthly summaries sent by the
// scheduler and available on demand. Aggregation is pure over daily records;
// the service layer fetches the inputs.
package report

import (
	"fmt"
	"strings"

	"github.com/bezzego/healthy-bot-AI/internal/domain"
)

// WeeklyStats is the aggregate over the trailing seven days.
type WeeklyStats struct {
	DaysTracked int

	GoodSleepDays int // slept_well or woke_once
	PoorSleepDays int // insomnia or woke_twice_plus

	EnergyDays int
	AvgEnergy  float64

	MoodCounts map[domain.Mood]int

	NormalStoolDays int
	StoolIssueDays  int

	StepDays int
	AvgSteps float64

	ActivityDays int

	AvgCalories float64
	AvgWaterML  float64
}

// goodSleep classifies the morning sleep answer into the positive bucket.
var goodSleep = map[domain.SleepRating]bool{
	domain.SleepGood:     true,
	domain.SleepWokeOnce: true,
}

// BuildWeekly aggregates the given records. Days without any check-in still
// count toward DaysTracked when a record exists but contribute nothing to the
// averages.
func BuildWeekly(records []domain.DailyRecord) WeeklyStats {
	stats := WeeklyStats{MoodCounts: make(map[domain.Mood]int)}

	var energySum, stepSum, calorieSum, waterSum float64
	var calorieDays, waterDays int

	for _, rec := range records {
		stats.DaysTracked++

		if rec.MorningSleepQuality != nil {
			if goodSleep[*rec.MorningSleepQuality] {
				stats.GoodSleepDays++
			} else {
				stats.PoorSleepDays++
			}
		}
		if rec.MorningEnergy != nil {
			stats.EnergyDays++
			energySum += float64(*rec.MorningEnergy)
		}
		if rec.EveningMood != nil {
			stats.MoodCounts[*rec.EveningMood]++
		}
		if rec.EveningStool != nil {
			if *rec.EveningStool == domain.EveningStoolNormal {
				stats.NormalStoolDays++
			} else {
				stats.StoolIssueDays++
			}
		}
		if rec.DailySteps != nil {
			stats.StepDays++
			stepSum += float64(*rec.DailySteps)
		}
		if rec.PhysicalActivity != nil && *rec.PhysicalActivity {
			stats.ActivityDays++
		}
		if rec.TotalCalories > 0 {
			calorieDays++
			calorieSum += rec.TotalCalories
		}
		if rec.WaterIntakeML > 0 {
			waterDays++
			waterSum += rec.WaterIntakeML
		}
	}

	if stats.EnergyDays > 0 {
		stats.AvgEnergy = energySum / float64(stats.EnergyDays)
	}
	if stats.StepDays > 0 {
		stats.AvgSteps = stepSum / float64(stats.StepDays)
	}
	if calorieDays > 0 {
		stats.AvgCalories = calorieSum / float64(calorieDays)
	}
	if waterDays > 0 {
		stats.AvgWaterML = waterSum / float64(waterDays)
	}
	return stats
}

// TopMood returns the most frequent evening mood, breaking ties by the more
// positive one, or false when no mood was recorded.
func (s WeeklyStats) TopMood() (domain.Mood, bool) {
	order := []domain.Mood{domain.MoodGreat, domain.MoodGood, domain.MoodCalm, domain.MoodTired, domain.MoodIrritated}
	best, bestCount := domain.Mood(""), 0
	for _, mood := range order {
		if c := s.MoodCounts[mood]; c > bestCount {
			best, bestCount = mood, c
		}
	}
	return best, bestCount > 0
}

var moodLabels = map[domain.Mood]string{
	domain.MoodIrritated: "irritated",
	domain.MoodTired:     "tired",
	domain.MoodCalm:      "calm",
	domain.MoodGood:      "good",
	domain.MoodGreat:     "great",
}

// FormatWeekly renders the weekly summary message. Positive findings come
// first, attention points after.
func FormatWeekly(s WeeklyStats) string {
	if s.DaysTracked == 0 {
		return "Weekly summary\n\nNo data was recorded this week. Try answering the morning and evening check-ins to see your trends here."
	}

	var good, attention []string

	if s.GoodSleepDays >= s.PoorSleepDays && s.GoodSleepDays > 0 {
		good = append(good, fmt.Sprintf("restful sleep on %d of %d days", s.GoodSleepDays, s.GoodSleepDays+s.PoorSleepDays))
	} else if s.PoorSleepDays > 0 {
		attention = append(attention, fmt.Sprintf("poor sleep on %d of %d days", s.PoorSleepDays, s.GoodSleepDays+s.PoorSleepDays))
	}

	if s.EnergyDays > 0 {
		if s.AvgEnergy >= 3.5 {
			good = append(good, fmt.Sprintf("average energy %.1f out of 5", s.AvgEnergy))
		} else {
			attention = append(attention, fmt.Sprintf("average energy only %.1f out of 5", s.AvgEnergy))
		}
	}

	if mood, ok := s.TopMood(); ok {
		line := fmt.Sprintf("most common evening mood: %s", moodLabels[mood])
		if mood == domain.MoodIrritated || mood == domain.MoodTired {
			attention = append(attention, line)
		} else {
			good = append(good, line)
		}
	}

	if s.NormalStoolDays+s.StoolIssueDays > 0 {
		if s.StoolIssueDays > s.NormalStoolDays {
			attention = append(attention, fmt.Sprintf("digestion was off on %d days", s.StoolIssueDays))
		} else {
			good = append(good, "digestion was mostly regular")
		}
	}

	if s.StepDays > 0 {
		good = append(good, fmt.Sprintf("average %d steps per day", int(s.AvgSteps)))
	}
	if s.ActivityDays > 0 {
		good = append(good, fmt.Sprintf("workouts on %d days", s.ActivityDays))
	}
	if s.AvgWaterML > 0 {
		good = append(good, fmt.Sprintf("average water intake %.1f l per day", s.AvgWaterML/1000))
	}

	var b strings.Builder
	b.WriteString("Weekly summary\n")
	fmt.Fprintf(&b, "\nDays tracked: %d of 7\n", s.DaysTracked)
	if len(good) > 0 {
		b.WriteString("\nGoing well:\n")
		for _, line := range good {
			fmt.Fprintf(&b, "• %s\n", line)
		}
	}
	if len(attention) > 0 {
		b.WriteString("\nWorth attention:\n")
		for _, line := range attention {
			fmt.Fprintf(&b, "• %s\n", line)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
