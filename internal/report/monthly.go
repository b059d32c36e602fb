package report

import (
	"fmt"
	"strings"

	"github.com/bezzego/healthy-bot-AI/internal/domain"
)

// EnergyTrend compares the first and last week of the month.
type EnergyTrend string

const (
	TrendImproving EnergyTrend = "improving"
	TrendDeclining EnergyTrend = "declining"
	TrendStable    EnergyTrend = "stable"
)

// trendThreshold is the minimum average-energy difference between the first
// and last week to call the month a trend rather than noise.
const trendThreshold = 0.5

// MonthlyStats is the aggregate over one calendar month of daily records plus
// the month-boundary measurements when available.
type MonthlyStats struct {
	DaysTracked int

	EnergyDays int
	AvgEnergy  float64
	Trend      EnergyTrend

	TopMood    domain.Mood
	HasTopMood bool

	// StoolStablePct is normal days over answered days, 0-100.
	StoolDays      int
	StoolStablePct float64

	ActivityDays int
	AvgSteps     float64

	// Deltas are current minus previous; nil when either side is missing.
	WeightDelta *float64
	WaistDelta  *float64
	HipsDelta   *float64
	ChestDelta  *float64
}

// BuildMonthly aggregates the month's records. Records must be ordered by
// date. Measurements may be nil.
func BuildMonthly(records []domain.DailyRecord, current, previous *domain.MonthlyMeasurement) MonthlyStats {
	stats := MonthlyStats{Trend: TrendStable}

	var energySum float64
	var firstWeekSum, lastWeekSum float64
	var firstWeekDays, lastWeekDays int
	var stoolNormal int
	var stepSum float64
	var stepDays int

	weekly := BuildWeekly(records) // reuse the mood counting
	stats.TopMood, stats.HasTopMood = weekly.TopMood()

	for i, rec := range records {
		stats.DaysTracked++

		if rec.MorningEnergy != nil {
			v := float64(*rec.MorningEnergy)
			stats.EnergyDays++
			energySum += v
			if i < 7 {
				firstWeekDays++
				firstWeekSum += v
			}
			if i >= len(records)-7 {
				lastWeekDays++
				lastWeekSum += v
			}
		}
		if rec.EveningStool != nil {
			stats.StoolDays++
			if *rec.EveningStool == domain.EveningStoolNormal {
				stoolNormal++
			}
		}
		if rec.PhysicalActivity != nil && *rec.PhysicalActivity {
			stats.ActivityDays++
		}
		if rec.DailySteps != nil {
			stepDays++
			stepSum += float64(*rec.DailySteps)
		}
	}

	if stats.EnergyDays > 0 {
		stats.AvgEnergy = energySum / float64(stats.EnergyDays)
	}
	if firstWeekDays > 0 && lastWeekDays > 0 {
		diff := lastWeekSum/float64(lastWeekDays) - firstWeekSum/float64(firstWeekDays)
		switch {
		case diff >= trendThreshold:
			stats.Trend = TrendImproving
		case diff <= -trendThreshold:
			stats.Trend = TrendDeclining
		}
	}
	if stats.StoolDays > 0 {
		stats.StoolStablePct = float64(stoolNormal) / float64(stats.StoolDays) * 100
	}
	if stepDays > 0 {
		stats.AvgSteps = stepSum / float64(stepDays)
	}

	stats.WeightDelta = delta(measure(current, func(m *domain.MonthlyMeasurement) *float64 { return m.Weight }), measure(previous, func(m *domain.MonthlyMeasurement) *float64 { return m.Weight }))
	stats.WaistDelta = delta(measure(current, func(m *domain.MonthlyMeasurement) *float64 { return m.WaistCircumference }), measure(previous, func(m *domain.MonthlyMeasurement) *float64 { return m.WaistCircumference }))
	stats.HipsDelta = delta(measure(current, func(m *domain.MonthlyMeasurement) *float64 { return m.HipsCircumference }), measure(previous, func(m *domain.MonthlyMeasurement) *float64 { return m.HipsCircumference }))
	stats.ChestDelta = delta(measure(current, func(m *domain.MonthlyMeasurement) *float64 { return m.ChestCircumference }), measure(previous, func(m *domain.MonthlyMeasurement) *float64 { return m.ChestCircumference }))

	return stats
}

func measure(m *domain.MonthlyMeasurement, field func(*domain.MonthlyMeasurement) *float64) *float64 {
	if m == nil {
		return nil
	}
	return field(m)
}

func delta(current, previous *float64) *float64 {
	if current == nil || previous == nil {
		return nil
	}
	d := *current - *previous
	return &d
}

// FormatMonthly renders the monthly summary message.
func FormatMonthly(s MonthlyStats) string {
	if s.DaysTracked == 0 {
		return "Monthly summary\n\nNo data was recorded this month."
	}

	var b strings.Builder
	b.WriteString("Monthly summary\n")
	fmt.Fprintf(&b, "\nDays tracked: %d\n", s.DaysTracked)

	if s.EnergyDays > 0 {
		fmt.Fprintf(&b, "Average energy: %.1f out of 5", s.AvgEnergy)
		switch s.Trend {
		case TrendImproving:
			b.WriteString(", trending up over the month")
		case TrendDeclining:
			b.WriteString(", trending down over the month")
		}
		b.WriteString("\n")
	}
	if s.HasTopMood {
		fmt.Fprintf(&b, "Most common mood: %s\n", moodLabels[s.TopMood])
	}
	if s.StoolDays > 0 {
		if s.StoolStablePct > 70 {
			fmt.Fprintf(&b, "Digestion: stable (%0.f%% of answered days normal)\n", s.StoolStablePct)
		} else {
			fmt.Fprintf(&b, "Digestion: unstable, normal on only %0.f%% of answered days\n", s.StoolStablePct)
		}
	}
	if s.ActivityDays > 0 {
		fmt.Fprintf(&b, "Workout days: %d\n", s.ActivityDays)
	}
	if s.AvgSteps > 0 {
		fmt.Fprintf(&b, "Average steps: %d\n", int(s.AvgSteps))
	}

	deltas := formatDeltas(s)
	if len(deltas) > 0 {
		b.WriteString("\nMeasurements vs last month:\n")
		for _, line := range deltas {
			fmt.Fprintf(&b, "• %s\n", line)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatDeltas(s MonthlyStats) []string {
	var lines []string
	add := func(label, unit string, d *float64) {
		if d == nil {
			return
		}
		lines = append(lines, fmt.Sprintf("%s: %+.1f %s", label, *d, unit))
	}
	add("Weight", "kg", s.WeightDelta)
	add("Waist", "cm", s.WaistDelta)
	add("Hips", "cm", s.HipsDelta)
	add("Chest", "cm", s.ChestDelta)
	return lines
}
