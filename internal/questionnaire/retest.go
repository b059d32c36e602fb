package questionnaire

import (
	"fmt"
	"strings"
	"time"

	"github.com/bezzego/healthy-bot-AI/internal/domain"
)

// retestCooldown is the minimum gap between a completed questionnaire and the
// next retest.
const retestCooldown = 30 * 24 * time.Hour

// CanRetest reports whether a retest may start now. The cooldown counts from
// the most recent completed questionnaire of either type; exactly 30 days is
// allowed. When blocked, daysLeft carries the whole days remaining, rounded
// up, never less than 1.
func CanRetest(now, primaryAt time.Time, lastRetestAt *time.Time) (allowed bool, daysLeft int) {
	last := primaryAt
	if lastRetestAt != nil && lastRetestAt.After(last) {
		last = *lastRetestAt
	}
	elapsed := now.Sub(last)
	if elapsed >= retestCooldown {
		return true, 0
	}
	remaining := retestCooldown - elapsed
	days := int((remaining + 24*time.Hour - 1) / (24 * time.Hour))
	if days < 1 {
		days = 1
	}
	return false, days
}

// Comparison is one metric delta between the baseline and the retest.
type Comparison struct {
	Label  string
	Before float64
	After  float64
}

// Compare builds the metric deltas shown after a retest completes.
func Compare(primary, retest *domain.QuestionnaireResult) []Comparison {
	return []Comparison{
		{Label: "Weight, kg", Before: primary.Weight, After: retest.Weight},
		{Label: "BMI", Before: primary.BMI, After: retest.BMI},
		{Label: "Health score", Before: primary.HealthScore, After: retest.HealthScore},
		{Label: "Overall score", Before: primary.GeneralScore, After: retest.GeneralScore},
	}
}

// FormatComparison renders the retest deltas with a direction marker per row.
func FormatComparison(rows []Comparison) string {
	var b strings.Builder
	b.WriteString("Progress since your previous questionnaire\n\n")
	for _, row := range rows {
		marker := "→"
		switch {
		case row.After > row.Before:
			marker = "↑"
		case row.After < row.Before:
			marker = "↓"
		}
		fmt.Fprintf(&b, "%s: %.1f %s %.1f\n", row.Label, row.Before, marker, row.After)
	}
	return strings.TrimRight(b.String(), "\n")
}
