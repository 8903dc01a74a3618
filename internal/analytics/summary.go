package analytics

import (
	"time"

	"github.com/claude/liftlog/internal/models"
)

// Summarize aggregates a period's sessions. An empty period yields a
// zero-filled summary carrying the label.
func Summarize(sessions []models.WorkoutSession, label string) models.PeriodSummary {
	if len(sessions) == 0 {
		return models.PeriodSummary{Label: label}
	}

	var volume float64
	var duration int64
	for _, s := range sessions {
		volume += s.TotalVolume
		duration += int64(s.DurationSec)
	}

	return models.PeriodSummary{
		TotalWorkouts:    len(sessions),
		TotalVolume:      volume,
		TotalDurationSec: duration,
		AvgDurationSec:   duration / int64(len(sessions)),
		Label:            label,
	}
}

// Compare pairs a period with its predecessor. Percentage deltas follow the
// zero rules: both zero ⇒ 0%, previous zero but current nonzero ⇒ +100%.
func Compare(current, previous models.PeriodSummary) models.SummaryComparison {
	return models.SummaryComparison{
		Current:               current,
		Previous:              previous,
		VolumeChangePercent:   changePercent(current.TotalVolume, previous.TotalVolume),
		FrequencyChange:       current.TotalWorkouts - previous.TotalWorkouts,
		DurationChangePercent: changePercent(float64(current.AvgDurationSec), float64(previous.AvgDurationSec)),
	}
}

// WeeklyComparison compares the rolling last 7 days against the 7 days
// before that.
func WeeklyComparison(sessions []models.WorkoutSession, now time.Time) models.SummaryComparison {
	return rollingComparison(sessions, now, 7, "This Week", "Last Week")
}

// MonthlyComparison compares the rolling last 30 days against the 30 days
// before that.
func MonthlyComparison(sessions []models.WorkoutSession, now time.Time) models.SummaryComparison {
	return rollingComparison(sessions, now, 30, "This Month", "Last Month")
}

func rollingComparison(sessions []models.WorkoutSession, now time.Time, days int, currentLabel, previousLabel string) models.SummaryComparison {
	currentStart := now.AddDate(0, 0, -days)
	previousStart := currentStart.AddDate(0, 0, -days)

	var current, previous []models.WorkoutSession
	for _, s := range sessions {
		switch {
		case !s.CompletedAt.Before(currentStart):
			current = append(current, s)
		case !s.CompletedAt.Before(previousStart):
			previous = append(previous, s)
		}
	}

	return Compare(Summarize(current, currentLabel), Summarize(previous, previousLabel))
}

func changePercent(current, previous float64) float64 {
	switch {
	case previous > 0:
		return (current - previous) / previous * 100
	case current > 0:
		return 100
	default:
		return 0
	}
}
