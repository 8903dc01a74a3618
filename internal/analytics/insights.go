package analytics

import (
	"fmt"

	"github.com/claude/liftlog/internal/models"
)

// maxInsights caps how many insights are surfaced at once.
const maxInsights = 3

// Thresholds for the insight rules.
const (
	weeklyVolumeGainPct  = 10.0
	monthlyVolumeGainPct = 20.0
)

// workoutMilestones maps exact total-workout counts to achievements. Only an
// exact hit fires; 11 workouts produce nothing from this rule.
var workoutMilestones = map[int]models.Insight{
	1: {
		Type:    models.InsightAchievement,
		Title:   "First Workout! 🎉",
		Message: "You've started your fitness journey. Every champion starts somewhere!",
		Emoji:   "🎉",
	},
	10: {
		Type:    models.InsightAchievement,
		Title:   "10 Workouts Complete!",
		Message: "You're building consistency. Keep it up!",
		Emoji:   "🔥",
	},
	25: {
		Type:    models.InsightAchievement,
		Title:   "25 Workouts Milestone!",
		Message: "You're crushing it! A quarter century of gains!",
		Emoji:   "💪",
	},
	50: {
		Type:    models.InsightAchievement,
		Title:   "Half Century!",
		Message: "50 workouts completed! You're unstoppable!",
		Emoji:   "🏆",
	},
	100: {
		Type:    models.InsightAchievement,
		Title:   "100 Workouts! 🎊",
		Message: "Triple digits! You're a fitness legend!",
		Emoji:   "🎊",
	},
}

// Insights evaluates the prioritized rule list against the derived views.
// Each rule contributes at most one insight; the result is capped at
// maxInsights in rule order.
func Insights(sessions []models.WorkoutSession, records models.PersonalRecords, weekly, monthly models.SummaryComparison) []models.Insight {
	var out []models.Insight

	if milestone, ok := workoutMilestones[records.TotalWorkouts]; ok {
		out = append(out, milestone)
	}

	if weekly.VolumeChangePercent > weeklyVolumeGainPct {
		out = append(out, models.Insight{
			Type:    models.InsightProgress,
			Title:   "Volume Surge!",
			Message: fmt.Sprintf("You lifted %.0f%% more this week! 💪", weekly.VolumeChangePercent),
			Emoji:   "📈",
		})
	}

	if monthly.VolumeChangePercent > monthlyVolumeGainPct {
		out = append(out, models.Insight{
			Type:    models.InsightProgress,
			Title:   "Monthly Gains!",
			Message: fmt.Sprintf("Your volume is up %.0f%% this month!", monthly.VolumeChangePercent),
			Emoji:   "🚀",
		})
	}

	if insight, ok := streakInsight(records.CurrentStreak); ok {
		out = append(out, insight)
	}

	if weekly.FrequencyChange > 0 {
		plural := ""
		if weekly.FrequencyChange > 1 {
			plural = "s"
		}
		out = append(out, models.Insight{
			Type:    models.InsightEncouragement,
			Title:   "More Active!",
			Message: fmt.Sprintf("You worked out %d more time%s this week!", weekly.FrequencyChange, plural),
			Emoji:   "✨",
		})
	}

	if len(sessions) >= 5 && records.CurrentStreak >= 3 {
		out = append(out, models.Insight{
			Type:    models.InsightEncouragement,
			Title:   "Building Habits!",
			Message: "Consistency is key. You're doing great!",
			Emoji:   "⭐",
		})
	}

	if len(out) == 0 && len(sessions) > 0 {
		out = append(out, models.Insight{
			Type:    models.InsightEncouragement,
			Title:   "Keep Going!",
			Message: "Every workout counts. You're making progress!",
			Emoji:   "💪",
		})
	}

	if len(out) > maxInsights {
		out = out[:maxInsights]
	}
	return out
}

// streakInsight returns the longest qualifying streak tier. Tiers are
// mutually exclusive: a 31-day streak yields only the month insight.
func streakInsight(streak int) (models.Insight, bool) {
	switch {
	case streak >= 30:
		return models.Insight{
			Type:    models.InsightStreak,
			Title:   "Month Streak! 🏆",
			Message: fmt.Sprintf("%d days! You're a machine!", streak),
			Emoji:   "🏆",
		}, true
	case streak >= 14:
		return models.Insight{
			Type:    models.InsightStreak,
			Title:   "Two Week Streak!",
			Message: fmt.Sprintf("%d days straight! Unstoppable!", streak),
			Emoji:   "⚡",
		}, true
	case streak >= 7:
		return models.Insight{
			Type:    models.InsightStreak,
			Title:   "Week Streak! 🔥",
			Message: fmt.Sprintf("%d days in a row! You're on fire!", streak),
			Emoji:   "🔥",
		}, true
	default:
		return models.Insight{}, false
	}
}
