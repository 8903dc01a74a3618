package models

// PersonalRecords are derived bests recomputed on demand from history.
type PersonalRecords struct {
	HeaviestLiftByExercise map[string]float64 `json:"heaviest_lift_by_exercise"`
	MostVolume             float64            `json:"most_volume"`
	LongestSessionMin      int                `json:"longest_session_min"`
	CurrentStreak          int                `json:"current_streak"`
	TotalWorkouts          int                `json:"total_workouts"`
}

// PeriodSummary aggregates sessions inside one rolling window.
type PeriodSummary struct {
	TotalWorkouts    int     `json:"total_workouts"`
	TotalVolume      float64 `json:"total_volume"`
	TotalDurationSec int64   `json:"total_duration_sec"`
	AvgDurationSec   int64   `json:"avg_duration_sec"`
	Label            string  `json:"label"`
}

// SummaryComparison pairs a period with the equal-length window before it.
type SummaryComparison struct {
	Current               PeriodSummary `json:"current"`
	Previous              PeriodSummary `json:"previous"`
	VolumeChangePercent   float64       `json:"volume_change_percent"`
	FrequencyChange       int           `json:"frequency_change"`
	DurationChangePercent float64       `json:"duration_change_percent"`
}

// InsightType categorizes a motivational insight.
type InsightType string

const (
	InsightAchievement   InsightType = "achievement"
	InsightProgress      InsightType = "progress"
	InsightStreak        InsightType = "streak"
	InsightEncouragement InsightType = "encouragement"
)

// Insight is a derived motivational message. Never persisted.
type Insight struct {
	Type    InsightType `json:"type"`
	Title   string      `json:"title"`
	Message string      `json:"message"`
	Emoji   string      `json:"emoji"`
}
