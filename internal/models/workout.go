package models

import (
	"time"

	"github.com/google/uuid"
)

// Exercise is a configurable exercise definition. Deleting an exercise only
// flips IsDeleted so historical breakdowns keep resolving by name.
type Exercise struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	WeightKg   float64   `json:"weight_kg"`
	Reps       int       `json:"reps"`
	TargetSets int       `json:"target_sets"`
	IsDeleted  bool      `json:"-"`
}

// WorkoutSession is one completed workout. Created exactly once at session
// completion and never mutated afterwards, only deleted.
type WorkoutSession struct {
	ID             uuid.UUID `json:"id"`
	CompletedAt    time.Time `json:"completed_at"`
	DurationSec    int       `json:"duration_sec"`
	TotalWeightKg  float64   `json:"total_weight_kg"`
	TotalVolume    float64   `json:"total_volume"`
	CaloriesBurned float64   `json:"calories_burned"`
	Notes          string    `json:"notes,omitempty"`
}

// SessionExercise is one exercise's breakdown inside a session. Name, weight
// and reps are captured by value at completion time so later edits to the
// exercise definition do not rewrite history.
type SessionExercise struct {
	ID           uuid.UUID `json:"id"`
	SessionID    uuid.UUID `json:"session_id"`
	ExerciseName string    `json:"exercise_name"`
	WeightKg     float64   `json:"weight_kg"`
	Sets         int       `json:"sets"`
	Reps         int       `json:"reps"`
	Volume       float64   `json:"volume"`
	SortOrder    int       `json:"sort_order"`
}

// UserMetrics is one body-metrics profile. At most one profile is active at
// a time; the active profile supplies body weight for calorie estimates.
type UserMetrics struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	WeightKg float64   `json:"weight_kg"`
	HeightCm float64   `json:"height_cm"`
	Age      int       `json:"age"`
	IsActive bool      `json:"is_active"`
}

// Settings is the singleton settings row.
type Settings struct {
	SoundsEnabled     bool    `json:"sounds_enabled"`
	SoundVolume       float64 `json:"sound_volume"`
	TimerSound        string  `json:"timer_sound"`
	CelebrationSound  string  `json:"celebration_sound"`
	ThemeMode         string  `json:"theme_mode"`
	RestTimerSec      int     `json:"rest_timer_sec"`
	ExerciseSwitchSec int     `json:"exercise_switch_sec"`
}

// DefaultSettings returns the settings used before the user saves any.
func DefaultSettings() Settings {
	return Settings{
		SoundsEnabled:     true,
		SoundVolume:       1.0,
		TimerSound:        "beep",
		CelebrationSound:  "cheer",
		ThemeMode:         "dark",
		RestTimerSec:      30,
		ExerciseSwitchSec: 90,
	}
}

// RestDay is a planned day off, with an optional note.
type RestDay struct {
	ID   uuid.UUID `json:"id"`
	Date time.Time `json:"date"`
	Note string    `json:"note,omitempty"`
}
