package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/claude/liftlog/internal/models"
)

// GetSettings returns the singleton settings row, or the defaults when the
// user has never saved any.
func (db *DB) GetSettings(ctx context.Context) (models.Settings, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT sounds_enabled, sound_volume, timer_sound, celebration_sound,
		        theme_mode, rest_timer_sec, exercise_switch_sec
		 FROM settings
		 WHERE id = 1`)

	var s models.Settings
	err := row.Scan(&s.SoundsEnabled, &s.SoundVolume, &s.TimerSound,
		&s.CelebrationSound, &s.ThemeMode, &s.RestTimerSec, &s.ExerciseSwitchSec)
	if err == pgx.ErrNoRows {
		return models.DefaultSettings(), nil
	}
	if err != nil {
		return models.Settings{}, fmt.Errorf("querying settings: %w", err)
	}
	return s, nil
}

// SaveSettings upserts the singleton settings row.
func (db *DB) SaveSettings(ctx context.Context, s models.Settings) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO settings
		 (id, sounds_enabled, sound_volume, timer_sound, celebration_sound,
		  theme_mode, rest_timer_sec, exercise_switch_sec)
		 VALUES (1, $1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (id) DO UPDATE SET
		   sounds_enabled = $1, sound_volume = $2, timer_sound = $3,
		   celebration_sound = $4, theme_mode = $5,
		   rest_timer_sec = $6, exercise_switch_sec = $7`,
		s.SoundsEnabled, s.SoundVolume, s.TimerSound, s.CelebrationSound,
		s.ThemeMode, s.RestTimerSec, s.ExerciseSwitchSec)
	if err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	return nil
}
