package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/claude/liftlog/internal/models"
)

// SaveSession inserts a completed session record and returns its ID.
func (db *DB) SaveSession(ctx context.Context, s models.WorkoutSession) (uuid.UUID, error) {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO workout_sessions
		 (id, completed_at, duration_sec, total_weight_kg, total_volume, calories_burned, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID, s.CompletedAt, s.DurationSec, s.TotalWeightKg, s.TotalVolume, s.CaloriesBurned, s.Notes)
	if err != nil {
		return uuid.Nil, fmt.Errorf("inserting session: %w", err)
	}
	return s.ID, nil
}

// ListSessions returns the full session history, most recent first.
func (db *DB) ListSessions(ctx context.Context) ([]models.WorkoutSession, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, completed_at, duration_sec, total_weight_kg, total_volume, calories_burned, notes
		 FROM workout_sessions
		 ORDER BY completed_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var result []models.WorkoutSession
	for rows.Next() {
		var s models.WorkoutSession
		if err := rows.Scan(&s.ID, &s.CompletedAt, &s.DurationSec,
			&s.TotalWeightKg, &s.TotalVolume, &s.CaloriesBurned, &s.Notes); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// DeleteSession removes a session; its breakdown rows cascade.
func (db *DB) DeleteSession(ctx context.Context, id uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM workout_sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("deleting session: %s not found", id)
	}
	return nil
}

// SaveSessionExercises batch-inserts a session's breakdown rows.
func (db *DB) SaveSessionExercises(ctx context.Context, entries []models.SessionExercise) error {
	if len(entries) == 0 {
		return nil
	}

	query := `INSERT INTO session_exercises
		(id, session_id, exercise_name, weight_kg, sets, reps, volume, sort_order) VALUES `
	args := make([]any, 0, len(entries)*8)
	valueStrings := make([]string, 0, len(entries))

	for i, e := range entries {
		base := i * 8
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8,
		))
		args = append(args, e.ID, e.SessionID, e.ExerciseName, e.WeightKg,
			e.Sets, e.Reps, e.Volume, e.SortOrder)
	}

	query += strings.Join(valueStrings, ",")

	if _, err := db.Pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting session exercises: %w", err)
	}
	return nil
}

// ListSessionExercises returns one session's breakdown in display order.
func (db *DB) ListSessionExercises(ctx context.Context, sessionID uuid.UUID) ([]models.SessionExercise, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, session_id, exercise_name, weight_kg, sets, reps, volume, sort_order
		 FROM session_exercises
		 WHERE session_id = $1
		 ORDER BY sort_order`,
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying session exercises: %w", err)
	}
	defer rows.Close()

	return scanSessionExercises(rows)
}

// ListAllSessionExercises returns every breakdown row; used for derived
// per-exercise records.
func (db *DB) ListAllSessionExercises(ctx context.Context) ([]models.SessionExercise, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, session_id, exercise_name, weight_kg, sets, reps, volume, sort_order
		 FROM session_exercises`)
	if err != nil {
		return nil, fmt.Errorf("querying session exercises: %w", err)
	}
	defer rows.Close()

	return scanSessionExercises(rows)
}

// ExerciseHistory returns all breakdown rows for one exercise name, most
// recent session first.
func (db *DB) ExerciseHistory(ctx context.Context, name string) ([]models.SessionExercise, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT se.id, se.session_id, se.exercise_name, se.weight_kg, se.sets, se.reps, se.volume, se.sort_order
		 FROM session_exercises se
		 JOIN workout_sessions ws ON ws.id = se.session_id
		 WHERE se.exercise_name = $1
		 ORDER BY ws.completed_at DESC`,
		name)
	if err != nil {
		return nil, fmt.Errorf("querying exercise history: %w", err)
	}
	defer rows.Close()

	return scanSessionExercises(rows)
}

// ExerciseNames returns the distinct exercise names appearing in history.
func (db *DB) ExerciseNames(ctx context.Context) ([]string, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT DISTINCT exercise_name FROM session_exercises ORDER BY exercise_name`)
	if err != nil {
		return nil, fmt.Errorf("querying exercise names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning exercise name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func scanSessionExercises(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]models.SessionExercise, error) {
	var result []models.SessionExercise
	for rows.Next() {
		var e models.SessionExercise
		if err := rows.Scan(&e.ID, &e.SessionID, &e.ExerciseName, &e.WeightKg,
			&e.Sets, &e.Reps, &e.Volume, &e.SortOrder); err != nil {
			return nil, fmt.Errorf("scanning session exercise: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}
