package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/claude/liftlog/internal/models"
)

// defaultExercises seeds a fresh database so the first session can start
// without setup. 20 kg matches an empty barbell.
var defaultExercises = []string{
	"Bench Press", "Squat", "Deadlift", "Overhead Press",
	"Barbell Row", "Pull Up", "Dips", "Bicep Curl",
	"Tricep Extension", "Lateral Raise", "Calf Raise",
}

// ListExercises returns all exercises that are not soft-deleted.
func (db *DB) ListExercises(ctx context.Context) ([]models.Exercise, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, name, weight_kg, reps, target_sets
		 FROM exercises
		 WHERE is_deleted = FALSE
		 ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	var result []models.Exercise
	for rows.Next() {
		var e models.Exercise
		if err := rows.Scan(&e.ID, &e.Name, &e.WeightKg, &e.Reps, &e.TargetSets); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

// InsertExercise inserts an exercise definition.
func (db *DB) InsertExercise(ctx context.Context, e models.Exercise) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO exercises (id, name, weight_kg, reps, target_sets)
		 VALUES ($1, $2, $3, $4, $5)`,
		e.ID, e.Name, e.WeightKg, e.Reps, e.TargetSets)
	if err != nil {
		return fmt.Errorf("inserting exercise: %w", err)
	}
	return nil
}

// UpdateExercise updates name, weight, reps and target sets.
func (db *DB) UpdateExercise(ctx context.Context, e models.Exercise) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE exercises SET name = $2, weight_kg = $3, reps = $4, target_sets = $5
		 WHERE id = $1 AND is_deleted = FALSE`,
		e.ID, e.Name, e.WeightKg, e.Reps, e.TargetSets)
	if err != nil {
		return fmt.Errorf("updating exercise: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("updating exercise: %s not found", e.ID)
	}
	return nil
}

// DeleteExercise soft-deletes an exercise. History keeps resolving names
// from breakdown records, which are captured by value.
func (db *DB) DeleteExercise(ctx context.Context, id uuid.UUID) error {
	_, err := db.Pool.Exec(ctx,
		`UPDATE exercises SET is_deleted = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting exercise: %w", err)
	}
	return nil
}

// SeedDefaultExercises inserts the default exercise list when the table has
// no live rows. Idempotent across restarts.
func (db *DB) SeedDefaultExercises(ctx context.Context) (int, error) {
	var count int
	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM exercises WHERE is_deleted = FALSE`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting exercises: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	for _, name := range defaultExercises {
		e := models.Exercise{ID: uuid.New(), Name: name, WeightKg: 20, Reps: 13, TargetSets: 4}
		if err := db.InsertExercise(ctx, e); err != nil {
			return 0, fmt.Errorf("seeding %q: %w", name, err)
		}
	}
	return len(defaultExercises), nil
}
