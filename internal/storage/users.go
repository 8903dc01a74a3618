package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/claude/liftlog/internal/models"
)

// ActiveUserMetrics returns the active body-metrics profile, or nil when no
// profile is active. The caller supplies the documented fallback.
func (db *DB) ActiveUserMetrics(ctx context.Context) (*models.UserMetrics, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT id, name, weight_kg, height_cm, age, is_active
		 FROM user_metrics
		 WHERE is_active = TRUE
		 LIMIT 1`)

	var m models.UserMetrics
	err := row.Scan(&m.ID, &m.Name, &m.WeightKg, &m.HeightCm, &m.Age, &m.IsActive)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying active profile: %w", err)
	}
	return &m, nil
}

// ListUserMetrics returns all profiles, newest first.
func (db *DB) ListUserMetrics(ctx context.Context) ([]models.UserMetrics, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, name, weight_kg, height_cm, age, is_active
		 FROM user_metrics
		 ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying profiles: %w", err)
	}
	defer rows.Close()

	var result []models.UserMetrics
	for rows.Next() {
		var m models.UserMetrics
		if err := rows.Scan(&m.ID, &m.Name, &m.WeightKg, &m.HeightCm, &m.Age, &m.IsActive); err != nil {
			return nil, fmt.Errorf("scanning profile: %w", err)
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

// SaveUserMetrics inserts a profile and makes it the single active one.
func (db *DB) SaveUserMetrics(ctx context.Context, m models.UserMetrics) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("starting profile tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE user_metrics SET is_active = FALSE`); err != nil {
		return fmt.Errorf("deactivating profiles: %w", err)
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO user_metrics (id, name, weight_kg, height_cm, age, is_active)
		 VALUES ($1, $2, $3, $4, $5, TRUE)`,
		m.ID, m.Name, m.WeightKg, m.HeightCm, m.Age); err != nil {
		return fmt.Errorf("inserting profile: %w", err)
	}
	return tx.Commit(ctx)
}

// SetActiveProfile switches the active profile.
func (db *DB) SetActiveProfile(ctx context.Context, id uuid.UUID) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("starting profile tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE user_metrics SET is_active = FALSE`); err != nil {
		return fmt.Errorf("deactivating profiles: %w", err)
	}
	tag, err := tx.Exec(ctx,
		`UPDATE user_metrics SET is_active = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("activating profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("activating profile: %s not found", id)
	}
	return tx.Commit(ctx)
}

// DeleteUserMetrics removes a profile.
func (db *DB) DeleteUserMetrics(ctx context.Context, id uuid.UUID) error {
	if _, err := db.Pool.Exec(ctx, `DELETE FROM user_metrics WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting profile: %w", err)
	}
	return nil
}
