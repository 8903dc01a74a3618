package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/claude/liftlog/internal/models"
)

// ListRestDays returns all planned rest days, most recent first.
func (db *DB) ListRestDays(ctx context.Context) ([]models.RestDay, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, date, note FROM rest_days ORDER BY date DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying rest days: %w", err)
	}
	defer rows.Close()

	var result []models.RestDay
	for rows.Next() {
		var r models.RestDay
		if err := rows.Scan(&r.ID, &r.Date, &r.Note); err != nil {
			return nil, fmt.Errorf("scanning rest day: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// InsertRestDay records a planned rest day.
func (db *DB) InsertRestDay(ctx context.Context, r models.RestDay) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO rest_days (id, date, note) VALUES ($1, $2, $3)`,
		r.ID, r.Date, r.Note)
	if err != nil {
		return fmt.Errorf("inserting rest day: %w", err)
	}
	return nil
}

// DeleteRestDay removes a planned rest day.
func (db *DB) DeleteRestDay(ctx context.Context, id uuid.UUID) error {
	if _, err := db.Pool.Exec(ctx, `DELETE FROM rest_days WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting rest day: %w", err)
	}
	return nil
}

// RestDayOn returns the rest day covering the given date, or nil.
func (db *DB) RestDayOn(ctx context.Context, date time.Time) (*models.RestDay, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT id, date, note FROM rest_days
		 WHERE date >= $1 AND date < $2
		 LIMIT 1`,
		date.Truncate(24*time.Hour), date.Truncate(24*time.Hour).Add(24*time.Hour))

	var r models.RestDay
	err := row.Scan(&r.ID, &r.Date, &r.Note)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying rest day: %w", err)
	}
	return &r, nil
}
