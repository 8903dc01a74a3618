package session

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	_ "modernc.org/sqlite"
)

// Snapshot is the recoverable state of an active session.
type Snapshot struct {
	StartedAt  time.Time
	ElapsedSec int
	Counts     map[uuid.UUID]int
}

// StateDB persists a best-effort snapshot of the active session to a local
// SQLite file so a session interrupted by a crash or restart can be resumed.
type StateDB struct {
	db *sql.DB
}

// OpenStateDB opens (or creates) the SQLite state database at dir/state.db.
func OpenStateDB(dir string) (*StateDB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating state dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "state.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening state db: %w", err)
	}

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS active_session (
			id         INTEGER PRIMARY KEY CHECK (id = 1),
			started_at INTEGER NOT NULL,
			elapsed_sec INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS active_sets (
			exercise_id TEXT PRIMARY KEY,
			count       INTEGER NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating state tables: %w", err)
		}
	}

	return &StateDB{db: db}, nil
}

// Save replaces the stored snapshot with the given one.
func (s *StateDB) Save(snap Snapshot) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("starting snapshot tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(
		`INSERT OR REPLACE INTO active_session (id, started_at, elapsed_sec) VALUES (1, ?, ?)`,
		snap.StartedAt.Unix(), snap.ElapsedSec,
	); err != nil {
		return fmt.Errorf("saving session snapshot: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM active_sets`); err != nil {
		return fmt.Errorf("clearing snapshot sets: %w", err)
	}
	for id, count := range snap.Counts {
		if _, err := tx.Exec(
			`INSERT INTO active_sets (exercise_id, count) VALUES (?, ?)`,
			id.String(), count,
		); err != nil {
			return fmt.Errorf("saving snapshot set: %w", err)
		}
	}

	return tx.Commit()
}

// Load returns the stored snapshot, or nil when no session was active.
func (s *StateDB) Load() (*Snapshot, error) {
	var startedAt int64
	var elapsed int
	err := s.db.QueryRow(`SELECT started_at, elapsed_sec FROM active_session WHERE id = 1`).
		Scan(&startedAt, &elapsed)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading session snapshot: %w", err)
	}

	snap := &Snapshot{
		StartedAt:  time.Unix(startedAt, 0),
		ElapsedSec: elapsed,
		Counts:     make(map[uuid.UUID]int),
	}

	rows, err := s.db.Query(`SELECT exercise_id, count FROM active_sets`)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot sets: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var idStr string
		var count int
		if err := rows.Scan(&idStr, &count); err != nil {
			return nil, fmt.Errorf("scanning snapshot set: %w", err)
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("parsing snapshot exercise id: %w", err)
		}
		snap.Counts[id] = count
	}
	return snap, rows.Err()
}

// Clear removes any stored snapshot.
func (s *StateDB) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM active_session`); err != nil {
		return fmt.Errorf("clearing session snapshot: %w", err)
	}
	if _, err := s.db.Exec(`DELETE FROM active_sets`); err != nil {
		return fmt.Errorf("clearing snapshot sets: %w", err)
	}
	return nil
}

// Close closes the state database.
func (s *StateDB) Close() error {
	return s.db.Close()
}
