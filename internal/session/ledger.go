// Package session tracks the live workout session: which sets are done per
// exercise, the rest/switch countdown, the elapsed-time counter, and the
// completion bookkeeping that turns the session into persisted records.
package session

import "github.com/google/uuid"

// Ledger maps exercise IDs to completed-set counts for the active session.
// It exists only for the session's lifetime and is never persisted as-is.
// Pure state transitions, no I/O; the engine is the only writer.
type Ledger struct {
	counts map[uuid.UUID]int
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{counts: make(map[uuid.UUID]int)}
}

// Complete records one finished set for the exercise, bounded by targetSets.
// It returns the resulting count, whether this increment reached the target,
// and whether anything changed. An exercise already at its target is left
// untouched (changed == false).
func (l *Ledger) Complete(exerciseID uuid.UUID, targetSets int) (count int, reachedTarget, changed bool) {
	count = l.counts[exerciseID]
	if count >= targetSets {
		return count, false, false
	}
	count++
	l.counts[exerciseID] = count
	return count, count == targetSets, true
}

// Undo removes one completed set. A zero count stays at zero.
func (l *Ledger) Undo(exerciseID uuid.UUID) int {
	count := l.counts[exerciseID]
	if count == 0 {
		return 0
	}
	count--
	l.counts[exerciseID] = count
	return count
}

// Count returns the completed-set count for the exercise.
func (l *Ledger) Count(exerciseID uuid.UUID) int {
	return l.counts[exerciseID]
}

// Counts returns a copy of all nonzero entries.
func (l *Ledger) Counts() map[uuid.UUID]int {
	out := make(map[uuid.UUID]int, len(l.counts))
	for id, n := range l.counts {
		if n > 0 {
			out[id] = n
		}
	}
	return out
}

// Reset clears every entry. Called at session start and after completion.
func (l *Ledger) Reset() {
	l.counts = make(map[uuid.UUID]int)
}
