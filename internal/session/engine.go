package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/timer"
)

// Invalid state transitions per the session contract.
var (
	ErrSessionActive   = errors.New("a session is already active")
	ErrNoActiveSession = errors.New("no active session")
	ErrUnknownExercise = errors.New("unknown exercise")
)

// Store is the persistence the engine depends on. Implemented by
// *storage.DB; tests substitute fakes.
type Store interface {
	ListExercises(ctx context.Context) ([]models.Exercise, error)
	ActiveUserMetrics(ctx context.Context) (*models.UserMetrics, error)
	GetSettings(ctx context.Context) (models.Settings, error)
	SaveSession(ctx context.Context, s models.WorkoutSession) (uuid.UUID, error)
	SaveSessionExercises(ctx context.Context, entries []models.SessionExercise) error
}

// Notifier is the sound/notification sink. Calls are fire-and-forget and
// must never block or fail the engine.
type Notifier interface {
	TimerTick(remaining int)
	TimerFinished()
	SessionCelebration()
}

// defaultBodyWeightKg is the documented fallback for calorie estimates when
// no user profile is active. Not an error condition.
const defaultBodyWeightKg = 70.0

// caloriesPerKgHour is the flat MET-style factor of the calorie model:
// calories = 5.0 × bodyWeightKg × hours.
const caloriesPerKgHour = 5.0

// Engine orchestrates one active workout session end to end: the set ledger,
// the rest/switch countdown, the elapsed-time counter, and completion.
// All session state is owned here; callers observe it through Status.
type Engine struct {
	store    Store
	notifier Notifier
	log      *slog.Logger
	state    *StateDB // optional crash-recovery snapshot, may be nil

	restTimer *timer.Countdown

	mu         sync.Mutex
	ledger     *Ledger
	active     bool
	paused     bool
	startedAt  time.Time
	elapsedSec int
	elapsedGen uint64

	tickInterval time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithSnapshots enables best-effort active-session snapshots in the given
// state database.
func WithSnapshots(db *StateDB) Option {
	return func(e *Engine) { e.state = db }
}

// WithTickInterval overrides the one-second interval of both the elapsed
// counter and the countdown. Used by tests.
func WithTickInterval(d time.Duration) Option {
	return func(e *Engine) { e.tickInterval = d }
}

// NewEngine creates an idle engine.
func NewEngine(store Store, notifier Notifier, log *slog.Logger, opts ...Option) *Engine {
	e := &Engine{
		store:        store,
		notifier:     notifier,
		log:          log,
		ledger:       NewLedger(),
		tickInterval: time.Second,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.restTimer = timer.New(notifier, timer.WithInterval(e.tickInterval))
	return e
}

// Timer exposes the rest/switch countdown for pause/resume/stop control.
func (e *Engine) Timer() *timer.Countdown {
	return e.restTimer
}

// StartSession begins a new session: empty ledger, zero elapsed time, and a
// running elapsed counter. Fails if a session is already active.
func (e *Engine) StartSession() error {
	e.mu.Lock()
	if e.active {
		e.mu.Unlock()
		return fmt.Errorf("starting session: %w", ErrSessionActive)
	}
	e.ledger.Reset()
	e.active = true
	e.paused = false
	e.startedAt = time.Now()
	e.elapsedSec = 0
	e.elapsedGen++
	gen := e.elapsedGen
	e.mu.Unlock()

	go e.runElapsed(gen)
	e.saveSnapshot()
	return nil
}

// Restore resumes a session left behind by a previous process, if the state
// database holds one. Returns whether a session was restored.
func (e *Engine) Restore() (bool, error) {
	if e.state == nil {
		return false, nil
	}
	snap, err := e.state.Load()
	if err != nil {
		return false, fmt.Errorf("restoring session: %w", err)
	}
	if snap == nil {
		return false, nil
	}

	e.mu.Lock()
	if e.active {
		e.mu.Unlock()
		return false, fmt.Errorf("restoring session: %w", ErrSessionActive)
	}
	e.ledger.Reset()
	for id, count := range snap.Counts {
		e.ledger.counts[id] = count
	}
	e.active = true
	e.paused = false
	e.startedAt = snap.StartedAt
	e.elapsedSec = snap.ElapsedSec
	e.elapsedGen++
	gen := e.elapsedGen
	e.mu.Unlock()

	go e.runElapsed(gen)
	e.log.Info("restored interrupted session",
		"started_at", snap.StartedAt, "elapsed_sec", snap.ElapsedSec)
	return true, nil
}

// CompleteNextSet records one finished set and auto-starts the countdown:
// the exercise-switch duration when this set reached the exercise's target,
// the rest duration otherwise. Durations are read from settings at this
// moment, so settings edits apply to subsequent timers. An exercise already
// at its target is a no-op and starts no timer.
func (e *Engine) CompleteNextSet(ctx context.Context, exerciseID uuid.UUID) (count int, reachedTarget bool, err error) {
	e.mu.Lock()
	active := e.active
	e.mu.Unlock()
	if !active {
		return 0, false, fmt.Errorf("completing set: %w", ErrNoActiveSession)
	}

	ex, err := e.findExercise(ctx, exerciseID)
	if err != nil {
		return 0, false, err
	}

	e.mu.Lock()
	count, reachedTarget, changed := e.ledger.Complete(exerciseID, ex.TargetSets)
	e.mu.Unlock()
	if !changed {
		return count, false, nil
	}
	e.saveSnapshot()

	settings := e.currentSettings(ctx)
	duration := settings.RestTimerSec
	if reachedTarget {
		duration = settings.ExerciseSwitchSec
	}
	e.restTimer.Start(duration)
	return count, reachedTarget, nil
}

// UndoSet removes the last completed set for the exercise. A running
// countdown is left alone. A zero count stays at zero.
func (e *Engine) UndoSet(exerciseID uuid.UUID) (int, error) {
	e.mu.Lock()
	if !e.active {
		e.mu.Unlock()
		return 0, fmt.Errorf("undoing set: %w", ErrNoActiveSession)
	}
	count := e.ledger.Undo(exerciseID)
	e.mu.Unlock()

	e.saveSnapshot()
	return count, nil
}

// PauseSession freezes the elapsed counter. The rest timer is independent
// and keeps running.
func (e *Engine) PauseSession() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.active {
		return fmt.Errorf("pausing session: %w", ErrNoActiveSession)
	}
	e.elapsedGen++ // retire the counter loop
	e.paused = true
	return nil
}

// ResumeSession restarts the elapsed counter after PauseSession.
func (e *Engine) ResumeSession() error {
	e.mu.Lock()
	if !e.active {
		e.mu.Unlock()
		return fmt.Errorf("resuming session: %w", ErrNoActiveSession)
	}
	e.elapsedGen++
	e.paused = false
	gen := e.elapsedGen
	e.mu.Unlock()

	go e.runElapsed(gen)
	return nil
}

// CompleteSession finalizes the active session: totals from the ledger, the
// calorie estimate from the active profile (70 kg fallback), one session
// record plus one breakdown record per exercise with completed sets, all
// captured by value. The session save is awaited before returning.
//
// Persistence failures propagate unmodified and nothing is rolled back: if
// the session record failed, the session stays active and paused (so the
// frozen clock is observable through Status) and CompleteSession may be
// retried; if only the breakdown write failed, the completed record is
// returned alongside the error so the caller can retry the breakdown
// against the store.
func (e *Engine) CompleteSession(ctx context.Context, notes string) (*models.WorkoutSession, error) {
	e.mu.Lock()
	if !e.active {
		e.mu.Unlock()
		return nil, fmt.Errorf("completing session: %w", ErrNoActiveSession)
	}
	e.elapsedGen++ // stop the elapsed counter
	e.paused = true
	counts := e.ledger.Counts()
	elapsed := e.elapsedSec
	e.mu.Unlock()

	e.restTimer.Stop()

	exercises, err := e.store.ListExercises(ctx)
	if err != nil {
		return nil, fmt.Errorf("completing session: %w", err)
	}

	sessionID := uuid.New()
	var entries []models.SessionExercise
	var totalVolume float64
	for _, ex := range exercises {
		sets := counts[ex.ID]
		if sets == 0 {
			continue
		}
		volume := float64(sets) * float64(ex.Reps) * ex.WeightKg
		totalVolume += volume
		entries = append(entries, models.SessionExercise{
			ID:           uuid.New(),
			SessionID:    sessionID,
			ExerciseName: ex.Name,
			WeightKg:     ex.WeightKg,
			Sets:         sets,
			Reps:         ex.Reps,
			Volume:       volume,
			SortOrder:    len(entries),
		})
	}

	weightKg := defaultBodyWeightKg
	metrics, err := e.store.ActiveUserMetrics(ctx)
	if err != nil {
		return nil, fmt.Errorf("completing session: %w", err)
	}
	if metrics != nil {
		weightKg = metrics.WeightKg
	}
	calories := caloriesPerKgHour * weightKg * (float64(elapsed) / 3600.0)

	completed := models.WorkoutSession{
		ID:             sessionID,
		CompletedAt:    time.Now(),
		DurationSec:    elapsed,
		TotalWeightKg:  totalVolume,
		TotalVolume:    totalVolume,
		CaloriesBurned: calories,
		Notes:          notes,
	}

	if _, err := e.store.SaveSession(ctx, completed); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}

	e.mu.Lock()
	e.ledger.Reset()
	e.active = false
	e.paused = false
	e.elapsedSec = 0
	e.mu.Unlock()
	e.clearSnapshot()

	e.notifier.SessionCelebration()

	if len(entries) > 0 {
		if err := e.store.SaveSessionExercises(ctx, entries); err != nil {
			return &completed, fmt.Errorf("saving session breakdown: %w", err)
		}
	}
	return &completed, nil
}

// Status is a point-in-time view of the engine for callers.
type Status struct {
	Active         bool              `json:"active"`
	Paused         bool              `json:"paused"`
	StartedAt      time.Time         `json:"started_at,omitzero"`
	ElapsedSec     int               `json:"elapsed_sec"`
	SetCounts      map[uuid.UUID]int `json:"set_counts"`
	TimerState     string            `json:"timer_state"`
	TimerRemaining int               `json:"timer_remaining"`
}

// Status returns the current session state.
func (e *Engine) Status() Status {
	e.mu.Lock()
	s := Status{
		Active:     e.active,
		Paused:     e.paused,
		ElapsedSec: e.elapsedSec,
		SetCounts:  e.ledger.Counts(),
	}
	if e.active {
		s.StartedAt = e.startedAt
	}
	e.mu.Unlock()

	s.TimerState = e.restTimer.CurrentState().String()
	s.TimerRemaining = e.restTimer.Remaining()
	return s
}

// findExercise resolves an exercise by ID from the store.
func (e *Engine) findExercise(ctx context.Context, id uuid.UUID) (*models.Exercise, error) {
	exercises, err := e.store.ListExercises(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing exercises: %w", err)
	}
	for i := range exercises {
		if exercises[i].ID == id {
			return &exercises[i], nil
		}
	}
	return nil, fmt.Errorf("exercise %s: %w", id, ErrUnknownExercise)
}

// currentSettings reads timer durations from the store, falling back to the
// defaults when settings are unavailable.
func (e *Engine) currentSettings(ctx context.Context) models.Settings {
	settings, err := e.store.GetSettings(ctx)
	if err != nil {
		e.log.Warn("reading settings failed, using defaults", "error", err)
		return models.DefaultSettings()
	}
	return settings
}

// runElapsed increments the session-elapsed counter once per tick until its
// generation is retired by pause, completion, or engine shutdown.
func (e *Engine) runElapsed(gen uint64) {
	ticker := time.NewTicker(e.tickInterval)
	defer ticker.Stop()

	for range ticker.C {
		e.mu.Lock()
		if e.elapsedGen != gen || !e.active {
			e.mu.Unlock()
			return
		}
		e.elapsedSec++
		e.mu.Unlock()
	}
}

// saveSnapshot writes the active-session snapshot, best effort.
func (e *Engine) saveSnapshot() {
	if e.state == nil {
		return
	}
	e.mu.Lock()
	snap := Snapshot{
		StartedAt:  e.startedAt,
		ElapsedSec: e.elapsedSec,
		Counts:     e.ledger.Counts(),
	}
	e.mu.Unlock()

	if err := e.state.Save(snap); err != nil {
		e.log.Warn("saving session snapshot failed", "error", err)
	}
}

// clearSnapshot drops the stored snapshot, best effort.
func (e *Engine) clearSnapshot() {
	if e.state == nil {
		return
	}
	if err := e.state.Clear(); err != nil {
		e.log.Warn("clearing session snapshot failed", "error", err)
	}
}
