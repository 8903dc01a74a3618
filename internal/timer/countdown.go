// Package timer provides the one-second countdown primitive behind the rest
// and exercise-switch timers.
package timer

import (
	"errors"
	"sync"
	"time"
)

// State is the countdown lifecycle state. Exactly one holds at a time.
type State int

const (
	StateIdle State = iota
	StateRunning
	StatePaused
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	default:
		return "idle"
	}
}

// Invalid state transitions per the timer contract.
var (
	ErrNotRunning = errors.New("timer is not running")
	ErrNotPaused  = errors.New("timer is not paused")
)

// countdownCueFrom is the remaining-seconds value at which per-second cue
// notifications begin.
const countdownCueFrom = 3

// Notifier receives countdown events. Implementations must not block; the
// tick loop calls them synchronously.
type Notifier interface {
	// TimerTick fires once per second while remaining <= 3, including the
	// final tick at 0.
	TimerTick(remaining int)
	// TimerFinished fires when the countdown reaches zero naturally.
	TimerFinished()
}

// Countdown is a cancellable one-second countdown. Start cancels any
// in-flight countdown first, so at most one tick loop is live per Countdown.
// A generation token invalidates stale loops: cancelling and restarting in
// quick succession cannot double-decrement or double-fire.
type Countdown struct {
	mu        sync.Mutex
	state     State
	remaining int
	gen       uint64
	notifier  Notifier
	interval  time.Duration
}

// Option configures a Countdown.
type Option func(*Countdown)

// WithInterval overrides the one-second tick interval. Used by tests.
func WithInterval(d time.Duration) Option {
	return func(c *Countdown) { c.interval = d }
}

// New creates an idle Countdown reporting to the given notifier.
func New(n Notifier, opts ...Option) *Countdown {
	c := &Countdown{notifier: n, interval: time.Second}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start resets remaining time to seconds and begins counting down,
// cancelling any countdown already in flight.
func (c *Countdown) Start(seconds int) {
	c.mu.Lock()
	c.gen++
	c.state = StateRunning
	c.remaining = seconds
	gen := c.gen
	c.mu.Unlock()

	go c.run(gen)
}

// Pause freezes the remaining time. Only valid while running.
func (c *Countdown) Pause() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateRunning {
		return ErrNotRunning
	}
	c.gen++ // retire the live tick loop
	c.state = StatePaused
	return nil
}

// Resume continues from the frozen remaining time. Only valid while paused.
func (c *Countdown) Resume() error {
	c.mu.Lock()
	if c.state != StatePaused {
		c.mu.Unlock()
		return ErrNotPaused
	}
	c.gen++
	c.state = StateRunning
	gen := c.gen
	c.mu.Unlock()

	go c.run(gen)
	return nil
}

// Stop cancels any countdown and returns to idle with remaining time 0.
// Valid from any state.
func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.state = StateIdle
	c.remaining = 0
}

// Remaining returns the current remaining seconds.
func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// CurrentState returns the current lifecycle state.
func (c *Countdown) CurrentState() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// run is the tick loop for one generation. It exits as soon as the
// generation token moves on (pause, stop, or a newer Start).
func (c *Countdown) run(gen uint64) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		if c.gen != gen || c.state != StateRunning {
			c.mu.Unlock()
			return
		}

		if c.remaining > 0 {
			c.remaining--
		}
		remaining := c.remaining
		c.mu.Unlock()

		if remaining > 0 {
			if remaining <= countdownCueFrom {
				c.notifier.TimerTick(remaining)
			}
			continue
		}

		// Reached zero: final cue, finished signal, back to idle.
		c.notifier.TimerTick(0)

		c.mu.Lock()
		if c.gen != gen {
			// A concurrent Start/Stop raced the final tick; the newer
			// generation owns the state now.
			c.mu.Unlock()
			return
		}
		c.gen++
		c.state = StateIdle
		c.remaining = 0
		c.mu.Unlock()

		c.notifier.TimerFinished()
		return
	}
}
