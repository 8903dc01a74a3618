package timer

import (
	"sync"
	"testing"
	"time"
)

// recorder collects countdown notifications and signals completion.
type recorder struct {
	mu       sync.Mutex
	ticks    []int
	finished int
	done     chan struct{}
}

func newRecorder() *recorder {
	return &recorder{done: make(chan struct{}, 4)}
}

func (r *recorder) TimerTick(remaining int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ticks = append(r.ticks, remaining)
}

func (r *recorder) TimerFinished() {
	r.mu.Lock()
	r.finished++
	r.mu.Unlock()
	r.done <- struct{}{}
}

func (r *recorder) snapshot() ([]int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.ticks...), r.finished
}

func waitFinished(t *testing.T, r *recorder) {
	t.Helper()
	select {
	case <-r.done:
	case <-time.After(5 * time.Second):
		t.Fatal("countdown did not finish in time")
	}
}

// TestCountdownRunsToCompletion verifies a full countdown fires cue ticks at
// 3, 2, 1 and 0, fires finished exactly once, and ends idle at 0.
func TestCountdownRunsToCompletion(t *testing.T) {
	r := newRecorder()
	c := New(r, WithInterval(time.Millisecond))

	c.Start(5)
	waitFinished(t, r)

	ticks, finished := r.snapshot()
	want := []int{3, 2, 1, 0}
	if len(ticks) != len(want) {
		t.Fatalf("ticks = %v, want %v", ticks, want)
	}
	for i, v := range want {
		if ticks[i] != v {
			t.Errorf("ticks[%d] = %d, want %d", i, ticks[i], v)
		}
	}
	if finished != 1 {
		t.Errorf("finished = %d, want 1", finished)
	}
	if got := c.CurrentState(); got != StateIdle {
		t.Errorf("state = %v, want idle", got)
	}
	if got := c.Remaining(); got != 0 {
		t.Errorf("remaining = %d, want 0", got)
	}
}

// TestCountdownRestartCancelsPrevious verifies that starting a new countdown
// while one is running cancels the first: only the second completion fires a
// finished notification.
func TestCountdownRestartCancelsPrevious(t *testing.T) {
	r := newRecorder()
	c := New(r, WithInterval(time.Millisecond))

	c.Start(1000)
	c.Start(2)
	waitFinished(t, r)

	// Give a cancelled loop time to misfire if the generation guard failed.
	time.Sleep(20 * time.Millisecond)

	_, finished := r.snapshot()
	if finished != 1 {
		t.Errorf("finished = %d, want 1 (cancelled countdown must not fire)", finished)
	}
}

// TestCountdownPauseResume verifies pause freezes remaining time, resume
// continues from the frozen value, and the countdown still completes.
func TestCountdownPauseResume(t *testing.T) {
	r := newRecorder()
	c := New(r, WithInterval(time.Hour)) // effectively frozen while running

	c.Start(10)
	if err := c.Pause(); err != nil {
		t.Fatalf("Pause: %v", err)
	}
	if got := c.CurrentState(); got != StatePaused {
		t.Fatalf("state after pause = %v, want paused", got)
	}
	frozen := c.Remaining()
	if frozen != 10 {
		t.Fatalf("remaining after pause = %d, want 10", frozen)
	}

	// Swap in a fast interval for the resumed loop.
	c.interval = time.Millisecond
	if err := c.Resume(); err != nil {
		t.Fatalf("Resume: %v", err)
	}
	waitFinished(t, r)

	_, finished := r.snapshot()
	if finished != 1 {
		t.Errorf("finished = %d, want 1", finished)
	}
}

// TestCountdownInvalidTransitions verifies pause outside RUNNING and resume
// outside PAUSED are reported as errors, not applied.
func TestCountdownInvalidTransitions(t *testing.T) {
	c := New(newRecorder(), WithInterval(time.Hour))

	if err := c.Pause(); err != ErrNotRunning {
		t.Errorf("Pause while idle = %v, want ErrNotRunning", err)
	}
	if err := c.Resume(); err != ErrNotPaused {
		t.Errorf("Resume while idle = %v, want ErrNotPaused", err)
	}

	c.Start(10)
	if err := c.Resume(); err != ErrNotPaused {
		t.Errorf("Resume while running = %v, want ErrNotPaused", err)
	}
	if err := c.Pause(); err != nil {
		t.Errorf("Pause while running = %v, want nil", err)
	}
	if err := c.Pause(); err != ErrNotRunning {
		t.Errorf("Pause while paused = %v, want ErrNotRunning", err)
	}
}

// TestCountdownStop verifies stop is valid from any state and resets
// remaining time to zero without firing finished.
func TestCountdownStop(t *testing.T) {
	r := newRecorder()
	c := New(r, WithInterval(time.Hour))

	c.Stop() // idle stop is a no-op
	if got := c.CurrentState(); got != StateIdle {
		t.Errorf("state = %v, want idle", got)
	}

	c.Start(30)
	c.Stop()
	if got := c.CurrentState(); got != StateIdle {
		t.Errorf("state after stop = %v, want idle", got)
	}
	if got := c.Remaining(); got != 0 {
		t.Errorf("remaining after stop = %d, want 0", got)
	}

	time.Sleep(10 * time.Millisecond)
	_, finished := r.snapshot()
	if finished != 0 {
		t.Errorf("finished = %d, want 0 after stop", finished)
	}
}
