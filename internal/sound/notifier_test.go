package sound

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/claude/liftlog/internal/models"
)

type stubSettings struct {
	settings models.Settings
}

func (s stubSettings) GetSettings(ctx context.Context) (models.Settings, error) {
	return s.settings, nil
}

type cue struct {
	name   string
	volume float64
}

func newTestNotifier(settings models.Settings, enabled bool) (*Notifier, chan cue) {
	played := make(chan cue, 4)
	n := NewNotifier(stubSettings{settings}, enabled, slog.New(slog.NewTextHandler(io.Discard, nil)))
	n.playFn = func(name string, volume float64) error {
		played <- cue{name, volume}
		return nil
	}
	return n, played
}

func waitForCue(t *testing.T, played chan cue) cue {
	t.Helper()
	select {
	case c := <-played:
		return c
	case <-time.After(time.Second):
		t.Fatal("no cue played")
		return cue{}
	}
}

// TestNotifierCueSelection verifies the timer sound is used for tick and
// finish cues, the celebration sound for session completion, and that the
// configured volume reaches the player.
func TestNotifierCueSelection(t *testing.T) {
	settings := models.DefaultSettings()
	settings.TimerSound = "chime"
	settings.CelebrationSound = "cheer"
	settings.SoundVolume = 0.5
	n, played := newTestNotifier(settings, true)

	n.TimerTick(3)
	if c := waitForCue(t, played); c.name != "chime" || c.volume != 0.5 {
		t.Errorf("tick cue = %q at %v, want chime at 0.5", c.name, c.volume)
	}

	n.TimerFinished()
	if c := waitForCue(t, played); c.name != "chime" || c.volume != 0.5 {
		t.Errorf("finish cue = %q at %v, want chime at 0.5", c.name, c.volume)
	}

	n.SessionCelebration()
	if c := waitForCue(t, played); c.name != "cheer" || c.volume != 0.5 {
		t.Errorf("celebration cue = %q at %v, want cheer at 0.5", c.name, c.volume)
	}
}

// TestNotifierDisabledByConfig verifies the host-level switch suppresses all
// playback without spawning goroutines.
func TestNotifierDisabledByConfig(t *testing.T) {
	n, played := newTestNotifier(models.DefaultSettings(), false)

	n.TimerTick(1)
	n.TimerFinished()
	n.SessionCelebration()

	select {
	case c := <-played:
		t.Errorf("cue %q played with notifier disabled", c.name)
	default:
	}
}

// TestNotifierDisabledBySettings verifies the per-user sounds_enabled flag
// suppresses playback.
func TestNotifierDisabledBySettings(t *testing.T) {
	settings := models.DefaultSettings()
	settings.SoundsEnabled = false
	n, played := newTestNotifier(settings, true)

	n.TimerFinished()

	select {
	case c := <-played:
		t.Errorf("cue %q played with sounds disabled", c.name)
	case <-time.After(50 * time.Millisecond):
	}
}

// TestClampVolume verifies out-of-range volumes are bounded to 0.0-1.0.
func TestClampVolume(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.7, 0.7},
		{1, 1},
		{1.5, 1},
	}
	for _, tt := range tests {
		if got := clampVolume(tt.in); got != tt.want {
			t.Errorf("clampVolume(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
