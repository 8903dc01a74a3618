package sound

import (
	"context"
	"log/slog"
	"time"

	"github.com/claude/liftlog/internal/models"
)

// SettingsSource supplies the current sound settings. Implemented by
// *storage.DB.
type SettingsSource interface {
	GetSettings(ctx context.Context) (models.Settings, error)
}

// Notifier plays timer and celebration cues on the server host. It satisfies
// the session engine's notification contract: calls return immediately and
// playback failures only log.
type Notifier struct {
	settings SettingsSource
	log      *slog.Logger
	enabled  bool

	// playFn is swapped out by tests.
	playFn func(name string, volume float64) error
}

// NewNotifier creates a Notifier. The enabled flag is the host-level config
// switch; the per-user sounds_enabled setting is checked on every cue.
func NewNotifier(settings SettingsSource, enabled bool, log *slog.Logger) *Notifier {
	return &Notifier{
		settings: settings,
		log:      log,
		enabled:  enabled,
		playFn:   Play,
	}
}

// TimerTick plays the countdown cue for the final seconds of the timer.
func (n *Notifier) TimerTick(remaining int) {
	n.cue(func(s models.Settings) string { return s.TimerSound })
}

// TimerFinished plays the timer completion cue.
func (n *Notifier) TimerFinished() {
	n.cue(func(s models.Settings) string { return s.TimerSound })
}

// SessionCelebration plays the workout completion cue.
func (n *Notifier) SessionCelebration() {
	n.cue(func(s models.Settings) string { return s.CelebrationSound })
}

// cue resolves the configured sound name and plays it in the background.
func (n *Notifier) cue(pick func(models.Settings) string) {
	if !n.enabled {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		settings, err := n.settings.GetSettings(ctx)
		if err != nil {
			n.log.Warn("reading sound settings failed", "error", err)
			settings = models.DefaultSettings()
		}
		if !settings.SoundsEnabled {
			return
		}
		if err := n.playFn(pick(settings), settings.SoundVolume); err != nil {
			n.log.Warn("sound playback failed", "error", err)
		}
	}()
}
