//go:build linux

package sound

import (
	"fmt"
	"os/exec"
)

// play plays cues on Linux using paplay (PulseAudio) or aplay (ALSA).
// paplay honors the configured volume (65536 = 100%); aplay has no volume
// flag and plays at device level.
func play(name string, volume float64) error {
	paVolume := fmt.Sprintf("--volume=%d", int(volume*65536))

	var sounds []struct {
		cmd  string
		args []string
	}

	switch name {
	case "cheer":
		sounds = []struct {
			cmd  string
			args []string
		}{
			{"paplay", []string{paVolume, "/usr/share/sounds/freedesktop/stereo/complete.oga"}},
			{"aplay", []string{"/usr/share/sounds/freedesktop/stereo/complete.wav"}},
		}
	case "chime":
		sounds = []struct {
			cmd  string
			args []string
		}{
			{"paplay", []string{paVolume, "/usr/share/sounds/freedesktop/stereo/message.oga"}},
			{"aplay", []string{"/usr/share/sounds/freedesktop/stereo/message.wav"}},
		}
	default: // beep
		sounds = []struct {
			cmd  string
			args []string
		}{
			{"paplay", []string{paVolume, "/usr/share/sounds/freedesktop/stereo/bell.oga"}},
			{"aplay", []string{"/usr/share/sounds/freedesktop/stereo/bell.wav"}},
		}
	}

	for _, sound := range sounds {
		cmd := exec.Command(sound.cmd, sound.args...)
		if err := cmd.Run(); err == nil {
			return nil
		}
	}

	return terminalBell()
}
