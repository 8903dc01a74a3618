//go:build darwin

package sound

import (
	"os/exec"
	"strconv"
)

// play plays cues on macOS using afplay with its -v volume flag.
func play(name string, volume float64) error {
	vol := strconv.FormatFloat(volume, 'f', 2, 64)

	var soundFiles []string

	switch name {
	case "cheer":
		soundFiles = []string{
			"/System/Library/Sounds/Glass.aiff",
			"/System/Library/Sounds/Submarine.aiff",
		}
	case "chime":
		soundFiles = []string{
			"/System/Library/Sounds/Ping.aiff",
			"/System/Library/Sounds/Pop.aiff",
		}
	default: // beep
		soundFiles = []string{"/System/Library/Sounds/Tink.aiff"}
	}

	for _, soundFile := range soundFiles {
		cmd := exec.Command("afplay", "-v", vol, soundFile)
		if err := cmd.Start(); err == nil {
			return nil
		}
	}

	return terminalBell()
}
