//go:build windows

package sound

import "os/exec"

// play plays cues on Windows using PowerShell system sounds. System sounds
// follow the OS sound scheme and have no per-play volume, so the configured
// volume is not applied here.
func play(name string, volume float64) error {
	var soundCommands []string

	switch name {
	case "cheer":
		soundCommands = []string{
			"[System.Media.SystemSounds]::Asterisk.Play()",
			"[System.Media.SystemSounds]::Beep.Play()",
		}
	case "chime":
		soundCommands = []string{
			"[System.Media.SystemSounds]::Exclamation.Play()",
			"[System.Media.SystemSounds]::Beep.Play()",
		}
	default: // beep
		soundCommands = []string{"[System.Media.SystemSounds]::Beep.Play()"}
	}

	for _, soundCmd := range soundCommands {
		cmd := exec.Command("powershell", "-c", soundCmd)
		if err := cmd.Run(); err == nil {
			return nil
		}
	}

	return terminalBell()
}
