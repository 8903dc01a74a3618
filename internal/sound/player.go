package sound

import "fmt"

// Play plays the named cue on the server host at the given volume (0.0 to
// 1.0). Platform-specific implementations live in player_*.go files behind
// build tags; every platform falls back to the terminal bell when no audio
// command works.
//
// Known names are "beep", "chime" and "cheer". Unknown names play the
// platform default.
func Play(name string, volume float64) error {
	return play(name, clampVolume(volume))
}

// clampVolume bounds a configured volume to the valid 0.0-1.0 range.
func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// terminalBell outputs a terminal bell character as fallback
func terminalBell() error {
	fmt.Print("\a")
	return nil
}
