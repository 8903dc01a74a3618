//go:build !darwin && !linux && !windows

package sound

// play falls back to terminal bell on unsupported platforms
func play(name string, volume float64) error {
	return terminalBell()
}
