//go:build !windows

package automation

// Stub implementation for non-Windows platforms

// Attach is not supported on this platform
func Attach(exePath string) (Application, error) {
	return nil, ErrUnsupportedPlatform
}

// ForegroundWindow is not supported on this platform
func ForegroundWindow() (Window, error) {
	return nil, ErrUnsupportedPlatform
}
