//go:build !windows

package osutils

// IsElevated is a stub for non-Windows platforms
func IsElevated() bool {
	return false
}
