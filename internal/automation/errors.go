package automation

import "errors"

var (
	// ErrUnsupportedPlatform is returned when window automation is not available on this OS
	ErrUnsupportedPlatform = errors.New("window automation not supported on this platform")

	// ErrProcessNotFound is returned when no running process matches the executable path
	ErrProcessNotFound = errors.New("process not found")

	// ErrWindowNotFound is returned when a process has no usable top-level window
	ErrWindowNotFound = errors.New("window not found")

	// ErrBadSequence is returned when a key sequence cannot be parsed
	ErrBadSequence = errors.New("bad key sequence")
)
