// Package automation drives the windows of another running process with
// synthetic keyboard input.
package automation

// Window is a top-level window that can receive injected keystrokes.
type Window interface {
	// TypeKeys brings the window to the foreground and sends seq to it.
	// See ParseKeys for the sequence syntax.
	TypeKeys(seq string) error

	// SetFocus makes the window the foreground window.
	SetFocus() error

	// SetKeyboardFocus directs keyboard input to the window.
	SetKeyboardFocus() error
}

// Application is a handle to an attached process
type Application interface {
	// TopWindow returns the process's topmost visible top-level window.
	TopWindow() (Window, error)
}
