package interact

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"qwauto/internal/automation"
)

// Loop forwards key presses from the console to Quicken.
type Loop struct {
	// Keys supplies key presses
	Keys KeySource

	// Target is the Quicken main window
	Target automation.Window

	// Console is the window qwauto runs in; it gets focus back after every key
	Console automation.Window

	// Convert handles the Convert action
	Convert func(automation.Window) error

	// Out receives the help banner
	Out io.Writer

	Log zerolog.Logger
}

// Run prints the help banner and handles keys until Escape, Ctrl-C or the
// end of input. Any failure to read a key or drive a window ends the loop
// with that error.
func (l *Loop) Run() error {
	PrintHelp(l.Out)

	for {
		key, err := l.Keys.NextKey()
		if errors.Is(err, io.EOF) {
			l.Log.Debug().Str("component", "interact").Msg("Input closed")
			return nil
		}
		if err != nil {
			return fmt.Errorf("read key: %w", err)
		}

		action := Dispatch(key)
		l.Log.Debug().Str("component", "interact").Str("key", fmt.Sprintf("0x%02x", key)).Stringer("action", action).Msg("Key")
		if action == Quit {
			return nil
		}

		if err := l.perform(action); err != nil {
			return fmt.Errorf("%s: %w", action, err)
		}

		// Sending keys moves focus to Quicken; take it back for the next read.
		if err := l.Console.SetFocus(); err != nil {
			return fmt.Errorf("refocus console: %w", err)
		}
		if err := l.Console.SetKeyboardFocus(); err != nil {
			return fmt.Errorf("refocus console keyboard: %w", err)
		}
	}
}

func (l *Loop) perform(action Action) error {
	switch action {
	case Convert:
		return l.Convert(l.Target)
	case Down, Up, Enter:
		return l.Target.TypeKeys(forwarded[action])
	}
	return nil
}
