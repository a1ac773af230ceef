// Package interact runs the single-key command loop that drives Quicken.
package interact

// Action is what a key press asks the loop to do.
type Action int

const (
	NoOp Action = iota
	Down
	Up
	Convert
	Enter
	Quit
)

// Raw bytes read from the console.
const (
	KeyCtrlC  = 0x03
	KeyEscape = 0x1b
	KeyEnter  = '\r'
	KeySpace  = ' '
	KeyDown   = 'j'
	KeyUp     = 'k'
)

func (a Action) String() string {
	switch a {
	case NoOp:
		return "no-op"
	case Down:
		return "down"
	case Up:
		return "up"
	case Convert:
		return "convert"
	case Enter:
		return "enter"
	case Quit:
		return "quit"
	default:
		return "unknown"
	}
}

// Dispatch maps a raw key to its action. Unbound keys map to NoOp.
func Dispatch(key byte) Action {
	switch key {
	case KeyEscape, KeyCtrlC:
		return Quit
	case KeyDown:
		return Down
	case KeyUp:
		return Up
	case KeySpace:
		return Convert
	case KeyEnter:
		return Enter
	}
	return NoOp
}

// forwarded holds the keys sent to Quicken for the pass-through actions.
var forwarded = map[Action]string{
	Down:  "{DOWN}",
	Up:    "{UP}",
	Enter: "{ENTER}",
}
