package automation

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Virtual-key codes for the named keys a sequence may contain.
const (
	VK_BACK   = 0x08
	VK_TAB    = 0x09
	VK_RETURN = 0x0D
	VK_ESCAPE = 0x1B
	VK_SPACE  = 0x20
	VK_PRIOR  = 0x21
	VK_NEXT   = 0x22
	VK_END    = 0x23
	VK_HOME   = 0x24
	VK_LEFT   = 0x25
	VK_UP     = 0x26
	VK_RIGHT  = 0x27
	VK_DOWN   = 0x28
	VK_INSERT = 0x2D
	VK_DELETE = 0x2E
	VK_F1     = 0x70
)

var keyNames = map[string]uint16{
	"TAB":       VK_TAB,
	"ENTER":     VK_RETURN,
	"ESC":       VK_ESCAPE,
	"ESCAPE":    VK_ESCAPE,
	"SPACE":     VK_SPACE,
	"BACKSPACE": VK_BACK,
	"BACK":      VK_BACK,
	"BKSP":      VK_BACK,
	"DELETE":    VK_DELETE,
	"DEL":       VK_DELETE,
	"INSERT":    VK_INSERT,
	"INS":       VK_INSERT,
	"HOME":      VK_HOME,
	"END":       VK_END,
	"PGUP":      VK_PRIOR,
	"PAGEUP":    VK_PRIOR,
	"PGDN":      VK_NEXT,
	"PAGEDOWN":  VK_NEXT,
	"LEFT":      VK_LEFT,
	"UP":        VK_UP,
	"RIGHT":     VK_RIGHT,
	"DOWN":      VK_DOWN,
}

func init() {
	for i := 0; i < 12; i++ {
		keyNames[fmt.Sprintf("F%d", i+1)] = uint16(VK_F1 + i)
	}
}

// Stroke is a single key press and release. Exactly one of VK and Rune is set.
type Stroke struct {
	VK   uint16
	Rune rune
}

// Extended reports whether the key lives on the extended part of the keyboard
// and needs KEYEVENTF_EXTENDEDKEY when injected.
func (s Stroke) Extended() bool {
	switch s.VK {
	case VK_PRIOR, VK_NEXT, VK_END, VK_HOME, VK_LEFT, VK_UP, VK_RIGHT, VK_DOWN, VK_INSERT, VK_DELETE:
		return true
	}
	return false
}

func (s Stroke) String() string {
	if s.VK == 0 {
		return strconv.QuoteRune(s.Rune)
	}
	return "{" + vkName(s.VK) + "}"
}

func vkName(vk uint16) string {
	switch vk {
	case VK_TAB:
		return "TAB"
	case VK_RETURN:
		return "ENTER"
	case VK_ESCAPE:
		return "ESC"
	case VK_SPACE:
		return "SPACE"
	case VK_BACK:
		return "BACKSPACE"
	case VK_DELETE:
		return "DELETE"
	case VK_INSERT:
		return "INSERT"
	case VK_HOME:
		return "HOME"
	case VK_END:
		return "END"
	case VK_PRIOR:
		return "PGUP"
	case VK_NEXT:
		return "PGDN"
	case VK_LEFT:
		return "LEFT"
	case VK_UP:
		return "UP"
	case VK_RIGHT:
		return "RIGHT"
	case VK_DOWN:
		return "DOWN"
	}
	if vk >= VK_F1 && vk < VK_F1+12 {
		return fmt.Sprintf("F%d", vk-VK_F1+1)
	}
	return fmt.Sprintf("VK_0x%02X", vk)
}

// ParseKeys turns a key sequence into strokes.
//
// Plain characters are typed as-is. Named keys are written in braces, e.g.
// "{TAB}" or "{ENTER}", optionally followed by a repeat count: "{TAB 7}".
// Literal braces are written "{{}" and "{}}". Modifier prefixes are not
// supported.
func ParseKeys(seq string) ([]Stroke, error) {
	var strokes []Stroke
	rs := []rune(seq)
	for i := 0; i < len(rs); i++ {
		switch rs[i] {
		case '{':
			end := -1
			// Start one past the opening brace so "{}}" yields a literal "}".
			for j := i + 2; j < len(rs); j++ {
				if rs[j] == '}' {
					end = j
					break
				}
			}
			if end < 0 {
				return nil, fmt.Errorf("%w: unterminated '{' at offset %d", ErrBadSequence, i)
			}
			tok, err := parseToken(string(rs[i+1 : end]))
			if err != nil {
				return nil, err
			}
			strokes = append(strokes, tok...)
			i = end
		case '}':
			return nil, fmt.Errorf("%w: unmatched '}' at offset %d", ErrBadSequence, i)
		case '\n', '\r':
			strokes = append(strokes, Stroke{VK: VK_RETURN})
		case '\t':
			strokes = append(strokes, Stroke{VK: VK_TAB})
		default:
			strokes = append(strokes, Stroke{Rune: rs[i]})
		}
	}
	return strokes, nil
}

func parseToken(tok string) ([]Stroke, error) {
	name, count := tok, 1
	if f := strings.Fields(tok); len(f) == 2 {
		n, err := strconv.Atoi(f[1])
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: bad repeat count in {%s}", ErrBadSequence, tok)
		}
		name, count = f[0], n
	}

	var s Stroke
	if vk, ok := keyNames[strings.ToUpper(name)]; ok {
		s = Stroke{VK: vk}
	} else if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		s = Stroke{Rune: r}
	} else {
		return nil, fmt.Errorf("%w: unknown key {%s}", ErrBadSequence, name)
	}

	out := make([]Stroke, count)
	for i := range out {
		out[i] = s
	}
	return out, nil
}

var escaper = strings.NewReplacer("{", "{{}", "}", "{}}")

// Escape quotes text so ParseKeys types it literally.
func Escape(text string) string {
	return escaper.Replace(text)
}
