package interact

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// KeySource yields one key at a time. NextKey blocks until a key is
// available and returns io.EOF when no more will come.
type KeySource interface {
	NextKey() (byte, error)
}

// ByteSource reads keys from any reader, e.g. piped or scripted input.
type ByteSource struct {
	r *bufio.Reader
}

// NewByteSource returns a KeySource reading from r.
func NewByteSource(r io.Reader) *ByteSource {
	return &ByteSource{r: bufio.NewReader(r)}
}

func (s *ByteSource) NextKey() (byte, error) {
	return s.r.ReadByte()
}

// TerminalSource reads single key presses from a console without waiting
// for Enter and without echo. When f is not a terminal it reads bytes as
// they arrive.
type TerminalSource struct {
	f   *os.File
	buf [1]byte
}

// NewTerminalSource returns a KeySource reading from f, normally os.Stdin.
func NewTerminalSource(f *os.File) *TerminalSource {
	return &TerminalSource{f: f}
}

// NextKey puts the terminal in raw mode only for the duration of the read,
// so output printed between keys renders normally. Keys that produce no
// character, such as the arrows on a Windows console, are not reported.
func (s *TerminalSource) NextKey() (byte, error) {
	fd := int(s.f.Fd())
	if term.IsTerminal(fd) {
		state, err := term.MakeRaw(fd)
		if err != nil {
			return 0, fmt.Errorf("raw mode: %w", err)
		}
		defer term.Restore(fd, state)
		if err := plainKeys(fd); err != nil {
			return 0, fmt.Errorf("console mode: %w", err)
		}
	}

	if _, err := io.ReadFull(s.f, s.buf[:]); err != nil {
		return 0, err
	}
	return s.buf[0], nil
}

// vtInputMode is the Windows console flag ENABLE_VIRTUAL_TERMINAL_INPUT.
// With it set, arrow keys arrive as ESC-prefixed sequences and would read
// as Quit.
const vtInputMode uint32 = 0x0200

// keyInputMode returns mode with virtual terminal input turned off.
func keyInputMode(mode uint32) uint32 {
	return mode &^ vtInputMode
}
