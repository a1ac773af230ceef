//go:build windows

package interact

import (
	"golang.org/x/sys/windows"
)

// plainKeys undoes the virtual terminal input that term.MakeRaw enables, so
// the console reports only keys that type a character.
func plainKeys(fd int) error {
	h := windows.Handle(fd)
	var mode uint32
	if err := windows.GetConsoleMode(h, &mode); err != nil {
		return err
	}
	return windows.SetConsoleMode(h, keyInputMode(mode))
}
