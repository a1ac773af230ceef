//go:build windows

package osutils

import (
	"golang.org/x/sys/windows"
)

// IsElevated reports whether the current process runs with an elevated
// token. Windows drops input injected from a non-elevated process into an
// elevated window, so an elevated Quicken needs an elevated qwauto.
func IsElevated() bool {
	var token windows.Token
	if err := windows.OpenProcessToken(windows.CurrentProcess(), windows.TOKEN_QUERY, &token); err != nil {
		return false
	}
	defer token.Close()
	return token.IsElevated()
}
