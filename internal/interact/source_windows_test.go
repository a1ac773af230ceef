//go:build windows

package interact

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/windows"
)

func TestVTInputModeMatchesWindows(t *testing.T) {
	require.Equal(t, uint32(windows.ENABLE_VIRTUAL_TERMINAL_INPUT), vtInputMode)
}
