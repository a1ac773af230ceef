package interact

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteSource(t *testing.T) {
	s := NewByteSource(strings.NewReader("j "))

	k, err := s.NextKey()
	require.NoError(t, err)
	require.Equal(t, byte('j'), k)

	k, err = s.NextKey()
	require.NoError(t, err)
	require.Equal(t, byte(' '), k)

	_, err = s.NextKey()
	require.ErrorIs(t, err, io.EOF)
}

func TestTerminalSourceFromPipe(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	_, err = w.Write([]byte("k\x1b"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	s := NewTerminalSource(r)
	k, err := s.NextKey()
	require.NoError(t, err)
	require.Equal(t, byte('k'), k)

	k, err = s.NextKey()
	require.NoError(t, err)
	require.Equal(t, byte(KeyEscape), k)

	_, err = s.NextKey()
	require.ErrorIs(t, err, io.EOF)
}

func TestKeyInputModeClearsVTInput(t *testing.T) {
	const (
		processed = 0x0001
		echo      = 0x0004
	)
	require.Equal(t, uint32(processed|echo), keyInputMode(processed|echo|vtInputMode))
	require.Equal(t, uint32(processed), keyInputMode(processed))
	require.Zero(t, keyInputMode(vtInputMode))
}
