package interact

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"qwauto/internal/automation"
	"qwauto/internal/automation/automationtest"
)

type harness struct {
	target   *automationtest.Window
	console  *automationtest.Window
	converts int
	out      bytes.Buffer
}

func (h *harness) loop(keys string) *Loop {
	return &Loop{
		Keys:    NewByteSource(strings.NewReader(keys)),
		Target:  h.target,
		Console: h.console,
		Convert: func(w automation.Window) error {
			h.converts++
			return w.TypeKeys("<convert>")
		},
		Out: &h.out,
		Log: zerolog.Nop(),
	}
}

func newHarness() *harness {
	return &harness{target: &automationtest.Window{}, console: &automationtest.Window{}}
}

func TestLoopForwardsKeys(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.loop("jk\r \x1b").Run())

	require.Equal(t, []string{"{DOWN}", "{UP}", "{ENTER}", "<convert>"}, h.target.Keys())
	require.Equal(t, 1, h.converts)
}

func TestLoopRefocusesConsoleAfterEveryKey(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.loop("jx\x1b").Run())

	require.Equal(t, []automationtest.Call{
		{Method: automationtest.SetFocus},
		{Method: automationtest.SetKeyboardFocus},
		{Method: automationtest.SetFocus},
		{Method: automationtest.SetKeyboardFocus},
	}, h.console.Calls())
}

func TestLoopNoOpKeysOnlyRefocus(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.loop("xyzxyzJK\n\x1b").Run())

	require.Empty(t, h.target.Calls())
	require.Equal(t, 9, h.console.Count(automationtest.SetFocus))
	require.Equal(t, 9, h.console.Count(automationtest.SetKeyboardFocus))
}

func TestLoopQuitKeys(t *testing.T) {
	for _, quit := range []string{"\x1b", "\x03"} {
		h := newHarness()
		require.NoError(t, h.loop(quit+"j").Run())
		require.Empty(t, h.target.Calls(), "keys after quit are not read")
		require.Empty(t, h.console.Calls())
	}
}

func TestLoopEndsAtEOF(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.loop("j").Run())
	require.Equal(t, []string{"{DOWN}"}, h.target.Keys())
}

func TestLoopPrintsHelp(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.loop("").Run())

	out := h.out.String()
	require.Contains(t, out, "Commands:")
	require.Contains(t, out, "- down")
	require.Contains(t, out, "<Space>")
	require.Contains(t, out, "<Escape>")
}

func TestLoopStopsOnInjectionError(t *testing.T) {
	boom := errors.New("window closed")
	h := newHarness()
	h.target.FailOn, h.target.Err = "{UP}", boom

	err := h.loop("kj\x1b").Run()
	require.ErrorIs(t, err, boom)
	require.Equal(t, []string{"{UP}"}, h.target.Keys())
	require.Empty(t, h.console.Calls())
}

type failingSource struct{ err error }

func (s failingSource) NextKey() (byte, error) { return 0, s.err }

func TestLoopReadError(t *testing.T) {
	boom := errors.New("console gone")
	h := newHarness()
	l := h.loop("")
	l.Keys = failingSource{boom}

	require.ErrorIs(t, l.Run(), boom)
}

func TestLoopIgnoresScanCodeArrows(t *testing.T) {
	h := newHarness()
	// 0xE0 0x50 is Down and 0xE0 0x48 is Up on a console without VT input.
	require.NoError(t, h.loop("j\xe0\x50\xe0\x48j\x1b").Run())

	require.Equal(t, []string{"{DOWN}", "{DOWN}"}, h.target.Keys())
	require.Equal(t, 6, h.console.Count(automationtest.SetFocus))
}
