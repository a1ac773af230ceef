package connector

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"qwauto/internal/automation"
	"qwauto/internal/automation/automationtest"
)

func progressDots(out string) int {
	first, _, _ := strings.Cut(out, "\n")
	return strings.Count(first, ".")
}

func TestConnectSucceedsOnLastAttempt(t *testing.T) {
	app := &automationtest.App{}
	attacher := &automationtest.Attacher{Failures: 4, App: app}
	var out bytes.Buffer

	res, err := Connect(attacher.Attach, "qw.exe", 5, &out)
	require.NoError(t, err)
	require.Same(t, app, res.App)
	require.Equal(t, 5, res.Attempts)
	require.Equal(t, 5, attacher.Calls)
	require.Equal(t, 5, progressDots(out.String()))
	require.Contains(t, out.String(), "Connected to Quicken")
}

func TestConnectFirstTry(t *testing.T) {
	attacher := &automationtest.Attacher{App: &automationtest.App{}}
	var out bytes.Buffer

	res, err := Connect(attacher.Attach, "qw.exe", 5, &out)
	require.NoError(t, err)
	require.Equal(t, 1, res.Attempts)
	require.Equal(t, "Connecting to Quicken.\nConnected to Quicken\n", out.String())
}

func TestConnectExhausted(t *testing.T) {
	attacher := &automationtest.Attacher{Failures: 1000}
	var out bytes.Buffer

	res, err := Connect(attacher.Attach, "qw.exe", 5, &out)
	require.ErrorIs(t, err, ErrConnectionExhausted)
	require.Nil(t, res.App)
	require.Equal(t, 5, res.Attempts)
	require.Equal(t, 5, attacher.Calls)
	require.Equal(t, 5, progressDots(out.String()))
	require.Contains(t, out.String(), "Is it running?")
}

func TestConnectOtherErrorStops(t *testing.T) {
	boom := errors.New("access denied")
	calls := 0
	attach := func(string) (automation.Application, error) {
		calls++
		return nil, boom
	}

	res, err := Connect(attach, "qw.exe", 5, &bytes.Buffer{})
	require.ErrorIs(t, err, boom)
	require.NotErrorIs(t, err, ErrConnectionExhausted)
	require.Equal(t, 1, calls)
	require.Equal(t, 1, res.Attempts)
}

func TestConnectWrappedNotFoundRetries(t *testing.T) {
	calls := 0
	attach := func(path string) (automation.Application, error) {
		calls++
		return nil, errors.Join(automation.ErrProcessNotFound, errors.New(path))
	}

	_, err := Connect(attach, "qw.exe", 3, &bytes.Buffer{})
	require.ErrorIs(t, err, ErrConnectionExhausted)
	require.Equal(t, 3, calls)
}
