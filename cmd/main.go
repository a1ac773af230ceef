// qwauto - Quicken investment transaction helper
// Converts downloaded Bought transactions to BoughtX by typing into Quicken.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/spf13/pflag"

	"qwauto/internal/automation"
	"qwauto/internal/config"
	"qwauto/internal/connector"
	"qwauto/internal/interact"
	"qwauto/internal/logger"
	"qwauto/internal/osutils"
	"qwauto/internal/quicken"
)

var version = "0.1.0"

// Exit codes
const (
	exitOK           = 0
	exitNoConnection = 1
	exitFatal        = 2
)

// env holds everything run touches outside the process, so tests can swap
// in fakes.
type env struct {
	attach     connector.AttachFunc
	foreground func() (automation.Window, error)
	keys       interact.KeySource
	isElevated func() bool // nil where elevation does not matter
	sleep      func(time.Duration)
	stdout     io.Writer
	stderr     io.Writer
}

func main() {
	os.Exit(run(os.Args[1:], env{
		attach:     automation.Attach,
		foreground: automation.ForegroundWindow,
		keys:       interact.NewTerminalSource(os.Stdin),
		isElevated: elevationCheck(),
		sleep:      time.Sleep,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
	}))
}

// elevationCheck returns the elevation test on Windows, the only platform
// that filters injected input by integrity level.
func elevationCheck() func() bool {
	if runtime.GOOS != "windows" {
		return nil
	}
	return osutils.IsElevated
}

func run(args []string, e env) int {
	// Capture the console before anything else can take focus.
	console, consoleErr := e.foreground()

	flags := pflag.NewFlagSet("qwauto", pflag.ContinueOnError)
	flags.SetOutput(e.stderr)
	cfgPath := flags.StringP("config", "c", config.DefaultPath, "Config file.  Defaults to qwauto.cfg.")
	verbose := flags.BoolP("verbose", "v", false, "Log debug details")
	showVer := flags.Bool("version", false, "Show version")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitFatal
	}

	if *showVer {
		fmt.Fprintf(e.stdout, "qwauto version %s\n", version)
		return exitOK
	}

	log := logger.New(e.stderr, *verbose)

	if consoleErr != nil {
		log.Error().Err(consoleErr).Msg("Failed to find the console window")
		return exitFatal
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Error().Err(err).Str("path", *cfgPath).Msg("Failed to load config")
		return exitFatal
	}
	log.Debug().
		Str("component", "config").
		Str("quicken", cfg.QuickenPath).
		Str("account", cfg.BoughtXAccount).
		Dur("pause", cfg.Pause).
		Int("max_tries", cfg.MaxTries).
		Msg("Loaded config")

	if e.isElevated != nil && !e.isElevated() {
		log.Warn().Msg("Not running as administrator; keys cannot reach Quicken if it runs elevated")
	}

	res, err := connector.Connect(e.attach, cfg.QuickenPath, cfg.MaxTries, e.stdout)
	if errors.Is(err, connector.ErrConnectionExhausted) {
		return exitNoConnection
	}
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to Quicken")
		return exitFatal
	}
	log.Debug().Str("component", "connector").Int("attempts", res.Attempts).Msg("Attached")

	window, err := res.App.TopWindow()
	if err != nil {
		log.Error().Err(err).Msg("Failed to find the Quicken window")
		return exitFatal
	}

	converter := &quicken.Converter{Pause: cfg.Pause, Sleep: e.sleep}
	loop := &interact.Loop{
		Keys:    e.keys,
		Target:  window,
		Console: console,
		Convert: func(w automation.Window) error {
			return converter.SwitchToBoughtX(w, cfg.BoughtXAccount)
		},
		Out: e.stdout,
		Log: log,
	}
	if err := loop.Run(); err != nil {
		log.Error().Err(err).Msg("Interactive loop failed")
		return exitFatal
	}

	// Hand control back to Quicken.
	if err := window.SetFocus(); err != nil {
		log.Error().Err(err).Msg("Failed to focus Quicken")
		return exitFatal
	}
	return exitOK
}
