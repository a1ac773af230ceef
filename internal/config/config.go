// Package config loads the qwauto configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"
	"github.com/spf13/viper"
	"gopkg.in/ini.v1"
)

const (
	// DefaultPath is the config file read when none is given on the command line
	DefaultPath = "qwauto.cfg"

	// DefaultQuickenPath is where Quicken installs its executable
	DefaultQuickenPath = `c:\Program Files (x86)\Quicken\qw.exe`

	// DefaultPause is the delay between steps of a transaction edit
	DefaultPause = 100 * time.Millisecond

	// DefaultMaxTries bounds the attempts to attach to Quicken
	DefaultMaxTries = 5

	// EnvPrefix prefixes environment variables that override file values,
	// e.g. QWAUTO_BOUGHTX_ACCOUNT.
	EnvPrefix = "QWAUTO"
)

// Keys read from the DEFAULT section.
const (
	KeyQuicken        = "quicken"
	KeyBoughtXAccount = "boughtx_account"
	KeyPause          = "pause"
	KeyMaxTries       = "max_tries"
)

var (
	// ErrNotFound is returned when the config file does not exist
	ErrNotFound = errors.New("config file not found")

	// ErrMissingKey is returned when a required key is absent or empty
	ErrMissingKey = errors.New("missing required config key")

	// ErrInvalidValue is returned when a key holds a value that cannot be used
	ErrInvalidValue = errors.New("invalid config value")
)

// Config holds the settings for one qwauto run. It is not modified after Load.
type Config struct {
	// QuickenPath is the executable used to find the running Quicken process
	QuickenPath string

	// BoughtXAccount is the account that funds BoughtX purchases
	BoughtXAccount string

	// Pause is the delay between steps of a transaction edit
	Pause time.Duration

	// MaxTries bounds the attempts to attach to Quicken
	MaxTries int
}

// Load reads the config file at path. Values from the file's DEFAULT
// section are overridden by QWAUTO_* environment variables.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	file, err := ini.LoadSources(ini.LoadOptions{
		// Account names may contain '#' or ';', so values run to end of line.
		IgnoreInlineComment: true,
		IgnoreContinuation:  true,
		InsensitiveKeys:     true,
	}, data)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	section := file.Section(ini.DefaultSection)

	v := viper.New()
	v.SetDefault(KeyQuicken, DefaultQuickenPath)
	v.SetDefault(KeyPause, DefaultPause.String())
	v.SetDefault(KeyMaxTries, DefaultMaxTries)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	values := make(map[string]any)
	for k, val := range section.KeysHash() {
		values[k] = val
	}
	if err := v.MergeConfigMap(values); err != nil {
		return nil, fmt.Errorf("merge config: %w", err)
	}

	account := strings.TrimSpace(v.GetString(KeyBoughtXAccount))
	if account == "" {
		return nil, missingKey(KeyBoughtXAccount, section.KeyStrings())
	}

	pause, err := parsePause(v.GetString(KeyPause))
	if err != nil {
		return nil, err
	}

	maxTries, err := strconv.Atoi(strings.TrimSpace(v.GetString(KeyMaxTries)))
	if err != nil || maxTries < 1 {
		return nil, fmt.Errorf("%w: %s = %q (want an integer >= 1)", ErrInvalidValue, KeyMaxTries, v.GetString(KeyMaxTries))
	}

	quicken := strings.TrimSpace(v.GetString(KeyQuicken))
	if quicken == "" {
		quicken = DefaultQuickenPath
	}

	return &Config{
		QuickenPath:    quicken,
		BoughtXAccount: account,
		Pause:          pause,
		MaxTries:       maxTries,
	}, nil
}

// parsePause accepts a Go duration ("150ms") or a number of seconds ("0.1").
func parsePause(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	d, err := time.ParseDuration(s)
	if err != nil {
		secs, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return 0, fmt.Errorf("%w: %s = %q", ErrInvalidValue, KeyPause, s)
		}
		d = time.Duration(secs * float64(time.Second))
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: %s = %q is negative", ErrInvalidValue, KeyPause, s)
	}
	return d, nil
}

// missingKey builds the error for an absent key, pointing at a likely typo
// among the keys that are present.
func missingKey(key string, present []string) error {
	best, bestDist := "", 4
	for _, k := range present {
		if k == key {
			continue
		}
		if d := levenshtein.ComputeDistance(k, key); d < bestDist {
			best, bestDist = k, d
		}
	}
	if best != "" {
		return fmt.Errorf("%w: %s (did you mean %q?)", ErrMissingKey, key, best)
	}
	return fmt.Errorf("%w: %s", ErrMissingKey, key)
}
