// Package connector attaches to a running Quicken with a bounded number of attempts.
package connector

import (
	"errors"
	"fmt"
	"io"

	"qwauto/internal/automation"
)

// ErrConnectionExhausted is returned when every attempt found no matching process
var ErrConnectionExhausted = errors.New("could not connect to Quicken")

// AttachFunc attaches to the process running the executable at path.
// It fails with automation.ErrProcessNotFound when no such process exists.
type AttachFunc func(path string) (automation.Application, error)

// Result reports the outcome of Connect.
type Result struct {
	// App is the attached application, nil on failure
	App automation.Application

	// Attempts is the number of attach calls made
	Attempts int
}

// Connect calls attach until it succeeds, retrying immediately while the
// process is not found, up to maxTries attempts. One progress dot is written
// to out per attempt. Errors other than automation.ErrProcessNotFound stop
// the loop and are returned as-is.
func Connect(attach AttachFunc, path string, maxTries int, out io.Writer) (Result, error) {
	var res Result

	fmt.Fprint(out, "Connecting to Quicken")
	for res.Attempts < maxTries {
		fmt.Fprint(out, ".")
		res.Attempts++

		app, err := attach(path)
		if errors.Is(err, automation.ErrProcessNotFound) {
			continue
		}
		fmt.Fprintln(out)
		if err != nil {
			return res, fmt.Errorf("attach %s: %w", path, err)
		}

		res.App = app
		fmt.Fprintln(out, "Connected to Quicken")
		return res, nil
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Could not connect to Quicken.  Is it running?")
	return res, fmt.Errorf("%w after %d attempts: %s", ErrConnectionExhausted, res.Attempts, path)
}
