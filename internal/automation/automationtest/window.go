// Package automationtest provides recording fakes for the automation interfaces.
package automationtest

import (
	"sync"

	"qwauto/internal/automation"
)

// Method names recorded in Call.
const (
	TypeKeys         = "TypeKeys"
	SetFocus         = "SetFocus"
	SetKeyboardFocus = "SetKeyboardFocus"
)

// Call is one recorded method invocation.
type Call struct {
	Method string
	Arg    string
}

// Window records every call made to it. When FailOn matches a TypeKeys
// argument, that call returns Err.
type Window struct {
	mu     sync.Mutex
	calls  []Call
	FailOn string
	Err    error
}

func (w *Window) record(c Call) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls = append(w.calls, c)
}

func (w *Window) TypeKeys(seq string) error {
	w.record(Call{Method: TypeKeys, Arg: seq})
	if w.Err != nil && seq == w.FailOn {
		return w.Err
	}
	return nil
}

func (w *Window) SetFocus() error {
	w.record(Call{Method: SetFocus})
	return nil
}

func (w *Window) SetKeyboardFocus() error {
	w.record(Call{Method: SetKeyboardFocus})
	return nil
}

// Calls returns a copy of everything recorded so far.
func (w *Window) Calls() []Call {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]Call(nil), w.calls...)
}

// Keys returns only the TypeKeys arguments, in order.
func (w *Window) Keys() []string {
	var keys []string
	for _, c := range w.Calls() {
		if c.Method == TypeKeys {
			keys = append(keys, c.Arg)
		}
	}
	return keys
}

// Count returns how many times method was called.
func (w *Window) Count(method string) int {
	n := 0
	for _, c := range w.Calls() {
		if c.Method == method {
			n++
		}
	}
	return n
}

// App is an Application whose top window is fixed.
type App struct {
	Window automation.Window
	Err    error
}

func (a *App) TopWindow() (automation.Window, error) {
	if a.Err != nil {
		return nil, a.Err
	}
	return a.Window, nil
}

// Attacher fails with automation.ErrProcessNotFound for the first Failures
// calls and then returns App.
type Attacher struct {
	Failures int
	App      automation.Application
	Calls    int
}

// Attach matches connector.AttachFunc.
func (a *Attacher) Attach(path string) (automation.Application, error) {
	a.Calls++
	if a.Calls <= a.Failures {
		return nil, automation.ErrProcessNotFound
	}
	return a.App, nil
}
