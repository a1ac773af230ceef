// Package quicken edits transactions in Quicken's register by injecting keystrokes.
package quicken

import (
	"fmt"
	"time"

	"qwauto/internal/automation"
)

// Fields between the transaction type and the transfer account in an
// investment register row.
const transferFieldTabs = 7

// Converter rewrites the selected investment transaction.
type Converter struct {
	// Pause is the delay before each step after the first; zero disables it
	Pause time.Duration

	// Sleep waits between steps; nil means time.Sleep
	Sleep func(time.Duration)
}

func (c *Converter) wait() {
	if c.Pause <= 0 {
		return
	}
	if c.Sleep != nil {
		c.Sleep(c.Pause)
		return
	}
	time.Sleep(c.Pause)
}

// SwitchToBoughtX turns the selected "Bought" transaction into a "BoughtX"
// funded from account, then saves it.
//
// The keys are sent blind. Nothing confirms that Quicken's type-ahead
// accepted "boughtx" or matched the account name before the transaction is
// saved; an unknown account name leaves Quicken prompting on the last ENTER.
// A failure part way through leaves the transaction half edited.
func (c *Converter) SwitchToBoughtX(w automation.Window, account string) error {
	for _, s := range boughtXSteps(account) {
		if s.pause {
			c.wait()
		}
		if err := w.TypeKeys(s.keys); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return nil
}

type step struct {
	name  string
	keys  string
	pause bool
}

func boughtXSteps(account string) []step {
	steps := []step{
		{name: "select type field", keys: "{TAB}"},
		{name: "type action", keys: "boughtx"},
	}
	for i := 1; i <= transferFieldTabs; i++ {
		steps = append(steps, step{
			name:  fmt.Sprintf("tab to transfer field (%d/%d)", i, transferFieldTabs),
			keys:  "{TAB}",
			pause: true,
		})
	}
	return append(steps,
		step{name: "type account", keys: automation.Escape(account), pause: true},
		step{name: "accept account", keys: "{ENTER}", pause: true},
		step{name: "save transaction", keys: "{ENTER}", pause: true},
	)
}
