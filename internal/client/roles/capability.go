// Package roles answers "is this user an admin / a reviewer" for the UI.
// Answers start as guesses from the session cache or token claims and are
// replaced by verdicts of authenticated probe requests.
package roles

import "fmt"

type state uint8

const (
	stateUnknown state = iota
	stateGuessed
	stateConfirmed
)

// Capability is a three-state role answer: unknown, guessed or confirmed.
// The zero value is Unknown.
type Capability struct {
	state   state
	allowed bool
}

func Unknown() Capability { return Capability{} }

func Guessed(allowed bool) Capability {
	return Capability{state: stateGuessed, allowed: allowed}
}

func Confirmed(allowed bool) Capability {
	return Capability{state: stateConfirmed, allowed: allowed}
}

// Allowed is false for Unknown.
func (c Capability) Allowed() bool { return c.state != stateUnknown && c.allowed }

// Verified reports whether a probe produced this answer.
func (c Capability) Verified() bool { return c.state == stateConfirmed }

func (c Capability) Known() bool { return c.state != stateUnknown }

func (c Capability) String() string {
	switch c.state {
	case stateGuessed:
		return fmt.Sprintf("guessed(%t)", c.allowed)
	case stateConfirmed:
		return fmt.Sprintf("confirmed(%t)", c.allowed)
	}
	return "unknown"
}
