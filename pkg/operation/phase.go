// Package operation implements the form runner shared by every wallet form:
// one asynchronous external call per submission, an explicit phase machine
// (idle → pending → succeeded|failed), error classification, and a delayed
// reset after success.
package operation

import (
	"fmt"
	"strings"
)

// Phase is the state of one form.
type Phase int

const (
	// PhaseIdle is the initial state and the state after a reset.
	PhaseIdle Phase = iota
	// PhasePending means an external call is in flight.
	PhasePending
	// PhaseSucceeded means the last call completed; a reset is scheduled.
	PhaseSucceeded
	// PhaseFailed means the last call failed. It is not reset automatically.
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePending:
		return "pending"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Disables reports whether the form rejects input changes and submissions in this phase.
func (p Phase) Disables() bool {
	return p == PhasePending || p == PhaseSucceeded
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a phase name.
func (p *Phase) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "idle":
		*p = PhaseIdle
	case "pending":
		*p = PhasePending
	case "succeeded":
		*p = PhaseSucceeded
	case "failed":
		*p = PhaseFailed
	default:
		return fmt.Errorf("unknown phase %q", string(text))
	}
	return nil
}
