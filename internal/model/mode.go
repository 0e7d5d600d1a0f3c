package model

import "strings"

// Mode selects the execution speed for a whole run. It is fixed at startup
// and never changes mid-run.
type Mode int

const (
	ModeFast Mode = iota
	ModeSlow
)

// ParseMode interprets the operator's speed answer. "s" (any case) selects
// slow mode; anything else selects fast, matching the prompt's wording.
func ParseMode(s string) Mode {
	if strings.EqualFold(strings.TrimSpace(s), "s") {
		return ModeSlow
	}
	return ModeFast
}

func (m Mode) String() string {
	if m == ModeSlow {
		return "slow"
	}
	return "fast"
}

// Width is the worker-pool width for a batch of n operations: 1 in slow
// mode, n in fast mode.
func (m Mode) Width(n int) int {
	if m == ModeSlow {
		return 1
	}
	return n
}
