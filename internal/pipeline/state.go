package pipeline

import (
	"fmt"
	"strings"

	"songfetch/internal/titles"
)

// Phase selects which passes a run performs.
type Phase string

const (
	// PhaseAll resolves, saves, fetches and saves.
	PhaseAll Phase = "all"
	// PhaseResolve stops after the first checkpoint.
	PhaseResolve Phase = "resolve"
	// PhaseFetch only downloads records that already carry a link.
	PhaseFetch Phase = "fetch"
)

// ParsePhase validates a phase name. An empty name means PhaseAll.
func ParsePhase(value string) (Phase, error) {
	switch Phase(strings.ToLower(strings.TrimSpace(value))) {
	case "", PhaseAll:
		return PhaseAll, nil
	case PhaseResolve:
		return PhaseResolve, nil
	case PhaseFetch:
		return PhaseFetch, nil
	default:
		return "", fmt.Errorf("unknown phase %q (use all, resolve or fetch)", value)
	}
}

func (p Phase) resolves() bool { return p == PhaseAll || p == PhaseResolve }

func (p Phase) fetches() bool { return p == PhaseAll || p == PhaseFetch }

// State is where a record stands in the title lifecycle.
type State string

const (
	StateBlank      State = "blank"
	StateUnresolved State = "unresolved"
	StateResolved   State = "resolved"
	StateDisabled   State = "disabled"
)

// StateOf derives the lifecycle state of a record. Downloaded records are
// disabled, so a disabled record is reported as StateDisabled regardless of
// how it got there.
func StateOf(rec titles.Record) State {
	switch {
	case rec.Disabled:
		return StateDisabled
	case rec.Blank():
		return StateBlank
	case rec.HasLink():
		return StateResolved
	default:
		return StateUnresolved
	}
}

// CountStates tallies records by state.
func CountStates(records []titles.Record) map[State]int {
	counts := make(map[State]int, 4)
	for _, rec := range records {
		counts[StateOf(rec)]++
	}
	return counts
}
