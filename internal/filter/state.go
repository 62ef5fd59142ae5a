package filter

import (
	"math"
	"time"
)

// State is the session-scoped filter selection shared by every widget.
// It is not part of the persisted dashboard state. Single-threaded UI
// code mutates it directly; there is no locking.
type State struct {
	Period Period
	Active Filters
}

// NewState starts with the this-month period and unrestricted filters.
func NewState(now time.Time) *State {
	return &State{
		Period: PresetPeriod(PresetThisMonth, now),
		Active: DefaultFilters(MinDerivedMax),
	}
}

// Reset restores the default attribute filters: empty category set, full
// amount range. Invoked when the filter-configuring widget is removed.
// The upper bound is left unbounded; the next Apply clamps it to the
// live derived ceiling.
func (s *State) Reset() {
	s.Active = DefaultFilters(MinDerivedMax)
	s.Active.AmountRange[1] = math.Inf(1)
}
