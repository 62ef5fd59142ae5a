package filter

import "time"

// Preset keys for the period picker. Custom periods carry explicit bounds.
const (
	PresetThisMonth   = "thisMonth"
	PresetLastMonth   = "lastMonth"
	PresetLast3Months = "last3Months"
	PresetLast6Months = "last6Months"
	PresetYearToDate  = "yearToDate"
	PresetLastYear    = "lastYear"
	PresetAllTime     = "allTime"
	PresetCustom      = "custom"
)

// Presets lists the picker presets in display order.
var Presets = []string{
	PresetThisMonth,
	PresetLastMonth,
	PresetLast3Months,
	PresetLast6Months,
	PresetYearToDate,
	PresetLastYear,
	PresetAllTime,
}

// Period is the session-scoped time window. Nil/nil means all time. A
// period with exactly one bound set is partial: it yields an empty view,
// which is a valid state rather than an error.
type Period struct {
	Start  *time.Time
	End    *time.Time
	Preset string
}

// AllTime reports whether the period places no time restriction.
func (p Period) AllTime() bool {
	return p.Start == nil && p.End == nil
}

// Partial reports whether exactly one bound is set.
func (p Period) Partial() bool {
	return (p.Start == nil) != (p.End == nil)
}

// Contains reports whether t falls within the inclusive [Start, End]
// window. Callers handle AllTime/Partial before asking.
func (p Period) Contains(t time.Time) bool {
	if p.Start == nil || p.End == nil {
		return false
	}
	return !t.Before(*p.Start) && !t.After(*p.End)
}

// PresetPeriod resolves a preset key to concrete inclusive bounds
// relative to now. Unknown keys resolve to all time.
func PresetPeriod(preset string, now time.Time) Period {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)

	span := func(start, end time.Time) Period {
		return Period{Start: &start, End: &end, Preset: preset}
	}

	switch preset {
	case PresetThisMonth:
		return span(monthStart, monthStart.AddDate(0, 1, -1))
	case PresetLastMonth:
		return span(monthStart.AddDate(0, -1, 0), monthStart.AddDate(0, 0, -1))
	case PresetLast3Months:
		return span(dayStart.AddDate(0, -3, 0), dayStart)
	case PresetLast6Months:
		return span(dayStart.AddDate(0, -6, 0), dayStart)
	case PresetYearToDate:
		return span(time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.Local), dayStart)
	case PresetLastYear:
		return span(dayStart.AddDate(-1, 0, 0), dayStart)
	default:
		return Period{Preset: PresetAllTime}
	}
}

// CustomPeriod builds an explicit-bounds period. Either bound may be nil;
// the caller gets the partial-period semantics that implies.
func CustomPeriod(start, end *time.Time) Period {
	return Period{Start: start, End: end, Preset: PresetCustom}
}
