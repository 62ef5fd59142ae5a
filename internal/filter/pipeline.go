// Package filter is the pure derivation chain every widget's data flows
// through: raw records -> time-period filter -> derived amount bounds ->
// attribute filter. It holds no state and is recomputed whenever any
// input changes, so all widgets observe the same view at any instant.
package filter

import (
	"math"

	"github.com/jask/moneyboard/internal/records"
)

// MinDerivedMax keeps the amount-range control usable when data is
// sparse: the derived ceiling never drops below this.
const MinDerivedMax = 1000

// Filters are the user-adjustable attribute constraints applied on top
// of the time period. An empty category set means no restriction.
type Filters struct {
	Categories  map[string]bool
	AmountRange [2]float64
}

// DefaultFilters returns the unrestricted filter set for a derived max.
func DefaultFilters(maxAmount float64) Filters {
	if maxAmount < MinDerivedMax {
		maxAmount = MinDerivedMax
	}
	return Filters{
		Categories:  make(map[string]bool),
		AmountRange: [2]float64{0, maxAmount},
	}
}

func (f Filters) allowsCategory(name string) bool {
	if len(f.Categories) == 0 {
		return true // no filter = show all
	}
	return f.Categories[name]
}

func (f Filters) allowsAmount(amount float64) bool {
	return amount >= f.AmountRange[0] && amount <= f.AmountRange[1]
}

// Clamp enforces 0 <= lower <= upper <= derivedMax. The upper bound is
// pulled down whenever the observed maximum shrinks below it.
func Clamp(f Filters, derivedMax float64) Filters {
	lo, hi := f.AmountRange[0], f.AmountRange[1]
	if hi > derivedMax {
		hi = derivedMax
	}
	if hi < 0 {
		hi = 0
	}
	if lo < 0 {
		lo = 0
	}
	if lo > hi {
		lo = hi
	}
	f.AmountRange = [2]float64{lo, hi}
	return f
}

// ExpensesByPeriod keeps expenses whose date falls inside the period.
// Records with unparsable dates are excluded from date-bounded views.
func ExpensesByPeriod(rows []records.Expense, p Period) []records.Expense {
	if p.AllTime() {
		out := make([]records.Expense, 0, len(rows))
		return append(out, rows...)
	}
	out := make([]records.Expense, 0, len(rows))
	if p.Partial() {
		return out
	}
	for _, r := range rows {
		d, ok := records.ParseDate(r.Date)
		if !ok {
			continue
		}
		if p.Contains(d) {
			out = append(out, r)
		}
	}
	return out
}

// IncomeByPeriod keeps income whose date falls inside the period.
func IncomeByPeriod(rows []records.Income, p Period) []records.Income {
	if p.AllTime() {
		out := make([]records.Income, 0, len(rows))
		return append(out, rows...)
	}
	out := make([]records.Income, 0, len(rows))
	if p.Partial() {
		return out
	}
	for _, r := range rows {
		d, ok := records.ParseDate(r.Date)
		if !ok {
			continue
		}
		if p.Contains(d) {
			out = append(out, r)
		}
	}
	return out
}

// DeriveMaxAmount computes the amount-range ceiling: the maximum absolute
// amount across the time-filtered expenses, floored at MinDerivedMax.
func DeriveMaxAmount(rows []records.Expense) float64 {
	maxAmount := 0.0
	for _, r := range rows {
		if a := math.Abs(r.Amount); a > maxAmount {
			maxAmount = a
		}
	}
	if maxAmount < MinDerivedMax {
		return MinDerivedMax
	}
	return maxAmount
}

// Result is the shared filtered view handed to every widget instance.
type Result struct {
	Expenses  []records.Expense
	Income    []records.Income
	MaxAmount float64
	Filters   Filters
}

// Apply runs the full chain: time filter both lists, derive the amount
// ceiling from the time-filtered expenses, clamp the active range against
// it, then attribute-filter both lists. The clamped filters are returned
// so the caller can store them back as the current active set.
func Apply(expenses []records.Expense, income []records.Income, p Period, f Filters) Result {
	te := ExpensesByPeriod(expenses, p)
	ti := IncomeByPeriod(income, p)

	maxAmount := DeriveMaxAmount(te)
	f = Clamp(f, maxAmount)

	fe := make([]records.Expense, 0, len(te))
	for _, r := range te {
		if f.allowsCategory(r.CategoryName) && f.allowsAmount(r.Amount) {
			fe = append(fe, r)
		}
	}
	fi := make([]records.Income, 0, len(ti))
	for _, r := range ti {
		if f.allowsCategory(r.Source) && f.allowsAmount(r.Amount) {
			fi = append(fi, r)
		}
	}

	return Result{Expenses: fe, Income: fi, MaxAmount: maxAmount, Filters: f}
}
