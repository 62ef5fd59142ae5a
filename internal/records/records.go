package records

import "time"

// DateLayout is the wire format for record dates.
const DateLayout = "2006-01-02"

// Expense is one expense row as served by the record source.
type Expense struct {
	ID           string  `json:"id"`
	Date         string  `json:"date"`
	Amount       float64 `json:"amount"`
	CategoryName string  `json:"category_name"`
	Description  string  `json:"description,omitempty"`
}

// Income is one income row as served by the record source.
type Income struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Source      string  `json:"source"`
	Description string  `json:"description,omitempty"`
}

// ParseDate parses a record date. The bool reports whether the date was
// well-formed; callers drop records with malformed dates from date-bounded
// views rather than erroring.
func ParseDate(s string) (time.Time, bool) {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
