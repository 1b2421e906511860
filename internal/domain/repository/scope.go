package repository

import "regexp"

// Collection names under a cutoff scope
const (
	CollectionOrders   = "orders"
	CollectionExpenses = "expenses"
)

var cutoffDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Scope identifies the business-date partition all orders and expenses
// belong to. Each (operator, date) pair is an isolated bucket with its
// own totals and report.
type Scope struct {
	OperatorID string
	Date       string // YYYY-MM-DD
}

// IsZero reports whether the scope is unset
func (s Scope) IsZero() bool {
	return s.OperatorID == "" && s.Date == ""
}

// ValidCutoffDate reports whether the string is a well-formed cutoff
// date. Shape check only here; calendar validity is checked where the
// date is parsed.
func ValidCutoffDate(date string) bool {
	return cutoffDatePattern.MatchString(date)
}
