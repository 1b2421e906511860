package money

import (
	"math"
	"strconv"
	"time"
)

// Cents represents a currency amount in hundredths of a unit.
// All internal arithmetic happens on Cents; decimal values only
// appear at the API boundary.
type Cents int64

// FromDecimal converts a decimal amount to Cents, rounding to the
// nearest cent.
func FromDecimal(amount float64) Cents {
	return Cents(math.Round(amount * 100))
}

// Decimal returns the amount as a decimal value.
func (c Cents) Decimal() float64 {
	return float64(c) / 100
}

// IsNegative reports whether the amount is below zero.
func (c Cents) IsNegative() bool {
	return c < 0
}

// Format renders the amount as a display currency string with
// thousands separators, e.g. 123450 -> "$1,234.50".
func (c Cents) Format() string {
	v := int64(c)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	whole := strconv.FormatInt(v/100, 10)
	frac := v % 100

	// Insert thousands separators into the whole part.
	grouped := make([]byte, 0, len(whole)+len(whole)/3)
	for i, d := range []byte(whole) {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped = append(grouped, ',')
		}
		grouped = append(grouped, d)
	}

	fracStr := strconv.FormatInt(frac, 10)
	if frac < 10 {
		fracStr = "0" + fracStr
	}

	return "$" + sign + string(grouped) + "." + fracStr
}

// Sum adds a list of amounts.
func Sum(amounts []Cents) Cents {
	var total Cents
	for _, a := range amounts {
		total += a
	}
	return total
}

// FormatTimestamp renders a timestamp for transaction history display.
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "unknown date"
	}
	return t.Format("02 Jan 2006 15:04")
}
