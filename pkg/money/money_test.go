package money

import (
	"testing"
	"time"
)

func TestFromDecimal(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   Cents
	}{
		{"whole units", 7, 700},
		{"cents", 7.50, 750},
		{"rounds up", 0.999, 100},
		{"rounds half up", 0.005, 1},
		{"negative", -90.00, -9000},
		{"zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromDecimal(tt.amount); got != tt.want {
				t.Errorf("FromDecimal(%v) = %d, want %d", tt.amount, got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		cents Cents
		want  string
	}{
		{"zero", 0, "$0.00"},
		{"under a unit", 50, "$0.50"},
		{"single digit fraction", 705, "$7.05"},
		{"plain", 11000, "$110.00"},
		{"thousands separator", 123450, "$1,234.50"},
		{"millions", 123456789, "$1,234,567.89"},
		{"negative", -9000, "$-90.00"},
		{"negative with separator", -123450, "$-1,234.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cents.Format(); got != tt.want {
				t.Errorf("Cents(%d).Format() = %q, want %q", tt.cents, got, tt.want)
			}
		})
	}
}

func TestDecimalRoundTrip(t *testing.T) {
	for _, c := range []Cents{0, 1, 99, 100, 750, -9000, 123450} {
		if got := FromDecimal(c.Decimal()); got != c {
			t.Errorf("round trip of %d produced %d", c, got)
		}
	}
}

func TestSum(t *testing.T) {
	if got := Sum([]Cents{700, 250, 150}); got != 1100 {
		t.Errorf("Sum = %d, want 1100", got)
	}
	if got := Sum(nil); got != 0 {
		t.Errorf("Sum(nil) = %d, want 0", got)
	}
}

func TestIsNegative(t *testing.T) {
	if Cents(0).IsNegative() {
		t.Error("zero should not be negative")
	}
	if !Cents(-1).IsNegative() {
		t.Error("-1 should be negative")
	}
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2024, 3, 7, 14, 5, 0, 0, time.UTC)
	if got := FormatTimestamp(ts); got != "07 Mar 2024 14:05" {
		t.Errorf("FormatTimestamp = %q", got)
	}
	if got := FormatTimestamp(time.Time{}); got != "unknown date" {
		t.Errorf("FormatTimestamp(zero) = %q", got)
	}
}
