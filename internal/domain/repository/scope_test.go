package repository

import "testing"

func TestValidCutoffDate(t *testing.T) {
	tests := []struct {
		date  string
		valid bool
	}{
		{"2024-03-07", true},
		{"1999-12-31", true},
		{"2024-3-07", false},
		{"2024-03-7", false},
		{"24-03-07", false},
		{"2024/03/07", false},
		{"2024-03-07x", false},
		{"today", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidCutoffDate(tt.date); got != tt.valid {
			t.Errorf("ValidCutoffDate(%q) = %v, want %v", tt.date, got, tt.valid)
		}
	}
}

func TestScopeIsZero(t *testing.T) {
	if !(Scope{}).IsZero() {
		t.Error("empty scope should be zero")
	}
	if (Scope{OperatorID: "op", Date: "2024-03-07"}).IsZero() {
		t.Error("populated scope should not be zero")
	}
}
