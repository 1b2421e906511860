package utils

import (
	"strings"
	"testing"
)

func TestNewDisplayCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := NewDisplayCode()
		if len(code) != 6 || !strings.HasPrefix(code, "#") {
			t.Fatalf("unexpected code shape: %q", code)
		}
		for _, r := range code[1:] {
			if !strings.ContainsRune(codeAlphabet, r) {
				t.Fatalf("code %q contains %q outside the alphabet", code, r)
			}
		}
		seen[code] = true
	}
	// 100 draws from a 36^5 space colliding down to a handful would
	// mean the generator is broken.
	if len(seen) < 90 {
		t.Errorf("only %d distinct codes out of 100", len(seen))
	}
}

func TestDisplayCodeFromID(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"abcdef123", "#ABCDE"},
		{"ab", "#AB"},
		{"", "#"},
	}
	for _, tt := range tests {
		if got := DisplayCodeFromID(tt.id); got != tt.want {
			t.Errorf("DisplayCodeFromID(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}
