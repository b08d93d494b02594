package database

import (
	"strings"
	"testing"
)

func TestGenerateUsernameBase(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Grace Hopper", "gracehopper"},
		{"Ada", "ada"},
		{"  A.  B.  ", "ab"},
		{"Name With A Very Long Handle", "namewithaver"}, // truncated to 12
		{"!!!", "typist"},
		{"", "typist"},
		{"User42", "user42"},
	}

	for _, tt := range tests {
		got := generateUsernameBase(tt.name)
		if got != tt.want {
			t.Errorf("generateUsernameBase(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestGenerateUsername(t *testing.T) {
	u := GenerateUsername("Grace Hopper")

	if !strings.HasPrefix(u, "gracehopper") {
		t.Errorf("username %q missing base prefix", u)
	}
	suffix := strings.TrimPrefix(u, "gracehopper")
	if len(suffix) != 4 {
		t.Errorf("username %q suffix %q is not 4 digits", u, suffix)
	}
	for _, c := range suffix {
		if c < '0' || c > '9' {
			t.Errorf("username %q has non-digit suffix", u)
		}
	}
}
