package models

import "testing"

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Grace Hopper", "Grace H."},
		{"Ada", "Ada"},
		{"Jean Luc Picard", "Jean P."},
		{"  Spaced   Out  ", "Spaced O."},
		{"", ""},
	}

	for _, tt := range tests {
		got := User{Name: tt.name}.DisplayName()
		if got != tt.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
