package gamification

import (
	"strings"
	"testing"
)

func TestLeaderboardOrder(t *testing.T) {
	tests := []struct {
		by   string
		want string
	}{
		{"xp", "u.total_xp"},
		{"wpm", "COALESCE(g.best_wpm, 0)"},
		{"streak", "COALESCE(g.max_streak, 0)"},
		{"", "u.total_xp"},       // unknown keys fall back to XP
		{"elbows", "u.total_xp"},
	}

	for _, tt := range tests {
		got := leaderboardOrder(tt.by)
		if got != tt.want {
			t.Errorf("leaderboardOrder(%q) = %q, want %q", tt.by, got, tt.want)
		}
	}
}

func TestLeaderboardOrderStatsColumnsNullSafe(t *testing.T) {
	// The stats join is a LEFT JOIN: users without a stats row join NULL,
	// and a bare DESC sort would put them first. Every stats-backed sort
	// expression must therefore coalesce before ordering.
	for _, by := range []string{"wpm", "streak"} {
		expr := leaderboardOrder(by)
		if !strings.HasPrefix(expr, "COALESCE(") {
			t.Errorf("leaderboardOrder(%q) = %q, not NULL-safe for a LEFT JOIN sort", by, expr)
		}
	}
}
