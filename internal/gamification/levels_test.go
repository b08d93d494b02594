package gamification

import "testing"

func TestXPForLevelKnownValues(t *testing.T) {
	tests := []struct {
		level int
		want  int
	}{
		{0, 0},
		{1, 0},
		{2, 100},
		{3, 250},
		{10, 2700},
		{30, 56000},
		{50, 500000},
		{51, 575000},  // first extrapolated level
		{52, 650000},
		{100, 4250000},
	}

	for _, tt := range tests {
		got := XPForLevel(tt.level)
		if got != tt.want {
			t.Errorf("XPForLevel(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestXPForLevelMonotonic(t *testing.T) {
	prev := XPForLevel(1)
	for level := 2; level <= 200; level++ {
		cur := XPForLevel(level)
		if cur <= prev {
			t.Fatalf("XPForLevel(%d) = %d, not greater than XPForLevel(%d) = %d", level, cur, level-1, prev)
		}
		prev = cur
	}
}

func TestLevelFromXP(t *testing.T) {
	tests := []struct {
		totalXP int64
		want    int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{249, 2},
		{250, 3},
		{2700, 10},
		{499999, 49},
		{500000, 50},
		{574999, 50},
		{575000, 51}, // past the table
		{650000, 52},
	}

	for _, tt := range tests {
		got := LevelFromXP(tt.totalXP)
		if got != tt.want {
			t.Errorf("LevelFromXP(%d) = %d, want %d", tt.totalXP, got, tt.want)
		}
	}
}

func TestLevelRoundtrip(t *testing.T) {
	// The XP threshold of every level maps back to that level
	for level := 1; level <= 120; level++ {
		got := LevelFromXP(int64(XPForLevel(level)))
		if got != level {
			t.Errorf("LevelFromXP(XPForLevel(%d)) = %d, want %d", level, got, level)
		}
	}

	// One XP below a threshold stays on the previous level
	for level := 2; level <= 120; level++ {
		got := LevelFromXP(int64(XPForLevel(level)) - 1)
		if got != level-1 {
			t.Errorf("LevelFromXP(XPForLevel(%d)-1) = %d, want %d", level, got, level-1)
		}
	}
}

func TestProgress(t *testing.T) {
	// 150 XP: level 2 (threshold 100), next at 250
	p := Progress(7, 150)
	if p.CurrentLevel != 2 {
		t.Errorf("CurrentLevel = %d, want 2", p.CurrentLevel)
	}
	if p.XPForCurrentLevel != 100 || p.XPForNextLevel != 250 {
		t.Errorf("thresholds = (%d, %d), want (100, 250)", p.XPForCurrentLevel, p.XPForNextLevel)
	}
	if p.XPIntoLevel != 50 {
		t.Errorf("XPIntoLevel = %d, want 50", p.XPIntoLevel)
	}
	if p.XPToNext != 100 {
		t.Errorf("XPToNext = %d, want 100", p.XPToNext)
	}
	if p.UserID != 7 {
		t.Errorf("UserID = %d, want 7", p.UserID)
	}

	// Fresh account
	p = Progress(1, 0)
	if p.CurrentLevel != 1 || p.XPIntoLevel != 0 || p.XPToNext != 100 {
		t.Errorf("fresh account progress = %+v", p)
	}
}

func TestProgression(t *testing.T) {
	resp := Progression()
	if len(resp.Progression) != MaxTabulatedLevel {
		t.Fatalf("progression has %d entries, want %d", len(resp.Progression), MaxTabulatedLevel)
	}
	if resp.MaxTrackedLevel != MaxTabulatedLevel {
		t.Errorf("MaxTrackedLevel = %d, want %d", resp.MaxTrackedLevel, MaxTabulatedLevel)
	}
	if resp.XPPerLevelBeyond != xpPerLevelBeyondTable {
		t.Errorf("XPPerLevelBeyond = %d, want %d", resp.XPPerLevelBeyond, xpPerLevelBeyondTable)
	}

	first := resp.Progression[0]
	if first.Level != 1 || first.TotalXPNeeded != 0 || first.XPForNextLevel != 100 {
		t.Errorf("first entry = %+v", first)
	}

	last := resp.Progression[len(resp.Progression)-1]
	if !last.IsMaxTabulated {
		t.Errorf("last entry not flagged as max: %+v", last)
	}
	if last.TotalXPNeeded != 500000 {
		t.Errorf("last entry TotalXPNeeded = %d, want 500000", last.TotalXPNeeded)
	}
}
