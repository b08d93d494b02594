package gamification

import "testing"

func TestCalculateTestXPComponents(t *testing.T) {
	// 65 WPM at 97.5% on a medium 250-char test with a day-1 streak:
	// 10 base + 52 speed + 38 accuracy + 10 difficulty + 2 length + 5 streak
	b := CalculateTestXP(65, 97.5, "medium", 250, 1)
	if b.Base != 10 {
		t.Errorf("Base = %d, want 10", b.Base)
	}
	if b.Speed != 52 {
		t.Errorf("Speed = %d, want 52", b.Speed)
	}
	if b.Accuracy != 38 {
		t.Errorf("Accuracy = %d, want 38", b.Accuracy)
	}
	if b.Difficulty != 10 {
		t.Errorf("Difficulty = %d, want 10", b.Difficulty)
	}
	if b.Length != 2 {
		t.Errorf("Length = %d, want 2", b.Length)
	}
	if b.Streak != 5 {
		t.Errorf("Streak = %d, want 5", b.Streak)
	}
	if b.Total != 117 {
		t.Errorf("Total = %d, want 117", b.Total)
	}
}

func TestCalculateTestXPTotalIsSum(t *testing.T) {
	tests := []struct {
		wpm        float64
		accuracy   float64
		difficulty string
		chars      int
		streak     int
	}{
		{0, 0, "easy", 0, 0},
		{40, 80, "easy", 99, 0},
		{72.4, 91.3, "medium", 321, 3},
		{150, 100, "hard", 1000, 30},
		{119.9, 99.9, "hard", 50, 1},
	}

	for _, tt := range tests {
		b := CalculateTestXP(tt.wpm, tt.accuracy, tt.difficulty, tt.chars, tt.streak)
		sum := b.Base + b.Speed + b.Accuracy + b.Difficulty + b.Length + b.Streak
		if b.Total != sum {
			t.Errorf("CalculateTestXP(%v, %v, %q, %d, %d): Total = %d, components sum to %d",
				tt.wpm, tt.accuracy, tt.difficulty, tt.chars, tt.streak, b.Total, sum)
		}
	}
}

func TestSpeedBonusCap(t *testing.T) {
	// Anything at or past 120 WPM earns the same capped bonus
	at := CalculateTestXP(120, 0, "easy", 0, 0)
	if at.Speed != 96 {
		t.Errorf("Speed at 120 WPM = %d, want 96", at.Speed)
	}

	past := CalculateTestXP(300, 0, "easy", 0, 0)
	if past.Speed != 96 {
		t.Errorf("Speed at 300 WPM = %d, want 96", past.Speed)
	}

	below := CalculateTestXP(119, 0, "easy", 0, 0)
	if below.Speed != 95 {
		t.Errorf("Speed at 119 WPM = %d, want 95", below.Speed)
	}
}

func TestAccuracyBonusSteps(t *testing.T) {
	tests := []struct {
		accuracy float64
		want     int
	}{
		{100, 40},
		{99.9, 38},
		{95, 38},
		{94.9, 36},
		{50, 20},
		{4.9, 0},
		{0, 0},
	}

	for _, tt := range tests {
		b := CalculateTestXP(0, tt.accuracy, "easy", 0, 0)
		if b.Accuracy != tt.want {
			t.Errorf("Accuracy bonus at %v%% = %d, want %d", tt.accuracy, b.Accuracy, tt.want)
		}
	}
}

func TestDifficultyBonus(t *testing.T) {
	tests := []struct {
		difficulty string
		want       int
	}{
		{"easy", 0},
		{"medium", 10},
		{"hard", 20},
		{"MEDIUM", 10}, // labels are case-insensitive
		{"Hard", 20},
		{"extreme", 0}, // unknown labels earn nothing
		{"", 0},
	}

	for _, tt := range tests {
		b := CalculateTestXP(0, 0, tt.difficulty, 0, 0)
		if b.Difficulty != tt.want {
			t.Errorf("Difficulty bonus for %q = %d, want %d", tt.difficulty, b.Difficulty, tt.want)
		}
	}
}

func TestLengthBonus(t *testing.T) {
	tests := []struct {
		chars int
		want  int
	}{
		{0, 0},
		{99, 0},
		{100, 1},
		{250, 2},
		{1000, 10},
	}

	for _, tt := range tests {
		b := CalculateTestXP(0, 0, "easy", tt.chars, 0)
		if b.Length != tt.want {
			t.Errorf("Length bonus for %d chars = %d, want %d", tt.chars, b.Length, tt.want)
		}
	}
}

func TestStreakBonus(t *testing.T) {
	// 5 XP per consecutive day, nothing for a zero streak
	b := CalculateTestXP(0, 0, "easy", 0, 0)
	if b.Streak != 0 {
		t.Errorf("Streak bonus at streak 0 = %d, want 0", b.Streak)
	}

	b = CalculateTestXP(0, 0, "easy", 0, 7)
	if b.Streak != 35 {
		t.Errorf("Streak bonus at streak 7 = %d, want 35", b.Streak)
	}
}
