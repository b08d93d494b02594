package gamification

import (
	"math"
	"strings"

	"github.com/typedrill/backend/internal/models"
)

// wpmCap bounds the speed bonus so unrealistic speed claims cannot inflate
// a single test's reward.
const wpmCap = 120

// baseXP is granted for every completed test.
const baseXP = 10

// difficultyBonuses maps a difficulty label (lowercased) to its flat bonus.
// Unrecognized labels earn no bonus rather than erroring.
var difficultyBonuses = map[string]int{
	"easy":   0,
	"medium": 10,
	"hard":   20,
}

// CalculateTestXP maps a test's performance metrics to an XP breakdown.
// Each component is computed independently and summed:
//
//	base:       flat 10
//	speed:      floor(min(wpm, 120) * 0.8)
//	accuracy:   floor(accuracy / 5) * 2
//	difficulty: 0 / 10 / 20 for easy / medium / hard
//	length:     +1 per 100 characters
//	streak:     +5 per consecutive day, using the post-update streak
//
// Inputs are assumed non-negative; validation is the caller's job.
func CalculateTestXP(wpm, accuracy float64, difficulty string, characterCount, currentStreak int) models.XPBreakdown {
	speedBonus := int(math.Floor(math.Min(wpm, wpmCap) * 0.8))
	accuracyBonus := int(math.Floor(accuracy/5)) * 2
	difficultyBonus := difficultyBonuses[strings.ToLower(difficulty)]
	lengthBonus := characterCount / 100

	streakBonus := 0
	if currentStreak > 0 {
		streakBonus = currentStreak * 5
	}

	return models.XPBreakdown{
		Base:       baseXP,
		Speed:      speedBonus,
		Accuracy:   accuracyBonus,
		Difficulty: difficultyBonus,
		Length:     lengthBonus,
		Streak:     streakBonus,
		Total:      baseXP + speedBonus + accuracyBonus + difficultyBonus + lengthBonus + streakBonus,
	}
}
