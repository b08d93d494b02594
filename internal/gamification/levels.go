package gamification

import "github.com/typedrill/backend/internal/models"

// levelXPTable holds the total XP required to reach each level, index 0
// being level 1. Levels past the table grow by a flat 75k per level so
// leaderboard ranking stays meaningful without an unbounded table.
var levelXPTable = []int{
	0,      // Level 1
	100,    // Level 2
	250,    // Level 3
	450,    // Level 4
	700,    // Level 5
	1000,   // Level 6
	1350,   // Level 7
	1750,   // Level 8
	2200,   // Level 9
	2700,   // Level 10
	3300,   // Level 11
	4000,   // Level 12
	4800,   // Level 13
	5700,   // Level 14
	6700,   // Level 15
	7800,   // Level 16
	9000,   // Level 17
	10300,  // Level 18
	11700,  // Level 19
	13200,  // Level 20
	15000,  // Level 21
	17000,  // Level 22
	19500,  // Level 23
	22500,  // Level 24
	26000,  // Level 25
	30000,  // Level 26
	35000,  // Level 27
	41000,  // Level 28
	48000,  // Level 29
	56000,  // Level 30
	65000, 75000, 85000, 96000, 108000, 121000, 135000, 150000, 166000, 183000, // Levels 31-40
	201000, 225000, 250000, 275000, 300000, 330000, 365000, 405000, 450000, // Levels 41-49
	500000, // Level 50
}

// xpPerLevelBeyondTable is the flat tail applied past level 50.
const xpPerLevelBeyondTable = 75000

// MaxTabulatedLevel is the last level with a canonical table entry.
const MaxTabulatedLevel = 50

// XPForLevel returns the total XP required to reach a level.
// Non-positive levels return 0; XPForLevel(1) is 0.
func XPForLevel(level int) int {
	if level <= 0 {
		return 0
	}
	if level <= len(levelXPTable) {
		return levelXPTable[level-1]
	}
	return levelXPTable[len(levelXPTable)-1] + (level-len(levelXPTable))*xpPerLevelBeyondTable
}

// LevelFromXP returns the largest level L with XPForLevel(L) <= totalXP.
// Level numbering starts at 1, so LevelFromXP(0) is 1.
func LevelFromXP(totalXP int64) int {
	for level := 1; level <= len(levelXPTable); level++ {
		if totalXP < int64(XPForLevel(level+1)) {
			return level
		}
	}
	excess := totalXP - int64(levelXPTable[len(levelXPTable)-1])
	return len(levelXPTable) + int(excess/xpPerLevelBeyondTable)
}

// Progress builds the level-progress summary for a cumulative XP total.
func Progress(userID int64, totalXP int64) models.LevelProgress {
	level := LevelFromXP(totalXP)
	forCurrent := XPForLevel(level)
	forNext := XPForLevel(level + 1)
	return models.LevelProgress{
		UserID:            userID,
		CurrentXP:         totalXP,
		CurrentLevel:      level,
		XPForCurrentLevel: forCurrent,
		XPForNextLevel:    forNext,
		XPIntoLevel:       totalXP - int64(forCurrent),
		XPToNext:          int64(forNext) - totalXP,
	}
}

// Progression returns the tabulated level curve for the public endpoint.
func Progression() models.LevelProgressionResponse {
	entries := make([]models.LevelProgressionEntry, 0, len(levelXPTable))
	for level := 1; level <= len(levelXPTable); level++ {
		entries = append(entries, models.LevelProgressionEntry{
			Level:          level,
			TotalXPNeeded:  XPForLevel(level),
			XPForNextLevel: XPForLevel(level+1) - XPForLevel(level),
			IsMaxTabulated: level == len(levelXPTable),
		})
	}
	return models.LevelProgressionResponse{
		Progression:      entries,
		MaxTrackedLevel:  len(levelXPTable),
		XPPerLevelBeyond: xpPerLevelBeyondTable,
	}
}
