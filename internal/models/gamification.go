package models

import "time"

// ── Core Gamification Structs ─────────────────────────────

// UserGameStats holds the per-user aggregates the badge rule engine reads.
// Counters and watermarks only ever grow; the streak pair follows the
// transition function in the gamification package.
type UserGameStats struct {
	UserID            int64      `json:"user_id"`
	CurrentStreak     int        `json:"current_streak"`
	MaxStreak         int        `json:"max_streak"`
	LastTestDate      *time.Time `json:"last_test_date"`
	TestsCompleted    int        `json:"total_tests_completed"`
	WordsTyped        int64      `json:"total_words_typed"`
	CharactersTyped   int64      `json:"total_characters_typed"`
	TypingTimeSeconds int64      `json:"total_typing_time_seconds"`
	BestWPM           int        `json:"best_wpm"`
	BestAccuracy      int        `json:"best_accuracy"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// XPAward is one immutable ledger entry: the six-way breakdown that sums
// to the total, plus context. Never updated or deleted.
type XPAward struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	TestID          *string   `json:"test_id,omitempty"`
	XPEarned        int       `json:"xp_earned"`
	BaseXP          int       `json:"base_xp"`
	SpeedBonus      int       `json:"speed_bonus"`
	AccuracyBonus   int       `json:"accuracy_bonus"`
	DifficultyBonus int       `json:"difficulty_bonus"`
	LengthBonus     int       `json:"length_bonus"`
	StreakBonus     int       `json:"streak_bonus"`
	Reason          string    `json:"reason"`
	Details         string    `json:"details,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// Badge is a catalog entry, seeded at startup and read-only after.
type Badge struct {
	ID          int64     `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Tier        string    `json:"tier"`
	Icon        string    `json:"icon"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserBadge records that a user earned a badge. At most one row per
// (user, badge) pair, enforced by the storage layer.
type UserBadge struct {
	Badge    Badge     `json:"badge"`
	EarnedAt time.Time `json:"earned_at"`
}

// BadgeWithStatus is a catalog entry annotated with whether the requesting
// user has earned it.
type BadgeWithStatus struct {
	Badge
	Earned   bool       `json:"earned"`
	EarnedAt *time.Time `json:"earned_at,omitempty"`
}

// ── Completion Result Types ───────────────────────────────

// XPBreakdown is the six-way split of a single test's XP award.
// Total always equals the sum of the six components.
type XPBreakdown struct {
	Base       int `json:"base"`
	Speed      int `json:"speed"`
	Accuracy   int `json:"accuracy"`
	Difficulty int `json:"difficulty"`
	Length     int `json:"length"`
	Streak     int `json:"streak"`
	Total      int `json:"total"`
}

// LevelProgress summarizes where a user's cumulative XP sits on the curve.
type LevelProgress struct {
	UserID            int64 `json:"user_id"`
	CurrentXP         int64 `json:"current_xp"`
	CurrentLevel      int   `json:"current_level"`
	XPForCurrentLevel int   `json:"xp_for_current_level"`
	XPForNextLevel    int   `json:"xp_for_next_level"`
	XPIntoLevel       int64 `json:"xp_into_level"`
	XPToNext          int64 `json:"xp_to_next"`
}

// TestCompletionResult is what the orchestrator hands back to the HTTP layer
// after a completion event is fully processed.
type TestCompletionResult struct {
	LeveledUp     bool          `json:"leveled_up"`
	OldLevel      int           `json:"old_level"`
	NewLevel      int           `json:"new_level"`
	XPBreakdown   XPBreakdown   `json:"xp_breakdown"`
	LevelProgress LevelProgress `json:"level_progress"`
	NewBadges     []UserBadge   `json:"new_badges"`
}

// ── Read API Types ────────────────────────────────────────

type GamificationSummary struct {
	LevelProgress LevelProgress `json:"level_info"`
	GameStats     UserGameStats `json:"game_stats"`
	RecentXPLogs  []XPAward     `json:"recent_xp_logs"`
	RecentBadges  []UserBadge   `json:"recent_badges"`
	BadgeCount    int           `json:"badge_count"`
}

type LevelProgressionEntry struct {
	Level          int  `json:"level"`
	TotalXPNeeded  int  `json:"total_xp_required"`
	XPForNextLevel int  `json:"xp_for_next_level"`
	IsMaxTabulated bool `json:"is_max_level"`
}

type LevelProgressionResponse struct {
	Progression      []LevelProgressionEntry `json:"progression"`
	MaxTrackedLevel  int                     `json:"max_tracked_level"`
	XPPerLevelBeyond int                     `json:"xp_per_level_beyond_max"`
}

type LeaderboardEntry struct {
	Rank          int    `json:"rank"`
	UserID        int64  `json:"user_id"`
	DisplayName   string `json:"display_name"`
	Username      string `json:"username"`
	Level         int    `json:"level"`
	TotalXP       int64  `json:"total_xp"`
	BestWPM       int    `json:"best_wpm"`
	MaxStreak     int    `json:"max_streak"`
	IsCurrentUser bool   `json:"is_current_user"`
}

type LeaderboardResponse struct {
	By          string             `json:"by"`
	Entries     []LeaderboardEntry `json:"entries"`
	CurrentUser *LeaderboardEntry  `json:"current_user,omitempty"`
}

// ── Badge Tier Constants ──────────────────────────────────

// Ordered qualitative scale: common < uncommon < rare < legendary.
const (
	TierCommon    = "common"
	TierUncommon  = "uncommon"
	TierRare      = "rare"
	TierLegendary = "legendary"
)
