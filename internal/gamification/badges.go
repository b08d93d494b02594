package gamification

import "github.com/typedrill/backend/internal/models"

// BadgeFamily names the measured quantity a badge threshold applies to.
// XP and level are sub-lists of one combined progression family; the other
// four are independent.
type BadgeFamily string

const (
	FamilyTests    BadgeFamily = "tests"
	FamilySpeed    BadgeFamily = "speed"
	FamilyAccuracy BadgeFamily = "accuracy"
	FamilyStreak   BadgeFamily = "streak"
	FamilyXP       BadgeFamily = "xp"
	FamilyLevel    BadgeFamily = "level"
)

// BadgeDef is the single source of truth for one badge: display metadata
// for the seeded catalog plus the (family, threshold) rule that awards it.
// Keeping both in one table means the catalog and the rule engine cannot
// drift apart.
type BadgeDef struct {
	Code        string
	Name        string
	Description string
	Tier        string
	Icon        string
	Family      BadgeFamily
	Threshold   int
}

// Catalog lists every badge, grouped by family. Seeded into the badges
// table at startup; evaluated by CheckBadges on every completion.
var Catalog = []BadgeDef{
	// Completion count
	{"first_test", "First Steps", "Complete your first typing test", models.TierCommon, "medal", FamilyTests, 1},
	{"tests_10", "Warming Up", "Complete 10 typing tests", models.TierCommon, "keyboard", FamilyTests, 10},
	{"tests_50", "Regular", "Complete 50 typing tests", models.TierUncommon, "calendar-check", FamilyTests, 50},
	{"tests_100", "Centurion", "Complete 100 typing tests", models.TierRare, "trophy", FamilyTests, 100},
	{"tests_500", "Obsessed", "Complete 500 typing tests", models.TierLegendary, "crown", FamilyTests, 500},

	// Best speed
	{"speed_30", "Steady Hands", "Reach 30 WPM", models.TierCommon, "gauge", FamilySpeed, 30},
	{"speed_60", "Speedster", "Reach 60 WPM", models.TierUncommon, "zap", FamilySpeed, 60},
	{"speed_90", "Blazing", "Reach 90 WPM", models.TierRare, "flame", FamilySpeed, 90},
	{"speed_120", "Supersonic", "Reach 120 WPM", models.TierLegendary, "rocket", FamilySpeed, 120},

	// Best accuracy
	{"accuracy_95", "Precise", "Finish a test at 95% accuracy", models.TierUncommon, "target", FamilyAccuracy, 95},
	{"accuracy_99", "Surgical", "Finish a test at 99% accuracy", models.TierRare, "crosshair", FamilyAccuracy, 99},
	{"accuracy_100", "Flawless", "Finish a test without a single miss", models.TierLegendary, "gem", FamilyAccuracy, 100},

	// Max streak
	{"streak_3", "Getting Started", "Practice 3 days in a row", models.TierCommon, "spark", FamilyStreak, 3},
	{"streak_7", "Week Warrior", "Practice 7 days in a row", models.TierUncommon, "fire", FamilyStreak, 7},
	{"streak_30", "Monthly Master", "Practice 30 days in a row", models.TierRare, "calendar", FamilyStreak, 30},
	{"streak_100", "Unstoppable", "Practice 100 days in a row", models.TierLegendary, "comet", FamilyStreak, 100},

	// Progression: XP thresholds
	{"xp_1000", "Rising Star", "Earn 1,000 total XP", models.TierCommon, "star", FamilyXP, 1000},
	{"xp_10000", "Powerhouse", "Earn 10,000 total XP", models.TierUncommon, "bolt", FamilyXP, 10000},
	{"xp_50000", "Legend", "Earn 50,000 total XP", models.TierRare, "shield", FamilyXP, 50000},
	{"xp_250000", "Mythic", "Earn 250,000 total XP", models.TierLegendary, "diamond", FamilyXP, 250000},

	// Progression: level thresholds
	{"level_5", "Apprentice", "Reach level 5", models.TierCommon, "chevron-up", FamilyLevel, 5},
	{"level_10", "Journeyman", "Reach level 10", models.TierUncommon, "arrow-up", FamilyLevel, 10},
	{"level_25", "Expert", "Reach level 25", models.TierRare, "mountain", FamilyLevel, 25},
	{"level_50", "Grandmaster", "Reach level 50", models.TierLegendary, "summit", FamilyLevel, 50},
}

// CheckBadges returns the codes of every badge whose threshold the user's
// current state meets. Thresholds are independent checks, not a staged
// progression: a user jumping straight past several tiers qualifies for all
// of them in the same pass. The caller filters out badges already held and
// awards the rest idempotently.
func CheckBadges(stats *models.UserGameStats, totalXP int64, level int) []string {
	var earned []string
	for _, def := range Catalog {
		var v int64
		switch def.Family {
		case FamilyTests:
			v = int64(stats.TestsCompleted)
		case FamilySpeed:
			v = int64(stats.BestWPM)
		case FamilyAccuracy:
			v = int64(stats.BestAccuracy)
		case FamilyStreak:
			v = int64(stats.MaxStreak)
		case FamilyXP:
			v = totalXP
		case FamilyLevel:
			v = int64(level)
		default:
			continue
		}
		if v >= int64(def.Threshold) {
			earned = append(earned, def.Code)
		}
	}
	return earned
}

// newlyEarned filters qualifying codes down to the ones the user does not
// already hold, preserving catalog order. The completion orchestrator awards
// only these; re-qualifying for a held badge is a no-op.
func newlyEarned(earned []string, held map[string]bool) []string {
	var out []string
	for _, code := range earned {
		if !held[code] {
			out = append(out, code)
		}
	}
	return out
}

// BadgeDefByCode looks a definition up by code.
func BadgeDefByCode(code string) (BadgeDef, bool) {
	for _, def := range Catalog {
		if def.Code == code {
			return def, true
		}
	}
	return BadgeDef{}, false
}
