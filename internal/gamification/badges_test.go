package gamification

import (
	"testing"

	"github.com/typedrill/backend/internal/models"
)

func codesContain(codes []string, want string) bool {
	for _, c := range codes {
		if c == want {
			return true
		}
	}
	return false
}

func TestCheckBadgesFirstTest(t *testing.T) {
	stats := &models.UserGameStats{
		TestsCompleted: 1,
		BestWPM:        65,
		BestAccuracy:   97,
		MaxStreak:      1,
	}

	codes := CheckBadges(stats, 117, 2)

	for _, want := range []string{"first_test", "speed_30", "speed_60", "accuracy_95"} {
		if !codesContain(codes, want) {
			t.Errorf("expected %s in %v", want, codes)
		}
	}
	for _, unwanted := range []string{"tests_10", "speed_90", "accuracy_99", "streak_3", "xp_1000", "level_5"} {
		if codesContain(codes, unwanted) {
			t.Errorf("did not expect %s in %v", unwanted, codes)
		}
	}
}

func TestCheckBadgesThresholdsAreInclusive(t *testing.T) {
	stats := &models.UserGameStats{
		TestsCompleted: 10,
		BestWPM:        90,
		BestAccuracy:   99,
		MaxStreak:      7,
	}

	codes := CheckBadges(stats, 10000, 10)

	for _, want := range []string{"tests_10", "speed_90", "accuracy_99", "streak_7", "xp_10000", "level_10"} {
		if !codesContain(codes, want) {
			t.Errorf("expected %s at exact threshold, got %v", want, codes)
		}
	}
}

func TestCheckBadgesJumpEarnsEveryTier(t *testing.T) {
	// Thresholds are independent, not staged: a big jump qualifies for
	// every tier below it in the same pass
	stats := &models.UserGameStats{TestsCompleted: 500}

	codes := CheckBadges(stats, 0, 1)

	for _, want := range []string{"first_test", "tests_10", "tests_50", "tests_100", "tests_500"} {
		if !codesContain(codes, want) {
			t.Errorf("expected %s after jumping to 500 tests, got %v", want, codes)
		}
	}
}

func TestCheckBadgesFreshAccount(t *testing.T) {
	codes := CheckBadges(&models.UserGameStats{}, 0, 1)
	if len(codes) != 0 {
		t.Errorf("fresh account earned %v, want none", codes)
	}
}

func TestCatalogConsistency(t *testing.T) {
	validTiers := map[string]bool{
		models.TierCommon:    true,
		models.TierUncommon:  true,
		models.TierRare:      true,
		models.TierLegendary: true,
	}

	seen := make(map[string]bool)
	for _, def := range Catalog {
		if def.Code == "" || def.Name == "" || def.Description == "" {
			t.Errorf("badge %+v has empty display fields", def)
		}
		if seen[def.Code] {
			t.Errorf("duplicate badge code %s", def.Code)
		}
		seen[def.Code] = true

		if !validTiers[def.Tier] {
			t.Errorf("badge %s has invalid tier %q", def.Code, def.Tier)
		}
		if def.Threshold <= 0 {
			t.Errorf("badge %s has non-positive threshold %d", def.Code, def.Threshold)
		}
	}
}

func TestNewlyEarnedIdempotent(t *testing.T) {
	// Same qualifying state evaluated twice: the first pass awards, the
	// second reports nothing new once the awards are recorded as held
	stats := &models.UserGameStats{
		TestsCompleted: 1,
		BestWPM:        65,
		BestAccuracy:   97,
		MaxStreak:      1,
	}

	held := map[string]bool{}
	first := newlyEarned(CheckBadges(stats, 117, 2), held)
	if len(first) == 0 {
		t.Fatal("first pass awarded nothing")
	}

	for _, code := range first {
		held[code] = true
	}
	second := newlyEarned(CheckBadges(stats, 117, 2), held)
	if len(second) != 0 {
		t.Errorf("second pass re-awarded %v, want none", second)
	}
}

func TestNewlyEarnedPartialHold(t *testing.T) {
	earned := []string{"first_test", "speed_30", "speed_60"}
	held := map[string]bool{"first_test": true, "speed_30": true}

	got := newlyEarned(earned, held)
	if len(got) != 1 || got[0] != "speed_60" {
		t.Errorf("newlyEarned = %v, want [speed_60]", got)
	}

	// Nothing held passes everything through in order
	got = newlyEarned(earned, map[string]bool{})
	if len(got) != 3 || got[0] != "first_test" || got[2] != "speed_60" {
		t.Errorf("newlyEarned with empty held = %v, want %v", got, earned)
	}
}

func TestBadgeDefByCode(t *testing.T) {
	def, ok := BadgeDefByCode("speed_60")
	if !ok {
		t.Fatal("speed_60 not found in catalog")
	}
	if def.Family != FamilySpeed || def.Threshold != 60 {
		t.Errorf("speed_60 = %+v", def)
	}

	if _, ok := BadgeDefByCode("no_such_badge"); ok {
		t.Error("unknown code reported as found")
	}
}
