package gamification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/typedrill/backend/internal/models"
)

// leaderboardCacheTTL bounds how stale a cached leaderboard page can be.
const leaderboardCacheTTL = 30 * time.Second

// Service orchestrates the completion-event sequence and serves the read
// API. The redis client is optional; when nil, leaderboard reads always hit
// Postgres.
type Service struct {
	store *Store
	rdb   *redis.Client
}

func NewService(store *Store, rdb *redis.Client) *Service {
	return &Service{store: store, rdb: rdb}
}

// ProcessTestCompletion runs the full reward sequence for one completed
// test: streak transition, stats accumulation, XP calculation and award,
// level derivation, badge evaluation. Everything runs in a single
// transaction so a partial failure leaves no trace, and the user row lock
// serializes concurrent completions for the same user.
//
// The streak is advanced before XP is calculated, so the streak bonus uses
// the post-transition value.
func (s *Service) ProcessTestCompletion(userID int64, test *models.TypingTest) (*models.TestCompletionResult, error) {
	var result models.TestCompletionResult

	err := s.store.WithTx(func(q querier) error {
		totalXP, err := s.store.GetUserXPForUpdate(q, userID)
		if err != nil {
			return err
		}

		stats, err := s.store.GetOrCreateStats(q, userID)
		if err != nil {
			return err
		}

		completedAt := test.CreatedAt
		if completedAt.IsZero() {
			completedAt = time.Now().UTC()
		}
		streak := ApplyCompletion(StreakState{
			Current:      stats.CurrentStreak,
			Max:          stats.MaxStreak,
			LastTestDate: stats.LastTestDate,
		}, completedAt)

		wpm := int(test.WPM)
		accuracy := int(test.Accuracy)
		if err := s.store.ApplyCompletionStats(q, userID, streak,
			wpm, accuracy, test.DurationSecs, test.WordCount, test.CharacterCount); err != nil {
			return fmt.Errorf("apply completion stats: %w", err)
		}

		breakdown := CalculateTestXP(test.WPM, test.Accuracy, test.Difficulty, test.CharacterCount, streak.Current)

		oldLevel := LevelFromXP(totalXP)
		if err := s.store.AddXP(q, userID, breakdown.Total); err != nil {
			return fmt.Errorf("add xp: %w", err)
		}
		newTotal := totalXP + int64(breakdown.Total)

		award := &models.XPAward{
			UserID:          userID,
			TestID:          &test.ID,
			XPEarned:        breakdown.Total,
			BaseXP:          breakdown.Base,
			SpeedBonus:      breakdown.Speed,
			AccuracyBonus:   breakdown.Accuracy,
			DifficultyBonus: breakdown.Difficulty,
			LengthBonus:     breakdown.Length,
			StreakBonus:     breakdown.Streak,
			Reason:          "test_completion",
			Details:         fmt.Sprintf("%.1f WPM at %.1f%% accuracy (%s)", test.WPM, test.Accuracy, test.Difficulty),
		}
		if err := s.store.CreateXPAward(q, award); err != nil {
			return err
		}

		newLevel := LevelFromXP(newTotal)

		// Mirror the UPDATE locally so badge rules see post-test state.
		stats.CurrentStreak = streak.Current
		stats.MaxStreak = streak.Max
		stats.LastTestDate = streak.LastTestDate
		stats.TestsCompleted++
		stats.WordsTyped += int64(test.WordCount)
		stats.CharactersTyped += int64(test.CharacterCount)
		stats.TypingTimeSeconds += int64(test.DurationSecs)
		if wpm > stats.BestWPM {
			stats.BestWPM = wpm
		}
		if accuracy > stats.BestAccuracy {
			stats.BestAccuracy = accuracy
		}

		held, err := s.store.GetUserBadgeCodes(q, userID)
		if err != nil {
			return err
		}

		newBadges := []models.UserBadge{}
		for _, code := range newlyEarned(CheckBadges(stats, newTotal, newLevel), held) {
			ub, err := s.store.AwardBadge(q, userID, code)
			if err != nil {
				return err
			}
			if ub != nil {
				log.Printf("[gamification] user %d earned badge %s", userID, code)
				newBadges = append(newBadges, *ub)
			}
		}

		result = models.TestCompletionResult{
			LeveledUp:     newLevel > oldLevel,
			OldLevel:      oldLevel,
			NewLevel:      newLevel,
			XPBreakdown:   breakdown,
			LevelProgress: Progress(userID, newTotal),
			NewBadges:     newBadges,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.LeveledUp {
		log.Printf("[gamification] user %d leveled up %d -> %d", userID, result.OldLevel, result.NewLevel)
	}
	return &result, nil
}

// ── Read API ────────────────────────────────────────────

func (s *Service) GetLevelInfo(userID int64) (*models.LevelProgress, error) {
	totalXP, err := s.store.GetUserTotalXP(userID)
	if err != nil {
		return nil, err
	}
	lp := Progress(userID, totalXP)
	return &lp, nil
}

func (s *Service) GetStats(userID int64) (*models.UserGameStats, error) {
	// Existence check first, so an unknown user maps to ErrUserNotFound
	// instead of a foreign key violation on the lazy stats insert.
	if _, err := s.store.GetUserTotalXP(userID); err != nil {
		return nil, err
	}
	return s.store.GetOrCreateStats(s.store.db, userID)
}

func (s *Service) ListXPLogs(userID int64, limit, offset int) ([]models.XPAward, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.ListXPAwards(userID, limit, offset)
}

// GetSummary aggregates the dashboard view: level progress, lifetime stats,
// recent XP awards and badges, badge count.
func (s *Service) GetSummary(userID int64) (*models.GamificationSummary, error) {
	totalXP, err := s.store.GetUserTotalXP(userID)
	if err != nil {
		return nil, err
	}
	stats, err := s.store.GetOrCreateStats(s.store.db, userID)
	if err != nil {
		return nil, err
	}
	logs, err := s.store.ListXPAwards(userID, 5, 0)
	if err != nil {
		return nil, err
	}
	badges, err := s.store.GetUserBadges(userID, 5)
	if err != nil {
		return nil, err
	}
	count, err := s.store.CountUserBadges(userID)
	if err != nil {
		return nil, err
	}
	return &models.GamificationSummary{
		LevelProgress: Progress(userID, totalXP),
		GameStats:     *stats,
		RecentXPLogs:  logs,
		RecentBadges:  badges,
		BadgeCount:    count,
	}, nil
}

func (s *Service) GetBadgeCatalog() ([]models.Badge, error) {
	return s.store.GetBadges()
}

func (s *Service) GetBadgeByCode(code string) (*models.Badge, error) {
	return s.store.GetBadgeByCode(code)
}

func (s *Service) GetUserBadges(userID int64) ([]models.UserBadge, error) {
	return s.store.GetUserBadges(userID, 0)
}

func (s *Service) GetBadgesWithStatus(userID int64) ([]models.BadgeWithStatus, error) {
	return s.store.GetBadgesWithStatus(userID)
}

// ── Leaderboard ─────────────────────────────────────────

// GetLeaderboard returns the top entries for the given sort key, annotated
// with the requesting user's own row when they fall outside the page.
// Pages are cached in redis for a short TTL; the requester-specific part is
// always computed fresh.
func (s *Service) GetLeaderboard(ctx context.Context, by string, limit int, currentUserID int64) (*models.LeaderboardResponse, error) {
	switch by {
	case "xp", "wpm", "streak":
	default:
		by = "xp"
	}
	if limit <= 0 || limit > 100 {
		limit = 25
	}

	entries, err := s.cachedLeaderboard(ctx, by, limit)
	if err != nil {
		return nil, err
	}

	resp := &models.LeaderboardResponse{By: by, Entries: entries}
	for i := range resp.Entries {
		if resp.Entries[i].UserID == currentUserID {
			resp.Entries[i].IsCurrentUser = true
			e := resp.Entries[i]
			resp.CurrentUser = &e
		}
	}
	if resp.CurrentUser == nil && currentUserID > 0 {
		me, err := s.store.GetLeaderboardUser(currentUserID)
		if err != nil {
			return nil, err
		}
		if me != nil {
			rank, err := s.store.GetUserRank(by, currentUserID)
			if err != nil {
				return nil, err
			}
			me.Rank = rank
			me.IsCurrentUser = true
			resp.CurrentUser = me
		}
	}
	return resp, nil
}

func (s *Service) cachedLeaderboard(ctx context.Context, by string, limit int) ([]models.LeaderboardEntry, error) {
	key := fmt.Sprintf("leaderboard:%s:%d", by, limit)

	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, key).Result(); err == nil {
			var entries []models.LeaderboardEntry
			if json.Unmarshal([]byte(raw), &entries) == nil {
				return entries, nil
			}
		}
	}

	entries, err := s.store.GetLeaderboard(by, limit)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if raw, err := json.Marshal(entries); err == nil {
			if err := s.rdb.Set(ctx, key, raw, leaderboardCacheTTL).Err(); err != nil {
				log.Printf("[gamification] leaderboard cache write failed: %v", err)
			}
		}
	}
	return entries, nil
}
