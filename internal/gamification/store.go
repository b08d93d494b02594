package gamification

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/typedrill/backend/internal/models"
)

// ErrUserNotFound signals a caller contract violation: the orchestrator was
// invoked for a user that does not exist.
var ErrUserNotFound = errors.New("user not found")

// querier is satisfied by *sql.DB and *sql.Tx so the completion sequence
// can run inside one transaction while read paths hit the pool directly.
type querier interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// WithTx runs fn inside a transaction, rolling back on error. The whole
// completion sequence rides one tx so a mid-sequence failure cannot leave an
// updated streak with no matching XP award.
func (s *Store) WithTx(fn func(q querier) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// ── User XP ─────────────────────────────────────────────

// GetUserXPForUpdate reads the user's cumulative XP under a row lock,
// serializing concurrent completion events for the same user.
func (s *Store) GetUserXPForUpdate(q querier, userID int64) (int64, error) {
	var totalXP int64
	err := q.QueryRow(`SELECT total_xp FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&totalXP)
	if err == sql.ErrNoRows {
		return 0, ErrUserNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("get user xp: %w", err)
	}
	return totalXP, nil
}

func (s *Store) GetUserTotalXP(userID int64) (int64, error) {
	var totalXP int64
	err := s.db.QueryRow(`SELECT total_xp FROM users WHERE id = $1`, userID).Scan(&totalXP)
	if err == sql.ErrNoRows {
		return 0, ErrUserNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("get user xp: %w", err)
	}
	return totalXP, nil
}

func (s *Store) AddXP(q querier, userID int64, amount int) error {
	_, err := q.Exec(
		`UPDATE users SET total_xp = total_xp + $2, updated_at = NOW() WHERE id = $1`,
		userID, amount,
	)
	return err
}

// ── Game Stats ──────────────────────────────────────────

const statsColumns = `user_id, current_streak, max_streak, last_test_date,
	total_tests_completed, total_words_typed, total_characters_typed,
	total_typing_time_seconds, best_wpm, best_accuracy, created_at, updated_at`

func scanStats(row *sql.Row) (*models.UserGameStats, error) {
	var st models.UserGameStats
	err := row.Scan(&st.UserID, &st.CurrentStreak, &st.MaxStreak, &st.LastTestDate,
		&st.TestsCompleted, &st.WordsTyped, &st.CharactersTyped,
		&st.TypingTimeSeconds, &st.BestWPM, &st.BestAccuracy, &st.CreatedAt, &st.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// GetOrCreateStats lazily creates the per-user stats row on first access.
func (s *Store) GetOrCreateStats(q querier, userID int64) (*models.UserGameStats, error) {
	_, err := q.Exec(
		`INSERT INTO user_game_stats (user_id) VALUES ($1)
		 ON CONFLICT (user_id) DO NOTHING`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert game stats: %w", err)
	}

	st, err := scanStats(q.QueryRow(
		`SELECT `+statsColumns+` FROM user_game_stats WHERE user_id = $1`, userID,
	))
	if err != nil {
		return nil, fmt.Errorf("get game stats: %w", err)
	}
	return st, nil
}

// ApplyCompletionStats writes the streak transition and the lifetime
// accumulator deltas in one statement. Counters only grow and watermarks
// use GREATEST, so a racing completion can never move anything backwards.
func (s *Store) ApplyCompletionStats(q querier, userID int64, streak StreakState, wpm, accuracy, durationSecs, wordCount, characterCount int) error {
	_, err := q.Exec(
		`UPDATE user_game_stats SET
		    current_streak = $2, max_streak = $3, last_test_date = $4,
		    total_tests_completed = total_tests_completed + 1,
		    total_words_typed = total_words_typed + $5,
		    total_characters_typed = total_characters_typed + $6,
		    total_typing_time_seconds = total_typing_time_seconds + $7,
		    best_wpm = GREATEST(best_wpm, $8),
		    best_accuracy = GREATEST(best_accuracy, $9),
		    updated_at = NOW()
		 WHERE user_id = $1`,
		userID, streak.Current, streak.Max, streak.LastTestDate,
		wordCount, characterCount, durationSecs, wpm, accuracy,
	)
	return err
}

// ── XP Award Ledger ─────────────────────────────────────

// CreateXPAward appends one immutable ledger entry. Exactly one per
// completion event; never updated or deleted.
func (s *Store) CreateXPAward(q querier, a *models.XPAward) error {
	_, err := q.Exec(
		`INSERT INTO xp_awards (user_id, test_id, xp_earned, base_xp, speed_bonus,
		    accuracy_bonus, difficulty_bonus, length_bonus, streak_bonus, reason, details)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		a.UserID, a.TestID, a.XPEarned, a.BaseXP, a.SpeedBonus,
		a.AccuracyBonus, a.DifficultyBonus, a.LengthBonus, a.StreakBonus, a.Reason, a.Details,
	)
	if err != nil {
		return fmt.Errorf("create xp award: %w", err)
	}
	return nil
}

func (s *Store) ListXPAwards(userID int64, limit, offset int) ([]models.XPAward, error) {
	rows, err := s.db.Query(
		`SELECT id, user_id, test_id, xp_earned, base_xp, speed_bonus, accuracy_bonus,
		        difficulty_bonus, length_bonus, streak_bonus, reason, COALESCE(details, ''), created_at
		 FROM xp_awards WHERE user_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list xp awards: %w", err)
	}
	defer rows.Close()

	awards := []models.XPAward{}
	for rows.Next() {
		var a models.XPAward
		if err := rows.Scan(&a.ID, &a.UserID, &a.TestID, &a.XPEarned, &a.BaseXP, &a.SpeedBonus,
			&a.AccuracyBonus, &a.DifficultyBonus, &a.LengthBonus, &a.StreakBonus,
			&a.Reason, &a.Details, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan xp award: %w", err)
		}
		awards = append(awards, a)
	}
	return awards, rows.Err()
}

// ── Badge Catalog ───────────────────────────────────────

// SeedBadges inserts any catalog entries missing from the badges table.
// Idempotent: existing codes are left untouched.
func (s *Store) SeedBadges(defs []BadgeDef) error {
	for _, def := range defs {
		_, err := s.db.Exec(
			`INSERT INTO badges (code, name, description, tier, icon)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (code) DO NOTHING`,
			def.Code, def.Name, def.Description, def.Tier, def.Icon,
		)
		if err != nil {
			return fmt.Errorf("seed badge %s: %w", def.Code, err)
		}
	}
	return nil
}

const badgeColumns = `id, code, name, description, tier, COALESCE(icon, ''), created_at`

func (s *Store) GetBadges() ([]models.Badge, error) {
	rows, err := s.db.Query(`SELECT ` + badgeColumns + ` FROM badges ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("get badges: %w", err)
	}
	defer rows.Close()

	badges := []models.Badge{}
	for rows.Next() {
		var b models.Badge
		if err := rows.Scan(&b.ID, &b.Code, &b.Name, &b.Description, &b.Tier, &b.Icon, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan badge: %w", err)
		}
		badges = append(badges, b)
	}
	return badges, rows.Err()
}

func (s *Store) GetBadgeByCode(code string) (*models.Badge, error) {
	var b models.Badge
	err := s.db.QueryRow(
		`SELECT `+badgeColumns+` FROM badges WHERE code = $1`, code,
	).Scan(&b.ID, &b.Code, &b.Name, &b.Description, &b.Tier, &b.Icon, &b.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get badge: %w", err)
	}
	return &b, nil
}

// ── Badge Awards ────────────────────────────────────────

// GetUserBadgeCodes returns the set of badge codes the user already holds.
func (s *Store) GetUserBadgeCodes(q querier, userID int64) (map[string]bool, error) {
	rows, err := q.Query(
		`SELECT b.code FROM user_badges ub JOIN badges b ON b.id = ub.badge_id
		 WHERE ub.user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("get user badge codes: %w", err)
	}
	defer rows.Close()

	codes := make(map[string]bool)
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		codes[code] = true
	}
	return codes, rows.Err()
}

// AwardBadge attempts to award a badge by code. Returns the award when the
// row was newly created, nil when the user already holds the badge or the
// code is absent from the seeded catalog (both are silent no-ops). The
// UNIQUE(user_id, badge_id) constraint makes the check-then-insert safe
// under concurrency.
func (s *Store) AwardBadge(q querier, userID int64, code string) (*models.UserBadge, error) {
	var ub models.UserBadge
	err := q.QueryRow(
		`WITH ins AS (
		    INSERT INTO user_badges (user_id, badge_id)
		    SELECT $1, b.id FROM badges b WHERE b.code = $2
		    ON CONFLICT (user_id, badge_id) DO NOTHING
		    RETURNING badge_id, earned_at
		 )
		 SELECT b.id, b.code, b.name, b.description, b.tier, COALESCE(b.icon, ''), b.created_at, ins.earned_at
		 FROM ins JOIN badges b ON b.id = ins.badge_id`,
		userID, code,
	).Scan(&ub.Badge.ID, &ub.Badge.Code, &ub.Badge.Name, &ub.Badge.Description,
		&ub.Badge.Tier, &ub.Badge.Icon, &ub.Badge.CreatedAt, &ub.EarnedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("award badge %s: %w", code, err)
	}
	return &ub, nil
}

func (s *Store) GetUserBadges(userID int64, limit int) ([]models.UserBadge, error) {
	query := `SELECT b.id, b.code, b.name, b.description, b.tier, COALESCE(b.icon, ''), b.created_at, ub.earned_at
	          FROM user_badges ub JOIN badges b ON b.id = ub.badge_id
	          WHERE ub.user_id = $1 ORDER BY ub.earned_at DESC`
	args := []interface{}{userID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("get user badges: %w", err)
	}
	defer rows.Close()

	badges := []models.UserBadge{}
	for rows.Next() {
		var ub models.UserBadge
		if err := rows.Scan(&ub.Badge.ID, &ub.Badge.Code, &ub.Badge.Name, &ub.Badge.Description,
			&ub.Badge.Tier, &ub.Badge.Icon, &ub.Badge.CreatedAt, &ub.EarnedAt); err != nil {
			return nil, fmt.Errorf("scan user badge: %w", err)
		}
		badges = append(badges, ub)
	}
	return badges, rows.Err()
}

func (s *Store) CountUserBadges(userID int64) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM user_badges WHERE user_id = $1`, userID).Scan(&count)
	return count, err
}

// GetBadgesWithStatus returns the full catalog annotated with the user's
// earned status.
func (s *Store) GetBadgesWithStatus(userID int64) ([]models.BadgeWithStatus, error) {
	rows, err := s.db.Query(
		`SELECT b.id, b.code, b.name, b.description, b.tier, COALESCE(b.icon, ''), b.created_at, ub.earned_at
		 FROM badges b
		 LEFT JOIN user_badges ub ON ub.badge_id = b.id AND ub.user_id = $1
		 ORDER BY b.id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("get badges with status: %w", err)
	}
	defer rows.Close()

	badges := []models.BadgeWithStatus{}
	for rows.Next() {
		var b models.BadgeWithStatus
		if err := rows.Scan(&b.ID, &b.Code, &b.Name, &b.Description, &b.Tier, &b.Icon,
			&b.CreatedAt, &b.EarnedAt); err != nil {
			return nil, fmt.Errorf("scan badge status: %w", err)
		}
		b.Earned = b.EarnedAt != nil
		badges = append(badges, b)
	}
	return badges, rows.Err()
}

// ── Leaderboard ─────────────────────────────────────────

// leaderboardOrder maps the public sort key to its SQL sort expression.
// Anything else falls back to cumulative XP. The stats columns are wrapped
// in COALESCE because the join is a LEFT JOIN and Postgres sorts NULLs
// first under DESC, which would rank users with no stats row at the top.
func leaderboardOrder(by string) string {
	switch by {
	case "wpm":
		return "COALESCE(g.best_wpm, 0)"
	case "streak":
		return "COALESCE(g.max_streak, 0)"
	default:
		return "u.total_xp"
	}
}

func (s *Store) GetLeaderboard(by string, limit int) ([]models.LeaderboardEntry, error) {
	order := leaderboardOrder(by)
	rows, err := s.db.Query(
		`SELECT u.id, u.name, u.username, u.total_xp,
		        COALESCE(g.best_wpm, 0), COALESCE(g.max_streak, 0),
		        ROW_NUMBER() OVER (ORDER BY `+order+` DESC, u.id) AS rank
		 FROM users u
		 LEFT JOIN user_game_stats g ON g.user_id = u.id
		 ORDER BY `+order+` DESC, u.id
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("get leaderboard: %w", err)
	}
	defer rows.Close()

	entries := []models.LeaderboardEntry{}
	for rows.Next() {
		var e models.LeaderboardEntry
		var fullName string
		if err := rows.Scan(&e.UserID, &fullName, &e.Username, &e.TotalXP, &e.BestWPM, &e.MaxStreak, &e.Rank); err != nil {
			return nil, fmt.Errorf("scan leaderboard entry: %w", err)
		}
		e.DisplayName = models.User{Name: fullName}.DisplayName()
		e.Level = LevelFromXP(e.TotalXP)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// GetLeaderboardUser builds a single user's leaderboard row without a rank.
// Returns nil when the user does not exist.
func (s *Store) GetLeaderboardUser(userID int64) (*models.LeaderboardEntry, error) {
	var e models.LeaderboardEntry
	var fullName string
	err := s.db.QueryRow(
		`SELECT u.id, u.name, u.username, u.total_xp,
		        COALESCE(g.best_wpm, 0), COALESCE(g.max_streak, 0)
		 FROM users u
		 LEFT JOIN user_game_stats g ON g.user_id = u.id
		 WHERE u.id = $1`,
		userID,
	).Scan(&e.UserID, &fullName, &e.Username, &e.TotalXP, &e.BestWPM, &e.MaxStreak)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get leaderboard user: %w", err)
	}
	e.DisplayName = models.User{Name: fullName}.DisplayName()
	e.Level = LevelFromXP(e.TotalXP)
	return &e, nil
}

func (s *Store) GetUserRank(by string, userID int64) (int, error) {
	order := leaderboardOrder(by)
	var rank int
	err := s.db.QueryRow(
		`SELECT COALESCE(
		    (SELECT rank FROM (
		        SELECT u.id, ROW_NUMBER() OVER (ORDER BY `+order+` DESC, u.id) AS rank
		        FROM users u LEFT JOIN user_game_stats g ON g.user_id = u.id
		    ) r WHERE r.id = $1),
		    0
		)`,
		userID,
	).Scan(&rank)
	return rank, err
}
