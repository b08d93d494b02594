package tests

import (
	"database/sql"
	"fmt"

	"github.com/typedrill/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// CreateTest persists a test and its character logs in one transaction.
// This commits before gamification runs, so the test survives a reward
// failure.
func (s *Store) CreateTest(test *models.TypingTest) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO typing_tests (id, user_id, wpm, accuracy, difficulty, test_type,
		    duration_seconds, word_count, character_count, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		test.ID, test.UserID, test.WPM, test.Accuracy, test.Difficulty, test.TestType,
		test.DurationSecs, test.WordCount, test.CharacterCount, test.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert typing test: %w", err)
	}

	for i := range test.CharLogs {
		cl := &test.CharLogs[i]
		err = tx.QueryRow(
			`INSERT INTO test_char_logs (test_id, char, attempts, errors, total_time_ms)
			 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			test.ID, cl.Char, cl.Attempts, cl.Errors, cl.TotalTimeMs,
		).Scan(&cl.ID)
		if err != nil {
			return fmt.Errorf("insert char log: %w", err)
		}
		cl.TestID = test.ID
	}

	return tx.Commit()
}

func (s *Store) ListTests(userID int64, limit, offset int) ([]models.TypingTest, error) {
	rows, err := s.db.Query(
		`SELECT id, user_id, wpm, accuracy, difficulty, test_type,
		        duration_seconds, word_count, character_count, created_at
		 FROM typing_tests WHERE user_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list tests: %w", err)
	}
	defer rows.Close()

	tests := []models.TypingTest{}
	for rows.Next() {
		var t models.TypingTest
		if err := rows.Scan(&t.ID, &t.UserID, &t.WPM, &t.Accuracy, &t.Difficulty, &t.TestType,
			&t.DurationSecs, &t.WordCount, &t.CharacterCount, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan test: %w", err)
		}
		tests = append(tests, t)
	}
	return tests, rows.Err()
}

// GetTest returns a test with its character logs, scoped to the owner.
// Returns nil when not found.
func (s *Store) GetTest(id string, userID int64) (*models.TypingTest, error) {
	var t models.TypingTest
	err := s.db.QueryRow(
		`SELECT id, user_id, wpm, accuracy, difficulty, test_type,
		        duration_seconds, word_count, character_count, created_at
		 FROM typing_tests WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&t.ID, &t.UserID, &t.WPM, &t.Accuracy, &t.Difficulty, &t.TestType,
		&t.DurationSecs, &t.WordCount, &t.CharacterCount, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get test: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT id, test_id, char, attempts, errors, total_time_ms
		 FROM test_char_logs WHERE test_id = $1 ORDER BY id`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("get char logs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var cl models.CharLog
		if err := rows.Scan(&cl.ID, &cl.TestID, &cl.Char, &cl.Attempts, &cl.Errors, &cl.TotalTimeMs); err != nil {
			return nil, fmt.Errorf("scan char log: %w", err)
		}
		t.CharLogs = append(t.CharLogs, cl)
	}
	return &t, rows.Err()
}

func (s *Store) CountTests(userID int64) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM typing_tests WHERE user_id = $1`, userID).Scan(&count)
	return count, err
}
