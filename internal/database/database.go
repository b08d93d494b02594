package database

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
)

func Connect() (*sql.DB, error) {
	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "typedrill_user")
	password := getEnv("DB_PASSWORD", "typedrill_password")
	dbname := getEnv("DB_NAME", "typedrill")
	sslmode := getEnv("DB_SSLMODE", "disable")

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return db, nil
}

func Migrate(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		email VARCHAR(255) UNIQUE NOT NULL,
		name VARCHAR(255) NOT NULL,
		username VARCHAR(50) UNIQUE NOT NULL,
		password VARCHAR(255) NOT NULL,
		is_admin BOOLEAN NOT NULL DEFAULT FALSE,
		total_xp BIGINT NOT NULL DEFAULT 0,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);
	CREATE INDEX IF NOT EXISTS idx_users_username ON users(username);

	CREATE TABLE IF NOT EXISTS typing_tests (
		id              VARCHAR(36) PRIMARY KEY,
		user_id         BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		wpm             REAL NOT NULL,
		accuracy        REAL NOT NULL,
		difficulty      VARCHAR(20) NOT NULL DEFAULT 'medium',
		test_type       VARCHAR(30) NOT NULL DEFAULT 'words',
		duration_seconds INT NOT NULL DEFAULT 0,
		word_count      INT NOT NULL DEFAULT 0,
		character_count INT NOT NULL DEFAULT 0,
		created_at      TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_tests_user ON typing_tests(user_id, created_at DESC);

	CREATE TABLE IF NOT EXISTS test_char_logs (
		id            BIGSERIAL PRIMARY KEY,
		test_id       VARCHAR(36) NOT NULL REFERENCES typing_tests(id) ON DELETE CASCADE,
		char          VARCHAR(8) NOT NULL,
		attempts      INT NOT NULL DEFAULT 0,
		errors        INT NOT NULL DEFAULT 0,
		total_time_ms INT NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_char_logs_test ON test_char_logs(test_id);

	CREATE TABLE IF NOT EXISTS user_game_stats (
		user_id                   BIGINT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		current_streak            INT NOT NULL DEFAULT 0,
		max_streak                INT NOT NULL DEFAULT 0,
		last_test_date            TIMESTAMP WITH TIME ZONE,
		total_tests_completed     INT NOT NULL DEFAULT 0,
		total_words_typed         BIGINT NOT NULL DEFAULT 0,
		total_characters_typed    BIGINT NOT NULL DEFAULT 0,
		total_typing_time_seconds BIGINT NOT NULL DEFAULT 0,
		best_wpm                  INT NOT NULL DEFAULT 0,
		best_accuracy             INT NOT NULL DEFAULT 0,
		created_at                TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at                TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS xp_awards (
		id               BIGSERIAL PRIMARY KEY,
		user_id          BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		test_id          VARCHAR(36) REFERENCES typing_tests(id) ON DELETE SET NULL,
		xp_earned        INT NOT NULL,
		base_xp          INT NOT NULL DEFAULT 0,
		speed_bonus      INT NOT NULL DEFAULT 0,
		accuracy_bonus   INT NOT NULL DEFAULT 0,
		difficulty_bonus INT NOT NULL DEFAULT 0,
		length_bonus     INT NOT NULL DEFAULT 0,
		streak_bonus     INT NOT NULL DEFAULT 0,
		reason           VARCHAR(100) NOT NULL,
		details          TEXT,
		created_at       TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_xp_awards_user ON xp_awards(user_id, created_at DESC);

	CREATE TABLE IF NOT EXISTS badges (
		id          BIGSERIAL PRIMARY KEY,
		code        VARCHAR(50) UNIQUE NOT NULL,
		name        VARCHAR(100) NOT NULL,
		description TEXT NOT NULL,
		tier        VARCHAR(20) NOT NULL DEFAULT 'common',
		icon        VARCHAR(100),
		created_at  TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS user_badges (
		id        BIGSERIAL PRIMARY KEY,
		user_id   BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		badge_id  BIGINT NOT NULL REFERENCES badges(id) ON DELETE CASCADE,
		earned_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(user_id, badge_id)
	);

	CREATE INDEX IF NOT EXISTS idx_user_badges_user ON user_badges(user_id, earned_at DESC);
	`

	_, err := db.Exec(query)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
