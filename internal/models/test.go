package models

import "time"

// TypingTest is one completed typing test. The row is committed before
// gamification processing runs, so a reward failure never loses the test.
type TypingTest struct {
	ID             string    `json:"id"`
	UserID         int64     `json:"user_id"`
	WPM            float64   `json:"wpm"`
	Accuracy       float64   `json:"accuracy"`
	Difficulty     string    `json:"difficulty"`
	TestType       string    `json:"test_type"`
	DurationSecs   int       `json:"duration_seconds"`
	WordCount      int       `json:"word_count"`
	CharacterCount int       `json:"character_count"`
	CreatedAt      time.Time `json:"created_at"`
	CharLogs       []CharLog `json:"char_logs,omitempty"`
}

// CharLog is per-character telemetry captured by the frontend typing engine.
type CharLog struct {
	ID          int64  `json:"id"`
	TestID      string `json:"test_id"`
	Char        string `json:"char"`
	Attempts    int    `json:"attempts"`
	Errors      int    `json:"errors"`
	TotalTimeMs int    `json:"total_time_ms"`
}

type CharLogCreate struct {
	Char        string `json:"char"`
	Attempts    int    `json:"attempts"`
	Errors      int    `json:"errors"`
	TotalTimeMs int    `json:"total_time_ms"`
}

type SubmitTestRequest struct {
	WPM            float64         `json:"wpm"`
	Accuracy       float64         `json:"accuracy"`
	Difficulty     string          `json:"difficulty"`
	TestType       string          `json:"test_type"`
	DurationSecs   int             `json:"duration_seconds"`
	WordCount      int             `json:"word_count"`
	CharacterCount int             `json:"character_count"`
	Timestamp      *time.Time      `json:"timestamp,omitempty"`
	CharLogs       []CharLogCreate `json:"char_logs,omitempty"`
}

// SubmitTestResponse pairs the stored test with the gamification outcome.
// Gamification is nil when reward processing failed; the submission itself
// still succeeded.
type SubmitTestResponse struct {
	Test         TypingTest            `json:"test"`
	Gamification *TestCompletionResult `json:"gamification"`
}

type TestContent struct {
	Mode    string   `json:"mode"`
	Words   []string `json:"words,omitempty"`
	Text    string   `json:"text,omitempty"`
	Source  string   `json:"source,omitempty"`
	Level   string   `json:"level,omitempty"`
}
