package tests

import (
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/typedrill/backend/internal/gamification"
	"github.com/typedrill/backend/internal/models"
)

type Service struct {
	store *Store
	game  *gamification.Service
}

func NewService(store *Store, game *gamification.Service) *Service {
	return &Service{store: store, game: game}
}

// SubmitTest stores the test, then runs the gamification sequence. The two
// are deliberately decoupled: the test commit happens first, and a reward
// failure is logged and surfaced as a nil Gamification field rather than
// failing the submission.
func (s *Service) SubmitTest(userID int64, req models.SubmitTestRequest) (*models.SubmitTestResponse, error) {
	completedAt := time.Now().UTC()
	if req.Timestamp != nil {
		completedAt = req.Timestamp.UTC()
	}

	test := &models.TypingTest{
		ID:             uuid.NewString(),
		UserID:         userID,
		WPM:            req.WPM,
		Accuracy:       req.Accuracy,
		Difficulty:     req.Difficulty,
		TestType:       req.TestType,
		DurationSecs:   req.DurationSecs,
		WordCount:      req.WordCount,
		CharacterCount: req.CharacterCount,
		CreatedAt:      completedAt,
	}
	for _, cl := range req.CharLogs {
		test.CharLogs = append(test.CharLogs, models.CharLog{
			Char:        cl.Char,
			Attempts:    cl.Attempts,
			Errors:      cl.Errors,
			TotalTimeMs: cl.TotalTimeMs,
		})
	}

	if err := s.store.CreateTest(test); err != nil {
		return nil, err
	}

	resp := &models.SubmitTestResponse{Test: *test}

	result, err := s.game.ProcessTestCompletion(userID, test)
	if err != nil {
		log.Printf("[tests] gamification failed for test %s: %v", test.ID, err)
		return resp, nil
	}
	resp.Gamification = result

	return resp, nil
}

func (s *Service) ListTests(userID int64, limit, offset int) ([]models.TypingTest, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.ListTests(userID, limit, offset)
}

func (s *Service) GetTest(id string, userID int64) (*models.TypingTest, error) {
	return s.store.GetTest(id, userID)
}
