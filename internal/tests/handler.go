package tests

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/typedrill/backend/internal/middleware"
	"github.com/typedrill/backend/internal/models"
)

var validDifficulties = map[string]bool{"easy": true, "medium": true, "hard": true}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func getUserID(r *http.Request) (int64, bool) {
	uid, ok := r.Context().Value("user_id").(int64)
	return uid, ok
}

func (h *Handler) SubmitTest(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.SubmitTestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if msg := validateSubmit(&req); msg != "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: msg})
		return
	}

	resp, err := h.service.SubmitTest(userID, req)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to save test"})
		return
	}

	middleware.CountTestSubmitted()
	writeJSON(w, http.StatusCreated, resp)
}

// validateSubmit rejects malformed metrics before any state changes.
// Returns an empty string when the request is acceptable.
func validateSubmit(req *models.SubmitTestRequest) string {
	if req.WPM < 0 || req.Accuracy < 0 {
		return "wpm and accuracy must be non-negative"
	}
	if req.Accuracy > 100 {
		return "accuracy cannot exceed 100"
	}
	if req.DurationSecs < 0 || req.WordCount < 0 || req.CharacterCount < 0 {
		return "duration, word_count, and character_count must be non-negative"
	}
	if req.Difficulty == "" {
		req.Difficulty = "medium"
	} else if !validDifficulties[req.Difficulty] {
		return "difficulty must be easy, medium, or hard"
	}
	if req.TestType == "" {
		req.TestType = "words"
	}
	for _, cl := range req.CharLogs {
		if cl.Char == "" {
			return "char_logs entries require a char"
		}
		if cl.Attempts < 0 || cl.Errors < 0 || cl.TotalTimeMs < 0 {
			return "char_logs counters must be non-negative"
		}
	}
	return ""
}

func (h *Handler) ListMyTests(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	limit := intQueryParam(r.URL.Query(), "limit", 20)
	offset := intQueryParam(r.URL.Query(), "offset", 0)

	tests, err := h.service.ListTests(userID, limit, offset)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get tests"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"tests": tests})
}

func (h *Handler) GetTest(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	test, err := h.service.GetTest(mux.Vars(r)["id"], userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get test"})
		return
	}
	if test == nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Test not found"})
		return
	}
	writeJSON(w, http.StatusOK, test)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func intQueryParam(query url.Values, key string, defaultVal int) int {
	s := query.Get(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return defaultVal
	}
	return v
}
