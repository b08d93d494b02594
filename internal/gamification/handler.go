package gamification

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/typedrill/backend/internal/models"
)

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

// ── Current User ────────────────────────────────────────

func (h *Handler) GetMyLevel(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}
	h.writeLevel(w, userID)
}

func (h *Handler) GetMyStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}
	h.writeStats(w, userID)
}

func (h *Handler) GetMyXPLogs(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	limit := intQueryParam(r.URL.Query(), "limit", 20)
	offset := intQueryParam(r.URL.Query(), "offset", 0)

	logs, err := h.service.ListXPLogs(userID, limit, offset)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get XP logs"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"xp_logs": logs})
}

func (h *Handler) GetMySummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	summary, err := h.service.GetSummary(userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get summary"})
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// GetMyBadges returns the full catalog with earned status for the requester.
func (h *Handler) GetMyBadges(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	badges, err := h.service.GetBadgesWithStatus(userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get badges"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"badges": badges})
}

func (h *Handler) GetMyEarnedBadges(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	badges, err := h.service.GetUserBadges(userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get badges"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"badges": badges})
}

// ── Other Users ─────────────────────────────────────────

func (h *Handler) GetUserLevel(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid user ID"})
		return
	}
	h.writeLevel(w, userID)
}

func (h *Handler) GetUserStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid user ID"})
		return
	}
	h.writeStats(w, userID)
}

func (h *Handler) GetUserBadges(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid user ID"})
		return
	}

	badges, err := h.service.GetUserBadges(userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get badges"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"badges": badges})
}

// ── Catalog & Progression ───────────────────────────────

func (h *Handler) ListBadges(w http.ResponseWriter, r *http.Request) {
	badges, err := h.service.GetBadgeCatalog()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get badge catalog"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"badges": badges})
}

func (h *Handler) GetBadge(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	badge, err := h.service.GetBadgeByCode(code)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get badge"})
		return
	}
	if badge == nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Badge not found"})
		return
	}
	writeJSON(w, http.StatusOK, badge)
}

func (h *Handler) GetLevelProgression(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Progression())
}

// ── Leaderboard ─────────────────────────────────────────

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	by := r.URL.Query().Get("by")
	limit := intQueryParam(r.URL.Query(), "limit", 25)

	resp, err := h.service.GetLeaderboard(r.Context(), by, limit, userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get leaderboard"})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ── Helpers ─────────────────────────────────────────────

func (h *Handler) writeLevel(w http.ResponseWriter, userID int64) {
	level, err := h.service.GetLevelInfo(userID)
	if errors.Is(err, ErrUserNotFound) {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "User not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get level info"})
		return
	}
	writeJSON(w, http.StatusOK, level)
}

func (h *Handler) writeStats(w http.ResponseWriter, userID int64) {
	stats, err := h.service.GetStats(userID)
	if errors.Is(err, ErrUserNotFound) {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "User not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get stats"})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func pathUserID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
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
