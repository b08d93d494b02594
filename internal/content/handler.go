package content

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/typedrill/backend/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetContent serves GET /tests/content. Mode is required; the rest of the
// query parameters are optional knobs.
func (h *Handler) GetContent(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	mode := query.Get("mode")
	if mode == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "mode parameter is required"})
		return
	}

	opts := Options{
		Level: query.Get("level"),
		Topic: query.Get("topic"),
	}
	if s := query.Get("count"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			opts.Count = n
		}
	}
	opts.IncludeNumbers = query.Get("include_numbers") == "true"
	opts.IncludePunctuation = query.Get("include_punctuation") == "true"

	content, err := h.service.Get(r.Context(), mode, opts)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, content)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
