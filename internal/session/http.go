package session

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	httperrors "github.com/gokatarajesh/trivia-rush/pkg/http/errors"
)

// HTTPHandlers exposes session, leaderboard and stats endpoints.
type HTTPHandlers struct {
	service *Service
	logger  zerolog.Logger
}

func NewHTTPHandlers(service *Service, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		service: service,
		logger:  logger.With().Str("component", "session_http").Logger(),
	}
}

// Save handles POST /api/sessions.
func (h *HTTPHandlers) Save(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	defer r.Body.Close()

	var req SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}
	if req.Category == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeValidationFailed, "category is required", "category")
		return
	}

	sess, err := h.service.Save(r.Context(), req)
	if err != nil {
		h.logger.Error().Err(err).Msg("session save failed")
		httperrors.RespondError(w, http.StatusInternalServerError, httperrors.ErrCodeSaveFailed, "Could not save session")
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// Leaderboard handles GET /api/leaderboard.
func (h *HTTPHandlers) Leaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	category := r.URL.Query().Get("category")
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	sessions, err := h.service.Leaderboard(r.Context(), category, limit)
	if err != nil {
		h.logger.Error().Err(err).Str("category", category).Msg("leaderboard fetch failed")
		httperrors.RespondInternalError(w, "Could not fetch leaderboard")
		return
	}
	if sessions == nil {
		sessions = []GameSession{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"leaderboard": sessions,
	})
}

// GetStats handles GET /api/stats.
func (h *HTTPHandlers) GetStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	stats, err := h.service.Stats(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("stats aggregation failed")
		httperrors.RespondInternalError(w, "Could not fetch stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}
