package scores

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	httperrors "github.com/gokatarajesh/trivia-rush/pkg/http/errors"
)

// ScoreStore is the persistence surface for score submissions.
type ScoreStore interface {
	Insert(ctx context.Context, score Score) error
	Leaderboard(ctx context.Context, mode string, limit int) ([]Score, error)
	Aggregate(ctx context.Context) (*GlobalStats, error)
}

// SubmitRequest is the POST /api/scores payload.
type SubmitRequest struct {
	PlayerName    string  `json:"player_name"`
	Mode          string  `json:"mode"`
	Score         int     `json:"score"`
	LongestStreak int     `json:"longest_streak"`
	SurvivalTime  float64 `json:"survival_time"`
	MaxSpeed      float64 `json:"max_speed"`
}

// HTTPHandlers serves the Too Fast To Click score endpoints.
type HTTPHandlers struct {
	store  ScoreStore
	logger zerolog.Logger
}

func NewHTTPHandlers(store ScoreStore, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		store:  store,
		logger: logger.With().Str("component", "scores_http").Logger(),
	}
}

// Submit handles POST /api/scores.
func (h *HTTPHandlers) Submit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	defer r.Body.Close()

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}
	if req.Mode == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeValidationFailed, "mode is required", "mode")
		return
	}
	if req.PlayerName == "" {
		req.PlayerName = "Anonymous"
	}
	if req.MaxSpeed == 0 {
		req.MaxSpeed = 1.0
	}

	score := Score{
		ID:            uuid.NewString(),
		PlayerName:    req.PlayerName,
		Mode:          req.Mode,
		Score:         req.Score,
		LongestStreak: req.LongestStreak,
		SurvivalTime:  req.SurvivalTime,
		MaxSpeed:      req.MaxSpeed,
		CreatedAt:     time.Now().UTC(),
	}
	if err := h.store.Insert(r.Context(), score); err != nil {
		h.logger.Error().Err(err).Msg("score save failed")
		httperrors.RespondError(w, http.StatusInternalServerError, httperrors.ErrCodeSaveFailed, "Could not save score")
		return
	}
	writeJSON(w, http.StatusOK, score)
}

// Leaderboard handles GET /api/scores/leaderboard.
func (h *HTTPHandlers) Leaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = "classic"
	}
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	top, err := h.store.Leaderboard(r.Context(), mode, limit)
	if err != nil {
		h.logger.Error().Err(err).Str("mode", mode).Msg("score leaderboard fetch failed")
		httperrors.RespondInternalError(w, "Could not fetch leaderboard")
		return
	}
	if top == nil {
		top = []Score{}
	}
	writeJSON(w, http.StatusOK, top)
}

// GetStats handles GET /api/scores/stats.
func (h *HTTPHandlers) GetStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	stats, err := h.store.Aggregate(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("score stats aggregation failed")
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
