package trivia

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	httperrors "github.com/gokatarajesh/trivia-rush/pkg/http/errors"
)

// HTTPHandlers exposes the question-supply REST endpoints.
type HTTPHandlers struct {
	service       *Service
	registry      *Registry
	logger        zerolog.Logger
	maxBatchCount int
}

func NewHTTPHandlers(service *Service, registry *Registry, logger zerolog.Logger, maxBatchCount int) *HTTPHandlers {
	if maxBatchCount <= 0 {
		maxBatchCount = 20
	}
	return &HTTPHandlers{
		service:       service,
		registry:      registry,
		logger:        logger.With().Str("component", "trivia_http").Logger(),
		maxBatchCount: maxBatchCount,
	}
}

// Categories handles GET /api/categories.
func (h *HTTPHandlers) Categories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"categories": h.registry.Categories(),
	})
}

// Generate handles POST /api/questions/generate.
func (h *HTTPHandlers) Generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	defer r.Body.Close()

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}
	if req.Category == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeValidationFailed, "category is required", "category")
		return
	}

	question, err := h.service.Generate(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrUnknownCategory) {
			httperrors.RespondBadRequest(w, httperrors.ErrCodeUnknownCategory, err.Error())
			return
		}
		h.logger.Error().Err(err).Str("category", req.Category).Msg("question supply failed")
		if errors.Is(err, ErrGenerationFailed) {
			httperrors.RespondError(w, http.StatusInternalServerError, httperrors.ErrCodeGenerationFailed, "Could not produce a question")
			return
		}
		httperrors.RespondInternalError(w, "Could not produce a question")
		return
	}
	writeJSON(w, http.StatusOK, question)
}

// Batch handles GET /api/questions/batch.
func (h *HTTPHandlers) Batch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()
	category := query.Get("category")
	if category == "" {
		category = CategoryMix
	}
	tier := query.Get("difficulty")
	if tier == "" {
		tier = TierSpicy
	}
	count := 5
	if raw := query.Get("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			httperrors.RespondValidationError(w, httperrors.ErrCodeValidationFailed, "count must be a positive integer", "count")
			return
		}
		count = parsed
	}
	if count > h.maxBatchCount {
		count = h.maxBatchCount
	}

	result, err := h.service.Batch(r.Context(), category, tier, count)
	if err != nil {
		if errors.Is(err, ErrUnknownCategory) {
			httperrors.RespondBadRequest(w, httperrors.ErrCodeUnknownCategory, err.Error())
			return
		}
		h.logger.Error().Err(err).Str("category", category).Msg("batch supply failed")
		httperrors.RespondInternalError(w, "Could not produce questions")
		return
	}
	if result.Questions == nil {
		result.Questions = []Question{}
	}
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}
