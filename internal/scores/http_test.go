package scores

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type memScoreStore struct {
	scores    []Score
	insertErr error
}

func (m *memScoreStore) Insert(_ context.Context, score Score) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.scores = append(m.scores, score)
	return nil
}

func (m *memScoreStore) Leaderboard(_ context.Context, mode string, limit int) ([]Score, error) {
	var out []Score
	for _, sc := range m.scores {
		if sc.Mode == mode {
			out = append(out, sc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memScoreStore) Aggregate(_ context.Context) (*GlobalStats, error) {
	if len(m.scores) == 0 {
		return &GlobalStats{TotalGames: 0, AvgSurvivalTime: 27.0, AvgScore: 15, TopScore: 0}, nil
	}
	stats := &GlobalStats{TotalGames: int64(len(m.scores))}
	for _, sc := range m.scores {
		stats.AvgSurvivalTime += sc.SurvivalTime
		stats.AvgScore += float64(sc.Score)
		if sc.Score > stats.TopScore {
			stats.TopScore = sc.Score
		}
	}
	stats.AvgSurvivalTime /= float64(len(m.scores))
	stats.AvgScore /= float64(len(m.scores))
	return stats, nil
}

func newTestHandlers(store ScoreStore) *HTTPHandlers {
	return NewHTTPHandlers(store, zerolog.New(io.Discard))
}

func TestSubmitAssignsDefaults(t *testing.T) {
	store := &memScoreStore{}
	handlers := newTestHandlers(store)

	payload := `{"mode": "classic", "score": 42, "longest_streak": 7, "survival_time": 33.2}`
	rec := httptest.NewRecorder()
	handlers.Submit(rec, httptest.NewRequest(http.MethodPost, "/api/scores", strings.NewReader(payload)))

	assert.Equal(t, http.StatusOK, rec.Code)
	var sc Score
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sc))
	assert.NotEmpty(t, sc.ID)
	assert.Equal(t, "Anonymous", sc.PlayerName)
	assert.Equal(t, 1.0, sc.MaxSpeed)
	assert.Equal(t, 42, sc.Score)
	assert.Len(t, store.scores, 1)
}

func TestSubmitStoreFailure(t *testing.T) {
	handlers := newTestHandlers(&memScoreStore{insertErr: errors.New("connection reset")})

	payload := `{"mode": "classic", "score": 42}`
	rec := httptest.NewRecorder()
	handlers.Submit(rec, httptest.NewRequest(http.MethodPost, "/api/scores", strings.NewReader(payload)))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body struct {
		Error string `json:"error"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "save_failed", body.Error)
}

func TestSubmitRequiresMode(t *testing.T) {
	handlers := newTestHandlers(&memScoreStore{})

	rec := httptest.NewRecorder()
	handlers.Submit(rec, httptest.NewRequest(http.MethodPost, "/api/scores", strings.NewReader(`{"score": 5}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLeaderboardEndpointFiltersByMode(t *testing.T) {
	store := &memScoreStore{scores: []Score{
		{ID: "a", Mode: "classic", Score: 10},
		{ID: "b", Mode: "classic", Score: 25},
		{ID: "c", Mode: "zen", Score: 99},
	}}
	handlers := newTestHandlers(store)

	rec := httptest.NewRecorder()
	handlers.Leaderboard(rec, httptest.NewRequest(http.MethodGet, "/api/scores/leaderboard?mode=classic&limit=10", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var top []Score
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &top))
	assert.Len(t, top, 2)
	assert.Equal(t, "b", top[0].ID)
}

func TestStatsEndpointEmptyStoreDefaults(t *testing.T) {
	handlers := newTestHandlers(&memScoreStore{})

	rec := httptest.NewRecorder()
	handlers.GetStats(rec, httptest.NewRequest(http.MethodGet, "/api/scores/stats", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var stats GlobalStats
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, int64(0), stats.TotalGames)
	assert.Equal(t, 27.0, stats.AvgSurvivalTime)
	assert.Equal(t, 15.0, stats.AvgScore)
	assert.Equal(t, 0, stats.TopScore)
}
