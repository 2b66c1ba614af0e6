package server

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-rush/internal/config"
	"github.com/gokatarajesh/trivia-rush/internal/scores"
	"github.com/gokatarajesh/trivia-rush/internal/session"
	"github.com/gokatarajesh/trivia-rush/internal/trivia"
	httperrors "github.com/gokatarajesh/trivia-rush/pkg/http/errors"
)

// NewHTTPServer wires the public API routes plus health and metrics.
func NewHTTPServer(
	cfg *config.App,
	logger zerolog.Logger,
	pool *pgxpool.Pool,
	redisClient *redis.Client,
	triviaHandlers *trivia.HTTPHandlers,
	sessionHandlers *session.HTTPHandlers,
	scoreHandlers *scores.HTTPHandlers,
) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if err := pingDependencies(ctx, pool, redisClient); err != nil {
			logger.Error().Err(err).Msg("dependency ping failed")
			httperrors.RespondServiceUnavailable(w, httperrors.ErrCodeServiceUnavailable, "dependency unavailable")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/" && r.URL.Path != "/api" {
			httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound, "resource not found")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"True or Totally Fake API"}`))
	})

	mux.HandleFunc("/api/categories", triviaHandlers.Categories)
	mux.HandleFunc("/api/questions/generate", triviaHandlers.Generate)
	mux.HandleFunc("/api/questions/batch", triviaHandlers.Batch)

	mux.HandleFunc("/api/sessions", sessionHandlers.Save)
	mux.HandleFunc("/api/leaderboard", sessionHandlers.Leaderboard)
	mux.HandleFunc("/api/stats", sessionHandlers.GetStats)

	mux.HandleFunc("/api/scores", scoreHandlers.Submit)
	mux.HandleFunc("/api/scores/leaderboard", scoreHandlers.Leaderboard)
	mux.HandleFunc("/api/scores/stats", scoreHandlers.GetStats)

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: corsMiddleware(cfg.CORS, mux),
	}
}

func pingDependencies(ctx context.Context, pool *pgxpool.Pool, redisClient *redis.Client) error {
	if err := pool.Ping(ctx); err != nil {
		return err
	}
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return err
	}
	return nil
}
