package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-rush/internal/config"
	"github.com/gokatarajesh/trivia-rush/internal/logging"
	"github.com/gokatarajesh/trivia-rush/internal/scores"
	"github.com/gokatarajesh/trivia-rush/internal/server"
	"github.com/gokatarajesh/trivia-rush/internal/session"
	"github.com/gokatarajesh/trivia-rush/internal/trivia"
	"github.com/gokatarajesh/trivia-rush/internal/trivia/llm"
)

// Application aggregates shared infrastructure (DB, cache, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool  *pgxpool.Pool
	redis *redis.Client
	http  *http.Server
}

// New bootstraps configs, logger, Postgres, Redis and the HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Msg("starting application bootstrap")

	connString := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s pool_max_conns=10",
		cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Database, cfg.Postgres.SSLMode)

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})

	registry := trivia.NewRegistry()
	questionStore := trivia.NewStore(pool)

	llmClient := llm.NewClient(llm.Config{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
		Timeout: cfg.LLM.HTTPTimeout,
	}, nil)
	generator := trivia.NewGenerator(llmClient, registry, logger)

	triviaSvc := trivia.NewService(registry, questionStore, generator, logger, trivia.ServiceOptions{
		RetryBackoff: cfg.Trivia.RetryBackoff,
	})

	sessionStore := session.NewStore(pool)
	leaderboardCache := session.NewLeaderboardCache(redisClient, cfg.Trivia.LeaderboardCacheTTL)
	sessionSvc := session.NewService(sessionStore, triviaSvc, leaderboardCache, logger)

	scoreStore := scores.NewStore(pool)

	triviaHandlers := trivia.NewHTTPHandlers(triviaSvc, registry, logger, cfg.Trivia.MaxBatchCount)
	sessionHandlers := session.NewHTTPHandlers(sessionSvc, logger)
	scoreHandlers := scores.NewHTTPHandlers(scoreStore, logger)

	apiServer := server.NewHTTPServer(cfg, logger, pool, redisClient, triviaHandlers, sessionHandlers, scoreHandlers)

	return &Application{
		cfg:    cfg,
		logger: logger,
		pool:   pool,
		redis:  redisClient,
		http:   apiServer,
	}, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	a.pool.Close()
	if err := a.redis.Close(); err != nil {
		a.logger.Error().Err(err).Msg("redis shutdown error")
	}

	a.logger.Info().Msg("shutdown complete")
	return nil
}
