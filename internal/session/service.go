package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SessionStore is the persistence surface for game sessions.
type SessionStore interface {
	Insert(ctx context.Context, sess GameSession) error
	Leaderboard(ctx context.Context, category string, limit int) ([]GameSession, error)
	TotalCount(ctx context.Context) (int64, error)
}

// QuestionStats supplies question totals for the combined stats view
// (implemented by the trivia supply service).
type QuestionStats interface {
	Stats(ctx context.Context) (int64, map[string]int, error)
}

// Cache is the optional leaderboard page cache.
type Cache interface {
	Get(ctx context.Context, category string, limit int) ([]GameSession, error)
	Set(ctx context.Context, category string, limit int, sessions []GameSession) error
	Invalidate(ctx context.Context) error
}

// Service records finished games and serves ranked leaderboards.
type Service struct {
	store     SessionStore
	questions QuestionStats
	cache     Cache
	logger    zerolog.Logger
}

func NewService(store SessionStore, questions QuestionStats, cache Cache, logger zerolog.Logger) *Service {
	return &Service{
		store:     store,
		questions: questions,
		cache:     cache,
		logger:    logger.With().Str("component", "session_service").Logger(),
	}
}

// Save assigns identity and timestamp, persists, and returns the stored
// record verbatim.
func (s *Service) Save(ctx context.Context, req SaveRequest) (*GameSession, error) {
	sess := GameSession{
		ID:                uuid.NewString(),
		Category:          req.Category,
		Difficulty:        req.Difficulty,
		Streak:            req.Streak,
		Accuracy:          req.Accuracy,
		QuestionsAnswered: req.QuestionsAnswered,
		CreatedAt:         time.Now().UTC(),
	}
	if err := s.store.Insert(ctx, sess); err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("leaderboard cache invalidation failed")
		}
	}
	return &sess, nil
}

// Leaderboard returns sessions ranked by descending streak, optionally
// filtered by category ("" or the "all" sentinel mean no filter).
func (s *Service) Leaderboard(ctx context.Context, category string, limit int) ([]GameSession, error) {
	if category == "all" {
		category = ""
	}

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, category, limit); err == nil && cached != nil {
			return cached, nil
		} else if err != nil {
			s.logger.Warn().Err(err).Msg("leaderboard cache read failed")
		}
	}

	sessions, err := s.store.Leaderboard(ctx, category, limit)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, category, limit, sessions); err != nil {
			s.logger.Warn().Err(err).Msg("leaderboard cache write failed")
		}
	}
	return sessions, nil
}

// Stats aggregates question and session totals.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	totalQuestions, byCategory, err := s.questions.Stats(ctx)
	if err != nil {
		return nil, err
	}
	totalSessions, err := s.store.TotalCount(ctx)
	if err != nil {
		return nil, err
	}
	if byCategory == nil {
		byCategory = map[string]int{}
	}
	return &Stats{
		TotalQuestions:      totalQuestions,
		TotalSessions:       totalSessions,
		QuestionsByCategory: byCategory,
	}, nil
}
