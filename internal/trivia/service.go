package trivia

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-rush/internal/metrics"
)

// ErrUnknownCategory marks a client-side category error; handlers map
// it to a 400 before any store or generator work happens.
var ErrUnknownCategory = errors.New("unknown category")

// ErrGenerationFailed wraps generator errors on the single-question
// path so handlers can report them apart from storage failures.
var ErrGenerationFailed = errors.New("question generation failed")

// QuestionStore is the persistence surface the orchestrator needs.
type QuestionStore interface {
	FindOne(ctx context.Context, category string, difficulties []int, excludeIDs []string) (*Question, error)
	FindMany(ctx context.Context, category string, difficulties []int, limit int) ([]Question, error)
	Insert(ctx context.Context, q Question) error
	CountByCategory(ctx context.Context) (map[string]int, error)
	TotalCount(ctx context.Context) (int64, error)
}

// QuestionGenerator produces fresh validated questions.
type QuestionGenerator interface {
	Generate(ctx context.Context, category string, difficulties []int) (*Question, error)
}

// ServiceOptions bounds the batch top-up loop.
type ServiceOptions struct {
	// AttemptsPerQuestion caps generator calls at attempts*missing per
	// batch. Defaults to 3.
	AttemptsPerQuestion int
	// RetryBackoff is slept between consecutive failed generator calls.
	RetryBackoff time.Duration
}

// Service decides, per request, whether to serve a cached question or
// invoke the generator, and fills batches by mixing both.
type Service struct {
	registry  *Registry
	store     QuestionStore
	generator QuestionGenerator
	logger    zerolog.Logger
	opts      ServiceOptions
}

func NewService(registry *Registry, store QuestionStore, generator QuestionGenerator, logger zerolog.Logger, opts ServiceOptions) *Service {
	if opts.AttemptsPerQuestion <= 0 {
		opts.AttemptsPerQuestion = 3
	}
	return &Service{
		registry:  registry,
		store:     store,
		generator: generator,
		logger:    logger.With().Str("component", "question_supply").Logger(),
		opts:      opts,
	}
}

// Generate serves one question: cache hit if possible, otherwise a
// single generator call whose result is persisted before returning.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (*Question, error) {
	category, err := s.resolveRequestCategory(req.Category)
	if err != nil {
		return nil, err
	}
	difficulties := s.registry.ResolveTier(req.Difficulty)

	cached, err := s.store.FindOne(ctx, category, difficulties, req.ExcludeIDs)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		metrics.QuestionCacheHits.Inc()
		return cached, nil
	}
	metrics.QuestionCacheMisses.Inc()

	fresh, err := s.generator.Generate(ctx, category, difficulties)
	if err != nil {
		metrics.GenerationFailures.Inc()
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	metrics.GenerationSuccesses.Inc()

	if err := s.store.Insert(ctx, *fresh); err != nil {
		return nil, err
	}
	return fresh, nil
}

// Batch collects up to count questions: cached matches first, then a
// bounded generate-and-persist loop. When the request category is mix,
// the cache scan spans all categories in one query while each fresh
// question picks its own random category; the asymmetry matches the
// established distribution and is intentional.
func (s *Service) Batch(ctx context.Context, category, tier string, count int) (*BatchResult, error) {
	if category != CategoryMix {
		if _, ok := s.registry.ResolveCategory(category); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
		}
	}
	difficulties := s.registry.ResolveTier(tier)

	storeCategory := category
	if category == CategoryMix {
		storeCategory = ""
	}
	cached, err := s.store.FindMany(ctx, storeCategory, difficulties, count)
	if err != nil {
		return nil, err
	}
	metrics.QuestionCacheHits.Add(float64(len(cached)))

	result := &BatchResult{Questions: cached}
	if len(result.Questions) >= count {
		result.Questions = result.Questions[:count]
		return result, nil
	}

	missing := count - len(result.Questions)
	budget := s.opts.AttemptsPerQuestion * missing
	failures := 0

	for len(result.Questions) < count && budget > 0 {
		budget--

		genCategory := category
		if category == CategoryMix {
			genCategory = s.registry.RandomCategory()
		}

		fresh, err := s.generator.Generate(ctx, genCategory, difficulties)
		if err != nil {
			metrics.GenerationFailures.Inc()
			failures++
			s.logger.Warn().Err(err).
				Str("category", genCategory).
				Int("budget_left", budget).
				Msg("batch generation attempt failed")
			if err := s.backoff(ctx, failures); err != nil {
				return nil, err
			}
			continue
		}
		metrics.GenerationSuccesses.Inc()
		failures = 0

		if err := s.store.Insert(ctx, *fresh); err != nil {
			return nil, err
		}
		result.Questions = append(result.Questions, *fresh)
	}

	if len(result.Questions) < count {
		metrics.PartialBatches.Inc()
		result.Partial = true
		s.logger.Error().
			Int("requested", count).
			Int("served", len(result.Questions)).
			Msg("generation budget exhausted; returning partial batch")
	}
	return result, nil
}

// Stats aggregates question counts for the /stats endpoint.
func (s *Service) Stats(ctx context.Context) (int64, map[string]int, error) {
	total, err := s.store.TotalCount(ctx)
	if err != nil {
		return 0, nil, err
	}
	byCategory, err := s.store.CountByCategory(ctx)
	if err != nil {
		return 0, nil, err
	}
	return total, byCategory, nil
}

func (s *Service) resolveRequestCategory(category string) (string, error) {
	if category == CategoryMix {
		return s.registry.RandomCategory(), nil
	}
	if _, ok := s.registry.ResolveCategory(category); !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	return category, nil
}

func (s *Service) backoff(ctx context.Context, failures int) error {
	if s.opts.RetryBackoff <= 0 {
		return nil
	}
	timer := time.NewTimer(time.Duration(failures) * s.opts.RetryBackoff)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
