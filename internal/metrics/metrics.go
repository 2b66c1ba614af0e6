package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Question supply counters, exported on /metrics.
var (
	QuestionCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trivia_question_cache_hits_total",
		Help: "Questions served from the store without invoking the generator.",
	})
	QuestionCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trivia_question_cache_misses_total",
		Help: "Question lookups that required fresh generation.",
	})
	GenerationSuccesses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trivia_generation_successes_total",
		Help: "Generator calls that produced a validated question.",
	})
	GenerationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trivia_generation_failures_total",
		Help: "Generator calls that failed (transport, parse, or low confidence).",
	})
	PartialBatches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trivia_partial_batches_total",
		Help: "Batch requests that exhausted their generation attempt budget.",
	})
)
