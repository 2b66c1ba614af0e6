package trivia

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type stubCompleter struct {
	response string
	err      error
	system   string
	user     string
	calls    int
}

func (s *stubCompleter) Complete(_ context.Context, system, user string) (string, error) {
	s.calls++
	s.system = system
	s.user = user
	return s.response, s.err
}

func newTestGenerator(completer TextCompleter) *Generator {
	return NewGenerator(completer, NewRegistry(), zerolog.New(io.Discard))
}

func TestGenerateBuildsQuestionFromModelOutput(t *testing.T) {
	completer := &stubCompleter{
		response: `{"statement": "Octopuses have three hearts", "is_true": true, "explanation": "Two pump blood to the gills, one to the body.", "confidence": 0.95}`,
	}
	gen := newTestGenerator(completer)

	q, err := gen.Generate(context.Background(), "animals", []int{1, 2})
	assert.NoError(t, err)
	assert.NotEmpty(t, q.ID)
	assert.Equal(t, "Octopuses have three hearts", q.Statement)
	assert.True(t, q.IsTrue)
	assert.Equal(t, "animals", q.Category)
	assert.Contains(t, []int{1, 2}, q.Difficulty)
	assert.Equal(t, 0.95, q.Confidence)
	assert.False(t, q.CreatedAt.IsZero())
	assert.Contains(t, completer.user, "Animals & Nature")
}

func TestGenerateToleratesFencedJSON(t *testing.T) {
	completer := &stubCompleter{
		response: "```json\n{\"statement\": \"Bananas are berries\", \"is_true\": true, \"explanation\": \"Botanically they qualify.\", \"confidence\": 0.9}\n```",
	}
	gen := newTestGenerator(completer)

	q, err := gen.Generate(context.Background(), "food", []int{2, 3})
	assert.NoError(t, err)
	assert.Equal(t, "Bananas are berries", q.Statement)
}

func TestGenerateRejectsMalformedOutput(t *testing.T) {
	completer := &stubCompleter{response: "Sure! Here is a fun fact about animals."}
	gen := newTestGenerator(completer)

	_, err := gen.Generate(context.Background(), "animals", []int{1, 2})
	assert.Error(t, err)
}

func TestGenerateRejectsMissingFields(t *testing.T) {
	cases := map[string]string{
		"statement":   `{"is_true": true, "explanation": "x", "confidence": 0.9}`,
		"is_true":     `{"statement": "x", "explanation": "x", "confidence": 0.9}`,
		"explanation": `{"statement": "x", "is_true": false, "confidence": 0.9}`,
		"confidence":  `{"statement": "x", "is_true": false, "explanation": "x"}`,
	}
	for missing, payload := range cases {
		gen := newTestGenerator(&stubCompleter{response: payload})
		_, err := gen.Generate(context.Background(), "space", []int{2, 3})
		assert.Error(t, err, "missing %s should fail", missing)
	}
}

func TestGenerateRejectsLowConfidence(t *testing.T) {
	completer := &stubCompleter{
		response: `{"statement": "x", "is_true": true, "explanation": "x", "confidence": 0.6}`,
	}
	gen := newTestGenerator(completer)

	_, err := gen.Generate(context.Background(), "history", []int{2, 3})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "threshold")
}

func TestGenerateRejectsOutOfRangeConfidence(t *testing.T) {
	completer := &stubCompleter{
		response: `{"statement": "x", "is_true": true, "explanation": "x", "confidence": 1.4}`,
	}
	gen := newTestGenerator(completer)

	_, err := gen.Generate(context.Background(), "history", []int{2, 3})
	assert.Error(t, err)
}

func TestGeneratePropagatesUpstreamError(t *testing.T) {
	completer := &stubCompleter{err: errors.New("upstream timeout")}
	gen := newTestGenerator(completer)

	_, err := gen.Generate(context.Background(), "geography", []int{3, 4})
	assert.Error(t, err)
}

func TestGenerateUnknownCategory(t *testing.T) {
	completer := &stubCompleter{}
	gen := newTestGenerator(completer)

	_, err := gen.Generate(context.Background(), "not_a_real_category", []int{2, 3})
	assert.Error(t, err)
	assert.Zero(t, completer.calls, "no upstream call for unknown category")
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripCodeFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence(`{"a":1}`))
}
