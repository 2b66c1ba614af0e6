package trivia

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const systemPrompt = `You are a trivia writer for a fast-paced true-or-false game.
Write one short declarative statement that is either true or false.

Rules:
- Statements should be surprising but clear, one sentence, under 20 words.
- Mix true and false statements roughly 50/50 across calls.
- No trivial facts, no ambiguous wording, no obscure specialist knowledge.
- No political, religious, or harmful content.
- False statements must be plausible, not absurd.

Respond with JSON only, no prose, in exactly this shape:
{"statement": "...", "is_true": true, "explanation": "one short sentence", "confidence": 0.0-1.0}
confidence is how certain you are the truth label is correct.`

// TextCompleter is the outbound dependency on the text-generation
// service (implemented by llm.Client).
type TextCompleter interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Generator produces validated questions from the external
// text-generation service. It never retries; callers own retry policy.
type Generator struct {
	completer TextCompleter
	registry  *Registry
	logger    zerolog.Logger
}

func NewGenerator(completer TextCompleter, registry *Registry, logger zerolog.Logger) *Generator {
	return &Generator{
		completer: completer,
		registry:  registry,
		logger:    logger.With().Str("component", "question_generator").Logger(),
	}
}

// rawQuestion is the untrusted model output before validation. Pointer
// fields distinguish "absent" from zero values.
type rawQuestion struct {
	Statement   string   `json:"statement"`
	IsTrue      *bool    `json:"is_true"`
	Explanation string   `json:"explanation"`
	Confidence  *float64 `json:"confidence"`
}

// Generate requests one question for the category, drawing a concrete
// difficulty uniformly from the candidate set. Every failure mode
// (transport, parse, missing fields, low confidence) is an error and
// nothing is persisted.
func (g *Generator) Generate(ctx context.Context, category string, difficulties []int) (*Question, error) {
	if len(difficulties) == 0 {
		return nil, fmt.Errorf("no candidate difficulties")
	}
	displayName, ok := g.registry.ResolveCategory(category)
	if !ok {
		return nil, fmt.Errorf("unknown category %q", category)
	}
	difficulty := difficulties[rand.Intn(len(difficulties))]

	userPrompt := fmt.Sprintf(
		"Category: %s. Difficulty: %d out of 4 (1=easy common knowledge, 4=genuinely hard). Generate one statement now.",
		displayName, difficulty)

	raw, err := g.completer.Complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		return nil, fmt.Errorf("text generation: %w", err)
	}

	parsed, err := parseModelOutput(raw)
	if err != nil {
		g.logger.Warn().Err(err).Str("category", category).Msg("discarding unusable model output")
		return nil, err
	}
	if *parsed.Confidence < MinConfidence {
		g.logger.Debug().
			Float64("confidence", *parsed.Confidence).
			Str("category", category).
			Msg("rejecting low-confidence question")
		return nil, fmt.Errorf("confidence %.2f below threshold %.2f", *parsed.Confidence, MinConfidence)
	}

	return &Question{
		ID:          uuid.NewString(),
		Statement:   parsed.Statement,
		IsTrue:      *parsed.IsTrue,
		Explanation: parsed.Explanation,
		Category:    category,
		Difficulty:  difficulty,
		Confidence:  *parsed.Confidence,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// parseModelOutput validates the raw response into a structurally
// complete rawQuestion, tolerating a single fenced-code-block wrapper.
func parseModelOutput(raw string) (*rawQuestion, error) {
	text := stripCodeFence(raw)

	var parsed rawQuestion
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, fmt.Errorf("parse model output: %w", err)
	}
	switch {
	case parsed.Statement == "":
		return nil, fmt.Errorf("model output missing statement")
	case parsed.IsTrue == nil:
		return nil, fmt.Errorf("model output missing is_true")
	case parsed.Explanation == "":
		return nil, fmt.Errorf("model output missing explanation")
	case parsed.Confidence == nil:
		return nil, fmt.Errorf("model output missing confidence")
	case *parsed.Confidence < 0 || *parsed.Confidence > 1:
		return nil, fmt.Errorf("confidence %v out of range", *parsed.Confidence)
	}
	return &parsed, nil
}

func stripCodeFence(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
