package trivia

import "time"

// MinConfidence is the acceptance threshold for generated questions.
// Anything below it is discarded and never persisted.
const MinConfidence = 0.85

// Question is a single true/false statement delivered to clients.
// Immutable once persisted.
type Question struct {
	ID          string    `json:"id"`
	Statement   string    `json:"statement"`
	IsTrue      bool      `json:"is_true"`
	Explanation string    `json:"explanation"`
	Category    string    `json:"category"`
	Difficulty  int       `json:"difficulty"`
	Confidence  float64   `json:"confidence"`
	CreatedAt   time.Time `json:"created_at"`
}

// GenerateRequest is the payload for the single-question path.
type GenerateRequest struct {
	Category   string   `json:"category"`
	Difficulty string   `json:"difficulty"`
	ExcludeIDs []string `json:"exclude_ids"`
}

// BatchResult carries batch questions plus a degraded-result marker for
// when the generation attempt budget ran out before the batch filled.
type BatchResult struct {
	Questions []Question `json:"questions"`
	Partial   bool       `json:"partial,omitempty"`
}
