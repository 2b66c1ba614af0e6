package session

import "time"

// GameSession is one finished-game summary reported by the client.
// Immutable after save; used only for ranking and stats.
type GameSession struct {
	ID                string    `json:"id"`
	Category          string    `json:"category"`
	Difficulty        string    `json:"difficulty"`
	Streak            int       `json:"streak"`
	Accuracy          float64   `json:"accuracy"`
	QuestionsAnswered int       `json:"questions_answered"`
	CreatedAt         time.Time `json:"created_at"`
}

// SaveRequest is the POST /api/sessions payload.
type SaveRequest struct {
	Category          string  `json:"category"`
	Difficulty        string  `json:"difficulty"`
	Streak            int     `json:"streak"`
	Accuracy          float64 `json:"accuracy"`
	QuestionsAnswered int     `json:"questions_answered"`
}

// Stats is the aggregate view served by GET /api/stats.
type Stats struct {
	TotalQuestions      int64          `json:"total_questions"`
	TotalSessions       int64          `json:"total_sessions"`
	QuestionsByCategory map[string]int `json:"questions_by_category"`
}
