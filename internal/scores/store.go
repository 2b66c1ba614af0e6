package scores

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Score is one Too Fast To Click run summary.
type Score struct {
	ID            string    `json:"id"`
	PlayerName    string    `json:"player_name"`
	Mode          string    `json:"mode"`
	Score         int       `json:"score"`
	LongestStreak int       `json:"longest_streak"`
	SurvivalTime  float64   `json:"survival_time"`
	MaxSpeed      float64   `json:"max_speed"`
	CreatedAt     time.Time `json:"created_at"`
}

// GlobalStats aggregates all runs across modes.
type GlobalStats struct {
	TotalGames      int64   `json:"total_games"`
	AvgSurvivalTime float64 `json:"avg_survival_time"`
	AvgScore        float64 `json:"avg_score"`
	TopScore        int     `json:"top_score"`
}

type dbtx interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Store persists score submissions in Postgres.
type Store struct {
	db dbtx
}

func NewStore(db dbtx) *Store {
	return &Store{db: db}
}

// Insert persists one score submission.
func (s *Store) Insert(ctx context.Context, score Score) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO scores (score_id, player_name, mode, score, longest_streak, survival_time, max_speed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		score.ID, score.PlayerName, score.Mode, score.Score, score.LongestStreak, score.SurvivalTime, score.MaxSpeed, score.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert score: %w", err)
	}
	return nil
}

// Leaderboard returns the top scores for a mode, highest first.
func (s *Store) Leaderboard(ctx context.Context, mode string, limit int) ([]Score, error) {
	rows, err := s.db.Query(ctx, `
		SELECT score_id, player_name, mode, score, longest_streak, survival_time, max_speed, created_at
		FROM scores WHERE mode = $1 ORDER BY score DESC LIMIT $2`, mode, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch score leaderboard: %w", err)
	}
	defer rows.Close()

	var out []Score
	for rows.Next() {
		var sc Score
		if err := rows.Scan(&sc.ID, &sc.PlayerName, &sc.Mode, &sc.Score, &sc.LongestStreak, &sc.SurvivalTime, &sc.MaxSpeed, &sc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

// Aggregate computes global stats across all modes. An empty table
// yields the product's display defaults rather than zeros.
func (s *Store) Aggregate(ctx context.Context) (*GlobalStats, error) {
	var (
		total       int64
		avgSurvival *float64
		avgScore    *float64
		topScore    *int
	)
	err := s.db.QueryRow(ctx, `
		SELECT COUNT(*), AVG(survival_time), AVG(score), MAX(score) FROM scores`).
		Scan(&total, &avgSurvival, &avgScore, &topScore)
	if err != nil {
		return nil, fmt.Errorf("aggregate scores: %w", err)
	}
	if total == 0 {
		return &GlobalStats{TotalGames: 0, AvgSurvivalTime: 27.0, AvgScore: 15, TopScore: 0}, nil
	}
	return &GlobalStats{
		TotalGames:      total,
		AvgSurvivalTime: round1(*avgSurvival),
		AvgScore:        round1(*avgScore),
		TopScore:        *topScore,
	}, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
