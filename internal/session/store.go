package session

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type dbtx interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Store persists game sessions in Postgres.
type Store struct {
	db dbtx
}

func NewStore(db dbtx) *Store {
	return &Store{db: db}
}

// Insert persists a session summary.
func (s *Store) Insert(ctx context.Context, sess GameSession) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO game_sessions (session_id, category, difficulty, streak, accuracy, questions_answered, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		sess.ID, sess.Category, sess.Difficulty, sess.Streak, sess.Accuracy, sess.QuestionsAnswered, sess.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// Leaderboard returns sessions ordered by descending streak. An empty
// category means no filter.
func (s *Store) Leaderboard(ctx context.Context, category string, limit int) ([]GameSession, error) {
	const columns = `session_id, category, difficulty, streak, accuracy, questions_answered, created_at`
	var (
		rows pgx.Rows
		err  error
	)
	if category == "" {
		rows, err = s.db.Query(ctx, fmt.Sprintf(`
			SELECT %s FROM game_sessions ORDER BY streak DESC LIMIT $1`, columns), limit)
	} else {
		rows, err = s.db.Query(ctx, fmt.Sprintf(`
			SELECT %s FROM game_sessions WHERE category = $1 ORDER BY streak DESC LIMIT $2`, columns), category, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch leaderboard: %w", err)
	}
	defer rows.Close()

	var out []GameSession
	for rows.Next() {
		var sess GameSession
		if err := rows.Scan(&sess.ID, &sess.Category, &sess.Difficulty, &sess.Streak, &sess.Accuracy, &sess.QuestionsAnswered, &sess.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		out = append(out, sess)
	}
	return out, rows.Err()
}

// TotalCount returns the number of stored sessions.
func (s *Store) TotalCount(ctx context.Context) (int64, error) {
	var total int64
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM game_sessions`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return total, nil
}
