package trivia

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// dbtx is the slice of pgx behavior the store needs; satisfied by
// *pgxpool.Pool and by pgx.Tx.
type dbtx interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Store persists generated questions in Postgres.
type Store struct {
	db dbtx
}

func NewStore(db dbtx) *Store {
	return &Store{db: db}
}

const questionColumns = `question_id, statement, is_true, explanation, category, difficulty, confidence, created_at`

// FindOne returns any persisted question matching the category whose
// difficulty is in the allowed set and whose id is not excluded. A miss
// is (nil, nil), not an error.
func (s *Store) FindOne(ctx context.Context, category string, difficulties []int, excludeIDs []string) (*Question, error) {
	if excludeIDs == nil {
		excludeIDs = []string{}
	}
	row := s.db.QueryRow(ctx, fmt.Sprintf(`
		SELECT %s FROM questions
		WHERE category = $1 AND difficulty = ANY($2) AND NOT (question_id::text = ANY($3))
		LIMIT 1`, questionColumns),
		category, difficulties, excludeIDs)

	q, err := scanQuestion(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find question: %w", err)
	}
	return q, nil
}

// FindMany returns up to limit matching questions. An empty category
// means any category. Order is unspecified.
func (s *Store) FindMany(ctx context.Context, category string, difficulties []int, limit int) ([]Question, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if category == "" {
		rows, err = s.db.Query(ctx, fmt.Sprintf(`
			SELECT %s FROM questions
			WHERE difficulty = ANY($1)
			LIMIT $2`, questionColumns),
			difficulties, limit)
	} else {
		rows, err = s.db.Query(ctx, fmt.Sprintf(`
			SELECT %s FROM questions
			WHERE category = $1 AND difficulty = ANY($2)
			LIMIT $3`, questionColumns),
			category, difficulties, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("find questions: %w", err)
	}
	defer rows.Close()

	var out []Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		out = append(out, *q)
	}
	return out, rows.Err()
}

// Insert persists a fully validated question. Identities are random
// UUIDs, so a duplicate key is treated as already-stored rather than a
// failure.
func (s *Store) Insert(ctx context.Context, q Question) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO questions (question_id, statement, is_true, explanation, category, difficulty, confidence, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (question_id) DO NOTHING`,
		q.ID, q.Statement, q.IsTrue, q.Explanation, q.Category, q.Difficulty, q.Confidence, q.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert question: %w", err)
	}
	return nil
}

// CountByCategory returns per-category question counts for stats.
func (s *Store) CountByCategory(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.Query(ctx, `SELECT category, COUNT(*) FROM questions GROUP BY category`)
	if err != nil {
		return nil, fmt.Errorf("count questions by category: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, fmt.Errorf("scan category count: %w", err)
		}
		counts[category] = count
	}
	return counts, rows.Err()
}

// TotalCount returns the total number of stored questions.
func (s *Store) TotalCount(ctx context.Context) (int64, error) {
	var total int64
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM questions`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return total, nil
}

func scanQuestion(row pgx.Row) (*Question, error) {
	var q Question
	if err := row.Scan(&q.ID, &q.Statement, &q.IsTrue, &q.Explanation, &q.Category, &q.Difficulty, &q.Confidence, &q.CreatedAt); err != nil {
		return nil, err
	}
	return &q, nil
}
