package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"quiz_engine/internal/domain/model"
)

// CompletionRepository is the append-only completion log.
type CompletionRepository interface {
	Create(ctx context.Context, completion *model.Completion) error
	// ListByUser returns username's completions, newest first. Equal
	// timestamps are ordered by insertion, latest first.
	ListByUser(ctx context.Context, username string, limit, offset int) ([]model.Completion, error)
}

type sqlCompletionRepository struct {
	db *sql.DB
}

func NewSQLCompletionRepository(db *sql.DB) CompletionRepository {
	return &sqlCompletionRepository{db: db}
}

func (r *sqlCompletionRepository) Create(ctx context.Context, c *model.Completion) error {
	if c.CompletedAt.IsZero() {
		c.CompletedAt = time.Now().UTC()
	}
	query := `INSERT INTO completions (quiz_id, completed_by, completed_at)
	          VALUES ($1, $2, $3)
	          RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, c.QuizID, c.CompletedBy, c.CompletedAt.UnixNano()).Scan(&c.ID); err != nil {
		return fmt.Errorf("sqlCompletionRepository.Create: %w", err)
	}
	return nil
}

func (r *sqlCompletionRepository) ListByUser(ctx context.Context, username string, limit, offset int) ([]model.Completion, error) {
	query := `SELECT id, quiz_id, completed_by, completed_at
	          FROM completions
	          WHERE completed_by = $1
	          ORDER BY completed_at DESC, id DESC
	          LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, username, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("sqlCompletionRepository.ListByUser query: %w", err)
	}
	defer rows.Close()

	completions := []model.Completion{}
	for rows.Next() {
		var (
			c           model.Completion
			completedAt int64
		)
		if err := rows.Scan(&c.ID, &c.QuizID, &c.CompletedBy, &completedAt); err != nil {
			return nil, fmt.Errorf("sqlCompletionRepository.ListByUser scan: %w", err)
		}
		c.CompletedAt = time.Unix(0, completedAt).UTC()
		completions = append(completions, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlCompletionRepository.ListByUser rows.Err: %w", err)
	}
	return completions, nil
}
