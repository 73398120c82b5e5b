package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"quiz_engine/internal/common"
	"quiz_engine/internal/domain/model"
)

// QuizRepository is the quiz store. Listing order is primary key order.
type QuizRepository interface {
	Create(ctx context.Context, quiz *model.Quiz) error
	FindByID(ctx context.Context, id int64) (*model.Quiz, error)
	FindFirstBySlug(ctx context.Context, slug string) (*model.Quiz, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]model.Quiz, error)
}

type sqlQuizRepository struct {
	db *sql.DB
}

func NewSQLQuizRepository(db *sql.DB) QuizRepository {
	return &sqlQuizRepository{db: db}
}

const quizColumns = `id, title, slug, text, options_json, answer_json, created_by, created_at`

// Create inserts quiz and sets its ID from the store.
func (r *sqlQuizRepository) Create(ctx context.Context, quiz *model.Quiz) error {
	if quiz.CreatedAt.IsZero() {
		quiz.CreatedAt = time.Now().UTC()
	}
	if quiz.Answer == nil {
		quiz.Answer = []int{}
	}
	optionsJSON, err := json.Marshal(quiz.Options)
	if err != nil {
		return fmt.Errorf("sqlQuizRepository.Create marshal options: %w", err)
	}
	answerJSON, err := json.Marshal(quiz.Answer)
	if err != nil {
		return fmt.Errorf("sqlQuizRepository.Create marshal answer: %w", err)
	}

	query := `INSERT INTO quizzes (title, slug, text, options_json, answer_json, created_by, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id`
	err = r.db.QueryRowContext(ctx, query,
		quiz.Title, quiz.Slug, quiz.Text, string(optionsJSON), string(answerJSON), quiz.CreatedBy, quiz.CreatedAt.UnixNano(),
	).Scan(&quiz.ID)
	if err != nil {
		return fmt.Errorf("sqlQuizRepository.Create: %w", err)
	}
	return nil
}

func (r *sqlQuizRepository) FindByID(ctx context.Context, id int64) (*model.Quiz, error) {
	query := `SELECT ` + quizColumns + ` FROM quizzes WHERE id = $1`
	quiz, err := scanQuiz(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("sqlQuizRepository.FindByID: %w", err)
	}
	return quiz, nil
}

func (r *sqlQuizRepository) FindFirstBySlug(ctx context.Context, slug string) (*model.Quiz, error) {
	query := `SELECT ` + quizColumns + ` FROM quizzes WHERE slug = $1 ORDER BY id ASC LIMIT 1`
	quiz, err := scanQuiz(r.db.QueryRowContext(ctx, query, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("sqlQuizRepository.FindFirstBySlug: %w", err)
	}
	return quiz, nil
}

func (r *sqlQuizRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM quizzes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("sqlQuizRepository.Delete: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlQuizRepository.Delete rows affected: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *sqlQuizRepository) List(ctx context.Context, limit, offset int) ([]model.Quiz, error) {
	query := `SELECT ` + quizColumns + ` FROM quizzes ORDER BY id ASC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("sqlQuizRepository.List query: %w", err)
	}
	defer rows.Close()

	quizzes := []model.Quiz{}
	for rows.Next() {
		quiz, err := scanQuiz(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlQuizRepository.List scan: %w", err)
		}
		quizzes = append(quizzes, *quiz)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlQuizRepository.List rows.Err: %w", err)
	}
	return quizzes, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuiz(row rowScanner) (*model.Quiz, error) {
	var (
		quiz        model.Quiz
		optionsJSON string
		answerJSON  string
		createdAt   int64
	)
	if err := row.Scan(&quiz.ID, &quiz.Title, &quiz.Slug, &quiz.Text, &optionsJSON, &answerJSON, &quiz.CreatedBy, &createdAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(optionsJSON), &quiz.Options); err != nil {
		return nil, fmt.Errorf("decode options: %w", err)
	}
	if err := json.Unmarshal([]byte(answerJSON), &quiz.Answer); err != nil {
		return nil, fmt.Errorf("decode answer: %w", err)
	}
	if quiz.Answer == nil {
		quiz.Answer = []int{}
	}
	quiz.CreatedAt = time.Unix(0, createdAt).UTC()
	return &quiz, nil
}
