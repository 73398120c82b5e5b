package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"quiz_engine/internal/common"
	"quiz_engine/internal/domain/model"

	"github.com/redis/go-redis/v9"
)

const quizCacheKeyPrefix = "quiz:"

// quizTombstone marks a deleted quiz. Fills use SETNX, so a read that loaded
// the row before the delete cannot bring it back.
const quizTombstone = "deleted"

// cachedQuiz carries every field, including the ones hidden from API JSON.
type cachedQuiz struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Text      string    `json:"text"`
	Options   []string  `json:"options"`
	Answer    []int     `json:"answer"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// cachedQuizRepository puts a Redis read-through cache in front of FindByID.
// Redis failures are logged and the underlying store answers instead.
type cachedQuizRepository struct {
	QuizRepository
	rdb *redis.Client
	ttl time.Duration
}

func NewCachedQuizRepository(inner QuizRepository, rdb *redis.Client, ttl time.Duration) QuizRepository {
	if rdb == nil {
		return inner
	}
	return &cachedQuizRepository{QuizRepository: inner, rdb: rdb, ttl: ttl}
}

func quizCacheKey(id int64) string {
	return quizCacheKeyPrefix + strconv.FormatInt(id, 10)
}

func (r *cachedQuizRepository) FindByID(ctx context.Context, id int64) (*model.Quiz, error) {
	key := quizCacheKey(id)
	raw, err := r.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		if string(raw) == quizTombstone {
			return nil, common.ErrNotFound
		}
		var entry cachedQuiz
		if err := json.Unmarshal(raw, &entry); err == nil {
			return entry.toModel(), nil
		}
		slog.Warn("Dropping undecodable quiz cache entry", "key", key)
		r.rdb.Del(ctx, key)
	case !errors.Is(err, redis.Nil):
		slog.Warn("Quiz cache read failed", "key", key, "error", err)
	}

	quiz, err := r.QuizRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(fromModel(quiz))
	if err == nil {
		err = r.rdb.SetNX(ctx, key, payload, r.ttl).Err()
	}
	if err != nil {
		slog.Warn("Quiz cache write failed", "key", key, "error", err)
	}
	return quiz, nil
}

func (r *cachedQuizRepository) Delete(ctx context.Context, id int64) error {
	if err := r.QuizRepository.Delete(ctx, id); err != nil {
		return err
	}
	// Quiz ids are never reused, so the tombstone only has to outlive any
	// in-flight fill.
	if err := r.rdb.Set(ctx, quizCacheKey(id), quizTombstone, r.ttl).Err(); err != nil {
		slog.Warn("Quiz cache invalidation failed", "quiz_id", id, "error", err)
	}
	return nil
}

func fromModel(q *model.Quiz) cachedQuiz {
	return cachedQuiz{
		ID:        q.ID,
		Title:     q.Title,
		Slug:      q.Slug,
		Text:      q.Text,
		Options:   q.Options,
		Answer:    q.Answer,
		CreatedBy: q.CreatedBy,
		CreatedAt: q.CreatedAt,
	}
}

func (c cachedQuiz) toModel() *model.Quiz {
	answer := c.Answer
	if answer == nil {
		answer = []int{}
	}
	return &model.Quiz{
		ID:        c.ID,
		Title:     c.Title,
		Slug:      c.Slug,
		Text:      c.Text,
		Options:   c.Options,
		Answer:    answer,
		CreatedBy: c.CreatedBy,
		CreatedAt: c.CreatedAt,
	}
}
