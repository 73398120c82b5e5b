package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"quiz_engine/internal/common"
	"quiz_engine/internal/domain/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCachedRepo(t *testing.T) (QuizRepository, QuizRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	inner := NewSQLQuizRepository(newTestDB(t))
	return NewCachedQuizRepository(inner, rdb, time.Minute), inner, mr
}

func TestCachedQuizRepositoryReadThrough(t *testing.T) {
	repo, _, mr := newCachedRepo(t)
	ctx := context.Background()

	quiz := newQuiz("cached", []int{1, 0})
	require.NoError(t, repo.Create(ctx, quiz))
	assert.False(t, mr.Exists(quizCacheKey(quiz.ID)))

	first, err := repo.FindByID(ctx, quiz.ID)
	require.NoError(t, err)
	require.True(t, mr.Exists(quizCacheKey(quiz.ID)))
	assert.Equal(t, time.Minute, mr.TTL(quizCacheKey(quiz.ID)))

	second, err := repo.FindByID(ctx, quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Title, second.Title)
	assert.Equal(t, []int{1, 0}, second.Answer)
	assert.Equal(t, "alice@example.com", second.CreatedBy)
}

func TestCachedQuizRepositoryDeleteInvalidates(t *testing.T) {
	repo, _, mr := newCachedRepo(t)
	ctx := context.Background()

	quiz := newQuiz("gone", []int{0})
	require.NoError(t, repo.Create(ctx, quiz))
	_, err := repo.FindByID(ctx, quiz.ID)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, quiz.ID))
	cached, err := mr.Get(quizCacheKey(quiz.ID))
	require.NoError(t, err)
	assert.Equal(t, quizTombstone, cached)

	_, err = repo.FindByID(ctx, quiz.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestCachedQuizRepositoryFallsBackWhenRedisDown(t *testing.T) {
	repo, _, mr := newCachedRepo(t)
	ctx := context.Background()

	quiz := newQuiz("resilient", []int{2})
	require.NoError(t, repo.Create(ctx, quiz))
	mr.Close()

	found, err := repo.FindByID(ctx, quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, "resilient", found.Title)
	assert.NoError(t, repo.Delete(ctx, quiz.ID))
}

func TestCachedQuizRepositoryDropsCorruptEntry(t *testing.T) {
	repo, inner, mr := newCachedRepo(t)
	ctx := context.Background()

	quiz := newQuiz("corrupt", []int{0})
	require.NoError(t, inner.Create(ctx, quiz))
	require.NoError(t, mr.Set(quizCacheKey(quiz.ID), "{not json"))

	found, err := repo.FindByID(ctx, quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, "corrupt", found.Title)
}

func TestNewCachedQuizRepositoryWithoutRedis(t *testing.T) {
	inner := NewSQLQuizRepository(newTestDB(t))
	assert.Same(t, inner, NewCachedQuizRepository(inner, nil, time.Minute))
}

// pausingQuizRepository holds FindByID after the row is read until release is closed.
type pausingQuizRepository struct {
	QuizRepository
	once    sync.Once
	loaded  chan struct{}
	release chan struct{}
}

func (p *pausingQuizRepository) FindByID(ctx context.Context, id int64) (*model.Quiz, error) {
	quiz, err := p.QuizRepository.FindByID(ctx, id)
	p.once.Do(func() {
		close(p.loaded)
		<-p.release
	})
	return quiz, err
}

func TestCachedQuizRepositoryDeleteDuringFill(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	inner := &pausingQuizRepository{
		QuizRepository: NewSQLQuizRepository(newTestDB(t)),
		loaded:         make(chan struct{}),
		release:        make(chan struct{}),
	}
	repo := NewCachedQuizRepository(inner, rdb, time.Minute)
	ctx := context.Background()

	quiz := newQuiz("racy", []int{0})
	require.NoError(t, repo.Create(ctx, quiz))

	done := make(chan error, 1)
	go func() {
		_, err := repo.FindByID(ctx, quiz.ID)
		done <- err
	}()

	<-inner.loaded
	require.NoError(t, repo.Delete(ctx, quiz.ID))
	close(inner.release)
	require.NoError(t, <-done)

	_, err := repo.FindByID(ctx, quiz.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}
