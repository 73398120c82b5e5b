package repository

import (
	"context"
	"testing"
	"time"

	"quiz_engine/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletionRepositoryListNewestFirst(t *testing.T) {
	repo := NewSQLCompletionRepository(newTestDB(t))
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	records := []model.Completion{
		{QuizID: 1, CompletedBy: "alice@example.com", CompletedAt: base},
		{QuizID: 2, CompletedBy: "alice@example.com", CompletedAt: base.Add(time.Minute)},
		{QuizID: 3, CompletedBy: "bob@example.com", CompletedAt: base.Add(2 * time.Minute)},
		// same instant as quiz 2, inserted later
		{QuizID: 4, CompletedBy: "alice@example.com", CompletedAt: base.Add(time.Minute)},
	}
	for i := range records {
		require.NoError(t, repo.Create(ctx, &records[i]))
		require.NotZero(t, records[i].ID)
	}

	got, err := repo.ListByUser(ctx, "alice@example.com", 10, 0)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []int64{4, 2, 1}, []int64{got[0].QuizID, got[1].QuizID, got[2].QuizID})
	assert.True(t, got[2].CompletedAt.Equal(base))
}

func TestCompletionRepositoryRepeatsAreKept(t *testing.T) {
	repo := NewSQLCompletionRepository(newTestDB(t))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, &model.Completion{QuizID: 9, CompletedBy: "alice@example.com"}))
	}

	got, err := repo.ListByUser(ctx, "alice@example.com", 10, 0)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestCompletionRepositoryPagination(t *testing.T) {
	repo := NewSQLCompletionRepository(newTestDB(t))
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 12; i++ {
		require.NoError(t, repo.Create(ctx, &model.Completion{
			QuizID:      int64(i),
			CompletedBy: "alice@example.com",
			CompletedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	second, err := repo.ListByUser(ctx, "alice@example.com", 10, 10)
	require.NoError(t, err)
	require.Len(t, second, 2)
	assert.Equal(t, int64(1), second[0].QuizID)
	assert.Equal(t, int64(0), second[1].QuizID)

	none, err := repo.ListByUser(ctx, "carol@example.com", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}
