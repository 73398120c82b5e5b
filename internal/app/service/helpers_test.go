package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"quiz_engine/internal/common/security"
	"quiz_engine/internal/domain/model"
	"quiz_engine/internal/domain/repository"
	"quiz_engine/internal/platform/database"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testEnv struct {
	users       repository.UserRepository
	quizzes     repository.QuizRepository
	completions repository.CompletionRepository
	auth        *AuthService
	quiz        *QuizService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.Open("sqlite", filepath.Join(t.TempDir(), "quiz.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(context.Background(), db, "sqlite"))

	env := &testEnv{
		users:       repository.NewSQLUserRepository(db),
		quizzes:     repository.NewSQLQuizRepository(db),
		completions: repository.NewSQLCompletionRepository(db),
	}
	env.auth = NewAuthService(env.users, security.NewBcryptHasher(bcrypt.MinCost))
	env.quiz = NewQuizService(env.quizzes, env.completions)
	return env
}

// tickingClock returns a clock that advances one second per call.
func tickingClock() func() time.Time {
	current := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		current = current.Add(time.Second)
		return current
	}
}

var (
	alice = &model.Identity{Username: "alice@example.com"}
	bob   = &model.Identity{Username: "bob@example.com"}
)
