package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"quiz_engine/internal/common"
	"quiz_engine/internal/domain/model"
	"quiz_engine/internal/domain/repository"

	"github.com/gosimple/slug"
)

// PageSize is the fixed number of items per page for every listing.
const PageSize = 10

// maxPage is the last page whose offset fits in an int. Anything past it is
// necessarily empty.
const maxPage = math.MaxInt / PageSize

type QuizService struct {
	quizRepo       repository.QuizRepository
	completionRepo repository.CompletionRepository
	now            func() time.Time
}

func NewQuizService(quizRepo repository.QuizRepository, completionRepo repository.CompletionRepository) *QuizService {
	return &QuizService{
		quizRepo:       quizRepo,
		completionRepo: completionRepo,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

type CreateQuizRequest struct {
	Title   string   `json:"title"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
	Answer  []int    `json:"answer"`
}

type SolveRequest struct {
	Answer []int `json:"answer"`
}

type SolveResult struct {
	Success  bool   `json:"success"`
	Feedback string `json:"feedback"`
}

// CreateQuiz stores a new quiz owned by owner. The owner always comes from
// the authenticated identity, never from the request body.
func (s *QuizService) CreateQuiz(ctx context.Context, owner *model.Identity, req CreateQuizRequest) (*model.Quiz, error) {
	if err := validateQuiz(req); err != nil {
		return nil, err
	}

	answer := req.Answer
	if answer == nil {
		answer = []int{}
	}
	quiz := &model.Quiz{
		Title:     req.Title,
		Slug:      slug.Make(req.Title),
		Text:      req.Text,
		Options:   req.Options,
		Answer:    answer,
		CreatedBy: owner.Username,
		CreatedAt: s.now(),
	}

	if err := s.quizRepo.Create(ctx, quiz); err != nil {
		slog.Error("Failed to create quiz", "owner", owner.Username, "error", err)
		return nil, fmt.Errorf("failed to create quiz: %w", common.ErrValidation)
	}

	slog.Info("Quiz created", "quiz_id", quiz.ID, "owner", owner.Username)
	return quiz, nil
}

// ListQuizzes returns one zero-indexed page of quizzes in creation order.
// Pages past the end are empty.
func (s *QuizService) ListQuizzes(ctx context.Context, page int) ([]model.Quiz, error) {
	if err := validatePage(page); err != nil {
		return nil, err
	}
	if page > maxPage {
		return []model.Quiz{}, nil
	}
	quizzes, err := s.quizRepo.List(ctx, PageSize, page*PageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}
	return quizzes, nil
}

func (s *QuizService) GetQuiz(ctx context.Context, id int64) (*model.Quiz, error) {
	return s.quizRepo.FindByID(ctx, id)
}

func (s *QuizService) GetQuizBySlug(ctx context.Context, quizSlug string) (*model.Quiz, error) {
	return s.quizRepo.FindFirstBySlug(ctx, quizSlug)
}

// DeleteQuiz removes a quiz owned by caller. Existence is checked before
// ownership, so a missing quiz is NotFound for everyone.
func (s *QuizService) DeleteQuiz(ctx context.Context, id int64, caller *model.Identity) error {
	quiz, err := s.quizRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !quiz.IsOwnedBy(caller.Username) {
		return fmt.Errorf("quiz %d belongs to another user: %w", id, common.ErrForbidden)
	}
	if err := s.quizRepo.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("Quiz deleted", "quiz_id", id, "owner", caller.Username)
	return nil
}

// SolveQuiz checks submitted against the stored answer and records a
// completion for caller when it matches. The correct answer is never
// revealed.
func (s *QuizService) SolveQuiz(ctx context.Context, id int64, caller *model.Identity, submitted []int) (*SolveResult, error) {
	quiz, err := s.quizRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !AnswerMatches(quiz.Answer, submitted) {
		slog.Debug("Wrong answer submitted", "quiz_id", id, "user", caller.Username)
		return &SolveResult{Success: false, Feedback: feedbackWrong}, nil
	}

	completion := &model.Completion{
		QuizID:      quiz.ID,
		CompletedBy: caller.Username,
		CompletedAt: s.now(),
	}
	if err := s.completionRepo.Create(ctx, completion); err != nil {
		return nil, fmt.Errorf("failed to record completion: %w", err)
	}

	slog.Info("Quiz solved", "quiz_id", id, "user", caller.Username)
	return &SolveResult{Success: true, Feedback: feedbackCorrect}, nil
}

// ListCompleted returns one page of caller's own completions, newest first.
func (s *QuizService) ListCompleted(ctx context.Context, caller *model.Identity, page int) ([]model.Completion, error) {
	if err := validatePage(page); err != nil {
		return nil, err
	}
	if page > maxPage {
		return []model.Completion{}, nil
	}
	completions, err := s.completionRepo.ListByUser(ctx, caller.Username, PageSize, page*PageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list completions: %w", err)
	}
	return completions, nil
}
