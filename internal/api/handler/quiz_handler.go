package handler

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"quiz_engine/internal/api/middleware"
	"quiz_engine/internal/app/service"
	"quiz_engine/internal/common"
	"quiz_engine/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type QuizHandler struct {
	quizService *service.QuizService
	resolver    middleware.Resolver
}

func NewQuizHandler(qs *service.QuizService, resolver middleware.Resolver) *QuizHandler {
	return &QuizHandler{quizService: qs, resolver: resolver}
}

func (h *QuizHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listQuizzes)              // GET /api/quizzes?page=0
	r.Get("/{id:[0-9]+}", h.getQuiz)       // GET /api/quizzes/7
	r.Get("/slug/{quizSlug}", h.getBySlug) // GET /api/quizzes/slug/the-java-logo

	r.Group(func(authed chi.Router) {
		authed.Use(middleware.Authenticator(h.resolver))
		authed.Post("/", h.createQuiz)
		authed.Get("/completed", h.listCompleted)
		authed.Delete("/{id:[0-9]+}", h.deleteQuiz)
		authed.Post("/{id:[0-9]+}/solve", h.solveQuiz)
	})
}

func (h *QuizHandler) createQuiz(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		common.RespondWithStatusError(w, common.ErrUnauthorized)
		return
	}

	var req service.CreateQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithStatusError(w, common.ErrBadRequest)
		return
	}

	quiz, err := h.quizService.CreateQuiz(r.Context(), identity, req)
	if err != nil {
		common.RespondWithStatusError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, quiz)
}

func (h *QuizHandler) listQuizzes(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		common.RespondWithStatusError(w, err)
		return
	}

	quizzes, err := h.quizService.ListQuizzes(r.Context(), page)
	if err != nil {
		common.RespondWithStatusError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, quizzes)
}

func (h *QuizHandler) getQuiz(w http.ResponseWriter, r *http.Request) {
	id, err := parseQuizID(r)
	if err != nil {
		common.RespondWithStatusError(w, err)
		return
	}

	quiz, err := h.quizService.GetQuiz(r.Context(), id)
	if err != nil {
		common.RespondWithStatusError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, quiz)
}

func (h *QuizHandler) getBySlug(w http.ResponseWriter, r *http.Request) {
	quiz, err := h.quizService.GetQuizBySlug(r.Context(), chi.URLParam(r, "quizSlug"))
	if err != nil {
		common.RespondWithStatusError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, quiz)
}

func (h *QuizHandler) deleteQuiz(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		common.RespondWithStatusError(w, common.ErrUnauthorized)
		return
	}
	id, err := parseQuizID(r)
	if err != nil {
		common.RespondWithStatusError(w, err)
		return
	}

	if err := h.quizService.DeleteQuiz(r.Context(), id, identity); err != nil {
		common.RespondWithStatusError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *QuizHandler) solveQuiz(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		common.RespondWithStatusError(w, common.ErrUnauthorized)
		return
	}
	id, err := parseQuizID(r)
	if err != nil {
		common.RespondWithStatusError(w, err)
		return
	}

	var req service.SolveRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		common.RespondWithStatusError(w, common.ErrBadRequest)
		return
	}

	result, err := h.quizService.SolveQuiz(r.Context(), id, identity, req.Answer)
	if err != nil {
		common.RespondWithStatusError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, result)
}

func (h *QuizHandler) listCompleted(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		common.RespondWithStatusError(w, common.ErrUnauthorized)
		return
	}
	page, err := parsePage(r)
	if err != nil {
		common.RespondWithStatusError(w, err)
		return
	}

	completions, err := h.quizService.ListCompleted(r.Context(), identity, page)
	if err != nil {
		common.RespondWithStatusError(w, err)
		return
	}
	if completions == nil {
		completions = []model.Completion{}
	}
	common.RespondWithJSON(w, http.StatusOK, completions)
}

// parsePage reads the zero-indexed page query parameter, defaulting to 0.
func parsePage(r *http.Request) (int, error) {
	value := strings.TrimSpace(r.URL.Query().Get("page"))
	if value == "" {
		return 0, nil
	}
	page, err := strconv.Atoi(value)
	if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(value, "-") {
		// past any real page; the service answers with an empty one
		return math.MaxInt, nil
	}
	if err != nil {
		return 0, common.Errorf("page %q is not an integer: %w", value, common.ErrBadRequest)
	}
	return page, nil
}

func parseQuizID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		// out of int64 range; no such quiz can exist
		return 0, common.ErrNotFound
	}
	return id, nil
}

// decodeOptionalJSON decodes the body into dst, treating an empty body as {}.
func decodeOptionalJSON(r *http.Request, dst interface{}) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
