package handler

import (
	"encoding/json"
	"net/http"

	"quiz_engine/internal/api/middleware"
	"quiz_engine/internal/app/service"
	"quiz_engine/internal/common"

	"github.com/go-chi/chi/v5"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/register", h.register)

	r.Group(func(authed chi.Router) {
		authed.Use(middleware.Authenticator(h.authService))
		authed.Get("/whoami", h.whoami)
		authed.Post("/token", h.token)
	})
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithStatusError(w, common.ErrBadRequest)
		return
	}

	if err := h.authService.Register(r.Context(), req); err != nil {
		common.RespondWithStatusError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *AuthHandler) whoami(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		common.RespondWithStatusError(w, common.ErrUnauthorized)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, identity)
}

func (h *AuthHandler) token(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		common.RespondWithStatusError(w, common.ErrUnauthorized)
		return
	}
	resp, err := h.authService.IssueToken(identity)
	if err != nil {
		common.RespondWithStatusError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}
