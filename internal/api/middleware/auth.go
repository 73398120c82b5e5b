package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"quiz_engine/internal/common"
	"quiz_engine/internal/common/security"
	"quiz_engine/internal/domain/model"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const IdentityCtxKey contextKey = "identity"

// Resolver verifies a username and raw password.
type Resolver interface {
	Authenticate(ctx context.Context, username, password string) (*model.Identity, error)
}

// ResolveIdentity turns the credentials on r into a verified identity.
// Basic credentials are checked against resolver on every call; otherwise a
// bearer token already verified by jwtauth.Verifier is accepted.
func ResolveIdentity(r *http.Request, resolver Resolver) (*model.Identity, error) {
	if username, password, ok := r.BasicAuth(); ok {
		return resolver.Authenticate(r.Context(), username, password)
	}

	token, claims, err := jwtauth.FromContext(r.Context())
	if err != nil || token == nil {
		return nil, common.ErrUnauthorized
	}
	username, err := security.GetUsernameFromClaims(claims)
	if err != nil {
		return nil, common.ErrUnauthorized
	}
	return &model.Identity{Username: username}, nil
}

// Authenticator rejects requests without valid credentials with 401 and
// attaches the identity to the request context otherwise.
func Authenticator(resolver Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := ResolveIdentity(r, resolver)
			if err != nil {
				if !errors.Is(err, common.ErrUnauthorized) {
					slog.Error("Failed to resolve identity", "error", err)
					common.RespondWithStatusError(w, err)
					return
				}
				w.Header().Set("WWW-Authenticate", `Basic realm="quiz"`)
				common.RespondWithError(w, http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
				return
			}

			ctx := context.WithValue(r.Context(), IdentityCtxKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Helper to get the caller identity from context
func GetIdentityFromContext(ctx context.Context) (*model.Identity, bool) {
	identity, ok := ctx.Value(IdentityCtxKey).(*model.Identity)
	return identity, ok && identity != nil
}
