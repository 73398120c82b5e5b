package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quiz_engine/internal/common"
	"quiz_engine/internal/common/security"
	"quiz_engine/internal/domain/model"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResolver struct {
	calls int
	err   error
}

func (s *stubResolver) Authenticate(_ context.Context, username, password string) (*model.Identity, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if password != "secret" {
		return nil, common.ErrUnauthorized
	}
	return &model.Identity{Username: username}, nil
}

func protected(resolver Resolver) http.Handler {
	echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := GetIdentityFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		w.Write([]byte(identity.Username))
	})
	return jwtauth.Verifier(security.TokenAuth)(Authenticator(resolver)(echo))
}

func TestAuthenticatorBasic(t *testing.T) {
	security.InitJWT([]byte("middleware-test"), time.Hour)
	resolver := &stubResolver{}
	h := protected(resolver)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.SetBasicAuth("alice@example.com", "secret")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice@example.com", rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.SetBasicAuth("alice@example.com", "nope")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, `Basic realm="quiz"`, rec.Header().Get("WWW-Authenticate"))
	assert.Equal(t, 2, resolver.calls)
}

func TestAuthenticatorMissingCredentials(t *testing.T) {
	security.InitJWT([]byte("middleware-test"), time.Hour)
	resolver := &stubResolver{}

	rec := httptest.NewRecorder()
	protected(resolver).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, resolver.calls)
}

func TestAuthenticatorStoreFailureIsNotUnauthorized(t *testing.T) {
	security.InitJWT([]byte("middleware-test"), time.Hour)
	resolver := &stubResolver{err: errors.New("db down")}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.SetBasicAuth("alice@example.com", "secret")
	rec := httptest.NewRecorder()
	protected(resolver).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestAuthenticatorBearer(t *testing.T) {
	security.InitJWT([]byte("middleware-test"), time.Hour)
	resolver := &stubResolver{}
	token, err := security.GenerateToken("bob@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	protected(resolver).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "bob@example.com", rec.Body.String())
	assert.Zero(t, resolver.calls)
}

func TestAuthenticatorExpiredBearer(t *testing.T) {
	security.InitJWT([]byte("middleware-test"), -time.Hour)
	token, err := security.GenerateToken("bob@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	protected(&stubResolver{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
