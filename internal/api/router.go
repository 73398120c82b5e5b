package api

import (
	"net/http"
	"time"

	"quiz_engine/internal/api/handler"
	"quiz_engine/internal/app/service"
	"quiz_engine/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

// RequestTimeout bounds a handler. The server's write timeout leaves room
// after it so chi's 504 still reaches the client.
const RequestTimeout = 30 * time.Second

// NewServer wraps handler in an http.Server whose timeouts agree with RequestTimeout.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: RequestTimeout + 5*time.Second,
		IdleTimeout:  120 * time.Second,
	}
}

func NewRouter(
	authService *service.AuthService,
	quizService *service.QuizService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(RequestTimeout))

	// Bearer tokens are verified here and read back by middleware.Authenticator.
	// Requests without one pass through untouched.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(api chi.Router) {
		// register (public), whoami and token (authenticated)
		authHandler := handler.NewAuthHandler(authService)
		authHandler.RegisterRoutes(api)

		quizHandler := handler.NewQuizHandler(quizService, authService)
		api.Route("/quizzes", quizHandler.RegisterRoutes)
	})

	return r
}
