package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quiz_engine/internal/api"
	"quiz_engine/internal/app/service"
	"quiz_engine/internal/common/security"
	"quiz_engine/internal/domain/repository"
	"quiz_engine/internal/platform/cache"
	"quiz_engine/internal/platform/config"
	"quiz_engine/internal/platform/database"
	"quiz_engine/internal/platform/logger"

	"github.com/spf13/pflag"
)

func main() {
	envFiles := pflag.StringSlice("env-file", nil, "dotenv file(s) to load before reading the environment")
	port := pflag.String("port", "", "listen port, overrides API_PORT")
	pflag.Parse()

	// 1. Load Configuration
	cfg := config.Load(*envFiles...)
	if *port != "" {
		cfg.APIPort = *port
	}
	logger.New(os.Stdout, cfg.LogLevel)
	slog.Info("Configuration loaded.", "db_driver", cfg.DBDriver)

	// 2. Initialize JWT
	security.InitJWT(cfg.JWTKey, cfg.JWTExp)

	// 3. Initialize Database
	database.Connect()
	defer database.Close()

	// 4. Initialize Redis (optional quiz cache)
	if err := cache.ConnectRedis(); err != nil {
		slog.Warn("Continuing without quiz cache", "error", err)
	}
	defer cache.CloseRedis()

	// 5. Initialize Repositories
	userRepo := repository.NewSQLUserRepository(database.DB)
	quizRepo := repository.NewCachedQuizRepository(repository.NewSQLQuizRepository(database.DB), cache.RDB, cfg.QuizCacheTTL)
	completionRepo := repository.NewSQLCompletionRepository(database.DB)

	// 6. Initialize Services
	authService := service.NewAuthService(userRepo, security.NewBcryptHasher(cfg.BcryptCost))
	quizService := service.NewQuizService(quizRepo, completionRepo)

	// 7. Initialize Router & HTTP Server
	router := api.NewRouter(authService, quizService)

	server := api.NewServer(":"+cfg.APIPort, router)

	// 8. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("Server starting", "port", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Could not listen", "port", cfg.APIPort, "error", err)
			os.Exit(1)
		}
	}()

	<-stop // Wait for interrupt signal

	slog.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		return
	}

	slog.Info("Server stopped gracefully.")
}
