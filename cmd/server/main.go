package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/seguridad-cloud-uniandes/CloudSecurity/internal/auth"
	"github.com/seguridad-cloud-uniandes/CloudSecurity/internal/config"
	"github.com/seguridad-cloud-uniandes/CloudSecurity/internal/server"
	"github.com/seguridad-cloud-uniandes/CloudSecurity/internal/server/handlers"
	"github.com/seguridad-cloud-uniandes/CloudSecurity/internal/server/service"
	"github.com/seguridad-cloud-uniandes/CloudSecurity/internal/server/storage/sqlite"
	"github.com/seguridad-cloud-uniandes/CloudSecurity/internal/token"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file (optional, env vars used otherwise)")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	// .env is optional; real deployments set environment variables directly
	_ = godotenv.Load()

	cfg := config.MustLoad(*configPath)
	logger := setupLogger(cfg.Env)

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.New(ctx, cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close storage", "error", err)
		}
	}()

	tokens := token.NewService(
		token.SigningConfig{Secret: []byte(cfg.Auth.AccessSecret), TTL: cfg.Auth.AccessTTL},
		token.SigningConfig{Secret: []byte(cfg.Auth.ResetSecret), TTL: cfg.Auth.ResetTTL},
	)
	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)

	authService := service.NewAuthService(logger, store, tokens, hasher, service.SyncDelivery{})
	userService := service.NewUserService(logger, store, hasher)
	postService := service.NewPostService(logger, store, store, store)
	tagService := service.NewTagService(logger, store)
	ratingService := service.NewRatingService(logger, store, store)

	router := server.NewRouter(logger, cfg, tokens, server.Handlers{
		Auth:    handlers.NewAuthHandler(logger, authService),
		Users:   handlers.NewUsersHandler(logger, authService, userService),
		Posts:   handlers.NewPostsHandler(logger, postService),
		Tags:    handlers.NewTagsHandler(logger, tagService),
		Ratings: handlers.NewRatingsHandler(logger, ratingService),
		Health:  handlers.NewHealthHandler(logger, store),
	})

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	errCh := make(chan error, 1)

	go func() {
		logger.Info("starting HTTP server", "address", cfg.HTTPServer.Address, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("server stopped")

	return nil
}

func setupLogger(env string) *slog.Logger {
	var handler slog.Handler

	switch env {
	case envLocal:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	case envDev:
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	case envProd:
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}

	return slog.New(handler)
}

func printVersion() {
	fmt.Printf("Blog Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
