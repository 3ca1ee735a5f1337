package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/seguridad-cloud-uniandes/CloudSecurity/internal/config"
	"github.com/seguridad-cloud-uniandes/CloudSecurity/internal/server/handlers"
	"github.com/seguridad-cloud-uniandes/CloudSecurity/internal/server/middleware"
	"github.com/seguridad-cloud-uniandes/CloudSecurity/internal/token"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth    *handlers.AuthHandler
	Users   *handlers.UsersHandler
	Posts   *handlers.PostsHandler
	Tags    *handlers.TagsHandler
	Ratings *handlers.RatingsHandler
	Health  *handlers.HealthHandler
}

// NewRouter builds the HTTP routing table. Authentication is required on
// every mutating route except registration, login and the reset flow;
// post reads accept an optional token so responses can include the
// caller's own rating.
func NewRouter(logger *slog.Logger, cfg *config.Config, tokens *token.Service, h Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RecoveryMiddleware(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(middleware.LoggingMiddleware(logger))

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.Rate, cfg.RateLimit.Burst, cfg.RateLimit.Interval)
		r.Use(middleware.RateLimitMiddleware(logger, limiter))
	}

	requireAuth := middleware.AuthMiddleware(logger, tokens)
	optionalAuth := middleware.OptionalAuthMiddleware(logger, tokens)

	r.Get("/health", h.Health.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", h.Auth.Login)
		r.Post("/auth/request-password-reset", h.Auth.RequestPasswordReset)
		r.Post("/auth/reset-password", h.Auth.ResetPassword)

		r.Post("/users", h.Users.Create)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Get("/users", h.Users.List)
			r.Get("/users/{id}", h.Users.Get)
			r.Put("/users/{id}", h.Users.Update)
			r.Delete("/users/{id}", h.Users.Delete)

			r.Post("/posts", h.Posts.Create)
			r.Put("/posts/{id}", h.Posts.Update)
			r.Patch("/posts/{id}/publish", h.Posts.Publish)
			r.Delete("/posts/{id}", h.Posts.Delete)

			r.Post("/tags", h.Tags.Create)
			r.Delete("/tags/{id}", h.Tags.Delete)

			r.Post("/ratings", h.Ratings.Rate)
		})

		r.Group(func(r chi.Router) {
			r.Use(optionalAuth)

			r.Get("/posts", h.Posts.List)
			r.Get("/posts/{id}", h.Posts.Get)
		})

		r.Get("/tags", h.Tags.List)
	})

	return r
}
