package api

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/yousuf-kodexo/livekitPOC/internal/api/middleware"
	"github.com/yousuf-kodexo/livekitPOC/internal/handlers"
	"github.com/yousuf-kodexo/livekitPOC/internal/store"
)

// NewRouter creates and configures the HTTP router.
// Rate limiting is enabled only when a Redis store is provided.
func NewRouter(logger zerolog.Logger, h *handlers.Handler, redisStore *store.RedisStore) *chi.Mux {
	r := chi.NewRouter()

	// Metrics middleware (first to capture all requests)
	r.Use(middleware.Metrics)

	// Security middleware (order matters!)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.MaxBodySize(8 * 1024)) // 8KB max body
	r.Use(middleware.ValidateRequest)

	// Standard middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(chimw.Recoverer)

	// Rate limiting
	if redisStore != nil {
		limiter := middleware.NewRateLimiter(redisStore.Client(), logger)
		r.Use(limiter.Middleware)
	}

	// CORS - allow all origins (the frontend URL is not pinned yet)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Metrics endpoint (for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/health", h.Health)

	// Session and transcript API
	r.Post("/token", h.Token)
	r.Post("/connect", h.Connect)
	r.Post("/pause/{room}", h.Pause)
	r.Post("/resume/{room}", h.Resume)
	r.Post("/end/{room}", h.End)
	r.Get("/conversation/{room}", h.GetConversation)
	r.Get("/rooms", h.ListRooms)

	return r
}
