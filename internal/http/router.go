package http

import (
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/jodylarsen/CareConnect/internal/config"
	"github.com/jodylarsen/CareConnect/internal/middleware"
)

type Router struct {
	chi.Router
}

func NewRouter(rateLimit config.RateLimitConfig) *Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(middleware.Recovery)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	r.Use(middleware.RateLimit(rateLimit))

	return &Router{r}
}

// RegisterHealthRoutes registers health check routes
func (r *Router) RegisterHealthRoutes(h *Handler) {
	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
}

// RegisterAPIRoutes registers the versioned API
func (r *Router) RegisterAPIRoutes(h *Handler) {
	h.RegisterRoutes(r)
}
