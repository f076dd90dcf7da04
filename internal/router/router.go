package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/wanderplan/go-trip-planner/internal/api/nearby"
	"github.com/wanderplan/go-trip-planner/internal/api/planner"
	"github.com/wanderplan/go-trip-planner/internal/api/wiki"
)

// Config contains dependencies needed for the router setup.
type Config struct {
	PlannerHandler *planner.Handler
	NearbyHandler  *nearby.Handler
	WikiHandler    *wiki.Handler
}

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (logger, requestID, recoverer) are expected to be
// applied before mounting this router in main.go.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/plan", cfg.PlannerHandler.Plan)
		r.Post("/nearby", cfg.NearbyHandler.Nearby)
		r.Get("/wiki/{title}", cfg.WikiHandler.Summary)
	})

	return r
}
