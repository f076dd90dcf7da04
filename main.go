package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	appLogger "github.com/wanderplan/go-trip-planner/app/logger"
	"github.com/wanderplan/go-trip-planner/app/observability/metrics"
	"github.com/wanderplan/go-trip-planner/app/tracer"
	"github.com/wanderplan/go-trip-planner/config"
	"github.com/wanderplan/go-trip-planner/internal/api/nearby"
	"github.com/wanderplan/go-trip-planner/internal/api/planner"
	"github.com/wanderplan/go-trip-planner/internal/api/wiki"
	"github.com/wanderplan/go-trip-planner/internal/osm"
	api "github.com/wanderplan/go-trip-planner/internal/router"
)

func main() {
	// Use standard log until slog is configured, in case godotenv fails
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("FATAL: Error initializing config: %v", err)
	}

	logger := setupLogger()
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// --- Observability ---
	tracer.InitTracingAndMetrics(cfg.Handlers.Prometheus.Port)
	metrics.InitAppMetrics()

	// --- OSM Clients ---
	osmOpts := osm.ClientOptions{
		UserAgent:      cfg.OSM.UserAgent,
		AcceptLanguage: cfg.OSM.AcceptLanguage,
	}
	nominatim := osm.NewNominatimClient(cfg.OSM.NominatimURL, cfg.OSM.SearchTimeout, osmOpts, logger)
	overpass := osm.NewOverpassClient(cfg.OSM.OverpassURL, cfg.OSM.OverpassTimeout, osmOpts, logger)
	osrm := osm.NewOSRMClient(cfg.OSM.OSRMURL, cfg.OSM.RouteTimeout, osmOpts, logger)

	// --- Dependency Injection ---
	plannerService := planner.NewServiceImpl(nominatim, overpass, osrm, planner.Config{
		DefaultRadiusKm:     cfg.Planner.DefaultRadiusKm,
		DefaultLimitPerDay:  cfg.Planner.DefaultLimitPerDay,
		MaxConcurrentRoutes: cfg.Planner.MaxConcurrentRoutes,
		CenterCacheTTL:      cfg.Planner.CenterCacheTTL,
	}, logger)
	plannerHandler := planner.NewHandler(plannerService, logger)

	nearbyService := nearby.NewServiceImpl(nominatim, osrm, logger)
	nearbyHandler := nearby.NewHandler(nearbyService, logger)

	wikiService := wiki.NewServiceImpl(wiki.Config{
		BaseURL:   cfg.Wiki.BaseURL,
		UserAgent: cfg.OSM.UserAgent,
		Timeout:   cfg.Wiki.Timeout,
		CacheTTL:  cfg.Wiki.CacheTTL,
	}, logger)
	wikiHandler := wiki.NewHandler(wikiService, logger)

	// --- Router Setup ---
	mainRouter := api.SetupRouter(&api.Config{
		PlannerHandler: plannerHandler,
		NearbyHandler:  nearbyHandler,
		WikiHandler:    wikiHandler,
	})

	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(appLogger.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.StripSlashes)
	router.Use(middleware.Timeout(cfg.Server.Timeout))
	router.Use(middleware.Compress(5, "application/json"))
	router.Mount("/", mainRouter)

	// --- HTTP Server Setup ---
	serverAddress := fmt.Sprintf(":%s", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         serverAddress,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	go func() {
		logger.Info("Starting HTTP server", slog.String("address", serverAddress))
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server ListenAndServe error", slog.Any("error", err))
			cancel()
		}
	}()

	<-ctx.Done()

	logger.Info("Shutdown signal received, starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", slog.Any("error", err))
	} else {
		logger.Info("HTTP server gracefully stopped")
	}

	logger.Info("Application shut down complete.")
}

// setupLogger configures and returns the application logger.
func setupLogger() *slog.Logger {
	var logger *slog.Logger
	env := os.Getenv("APP_ENV")

	if env == "development" || env == "" {
		// Colored logs for development
		tintOpts := &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		}
		logger = slog.New(tint.NewHandler(os.Stdout, tintOpts))
		log.Println("Initialized development logger (tint)")
	} else {
		// JSON logs for production or other environments
		jsonOpts := &slog.HandlerOptions{
			Level:     slog.LevelInfo,
			AddSource: false,
		}
		logger = slog.New(slog.NewJSONHandler(os.Stdout, jsonOpts))
		log.Println("Initialized production logger (JSON)")
	}
	return logger
}
