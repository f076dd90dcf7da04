package planner

import (
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/wanderplan/go-trip-planner/app/observability/metrics"
	"github.com/wanderplan/go-trip-planner/internal/api"
	"github.com/wanderplan/go-trip-planner/internal/types"
)

type Handler struct {
	plannerService Service
	logger         *slog.Logger
	metrics        *metrics.AppMetrics
}

func NewHandler(plannerService Service, logger *slog.Logger) *Handler {
	metrics.InitAppMetrics()
	return &Handler{
		plannerService: plannerService,
		logger:         logger,
		metrics:        metrics.Get(),
	}
}

// Plan handles the itinerary planning request.
func (h *Handler) Plan(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("Plan").Start(r.Context(), "Plan", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/plan"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Plan"))
	l.DebugContext(ctx, "Plan handler invoked")

	var req types.PlanRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if req.Destination == "" {
		l.ErrorContext(ctx, "Destination is required")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Destination is required")
		return
	}
	span.SetAttributes(semconv.URLQueryKey.String(req.Destination))

	h.metrics.PlanRequestsTotal.Add(ctx, 1)
	start := time.Now()

	itinerary, err := h.plannerService.Plan(ctx, req)
	if err != nil {
		l.ErrorContext(ctx, "Failed to build itinerary", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to build itinerary")
		return
	}

	h.metrics.PlanDurationSeconds.Record(ctx, time.Since(start).Seconds())
	l.InfoContext(ctx, "Itinerary built",
		slog.String("destination", req.Destination),
		slog.Int("days", len(itinerary.Days)))

	api.WriteJSONResponse(w, r, http.StatusOK, itinerary)
}
