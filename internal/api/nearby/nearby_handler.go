package nearby

import (
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/wanderplan/go-trip-planner/internal/api"
	"github.com/wanderplan/go-trip-planner/internal/types"
)

type Handler struct {
	nearbyService Service
	logger        *slog.Logger
}

func NewHandler(nearbyService Service, logger *slog.Logger) *Handler {
	return &Handler{
		nearbyService: nearbyService,
		logger:        logger,
	}
}

// Nearby handles the composite nearby-places search.
func (h *Handler) Nearby(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("Nearby").Start(r.Context(), "Nearby", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/nearby"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Nearby"))
	l.DebugContext(ctx, "Nearby handler invoked")

	var req types.NearbyRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if req.Query == "" {
		l.ErrorContext(ctx, "Query is required")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Query is required")
		return
	}
	if req.OriginLat == 0 && req.OriginLng == 0 {
		l.ErrorContext(ctx, "Origin coordinates are required")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Origin coordinates are required")
		return
	}

	places, err := h.nearbyService.Nearby(ctx, req)
	if err != nil {
		l.ErrorContext(ctx, "Nearby search failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Nearby search failed")
		return
	}

	l.InfoContext(ctx, "Nearby search completed",
		slog.String("query", req.Query), slog.Int("results", len(places)))
	api.WriteJSONResponse(w, r, http.StatusOK, places)
}
