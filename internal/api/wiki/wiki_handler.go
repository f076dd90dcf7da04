package wiki

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/wanderplan/go-trip-planner/internal/api"
)

type Handler struct {
	wikiService Service
	logger      *slog.Logger
}

func NewHandler(wikiService Service, logger *slog.Logger) *Handler {
	return &Handler{
		wikiService: wikiService,
		logger:      logger,
	}
}

// Summary returns the encyclopedia blurb for the titled place.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("Summary").Start(r.Context(), "Summary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/wiki/{title}"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Summary"))

	title := chi.URLParam(r, "title")
	if unescaped, err := url.PathUnescape(title); err == nil {
		title = unescaped
	}
	if title == "" {
		l.ErrorContext(ctx, "Title is required")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Title is required")
		return
	}

	summary := h.wikiService.Summary(ctx, title)
	l.DebugContext(ctx, "Wiki summary served",
		slog.String("title", title), slog.Bool("found", summary.Extract != nil))
	api.WriteJSONResponse(w, r, http.StatusOK, summary)
}
