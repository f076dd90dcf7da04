package wiki

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/wanderplan/go-trip-planner/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service looks up short encyclopedia summaries for places. Lookups are
// soft: any failure yields an empty summary, never an error.
type Service interface {
	Summary(ctx context.Context, title string) *types.WikiSummary
}

// Config tunes the summary client.
type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	CacheTTL  time.Duration
}

type ServiceImpl struct {
	logger     *slog.Logger
	httpClient *http.Client
	cfg        Config
	summaries  *cache.Cache
}

func NewServiceImpl(cfg Config, logger *slog.Logger) *ServiceImpl {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 12 * time.Second
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Hour
	}
	return &ServiceImpl{
		logger:     logger,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
		summaries:  cache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
	}
}

// summaryPage mirrors the REST summary endpoint's wire format.
type summaryPage struct {
	Title       string  `json:"title"`
	Extract     *string `json:"extract"`
	ContentURLs struct {
		Desktop struct {
			Page *string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}

// Summary fetches the page summary for a title, serving repeats from
// cache. Any transport or status failure collapses to an empty summary.
func (s *ServiceImpl) Summary(ctx context.Context, title string) *types.WikiSummary {
	ctx, span := otel.Tracer("WikiService").Start(ctx, "Summary", trace.WithAttributes(
		attribute.String("title", title),
	))
	defer span.End()

	if v, ok := s.summaries.Get(title); ok {
		cached := v.(types.WikiSummary)
		return &cached
	}

	summary := s.fetch(ctx, title)
	s.summaries.Set(title, *summary, cache.DefaultExpiration)
	return summary
}

func (s *ServiceImpl) fetch(ctx context.Context, title string) *types.WikiSummary {
	empty := &types.WikiSummary{Title: title}

	slug := url.PathEscape(strings.ReplaceAll(title, " ", "_"))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.BaseURL+"/page/summary/"+slug, nil)
	if err != nil {
		s.logger.DebugContext(ctx, "wiki request build failed", slog.Any("error", err))
		return empty
	}
	req.Header.Set("User-Agent", s.cfg.UserAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.DebugContext(ctx, "wiki request failed", slog.String("title", title), slog.Any("error", err))
		return empty
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.DebugContext(ctx, "wiki returned non-200", slog.String("title", title), slog.Int("status", resp.StatusCode))
		return empty
	}

	var page summaryPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		s.logger.DebugContext(ctx, "wiki decode failed", slog.String("title", title), slog.Any("error", err))
		return empty
	}

	out := &types.WikiSummary{
		Title:   title,
		Extract: page.Extract,
		URL:     page.ContentURLs.Desktop.Page,
	}
	if page.Title != "" {
		out.Title = page.Title
	}
	return out
}
