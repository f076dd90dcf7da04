package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	PlanRequestsTotal     metric.Int64Counter
	PlanDurationSeconds   metric.Float64Histogram
	RoutingFallbacksTotal metric.Int64Counter
	DiscoveryResults      metric.Int64Histogram
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metrics instruments ONLY ONCE.
// It gets the Meter from the globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("go-trip-planner")
		var err error
		m := &AppMetrics{}

		m.PlanRequestsTotal, err = meter.Int64Counter(
			"plan_requests_total",
			metric.WithDescription("Total number of plan requests completed"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create plan_requests_total: %v", err)
		}

		m.PlanDurationSeconds, err = meter.Float64Histogram(
			"plan_duration_seconds",
			metric.WithDescription("Duration of plan requests in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create plan_duration_seconds: %v", err)
		}

		m.RoutingFallbacksTotal, err = meter.Int64Counter(
			"routing_fallbacks_total",
			metric.WithDescription("Total number of routing calls resolved via the haversine heuristic"),
			metric.WithUnit("{call}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create routing_fallbacks_total: %v", err)
		}

		m.DiscoveryResults, err = meter.Int64Histogram(
			"discovery_results",
			metric.WithDescription("Candidate POIs returned per discovery pass"),
			metric.WithUnit("{poi}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create discovery_results: %v", err)
		}

		appMetrics = m
	})
}

// Get returns the globally initialized AppMetrics instance.
// Panics if InitAppMetrics was not called first.
func Get() *AppMetrics {
	if appMetrics == nil {
		panic("metrics: InitAppMetrics must be called before Get")
	}
	return appMetrics
}
