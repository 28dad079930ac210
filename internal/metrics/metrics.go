// Package metrics exposes Prometheus counters for the trip planner.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the planner's Prometheus metrics behind one registry.
// A nil *Collector is safe to use; all methods become no-ops, so optional
// wiring does not need nil checks at every call site.
type Collector struct {
	registry *prometheus.Registry

	tripsPlanned      prometheus.Counter
	planFailures      prometheus.Counter
	providerFallbacks prometheus.Counter
	planDuration      prometheus.Histogram
	stopsEmitted      *prometheus.CounterVec
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		tripsPlanned: factory.NewCounter(prometheus.CounterOpts{
			Name: "eld_trips_planned_total",
			Help: "Trips planned successfully.",
		}),
		planFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "eld_plan_failures_total",
			Help: "Trip planning requests that failed.",
		}),
		providerFallbacks: factory.NewCounter(prometheus.CounterOpts{
			Name: "eld_provider_fallbacks_total",
			Help: "Route provider failures that fell back to straight-line estimates.",
		}),
		planDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "eld_plan_duration_seconds",
			Help:    "Wall-clock duration of trip planning.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
		stopsEmitted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "eld_stops_emitted_total",
			Help: "Itinerary stops emitted, by stop type.",
		}, []string{"type"}),
	}
}

func (c *Collector) TripPlannedInc() {
	if c == nil {
		return
	}
	c.tripsPlanned.Inc()
}

func (c *Collector) PlanFailureInc() {
	if c == nil {
		return
	}
	c.planFailures.Inc()
}

// ProviderFallbackInc satisfies the route adapter's fallback metrics surface.
func (c *Collector) ProviderFallbackInc() {
	if c == nil {
		return
	}
	c.providerFallbacks.Inc()
}

func (c *Collector) ObservePlanDuration(seconds float64) {
	if c == nil {
		return
	}
	c.planDuration.Observe(seconds)
}

func (c *Collector) StopEmitted(stopType string) {
	if c == nil {
		return
	}
	c.stopsEmitted.WithLabelValues(stopType).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
