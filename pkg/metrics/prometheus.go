package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	GuardDecisions   *prometheus.CounterVec
	LookupDuration   prometheus.Histogram
	MultiMatchTotal  prometheus.Counter
	SubmissionsTotal *prometheus.CounterVec
	StaleDiscards    prometheus.Counter
}

// NewMetrics creates new prometheus metrics on the default registry
func NewMetrics(namespace string) *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer, namespace)
}

// NewMetricsWith creates new prometheus metrics on the given registry;
// tests pass a fresh registry to avoid duplicate registration
func NewMetricsWith(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		GuardDecisions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "guard_decisions_total",
			Help:      "Access guard outcomes per navigation attempt",
		}, []string{"outcome"}),
		LookupDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "reservation_lookup_seconds",
			Help:      "Time taken to query the record store per lookup key",
			Buckets:   prometheus.DefBuckets,
		}),
		MultiMatchTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservation_multi_match_total",
			Help:      "Lookups where more than one record matched a key",
		}),
		SubmissionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flight_submissions_total",
			Help:      "Flight info submissions by status",
		}, []string{"status"}),
		StaleDiscards: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stale_resolutions_discarded_total",
			Help:      "Lookup results discarded because the identity changed mid-flight",
		}),
	}
}
