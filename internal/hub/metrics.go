package hub

import "github.com/prometheus/client_golang/prometheus"

var (
	eventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "progressd",
			Subsystem: "hub",
			Name:      "events_total",
			Help:      "Total events accepted at the emit boundary",
		},
		[]string{"status"},
	)

	droppedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "progressd",
			Subsystem: "hub",
			Name:      "dropped_total",
			Help:      "Total malformed emits dropped",
		},
		[]string{"reason"},
	)

	pushFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "progressd",
			Subsystem: "hub",
			Name:      "push_failures_total",
			Help:      "Total subscriber pushes that panicked",
		},
	)

	subscriptionsGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "progressd",
			Subsystem: "hub",
			Name:      "subscriptions",
			Help:      "Live subscriptions across all tenants",
		},
	)

	snapshotEvictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "progressd",
			Subsystem: "hub",
			Name:      "snapshot_evictions_total",
			Help:      "Snapshots evicted by retention policy",
		},
		[]string{"reason"},
	)
)

func init() {
	prometheus.MustRegister(
		eventsTotal,
		droppedTotal,
		pushFailuresTotal,
		subscriptionsGauge,
		snapshotEvictionsTotal,
	)
}
