package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// WalletConnectsTotal counts wallet connection attempts by outcome.
	WalletConnectsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swap_desk_wallet_connects_total",
			Help: "Wallet connection attempts partitioned by outcome.",
		},
		[]string{"outcome"},
	)

	// BalanceFetchesTotal counts balance reads by outcome.
	BalanceFetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swap_desk_balance_fetches_total",
			Help: "Balance fetches partitioned by outcome.",
		},
		[]string{"outcome"},
	)

	// AggregationRequestsTotal counts aggregation calls by outcome,
	// including responses dropped because a newer request superseded them.
	AggregationRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swap_desk_aggregation_requests_total",
			Help: "Aggregation requests partitioned by outcome.",
		},
		[]string{"outcome"},
	)

	// AggregationDuration observes aggregator round-trip latency.
	AggregationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "swap_desk_aggregation_duration_seconds",
			Help:    "Latency of aggregation backend calls.",
			Buckets: prometheus.DefBuckets,
		},
	)

	// WSClients tracks currently connected websocket subscribers.
	WSClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "swap_desk_ws_clients",
			Help: "Currently connected websocket clients.",
		},
	)
)

// MustRegisterMetrics registers all collectors with the default registry.
// Panics on duplicate registration, so call it once from main.
func MustRegisterMetrics() {
	prometheus.MustRegister(
		WalletConnectsTotal,
		BalanceFetchesTotal,
		AggregationRequestsTotal,
		AggregationDuration,
		WSClients,
	)
}
