package engine

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus instruments the engine updates on every
// submit. Registration is left to the caller (cmd/venexd) via Collectors,
// matching the teacher's pattern of keeping infrastructure wiring in main
// rather than registering against the global default registry from deep
// inside a library package.
type Metrics struct {
	tradesTotal        *prometheus.CounterVec
	submitLatency      *prometheus.HistogramVec
	openOrders         *prometheus.GaugeVec
	fokRejectionsTotal *prometheus.CounterVec
}

func newMetrics() Metrics {
	return Metrics{
		tradesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "venex",
			Name:      "trades_total",
			Help:      "Number of trades executed, by symbol.",
		}, []string{"symbol"}),
		submitLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "venex",
			Name:      "submit_latency_seconds",
			Help:      "Time spent inside Submit holding the book lock, by symbol and order type.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"symbol", "order_type"}),
		openOrders: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "venex",
			Name:      "open_orders",
			Help:      "Resting order count, by symbol and side.",
		}, []string{"symbol", "side"}),
		fokRejectionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "venex",
			Name:      "fok_rejections_total",
			Help:      "Fill-or-kill orders rejected by the pre-check, by symbol.",
		}, []string{"symbol"}),
	}
}

// Collectors returns every instrument for registration against a
// prometheus.Registerer.
func (m Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.tradesTotal, m.submitLatency, m.openOrders, m.fokRejectionsTotal}
}
