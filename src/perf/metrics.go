package perf

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewMetricsHandler builds a Prometheus exposition handler over the
// tracker. activeOrders reports the live order count; pass nil to
// omit that gauge. The registry is private to the handler so repeated
// construction (tests, restarts) never collides.
func NewMetricsHandler(t *Tracker, activeOrders func() int) http.Handler {
	reg := prometheus.NewRegistry()

	reg.MustRegister(collectors.NewGoCollector())

	reg.MustRegister(prometheus.NewCounterFunc(prometheus.CounterOpts{
		Name: "orderbook_orders_processed_total",
		Help: "Total submissions accepted by the matching engine.",
	}, func() float64 {
		return float64(t.Total())
	}))

	reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "orderbook_orders_per_second",
		Help: "Submissions processed in the previous full second.",
	}, t.CurrentPerSec))

	reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "orderbook_orders_per_second_peak",
		Help: "Highest one-second throughput observed since start.",
	}, t.PeakPerSec))

	if t.queueDepth != nil {
		reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "orderbook_queue_depth",
			Help: "Submissions currently queued on the mutation path.",
		}, func() float64 {
			cur, _ := t.queueDepth()
			return float64(cur)
		}))
		reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "orderbook_queue_depth_max",
			Help: "Largest submission queue depth observed since start.",
		}, func() float64 {
			_, max := t.queueDepth()
			return float64(max)
		}))
	}

	if activeOrders != nil {
		reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "orderbook_active_orders",
			Help: "Live OPEN and PARTIALLY_FILLED orders across both sides.",
		}, func() float64 {
			return float64(activeOrders())
		}))
	}

	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
