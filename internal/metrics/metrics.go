package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	SimulationsStarted prometheus.Counter
	StatusTransitions  *prometheus.CounterVec
	APIErrors          prometheus.Counter
	RequestSeconds     *prometheus.HistogramVec
	ActiveSimulations  prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		SimulationsStarted: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "tracking_simulations_started_total",
			Help: "Total number of started delivery simulations.",
		}),
		StatusTransitions: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "tracking_status_transitions_total",
			Help: "Total number of simulation status transitions by target status.",
		}, []string{"status"}),
		APIErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "tracking_route_provider_errors_total",
			Help: "Total number of errors received while resolving or routing an order.",
		}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tracking_route_request_duration_seconds",
			Help:    "Duration of requests to the route provider API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		ActiveSimulations: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "tracking_active_simulations",
			Help: "Current number of running delivery simulations.",
		}),
	}
}
