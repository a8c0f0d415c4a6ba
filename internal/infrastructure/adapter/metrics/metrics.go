package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics stores Prometheus collectors used across the service.
type Metrics struct {
	HTTPRequests        *prometheus.CounterVec
	HTTPLatency         *prometheus.HistogramVec
	OracleRequests      *prometheus.CounterVec
	OracleLatency       *prometheus.HistogramVec
	DepositsVerified    *prometheus.CounterVec
	OrdersCreated       *prometheus.CounterVec
	BalanceAdjustments  *prometheus.CounterVec
	Errors              *prometheus.CounterVec
}

var (
	regOnce         sync.Once
	metricsInstance *Metrics
)

// Registry builds and registers the metrics singleton with optional namespace.
func Registry(namespace string) *Metrics {
	regOnce.Do(func() {
		metricsInstance = &Metrics{
			HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests by route, method and status code.",
			}, []string{"route", "method", "status"}),
			HTTPLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Latency distribution for HTTP requests.",
				Buckets:   prometheus.DefBuckets,
			}, []string{"route", "method"}),
			OracleRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "oracle_requests_total",
				Help:      "Total mirror node requests by endpoint and outcome.",
			}, []string{"endpoint", "status"}),
			OracleLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "oracle_request_duration_seconds",
				Help:      "Latency distribution for mirror node requests.",
				Buckets:   prometheus.DefBuckets,
			}, []string{"endpoint", "status"}),
			DepositsVerified: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "deposits_verified_total",
				Help:      "Total deposit verification attempts by outcome.",
			}, []string{"outcome"}),
			OrdersCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "orders_created_total",
				Help:      "Total orders created by payment method and status.",
			}, []string{"method", "status"}),
			BalanceAdjustments: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "balance_adjustments_total",
				Help:      "Total balance credits and debits applied.",
			}, []string{"direction"}),
			Errors: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "errors_total",
				Help:      "Total errors grouped by component.",
			}, []string{"component"}),
		}

		prometheus.MustRegister(
			metricsInstance.HTTPRequests,
			metricsInstance.HTTPLatency,
			metricsInstance.OracleRequests,
			metricsInstance.OracleLatency,
			metricsInstance.DepositsVerified,
			metricsInstance.OrdersCreated,
			metricsInstance.BalanceAdjustments,
			metricsInstance.Errors,
		)
	})
	return metricsInstance
}
