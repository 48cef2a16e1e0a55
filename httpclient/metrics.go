package httpclient

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records Prometheus metrics for round trips. It is safe for
// concurrent use.
type Metrics struct {
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestsInFlight *prometheus.GaugeVec
}

// NewMetrics registers the client metrics on reg. A nil registerer creates
// unregistered collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "httpclient_requests_total",
				Help: "Total number of HTTP requests made",
			},
			[]string{"method", "status_code"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "httpclient_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "status_code"},
		),
		requestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "httpclient_requests_in_flight",
				Help: "Number of HTTP requests currently in flight",
			},
			[]string{"method"},
		),
	}
}

// Middleware returns a transport middleware recording into m.
func (m *Metrics) Middleware() Middleware {
	return func(next Transport) Transport {
		return TransportFunc(func(ctx context.Context, path string, opts TransportOptions) (RawResponse, error) {
			inFlight := m.requestsInFlight.WithLabelValues(opts.Method)
			inFlight.Inc()
			defer inFlight.Dec()

			start := time.Now()
			raw, err := next.Do(ctx, path, opts)

			status := statusLabel(responseStatus(raw, err))
			m.requestsTotal.WithLabelValues(opts.Method, status).Inc()
			m.requestDuration.WithLabelValues(opts.Method, status).Observe(time.Since(start).Seconds())
			return raw, err
		})
	}
}
