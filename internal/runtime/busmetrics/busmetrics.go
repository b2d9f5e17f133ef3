// Package busmetrics instruments the messaging layer's own operations.
// Metrics are optional: components that get nil fall back to the no-op
// implementation.
package busmetrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records publish, fetch, ack, and handler outcomes per subject.
type Metrics interface {
	IncPublished(subject string)
	IncPublishError(subject string)
	ObservePublishLatency(subject string, d time.Duration)
	IncFetched(subject string)
	IncFetchTimeout(subject string)
	IncFetchError(subject string)
	IncAcked(subject string)
	IncAckError(subject string)
	IncHandlerError(subject string)
}

// Nop returns a Metrics implementation that records nothing.
func Nop() Metrics {
	return nopMetrics{}
}

type nopMetrics struct{}

func (nopMetrics) IncPublished(string)                         {}
func (nopMetrics) IncPublishError(string)                      {}
func (nopMetrics) ObservePublishLatency(string, time.Duration) {}
func (nopMetrics) IncFetched(string)                           {}
func (nopMetrics) IncFetchTimeout(string)                      {}
func (nopMetrics) IncFetchError(string)                        {}
func (nopMetrics) IncAcked(string)                             {}
func (nopMetrics) IncAckError(string)                          {}
func (nopMetrics) IncHandlerError(string)                      {}

// PrometheusMetrics is the production Metrics implementation.
type PrometheusMetrics struct {
	published      *prometheus.CounterVec
	publishErrors  *prometheus.CounterVec
	publishLatency *prometheus.HistogramVec
	fetched        *prometheus.CounterVec
	fetchTimeouts  *prometheus.CounterVec
	fetchErrors    *prometheus.CounterVec
	acked          *prometheus.CounterVec
	ackErrors      *prometheus.CounterVec
	handlerErrors  *prometheus.CounterVec
}

// newCounterVec creates a counter vec in the standard rfbus/bus namespace.
func newCounterVec(name, help string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rfbus",
			Subsystem: "bus",
			Name:      name,
			Help:      help,
		},
		[]string{"subject"},
	)
}

// New creates a Metrics collector and registers it with registerer. A nil
// registerer falls back to the default prometheus registerer.
func New(registerer prometheus.Registerer) *PrometheusMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &PrometheusMetrics{
		published:     newCounterVec("published_total", "Total messages published"),
		publishErrors: newCounterVec("publish_errors_total", "Total failed publishes"),
		publishLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "rfbus",
				Subsystem: "bus",
				Name:      "publish_duration_seconds",
				Help:      "Time spent publishing a message",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"subject"},
		),
		fetched:       newCounterVec("fetched_total", "Total messages fetched from pull subscriptions"),
		fetchTimeouts: newCounterVec("fetch_timeouts_total", "Total pull fetches that returned no message within the timeout"),
		fetchErrors:   newCounterVec("fetch_errors_total", "Total pull fetches that failed with a transport error"),
		acked:         newCounterVec("acked_total", "Total messages acknowledged"),
		ackErrors:     newCounterVec("ack_errors_total", "Total failed acknowledgements"),
		handlerErrors: newCounterVec("handler_errors_total", "Total push handler failures"),
	}

	registerer.MustRegister(
		m.published, m.publishErrors, m.publishLatency,
		m.fetched, m.fetchTimeouts, m.fetchErrors,
		m.acked, m.ackErrors, m.handlerErrors,
	)
	return m
}

func (m *PrometheusMetrics) IncPublished(subject string) {
	m.published.WithLabelValues(subject).Inc()
}

func (m *PrometheusMetrics) IncPublishError(subject string) {
	m.publishErrors.WithLabelValues(subject).Inc()
}

func (m *PrometheusMetrics) ObservePublishLatency(subject string, d time.Duration) {
	m.publishLatency.WithLabelValues(subject).Observe(d.Seconds())
}

func (m *PrometheusMetrics) IncFetched(subject string) {
	m.fetched.WithLabelValues(subject).Inc()
}

func (m *PrometheusMetrics) IncFetchTimeout(subject string) {
	m.fetchTimeouts.WithLabelValues(subject).Inc()
}

func (m *PrometheusMetrics) IncFetchError(subject string) {
	m.fetchErrors.WithLabelValues(subject).Inc()
}

func (m *PrometheusMetrics) IncAcked(subject string) {
	m.acked.WithLabelValues(subject).Inc()
}

func (m *PrometheusMetrics) IncAckError(subject string) {
	m.ackErrors.WithLabelValues(subject).Inc()
}

func (m *PrometheusMetrics) IncHandlerError(subject string) {
	m.handlerErrors.WithLabelValues(subject).Inc()
}
