package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for the courier layer: validation
// outcomes and broker round-trips. All methods are nil-safe so callers can
// run without metrics in tests and one-shot CLI invocations.
type Metrics struct {
	// Validation
	ValidationFailures *prometheus.CounterVec
	ShipmentsValidated prometheus.Counter

	// Orchestration
	PackagesCreated prometheus.Counter
	LabelsFetched   *prometheus.CounterVec

	// Broker round-trips
	BrokerRequests *prometheus.CounterVec
	BrokerLatency  *prometheus.HistogramVec
}

// NewMetrics registers the courier metrics with reg.
// Pass prometheus.DefaultRegisterer in production.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	if namespace == "" {
		namespace = "courier"
	}
	factory := promauto.With(reg)

	return &Metrics{
		ValidationFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "validation_failures_total",
				Help:      "Rejected records by record kind",
			},
			[]string{"record"}, // record: shipment, consignor, consignee, products, params
		),
		ShipmentsValidated: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "shipments_validated_total",
				Help:      "Orders that passed full validation",
			},
		),
		PackagesCreated: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "packages_created_total",
				Help:      "Shipments accepted by the broker",
			},
		),
		LabelsFetched: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "labels_fetched_total",
				Help:      "Labels retrieved, by format",
			},
			[]string{"format"},
		),
		BrokerRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "broker_requests_total",
				Help:      "Broker commands issued, by command and outcome",
			},
			[]string{"command", "outcome"}, // outcome: ok, error
		),
		BrokerLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "broker_request_duration_seconds",
				Help:      "Broker command round-trip latency",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"command"},
		),
	}
}

// RecordValidationFailure increments the failure counter for one record kind.
func (m *Metrics) RecordValidationFailure(record string) {
	if m == nil {
		return
	}
	m.ValidationFailures.WithLabelValues(record).Inc()
}

// RecordShipmentValidated marks one fully validated order.
func (m *Metrics) RecordShipmentValidated() {
	if m == nil {
		return
	}
	m.ShipmentsValidated.Inc()
}

// RecordPackageCreated marks one shipment accepted by the broker.
func (m *Metrics) RecordPackageCreated() {
	if m == nil {
		return
	}
	m.PackagesCreated.Inc()
}

// RecordLabelFetched marks one retrieved label.
func (m *Metrics) RecordLabelFetched(format string) {
	if m == nil {
		return
	}
	m.LabelsFetched.WithLabelValues(format).Inc()
}

// RecordBrokerRequest records one broker command round-trip.
func (m *Metrics) RecordBrokerRequest(command string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.BrokerRequests.WithLabelValues(command, outcome).Inc()
	m.BrokerLatency.WithLabelValues(command).Observe(duration.Seconds())
}
