package telemetry

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry(), "test")

	m.RecordValidationFailure("shipment")
	m.RecordValidationFailure("shipment")
	m.RecordShipmentValidated()
	m.RecordPackageCreated()
	m.RecordLabelFetched("PDF")
	m.RecordBrokerRequest("GetServices", 50*time.Millisecond, nil)
	m.RecordBrokerRequest("GetServices", time.Second, errors.New("down"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ValidationFailures.WithLabelValues("shipment")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ShipmentsValidated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PackagesCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LabelsFetched.WithLabelValues("PDF")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BrokerRequests.WithLabelValues("GetServices", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BrokerRequests.WithLabelValues("GetServices", "error")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordValidationFailure("shipment")
		m.RecordShipmentValidated()
		m.RecordPackageCreated()
		m.RecordLabelFetched("PDF")
		m.RecordBrokerRequest("GetServices", time.Second, nil)
	})
}
