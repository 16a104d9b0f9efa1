package telemetry

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScannerMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewScannerMetrics(reg)

	m.SessionStarted()
	m.ObserveAdvertisement()
	m.ObserveAdvertisement()
	m.SetDiscovered(1)
	m.SetPoweredOn(true)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Sessions))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Advertisements))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Discovered))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PoweredOn))

	m.SessionStarted()
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Discovered))
}

func TestNilScannerMetricsIsNoop(t *testing.T) {
	var m *ScannerMetrics
	assert.NotPanics(t, func() {
		m.SessionStarted()
		m.ObserveAdvertisement()
		m.SetDiscovered(3)
		m.SetPoweredOn(false)
	})
}

func TestRouterServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewScannerMetrics(reg)
	m.ObserveAdvertisement()

	srv := httptest.NewServer(NewRouter(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "contactex_advertisements_total 1")
}
