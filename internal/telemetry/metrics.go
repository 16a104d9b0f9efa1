package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// ScannerMetrics counts radio activity seen by the peripheral scanner.
// A nil *ScannerMetrics is valid and records nothing.
type ScannerMetrics struct {
	Advertisements prometheus.Counter
	Discovered     prometheus.Gauge
	Sessions       prometheus.Counter
	PoweredOn      prometheus.Gauge
}

// NewScannerMetrics creates the scanner metrics and registers them with reg.
func NewScannerMetrics(reg prometheus.Registerer) *ScannerMetrics {
	m := &ScannerMetrics{
		Advertisements: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "contactex",
			Name:      "advertisements_total",
			Help:      "Total number of advertisements delivered by the radio",
		}),
		Discovered: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "contactex",
			Name:      "peripherals_discovered",
			Help:      "Distinct peripherals discovered in the current scan session",
		}),
		Sessions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "contactex",
			Name:      "scan_sessions_total",
			Help:      "Total number of scan sessions started",
		}),
		PoweredOn: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "contactex",
			Name:      "radio_powered_on",
			Help:      "1 when the Bluetooth radio reports it is powered on",
		}),
	}
	reg.MustRegister(m.Advertisements, m.Discovered, m.Sessions, m.PoweredOn)
	return m
}

func (m *ScannerMetrics) ObserveAdvertisement() {
	if m == nil {
		return
	}
	m.Advertisements.Inc()
}

func (m *ScannerMetrics) SetDiscovered(n int) {
	if m == nil {
		return
	}
	m.Discovered.Set(float64(n))
}

func (m *ScannerMetrics) SessionStarted() {
	if m == nil {
		return
	}
	m.Sessions.Inc()
	m.Discovered.Set(0)
}

func (m *ScannerMetrics) SetPoweredOn(on bool) {
	if m == nil {
		return
	}
	if on {
		m.PoweredOn.Set(1)
	} else {
		m.PoweredOn.Set(0)
	}
}
