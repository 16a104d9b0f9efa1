package bluetooth

import (
	"io"

	"contactex.klederson.com/internal/observable"
	"contactex.klederson.com/internal/permission"
	"contactex.klederson.com/internal/telemetry"
	"github.com/sirupsen/logrus"
)

// Scanner observes radio readiness, runs discovery and accumulates the
// peripherals it sees. It registers itself as the radio's Delegate.
//
// The list holds at most one record per peripheral ID; the first
// advertisement seen for an ID wins and later ones are ignored.
type Scanner struct {
	radio   Radio
	auth    permission.Authorizer
	log     logrus.FieldLogger
	metrics *telemetry.ScannerMetrics

	poweredOn  *observable.Value[bool]
	scanning   *observable.Value[bool]
	discovered *observable.Value[[]Peripheral]

	seen map[string]struct{} // guarded by discovered's write side
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithLogger sets the logger. The default discards output.
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Scanner) { s.log = log }
}

// WithMetrics records scanner activity in m.
func WithMetrics(m *telemetry.ScannerMetrics) Option {
	return func(s *Scanner) { s.metrics = m }
}

// NewScanner creates a Scanner bound to radio. radio may be nil, in which case
// scan commands are silently ignored.
func NewScanner(radio Radio, auth permission.Authorizer, opts ...Option) *Scanner {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	s := &Scanner{
		radio:      radio,
		auth:       auth,
		log:        discard,
		poweredOn:  observable.New(false),
		scanning:   observable.New(false),
		discovered: observable.New([]Peripheral{}),
		seen:       make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	if radio != nil {
		radio.SetDelegate(s)
	}
	return s
}

// PoweredOn is true while the radio reports it is ready.
func (s *Scanner) PoweredOn() *observable.Value[bool] { return s.poweredOn }

// Scanning is true between StartScanning and StopScanning.
func (s *Scanner) Scanning() *observable.Value[bool] { return s.scanning }

// Discovered is the ordered list of peripherals found in the current session.
// Published slices are never modified in place.
func (s *Scanner) Discovered() *observable.Value[[]Peripheral] { return s.discovered }

// AuthorizationDenied reads the authorization status afresh on every call.
func (s *Scanner) AuthorizationDenied() bool {
	if s.auth == nil {
		return false
	}
	return s.auth.AuthorizationStatus().IsDenied()
}

// StartScanning asks the radio to scan for any peripheral. Starting from idle
// begins a new session with an empty list; calling it while already scanning
// keeps what has been found so far.
func (s *Scanner) StartScanning() {
	if !s.scanning.Get() {
		s.discovered.Update(func(cur []Peripheral) ([]Peripheral, bool) {
			s.seen = make(map[string]struct{})
			return []Peripheral{}, len(cur) > 0
		})
		s.metrics.SessionStarted()
	}

	if s.radio == nil {
		s.log.Debug("no radio; scan start ignored")
	} else if err := s.radio.Scan(); err != nil {
		s.log.WithError(err).Warn("scan start command failed")
	}
	s.scanning.Set(true)
}

// StopScanning halts discovery. It is safe to call when already idle.
func (s *Scanner) StopScanning() {
	if s.radio == nil {
		s.log.Debug("no radio; scan stop ignored")
	} else if err := s.radio.StopScan(); err != nil {
		s.log.WithError(err).Warn("scan stop command failed")
	}
	s.scanning.Set(false)
}

// OnPowerStateChanged implements Delegate. Losing power does not stop the
// scan session.
func (s *Scanner) OnPowerStateChanged(state PowerState) {
	on := state == PowerReady
	s.log.WithField("state", state.String()).Debug("radio power state changed")
	s.metrics.SetPoweredOn(on)
	s.poweredOn.Set(on)
}

// OnPeripheralObserved implements Delegate. adv is ignored.
func (s *Scanner) OnPeripheralObserved(id, name string, rssi int16, adv []byte) {
	s.metrics.ObserveAdvertisement()

	var added Peripheral
	changed := s.discovered.Update(func(cur []Peripheral) ([]Peripheral, bool) {
		if _, ok := s.seen[id]; ok {
			return cur, false
		}
		s.seen[id] = struct{}{}
		added = newPeripheral(id, name, rssi)
		// Full slice expression forces a copy so earlier snapshots stay intact.
		return append(cur[:len(cur):len(cur)], added), true
	})
	if !changed {
		return
	}

	n := len(s.discovered.Get())
	s.metrics.SetDiscovered(n)
	s.log.WithFields(logrus.Fields{
		"peripheral": added.ID,
		"name":       added.Name,
		"rssi":       added.RSSI,
	}).Debug("peripheral discovered")
}
