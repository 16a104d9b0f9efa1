package bluetooth

import (
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"contactex.klederson.com/internal/permission"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tinygo.org/x/bluetooth"
)

// fakeAdapter behaves like the Linux host adapter: StopScan releases the
// adapter at once, but Scan only returns after release is closed, the way the
// real one waits for the D-Bus StopDiscovery round-trip.
type fakeAdapter struct {
	mu       sync.Mutex
	errs     []error // returned by the next Scan calls instead of scanning
	cancel   chan struct{}
	release  chan struct{}
	scans    int
	returned int
	stops    int
}

func newFakeAdapter(errs ...error) *fakeAdapter {
	return &fakeAdapter{errs: errs, release: make(chan struct{})}
}

func (a *fakeAdapter) Enable() error { return nil }

func (a *fakeAdapter) Scan(func(*bluetooth.Adapter, bluetooth.ScanResult)) error {
	a.mu.Lock()
	a.scans++
	if len(a.errs) > 0 {
		err := a.errs[0]
		a.errs = a.errs[1:]
		a.returned++
		a.mu.Unlock()
		return err
	}
	cancel := make(chan struct{})
	a.cancel = cancel
	a.mu.Unlock()

	<-cancel
	<-a.release

	a.mu.Lock()
	a.returned++
	a.mu.Unlock()
	return nil
}

func (a *fakeAdapter) StopScan() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cancel == nil {
		return errors.New("bluetooth: there is no scan in progress")
	}
	a.stops++
	close(a.cancel)
	a.cancel = nil
	return nil
}

func (a *fakeAdapter) counts() (scans, returned, stops int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.scans, a.returned, a.stops
}

func (a *fakeAdapter) scanning() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cancel != nil
}

func newTestRadio(a hostAdapter) *TinyGoRadio {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return &TinyGoRadio{
		adapter:   a,
		name:      "test",
		log:       log,
		powerPoll: time.Millisecond,
		restart:   time.Millisecond,
	}
}

func TestTinyGoRadioRestartsAfterQuickStop(t *testing.T) {
	a := newFakeAdapter()
	r := newTestRadio(a)
	s := NewScanner(r, r)
	require.NoError(t, r.Enable())
	require.True(t, s.PoweredOn().Get())

	s.StartScanning()
	require.Eventually(t, a.scanning, time.Second, time.Millisecond)

	// The first adapter scan has not returned yet.
	s.StopScanning()
	s.StartScanning()
	require.Eventually(t, a.scanning, time.Second, time.Millisecond)

	scans, returned, _ := a.counts()
	assert.Equal(t, 2, scans)
	assert.Equal(t, 0, returned)

	close(a.release)
	require.Eventually(t, func() bool {
		_, returned, _ := a.counts()
		return returned == 1
	}, time.Second, time.Millisecond)

	// The finished first run must not clear the state of the second.
	assert.True(t, r.current(r.gen))
	assert.True(t, s.Scanning().Get())

	s.StopScanning()
	_, _, stops := a.counts()
	assert.Equal(t, 2, stops)
	assert.False(t, a.scanning())
}

func TestTinyGoRadioReportsPowerLossAndReturn(t *testing.T) {
	a := newFakeAdapter(errors.New("bluetooth: adaptor is not powered"))
	r := newTestRadio(a)
	s := NewScanner(r, r)
	require.NoError(t, r.Enable())

	s.StartScanning()
	require.Eventually(t, func() bool { return !s.PoweredOn().Get() }, time.Second, time.Millisecond)
	assert.True(t, s.Scanning().Get(), "power loss keeps the session")

	// Retried after the power poll and now running.
	require.Eventually(t, a.scanning, time.Second, time.Millisecond)

	r.observe("AA:BB:CC:DD:EE:FF", "Tag", -40, nil)
	assert.True(t, s.PoweredOn().Get())
	require.Len(t, s.Discovered().Get(), 1)

	s.StopScanning()
	close(a.release)
}

func TestTinyGoRadioClearsLeftoverScan(t *testing.T) {
	a := newFakeAdapter(errors.New("bluetooth: a scan is already in progress"))
	r := newTestRadio(a)
	require.NoError(t, r.Enable())

	require.NoError(t, r.Scan())
	require.Eventually(t, a.scanning, time.Second, time.Millisecond)

	scans, _, _ := a.counts()
	assert.Equal(t, 2, scans)

	require.NoError(t, r.StopScan())
	close(a.release)
}

func TestTinyGoRadioStopsOnUnexpectedError(t *testing.T) {
	a := newFakeAdapter(errors.New("no such adapter"))
	r := newTestRadio(a)
	require.NoError(t, r.Enable())

	require.NoError(t, r.Scan())
	require.Eventually(t, func() bool {
		r.mu.Lock()
		defer r.mu.Unlock()
		return !r.scanning
	}, time.Second, time.Millisecond)

	// A new request starts over.
	require.NoError(t, r.Scan())
	require.Eventually(t, a.scanning, time.Second, time.Millisecond)
	require.NoError(t, r.StopScan())
	close(a.release)
}

func TestTinyGoRadioErrorClassification(t *testing.T) {
	assert.True(t, isNotPoweredError(errors.New("bluetooth: adaptor is not powered")))
	assert.True(t, isNotPoweredError(errors.New("org.bluez.Error.NotReady")))
	assert.False(t, isNotPoweredError(errors.New("no such adapter")))

	assert.True(t, isScanInProgressError(errors.New("bluetooth: a scan is already in progress")))
	assert.True(t, isScanInProgressError(errors.New("org.bluez.Error.InProgress")))
	assert.False(t, isScanInProgressError(errors.New("bluetooth: adaptor is not powered")))
}

func TestTinyGoRadioAuthorizedAfterEnable(t *testing.T) {
	r := newTestRadio(newFakeAdapter())
	require.NoError(t, r.Enable())
	assert.Equal(t, permission.Authorized, r.AuthorizationStatus())
}

func TestNewTinyGoRadioLabel(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	assert.Equal(t, "default", NewTinyGoRadio("", log).name)
	assert.Equal(t, "hci1", NewTinyGoRadio("hci1", log).name)
}
