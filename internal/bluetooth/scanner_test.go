package bluetooth

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"contactex.klederson.com/internal/permission"
	"contactex.klederson.com/internal/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRadioDriver records the commands a Scanner issues.
type MockRadioDriver struct {
	mock.Mock
	delegate Delegate
}

func (m *MockRadioDriver) SetDelegate(d Delegate) {
	m.delegate = d
}

func (m *MockRadioDriver) Scan() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockRadioDriver) StopScan() error {
	args := m.Called()
	return args.Error(0)
}

func newTestScanner(t *testing.T) (*Scanner, *MockRadioDriver) {
	t.Helper()
	radio := &MockRadioDriver{}
	radio.On("Scan").Return(nil).Maybe()
	radio.On("StopScan").Return(nil).Maybe()
	s := NewScanner(radio, permission.Always(permission.Authorized))
	return s, radio
}

func TestNewScannerRegistersAsDelegate(t *testing.T) {
	s, radio := newTestScanner(t)

	assert.Same(t, s, radio.delegate)
	assert.False(t, s.PoweredOn().Get())
	assert.False(t, s.Scanning().Get())
	assert.Empty(t, s.Discovered().Get())
}

func TestFirstObservationWins(t *testing.T) {
	s, _ := newTestScanner(t)

	s.OnPeripheralObserved("A", "Phone", -40, nil)
	s.OnPeripheralObserved("A", "Phone2", -20, []byte{0x02, 0x01, 0x06})

	assert.Equal(t, []Peripheral{{ID: "A", Name: "Phone", RSSI: -40}}, s.Discovered().Get())
}

func TestDiscoveryKeepsFirstSeenOrder(t *testing.T) {
	s, _ := newTestScanner(t)

	s.OnPeripheralObserved("A", "a", -50, nil)
	s.OnPeripheralObserved("B", "b", -60, nil)
	s.OnPeripheralObserved("A", "a", -55, nil)

	got := s.Discovered().Get()
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].ID)
	assert.Equal(t, "B", got[1].ID)
}

func TestDistinctIdentifiersCount(t *testing.T) {
	s, _ := newTestScanner(t)

	ids := map[string]bool{}
	for i := 0; i < 200; i++ {
		id := fmt.Sprintf("dev-%d", i%37)
		ids[id] = true
		s.OnPeripheralObserved(id, "", int16(-30-i%60), nil)
	}

	assert.Len(t, s.Discovered().Get(), len(ids))
}

func TestUnnamedPeripheralGetsPlaceholder(t *testing.T) {
	s, _ := newTestScanner(t)

	s.OnPeripheralObserved("C", "", -70, nil)

	assert.Equal(t, "Unknown", s.Discovered().Get()[0].Name)
}

func TestPublishedSnapshotsAreNotMutated(t *testing.T) {
	s, _ := newTestScanner(t)

	s.OnPeripheralObserved("A", "a", -50, nil)
	first := s.Discovered().Get()
	s.OnPeripheralObserved("B", "b", -50, nil)

	assert.Len(t, first, 1)
	assert.Len(t, s.Discovered().Get(), 2)
}

func TestStartStopScanning(t *testing.T) {
	radio := &MockRadioDriver{}
	radio.On("Scan").Return(nil).Once()
	radio.On("StopScan").Return(nil).Twice()
	s := NewScanner(radio, permission.Always(permission.Authorized))

	s.StartScanning()
	assert.True(t, s.Scanning().Get())

	s.StopScanning()
	assert.False(t, s.Scanning().Get())

	s.StopScanning()
	assert.False(t, s.Scanning().Get(), "stop is idempotent")

	radio.AssertExpectations(t)
}

func TestCommandErrorsAreSwallowed(t *testing.T) {
	radio := &MockRadioDriver{}
	radio.On("Scan").Return(ErrRadioNotReady)
	radio.On("StopScan").Return(errors.New("adapter gone"))
	s := NewScanner(radio, nil)

	s.StartScanning()
	assert.True(t, s.Scanning().Get())
	s.StopScanning()
	assert.False(t, s.Scanning().Get())
}

func TestNilRadioIsSilentNoop(t *testing.T) {
	s := NewScanner(nil, nil)

	assert.NotPanics(t, s.StartScanning)
	assert.True(t, s.Scanning().Get())
	assert.NotPanics(t, s.StopScanning)
	assert.False(t, s.Scanning().Get())
}

func TestStartFromIdleResetsSession(t *testing.T) {
	s, _ := newTestScanner(t)

	s.StartScanning()
	s.OnPeripheralObserved("A", "a", -50, nil)
	s.StartScanning()
	assert.Len(t, s.Discovered().Get(), 1, "restarting while scanning keeps the list")

	s.StopScanning()
	assert.Len(t, s.Discovered().Get(), 1, "stopping keeps the list for display")

	s.StartScanning()
	assert.Empty(t, s.Discovered().Get())

	s.OnPeripheralObserved("A", "again", -30, nil)
	assert.Equal(t, "again", s.Discovered().Get()[0].Name)
}

func TestPowerStateMapping(t *testing.T) {
	s, _ := newTestScanner(t)

	for _, state := range []PowerState{PowerUnknown, PowerResetting, PowerUnsupported, PowerUnauthorized, PowerOff} {
		s.OnPowerStateChanged(PowerReady)
		s.OnPowerStateChanged(state)
		assert.False(t, s.PoweredOn().Get(), state.String())
	}

	s.OnPowerStateChanged(PowerReady)
	assert.True(t, s.PoweredOn().Get())
}

func TestPowerLossKeepsScanning(t *testing.T) {
	s, _ := newTestScanner(t)

	s.OnPowerStateChanged(PowerReady)
	s.StartScanning()
	s.OnPowerStateChanged(PowerOff)

	assert.False(t, s.PoweredOn().Get())
	assert.True(t, s.Scanning().Get())
}

func TestAuthorizationDeniedIsReadFresh(t *testing.T) {
	status := permission.NotDetermined
	s := NewScanner(nil, permission.AuthorizerFunc(func() permission.Status { return status }))

	assert.False(t, s.AuthorizationDenied())
	status = permission.Denied
	assert.True(t, s.AuthorizationDenied())
	status = permission.Restricted
	assert.True(t, s.AuthorizationDenied())
	status = permission.Authorized
	assert.False(t, s.AuthorizationDenied())
}

func TestSubscribersSeeEachNewPeripheral(t *testing.T) {
	s, _ := newTestScanner(t)

	var lengths []int
	cancel := s.Discovered().Subscribe(func(ps []Peripheral) { lengths = append(lengths, len(ps)) })
	defer cancel()

	s.OnPeripheralObserved("A", "a", -50, nil)
	s.OnPeripheralObserved("A", "a", -50, nil)
	s.OnPeripheralObserved("B", "b", -50, nil)

	assert.Equal(t, []int{0, 1, 2}, lengths)
}

func TestConcurrentObservationAndReads(t *testing.T) {
	s, _ := newTestScanner(t)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			s.OnPeripheralObserved(fmt.Sprintf("id-%d", i%50), "x", -60, nil)
		}
	}()
	for i := 0; i < 500; i++ {
		for _, p := range s.Discovered().Get() {
			_ = p.Name
		}
		_ = s.PoweredOn().Get()
	}
	wg.Wait()

	assert.Len(t, s.Discovered().Get(), 50)
}

func TestScannerRecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := telemetry.NewScannerMetrics(reg)
	s := NewScanner(nil, nil, WithMetrics(m))

	s.StartScanning()
	s.OnPeripheralObserved("A", "a", -50, nil)
	s.OnPeripheralObserved("A", "a", -50, nil)
	s.OnPeripheralObserved("B", "b", -50, nil)
	s.OnPowerStateChanged(PowerReady)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Sessions))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.Advertisements))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Discovered))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PoweredOn))
}
