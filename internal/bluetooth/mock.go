package bluetooth

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"contactex.klederson.com/internal/config"
	"contactex.klederson.com/internal/permission"
	"github.com/google/uuid"
)

var mockDeviceNames = []string{
	"iPhone 15 Pro",
	"Galaxy S24 Ultra",
	"Pixel 9 Pro",
	"AirPods Pro",
	"Galaxy Buds Pro",
	"MacBook Air",
	"Apple Watch",
	"Fitbit Charge 6",
	"Sony WH-1000XM5",
	"JBL Flip 6",
	"Tile Tracker",
	"Tesla Model 3",
	"Nintendo Switch",
	"iPad Pro",
	"OnePlus Buds 3",
}

type mockDevice struct {
	id        string
	name      string
	baseRSSI  float64
	phase     float64
	amplitude float64
	named     bool // some peripherals never advertise a name
}

// MockRadio simulates a Bluetooth central for demo mode and tests.
type MockRadio struct {
	devices []mockDevice
	every   time.Duration

	mu       sync.Mutex
	delegate Delegate
	powered  bool
	auth     permission.Status
	cancel   context.CancelFunc
}

// NewMockRadio creates a radio with random fake peripherals.
func NewMockRadio() *MockRadio {
	n := config.DemoDeviceMin + rand.Intn(config.DemoDeviceMax-config.DemoDeviceMin+1)
	perm := rand.Perm(len(mockDeviceNames))

	devices := make([]mockDevice, 0, n)
	for i := 0; i < n; i++ {
		devices = append(devices, mockDevice{
			id:        uuid.NewString(),
			name:      mockDeviceNames[perm[i%len(perm)]],
			baseRSSI:  -40 - rand.Float64()*50, // -40 to -90 dBm
			phase:     rand.Float64() * 2 * math.Pi,
			amplitude: 3 + rand.Float64()*8, // 3-11 dBm fluctuation
			named:     rand.Float64() > 0.15,
		})
	}

	return &MockRadio{
		devices: devices,
		every:   config.DemoEmitEvery,
		auth:    permission.Authorized,
	}
}

func (r *MockRadio) SetDelegate(d Delegate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.delegate = d
}

// PowerOn reports the radio as ready after a short delay, like a real stack
// settling after launch.
func (r *MockRadio) PowerOn() {
	go func() {
		time.Sleep(config.DemoPowerOnWait)
		r.SetPower(true)
	}()
}

// SetPower simulates the user toggling Bluetooth. Turning power off does not
// stop a running scan, but no advertisements are delivered until it returns.
func (r *MockRadio) SetPower(on bool) {
	r.mu.Lock()
	r.powered = on
	d := r.delegate
	r.mu.Unlock()

	if d == nil {
		return
	}
	if on {
		d.OnPowerStateChanged(PowerReady)
	} else {
		d.OnPowerStateChanged(PowerOff)
	}
}

// Powered reports the simulated power switch.
func (r *MockRadio) Powered() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.powered
}

// SetAuthorization changes the simulated consent state.
func (r *MockRadio) SetAuthorization(s permission.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.auth = s
}

func (r *MockRadio) AuthorizationStatus() permission.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.auth
}

// Scan starts emitting advertisements. Calling it while already scanning is a no-op.
func (r *MockRadio) Scan() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	go r.loop(ctx)
	return nil
}

// StopScan halts the emitter. An advertisement already in flight may still
// be delivered, as with a real radio.
func (r *MockRadio) StopScan() error {
	r.mu.Lock()
	cancel := r.cancel
	r.cancel = nil
	r.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	return nil
}

func (r *MockRadio) loop(ctx context.Context) {
	ticker := time.NewTicker(r.every)
	defer ticker.Stop()

	t := 0.0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t += r.every.Seconds()
			r.emitDevices(ctx, t)
		}
	}
}

func (r *MockRadio) emitDevices(ctx context.Context, t float64) {
	r.mu.Lock()
	d, powered := r.delegate, r.powered
	r.mu.Unlock()
	if d == nil || !powered {
		return
	}

	for i := range r.devices {
		if ctx.Err() != nil {
			return
		}
		dev := &r.devices[i]

		// Sinusoidal RSSI fluctuation + noise
		rssi := dev.baseRSSI + dev.amplitude*math.Sin(t*0.5+dev.phase) + (rand.Float64()-0.5)*4

		name := ""
		if dev.named {
			name = dev.name
		}
		d.OnPeripheralObserved(dev.id, name, int16(rssi), nil)
	}
}
