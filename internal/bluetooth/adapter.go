package bluetooth

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"contactex.klederson.com/internal/config"
	"contactex.klederson.com/internal/permission"
	"github.com/sirupsen/logrus"
	"tinygo.org/x/bluetooth"
)

// hostAdapter is the part of *bluetooth.Adapter the radio drives.
type hostAdapter interface {
	Enable() error
	Scan(callback func(*bluetooth.Adapter, bluetooth.ScanResult)) error
	StopScan() error
}

// TinyGoRadio drives the host Bluetooth adapter through tinygo.org/x/bluetooth.
//
// The adapter offers no power notifications, so power is inferred while
// scanning: a scan that fails because the adapter is off reports PowerOff and
// is retried every powerPoll; the first advertisement afterwards reports
// PowerReady again.
type TinyGoRadio struct {
	adapter   hostAdapter
	name      string
	log       logrus.FieldLogger
	powerPoll time.Duration
	restart   time.Duration

	mu        sync.Mutex
	delegate  Delegate
	enabled   bool
	enableErr error
	powered   bool
	scanning  bool          // a scan was requested and not stopped
	inScan    bool          // the current run is inside adapter.Scan
	gen       uint64        // bumped by every Scan and StopScan
	stop      chan struct{} // closed by StopScan to end the current run
}

// NewTinyGoRadio creates a radio for the system default adapter. name is only
// a label for log output.
func NewTinyGoRadio(name string, log logrus.FieldLogger) *TinyGoRadio {
	if name == "" {
		name = "default"
	}
	return &TinyGoRadio{
		adapter:   bluetooth.DefaultAdapter,
		name:      name,
		log:       log.WithField("adapter", name),
		powerPoll: config.PowerPollEvery,
		restart:   config.ScanRestartWait,
	}
}

func (r *TinyGoRadio) SetDelegate(d Delegate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.delegate = d
}

func (r *TinyGoRadio) currentDelegate() Delegate {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.delegate
}

// Enable powers up the adapter and reports the resulting power state to the
// delegate.
func (r *TinyGoRadio) Enable() error {
	err := r.adapter.Enable()

	state := PowerReady
	if err != nil {
		state = PowerOff
		if isPermissionError(err) {
			state = PowerUnauthorized
		}
	}

	r.mu.Lock()
	r.enabled = err == nil
	r.enableErr = err
	r.powered = err == nil
	d := r.delegate
	r.mu.Unlock()

	if d != nil {
		d.OnPowerStateChanged(state)
	}

	if err != nil {
		return fmt.Errorf("failed to enable BLE adapter: %w (try running with sudo or setcap cap_net_admin+ep)", err)
	}
	r.log.Info("adapter enabled")
	return nil
}

// setPowered reports a power change noticed while scanning. Reports of the
// state already known are dropped.
func (r *TinyGoRadio) setPowered(on bool) {
	r.mu.Lock()
	if r.powered == on {
		r.mu.Unlock()
		return
	}
	r.powered = on
	d := r.delegate
	r.mu.Unlock()

	state := PowerOff
	if on {
		state = PowerReady
	}
	r.log.WithField("state", state.String()).Info("adapter power changed")
	if d != nil {
		d.OnPowerStateChanged(state)
	}
}

// Scan starts discovery in a goroutine with no service filter.
func (r *TinyGoRadio) Scan() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.enabled {
		return ErrRadioNotReady
	}
	if r.scanning {
		return nil
	}

	r.scanning = true
	r.gen++
	r.stop = make(chan struct{})
	go r.run(r.gen, r.stop)
	return nil
}

// StopScan halts a running scan. It is a no-op when not scanning. The scan
// goroutine may still be winding down when it returns; a following Scan
// starts a new one regardless.
func (r *TinyGoRadio) StopScan() error {
	r.mu.Lock()
	if !r.scanning {
		r.mu.Unlock()
		return nil
	}
	r.scanning = false
	r.gen++
	close(r.stop)
	r.stop = nil
	inScan := r.inScan
	r.inScan = false
	r.mu.Unlock()

	if !inScan {
		return nil
	}
	return r.adapter.StopScan()
}

// current reports whether gen is the scan that is still wanted.
func (r *TinyGoRadio) current(gen uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.scanning && r.gen == gen
}

// run keeps one requested scan alive until StopScan ends it.
func (r *TinyGoRadio) run(gen uint64, stop <-chan struct{}) {
	for {
		r.mu.Lock()
		if r.gen != gen {
			r.mu.Unlock()
			return
		}
		r.inScan = true
		r.mu.Unlock()

		err := r.adapter.Scan(func(_ *bluetooth.Adapter, result bluetooth.ScanResult) {
			if r.current(gen) {
				r.handleResult(result)
			}
		})

		r.mu.Lock()
		if r.gen != gen {
			r.mu.Unlock()
			return
		}
		r.inScan = false
		r.mu.Unlock()

		wait := r.restart
		switch {
		case err == nil:
			r.log.Debug("scan ended by the adapter, restarting")
		case isNotPoweredError(err):
			r.setPowered(false)
			wait = r.powerPoll
		case isScanInProgressError(err):
			// A scan from an earlier run outlived its stop.
			_ = r.adapter.StopScan()
		default:
			r.log.WithError(err).Warn("scan ended with error")
			r.mu.Lock()
			if r.gen == gen {
				r.scanning = false
			}
			r.mu.Unlock()
			return
		}

		select {
		case <-stop:
			return
		case <-time.After(wait):
		}
	}
}

func (r *TinyGoRadio) handleResult(result bluetooth.ScanResult) {
	id := result.Address.String()
	name := result.LocalName()

	if name == "" {
		var companies []uint16
		for _, m := range result.ManufacturerData() {
			companies = append(companies, m.CompanyID)
		}
		name = manufacturerName(id, companies...)
	}

	r.observe(id, name, result.RSSI, result.AdvertisementPayload.Bytes())
}

// observe forwards one advertisement. Any advertisement means the adapter is
// powered.
func (r *TinyGoRadio) observe(id, name string, rssi int16, adv []byte) {
	r.setPowered(true)
	if d := r.currentDelegate(); d != nil {
		d.OnPeripheralObserved(id, name, rssi, adv)
	}
}

// AuthorizationStatus derives consent from the last enable attempt. The host
// stack has no separate consent prompt, so a permission error is the denial.
func (r *TinyGoRadio) AuthorizationStatus() permission.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch {
	case r.enabled:
		return permission.Authorized
	case r.enableErr != nil && isPermissionError(r.enableErr):
		return permission.Denied
	default:
		return permission.NotDetermined
	}
}

func isNotPoweredError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not powered") || strings.Contains(msg, "notready")
}

func isScanInProgressError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "already in progress") || strings.Contains(msg, "inprogress")
}

func isPermissionError(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, s := range []string{"permission", "not permitted", "access denied", "unauthorized", "notauthorized", "not authorized"} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}
