package bluetooth

import "errors"

// ErrRadioNotReady is returned by a Radio asked to scan before it is powered on.
var ErrRadioNotReady = errors.New("bluetooth radio not ready")

// PowerState is the radio state reported by the platform.
type PowerState int

const (
	PowerUnknown PowerState = iota
	PowerResetting
	PowerUnsupported
	PowerUnauthorized
	PowerOff
	PowerReady
)

func (s PowerState) String() string {
	switch s {
	case PowerResetting:
		return "resetting"
	case PowerUnsupported:
		return "unsupported"
	case PowerUnauthorized:
		return "unauthorized"
	case PowerOff:
		return "powered off"
	case PowerReady:
		return "powered on"
	default:
		return "unknown"
	}
}

// Delegate receives radio events. Calls arrive on the radio's own goroutine,
// one at a time.
type Delegate interface {
	OnPowerStateChanged(state PowerState)
	// OnPeripheralObserved fires once per advertisement. name is empty when
	// the peripheral did not report one.
	OnPeripheralObserved(id, name string, rssi int16, adv []byte)
}

// Radio is the platform central. Scan and StopScan are fire-and-forget: they
// return once the command is issued and results arrive through the Delegate.
type Radio interface {
	SetDelegate(d Delegate)
	Scan() error
	StopScan() error
}
