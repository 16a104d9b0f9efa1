package bluetooth

import (
	"fmt"
	"math"

	"contactex.klederson.com/internal/config"
)

// Peripheral is a discovered nearby device. Records are immutable once
// created: later advertisements from the same ID do not refresh them.
type Peripheral struct {
	ID   string // opaque platform handle, used only for equality
	Name string
	RSSI int16
}

func newPeripheral(id, name string, rssi int16) Peripheral {
	if name == "" {
		name = config.UnknownPeripheralName
	}
	return Peripheral{ID: id, Name: name, RSSI: rssi}
}

// Distance estimates how far away the peripheral was when first seen.
func (p Peripheral) Distance() float64 {
	return RSSIToDistance(float64(p.RSSI), config.MeasuredPower, config.PathLossExp)
}

func (p Peripheral) String() string {
	return fmt.Sprintf("%s (%s) %ddBm", p.Name, p.ID, p.RSSI)
}

// RSSIToDistance estimates distance from RSSI using the log-distance path loss model.
// Formula: d = 10^((measuredPower - rssi) / (10 * n))
func RSSIToDistance(rssi, measuredPower, pathLossExp float64) float64 {
	if rssi >= 0 {
		return 0.1
	}
	d := math.Pow(10, (measuredPower-rssi)/(10*pathLossExp))
	if d < 0.1 {
		return 0.1
	}
	return d
}
