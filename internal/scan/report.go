package scan

import (
	"fmt"
	"strings"

	"blescan/internal/sensor"
)

// Report is one filtered, decoded reading ready for output.
type Report struct {
	Address string
	Name    string
	RSSI    int16
	UUID    string // set by the service-data variant only
	Reading sensor.Reading
	Payload []byte // raw payload the reading came from, for debug logging
}

// DisplayName returns the advertised device name, or "Unknown" when the
// device did not advertise one.
func (r Report) DisplayName() string {
	if r.Name == "" {
		return "Unknown"
	}
	return r.Name
}

// String renders the report as a single console line.
func (r Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  RSSI %4d dBm  ", r.Address, r.RSSI)
	switch {
	case r.Reading.Type == sensor.TypeTemperature && r.Reading.HasValue:
		fmt.Fprintf(&b, "Temp %6.2f °C  ", r.Reading.Celsius())
	case r.Reading.Type == sensor.TypeTemperature:
		// Type known, value bytes absent (short service-data payload).
		b.WriteString("Temp    n/a °C  ")
	default:
		fmt.Fprintf(&b, "Unknown sensor (type %s)  ", r.Reading.TypeHex())
	}
	if r.UUID != "" {
		fmt.Fprintf(&b, "UUID: %s  ", r.UUID)
	}
	fmt.Fprintf(&b, "Name: %s", r.DisplayName())
	return b.String()
}
