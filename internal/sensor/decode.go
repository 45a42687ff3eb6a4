package sensor

import (
	"encoding/binary"

	"blescan/internal/utils"
)

// Advertisement payload format (little-endian): byte 0 is the sensor type,
// bytes 1-2 carry an int16 value in centi-°C when the type is temperature.
const (
	TypeReserved    byte = 0x00
	TypeTemperature byte = 0x01
)

// Reading is one decoded sensor observation. Centi is only meaningful when
// HasValue is set, which in turn only happens for temperature payloads that
// actually carry value bytes.
type Reading struct {
	Type     byte
	Centi    int16
	HasValue bool
}

// Celsius converts the centi-degree value to a display temperature.
func (r Reading) Celsius() float64 { return float64(r.Centi) / 100.0 }

// TypeHex renders the raw sensor type as two uppercase hex digits.
func (r Reading) TypeHex() string { return utils.HexByte(r.Type) }

// DecodeManufacturer decodes a manufacturer-data payload. Manufacturer
// payloads shorter than 3 bytes carry nothing usable and yield no reading.
func DecodeManufacturer(p []byte) (Reading, bool) {
	if len(p) < 3 {
		return Reading{}, false
	}
	r := Reading{Type: p[0]}
	if r.Type == TypeTemperature {
		r.Centi = int16(binary.LittleEndian.Uint16(p[1:3]))
		r.HasValue = true
	}
	return r, true
}

// DecodeServiceData decodes a service-data payload. A single type byte is
// enough for a valid reading here; the value is only filled in when the
// payload carries it.
func DecodeServiceData(p []byte) (Reading, bool) {
	if len(p) < 1 {
		return Reading{}, false
	}
	r := Reading{Type: p[0]}
	if r.Type == TypeTemperature && len(p) >= 3 {
		r.Centi = int16(binary.LittleEndian.Uint16(p[1:3]))
		r.HasValue = true
	}
	return r, true
}
