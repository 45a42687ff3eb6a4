package scan

import (
	"blescan/internal/allowlist"
	"blescan/internal/sensor"
)

// CompanyID is the manufacturer-specific data key the sensor beacons
// broadcast under (0xFFFF, the Bluetooth SIG reserved test identifier).
const CompanyID uint16 = 0xFFFF

// Pipeline holds the active filters for one scanner run. Either list may be
// nil, which disables that filter. The lists are write-once at startup, so a
// Pipeline is safe to use from concurrent handler invocations.
type Pipeline struct {
	MACs  *allowlist.AllowList
	UUIDs *allowlist.AllowList
}

// MatchManufacturer applies the address filter and decodes the payload
// registered under CompanyID. At most one report per event. Reserved (type 0)
// readings are suppressed here and never reach the reporter.
func (p Pipeline) MatchManufacturer(ev Event) (Report, bool) {
	if !p.MACs.Allows(ev.Address) {
		return Report{}, false
	}
	payload, ok := ev.ManufacturerData[CompanyID]
	if !ok {
		return Report{}, false
	}
	r, ok := sensor.DecodeManufacturer(payload)
	if !ok || r.Type == sensor.TypeReserved {
		return Report{}, false
	}
	return Report{
		Address: ev.Address,
		Name:    ev.Name,
		RSSI:    ev.RSSI,
		Reading: r,
		Payload: payload,
	}, true
}

// MatchServiceData applies the address filter, then decodes every
// service-data entry that passes the UUID filter. Entries decode
// independently, so one event can yield zero, one, or several reports.
func (p Pipeline) MatchServiceData(ev Event) []Report {
	if !p.MACs.Allows(ev.Address) {
		return nil
	}
	var out []Report
	for _, sd := range ev.ServiceData {
		if !p.UUIDs.Allows(sd.UUID) {
			continue
		}
		r, ok := sensor.DecodeServiceData(sd.Data)
		if !ok || r.Type == sensor.TypeReserved {
			continue
		}
		out = append(out, Report{
			Address: ev.Address,
			Name:    ev.Name,
			RSSI:    ev.RSSI,
			UUID:    allowlist.NormalizeUUID(sd.UUID),
			Reading: r,
			Payload: sd.Data,
		})
	}
	return out
}
