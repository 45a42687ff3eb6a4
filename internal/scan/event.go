package scan

// ServiceDataEntry is one (UUID, payload) pair from an advertisement. Entry
// order within a single broadcast is not significant.
type ServiceDataEntry struct {
	UUID string
	Data []byte
}

// Event is one observation of a broadcasting device, decoupled from the BLE
// stack that produced it. Events are transient: built per advertisement,
// dropped after the pipeline is done with them.
type Event struct {
	Address          string
	Name             string
	RSSI             int16
	ManufacturerData map[uint16][]byte
	ServiceData      []ServiceDataEntry
}
