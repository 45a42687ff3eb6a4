package app

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"blescan/internal/scan"
)

type recordingPublisher struct {
	published []scan.Report
	err       error
}

func (p *recordingPublisher) PublishReading(rep scan.Report) error {
	p.published = append(p.published, rep)
	return p.err
}

func manuEvent(payload []byte) scan.Event {
	return scan.Event{
		Address:          "AA:BB:CC:DD:EE:FF",
		RSSI:             -50,
		ManufacturerData: map[uint16][]byte{scan.CompanyID: payload},
	}
}

func TestHandleEvent_manufacturerWritesOneLine(t *testing.T) {
	var out bytes.Buffer
	h := &Handler{Variant: Manufacturer, Out: &out}

	h.HandleEvent(manuEvent([]byte{0x01, 0x10, 0x0E}))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 1 {
		t.Fatalf("wrote %d lines; want exactly 1:\n%s", len(lines), out.String())
	}
	if !strings.Contains(lines[0], "36.00") {
		t.Errorf("line %q; want it to contain \"36.00\"", lines[0])
	}
}

func TestHandleEvent_reservedTypeWritesNothing(t *testing.T) {
	var out bytes.Buffer
	h := &Handler{Variant: Manufacturer, Out: &out}

	h.HandleEvent(manuEvent([]byte{0x00, 0x10, 0x0E}))

	if out.Len() != 0 {
		t.Errorf("wrote %q for a reserved-type payload; want no output", out.String())
	}
}

func TestHandleEvent_serviceDataMultipleReadings(t *testing.T) {
	var out bytes.Buffer
	h := &Handler{Variant: ServiceData, Out: &out}

	h.HandleEvent(scan.Event{
		Address: "AA:BB:CC:DD:EE:FF",
		ServiceData: []scan.ServiceDataEntry{
			{UUID: "ddce36f1-417c-48e1-a8ea-e286e1e5498e", Data: []byte{0x01, 0x64, 0x00}},
			{UUID: "0000181a-0000-1000-8000-00805f9b34fb", Data: []byte{0x0A, 0x00, 0x00}},
		},
	})

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("wrote %d lines; want 2:\n%s", len(lines), out.String())
	}
}

func TestHandleEvent_forwardsToPublisher(t *testing.T) {
	var out bytes.Buffer
	pub := &recordingPublisher{}
	h := &Handler{Variant: Manufacturer, Out: &out, Publisher: pub}

	h.HandleEvent(manuEvent([]byte{0x01, 0xDC, 0x09}))

	if len(pub.published) != 1 {
		t.Fatalf("published %d readings; want 1", len(pub.published))
	}
	if got := pub.published[0].Reading.Centi; got != 2524 {
		t.Errorf("published Centi = %d; want 2524", got)
	}
}

func TestHandleEvent_publishFailureStillWritesLine(t *testing.T) {
	var out bytes.Buffer
	pub := &recordingPublisher{err: errors.New("broker down")}
	h := &Handler{Variant: Manufacturer, Out: &out, Publisher: pub}

	h.HandleEvent(manuEvent([]byte{0x01, 0xDC, 0x09}))

	if !strings.Contains(out.String(), "25.24") {
		t.Errorf("output %q; want the reading line despite publish failure", out.String())
	}
}
