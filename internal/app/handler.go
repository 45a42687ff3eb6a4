package app

import (
	"fmt"
	"io"
	"log/slog"

	"blescan/internal/scan"
	"blescan/internal/utils"
)

// Variant selects which advertisement field the scanner decodes.
type Variant int

const (
	// Manufacturer decodes the manufacturer-data payload under scan.CompanyID.
	Manufacturer Variant = iota
	// ServiceData decodes every service-data entry passing the UUID filter.
	ServiceData
)

// Publisher forwards a decoded reading to an external sink.
type Publisher interface {
	PublishReading(scan.Report) error
}

// Handler routes one advertisement event through the filter pipeline and
// writes matching readings to Out, one line each. It holds no per-event state
// and is safe for concurrent invocations.
type Handler struct {
	Pipeline  scan.Pipeline
	Variant   Variant
	Out       io.Writer
	Publisher Publisher // optional; nil means console-only
}

// HandleEvent processes a single advertisement event. Events that match no
// active filter or carry no decodable payload are dropped silently.
func (h *Handler) HandleEvent(ev scan.Event) {
	switch h.Variant {
	case Manufacturer:
		rep, ok := h.Pipeline.MatchManufacturer(ev)
		if !ok {
			return
		}
		h.emit(rep)
	case ServiceData:
		for _, rep := range h.Pipeline.MatchServiceData(ev) {
			h.emit(rep)
		}
	}
}

func (h *Handler) emit(rep scan.Report) {
	fmt.Fprintln(h.Out, rep)
	slog.Debug("reading matched",
		"addr", rep.Address,
		"rssi", rep.RSSI,
		"data", utils.BytesToHex(rep.Payload),
	)
	if h.Publisher == nil {
		return
	}
	if err := h.Publisher.PublishReading(rep); err != nil {
		slog.Warn("failed to forward reading", "addr", rep.Address, "error", err)
	}
}
