package ble

import (
	"context"
	"fmt"
	"log/slog"

	"tinygo.org/x/bluetooth"

	"blescan/internal/scan"
)

type Options struct {
	Adapter string // "hci0" by default
}

// Listener wraps BlueZ scanning with context cancellation.
type Listener struct {
	adapter *bluetooth.Adapter
	opts    Options
}

func NewListener(opts Options) *Listener {
	if opts.Adapter == "" {
		opts.Adapter = "hci0"
	}

	return &Listener{
		adapter: bluetooth.NewAdapter(opts.Adapter),
		opts:    opts,
	}
}

// Run enables the adapter and blocks delivering one scan.Event per observed
// advertisement until ctx is canceled. Reception teardown runs exactly once
// on every exit path. The handler may be invoked concurrently by the stack
// and must be stateless.
func (l *Listener) Run(ctx context.Context, onEvent func(scan.Event)) error {
	slog.Info("ble: enabling adapter", "adapter", l.opts.Adapter)
	if err := l.adapter.Enable(); err != nil {
		return fmt.Errorf("ble enable (%s): %w", l.opts.Adapter, err)
	}
	slog.Info("ble: adapter enabled", "adapter", l.opts.Adapter)

	go func() {
		<-ctx.Done()
		_ = l.adapter.StopScan()
	}()

	slog.Info("ble: scanning started")

	// adapter.Scan blocks until StopScan() or error.
	err := l.adapter.Scan(func(a *bluetooth.Adapter, r bluetooth.ScanResult) {
		if onEvent != nil {
			onEvent(toEvent(r))
		}
	})

	// If ctx canceled, treat as clean shutdown.
	if ctx.Err() != nil {
		slog.Info("ble: scanning stopped (context canceled)")
		return nil
	}

	if err != nil {
		return fmt.Errorf("ble scan: %w", err)
	}

	slog.Info("ble: scanning stopped")
	return nil
}

// toEvent copies a stack-owned scan result into an immutable scan.Event.
// Payload slices are cloned: the stack may reuse its buffers after the
// callback returns.
func toEvent(r bluetooth.ScanResult) scan.Event {
	ev := scan.Event{
		Address: r.Address.String(),
		Name:    r.LocalName(),
		RSSI:    r.RSSI,
	}
	if md := r.ManufacturerData(); len(md) > 0 {
		ev.ManufacturerData = make(map[uint16][]byte, len(md))
		for _, m := range md {
			ev.ManufacturerData[m.CompanyID] = append([]byte(nil), m.Data...)
		}
	}
	for _, sd := range r.ServiceData() {
		ev.ServiceData = append(ev.ServiceData, scan.ServiceDataEntry{
			UUID: sd.UUID.String(),
			Data: append([]byte(nil), sd.Data...),
		})
	}
	return ev
}
