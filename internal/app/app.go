package app

import (
	"context"
	"log/slog"
	"os"

	"blescan/internal/allowlist"
	"blescan/internal/ble"
	"blescan/internal/config"
	"blescan/internal/mqtt"
	"blescan/internal/scan"
	"blescan/internal/utils"
)

// Run wires the filter pipeline to the BLE listener and blocks until the scan
// duration elapses or ctx is canceled. A missing allow-list file downgrades
// that filter to disabled; a failed reception setup is fatal and returned.
func Run(ctx context.Context, cfg config.Config, v Variant) error {
	var macs, uuids *allowlist.AllowList

	if cfg.MACListPath != "" {
		l, err := allowlist.Load(cfg.MACListPath, allowlist.NormalizeMAC)
		if err != nil {
			slog.Warn("mac allow-list not loaded; address filter disabled",
				"path", cfg.MACListPath, "error", err)
		} else {
			macs = l
			slog.Info("mac allow-list loaded", "path", cfg.MACListPath, "entries", l.Len())
		}
	}
	if v == ServiceData && cfg.UUIDListPath != "" {
		l, err := allowlist.Load(cfg.UUIDListPath, allowlist.NormalizeUUID)
		if err != nil {
			slog.Warn("uuid allow-list not loaded; uuid filter disabled",
				"path", cfg.UUIDListPath, "error", err)
		} else {
			uuids = l
			slog.Info("uuid allow-list loaded", "path", cfg.UUIDListPath, "entries", l.Len())
		}
	}
	if v == Manufacturer {
		slog.Info("decoding manufacturer data", "company", utils.Hex4(scan.CompanyID))
	}

	h := &Handler{
		Pipeline: scan.Pipeline{MACs: macs, UUIDs: uuids},
		Variant:  v,
		Out:      os.Stdout,
	}

	if cfg.MQTTEnabled() {
		client, err := mqtt.NewClient(cfg, slog.Default())
		if err != nil {
			return err
		}
		defer client.Disconnect()
		go func() {
			if err := client.Connect(ctx); err != nil {
				slog.Warn("mqtt connect failed; readings stay console-only", "error", err)
			}
		}()
		h.Publisher = client
	}

	if cfg.ScanTime > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ScanTime)
		defer cancel()
		slog.Info("scan duration set", "duration", cfg.ScanTime)
	}

	listener := ble.NewListener(ble.Options{Adapter: cfg.Adapter})
	return listener.Run(ctx, h.HandleEvent)
}
