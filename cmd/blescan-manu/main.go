package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blescan/internal/app"
	"blescan/internal/config"
	"blescan/internal/logging"
)

var version = "dev"
var appName = "blescan-manu"

func main() {
	var (
		macsPath string
		scanSecs int
	)
	flag.StringVar(&macsPath, "m", "", "file of allowed device addresses, one per line (absent = no address filter)")
	flag.StringVar(&macsPath, "macs", "", "file of allowed device addresses, one per line (absent = no address filter)")
	flag.IntVar(&scanSecs, "t", 0, "scan duration in seconds (0 = run until interrupted)")
	flag.IntVar(&scanSecs, "time", 0, "scan duration in seconds (0 = run until interrupted)")
	flag.Parse()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	cfg.MACListPath = macsPath
	cfg.ScanTime = time.Duration(scanSecs) * time.Second

	logger := logging.New(cfg, version, appName)
	slog.SetDefault(logger)

	slog.Info("starting",
		"app", appName,
		"version", version,
		"env", cfg.AppEnv,
		"log_level", cfg.LogLevel.String(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, cfg, app.Manufacturer); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("run failed", "err", err)
		os.Exit(1)
	}

	slog.Info("scanner stopped")
}
