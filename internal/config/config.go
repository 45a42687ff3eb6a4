package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	AppEnv   string
	LogLevel slog.Level
	Adapter  string

	MQTTBroker   string
	MQTTPort     int
	MQTTClientID string

	// Set from command-line flags, not the environment.
	MACListPath  string
	UUIDListPath string
	ScanTime     time.Duration
}

// MQTTEnabled reports whether decoded readings should also be forwarded to an
// MQTT broker. Console output is the primary sink; forwarding is opt-in.
func (c Config) MQTTEnabled() bool { return c.MQTTBroker != "" }

func LoadFromEnv() (Config, error) {
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	switch appEnv {
	case "dev", "prod":
	default:
		return Config{}, fmt.Errorf("invalid APP_ENV %q (allowed: dev, prod)", appEnv)
	}

	logLevelStr := strings.TrimSpace(os.Getenv("LOG_LEVEL"))
	if logLevelStr == "" {
		logLevelStr = "info"
	}
	level, err := parseLogLevel(logLevelStr)
	if err != nil {
		return Config{}, err
	}

	adapter := strings.TrimSpace(os.Getenv("BLE_ADAPTER"))
	if adapter == "" {
		adapter = "hci0"
	}

	// Empty broker means console-only operation.
	mqttBroker := strings.TrimSpace(os.Getenv("MQTT_BROKER"))

	mqttPortStr := strings.TrimSpace(os.Getenv("MQTT_PORT"))
	if mqttPortStr == "" {
		mqttPortStr = "1883"
	}
	mqttPort, err := strconv.Atoi(mqttPortStr)
	if err != nil {
		return Config{}, fmt.Errorf("invalid MQTT_PORT %q: %w", mqttPortStr, err)
	}

	mqttClientID := strings.TrimSpace(os.Getenv("MQTT_CLIENT_ID"))
	if mqttClientID == "" {
		mqttClientID = "blescan"
	}

	return Config{
		AppEnv:       appEnv,
		LogLevel:     level,
		Adapter:      adapter,
		MQTTBroker:   mqttBroker,
		MQTTPort:     mqttPort,
		MQTTClientID: mqttClientID,
	}, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}
