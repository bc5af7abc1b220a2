package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/dwizi/crontz/internal/crontz"
)

type Config struct {
	Environment        string
	HTTPAddr           string
	LogLevel           slog.Level
	DefaultTimezone    string
	DefaultFormat      string
	NextScanLimit      int
	MCPHTTPEnabled     bool
	HTTPReadTimeoutSec int
	ShutdownTimeoutSec int
	RequestBatchLimit  int
	PublicHost         string
}

func FromEnv() Config {
	return Config{
		Environment:        stringOrDefault("CRONTZ_ENV", "development"),
		HTTPAddr:           stringOrDefault("CRONTZ_HTTP_ADDR", ":8080"),
		LogLevel:           levelOrDefault("CRONTZ_LOG_LEVEL", slog.LevelInfo),
		DefaultTimezone:    stringOrDefault("CRONTZ_DEFAULT_TIMEZONE", "UTC"),
		DefaultFormat:      stringOrDefault("CRONTZ_DEFAULT_FORMAT", crontz.DefaultFormat),
		NextScanLimit:      intOrDefault("CRONTZ_NEXT_SCAN_LIMIT", crontz.DefaultScanLimit),
		MCPHTTPEnabled:     boolOrDefault("CRONTZ_MCP_HTTP_ENABLED", true),
		HTTPReadTimeoutSec: intOrDefault("CRONTZ_HTTP_READ_TIMEOUT_SECONDS", 10),
		ShutdownTimeoutSec: intOrDefault("CRONTZ_SHUTDOWN_TIMEOUT_SECONDS", 10),
		RequestBatchLimit:  intOrDefault("CRONTZ_REQUEST_BATCH_LIMIT", 100),
		PublicHost:         stringOrDefault("PUBLIC_HOST", "localhost"),
	}
}

func stringOrDefault(name, fallback string) string {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return fallback
	}
	return value
}

func intOrDefault(name string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 1 {
		return fallback
	}
	return parsed
}

func boolOrDefault(name string, fallback bool) bool {
	value := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	switch value {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func levelOrDefault(name string, fallback slog.Level) slog.Level {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(name)))
	switch value {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return fallback
	}
}
