package config

import (
	"log/slog"
	"testing"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("CRONTZ_ENV", "")
	t.Setenv("CRONTZ_HTTP_ADDR", "")
	t.Setenv("CRONTZ_LOG_LEVEL", "")
	t.Setenv("CRONTZ_DEFAULT_TIMEZONE", "")
	t.Setenv("CRONTZ_DEFAULT_FORMAT", "")
	t.Setenv("CRONTZ_NEXT_SCAN_LIMIT", "")
	t.Setenv("CRONTZ_MCP_HTTP_ENABLED", "")
	t.Setenv("CRONTZ_HTTP_READ_TIMEOUT_SECONDS", "")
	t.Setenv("CRONTZ_SHUTDOWN_TIMEOUT_SECONDS", "")
	t.Setenv("CRONTZ_REQUEST_BATCH_LIMIT", "")

	cfg := FromEnv()
	if cfg.Environment != "development" {
		t.Fatalf("expected development environment, got %s", cfg.Environment)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("expected default http addr, got %s", cfg.HTTPAddr)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Fatalf("expected info level, got %s", cfg.LogLevel)
	}
	if cfg.DefaultTimezone != "UTC" {
		t.Fatalf("expected UTC default timezone, got %s", cfg.DefaultTimezone)
	}
	if cfg.DefaultFormat != "YYYY/MM/DD HH:mm" {
		t.Fatalf("unexpected default format: %s", cfg.DefaultFormat)
	}
	if cfg.NextScanLimit != 48 {
		t.Fatalf("expected scan limit 48, got %d", cfg.NextScanLimit)
	}
	if !cfg.MCPHTTPEnabled {
		t.Fatal("expected mcp over http to be enabled by default")
	}
	if cfg.HTTPReadTimeoutSec != 10 || cfg.ShutdownTimeoutSec != 10 {
		t.Fatalf("unexpected timeouts: read=%d shutdown=%d", cfg.HTTPReadTimeoutSec, cfg.ShutdownTimeoutSec)
	}
	if cfg.RequestBatchLimit != 100 {
		t.Fatalf("expected batch limit 100, got %d", cfg.RequestBatchLimit)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("CRONTZ_HTTP_ADDR", "127.0.0.1:9000")
	t.Setenv("CRONTZ_LOG_LEVEL", "DEBUG")
	t.Setenv("CRONTZ_DEFAULT_TIMEZONE", "Asia/Tokyo")
	t.Setenv("CRONTZ_NEXT_SCAN_LIMIT", "12")
	t.Setenv("CRONTZ_MCP_HTTP_ENABLED", "off")

	cfg := FromEnv()
	if cfg.HTTPAddr != "127.0.0.1:9000" {
		t.Fatalf("unexpected http addr: %s", cfg.HTTPAddr)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Fatalf("expected debug level, got %s", cfg.LogLevel)
	}
	if cfg.DefaultTimezone != "Asia/Tokyo" {
		t.Fatalf("unexpected default timezone: %s", cfg.DefaultTimezone)
	}
	if cfg.NextScanLimit != 12 {
		t.Fatalf("expected scan limit 12, got %d", cfg.NextScanLimit)
	}
	if cfg.MCPHTTPEnabled {
		t.Fatal("expected mcp over http to be disabled")
	}
}

func TestFromEnvIgnoresInvalidNumbers(t *testing.T) {
	t.Setenv("CRONTZ_NEXT_SCAN_LIMIT", "-3")
	t.Setenv("CRONTZ_SHUTDOWN_TIMEOUT_SECONDS", "soon")
	t.Setenv("CRONTZ_LOG_LEVEL", "loud")

	cfg := FromEnv()
	if cfg.NextScanLimit != 48 {
		t.Fatalf("expected fallback scan limit, got %d", cfg.NextScanLimit)
	}
	if cfg.ShutdownTimeoutSec != 10 {
		t.Fatalf("expected fallback shutdown timeout, got %d", cfg.ShutdownTimeoutSec)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Fatalf("expected fallback info level, got %s", cfg.LogLevel)
	}
}
