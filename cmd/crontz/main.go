package main

import (
	"log/slog"
	"os"

	"github.com/dwizi/crontz/internal/cli"
	"github.com/dwizi/crontz/internal/config"
)

func main() {
	// stdout carries command output and the MCP stdio stream.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: config.FromEnv().LogLevel}))
	if err := cli.NewRoot(logger).Execute(); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}
