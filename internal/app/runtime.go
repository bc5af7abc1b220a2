package app

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dwizi/crontz/internal/config"
	"github.com/dwizi/crontz/internal/crontz"
	"github.com/dwizi/crontz/internal/httpapi"
	"github.com/dwizi/crontz/internal/mcp"
)

const Version = "0.1.0"

type Runtime struct {
	cfg        config.Config
	logger     *slog.Logger
	resolver   *crontz.Resolver
	httpServer *http.Server
}

func New(cfg config.Config, logger *slog.Logger) (*Runtime, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if _, err := crontz.LoadLocation(cfg.DefaultTimezone); err != nil {
		return nil, fmt.Errorf("default timezone: %w", err)
	}

	resolver := crontz.NewResolver(crontz.WithScanLimit(cfg.NextScanLimit))
	var mcpHandler http.Handler
	if cfg.MCPHTTPEnabled {
		server := mcp.NewServer(mcp.ServerOptions{
			Name:            "crontz",
			Version:         Version,
			DefaultTimezone: cfg.DefaultTimezone,
			DefaultFormat:   cfg.DefaultFormat,
		}, resolver, logger.With("component", "mcp"))
		mcpHandler = mcp.HTTPHandler(server)
	}

	router := httpapi.NewRouter(httpapi.Dependencies{
		Config:     cfg,
		Resolver:   resolver,
		MCPHandler: mcpHandler,
		Logger:     logger.With("component", "api"),
	})
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: time.Duration(cfg.HTTPReadTimeoutSec) * time.Second,
	}

	return &Runtime{
		cfg:        cfg,
		logger:     logger,
		resolver:   resolver,
		httpServer: httpServer,
	}, nil
}

func (r *Runtime) Handler() http.Handler {
	return r.httpServer.Handler
}

func (r *Runtime) Close() error {
	return r.httpServer.Close()
}
