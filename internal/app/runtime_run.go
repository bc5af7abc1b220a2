package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

func (r *Runtime) Run(ctx context.Context) error {
	r.logger.Info("crontz runtime starting",
		"addr", r.cfg.HTTPAddr,
		"default_timezone", r.cfg.DefaultTimezone,
		"mcp_http", r.cfg.MCPHTTPEnabled,
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		err := r.httpServer.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	group.Go(func() error {
		<-groupCtx.Done()
		timeout := time.Duration(r.cfg.ShutdownTimeoutSec) * time.Second
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		r.logger.Info("crontz runtime stopping")
		return r.httpServer.Shutdown(shutdownCtx)
	})

	return group.Wait()
}
