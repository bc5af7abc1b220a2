package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dwizi/crontz/internal/config"
	"github.com/dwizi/crontz/internal/crontz"
)

const requestIDHeader = "X-Request-ID"

type requestIDKey struct{}

type Dependencies struct {
	Config     config.Config
	Resolver   *crontz.Resolver
	MCPHandler http.Handler
	Logger     *slog.Logger
}

type router struct {
	deps Dependencies
}

func NewRouter(deps Dependencies) http.Handler {
	if deps.Resolver == nil {
		deps.Resolver = crontz.NewResolver(crontz.WithScanLimit(deps.Config.NextScanLimit))
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	rt := &router{deps: deps}
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.handleHealth)
	mux.HandleFunc("/readyz", rt.handleReady)
	mux.HandleFunc("/api/v1/info", rt.handleInfo)
	mux.HandleFunc("/api/v1/cron/utc", rt.handleToUTC)
	mux.HandleFunc("/api/v1/cron/timezone", rt.handleToTimezone)
	mux.HandleFunc("/api/v1/cron/next", rt.handleNext)
	if deps.MCPHandler != nil {
		mux.Handle("/mcp", deps.MCPHandler)
	}
	return rt.withRequestLog(mux)
}

func (r *router) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		requestID := req.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		started := time.Now()
		next.ServeHTTP(recorder, req.WithContext(context.WithValue(req.Context(), requestIDKey{}, requestID)))
		r.deps.Logger.Info("http request",
			"request_id", requestID,
			"method", req.Method,
			"path", req.URL.Path,
			"status", recorder.status,
			"duration_ms", time.Since(started).Milliseconds(),
		)
	})
}

func requestIDFrom(ctx context.Context) string {
	value, _ := ctx.Value(requestIDKey{}).(string)
	return value
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

func (s *statusRecorder) Flush() {
	if flusher, ok := s.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}
