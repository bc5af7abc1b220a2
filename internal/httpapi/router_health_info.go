package httpapi

import (
	"net/http"

	"github.com/dwizi/crontz/internal/crontz"
)

func (r *router) handleHealth(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (r *router) handleReady(w http.ResponseWriter, req *http.Request) {
	if _, err := crontz.LoadLocation(r.deps.Config.DefaultTimezone); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not-ready", "error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (r *router) handleInfo(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":             "crontz",
		"environment":      r.deps.Config.Environment,
		"public_host":      r.deps.Config.PublicHost,
		"default_timezone": r.deps.Config.DefaultTimezone,
		"default_format":   r.deps.Config.DefaultFormat,
		"mcp_enabled":      r.deps.MCPHandler != nil,
	})
}
