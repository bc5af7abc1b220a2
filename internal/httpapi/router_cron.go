package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dwizi/crontz/internal/crontz"
)

type conversionRequest struct {
	Expression  string   `json:"expression"`
	Expressions []string `json:"expressions"`
	Timezone    string   `json:"timezone"`
}

type nextRequest struct {
	Expression string `json:"expression"`
	Timezone   string `json:"timezone"`
	Format     string `json:"format"`
	After      string `json:"after"`
}

type convertFunc func(text, timezone string) (crontz.Conversion, error)

func (r *router) handleToUTC(w http.ResponseWriter, req *http.Request) {
	r.handleConversion(w, req, crontz.ConvertToUTC)
}

func (r *router) handleToTimezone(w http.ResponseWriter, req *http.Request) {
	r.handleConversion(w, req, crontz.ConvertToTimezone)
}

func (r *router) handleConversion(w http.ResponseWriter, req *http.Request, convert convertFunc) {
	if req.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	var payload conversionRequest
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	timezone := r.timezone(payload.Timezone)

	if len(payload.Expressions) > 0 {
		limit := r.deps.Config.RequestBatchLimit
		if limit > 0 && len(payload.Expressions) > limit {
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{
				"error": fmt.Sprintf("at most %d expressions per request", limit),
			})
			return
		}
		items := make([]map[string]any, 0, len(payload.Expressions))
		for _, expression := range payload.Expressions {
			items = append(items, r.convertItem(req, convert, expression, timezone))
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"timezone": timezone,
			"items":    items,
			"count":    len(items),
		})
		return
	}

	if strings.TrimSpace(payload.Expression) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "expression or expressions is required"})
		return
	}
	conversion, err := convert(strings.TrimSpace(payload.Expression), timezone)
	if err != nil {
		r.writeError(w, req, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"expression": conversion.Expression(),
		"timezone":   timezone,
		"day_shift":  conversion.Shift.String(),
	})
}

func (r *router) convertItem(req *http.Request, convert convertFunc, expression, timezone string) map[string]any {
	item := map[string]any{"input": expression}
	conversion, err := convert(strings.TrimSpace(expression), timezone)
	if err != nil {
		r.deps.Logger.Debug("batch conversion failed", "request_id", requestIDFrom(req.Context()), "error", err)
		item["error"] = err.Error()
		return item
	}
	item["expression"] = conversion.Expression()
	item["day_shift"] = conversion.Shift.String()
	return item
}

func (r *router) handleNext(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	var payload nextRequest
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	if strings.TrimSpace(payload.Expression) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "expression is required"})
		return
	}
	after := time.Now().UTC()
	if raw := strings.TrimSpace(payload.After); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "after must be an RFC 3339 timestamp"})
			return
		}
		after = parsed
	}
	format := strings.TrimSpace(payload.Format)
	if format == "" {
		format = r.deps.Config.DefaultFormat
	}
	timezone := r.timezone(payload.Timezone)

	next, err := r.deps.Resolver.NextTime(strings.TrimSpace(payload.Expression), timezone, after)
	if err != nil {
		r.writeError(w, req, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"next":      crontz.FormatTime(next, format),
		"next_unix": next.Unix(),
		"timezone":  timezone,
	})
}

func (r *router) timezone(raw string) string {
	timezone := strings.TrimSpace(raw)
	if timezone == "" {
		return r.deps.Config.DefaultTimezone
	}
	return timezone
}

func (r *router) writeError(w http.ResponseWriter, req *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, crontz.ErrMalformedExpression), errors.Is(err, crontz.ErrUnknownTimezone):
		status = http.StatusBadRequest
	case errors.Is(err, crontz.ErrNoNextOccurrence):
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		r.deps.Logger.Error("cron request failed", "request_id", requestIDFrom(req.Context()), "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
