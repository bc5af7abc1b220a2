package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dwizi/crontz/internal/crontz"
)

const (
	ToolToUTC      = "cron_to_utc"
	ToolToTimezone = "cron_to_timezone"
	ToolNext       = "cron_next"
)

type ServerOptions struct {
	Name            string
	Version         string
	DefaultTimezone string
	DefaultFormat   string
}

type toolset struct {
	opts     ServerOptions
	resolver *crontz.Resolver
	logger   *slog.Logger
}

type conversionArgs struct {
	Expression string `json:"expression"`
	Timezone   string `json:"timezone"`
}

type nextArgs struct {
	Expression string `json:"expression"`
	Timezone   string `json:"timezone"`
	Format     string `json:"format"`
	After      string `json:"after"`
}

// NewServer exposes the cron conversions as MCP tools.
func NewServer(opts ServerOptions, resolver *crontz.Resolver, logger *slog.Logger) *sdkmcp.Server {
	if strings.TrimSpace(opts.Name) == "" {
		opts.Name = "crontz"
	}
	if resolver == nil {
		resolver = crontz.NewResolver()
	}
	if logger == nil {
		logger = slog.Default()
	}
	tools := &toolset{opts: opts, resolver: resolver, logger: logger}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{Name: opts.Name, Version: opts.Version}, nil)
	server.AddTool(&sdkmcp.Tool{
		Name:        ToolToUTC,
		Description: "Convert a cron(...) expression written in a local timezone to UTC",
		InputSchema: conversionSchema(),
	}, tools.handleToUTC)
	server.AddTool(&sdkmcp.Tool{
		Name:        ToolToTimezone,
		Description: "Convert a UTC cron(...) expression to wall-clock time in a timezone",
		InputSchema: conversionSchema(),
	}, tools.handleToTimezone)
	server.AddTool(&sdkmcp.Tool{
		Name:        ToolNext,
		Description: "Compute the next fire time of a UTC cron(...) expression, rendered in a timezone",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"expression": map[string]any{"type": "string", "description": "cron(<minute> <hour> <day> <month> <weekday> <year>)"},
				"timezone":   map[string]any{"type": "string", "description": "IANA timezone for the result"},
				"format":     map[string]any{"type": "string", "description": "output pattern, e.g. YYYY/MM/DD HH:mm or %Y-%m-%d"},
				"after":      map[string]any{"type": "string", "description": "RFC 3339 anchor, defaults to now"},
			},
			"required": []string{"expression"},
		},
	}, tools.handleNext)
	return server
}

// HTTPHandler serves the tool server over the streamable HTTP transport.
func HTTPHandler(server *sdkmcp.Server) http.Handler {
	return sdkmcp.NewStreamableHTTPHandler(func(*http.Request) *sdkmcp.Server { return server }, nil)
}

// RunStdio serves the tool server on stdin/stdout until ctx is done.
func RunStdio(ctx context.Context, server *sdkmcp.Server) error {
	return server.Run(ctx, &sdkmcp.StdioTransport{})
}

func conversionSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"expression": map[string]any{"type": "string", "description": "cron(<minute> <hour> <day> <month> <weekday> <year>)"},
			"timezone":   map[string]any{"type": "string", "description": "IANA timezone, e.g. Asia/Tokyo"},
		},
		"required": []string{"expression"},
	}
}

func (t *toolset) handleToUTC(ctx context.Context, req *sdkmcp.CallToolRequest) (*sdkmcp.CallToolResult, error) {
	return t.convert(req, ToolToUTC, crontz.ConvertToUTC)
}

func (t *toolset) handleToTimezone(ctx context.Context, req *sdkmcp.CallToolRequest) (*sdkmcp.CallToolResult, error) {
	return t.convert(req, ToolToTimezone, crontz.ConvertToTimezone)
}

func (t *toolset) convert(
	req *sdkmcp.CallToolRequest,
	tool string,
	convert func(text, timezone string) (crontz.Conversion, error),
) (*sdkmcp.CallToolResult, error) {
	var args conversionArgs
	if err := decodeArguments(req, &args); err != nil {
		return errorResult(err), nil
	}
	timezone := t.timezone(args.Timezone)
	conversion, err := convert(strings.TrimSpace(args.Expression), timezone)
	if err != nil {
		t.logger.Debug("mcp conversion failed", "tool", tool, "error", err)
		return errorResult(err), nil
	}
	return jsonResult(map[string]any{
		"expression": conversion.Expression(),
		"timezone":   timezone,
		"day_shift":  conversion.Shift.String(),
	})
}

func (t *toolset) handleNext(ctx context.Context, req *sdkmcp.CallToolRequest) (*sdkmcp.CallToolResult, error) {
	var args nextArgs
	if err := decodeArguments(req, &args); err != nil {
		return errorResult(err), nil
	}
	after := time.Now().UTC()
	if raw := strings.TrimSpace(args.After); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return errorResult(fmt.Errorf("invalid after %q: %w", raw, err)), nil
		}
		after = parsed
	}
	timezone := t.timezone(args.Timezone)
	format := strings.TrimSpace(args.Format)
	if format == "" {
		format = t.opts.DefaultFormat
	}
	next, err := t.resolver.NextTime(strings.TrimSpace(args.Expression), timezone, after)
	if err != nil {
		t.logger.Debug("mcp next failed", "tool", ToolNext, "error", err)
		return errorResult(err), nil
	}
	return jsonResult(map[string]any{
		"next":      crontz.FormatTime(next, format),
		"next_unix": next.Unix(),
		"timezone":  timezone,
	})
}

func (t *toolset) timezone(raw string) string {
	timezone := strings.TrimSpace(raw)
	if timezone == "" {
		return t.opts.DefaultTimezone
	}
	return timezone
}

func decodeArguments(req *sdkmcp.CallToolRequest, target any) error {
	if req == nil || req.Params == nil || len(req.Params.Arguments) == 0 {
		return nil
	}
	if err := json.Unmarshal(req.Params.Arguments, target); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

func jsonResult(payload map[string]any) (*sdkmcp.CallToolResult, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &sdkmcp.CallToolResult{Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(raw)}}}, nil
}

func errorResult(err error) *sdkmcp.CallToolResult {
	return &sdkmcp.CallToolResult{
		IsError: true,
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: err.Error()}},
	}
}
