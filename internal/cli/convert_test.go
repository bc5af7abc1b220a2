package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/dwizi/crontz/internal/crontz"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CRONTZ_DEFAULT_TIMEZONE", "")
	t.Setenv("CRONTZ_DEFAULT_FORMAT", "")
	t.Setenv("CRONTZ_NEXT_SCAN_LIMIT", "")

	var output bytes.Buffer
	root := NewRoot(slog.New(slog.NewTextHandler(io.Discard, nil)))
	root.SetOut(&output)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return output.String(), err
}

func TestToUTCCommand(t *testing.T) {
	output, err := runRoot(t, "to-utc", "--timezone", "Asia/Tokyo", "cron(30 9 15 1 ? *)")
	if err != nil {
		t.Fatalf("to-utc: %v", err)
	}
	if strings.TrimSpace(output) != "cron(30 0 15 1 ? *)" {
		t.Fatalf("unexpected output: %q", output)
	}
}

func TestToUTCCommandJoinsSplitArguments(t *testing.T) {
	output, err := runRoot(t, "to-utc", "-z", "Pacific/Honolulu", "cron(0", "20", "31", "12", "7", "*)")
	if err != nil {
		t.Fatalf("to-utc: %v", err)
	}
	if strings.TrimSpace(output) != "cron(0 6 1 1 1 *)" {
		t.Fatalf("unexpected output: %q", output)
	}
}

func TestToTimezoneCommandJSON(t *testing.T) {
	output, err := runRoot(t, "to-timezone", "--timezone", "Asia/Tokyo", "--json", "cron(0 18 L 12 7 *)")
	if err != nil {
		t.Fatalf("to-timezone: %v", err)
	}
	var payload conversionOutput
	if err := json.Unmarshal([]byte(output), &payload); err != nil {
		t.Fatalf("decode output: %v (%s)", err, output)
	}
	if payload.Expression != "cron(0 3 1 1 1 *)" {
		t.Fatalf("unexpected expression: %s", payload.Expression)
	}
	if payload.DayShift != "forward" || payload.Timezone != "Asia/Tokyo" {
		t.Fatalf("unexpected metadata: %+v", payload)
	}
}

func TestConversionCommandErrors(t *testing.T) {
	_, err := runRoot(t, "to-utc", "cron(0 0 1)")
	if !errors.Is(err, crontz.ErrMalformedExpression) {
		t.Fatalf("expected malformed error, got %v", err)
	}
	_, err = runRoot(t, "to-utc", "--timezone", "Atlantis/Capital", "cron(0 0 1 * ? *)")
	if !errors.Is(err, crontz.ErrUnknownTimezone) {
		t.Fatalf("expected unknown timezone error, got %v", err)
	}
	if _, err := runRoot(t, "to-utc"); err == nil {
		t.Fatal("expected missing argument error")
	}
}

func TestNextCommand(t *testing.T) {
	output, err := runRoot(t, "next", "--timezone", "Asia/Tokyo", "--after", "2023-04-10T00:00:00Z", "cron(0 18 L * ? *)")
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if strings.TrimSpace(output) != "2023/05/01 03:00" {
		t.Fatalf("unexpected output: %q", output)
	}
}

func TestNextCommandFormatAndJSON(t *testing.T) {
	output, err := runRoot(t, "next", "--format", "%Y-%m-%d %H:%M", "--after", "2024-02-10T00:00:00Z", "--json", "cron(15 6 1 * ? *)")
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	var payload nextOutput
	if err := json.Unmarshal([]byte(output), &payload); err != nil {
		t.Fatalf("decode output: %v (%s)", err, output)
	}
	if payload.Next != "2024-03-01 06:15" || payload.Timezone != "UTC" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestNextCommandRejectsBadAnchor(t *testing.T) {
	_, err := runRoot(t, "next", "--after", "tomorrow", "cron(0 0 1 * ? *)")
	if err == nil || !strings.Contains(err.Error(), "invalid --after") {
		t.Fatalf("expected invalid anchor error, got %v", err)
	}
}

func TestVersionCommand(t *testing.T) {
	output, err := runRoot(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if strings.TrimSpace(output) == "" {
		t.Fatal("expected version output")
	}
}
