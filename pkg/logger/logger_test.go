package logx

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/example/woo-storefront/config"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	line := strings.TrimSpace(buf.String())
	var out map[string]any
	if err := json.Unmarshal([]byte(line), &out); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, line)
	}
	return out
}

func TestModuleLogger_KeyValues(t *testing.T) {
	var buf bytes.Buffer
	Init(LoggerOpts{Environment: config.Production, Output: &buf})

	NewModuleLogger("catalog").Info("fetched", "endpoint", "products", "status", 200)

	got := decodeLine(t, &buf)
	if got["message"] != "fetched" {
		t.Errorf("message = %v, want fetched", got["message"])
	}
	if got["module"] != "catalog" {
		t.Errorf("module = %v, want catalog", got["module"])
	}
	if got["endpoint"] != "products" {
		t.Errorf("endpoint = %v, want products", got["endpoint"])
	}
	if got["status"] != float64(200) {
		t.Errorf("status = %v, want 200", got["status"])
	}
}

func TestModuleLogger_WithError(t *testing.T) {
	var buf bytes.Buffer
	Init(LoggerOpts{Environment: config.Production, Output: &buf})

	NewModuleLogger("cache").WithError(errors.New("boom")).Error("write failed")

	got := decodeLine(t, &buf)
	if got["error"] != "boom" {
		t.Errorf("error = %v, want boom", got["error"])
	}
	if got["level"] != "error" {
		t.Errorf("level = %v, want error", got["level"])
	}
}

func TestModuleLogger_ProductionDropsDebug(t *testing.T) {
	var buf bytes.Buffer
	Init(LoggerOpts{Environment: config.Production, Output: &buf})

	NewModuleLogger("storefront").Debug("noisy")

	if buf.Len() != 0 {
		t.Errorf("debug output in production = %q, want none", buf.String())
	}
}

func TestPairs(t *testing.T) {
	fields := pairs([]any{"a", 1, 2, "b", "dangling"})
	if fields["a"] != 1 {
		t.Errorf("a = %v, want 1", fields["a"])
	}
	if fields["2"] != "b" {
		t.Errorf("non-string key not stringified: %v", fields)
	}
	if fields["!BADKEY"] != "dangling" {
		t.Errorf("!BADKEY = %v, want dangling", fields["!BADKEY"])
	}
}
