package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func newBufferLogger(t *testing.T, format string) (*slog.Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.LevelDebug)

	var handler slog.Handler
	switch format {
	case "json":
		handler = newJSONHandler(&buf, levelVar)
	default:
		handler = newConsoleHandler(&buf, levelVar)
	}
	return slog.New(handler), &buf
}

func TestConsoleOutputShape(t *testing.T) {
	logger, buf := newBufferLogger(t, "console")

	logger.Info("resolved overlay", slog.String("order_source", "preset"), slog.Int("fields", 4))

	line := strings.TrimSpace(buf.String())
	if !strings.Contains(line, "INFO resolved overlay") {
		t.Errorf("line missing level/message: %q", line)
	}
	if !strings.Contains(line, "order_source=preset") {
		t.Errorf("line missing attribute: %q", line)
	}
	if !strings.Contains(line, "fields=4") {
		t.Errorf("line missing int attribute: %q", line)
	}
}

func TestConsoleComponentPrefix(t *testing.T) {
	logger, buf := newBufferLogger(t, "console")

	logger.With(slog.String("component", "matcher")).Warn("ambiguous match", slog.Int("candidates", 3))

	line := strings.TrimSpace(buf.String())
	if !strings.Contains(line, "WARN matcher: ambiguous match") {
		t.Errorf("component prefix missing: %q", line)
	}
	if strings.Contains(line, "component=") {
		t.Errorf("component should not repeat as attribute: %q", line)
	}
}

func TestConsoleQuotesValuesWithSpaces(t *testing.T) {
	logger, buf := newBufferLogger(t, "console")

	logger.Info("loaded", slog.String("join_key", "Clip Name"))

	if !strings.Contains(buf.String(), `join_key="Clip Name"`) {
		t.Errorf("value not quoted: %q", buf.String())
	}
}

func TestConsoleGroupFlattening(t *testing.T) {
	logger, buf := newBufferLogger(t, "console")

	logger.Info("match", slog.Group("fuzzy", slog.Float64("confidence", 0.82)))

	if !strings.Contains(buf.String(), "fuzzy.confidence=0.82") {
		t.Errorf("group not flattened: %q", buf.String())
	}
}

func TestJSONOutputKeys(t *testing.T) {
	logger, buf := newBufferLogger(t, "json")

	logger.Error("sidecar write failed", slog.String("path", "/tmp/a.xmp"))

	out := buf.String()
	for _, key := range []string{`"ts"`, `"level":"error"`, `"msg":"sidecar write failed"`, `"path"`} {
		if !strings.Contains(out, key) {
			t.Errorf("json output missing %s: %q", key, out)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
