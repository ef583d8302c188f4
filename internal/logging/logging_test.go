package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/leengari/shardmerge/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"DEBUG": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSetupLoggerConsoleOnly(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn := SetupLogger(config.LogConfig{Level: "warn"}, &buf)
	defer closeFn()

	logger.Info("hidden")
	logger.Warn("shown", "shard", "ds_0")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("Info record should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "shard=ds_0") {
		t.Errorf("Expected warn record with attrs, got: %s", out)
	}
}

func TestMultiHandlerFanOut(t *testing.T) {
	var a, b bytes.Buffer
	multi := &multiHandler{handlers: []slog.Handler{
		slog.NewTextHandler(&a, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&b, &slog.HandlerOptions{Level: slog.LevelError}),
	}}

	if !multi.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("Expected debug to be enabled by the first handler")
	}

	logger := slog.New(multi).With("merge_id", "m1")
	logger.Debug("row dropped")

	if !strings.Contains(a.String(), "merge_id=m1") {
		t.Errorf("Expected first handler to receive record, got: %q", a.String())
	}
	if b.Len() != 0 {
		t.Errorf("Expected second handler to skip debug record, got: %q", b.String())
	}
}
