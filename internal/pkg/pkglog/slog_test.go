package pkglog

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"
)

type captureHandler struct {
	attrs map[string]slog.Value
}

func (h *captureHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	if h.attrs == nil {
		h.attrs = make(map[string]slog.Value)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.attrs[a.Key] = a.Value
		return true
	})
	return nil
}

func (h *captureHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return h
}

func (h *captureHandler) WithGroup(_ string) slog.Handler {
	return h
}

func TestContextHandlerAddsServiceAndRunID(t *testing.T) {
	capture := &captureHandler{}
	handler := &contextHandler{Handler: capture}

	ctx := SetRunID(context.Background(), "run-abc")
	rec := slog.NewRecord(time.Now(), slog.LevelInfo, "hello", 0)

	if err := handler.Handle(ctx, rec); err != nil {
		t.Fatalf("handle: %v", err)
	}

	if got := capture.attrs["service"].String(); got != ServiceName {
		t.Fatalf("expected service=%s, got %q", ServiceName, got)
	}
	if got := capture.attrs["run_id"].String(); got != "run-abc" {
		t.Fatalf("expected run_id=run-abc, got %q", got)
	}
}

func TestContextHandlerSkipsMissingRunID(t *testing.T) {
	capture := &captureHandler{}
	handler := &contextHandler{Handler: capture}

	rec := slog.NewRecord(time.Now(), slog.LevelInfo, "hello", 0)
	if err := handler.Handle(context.Background(), rec); err != nil {
		t.Fatalf("handle: %v", err)
	}

	if _, ok := capture.attrs["run_id"]; ok {
		t.Fatalf("did not expect run_id to be set")
	}
}

func TestContextHandlerSurvivesWith(t *testing.T) {
	handler := &contextHandler{Handler: &captureHandler{}}
	if _, ok := handler.WithAttrs([]slog.Attr{slog.String("k", "v")}).(*contextHandler); !ok {
		t.Fatalf("WithAttrs must keep the context handler")
	}
	if _, ok := handler.WithGroup("g").(*contextHandler); !ok {
		t.Fatalf("WithGroup must keep the context handler")
	}
}

func TestInitLoggingText(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := InitLogging(Options{Writer: &buf})
	logger.ErrorContext(SetRunID(context.Background(), "run-1"), "failed to ingest dataset", "dataset", "items")
	logger.Debug("hidden")

	line := buf.String()
	for _, want := range []string{"ts=", "severity=ERROR", `msg="failed to ingest dataset"`, "dataset=items", "run_id=run-1"} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %q in %q", want, line)
		}
	}
	if strings.Contains(line, "hidden") {
		t.Fatalf("debug record must be filtered at info level")
	}
}

func TestInitLoggingJSON(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := InitLogging(Options{Writer: &buf, Format: "json", Level: "debug"})
	logger.Debug("validated schema")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec["severity"] != "DEBUG" || rec["msg"] != "validated schema" {
		t.Fatalf("unexpected record: %v", rec)
	}
	if _, ok := rec["ts"]; !ok {
		t.Fatalf("expected ts key: %v", rec)
	}
}
