package logging

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_WarnContextWritesFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := FromZap(zap.New(core))

	logger.WarnContext(context.Background(), "provider source failed", "source", "PL", "error", errors.New("boom"))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["source"] != "PL" {
		t.Fatalf("unexpected source field: %v", fields["source"])
	}
	if fields["error"] != "boom" {
		t.Fatalf("unexpected error field: %v", fields["error"])
	}
}

func TestLogger_OddArgsKeepLastKey(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := FromZap(zap.New(core))

	logger.Info("odd", "dangling")

	fields := logs.All()[0].ContextMap()
	if _, ok := fields["dangling"]; !ok {
		t.Fatalf("expected dangling key to be kept, got %v", fields)
	}
}

func TestSetMirror_ReceivesRecordsAboveLevel(t *testing.T) {
	core, _ := observer.New(zapcore.InfoLevel)
	logger := FromZap(zap.New(core))

	var mu sync.Mutex
	var got []string
	SetMirror(func(_ context.Context, _ Level, msg string, _ ...any) {
		mu.Lock()
		got = append(got, msg)
		mu.Unlock()
	})
	t.Cleanup(func() { SetMirror(nil) })

	logger.Debug("dropped")
	logger.InfoContext(context.Background(), "kept")

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 1 || got[0] != "kept" {
		t.Fatalf("unexpected mirrored records: %v", got)
	}
}

func TestNilLoggerFallsBackToDefault(t *testing.T) {
	var logger *Logger
	logger.Info("no panic")
	if logger.Sync() != nil {
		t.Fatalf("expected nil sync error for nil logger")
	}
}
