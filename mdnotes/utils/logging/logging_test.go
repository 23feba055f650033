package logging

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitLoggerCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	InitLogger(dir)
	defer InitNop()

	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("expected log dir to exist: %v", err)
	}
	AppLogger.Info("hello")
	Sync()
	if _, err := os.Stat(filepath.Join(dir, "app.log")); err != nil {
		t.Errorf("expected app.log to be written: %v", err)
	}
}

func TestRequestMiddlewareLogsStatus(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	RequestLogger = zap.New(core)
	defer InitNop()

	h := RequestMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/x", nil))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected one log entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["status"]; got != int64(http.StatusTeapot) {
		t.Errorf("expected status 418 in log, got %v", got)
	}
}

func TestLogDurationWritesTimer(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	TimerLogger = zap.New(core)
	defer InitNop()

	LogDuration(context.Background(), "work")()
	if logs.Len() != 1 {
		t.Fatalf("expected one timer entry, got %d", logs.Len())
	}
	if got := logs.All()[0].ContextMap()["func"]; got != "work" {
		t.Errorf("expected func=work, got %v", got)
	}
}
