package logging

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestPackageHelpersWithoutInit(t *testing.T) {
	saved := DefaultLoggingService
	DefaultLoggingService = nil
	defer func() { DefaultLoggingService = saved }()

	// Must not panic
	Info("info")
	Warn("warn")
	Error("error")
	Debug("debug")

	if Logger() == nil {
		t.Error("Logger() should fall back to a console logger")
	}
	if err := Close(); err != nil {
		t.Errorf("Close without init should be a no-op, got %v", err)
	}
}

func TestInitLoggerConsoleOnly(t *testing.T) {
	InitLogger("")
	defer func() { _ = Close() }()

	if DefaultLoggingService == nil || DefaultLoggingService.Logger == nil {
		t.Fatal("InitLogger should set the default service")
	}
	if DefaultLoggingService.closer != nil {
		t.Error("Console-only logger should have no closer")
	}
}

func TestInitLoggerWithFile(t *testing.T) {
	dir := t.TempDir()
	InitLoggerWithOptions(Options{Dir: dir, Level: "debug", RetentionWeeks: 1, MaxFileSize: 1024 * 1024})

	Info("written to file", "key", "value")
	if err := Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	DefaultLoggingService = nil

	content, err := os.ReadFile(filepath.Join(dir, logFilePrefix+weekKey(time.Now())+".log"))
	if err != nil {
		t.Fatalf("Expected log file: %v", err)
	}
	if !strings.Contains(string(content), `"msg":"written to file"`) {
		t.Errorf("Expected JSON record in file, got %s", content)
	}
}

func TestRotatingLoggerSizeRollover(t *testing.T) {
	dir := t.TempDir()
	rl, err := NewRotatingLogger(dir, 4, 64)
	if err != nil {
		t.Fatalf("NewRotatingLogger failed: %v", err)
	}
	defer rl.Close()

	line := []byte(strings.Repeat("x", 40) + "\n")
	for i := 0; i < 3; i++ {
		if _, err := rl.Write(line); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
	}

	week := weekKey(time.Now())
	for _, name := range []string{
		logFilePrefix + week + ".log",
		numberedFileName(week, 1),
		numberedFileName(week, 2),
	} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("Expected %s to exist: %v", name, err)
		}
	}
}

func TestRotatingLoggerWeekRollover(t *testing.T) {
	dir := t.TempDir()
	rl, err := NewRotatingLogger(dir, 4, 0)
	if err != nil {
		t.Fatalf("NewRotatingLogger failed: %v", err)
	}
	defer rl.Close()

	next := time.Now().AddDate(0, 0, 7)
	rl.now = func() time.Time { return next }

	if _, err := rl.Write([]byte("next week\n")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, logFilePrefix+weekKey(next)+".log")); err != nil {
		t.Errorf("Expected next week's file: %v", err)
	}
}

func TestCleanupOldLogs(t *testing.T) {
	dir := t.TempDir()
	rl, err := NewRotatingLogger(dir, 1, 0)
	if err != nil {
		t.Fatalf("NewRotatingLogger failed: %v", err)
	}
	defer rl.Close()

	old := filepath.Join(dir, logFilePrefix+"2001-W01.log")
	unrelated := filepath.Join(dir, "other.log")
	for _, p := range []string{old, unrelated} {
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
		past := time.Now().Add(-30 * 24 * time.Hour)
		if err := os.Chtimes(p, past, past); err != nil {
			t.Fatal(err)
		}
	}

	deleted, err := rl.cleanupOldLogs()
	if err != nil {
		t.Fatalf("cleanupOldLogs failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("Expected 1 deleted file, got %d", deleted)
	}
	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Error("Old log file should be removed")
	}
	if _, err := os.Stat(unrelated); err != nil {
		t.Error("Unrelated files must be kept")
	}
}

func TestLoggingMiddleware(t *testing.T) {
	var out strings.Builder
	logger := slog.New(slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelInfo}))

	handler := LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/boom" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("ok"))
	}))

	tests := []struct {
		name    string
		path    string
		want    []string
		silence bool
	}{
		{"health is not logged", "/health", nil, true},
		{"metrics is not logged", "/metrics", nil, true},
		{"regular request", "/v1/catalog?x=1", []string{"request_id=req-1", "status_code=201", "bytes_written=2", `query="x=1"`, "level=INFO"}, false},
		{"server error logged as error", "/boom", []string{"level=ERROR", "status_code=500"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out.Reset()
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-1"))
			handler.ServeHTTP(httptest.NewRecorder(), req)

			logs := out.String()
			if tt.silence {
				if logs != "" {
					t.Errorf("Expected no logs, got %s", logs)
				}
				return
			}
			for _, want := range tt.want {
				if !strings.Contains(logs, want) {
					t.Errorf("Expected %q in logs, got %s", want, logs)
				}
			}
		})
	}
}

func TestLoggingMiddlewareUnknownRequestID(t *testing.T) {
	var out strings.Builder
	logger := slog.New(slog.NewTextHandler(&out, nil))

	handler := LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/catalog", nil))

	if !strings.Contains(out.String(), "request_id=unknown") {
		t.Errorf("Expected request_id=unknown, got %s", out.String())
	}
}
