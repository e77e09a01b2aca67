package notify

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/giygas/medlabel-api/catalog/entities"
	"github.com/giygas/medlabel-api/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestLogNotifierLevels(t *testing.T) {
	tests := []struct {
		severity entities.Severity
		level    string
	}{
		{entities.SeverityInfo, "level=INFO"},
		{entities.SeverityWarning, "level=WARN"},
		{entities.SeverityError, "level=ERROR"},
	}

	for _, tt := range tests {
		t.Run(string(tt.severity), func(t *testing.T) {
			var out strings.Builder
			n := NewLogNotifier(slog.New(slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug})))

			before := testutil.ToFloat64(metrics.NotificationsTotal.WithLabelValues(string(tt.severity)))
			n.Notify(context.Background(), entities.Notification{Title: "T", Description: "D", Severity: tt.severity})
			after := testutil.ToFloat64(metrics.NotificationsTotal.WithLabelValues(string(tt.severity)))

			if !strings.Contains(out.String(), tt.level) {
				t.Errorf("Expected %s, got %s", tt.level, out.String())
			}
			if !strings.Contains(out.String(), "title=T") {
				t.Errorf("Expected title attribute, got %s", out.String())
			}
			if after-before != 1 {
				t.Errorf("Expected notification counter to increase by 1, got %v", after-before)
			}
		})
	}
}

func TestMultiAndFunc(t *testing.T) {
	rec := &Recorder{}
	var called int
	m := Multi{rec, nil, Func(func(ctx context.Context, note entities.Notification) { called++ })}

	m.Notify(context.Background(), entities.Notification{Title: "A"})
	m.Notify(context.Background(), entities.Notification{Title: "B"})

	if called != 2 {
		t.Errorf("Expected func notifier to be called twice, got %d", called)
	}
	notes := rec.Notifications()
	if len(notes) != 2 || notes[0].Title != "A" || notes[1].Title != "B" {
		t.Errorf("Unexpected recorded notifications: %+v", notes)
	}

	var nilFunc Func
	nilFunc.Notify(context.Background(), entities.Notification{}) // must not panic
}

func TestRecorderConcurrent(t *testing.T) {
	rec := &Recorder{}
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec.Notify(context.Background(), entities.Notification{Title: "x"})
		}()
	}
	wg.Wait()

	if got := len(rec.Notifications()); got != 20 {
		t.Errorf("Expected 20 notifications, got %d", got)
	}
	rec.Reset()
	if got := len(rec.Notifications()); got != 0 {
		t.Errorf("Expected empty recorder after Reset, got %d", got)
	}
}
