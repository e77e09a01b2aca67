// Package notify provides Notifier implementations for user-facing messages
// raised by the recognition flow.
package notify

import (
	"context"
	"log/slog"
	"sync"

	"github.com/giygas/medlabel-api/catalog/entities"
	"github.com/giygas/medlabel-api/interfaces"
	"github.com/giygas/medlabel-api/metrics"
)

var (
	_ interfaces.Notifier = (*LogNotifier)(nil)
	_ interfaces.Notifier = (*Recorder)(nil)
	_ interfaces.Notifier = Multi(nil)
	_ interfaces.Notifier = Func(nil)
)

// LogNotifier writes notifications to a structured logger and counts them.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a notifier backed by logger
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, note entities.Notification) {
	level := slog.LevelInfo
	switch note.Severity {
	case entities.SeverityWarning:
		level = slog.LevelWarn
	case entities.SeverityError:
		level = slog.LevelError
	}

	n.logger.Log(ctx, level, "User notification",
		"title", note.Title,
		"description", note.Description,
		"severity", string(note.Severity),
	)
	metrics.NotificationsTotal.WithLabelValues(string(note.Severity)).Inc()
}

// Multi fans a notification out to every notifier in order.
type Multi []interfaces.Notifier

func (m Multi) Notify(ctx context.Context, note entities.Notification) {
	for _, n := range m {
		if n != nil {
			n.Notify(ctx, note)
		}
	}
}

// Func adapts a plain function to the Notifier interface.
type Func func(ctx context.Context, note entities.Notification)

func (f Func) Notify(ctx context.Context, note entities.Notification) {
	if f != nil {
		f(ctx, note)
	}
}

// Recorder keeps every notification in memory. Safe for concurrent use.
type Recorder struct {
	mu    sync.Mutex
	notes []entities.Notification
}

func (r *Recorder) Notify(_ context.Context, note entities.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, note)
}

// Notifications returns a copy of what has been recorded so far
func (r *Recorder) Notifications() []entities.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entities.Notification(nil), r.notes...)
}

// Reset forgets all recorded notifications
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = nil
}
