// Package extraction turns label images into candidate medicine records.
//
// The Simulator stands in for a real recognition service: it waits for a fixed
// latency, then samples the reference catalog. Anything satisfying
// interfaces.Extractor can replace it.
package extraction

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/giygas/medlabel-api/catalog/entities"
	"github.com/giygas/medlabel-api/interfaces"
	"github.com/giygas/medlabel-api/logging"
	"github.com/giygas/medlabel-api/metrics"
)

// Compile-time check to ensure Simulator implements Extractor
var _ interfaces.Extractor = (*Simulator)(nil)

const (
	DefaultLatency = 2 * time.Second

	// Simulated expiry dates fall between these many months from today, inclusive.
	MinExpiryMonths = 6
	MaxExpiryMonths = 23
)

var (
	ErrExtractionFailed = errors.New("extraction failed")
	ErrEmptyPayload     = errors.New("image payload is empty")
	ErrEmptyCatalog     = errors.New("catalog has no entries")
)

// FailureNotice is what the user sees when extraction fails.
var FailureNotice = entities.Notification{
	Title:       "OCR Processing Failed",
	Description: "Could not extract medicine information. Please enter the details manually.",
	Severity:    entities.SeverityError,
}

// Simulator produces records by sampling the catalog after a simulated delay.
type Simulator struct {
	catalog  interfaces.CatalogStore
	notifier interfaces.Notifier
	stats    interfaces.StatsStore
	latency  time.Duration
	now      func() time.Time

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

// Option configures a Simulator
type Option func(*Simulator)

// WithLatency sets the simulated recognition time. Zero disables the wait.
func WithLatency(d time.Duration) Option {
	return func(s *Simulator) { s.latency = d }
}

// WithClock sets the source of "today" for expiry dates
func WithClock(now func() time.Time) Option {
	return func(s *Simulator) { s.now = now }
}

// WithRand sets the random source, mainly for reproducible tests
func WithRand(rng *rand.Rand) Option {
	return func(s *Simulator) { s.rng = rng }
}

// WithStats records each extraction outcome in stats
func WithStats(stats interfaces.StatsStore) Option {
	return func(s *Simulator) { s.stats = stats }
}

// NewSimulator creates a simulator over catalog. Failures are reported to notifier.
func NewSimulator(catalog interfaces.CatalogStore, notifier interfaces.Notifier, opts ...Option) *Simulator {
	s := &Simulator{
		catalog:  catalog,
		notifier: notifier,
		latency:  DefaultLatency,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return s
}

// Extract waits for the simulated latency, then returns a record built from a
// uniformly chosen catalog entry. On failure the record is nil, the error wraps
// ErrExtractionFailed and FailureNotice is sent to the notifier.
func (s *Simulator) Extract(ctx context.Context, image []byte) (record *entities.ExtractedRecord, err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			record = nil
			err = fmt.Errorf("%w: recovered from panic: %v", ErrExtractionFailed, r)
		}
		s.finish(ctx, start, record, err)
	}()

	if len(image) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrExtractionFailed, ErrEmptyPayload)
	}

	if err := s.wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtractionFailed, err)
	}

	entries := s.catalog.Entries()
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrExtractionFailed, ErrEmptyCatalog)
	}

	index, months := s.draw(len(entries))
	entry := entries[index]

	return &entities.ExtractedRecord{
		MedicineName:      entry.Name,
		ExpiryDate:        AddMonths(s.now(), months).Format(entities.ExpiryDateLayout),
		ActiveIngredients: slices.Clone(entry.RequiredIngredients),
	}, nil
}

// wait blocks for the configured latency or until ctx is done
func (s *Simulator) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(s.latency)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// draw picks an entry index in [0, n) and an expiry offset in months
func (s *Simulator) draw(n int) (index, months int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index = s.rng.IntN(n)
	months = MinExpiryMonths + s.rng.IntN(MaxExpiryMonths-MinExpiryMonths+1)
	return index, months
}

func (s *Simulator) finish(ctx context.Context, start time.Time, record *entities.ExtractedRecord, err error) {
	metrics.ExtractionDuration.Observe(time.Since(start).Seconds())

	success := err == nil && record != nil
	if s.stats != nil {
		s.stats.RecordExtraction(success)
	}

	if success {
		metrics.ExtractionsTotal.WithLabelValues("success").Inc()
		logging.Debug("Label extracted", "medicine", record.MedicineName, "expiry_date", record.ExpiryDate)
		return
	}

	metrics.ExtractionsTotal.WithLabelValues("failure").Inc()
	logging.Warn("Label extraction failed", "error", err)

	if s.notifier != nil {
		s.notifier.Notify(context.WithoutCancel(ctx), FailureNotice)
	}
}

// AddMonths adds n calendar months to t. When the target month is shorter the
// day is clamped to its last day, so Jan 31 + 1 month is Feb 28 (or 29).
func AddMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1).Day()
	if day > last {
		day = last
	}
	hour, minute, sec := t.Clock()
	return time.Date(first.Year(), first.Month(), day, hour, minute, sec, t.Nanosecond(), t.Location())
}
