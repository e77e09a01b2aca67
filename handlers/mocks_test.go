package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/giygas/medlabel-api/catalog"
	"github.com/giygas/medlabel-api/catalog/entities"
	"github.com/giygas/medlabel-api/extraction"
	"github.com/giygas/medlabel-api/validation"
)

// pngPayload sniffs as image/png
var pngPayload = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01")

// MockExtractor returns a fixed record or error, or blocks until ctx ends
type MockExtractor struct {
	record *entities.ExtractedRecord
	err    error
	block  bool
	calls  int
	last   []byte
}

func (m *MockExtractor) Extract(ctx context.Context, image []byte) (*entities.ExtractedRecord, error) {
	m.calls++
	m.last = image
	if m.block {
		<-ctx.Done()
		return nil, fmt.Errorf("%w: %w", extraction.ErrExtractionFailed, ctx.Err())
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.record, nil
}

// MockHealthChecker implements interfaces.HealthChecker for testing
type MockHealthChecker struct {
	status     string
	details    map[string]any
	httpStatus int
}

func (m *MockHealthChecker) HealthCheck() (string, map[string]any, int) {
	return m.status, m.details, m.httpStatus
}

func (m *MockHealthChecker) CalculateNextAudit() time.Time {
	return time.Now().Add(6 * time.Hour)
}

var handlerNow = time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

func newTestHandler(extractor *MockExtractor, opts ...HandlerOption) *HTTPHandlerImpl {
	cat := catalog.Default()
	return NewHTTPHandler(
		cat,
		extractor,
		validation.NewMedicineValidator(cat, validation.WithClock(func() time.Time { return handlerNow })),
		validation.NewInputValidator(),
		&MockHealthChecker{status: "healthy", details: map[string]any{"catalog_entries": 8}, httpStatus: http.StatusOK},
		opts...,
	)
}
