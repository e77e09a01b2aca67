// Package interfaces defines core abstractions for the medlabel API
// to improve testability, maintainability, and separation of concerns.
package interfaces

import (
	"context"
	"net/http"
	"time"

	"github.com/giygas/medlabel-api/catalog/entities"
)

// CatalogQualityReport provides a summary of catalog quality issues
type CatalogQualityReport struct {
	EntriesWithoutIngredients []string
	EntriesWithoutDosages     []string
	BlankIngredients          []string // Names of entries holding an empty ingredient string
	SharedIngredients         map[string][]string
	GeneratedAt               time.Time
}

// HasIssues reports whether the audit found anything worth surfacing.
func (r *CatalogQualityReport) HasIssues() bool {
	if r == nil {
		return false
	}
	return len(r.EntriesWithoutIngredients) > 0 || len(r.EntriesWithoutDosages) > 0 || len(r.BlankIngredients) > 0
}

// CatalogStore defines the contract for the read-only reference catalog.
// Implementations must be safe for unlimited concurrent readers.
type CatalogStore interface {
	// Lookup finds an entry by name under case-insensitive comparison
	Lookup(name string) (entities.CatalogEntry, bool)
	// LookupExact finds an entry by its exact canonical name
	LookupExact(name string) (entities.CatalogEntry, bool)
	// Entries returns a copy of every entry in catalog order
	Entries() []entities.CatalogEntry
	Names() []string
	Len() int
}

// Extractor derives a candidate medicine record from an encoded label image.
// A nil record is always returned together with a non-nil error.
type Extractor interface {
	Extract(ctx context.Context, image []byte) (*entities.ExtractedRecord, error)
}

// MedicineValidator cross-checks a candidate record against the catalog.
type MedicineValidator interface {
	Validate(record entities.ExtractedRecord) entities.ValidationVerdict
}

// Notifier delivers user-facing notifications. The core only invokes it.
type Notifier interface {
	Notify(ctx context.Context, n entities.Notification)
}

// StatsStore records usage counters and the latest catalog audit.
type StatsStore interface {
	RecordExtraction(success bool)
	RecordVerdict(outcome entities.VerdictOutcome)
	SetQualityReport(report *CatalogQualityReport)
	GetQualityReport() *CatalogQualityReport
	GetLastAudit() time.Time
	GetServerStartTime() time.Time
	Snapshot() UsageSnapshot
}

// UsageSnapshot is a point-in-time copy of the usage counters.
type UsageSnapshot struct {
	ExtractionsSucceeded int64 `json:"extractions_succeeded"`
	ExtractionsFailed    int64 `json:"extractions_failed"`
	VerdictsValid        int64 `json:"verdicts_valid"`
	VerdictsInvalid      int64 `json:"verdicts_invalid"`
	VerdictsUnknown      int64 `json:"verdicts_unknown_medicine"`
}

// Scheduler defines the contract for job scheduling and health monitoring.
type Scheduler interface {
	// Lifecycle management
	Start() error
	Stop()
}

// HTTPHandler defines the contract for HTTP request handlers.
type HTTPHandler interface {
	ExtractLabel(w http.ResponseWriter, r *http.Request)
	ValidateRecord(w http.ResponseWriter, r *http.Request)
	ScanLabel(w http.ResponseWriter, r *http.Request)
	ServeCatalog(w http.ResponseWriter, r *http.Request)
	FindCatalogEntry(w http.ResponseWriter, r *http.Request)
	// This will stay in all versions
	HealthCheck(w http.ResponseWriter, r *http.Request)
}

// HealthChecker defines the contract for health check functionality.
type HealthChecker interface {
	// HealthCheck returns current system health status
	HealthCheck() (status string, details map[string]any, httpStatus int)

	// CalculateNextAudit returns the next scheduled catalog audit time
	CalculateNextAudit() time.Time
}

// InputValidator validates untrusted HTTP and CLI input.
type InputValidator interface {
	// ValidateInput validates free-text search strings
	ValidateInput(input string) error

	// ValidateRecord checks shape and size limits of a submitted record
	ValidateRecord(record *entities.ExtractedRecord) error

	// ValidateImage checks that the payload looks like an encoded image
	ValidateImage(payload []byte) (contentType string, err error)
}
