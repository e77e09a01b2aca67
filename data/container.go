// Package data provides thread-safe runtime state for the medlabel API: usage
// counters for extractions and verdicts, and the latest catalog audit report.
package data

import (
	"sync/atomic"
	"time"

	"github.com/giygas/medlabel-api/catalog/entities"
	"github.com/giygas/medlabel-api/interfaces"
	"github.com/giygas/medlabel-api/logging"
)

// Compile-time check to ensure StatsContainer implements StatsStore
var _ interfaces.StatsStore = (*StatsContainer)(nil)

// StatsContainer holds counters and the audit report with atomic access
type StatsContainer struct {
	extractionsSucceeded atomic.Int64
	extractionsFailed    atomic.Int64
	verdictsValid        atomic.Int64
	verdictsInvalid      atomic.Int64
	verdictsUnknown      atomic.Int64
	qualityReport        atomic.Pointer[interfaces.CatalogQualityReport]
	lastAudit            atomic.Value // time.Time
	serverStartTime      atomic.Value // time.Time
}

// NewStatsContainer creates a container with zero counters
func NewStatsContainer() *StatsContainer {
	sc := &StatsContainer{}
	sc.lastAudit.Store(time.Time{})
	sc.serverStartTime.Store(time.Now())
	return sc
}

// RecordExtraction counts one extraction attempt
func (sc *StatsContainer) RecordExtraction(success bool) {
	if success {
		sc.extractionsSucceeded.Add(1)
		return
	}
	sc.extractionsFailed.Add(1)
}

// RecordVerdict counts one verdict by outcome. Unknown medicines pass
// validation, so they count as valid as well as unknown.
func (sc *StatsContainer) RecordVerdict(outcome entities.VerdictOutcome) {
	switch outcome {
	case entities.OutcomeValid:
		sc.verdictsValid.Add(1)
	case entities.OutcomeUnknownMedicine:
		sc.verdictsValid.Add(1)
		sc.verdictsUnknown.Add(1)
	default:
		sc.verdictsInvalid.Add(1)
	}
}

// SetQualityReport stores the latest audit and stamps the audit time
func (sc *StatsContainer) SetQualityReport(report *interfaces.CatalogQualityReport) {
	sc.qualityReport.Store(report)

	stamp := time.Now()
	if report != nil && !report.GeneratedAt.IsZero() {
		stamp = report.GeneratedAt
	}
	sc.lastAudit.Store(stamp)
}

// GetQualityReport returns the latest audit, or nil before the first one
func (sc *StatsContainer) GetQualityReport() *interfaces.CatalogQualityReport {
	return sc.qualityReport.Load()
}

// GetLastAudit returns when the catalog was last audited
func (sc *StatsContainer) GetLastAudit() time.Time {
	if v := sc.lastAudit.Load(); v != nil {
		if t, ok := v.(time.Time); ok {
			return t
		}
	}

	logging.Warn("Could not get the last audit value")
	return time.Time{}
}

// SetServerStartTime overrides the server start time
func (sc *StatsContainer) SetServerStartTime(startTime time.Time) {
	sc.serverStartTime.Store(startTime)
}

// GetServerStartTime returns the server start time
func (sc *StatsContainer) GetServerStartTime() time.Time {
	if v := sc.serverStartTime.Load(); v != nil {
		if t, ok := v.(time.Time); ok {
			return t
		}
	}

	logging.Warn("Could not get the server start time value")
	return time.Time{}
}

// Snapshot copies the counters
func (sc *StatsContainer) Snapshot() interfaces.UsageSnapshot {
	return interfaces.UsageSnapshot{
		ExtractionsSucceeded: sc.extractionsSucceeded.Load(),
		ExtractionsFailed:    sc.extractionsFailed.Load(),
		VerdictsValid:        sc.verdictsValid.Load(),
		VerdictsInvalid:      sc.verdictsInvalid.Load(),
		VerdictsUnknown:      sc.verdictsUnknown.Load(),
	}
}
