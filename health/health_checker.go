// Package health provides health checking functionality for the medlabel API.
package health

import (
	"math"
	"net/http"
	"time"

	"github.com/giygas/medlabel-api/interfaces"
)

// Compile-time check to ensure HealthCheckerImpl implements HealthChecker
var _ interfaces.HealthChecker = (*HealthCheckerImpl)(nil)

// An audit older than this means the scheduler has missed a run
const AuditStaleAfter = 25 * time.Hour

// HealthCheckerImpl implements the interfaces.HealthChecker interface
type HealthCheckerImpl struct {
	catalog interfaces.CatalogStore
	stats   interfaces.StatsStore
	now     func() time.Time
}

// NewHealthChecker creates a new health checker with injected dependencies
func NewHealthChecker(catalog interfaces.CatalogStore, stats interfaces.StatsStore) *HealthCheckerImpl {
	return &HealthCheckerImpl{
		catalog: catalog,
		stats:   stats,
		now:     time.Now,
	}
}

// HealthCheck returns HTTP-specific health data. A degraded service still
// answers requests, so only an empty catalog is reported as unavailable.
func (h *HealthCheckerImpl) HealthCheck() (status string, data map[string]any, httpStatus int) {
	now := h.now()
	entries := h.catalog.Len()
	lastAudit := h.stats.GetLastAudit()
	report := h.stats.GetQualityReport()

	auditAge := now.Sub(lastAudit)

	switch {
	case entries == 0:
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable

	case lastAudit.IsZero() || auditAge > AuditStaleAfter:
		status = "degraded"
		httpStatus = http.StatusOK

	case report.HasIssues():
		status = "degraded"
		httpStatus = http.StatusOK

	default:
		status = "healthy"
		httpStatus = http.StatusOK
	}

	data = map[string]any{
		"catalog_entries": entries,
		"uptime_seconds":  math.Round(now.Sub(h.stats.GetServerStartTime()).Seconds()),
		"next_audit":      h.nextAuditAfter(now).Format(time.RFC3339),
		"usage":           h.stats.Snapshot(),
	}

	if lastAudit.IsZero() {
		data["last_audit"] = nil
	} else {
		data["last_audit"] = lastAudit.Format(time.RFC3339)
		data["audit_age_hours"] = math.Round(auditAge.Hours()*10) / 10
	}

	if report != nil {
		data["audit"] = map[string]any{
			"entries_without_ingredients": len(report.EntriesWithoutIngredients),
			"entries_without_dosages":     len(report.EntriesWithoutDosages),
			"blank_ingredients":           len(report.BlankIngredients),
			"shared_ingredients":          len(report.SharedIngredients),
		}
	}

	return status, data, httpStatus
}

// CalculateNextAudit returns the next scheduled catalog audit time
func (h *HealthCheckerImpl) CalculateNextAudit() time.Time {
	return h.nextAuditAfter(h.now())
}

func (h *HealthCheckerImpl) nextAuditAfter(now time.Time) time.Time {
	// Get today's 6:00 AM and 6:00 PM times
	sixAM := time.Date(now.Year(), now.Month(), now.Day(), 6, 0, 0, 0, now.Location())
	sixPM := time.Date(now.Year(), now.Month(), now.Day(), 18, 0, 0, 0, now.Location())

	if now.Before(sixAM) {
		return sixAM
	}

	if now.Before(sixPM) {
		return sixPM
	}

	return sixAM.AddDate(0, 0, 1)
}
