// Package scheduler runs the recurring jobs of the medlabel API: the catalog
// quality audit at 06:00 and 18:00, an hourly audit freshness check, and any
// maintenance tasks registered by other components.
package scheduler

import (
	"fmt"
	"time"

	"github.com/giygas/medlabel-api/interfaces"
	"github.com/giygas/medlabel-api/logging"
	"github.com/giygas/medlabel-api/metrics"
	"github.com/giygas/medlabel-api/validation"
	"github.com/go-co-op/gocron"
)

// Compile-time check to ensure Scheduler implements Scheduler interface
var _ interfaces.Scheduler = (*Scheduler)(nil)

// AuditTimes are the daily catalog audit slots, in gocron At() syntax
const AuditTimes = "06:00;18:00"

// StaleAfter is how old the last audit may get before a warning is logged
const StaleAfter = 25 * time.Hour

type maintenanceJob struct {
	name  string
	every time.Duration
	run   func()
}

// Scheduler handles catalog audits and maintenance using dependency injection
type Scheduler struct {
	catalog     interfaces.CatalogStore
	stats       interfaces.StatsStore
	scheduler   *gocron.Scheduler
	maintenance []maintenanceJob
	now         func() time.Time
}

// NewScheduler creates a new scheduler instance with injected dependencies
func NewScheduler(catalog interfaces.CatalogStore, stats interfaces.StatsStore) *Scheduler {
	return &Scheduler{
		catalog:   catalog,
		stats:     stats,
		scheduler: gocron.NewScheduler(time.Local),
		now:       time.Now,
	}
}

// AddMaintenance registers fn to run every interval once the scheduler starts.
// It must be called before Start.
func (s *Scheduler) AddMaintenance(name string, every time.Duration, fn func()) {
	s.maintenance = append(s.maintenance, maintenanceJob{name: name, every: every, run: fn})
}

// Start runs an initial audit, then schedules the recurring jobs
func (s *Scheduler) Start() error {
	s.RunAudit()

	if _, err := s.scheduler.Every(1).Days().At(AuditTimes).Do(s.RunAudit); err != nil {
		logging.Error("Failed to schedule catalog audit", "error", err)
		return fmt.Errorf("failed to schedule catalog audit: %w", err)
	}

	if _, err := s.scheduler.Every(1).Hour().WaitForSchedule().Do(s.checkAuditFreshness); err != nil {
		return fmt.Errorf("failed to schedule audit freshness check: %w", err)
	}

	for _, job := range s.maintenance {
		if _, err := s.scheduler.Every(job.every).WaitForSchedule().Do(job.run); err != nil {
			return fmt.Errorf("failed to schedule %s: %w", job.name, err)
		}
		logging.Debug("Maintenance job scheduled", "job", job.name, "interval", job.every.String())
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// RunAudit audits the catalog, publishes the result as metrics and stores it
// in the stats store
func (s *Scheduler) RunAudit() *interfaces.CatalogQualityReport {
	start := time.Now()
	entries := s.catalog.Entries()
	report := validation.ReportCatalogQuality(entries)

	if len(report.EntriesWithoutIngredients) > 0 {
		logging.Warn("Catalog entries without required ingredients",
			"count", len(report.EntriesWithoutIngredients),
			"names", report.EntriesWithoutIngredients,
		)
	}

	if len(report.BlankIngredients) > 0 {
		logging.Warn("Catalog entries with blank ingredient names",
			"count", len(report.BlankIngredients),
			"names", report.BlankIngredients,
		)
	}

	if len(report.EntriesWithoutDosages) > 0 {
		logging.Info("Catalog entries without common dosages",
			"count", len(report.EntriesWithoutDosages),
			"names", report.EntriesWithoutDosages,
		)
	}

	metrics.CatalogEntries.Set(float64(len(entries)))
	metrics.CatalogAuditIssues.WithLabelValues("without_ingredients").Set(float64(len(report.EntriesWithoutIngredients)))
	metrics.CatalogAuditIssues.WithLabelValues("without_dosages").Set(float64(len(report.EntriesWithoutDosages)))
	metrics.CatalogAuditIssues.WithLabelValues("blank_ingredients").Set(float64(len(report.BlankIngredients)))
	metrics.CatalogAuditIssues.WithLabelValues("shared_ingredients").Set(float64(len(report.SharedIngredients)))

	s.stats.SetQualityReport(report)

	logging.Info("Catalog audit completed",
		"duration", time.Since(start).String(),
		"entries", len(entries),
		"has_issues", report.HasIssues(),
	)

	return report
}

// checkAuditFreshness warns when the audit job has fallen behind
func (s *Scheduler) checkAuditFreshness() bool {
	lastAudit := s.stats.GetLastAudit()
	if s.now().Sub(lastAudit) > StaleAfter {
		logging.Warn("Catalog hasn't been audited in over 25 hours", "last_audit", lastAudit)
		return false
	}
	return true
}
