// Package scheduler runs the background maintenance jobs for the generics
// API: a periodic catalog quality audit and snapshot persistence, driven by
// gocron against the data container.
package scheduler

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rxbridge/generics-api/catalog"
	"github.com/rxbridge/generics-api/data"
	"github.com/rxbridge/generics-api/interfaces"
	"github.com/rxbridge/generics-api/logging"
	"github.com/rxbridge/generics-api/metrics"
	"github.com/rxbridge/generics-api/validation"
)

// Compile-time check to ensure Scheduler implements the Scheduler interface
var _ interfaces.Scheduler = (*Scheduler)(nil)

// Scheduler handles catalog audits and snapshot persistence
type Scheduler struct {
	container    *data.Container
	snapshotPath string
	scheduler    *gocron.Scheduler
}

// NewScheduler creates a new scheduler instance
func NewScheduler(container *data.Container, snapshotPath string) *Scheduler {
	return &Scheduler{
		container:    container,
		snapshotPath: snapshotPath,
		scheduler:    gocron.NewScheduler(time.Local),
	}
}

// Start registers the hourly audit and half-hourly snapshot jobs and starts
// the scheduler asynchronously.
func (s *Scheduler) Start() error {
	if _, err := s.scheduler.Every(1).Hours().Do(s.runAudit); err != nil {
		logging.Error("Failed to schedule catalog audit", "error", err)
		return fmt.Errorf("failed to schedule catalog audit: %w", err)
	}

	if _, err := s.scheduler.Every(30).Minutes().Do(s.runSnapshot); err != nil {
		logging.Error("Failed to schedule catalog snapshot", "error", err)
		return fmt.Errorf("failed to schedule catalog snapshot: %w", err)
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// runAudit reports data quality for both catalogs and refreshes the record
// count gauges.
func (s *Scheduler) runAudit() {
	// Prevent concurrent audits
	if !s.container.BeginAudit() {
		logging.Info("Audit already in progress, skipping...")
		return
	}
	defer s.container.EndAudit()

	start := time.Now()

	for _, kind := range []catalog.Kind{catalog.Branded, catalog.Generic} {
		store := s.container.ByKind(kind)
		report := validation.ReportQuality(store)

		metrics.CatalogRecords.WithLabelValues(string(kind)).Set(float64(report.Records))

		if report.MissingSalt > 0 || report.MissingPrice > 0 {
			logging.Warn("Catalog has unusable records",
				"catalog", kind,
				"records", report.Records,
				"missing_salt", report.MissingSalt,
				"missing_price", report.MissingPrice,
			)
		}
	}

	logging.Info("Catalog audit completed", "duration", time.Since(start).String())
}

// runSnapshot persists both catalogs to disk so records survive a restart.
func (s *Scheduler) runSnapshot() {
	if s.container.Branded().Len() == 0 && s.container.Generic().Len() == 0 {
		return
	}

	if err := s.container.SaveSnapshot(s.snapshotPath); err != nil {
		logging.Error("Failed to save catalog snapshot", "error", err, "path", s.snapshotPath)
		return
	}

	logging.Info("Catalog snapshot saved",
		"path", s.snapshotPath,
		"branded", s.container.Branded().Len(),
		"generic", s.container.Generic().Len(),
	)
}
