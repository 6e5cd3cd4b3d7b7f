// Package reporter logs the adapter status on a cron schedule.
package reporter

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"cheddar-hq/adapter/pkg/config"
	"cheddar-hq/adapter/pkg/status"
)

// SnapshotSource provides the status that is reported.
type SnapshotSource interface {
	Snapshot() (status.Snapshot, error)
}

// Reporter writes one "adapter status" log line per scheduled run.
type Reporter struct {
	source   SnapshotSource
	schedule string
	cron     *cron.Cron
	mu       sync.Mutex
	logger   *slog.Logger
	running  bool
}

// NewReporter creates a reporter for source using cfg.Schedule.
// A nil logger falls back to slog.Default().
func NewReporter(source SnapshotSource, cfg *config.StatusReportConfig, logger *slog.Logger) *Reporter {
	if logger == nil {
		logger = slog.Default()
	}

	return &Reporter{
		source:   source,
		schedule: cfg.Schedule,
		cron:     cron.New(),
		logger:   logger.With("component", "status.reporter"),
	}
}

// Start schedules the report and returns immediately. The reporter stops
// when ctx is cancelled or Stop is called.
//
// Schedules use standard cron syntax or descriptors:
//   - "@every 1m"    - Every minute
//   - "*/5 * * * *"  - Every five minutes
//   - "@hourly"      - At the top of every hour
func (r *Reporter) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return fmt.Errorf("status reporter already running")
	}

	if _, err := cron.ParseStandard(r.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", r.schedule, err)
	}

	if _, err := r.cron.AddFunc(r.schedule, func() {
		_, _ = r.ReportNow(ctx)
	}); err != nil {
		return fmt.Errorf("failed to schedule status report: %w", err)
	}

	r.cron.Start()
	r.running = true

	r.logger.Info("status reporter started", "schedule", r.schedule)

	go func() {
		<-ctx.Done()
		r.Stop()
	}()

	return nil
}

// ReportNow logs the current status and returns it.
func (r *Reporter) ReportNow(ctx context.Context) (status.Snapshot, error) {
	snap, err := r.source.Snapshot()
	if err != nil {
		r.logger.WarnContext(ctx, "adapter status unavailable",
			"error", err,
			"requests_in_progress", snap.RequestsInProgress,
		)
		return snap, err
	}

	r.logger.InfoContext(ctx, "adapter status",
		"lifecycle_status", snap.LifecycleStatus.String(),
		"accepting_requests", snap.AcceptingRequests,
		"requests_in_progress", snap.RequestsInProgress,
	)
	return snap, nil
}

// Stop stops the reporter and waits for a running report to finish.
func (r *Reporter) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		<-r.cron.Stop().Done()
		r.running = false
		r.logger.Info("status reporter stopped")
	}
}

// IsRunning returns true if the reporter is scheduled.
func (r *Reporter) IsRunning() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.running
}

// NextRun returns the next scheduled report time, or nil before Start.
func (r *Reporter) NextRun() *time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := r.cron.Entries()
	if len(entries) == 0 {
		return nil
	}

	next := entries[0].Next
	return &next
}
