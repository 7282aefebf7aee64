package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spti-payroll/attendance-backend-go/internal/domain/attendance"
	"github.com/spti-payroll/attendance-backend-go/internal/service/summary"
)

// SummaryJobs owns the periodic reconciliation of daily summaries. The
// recompute pipeline is idempotent, so re-running over recent days repairs
// any summaries missed while the service was down.
type SummaryJobs struct {
	summarySvc *summary.Service
	loc        *time.Location
	windowDays int
}

func NewSummaryJobs(summarySvc *summary.Service, loc *time.Location, windowDays int) *SummaryJobs {
	return &SummaryJobs{
		summarySvc: summarySvc,
		loc:        loc,
		windowDays: windowDays,
	}
}

func (j *SummaryJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("reconcile_recent_summaries", interval, j.ReconcileRecentSummaries)
}

func (j *SummaryJobs) ReconcileRecentSummaries(ctx context.Context) error {
	now := time.Now().In(j.loc)
	endDate := now.Format(attendance.DateLayout)
	startDate := now.AddDate(0, 0, -j.windowDays).Format(attendance.DateLayout)

	slog.Info("Cron: Reconciling recent summaries", "start_date", startDate, "end_date", endDate)

	days, err := j.summarySvc.RecomputeRange(ctx, startDate, endDate, nil)
	if err != nil {
		return fmt.Errorf("failed to reconcile summaries: %w", err)
	}

	slog.Info("Cron: Reconciled recent summaries", "days", days)
	return nil
}
