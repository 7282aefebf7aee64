package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spti-payroll/attendance-backend-go/internal/domain/attendance"
	"github.com/spti-payroll/attendance-backend-go/internal/domain/employee"
	"github.com/spti-payroll/attendance-backend-go/internal/pkg/metrics"
	"github.com/spti-payroll/attendance-backend-go/internal/service/summary"
)

// Service accepts punch batches collected from the biometric device and
// lands them in storage, then hands the affected employee-days to the
// aggregation engine. Device connectivity, retries, and scheduling live in
// the external collector; this service only sees already-collected batches.
type Service struct {
	employeeRepo employee.EmployeeRepository
	logRepo      attendance.LogRepository
	summaryRepo  attendance.SummaryRepository
	summarySvc   *summary.Service
	loc          *time.Location
}

func NewIngestService(
	employeeRepo employee.EmployeeRepository,
	logRepo attendance.LogRepository,
	summaryRepo attendance.SummaryRepository,
	summarySvc *summary.Service,
	loc *time.Location,
) *Service {
	return &Service{
		employeeRepo: employeeRepo,
		logRepo:      logRepo,
		summaryRepo:  summaryRepo,
		summarySvc:   summarySvc,
		loc:          loc,
	}
}

// ProcessBatch ingests one batch of raw punches. Punches for unknown
// biometric IDs are dropped silently (counted, not fatal); duplicates
// against storage or within the batch are skipped. Affected days are the
// dates of the inserted punches plus any (employee, date) in the batch's
// range that has no summary yet — the backfill safety net for days whose
// punches landed earlier but were never aggregated.
func (s *Service) ProcessBatch(ctx context.Context, req attendance.IngestBatchRequest) (attendance.IngestReport, error) {
	if err := req.Validate(); err != nil {
		return attendance.IngestReport{}, err
	}

	report := attendance.IngestReport{Received: len(req.Records)}

	roster, err := s.employeeRepo.List(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to load employee roster: %w", err)
	}
	byBiometricID := make(map[int64]employee.Employee, len(roster))
	for _, emp := range roster {
		byBiometricID[emp.BiometricID] = emp
	}

	var (
		candidates    []attendance.AttendanceLog
		allRecordDays = make(map[attendance.DayKey]struct{})
		minTS, maxTS  time.Time
	)
	for _, rec := range req.Records {
		emp, ok := byBiometricID[rec.BiometricID]
		if !ok {
			report.UnknownEmployee++
			metrics.IncPunchSkipped(metrics.ReasonUnknownEmployee)
			continue
		}

		ts := rec.Timestamp.In(s.loc)
		candidates = append(candidates, attendance.AttendanceLog{
			EmployeeID:       emp.ID,
			Timestamp:        ts,
			StatusCode:       rec.StatusCode,
			VerificationMode: rec.VerificationMode,
		})
		allRecordDays[attendance.NewDayKey(emp.ID, ts, s.loc)] = struct{}{}

		if minTS.IsZero() || ts.Before(minTS) {
			minTS = ts
		}
		if maxTS.IsZero() || ts.After(maxTS) {
			maxTS = ts
		}
	}

	if len(candidates) == 0 {
		slog.Info("Punch batch held no usable records",
			"received", report.Received,
			"unknown_employee", report.UnknownEmployee)
		return report, nil
	}

	slog.Info("Processing punch batch", "from", minTS, "to", maxTS, "records", len(candidates))

	existing, err := s.logRepo.ExistingSignatures(ctx, minTS, maxTS)
	if err != nil {
		return report, fmt.Errorf("failed to load existing log signatures: %w", err)
	}

	var newLogs []attendance.AttendanceLog
	batchSignatures := make(map[attendance.LogSignature]struct{})
	for _, log := range candidates {
		sig := log.Signature()
		if _, dup := existing[sig]; dup {
			report.Duplicates++
			metrics.IncPunchSkipped(metrics.ReasonDuplicate)
			continue
		}
		if _, dup := batchSignatures[sig]; dup {
			report.Duplicates++
			metrics.IncPunchSkipped(metrics.ReasonDuplicate)
			continue
		}
		batchSignatures[sig] = struct{}{}
		newLogs = append(newLogs, log)
	}

	affectedDays := make(map[attendance.DayKey]struct{})
	if len(newLogs) > 0 {
		inserted, err := s.logRepo.BulkCreate(ctx, newLogs)
		if err != nil {
			return report, fmt.Errorf("failed to insert punch logs: %w", err)
		}
		report.Inserted = int(inserted)
		metrics.AddPunchesIngested(report.Inserted)

		for _, log := range newLogs {
			affectedDays[attendance.NewDayKey(log.EmployeeID, log.Timestamp, s.loc)] = struct{}{}
		}
	} else {
		slog.Info("All punches in batch already stored")
	}

	// Backfill safety net: days present in the payload but missing from the
	// summary table get recomputed even when no new punch was inserted.
	startDate := minTS.Format(attendance.DateLayout)
	endDate := maxTS.Format(attendance.DateLayout)
	summarized, err := s.summaryRepo.ExistingDays(ctx, startDate, endDate)
	if err != nil {
		return report, fmt.Errorf("failed to load existing summary days: %w", err)
	}
	for key := range allRecordDays {
		if _, ok := summarized[key]; !ok {
			affectedDays[key] = struct{}{}
		}
	}

	if len(affectedDays) == 0 {
		return report, nil
	}

	keys := make([]attendance.DayKey, 0, len(affectedDays))
	for key := range affectedDays {
		keys = append(keys, key)
	}
	report.DaysRecomputed = len(keys)

	if err := s.summarySvc.Recompute(ctx, keys); err != nil {
		return report, err
	}

	slog.Info("Punch batch ingested",
		"inserted", report.Inserted,
		"duplicates", report.Duplicates,
		"unknown_employee", report.UnknownEmployee,
		"days_recomputed", report.DaysRecomputed)
	return report, nil
}

// SyncRoster mirrors the device's user table into the employee roster,
// creating or refreshing entries keyed by the device-side user ID.
func (s *Service) SyncRoster(ctx context.Context, users []employee.DeviceUser) (int, error) {
	synced := 0
	for _, u := range users {
		if u.BiometricID <= 0 {
			continue
		}
		_, err := s.employeeRepo.UpsertByBiometricID(ctx, employee.Employee{
			Name:         u.Name,
			EmployeeCode: u.EmployeeCode,
			BiometricID:  u.BiometricID,
		})
		if err != nil {
			return synced, fmt.Errorf("failed to sync device user %d: %w", u.BiometricID, err)
		}
		synced++
	}
	return synced, nil
}
