package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/spti-payroll/attendance-backend-go/internal/domain/attendance"
	"github.com/spti-payroll/attendance-backend-go/internal/domain/employee"
	"github.com/spti-payroll/attendance-backend-go/internal/service/summary"
)

// Service manages raw punch logs. Every mutation collects the employee-days
// it touched and funnels them through the aggregation engine, so summaries
// never drift from the logs they are built from.
type Service struct {
	logRepo      attendance.LogRepository
	summaryRepo  attendance.SummaryRepository
	employeeRepo employee.EmployeeRepository
	summarySvc   *summary.Service
	loc          *time.Location
}

func NewAttendanceService(
	logRepo attendance.LogRepository,
	summaryRepo attendance.SummaryRepository,
	employeeRepo employee.EmployeeRepository,
	summarySvc *summary.Service,
	loc *time.Location,
) *Service {
	return &Service{
		logRepo:      logRepo,
		summaryRepo:  summaryRepo,
		employeeRepo: employeeRepo,
		summarySvc:   summarySvc,
		loc:          loc,
	}
}

func (s *Service) ListLogs(ctx context.Context, filter attendance.LogFilter) (attendance.ListLogsResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 200 {
		filter.Limit = 50
	}

	logs, total, err := s.logRepo.List(ctx, filter)
	if err != nil {
		return attendance.ListLogsResponse{}, fmt.Errorf("failed to list logs: %w", err)
	}

	resp := attendance.ListLogsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Logs:       make([]attendance.LogResponse, 0, len(logs)),
	}
	for _, log := range logs {
		resp.Logs = append(resp.Logs, s.toLogResponse(log))
	}
	return resp, nil
}

func (s *Service) CreateLog(ctx context.Context, req attendance.CreateLogRequest) (attendance.LogResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.LogResponse{}, err
	}

	ts, _ := time.Parse(time.RFC3339, req.Timestamp)
	ts = ts.In(s.loc)

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return attendance.LogResponse{}, err
	}

	created, err := s.logRepo.Create(ctx, attendance.AttendanceLog{
		EmployeeID:       req.EmployeeID,
		Timestamp:        ts,
		StatusCode:       req.StatusCode,
		VerificationMode: req.VerificationMode,
	})
	if err != nil {
		return attendance.LogResponse{}, err
	}

	keys := []attendance.DayKey{attendance.NewDayKey(created.EmployeeID, ts, s.loc)}
	if err := s.summarySvc.Recompute(ctx, keys); err != nil {
		return attendance.LogResponse{}, err
	}
	return s.toLogResponse(created), nil
}

func (s *Service) UpdateLog(ctx context.Context, id string, req attendance.UpdateLogRequest) (attendance.LogResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.LogResponse{}, err
	}

	existing, err := s.logRepo.GetByID(ctx, id)
	if err != nil {
		return attendance.LogResponse{}, err
	}

	oldTS := existing.Timestamp.In(s.loc)
	newTS, _ := time.Parse(time.RFC3339, req.Timestamp)
	newTS = newTS.In(s.loc)

	existing.Timestamp = newTS
	if req.StatusCode != nil {
		existing.StatusCode = *req.StatusCode
	}
	if req.VerificationMode != nil {
		existing.VerificationMode = *req.VerificationMode
	}
	if err := s.logRepo.Update(ctx, existing); err != nil {
		return attendance.LogResponse{}, err
	}

	// Both the day the punch left and the day it moved to need a rebuild.
	keySet := map[attendance.DayKey]struct{}{
		attendance.NewDayKey(existing.EmployeeID, oldTS, s.loc): {},
		attendance.NewDayKey(existing.EmployeeID, newTS, s.loc): {},
	}
	if err := s.summarySvc.Recompute(ctx, daySetToSlice(keySet)); err != nil {
		return attendance.LogResponse{}, err
	}
	return s.toLogResponse(existing), nil
}

func (s *Service) DeleteLog(ctx context.Context, id string) error {
	existing, err := s.logRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.logRepo.Delete(ctx, id); err != nil {
		return err
	}

	keys := []attendance.DayKey{attendance.NewDayKey(existing.EmployeeID, existing.Timestamp.In(s.loc), s.loc)}
	return s.summarySvc.Recompute(ctx, keys)
}

// BulkDeleteLogs removes a set of logs and recomputes the union of the
// employee-days they covered. Returns the number of deleted logs.
func (s *Service) BulkDeleteLogs(ctx context.Context, req attendance.BulkDeleteLogsRequest) (int64, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}

	logs, err := s.logRepo.GetByIDs(ctx, req.IDs)
	if err != nil {
		return 0, fmt.Errorf("failed to load logs for bulk delete: %w", err)
	}
	if len(logs) == 0 {
		return 0, nil
	}

	keySet := make(map[attendance.DayKey]struct{}, len(logs))
	for _, log := range logs {
		keySet[attendance.NewDayKey(log.EmployeeID, log.Timestamp.In(s.loc), s.loc)] = struct{}{}
	}

	deleted, err := s.logRepo.DeleteByIDs(ctx, req.IDs)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk delete logs: %w", err)
	}

	if err := s.summarySvc.Recompute(ctx, daySetToSlice(keySet)); err != nil {
		return deleted, err
	}
	return deleted, nil
}

// RecomputeRange is the administrative batch backfill: rebuild every
// employee-day in an explicit date range, optionally narrowed to one
// employee. Returns the number of employee-days refreshed.
func (s *Service) RecomputeRange(ctx context.Context, req attendance.RecomputeRequest) (int, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}
	if req.EmployeeID != nil {
		if _, err := s.employeeRepo.GetByID(ctx, *req.EmployeeID); err != nil {
			return 0, err
		}
	}
	return s.summarySvc.RecomputeRange(ctx, req.StartDate, req.EndDate, req.EmployeeID)
}

func (s *Service) ListSummaries(ctx context.Context, filter attendance.SummaryFilter) (attendance.ListSummariesResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 200 {
		filter.Limit = 50
	}

	summaries, total, err := s.summaryRepo.List(ctx, filter)
	if err != nil {
		return attendance.ListSummariesResponse{}, fmt.Errorf("failed to list summaries: %w", err)
	}

	resp := attendance.ListSummariesResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Summaries:  make([]attendance.SummaryResponse, 0, len(summaries)),
	}
	for _, row := range summaries {
		resp.Summaries = append(resp.Summaries, s.toSummaryResponse(row))
	}
	return resp, nil
}

func (s *Service) toLogResponse(log attendance.AttendanceLog) attendance.LogResponse {
	return attendance.LogResponse{
		ID:               log.ID,
		EmployeeID:       log.EmployeeID,
		EmployeeName:     log.EmployeeName,
		EmployeeCode:     log.EmployeeCode,
		Timestamp:        log.Timestamp.In(s.loc).Format(time.RFC3339),
		StatusCode:       log.StatusCode,
		VerificationMode: log.VerificationMode,
	}
}

func (s *Service) toSummaryResponse(row attendance.DailySummary) attendance.SummaryResponse {
	resp := attendance.SummaryResponse{
		ID:                   row.ID,
		EmployeeID:           row.EmployeeID,
		EmployeeName:         row.EmployeeName,
		Date:                 row.Date.Format(attendance.DateLayout),
		ShiftID:              row.ShiftID,
		ShiftName:            row.ShiftName,
		FirstCheckIn:         row.FirstCheckIn.In(s.loc).Format("15:04:05"),
		TotalHours:           row.TotalHours,
		NightHours:           row.NightHours,
		DayHours:             row.DayHours,
		OvertimeHours:        row.OvertimeHours,
		IsOvertime:           row.IsOvertime,
		NightAllowanceAmount: row.NightAllowanceAmount,
	}
	if row.LastCheckOut != nil {
		out := row.LastCheckOut.In(s.loc).Format("15:04:05")
		resp.LastCheckOut = &out
	}
	return resp
}

func daySetToSlice(set map[attendance.DayKey]struct{}) []attendance.DayKey {
	keys := make([]attendance.DayKey, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	return keys
}
