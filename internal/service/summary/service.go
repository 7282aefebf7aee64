package summary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/spti-payroll/attendance-backend-go/internal/domain/attendance"
	"github.com/spti-payroll/attendance-backend-go/internal/domain/employee"
	"github.com/spti-payroll/attendance-backend-go/internal/domain/shift"
	"github.com/spti-payroll/attendance-backend-go/internal/pkg/metrics"
)

// Service is the attendance aggregation engine. Recompute is the only write
// path into daily summaries; every trigger (ingestion, manual log edits,
// bulk deletes, periodic reconciliation, batch backfills) funnels through it.
type Service struct {
	employeeRepo employee.EmployeeRepository
	shiftRepo    shift.ShiftRepository
	settingsRepo shift.WorkSettingsRepository
	logRepo      attendance.LogRepository
	summaryRepo  attendance.SummaryRepository
	loc          *time.Location

	// Concurrent recomputes for distinct employees are independent, but two
	// for the same employee must not interleave or they could race on the
	// same summary rows.
	mu            sync.Mutex
	employeeLocks map[string]*sync.Mutex
}

func NewSummaryService(
	employeeRepo employee.EmployeeRepository,
	shiftRepo shift.ShiftRepository,
	settingsRepo shift.WorkSettingsRepository,
	logRepo attendance.LogRepository,
	summaryRepo attendance.SummaryRepository,
	loc *time.Location,
) *Service {
	return &Service{
		employeeRepo:  employeeRepo,
		shiftRepo:     shiftRepo,
		settingsRepo:  settingsRepo,
		logRepo:       logRepo,
		summaryRepo:   summaryRepo,
		loc:           loc,
		employeeLocks: make(map[string]*sync.Mutex),
	}
}

// Recompute refreshes the summaries for the given employee-days. The date
// window per employee is widened by one day on each side so sessions that
// straddle midnight into or out of the requested range are recaptured.
// Calling it repeatedly, or with overlapping key sets, converges on the same
// stored rows.
func (s *Service) Recompute(ctx context.Context, keys []attendance.DayKey) error {
	if len(keys) == 0 {
		return nil
	}
	metrics.IncRecomputeRun()

	// Configuration is read fresh on every call; it may have changed since
	// the last run.
	settings, err := s.settingsRepo.GetOrCreate(ctx)
	if err != nil {
		return fmt.Errorf("failed to load work settings: %w", err)
	}
	shifts, err := s.shiftRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load shift catalog: %w", err)
	}
	snap := NewConfigSnapshot(settings, shifts, s.loc)

	employeeDates := make(map[string][]string)
	for _, key := range keys {
		employeeDates[key.EmployeeID] = append(employeeDates[key.EmployeeID], key.Date)
	}

	employeeIDs := make([]string, 0, len(employeeDates))
	for id := range employeeDates {
		employeeIDs = append(employeeIDs, id)
	}
	sort.Strings(employeeIDs)

	for _, employeeID := range employeeIDs {
		if err := s.recomputeEmployee(ctx, employeeID, employeeDates[employeeID], snap); err != nil {
			return err
		}
	}
	return nil
}

// RecomputeRange rebuilds summaries for every employee-day holding at least
// one punch inside [startDate, endDate]. Used by the batch backfill endpoint
// and the periodic reconciliation job.
func (s *Service) RecomputeRange(ctx context.Context, startDate, endDate string, employeeID *string) (int, error) {
	if startDate > endDate {
		return 0, attendance.ErrInvalidDateRange
	}
	keys, err := s.logRepo.DistinctDays(ctx, employeeID, startDate, endDate)
	if err != nil {
		return 0, fmt.Errorf("failed to list affected days: %w", err)
	}
	if len(keys) == 0 {
		return 0, nil
	}
	return len(keys), s.Recompute(ctx, keys)
}

func (s *Service) recomputeEmployee(ctx context.Context, employeeID string, dates []string, snap *ConfigSnapshot) error {
	unlock := s.lockEmployee(employeeID)
	defer unlock()

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			// Deleted between trigger and run; nothing to rebuild.
			slog.Warn("Recompute skipped: employee no longer exists", "employee_id", employeeID)
			return nil
		}
		return fmt.Errorf("failed to load employee %s: %w", employeeID, err)
	}

	sort.Strings(dates)
	minDate, err := time.ParseInLocation(attendance.DateLayout, dates[0], s.loc)
	if err != nil {
		return fmt.Errorf("invalid affected date %q: %w", dates[0], err)
	}
	maxDate, err := time.ParseInLocation(attendance.DateLayout, dates[len(dates)-1], s.loc)
	if err != nil {
		return fmt.Errorf("invalid affected date %q: %w", dates[len(dates)-1], err)
	}

	// Widen by one day each side: a night shift beginning the evening before
	// min(dates) or ending the morning after max(dates) still belongs here.
	from := minDate.AddDate(0, 0, -1)
	to := maxDate.AddDate(0, 0, 2) // exclusive upper bound

	logs, err := s.logRepo.ListByEmployeeBetween(ctx, employeeID, from, to)
	if err != nil {
		return fmt.Errorf("failed to load punches for employee %s: %w", employeeID, err)
	}
	if len(logs) == 0 {
		return nil
	}
	for i := range logs {
		logs[i].Timestamp = logs[i].Timestamp.In(s.loc)
	}

	groups := GroupSessions(emp, logs, snap)
	for _, group := range groups {
		row := AggregateGroup(emp, group, snap.Settings)
		if err := s.summaryRepo.Upsert(ctx, row); err != nil {
			return fmt.Errorf("failed to upsert summary for employee %s on %s: %w",
				employeeID, group.Date.Format(attendance.DateLayout), err)
		}
	}
	metrics.AddSummariesWritten(len(groups))

	slog.Debug("Recomputed employee summaries",
		"employee_id", employeeID,
		"dates", len(dates),
		"groups", len(groups),
		"punches", len(logs))
	return nil
}

// AggregateGroup folds one (shift, shift date) group of sessions into a
// summary row. All hour quantities are rounded to two decimals here, at the
// write boundary, and nowhere earlier.
func AggregateGroup(emp employee.Employee, group *ShiftGroup, settings shift.WorkSettings) attendance.DailySummary {
	var totalHours, nightHours, dayHours float64

	for _, session := range group.Sessions {
		if len(session) < 2 {
			// Orphan punch: visible for first/last display, zero duration.
			continue
		}
		start := session.First().Timestamp
		end := session.Last().Timestamp

		duration := end.Sub(start).Hours()
		night, day := SplitNightDay(start, end, settings.NightStartTime, settings.NightEndTime)

		breakHours := sessionBreakOverlap(start, end, group.Shift, settings)
		if breakHours > 0 && duration > 0 {
			// Deduct the break from the total and scale the night/day split
			// down by the same ratio so the two buckets keep summing to the
			// reduced total.
			ratio := (duration - breakHours) / duration
			duration -= breakHours
			night *= ratio
			day *= ratio
		}

		totalHours += math.Max(0, duration)
		nightHours += math.Max(0, night)
		dayHours += math.Max(0, day)
	}

	firstIn := group.Sessions[0].First().Timestamp
	lastOut := group.Sessions[len(group.Sessions)-1].Last().Timestamp

	totalPunches := 0
	for _, session := range group.Sessions {
		totalPunches += len(session)
	}
	// A lone punch has no counterpart; showing it as a check-out would be
	// misleading.
	var lastOutPtr *time.Time
	if totalPunches > 1 {
		lastOutPtr = &lastOut
	}

	expected := expectedHours(emp, group.Shift, settings)
	overtime := math.Max(0, totalHours-expected)

	var allowance float64
	if group.Shift != nil && group.Shift.NightAllowancePct > 0 && nightHours > 0 {
		allowance = nightHours * group.Shift.NightAllowancePct / 100.0
	}

	row := attendance.DailySummary{
		EmployeeID:           emp.ID,
		Date:                 group.Date,
		FirstCheckIn:         firstIn,
		LastCheckOut:         lastOutPtr,
		TotalHours:           round2(totalHours),
		NightHours:           round2(nightHours),
		DayHours:             round2(dayHours),
		OvertimeHours:        round2(overtime),
		IsOvertime:           overtime > 0,
		NightAllowanceAmount: round2(allowance),
	}
	if group.Shift != nil {
		row.ShiftID = &group.Shift.ID
	}
	return row
}

// sessionBreakOverlap picks the applicable break window: the shift's own
// when it defines one and excludes breaks, else the global lunch window when
// global exclusion is enabled, else none.
func sessionBreakOverlap(start, end time.Time, sh *shift.Shift, settings shift.WorkSettings) float64 {
	if sh != nil && sh.ExcludeBreak && sh.HasBreak() {
		return BreakOverlap(start, end, *sh.BreakStartTime, *sh.BreakEndTime)
	}
	if settings.ExcludeLunchFromHours {
		return BreakOverlap(start, end, settings.LunchStartTime, settings.LunchEndTime)
	}
	return 0
}

// expectedHours resolves the daily quota: the employee's custom hours win,
// then the governing shift's configured hours, then the global default.
func expectedHours(emp employee.Employee, sh *shift.Shift, settings shift.WorkSettings) float64 {
	if emp.WorkingHours != nil && *emp.WorkingHours > 0 {
		return *emp.WorkingHours
	}
	if sh != nil {
		return sh.WorkingHours
	}
	return settings.DefaultWorkingHours
}

func (s *Service) lockEmployee(id string) func() {
	s.mu.Lock()
	lock, ok := s.employeeLocks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.employeeLocks[id] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
