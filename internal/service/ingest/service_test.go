package ingest

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spti-payroll/attendance-backend-go/internal/domain/attendance"
	"github.com/spti-payroll/attendance-backend-go/internal/domain/employee"
	"github.com/spti-payroll/attendance-backend-go/internal/domain/shift"
	"github.com/spti-payroll/attendance-backend-go/internal/pkg/validator"
	"github.com/spti-payroll/attendance-backend-go/internal/service/summary"
)

// ========================================
// IN-MEMORY FAKES
// ========================================

type fakeEmployeeRepo struct {
	roster []employee.Employee
}

func (f *fakeEmployeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	f.roster = append(f.roster, e)
	return e, nil
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	for _, e := range f.roster {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetByBiometricID(_ context.Context, biometricID int64) (employee.Employee, error) {
	for _, e := range f.roster {
		if e.BiometricID == biometricID {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) List(_ context.Context) ([]employee.Employee, error) {
	return append([]employee.Employee(nil), f.roster...), nil
}

func (f *fakeEmployeeRepo) Update(_ context.Context, e employee.Employee) error {
	for i := range f.roster {
		if f.roster[i].ID == e.ID {
			f.roster[i] = e
			return nil
		}
	}
	return employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) Delete(_ context.Context, id string) error {
	for i := range f.roster {
		if f.roster[i].ID == id {
			f.roster = append(f.roster[:i], f.roster[i+1:]...)
			return nil
		}
	}
	return employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) UpsertByBiometricID(_ context.Context, e employee.Employee) (employee.Employee, error) {
	for i := range f.roster {
		if f.roster[i].BiometricID == e.BiometricID {
			f.roster[i].Name = e.Name
			return f.roster[i], nil
		}
	}
	e.ID = "emp-" + validator.Itoa(len(f.roster)+1)
	f.roster = append(f.roster, e)
	return e, nil
}

type fakeLogRepo struct {
	logs []attendance.AttendanceLog
}

func (f *fakeLogRepo) Create(_ context.Context, log attendance.AttendanceLog) (attendance.AttendanceLog, error) {
	f.logs = append(f.logs, log)
	return log, nil
}

func (f *fakeLogRepo) GetByID(_ context.Context, id string) (attendance.AttendanceLog, error) {
	for _, l := range f.logs {
		if l.ID == id {
			return l, nil
		}
	}
	return attendance.AttendanceLog{}, attendance.ErrLogNotFound
}

func (f *fakeLogRepo) Update(_ context.Context, _ attendance.AttendanceLog) error { return nil }

func (f *fakeLogRepo) Delete(_ context.Context, _ string) error { return nil }

func (f *fakeLogRepo) GetByIDs(_ context.Context, _ []string) ([]attendance.AttendanceLog, error) {
	return nil, nil
}

func (f *fakeLogRepo) DeleteByIDs(_ context.Context, _ []string) (int64, error) { return 0, nil }

func (f *fakeLogRepo) List(_ context.Context, _ attendance.LogFilter) ([]attendance.AttendanceLog, int64, error) {
	return nil, 0, nil
}

func (f *fakeLogRepo) ListByEmployeeBetween(_ context.Context, employeeID string, from, to time.Time) ([]attendance.AttendanceLog, error) {
	var out []attendance.AttendanceLog
	for _, l := range f.logs {
		if l.EmployeeID == employeeID && !l.Timestamp.Before(from) && l.Timestamp.Before(to) {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func (f *fakeLogRepo) ExistingSignatures(_ context.Context, from, to time.Time) (map[attendance.LogSignature]struct{}, error) {
	out := make(map[attendance.LogSignature]struct{})
	for i := range f.logs {
		ts := f.logs[i].Timestamp
		if !ts.Before(from) && !ts.After(to) {
			out[f.logs[i].Signature()] = struct{}{}
		}
	}
	return out, nil
}

func (f *fakeLogRepo) BulkCreate(_ context.Context, logs []attendance.AttendanceLog) (int64, error) {
	stored := make(map[attendance.LogSignature]struct{}, len(f.logs))
	for i := range f.logs {
		stored[f.logs[i].Signature()] = struct{}{}
	}
	var inserted int64
	for _, l := range logs {
		if _, dup := stored[l.Signature()]; dup {
			continue
		}
		stored[l.Signature()] = struct{}{}
		f.logs = append(f.logs, l)
		inserted++
	}
	return inserted, nil
}

func (f *fakeLogRepo) DistinctDays(_ context.Context, employeeID *string, startDate, endDate string) ([]attendance.DayKey, error) {
	seen := make(map[attendance.DayKey]struct{})
	for _, l := range f.logs {
		if employeeID != nil && l.EmployeeID != *employeeID {
			continue
		}
		date := l.Timestamp.Format(attendance.DateLayout)
		if date < startDate || date > endDate {
			continue
		}
		seen[attendance.DayKey{EmployeeID: l.EmployeeID, Date: date}] = struct{}{}
	}
	keys := make([]attendance.DayKey, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].EmployeeID != keys[j].EmployeeID {
			return keys[i].EmployeeID < keys[j].EmployeeID
		}
		return keys[i].Date < keys[j].Date
	})
	return keys, nil
}

type fakeSummaryRepo struct {
	rows map[string]attendance.DailySummary
}

func newFakeSummaryRepo() *fakeSummaryRepo {
	return &fakeSummaryRepo{rows: make(map[string]attendance.DailySummary)}
}

func summaryKey(s attendance.DailySummary) string {
	key := s.EmployeeID + "|" + s.Date.Format(attendance.DateLayout) + "|"
	if s.ShiftID != nil {
		key += *s.ShiftID
	}
	return key
}

func (f *fakeSummaryRepo) Upsert(_ context.Context, s attendance.DailySummary) error {
	f.rows[summaryKey(s)] = s
	return nil
}

func (f *fakeSummaryRepo) List(_ context.Context, _ attendance.SummaryFilter) ([]attendance.DailySummary, int64, error) {
	out := f.all()
	return out, int64(len(out)), nil
}

func (f *fakeSummaryRepo) ExistingDays(_ context.Context, startDate, endDate string) (map[attendance.DayKey]struct{}, error) {
	out := make(map[attendance.DayKey]struct{})
	for _, s := range f.rows {
		date := s.Date.Format(attendance.DateLayout)
		if date < startDate || date > endDate {
			continue
		}
		out[attendance.DayKey{EmployeeID: s.EmployeeID, Date: date}] = struct{}{}
	}
	return out, nil
}

func (f *fakeSummaryRepo) ListForPeriod(_ context.Context, startDate, endDate string) ([]attendance.DailySummary, error) {
	var out []attendance.DailySummary
	for _, s := range f.all() {
		date := s.Date.Format(attendance.DateLayout)
		if date >= startDate && date <= endDate {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSummaryRepo) all() []attendance.DailySummary {
	out := make([]attendance.DailySummary, 0, len(f.rows))
	for _, s := range f.rows {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].EmployeeID != out[j].EmployeeID {
			return out[i].EmployeeID < out[j].EmployeeID
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

type fakeShiftRepo struct {
	shifts []shift.Shift
}

func (f *fakeShiftRepo) Create(_ context.Context, s shift.Shift) (shift.Shift, error) {
	f.shifts = append(f.shifts, s)
	return s, nil
}

func (f *fakeShiftRepo) GetByID(_ context.Context, id string) (shift.Shift, error) {
	for _, s := range f.shifts {
		if s.ID == id {
			return s, nil
		}
	}
	return shift.Shift{}, shift.ErrShiftNotFound
}

func (f *fakeShiftRepo) List(_ context.Context) ([]shift.Shift, error) {
	return append([]shift.Shift(nil), f.shifts...), nil
}

func (f *fakeShiftRepo) ListActive(_ context.Context) ([]shift.Shift, error) {
	var out []shift.Shift
	for _, s := range f.shifts {
		if s.IsActive {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeShiftRepo) Update(_ context.Context, _ shift.Shift) error { return nil }

func (f *fakeShiftRepo) Delete(_ context.Context, _ string) error { return nil }

type fakeSettingsRepo struct {
	settings shift.WorkSettings
}

func (f *fakeSettingsRepo) GetOrCreate(_ context.Context) (shift.WorkSettings, error) {
	return f.settings, nil
}

func (f *fakeSettingsRepo) Update(_ context.Context, s shift.WorkSettings) (shift.WorkSettings, error) {
	f.settings = s
	return s, nil
}

// ========================================
// TEST HARNESS
// ========================================

type testEnv struct {
	employeeRepo *fakeEmployeeRepo
	logRepo      *fakeLogRepo
	summaryRepo  *fakeSummaryRepo
	svc          *Service
}

func newTestEnv() *testEnv {
	clock := func(h, m int) time.Time {
		return time.Date(0, 1, 1, h, m, 0, 0, time.UTC)
	}

	employeeRepo := &fakeEmployeeRepo{roster: []employee.Employee{
		{ID: "emp-1", Name: "Andi", EmployeeCode: "E001", BiometricID: 101},
	}}
	logRepo := &fakeLogRepo{}
	summaryRepo := newFakeSummaryRepo()
	shiftRepo := &fakeShiftRepo{}
	settingsRepo := &fakeSettingsRepo{settings: shift.WorkSettings{
		DefaultWorkingHours:   8,
		LunchStartTime:        clock(12, 0),
		LunchEndTime:          clock(13, 0),
		ExcludeLunchFromHours: true,
		NightStartTime:        clock(22, 0),
		NightEndTime:          clock(6, 0),
	}}

	summarySvc := summary.NewSummaryService(
		employeeRepo, shiftRepo, settingsRepo, logRepo, summaryRepo, time.UTC)

	return &testEnv{
		employeeRepo: employeeRepo,
		logRepo:      logRepo,
		summaryRepo:  summaryRepo,
		svc:          NewIngestService(employeeRepo, logRepo, summaryRepo, summarySvc, time.UTC),
	}
}

func ts(day, h, m int) time.Time {
	return time.Date(2026, 5, day, h, m, 0, 0, time.UTC)
}

// ========================================
// TESTS
// ========================================

func TestProcessBatch_InsertsAndAggregates(t *testing.T) {
	env := newTestEnv()

	report, err := env.svc.ProcessBatch(context.Background(), attendance.IngestBatchRequest{
		Records: []attendance.PunchRecord{
			{BiometricID: 101, Timestamp: ts(4, 9, 0)},
			{BiometricID: 101, Timestamp: ts(4, 9, 0)}, // in-batch duplicate
			{BiometricID: 101, Timestamp: ts(4, 17, 0)},
			{BiometricID: 999, Timestamp: ts(4, 9, 5)}, // not on the roster
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 4, report.Received)
	assert.Equal(t, 2, report.Inserted)
	assert.Equal(t, 1, report.Duplicates)
	assert.Equal(t, 1, report.UnknownEmployee)
	assert.Equal(t, 1, report.DaysRecomputed)

	rows, _, err := env.summaryRepo.List(context.Background(), attendance.SummaryFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "emp-1", rows[0].EmployeeID)
	// 8h presence minus the 1h global lunch, no shift catalog configured.
	assert.Equal(t, 7.0, rows[0].TotalHours)
	assert.Nil(t, rows[0].ShiftID)
}

func TestProcessBatch_RedeliveryIsIdempotent(t *testing.T) {
	env := newTestEnv()
	batch := attendance.IngestBatchRequest{
		Records: []attendance.PunchRecord{
			{BiometricID: 101, Timestamp: ts(4, 9, 0)},
			{BiometricID: 101, Timestamp: ts(4, 17, 0)},
		},
	}

	first, err := env.svc.ProcessBatch(context.Background(), batch)
	require.NoError(t, err)
	require.Equal(t, 2, first.Inserted)

	second, err := env.svc.ProcessBatch(context.Background(), batch)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Inserted)
	assert.Equal(t, 2, second.Duplicates)
	// The day is already summarized, so nothing needs recomputing.
	assert.Equal(t, 0, second.DaysRecomputed)

	rows, _, err := env.summaryRepo.List(context.Background(), attendance.SummaryFilter{})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestProcessBatch_BackfillsUnsummarizedDays(t *testing.T) {
	env := newTestEnv()

	// Punches landed earlier but the aggregation never ran for them.
	_, err := env.logRepo.BulkCreate(context.Background(), []attendance.AttendanceLog{
		{EmployeeID: "emp-1", Timestamp: ts(4, 9, 0)},
		{EmployeeID: "emp-1", Timestamp: ts(4, 17, 0)},
	})
	require.NoError(t, err)

	report, err := env.svc.ProcessBatch(context.Background(), attendance.IngestBatchRequest{
		Records: []attendance.PunchRecord{
			{BiometricID: 101, Timestamp: ts(4, 9, 0)}, // duplicate of the stored punch
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 0, report.Inserted)
	assert.Equal(t, 1, report.Duplicates)
	assert.Equal(t, 1, report.DaysRecomputed)

	rows, _, err := env.summaryRepo.List(context.Background(), attendance.SummaryFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 7.0, rows[0].TotalHours)
}

func TestProcessBatch_EmptyBatchIsRejected(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.ProcessBatch(context.Background(), attendance.IngestBatchRequest{})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
}

func TestProcessBatch_OnlyUnknownEmployeesIsNotAnError(t *testing.T) {
	env := newTestEnv()

	report, err := env.svc.ProcessBatch(context.Background(), attendance.IngestBatchRequest{
		Records: []attendance.PunchRecord{
			{BiometricID: 999, Timestamp: ts(4, 9, 0)},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, report.UnknownEmployee)
	assert.Equal(t, 0, report.Inserted)
	assert.Equal(t, 0, report.DaysRecomputed)
}

func TestSyncRoster_UpsertsAndSkipsInvalidIDs(t *testing.T) {
	env := newTestEnv()

	synced, err := env.svc.SyncRoster(context.Background(), []employee.DeviceUser{
		{BiometricID: 101, Name: "Andi Renamed", EmployeeCode: "E001"},
		{BiometricID: 102, Name: "Budi", EmployeeCode: "E002"},
		{BiometricID: 0, Name: "Ghost"},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, synced)

	roster, err := env.employeeRepo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, roster, 2)
	assert.Equal(t, "Andi Renamed", roster[0].Name)

	added, err := env.employeeRepo.GetByBiometricID(context.Background(), 102)
	require.NoError(t, err)
	assert.Equal(t, "Budi", added.Name)
}
