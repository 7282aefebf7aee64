package report

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/spti-payroll/attendance-backend-go/internal/domain/attendance"
	"github.com/spti-payroll/attendance-backend-go/internal/domain/employee"
	"github.com/spti-payroll/attendance-backend-go/internal/domain/report"
	"github.com/spti-payroll/attendance-backend-go/internal/pkg/validator"
)

type stubSummaryRepo struct {
	summaries []attendance.DailySummary
}

func (s *stubSummaryRepo) Upsert(_ context.Context, _ attendance.DailySummary) error { return nil }

func (s *stubSummaryRepo) List(_ context.Context, _ attendance.SummaryFilter) ([]attendance.DailySummary, int64, error) {
	return nil, 0, nil
}

func (s *stubSummaryRepo) ExistingDays(_ context.Context, _, _ string) (map[attendance.DayKey]struct{}, error) {
	return nil, nil
}

func (s *stubSummaryRepo) ListForPeriod(_ context.Context, startDate, endDate string) ([]attendance.DailySummary, error) {
	var out []attendance.DailySummary
	for _, row := range s.summaries {
		date := row.Date.Format(attendance.DateLayout)
		if date >= startDate && date <= endDate {
			out = append(out, row)
		}
	}
	return out, nil
}

type stubEmployeeRepo struct {
	roster []employee.Employee
}

func (s *stubEmployeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	return e, nil
}

func (s *stubEmployeeRepo) GetByID(_ context.Context, _ string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (s *stubEmployeeRepo) GetByBiometricID(_ context.Context, _ int64) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (s *stubEmployeeRepo) List(_ context.Context) ([]employee.Employee, error) {
	return s.roster, nil
}

func (s *stubEmployeeRepo) Update(_ context.Context, _ employee.Employee) error { return nil }

func (s *stubEmployeeRepo) Delete(_ context.Context, _ string) error { return nil }

func (s *stubEmployeeRepo) UpsertByBiometricID(_ context.Context, e employee.Employee) (employee.Employee, error) {
	return e, nil
}

func day(d int) time.Time {
	return time.Date(2026, 7, d, 0, 0, 0, 0, time.UTC)
}

func newTestService() *Service {
	nightID := "shift-night"
	summaryRepo := &stubSummaryRepo{summaries: []attendance.DailySummary{
		{EmployeeID: "emp-1", Date: day(1), TotalHours: 7.42, NightHours: 7.26, DayHours: 0.16,
			OvertimeHours: 0.42, IsOvertime: true, NightAllowanceAmount: 1.45, ShiftID: &nightID},
		{EmployeeID: "emp-1", Date: day(2), TotalHours: 7.5, DayHours: 7.5},
		// Two rows on the same day count as one day present.
		{EmployeeID: "emp-2", Date: day(1), TotalHours: 4, DayHours: 4},
		{EmployeeID: "emp-2", Date: day(1), TotalHours: 3, DayHours: 3, ShiftID: &nightID},
		// Outside the requested month; must be ignored.
		{EmployeeID: "emp-1", Date: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), TotalHours: 8},
	}}
	employeeRepo := &stubEmployeeRepo{roster: []employee.Employee{
		{ID: "emp-1", Name: "Andi", EmployeeCode: "E001"},
		{ID: "emp-2", Name: "Budi", EmployeeCode: "E002"},
	}}
	return NewReportService(summaryRepo, employeeRepo, time.UTC)
}

func TestMonthly_AggregatesPerEmployee(t *testing.T) {
	svc := newTestService()

	got, err := svc.Monthly(context.Background(), &report.MonthlyReportRequest{Year: 2026, Month: 7})

	require.NoError(t, err)
	assert.Equal(t, "2026-07-01", got.StartDate)
	assert.Equal(t, "2026-07-31", got.EndDate)
	require.Len(t, got.Rows, 2)

	andi := got.Rows[0]
	assert.Equal(t, "Andi", andi.EmployeeName)
	assert.Equal(t, "E001", andi.EmployeeCode)
	assert.Equal(t, 2, andi.DaysPresent)
	assert.Equal(t, 14.92, andi.TotalHours)
	assert.Equal(t, 7.26, andi.NightHours)
	assert.Equal(t, 0.42, andi.OvertimeHours)
	assert.Equal(t, 1, andi.OvertimeDays)
	assert.Equal(t, 1.45, andi.NightAllowance)

	budi := got.Rows[1]
	assert.Equal(t, "Budi", budi.EmployeeName)
	assert.Equal(t, 1, budi.DaysPresent)
	assert.Equal(t, 7.0, budi.TotalHours)
	assert.Equal(t, 0, budi.OvertimeDays)
}

func TestMonthly_EmptyPeriod(t *testing.T) {
	svc := newTestService()

	got, err := svc.Monthly(context.Background(), &report.MonthlyReportRequest{Year: 2026, Month: 2})

	require.NoError(t, err)
	assert.Empty(t, got.Rows)
}

func TestMonthly_InvalidRequest(t *testing.T) {
	svc := newTestService()

	_, err := svc.Monthly(context.Background(), &report.MonthlyReportRequest{Year: 2026, Month: 13})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
}

func TestExportExcel_WritesWorkbook(t *testing.T) {
	svc := newTestService()
	var buf bytes.Buffer

	err := svc.ExportExcel(context.Background(), &report.MonthlyReportRequest{Year: 2026, Month: 7}, &buf)
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	sheet := "Attendance 2026-07"
	header, err := f.GetCellValue(sheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Employee Code", header)

	name, err := f.GetCellValue(sheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Andi", name)

	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	assert.Len(t, rows, 3) // header plus two employees
}
