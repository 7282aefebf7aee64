package report

import (
	"context"
	"fmt"
	"io"
	"math"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/spti-payroll/attendance-backend-go/internal/domain/attendance"
	"github.com/spti-payroll/attendance-backend-go/internal/domain/employee"
	"github.com/spti-payroll/attendance-backend-go/internal/domain/report"
)

// Service builds monthly payroll reports from the daily summaries.
type Service struct {
	summaryRepo  attendance.SummaryRepository
	employeeRepo employee.EmployeeRepository
	loc          *time.Location
}

func NewReportService(
	summaryRepo attendance.SummaryRepository,
	employeeRepo employee.EmployeeRepository,
	loc *time.Location,
) *Service {
	return &Service{
		summaryRepo:  summaryRepo,
		employeeRepo: employeeRepo,
		loc:          loc,
	}
}

// Monthly aggregates one calendar month of summaries into per-employee totals.
func (s *Service) Monthly(ctx context.Context, req *report.MonthlyReportRequest) (*report.MonthlyReport, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, s.loc)
	end := start.AddDate(0, 1, -1)

	startDate := start.Format(attendance.DateLayout)
	endDate := end.Format(attendance.DateLayout)

	summaries, err := s.summaryRepo.ListForPeriod(ctx, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list summaries for period: %w", err)
	}

	roster, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	byID := make(map[string]employee.Employee, len(roster))
	for _, e := range roster {
		byID[e.ID] = e
	}

	rows := make(map[string]*report.MonthlyReportRow)
	days := make(map[string]map[string]struct{})
	for _, sum := range summaries {
		row, ok := rows[sum.EmployeeID]
		if !ok {
			row = &report.MonthlyReportRow{EmployeeID: sum.EmployeeID}
			if e, found := byID[sum.EmployeeID]; found {
				row.EmployeeName = e.Name
				row.EmployeeCode = e.EmployeeCode
			} else if sum.EmployeeName != nil {
				row.EmployeeName = *sum.EmployeeName
			}
			rows[sum.EmployeeID] = row
			days[sum.EmployeeID] = make(map[string]struct{})
		}

		row.TotalHours += sum.TotalHours
		row.NightHours += sum.NightHours
		row.DayHours += sum.DayHours
		row.OvertimeHours += sum.OvertimeHours
		row.NightAllowance += sum.NightAllowanceAmount
		if sum.IsOvertime {
			row.OvertimeDays++
		}
		days[sum.EmployeeID][sum.Date.Format(attendance.DateLayout)] = struct{}{}
	}

	result := &report.MonthlyReport{
		Year:      req.Year,
		Month:     req.Month,
		StartDate: startDate,
		EndDate:   endDate,
		Rows:      make([]report.MonthlyReportRow, 0, len(rows)),
	}
	for id, row := range rows {
		row.DaysPresent = len(days[id])
		row.TotalHours = round2(row.TotalHours)
		row.NightHours = round2(row.NightHours)
		row.DayHours = round2(row.DayHours)
		row.OvertimeHours = round2(row.OvertimeHours)
		row.NightAllowance = round2(row.NightAllowance)
		result.Rows = append(result.Rows, *row)
	}
	sort.Slice(result.Rows, func(i, j int) bool {
		return result.Rows[i].EmployeeName < result.Rows[j].EmployeeName
	})

	return result, nil
}

var exportColumns = []string{
	"Employee Code",
	"Employee Name",
	"Days Present",
	"Total Hours",
	"Night Hours",
	"Day Hours",
	"Overtime Hours",
	"Overtime Days",
	"Night Allowance",
}

// ExportExcel writes the monthly report as an xlsx workbook.
func (s *Service) ExportExcel(ctx context.Context, req *report.MonthlyReportRequest, w io.Writer) error {
	monthly, err := s.Monthly(ctx, req)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := fmt.Sprintf("Attendance %04d-%02d", monthly.Year, monthly.Month)
	if len(sheet) > 31 {
		sheet = sheet[:31]
	}
	f.SetSheetName("Sheet1", sheet)

	for i, col := range exportColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return err
		}
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		startCell, _ := excelize.CoordinatesToCellName(1, 1)
		endCell, _ := excelize.CoordinatesToCellName(len(exportColumns), 1)
		_ = f.SetCellStyle(sheet, startCell, endCell, style)
	}

	for i, row := range monthly.Rows {
		values := []interface{}{
			row.EmployeeCode,
			row.EmployeeName,
			row.DaysPresent,
			row.TotalHours,
			row.NightHours,
			row.DayHours,
			row.OvertimeHours,
			row.OvertimeDays,
			row.NightAllowance,
		}
		for j, val := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return err
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
