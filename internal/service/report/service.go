package report

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/opshift/attendance-backend-go/internal/config"
	"github.com/opshift/attendance-backend-go/internal/domain/attendance"
	"github.com/opshift/attendance-backend-go/internal/domain/report"
	"github.com/opshift/attendance-backend-go/internal/pkg/validator"
)

type ReportServiceImpl struct {
	policy config.PolicyConfig

	report.Repository
}

func NewReportService(policy config.PolicyConfig, repo report.Repository) report.Service {
	return &ReportServiceImpl{policy: policy, Repository: repo}
}

func (s *ReportServiceImpl) companyID(requested string) string {
	if requested != "" {
		return requested
	}
	return s.policy.DefaultCompanyID
}

// EmployeeSummary implements report.Service. The summary is computed
// from the flattened day rows so a day counts exactly once regardless of
// how many punches produced it.
func (s *ReportServiceImpl) EmployeeSummary(ctx context.Context, employeeID, startDate, endDate, companyID string) (report.EmployeeSummary, error) {
	start, ok := validator.IsValidDate(startDate)
	if !ok {
		return report.EmployeeSummary{}, fmt.Errorf("start_date must be YYYY-MM-DD")
	}
	end, ok := validator.IsValidDate(endDate)
	if !ok {
		return report.EmployeeSummary{}, fmt.Errorf("end_date must be YYYY-MM-DD")
	}
	if end.Before(start) {
		return report.EmployeeSummary{}, fmt.Errorf("end_date must not be before start_date")
	}
	companyID = s.companyID(companyID)

	rows, err := s.Repository.EmployeeDayRows(ctx, employeeID, start, end, companyID)
	if err != nil {
		return report.EmployeeSummary{}, fmt.Errorf("failed to load attendance rows: %w", err)
	}

	summary := report.EmployeeSummary{
		EmployeeID: employeeID,
		StartDate:  startDate,
		EndDate:    endDate,
		Days:       rows,
	}
	for _, row := range rows {
		summary.TotalWorkedMinutes += row.WorkedMinutes
		summary.TotalLateMinutes += row.LateMinutes
		summary.TotalOvertimeMinutes += row.OvertimeMinutes

		if row.TypeCode == nil {
			continue
		}
		switch *row.TypeCode {
		case attendance.TypeCodePresent:
			summary.PresentDays++
		case attendance.TypeCodeLate:
			// Late days still count as worked days.
			summary.PresentDays++
			summary.LateDays++
		case attendance.TypeCodeAbsent:
			summary.AbsentDays++
		case attendance.TypeCodeHalfDay:
			summary.HalfDays++
		case attendance.TypeCodeWFH:
			summary.WFHDays++
		}
	}

	leaveDays, err := s.Repository.LeaveDaysTaken(ctx, employeeID, start, end, companyID)
	if err != nil {
		return report.EmployeeSummary{}, fmt.Errorf("failed to count leave days: %w", err)
	}
	summary.LeaveDaysTaken = leaveDays

	return summary, nil
}

// CompanyDaily implements report.Service.
func (s *ReportServiceImpl) CompanyDaily(ctx context.Context, date, companyID string) (report.DailyRollup, error) {
	day, ok := validator.IsValidDate(date)
	if !ok {
		return report.DailyRollup{}, fmt.Errorf("date must be YYYY-MM-DD")
	}

	rollup, err := s.Repository.CompanyDaily(ctx, day, s.companyID(companyID))
	if err != nil {
		return report.DailyRollup{}, fmt.Errorf("failed to load daily rollup: %w", err)
	}
	rollup.Date = date
	return rollup, nil
}

// ExportEmployeeSummary implements report.Service.
func (s *ReportServiceImpl) ExportEmployeeSummary(ctx context.Context, employeeID, startDate, endDate, companyID string) ([]byte, error) {
	summary, err := s.EmployeeSummary(ctx, employeeID, startDate, endDate, companyID)
	if err != nil {
		return nil, err
	}
	return renderSummaryXLSX(summary)
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func renderSummaryXLSX(summary report.EmployeeSummary) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Attendance"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	header := []string{"Date", "Type", "Check In", "Check Out", "Worked (min)", "Late (min)", "Overtime (min)", "Hours"}
	for c, v := range header {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		_ = f.SetCellValue(sheet, cell, v)
	}

	for r, day := range summary.Days {
		row := r + 2
		values := []any{
			day.Date,
			derefString(day.TypeCode),
			derefString(day.CheckInTime),
			derefString(day.CheckOutTime),
			day.WorkedMinutes,
			day.LateMinutes,
			day.OvertimeMinutes,
			day.WorkingHours,
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	// Totals block below the day rows.
	base := len(summary.Days) + 3
	totals := [][2]any{
		{"Employee", summary.EmployeeID},
		{"Period", summary.StartDate + " to " + summary.EndDate},
		{"Present Days", summary.PresentDays},
		{"Late Days", summary.LateDays},
		{"Absent Days", summary.AbsentDays},
		{"Half Days", summary.HalfDays},
		{"WFH Days", summary.WFHDays},
		{"Leave Days Taken", summary.LeaveDaysTaken},
		{"Total Worked (min)", summary.TotalWorkedMinutes},
		{"Total Late (min)", summary.TotalLateMinutes},
		{"Total Overtime (min)", summary.TotalOvertimeMinutes},
	}
	for i, pair := range totals {
		labelCell, _ := excelize.CoordinatesToCellName(1, base+i)
		valueCell, _ := excelize.CoordinatesToCellName(2, base+i)
		_ = f.SetCellValue(sheet, labelCell, pair[0])
		_ = f.SetCellValue(sheet, valueCell, pair[1])
	}

	_ = f.SetColWidth(sheet, "A", "A", 14)
	_ = f.SetColWidth(sheet, "B", "B", 10)
	_ = f.SetColWidth(sheet, "C", "D", 20)
	_ = f.SetColWidth(sheet, "E", "H", 14)

	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	_ = f.SetCellStyle(sheet, "A1", "H1", style)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
