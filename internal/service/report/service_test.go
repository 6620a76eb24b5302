package report

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/opshift/attendance-backend-go/internal/config"
	"github.com/opshift/attendance-backend-go/internal/domain/report"
)

type fakeReportRepo struct {
	rows      []report.DayRow
	leaveDays int
	rollup    report.DailyRollup
}

func (f *fakeReportRepo) EmployeeDayRows(_ context.Context, _ string, _, _ time.Time, _ string) ([]report.DayRow, error) {
	return f.rows, nil
}

func (f *fakeReportRepo) LeaveDaysTaken(_ context.Context, _ string, _, _ time.Time, _ string) (int, error) {
	return f.leaveDays, nil
}

func (f *fakeReportRepo) CompanyDaily(_ context.Context, _ time.Time, _ string) (report.DailyRollup, error) {
	return f.rollup, nil
}

func strPtr(s string) *string { return &s }

func sampleRows() []report.DayRow {
	return []report.DayRow{
		{Date: "2024-06-10", TypeCode: strPtr("P"), WorkedMinutes: 480, WorkingHours: 8},
		{Date: "2024-06-11", TypeCode: strPtr("L"), WorkedMinutes: 470, LateMinutes: 10, WorkingHours: 7.8},
		{Date: "2024-06-12", TypeCode: strPtr("A")},
		{Date: "2024-06-13", TypeCode: strPtr("HD"), WorkedMinutes: 240, WorkingHours: 4},
		{Date: "2024-06-14", TypeCode: strPtr("WFH"), WorkedMinutes: 500, OvertimeMinutes: 20, WorkingHours: 8.3},
	}
}

func newService(repo *fakeReportRepo) report.Service {
	return NewReportService(config.PolicyConfig{DefaultCompanyID: "comp-1"}, repo)
}

func TestEmployeeSummaryCounts(t *testing.T) {
	svc := newService(&fakeReportRepo{rows: sampleRows(), leaveDays: 2})

	summary, err := svc.EmployeeSummary(context.Background(), "emp-1", "2024-06-10", "2024-06-14", "")
	require.NoError(t, err)

	// A late day is still a worked day.
	assert.Equal(t, 3, summary.PresentDays)
	assert.Equal(t, 1, summary.LateDays)
	assert.Equal(t, 1, summary.AbsentDays)
	assert.Equal(t, 1, summary.HalfDays)
	assert.Equal(t, 1, summary.WFHDays)
	assert.Equal(t, 2, summary.LeaveDaysTaken)
	assert.Equal(t, 1690, summary.TotalWorkedMinutes)
	assert.Equal(t, 10, summary.TotalLateMinutes)
	assert.Equal(t, 20, summary.TotalOvertimeMinutes)
	assert.Len(t, summary.Days, 5)
}

func TestEmployeeSummaryRejectsBadRange(t *testing.T) {
	svc := newService(&fakeReportRepo{})

	_, err := svc.EmployeeSummary(context.Background(), "emp-1", "2024-06-14", "2024-06-10", "")
	assert.Error(t, err)

	_, err = svc.EmployeeSummary(context.Background(), "emp-1", "not-a-date", "2024-06-10", "")
	assert.Error(t, err)
}

func TestExportEmployeeSummaryXLSX(t *testing.T) {
	svc := newService(&fakeReportRepo{rows: sampleRows(), leaveDays: 2})

	raw, err := svc.ExportEmployeeSummary(context.Background(), "emp-1", "2024-06-10", "2024-06-14", "")
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetCellValue("Attendance", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Date", got)

	got, err = f.GetCellValue("Attendance", "A2")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-10", got)
}

func TestCompanyDaily(t *testing.T) {
	svc := newService(&fakeReportRepo{rollup: report.DailyRollup{
		PresentCount: 12, LateCount: 3, AbsentCount: 2, OnLeaveCount: 1,
	}})

	rollup, err := svc.CompanyDaily(context.Background(), "2024-06-10", "")
	require.NoError(t, err)

	assert.Equal(t, "2024-06-10", rollup.Date)
	assert.Equal(t, 12, rollup.PresentCount)
	assert.Equal(t, 1, rollup.OnLeaveCount)
}
