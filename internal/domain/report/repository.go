package report

import (
	"context"
	"time"
)

type Repository interface {
	EmployeeDayRows(ctx context.Context, employeeID string, start, end time.Time, companyID string) ([]DayRow, error)
	// LeaveDaysTaken counts approved leave days overlapping the range.
	LeaveDaysTaken(ctx context.Context, employeeID string, start, end time.Time, companyID string) (int, error)
	CompanyDaily(ctx context.Context, date time.Time, companyID string) (DailyRollup, error)
}
