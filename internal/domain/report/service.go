package report

import "context"

type Service interface {
	EmployeeSummary(ctx context.Context, employeeID, startDate, endDate, companyID string) (EmployeeSummary, error)
	CompanyDaily(ctx context.Context, date, companyID string) (DailyRollup, error)
	// ExportEmployeeSummary renders the range summary as an XLSX workbook.
	ExportEmployeeSummary(ctx context.Context, employeeID, startDate, endDate, companyID string) ([]byte, error)
}
