package http

import (
	"fmt"
	"net/http"

	"github.com/opshift/attendance-backend-go/internal/domain/report"
	"github.com/opshift/attendance-backend-go/internal/handler/http/response"
	"github.com/opshift/attendance-backend-go/internal/pkg/validator"
)

type ReportHandler interface {
	EmployeeSummary(w http.ResponseWriter, r *http.Request)
	ExportEmployeeSummary(w http.ResponseWriter, r *http.Request)
	CompanyDaily(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.Service
}

func NewReportHandler(reportService report.Service) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

func summaryParams(r *http.Request) (employeeID, startDate, endDate string, errs validator.ValidationErrors) {
	q := r.URL.Query()
	employeeID = q.Get("employee_id")
	startDate = q.Get("start_date")
	endDate = q.Get("end_date")

	if validator.IsEmpty(employeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if _, ok := validator.IsValidDate(startDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be YYYY-MM-DD"})
	}
	if _, ok := validator.IsValidDate(endDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be YYYY-MM-DD"})
	}
	return employeeID, startDate, endDate, errs
}

// EmployeeSummary implements ReportHandler.
func (h *reportHandlerImpl) EmployeeSummary(w http.ResponseWriter, r *http.Request) {
	employeeID, startDate, endDate, errs := summaryParams(r)
	if len(errs) > 0 {
		response.HandleError(w, errs)
		return
	}

	summary, err := h.reportService.EmployeeSummary(r.Context(), employeeID, startDate, endDate, companyIDFrom(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// ExportEmployeeSummary implements ReportHandler. Streams the workbook
// directly instead of wrapping it in the JSON envelope.
func (h *reportHandlerImpl) ExportEmployeeSummary(w http.ResponseWriter, r *http.Request) {
	employeeID, startDate, endDate, errs := summaryParams(r)
	if len(errs) > 0 {
		response.HandleError(w, errs)
		return
	}

	data, err := h.reportService.ExportEmployeeSummary(r.Context(), employeeID, startDate, endDate, companyIDFrom(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("attendance_%s_%s_%s.xlsx", employeeID, startDate, endDate)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// CompanyDaily implements ReportHandler.
func (h *reportHandlerImpl) CompanyDaily(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if _, ok := validator.IsValidDate(date); !ok {
		response.BadRequest(w, "date must be YYYY-MM-DD", nil)
		return
	}

	rollup, err := h.reportService.CompanyDaily(r.Context(), date, companyIDFrom(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, rollup)
}
