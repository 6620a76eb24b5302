package http

import (
	"encoding/json"
	"net/http"

	"github.com/opshift/attendance-backend-go/internal/domain/attendance"
	"github.com/opshift/attendance-backend-go/internal/domain/shift"
	"github.com/opshift/attendance-backend-go/internal/handler/http/response"
	"github.com/opshift/attendance-backend-go/internal/pkg/validator"
)

// CatalogHandler exposes the read side of the punch catalogs plus shift
// administration.
type CatalogHandler interface {
	ListAttendanceTypes(w http.ResponseWriter, r *http.Request)
	ListActions(w http.ResponseWriter, r *http.Request)
	ListSources(w http.ResponseWriter, r *http.Request)
	ListShifts(w http.ResponseWriter, r *http.Request)
	CreateShift(w http.ResponseWriter, r *http.Request)
	AssignShift(w http.ResponseWriter, r *http.Request)
}

type catalogHandlerImpl struct {
	attendanceTypes  attendance.TypeRepository
	actions          attendance.ActionRepository
	sources          attendance.SourceRepository
	shifts           shift.ShiftRepository
	subShifts        shift.SubShiftRepository
	assignments      shift.AssignmentRepository
	defaultCompanyID string
}

func NewCatalogHandler(
	attendanceTypes attendance.TypeRepository,
	actions attendance.ActionRepository,
	sources attendance.SourceRepository,
	shifts shift.ShiftRepository,
	subShifts shift.SubShiftRepository,
	assignments shift.AssignmentRepository,
	defaultCompanyID string,
) CatalogHandler {
	return &catalogHandlerImpl{
		attendanceTypes:  attendanceTypes,
		actions:          actions,
		sources:          sources,
		shifts:           shifts,
		subShifts:        subShifts,
		assignments:      assignments,
		defaultCompanyID: defaultCompanyID,
	}
}

func (h *catalogHandlerImpl) companyID(r *http.Request) string {
	if id := companyIDFrom(r); id != "" {
		return id
	}
	return h.defaultCompanyID
}

type attendanceTypeResponse struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Code      string  `json:"code"`
	ColorCode *string `json:"color_code,omitempty"`
	IsLeave   bool    `json:"is_leave"`
}

// ListAttendanceTypes implements CatalogHandler.
func (h *catalogHandlerImpl) ListAttendanceTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.attendanceTypes.List(r.Context(), h.companyID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]attendanceTypeResponse, 0, len(types))
	for _, t := range types {
		out = append(out, attendanceTypeResponse{
			ID:        t.ID,
			Title:     t.Title,
			Code:      t.Code,
			ColorCode: t.ColorCode,
			IsLeave:   t.IsLeave,
		})
	}
	response.Success(w, out)
}

type punchCatalogResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Code        string  `json:"code"`
	Description *string `json:"description,omitempty"`
	Category    string  `json:"category,omitempty"`
	IsActive    bool    `json:"is_active"`
}

// ListActions implements CatalogHandler.
func (h *catalogHandlerImpl) ListActions(w http.ResponseWriter, r *http.Request) {
	actions, err := h.actions.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]punchCatalogResponse, 0, len(actions))
	for _, a := range actions {
		out = append(out, punchCatalogResponse{
			ID:          a.ID,
			Name:        a.Name,
			Code:        a.Code,
			Description: a.Description,
			Category:    a.Category,
			IsActive:    a.IsActive,
		})
	}
	response.Success(w, out)
}

// ListSources implements CatalogHandler.
func (h *catalogHandlerImpl) ListSources(w http.ResponseWriter, r *http.Request) {
	sources, err := h.sources.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]punchCatalogResponse, 0, len(sources))
	for _, s := range sources {
		out = append(out, punchCatalogResponse{
			ID:          s.ID,
			Name:        s.Name,
			Code:        s.Code,
			Description: s.Description,
			IsActive:    s.IsActive,
		})
	}
	response.Success(w, out)
}

type subShiftResponse struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Start  string `json:"start"`
	End    string `json:"end"`
	Active bool   `json:"is_active"`
}

type shiftResponse struct {
	ID          string             `json:"id"`
	Code        string             `json:"code"`
	Name        string             `json:"name"`
	Description *string            `json:"description,omitempty"`
	SubShifts   []subShiftResponse `json:"sub_shifts"`
}

// ListShifts implements CatalogHandler.
func (h *catalogHandlerImpl) ListShifts(w http.ResponseWriter, r *http.Request) {
	shifts, err := h.shifts.List(r.Context(), h.companyID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]shiftResponse, 0, len(shifts))
	for _, sh := range shifts {
		subShifts, err := h.subShifts.GetByShiftID(r.Context(), sh.ID)
		if err != nil {
			response.HandleError(w, err)
			return
		}

		item := shiftResponse{
			ID:          sh.ID,
			Code:        sh.Code,
			Name:        sh.Name,
			Description: sh.Description,
			SubShifts:   make([]subShiftResponse, 0, len(subShifts)),
		}
		for _, ss := range subShifts {
			item.SubShifts = append(item.SubShifts, subShiftResponse{
				ID:     ss.ID,
				Title:  ss.Title,
				Start:  ss.Window.Start.String(),
				End:    ss.Window.End.String(),
				Active: ss.Active,
			})
		}
		out = append(out, item)
	}
	response.Success(w, out)
}

type createShiftRequest struct {
	CompanyID   string  `json:"company_id,omitempty"`
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	SubShifts   []struct {
		Title string `json:"title"`
		Start string `json:"start"`
		End   string `json:"end"`
	} `json:"sub_shifts"`
}

// CreateShift implements CatalogHandler. Windows arrive as "HH:MM"
// pairs; an end before the start defines an overnight window.
func (h *catalogHandlerImpl) CreateShift(w http.ResponseWriter, r *http.Request) {
	var req createShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	var errs validator.ValidationErrors
	if validator.IsEmpty(req.Code) || !validator.IsValidCode(req.Code) {
		errs = append(errs, validator.ValidationError{Field: "code", Message: "code is required and must be alphanumeric"})
	}
	if validator.IsEmpty(req.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if len(req.SubShifts) == 0 {
		errs = append(errs, validator.ValidationError{Field: "sub_shifts", Message: "at least one sub-shift window is required"})
	}

	windows := make([]shift.Window, 0, len(req.SubShifts))
	for _, ss := range req.SubShifts {
		start, startOK := validator.IsValidClock(ss.Start)
		end, endOK := validator.IsValidClock(ss.End)
		if !startOK || !endOK {
			errs = append(errs, validator.ValidationError{Field: "sub_shifts", Message: "start and end must be HH:MM"})
			continue
		}
		windows = append(windows, shift.Window{
			Start: shift.NewClock(start.Hour(), start.Minute()),
			End:   shift.NewClock(end.Hour(), end.Minute()),
		})
	}
	if len(errs) > 0 {
		response.HandleError(w, errs)
		return
	}

	companyID := req.CompanyID
	if companyID == "" {
		companyID = h.defaultCompanyID
	}

	created, err := h.shifts.Create(r.Context(), shift.Shift{
		CompanyID:   companyID,
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp := shiftResponse{
		ID:          created.ID,
		Code:        created.Code,
		Name:        created.Name,
		Description: created.Description,
		SubShifts:   make([]subShiftResponse, 0, len(windows)),
	}
	for i, window := range windows {
		ss, err := h.subShifts.Create(r.Context(), shift.SubShift{
			ShiftID: created.ID,
			Title:   req.SubShifts[i].Title,
			Window:  window,
			Active:  true,
		})
		if err != nil {
			response.HandleError(w, err)
			return
		}
		resp.SubShifts = append(resp.SubShifts, subShiftResponse{
			ID:     ss.ID,
			Title:  ss.Title,
			Start:  ss.Window.Start.String(),
			End:    ss.Window.End.String(),
			Active: ss.Active,
		})
	}

	response.Created(w, "Shift created", resp)
}

// AssignShift implements CatalogHandler.
func (h *catalogHandlerImpl) AssignShift(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EmployeeID string `json:"employee_id"`
		ShiftID    string `json:"shift_id"`
		CompanyID  string `json:"company_id,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	var errs validator.ValidationErrors
	if validator.IsEmpty(req.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if validator.IsEmpty(req.ShiftID) {
		errs = append(errs, validator.ValidationError{Field: "shift_id", Message: "shift_id is required"})
	}
	if len(errs) > 0 {
		response.HandleError(w, errs)
		return
	}

	companyID := req.CompanyID
	if companyID == "" {
		companyID = h.defaultCompanyID
	}

	// The shift must exist in this company before it can be assigned.
	if _, err := h.shifts.GetByID(r.Context(), req.ShiftID, companyID); err != nil {
		response.HandleError(w, err)
		return
	}

	assignment, err := h.assignments.Assign(r.Context(), shift.Assignment{
		EmployeeID: req.EmployeeID,
		ShiftID:    req.ShiftID,
		CompanyID:  companyID,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift assigned", map[string]string{
		"id":          assignment.ID,
		"employee_id": assignment.EmployeeID,
		"shift_id":    assignment.ShiftID,
	})
}
