package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/opshift/attendance-backend-go/internal/domain/leave"
	"github.com/opshift/attendance-backend-go/internal/handler/http/response"
	"github.com/opshift/attendance-backend-go/internal/pkg/validator"
)

type LeaveHandler interface {
	CreateRequest(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	GetBalances(w http.ResponseWriter, r *http.Request)
	AdjustBalance(w http.ResponseWriter, r *http.Request)
	ListTypes(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService     leave.Service
	typeRepo         leave.TypeRepository
	defaultCompanyID string
}

func NewLeaveHandler(leaveService leave.Service, typeRepo leave.TypeRepository, defaultCompanyID string) LeaveHandler {
	return &leaveHandlerImpl{
		leaveService:     leaveService,
		typeRepo:         typeRepo,
		defaultCompanyID: defaultCompanyID,
	}
}

// CreateRequest implements LeaveHandler.
func (h *leaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.leaveService.CreateRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", resp)
}

func (h *leaveHandlerImpl) decide(w http.ResponseWriter, r *http.Request,
	decide func(req leave.DecisionRequest) (leave.RequestResponse, error), message string) {

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req leave.DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.RequestID = id

	resp, err := decide(req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, message, resp)
}

// Approve implements LeaveHandler.
func (h *leaveHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, func(req leave.DecisionRequest) (leave.RequestResponse, error) {
		return h.leaveService.Approve(r.Context(), req)
	}, "Leave request approved")
}

// Reject implements LeaveHandler.
func (h *leaveHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, func(req leave.DecisionRequest) (leave.RequestResponse, error) {
		return h.leaveService.Reject(r.Context(), req)
	}, "Leave request rejected")
}

// Cancel implements LeaveHandler.
func (h *leaveHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	resp, err := h.leaveService.Cancel(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request cancelled", resp)
}

// List implements LeaveHandler.
func (h *leaveHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := leave.RequestFilter{Page: 1, Limit: 20}

	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = &status
	}
	if p := r.URL.Query().Get("page"); p != "" {
		if page, err := strconv.Atoi(p); err == nil && page > 0 {
			filter.Page = page
		}
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		if limit, err := strconv.Atoi(l); err == nil && limit > 0 && limit <= 100 {
			filter.Limit = limit
		}
	}

	resp, err := h.leaveService.List(r.Context(), filter, companyIDFrom(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, resp.Requests, &response.Meta{
		Page:       resp.Page,
		Limit:      resp.Limit,
		TotalItems: resp.TotalCount,
		TotalPages: resp.TotalPages,
	})
}

// GetBalances implements LeaveHandler.
func (h *leaveHandlerImpl) GetBalances(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "employee id is required", nil)
		return
	}

	year := 0
	if y := r.URL.Query().Get("year"); y != "" {
		if !validator.IsNumeric(y) {
			response.BadRequest(w, "year must be numeric", nil)
			return
		}
		year, _ = strconv.Atoi(y)
	}

	snapshots, err := h.leaveService.GetBalances(r.Context(), employeeID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, snapshots)
}

// AdjustBalance implements LeaveHandler.
func (h *leaveHandlerImpl) AdjustBalance(w http.ResponseWriter, r *http.Request) {
	var req leave.AdjustBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	snapshot, err := h.leaveService.AdjustBalance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave balance adjusted", snapshot)
}

// ListTypes implements LeaveHandler.
func (h *leaveHandlerImpl) ListTypes(w http.ResponseWriter, r *http.Request) {
	companyID := companyIDFrom(r)
	if companyID == "" {
		companyID = h.defaultCompanyID
	}

	types, err := h.typeRepo.List(r.Context(), companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]leaveTypeResponse, 0, len(types))
	for _, t := range types {
		out = append(out, leaveTypeResponse{
			ID:                  t.ID,
			Title:               t.Title,
			Code:                t.Code,
			ColorCode:           t.ColorCode,
			DefaultAllottedDays: t.DefaultAllottedDays,
			MaxAllottedDays:     t.MaxAllottedDays,
			IsPaid:              t.IsPaid,
			IsMedical:           t.IsMedical,
			IsLossOfPay:         t.IsLossOfPay,
			RequiresApproval:    t.RequiresApproval,
			RequiresAttachment:  t.RequiresAttachment,
		})
	}
	response.Success(w, out)
}

type leaveTypeResponse struct {
	ID                  string  `json:"id"`
	Title               string  `json:"title"`
	Code                string  `json:"code"`
	ColorCode           *string `json:"color_code,omitempty"`
	DefaultAllottedDays int     `json:"default_allotted_days"`
	MaxAllottedDays     int     `json:"max_allotted_days"`
	IsPaid              bool    `json:"is_paid"`
	IsMedical           bool    `json:"is_medical"`
	IsLossOfPay         bool    `json:"is_loss_of_pay"`
	RequiresApproval    bool    `json:"requires_approval"`
	RequiresAttachment  bool    `json:"requires_attachment"`
}
