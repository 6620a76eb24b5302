package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/opshift/attendance-backend-go/internal/domain/leave"
)

type stubLeaveService struct {
	cancelCalled bool
}

func (s *stubLeaveService) CreateRequest(_ context.Context, _ leave.CreateRequestRequest) (leave.RequestResponse, error) {
	return leave.RequestResponse{}, nil
}

func (s *stubLeaveService) Approve(_ context.Context, _ leave.DecisionRequest) (leave.RequestResponse, error) {
	return leave.RequestResponse{}, nil
}

func (s *stubLeaveService) Reject(_ context.Context, _ leave.DecisionRequest) (leave.RequestResponse, error) {
	return leave.RequestResponse{}, nil
}

func (s *stubLeaveService) Cancel(_ context.Context, _ string) (leave.CancelResponse, error) {
	s.cancelCalled = true
	return leave.CancelResponse{}, nil
}

func (s *stubLeaveService) List(_ context.Context, _ leave.RequestFilter, _ string) (leave.ListRequestsResponse, error) {
	return leave.ListRequestsResponse{}, nil
}

func (s *stubLeaveService) GetBalances(_ context.Context, _ string, _ int) ([]leave.BalanceSnapshot, error) {
	return nil, nil
}

func (s *stubLeaveService) AdjustBalance(_ context.Context, _ leave.AdjustBalanceRequest) (leave.BalanceSnapshot, error) {
	return leave.BalanceSnapshot{}, nil
}

func TestCancelRejectsMalformedRequestID(t *testing.T) {
	svc := &stubLeaveService{}
	h := NewLeaveHandler(svc, nil, "comp-1")

	r := httptest.NewRequest(http.MethodPost, "/api/v1/leave/requests/abc/cancel", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "abc")
	r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))

	w := httptest.NewRecorder()
	h.Cancel(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, svc.cancelCalled)
}

func TestGetBalancesRejectsNonNumericYear(t *testing.T) {
	svc := &stubLeaveService{}
	h := NewLeaveHandler(svc, nil, "comp-1")

	r := httptest.NewRequest(http.MethodGet, "/api/v1/leave/balances/emp-1?year=twenty", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("employeeID", "emp-1")
	r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))

	w := httptest.NewRecorder()
	h.GetBalances(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
