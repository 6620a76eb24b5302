package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opshift/attendance-backend-go/internal/domain/attendance"
)

// stubAttendanceService records which service methods a handler reached.
type stubAttendanceService struct {
	getCalled    bool
	deleteCalled bool
	lastID       string
}

func (s *stubAttendanceService) Punch(_ context.Context, _ attendance.PunchRequest) (attendance.PunchResponse, error) {
	return attendance.PunchResponse{}, nil
}

func (s *stubAttendanceService) GetStatus(_ context.Context, _, _ string) (attendance.StatusResponse, error) {
	return attendance.StatusResponse{}, nil
}

func (s *stubAttendanceService) List(_ context.Context, _ attendance.RecordFilter, _ string) (attendance.ListRecordsResponse, error) {
	return attendance.ListRecordsResponse{}, nil
}

func (s *stubAttendanceService) Get(_ context.Context, id, _ string) (attendance.RecordResponse, error) {
	s.getCalled = true
	s.lastID = id
	return attendance.RecordResponse{ID: id}, nil
}

func (s *stubAttendanceService) Update(_ context.Context, req attendance.UpdateRecordRequest, _ string) (attendance.RecordResponse, error) {
	return attendance.RecordResponse{ID: req.ID}, nil
}

func (s *stubAttendanceService) Delete(_ context.Context, id, _ string) error {
	s.deleteCalled = true
	s.lastID = id
	return nil
}

func (s *stubAttendanceService) MarkAbsentees(_ context.Context, _ time.Time, _ string) (int, error) {
	return 0, nil
}

func requestWithID(method, id string) *http.Request {
	r := httptest.NewRequest(method, "/api/v1/attendance/"+id, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestGetRejectsMalformedRecordID(t *testing.T) {
	svc := &stubAttendanceService{}
	h := NewAttendanceHandler(svc)

	w := httptest.NewRecorder()
	h.Get(w, requestWithID(http.MethodGet, "not-a-uuid"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, svc.getCalled)
}

func TestGetAcceptsWellFormedRecordID(t *testing.T) {
	svc := &stubAttendanceService{}
	h := NewAttendanceHandler(svc)

	id := "0188d0f2-7b8c-4a51-b3e2-9f1c6a2d4e07"
	w := httptest.NewRecorder()
	h.Get(w, requestWithID(http.MethodGet, id))

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, svc.getCalled)
	assert.Equal(t, id, svc.lastID)
}

func TestDeleteRejectsMalformedRecordID(t *testing.T) {
	svc := &stubAttendanceService{}
	h := NewAttendanceHandler(svc)

	w := httptest.NewRecorder()
	h.Delete(w, requestWithID(http.MethodDelete, "12345"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, svc.deleteCalled)
}
