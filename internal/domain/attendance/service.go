package attendance

import (
	"context"
	"time"
)

// Service is the punch state machine exposed to the transport layer.
type Service interface {
	// Punch records one attendance action, dispatching on the request's
	// action code. Operations for the same (employee, day) linearize.
	Punch(ctx context.Context, req PunchRequest) (PunchResponse, error)
	// GetStatus returns the current day's snapshot without side effects.
	GetStatus(ctx context.Context, employeeID, companyID string) (StatusResponse, error)
	List(ctx context.Context, filter RecordFilter, companyID string) (ListRecordsResponse, error)
	Get(ctx context.Context, id, companyID string) (RecordResponse, error)
	Update(ctx context.Context, req UpdateRecordRequest, companyID string) (RecordResponse, error)
	Delete(ctx context.Context, id, companyID string) error
	// MarkAbsentees creates Absent records for every known employee with
	// no record on the date. Invoked by an external scheduler through the
	// same transactional path as interactive punches.
	MarkAbsentees(ctx context.Context, date time.Time, companyID string) (int, error)
}
