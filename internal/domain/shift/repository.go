package shift

import "context"

type ShiftRepository interface {
	Create(ctx context.Context, s Shift) (Shift, error)
	GetByID(ctx context.Context, id, companyID string) (Shift, error)
	List(ctx context.Context, companyID string) ([]Shift, error)
	Update(ctx context.Context, s Shift) error
	Delete(ctx context.Context, id, companyID string) error
}

type SubShiftRepository interface {
	Create(ctx context.Context, ss SubShift) (SubShift, error)
	GetByID(ctx context.Context, id string) (SubShift, error)
	GetByShiftID(ctx context.Context, shiftID string) ([]SubShift, error)
	ListActiveByCompany(ctx context.Context, companyID string) ([]SubShift, error)
}

type AssignmentRepository interface {
	Assign(ctx context.Context, a Assignment) (Assignment, error)
	GetByEmployee(ctx context.Context, employeeID, companyID string) (Assignment, error)
}
