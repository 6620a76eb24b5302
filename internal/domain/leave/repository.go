package leave

import "context"

type TypeRepository interface {
	Create(ctx context.Context, t Type) (Type, error)
	GetByID(ctx context.Context, id, companyID string) (Type, error)
	GetByCode(ctx context.Context, code, companyID string) (Type, error)
	List(ctx context.Context, companyID string) ([]Type, error)
	Update(ctx context.Context, t Type) error
	SoftDelete(ctx context.Context, id, companyID string) error
}

type RequestRepository interface {
	Create(ctx context.Context, req Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	// GetByIDLocked takes the exclusive row lock held across a decision's
	// read-modify-write sequence.
	GetByIDLocked(ctx context.Context, id string) (Request, error)
	Update(ctx context.Context, req Request) error
	List(ctx context.Context, filter RequestFilter, companyID string) ([]Request, int64, error)
}

type BalanceRepository interface {
	// GetOrCreateLocked returns the ledger row for the key under an
	// exclusive lock, creating a row with the given total when absent.
	GetOrCreateLocked(ctx context.Context, employeeID, leaveTypeID string, year, defaultTotal int) (Balance, error)
	GetByKey(ctx context.Context, employeeID, leaveTypeID string, year int) (Balance, error)
	ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]Balance, error)
	Update(ctx context.Context, b Balance) error
}

type AllocationRepository interface {
	Create(ctx context.Context, a Allocation) (Allocation, error)
	// GetByKey returns nil when no override exists for the key.
	GetByKey(ctx context.Context, employeeID, leaveTypeID string, year int) (*Allocation, error)
}
