package attendance

import (
	"context"
	"time"
)

// RecordRepository persists attendance records. Every query filters the
// soft-delete tombstone by default.
type RecordRepository interface {
	Create(ctx context.Context, rec Record) (Record, error)
	GetByID(ctx context.Context, id, companyID string) (Record, error)
	// GetForDay returns the record for the (employee, day) key, or nil
	// when none exists.
	GetForDay(ctx context.Context, employeeID string, date time.Time, companyID string) (*Record, error)
	// GetForDayLocked is GetForDay under an exclusive row lock; callers
	// must hold a transaction for the duration of the read-modify-write.
	GetForDayLocked(ctx context.Context, employeeID string, date time.Time, companyID string) (*Record, error)
	Update(ctx context.Context, rec Record) error
	List(ctx context.Context, filter RecordFilter, companyID string) ([]Record, int64, error)
	ListByDateRange(ctx context.Context, employeeID string, start, end time.Time, companyID string) ([]Record, error)
	// KnownEmployeeIDs returns distinct employee ids seen in attendance,
	// used by the absentee marking batch.
	KnownEmployeeIDs(ctx context.Context, companyID string) ([]string, error)
	EmployeeIDsWithRecordOn(ctx context.Context, date time.Time, companyID string) ([]string, error)
	SoftDelete(ctx context.Context, id, companyID string) error
}

// BreakRepository persists break punch pairs belonging to a record.
type BreakRepository interface {
	Open(ctx context.Context, b Break) (Break, error)
	// GetOpenByCategory returns the open break of the category, or nil.
	GetOpenByCategory(ctx context.Context, recordID, category string) (*Break, error)
	Close(ctx context.Context, id string, endedAt time.Time) error
	ListByRecord(ctx context.Context, recordID string) ([]Break, error)
}

type TypeRepository interface {
	Create(ctx context.Context, t Type) (Type, error)
	GetByCode(ctx context.Context, code, companyID string) (Type, error)
	List(ctx context.Context, companyID string) ([]Type, error)
	Update(ctx context.Context, t Type) error
	SoftDelete(ctx context.Context, id, companyID string) error
}

type ActionRepository interface {
	Create(ctx context.Context, a Action) (Action, error)
	GetByCode(ctx context.Context, code string) (Action, error)
	List(ctx context.Context) ([]Action, error)
}

type SourceRepository interface {
	Create(ctx context.Context, s Source) (Source, error)
	GetByCode(ctx context.Context, code string) (Source, error)
	List(ctx context.Context) ([]Source, error)
}
