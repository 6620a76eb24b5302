package leave

import (
	"time"
)

// Type is the unified leave category model. Balance-tracked categories
// carry allotment defaults; loss-of-pay categories bypass the balance
// ledger entirely.
type Type struct {
	ID                 string
	CompanyID          string
	Title              string
	Code               string
	ColorCode          *string
	DefaultAllottedDays int
	MaxAllottedDays    int
	IsPaid             bool
	IsMedical          bool
	IsLossOfPay        bool
	RequiresApproval   bool
	RequiresAttachment bool
	Deleted            bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusApproved  RequestStatus = "approved"
	RequestStatusRejected  RequestStatus = "rejected"
	RequestStatusCancelled RequestStatus = "cancelled"
)

// CanTransitionTo encodes the request lifecycle: pending may be decided
// either way, approved may still be cancelled, rejected and cancelled
// are terminal.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	switch s {
	case RequestStatusPending:
		return next == RequestStatusApproved || next == RequestStatusRejected || next == RequestStatusCancelled
	case RequestStatusApproved:
		return next == RequestStatusCancelled
	}
	return false
}

// Request is one employee's leave application.
type Request struct {
	ID          string
	EmployeeID  string
	CompanyID   string
	LeaveTypeID string
	StartDate   time.Time
	EndDate     time.Time
	TotalDays   int
	Reason      string
	Status      RequestStatus

	DecidedBy       *string
	DecidedAt       *time.Time
	ApprovalRemarks *string

	Deleted   bool
	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined for responses
	LeaveTypeTitle *string
	LeaveTypeCode  *string
}

// Balance is the ledger row keyed by (employee, leave type, year).
// RemainingDays is always derived, never stored.
type Balance struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string
	Year        int
	TotalDays   int
	UsedDays    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (b *Balance) RemainingDays() int {
	return b.TotalDays - b.UsedDays
}

// Allocation overrides the type-level default allotment for one employee
// and financial year.
type Allocation struct {
	ID           string
	EmployeeID   string
	LeaveTypeID  string
	Year         int
	AllottedDays int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TotalDaysBetween is the inclusive day count of a leave span.
func TotalDaysBetween(start, end time.Time) int {
	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(endDay.Sub(startDay).Hours()/24) + 1
}

// FinancialYear maps an instant to the allocation year it belongs to.
// With startMonth 1 this is the calendar year; with startMonth 4 an
// instant in March 2024 belongs to FY 2023.
func FinancialYear(t time.Time, startMonth int) int {
	if startMonth <= 1 {
		return t.Year()
	}
	if int(t.Month()) < startMonth {
		return t.Year() - 1
	}
	return t.Year()
}
