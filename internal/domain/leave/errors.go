package leave

import "errors"

var (
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrLeaveTypeNotFound    = errors.New("leave type not found")

	// ErrInvalidStateTransition guards the request lifecycle: deciding a
	// non-pending request or cancelling a terminal one.
	ErrInvalidStateTransition = errors.New("leave request is not in a state that allows this action")

	// ErrNoBalanceConfigured means no allotment exists at all; the fix is
	// setup, not a denial.
	ErrNoBalanceConfigured = errors.New("no leave balance configured for this leave type")
	ErrInsufficientBalance = errors.New("insufficient leave balance")

	ErrInvalidDateRange = errors.New("end date must not be before start date")
)
