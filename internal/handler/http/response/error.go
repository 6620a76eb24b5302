package response

import (
	"errors"
	"net/http"

	"github.com/opshift/attendance-backend-go/internal/domain/attendance"
	"github.com/opshift/attendance-backend-go/internal/domain/leave"
	"github.com/opshift/attendance-backend-go/internal/domain/shift"
	"github.com/opshift/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in for this day")
	case errors.Is(err, attendance.ErrNoOpenCheckIn):
		Conflict(w, "No open check-in found")
	case errors.Is(err, attendance.ErrBreakAlreadyOpen):
		Conflict(w, "A break of this category is already open")
	case errors.Is(err, attendance.ErrNoOpenBreak):
		Conflict(w, "No open break of this category")
	case errors.Is(err, attendance.ErrTooEarly):
		BadRequest(w, "Check-in attempted too early before shift start", nil)
	case errors.Is(err, attendance.ErrMinimumHoursNotMet):
		BadRequest(w, "Minimum working hours not met", nil)
	case errors.Is(err, attendance.ErrActionNotRecognized):
		BadRequest(w, "Action code not recognized", nil)
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrConfigurationMissing):
		InternalServerError(w, "Attendance configuration is missing; seed company defaults")

	// Shift domain errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, shift.ErrSubShiftNotFound):
		NotFound(w, "Sub-shift not found")
	case errors.Is(err, shift.ErrInvalidWindow):
		BadRequest(w, "Invalid shift window", nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveTypeNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, leave.ErrInvalidStateTransition):
		Conflict(w, "Leave request cannot change to this state")
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, "Insufficient leave balance", nil)
	case errors.Is(err, leave.ErrNoBalanceConfigured):
		NotFound(w, "No leave balance configured")
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, "Invalid leave date range", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
