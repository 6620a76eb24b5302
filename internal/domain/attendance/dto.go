package attendance

import (
	"time"

	"github.com/opshift/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type PunchRequest struct {
	EmployeeID string  `json:"employee_id"`
	CompanyID  string  `json:"company_id,omitempty"`
	ActionCode string  `json:"action_code"`
	SourceID   *string `json:"source_id,omitempty"`
	Remarks    *string `json:"remarks,omitempty"`

	// Optional explicit timestamp ("2006-01-02 15:04:05" or RFC3339).
	// Absent, the service clock decides.
	Timestamp *string `json:"timestamp,omitempty"`
}

func (r *PunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.ActionCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "action_code",
			Message: "action_code is required",
		})
	} else if !validator.IsValidCode(r.ActionCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "action_code",
			Message: "action_code contains invalid characters",
		})
	}

	if r.Timestamp != nil && *r.Timestamp != "" {
		if _, ok := validator.IsValidDateTime(*r.Timestamp); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "timestamp",
				Message: "timestamp must be RFC3339 or '2006-01-02 15:04:05'",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ParsedTimestamp returns the explicit punch time, if any.
func (r *PunchRequest) ParsedTimestamp() *time.Time {
	if r.Timestamp == nil || *r.Timestamp == "" {
		return nil
	}
	t, ok := validator.IsValidDateTime(*r.Timestamp)
	if !ok {
		return nil
	}
	return &t
}

type PunchResponse struct {
	Message          string  `json:"message"`
	Action           string  `json:"action"`
	RecordID         string  `json:"record_id"`
	EmployeeID       string  `json:"employee_id"`
	Date             string  `json:"date"`
	TypeCode         string  `json:"attendance_type,omitempty"`
	CheckInTime      *string `json:"check_in_time,omitempty"`
	CheckOutTime     *string `json:"check_out_time,omitempty"`
	IsLate           bool    `json:"is_late"`
	LateMinutes      int     `json:"late_minutes"`
	WorkedMinutes    int     `json:"worked_minutes"`
	EarlyExitMinutes int     `json:"early_exit_minutes"`
	OvertimeMinutes  int     `json:"overtime_minutes"`
	WorkingHours     float64 `json:"working_hours"`
}

type OpenBreakInfo struct {
	Category  string `json:"category"`
	StartedAt string `json:"started_at"`
}

// StatusResponse is the current day's state snapshot. Reading it has no
// side effects; two reads without an intervening punch are identical.
type StatusResponse struct {
	EmployeeID        string         `json:"employee_id"`
	Date              string         `json:"date"`
	IsCheckedIn       bool           `json:"is_checked_in"`
	CheckInTime       *string        `json:"check_in_time,omitempty"`
	CheckOutTime      *string        `json:"check_out_time,omitempty"`
	TypeCode          *string        `json:"attendance_type,omitempty"`
	OpenBreak         *OpenBreakInfo `json:"open_break,omitempty"`
	BreaksToday       int            `json:"breaks_today"`
	WorkedMinutes     int            `json:"worked_minutes_today"`
	LateMinutes       int            `json:"late_minutes"`
	OvertimeMinutes   int            `json:"overtime_minutes"`
	WorkingHours      float64        `json:"working_hours"`
	BreakMinutesToday int            `json:"break_minutes_today"`
}

type RecordResponse struct {
	ID               string  `json:"id"`
	EmployeeID       string  `json:"employee_id"`
	Date             string  `json:"date"`
	TypeCode         *string `json:"attendance_type,omitempty"`
	TypeTitle        *string `json:"attendance_type_title,omitempty"`
	CheckInTime      *string `json:"check_in_time,omitempty"`
	CheckOutTime     *string `json:"check_out_time,omitempty"`
	IsLate           bool    `json:"is_late"`
	LateMinutes      int     `json:"late_minutes"`
	EarlyExitMinutes int     `json:"early_exit_minutes"`
	OvertimeMinutes  int     `json:"overtime_minutes"`
	WorkingHours     float64 `json:"working_hours"`
	Remarks          *string `json:"remarks,omitempty"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
}

type ListRecordsResponse struct {
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
	Records    []RecordResponse `json:"records"`
}

type RecordFilter struct {
	EmployeeID *string
	Date       *string
	StartDate  *string
	EndDate    *string
	TypeCode   *string
	SortBy     string
	SortOrder  string
	Page       int
	Limit      int
}

// UpdateRecordRequest lets an administrator correct a record. Derived
// fields are recomputed after the correction is applied.
type UpdateRecordRequest struct {
	ID          string  `json:"-"`
	CheckInAt   *string `json:"check_in_at,omitempty"`
	CheckOutAt  *string `json:"check_out_at,omitempty"`
	TypeCode    *string `json:"attendance_type,omitempty"`
	Remarks     *string `json:"remarks,omitempty"`
	LateMinutes *int    `json:"late_minutes,omitempty"`
}

func (r *UpdateRecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	for field, v := range map[string]*string{"check_in_at": r.CheckInAt, "check_out_at": r.CheckOutAt} {
		if v != nil && *v != "" {
			if _, ok := validator.IsValidDateTime(*v); !ok {
				errs = append(errs, validator.ValidationError{
					Field:   field,
					Message: field + " must be RFC3339 or '2006-01-02 15:04:05'",
				})
			}
		}
	}

	if r.LateMinutes != nil && *r.LateMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "late_minutes",
			Message: "late_minutes must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
