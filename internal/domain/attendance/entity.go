package attendance

import (
	"time"
)

// Punch action codes. The punch endpoint dispatches on these; anything
// else is rejected with ErrActionNotRecognized.
const (
	ActionCheckIn    = "check_in"
	ActionCheckOut   = "check_out"
	ActionBreakStart = "break_start"
	ActionBreakEnd   = "break_end"
	ActionLunchStart = "lunch_start"
	ActionLunchEnd   = "lunch_end"
)

// Break categories pairing start/end punches.
const (
	BreakCategoryBreak = "break"
	BreakCategoryLunch = "lunch"
)

// Attendance type codes seeded at bootstrap.
const (
	TypeCodePresent = "P"
	TypeCodeAbsent  = "A"
	TypeCodeLate    = "L"
	TypeCodeHalfDay = "HD"
	TypeCodeWFH     = "WFH"
)

// Record is one employee's attendance session for one logical day. A
// record is "open" while CheckInAt is set and CheckOutAt is not; at most
// one open record may exist per (employee, day).
type Record struct {
	ID               string
	EmployeeID       string
	CompanyID        string
	Date             time.Time
	AttendanceTypeID *string
	ShiftID          *string
	SubShiftID       *string
	CheckInAt        *time.Time
	CheckOutAt       *time.Time
	IsLate           bool
	LateMinutes      int
	EarlyExitMinutes int
	OvertimeMinutes  int
	WorkingHours     float64
	SourceID         *string
	Remarks          *string
	Deleted          bool
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Joined for responses
	TypeCode  *string
	TypeTitle *string
}

// Open reports whether the record has a check-in without a check-out.
func (r *Record) Open() bool {
	return r.CheckInAt != nil && r.CheckOutAt == nil
}

// Break is a paired sub-event nested inside an open session. EndedAt is
// nil while the break is running; only one break per category may be
// open on a record at a time.
type Break struct {
	ID        string
	RecordID  string
	Category  string
	StartedAt time.Time
	EndedAt   *time.Time
	CreatedAt time.Time
}

// Type is a catalog row classifying a day: Present, Absent, Late,
// half-day, WFH, or a leave variant.
type Type struct {
	ID        string
	CompanyID string
	Title     string
	Code      string
	ColorCode *string
	IsLeave   bool
	Deleted   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Action is a catalog row naming a recordable punch action.
type Action struct {
	ID          string
	Name        string
	Code        string
	Description *string
	Category    string
	IsActive    bool
	Deleted     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Source is a catalog row naming where a punch came from: web portal,
// biometric device, mobile app.
type Source struct {
	ID          string
	Name        string
	Code        string
	Description *string
	IsActive    bool
	Deleted     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BreakCategoryFor maps a break action code to its pairing category.
func BreakCategoryFor(actionCode string) (category string, isStart bool, ok bool) {
	switch actionCode {
	case ActionBreakStart:
		return BreakCategoryBreak, true, true
	case ActionBreakEnd:
		return BreakCategoryBreak, false, true
	case ActionLunchStart:
		return BreakCategoryLunch, true, true
	case ActionLunchEnd:
		return BreakCategoryLunch, false, true
	}
	return "", false, false
}
