package fixtures

import (
	"github.com/opshift/attendance-backend-go/internal/domain/attendance"
	"github.com/opshift/attendance-backend-go/internal/domain/leave"
	"github.com/opshift/attendance-backend-go/internal/domain/shift"
)

func strPtr(s string) *string { return &s }

// ==========================================
// ATTENDANCE CATALOG DEFAULTS
// ==========================================

// GetDefaultAttendanceTypes returns the day classification catalog every
// company starts with. The punch state machine requires at least P, A
// and L to exist.
func GetDefaultAttendanceTypes(companyID string) []attendance.Type {
	return []attendance.Type{
		{
			CompanyID: companyID,
			Title:     "Present",
			Code:      attendance.TypeCodePresent,
			ColorCode: strPtr("#4CAF50"),
		},
		{
			CompanyID: companyID,
			Title:     "Absent",
			Code:      attendance.TypeCodeAbsent,
			ColorCode: strPtr("#F44336"),
		},
		{
			CompanyID: companyID,
			Title:     "Late",
			Code:      attendance.TypeCodeLate,
			ColorCode: strPtr("#FF9800"),
		},
		{
			CompanyID: companyID,
			Title:     "Half Day",
			Code:      attendance.TypeCodeHalfDay,
			ColorCode: strPtr("#9C27B0"),
		},
		{
			CompanyID: companyID,
			Title:     "Work From Home",
			Code:      attendance.TypeCodeWFH,
			ColorCode: strPtr("#2196F3"),
		},
		{
			CompanyID: companyID,
			Title:     "On Leave",
			Code:      "OL",
			ColorCode: strPtr("#607D8B"),
			IsLeave:   true,
		},
	}
}

// GetDefaultActions returns the recordable punch actions.
func GetDefaultActions() []attendance.Action {
	return []attendance.Action{
		{Name: "Check In", Code: attendance.ActionCheckIn, Category: "session", IsActive: true},
		{Name: "Check Out", Code: attendance.ActionCheckOut, Category: "session", IsActive: true},
		{Name: "Break Start", Code: attendance.ActionBreakStart, Category: attendance.BreakCategoryBreak, IsActive: true},
		{Name: "Break End", Code: attendance.ActionBreakEnd, Category: attendance.BreakCategoryBreak, IsActive: true},
		{Name: "Lunch Start", Code: attendance.ActionLunchStart, Category: attendance.BreakCategoryLunch, IsActive: true},
		{Name: "Lunch End", Code: attendance.ActionLunchEnd, Category: attendance.BreakCategoryLunch, IsActive: true},
	}
}

// GetDefaultSources returns the punch origin catalog.
func GetDefaultSources() []attendance.Source {
	return []attendance.Source{
		{Name: "Web Portal", Code: "web", IsActive: true},
		{Name: "Mobile App", Code: "mobile", IsActive: true},
		{Name: "Biometric Device", Code: "biometric", IsActive: true},
	}
}

// ==========================================
// LEAVE TYPE DEFAULTS
// ==========================================

// GetDefaultLeaveTypes returns the standard leave categories. Loss of
// Pay is the only one outside the balance ledger.
func GetDefaultLeaveTypes(companyID string) []leave.Type {
	return []leave.Type{
		{
			CompanyID:           companyID,
			Title:               "Annual Leave",
			Code:                "AL",
			ColorCode:           strPtr("#4CAF50"),
			DefaultAllottedDays: 12,
			MaxAllottedDays:     24,
			IsPaid:              true,
			RequiresApproval:    true,
		},
		{
			CompanyID:           companyID,
			Title:               "Sick Leave",
			Code:                "SL",
			ColorCode:           strPtr("#F44336"),
			DefaultAllottedDays: 10,
			MaxAllottedDays:     15,
			IsPaid:              true,
			IsMedical:           true,
			RequiresApproval:    true,
			RequiresAttachment:  true,
		},
		{
			CompanyID:           companyID,
			Title:               "Casual Leave",
			Code:                "CL",
			ColorCode:           strPtr("#2196F3"),
			DefaultAllottedDays: 6,
			MaxAllottedDays:     12,
			IsPaid:              true,
			RequiresApproval:    true,
		},
		{
			CompanyID:        companyID,
			Title:            "Loss of Pay",
			Code:             "LOP",
			ColorCode:        strPtr("#9E9E9E"),
			IsLossOfPay:      true,
			RequiresApproval: true,
		},
	}
}

// ==========================================
// SHIFT DEFAULTS
// ==========================================

// GetDefaultShift returns the standard office shift definition.
func GetDefaultShift(companyID string) shift.Shift {
	return shift.Shift{
		CompanyID:   companyID,
		Code:        "STD",
		Name:        "Standard Office Hours",
		Description: strPtr("Default 09:00-17:00 working day"),
	}
}

// GetDefaultSubShifts returns the windows of the standard shift.
func GetDefaultSubShifts(shiftID string) []shift.SubShift {
	return []shift.SubShift{
		{
			ShiftID: shiftID,
			Title:   "Regular",
			Window: shift.Window{
				Start: shift.NewClock(9, 0),
				End:   shift.NewClock(17, 0),
			},
			Active: true,
		},
	}
}
