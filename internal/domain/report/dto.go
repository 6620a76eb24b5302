package report

// DayRow is one attendance day flattened for summaries and export.
type DayRow struct {
	Date            string  `json:"date"`
	TypeCode        *string `json:"attendance_type,omitempty"`
	CheckInTime     *string `json:"check_in_time,omitempty"`
	CheckOutTime    *string `json:"check_out_time,omitempty"`
	WorkedMinutes   int     `json:"worked_minutes"`
	LateMinutes     int     `json:"late_minutes"`
	OvertimeMinutes int     `json:"overtime_minutes"`
	WorkingHours    float64 `json:"working_hours"`
}

// EmployeeSummary aggregates one employee over a date range.
type EmployeeSummary struct {
	EmployeeID           string   `json:"employee_id"`
	StartDate            string   `json:"start_date"`
	EndDate              string   `json:"end_date"`
	PresentDays          int      `json:"present_days"`
	LateDays             int      `json:"late_days"`
	AbsentDays           int      `json:"absent_days"`
	HalfDays             int      `json:"half_days"`
	WFHDays              int      `json:"wfh_days"`
	LeaveDaysTaken       int      `json:"leave_days_taken"`
	TotalWorkedMinutes   int      `json:"total_worked_minutes"`
	TotalLateMinutes     int      `json:"total_late_minutes"`
	TotalOvertimeMinutes int      `json:"total_overtime_minutes"`
	Days                 []DayRow `json:"days"`
}

// DailyRollup is the company-wide head count for one date.
type DailyRollup struct {
	Date        string `json:"date"`
	PresentCount int   `json:"present_count"`
	LateCount    int   `json:"late_count"`
	AbsentCount  int   `json:"absent_count"`
	OnLeaveCount int   `json:"on_leave_count"`
}
