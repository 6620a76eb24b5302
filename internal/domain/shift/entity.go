package shift

import (
	"fmt"
	"time"
)

// Clock is a time of day in minutes since midnight, detached from any
// calendar date. Shift boundaries are stored this way so the same shift
// definition applies to every working day.
type Clock int

func NewClock(hour, minute int) Clock {
	return Clock(hour*60 + minute)
}

// ClockOf extracts the time-of-day from a timestamp.
func ClockOf(t time.Time) Clock {
	return NewClock(t.Hour(), t.Minute())
}

func (c Clock) Hour() int   { return int(c) / 60 }
func (c Clock) Minute() int { return int(c) % 60 }

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// On combines the time-of-day with a calendar date in the date's location.
func (c Clock) On(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), c.Hour(), c.Minute(), 0, 0, date.Location())
}

// Window is a shift's working period. When End < Start the window wraps
// past midnight and all duration arithmetic adds 24h to End first.
type Window struct {
	Start Clock
	End   Clock
}

func (w Window) Overnight() bool {
	return w.End < w.Start
}

// DurationMinutes is the window length, overnight-aware.
func (w Window) DurationMinutes() int {
	if w.Overnight() {
		return 24*60 - int(w.Start) + int(w.End)
	}
	return int(w.End) - int(w.Start)
}

// Contains reports whether the time-of-day falls inside the window,
// start inclusive, end exclusive.
func (w Window) Contains(c Clock) bool {
	if w.Overnight() {
		return c >= w.Start || c < w.End
	}
	return c >= w.Start && c < w.End
}

// Shift is a named work period owned by company configuration. Mutation
// is allowed administratively but never recomputes past attendance.
type Shift struct {
	ID          string
	CompanyID   string
	Code        string
	Name        string
	Description *string
	Deleted     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SubShift is a time-bounded sub-period of a shift used to match a punch
// against a concrete window.
type SubShift struct {
	ID        string
	ShiftID   string
	Title     string
	Window    Window
	Active    bool
	Deleted   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Assignment binds an employee to their default shift.
type Assignment struct {
	ID         string
	EmployeeID string
	ShiftID    string
	CompanyID  string
	CreatedAt  time.Time
}
