package shift

import "time"

// Pure time-window arithmetic. Everything here is stateless so the
// overnight edge cases and the grace-period policy stay testable without
// touching persistence.

// DefaultShiftMinutes applies when an attendance record has no sub-shift
// attached: an 8-hour working day.
const DefaultShiftMinutes = 480

// LateMinutes returns how many whole minutes the check-in landed past the
// shift start plus grace. Without a window there is nothing to be late
// against. The caller supplies the calendar day of the session; for an
// overnight shift whose check-in falls after midnight that day is the
// session's own date, not the window's.
func LateMinutes(w *Window, checkIn time.Time, date time.Time, graceMinutes int) int {
	if w == nil {
		return 0
	}

	shiftStart := w.Start.On(date)
	graceEnd := shiftStart.Add(time.Duration(graceMinutes) * time.Minute)
	if !checkIn.After(graceEnd) {
		return 0
	}
	return int(checkIn.Sub(graceEnd).Minutes())
}

// OvertimeMinutes is worked time beyond the shift duration, never negative.
func OvertimeMinutes(workedMinutes, shiftDurationMinutes int) int {
	if shiftDurationMinutes <= 0 {
		shiftDurationMinutes = DefaultShiftMinutes
	}
	overtime := workedMinutes - shiftDurationMinutes
	if overtime < 0 {
		return 0
	}
	return overtime
}

// EarlyExitAndOvertime compares a check-out against the shift end.
// Exactly one of the returned values is nonzero: a check-out before the
// boundary yields early-exit minutes, at or after yields overtime. For an
// overnight window a check-out whose time-of-day precedes the window
// start belongs to the next calendar day, so the boundary moves to date+1.
func EarlyExitAndOvertime(w *Window, checkOut time.Time, date time.Time) (earlyExitMinutes, overtimeMinutes int) {
	if w == nil {
		return 0, 0
	}

	endDate := date
	if w.Overnight() && ClockOf(checkOut) < w.Start {
		endDate = date.AddDate(0, 0, 1)
	}
	shiftEnd := w.End.On(endDate)

	if checkOut.Before(shiftEnd) {
		return int(shiftEnd.Sub(checkOut).Minutes()), 0
	}
	return 0, int(checkOut.Sub(shiftEnd).Minutes())
}

// WorkedMinutes is the whole-minute span between check-in and check-out,
// zero when either endpoint is missing or the order is inverted.
func WorkedMinutes(checkIn, checkOut *time.Time) int {
	if checkIn == nil || checkOut == nil {
		return 0
	}
	minutes := int(checkOut.Sub(*checkIn).Minutes())
	if minutes < 0 {
		return 0
	}
	return minutes
}

// BreakDuration is the whole-minute span of one closed break. The caller
// guarantees end is not before start for a single break; a negative span
// still clamps to zero.
func BreakDuration(breakStart, breakEnd time.Time) int {
	minutes := int(breakEnd.Sub(breakStart).Minutes())
	if minutes < 0 {
		return 0
	}
	return minutes
}
