package attendance

import "errors"

// Attendance domain errors. All are returned to the caller with no side
// effects; none of them is fatal to the process.
var (
	// Punch state conflicts
	ErrAlreadyCheckedIn   = errors.New("already checked in, please check out first")
	ErrNoOpenCheckIn      = errors.New("no open check-in found for today")
	ErrNoOpenBreak        = errors.New("no open break of this category")
	ErrBreakAlreadyOpen   = errors.New("a break of this category is already open")
	ErrTooEarly           = errors.New("too early to check in")
	ErrMinimumHoursNotMet = errors.New("worked duration is below the minimum required hours")

	// Input errors
	ErrActionNotRecognized = errors.New("action code not recognized")

	// General errors
	ErrRecordNotFound       = errors.New("attendance record not found")
	ErrConfigurationMissing = errors.New("required attendance configuration is missing")
)
