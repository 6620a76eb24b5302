package shift

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var jakarta = time.FixedZone("WIB", 7*3600)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, jakarta)
}

func at(date time.Time, h, min int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), h, min, 0, 0, date.Location())
}

func TestWindowDurationMinutes(t *testing.T) {
	cases := []struct {
		name   string
		window Window
		want   int
	}{
		{"standard day shift", Window{NewClock(9, 0), NewClock(17, 0)}, 480},
		{"half day", Window{NewClock(9, 0), NewClock(13, 0)}, 240},
		{"overnight 22:00-06:00", Window{NewClock(22, 0), NewClock(6, 0)}, 480},
		{"overnight 23:30-00:30", Window{NewClock(23, 30), NewClock(0, 30)}, 60},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.window.DurationMinutes())
		})
	}
}

func TestWindowContains(t *testing.T) {
	dayShift := Window{NewClock(9, 0), NewClock(17, 0)}
	assert.True(t, dayShift.Contains(NewClock(9, 0)))
	assert.True(t, dayShift.Contains(NewClock(12, 30)))
	assert.False(t, dayShift.Contains(NewClock(17, 0)))
	assert.False(t, dayShift.Contains(NewClock(8, 59)))

	night := Window{NewClock(22, 0), NewClock(6, 0)}
	assert.True(t, night.Contains(NewClock(23, 0)))
	assert.True(t, night.Contains(NewClock(1, 30)))
	assert.False(t, night.Contains(NewClock(12, 0)))
	assert.False(t, night.Contains(NewClock(6, 0)))
}

func TestLateMinutes(t *testing.T) {
	date := day(2024, time.June, 10)
	window := Window{NewClock(9, 0), NewClock(17, 0)}

	t.Run("within grace is not late", func(t *testing.T) {
		assert.Equal(t, 0, LateMinutes(&window, at(date, 9, 10), date, 15))
		assert.Equal(t, 0, LateMinutes(&window, at(date, 9, 15), date, 15))
	})

	t.Run("check-in 09:20 with 15min grace is 5 late", func(t *testing.T) {
		assert.Equal(t, 5, LateMinutes(&window, at(date, 9, 20), date, 15))
	})

	t.Run("early check-in never negative", func(t *testing.T) {
		assert.Equal(t, 0, LateMinutes(&window, at(date, 8, 0), date, 15))
	})

	t.Run("no window means no lateness", func(t *testing.T) {
		assert.Equal(t, 0, LateMinutes(nil, at(date, 13, 0), date, 15))
	})

	t.Run("overnight check-in after midnight uses the session day", func(t *testing.T) {
		night := Window{NewClock(22, 0), NewClock(6, 0)}
		// Session day is the day the shift started; a 22:40 punch on that
		// day against a 22:00 start with 15min grace is 25 minutes late.
		assert.Equal(t, 25, LateMinutes(&night, at(date, 22, 40), date, 15))
	})
}

func TestLateMinutesMatchesClosedForm(t *testing.T) {
	date := day(2024, time.March, 4)
	window := Window{NewClock(9, 0), NewClock(17, 0)}
	grace := 10

	for minuteOfDay := 8 * 60; minuteOfDay <= 12*60; minuteOfDay += 7 {
		checkIn := at(date, minuteOfDay/60, minuteOfDay%60)
		want := minuteOfDay - (9*60 + grace)
		if want < 0 {
			want = 0
		}
		assert.Equal(t, want, LateMinutes(&window, checkIn, date, grace), "check-in at %s", checkIn)
	}
}

func TestOvertimeMinutes(t *testing.T) {
	assert.Equal(t, 0, OvertimeMinutes(480, 480))
	assert.Equal(t, 30, OvertimeMinutes(510, 480))
	assert.Equal(t, 0, OvertimeMinutes(300, 480))
	// No sub-shift attached: default 8h day applies.
	assert.Equal(t, 60, OvertimeMinutes(540, 0))
}

func TestEarlyExitAndOvertime(t *testing.T) {
	date := day(2024, time.June, 10)

	t.Run("day shift early exit", func(t *testing.T) {
		window := Window{NewClock(9, 0), NewClock(17, 0)}
		early, overtime := EarlyExitAndOvertime(&window, at(date, 16, 30), date)
		assert.Equal(t, 30, early)
		assert.Equal(t, 0, overtime)
	})

	t.Run("day shift overtime", func(t *testing.T) {
		window := Window{NewClock(9, 0), NewClock(17, 0)}
		early, overtime := EarlyExitAndOvertime(&window, at(date, 18, 15), date)
		assert.Equal(t, 0, early)
		assert.Equal(t, 75, overtime)
	})

	t.Run("exactly at shift end counts as overtime zero", func(t *testing.T) {
		window := Window{NewClock(9, 0), NewClock(17, 0)}
		early, overtime := EarlyExitAndOvertime(&window, at(date, 17, 0), date)
		assert.Equal(t, 0, early)
		assert.Equal(t, 0, overtime)
	})

	t.Run("overnight checkout at 01:30 measures against 06:00 next day", func(t *testing.T) {
		window := Window{NewClock(22, 0), NewClock(6, 0)}
		nextDay := date.AddDate(0, 0, 1)
		early, overtime := EarlyExitAndOvertime(&window, at(nextDay, 1, 30), date)
		assert.Equal(t, 270, early) // 01:30 -> 06:00 on June 11
		assert.Equal(t, 0, overtime)
	})

	t.Run("overnight checkout past the boundary", func(t *testing.T) {
		window := Window{NewClock(22, 0), NewClock(6, 0)}
		nextDay := date.AddDate(0, 0, 1)
		early, overtime := EarlyExitAndOvertime(&window, at(nextDay, 7, 0), date)
		assert.Equal(t, 0, early)
		assert.Equal(t, 60, overtime)
	})
}

func TestWorkedMinutes(t *testing.T) {
	date := day(2024, time.June, 10)
	in := at(date, 9, 0)
	out := at(date, 13, 0)

	assert.Equal(t, 240, WorkedMinutes(&in, &out))
	assert.Equal(t, 0, WorkedMinutes(nil, &out))
	assert.Equal(t, 0, WorkedMinutes(&in, nil))

	inverted := at(date, 8, 0)
	assert.Equal(t, 0, WorkedMinutes(&in, &inverted))
}

func TestBreakDuration(t *testing.T) {
	date := day(2024, time.June, 10)
	assert.Equal(t, 45, BreakDuration(at(date, 12, 0), at(date, 12, 45)))
	assert.Equal(t, 0, BreakDuration(at(date, 12, 0), at(date, 12, 0)))
	assert.Equal(t, 0, BreakDuration(at(date, 13, 0), at(date, 12, 0)))
}
