package attendance

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opshift/attendance-backend-go/internal/config"
	"github.com/opshift/attendance-backend-go/internal/domain/attendance"
	"github.com/opshift/attendance-backend-go/internal/domain/shift"
	"github.com/opshift/attendance-backend-go/internal/pkg/clock"
	"github.com/opshift/attendance-backend-go/internal/pkg/validator"
)

// ----------------------------------------------------------------------
// In-memory fakes. The punch state machine only needs repository
// behavior, so a live database is not required to exercise it.
// ----------------------------------------------------------------------

type fakeTxManager struct{}

func (fakeTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

type fakeRecordRepo struct {
	seq     int
	records map[string]*attendance.Record
}

func newFakeRecordRepo() *fakeRecordRepo {
	return &fakeRecordRepo{records: map[string]*attendance.Record{}}
}

func (f *fakeRecordRepo) Create(_ context.Context, rec attendance.Record) (attendance.Record, error) {
	f.seq++
	rec.ID = fmt.Sprintf("rec-%d", f.seq)
	rec.CreatedAt = time.Now()
	rec.UpdatedAt = rec.CreatedAt
	stored := rec
	f.records[rec.ID] = &stored
	return rec, nil
}

func (f *fakeRecordRepo) GetByID(_ context.Context, id, companyID string) (attendance.Record, error) {
	rec, ok := f.records[id]
	if !ok || rec.Deleted || rec.CompanyID != companyID {
		return attendance.Record{}, attendance.ErrRecordNotFound
	}
	return *rec, nil
}

func (f *fakeRecordRepo) GetForDay(_ context.Context, employeeID string, date time.Time, companyID string) (*attendance.Record, error) {
	for _, rec := range f.records {
		if rec.Deleted {
			continue
		}
		if rec.EmployeeID == employeeID && rec.CompanyID == companyID && sameDay(rec.Date, date) {
			out := *rec
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeRecordRepo) GetForDayLocked(ctx context.Context, employeeID string, date time.Time, companyID string) (*attendance.Record, error) {
	return f.GetForDay(ctx, employeeID, date, companyID)
}

func (f *fakeRecordRepo) Update(_ context.Context, rec attendance.Record) error {
	stored, ok := f.records[rec.ID]
	if !ok {
		return attendance.ErrRecordNotFound
	}
	rec.CreatedAt = stored.CreatedAt
	rec.UpdatedAt = time.Now()
	*stored = rec
	return nil
}

func (f *fakeRecordRepo) List(_ context.Context, filter attendance.RecordFilter, companyID string) ([]attendance.Record, int64, error) {
	var out []attendance.Record
	for _, rec := range f.records {
		if rec.Deleted || rec.CompanyID != companyID {
			continue
		}
		if filter.EmployeeID != nil && rec.EmployeeID != *filter.EmployeeID {
			continue
		}
		out = append(out, *rec)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRecordRepo) ListByDateRange(_ context.Context, employeeID string, start, end time.Time, companyID string) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, rec := range f.records {
		if rec.Deleted || rec.CompanyID != companyID || rec.EmployeeID != employeeID {
			continue
		}
		if rec.Date.Before(start) || rec.Date.After(end) {
			continue
		}
		out = append(out, *rec)
	}
	return out, nil
}

func (f *fakeRecordRepo) KnownEmployeeIDs(_ context.Context, companyID string) ([]string, error) {
	seen := map[string]struct{}{}
	var out []string
	for _, rec := range f.records {
		if rec.CompanyID != companyID {
			continue
		}
		if _, ok := seen[rec.EmployeeID]; ok {
			continue
		}
		seen[rec.EmployeeID] = struct{}{}
		out = append(out, rec.EmployeeID)
	}
	return out, nil
}

func (f *fakeRecordRepo) EmployeeIDsWithRecordOn(_ context.Context, date time.Time, companyID string) ([]string, error) {
	var out []string
	for _, rec := range f.records {
		if rec.Deleted || rec.CompanyID != companyID {
			continue
		}
		if sameDay(rec.Date, date) {
			out = append(out, rec.EmployeeID)
		}
	}
	return out, nil
}

func (f *fakeRecordRepo) SoftDelete(_ context.Context, id, companyID string) error {
	rec, ok := f.records[id]
	if !ok || rec.Deleted || rec.CompanyID != companyID {
		return attendance.ErrRecordNotFound
	}
	rec.Deleted = true
	return nil
}

type fakeBreakRepo struct {
	seq    int
	breaks []*attendance.Break
}

func (f *fakeBreakRepo) Open(_ context.Context, b attendance.Break) (attendance.Break, error) {
	f.seq++
	b.ID = fmt.Sprintf("brk-%d", f.seq)
	b.CreatedAt = time.Now()
	stored := b
	f.breaks = append(f.breaks, &stored)
	return b, nil
}

func (f *fakeBreakRepo) GetOpenByCategory(_ context.Context, recordID, category string) (*attendance.Break, error) {
	for _, b := range f.breaks {
		if b.RecordID == recordID && b.Category == category && b.EndedAt == nil {
			out := *b
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeBreakRepo) Close(_ context.Context, id string, endedAt time.Time) error {
	for _, b := range f.breaks {
		if b.ID == id {
			b.EndedAt = &endedAt
			return nil
		}
	}
	return errors.New("break not found")
}

func (f *fakeBreakRepo) ListByRecord(_ context.Context, recordID string) ([]attendance.Break, error) {
	var out []attendance.Break
	for _, b := range f.breaks {
		if b.RecordID == recordID {
			out = append(out, *b)
		}
	}
	return out, nil
}

type fakeTypeRepo struct {
	types map[string]attendance.Type
}

func (f *fakeTypeRepo) Create(_ context.Context, t attendance.Type) (attendance.Type, error) {
	f.types[t.Code] = t
	return t, nil
}

func (f *fakeTypeRepo) GetByCode(_ context.Context, code, _ string) (attendance.Type, error) {
	t, ok := f.types[code]
	if !ok {
		return attendance.Type{}, errors.New("attendance type not found")
	}
	return t, nil
}

func (f *fakeTypeRepo) List(_ context.Context, _ string) ([]attendance.Type, error) {
	var out []attendance.Type
	for _, t := range f.types {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeTypeRepo) Update(_ context.Context, t attendance.Type) error {
	f.types[t.Code] = t
	return nil
}

func (f *fakeTypeRepo) SoftDelete(_ context.Context, _, _ string) error { return nil }

type fakeSubShiftRepo struct {
	subShifts []shift.SubShift
}

func (f *fakeSubShiftRepo) Create(_ context.Context, ss shift.SubShift) (shift.SubShift, error) {
	f.subShifts = append(f.subShifts, ss)
	return ss, nil
}

func (f *fakeSubShiftRepo) GetByID(_ context.Context, id string) (shift.SubShift, error) {
	for _, ss := range f.subShifts {
		if ss.ID == id {
			return ss, nil
		}
	}
	return shift.SubShift{}, shift.ErrSubShiftNotFound
}

func (f *fakeSubShiftRepo) GetByShiftID(_ context.Context, shiftID string) ([]shift.SubShift, error) {
	var out []shift.SubShift
	for _, ss := range f.subShifts {
		if ss.ShiftID == shiftID {
			out = append(out, ss)
		}
	}
	return out, nil
}

func (f *fakeSubShiftRepo) ListActiveByCompany(_ context.Context, _ string) ([]shift.SubShift, error) {
	var out []shift.SubShift
	for _, ss := range f.subShifts {
		if ss.Active {
			out = append(out, ss)
		}
	}
	return out, nil
}

type fakeAssignmentRepo struct {
	byEmployee map[string]shift.Assignment
}

func (f *fakeAssignmentRepo) Assign(_ context.Context, a shift.Assignment) (shift.Assignment, error) {
	f.byEmployee[a.EmployeeID] = a
	return a, nil
}

func (f *fakeAssignmentRepo) GetByEmployee(_ context.Context, employeeID, _ string) (shift.Assignment, error) {
	a, ok := f.byEmployee[employeeID]
	if !ok {
		return shift.Assignment{}, shift.ErrShiftNotFound
	}
	return a, nil
}

type fakeShiftRepo struct{}

func (fakeShiftRepo) Create(_ context.Context, s shift.Shift) (shift.Shift, error) { return s, nil }
func (fakeShiftRepo) GetByID(_ context.Context, _, _ string) (shift.Shift, error) {
	return shift.Shift{}, shift.ErrShiftNotFound
}
func (fakeShiftRepo) List(_ context.Context, _ string) ([]shift.Shift, error) { return nil, nil }
func (fakeShiftRepo) Update(_ context.Context, _ shift.Shift) error           { return nil }
func (fakeShiftRepo) Delete(_ context.Context, _, _ string) error             { return nil }

// ----------------------------------------------------------------------
// Harness
// ----------------------------------------------------------------------

type testEnv struct {
	svc     attendance.Service
	records *fakeRecordRepo
	breaks  *fakeBreakRepo
	types   *fakeTypeRepo
}

func testPolicy() config.PolicyConfig {
	return config.PolicyConfig{
		GracePeriodMinutes:  15,
		EarlyBufferMinutes:  30,
		MinimumWorkMinutes:  240,
		DefaultShiftMinutes: 480,
		DefaultCompanyID:    "comp-1",
	}
}

// newTestEnv wires the service against fakes: a standard 09:00-17:00
// sub-shift assigned to emp-1, types P/L/A seeded, clock pinned.
func newTestEnv(now time.Time, window shift.Window) *testEnv {
	records := newFakeRecordRepo()
	breaks := &fakeBreakRepo{}
	types := &fakeTypeRepo{types: map[string]attendance.Type{
		attendance.TypeCodePresent: {ID: "type-p", Code: attendance.TypeCodePresent, Title: "Present"},
		attendance.TypeCodeLate:    {ID: "type-l", Code: attendance.TypeCodeLate, Title: "Late"},
		attendance.TypeCodeAbsent:  {ID: "type-a", Code: attendance.TypeCodeAbsent, Title: "Absent"},
	}}
	subShifts := &fakeSubShiftRepo{subShifts: []shift.SubShift{
		{ID: "ss-1", ShiftID: "shift-1", Title: "Regular", Window: window, Active: true},
	}}
	assignments := &fakeAssignmentRepo{byEmployee: map[string]shift.Assignment{
		"emp-1": {ID: "asg-1", EmployeeID: "emp-1", ShiftID: "shift-1", CompanyID: "comp-1"},
	}}

	svc := NewAttendanceService(
		fakeTxManager{},
		clock.Fixed{Instant: now},
		testPolicy(),
		records,
		breaks,
		types,
		subShifts,
		assignments,
		fakeShiftRepo{},
	)
	return &testEnv{svc: svc, records: records, breaks: breaks, types: types}
}

func at(value string) time.Time {
	t, err := time.Parse("2006-01-02 15:04:05", value)
	if err != nil {
		panic(err)
	}
	return t
}

func (e *testEnv) punch(t *testing.T, action, timestamp string) (attendance.PunchResponse, error) {
	t.Helper()
	req := attendance.PunchRequest{EmployeeID: "emp-1", ActionCode: action}
	if timestamp != "" {
		req.Timestamp = &timestamp
	}
	return e.svc.Punch(context.Background(), req)
}

var dayShift = shift.Window{Start: shift.NewClock(9, 0), End: shift.NewClock(17, 0)}

// ----------------------------------------------------------------------
// Check-in
// ----------------------------------------------------------------------

func TestPunchCheckInOnTime(t *testing.T) {
	env := newTestEnv(at("2024-06-10 09:05:00"), dayShift)

	resp, err := env.punch(t, attendance.ActionCheckIn, "")
	require.NoError(t, err)

	assert.Equal(t, attendance.ActionCheckIn, resp.Action)
	assert.Equal(t, "2024-06-10", resp.Date)
	assert.Equal(t, attendance.TypeCodePresent, resp.TypeCode)
	assert.False(t, resp.IsLate)
	assert.Equal(t, 0, resp.LateMinutes)
	require.NotNil(t, resp.CheckInTime)
	assert.Equal(t, "2024-06-10 09:05:00", *resp.CheckInTime)
}

func TestPunchCheckInWithinGraceIsNotLate(t *testing.T) {
	env := newTestEnv(at("2024-06-10 09:15:00"), dayShift)

	resp, err := env.punch(t, attendance.ActionCheckIn, "")
	require.NoError(t, err)
	assert.False(t, resp.IsLate)
	assert.Equal(t, 0, resp.LateMinutes)
}

func TestPunchCheckInLate(t *testing.T) {
	env := newTestEnv(at("2024-06-10 09:20:00"), dayShift)

	resp, err := env.punch(t, attendance.ActionCheckIn, "")
	require.NoError(t, err)

	assert.True(t, resp.IsLate)
	assert.Equal(t, 5, resp.LateMinutes)
	assert.Equal(t, attendance.TypeCodeLate, resp.TypeCode)
}

func TestPunchCheckInTooEarly(t *testing.T) {
	env := newTestEnv(at("2024-06-10 08:10:00"), dayShift)

	_, err := env.punch(t, attendance.ActionCheckIn, "")
	assert.ErrorIs(t, err, attendance.ErrTooEarly)
}

func TestPunchCheckInAtBufferBoundary(t *testing.T) {
	env := newTestEnv(at("2024-06-10 08:30:00"), dayShift)

	resp, err := env.punch(t, attendance.ActionCheckIn, "")
	require.NoError(t, err)
	assert.False(t, resp.IsLate)
}

func TestPunchCheckInTwiceRejected(t *testing.T) {
	env := newTestEnv(at("2024-06-10 09:00:00"), dayShift)

	_, err := env.punch(t, attendance.ActionCheckIn, "")
	require.NoError(t, err)

	_, err = env.punch(t, attendance.ActionCheckIn, "2024-06-10 09:30:00")
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestPunchCheckInTakesOverAbsentRecord(t *testing.T) {
	env := newTestEnv(at("2024-06-10 09:05:00"), dayShift)

	absentID := "type-a"
	seeded, err := env.records.Create(context.Background(), attendance.Record{
		EmployeeID:       "emp-1",
		CompanyID:        "comp-1",
		Date:             at("2024-06-10 00:00:00"),
		AttendanceTypeID: &absentID,
	})
	require.NoError(t, err)

	resp, err := env.punch(t, attendance.ActionCheckIn, "")
	require.NoError(t, err)

	assert.Equal(t, seeded.ID, resp.RecordID)
	assert.Equal(t, attendance.TypeCodePresent, resp.TypeCode)

	stored, err := env.records.GetByID(context.Background(), seeded.ID, "comp-1")
	require.NoError(t, err)
	require.NotNil(t, stored.CheckInAt)
	assert.Equal(t, "type-p", *stored.AttendanceTypeID)
}

func TestPunchCheckInWithoutPresentType(t *testing.T) {
	env := newTestEnv(at("2024-06-10 09:05:00"), dayShift)
	delete(env.types.types, attendance.TypeCodePresent)

	_, err := env.punch(t, attendance.ActionCheckIn, "")
	assert.ErrorIs(t, err, attendance.ErrConfigurationMissing)
}

func TestPunchUnknownActionRejected(t *testing.T) {
	env := newTestEnv(at("2024-06-10 09:05:00"), dayShift)

	_, err := env.punch(t, "teleport", "")
	assert.ErrorIs(t, err, attendance.ErrActionNotRecognized)
}

// ----------------------------------------------------------------------
// Check-out
// ----------------------------------------------------------------------

func TestPunchCheckOutWithOvertime(t *testing.T) {
	env := newTestEnv(at("2024-06-10 09:00:00"), dayShift)

	_, err := env.punch(t, attendance.ActionCheckIn, "")
	require.NoError(t, err)

	resp, err := env.punch(t, attendance.ActionCheckOut, "2024-06-10 17:30:00")
	require.NoError(t, err)

	assert.Equal(t, 510, resp.WorkedMinutes)
	assert.Equal(t, 0, resp.EarlyExitMinutes)
	assert.Equal(t, 30, resp.OvertimeMinutes)
	assert.InDelta(t, 8.5, resp.WorkingHours, 0.001)
}

func TestPunchCheckOutEarlyExit(t *testing.T) {
	env := newTestEnv(at("2024-06-10 09:00:00"), dayShift)

	_, err := env.punch(t, attendance.ActionCheckIn, "")
	require.NoError(t, err)

	resp, err := env.punch(t, attendance.ActionCheckOut, "2024-06-10 16:00:00")
	require.NoError(t, err)

	assert.Equal(t, 420, resp.WorkedMinutes)
	assert.Equal(t, 60, resp.EarlyExitMinutes)
	assert.Equal(t, 0, resp.OvertimeMinutes)
}

func TestPunchCheckOutExactlyAtShiftEnd(t *testing.T) {
	env := newTestEnv(at("2024-06-10 09:00:00"), dayShift)

	_, err := env.punch(t, attendance.ActionCheckIn, "")
	require.NoError(t, err)

	resp, err := env.punch(t, attendance.ActionCheckOut, "2024-06-10 17:00:00")
	require.NoError(t, err)

	assert.Equal(t, 0, resp.EarlyExitMinutes)
	assert.Equal(t, 0, resp.OvertimeMinutes)
}

func TestPunchCheckOutBelowMinimumHours(t *testing.T) {
	env := newTestEnv(at("2024-06-10 09:00:00"), dayShift)

	_, err := env.punch(t, attendance.ActionCheckIn, "")
	require.NoError(t, err)

	_, err = env.punch(t, attendance.ActionCheckOut, "2024-06-10 10:00:00")
	assert.ErrorIs(t, err, attendance.ErrMinimumHoursNotMet)

	// The rejected punch must not have closed the session.
	rec, err := env.records.GetForDay(context.Background(), "emp-1", at("2024-06-10 00:00:00"), "comp-1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.True(t, rec.Open())
}

func TestPunchCheckOutExactlyMinimumHours(t *testing.T) {
	env := newTestEnv(at("2024-06-10 09:00:00"), dayShift)

	_, err := env.punch(t, attendance.ActionCheckIn, "")
	require.NoError(t, err)

	resp, err := env.punch(t, attendance.ActionCheckOut, "2024-06-10 13:00:00")
	require.NoError(t, err)
	assert.Equal(t, 240, resp.WorkedMinutes)
}

func TestPunchCheckOutWithoutCheckIn(t *testing.T) {
	env := newTestEnv(at("2024-06-10 17:00:00"), dayShift)

	_, err := env.punch(t, attendance.ActionCheckOut, "")
	assert.ErrorIs(t, err, attendance.ErrNoOpenCheckIn)
}

// ----------------------------------------------------------------------
// Overnight shifts
// ----------------------------------------------------------------------

func TestOvernightSessionCrossesMidnight(t *testing.T) {
	nightShift := shift.Window{Start: shift.NewClock(22, 0), End: shift.NewClock(6, 0)}
	env := newTestEnv(at("2024-06-10 22:05:00"), nightShift)

	in, err := env.punch(t, attendance.ActionCheckIn, "")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-10", in.Date)
	assert.False(t, in.IsLate)

	// The next-morning check-out closes the record dated the previous day.
	out, err := env.punch(t, attendance.ActionCheckOut, "2024-06-11 06:30:00")
	require.NoError(t, err)

	assert.Equal(t, "2024-06-10", out.Date)
	assert.Equal(t, 505, out.WorkedMinutes)
	assert.Equal(t, 0, out.EarlyExitMinutes)
	assert.Equal(t, 30, out.OvertimeMinutes)
}

func TestOvernightCheckInAfterMidnightJoinsPreviousDay(t *testing.T) {
	nightShift := shift.Window{Start: shift.NewClock(22, 0), End: shift.NewClock(6, 0)}
	env := newTestEnv(at("2024-06-11 01:30:00"), nightShift)

	resp, err := env.punch(t, attendance.ActionCheckIn, "")
	require.NoError(t, err)

	assert.Equal(t, "2024-06-10", resp.Date)
	assert.True(t, resp.IsLate)
	// 22:00 start, 15 minutes grace, checked in at 01:30 the next day.
	assert.Equal(t, 195, resp.LateMinutes)
}

func TestOvernightStatusReportsPreviousDaySession(t *testing.T) {
	nightShift := shift.Window{Start: shift.NewClock(22, 0), End: shift.NewClock(6, 0)}
	env := newTestEnv(at("2024-06-11 01:00:00"), nightShift)

	_, err := env.punch(t, attendance.ActionCheckIn, "2024-06-10 22:05:00")
	require.NoError(t, err)

	// The session opened before midnight is the record a punch would act
	// on, so the snapshot must report it too.
	status, err := env.svc.GetStatus(context.Background(), "emp-1", "")
	require.NoError(t, err)

	assert.True(t, status.IsCheckedIn)
	assert.Equal(t, "2024-06-10", status.Date)
	require.NotNil(t, status.CheckInTime)
	assert.Equal(t, "2024-06-10 22:05:00", *status.CheckInTime)
	assert.Equal(t, 175, status.WorkedMinutes)
}

// ----------------------------------------------------------------------
// Breaks
// ----------------------------------------------------------------------

func TestBreakLifecycle(t *testing.T) {
	env := newTestEnv(at("2024-06-10 09:00:00"), dayShift)

	_, err := env.punch(t, attendance.ActionCheckIn, "")
	require.NoError(t, err)

	_, err = env.punch(t, attendance.ActionBreakStart, "2024-06-10 10:30:00")
	require.NoError(t, err)

	_, err = env.punch(t, attendance.ActionBreakStart, "2024-06-10 10:35:00")
	assert.ErrorIs(t, err, attendance.ErrBreakAlreadyOpen)

	// Lunch pairs independently of the generic break.
	_, err = env.punch(t, attendance.ActionLunchStart, "2024-06-10 12:00:00")
	require.NoError(t, err)

	_, err = env.punch(t, attendance.ActionBreakEnd, "2024-06-10 10:45:00")
	require.NoError(t, err)

	_, err = env.punch(t, attendance.ActionBreakEnd, "2024-06-10 10:50:00")
	assert.ErrorIs(t, err, attendance.ErrNoOpenBreak)

	_, err = env.punch(t, attendance.ActionLunchEnd, "2024-06-10 12:45:00")
	require.NoError(t, err)
}

func TestBreakWithoutOpenSession(t *testing.T) {
	env := newTestEnv(at("2024-06-10 10:00:00"), dayShift)

	_, err := env.punch(t, attendance.ActionBreakStart, "")
	assert.ErrorIs(t, err, attendance.ErrNoOpenCheckIn)

	_, err = env.punch(t, attendance.ActionLunchEnd, "")
	assert.ErrorIs(t, err, attendance.ErrNoOpenCheckIn)
}

// ----------------------------------------------------------------------
// Status
// ----------------------------------------------------------------------

func TestGetStatusIsIdempotent(t *testing.T) {
	env := newTestEnv(at("2024-06-10 11:00:00"), dayShift)

	_, err := env.punch(t, attendance.ActionCheckIn, "2024-06-10 09:00:00")
	require.NoError(t, err)
	_, err = env.punch(t, attendance.ActionBreakStart, "2024-06-10 10:30:00")
	require.NoError(t, err)

	first, err := env.svc.GetStatus(context.Background(), "emp-1", "")
	require.NoError(t, err)
	second, err := env.svc.GetStatus(context.Background(), "emp-1", "")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	assert.True(t, first.IsCheckedIn)
	assert.Equal(t, 120, first.WorkedMinutes)
	require.NotNil(t, first.OpenBreak)
	assert.Equal(t, attendance.BreakCategoryBreak, first.OpenBreak.Category)
	assert.Equal(t, 1, first.BreaksToday)
}

func TestGetStatusWithoutRecord(t *testing.T) {
	env := newTestEnv(at("2024-06-10 08:00:00"), dayShift)

	status, err := env.svc.GetStatus(context.Background(), "emp-1", "")
	require.NoError(t, err)

	assert.False(t, status.IsCheckedIn)
	assert.Nil(t, status.CheckInTime)
	assert.Nil(t, status.OpenBreak)
}

// ----------------------------------------------------------------------
// Absentee marking
// ----------------------------------------------------------------------

func TestMarkAbsentees(t *testing.T) {
	env := newTestEnv(at("2024-06-10 18:00:00"), dayShift)

	// emp-2 appeared last week so the batch knows about them.
	_, err := env.records.Create(context.Background(), attendance.Record{
		EmployeeID: "emp-2",
		CompanyID:  "comp-1",
		Date:       at("2024-06-03 00:00:00"),
	})
	require.NoError(t, err)

	_, err = env.punch(t, attendance.ActionCheckIn, "2024-06-10 09:00:00")
	require.NoError(t, err)

	marked, err := env.svc.MarkAbsentees(context.Background(), at("2024-06-10 00:00:00"), "")
	require.NoError(t, err)
	assert.Equal(t, 1, marked)

	rec, err := env.records.GetForDay(context.Background(), "emp-2", at("2024-06-10 00:00:00"), "comp-1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	require.NotNil(t, rec.AttendanceTypeID)
	assert.Equal(t, "type-a", *rec.AttendanceTypeID)
	assert.Nil(t, rec.CheckInAt)
	require.NotNil(t, rec.Remarks)
	assert.Equal(t, "Auto-marked absent", *rec.Remarks)
}

func TestMarkAbsenteesIsIdempotent(t *testing.T) {
	env := newTestEnv(at("2024-06-10 18:00:00"), dayShift)

	_, err := env.records.Create(context.Background(), attendance.Record{
		EmployeeID: "emp-2",
		CompanyID:  "comp-1",
		Date:       at("2024-06-03 00:00:00"),
	})
	require.NoError(t, err)

	first, err := env.svc.MarkAbsentees(context.Background(), at("2024-06-10 00:00:00"), "")
	require.NoError(t, err)
	second, err := env.svc.MarkAbsentees(context.Background(), at("2024-06-10 00:00:00"), "")
	require.NoError(t, err)

	assert.Equal(t, 1, first)
	assert.Equal(t, 0, second)
}

// ----------------------------------------------------------------------
// Corrections
// ----------------------------------------------------------------------

func TestUpdateRecomputesDerivedFields(t *testing.T) {
	env := newTestEnv(at("2024-06-10 09:00:00"), dayShift)

	in, err := env.punch(t, attendance.ActionCheckIn, "")
	require.NoError(t, err)

	checkOut := "2024-06-10 18:00:00"
	resp, err := env.svc.Update(context.Background(), attendance.UpdateRecordRequest{
		ID:         in.RecordID,
		CheckOutAt: &checkOut,
	}, "comp-1")
	require.NoError(t, err)

	assert.InDelta(t, 9.0, resp.WorkingHours, 0.001)
}

func TestUpdateRejectsCheckOutBeforeCheckIn(t *testing.T) {
	env := newTestEnv(at("2024-06-10 09:00:00"), dayShift)

	in, err := env.punch(t, attendance.ActionCheckIn, "")
	require.NoError(t, err)

	checkOut := "2024-06-10 08:00:00"
	_, err = env.svc.Update(context.Background(), attendance.UpdateRecordRequest{
		ID:         in.RecordID,
		CheckOutAt: &checkOut,
	}, "comp-1")

	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	assert.Contains(t, validationErrs.ToMap(), "check_out_at")

	// The rejected correction leaves the record untouched.
	stored, err := env.records.GetByID(context.Background(), in.RecordID, "comp-1")
	require.NoError(t, err)
	assert.Nil(t, stored.CheckOutAt)
}

func TestDeleteHidesRecord(t *testing.T) {
	env := newTestEnv(at("2024-06-10 09:00:00"), dayShift)

	in, err := env.punch(t, attendance.ActionCheckIn, "")
	require.NoError(t, err)

	require.NoError(t, env.svc.Delete(context.Background(), in.RecordID, "comp-1"))

	_, err = env.svc.Get(context.Background(), in.RecordID, "comp-1")
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)

	// Delete of an already deleted record reports not found.
	err = env.svc.Delete(context.Background(), in.RecordID, "comp-1")
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)
}
