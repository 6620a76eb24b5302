package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/opshift/attendance-backend-go/internal/config"
	"github.com/opshift/attendance-backend-go/internal/domain/attendance"
	"github.com/opshift/attendance-backend-go/internal/domain/shift"
	"github.com/opshift/attendance-backend-go/internal/pkg/clock"
	"github.com/opshift/attendance-backend-go/internal/pkg/database"
	"github.com/opshift/attendance-backend-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	tx     database.TxManager
	clock  clock.Clock
	policy config.PolicyConfig

	attendance.RecordRepository
	attendance.BreakRepository
	attendance.TypeRepository
	shift.SubShiftRepository
	shift.AssignmentRepository
	shift.ShiftRepository
}

func NewAttendanceService(
	tx database.TxManager,
	clk clock.Clock,
	policy config.PolicyConfig,
	recordRepo attendance.RecordRepository,
	breakRepo attendance.BreakRepository,
	typeRepo attendance.TypeRepository,
	subShiftRepo shift.SubShiftRepository,
	assignmentRepo shift.AssignmentRepository,
	shiftRepo shift.ShiftRepository,
) attendance.Service {
	return &AttendanceServiceImpl{
		tx:                   tx,
		clock:                clk,
		policy:               policy,
		RecordRepository:     recordRepo,
		BreakRepository:      breakRepo,
		TypeRepository:       typeRepo,
		SubShiftRepository:   subShiftRepo,
		AssignmentRepository: assignmentRepo,
		ShiftRepository:      shiftRepo,
	}
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

func (s *AttendanceServiceImpl) companyID(requested string) string {
	if requested != "" {
		return requested
	}
	return s.policy.DefaultCompanyID
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Punch implements attendance.Service.
func (s *AttendanceServiceImpl) Punch(ctx context.Context, req attendance.PunchRequest) (attendance.PunchResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.PunchResponse{}, err
	}

	now := s.clock.Now()
	if override := req.ParsedTimestamp(); override != nil {
		now = *override
	}
	companyID := s.companyID(req.CompanyID)

	switch req.ActionCode {
	case attendance.ActionCheckIn:
		return s.checkIn(ctx, req, now, companyID)
	case attendance.ActionCheckOut:
		return s.checkOut(ctx, req, now, companyID)
	default:
		if _, _, ok := attendance.BreakCategoryFor(req.ActionCode); ok {
			return s.breakPunch(ctx, req, now, companyID)
		}
		return attendance.PunchResponse{}, attendance.ErrActionNotRecognized
	}
}

// resolveWindow finds the sub-shift window governing a punch: the
// employee's assigned shift first, then any active sub-shift of the
// company whose window contains the punch time. A missing shift is not
// an error; the caller falls back to the default working day.
func (s *AttendanceServiceImpl) resolveWindow(ctx context.Context, employeeID, companyID string, at time.Time) (*shift.SubShift, error) {
	punchClock := shift.ClockOf(at)

	assignment, err := s.AssignmentRepository.GetByEmployee(ctx, employeeID, companyID)
	if err == nil {
		subShifts, err := s.SubShiftRepository.GetByShiftID(ctx, assignment.ShiftID)
		if err != nil {
			return nil, fmt.Errorf("failed to get sub-shifts for assigned shift: %w", err)
		}
		for i := range subShifts {
			if subShifts[i].Active && subShifts[i].Window.Contains(punchClock) {
				return &subShifts[i], nil
			}
		}
		// Assigned but punching outside every window: keep the single
		// sub-shift if there is exactly one, so lateness is still
		// measured against it.
		active := make([]shift.SubShift, 0, len(subShifts))
		for i := range subShifts {
			if subShifts[i].Active {
				active = append(active, subShifts[i])
			}
		}
		if len(active) == 1 {
			return &active[0], nil
		}
		return nil, nil
	}
	if !errors.Is(err, shift.ErrShiftNotFound) {
		return nil, fmt.Errorf("failed to get shift assignment: %w", err)
	}

	subShifts, err := s.SubShiftRepository.ListActiveByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active sub-shifts: %w", err)
	}
	for i := range subShifts {
		if subShifts[i].Window.Contains(punchClock) {
			return &subShifts[i], nil
		}
	}
	return nil, nil
}

func (s *AttendanceServiceImpl) checkIn(ctx context.Context, req attendance.PunchRequest, now time.Time, companyID string) (attendance.PunchResponse, error) {
	presentType, err := s.TypeRepository.GetByCode(ctx, attendance.TypeCodePresent, companyID)
	if err != nil {
		return attendance.PunchResponse{}, fmt.Errorf("attendance type %q: %w", attendance.TypeCodePresent, attendance.ErrConfigurationMissing)
	}
	lateType, err := s.TypeRepository.GetByCode(ctx, attendance.TypeCodeLate, companyID)
	if err != nil {
		return attendance.PunchResponse{}, fmt.Errorf("attendance type %q: %w", attendance.TypeCodeLate, attendance.ErrConfigurationMissing)
	}

	subShift, err := s.resolveWindow(ctx, req.EmployeeID, companyID, now)
	if err != nil {
		return attendance.PunchResponse{}, err
	}

	var window *shift.Window
	date := dayOf(now)
	if subShift != nil {
		window = &subShift.Window
		// An overnight check-in after midnight belongs to the session
		// that started the previous calendar day.
		if window.Overnight() && shift.ClockOf(now) < window.End {
			date = date.AddDate(0, 0, -1)
		}

		earliestAllowed := window.Start.On(date).Add(-time.Duration(s.policy.EarlyBufferMinutes) * time.Minute)
		if now.Before(earliestAllowed) {
			return attendance.PunchResponse{}, attendance.ErrTooEarly
		}
	} else {
		slog.Info("no shift window found, using default working day",
			"employee_id", req.EmployeeID,
			"default_shift_minutes", s.policy.DefaultShiftMinutes,
		)
	}

	lateMinutes := shift.LateMinutes(window, now, date, s.policy.GracePeriodMinutes)
	typeID := presentType.ID
	typeCode := presentType.Code
	if lateMinutes > 0 {
		typeID = lateType.ID
		typeCode = lateType.Code
	}

	var result attendance.Record
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		existing, err := s.RecordRepository.GetForDayLocked(ctx, req.EmployeeID, date, companyID)
		if err != nil {
			return fmt.Errorf("failed to get attendance record for day: %w", err)
		}

		if existing != nil && existing.CheckInAt != nil {
			return attendance.ErrAlreadyCheckedIn
		}

		rec := attendance.Record{
			EmployeeID:       req.EmployeeID,
			CompanyID:        companyID,
			Date:             date,
			AttendanceTypeID: &typeID,
			CheckInAt:        &now,
			IsLate:           lateMinutes > 0,
			LateMinutes:      lateMinutes,
			SourceID:         req.SourceID,
			Remarks:          req.Remarks,
		}
		if subShift != nil {
			rec.ShiftID = &subShift.ShiftID
			rec.SubShiftID = &subShift.ID
		}

		if existing != nil {
			// Absence record created by the batch job; the real punch
			// takes it over.
			rec.ID = existing.ID
			rec.CreatedAt = existing.CreatedAt
			if err := s.RecordRepository.Update(ctx, rec); err != nil {
				return fmt.Errorf("failed to update attendance record: %w", err)
			}
			result = rec
			return nil
		}

		created, err := s.RecordRepository.Create(ctx, rec)
		if err != nil {
			return fmt.Errorf("failed to create attendance record: %w", err)
		}
		result = created
		return nil
	})
	if err != nil {
		return attendance.PunchResponse{}, err
	}

	return attendance.PunchResponse{
		Message:     "Check-in successful",
		Action:      attendance.ActionCheckIn,
		RecordID:    result.ID,
		EmployeeID:  result.EmployeeID,
		Date:        result.Date.Format("2006-01-02"),
		TypeCode:    typeCode,
		CheckInTime: timePtrToString(result.CheckInAt),
		IsLate:      result.IsLate,
		LateMinutes: result.LateMinutes,
	}, nil
}

// openRecordForPunch locates the open record a closing punch refers to:
// today's record first, then yesterday's for overnight sessions crossing
// midnight.
func (s *AttendanceServiceImpl) openRecordForPunch(ctx context.Context, employeeID string, now time.Time, companyID string) (*attendance.Record, error) {
	today := dayOf(now)
	rec, err := s.RecordRepository.GetForDayLocked(ctx, employeeID, today, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance record for day: %w", err)
	}
	if rec != nil && rec.Open() {
		return rec, nil
	}

	yesterday := today.AddDate(0, 0, -1)
	rec, err = s.RecordRepository.GetForDayLocked(ctx, employeeID, yesterday, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance record for previous day: %w", err)
	}
	if rec != nil && rec.Open() {
		return rec, nil
	}
	return nil, attendance.ErrNoOpenCheckIn
}

func (s *AttendanceServiceImpl) checkOut(ctx context.Context, req attendance.PunchRequest, now time.Time, companyID string) (attendance.PunchResponse, error) {
	var resp attendance.PunchResponse
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		rec, err := s.openRecordForPunch(ctx, req.EmployeeID, now, companyID)
		if err != nil {
			return err
		}

		worked := shift.WorkedMinutes(rec.CheckInAt, &now)

		// The minimum-hours floor runs before any mutation.
		if worked < s.policy.MinimumWorkMinutes {
			return attendance.ErrMinimumHoursNotMet
		}

		var window *shift.Window
		if rec.SubShiftID != nil {
			subShift, err := s.SubShiftRepository.GetByID(ctx, *rec.SubShiftID)
			if err != nil {
				if !errors.Is(err, shift.ErrSubShiftNotFound) {
					return fmt.Errorf("failed to get sub-shift: %w", err)
				}
			} else {
				window = &subShift.Window
			}
		}

		var earlyExit, overtime int
		if window != nil {
			earlyExit, overtime = shift.EarlyExitAndOvertime(window, now, rec.Date)
		} else {
			overtime = shift.OvertimeMinutes(worked, s.policy.DefaultShiftMinutes)
		}

		rec.CheckOutAt = &now
		rec.WorkingHours = float64(worked) / 60.0
		rec.EarlyExitMinutes = earlyExit
		rec.OvertimeMinutes = overtime
		if req.Remarks != nil {
			rec.Remarks = req.Remarks
		}

		if err := s.RecordRepository.Update(ctx, *rec); err != nil {
			return fmt.Errorf("failed to update attendance record: %w", err)
		}

		resp = attendance.PunchResponse{
			Message:          "Check-out successful",
			Action:           attendance.ActionCheckOut,
			RecordID:         rec.ID,
			EmployeeID:       rec.EmployeeID,
			Date:             rec.Date.Format("2006-01-02"),
			CheckInTime:      timePtrToString(rec.CheckInAt),
			CheckOutTime:     timePtrToString(rec.CheckOutAt),
			IsLate:           rec.IsLate,
			LateMinutes:      rec.LateMinutes,
			WorkedMinutes:    worked,
			EarlyExitMinutes: earlyExit,
			OvertimeMinutes:  overtime,
			WorkingHours:     rec.WorkingHours,
		}
		return nil
	})
	if err != nil {
		return attendance.PunchResponse{}, err
	}
	return resp, nil
}

func (s *AttendanceServiceImpl) breakPunch(ctx context.Context, req attendance.PunchRequest, now time.Time, companyID string) (attendance.PunchResponse, error) {
	category, isStart, _ := attendance.BreakCategoryFor(req.ActionCode)

	var resp attendance.PunchResponse
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		rec, err := s.openRecordForPunch(ctx, req.EmployeeID, now, companyID)
		if err != nil {
			return err
		}

		open, err := s.BreakRepository.GetOpenByCategory(ctx, rec.ID, category)
		if err != nil {
			return fmt.Errorf("failed to get open break: %w", err)
		}

		if isStart {
			if open != nil {
				return attendance.ErrBreakAlreadyOpen
			}
			if _, err := s.BreakRepository.Open(ctx, attendance.Break{
				RecordID:  rec.ID,
				Category:  category,
				StartedAt: now,
			}); err != nil {
				return fmt.Errorf("failed to open break: %w", err)
			}
		} else {
			if open == nil {
				return attendance.ErrNoOpenBreak
			}
			if err := s.BreakRepository.Close(ctx, open.ID, now); err != nil {
				return fmt.Errorf("failed to close break: %w", err)
			}
		}

		resp = attendance.PunchResponse{
			Message:     fmt.Sprintf("%s successful", req.ActionCode),
			Action:      req.ActionCode,
			RecordID:    rec.ID,
			EmployeeID:  rec.EmployeeID,
			Date:        rec.Date.Format("2006-01-02"),
			CheckInTime: timePtrToString(rec.CheckInAt),
			IsLate:      rec.IsLate,
			LateMinutes: rec.LateMinutes,
		}
		return nil
	})
	if err != nil {
		return attendance.PunchResponse{}, err
	}
	return resp, nil
}

// GetStatus implements attendance.Service.
func (s *AttendanceServiceImpl) GetStatus(ctx context.Context, employeeID, companyID string) (attendance.StatusResponse, error) {
	now := s.clock.Now()
	today := dayOf(now)
	companyID = s.companyID(companyID)

	status := attendance.StatusResponse{
		EmployeeID: employeeID,
		Date:       today.Format("2006-01-02"),
	}

	rec, err := s.RecordRepository.GetForDay(ctx, employeeID, today, companyID)
	if err != nil {
		return attendance.StatusResponse{}, fmt.Errorf("failed to get attendance record for day: %w", err)
	}
	if rec == nil || !rec.Open() {
		// An overnight session opened yesterday is the record a closing
		// punch would act on, so the snapshot reports that one.
		prev, err := s.RecordRepository.GetForDay(ctx, employeeID, today.AddDate(0, 0, -1), companyID)
		if err != nil {
			return attendance.StatusResponse{}, fmt.Errorf("failed to get attendance record for previous day: %w", err)
		}
		if prev != nil && prev.Open() {
			rec = prev
		}
	}
	if rec == nil {
		return status, nil
	}

	status.Date = rec.Date.Format("2006-01-02")
	status.IsCheckedIn = rec.Open()
	status.CheckInTime = timePtrToString(rec.CheckInAt)
	status.CheckOutTime = timePtrToString(rec.CheckOutAt)
	status.TypeCode = rec.TypeCode
	status.LateMinutes = rec.LateMinutes
	status.OvertimeMinutes = rec.OvertimeMinutes
	status.WorkingHours = rec.WorkingHours

	if rec.Open() {
		status.WorkedMinutes = shift.WorkedMinutes(rec.CheckInAt, &now)
	} else {
		status.WorkedMinutes = shift.WorkedMinutes(rec.CheckInAt, rec.CheckOutAt)
	}

	breaks, err := s.BreakRepository.ListByRecord(ctx, rec.ID)
	if err != nil {
		return attendance.StatusResponse{}, fmt.Errorf("failed to list breaks: %w", err)
	}
	status.BreaksToday = len(breaks)
	for _, b := range breaks {
		if b.EndedAt == nil {
			status.OpenBreak = &attendance.OpenBreakInfo{
				Category:  b.Category,
				StartedAt: b.StartedAt.Format("2006-01-02 15:04:05"),
			}
			continue
		}
		status.BreakMinutesToday += shift.BreakDuration(b.StartedAt, *b.EndedAt)
	}

	return status, nil
}

// mapRecordToResponse converts a Record entity to RecordResponse
func mapRecordToResponse(rec attendance.Record) attendance.RecordResponse {
	return attendance.RecordResponse{
		ID:               rec.ID,
		EmployeeID:       rec.EmployeeID,
		Date:             rec.Date.Format("2006-01-02"),
		TypeCode:         rec.TypeCode,
		TypeTitle:        rec.TypeTitle,
		CheckInTime:      timePtrToString(rec.CheckInAt),
		CheckOutTime:     timePtrToString(rec.CheckOutAt),
		IsLate:           rec.IsLate,
		LateMinutes:      rec.LateMinutes,
		EarlyExitMinutes: rec.EarlyExitMinutes,
		OvertimeMinutes:  rec.OvertimeMinutes,
		WorkingHours:     rec.WorkingHours,
		Remarks:          rec.Remarks,
		CreatedAt:        rec.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:        rec.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// List implements attendance.Service.
func (s *AttendanceServiceImpl) List(ctx context.Context, filter attendance.RecordFilter, companyID string) (attendance.ListRecordsResponse, error) {
	companyID = s.companyID(companyID)

	records, total, err := s.RecordRepository.List(ctx, filter, companyID)
	if err != nil {
		return attendance.ListRecordsResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, mapRecordToResponse(rec))
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	return attendance.ListRecordsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      limit,
		TotalPages: totalPages,
		Records:    responses,
	}, nil
}

// Get implements attendance.Service.
func (s *AttendanceServiceImpl) Get(ctx context.Context, id, companyID string) (attendance.RecordResponse, error) {
	rec, err := s.RecordRepository.GetByID(ctx, id, s.companyID(companyID))
	if err != nil {
		if errors.Is(err, attendance.ErrRecordNotFound) {
			return attendance.RecordResponse{}, attendance.ErrRecordNotFound
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to get attendance record: %w", err)
	}
	return mapRecordToResponse(rec), nil
}

// Update implements attendance.Service. Managers fix wrong clock times;
// derived fields are recomputed from the corrected endpoints.
func (s *AttendanceServiceImpl) Update(ctx context.Context, req attendance.UpdateRecordRequest, companyID string) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}
	companyID = s.companyID(companyID)

	var updated attendance.Record
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		rec, err := s.RecordRepository.GetByID(ctx, req.ID, companyID)
		if err != nil {
			return err
		}

		if req.CheckInAt != nil && *req.CheckInAt != "" {
			t, _ := parseTimestamp(*req.CheckInAt)
			rec.CheckInAt = &t
		}
		if req.CheckOutAt != nil && *req.CheckOutAt != "" {
			t, _ := parseTimestamp(*req.CheckOutAt)
			rec.CheckOutAt = &t
		}
		if rec.CheckInAt != nil && rec.CheckOutAt != nil && rec.CheckOutAt.Before(*rec.CheckInAt) {
			return validator.ValidationErrors{{
				Field:   "check_out_at",
				Message: "check_out_at must not be before check_in_at",
			}}
		}
		if req.TypeCode != nil && *req.TypeCode != "" {
			attType, err := s.TypeRepository.GetByCode(ctx, *req.TypeCode, companyID)
			if err != nil {
				return fmt.Errorf("attendance type %q: %w", *req.TypeCode, attendance.ErrConfigurationMissing)
			}
			rec.AttendanceTypeID = &attType.ID
		}
		if req.Remarks != nil {
			rec.Remarks = req.Remarks
		}
		if req.LateMinutes != nil {
			rec.LateMinutes = *req.LateMinutes
			rec.IsLate = *req.LateMinutes > 0
		}

		if rec.CheckInAt != nil && rec.CheckOutAt != nil {
			worked := shift.WorkedMinutes(rec.CheckInAt, rec.CheckOutAt)
			rec.WorkingHours = float64(worked) / 60.0
			if rec.SubShiftID == nil {
				rec.OvertimeMinutes = shift.OvertimeMinutes(worked, s.policy.DefaultShiftMinutes)
			}
		}

		if err := s.RecordRepository.Update(ctx, rec); err != nil {
			return fmt.Errorf("failed to update attendance record: %w", err)
		}
		updated = rec
		return nil
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	return mapRecordToResponse(updated), nil
}

// parseTimestamp accepts the same layouts the request validators admit.
func parseTimestamp(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02 15:04:05", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

// Delete implements attendance.Service.
func (s *AttendanceServiceImpl) Delete(ctx context.Context, id, companyID string) error {
	if err := s.RecordRepository.SoftDelete(ctx, id, s.companyID(companyID)); err != nil {
		if errors.Is(err, attendance.ErrRecordNotFound) {
			return attendance.ErrRecordNotFound
		}
		return fmt.Errorf("failed to delete attendance record: %w", err)
	}
	return nil
}

// MarkAbsentees implements attendance.Service.
func (s *AttendanceServiceImpl) MarkAbsentees(ctx context.Context, date time.Time, companyID string) (int, error) {
	companyID = s.companyID(companyID)
	date = dayOf(date)

	absentType, err := s.TypeRepository.GetByCode(ctx, attendance.TypeCodeAbsent, companyID)
	if err != nil {
		return 0, fmt.Errorf("attendance type %q: %w", attendance.TypeCodeAbsent, attendance.ErrConfigurationMissing)
	}

	known, err := s.RecordRepository.KnownEmployeeIDs(ctx, companyID)
	if err != nil {
		return 0, fmt.Errorf("failed to list known employees: %w", err)
	}
	present, err := s.RecordRepository.EmployeeIDsWithRecordOn(ctx, date, companyID)
	if err != nil {
		return 0, fmt.Errorf("failed to list employees with records: %w", err)
	}

	presentSet := make(map[string]struct{}, len(present))
	for _, id := range present {
		presentSet[id] = struct{}{}
	}

	marked := 0
	remarks := "Auto-marked absent"
	for _, employeeID := range known {
		if _, ok := presentSet[employeeID]; ok {
			continue
		}

		err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
			existing, err := s.RecordRepository.GetForDayLocked(ctx, employeeID, date, companyID)
			if err != nil {
				return err
			}
			if existing != nil {
				return nil
			}
			_, err = s.RecordRepository.Create(ctx, attendance.Record{
				EmployeeID:       employeeID,
				CompanyID:        companyID,
				Date:             date,
				AttendanceTypeID: &absentType.ID,
				Remarks:          &remarks,
			})
			return err
		})
		if err != nil {
			slog.Warn("failed to auto-mark absent", "employee_id", employeeID, "error", err)
			continue
		}
		marked++
	}

	return marked, nil
}
