package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/opshift/attendance-backend-go/internal/domain/attendance"
	"github.com/opshift/attendance-backend-go/internal/pkg/database"
)

type recordRepository struct {
	db *database.DB
}

const recordColumns = `
	r.id, r.employee_id, r.company_id, r.date, r.attendance_type_id,
	r.shift_id, r.sub_shift_id, r.check_in_at, r.check_out_at,
	r.is_late, r.late_minutes, r.early_exit_minutes, r.overtime_minutes,
	r.working_hours, r.source_id, r.remarks, r.is_deleted,
	r.created_at, r.updated_at,
	t.code, t.title
`

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.CompanyID, &rec.Date, &rec.AttendanceTypeID,
		&rec.ShiftID, &rec.SubShiftID, &rec.CheckInAt, &rec.CheckOutAt,
		&rec.IsLate, &rec.LateMinutes, &rec.EarlyExitMinutes, &rec.OvertimeMinutes,
		&rec.WorkingHours, &rec.SourceID, &rec.Remarks, &rec.Deleted,
		&rec.CreatedAt, &rec.UpdatedAt,
		&rec.TypeCode, &rec.TypeTitle,
	)
	return rec, err
}

// Create implements attendance.RecordRepository.
func (r *recordRepository) Create(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (
			employee_id, company_id, date, attendance_type_id, shift_id, sub_shift_id,
			check_in_at, check_out_at, is_late, late_minutes, early_exit_minutes,
			overtime_minutes, working_hours, source_id, remarks
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rec.EmployeeID,
		rec.CompanyID,
		rec.Date,
		rec.AttendanceTypeID,
		rec.ShiftID,
		rec.SubShiftID,
		rec.CheckInAt,
		rec.CheckOutAt,
		rec.IsLate,
		rec.LateMinutes,
		rec.EarlyExitMinutes,
		rec.OvertimeMinutes,
		rec.WorkingHours,
		rec.SourceID,
		rec.Remarks,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return rec, nil
}

// GetByID implements attendance.RecordRepository.
func (r *recordRepository) GetByID(ctx context.Context, id, companyID string) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM attendance_records r
		LEFT JOIN attendance_types t ON t.id = r.attendance_type_id
		WHERE r.id = $1
		  AND r.company_id = $2
		  AND r.is_deleted = FALSE
	`, recordColumns)

	rec, err := scanRecord(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return rec, nil
}

func (r *recordRepository) getForDay(ctx context.Context, employeeID string, date time.Time, companyID string, lock bool) (*attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	suffix := ""
	if lock {
		// The lock covers the record row only; the catalog join runs
		// unlocked in a second statement.
		suffix = "FOR UPDATE OF r"
	}
	query := fmt.Sprintf(`
		SELECT %s
		FROM attendance_records r
		LEFT JOIN attendance_types t ON t.id = r.attendance_type_id
		WHERE r.employee_id = $1
		  AND r.date = $2
		  AND r.company_id = $3
		  AND r.is_deleted = FALSE
		%s
	`, recordColumns, suffix)

	rec, err := scanRecord(q.QueryRow(ctx, query, employeeID, date, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance record for day: %w", err)
	}

	return &rec, nil
}

// GetForDay implements attendance.RecordRepository.
func (r *recordRepository) GetForDay(ctx context.Context, employeeID string, date time.Time, companyID string) (*attendance.Record, error) {
	return r.getForDay(ctx, employeeID, date, companyID, false)
}

// GetForDayLocked implements attendance.RecordRepository.
func (r *recordRepository) GetForDayLocked(ctx context.Context, employeeID string, date time.Time, companyID string) (*attendance.Record, error) {
	return r.getForDay(ctx, employeeID, date, companyID, true)
}

// Update implements attendance.RecordRepository.
func (r *recordRepository) Update(ctx context.Context, rec attendance.Record) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records SET
			attendance_type_id = $1,
			shift_id = $2,
			sub_shift_id = $3,
			check_in_at = $4,
			check_out_at = $5,
			is_late = $6,
			late_minutes = $7,
			early_exit_minutes = $8,
			overtime_minutes = $9,
			working_hours = $10,
			source_id = $11,
			remarks = $12,
			updated_at = NOW()
		WHERE id = $13
		  AND is_deleted = FALSE
	`

	tag, err := q.Exec(ctx, query,
		rec.AttendanceTypeID,
		rec.ShiftID,
		rec.SubShiftID,
		rec.CheckInAt,
		rec.CheckOutAt,
		rec.IsLate,
		rec.LateMinutes,
		rec.EarlyExitMinutes,
		rec.OvertimeMinutes,
		rec.WorkingHours,
		rec.SourceID,
		rec.Remarks,
		rec.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}

	return nil
}

// List implements attendance.RecordRepository.
func (r *recordRepository) List(ctx context.Context, filter attendance.RecordFilter, companyID string) ([]attendance.Record, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "WHERE r.company_id = $1 AND r.is_deleted = FALSE"
	args := []interface{}{companyID}
	argIndex := 2

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		whereClause += fmt.Sprintf(" AND r.employee_id = $%d", argIndex)
		args = append(args, *filter.EmployeeID)
		argIndex++
	}
	if filter.Date != nil && *filter.Date != "" {
		whereClause += fmt.Sprintf(" AND r.date = $%d", argIndex)
		args = append(args, *filter.Date)
		argIndex++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		whereClause += fmt.Sprintf(" AND r.date >= $%d", argIndex)
		args = append(args, *filter.StartDate)
		argIndex++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		whereClause += fmt.Sprintf(" AND r.date <= $%d", argIndex)
		args = append(args, *filter.EndDate)
		argIndex++
	}
	if filter.TypeCode != nil && *filter.TypeCode != "" {
		whereClause += fmt.Sprintf(" AND t.code = $%d", argIndex)
		args = append(args, *filter.TypeCode)
		argIndex++
	}

	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM attendance_records r
		LEFT JOIN attendance_types t ON t.id = r.attendance_type_id
		%s
	`, whereClause)

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	sortColumn := "r.date"
	switch filter.SortBy {
	case "check_in_at":
		sortColumn = "r.check_in_at"
	case "late_minutes":
		sortColumn = "r.late_minutes"
	case "created_at":
		sortColumn = "r.created_at"
	}
	sortOrder := "DESC"
	if filter.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	query := fmt.Sprintf(`
		SELECT %s
		FROM attendance_records r
		LEFT JOIN attendance_types t ON t.id = r.attendance_type_id
		%s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, recordColumns, whereClause, sortColumn, sortOrder, argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate attendance records: %w", err)
	}

	return records, total, nil
}

// ListByDateRange implements attendance.RecordRepository.
func (r *recordRepository) ListByDateRange(ctx context.Context, employeeID string, start, end time.Time, companyID string) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM attendance_records r
		LEFT JOIN attendance_types t ON t.id = r.attendance_type_id
		WHERE r.employee_id = $1
		  AND r.date BETWEEN $2 AND $3
		  AND r.company_id = $4
		  AND r.is_deleted = FALSE
		ORDER BY r.date ASC
	`, recordColumns)

	rows, err := q.Query(ctx, query, employeeID, start, end, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records by range: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance records: %w", err)
	}

	return records, nil
}

// KnownEmployeeIDs implements attendance.RecordRepository.
func (r *recordRepository) KnownEmployeeIDs(ctx context.Context, companyID string) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT employee_id
		FROM attendance_records
		WHERE company_id = $1
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list known employees: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan employee id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employee ids: %w", err)
	}

	return ids, nil
}

// EmployeeIDsWithRecordOn implements attendance.RecordRepository.
func (r *recordRepository) EmployeeIDsWithRecordOn(ctx context.Context, date time.Time, companyID string) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT employee_id
		FROM attendance_records
		WHERE date = $1
		  AND company_id = $2
		  AND is_deleted = FALSE
	`

	rows, err := q.Query(ctx, query, date, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees with records: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan employee id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employee ids: %w", err)
	}

	return ids, nil
}

// SoftDelete implements attendance.RecordRepository.
func (r *recordRepository) SoftDelete(ctx context.Context, id, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records
		SET is_deleted = TRUE, updated_at = NOW()
		WHERE id = $1
		  AND company_id = $2
		  AND is_deleted = FALSE
	`

	tag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}

	return nil
}

func NewRecordRepository(db *database.DB) attendance.RecordRepository {
	return &recordRepository{db: db}
}
