package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/opshift/attendance-backend-go/internal/domain/shift"
	"github.com/opshift/attendance-backend-go/internal/pkg/database"
)

// Sub-shift windows are stored as minutes since midnight, matching the
// shift.Clock representation, so overnight windows need no special
// column handling.

type shiftRepository struct {
	db *database.DB
}

// Create implements shift.ShiftRepository.
func (s *shiftRepository) Create(ctx context.Context, sh shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		INSERT INTO shifts (company_id, code, name, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, sh.CompanyID, sh.Code, sh.Name, sh.Description).
		Scan(&sh.ID, &sh.CreatedAt, &sh.UpdatedAt)
	if err != nil {
		return shift.Shift{}, fmt.Errorf("failed to create shift: %w", err)
	}

	return sh, nil
}

// GetByID implements shift.ShiftRepository.
func (s *shiftRepository) GetByID(ctx context.Context, id, companyID string) (shift.Shift, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT id, company_id, code, name, description, is_deleted, created_at, updated_at
		FROM shifts
		WHERE id = $1
		  AND company_id = $2
		  AND is_deleted = FALSE
	`

	var sh shift.Shift
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&sh.ID, &sh.CompanyID, &sh.Code, &sh.Name, &sh.Description,
		&sh.Deleted, &sh.CreatedAt, &sh.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift: %w", err)
	}

	return sh, nil
}

// List implements shift.ShiftRepository.
func (s *shiftRepository) List(ctx context.Context, companyID string) ([]shift.Shift, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT id, company_id, code, name, description, is_deleted, created_at, updated_at
		FROM shifts
		WHERE company_id = $1
		  AND is_deleted = FALSE
		ORDER BY code ASC
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	var shifts []shift.Shift
	for rows.Next() {
		var sh shift.Shift
		if err := rows.Scan(
			&sh.ID, &sh.CompanyID, &sh.Code, &sh.Name, &sh.Description,
			&sh.Deleted, &sh.CreatedAt, &sh.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, sh)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shifts: %w", err)
	}

	return shifts, nil
}

// Update implements shift.ShiftRepository.
func (s *shiftRepository) Update(ctx context.Context, sh shift.Shift) error {
	q := GetQuerier(ctx, s.db)

	query := `
		UPDATE shifts
		SET code = $1, name = $2, description = $3, updated_at = NOW()
		WHERE id = $4
		  AND is_deleted = FALSE
	`

	tag, err := q.Exec(ctx, query, sh.Code, sh.Name, sh.Description, sh.ID)
	if err != nil {
		return fmt.Errorf("failed to update shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}

	return nil
}

// Delete implements shift.ShiftRepository.
func (s *shiftRepository) Delete(ctx context.Context, id, companyID string) error {
	q := GetQuerier(ctx, s.db)

	query := `
		UPDATE shifts
		SET is_deleted = TRUE, updated_at = NOW()
		WHERE id = $1
		  AND company_id = $2
		  AND is_deleted = FALSE
	`

	tag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}

	return nil
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepository{db: db}
}

type subShiftRepository struct {
	db *database.DB
}

func scanSubShift(row pgx.Row) (shift.SubShift, error) {
	var ss shift.SubShift
	var startMinutes, endMinutes int
	err := row.Scan(
		&ss.ID, &ss.ShiftID, &ss.Title, &startMinutes, &endMinutes,
		&ss.Active, &ss.Deleted, &ss.CreatedAt, &ss.UpdatedAt,
	)
	if err != nil {
		return shift.SubShift{}, err
	}
	ss.Window = shift.Window{Start: shift.Clock(startMinutes), End: shift.Clock(endMinutes)}
	return ss, nil
}

// Create implements shift.SubShiftRepository.
func (s *subShiftRepository) Create(ctx context.Context, ss shift.SubShift) (shift.SubShift, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		INSERT INTO sub_shifts (shift_id, title, start_minutes, end_minutes, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		ss.ShiftID, ss.Title, int(ss.Window.Start), int(ss.Window.End), ss.Active,
	).Scan(&ss.ID, &ss.CreatedAt, &ss.UpdatedAt)
	if err != nil {
		return shift.SubShift{}, fmt.Errorf("failed to create sub-shift: %w", err)
	}

	return ss, nil
}

// GetByID implements shift.SubShiftRepository.
func (s *subShiftRepository) GetByID(ctx context.Context, id string) (shift.SubShift, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT id, shift_id, title, start_minutes, end_minutes, is_active, is_deleted, created_at, updated_at
		FROM sub_shifts
		WHERE id = $1
		  AND is_deleted = FALSE
	`

	ss, err := scanSubShift(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.SubShift{}, shift.ErrSubShiftNotFound
		}
		return shift.SubShift{}, fmt.Errorf("failed to get sub-shift: %w", err)
	}

	return ss, nil
}

// GetByShiftID implements shift.SubShiftRepository.
func (s *subShiftRepository) GetByShiftID(ctx context.Context, shiftID string) ([]shift.SubShift, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT id, shift_id, title, start_minutes, end_minutes, is_active, is_deleted, created_at, updated_at
		FROM sub_shifts
		WHERE shift_id = $1
		  AND is_deleted = FALSE
		ORDER BY start_minutes ASC
	`

	rows, err := q.Query(ctx, query, shiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sub-shifts: %w", err)
	}
	defer rows.Close()

	var subShifts []shift.SubShift
	for rows.Next() {
		ss, err := scanSubShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sub-shift: %w", err)
		}
		subShifts = append(subShifts, ss)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sub-shifts: %w", err)
	}

	return subShifts, nil
}

// ListActiveByCompany implements shift.SubShiftRepository.
func (s *subShiftRepository) ListActiveByCompany(ctx context.Context, companyID string) ([]shift.SubShift, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT ss.id, ss.shift_id, ss.title, ss.start_minutes, ss.end_minutes,
		       ss.is_active, ss.is_deleted, ss.created_at, ss.updated_at
		FROM sub_shifts ss
		JOIN shifts sh ON sh.id = ss.shift_id
		WHERE sh.company_id = $1
		  AND ss.is_active = TRUE
		  AND ss.is_deleted = FALSE
		  AND sh.is_deleted = FALSE
		ORDER BY ss.start_minutes ASC
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active sub-shifts: %w", err)
	}
	defer rows.Close()

	var subShifts []shift.SubShift
	for rows.Next() {
		ss, err := scanSubShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sub-shift: %w", err)
		}
		subShifts = append(subShifts, ss)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sub-shifts: %w", err)
	}

	return subShifts, nil
}

func NewSubShiftRepository(db *database.DB) shift.SubShiftRepository {
	return &subShiftRepository{db: db}
}

type assignmentRepository struct {
	db *database.DB
}

// Assign implements shift.AssignmentRepository. Re-assigning an employee
// replaces their previous shift.
func (a *assignmentRepository) Assign(ctx context.Context, asg shift.Assignment) (shift.Assignment, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO shift_assignments (employee_id, shift_id, company_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (employee_id, company_id)
		DO UPDATE SET shift_id = EXCLUDED.shift_id
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query, asg.EmployeeID, asg.ShiftID, asg.CompanyID).
		Scan(&asg.ID, &asg.CreatedAt)
	if err != nil {
		return shift.Assignment{}, fmt.Errorf("failed to assign shift: %w", err)
	}

	return asg, nil
}

// GetByEmployee implements shift.AssignmentRepository.
func (a *assignmentRepository) GetByEmployee(ctx context.Context, employeeID, companyID string) (shift.Assignment, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, employee_id, shift_id, company_id, created_at
		FROM shift_assignments
		WHERE employee_id = $1
		  AND company_id = $2
	`

	var asg shift.Assignment
	err := q.QueryRow(ctx, query, employeeID, companyID).Scan(
		&asg.ID, &asg.EmployeeID, &asg.ShiftID, &asg.CompanyID, &asg.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Assignment{}, shift.ErrShiftNotFound
		}
		return shift.Assignment{}, fmt.Errorf("failed to get shift assignment: %w", err)
	}

	return asg, nil
}

func NewAssignmentRepository(db *database.DB) shift.AssignmentRepository {
	return &assignmentRepository{db: db}
}
