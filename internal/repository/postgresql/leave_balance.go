package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/opshift/attendance-backend-go/internal/domain/leave"
	"github.com/opshift/attendance-backend-go/internal/pkg/database"
)

type leaveBalanceRepository struct {
	db *database.DB
}

// GetOrCreateLocked implements leave.BalanceRepository. The upsert makes
// first-touch provisioning race-free: two concurrent punches for the
// same key both land on the single inserted row, and FOR UPDATE
// serializes the read-modify-write that follows.
func (l *leaveBalanceRepository) GetOrCreateLocked(ctx context.Context, employeeID, leaveTypeID string, year, defaultTotal int) (leave.Balance, error) {
	q := GetQuerier(ctx, l.db)

	insert := `
		INSERT INTO leave_balances (employee_id, leave_type_id, year, total_days, used_days)
		VALUES ($1, $2, $3, $4, 0)
		ON CONFLICT (employee_id, leave_type_id, year) DO NOTHING
	`
	if _, err := q.Exec(ctx, insert, employeeID, leaveTypeID, year, defaultTotal); err != nil {
		return leave.Balance{}, fmt.Errorf("failed to provision leave balance: %w", err)
	}

	query := `
		SELECT id, employee_id, leave_type_id, year, total_days, used_days, created_at, updated_at
		FROM leave_balances
		WHERE employee_id = $1
		  AND leave_type_id = $2
		  AND year = $3
		FOR UPDATE
	`

	var b leave.Balance
	err := q.QueryRow(ctx, query, employeeID, leaveTypeID, year).Scan(
		&b.ID, &b.EmployeeID, &b.LeaveTypeID, &b.Year,
		&b.TotalDays, &b.UsedDays, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return leave.Balance{}, fmt.Errorf("failed to get leave balance: %w", err)
	}

	return b, nil
}

// GetByKey implements leave.BalanceRepository.
func (l *leaveBalanceRepository) GetByKey(ctx context.Context, employeeID, leaveTypeID string, year int) (leave.Balance, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT id, employee_id, leave_type_id, year, total_days, used_days, created_at, updated_at
		FROM leave_balances
		WHERE employee_id = $1
		  AND leave_type_id = $2
		  AND year = $3
	`

	var b leave.Balance
	err := q.QueryRow(ctx, query, employeeID, leaveTypeID, year).Scan(
		&b.ID, &b.EmployeeID, &b.LeaveTypeID, &b.Year,
		&b.TotalDays, &b.UsedDays, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Balance{}, leave.ErrNoBalanceConfigured
		}
		return leave.Balance{}, fmt.Errorf("failed to get leave balance: %w", err)
	}

	return b, nil
}

// ListByEmployeeYear implements leave.BalanceRepository.
func (l *leaveBalanceRepository) ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]leave.Balance, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT id, employee_id, leave_type_id, year, total_days, used_days, created_at, updated_at
		FROM leave_balances
		WHERE employee_id = $1
		  AND year = $2
		ORDER BY leave_type_id ASC
	`

	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave balances: %w", err)
	}
	defer rows.Close()

	var balances []leave.Balance
	for rows.Next() {
		var b leave.Balance
		if err := rows.Scan(
			&b.ID, &b.EmployeeID, &b.LeaveTypeID, &b.Year,
			&b.TotalDays, &b.UsedDays, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan leave balance: %w", err)
		}
		balances = append(balances, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leave balances: %w", err)
	}

	return balances, nil
}

// Update implements leave.BalanceRepository.
func (l *leaveBalanceRepository) Update(ctx context.Context, b leave.Balance) error {
	q := GetQuerier(ctx, l.db)

	query := `
		UPDATE leave_balances
		SET total_days = $1, used_days = $2, updated_at = NOW()
		WHERE id = $3
	`

	tag, err := q.Exec(ctx, query, b.TotalDays, b.UsedDays, b.ID)
	if err != nil {
		return fmt.Errorf("failed to update leave balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrNoBalanceConfigured
	}

	return nil
}

func NewLeaveBalanceRepository(db *database.DB) leave.BalanceRepository {
	return &leaveBalanceRepository{db: db}
}

type leaveAllocationRepository struct {
	db *database.DB
}

// Create implements leave.AllocationRepository.
func (l *leaveAllocationRepository) Create(ctx context.Context, a leave.Allocation) (leave.Allocation, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		INSERT INTO leave_allocations (employee_id, leave_type_id, year, allotted_days)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (employee_id, leave_type_id, year)
		DO UPDATE SET allotted_days = EXCLUDED.allotted_days, updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, a.EmployeeID, a.LeaveTypeID, a.Year, a.AllottedDays).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return leave.Allocation{}, fmt.Errorf("failed to create leave allocation: %w", err)
	}

	return a, nil
}

// GetByKey implements leave.AllocationRepository.
func (l *leaveAllocationRepository) GetByKey(ctx context.Context, employeeID, leaveTypeID string, year int) (*leave.Allocation, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT id, employee_id, leave_type_id, year, allotted_days, created_at, updated_at
		FROM leave_allocations
		WHERE employee_id = $1
		  AND leave_type_id = $2
		  AND year = $3
	`

	var a leave.Allocation
	err := q.QueryRow(ctx, query, employeeID, leaveTypeID, year).Scan(
		&a.ID, &a.EmployeeID, &a.LeaveTypeID, &a.Year,
		&a.AllottedDays, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get leave allocation: %w", err)
	}

	return &a, nil
}

func NewLeaveAllocationRepository(db *database.DB) leave.AllocationRepository {
	return &leaveAllocationRepository{db: db}
}
