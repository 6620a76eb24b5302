package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/opshift/attendance-backend-go/internal/domain/leave"
	"github.com/opshift/attendance-backend-go/internal/pkg/database"
)

type leaveTypeRepository struct {
	db *database.DB
}

const leaveTypeColumns = `
	id, company_id, title, code, color_code,
	default_allotted_days, max_allotted_days,
	is_paid, is_medical, is_loss_of_pay,
	requires_approval, requires_attachment,
	is_deleted, created_at, updated_at
`

func scanLeaveType(row pgx.Row) (leave.Type, error) {
	var lt leave.Type
	err := row.Scan(
		&lt.ID, &lt.CompanyID, &lt.Title, &lt.Code, &lt.ColorCode,
		&lt.DefaultAllottedDays, &lt.MaxAllottedDays,
		&lt.IsPaid, &lt.IsMedical, &lt.IsLossOfPay,
		&lt.RequiresApproval, &lt.RequiresAttachment,
		&lt.Deleted, &lt.CreatedAt, &lt.UpdatedAt,
	)
	return lt, err
}

// Create implements leave.TypeRepository.
func (l *leaveTypeRepository) Create(ctx context.Context, lt leave.Type) (leave.Type, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		INSERT INTO leave_types (
			company_id, title, code, color_code,
			default_allotted_days, max_allotted_days,
			is_paid, is_medical, is_loss_of_pay,
			requires_approval, requires_attachment
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		lt.CompanyID, lt.Title, lt.Code, lt.ColorCode,
		lt.DefaultAllottedDays, lt.MaxAllottedDays,
		lt.IsPaid, lt.IsMedical, lt.IsLossOfPay,
		lt.RequiresApproval, lt.RequiresAttachment,
	).Scan(&lt.ID, &lt.CreatedAt, &lt.UpdatedAt)
	if err != nil {
		return leave.Type{}, fmt.Errorf("failed to create leave type: %w", err)
	}

	return lt, nil
}

// GetByID implements leave.TypeRepository.
func (l *leaveTypeRepository) GetByID(ctx context.Context, id, companyID string) (leave.Type, error) {
	q := GetQuerier(ctx, l.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM leave_types
		WHERE id = $1
		  AND company_id = $2
		  AND is_deleted = FALSE
	`, leaveTypeColumns)

	lt, err := scanLeaveType(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Type{}, leave.ErrLeaveTypeNotFound
		}
		return leave.Type{}, fmt.Errorf("failed to get leave type: %w", err)
	}

	return lt, nil
}

// GetByCode implements leave.TypeRepository.
func (l *leaveTypeRepository) GetByCode(ctx context.Context, code, companyID string) (leave.Type, error) {
	q := GetQuerier(ctx, l.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM leave_types
		WHERE code = $1
		  AND company_id = $2
		  AND is_deleted = FALSE
	`, leaveTypeColumns)

	lt, err := scanLeaveType(q.QueryRow(ctx, query, code, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Type{}, leave.ErrLeaveTypeNotFound
		}
		return leave.Type{}, fmt.Errorf("failed to get leave type: %w", err)
	}

	return lt, nil
}

// List implements leave.TypeRepository.
func (l *leaveTypeRepository) List(ctx context.Context, companyID string) ([]leave.Type, error) {
	q := GetQuerier(ctx, l.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM leave_types
		WHERE company_id = $1
		  AND is_deleted = FALSE
		ORDER BY code ASC
	`, leaveTypeColumns)

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}
	defer rows.Close()

	var types []leave.Type
	for rows.Next() {
		lt, err := scanLeaveType(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave type: %w", err)
		}
		types = append(types, lt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leave types: %w", err)
	}

	return types, nil
}

// Update implements leave.TypeRepository.
func (l *leaveTypeRepository) Update(ctx context.Context, lt leave.Type) error {
	q := GetQuerier(ctx, l.db)

	query := `
		UPDATE leave_types SET
			title = $1,
			color_code = $2,
			default_allotted_days = $3,
			max_allotted_days = $4,
			is_paid = $5,
			is_medical = $6,
			is_loss_of_pay = $7,
			requires_approval = $8,
			requires_attachment = $9,
			updated_at = NOW()
		WHERE id = $10
		  AND is_deleted = FALSE
	`

	tag, err := q.Exec(ctx, query,
		lt.Title, lt.ColorCode, lt.DefaultAllottedDays, lt.MaxAllottedDays,
		lt.IsPaid, lt.IsMedical, lt.IsLossOfPay,
		lt.RequiresApproval, lt.RequiresAttachment,
		lt.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update leave type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveTypeNotFound
	}

	return nil
}

// SoftDelete implements leave.TypeRepository.
func (l *leaveTypeRepository) SoftDelete(ctx context.Context, id, companyID string) error {
	q := GetQuerier(ctx, l.db)

	query := `
		UPDATE leave_types
		SET is_deleted = TRUE, updated_at = NOW()
		WHERE id = $1
		  AND company_id = $2
		  AND is_deleted = FALSE
	`

	tag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete leave type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveTypeNotFound
	}

	return nil
}

func NewLeaveTypeRepository(db *database.DB) leave.TypeRepository {
	return &leaveTypeRepository{db: db}
}
