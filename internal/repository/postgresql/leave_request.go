package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/opshift/attendance-backend-go/internal/domain/leave"
	"github.com/opshift/attendance-backend-go/internal/pkg/database"
)

type leaveRequestRepository struct {
	db *database.DB
}

const leaveRequestColumns = `
	lr.id, lr.employee_id, lr.company_id, lr.leave_type_id,
	lr.start_date, lr.end_date, lr.total_days, lr.reason, lr.status,
	lr.decided_by, lr.decided_at, lr.approval_remarks,
	lr.is_deleted, lr.created_at, lr.updated_at,
	lt.title, lt.code
`

func scanLeaveRequest(row pgx.Row) (leave.Request, error) {
	var req leave.Request
	err := row.Scan(
		&req.ID, &req.EmployeeID, &req.CompanyID, &req.LeaveTypeID,
		&req.StartDate, &req.EndDate, &req.TotalDays, &req.Reason, &req.Status,
		&req.DecidedBy, &req.DecidedAt, &req.ApprovalRemarks,
		&req.Deleted, &req.CreatedAt, &req.UpdatedAt,
		&req.LeaveTypeTitle, &req.LeaveTypeCode,
	)
	return req, err
}

// Create implements leave.RequestRepository.
func (l *leaveRequestRepository) Create(ctx context.Context, req leave.Request) (leave.Request, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		INSERT INTO leave_requests (
			employee_id, company_id, leave_type_id, start_date, end_date,
			total_days, reason, status, decided_by, decided_at, approval_remarks
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.EmployeeID, req.CompanyID, req.LeaveTypeID, req.StartDate, req.EndDate,
		req.TotalDays, req.Reason, req.Status, req.DecidedBy, req.DecidedAt, req.ApprovalRemarks,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return req, nil
}

func (l *leaveRequestRepository) getByID(ctx context.Context, id string, lock bool) (leave.Request, error) {
	q := GetQuerier(ctx, l.db)

	suffix := ""
	if lock {
		suffix = "FOR UPDATE OF lr"
	}
	query := fmt.Sprintf(`
		SELECT %s
		FROM leave_requests lr
		JOIN leave_types lt ON lt.id = lr.leave_type_id
		WHERE lr.id = $1
		  AND lr.is_deleted = FALSE
		%s
	`, leaveRequestColumns, suffix)

	req, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Request{}, leave.ErrLeaveRequestNotFound
		}
		return leave.Request{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	return req, nil
}

// GetByID implements leave.RequestRepository.
func (l *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.Request, error) {
	return l.getByID(ctx, id, false)
}

// GetByIDLocked implements leave.RequestRepository.
func (l *leaveRequestRepository) GetByIDLocked(ctx context.Context, id string) (leave.Request, error) {
	return l.getByID(ctx, id, true)
}

// Update implements leave.RequestRepository.
func (l *leaveRequestRepository) Update(ctx context.Context, req leave.Request) error {
	q := GetQuerier(ctx, l.db)

	query := `
		UPDATE leave_requests SET
			status = $1,
			decided_by = $2,
			decided_at = $3,
			approval_remarks = $4,
			updated_at = NOW()
		WHERE id = $5
		  AND is_deleted = FALSE
	`

	tag, err := q.Exec(ctx, query,
		req.Status, req.DecidedBy, req.DecidedAt, req.ApprovalRemarks, req.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update leave request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}

	return nil
}

// List implements leave.RequestRepository.
func (l *leaveRequestRepository) List(ctx context.Context, filter leave.RequestFilter, companyID string) ([]leave.Request, int64, error) {
	q := GetQuerier(ctx, l.db)

	whereClause := "WHERE lr.company_id = $1 AND lr.is_deleted = FALSE"
	args := []interface{}{companyID}
	argIndex := 2

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		whereClause += fmt.Sprintf(" AND lr.employee_id = $%d", argIndex)
		args = append(args, *filter.EmployeeID)
		argIndex++
	}
	if filter.Status != nil && *filter.Status != "" {
		whereClause += fmt.Sprintf(" AND lr.status = $%d", argIndex)
		args = append(args, *filter.Status)
		argIndex++
	}

	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM leave_requests lr
		%s
	`, whereClause)

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave requests: %w", err)
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
		FROM leave_requests lr
		JOIN leave_types lt ON lt.id = lr.leave_type_id
		%s
		ORDER BY lr.created_at DESC
		LIMIT $%d OFFSET $%d
	`, leaveRequestColumns, whereClause, argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.Request
	for rows.Next() {
		req, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate leave requests: %w", err)
	}

	return requests, total, nil
}

func NewLeaveRequestRepository(db *database.DB) leave.RequestRepository {
	return &leaveRequestRepository{db: db}
}
