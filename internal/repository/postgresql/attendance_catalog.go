package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/opshift/attendance-backend-go/internal/domain/attendance"
	"github.com/opshift/attendance-backend-go/internal/pkg/database"
)

// Catalog repositories: attendance types, punch actions and punch
// sources. All three are small, mostly-read tables seeded at bootstrap.

type attendanceTypeRepository struct {
	db *database.DB
}

// Create implements attendance.TypeRepository.
func (t *attendanceTypeRepository) Create(ctx context.Context, at attendance.Type) (attendance.Type, error) {
	q := GetQuerier(ctx, t.db)

	query := `
		INSERT INTO attendance_types (company_id, title, code, color_code, is_leave)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, at.CompanyID, at.Title, at.Code, at.ColorCode, at.IsLeave).
		Scan(&at.ID, &at.CreatedAt, &at.UpdatedAt)
	if err != nil {
		return attendance.Type{}, fmt.Errorf("failed to create attendance type: %w", err)
	}

	return at, nil
}

// GetByCode implements attendance.TypeRepository.
func (t *attendanceTypeRepository) GetByCode(ctx context.Context, code, companyID string) (attendance.Type, error) {
	q := GetQuerier(ctx, t.db)

	query := `
		SELECT id, company_id, title, code, color_code, is_leave, is_deleted, created_at, updated_at
		FROM attendance_types
		WHERE code = $1
		  AND company_id = $2
		  AND is_deleted = FALSE
	`

	var at attendance.Type
	err := q.QueryRow(ctx, query, code, companyID).Scan(
		&at.ID, &at.CompanyID, &at.Title, &at.Code, &at.ColorCode,
		&at.IsLeave, &at.Deleted, &at.CreatedAt, &at.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Type{}, fmt.Errorf("attendance type %q not found: %w", code, err)
		}
		return attendance.Type{}, fmt.Errorf("failed to get attendance type: %w", err)
	}

	return at, nil
}

// List implements attendance.TypeRepository.
func (t *attendanceTypeRepository) List(ctx context.Context, companyID string) ([]attendance.Type, error) {
	q := GetQuerier(ctx, t.db)

	query := `
		SELECT id, company_id, title, code, color_code, is_leave, is_deleted, created_at, updated_at
		FROM attendance_types
		WHERE company_id = $1
		  AND is_deleted = FALSE
		ORDER BY code ASC
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance types: %w", err)
	}
	defer rows.Close()

	var types []attendance.Type
	for rows.Next() {
		var at attendance.Type
		if err := rows.Scan(
			&at.ID, &at.CompanyID, &at.Title, &at.Code, &at.ColorCode,
			&at.IsLeave, &at.Deleted, &at.CreatedAt, &at.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance type: %w", err)
		}
		types = append(types, at)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance types: %w", err)
	}

	return types, nil
}

// Update implements attendance.TypeRepository.
func (t *attendanceTypeRepository) Update(ctx context.Context, at attendance.Type) error {
	q := GetQuerier(ctx, t.db)

	query := `
		UPDATE attendance_types
		SET title = $1, color_code = $2, is_leave = $3, updated_at = NOW()
		WHERE id = $4
		  AND is_deleted = FALSE
	`

	tag, err := q.Exec(ctx, query, at.Title, at.ColorCode, at.IsLeave, at.ID)
	if err != nil {
		return fmt.Errorf("failed to update attendance type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("attendance type %q not found", at.ID)
	}

	return nil
}

// SoftDelete implements attendance.TypeRepository.
func (t *attendanceTypeRepository) SoftDelete(ctx context.Context, id, companyID string) error {
	q := GetQuerier(ctx, t.db)

	query := `
		UPDATE attendance_types
		SET is_deleted = TRUE, updated_at = NOW()
		WHERE id = $1
		  AND company_id = $2
		  AND is_deleted = FALSE
	`

	tag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete attendance type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("attendance type %q not found", id)
	}

	return nil
}

func NewAttendanceTypeRepository(db *database.DB) attendance.TypeRepository {
	return &attendanceTypeRepository{db: db}
}

type actionRepository struct {
	db *database.DB
}

// Create implements attendance.ActionRepository.
func (a *actionRepository) Create(ctx context.Context, act attendance.Action) (attendance.Action, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_actions (name, code, description, category, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, act.Name, act.Code, act.Description, act.Category, act.IsActive).
		Scan(&act.ID, &act.CreatedAt, &act.UpdatedAt)
	if err != nil {
		return attendance.Action{}, fmt.Errorf("failed to create action: %w", err)
	}

	return act, nil
}

// GetByCode implements attendance.ActionRepository.
func (a *actionRepository) GetByCode(ctx context.Context, code string) (attendance.Action, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, name, code, description, category, is_active, is_deleted, created_at, updated_at
		FROM attendance_actions
		WHERE code = $1
		  AND is_deleted = FALSE
	`

	var act attendance.Action
	err := q.QueryRow(ctx, query, code).Scan(
		&act.ID, &act.Name, &act.Code, &act.Description, &act.Category,
		&act.IsActive, &act.Deleted, &act.CreatedAt, &act.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Action{}, fmt.Errorf("action %q not found: %w", code, err)
		}
		return attendance.Action{}, fmt.Errorf("failed to get action: %w", err)
	}

	return act, nil
}

// List implements attendance.ActionRepository.
func (a *actionRepository) List(ctx context.Context) ([]attendance.Action, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, name, code, description, category, is_active, is_deleted, created_at, updated_at
		FROM attendance_actions
		WHERE is_deleted = FALSE
		ORDER BY code ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list actions: %w", err)
	}
	defer rows.Close()

	var actions []attendance.Action
	for rows.Next() {
		var act attendance.Action
		if err := rows.Scan(
			&act.ID, &act.Name, &act.Code, &act.Description, &act.Category,
			&act.IsActive, &act.Deleted, &act.CreatedAt, &act.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan action: %w", err)
		}
		actions = append(actions, act)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate actions: %w", err)
	}

	return actions, nil
}

func NewActionRepository(db *database.DB) attendance.ActionRepository {
	return &actionRepository{db: db}
}

type sourceRepository struct {
	db *database.DB
}

// Create implements attendance.SourceRepository.
func (s *sourceRepository) Create(ctx context.Context, src attendance.Source) (attendance.Source, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		INSERT INTO attendance_sources (name, code, description, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, src.Name, src.Code, src.Description, src.IsActive).
		Scan(&src.ID, &src.CreatedAt, &src.UpdatedAt)
	if err != nil {
		return attendance.Source{}, fmt.Errorf("failed to create source: %w", err)
	}

	return src, nil
}

// GetByCode implements attendance.SourceRepository.
func (s *sourceRepository) GetByCode(ctx context.Context, code string) (attendance.Source, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT id, name, code, description, is_active, is_deleted, created_at, updated_at
		FROM attendance_sources
		WHERE code = $1
		  AND is_deleted = FALSE
	`

	var src attendance.Source
	err := q.QueryRow(ctx, query, code).Scan(
		&src.ID, &src.Name, &src.Code, &src.Description,
		&src.IsActive, &src.Deleted, &src.CreatedAt, &src.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Source{}, fmt.Errorf("source %q not found: %w", code, err)
		}
		return attendance.Source{}, fmt.Errorf("failed to get source: %w", err)
	}

	return src, nil
}

// List implements attendance.SourceRepository.
func (s *sourceRepository) List(ctx context.Context) ([]attendance.Source, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT id, name, code, description, is_active, is_deleted, created_at, updated_at
		FROM attendance_sources
		WHERE is_deleted = FALSE
		ORDER BY code ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sources: %w", err)
	}
	defer rows.Close()

	var sources []attendance.Source
	for rows.Next() {
		var src attendance.Source
		if err := rows.Scan(
			&src.ID, &src.Name, &src.Code, &src.Description,
			&src.IsActive, &src.Deleted, &src.CreatedAt, &src.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan source: %w", err)
		}
		sources = append(sources, src)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sources: %w", err)
	}

	return sources, nil
}

func NewSourceRepository(db *database.DB) attendance.SourceRepository {
	return &sourceRepository{db: db}
}
