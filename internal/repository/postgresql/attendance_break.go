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

type breakRepository struct {
	db *database.DB
}

// Open implements attendance.BreakRepository.
func (b *breakRepository) Open(ctx context.Context, brk attendance.Break) (attendance.Break, error) {
	q := GetQuerier(ctx, b.db)

	query := `
		INSERT INTO attendance_breaks (record_id, category, started_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query, brk.RecordID, brk.Category, brk.StartedAt).
		Scan(&brk.ID, &brk.CreatedAt)
	if err != nil {
		return attendance.Break{}, fmt.Errorf("failed to open break: %w", err)
	}

	return brk, nil
}

// GetOpenByCategory implements attendance.BreakRepository.
func (b *breakRepository) GetOpenByCategory(ctx context.Context, recordID, category string) (*attendance.Break, error) {
	q := GetQuerier(ctx, b.db)

	query := `
		SELECT id, record_id, category, started_at, ended_at, created_at
		FROM attendance_breaks
		WHERE record_id = $1
		  AND category = $2
		  AND ended_at IS NULL
		ORDER BY started_at DESC
		LIMIT 1
	`

	var brk attendance.Break
	err := q.QueryRow(ctx, query, recordID, category).Scan(
		&brk.ID, &brk.RecordID, &brk.Category, &brk.StartedAt, &brk.EndedAt, &brk.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open break: %w", err)
	}

	return &brk, nil
}

// Close implements attendance.BreakRepository.
func (b *breakRepository) Close(ctx context.Context, id string, endedAt time.Time) error {
	q := GetQuerier(ctx, b.db)

	query := `
		UPDATE attendance_breaks
		SET ended_at = $1
		WHERE id = $2
		  AND ended_at IS NULL
	`

	tag, err := q.Exec(ctx, query, endedAt, id)
	if err != nil {
		return fmt.Errorf("failed to close break: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrNoOpenBreak
	}

	return nil
}

// ListByRecord implements attendance.BreakRepository.
func (b *breakRepository) ListByRecord(ctx context.Context, recordID string) ([]attendance.Break, error) {
	q := GetQuerier(ctx, b.db)

	query := `
		SELECT id, record_id, category, started_at, ended_at, created_at
		FROM attendance_breaks
		WHERE record_id = $1
		ORDER BY started_at ASC
	`

	rows, err := q.Query(ctx, query, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to list breaks: %w", err)
	}
	defer rows.Close()

	var breaks []attendance.Break
	for rows.Next() {
		var brk attendance.Break
		if err := rows.Scan(&brk.ID, &brk.RecordID, &brk.Category, &brk.StartedAt, &brk.EndedAt, &brk.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan break: %w", err)
		}
		breaks = append(breaks, brk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate breaks: %w", err)
	}

	return breaks, nil
}

func NewBreakRepository(db *database.DB) attendance.BreakRepository {
	return &breakRepository{db: db}
}
