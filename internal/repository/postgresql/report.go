package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/opshift/attendance-backend-go/internal/domain/report"
	"github.com/opshift/attendance-backend-go/internal/pkg/database"
)

type reportRepository struct {
	db *database.DB
}

// EmployeeDayRows implements report.Repository.
func (r *reportRepository) EmployeeDayRows(ctx context.Context, employeeID string, start, end time.Time, companyID string) ([]report.DayRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			to_char(r.date, 'YYYY-MM-DD'),
			t.code,
			to_char(r.check_in_at, 'YYYY-MM-DD HH24:MI:SS'),
			to_char(r.check_out_at, 'YYYY-MM-DD HH24:MI:SS'),
			COALESCE(ROUND(r.working_hours * 60)::int, 0),
			r.late_minutes,
			r.overtime_minutes,
			r.working_hours
		FROM attendance_records r
		LEFT JOIN attendance_types t ON t.id = r.attendance_type_id
		WHERE r.employee_id = $1
		  AND r.date BETWEEN $2 AND $3
		  AND r.company_id = $4
		  AND r.is_deleted = FALSE
		ORDER BY r.date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, start, end, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query day rows: %w", err)
	}
	defer rows.Close()

	var days []report.DayRow
	for rows.Next() {
		var day report.DayRow
		if err := rows.Scan(
			&day.Date, &day.TypeCode, &day.CheckInTime, &day.CheckOutTime,
			&day.WorkedMinutes, &day.LateMinutes, &day.OvertimeMinutes, &day.WorkingHours,
		); err != nil {
			return nil, fmt.Errorf("failed to scan day row: %w", err)
		}
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate day rows: %w", err)
	}

	return days, nil
}

// LeaveDaysTaken implements report.Repository. Only the part of an
// approved request overlapping the range counts.
func (r *reportRepository) LeaveDaysTaken(ctx context.Context, employeeID string, start, end time.Time, companyID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(
			LEAST(lr.end_date, $3::date) - GREATEST(lr.start_date, $2::date) + 1
		), 0)
		FROM leave_requests lr
		WHERE lr.employee_id = $1
		  AND lr.company_id = $4
		  AND lr.status = 'approved'
		  AND lr.is_deleted = FALSE
		  AND lr.start_date <= $3
		  AND lr.end_date >= $2
	`

	var days int
	if err := q.QueryRow(ctx, query, employeeID, start, end, companyID).Scan(&days); err != nil {
		return 0, fmt.Errorf("failed to count leave days: %w", err)
	}

	return days, nil
}

// CompanyDaily implements report.Repository.
func (r *reportRepository) CompanyDaily(ctx context.Context, date time.Time, companyID string) (report.DailyRollup, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) FILTER (WHERE t.code IN ('P', 'L', 'HD', 'WFH')),
			COUNT(*) FILTER (WHERE t.code = 'L'),
			COUNT(*) FILTER (WHERE t.code = 'A')
		FROM attendance_records r
		LEFT JOIN attendance_types t ON t.id = r.attendance_type_id
		WHERE r.date = $1
		  AND r.company_id = $2
		  AND r.is_deleted = FALSE
	`

	var rollup report.DailyRollup
	err := q.QueryRow(ctx, query, date, companyID).Scan(
		&rollup.PresentCount, &rollup.LateCount, &rollup.AbsentCount,
	)
	if err != nil {
		return report.DailyRollup{}, fmt.Errorf("failed to query daily rollup: %w", err)
	}

	leaveQuery := `
		SELECT COUNT(DISTINCT lr.employee_id)
		FROM leave_requests lr
		WHERE lr.company_id = $2
		  AND lr.status = 'approved'
		  AND lr.is_deleted = FALSE
		  AND $1::date BETWEEN lr.start_date AND lr.end_date
	`
	if err := q.QueryRow(ctx, leaveQuery, date, companyID).Scan(&rollup.OnLeaveCount); err != nil {
		return report.DailyRollup{}, fmt.Errorf("failed to count employees on leave: %w", err)
	}

	return rollup, nil
}

func NewReportRepository(db *database.DB) report.Repository {
	return &reportRepository{db: db}
}
