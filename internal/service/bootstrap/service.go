package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/opshift/attendance-backend-go/internal/domain/attendance"
	"github.com/opshift/attendance-backend-go/internal/domain/leave"
	"github.com/opshift/attendance-backend-go/internal/domain/shift"
	"github.com/opshift/attendance-backend-go/internal/fixtures"
	"github.com/opshift/attendance-backend-go/internal/pkg/database"
)

// Service seeds the catalogs the punch state machine and the leave
// ledger refuse to run without. Seeding is idempotent: rows already
// present by code are left alone, so it is safe on every startup.
type Service struct {
	tx database.TxManager

	attendanceTypes attendance.TypeRepository
	actions         attendance.ActionRepository
	sources         attendance.SourceRepository
	leaveTypes      leave.TypeRepository
	shifts          shift.ShiftRepository
	subShifts       shift.SubShiftRepository
}

func NewService(
	tx database.TxManager,
	attendanceTypes attendance.TypeRepository,
	actions attendance.ActionRepository,
	sources attendance.SourceRepository,
	leaveTypes leave.TypeRepository,
	shifts shift.ShiftRepository,
	subShifts shift.SubShiftRepository,
) *Service {
	return &Service{
		tx:              tx,
		attendanceTypes: attendanceTypes,
		actions:         actions,
		sources:         sources,
		leaveTypes:      leaveTypes,
		shifts:          shifts,
		subShifts:       subShifts,
	}
}

// SeedCompanyDefaults provisions the default catalogs for one company.
func (s *Service) SeedCompanyDefaults(ctx context.Context, companyID string) error {
	if companyID == "" {
		return fmt.Errorf("company id is required for seeding")
	}

	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.seedAttendanceTypes(ctx, companyID); err != nil {
			return err
		}
		if err := s.seedActions(ctx); err != nil {
			return err
		}
		if err := s.seedSources(ctx); err != nil {
			return err
		}
		if err := s.seedLeaveTypes(ctx, companyID); err != nil {
			return err
		}
		if err := s.seedShift(ctx, companyID); err != nil {
			return err
		}
		slog.Info("seeded company defaults", "company_id", companyID)
		return nil
	})
}

func (s *Service) seedAttendanceTypes(ctx context.Context, companyID string) error {
	for _, t := range fixtures.GetDefaultAttendanceTypes(companyID) {
		if _, err := s.attendanceTypes.GetByCode(ctx, t.Code, companyID); err == nil {
			continue
		}
		if _, err := s.attendanceTypes.Create(ctx, t); err != nil {
			return fmt.Errorf("failed to seed attendance type %q: %w", t.Code, err)
		}
	}
	return nil
}

func (s *Service) seedActions(ctx context.Context) error {
	for _, a := range fixtures.GetDefaultActions() {
		if _, err := s.actions.GetByCode(ctx, a.Code); err == nil {
			continue
		}
		if _, err := s.actions.Create(ctx, a); err != nil {
			return fmt.Errorf("failed to seed action %q: %w", a.Code, err)
		}
	}
	return nil
}

func (s *Service) seedSources(ctx context.Context) error {
	for _, src := range fixtures.GetDefaultSources() {
		if _, err := s.sources.GetByCode(ctx, src.Code); err == nil {
			continue
		}
		if _, err := s.sources.Create(ctx, src); err != nil {
			return fmt.Errorf("failed to seed source %q: %w", src.Code, err)
		}
	}
	return nil
}

func (s *Service) seedLeaveTypes(ctx context.Context, companyID string) error {
	for _, lt := range fixtures.GetDefaultLeaveTypes(companyID) {
		if _, err := s.leaveTypes.GetByCode(ctx, lt.Code, companyID); err == nil {
			continue
		}
		if _, err := s.leaveTypes.Create(ctx, lt); err != nil {
			return fmt.Errorf("failed to seed leave type %q: %w", lt.Code, err)
		}
	}
	return nil
}

func (s *Service) seedShift(ctx context.Context, companyID string) error {
	def := fixtures.GetDefaultShift(companyID)

	existing, err := s.shifts.List(ctx, companyID)
	if err != nil {
		return fmt.Errorf("failed to list shifts: %w", err)
	}
	for _, sh := range existing {
		if sh.Code == def.Code {
			return nil
		}
	}

	created, err := s.shifts.Create(ctx, def)
	if err != nil {
		return fmt.Errorf("failed to seed shift %q: %w", def.Code, err)
	}
	for _, ss := range fixtures.GetDefaultSubShifts(created.ID) {
		if _, err := s.subShifts.Create(ctx, ss); err != nil {
			return fmt.Errorf("failed to seed sub-shift %q: %w", ss.Title, err)
		}
	}
	return nil
}
