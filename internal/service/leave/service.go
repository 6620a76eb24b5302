package leave

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/opshift/attendance-backend-go/internal/config"
	"github.com/opshift/attendance-backend-go/internal/domain/leave"
	"github.com/opshift/attendance-backend-go/internal/pkg/clock"
	"github.com/opshift/attendance-backend-go/internal/pkg/database"
	"github.com/opshift/attendance-backend-go/internal/pkg/validator"
)

type LeaveServiceImpl struct {
	tx     database.TxManager
	clock  clock.Clock
	policy config.PolicyConfig

	leave.TypeRepository
	leave.RequestRepository
	leave.BalanceRepository
	leave.AllocationRepository
}

func NewLeaveService(
	tx database.TxManager,
	clk clock.Clock,
	policy config.PolicyConfig,
	typeRepo leave.TypeRepository,
	requestRepo leave.RequestRepository,
	balanceRepo leave.BalanceRepository,
	allocationRepo leave.AllocationRepository,
) leave.Service {
	return &LeaveServiceImpl{
		tx:                   tx,
		clock:                clk,
		policy:               policy,
		TypeRepository:       typeRepo,
		RequestRepository:    requestRepo,
		BalanceRepository:    balanceRepo,
		AllocationRepository: allocationRepo,
	}
}

func (s *LeaveServiceImpl) companyID(requested string) string {
	if requested != "" {
		return requested
	}
	return s.policy.DefaultCompanyID
}

// allottedDaysFor resolves the year's allotment for one employee and
// type: a per-employee allocation override wins over the type default,
// and the type's maximum caps both.
func (s *LeaveServiceImpl) allottedDaysFor(ctx context.Context, employeeID string, lt leave.Type, year int) (int, error) {
	allotted := lt.DefaultAllottedDays

	override, err := s.AllocationRepository.GetByKey(ctx, employeeID, lt.ID, year)
	if err != nil {
		return 0, fmt.Errorf("failed to get leave allocation: %w", err)
	}
	if override != nil {
		allotted = override.AllottedDays
	}

	if lt.MaxAllottedDays > 0 && allotted > lt.MaxAllottedDays {
		allotted = lt.MaxAllottedDays
	}
	return allotted, nil
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

func mapRequestToResponse(req leave.Request) leave.RequestResponse {
	return leave.RequestResponse{
		ID:              req.ID,
		EmployeeID:      req.EmployeeID,
		LeaveTypeID:     req.LeaveTypeID,
		LeaveTypeTitle:  req.LeaveTypeTitle,
		StartDate:       req.StartDate.Format("2006-01-02"),
		EndDate:         req.EndDate.Format("2006-01-02"),
		TotalDays:       req.TotalDays,
		Reason:          req.Reason,
		Status:          string(req.Status),
		DecidedBy:       req.DecidedBy,
		DecidedAt:       timePtrToString(req.DecidedAt),
		ApprovalRemarks: req.ApprovalRemarks,
	}
}

func balanceSnapshot(b leave.Balance) leave.BalanceSnapshot {
	return leave.BalanceSnapshot{
		EmployeeID:    b.EmployeeID,
		LeaveTypeID:   b.LeaveTypeID,
		Year:          b.Year,
		TotalDays:     b.TotalDays,
		UsedDays:      b.UsedDays,
		RemainingDays: b.RemainingDays(),
	}
}

// CreateRequest implements leave.Service. Balance-tracked types are
// verified against the remaining balance up front so a request that can
// never be approved is rejected at submission; days are consumed only on
// approval. Types not requiring approval approve and consume in the same
// transaction.
func (s *LeaveServiceImpl) CreateRequest(ctx context.Context, req leave.CreateRequestRequest) (leave.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.RequestResponse{}, err
	}

	startDate, _ := validator.IsValidDate(req.StartDate)
	endDate, _ := validator.IsValidDate(req.EndDate)
	if endDate.Before(startDate) {
		return leave.RequestResponse{}, leave.ErrInvalidDateRange
	}

	companyID := s.companyID(req.CompanyID)
	totalDays := leave.TotalDaysBetween(startDate, endDate)
	year := leave.FinancialYear(startDate, s.policy.FinancialYearStartMonth)

	leaveType, err := s.TypeRepository.GetByID(ctx, req.LeaveTypeID, companyID)
	if err != nil {
		return leave.RequestResponse{}, leave.ErrLeaveTypeNotFound
	}

	allotted, err := s.allottedDaysFor(ctx, req.EmployeeID, leaveType, year)
	if err != nil {
		return leave.RequestResponse{}, err
	}

	var created leave.Request
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		request := leave.Request{
			EmployeeID:  req.EmployeeID,
			CompanyID:   companyID,
			LeaveTypeID: leaveType.ID,
			StartDate:   startDate,
			EndDate:     endDate,
			TotalDays:   totalDays,
			Reason:      req.Reason,
			Status:      leave.RequestStatusPending,
		}

		if !leaveType.IsLossOfPay {
			balance, err := s.BalanceRepository.GetOrCreateLocked(ctx, req.EmployeeID, leaveType.ID, year, allotted)
			if err != nil {
				return fmt.Errorf("failed to get leave balance: %w", err)
			}
			// Zero allotment means the type was never set up for this
			// employee; that is a configuration gap, not an overdraft.
			if balance.TotalDays == 0 {
				return leave.ErrNoBalanceConfigured
			}
			if balance.RemainingDays() < totalDays {
				return leave.ErrInsufficientBalance
			}

			if !leaveType.RequiresApproval {
				balance.UsedDays += totalDays
				if err := s.BalanceRepository.Update(ctx, balance); err != nil {
					return fmt.Errorf("failed to update leave balance: %w", err)
				}
			}
		}

		if !leaveType.RequiresApproval {
			now := s.clock.Now()
			remarks := "Auto-approved"
			request.Status = leave.RequestStatusApproved
			request.DecidedAt = &now
			request.ApprovalRemarks = &remarks
		}

		created, err = s.RequestRepository.Create(ctx, request)
		if err != nil {
			return fmt.Errorf("failed to create leave request: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.RequestResponse{}, err
	}

	created.LeaveTypeTitle = &leaveType.Title
	return mapRequestToResponse(created), nil
}

// Approve implements leave.Service. The request row and the ledger row
// are locked in the same transaction; the days consumed equal the
// request's TotalDays exactly once.
func (s *LeaveServiceImpl) Approve(ctx context.Context, req leave.DecisionRequest) (leave.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.RequestResponse{}, err
	}

	var updated leave.Request
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		request, err := s.RequestRepository.GetByIDLocked(ctx, req.RequestID)
		if err != nil {
			return err
		}
		if !request.Status.CanTransitionTo(leave.RequestStatusApproved) {
			return leave.ErrInvalidStateTransition
		}

		leaveType, err := s.TypeRepository.GetByID(ctx, request.LeaveTypeID, request.CompanyID)
		if err != nil {
			return leave.ErrLeaveTypeNotFound
		}

		if !leaveType.IsLossOfPay {
			year := leave.FinancialYear(request.StartDate, s.policy.FinancialYearStartMonth)
			allotted, err := s.allottedDaysFor(ctx, request.EmployeeID, leaveType, year)
			if err != nil {
				return err
			}

			balance, err := s.BalanceRepository.GetOrCreateLocked(ctx, request.EmployeeID, leaveType.ID, year, allotted)
			if err != nil {
				return fmt.Errorf("failed to get leave balance: %w", err)
			}
			if balance.TotalDays == 0 {
				return leave.ErrNoBalanceConfigured
			}
			if balance.RemainingDays() < request.TotalDays {
				return leave.ErrInsufficientBalance
			}

			balance.UsedDays += request.TotalDays
			if err := s.BalanceRepository.Update(ctx, balance); err != nil {
				return fmt.Errorf("failed to update leave balance: %w", err)
			}
		}

		now := s.clock.Now()
		request.Status = leave.RequestStatusApproved
		request.DecidedBy = &req.ApproverID
		request.DecidedAt = &now
		request.ApprovalRemarks = req.Remarks

		if err := s.RequestRepository.Update(ctx, request); err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}
		updated = request
		return nil
	})
	if err != nil {
		return leave.RequestResponse{}, err
	}

	return mapRequestToResponse(updated), nil
}

// Reject implements leave.Service. Rejection never touches the ledger.
func (s *LeaveServiceImpl) Reject(ctx context.Context, req leave.DecisionRequest) (leave.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.RequestResponse{}, err
	}

	var updated leave.Request
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		request, err := s.RequestRepository.GetByIDLocked(ctx, req.RequestID)
		if err != nil {
			return err
		}
		if !request.Status.CanTransitionTo(leave.RequestStatusRejected) {
			return leave.ErrInvalidStateTransition
		}

		now := s.clock.Now()
		request.Status = leave.RequestStatusRejected
		request.DecidedBy = &req.ApproverID
		request.DecidedAt = &now
		request.ApprovalRemarks = req.Remarks

		if err := s.RequestRepository.Update(ctx, request); err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}
		updated = request
		return nil
	})
	if err != nil {
		return leave.RequestResponse{}, err
	}

	return mapRequestToResponse(updated), nil
}

// Cancel implements leave.Service. Cancelling an approved request gives
// the consumed days back; the restore floors at zero so a ledger row
// adjusted downward in the meantime cannot go negative.
func (s *LeaveServiceImpl) Cancel(ctx context.Context, requestID string) (leave.CancelResponse, error) {
	var updated leave.Request
	var restored bool

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		request, err := s.RequestRepository.GetByIDLocked(ctx, requestID)
		if err != nil {
			return err
		}
		if !request.Status.CanTransitionTo(leave.RequestStatusCancelled) {
			return leave.ErrInvalidStateTransition
		}

		if request.Status == leave.RequestStatusApproved {
			leaveType, err := s.TypeRepository.GetByID(ctx, request.LeaveTypeID, request.CompanyID)
			if err != nil {
				return leave.ErrLeaveTypeNotFound
			}

			if !leaveType.IsLossOfPay {
				year := leave.FinancialYear(request.StartDate, s.policy.FinancialYearStartMonth)
				allotted, err := s.allottedDaysFor(ctx, request.EmployeeID, leaveType, year)
				if err != nil {
					return err
				}

				balance, err := s.BalanceRepository.GetOrCreateLocked(ctx, request.EmployeeID, leaveType.ID, year, allotted)
				if err != nil {
					return fmt.Errorf("failed to get leave balance: %w", err)
				}

				balance.UsedDays -= request.TotalDays
				if balance.UsedDays < 0 {
					balance.UsedDays = 0
				}
				if err := s.BalanceRepository.Update(ctx, balance); err != nil {
					return fmt.Errorf("failed to update leave balance: %w", err)
				}
				restored = true
			}
		}

		request.Status = leave.RequestStatusCancelled
		if err := s.RequestRepository.Update(ctx, request); err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}
		updated = request
		return nil
	})
	if err != nil {
		return leave.CancelResponse{}, err
	}

	return leave.CancelResponse{
		RequestResponse: mapRequestToResponse(updated),
		BalanceRestored: restored,
	}, nil
}

// List implements leave.Service.
func (s *LeaveServiceImpl) List(ctx context.Context, filter leave.RequestFilter, companyID string) (leave.ListRequestsResponse, error) {
	companyID = s.companyID(companyID)

	requests, total, err := s.RequestRepository.List(ctx, filter, companyID)
	if err != nil {
		return leave.ListRequestsResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.RequestResponse, 0, len(requests))
	for _, req := range requests {
		responses = append(responses, mapRequestToResponse(req))
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	return leave.ListRequestsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      limit,
		TotalPages: totalPages,
		Requests:   responses,
	}, nil
}

// GetBalances implements leave.Service. Year zero means the current
// financial year.
func (s *LeaveServiceImpl) GetBalances(ctx context.Context, employeeID string, year int) ([]leave.BalanceSnapshot, error) {
	if year == 0 {
		year = leave.FinancialYear(s.clock.Now(), s.policy.FinancialYearStartMonth)
	}

	balances, err := s.BalanceRepository.ListByEmployeeYear(ctx, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave balances: %w", err)
	}

	snapshots := make([]leave.BalanceSnapshot, 0, len(balances))
	for _, b := range balances {
		snapshots = append(snapshots, balanceSnapshot(b))
	}
	return snapshots, nil
}

// AdjustBalance implements leave.Service. The delta moves TotalDays, not
// UsedDays, so history stays intact; the total floors at zero.
func (s *LeaveServiceImpl) AdjustBalance(ctx context.Context, req leave.AdjustBalanceRequest) (leave.BalanceSnapshot, error) {
	if err := req.Validate(); err != nil {
		return leave.BalanceSnapshot{}, err
	}

	companyID := s.companyID(req.CompanyID)
	year := req.Year
	if year == 0 {
		year = leave.FinancialYear(s.clock.Now(), s.policy.FinancialYearStartMonth)
	}

	leaveType, err := s.TypeRepository.GetByID(ctx, req.LeaveTypeID, companyID)
	if err != nil {
		return leave.BalanceSnapshot{}, leave.ErrLeaveTypeNotFound
	}

	allotted, err := s.allottedDaysFor(ctx, req.EmployeeID, leaveType, year)
	if err != nil {
		return leave.BalanceSnapshot{}, err
	}

	var snapshot leave.BalanceSnapshot
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		balance, err := s.BalanceRepository.GetOrCreateLocked(ctx, req.EmployeeID, leaveType.ID, year, allotted)
		if err != nil {
			return fmt.Errorf("failed to get leave balance: %w", err)
		}

		balance.TotalDays += req.DeltaDays
		if balance.TotalDays < 0 {
			balance.TotalDays = 0
		}

		if err := s.BalanceRepository.Update(ctx, balance); err != nil {
			return fmt.Errorf("failed to update leave balance: %w", err)
		}
		snapshot = balanceSnapshot(balance)
		return nil
	})
	if err != nil {
		return leave.BalanceSnapshot{}, err
	}

	return snapshot, nil
}
