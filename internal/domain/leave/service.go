package leave

import "context"

// Service is the leave request lifecycle coupled to the balance ledger.
type Service interface {
	CreateRequest(ctx context.Context, req CreateRequestRequest) (RequestResponse, error)
	Approve(ctx context.Context, req DecisionRequest) (RequestResponse, error)
	Reject(ctx context.Context, req DecisionRequest) (RequestResponse, error)
	// Cancel works on pending and approved requests; cancelling an
	// approved one restores the used days it consumed.
	Cancel(ctx context.Context, requestID string) (CancelResponse, error)
	List(ctx context.Context, filter RequestFilter, companyID string) (ListRequestsResponse, error)
	GetBalances(ctx context.Context, employeeID string, year int) ([]BalanceSnapshot, error)
	AdjustBalance(ctx context.Context, req AdjustBalanceRequest) (BalanceSnapshot, error)
}
