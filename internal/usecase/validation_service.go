package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/kaditech/saccoledger/internal/domain"
)

// ValidationService enforces business rules before any mutation occurs. It
// never mutates state; checks run fail-fast in a fixed order so a request
// always fails on the same rule regardless of what else is wrong with it.
type ValidationService struct {
	txnRepo TransactionRepository
}

// NewValidationService creates a new ValidationService.
func NewValidationService(txnRepo TransactionRepository) *ValidationService {
	return &ValidationService{txnRepo: txnRepo}
}

// ValidateStatic checks everything that needs no storage access: the request
// shape itself. Failures come back as field-level ValidationErrors.
func (s *ValidationService) ValidateStatic(req ProcessRequest) error {
	if !req.Type.Valid() || req.Type == domain.TransactionTypeReversal {
		return domain.NewValidationError("type", "unknown transaction type")
	}

	if req.AccountID == "" {
		return domain.NewValidationError("account_id", "account id is required")
	}

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return domain.NewValidationError("amount", "amount must be positive")
	}

	if req.Type == domain.TransactionTypeTransfer {
		if req.CounterpartyID == "" {
			return domain.NewValidationError("counterparty_id", "transfer requires a destination account")
		}
		if req.CounterpartyID == req.AccountID {
			return domain.ErrSameAccount
		}
	}

	return nil
}

// Validate enforces the repository-backed rules against the locked account.
// It runs inside the same database transaction as the mutation so the checks
// cannot race the balance change. Order: amount bounds, ownership and status,
// balance floors, daily aggregate limit, partial-withdrawal policy.
func (s *ValidationService) Validate(
	ctx context.Context,
	tx Transaction,
	req ProcessRequest,
	account *domain.Account,
	product *domain.Product,
	actor domain.Actor,
) error {
	// 1. Amount bounds for withdrawal-class operations.
	if req.Type.IsDebit() && product.MaxWithdrawalAmount.IsPositive() &&
		req.Amount.GreaterThan(product.MaxWithdrawalAmount) {
		return domain.ErrAmountExceedsMaximum
	}

	// 2. Ownership and status. A wrong owner looks identical to a missing
	// account so callers cannot probe for other members' accounts.
	if account.TenantID != actor.TenantID {
		return domain.ErrAccountNotFound
	}
	if !actor.IsStaff() && !account.OwnedBy(actor.MemberID, actor.TenantID) {
		return domain.ErrAccountNotFound
	}
	if !account.IsActive() {
		return domain.ErrAccountNotActive
	}

	// 3. Balance floors for debit-class operations, fee included.
	if req.Type.IsDebit() {
		totalDebit := req.Amount.Add(product.Fee(req.Type))
		if err := account.ValidateDebit(totalDebit); err != nil {
			return err
		}
	}

	// 4. Daily aggregate limit over today's completed transactions of the
	// same type.
	limit := product.DailyLimit(req.Type)
	if limit.IsPositive() {
		spent, err := s.txnRepo.SumCompletedForDay(ctx, tx, account.ID, req.Type, req.At)
		if err != nil {
			return err
		}
		if spent.Add(req.Amount).GreaterThan(limit) {
			return domain.ErrDailyLimitExceeded
		}
	}

	// 5. Partial-withdrawal policy.
	if req.Type == domain.TransactionTypeWithdrawal && !product.AllowPartialWithdrawals &&
		!req.Amount.Equal(account.Balance) {
		return domain.ErrPartialWithdrawalNotAllowed
	}

	return nil
}
