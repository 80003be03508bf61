package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kaditech/saccoledger/internal/domain"
)

// Direction of a balance delta.
type Direction string

const (
	DirectionCredit Direction = "credit"
	DirectionDebit  Direction = "debit"
)

// BalanceService performs atomic, lock-guarded balance mutation. ApplyDelta
// must only be called with an account that was loaded FOR UPDATE inside the
// transaction passed in; the floor checks are repeated here, not only in
// validation, to close the race window between the two.
type BalanceService struct {
	accountRepo AccountRepository
}

// NewBalanceService creates a new BalanceService.
func NewBalanceService(accountRepo AccountRepository) *BalanceService {
	return &BalanceService{accountRepo: accountRepo}
}

// Available returns the amount the member may actually withdraw.
func (s *BalanceService) Available(account *domain.Account) decimal.Decimal {
	return account.ComputeAvailable()
}

// ApplyDelta mutates the account balance by delta in the given direction and
// returns the post-mutation snapshot used to stamp balance_after on the
// transaction record. The in-memory account is updated to match what was
// persisted.
func (s *BalanceService) ApplyDelta(
	ctx context.Context,
	tx Transaction,
	account *domain.Account,
	delta decimal.Decimal,
	direction Direction,
	at time.Time,
) (*domain.Account, error) {
	if delta.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	var newBalance decimal.Decimal
	switch direction {
	case DirectionDebit:
		if err := account.ValidateDebit(delta); err != nil {
			return nil, err
		}
		newBalance = account.ApplyDebit(delta)
	case DirectionCredit:
		newBalance = account.ApplyCredit(delta)
	default:
		return nil, domain.ErrInvalidAmount
	}

	account.Balance = newBalance
	account.AvailableBalance = account.ComputeAvailable()
	account.Version++
	account.UpdatedAt = at

	err := s.accountRepo.UpdateBalance(ctx, tx, account.ID, account.Balance, account.AvailableBalance, at)
	if err != nil {
		return nil, err
	}

	return account, nil
}
