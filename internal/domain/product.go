package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the configuration an account is opened under. The engine only
// reads products; the product catalog is managed elsewhere.
type Product struct {
	ID                      string
	TenantID                string
	Name                    string
	Kind                    AccountKind
	MinimumBalance          decimal.Decimal
	WithdrawalFee           decimal.Decimal
	MaxWithdrawalAmount     decimal.Decimal
	DailyDepositLimit       decimal.Decimal
	DailyWithdrawalLimit    decimal.Decimal
	AllowPartialWithdrawals bool
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// DailyLimit returns the configured daily aggregate limit for a transaction
// type. Zero means unlimited.
func (p *Product) DailyLimit(t TransactionType) decimal.Decimal {
	switch t {
	case TransactionTypeDeposit, TransactionTypeLoanDisbursement:
		return p.DailyDepositLimit
	case TransactionTypeWithdrawal, TransactionTypeLoanRepayment, TransactionTypeTransfer, TransactionTypeSharePurchase:
		return p.DailyWithdrawalLimit
	}
	return decimal.Zero
}

// Fee returns the fee charged for a transaction type.
func (p *Product) Fee(t TransactionType) decimal.Decimal {
	if t == TransactionTypeWithdrawal {
		return p.WithdrawalFee
	}
	return decimal.Zero
}
