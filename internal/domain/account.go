package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountKind is the closed set of balance-bearing account subtypes.
type AccountKind string

const (
	AccountKindSavings AccountKind = "savings"
	AccountKindShare   AccountKind = "share"
	AccountKindWallet  AccountKind = "wallet"
)

// Valid reports whether the kind is a known subtype.
func (k AccountKind) Valid() bool {
	switch k {
	case AccountKindSavings, AccountKindShare, AccountKindWallet:
		return true
	}
	return false
}

// AccountStatus is the lifecycle status of an account.
type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "active"
	AccountStatusInactive AccountStatus = "inactive"
	AccountStatusDormant  AccountStatus = "dormant"
	AccountStatusClosed   AccountStatus = "closed"
)

// Account represents a member account that can hold a balance.
// Balances are mutated only through the balance service under a row lock.
type Account struct {
	ID               string
	AccountNumber    string
	MemberID         string
	TenantID         string
	ProductID        string
	Kind             AccountKind
	Status           AccountStatus
	Balance          decimal.Decimal
	AvailableBalance decimal.Decimal
	MinimumBalance   decimal.Decimal
	ActiveHolds      decimal.Decimal
	Version          int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ComputeAvailable returns balance minus the minimum-balance floor and any
// active holds, never below zero.
func (a *Account) ComputeAvailable() decimal.Decimal {
	available := a.Balance.Sub(a.MinimumBalance)
	if available.IsNegative() {
		available = decimal.Zero
	}

	available = available.Sub(a.ActiveHolds)
	if available.IsNegative() {
		available = decimal.Zero
	}

	return available
}

// ValidateDebit checks whether the account can be debited by amount without
// breaching zero or its minimum-balance floor. The insufficient-funds and
// minimum-balance cases are distinct errors.
func (a *Account) ValidateDebit(amount decimal.Decimal) error {
	newBalance := a.Balance.Sub(amount)
	if newBalance.IsNegative() {
		return ErrInsufficientBalance
	}

	if newBalance.LessThan(a.MinimumBalance) {
		return ErrMinimumBalanceBreach
	}

	return nil
}

// ApplyDebit returns the balance after a debit of amount.
func (a *Account) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Sub(amount)
}

// ApplyCredit returns the balance after a credit of amount.
func (a *Account) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Add(amount)
}

// IsActive reports whether the account accepts transactions.
func (a *Account) IsActive() bool {
	return a.Status == AccountStatusActive
}

// OwnedBy reports whether the account belongs to the given member and tenant.
func (a *Account) OwnedBy(memberID, tenantID string) bool {
	return a.MemberID == memberID && a.TenantID == tenantID
}

// BalanceSnapshot is the read-side view of an account balance.
type BalanceSnapshot struct {
	AccountID        string
	AccountNumber    string
	Balance          decimal.Decimal
	AvailableBalance decimal.Decimal
	MinimumBalance   decimal.Decimal
	ActiveHolds      decimal.Decimal
	AsOf             time.Time
}
