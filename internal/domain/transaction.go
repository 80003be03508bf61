package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a financial event.
type TransactionType string

const (
	TransactionTypeDeposit          TransactionType = "deposit"
	TransactionTypeWithdrawal       TransactionType = "withdrawal"
	TransactionTypeTransfer         TransactionType = "transfer"
	TransactionTypeLoanDisbursement TransactionType = "loan_disbursement"
	TransactionTypeLoanRepayment    TransactionType = "loan_repayment"
	TransactionTypeSharePurchase    TransactionType = "share_purchase"
	TransactionTypeReversal         TransactionType = "reversal"
)

// Valid reports whether the type is known.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeDeposit, TransactionTypeWithdrawal, TransactionTypeTransfer,
		TransactionTypeLoanDisbursement, TransactionTypeLoanRepayment,
		TransactionTypeSharePurchase, TransactionTypeReversal:
		return true
	}
	return false
}

// IsDebit reports whether the type debits the member's account.
func (t TransactionType) IsDebit() bool {
	switch t {
	case TransactionTypeWithdrawal, TransactionTypeLoanRepayment,
		TransactionTypeTransfer, TransactionTypeSharePurchase:
		return true
	}
	return false
}

// NumberPrefix returns the three-letter prefix used for transaction numbers.
func (t TransactionType) NumberPrefix() string {
	switch t {
	case TransactionTypeDeposit:
		return "DEP"
	case TransactionTypeWithdrawal:
		return "WDR"
	case TransactionTypeTransfer:
		return "TRF"
	case TransactionTypeLoanDisbursement:
		return "LDB"
	case TransactionTypeLoanRepayment:
		return "LRP"
	case TransactionTypeSharePurchase:
		return "SHP"
	case TransactionTypeReversal:
		return "REV"
	}
	return "TXN"
}

// TransactionStatus is the state of a transaction record.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
	TransactionStatusReversed  TransactionStatus = "reversed"
)

// Transaction is the immutable audit record of one financial event.
// A transaction is created pending, transitions once to completed or failed,
// and a completed transaction may later transition to reversed exactly once.
type Transaction struct {
	ID                   string
	TransactionNumber    string
	Type                 TransactionType
	AccountID            string
	CounterpartyID       *string
	TenantID             string
	Amount               decimal.Decimal
	FeeAmount            decimal.Decimal
	NetAmount            decimal.Decimal
	Status               TransactionStatus
	BalanceBefore        decimal.Decimal
	BalanceAfter         decimal.Decimal
	RelatedTransactionID *string
	ProcessedBy          string
	Narration            string
	TransactionDate      time.Time
	CreatedAt            time.Time
}

// Complete transitions the transaction from pending to completed.
func (t *Transaction) Complete() error {
	if t.Status != TransactionStatusPending {
		return ErrInvalidStatusTransition
	}
	t.Status = TransactionStatusCompleted
	return nil
}

// Fail transitions the transaction from pending to failed.
func (t *Transaction) Fail() error {
	if t.Status != TransactionStatusPending {
		return ErrInvalidStatusTransition
	}
	t.Status = TransactionStatusFailed
	return nil
}

// MarkReversed transitions a completed transaction to reversed. Reversing a
// transaction twice, or one that never completed, is rejected.
func (t *Transaction) MarkReversed() error {
	switch t.Status {
	case TransactionStatusReversed:
		return ErrAlreadyReversed
	case TransactionStatusCompleted:
		t.Status = TransactionStatusReversed
		return nil
	}
	return ErrNotReversible
}

// HistoryFilter narrows transaction history queries.
type HistoryFilter struct {
	Type   TransactionType
	Status TransactionStatus
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}
