package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerAccountType classifies a general-ledger account.
type LedgerAccountType string

const (
	LedgerAccountTypeAsset     LedgerAccountType = "asset"
	LedgerAccountTypeLiability LedgerAccountType = "liability"
	LedgerAccountTypeEquity    LedgerAccountType = "equity"
	LedgerAccountTypeIncome    LedgerAccountType = "income"
	LedgerAccountTypeExpense   LedgerAccountType = "expense"
)

// LedgerEntryStatus is the posting state of a ledger entry.
type LedgerEntryStatus string

const (
	LedgerEntryStatusPending LedgerEntryStatus = "pending"
	LedgerEntryStatusPosted  LedgerEntryStatus = "posted"
)

// LedgerEntry is one row of a double-entry posting. Entries are append-only:
// corrections are new entries from a reversal transaction, never edits.
type LedgerEntry struct {
	ID            string
	TransactionID string
	TenantID      string
	AccountCode   string
	AccountName   string
	AccountType   LedgerAccountType
	DebitAmount   decimal.Decimal
	CreditAmount  decimal.Decimal
	Status        LedgerEntryStatus
	CreatedAt     time.Time
}

// Validate checks that exactly one side of the entry is non-zero and the
// non-zero side is positive.
func (e *LedgerEntry) Validate() error {
	debitSet := !e.DebitAmount.IsZero()
	creditSet := !e.CreditAmount.IsZero()

	if debitSet == creditSet {
		return ErrInvalidLedgerEntry
	}

	if e.DebitAmount.IsNegative() || e.CreditAmount.IsNegative() {
		return ErrInvalidLedgerEntry
	}

	return nil
}

// Inverse returns a new entry with debit and credit swapped, linked to the
// given reversal transaction.
func (e *LedgerEntry) Inverse(id, reversalTransactionID string, at time.Time) *LedgerEntry {
	return &LedgerEntry{
		ID:            id,
		TransactionID: reversalTransactionID,
		TenantID:      e.TenantID,
		AccountCode:   e.AccountCode,
		AccountName:   e.AccountName,
		AccountType:   e.AccountType,
		DebitAmount:   e.CreditAmount,
		CreditAmount:  e.DebitAmount,
		Status:        LedgerEntryStatusPending,
		CreatedAt:     at,
	}
}

// SumEntries returns the debit and credit totals over a posting batch.
func SumEntries(entries []*LedgerEntry) (debits, credits decimal.Decimal) {
	debits, credits = decimal.Zero, decimal.Zero
	for _, e := range entries {
		debits = debits.Add(e.DebitAmount)
		credits = credits.Add(e.CreditAmount)
	}
	return debits, credits
}

// EntriesBalanced reports whether debit and credit totals match.
func EntriesBalanced(entries []*LedgerEntry) bool {
	debits, credits := SumEntries(entries)
	return debits.Equal(credits)
}
