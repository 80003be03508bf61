package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kaditech/saccoledger/internal/domain"
)

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID                   string          `json:"id"`
	TransactionNumber    string          `json:"transaction_number"`
	Type                 string          `json:"type"`
	AccountID            string          `json:"account_id"`
	CounterpartyID       *string         `json:"counterparty_id,omitempty"`
	Amount               decimal.Decimal `json:"amount"`
	FeeAmount            decimal.Decimal `json:"fee_amount"`
	NetAmount            decimal.Decimal `json:"net_amount"`
	Status               string          `json:"status"`
	BalanceBefore        decimal.Decimal `json:"balance_before"`
	BalanceAfter         decimal.Decimal `json:"balance_after"`
	RelatedTransactionID *string         `json:"related_transaction_id,omitempty"`
	ProcessedBy          string          `json:"processed_by"`
	Narration            string          `json:"narration,omitempty"`
	TransactionDate      time.Time       `json:"transaction_date"`
	CreatedAt            time.Time       `json:"created_at"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:                   t.ID,
		TransactionNumber:    t.TransactionNumber,
		Type:                 string(t.Type),
		AccountID:            t.AccountID,
		CounterpartyID:       t.CounterpartyID,
		Amount:               t.Amount,
		FeeAmount:            t.FeeAmount,
		NetAmount:            t.NetAmount,
		Status:               string(t.Status),
		BalanceBefore:        t.BalanceBefore,
		BalanceAfter:         t.BalanceAfter,
		RelatedTransactionID: t.RelatedTransactionID,
		ProcessedBy:          t.ProcessedBy,
		Narration:            t.Narration,
		TransactionDate:      t.TransactionDate,
		CreatedAt:            t.CreatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(transactions []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(transactions))
	for i, t := range transactions {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
	Limit        int                    `json:"limit"`
	Offset       int                    `json:"offset"`
}

// BalanceResponse represents an account balance snapshot.
type BalanceResponse struct {
	AccountID        string          `json:"account_id"`
	AccountNumber    string          `json:"account_number"`
	Balance          decimal.Decimal `json:"balance"`
	AvailableBalance decimal.Decimal `json:"available_balance"`
	MinimumBalance   decimal.Decimal `json:"minimum_balance"`
	ActiveHolds      decimal.Decimal `json:"active_holds"`
	AsOf             time.Time       `json:"as_of"`
}

// BalanceFromDomain converts a domain balance snapshot to a response.
func BalanceFromDomain(b *domain.BalanceSnapshot) *BalanceResponse {
	return &BalanceResponse{
		AccountID:        b.AccountID,
		AccountNumber:    b.AccountNumber,
		Balance:          b.Balance,
		AvailableBalance: b.AvailableBalance,
		MinimumBalance:   b.MinimumBalance,
		ActiveHolds:      b.ActiveHolds,
		AsOf:             b.AsOf,
	}
}

// LedgerEntryResponse represents a general-ledger entry in API responses.
type LedgerEntryResponse struct {
	ID            string          `json:"id"`
	TransactionID string          `json:"transaction_id"`
	AccountCode   string          `json:"account_code"`
	AccountName   string          `json:"account_name"`
	AccountType   string          `json:"account_type"`
	DebitAmount   decimal.Decimal `json:"debit_amount"`
	CreditAmount  decimal.Decimal `json:"credit_amount"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}

// LedgerEntryFromDomain converts a domain ledger entry to a response.
func LedgerEntryFromDomain(e *domain.LedgerEntry) *LedgerEntryResponse {
	return &LedgerEntryResponse{
		ID:            e.ID,
		TransactionID: e.TransactionID,
		AccountCode:   e.AccountCode,
		AccountName:   e.AccountName,
		AccountType:   string(e.AccountType),
		DebitAmount:   e.DebitAmount,
		CreditAmount:  e.CreditAmount,
		Status:        string(e.Status),
		CreatedAt:     e.CreatedAt,
	}
}

// LedgerEntriesFromDomain converts domain ledger entries to responses.
func LedgerEntriesFromDomain(entries []*domain.LedgerEntry) []*LedgerEntryResponse {
	result := make([]*LedgerEntryResponse, len(entries))
	for i, e := range entries {
		result[i] = LedgerEntryFromDomain(e)
	}
	return result
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}
