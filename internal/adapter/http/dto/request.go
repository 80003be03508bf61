package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kaditech/saccoledger/internal/domain"
	"github.com/kaditech/saccoledger/internal/usecase"
)

// ProcessTransactionRequest represents a request to process a financial
// transaction against a member account.
type ProcessTransactionRequest struct {
	Type            string          `json:"type"`
	AccountID       string          `json:"account_id"`
	CounterpartyID  string          `json:"counterparty_id,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	Narration       string          `json:"narration,omitempty"`
	TransactionDate *time.Time      `json:"transaction_date,omitempty"`
}

// ToUseCaseInput converts to use case input on behalf of the acting caller.
func (r *ProcessTransactionRequest) ToUseCaseInput(actor domain.Actor) usecase.ProcessRequest {
	req := usecase.ProcessRequest{
		Type:           domain.TransactionType(r.Type),
		AccountID:      r.AccountID,
		CounterpartyID: r.CounterpartyID,
		Amount:         r.Amount,
		Narration:      r.Narration,
		Actor:          actor,
	}
	if r.TransactionDate != nil {
		req.At = *r.TransactionDate
	}
	return req
}

// ReverseTransactionRequest represents a request to reverse a completed
// transaction.
type ReverseTransactionRequest struct {
	Reason string `json:"reason"`
}

// ToUseCaseInput converts to use case input.
func (r *ReverseTransactionRequest) ToUseCaseInput(transactionID string, actor domain.Actor) usecase.ReverseRequest {
	return usecase.ReverseRequest{
		TransactionID: transactionID,
		Reason:        r.Reason,
		Actor:         actor,
	}
}

// HistoryQuery represents transaction history filter parameters.
type HistoryQuery struct {
	Type   string
	Status string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// ToFilter converts to a domain history filter.
func (q HistoryQuery) ToFilter() domain.HistoryFilter {
	return domain.HistoryFilter{
		Type:   domain.TransactionType(q.Type),
		Status: domain.TransactionStatus(q.Status),
		From:   q.From,
		To:     q.To,
		Limit:  q.Limit,
		Offset: q.Offset,
	}
}
