package generated

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type Account struct {
	ID               string             `json:"id"`
	AccountNumber    string             `json:"account_number"`
	MemberID         string             `json:"member_id"`
	TenantID         string             `json:"tenant_id"`
	ProductID        string             `json:"product_id"`
	Kind             string             `json:"kind"`
	Status           string             `json:"status"`
	Balance          pgtype.Numeric     `json:"balance"`
	AvailableBalance pgtype.Numeric     `json:"available_balance"`
	MinimumBalance   pgtype.Numeric     `json:"minimum_balance"`
	ActiveHolds      pgtype.Numeric     `json:"active_holds"`
	Version          int64              `json:"version"`
	CreatedAt        pgtype.Timestamptz `json:"created_at"`
	UpdatedAt        pgtype.Timestamptz `json:"updated_at"`
}

type GeneralLedgerEntry struct {
	ID            string             `json:"id"`
	TransactionID string             `json:"transaction_id"`
	TenantID      string             `json:"tenant_id"`
	AccountCode   string             `json:"account_code"`
	AccountName   string             `json:"account_name"`
	AccountType   string             `json:"account_type"`
	DebitAmount   pgtype.Numeric     `json:"debit_amount"`
	CreditAmount  pgtype.Numeric     `json:"credit_amount"`
	Status        string             `json:"status"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
}

type OutboxEvent struct {
	ID            string             `json:"id"`
	TenantID      string             `json:"tenant_id"`
	AggregateID   string             `json:"aggregate_id"`
	AggregateType string             `json:"aggregate_type"`
	EventType     string             `json:"event_type"`
	Payload       []byte             `json:"payload"`
	Published     bool               `json:"published"`
	PublishedAt   pgtype.Timestamptz `json:"published_at"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
}

type Product struct {
	ID                      string             `json:"id"`
	TenantID                string             `json:"tenant_id"`
	Name                    string             `json:"name"`
	Kind                    string             `json:"kind"`
	MinimumBalance          pgtype.Numeric     `json:"minimum_balance"`
	WithdrawalFee           pgtype.Numeric     `json:"withdrawal_fee"`
	MaxWithdrawalAmount     pgtype.Numeric     `json:"max_withdrawal_amount"`
	DailyDepositLimit       pgtype.Numeric     `json:"daily_deposit_limit"`
	DailyWithdrawalLimit    pgtype.Numeric     `json:"daily_withdrawal_limit"`
	AllowPartialWithdrawals bool               `json:"allow_partial_withdrawals"`
	CreatedAt               pgtype.Timestamptz `json:"created_at"`
	UpdatedAt               pgtype.Timestamptz `json:"updated_at"`
}

type Transaction struct {
	ID                   string             `json:"id"`
	TransactionNumber    string             `json:"transaction_number"`
	Type                 string             `json:"type"`
	Status               string             `json:"status"`
	AccountID            string             `json:"account_id"`
	CounterpartyID       pgtype.Text        `json:"counterparty_id"`
	TenantID             string             `json:"tenant_id"`
	Amount               pgtype.Numeric     `json:"amount"`
	FeeAmount            pgtype.Numeric     `json:"fee_amount"`
	NetAmount            pgtype.Numeric     `json:"net_amount"`
	BalanceBefore        pgtype.Numeric     `json:"balance_before"`
	BalanceAfter         pgtype.Numeric     `json:"balance_after"`
	RelatedTransactionID pgtype.Text        `json:"related_transaction_id"`
	ProcessedBy          string             `json:"processed_by"`
	Narration            string             `json:"narration"`
	TransactionDate      pgtype.Timestamptz `json:"transaction_date"`
	CreatedAt            pgtype.Timestamptz `json:"created_at"`
}

type TransactionCounter struct {
	TxnType   string             `json:"txn_type"`
	Value     int64              `json:"value"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}
