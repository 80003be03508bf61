package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createTransaction = `-- name: CreateTransaction :one
INSERT INTO transactions (id, transaction_number, type, status, account_id, counterparty_id, tenant_id, amount, fee_amount, net_amount, balance_before, balance_after, related_transaction_id, processed_by, narration, transaction_date, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
RETURNING id, transaction_number, type, status, account_id, counterparty_id, tenant_id, amount, fee_amount, net_amount, balance_before, balance_after, related_transaction_id, processed_by, narration, transaction_date, created_at
`

type CreateTransactionParams struct {
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

func (q *Queries) CreateTransaction(ctx context.Context, arg CreateTransactionParams) (Transaction, error) {
	row := q.db.QueryRow(ctx, createTransaction,
		arg.ID,
		arg.TransactionNumber,
		arg.Type,
		arg.Status,
		arg.AccountID,
		arg.CounterpartyID,
		arg.TenantID,
		arg.Amount,
		arg.FeeAmount,
		arg.NetAmount,
		arg.BalanceBefore,
		arg.BalanceAfter,
		arg.RelatedTransactionID,
		arg.ProcessedBy,
		arg.Narration,
		arg.TransactionDate,
		arg.CreatedAt,
	)
	var i Transaction
	err := row.Scan(
		&i.ID,
		&i.TransactionNumber,
		&i.Type,
		&i.Status,
		&i.AccountID,
		&i.CounterpartyID,
		&i.TenantID,
		&i.Amount,
		&i.FeeAmount,
		&i.NetAmount,
		&i.BalanceBefore,
		&i.BalanceAfter,
		&i.RelatedTransactionID,
		&i.ProcessedBy,
		&i.Narration,
		&i.TransactionDate,
		&i.CreatedAt,
	)
	return i, err
}

const getTransactionByID = `-- name: GetTransactionByID :one
SELECT id, transaction_number, type, status, account_id, counterparty_id, tenant_id, amount, fee_amount, net_amount, balance_before, balance_after, related_transaction_id, processed_by, narration, transaction_date, created_at FROM transactions WHERE id = $1
`

func (q *Queries) GetTransactionByID(ctx context.Context, id string) (Transaction, error) {
	row := q.db.QueryRow(ctx, getTransactionByID, id)
	var i Transaction
	err := row.Scan(
		&i.ID,
		&i.TransactionNumber,
		&i.Type,
		&i.Status,
		&i.AccountID,
		&i.CounterpartyID,
		&i.TenantID,
		&i.Amount,
		&i.FeeAmount,
		&i.NetAmount,
		&i.BalanceBefore,
		&i.BalanceAfter,
		&i.RelatedTransactionID,
		&i.ProcessedBy,
		&i.Narration,
		&i.TransactionDate,
		&i.CreatedAt,
	)
	return i, err
}

const getTransactionByIDForUpdate = `-- name: GetTransactionByIDForUpdate :one
SELECT id, transaction_number, type, status, account_id, counterparty_id, tenant_id, amount, fee_amount, net_amount, balance_before, balance_after, related_transaction_id, processed_by, narration, transaction_date, created_at FROM transactions WHERE id = $1 FOR UPDATE
`

func (q *Queries) GetTransactionByIDForUpdate(ctx context.Context, id string) (Transaction, error) {
	row := q.db.QueryRow(ctx, getTransactionByIDForUpdate, id)
	var i Transaction
	err := row.Scan(
		&i.ID,
		&i.TransactionNumber,
		&i.Type,
		&i.Status,
		&i.AccountID,
		&i.CounterpartyID,
		&i.TenantID,
		&i.Amount,
		&i.FeeAmount,
		&i.NetAmount,
		&i.BalanceBefore,
		&i.BalanceAfter,
		&i.RelatedTransactionID,
		&i.ProcessedBy,
		&i.Narration,
		&i.TransactionDate,
		&i.CreatedAt,
	)
	return i, err
}

const getTransactionByNumber = `-- name: GetTransactionByNumber :one
SELECT id, transaction_number, type, status, account_id, counterparty_id, tenant_id, amount, fee_amount, net_amount, balance_before, balance_after, related_transaction_id, processed_by, narration, transaction_date, created_at FROM transactions WHERE transaction_number = $1
`

func (q *Queries) GetTransactionByNumber(ctx context.Context, transactionNumber string) (Transaction, error) {
	row := q.db.QueryRow(ctx, getTransactionByNumber, transactionNumber)
	var i Transaction
	err := row.Scan(
		&i.ID,
		&i.TransactionNumber,
		&i.Type,
		&i.Status,
		&i.AccountID,
		&i.CounterpartyID,
		&i.TenantID,
		&i.Amount,
		&i.FeeAmount,
		&i.NetAmount,
		&i.BalanceBefore,
		&i.BalanceAfter,
		&i.RelatedTransactionID,
		&i.ProcessedBy,
		&i.Narration,
		&i.TransactionDate,
		&i.CreatedAt,
	)
	return i, err
}

const listTransactionsByAccount = `-- name: ListTransactionsByAccount :many
SELECT id, transaction_number, type, status, account_id, counterparty_id, tenant_id, amount, fee_amount, net_amount, balance_before, balance_after, related_transaction_id, processed_by, narration, transaction_date, created_at FROM transactions
WHERE account_id = $1 AND tenant_id = $2
  AND ($3::text = '' OR type = $3)
  AND ($4::text = '' OR status = $4)
  AND ($5::timestamptz IS NULL OR transaction_date >= $5)
  AND ($6::timestamptz IS NULL OR transaction_date <= $6)
ORDER BY transaction_date DESC, created_at DESC
LIMIT $7 OFFSET $8
`

type ListTransactionsByAccountParams struct {
	AccountID string             `json:"account_id"`
	TenantID  string             `json:"tenant_id"`
	Type      string             `json:"type"`
	Status    string             `json:"status"`
	From      pgtype.Timestamptz `json:"from"`
	To        pgtype.Timestamptz `json:"to"`
	Limit     int32              `json:"limit"`
	Offset    int32              `json:"offset"`
}

func (q *Queries) ListTransactionsByAccount(ctx context.Context, arg ListTransactionsByAccountParams) ([]Transaction, error) {
	rows, err := q.db.Query(ctx, listTransactionsByAccount,
		arg.AccountID,
		arg.TenantID,
		arg.Type,
		arg.Status,
		arg.From,
		arg.To,
		arg.Limit,
		arg.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Transaction{}
	for rows.Next() {
		var i Transaction
		if err := rows.Scan(
			&i.ID,
			&i.TransactionNumber,
			&i.Type,
			&i.Status,
			&i.AccountID,
			&i.CounterpartyID,
			&i.TenantID,
			&i.Amount,
			&i.FeeAmount,
			&i.NetAmount,
			&i.BalanceBefore,
			&i.BalanceAfter,
			&i.RelatedTransactionID,
			&i.ProcessedBy,
			&i.Narration,
			&i.TransactionDate,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const sumCompletedTransactionsForDay = `-- name: SumCompletedTransactionsForDay :one
SELECT COALESCE(SUM(amount), 0)::numeric FROM transactions
WHERE account_id = $1 AND type = $2 AND status = 'completed'
  AND transaction_date >= $3 AND transaction_date < $4
`

type SumCompletedTransactionsForDayParams struct {
	AccountID string             `json:"account_id"`
	Type      string             `json:"type"`
	DayStart  pgtype.Timestamptz `json:"day_start"`
	DayEnd    pgtype.Timestamptz `json:"day_end"`
}

func (q *Queries) SumCompletedTransactionsForDay(ctx context.Context, arg SumCompletedTransactionsForDayParams) (pgtype.Numeric, error) {
	row := q.db.QueryRow(ctx, sumCompletedTransactionsForDay,
		arg.AccountID,
		arg.Type,
		arg.DayStart,
		arg.DayEnd,
	)
	var sum pgtype.Numeric
	err := row.Scan(&sum)
	return sum, err
}

const updateTransactionStatus = `-- name: UpdateTransactionStatus :exec
UPDATE transactions SET status = $2 WHERE id = $1
`

type UpdateTransactionStatusParams struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func (q *Queries) UpdateTransactionStatus(ctx context.Context, arg UpdateTransactionStatusParams) error {
	_, err := q.db.Exec(ctx, updateTransactionStatus, arg.ID, arg.Status)
	return err
}
