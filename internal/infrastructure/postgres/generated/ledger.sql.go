package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createLedgerEntry = `-- name: CreateLedgerEntry :exec
INSERT INTO general_ledger (id, transaction_id, tenant_id, account_code, account_name, account_type, debit_amount, credit_amount, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`

type CreateLedgerEntryParams struct {
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

func (q *Queries) CreateLedgerEntry(ctx context.Context, arg CreateLedgerEntryParams) error {
	_, err := q.db.Exec(ctx, createLedgerEntry,
		arg.ID,
		arg.TransactionID,
		arg.TenantID,
		arg.AccountCode,
		arg.AccountName,
		arg.AccountType,
		arg.DebitAmount,
		arg.CreditAmount,
		arg.Status,
		arg.CreatedAt,
	)
	return err
}

const getLedgerEntriesByTransaction = `-- name: GetLedgerEntriesByTransaction :many
SELECT id, transaction_id, tenant_id, account_code, account_name, account_type, debit_amount, credit_amount, status, created_at FROM general_ledger WHERE transaction_id = $1 ORDER BY created_at, id
`

func (q *Queries) GetLedgerEntriesByTransaction(ctx context.Context, transactionID string) ([]GeneralLedgerEntry, error) {
	rows, err := q.db.Query(ctx, getLedgerEntriesByTransaction, transactionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []GeneralLedgerEntry{}
	for rows.Next() {
		var i GeneralLedgerEntry
		if err := rows.Scan(
			&i.ID,
			&i.TransactionID,
			&i.TenantID,
			&i.AccountCode,
			&i.AccountName,
			&i.AccountType,
			&i.DebitAmount,
			&i.CreditAmount,
			&i.Status,
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

const sumLedgerTotals = `-- name: SumLedgerTotals :one
SELECT COALESCE(SUM(debit_amount), 0)::numeric AS debits, COALESCE(SUM(credit_amount), 0)::numeric AS credits FROM general_ledger WHERE status = 'posted'
`

type SumLedgerTotalsRow struct {
	Debits  pgtype.Numeric `json:"debits"`
	Credits pgtype.Numeric `json:"credits"`
}

func (q *Queries) SumLedgerTotals(ctx context.Context) (SumLedgerTotalsRow, error) {
	row := q.db.QueryRow(ctx, sumLedgerTotals)
	var i SumLedgerTotalsRow
	err := row.Scan(&i.Debits, &i.Credits)
	return i, err
}
