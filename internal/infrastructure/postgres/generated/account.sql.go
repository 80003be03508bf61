package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createAccount = `-- name: CreateAccount :one
INSERT INTO accounts (id, account_number, member_id, tenant_id, product_id, kind, status, balance, available_balance, minimum_balance, active_holds, version, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
RETURNING id, account_number, member_id, tenant_id, product_id, kind, status, balance, available_balance, minimum_balance, active_holds, version, created_at, updated_at
`

type CreateAccountParams struct {
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

func (q *Queries) CreateAccount(ctx context.Context, arg CreateAccountParams) (Account, error) {
	row := q.db.QueryRow(ctx, createAccount,
		arg.ID,
		arg.AccountNumber,
		arg.MemberID,
		arg.TenantID,
		arg.ProductID,
		arg.Kind,
		arg.Status,
		arg.Balance,
		arg.AvailableBalance,
		arg.MinimumBalance,
		arg.ActiveHolds,
		arg.Version,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	var i Account
	err := row.Scan(
		&i.ID,
		&i.AccountNumber,
		&i.MemberID,
		&i.TenantID,
		&i.ProductID,
		&i.Kind,
		&i.Status,
		&i.Balance,
		&i.AvailableBalance,
		&i.MinimumBalance,
		&i.ActiveHolds,
		&i.Version,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getAccountByID = `-- name: GetAccountByID :one
SELECT id, account_number, member_id, tenant_id, product_id, kind, status, balance, available_balance, minimum_balance, active_holds, version, created_at, updated_at FROM accounts WHERE id = $1
`

func (q *Queries) GetAccountByID(ctx context.Context, id string) (Account, error) {
	row := q.db.QueryRow(ctx, getAccountByID, id)
	var i Account
	err := row.Scan(
		&i.ID,
		&i.AccountNumber,
		&i.MemberID,
		&i.TenantID,
		&i.ProductID,
		&i.Kind,
		&i.Status,
		&i.Balance,
		&i.AvailableBalance,
		&i.MinimumBalance,
		&i.ActiveHolds,
		&i.Version,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getAccountByIDForUpdate = `-- name: GetAccountByIDForUpdate :one
SELECT id, account_number, member_id, tenant_id, product_id, kind, status, balance, available_balance, minimum_balance, active_holds, version, created_at, updated_at FROM accounts WHERE id = $1 FOR UPDATE
`

func (q *Queries) GetAccountByIDForUpdate(ctx context.Context, id string) (Account, error) {
	row := q.db.QueryRow(ctx, getAccountByIDForUpdate, id)
	var i Account
	err := row.Scan(
		&i.ID,
		&i.AccountNumber,
		&i.MemberID,
		&i.TenantID,
		&i.ProductID,
		&i.Kind,
		&i.Status,
		&i.Balance,
		&i.AvailableBalance,
		&i.MinimumBalance,
		&i.ActiveHolds,
		&i.Version,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getAccountsByIDsForUpdate = `-- name: GetAccountsByIDsForUpdate :many
SELECT id, account_number, member_id, tenant_id, product_id, kind, status, balance, available_balance, minimum_balance, active_holds, version, created_at, updated_at FROM accounts WHERE id = ANY($1::text[]) ORDER BY id FOR UPDATE
`

func (q *Queries) GetAccountsByIDsForUpdate(ctx context.Context, dollar_1 []string) ([]Account, error) {
	rows, err := q.db.Query(ctx, getAccountsByIDsForUpdate, dollar_1)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Account{}
	for rows.Next() {
		var i Account
		if err := rows.Scan(
			&i.ID,
			&i.AccountNumber,
			&i.MemberID,
			&i.TenantID,
			&i.ProductID,
			&i.Kind,
			&i.Status,
			&i.Balance,
			&i.AvailableBalance,
			&i.MinimumBalance,
			&i.ActiveHolds,
			&i.Version,
			&i.CreatedAt,
			&i.UpdatedAt,
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

const listAccountsByMember = `-- name: ListAccountsByMember :many
SELECT id, account_number, member_id, tenant_id, product_id, kind, status, balance, available_balance, minimum_balance, active_holds, version, created_at, updated_at FROM accounts WHERE member_id = $1 AND tenant_id = $2 ORDER BY created_at DESC
`

type ListAccountsByMemberParams struct {
	MemberID string `json:"member_id"`
	TenantID string `json:"tenant_id"`
}

func (q *Queries) ListAccountsByMember(ctx context.Context, arg ListAccountsByMemberParams) ([]Account, error) {
	rows, err := q.db.Query(ctx, listAccountsByMember, arg.MemberID, arg.TenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Account{}
	for rows.Next() {
		var i Account
		if err := rows.Scan(
			&i.ID,
			&i.AccountNumber,
			&i.MemberID,
			&i.TenantID,
			&i.ProductID,
			&i.Kind,
			&i.Status,
			&i.Balance,
			&i.AvailableBalance,
			&i.MinimumBalance,
			&i.ActiveHolds,
			&i.Version,
			&i.CreatedAt,
			&i.UpdatedAt,
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

const updateAccountBalance = `-- name: UpdateAccountBalance :exec
UPDATE accounts
SET balance = $2, available_balance = $3, version = version + 1, updated_at = $4
WHERE id = $1
`

type UpdateAccountBalanceParams struct {
	ID               string             `json:"id"`
	Balance          pgtype.Numeric     `json:"balance"`
	AvailableBalance pgtype.Numeric     `json:"available_balance"`
	UpdatedAt        pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateAccountBalance(ctx context.Context, arg UpdateAccountBalanceParams) error {
	_, err := q.db.Exec(ctx, updateAccountBalance,
		arg.ID,
		arg.Balance,
		arg.AvailableBalance,
		arg.UpdatedAt,
	)
	return err
}
