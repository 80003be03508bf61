package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createProduct = `-- name: CreateProduct :one
INSERT INTO products (id, tenant_id, name, kind, minimum_balance, withdrawal_fee, max_withdrawal_amount, daily_deposit_limit, daily_withdrawal_limit, allow_partial_withdrawals, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING id, tenant_id, name, kind, minimum_balance, withdrawal_fee, max_withdrawal_amount, daily_deposit_limit, daily_withdrawal_limit, allow_partial_withdrawals, created_at, updated_at
`

type CreateProductParams struct {
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

func (q *Queries) CreateProduct(ctx context.Context, arg CreateProductParams) (Product, error) {
	row := q.db.QueryRow(ctx, createProduct,
		arg.ID,
		arg.TenantID,
		arg.Name,
		arg.Kind,
		arg.MinimumBalance,
		arg.WithdrawalFee,
		arg.MaxWithdrawalAmount,
		arg.DailyDepositLimit,
		arg.DailyWithdrawalLimit,
		arg.AllowPartialWithdrawals,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	var i Product
	err := row.Scan(
		&i.ID,
		&i.TenantID,
		&i.Name,
		&i.Kind,
		&i.MinimumBalance,
		&i.WithdrawalFee,
		&i.MaxWithdrawalAmount,
		&i.DailyDepositLimit,
		&i.DailyWithdrawalLimit,
		&i.AllowPartialWithdrawals,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getProductByID = `-- name: GetProductByID :one
SELECT id, tenant_id, name, kind, minimum_balance, withdrawal_fee, max_withdrawal_amount, daily_deposit_limit, daily_withdrawal_limit, allow_partial_withdrawals, created_at, updated_at FROM products WHERE id = $1
`

func (q *Queries) GetProductByID(ctx context.Context, id string) (Product, error) {
	row := q.db.QueryRow(ctx, getProductByID, id)
	var i Product
	err := row.Scan(
		&i.ID,
		&i.TenantID,
		&i.Name,
		&i.Kind,
		&i.MinimumBalance,
		&i.WithdrawalFee,
		&i.MaxWithdrawalAmount,
		&i.DailyDepositLimit,
		&i.DailyWithdrawalLimit,
		&i.AllowPartialWithdrawals,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
