package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const nextCounterValue = `-- name: NextCounterValue :one
INSERT INTO transaction_counters (txn_type, value, updated_at)
VALUES ($1, 1, $2)
ON CONFLICT (txn_type) DO UPDATE SET value = transaction_counters.value + 1, updated_at = $2
RETURNING value
`

type NextCounterValueParams struct {
	TxnType   string             `json:"txn_type"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) NextCounterValue(ctx context.Context, arg NextCounterValueParams) (int64, error) {
	row := q.db.QueryRow(ctx, nextCounterValue, arg.TxnType, arg.UpdatedAt)
	var value int64
	err := row.Scan(&value)
	return value, err
}
