package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kaditech/saccoledger/internal/domain"
	"github.com/kaditech/saccoledger/internal/infrastructure/postgres/generated"
)

// NumberGenerator issues type-prefixed transaction numbers from persisted
// per-type counters. The increment runs on the pool in its own implicit
// transaction, so the counter row lock lasts one UPSERT and a caller rollback
// leaves a gap in the sequence. Numbers are unique and ordered, not gapless.
type NumberGenerator struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewNumberGenerator creates a new NumberGenerator.
func NewNumberGenerator(pool *pgxpool.Pool) *NumberGenerator {
	return &NumberGenerator{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Next returns the next number for a transaction type, e.g. DEP000000042.
func (g *NumberGenerator) Next(ctx context.Context, txnType domain.TransactionType) (string, error) {
	value, err := g.queries.NextCounterValue(ctx, generated.NextCounterValueParams{
		TxnType:   string(txnType),
		UpdatedAt: timeToPgTimestamptz(time.Now().UTC()),
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s%09d", txnType.NumberPrefix(), value), nil
}
