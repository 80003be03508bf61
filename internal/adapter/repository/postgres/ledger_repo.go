package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/kaditech/saccoledger/internal/domain"
	"github.com/kaditech/saccoledger/internal/infrastructure/postgres/generated"
	"github.com/kaditech/saccoledger/internal/usecase"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// CreateEntries inserts a batch of ledger entries within a transaction.
func (r *LedgerRepository) CreateEntries(ctx context.Context, tx usecase.Transaction, entries []*domain.LedgerEntry) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	for _, e := range entries {
		err := queries.CreateLedgerEntry(ctx, generated.CreateLedgerEntryParams{
			ID:            e.ID,
			TransactionID: e.TransactionID,
			TenantID:      e.TenantID,
			AccountCode:   e.AccountCode,
			AccountName:   e.AccountName,
			AccountType:   string(e.AccountType),
			DebitAmount:   decimalToNumeric(e.DebitAmount),
			CreditAmount:  decimalToNumeric(e.CreditAmount),
			Status:        string(e.Status),
			CreatedAt:     timeToPgTimestamptz(e.CreatedAt),
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// GetByTransaction retrieves the entries posted for a transaction.
func (r *LedgerRepository) GetByTransaction(ctx context.Context, transactionID string) ([]*domain.LedgerEntry, error) {
	rows, err := r.queries.GetLedgerEntriesByTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	entries := make([]*domain.LedgerEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, rowToLedgerEntry(row))
	}

	return entries, nil
}

// CheckConsistency returns the grand totals of posted debits and credits.
func (r *LedgerRepository) CheckConsistency(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	row, err := r.queries.SumLedgerTotals(ctx)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return numericToDecimal(row.Debits), numericToDecimal(row.Credits), nil
}

func rowToLedgerEntry(row generated.GeneralLedgerEntry) *domain.LedgerEntry {
	return &domain.LedgerEntry{
		ID:            row.ID,
		TransactionID: row.TransactionID,
		TenantID:      row.TenantID,
		AccountCode:   row.AccountCode,
		AccountName:   row.AccountName,
		AccountType:   domain.LedgerAccountType(row.AccountType),
		DebitAmount:   numericToDecimal(row.DebitAmount),
		CreditAmount:  numericToDecimal(row.CreditAmount),
		Status:        domain.LedgerEntryStatus(row.Status),
		CreatedAt:     row.CreatedAt.Time,
	}
}
