package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/kaditech/saccoledger/internal/domain"
	"github.com/kaditech/saccoledger/internal/infrastructure/postgres/generated"
	"github.com/kaditech/saccoledger/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create inserts a transaction record within a database transaction.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	_, err := queries.CreateTransaction(ctx, transactionToParams(txn))

	return err
}

// UpdateStatus updates a transaction's status within a database transaction.
func (r *TransactionRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.TransactionStatus) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	return queries.UpdateTransactionStatus(ctx, generated.UpdateTransactionStatusParams{
		ID:     id,
		Status: string(status),
	})
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	row, err := r.queries.GetTransactionByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	return rowToTransaction(row), nil
}

// GetByIDForUpdate retrieves a transaction by ID with a FOR UPDATE lock.
func (r *TransactionRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Transaction, error) {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	row, err := queries.GetTransactionByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, mapLockError(err)
	}

	return rowToTransaction(row), nil
}

// GetByNumber retrieves a transaction by its transaction number.
func (r *TransactionRepository) GetByNumber(ctx context.Context, number string) (*domain.Transaction, error) {
	row, err := r.queries.GetTransactionByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	return rowToTransaction(row), nil
}

// RecordFailure inserts a failed transaction record outside any open
// transaction, so the audit trail survives the rollback that preceded it.
func (r *TransactionRepository) RecordFailure(ctx context.Context, txn *domain.Transaction) error {
	_, err := r.queries.CreateTransaction(ctx, transactionToParams(txn))

	return err
}

// ListByAccount lists an account's transactions, newest first.
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID, tenantID string, filter domain.HistoryFilter) ([]*domain.Transaction, error) {
	params := generated.ListTransactionsByAccountParams{
		AccountID: accountID,
		TenantID:  tenantID,
		Type:      string(filter.Type),
		Status:    string(filter.Status),
		Limit:     int32(filter.Limit),
		Offset:    int32(filter.Offset),
	}
	if filter.From != nil {
		params.From = timeToPgTimestamptz(*filter.From)
	}
	if filter.To != nil {
		params.To = timeToPgTimestamptz(*filter.To)
	}

	rows, err := r.queries.ListTransactionsByAccount(ctx, params)
	if err != nil {
		return nil, err
	}

	txns := make([]*domain.Transaction, 0, len(rows))
	for _, row := range rows {
		txns = append(txns, rowToTransaction(row))
	}

	return txns, nil
}

// SumCompletedForDay sums completed transactions of one type for the calendar
// day containing the given time, in UTC.
func (r *TransactionRepository) SumCompletedForDay(ctx context.Context, tx usecase.Transaction, accountID string, txnType domain.TransactionType, day time.Time) (decimal.Decimal, error) {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	dayStart := day.UTC().Truncate(24 * time.Hour)
	dayEnd := dayStart.Add(24 * time.Hour)

	sum, err := queries.SumCompletedTransactionsForDay(ctx, generated.SumCompletedTransactionsForDayParams{
		AccountID: accountID,
		Type:      string(txnType),
		DayStart:  timeToPgTimestamptz(dayStart),
		DayEnd:    timeToPgTimestamptz(dayEnd),
	})
	if err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(sum), nil
}

func transactionToParams(txn *domain.Transaction) generated.CreateTransactionParams {
	return generated.CreateTransactionParams{
		ID:                   txn.ID,
		TransactionNumber:    txn.TransactionNumber,
		Type:                 string(txn.Type),
		Status:               string(txn.Status),
		AccountID:            txn.AccountID,
		CounterpartyID:       textFromPtr(txn.CounterpartyID),
		TenantID:             txn.TenantID,
		Amount:               decimalToNumeric(txn.Amount),
		FeeAmount:            decimalToNumeric(txn.FeeAmount),
		NetAmount:            decimalToNumeric(txn.NetAmount),
		BalanceBefore:        decimalToNumeric(txn.BalanceBefore),
		BalanceAfter:         decimalToNumeric(txn.BalanceAfter),
		RelatedTransactionID: textFromPtr(txn.RelatedTransactionID),
		ProcessedBy:          txn.ProcessedBy,
		Narration:            txn.Narration,
		TransactionDate:      timeToPgTimestamptz(txn.TransactionDate),
		CreatedAt:            timeToPgTimestamptz(txn.CreatedAt),
	}
}

func rowToTransaction(row generated.Transaction) *domain.Transaction {
	return &domain.Transaction{
		ID:                   row.ID,
		TransactionNumber:    row.TransactionNumber,
		Type:                 domain.TransactionType(row.Type),
		Status:               domain.TransactionStatus(row.Status),
		AccountID:            row.AccountID,
		CounterpartyID:       ptrFromText(row.CounterpartyID),
		TenantID:             row.TenantID,
		Amount:               numericToDecimal(row.Amount),
		FeeAmount:            numericToDecimal(row.FeeAmount),
		NetAmount:            numericToDecimal(row.NetAmount),
		BalanceBefore:        numericToDecimal(row.BalanceBefore),
		BalanceAfter:         numericToDecimal(row.BalanceAfter),
		RelatedTransactionID: ptrFromText(row.RelatedTransactionID),
		ProcessedBy:          row.ProcessedBy,
		Narration:            row.Narration,
		TransactionDate:      row.TransactionDate.Time,
		CreatedAt:            row.CreatedAt.Time,
	}
}

func textFromPtr(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}

func ptrFromText(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	s := t.String
	return &s
}
