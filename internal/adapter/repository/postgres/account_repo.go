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

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create creates a new member account.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	_, err := r.queries.CreateAccount(ctx, generated.CreateAccountParams{
		ID:               account.ID,
		AccountNumber:    account.AccountNumber,
		MemberID:         account.MemberID,
		TenantID:         account.TenantID,
		ProductID:        account.ProductID,
		Kind:             string(account.Kind),
		Status:           string(account.Status),
		Balance:          decimalToNumeric(account.Balance),
		AvailableBalance: decimalToNumeric(account.AvailableBalance),
		MinimumBalance:   decimalToNumeric(account.MinimumBalance),
		ActiveHolds:      decimalToNumeric(account.ActiveHolds),
		Version:          account.Version,
		CreatedAt:        timeToPgTimestamptz(account.CreatedAt),
		UpdatedAt:        timeToPgTimestamptz(account.UpdatedAt),
	})

	return err
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	row, err := r.queries.GetAccountByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	return rowToAccount(row), nil
}

// GetByIDForUpdate retrieves an account by ID with a FOR UPDATE lock.
func (r *AccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	row, err := queries.GetAccountByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, mapLockError(err)
	}

	return rowToAccount(row), nil
}

// GetByIDsForUpdate retrieves multiple accounts by IDs with FOR UPDATE locks.
// The query orders by ID so concurrent transactions acquire locks in the same
// sequence.
func (r *AccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error) {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	rows, err := queries.GetAccountsByIDsForUpdate(ctx, ids)
	if err != nil {
		return nil, mapLockError(err)
	}

	accounts := make([]*domain.Account, 0, len(rows))
	for _, row := range rows {
		accounts = append(accounts, rowToAccount(row))
	}

	return accounts, nil
}

// UpdateBalance updates the balance columns of an account.
func (r *AccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance, available decimal.Decimal, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	return queries.UpdateAccountBalance(ctx, generated.UpdateAccountBalanceParams{
		ID:               id,
		Balance:          decimalToNumeric(balance),
		AvailableBalance: decimalToNumeric(available),
		UpdatedAt:        timeToPgTimestamptz(updatedAt),
	})
}

// ListByMember lists the member's accounts within a tenant.
func (r *AccountRepository) ListByMember(ctx context.Context, memberID, tenantID string) ([]*domain.Account, error) {
	rows, err := r.queries.ListAccountsByMember(ctx, generated.ListAccountsByMemberParams{
		MemberID: memberID,
		TenantID: tenantID,
	})
	if err != nil {
		return nil, err
	}

	accounts := make([]*domain.Account, 0, len(rows))
	for _, row := range rows {
		accounts = append(accounts, rowToAccount(row))
	}

	return accounts, nil
}

func rowToAccount(row generated.Account) *domain.Account {
	return &domain.Account{
		ID:               row.ID,
		AccountNumber:    row.AccountNumber,
		MemberID:         row.MemberID,
		TenantID:         row.TenantID,
		ProductID:        row.ProductID,
		Kind:             domain.AccountKind(row.Kind),
		Status:           domain.AccountStatus(row.Status),
		Balance:          numericToDecimal(row.Balance),
		AvailableBalance: numericToDecimal(row.AvailableBalance),
		MinimumBalance:   numericToDecimal(row.MinimumBalance),
		ActiveHolds:      numericToDecimal(row.ActiveHolds),
		Version:          row.Version,
		CreatedAt:        row.CreatedAt.Time,
		UpdatedAt:        row.UpdatedAt.Time,
	}
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
