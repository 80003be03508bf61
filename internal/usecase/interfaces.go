package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kaditech/saccoledger/internal/domain"
)

// AccountRepository defines data access for member accounts.
type AccountRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Account, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.Account, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance, available decimal.Decimal, updatedAt time.Time) error
}

// ProductRepository supplies the product configuration an account was opened
// under. The catalog itself is managed outside the engine.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

// TransactionRepository defines data access for transaction records.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, txn *domain.Transaction) error
	UpdateStatus(ctx context.Context, tx Transaction, id string, status domain.TransactionStatus) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Transaction, error)
	GetByNumber(ctx context.Context, number string) (*domain.Transaction, error)
	RecordFailure(ctx context.Context, txn *domain.Transaction) error
	ListByAccount(ctx context.Context, accountID, tenantID string, filter domain.HistoryFilter) ([]*domain.Transaction, error)
	SumCompletedForDay(ctx context.Context, tx Transaction, accountID string, txnType domain.TransactionType, day time.Time) (decimal.Decimal, error)
}

// LedgerRepository defines data access for general-ledger entries.
type LedgerRepository interface {
	CreateEntries(ctx context.Context, tx Transaction, entries []*domain.LedgerEntry) error
	GetByTransaction(ctx context.Context, transactionID string) ([]*domain.LedgerEntry, error)
	CheckConsistency(ctx context.Context) (totalDebits, totalCredits decimal.Decimal, err error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// NumberGenerator produces unique, type-prefixed transaction numbers from an
// atomically incremented persisted counter. Implementations must never rely
// on in-process state: uniqueness has to survive restarts and concurrent
// instances.
type NumberGenerator interface {
	Next(ctx context.Context, txnType domain.TransactionType) (string, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique row IDs.
type IDGenerator interface {
	Generate() string
}

// Retryer re-runs an operation when it fails with a transient storage error,
// such as a deadlock or serialization failure. Implementations must return
// non-transient errors unchanged on the first attempt.
type Retryer interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache defines read-side caching operations.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage for mutating requests.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
