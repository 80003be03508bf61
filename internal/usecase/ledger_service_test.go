package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaditech/saccoledger/internal/domain"
	"github.com/kaditech/saccoledger/internal/usecase"
	"github.com/kaditech/saccoledger/internal/usecase/mocks"
)

func pendingEntry(id, txnID, code string, account domain.GLAccount, debit, credit int64) *domain.LedgerEntry {
	return &domain.LedgerEntry{
		ID:            id,
		TransactionID: txnID,
		TenantID:      "ten-1",
		AccountCode:   code,
		AccountName:   account.Name,
		AccountType:   account.Type,
		DebitAmount:   decimal.NewFromInt(debit),
		CreditAmount:  decimal.NewFromInt(credit),
		Status:        domain.LedgerEntryStatusPending,
		CreatedAt:     time.Now().UTC(),
	}
}

func TestLedgerService_PostBalanced(t *testing.T) {
	repo := mocks.NewMockLedgerRepository()
	svc := usecase.NewLedgerService(repo, zerolog.Nop())

	txn := &domain.Transaction{ID: "txn-1", TransactionNumber: "DEP000000001"}
	entries := []*domain.LedgerEntry{
		pendingEntry("le-1", "txn-1", domain.GLCash.Code, domain.GLCash, 25000, 0),
		pendingEntry("le-2", "txn-1", domain.GLMemberSavingsPayable.Code, domain.GLMemberSavingsPayable, 0, 25000),
	}

	err := svc.Post(context.Background(), nil, txn, entries)
	require.NoError(t, err)

	persisted := repo.Entries()
	require.Len(t, persisted, 2)
	for _, e := range persisted {
		assert.Equal(t, domain.LedgerEntryStatusPosted, e.Status)
	}
	assert.True(t, domain.EntriesBalanced(persisted))
}

func TestLedgerService_PostImbalanced(t *testing.T) {
	repo := mocks.NewMockLedgerRepository()

	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	svc := usecase.NewLedgerService(repo, logger)

	txn := &domain.Transaction{ID: "txn-1", TransactionNumber: "WDR000000001"}
	entries := []*domain.LedgerEntry{
		pendingEntry("le-1", "txn-1", domain.GLMemberSavingsPayable.Code, domain.GLMemberSavingsPayable, 21000, 0),
		pendingEntry("le-2", "txn-1", domain.GLCash.Code, domain.GLCash, 0, 20000),
	}

	err := svc.Post(context.Background(), nil, txn, entries)
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrLedgerImbalance)

	var imbalance *domain.LedgerImbalanceError
	require.True(t, errors.As(err, &imbalance))
	assert.Equal(t, "txn-1", imbalance.TransactionID)
	assert.Equal(t, "21000", imbalance.Debits)
	assert.Equal(t, "20000", imbalance.Credits)
	assert.Len(t, imbalance.Entries, 2)

	// Nothing reaches storage and the failure is logged with entry detail.
	assert.Empty(t, repo.Entries())
	assert.Contains(t, buf.String(), "ledger imbalance detected")
	assert.Contains(t, buf.String(), domain.GLCash.Code)
}

func TestLedgerService_PostRejectsEmptyBatch(t *testing.T) {
	svc := usecase.NewLedgerService(mocks.NewMockLedgerRepository(), zerolog.Nop())

	err := svc.Post(context.Background(), nil, &domain.Transaction{ID: "txn-1"}, nil)
	require.ErrorIs(t, err, domain.ErrInvalidLedgerEntry)
}

func TestLedgerService_PostRejectsInvalidEntry(t *testing.T) {
	repo := mocks.NewMockLedgerRepository()
	svc := usecase.NewLedgerService(repo, zerolog.Nop())

	both := pendingEntry("le-1", "txn-1", domain.GLCash.Code, domain.GLCash, 100, 100)
	other := pendingEntry("le-2", "txn-1", domain.GLMemberSavingsPayable.Code, domain.GLMemberSavingsPayable, 0, 0)

	err := svc.Post(context.Background(), nil, &domain.Transaction{ID: "txn-1"}, []*domain.LedgerEntry{both, other})
	require.ErrorIs(t, err, domain.ErrInvalidLedgerEntry)
	assert.Empty(t, repo.Entries())
}

func TestLedgerService_CheckConsistency(t *testing.T) {
	repo := mocks.NewMockLedgerRepository()
	svc := usecase.NewLedgerService(repo, zerolog.Nop())

	txn := &domain.Transaction{ID: "txn-1", TransactionNumber: "DEP000000001"}
	entries := []*domain.LedgerEntry{
		pendingEntry("le-1", "txn-1", domain.GLCash.Code, domain.GLCash, 500, 0),
		pendingEntry("le-2", "txn-1", domain.GLMemberSavingsPayable.Code, domain.GLMemberSavingsPayable, 0, 500),
	}
	require.NoError(t, svc.Post(context.Background(), nil, txn, entries))

	ok, err := svc.CheckConsistency(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLedgerService_CheckConsistencyDetectsDrift(t *testing.T) {
	repo := mocks.NewMockLedgerRepository()
	repo.CheckConsistencyFunc = func(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
		return decimal.NewFromInt(1000), decimal.NewFromInt(900), nil
	}

	var buf bytes.Buffer
	svc := usecase.NewLedgerService(repo, zerolog.New(&buf))

	ok, err := svc.CheckConsistency(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, buf.String(), "global ledger inconsistency")
}
