package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/kaditech/saccoledger/internal/domain"
	"github.com/kaditech/saccoledger/internal/usecase"
	"github.com/kaditech/saccoledger/internal/usecase/mocks"
)

type txnFixture struct {
	accounts *mocks.MockAccountRepository
	products *mocks.MockProductRepository
	txns     *mocks.MockTransactionRepository
	ledger   *mocks.MockLedgerRepository
	outbox   *mocks.MockOutboxRepository
	txMgr    *mocks.MockTransactionManager
	numbers  *mocks.MockNumberGenerator
	svc      *usecase.TransactionService
}

func newTxnFixture(cache usecase.Cache) *txnFixture {
	return newTxnFixtureRetry(cache, nil)
}

func newTxnFixtureRetry(cache usecase.Cache, retry usecase.Retryer) *txnFixture {
	f := &txnFixture{
		accounts: mocks.NewMockAccountRepository(),
		products: mocks.NewMockProductRepository(),
		txns:     mocks.NewMockTransactionRepository(),
		ledger:   mocks.NewMockLedgerRepository(),
		outbox:   mocks.NewMockOutboxRepository(),
		txMgr:    mocks.NewMockTransactionManager(),
		numbers:  mocks.NewMockNumberGenerator(),
	}

	f.svc = usecase.NewTransactionService(usecase.TransactionServiceConfig{
		TxManager:   f.txMgr,
		AccountRepo: f.accounts,
		ProductRepo: f.products,
		TxnRepo:     f.txns,
		OutboxRepo:  f.outbox,
		NumberGen:   f.numbers,
		IDGen:       mocks.NewMockIDGenerator(),
		Validator:   usecase.NewValidationService(f.txns),
		Balances:    usecase.NewBalanceService(f.accounts),
		Ledger:      usecase.NewLedgerService(f.ledger, zerolog.Nop()),
		Cache:       cache,
		Retry:       retry,
		Logger:      zerolog.Nop(),
	})

	f.products.Put(savingsProduct())
	f.accounts.Put(activeAccount())
	f.accounts.Put(&domain.Account{
		ID:        "acc-2",
		MemberID:  "mem-2",
		TenantID:  "ten-1",
		ProductID: "prod-1",
		Kind:      domain.AccountKindSavings,
		Status:    domain.AccountStatusActive,
		Balance:   decimal.NewFromInt(10000),
	})

	return f
}

func staffActor() domain.Actor {
	return domain.Actor{UserID: "usr-staff", TenantID: "ten-1", Role: domain.RoleStaff}
}

func entrySum(entries []*domain.LedgerEntry, code string, credit bool) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range entries {
		if e.AccountCode != code {
			continue
		}
		if credit {
			sum = sum.Add(e.CreditAmount)
		} else {
			sum = sum.Add(e.DebitAmount)
		}
	}
	return sum
}

func TestTransactionService_ProcessDeposit(t *testing.T) {
	f := newTxnFixture(nil)

	txn, err := f.svc.Process(context.Background(), usecase.ProcessRequest{
		Type:      domain.TransactionTypeDeposit,
		AccountID: "acc-1",
		Amount:    decimal.NewFromInt(25000),
		Narration: "monthly savings",
		Actor:     memberActor(),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.TransactionStatusCompleted, txn.Status)
	assert.Equal(t, "DEP000000001", txn.TransactionNumber)
	assert.True(t, txn.BalanceBefore.Equal(decimal.NewFromInt(50000)))
	assert.True(t, txn.BalanceAfter.Equal(decimal.NewFromInt(75000)))
	assert.True(t, txn.FeeAmount.IsZero())
	assert.True(t, txn.NetAmount.Equal(decimal.NewFromInt(25000)))

	account, err := f.accounts.GetByID(context.Background(), "acc-1")
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(75000)))

	entries := f.ledger.Entries()
	require.Len(t, entries, 2)
	assert.True(t, domain.EntriesBalanced(entries))
	assert.True(t, entrySum(entries, domain.GLCash.Code, false).Equal(decimal.NewFromInt(25000)))
	assert.True(t, entrySum(entries, domain.GLMemberSavingsPayable.Code, true).Equal(decimal.NewFromInt(25000)))

	require.NotNil(t, f.txMgr.Last)
	assert.True(t, f.txMgr.Last.Committed)

	events := f.outbox.Events()
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventTypeTransactionCompleted, events[0].EventType)
	assert.Equal(t, txn.ID, events[0].AggregateID)
}

func TestTransactionService_ProcessWithdrawalWithFee(t *testing.T) {
	f := newTxnFixture(nil)

	txn, err := f.svc.Process(context.Background(), usecase.ProcessRequest{
		Type:      domain.TransactionTypeWithdrawal,
		AccountID: "acc-1",
		Amount:    decimal.NewFromInt(20000),
		Actor:     memberActor(),
	})
	require.NoError(t, err)

	// 20000 withdrawn plus the 1000 fee leaves 29000; the member pockets 19000.
	assert.True(t, txn.BalanceAfter.Equal(decimal.NewFromInt(29000)))
	assert.True(t, txn.FeeAmount.Equal(decimal.NewFromInt(1000)))
	assert.True(t, txn.NetAmount.Equal(decimal.NewFromInt(19000)))
	assert.Equal(t, "WDR000000001", txn.TransactionNumber)

	account, err := f.accounts.GetByID(context.Background(), "acc-1")
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(29000)))

	entries := f.ledger.Entries()
	require.Len(t, entries, 4)
	assert.True(t, domain.EntriesBalanced(entries))
	assert.True(t, entrySum(entries, domain.GLFeeIncome.Code, true).Equal(decimal.NewFromInt(1000)))
	assert.True(t, entrySum(entries, domain.GLMemberSavingsPayable.Code, false).Equal(decimal.NewFromInt(20000)))
}

func TestTransactionService_ProcessInsufficientBalance(t *testing.T) {
	f := newTxnFixture(nil)

	_, err := f.svc.Process(context.Background(), usecase.ProcessRequest{
		Type:      domain.TransactionTypeWithdrawal,
		AccountID: "acc-1",
		Amount:    decimal.NewFromInt(100000),
		Actor:     memberActor(),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientBalance)

	account, getErr := f.accounts.GetByID(context.Background(), "acc-1")
	require.NoError(t, getErr)
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(50000)))
	assert.Empty(t, f.ledger.Entries())
	assert.Empty(t, f.outbox.Events())

	require.NotNil(t, f.txMgr.Last)
	assert.False(t, f.txMgr.Last.Committed)
	assert.True(t, f.txMgr.Last.RolledBack)
}

func TestTransactionService_ProcessMinimumBalanceBreach(t *testing.T) {
	f := newTxnFixture(nil)
	f.accounts.Put(&domain.Account{
		ID:             "acc-1",
		MemberID:       "mem-1",
		TenantID:       "ten-1",
		ProductID:      "prod-1",
		Kind:           domain.AccountKindSavings,
		Status:         domain.AccountStatusActive,
		Balance:        decimal.NewFromInt(1200),
		MinimumBalance: decimal.NewFromInt(1000),
	})
	product := savingsProduct()
	product.WithdrawalFee = decimal.Zero
	f.products.Put(product)

	_, err := f.svc.Process(context.Background(), usecase.ProcessRequest{
		Type:      domain.TransactionTypeWithdrawal,
		AccountID: "acc-1",
		Amount:    decimal.NewFromInt(500),
		Actor:     memberActor(),
	})
	require.ErrorIs(t, err, domain.ErrMinimumBalanceBreach)

	account, getErr := f.accounts.GetByID(context.Background(), "acc-1")
	require.NoError(t, getErr)
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(1200)))
	assert.Empty(t, f.ledger.Entries())
}

func TestTransactionService_ProcessTransfer(t *testing.T) {
	f := newTxnFixture(nil)

	txn, err := f.svc.Process(context.Background(), usecase.ProcessRequest{
		Type:           domain.TransactionTypeTransfer,
		AccountID:      "acc-1",
		CounterpartyID: "acc-2",
		Amount:         decimal.NewFromInt(5000),
		Actor:          memberActor(),
	})
	require.NoError(t, err)

	require.NotNil(t, txn.CounterpartyID)
	assert.Equal(t, "acc-2", *txn.CounterpartyID)

	source, _ := f.accounts.GetByID(context.Background(), "acc-1")
	dest, _ := f.accounts.GetByID(context.Background(), "acc-2")
	assert.True(t, source.Balance.Equal(decimal.NewFromInt(45000)))
	assert.True(t, dest.Balance.Equal(decimal.NewFromInt(15000)))

	entries := f.ledger.Entries()
	require.Len(t, entries, 2)
	assert.True(t, domain.EntriesBalanced(entries))
}

func TestTransactionService_ProcessTransferToInactiveAccount(t *testing.T) {
	f := newTxnFixture(nil)
	f.accounts.Put(&domain.Account{
		ID:       "acc-2",
		MemberID: "mem-2",
		TenantID: "ten-1",
		Status:   domain.AccountStatusClosed,
	})

	_, err := f.svc.Process(context.Background(), usecase.ProcessRequest{
		Type:           domain.TransactionTypeTransfer,
		AccountID:      "acc-1",
		CounterpartyID: "acc-2",
		Amount:         decimal.NewFromInt(5000),
		Actor:          memberActor(),
	})
	require.ErrorIs(t, err, domain.ErrAccountNotActive)

	source, _ := f.accounts.GetByID(context.Background(), "acc-1")
	assert.True(t, source.Balance.Equal(decimal.NewFromInt(50000)))
	assert.Empty(t, f.ledger.Entries())
}

func TestTransactionService_ProcessLedgerWriteFailure(t *testing.T) {
	f := newTxnFixture(nil)
	f.ledger.CreateEntriesFunc = func(ctx context.Context, tx usecase.Transaction, entries []*domain.LedgerEntry) error {
		return errors.New("unique_violation")
	}

	_, err := f.svc.Process(context.Background(), usecase.ProcessRequest{
		Type:      domain.TransactionTypeDeposit,
		AccountID: "acc-1",
		Amount:    decimal.NewFromInt(1000),
		Actor:     memberActor(),
	})
	require.Error(t, err)

	require.NotNil(t, f.txMgr.Last)
	assert.False(t, f.txMgr.Last.Committed)
	assert.True(t, f.txMgr.Last.RolledBack)

	// The attempt is persisted as a failed record with no balance effect.
	failures := f.txns.Failures()
	require.Len(t, failures, 1)
	assert.Equal(t, domain.TransactionStatusFailed, failures[0].Status)
	assert.True(t, failures[0].BalanceAfter.Equal(failures[0].BalanceBefore))
	assert.Empty(t, f.outbox.Events())
}

func TestTransactionService_ReverseDeposit(t *testing.T) {
	f := newTxnFixture(nil)

	original, err := f.svc.Process(context.Background(), usecase.ProcessRequest{
		Type:      domain.TransactionTypeDeposit,
		AccountID: "acc-1",
		Amount:    decimal.NewFromInt(25000),
		Actor:     memberActor(),
	})
	require.NoError(t, err)

	reversal, err := f.svc.Reverse(context.Background(), usecase.ReverseRequest{
		TransactionID: original.ID,
		Reason:        "posted to wrong account",
		Actor:         staffActor(),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.TransactionTypeReversal, reversal.Type)
	assert.Equal(t, "REV000000001", reversal.TransactionNumber)
	assert.Equal(t, domain.TransactionStatusCompleted, reversal.Status)
	require.NotNil(t, reversal.RelatedTransactionID)
	assert.Equal(t, original.ID, *reversal.RelatedTransactionID)
	assert.True(t, reversal.Amount.Equal(decimal.NewFromInt(25000)))

	account, _ := f.accounts.GetByID(context.Background(), "acc-1")
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(50000)))

	stored, err := f.txns.GetByID(context.Background(), original.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionStatusReversed, stored.Status)

	// Original pair plus the inverse pair; the book still balances.
	entries := f.ledger.Entries()
	require.Len(t, entries, 4)
	assert.True(t, domain.EntriesBalanced(entries))
	assert.True(t, entrySum(entries, domain.GLMemberSavingsPayable.Code, false).Equal(decimal.NewFromInt(25000)))

	events := f.outbox.Events()
	require.Len(t, events, 2)
	assert.Equal(t, domain.EventTypeTransactionReversed, events[1].EventType)
}

func TestTransactionService_ReverseWithdrawalRestoresFee(t *testing.T) {
	f := newTxnFixture(nil)

	original, err := f.svc.Process(context.Background(), usecase.ProcessRequest{
		Type:      domain.TransactionTypeWithdrawal,
		AccountID: "acc-1",
		Amount:    decimal.NewFromInt(20000),
		Actor:     memberActor(),
	})
	require.NoError(t, err)

	account, _ := f.accounts.GetByID(context.Background(), "acc-1")
	require.True(t, account.Balance.Equal(decimal.NewFromInt(29000)))

	_, err = f.svc.Reverse(context.Background(), usecase.ReverseRequest{
		TransactionID: original.ID,
		Reason:        "teller error",
		Actor:         staffActor(),
	})
	require.NoError(t, err)

	account, _ = f.accounts.GetByID(context.Background(), "acc-1")
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(50000)))
}

func TestTransactionService_ReverseTransfer(t *testing.T) {
	f := newTxnFixture(nil)

	original, err := f.svc.Process(context.Background(), usecase.ProcessRequest{
		Type:           domain.TransactionTypeTransfer,
		AccountID:      "acc-1",
		CounterpartyID: "acc-2",
		Amount:         decimal.NewFromInt(5000),
		Actor:          memberActor(),
	})
	require.NoError(t, err)

	_, err = f.svc.Reverse(context.Background(), usecase.ReverseRequest{
		TransactionID: original.ID,
		Reason:        "disputed",
		Actor:         staffActor(),
	})
	require.NoError(t, err)

	source, _ := f.accounts.GetByID(context.Background(), "acc-1")
	dest, _ := f.accounts.GetByID(context.Background(), "acc-2")
	assert.True(t, source.Balance.Equal(decimal.NewFromInt(50000)))
	assert.True(t, dest.Balance.Equal(decimal.NewFromInt(10000)))
}

func TestTransactionService_ReverseTwice(t *testing.T) {
	f := newTxnFixture(nil)

	original, err := f.svc.Process(context.Background(), usecase.ProcessRequest{
		Type:      domain.TransactionTypeDeposit,
		AccountID: "acc-1",
		Amount:    decimal.NewFromInt(1000),
		Actor:     memberActor(),
	})
	require.NoError(t, err)

	_, err = f.svc.Reverse(context.Background(), usecase.ReverseRequest{
		TransactionID: original.ID, Reason: "first", Actor: staffActor(),
	})
	require.NoError(t, err)

	_, err = f.svc.Reverse(context.Background(), usecase.ReverseRequest{
		TransactionID: original.ID, Reason: "second", Actor: staffActor(),
	})
	require.ErrorIs(t, err, domain.ErrAlreadyReversed)

	account, _ := f.accounts.GetByID(context.Background(), "acc-1")
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(50000)))
}

func TestTransactionService_ReverseNonCompleted(t *testing.T) {
	f := newTxnFixture(nil)
	f.txns.Put(&domain.Transaction{
		ID:       "txn-failed",
		TenantID: "ten-1",
		Type:     domain.TransactionTypeDeposit,
		Status:   domain.TransactionStatusFailed,
	})

	_, err := f.svc.Reverse(context.Background(), usecase.ReverseRequest{
		TransactionID: "txn-failed", Reason: "cleanup", Actor: staffActor(),
	})
	require.ErrorIs(t, err, domain.ErrNotReversible)
}

func TestTransactionService_ReverseWrongTenant(t *testing.T) {
	f := newTxnFixture(nil)
	f.txns.Put(&domain.Transaction{
		ID:       "txn-other",
		TenantID: "ten-2",
		Type:     domain.TransactionTypeDeposit,
		Status:   domain.TransactionStatusCompleted,
	})

	_, err := f.svc.Reverse(context.Background(), usecase.ReverseRequest{
		TransactionID: "txn-other", Reason: "oops", Actor: staffActor(),
	})
	require.ErrorIs(t, err, domain.ErrTransactionNotFound)
}

func TestTransactionService_ReverseByNonOwner(t *testing.T) {
	f := newTxnFixture(nil)

	original, err := f.svc.Process(context.Background(), usecase.ProcessRequest{
		Type:      domain.TransactionTypeDeposit,
		AccountID: "acc-1",
		Amount:    decimal.NewFromInt(1000),
		Actor:     memberActor(),
	})
	require.NoError(t, err)

	_, err = f.svc.Reverse(context.Background(), usecase.ReverseRequest{
		TransactionID: original.ID,
		Reason:        "not yours",
		Actor:         domain.Actor{UserID: "usr-9", MemberID: "mem-9", TenantID: "ten-1", Role: domain.RoleMember},
	})
	require.ErrorIs(t, err, domain.ErrTransactionNotFound)
}

func TestTransactionService_GetBalanceCaching(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := mocks.NewMockCache(ctrl)
	f := newTxnFixture(cache)

	// Miss: compute from the account row and write through.
	var stored string
	cache.EXPECT().Get(gomock.Any(), "balance:acc-1").Return("", nil)
	cache.EXPECT().Set(gomock.Any(), "balance:acc-1", gomock.Any(), usecase.BalanceCacheTTL).
		DoAndReturn(func(_ context.Context, _ string, value string, _ time.Duration) error {
			stored = value
			return nil
		})

	snap, err := f.svc.GetBalance(context.Background(), memberActor(), "acc-1")
	require.NoError(t, err)
	assert.True(t, snap.Balance.Equal(decimal.NewFromInt(50000)))
	assert.True(t, snap.AvailableBalance.Equal(decimal.NewFromInt(45000)))

	// Hit: served from the cache, the repository is never touched.
	cache.EXPECT().Get(gomock.Any(), "balance:acc-1").Return(stored, nil)
	f.accounts.GetByIDFunc = func(ctx context.Context, id string) (*domain.Account, error) {
		t.Fatal("repository hit on cached balance")
		return nil, nil
	}

	cached, err := f.svc.GetBalance(context.Background(), memberActor(), "acc-1")
	require.NoError(t, err)
	assert.True(t, cached.Balance.Equal(snap.Balance))
}

func TestTransactionService_GetBalanceCacheHonorsOwnership(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := mocks.NewMockCache(ctrl)
	f := newTxnFixture(cache)

	// Warm the cache as the owning member.
	var stored string
	cache.EXPECT().Get(gomock.Any(), "balance:acc-1").Return("", nil)
	cache.EXPECT().Set(gomock.Any(), "balance:acc-1", gomock.Any(), usecase.BalanceCacheTTL).
		DoAndReturn(func(_ context.Context, _ string, value string, _ time.Duration) error {
			stored = value
			return nil
		})
	_, err := f.svc.GetBalance(context.Background(), memberActor(), "acc-1")
	require.NoError(t, err)

	// A warmed entry never leaks across tenants.
	cache.EXPECT().Get(gomock.Any(), "balance:acc-1").Return(stored, nil)
	_, err = f.svc.GetBalance(context.Background(), domain.Actor{
		UserID: "usr-9", MemberID: "mem-9", TenantID: "ten-2", Role: domain.RoleStaff,
	}, "acc-1")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)

	// Nor to another member of the same tenant.
	cache.EXPECT().Get(gomock.Any(), "balance:acc-1").Return(stored, nil)
	_, err = f.svc.GetBalance(context.Background(), domain.Actor{
		UserID: "usr-8", MemberID: "mem-8", TenantID: "ten-1", Role: domain.RoleMember,
	}, "acc-1")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestTransactionService_GetBalanceOwnership(t *testing.T) {
	f := newTxnFixture(nil)

	_, err := f.svc.GetBalance(context.Background(), domain.Actor{
		UserID: "usr-9", MemberID: "mem-9", TenantID: "ten-1", Role: domain.RoleMember,
	}, "acc-1")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestTransactionService_GetHistoryClampsLimit(t *testing.T) {
	f := newTxnFixture(nil)

	var gotFilter domain.HistoryFilter
	f.txns.ListByAccountFunc = func(ctx context.Context, accountID, tenantID string, filter domain.HistoryFilter) ([]*domain.Transaction, error) {
		gotFilter = filter
		return nil, nil
	}

	_, err := f.svc.GetHistory(context.Background(), memberActor(), "acc-1", domain.HistoryFilter{})
	require.NoError(t, err)
	assert.Equal(t, 20, gotFilter.Limit)

	_, err = f.svc.GetHistory(context.Background(), memberActor(), "acc-1", domain.HistoryFilter{Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, 100, gotFilter.Limit)
}

func TestTransactionService_GetTransactionWrongTenant(t *testing.T) {
	f := newTxnFixture(nil)
	f.txns.Put(&domain.Transaction{ID: "txn-1", TenantID: "ten-2"})

	_, err := f.svc.GetTransaction(context.Background(), memberActor(), "txn-1")
	require.ErrorIs(t, err, domain.ErrTransactionNotFound)
}

func TestTransactionService_SequentialNumbers(t *testing.T) {
	f := newTxnFixture(nil)

	want := []string{"DEP000000001", "DEP000000002", "DEP000000003"}
	for _, n := range want {
		txn, err := f.svc.Process(context.Background(), usecase.ProcessRequest{
			Type:      domain.TransactionTypeDeposit,
			AccountID: "acc-1",
			Amount:    decimal.NewFromInt(100),
			Actor:     memberActor(),
		})
		require.NoError(t, err)
		assert.Equal(t, n, txn.TransactionNumber)
	}
}

func TestTransactionService_NumberDrawnBeforeTransactionBegins(t *testing.T) {
	f := newTxnFixture(nil)

	f.numbers.NextFunc = func(ctx context.Context, txnType domain.TransactionType) (string, error) {
		// The generator takes its own pool connection; drawing inside an open
		// transaction would hold two connections per request.
		if f.txMgr.Last != nil {
			t.Error("transaction number drawn while a database transaction was open")
		}
		if txnType == domain.TransactionTypeReversal {
			return "REV000000001", nil
		}
		return "DEP000000001", nil
	}

	original, err := f.svc.Process(context.Background(), usecase.ProcessRequest{
		Type:      domain.TransactionTypeDeposit,
		AccountID: "acc-1",
		Amount:    decimal.NewFromInt(100),
		Actor:     memberActor(),
	})
	require.NoError(t, err)

	f.txMgr.Last = nil
	rev, err := f.svc.Reverse(context.Background(), usecase.ReverseRequest{
		TransactionID: original.ID,
		Reason:        "teller error",
		Actor:         staffActor(),
	})
	require.NoError(t, err)
	assert.Equal(t, "REV000000001", rev.TransactionNumber)
}

func TestTransactionService_ProcessSetsTimestampAndDefaults(t *testing.T) {
	f := newTxnFixture(nil)
	at := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	txn, err := f.svc.Process(context.Background(), usecase.ProcessRequest{
		Type:      domain.TransactionTypeDeposit,
		AccountID: "acc-1",
		Amount:    decimal.NewFromInt(100),
		Actor:     memberActor(),
		At:        at,
	})
	require.NoError(t, err)
	assert.True(t, txn.TransactionDate.Equal(at))
	assert.Equal(t, "usr-1", txn.ProcessedBy)
}

// retryTwice re-runs the operation once after a failure.
type retryTwice struct {
	attempts int
}

func (r *retryTwice) Retry(ctx context.Context, operation func() error) error {
	var err error
	for range 2 {
		r.attempts++
		if err = operation(); err == nil {
			return nil
		}
	}
	return err
}

func TestTransactionService_RetryRerunsFailedAttempt(t *testing.T) {
	retry := &retryTwice{}
	f := newTxnFixtureRetry(nil, retry)

	var calls int
	f.ledger.CreateEntriesFunc = func(ctx context.Context, tx usecase.Transaction, entries []*domain.LedgerEntry) error {
		calls++
		if calls == 1 {
			return errors.New("deadlock detected")
		}
		return nil
	}

	txn, err := f.svc.Process(context.Background(), usecase.ProcessRequest{
		Type:      domain.TransactionTypeDeposit,
		AccountID: "acc-1",
		Amount:    decimal.NewFromInt(100),
		Actor:     memberActor(),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, retry.attempts)
	assert.Equal(t, domain.TransactionStatusCompleted, txn.Status)
}

func TestTransactionService_ReverseOfReversalRejected(t *testing.T) {
	f := newTxnFixture(nil)
	f.txns.Put(&domain.Transaction{
		ID:        "rev-1",
		Type:      domain.TransactionTypeReversal,
		AccountID: "acc-1",
		TenantID:  "ten-1",
		Status:    domain.TransactionStatusCompleted,
	})

	_, err := f.svc.Reverse(context.Background(), usecase.ReverseRequest{
		TransactionID: "rev-1",
		Reason:        "undo the undo",
		Actor:         staffActor(),
	})
	require.ErrorIs(t, err, domain.ErrNotReversible)
}
