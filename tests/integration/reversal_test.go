package integration

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/kaditech/saccoledger/internal/domain"
	"github.com/kaditech/saccoledger/internal/usecase"
	"github.com/kaditech/saccoledger/tests/testutil"
)

func TestReverseTransaction(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()

	svc := newServices(testDB, nil)
	staff := testutil.StaffActor("ten-1")

	deposit := func(t *testing.T, accountID string, amount int64) *domain.Transaction {
		t.Helper()
		txn, err := svc.txn.Process(ctx, usecase.ProcessRequest{
			Type:      domain.TransactionTypeDeposit,
			AccountID: accountID,
			Amount:    decimal.NewFromInt(amount),
			Actor:     staff,
		})
		if err != nil {
			t.Fatalf("deposit: %v", err)
		}
		return txn
	}

	t.Run("reversing a deposit restores the balance", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		product := testDB.CreateTestProduct(ctx, testutil.SavingsProduct("ten-1"))
		account := testDB.CreateTestAccount(ctx, product, "mem-1", decimal.NewFromInt(100))

		original := deposit(t, account.ID, 500)

		reversal, err := svc.txn.Reverse(ctx, usecase.ReverseRequest{
			TransactionID: original.ID,
			Reason:        "teller error",
			Actor:         staff,
		})
		if err != nil {
			t.Fatalf("reverse: %v", err)
		}

		if reversal.Type != domain.TransactionTypeReversal {
			t.Errorf("expected reversal type, got %s", reversal.Type)
		}
		if reversal.RelatedTransactionID == nil || *reversal.RelatedTransactionID != original.ID {
			t.Error("expected reversal linked to the original")
		}
		if !reversal.Amount.IsPositive() {
			t.Errorf("expected positive reversal amount, got %s", reversal.Amount)
		}
		if !reversal.BalanceAfter.Equal(decimal.NewFromInt(100)) {
			t.Errorf("expected balance restored to 100, got %s", reversal.BalanceAfter)
		}

		stored, err := svc.txn.GetTransaction(ctx, staff, original.ID)
		if err != nil {
			t.Fatalf("get original: %v", err)
		}
		if stored.Status != domain.TransactionStatusReversed {
			t.Errorf("expected original reversed, got %s", stored.Status)
		}
	})

	t.Run("reversal posts inverse entries", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		product := testDB.CreateTestProduct(ctx, testutil.SavingsProduct("ten-1"))
		account := testDB.CreateTestAccount(ctx, product, "mem-1", decimal.Zero)

		original := deposit(t, account.ID, 500)

		reversal, err := svc.txn.Reverse(ctx, usecase.ReverseRequest{
			TransactionID: original.ID,
			Reason:        "duplicate posting",
			Actor:         staff,
		})
		if err != nil {
			t.Fatalf("reverse: %v", err)
		}

		originalEntries, err := svc.ledger.EntriesFor(ctx, original.ID)
		if err != nil {
			t.Fatalf("original entries: %v", err)
		}
		reversalEntries, err := svc.ledger.EntriesFor(ctx, reversal.ID)
		if err != nil {
			t.Fatalf("reversal entries: %v", err)
		}

		if len(reversalEntries) != len(originalEntries) {
			t.Fatalf("expected %d inverse entries, got %d", len(originalEntries), len(reversalEntries))
		}

		// Swapped sides per account code, never negated amounts.
		byCode := make(map[string]*domain.LedgerEntry, len(originalEntries))
		for _, e := range originalEntries {
			byCode[e.AccountCode] = e
		}
		for _, inv := range reversalEntries {
			orig, ok := byCode[inv.AccountCode]
			if !ok {
				t.Fatalf("inverse entry for unknown account code %s", inv.AccountCode)
			}
			if !inv.DebitAmount.Equal(orig.CreditAmount) || !inv.CreditAmount.Equal(orig.DebitAmount) {
				t.Errorf("entry %s not inverted: debit=%s credit=%s", inv.AccountCode, inv.DebitAmount, inv.CreditAmount)
			}
			if inv.DebitAmount.IsNegative() || inv.CreditAmount.IsNegative() {
				t.Errorf("entry %s carries a negative amount", inv.AccountCode)
			}
		}
	})

	t.Run("a transaction reverses exactly once", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		product := testDB.CreateTestProduct(ctx, testutil.SavingsProduct("ten-1"))
		account := testDB.CreateTestAccount(ctx, product, "mem-1", decimal.Zero)

		original := deposit(t, account.ID, 500)

		if _, err := svc.txn.Reverse(ctx, usecase.ReverseRequest{
			TransactionID: original.ID,
			Reason:        "first",
			Actor:         staff,
		}); err != nil {
			t.Fatalf("first reverse: %v", err)
		}

		_, err := svc.txn.Reverse(ctx, usecase.ReverseRequest{
			TransactionID: original.ID,
			Reason:        "second",
			Actor:         staff,
		})
		if !errors.Is(err, domain.ErrAlreadyReversed) {
			t.Errorf("expected already reversed, got %v", err)
		}
	})

	t.Run("a reversal itself is not reversible", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		product := testDB.CreateTestProduct(ctx, testutil.SavingsProduct("ten-1"))
		account := testDB.CreateTestAccount(ctx, product, "mem-1", decimal.Zero)

		original := deposit(t, account.ID, 500)

		reversal, err := svc.txn.Reverse(ctx, usecase.ReverseRequest{
			TransactionID: original.ID,
			Reason:        "teller error",
			Actor:         staff,
		})
		if err != nil {
			t.Fatalf("reverse: %v", err)
		}

		_, err = svc.txn.Reverse(ctx, usecase.ReverseRequest{
			TransactionID: reversal.ID,
			Reason:        "undo the undo",
			Actor:         staff,
		})
		if !errors.Is(err, domain.ErrNotReversible) {
			t.Errorf("expected not reversible, got %v", err)
		}
	})

	t.Run("reversing a withdrawal returns amount plus fee", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		product := testutil.SavingsProduct("ten-1")
		product.WithdrawalFee = decimal.NewFromInt(10)
		testDB.CreateTestProduct(ctx, product)
		account := testDB.CreateTestAccount(ctx, product, "mem-1", decimal.NewFromInt(1000))

		withdrawal, err := svc.txn.Process(ctx, usecase.ProcessRequest{
			Type:      domain.TransactionTypeWithdrawal,
			AccountID: account.ID,
			Amount:    decimal.NewFromInt(100),
			Actor:     staff,
		})
		if err != nil {
			t.Fatalf("withdrawal: %v", err)
		}
		if !withdrawal.BalanceAfter.Equal(decimal.NewFromInt(890)) {
			t.Fatalf("expected balance 890 after withdrawal, got %s", withdrawal.BalanceAfter)
		}

		if _, err := svc.txn.Reverse(ctx, usecase.ReverseRequest{
			TransactionID: withdrawal.ID,
			Reason:        "dispensing failure",
			Actor:         staff,
		}); err != nil {
			t.Fatalf("reverse: %v", err)
		}

		stored, err := svc.accounts.GetByID(ctx, account.ID)
		if err != nil {
			t.Fatalf("get account: %v", err)
		}
		if !stored.Balance.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("expected balance restored to 1000, got %s", stored.Balance)
		}
	})

	t.Run("reversal stays within the actor's tenant", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		product := testDB.CreateTestProduct(ctx, testutil.SavingsProduct("ten-1"))
		account := testDB.CreateTestAccount(ctx, product, "mem-1", decimal.Zero)

		original := deposit(t, account.ID, 500)

		_, err := svc.txn.Reverse(ctx, usecase.ReverseRequest{
			TransactionID: original.ID,
			Reason:        "wrong tenant",
			Actor:         testutil.StaffActor("ten-2"),
		})
		if !errors.Is(err, domain.ErrTransactionNotFound) {
			t.Errorf("expected transaction not found, got %v", err)
		}
	})
}
