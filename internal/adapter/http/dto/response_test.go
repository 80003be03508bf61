package dto

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kaditech/saccoledger/internal/domain"
)

func TestTransactionFromDomain(t *testing.T) {
	now := time.Now()
	related := "txn-0"
	counterparty := "acc-2"
	txn := &domain.Transaction{
		ID:                   "txn-1",
		TransactionNumber:    "WDR000000042",
		Type:                 domain.TransactionTypeWithdrawal,
		AccountID:            "acc-1",
		CounterpartyID:       &counterparty,
		TenantID:             "ten-1",
		Amount:               decimal.RequireFromString("20000"),
		FeeAmount:            decimal.RequireFromString("1000"),
		NetAmount:            decimal.RequireFromString("19000"),
		Status:               domain.TransactionStatusCompleted,
		BalanceBefore:        decimal.RequireFromString("50000"),
		BalanceAfter:         decimal.RequireFromString("29000"),
		RelatedTransactionID: &related,
		ProcessedBy:          "usr-1",
		Narration:            "cash out",
		TransactionDate:      now,
		CreatedAt:            now,
	}

	resp := TransactionFromDomain(txn)
	if resp.TransactionNumber != "WDR000000042" || resp.Type != "withdrawal" || resp.Status != "completed" {
		t.Fatalf("unexpected transaction response: %+v", resp)
	}
	if !resp.BalanceAfter.Equal(decimal.RequireFromString("29000")) {
		t.Fatalf("BalanceAfter = %s", resp.BalanceAfter)
	}
	if resp.CounterpartyID == nil || *resp.CounterpartyID != "acc-2" {
		t.Fatalf("CounterpartyID = %v", resp.CounterpartyID)
	}
	if resp.RelatedTransactionID == nil || *resp.RelatedTransactionID != "txn-0" {
		t.Fatalf("RelatedTransactionID = %v", resp.RelatedTransactionID)
	}

	list := TransactionsFromDomain([]*domain.Transaction{txn})
	if len(list) != 1 || list[0].ID != txn.ID {
		t.Fatalf("TransactionsFromDomain returned %+v", list)
	}
}

func TestBalanceFromDomain(t *testing.T) {
	now := time.Now()
	snapshot := &domain.BalanceSnapshot{
		AccountID:        "acc-1",
		AccountNumber:    "SAV-001",
		Balance:          decimal.RequireFromString("50000"),
		AvailableBalance: decimal.RequireFromString("45000"),
		MinimumBalance:   decimal.RequireFromString("5000"),
		ActiveHolds:      decimal.Zero,
		AsOf:             now,
	}

	resp := BalanceFromDomain(snapshot)
	if resp.AccountID != "acc-1" || resp.AccountNumber != "SAV-001" {
		t.Fatalf("unexpected balance response: %+v", resp)
	}
	if !resp.AvailableBalance.Equal(decimal.RequireFromString("45000")) {
		t.Fatalf("AvailableBalance = %s", resp.AvailableBalance)
	}
}

func TestLedgerEntryFromDomain(t *testing.T) {
	now := time.Now()
	entry := &domain.LedgerEntry{
		ID:            "le-1",
		TransactionID: "txn-1",
		TenantID:      "ten-1",
		AccountCode:   "1001",
		AccountName:   "Cash",
		AccountType:   domain.LedgerAccountTypeAsset,
		DebitAmount:   decimal.RequireFromString("20000"),
		CreditAmount:  decimal.Zero,
		Status:        domain.LedgerEntryStatusPosted,
		CreatedAt:     now,
	}

	entries := LedgerEntriesFromDomain([]*domain.LedgerEntry{entry})
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	got := entries[0]
	if got.AccountCode != "1001" || got.AccountType != "asset" || got.Status != "posted" {
		t.Fatalf("unexpected entry response: %+v", got)
	}
	if !got.DebitAmount.Equal(decimal.RequireFromString("20000")) || !got.CreditAmount.IsZero() {
		t.Fatalf("amounts = %s / %s", got.DebitAmount, got.CreditAmount)
	}
}
