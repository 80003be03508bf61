package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/kaditech/saccoledger/internal/domain"
)

// LedgerService persists balanced sets of double-entry rows. An unbalanced
// batch is an internal bug in the amount/fee/account-code mapping, never a
// user error: it is logged with full entry detail and the whole operation
// aborts.
type LedgerService struct {
	ledgerRepo LedgerRepository
	logger     zerolog.Logger
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo LedgerRepository, logger zerolog.Logger) *LedgerService {
	return &LedgerService{ledgerRepo: ledgerRepo, logger: logger}
}

// Post verifies the debit=credit invariant over the batch and persists every
// entry as posted. Posted entries are immutable; a correction is a reversal
// transaction's entries with debit and credit swapped, never an edit.
func (s *LedgerService) Post(ctx context.Context, tx Transaction, txn *domain.Transaction, entries []*domain.LedgerEntry) error {
	if len(entries) == 0 {
		return domain.ErrInvalidLedgerEntry
	}

	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return err
		}
	}

	debits, credits := domain.SumEntries(entries)
	if !debits.Equal(credits) {
		imbalance := &domain.LedgerImbalanceError{
			TransactionID: txn.ID,
			Debits:        debits.String(),
			Credits:       credits.String(),
			Entries:       entries,
		}

		evt := s.logger.Error().
			Str("transaction_id", txn.ID).
			Str("transaction_number", txn.TransactionNumber).
			Str("debits", debits.String()).
			Str("credits", credits.String())
		for _, e := range entries {
			evt = evt.Strs("entry", []string{e.AccountCode, e.AccountName, e.DebitAmount.String(), e.CreditAmount.String()})
		}
		evt.Msg("ledger imbalance detected, aborting transaction")

		return imbalance
	}

	for _, e := range entries {
		e.Status = domain.LedgerEntryStatusPosted
	}

	return s.ledgerRepo.CreateEntries(ctx, tx, entries)
}

// EntriesFor returns the posted entries of a transaction.
func (s *LedgerService) EntriesFor(ctx context.Context, transactionID string) ([]*domain.LedgerEntry, error) {
	return s.ledgerRepo.GetByTransaction(ctx, transactionID)
}

// CheckConsistency verifies the global invariant: posted debits equal posted
// credits across the whole ledger.
func (s *LedgerService) CheckConsistency(ctx context.Context) (bool, error) {
	debits, credits, err := s.ledgerRepo.CheckConsistency(ctx)
	if err != nil {
		return false, err
	}

	if !debits.Equal(credits) {
		s.logger.Error().
			Str("debits", debits.String()).
			Str("credits", credits.String()).
			Msg("global ledger inconsistency detected")
		return false, nil
	}

	return true, nil
}
