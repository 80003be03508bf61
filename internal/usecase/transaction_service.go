package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/kaditech/saccoledger/internal/domain"
	"github.com/kaditech/saccoledger/internal/infrastructure/metrics"
)

// ProcessRequest describes one financial operation to execute.
type ProcessRequest struct {
	Type           domain.TransactionType
	AccountID      string
	CounterpartyID string
	Amount         decimal.Decimal
	Narration      string
	Actor          domain.Actor
	At             time.Time
}

// ReverseRequest asks for a compensating transaction against a completed one.
type ReverseRequest struct {
	TransactionID string
	Reason        string
	Actor         domain.Actor
}

// TransactionService orchestrates validation, numbering, balance mutation and
// ledger posting into one atomic unit per financial operation. Everything
// between the account lock and the commit either all happens or none of it
// does; reverse is the only compensating action for committed work.
type TransactionService struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	productRepo ProductRepository
	txnRepo     TransactionRepository
	outboxRepo  OutboxRepository
	numberGen   NumberGenerator
	idGen       IDGenerator
	validator   *ValidationService
	balances    *BalanceService
	ledger      *LedgerService
	chart       *domain.ChartOfAccounts
	cache       Cache
	retry       Retryer
	metrics     *metrics.Metrics
	logger      zerolog.Logger
}

// TransactionServiceConfig holds the dependencies of a TransactionService.
type TransactionServiceConfig struct {
	TxManager   TransactionManager
	AccountRepo AccountRepository
	ProductRepo ProductRepository
	TxnRepo     TransactionRepository
	OutboxRepo  OutboxRepository
	NumberGen   NumberGenerator
	IDGen       IDGenerator
	Validator   *ValidationService
	Balances    *BalanceService
	Ledger      *LedgerService
	Chart       *domain.ChartOfAccounts
	Cache       Cache
	Retry       Retryer
	Metrics     *metrics.Metrics
	Logger      zerolog.Logger
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(cfg TransactionServiceConfig) *TransactionService {
	if cfg.Chart == nil {
		cfg.Chart = domain.DefaultChart()
	}
	if cfg.Retry == nil {
		cfg.Retry = noRetry{}
	}

	return &TransactionService{
		txManager:   cfg.TxManager,
		accountRepo: cfg.AccountRepo,
		productRepo: cfg.ProductRepo,
		txnRepo:     cfg.TxnRepo,
		outboxRepo:  cfg.OutboxRepo,
		numberGen:   cfg.NumberGen,
		idGen:       cfg.IDGen,
		validator:   cfg.Validator,
		balances:    cfg.Balances,
		ledger:      cfg.Ledger,
		chart:       cfg.Chart,
		cache:       cfg.Cache,
		retry:       cfg.Retry,
		metrics:     cfg.Metrics,
		logger:      cfg.Logger,
	}
}

// noRetry runs the operation exactly once.
type noRetry struct{}

func (noRetry) Retry(ctx context.Context, operation func() error) error {
	return operation()
}

// Process executes one financial operation end to end. The account row lock
// is held from acquisition until commit, covering both the balance mutation
// and the ledger post so the pair commits or rolls back as one unit.
func (s *TransactionService) Process(ctx context.Context, req ProcessRequest) (*domain.Transaction, error) {
	if req.At.IsZero() {
		req.At = time.Now().UTC()
	}

	if err := s.validator.ValidateStatic(req); err != nil {
		s.countError(req.Type, err)
		return nil, err
	}

	start := time.Now()

	// Deadlocks and serialization failures abort the whole unit; the retryer
	// re-runs it from a fresh database transaction.
	var txn *domain.Transaction
	err := s.retry.Retry(ctx, func() error {
		var opErr error
		txn, opErr = s.processOnce(ctx, req)
		return opErr
	})
	if err == nil && s.metrics != nil {
		s.metrics.ProcessDuration.Observe(time.Since(start).Seconds())
	}
	return txn, err
}

func (s *TransactionService) processOnce(ctx context.Context, req ProcessRequest) (*domain.Transaction, error) {
	// The counter runs on its own pool connection, so the number is drawn
	// before the transaction begins; waiting on a second connection while
	// holding the tx connection and the account lock could stall the pool.
	// Numbers burned by attempts that later fail are accepted gaps.
	number, err := s.numberGen.Next(ctx, req.Type)
	if err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := s.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	// Lock all touched accounts in sorted order (deadlock prevention).
	lockIDs := []string{req.AccountID}
	if req.Type == domain.TransactionTypeTransfer {
		lockIDs = append(lockIDs, req.CounterpartyID)
		sort.Strings(lockIDs)
	}

	accounts, err := s.accountRepo.GetByIDsForUpdate(txCtx, tx, lockIDs)
	if err != nil {
		s.countError(req.Type, err)
		return nil, err
	}
	if len(accounts) != len(lockIDs) {
		return nil, domain.ErrAccountNotFound
	}

	byID := make(map[string]*domain.Account, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
	}

	account := byID[req.AccountID]

	var counterparty *domain.Account
	if req.Type == domain.TransactionTypeTransfer {
		counterparty = byID[req.CounterpartyID]
	}

	product, err := s.productRepo.GetByID(txCtx, account.ProductID)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(txCtx, tx, req, account, product, req.Actor); err != nil {
		s.countError(req.Type, err)
		return nil, err
	}

	if counterparty != nil {
		if counterparty.TenantID != req.Actor.TenantID {
			return nil, domain.ErrAccountNotFound
		}
		if !counterparty.IsActive() {
			return nil, domain.ErrAccountNotActive
		}
	}

	fee := decimal.Zero
	net := req.Amount
	if req.Type.IsDebit() {
		fee = product.Fee(req.Type)
		net = req.Amount.Sub(fee)
	}

	balanceBefore := account.Balance

	if req.Type.IsDebit() {
		_, err = s.balances.ApplyDelta(txCtx, tx, account, req.Amount.Add(fee), DirectionDebit, req.At)
	} else {
		_, err = s.balances.ApplyDelta(txCtx, tx, account, req.Amount, DirectionCredit, req.At)
	}
	if err != nil {
		s.countError(req.Type, err)
		return nil, err
	}

	if counterparty != nil {
		if _, err = s.balances.ApplyDelta(txCtx, tx, counterparty, req.Amount, DirectionCredit, req.At); err != nil {
			s.countError(req.Type, err)
			return nil, err
		}
	}

	txn := &domain.Transaction{
		ID:                s.idGen.Generate(),
		TransactionNumber: number,
		Type:              req.Type,
		AccountID:         account.ID,
		TenantID:          req.Actor.TenantID,
		Amount:            req.Amount,
		FeeAmount:         fee,
		NetAmount:         net,
		Status:            domain.TransactionStatusPending,
		BalanceBefore:     balanceBefore,
		BalanceAfter:      account.Balance,
		ProcessedBy:       req.Actor.UserID,
		Narration:         req.Narration,
		TransactionDate:   req.At,
		CreatedAt:         req.At,
	}
	if counterparty != nil {
		txn.CounterpartyID = &counterparty.ID
	}

	if err := s.txnRepo.Create(txCtx, tx, txn); err != nil {
		return nil, err
	}

	legs, err := s.chart.Legs(req.Type, req.Amount, fee)
	if err != nil {
		return nil, err
	}

	entries := s.buildEntries(txn, legs, req.At)
	if err := s.ledger.Post(txCtx, tx, txn, entries); err != nil {
		s.countError(req.Type, err)
		// Roll back before recording the failure so the failed record does
		// not contend with the uncommitted pending row on the unique
		// transaction number.
		_ = tx.Rollback(txCtx)
		s.recordFailure(ctx, txn)
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.LedgerEntriesPosted.Add(float64(len(entries)))
	}

	if err := txn.Complete(); err != nil {
		return nil, err
	}
	if err := s.txnRepo.UpdateStatus(txCtx, tx, txn.ID, domain.TransactionStatusCompleted); err != nil {
		return nil, err
	}

	if err := s.writeCompletedEvent(txCtx, tx, txn); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		s.countError(req.Type, err)
		return nil, err
	}

	// Side effects run strictly after commit, never under the account lock.
	s.invalidateBalances(ctx, lockIDs)
	s.observeProcessed(txn)

	return txn, nil
}

// Reverse creates a compensating transaction that inverts a completed
// transaction's balance and ledger effects. History is never edited: the
// original only changes status, and the inverse entries are new rows.
func (s *TransactionService) Reverse(ctx context.Context, req ReverseRequest) (*domain.Transaction, error) {
	var reversal *domain.Transaction
	err := s.retry.Retry(ctx, func() error {
		var opErr error
		reversal, opErr = s.reverseOnce(ctx, req)
		return opErr
	})
	return reversal, err
}

func (s *TransactionService) reverseOnce(ctx context.Context, req ReverseRequest) (*domain.Transaction, error) {
	now := time.Now().UTC()

	// Drawn before the transaction begins for the same pool reason as
	// processOnce; a rejected reversal burns the number.
	number, err := s.numberGen.Next(ctx, domain.TransactionTypeReversal)
	if err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := s.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	// Row lock on the original prevents two concurrent reversals of the same
	// transaction from both passing the status check.
	original, err := s.txnRepo.GetByIDForUpdate(txCtx, tx, req.TransactionID)
	if err != nil {
		return nil, err
	}
	if original.TenantID != req.Actor.TenantID {
		return nil, domain.ErrTransactionNotFound
	}

	// A reversal is corrected by re-processing the original, never by
	// reversing the reversal.
	if original.Type == domain.TransactionTypeReversal {
		return nil, domain.ErrNotReversible
	}

	switch original.Status {
	case domain.TransactionStatusReversed:
		return nil, domain.ErrAlreadyReversed
	case domain.TransactionStatusCompleted:
		// reversible
	default:
		return nil, domain.ErrNotReversible
	}

	lockIDs := []string{original.AccountID}
	if original.CounterpartyID != nil {
		lockIDs = append(lockIDs, *original.CounterpartyID)
		sort.Strings(lockIDs)
	}

	accounts, err := s.accountRepo.GetByIDsForUpdate(txCtx, tx, lockIDs)
	if err != nil {
		return nil, err
	}
	if len(accounts) != len(lockIDs) {
		return nil, domain.ErrAccountNotFound
	}

	byID := make(map[string]*domain.Account, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
	}
	account := byID[original.AccountID]

	if !req.Actor.IsStaff() && !account.OwnedBy(req.Actor.MemberID, req.Actor.TenantID) {
		return nil, domain.ErrTransactionNotFound
	}

	balanceBefore := account.Balance

	// Invert the balance effect: a debit-class original took amount+fee, so
	// the reversal credits the full take back.
	if original.Type.IsDebit() {
		_, err = s.balances.ApplyDelta(txCtx, tx, account, original.Amount.Add(original.FeeAmount), DirectionCredit, now)
	} else {
		_, err = s.balances.ApplyDelta(txCtx, tx, account, original.Amount, DirectionDebit, now)
	}
	if err != nil {
		s.countError(domain.TransactionTypeReversal, err)
		return nil, err
	}

	if original.CounterpartyID != nil {
		counterparty := byID[*original.CounterpartyID]
		if _, err = s.balances.ApplyDelta(txCtx, tx, counterparty, original.Amount, DirectionDebit, now); err != nil {
			s.countError(domain.TransactionTypeReversal, err)
			return nil, err
		}
	}

	reversal := &domain.Transaction{
		ID:                   s.idGen.Generate(),
		TransactionNumber:    number,
		Type:                 domain.TransactionTypeReversal,
		AccountID:            original.AccountID,
		CounterpartyID:       original.CounterpartyID,
		TenantID:             original.TenantID,
		Amount:               original.Amount,
		FeeAmount:            original.FeeAmount,
		NetAmount:            original.NetAmount,
		Status:               domain.TransactionStatusPending,
		BalanceBefore:        balanceBefore,
		BalanceAfter:         account.Balance,
		RelatedTransactionID: &original.ID,
		ProcessedBy:          req.Actor.UserID,
		Narration:            req.Reason,
		TransactionDate:      now,
		CreatedAt:            now,
	}

	if err := s.txnRepo.Create(txCtx, tx, reversal); err != nil {
		return nil, err
	}

	originalEntries, err := s.ledger.EntriesFor(txCtx, original.ID)
	if err != nil {
		return nil, err
	}

	inverse := make([]*domain.LedgerEntry, 0, len(originalEntries))
	for _, e := range originalEntries {
		inverse = append(inverse, e.Inverse(s.idGen.Generate(), reversal.ID, now))
	}

	if err := s.ledger.Post(txCtx, tx, reversal, inverse); err != nil {
		s.countError(domain.TransactionTypeReversal, err)
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.LedgerEntriesPosted.Add(float64(len(inverse)))
	}

	if err := original.MarkReversed(); err != nil {
		return nil, err
	}
	if err := s.txnRepo.UpdateStatus(txCtx, tx, original.ID, domain.TransactionStatusReversed); err != nil {
		return nil, err
	}

	if err := reversal.Complete(); err != nil {
		return nil, err
	}
	if err := s.txnRepo.UpdateStatus(txCtx, tx, reversal.ID, domain.TransactionStatusCompleted); err != nil {
		return nil, err
	}

	if err := s.writeReversedEvent(txCtx, tx, reversal, original, req.Reason); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	s.invalidateBalances(ctx, lockIDs)
	if s.metrics != nil {
		s.metrics.TransactionsReversed.Inc()
	}

	return reversal, nil
}

// cachedBalance is the stored form of a balance snapshot. The owner identity
// rides along so a cache hit enforces the same visibility rule as the
// repository path.
type cachedBalance struct {
	Snapshot domain.BalanceSnapshot `json:"snapshot"`
	MemberID string                 `json:"member_id"`
	TenantID string                 `json:"tenant_id"`
}

func (c *cachedBalance) visibleTo(actor domain.Actor) bool {
	if actor.TenantID != c.TenantID {
		return false
	}
	return actor.IsStaff() || actor.MemberID == c.MemberID
}

// GetBalance returns the balance snapshot for an account the actor may see.
func (s *TransactionService) GetBalance(ctx context.Context, actor domain.Actor, accountID string) (*domain.BalanceSnapshot, error) {
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, balanceCacheKey(accountID)); err == nil && data != "" {
			var cached cachedBalance
			// An actor the cached owner record does not admit falls through to
			// the repository path, which denies with not-found.
			if err := json.Unmarshal([]byte(data), &cached); err == nil && cached.visibleTo(actor) {
				return &cached.Snapshot, nil
			}
		}
	}

	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.TenantID != actor.TenantID {
		return nil, domain.ErrAccountNotFound
	}
	if !actor.IsStaff() && !account.OwnedBy(actor.MemberID, actor.TenantID) {
		return nil, domain.ErrAccountNotFound
	}

	snap := &domain.BalanceSnapshot{
		AccountID:        account.ID,
		AccountNumber:    account.AccountNumber,
		Balance:          account.Balance,
		AvailableBalance: s.balances.Available(account),
		MinimumBalance:   account.MinimumBalance,
		ActiveHolds:      account.ActiveHolds,
		AsOf:             time.Now().UTC(),
	}

	if s.cache != nil {
		entry := cachedBalance{Snapshot: *snap, MemberID: account.MemberID, TenantID: account.TenantID}
		if data, err := json.Marshal(entry); err == nil {
			_ = s.cache.Set(ctx, balanceCacheKey(accountID), string(data), BalanceCacheTTL)
		}
	}

	return snap, nil
}

// GetHistory returns the transaction history for an account the actor may see.
func (s *TransactionService) GetHistory(ctx context.Context, actor domain.Actor, accountID string, filter domain.HistoryFilter) ([]*domain.Transaction, error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.TenantID != actor.TenantID {
		return nil, domain.ErrAccountNotFound
	}
	if !actor.IsStaff() && !account.OwnedBy(actor.MemberID, actor.TenantID) {
		return nil, domain.ErrAccountNotFound
	}

	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}

	return s.txnRepo.ListByAccount(ctx, accountID, actor.TenantID, filter)
}

// GetTransaction returns a single transaction within the actor's tenant.
func (s *TransactionService) GetTransaction(ctx context.Context, actor domain.Actor, id string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if txn.TenantID != actor.TenantID {
		return nil, domain.ErrTransactionNotFound
	}
	return txn, nil
}

func (s *TransactionService) buildEntries(txn *domain.Transaction, legs []domain.PostingLeg, at time.Time) []*domain.LedgerEntry {
	entries := make([]*domain.LedgerEntry, 0, len(legs))
	for _, leg := range legs {
		entries = append(entries, &domain.LedgerEntry{
			ID:            s.idGen.Generate(),
			TransactionID: txn.ID,
			TenantID:      txn.TenantID,
			AccountCode:   leg.Account.Code,
			AccountName:   leg.Account.Name,
			AccountType:   leg.Account.Type,
			DebitAmount:   leg.Debit,
			CreditAmount:  leg.Credit,
			Status:        domain.LedgerEntryStatusPending,
			CreatedAt:     at,
		})
	}
	return entries
}

func (s *TransactionService) writeCompletedEvent(ctx context.Context, tx Transaction, txn *domain.Transaction) error {
	if s.outboxRepo == nil {
		return nil
	}

	return s.outboxRepo.Create(ctx, tx, &domain.OutboxEvent{
		ID:            s.idGen.Generate(),
		TenantID:      txn.TenantID,
		AggregateID:   txn.ID,
		AggregateType: domain.AggregateTypeTransaction,
		EventType:     domain.EventTypeTransactionCompleted,
		Payload: map[string]any{
			"transaction_id":     txn.ID,
			"transaction_number": txn.TransactionNumber,
			"type":               string(txn.Type),
			"account_id":         txn.AccountID,
			"amount":             txn.Amount.String(),
			"fee_amount":         txn.FeeAmount.String(),
			"balance_after":      txn.BalanceAfter.String(),
			"tenant_id":          txn.TenantID,
		},
		CreatedAt: txn.CreatedAt,
	})
}

func (s *TransactionService) writeReversedEvent(ctx context.Context, tx Transaction, reversal, original *domain.Transaction, reason string) error {
	if s.outboxRepo == nil {
		return nil
	}

	return s.outboxRepo.Create(ctx, tx, &domain.OutboxEvent{
		ID:            s.idGen.Generate(),
		TenantID:      reversal.TenantID,
		AggregateID:   reversal.ID,
		AggregateType: domain.AggregateTypeTransaction,
		EventType:     domain.EventTypeTransactionReversed,
		Payload: map[string]any{
			"reversal_id":             reversal.ID,
			"original_transaction_id": original.ID,
			"account_id":              reversal.AccountID,
			"amount":                  reversal.Amount.String(),
			"reason":                  reason,
			"tenant_id":               reversal.TenantID,
		},
		CreatedAt: reversal.CreatedAt,
	})
}

// recordFailure best-effort persists a failed transaction record outside the
// rolled-back boundary so the attempt is auditable. The failed record carries
// no balance or ledger effect.
func (s *TransactionService) recordFailure(ctx context.Context, txn *domain.Transaction) {
	failed := *txn
	failed.Status = domain.TransactionStatusFailed
	failed.BalanceAfter = failed.BalanceBefore

	if err := s.txnRepo.RecordFailure(ctx, &failed); err != nil {
		s.logger.Warn().Err(err).
			Str("transaction_number", failed.TransactionNumber).
			Msg("could not record failed transaction")
	}
}

func (s *TransactionService) invalidateBalances(ctx context.Context, accountIDs []string) {
	if s.cache == nil {
		return
	}
	for _, id := range accountIDs {
		_ = s.cache.Delete(ctx, balanceCacheKey(id))
	}
}

func (s *TransactionService) observeProcessed(txn *domain.Transaction) {
	if s.metrics == nil {
		return
	}
	s.metrics.TransactionsProcessed.WithLabelValues(string(txn.Type)).Inc()
	amount, _ := txn.Amount.Float64()
	s.metrics.TransactionAmount.Observe(amount)
}

func (s *TransactionService) countError(t domain.TransactionType, err error) {
	if s.metrics == nil || err == nil {
		return
	}
	s.metrics.TransactionErrors.WithLabelValues(string(t), metrics.ErrorLabel(err)).Inc()

	switch {
	case errors.Is(err, domain.ErrLedgerImbalance):
		s.metrics.LedgerImbalances.Inc()
	case errors.Is(err, domain.ErrConcurrencyTimeout):
		s.metrics.LockTimeouts.Inc()
	}
}

func balanceCacheKey(accountID string) string {
	return "balance:" + accountID
}
