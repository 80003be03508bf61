package integration

import (
	"github.com/rs/zerolog"

	"github.com/kaditech/saccoledger/internal/adapter/repository/postgres"
	"github.com/kaditech/saccoledger/internal/usecase"
	"github.com/kaditech/saccoledger/tests/testutil"
)

// services wires the full use case stack against a real database.
type services struct {
	txn      *usecase.TransactionService
	ledger   *usecase.LedgerService
	accounts *postgres.AccountRepository
}

func newServices(testDB *testutil.TestDB, outbox usecase.OutboxRepository) *services {
	pool := testDB.Pool
	accountRepo := postgres.NewAccountRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	txnRepo := postgres.NewTransactionRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)

	if outbox == nil {
		outbox = postgres.NewNullOutboxRepository()
	}

	ledgerService := usecase.NewLedgerService(ledgerRepo, zerolog.Nop())

	txnService := usecase.NewTransactionService(usecase.TransactionServiceConfig{
		TxManager:   postgres.NewTxManager(pool),
		AccountRepo: accountRepo,
		ProductRepo: productRepo,
		TxnRepo:     txnRepo,
		OutboxRepo:  outbox,
		NumberGen:   postgres.NewNumberGenerator(pool),
		IDGen:       postgres.NewULIDGenerator(),
		Validator:   usecase.NewValidationService(txnRepo),
		Balances:    usecase.NewBalanceService(accountRepo),
		Ledger:      ledgerService,
		Retry:       postgres.NewRetrier(zerolog.Nop()),
		Logger:      zerolog.Nop(),
	})

	return &services{
		txn:      txnService,
		ledger:   ledgerService,
		accounts: accountRepo,
	}
}
