package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database
	// transaction. This bounds how long an account row lock can be held.
	DefaultTransactionTimeout = 10 * time.Second

	// BalanceCacheTTL is how long a balance snapshot stays cached. Mutations
	// invalidate the entry after commit, so the TTL only bounds staleness for
	// writes that bypass this process.
	BalanceCacheTTL = 30 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour
)
