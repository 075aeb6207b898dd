package usecase

import "time"

const (
	// DefaultTransactionTimeout bounds a single storage transaction so
	// lock holders cannot block the ledger indefinitely.
	DefaultTransactionTimeout = 10 * time.Second

	// HardDeleteRetries bounds how often a failed hard-delete
	// post-condition is retried before it is escalated as an
	// invariant violation.
	HardDeleteRetries = 3

	// IdempotencyKeyTTL is how long idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour
)
