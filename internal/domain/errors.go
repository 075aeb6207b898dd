package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound            = errors.New("account not found")
	ErrAccountInactive            = errors.New("account is not active")
	ErrOwnerNotFound              = errors.New("owner not found")
	ErrInsufficientInitialDeposit = errors.New("initial deposit below minimum")
	ErrInsufficientFunds          = errors.New("insufficient funds")
	ErrInvalidAmount              = errors.New("amount must be positive")
	ErrInconsistentUpdate         = errors.New("update does not match stored account")

	// Transfer errors
	ErrSameAccountTransfer = errors.New("cannot transfer to same account")

	// Bank errors
	ErrBankNotFound    = errors.New("bank not found")
	ErrBankTooSmall    = errors.New("bank roster below minimum size")
	ErrBankTooLarge    = errors.New("bank roster above maximum size")
	ErrEmptyAccountSet = errors.New("account set is empty")
	ErrBranchNotFound  = errors.New("branch not found")
	ErrATMNotFound     = errors.New("atm not found")

	// Transaction errors
	ErrTransactionNotFound    = errors.New("transaction not found")
	ErrInvalidTransactionKind = errors.New("invalid transaction kind")

	// ErrConcurrencyConflict signals lock contention or a stale read.
	// Callers may retry; the postgres adapter does so with backoff.
	ErrConcurrencyConflict = errors.New("concurrent modification conflict")

	// ErrInvariantViolation is fatal: a post-condition or balance
	// invariant failed. It must surface to the caller, never be
	// replaced by a default value.
	ErrInvariantViolation = errors.New("ledger invariant violated")
)
