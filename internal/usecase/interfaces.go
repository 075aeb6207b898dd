package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mcsoftware/atmledger/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	CreateTx(ctx context.Context, tx Transaction, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Account, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.Account, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	UpdateAccountNumber(ctx context.Context, tx Transaction, id, accountNumber string, updatedAt time.Time) error
	// MarkDeleted zeroes the balance, clears the owner link and sets
	// status DELETED. The account row stays; its log is untouched.
	MarkDeleted(ctx context.Context, tx Transaction, id string, updatedAt time.Time) error
	// Delete physically removes the account record.
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

// UserRepository defines data access for account owners.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context, limit, offset int) ([]*domain.User, error)
}

// BankRepository defines data access for banks.
type BankRepository interface {
	Create(ctx context.Context, bank *domain.Bank) error
	GetByID(ctx context.Context, id string) (*domain.Bank, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Bank, error)
	UpdateRepositoryBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	SetAccountIDs(ctx context.Context, tx Transaction, id string, accountIDs []string, updatedAt time.Time) error
	AddBranch(ctx context.Context, tx Transaction, bankID, branchID string, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.Bank, error)
}

// BranchRepository defines data access for branches.
type BranchRepository interface {
	Create(ctx context.Context, tx Transaction, branch *domain.Branch) error
	GetByID(ctx context.Context, id string) (*domain.Branch, error)
	ListByBank(ctx context.Context, bankID string) ([]*domain.Branch, error)
}

// ATMRepository defines data access for ATM cash state.
type ATMRepository interface {
	Create(ctx context.Context, tx Transaction, atm *domain.ATM) error
	GetByID(ctx context.Context, id string) (*domain.ATM, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.ATM, error)
	UpdateCashBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	ListByBranch(ctx context.Context, branchID string) ([]*domain.ATM, error)
}

// TransactionRepository defines data access for the append-only
// transaction log. Entries are write-once; there is no update or
// delete.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, txn *domain.Transaction) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error)
}

// LedgerRepository defines ledger-wide audit operations.
type LedgerRepository interface {
	// CheckConsistency recomputes every account balance from its
	// transaction log and reports disagreements.
	CheckConsistency(ctx context.Context) (*domain.ConsistencyReport, error)
}

// Transaction represents a storage transaction: a unit of work whose
// balance updates and log appends become visible together or not at
// all.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache is a read-through cache for immutable data.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
