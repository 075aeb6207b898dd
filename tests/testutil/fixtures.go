// Package testutil wires a complete in-process ledger for integration
// tests: the in-memory store behaves like the production storage,
// including per-entity locking and atomic commits, without requiring
// external services.
package testutil

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mcsoftware/atmledger/internal/adapter/repository/memory"
	"github.com/mcsoftware/atmledger/internal/adapter/repository/postgres"
	"github.com/mcsoftware/atmledger/internal/domain"
	"github.com/mcsoftware/atmledger/internal/usecase"
)

// LedgerEnv bundles repositories and use cases over one in-memory
// store.
type LedgerEnv struct {
	Store *memory.Store

	AccountRepo usecase.AccountRepository
	UserRepo    usecase.UserRepository
	BankRepo    usecase.BankRepository
	BranchRepo  usecase.BranchRepository
	ATMRepo     usecase.ATMRepository
	TxnRepo     usecase.TransactionRepository
	LedgerRepo  usecase.LedgerRepository
	TxManager   usecase.TransactionManager

	UserUC     *usecase.UserUseCase
	AccountUC  *usecase.AccountUseCase
	TransferUC *usecase.TransferUseCase
	BankUC     *usecase.BankUseCase
	TxnUC      *usecase.TransactionUseCase
	LedgerUC   *usecase.LedgerUseCase

	t *testing.T
}

// NewLedgerEnv creates a fresh ledger environment.
func NewLedgerEnv(t *testing.T) *LedgerEnv {
	t.Helper()

	store := memory.NewStore()
	txManager := memory.NewTxManager(store)
	accountRepo := memory.NewAccountRepository(store)
	userRepo := memory.NewUserRepository(store)
	bankRepo := memory.NewBankRepository(store)
	branchRepo := memory.NewBranchRepository(store)
	atmRepo := memory.NewATMRepository(store)
	txnRepo := memory.NewTransactionRepository(store)
	ledgerRepo := memory.NewLedgerRepository(store)
	idGen := postgres.NewULIDGenerator()

	return &LedgerEnv{
		Store:       store,
		AccountRepo: accountRepo,
		UserRepo:    userRepo,
		BankRepo:    bankRepo,
		BranchRepo:  branchRepo,
		ATMRepo:     atmRepo,
		TxnRepo:     txnRepo,
		LedgerRepo:  ledgerRepo,
		TxManager:   txManager,

		UserUC:     usecase.NewUserUseCase(userRepo, idGen),
		AccountUC:  usecase.NewAccountUseCase(txManager, accountRepo, userRepo, txnRepo, idGen, nil),
		TransferUC: usecase.NewTransferUseCase(txManager, accountRepo, bankRepo, branchRepo, atmRepo, txnRepo, idGen, nil),
		BankUC:     usecase.NewBankUseCase(txManager, bankRepo, branchRepo, atmRepo, accountRepo, idGen),
		TxnUC:      usecase.NewTransactionUseCase(txnRepo, nil),
		LedgerUC:   usecase.NewLedgerUseCase(ledgerRepo, nil),

		t: t,
	}
}

// CreateTestUser registers an owner for test accounts.
func (e *LedgerEnv) CreateTestUser(ctx context.Context, name string) *domain.User {
	e.t.Helper()

	user, err := e.UserUC.CreateUser(ctx, usecase.CreateUserInput{
		Name:  name,
		Email: name + "@example.com",
	})
	if err != nil {
		e.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestAccount opens an account with the given opening deposit.
func (e *LedgerEnv) CreateTestAccount(ctx context.Context, ownerID, number string, deposit decimal.Decimal) *domain.Account {
	e.t.Helper()

	account, err := e.AccountUC.CreateAccount(ctx, usecase.CreateAccountInput{
		OwnerID:        ownerID,
		AccountNumber:  number,
		InitialDeposit: deposit,
	})
	if err != nil {
		e.t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestAccounts opens n accounts for one owner, each with the
// minimum opening deposit.
func (e *LedgerEnv) CreateTestAccounts(ctx context.Context, n int) []*domain.Account {
	e.t.Helper()

	user := e.CreateTestUser(ctx, "fixture-owner")
	accounts := make([]*domain.Account, 0, n)
	for i := 0; i < n; i++ {
		accounts = append(accounts, e.CreateTestAccount(ctx, user.ID, "", domain.MinInitialDeposit))
	}
	return accounts
}

// CreateTestBank founds a bank over the given accounts.
func (e *LedgerEnv) CreateTestBank(ctx context.Context, accounts []*domain.Account, repoBalance decimal.Decimal) *domain.Bank {
	e.t.Helper()

	ids := make([]string, 0, len(accounts))
	for _, a := range accounts {
		ids = append(ids, a.ID)
	}

	bank, err := e.BankUC.CreateBank(ctx, usecase.CreateBankInput{
		Name:              "Test Bank",
		AccountIDs:        ids,
		RepositoryBalance: repoBalance,
	})
	if err != nil {
		e.t.Fatalf("failed to create test bank: %v", err)
	}
	return bank
}

// MustCheckConsistency fails the test on an inconsistent ledger.
func (e *LedgerEnv) MustCheckConsistency(ctx context.Context) *domain.ConsistencyReport {
	e.t.Helper()

	report, err := e.LedgerUC.CheckConsistency(ctx)
	if err != nil {
		e.t.Fatalf("consistency check failed: %v (report: %+v)", err, report)
	}
	return report
}
