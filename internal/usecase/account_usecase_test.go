package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mcsoftware/atmledger/internal/domain"
	"github.com/mcsoftware/atmledger/internal/usecase"
	"github.com/mcsoftware/atmledger/internal/usecase/mocks"
)

func TestAccountUseCase_CreateAccount(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.CreateAccountInput
		setupMocks  func(*mocks.MockAccountRepository, *mocks.MockUserRepository, *mocks.MockTransactionRepository)
		expectError bool
		errorType   error
	}{
		{
			name: "successful account creation",
			input: usecase.CreateAccountInput{
				OwnerID:        "user-1",
				AccountNumber:  "ACC-0001",
				InitialDeposit: decimal.NewFromInt(500000),
			},
			setupMocks: func(accRepo *mocks.MockAccountRepository, userRepo *mocks.MockUserRepository, txnRepo *mocks.MockTransactionRepository) {
				userRepo.Create(context.Background(), &domain.User{ID: "user-1", Name: "owner"})
			},
			expectError: false,
		},
		{
			name: "reject deposit below minimum",
			input: usecase.CreateAccountInput{
				OwnerID:        "user-1",
				AccountNumber:  "ACC-0002",
				InitialDeposit: decimal.NewFromInt(499999),
			},
			setupMocks: func(accRepo *mocks.MockAccountRepository, userRepo *mocks.MockUserRepository, txnRepo *mocks.MockTransactionRepository) {
				userRepo.Create(context.Background(), &domain.User{ID: "user-1", Name: "owner"})
			},
			expectError: true,
			errorType:   domain.ErrInsufficientInitialDeposit,
		},
		{
			name: "reject unknown owner",
			input: usecase.CreateAccountInput{
				OwnerID:        "nobody",
				AccountNumber:  "ACC-0003",
				InitialDeposit: decimal.NewFromInt(600000),
			},
			setupMocks: func(accRepo *mocks.MockAccountRepository, userRepo *mocks.MockUserRepository, txnRepo *mocks.MockTransactionRepository) {
			},
			expectError: true,
			errorType:   domain.ErrOwnerNotFound,
		},
		{
			name: "repository error surfaces",
			input: usecase.CreateAccountInput{
				OwnerID:        "user-1",
				AccountNumber:  "ACC-0004",
				InitialDeposit: decimal.NewFromInt(500000),
			},
			setupMocks: func(accRepo *mocks.MockAccountRepository, userRepo *mocks.MockUserRepository, txnRepo *mocks.MockTransactionRepository) {
				userRepo.Create(context.Background(), &domain.User{ID: "user-1", Name: "owner"})
				accRepo.CreateTxFunc = func(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
					return errors.New("insert failed")
				}
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accRepo := mocks.NewMockAccountRepository()
			userRepo := mocks.NewMockUserRepository()
			txnRepo := mocks.NewMockTransactionRepository()
			txMgr := mocks.NewMockTransactionManager()
			idGen := mocks.NewMockIDGenerator()

			tt.setupMocks(accRepo, userRepo, txnRepo)

			uc := usecase.NewAccountUseCase(txMgr, accRepo, userRepo, txnRepo, idGen, nil)
			account, err := uc.CreateAccount(context.Background(), tt.input)

			if tt.expectError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errorType != nil && !errors.Is(err, tt.errorType) {
					t.Errorf("expected error %v, got %v", tt.errorType, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if account.Status != domain.AccountStatusActive {
				t.Errorf("expected ACTIVE status, got %s", account.Status)
			}
			if !account.Balance.Equal(tt.input.InitialDeposit) {
				t.Errorf("expected balance %s, got %s", tt.input.InitialDeposit, account.Balance)
			}
		})
	}
}

func TestAccountUseCase_CreateAccountRecordsOpeningDeposit(t *testing.T) {
	accRepo := mocks.NewMockAccountRepository()
	userRepo := mocks.NewMockUserRepository()
	txnRepo := mocks.NewMockTransactionRepository()
	txMgr := mocks.NewMockTransactionManager()
	idGen := mocks.NewMockIDGenerator()

	userRepo.Create(context.Background(), &domain.User{ID: "user-1", Name: "owner"})

	var recorded *domain.Transaction
	txnRepo.CreateFunc = func(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
		recorded = txn
		return nil
	}

	uc := usecase.NewAccountUseCase(txMgr, accRepo, userRepo, txnRepo, idGen, nil)
	account, err := uc.CreateAccount(context.Background(), usecase.CreateAccountInput{
		OwnerID:        "user-1",
		AccountNumber:  "ACC-0001",
		InitialDeposit: decimal.NewFromInt(750000),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if recorded == nil {
		t.Fatal("expected opening deposit entry, got none")
	}
	if recorded.Kind != domain.TransactionDeposit {
		t.Errorf("expected DEPOSIT kind, got %s", recorded.Kind)
	}
	if recorded.AccountID != account.ID {
		t.Errorf("expected entry for account %s, got %s", account.ID, recorded.AccountID)
	}
	if !recorded.Amount.Equal(decimal.NewFromInt(750000)) {
		t.Errorf("expected amount 750000, got %s", recorded.Amount)
	}
}

func TestAccountUseCase_Deposit(t *testing.T) {
	tests := []struct {
		name        string
		account     *domain.Account
		amount      decimal.Decimal
		wantBalance decimal.Decimal
		errorType   error
	}{
		{
			name:        "credit active account",
			account:     &domain.Account{ID: "acc-1", Balance: decimal.NewFromInt(500000), Status: domain.AccountStatusActive},
			amount:      decimal.NewFromInt(1000),
			wantBalance: decimal.NewFromInt(501000),
		},
		{
			name:      "reject non-positive amount",
			account:   &domain.Account{ID: "acc-1", Balance: decimal.NewFromInt(500000), Status: domain.AccountStatusActive},
			amount:    decimal.Zero,
			errorType: domain.ErrInvalidAmount,
		},
		{
			name:      "reject deleted account",
			account:   &domain.Account{ID: "acc-1", Balance: decimal.Zero, Status: domain.AccountStatusDeleted},
			amount:    decimal.NewFromInt(1000),
			errorType: domain.ErrAccountInactive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accRepo := mocks.NewMockAccountRepository()
			accRepo.Create(context.Background(), tt.account)
			txnRepo := mocks.NewMockTransactionRepository()

			uc := usecase.NewAccountUseCase(mocks.NewMockTransactionManager(), accRepo, mocks.NewMockUserRepository(), txnRepo, mocks.NewMockIDGenerator(), nil)
			account, err := uc.Deposit(context.Background(), tt.account.ID, tt.amount)

			if tt.errorType != nil {
				if !errors.Is(err, tt.errorType) {
					t.Fatalf("expected error %v, got %v", tt.errorType, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !account.Balance.Equal(tt.wantBalance) {
				t.Errorf("expected balance %s, got %s", tt.wantBalance, account.Balance)
			}
		})
	}
}

func TestAccountUseCase_Withdraw(t *testing.T) {
	tests := []struct {
		name        string
		balance     decimal.Decimal
		amount      decimal.Decimal
		wantBalance decimal.Decimal
		errorType   error
	}{
		{
			name:        "debit within balance",
			balance:     decimal.NewFromInt(500000),
			amount:      decimal.NewFromInt(200000),
			wantBalance: decimal.NewFromInt(300000),
		},
		{
			name:        "debit entire balance",
			balance:     decimal.NewFromInt(500000),
			amount:      decimal.NewFromInt(500000),
			wantBalance: decimal.Zero,
		},
		{
			name:      "reject overdraft",
			balance:   decimal.NewFromInt(100),
			amount:    decimal.NewFromInt(101),
			errorType: domain.ErrInsufficientFunds,
		},
		{
			name:      "reject negative amount",
			balance:   decimal.NewFromInt(100),
			amount:    decimal.NewFromInt(-5),
			errorType: domain.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accRepo := mocks.NewMockAccountRepository()
			accRepo.Create(context.Background(), &domain.Account{
				ID:      "acc-1",
				Balance: tt.balance,
				Status:  domain.AccountStatusActive,
			})

			uc := usecase.NewAccountUseCase(mocks.NewMockTransactionManager(), accRepo, mocks.NewMockUserRepository(), mocks.NewMockTransactionRepository(), mocks.NewMockIDGenerator(), nil)
			account, err := uc.Withdraw(context.Background(), "acc-1", tt.amount)

			if tt.errorType != nil {
				if !errors.Is(err, tt.errorType) {
					t.Fatalf("expected error %v, got %v", tt.errorType, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !account.Balance.Equal(tt.wantBalance) {
				t.Errorf("expected balance %s, got %s", tt.wantBalance, account.Balance)
			}
		})
	}
}

func TestAccountUseCase_UpdateAccountNumber(t *testing.T) {
	tests := []struct {
		name      string
		input     usecase.UpdateAccountNumberInput
		errorType error
	}{
		{
			name: "successful update",
			input: usecase.UpdateAccountNumberInput{
				AccountID:     "acc-1",
				AccountNumber: "ACC-9999",
				OwnerID:       "user-1",
			},
		},
		{
			name: "reject owner mismatch",
			input: usecase.UpdateAccountNumberInput{
				AccountID:     "acc-1",
				AccountNumber: "ACC-9999",
				OwnerID:       "someone-else",
			},
			errorType: domain.ErrInconsistentUpdate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accRepo := mocks.NewMockAccountRepository()
			accRepo.Create(context.Background(), &domain.Account{
				ID:            "acc-1",
				AccountNumber: "ACC-0001",
				OwnerID:       "user-1",
				Balance:       decimal.NewFromInt(500000),
				Status:        domain.AccountStatusActive,
			})

			uc := usecase.NewAccountUseCase(mocks.NewMockTransactionManager(), accRepo, mocks.NewMockUserRepository(), mocks.NewMockTransactionRepository(), mocks.NewMockIDGenerator(), nil)
			account, err := uc.UpdateAccountNumber(context.Background(), tt.input)

			if tt.errorType != nil {
				if !errors.Is(err, tt.errorType) {
					t.Fatalf("expected error %v, got %v", tt.errorType, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if account.AccountNumber != tt.input.AccountNumber {
				t.Errorf("expected account number %s, got %s", tt.input.AccountNumber, account.AccountNumber)
			}
		})
	}
}

func TestAccountUseCase_SoftDelete(t *testing.T) {
	accRepo := mocks.NewMockAccountRepository()
	accRepo.Create(context.Background(), &domain.Account{
		ID:      "acc-1",
		OwnerID: "user-1",
		Balance: decimal.NewFromInt(250000),
		Status:  domain.AccountStatusActive,
	})
	txnRepo := mocks.NewMockTransactionRepository()

	var closing *domain.Transaction
	txnRepo.CreateFunc = func(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
		closing = txn
		return nil
	}

	uc := usecase.NewAccountUseCase(mocks.NewMockTransactionManager(), accRepo, mocks.NewMockUserRepository(), txnRepo, mocks.NewMockIDGenerator(), nil)
	account, err := uc.SoftDelete(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if account.Status != domain.AccountStatusDeleted {
		t.Errorf("expected DELETED status, got %s", account.Status)
	}
	if !account.Balance.IsZero() {
		t.Errorf("expected zero balance, got %s", account.Balance)
	}
	if account.OwnerID != "" {
		t.Errorf("expected cleared owner, got %s", account.OwnerID)
	}
	if closing == nil {
		t.Fatal("expected closing withdrawal entry, got none")
	}
	if closing.Kind != domain.TransactionWithdrawal {
		t.Errorf("expected WITHDRAWAL kind, got %s", closing.Kind)
	}
	if !closing.Amount.Equal(decimal.NewFromInt(250000)) {
		t.Errorf("expected closing amount 250000, got %s", closing.Amount)
	}
}

func TestAccountUseCase_SoftDeleteZeroBalanceSkipsClosingEntry(t *testing.T) {
	accRepo := mocks.NewMockAccountRepository()
	accRepo.Create(context.Background(), &domain.Account{
		ID:     "acc-1",
		Status: domain.AccountStatusActive,
	})
	txnRepo := mocks.NewMockTransactionRepository()

	appended := 0
	txnRepo.CreateFunc = func(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
		appended++
		return nil
	}

	uc := usecase.NewAccountUseCase(mocks.NewMockTransactionManager(), accRepo, mocks.NewMockUserRepository(), txnRepo, mocks.NewMockIDGenerator(), nil)
	if _, err := uc.SoftDelete(context.Background(), "acc-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if appended != 0 {
		t.Errorf("expected no log entries for zero balance, got %d", appended)
	}
}

func TestAccountUseCase_SoftDeleteAlreadyDeleted(t *testing.T) {
	accRepo := mocks.NewMockAccountRepository()
	accRepo.Create(context.Background(), &domain.Account{
		ID:     "acc-1",
		Status: domain.AccountStatusDeleted,
	})

	uc := usecase.NewAccountUseCase(mocks.NewMockTransactionManager(), accRepo, mocks.NewMockUserRepository(), mocks.NewMockTransactionRepository(), mocks.NewMockIDGenerator(), nil)
	if _, err := uc.SoftDelete(context.Background(), "acc-1"); !errors.Is(err, domain.ErrAccountInactive) {
		t.Fatalf("expected ErrAccountInactive, got %v", err)
	}
}

func TestAccountUseCase_HardDelete(t *testing.T) {
	accRepo := mocks.NewMockAccountRepository()
	accRepo.Create(context.Background(), &domain.Account{
		ID:     "acc-1",
		Status: domain.AccountStatusActive,
	})

	uc := usecase.NewAccountUseCase(mocks.NewMockTransactionManager(), accRepo, mocks.NewMockUserRepository(), mocks.NewMockTransactionRepository(), mocks.NewMockIDGenerator(), nil)
	if err := uc.HardDelete(context.Background(), "acc-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := accRepo.GetByID(context.Background(), "acc-1"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("expected account gone, got %v", err)
	}
}

func TestAccountUseCase_HardDeleteUnknownAccount(t *testing.T) {
	uc := usecase.NewAccountUseCase(mocks.NewMockTransactionManager(), mocks.NewMockAccountRepository(), mocks.NewMockUserRepository(), mocks.NewMockTransactionRepository(), mocks.NewMockIDGenerator(), nil)
	if err := uc.HardDelete(context.Background(), "nope"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAccountUseCase_HardDeleteBoundedRetries(t *testing.T) {
	accRepo := mocks.NewMockAccountRepository()
	ghost := &domain.Account{ID: "acc-1", Status: domain.AccountStatusActive}

	deletes := 0
	accRepo.GetByIDFunc = func(ctx context.Context, id string) (*domain.Account, error) {
		// The record keeps reappearing on every re-read.
		return ghost, nil
	}
	accRepo.DeleteFunc = func(ctx context.Context, id string) error {
		deletes++
		return nil
	}

	uc := usecase.NewAccountUseCase(mocks.NewMockTransactionManager(), accRepo, mocks.NewMockUserRepository(), mocks.NewMockTransactionRepository(), mocks.NewMockIDGenerator(), nil)
	err := uc.HardDelete(context.Background(), "acc-1")
	if !errors.Is(err, domain.ErrInvariantViolation) {
		t.Fatalf("expected ErrInvariantViolation, got %v", err)
	}
	if deletes != usecase.HardDeleteRetries {
		t.Errorf("expected %d delete attempts, got %d", usecase.HardDeleteRetries, deletes)
	}
}

func TestAccountUseCase_ListAccountsDefaultLimit(t *testing.T) {
	accRepo := mocks.NewMockAccountRepository()

	var gotLimit int
	accRepo.ListFunc = func(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
		gotLimit = limit
		return nil, nil
	}

	uc := usecase.NewAccountUseCase(mocks.NewMockTransactionManager(), accRepo, mocks.NewMockUserRepository(), mocks.NewMockTransactionRepository(), mocks.NewMockIDGenerator(), nil)
	if _, err := uc.ListAccounts(context.Background(), usecase.ListAccountsInput{Limit: 0}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLimit != 20 {
		t.Errorf("expected default limit 20, got %d", gotLimit)
	}

	if _, err := uc.ListAccounts(context.Background(), usecase.ListAccountsInput{Limit: 500}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLimit != 100 {
		t.Errorf("expected capped limit 100, got %d", gotLimit)
	}
}

func TestAccountUseCase_CommitFailureSurfacesError(t *testing.T) {
	accRepo := mocks.NewMockAccountRepository()
	accRepo.Create(context.Background(), &domain.Account{
		ID:      "acc-1",
		Balance: decimal.NewFromInt(500000),
		Status:  domain.AccountStatusActive,
	})

	txMgr := mocks.NewMockTransactionManager()
	txMgr.BeginFunc = func(ctx context.Context) (usecase.Transaction, error) {
		return &mocks.MockTransaction{
			CommitFunc: func(ctx context.Context) error {
				return errors.New("commit failed")
			},
		}, nil
	}

	uc := usecase.NewAccountUseCase(txMgr, accRepo, mocks.NewMockUserRepository(), mocks.NewMockTransactionRepository(), mocks.NewMockIDGenerator(), nil)
	if _, err := uc.Deposit(context.Background(), "acc-1", decimal.NewFromInt(100)); err == nil {
		t.Fatal("expected commit error, got nil")
	}
}

func TestAccountUseCase_CheckBalance(t *testing.T) {
	accRepo := mocks.NewMockAccountRepository()
	accRepo.Create(context.Background(), &domain.Account{
		ID:        "acc-1",
		Balance:   decimal.NewFromInt(123456),
		Status:    domain.AccountStatusActive,
		UpdatedAt: time.Now().UTC(),
	})

	uc := usecase.NewAccountUseCase(mocks.NewMockTransactionManager(), accRepo, mocks.NewMockUserRepository(), mocks.NewMockTransactionRepository(), mocks.NewMockIDGenerator(), nil)
	account, err := uc.CheckBalance(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !account.Balance.Equal(decimal.NewFromInt(123456)) {
		t.Errorf("expected balance 123456, got %s", account.Balance)
	}
}
