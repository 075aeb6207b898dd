package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mcsoftware/atmledger/internal/domain"
	"github.com/mcsoftware/atmledger/internal/infrastructure/metrics"
)

// AccountUseCase owns account balance state: creation, deposits,
// withdrawals and deletion. Every balance mutation commits together
// with its transaction log entry.
type AccountUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	userRepo    UserRepository
	txnRepo     TransactionRepository
	idGen       IDGenerator
	metrics     *metrics.Metrics
}

// NewAccountUseCase creates a new AccountUseCase. metrics may be nil.
func NewAccountUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	userRepo UserRepository,
	txnRepo TransactionRepository,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *AccountUseCase {
	return &AccountUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		userRepo:    userRepo,
		txnRepo:     txnRepo,
		idGen:       idGen,
		metrics:     metrics,
	}
}

// CreateAccountInput represents input for opening an account.
type CreateAccountInput struct {
	OwnerID        string
	AccountNumber  string
	InitialDeposit decimal.Decimal
}

// CreateAccount opens an account with an initial deposit. The deposit
// must meet the minimum opening threshold and the owner must exist.
// The opening amount is recorded as the account's first DEPOSIT entry.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	if err := domain.CheckMinimumDeposit(input.InitialDeposit); err != nil {
		return nil, err
	}

	if _, err := uc.userRepo.GetByID(ctx, input.OwnerID); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrOwnerNotFound, input.OwnerID)
	}

	now := time.Now().UTC()

	account := &domain.Account{
		ID:            uc.idGen.Generate(),
		AccountNumber: input.AccountNumber,
		OwnerID:       input.OwnerID,
		Balance:       input.InitialDeposit,
		Status:        domain.AccountStatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.accountRepo.CreateTx(ctx, tx, account); err != nil {
		return nil, err
	}

	opening := &domain.Transaction{
		ID:        uc.idGen.Generate(),
		AccountID: account.ID,
		Kind:      domain.TransactionDeposit,
		Amount:    input.InitialDeposit,
		CreatedAt: now,
	}

	if err := uc.txnRepo.Create(ctx, tx, opening); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.AccountsCreated.Inc()
	}

	return account, nil
}

// Deposit credits an active account and appends a DEPOSIT entry.
func (uc *AccountUseCase) Deposit(ctx context.Context, accountID string, amount decimal.Decimal) (*domain.Account, error) {
	return uc.mutateBalance(ctx, accountID, amount, domain.TransactionDeposit)
}

// Withdraw debits an active account and appends a WITHDRAWAL entry.
// The balance may never go negative.
func (uc *AccountUseCase) Withdraw(ctx context.Context, accountID string, amount decimal.Decimal) (*domain.Account, error) {
	return uc.mutateBalance(ctx, accountID, amount, domain.TransactionWithdrawal)
}

func (uc *AccountUseCase) mutateBalance(ctx context.Context, accountID string, amount decimal.Decimal, kind domain.TransactionKind) (*domain.Account, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, accountID)
	if err != nil {
		return nil, err
	}

	var newBalance decimal.Decimal
	switch kind {
	case domain.TransactionDeposit:
		if err := account.ValidateDeposit(amount); err != nil {
			return nil, err
		}
		newBalance = account.ApplyCredit(amount)
	case domain.TransactionWithdrawal:
		if err := account.ValidateWithdrawal(amount); err != nil {
			return nil, err
		}
		newBalance = account.ApplyDebit(amount)
	default:
		return nil, domain.ErrInvalidTransactionKind
	}

	now := time.Now().UTC()

	txn := &domain.Transaction{
		ID:        uc.idGen.Generate(),
		AccountID: account.ID,
		Kind:      kind,
		Amount:    amount,
		CreatedAt: now,
	}

	if err := uc.txnRepo.Create(ctx, tx, txn); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.UpdateBalance(ctx, tx, account.ID, newBalance, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	account.Balance = newBalance
	account.UpdatedAt = now

	if uc.metrics != nil {
		uc.metrics.AccountOperations.WithLabelValues(string(kind)).Inc()
	}

	return account, nil
}

// CheckBalance returns a consistent snapshot of the account.
func (uc *AccountUseCase) CheckBalance(ctx context.Context, accountID string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, accountID)
}

// UpdateAccountNumberInput represents an account-number change request.
type UpdateAccountNumberInput struct {
	AccountID     string
	AccountNumber string
	OwnerID       string
}

// UpdateAccountNumber changes the account number after verifying the
// request targets the account it claims to: the owner in the request
// must match the stored record, and the persisted result is re-checked
// against the request.
func (uc *AccountUseCase) UpdateAccountNumber(ctx context.Context, input UpdateAccountNumberInput) (*domain.Account, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, input.AccountID)
	if err != nil {
		return nil, err
	}

	if account.OwnerID != input.OwnerID {
		return nil, fmt.Errorf("%w: owner %s", domain.ErrInconsistentUpdate, input.OwnerID)
	}

	now := time.Now().UTC()

	if err := uc.accountRepo.UpdateAccountNumber(ctx, tx, account.ID, input.AccountNumber, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	account.AccountNumber = input.AccountNumber
	account.UpdatedAt = now

	if err := domain.CheckRequestConsistency(account, input.AccountNumber, input.OwnerID); err != nil {
		return nil, err
	}

	return account, nil
}

// SoftDelete closes an account: any residual balance is recorded as a
// closing WITHDRAWAL entry, the balance is zeroed, the owner link is
// cleared and the status becomes DELETED. The transaction history is
// retained; it is the audit trail.
func (uc *AccountUseCase) SoftDelete(ctx context.Context, accountID string) (*domain.Account, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, accountID)
	if err != nil {
		return nil, err
	}

	if !account.IsActive() {
		return nil, domain.ErrAccountInactive
	}

	now := time.Now().UTC()

	if account.Balance.IsPositive() {
		closing := &domain.Transaction{
			ID:        uc.idGen.Generate(),
			AccountID: account.ID,
			Kind:      domain.TransactionWithdrawal,
			Amount:    account.Balance,
			CreatedAt: now,
		}

		if err := uc.txnRepo.Create(ctx, tx, closing); err != nil {
			return nil, err
		}
	}

	if err := uc.accountRepo.MarkDeleted(ctx, tx, account.ID, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	account.Balance = decimal.Zero
	account.OwnerID = ""
	account.Status = domain.AccountStatusDeleted
	account.UpdatedAt = now

	if uc.metrics != nil {
		uc.metrics.AccountsDeleted.WithLabelValues("soft").Inc()
	}

	return account, nil
}

// HardDelete physically removes an account record and verifies the
// post-condition by re-reading: a record that is still present after a
// bounded number of attempts is an invariant violation, not a reason
// to retry forever.
func (uc *AccountUseCase) HardDelete(ctx context.Context, accountID string) error {
	if _, err := uc.accountRepo.GetByID(ctx, accountID); err != nil {
		return err
	}

	for attempt := 0; attempt < HardDeleteRetries; attempt++ {
		if err := uc.accountRepo.Delete(ctx, accountID); err != nil {
			return err
		}

		_, err := uc.accountRepo.GetByID(ctx, accountID)
		if errors.Is(err, domain.ErrAccountNotFound) {
			if uc.metrics != nil {
				uc.metrics.AccountsDeleted.WithLabelValues("hard").Inc()
			}
			return nil
		}
		if err != nil {
			return err
		}
	}

	return fmt.Errorf("%w: account %s still present after delete", domain.ErrInvariantViolation, accountID)
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Limit  int
	Offset int
}

// ListAccounts lists accounts with pagination.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}
	if input.Limit > 100 {
		input.Limit = 100
	}
	return uc.accountRepo.List(ctx, input.Limit, input.Offset)
}
