package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mcsoftware/atmledger/internal/domain"
)

// BankUseCase owns bank cash repositories and member rosters, and
// provisions branches with their ATMs.
type BankUseCase struct {
	txManager   TransactionManager
	bankRepo    BankRepository
	branchRepo  BranchRepository
	atmRepo     ATMRepository
	accountRepo AccountRepository
	idGen       IDGenerator
}

// NewBankUseCase creates a new BankUseCase.
func NewBankUseCase(
	txManager TransactionManager,
	bankRepo BankRepository,
	branchRepo BranchRepository,
	atmRepo ATMRepository,
	accountRepo AccountRepository,
	idGen IDGenerator,
) *BankUseCase {
	return &BankUseCase{
		txManager:   txManager,
		bankRepo:    bankRepo,
		branchRepo:  branchRepo,
		atmRepo:     atmRepo,
		accountRepo: accountRepo,
		idGen:       idGen,
	}
}

// CreateBankInput represents input for founding a bank.
type CreateBankInput struct {
	Name              string
	AccountIDs        []string
	RepositoryBalance decimal.Decimal
}

// CreateBank founds a bank with an initial roster. The roster must
// hold 5 to 20 accounts; anything outside that bound is rejected, not
// truncated. Every roster account must exist and be active, verified
// under the accounts' locks so none can be closed before the bank is
// persisted.
func (uc *BankUseCase) CreateBank(ctx context.Context, input CreateBankInput) (*domain.Bank, error) {
	if err := domain.CheckBankSize(len(input.AccountIDs)); err != nil {
		return nil, err
	}

	if input.RepositoryBalance.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	accounts, err := uc.accountRepo.GetByIDsForUpdate(ctx, tx, input.AccountIDs)
	if err != nil {
		return nil, err
	}
	if len(accounts) != len(input.AccountIDs) {
		return nil, domain.ErrAccountNotFound
	}
	for _, account := range accounts {
		if !account.IsActive() {
			return nil, fmt.Errorf("%w: %s", domain.ErrAccountInactive, account.ID)
		}
	}

	now := time.Now().UTC()

	bank := &domain.Bank{
		ID:                uc.idGen.Generate(),
		Name:              input.Name,
		AccountIDs:        append([]string(nil), input.AccountIDs...),
		RepositoryBalance: input.RepositoryBalance,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := uc.bankRepo.Create(ctx, bank); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return bank, nil
}

// AddAccounts appends accounts to a bank roster. An empty set is
// rejected, and the roster may not grow past the maximum bound.
func (uc *BankUseCase) AddAccounts(ctx context.Context, bankID string, accountIDs []string) ([]string, error) {
	if len(accountIDs) == 0 {
		return nil, domain.ErrEmptyAccountSet
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// The bank and the candidate accounts are locked together, in
	// ascending ID order, so a roster account cannot be closed between
	// its liveness check and the roster commit.
	ids := append([]string{bankID}, accountIDs...)
	sort.Strings(ids)

	var bank *domain.Bank
	for _, id := range ids {
		if id == bankID {
			if bank, err = uc.bankRepo.GetByIDForUpdate(ctx, tx, id); err != nil {
				return nil, err
			}
			continue
		}

		account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		if !account.IsActive() {
			return nil, fmt.Errorf("%w: %s", domain.ErrAccountInactive, id)
		}
	}

	roster := append([]string(nil), bank.AccountIDs...)
	for _, id := range accountIDs {
		if bank.HasAccount(id) {
			continue
		}
		roster = append(roster, id)
	}

	if len(roster) > domain.MaxBankAccounts {
		return nil, fmt.Errorf("%w: roster would grow to %d", domain.ErrBankTooLarge, len(roster))
	}

	now := time.Now().UTC()

	if err := uc.bankRepo.SetAccountIDs(ctx, tx, bank.ID, roster, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return roster, nil
}

// ProvisionBranchInput represents input for opening a branch with its
// ATMs.
type ProvisionBranchInput struct {
	BankID   string
	Name     string
	ATMCount int
}

// ProvisionBranch opens a branch under a bank and installs its ATMs
// with zero cash. Cash reaches ATMs only through repository transfers.
func (uc *BankUseCase) ProvisionBranch(ctx context.Context, input ProvisionBranchInput) (*domain.Branch, error) {
	if input.ATMCount < 0 {
		return nil, domain.ErrInvalidAmount
	}

	if _, err := uc.bankRepo.GetByID(ctx, input.BankID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	branch := &domain.Branch{
		ID:        uc.idGen.Generate(),
		BankID:    input.BankID,
		Name:      input.Name,
		CreatedAt: now,
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	for i := 0; i < input.ATMCount; i++ {
		atm := &domain.ATM{
			ID:          uc.idGen.Generate(),
			BranchID:    branch.ID,
			CashBalance: decimal.Zero,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		branch.ATMIDs = append(branch.ATMIDs, atm.ID)

		if err := uc.atmRepo.Create(ctx, tx, atm); err != nil {
			return nil, err
		}
	}

	if err := uc.branchRepo.Create(ctx, tx, branch); err != nil {
		return nil, err
	}

	if err := uc.bankRepo.AddBranch(ctx, tx, input.BankID, branch.ID, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return branch, nil
}

// GetBank retrieves a bank by ID.
func (uc *BankUseCase) GetBank(ctx context.Context, id string) (*domain.Bank, error) {
	return uc.bankRepo.GetByID(ctx, id)
}

// ListBranches lists a bank's branches.
func (uc *BankUseCase) ListBranches(ctx context.Context, bankID string) ([]*domain.Branch, error) {
	if _, err := uc.bankRepo.GetByID(ctx, bankID); err != nil {
		return nil, err
	}
	return uc.branchRepo.ListByBank(ctx, bankID)
}

// ListATMs lists a branch's ATMs.
func (uc *BankUseCase) ListATMs(ctx context.Context, branchID string) ([]*domain.ATM, error) {
	if _, err := uc.branchRepo.GetByID(ctx, branchID); err != nil {
		return nil, err
	}
	return uc.atmRepo.ListByBranch(ctx, branchID)
}

