package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mcsoftware/atmledger/internal/domain"
	"github.com/mcsoftware/atmledger/internal/infrastructure/metrics"
)

// TransferUseCase orchestrates atomic two-account transfers and
// bank-ATM cash movements. Every touched entity is locked in ascending
// ID order before any of them is mutated, so a concurrent reverse
// transfer cannot deadlock, and the debit, credit and both log entries
// commit as one unit.
type TransferUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	bankRepo    BankRepository
	branchRepo  BranchRepository
	atmRepo     ATMRepository
	txnRepo     TransactionRepository
	idGen       IDGenerator
	metrics     *metrics.Metrics
}

// NewTransferUseCase creates a new TransferUseCase. metrics may be nil.
func NewTransferUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	bankRepo BankRepository,
	branchRepo BranchRepository,
	atmRepo ATMRepository,
	txnRepo TransactionRepository,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *TransferUseCase {
	return &TransferUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		bankRepo:    bankRepo,
		branchRepo:  branchRepo,
		atmRepo:     atmRepo,
		txnRepo:     txnRepo,
		idGen:       idGen,
		metrics:     metrics,
	}
}

// TransferInput represents input for an account-to-account transfer.
type TransferInput struct {
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
}

// TransferResult holds both post-transfer account states.
type TransferResult struct {
	From *domain.Account
	To   *domain.Account
	Out  *domain.Transaction
	In   *domain.Transaction
}

// Transfer moves amount between two accounts. On success the sum of
// the two balances is unchanged; on any failure neither balance moves
// and nothing is appended to the log.
func (uc *TransferUseCase) Transfer(ctx context.Context, input TransferInput) (*TransferResult, error) {
	if input.FromAccountID == input.ToAccountID {
		return nil, domain.ErrSameAccountTransfer
	}
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	start := time.Now()

	// Lock both accounts in ascending ID order.
	ids := []string{input.FromAccountID, input.ToAccountID}
	sort.Strings(ids)

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	accounts, err := uc.accountRepo.GetByIDsForUpdate(ctx, tx, ids)
	if err != nil {
		return nil, err
	}
	if len(accounts) != len(ids) {
		return nil, domain.ErrAccountNotFound
	}

	var from, to *domain.Account
	for _, a := range accounts {
		switch a.ID {
		case input.FromAccountID:
			from = a
		case input.ToAccountID:
			to = a
		}
	}
	if from == nil || to == nil {
		return nil, domain.ErrAccountNotFound
	}

	if err := from.ValidateWithdrawal(input.Amount); err != nil {
		return nil, err
	}
	if err := to.ValidateDeposit(input.Amount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	out := &domain.Transaction{
		ID:             uc.idGen.Generate(),
		AccountID:      from.ID,
		CounterpartyID: to.ID,
		Kind:           domain.TransactionTransferOut,
		Amount:         input.Amount,
		CreatedAt:      now,
	}
	in := &domain.Transaction{
		ID:             uc.idGen.Generate(),
		AccountID:      to.ID,
		CounterpartyID: from.ID,
		Kind:           domain.TransactionTransferIn,
		Amount:         input.Amount,
		CreatedAt:      now,
	}

	if err := uc.txnRepo.Create(ctx, tx, out); err != nil {
		return nil, err
	}
	if err := uc.txnRepo.Create(ctx, tx, in); err != nil {
		return nil, err
	}

	fromBalance := from.ApplyDebit(input.Amount)
	toBalance := to.ApplyCredit(input.Amount)

	if err := uc.accountRepo.UpdateBalance(ctx, tx, from.ID, fromBalance, now); err != nil {
		return nil, err
	}
	if err := uc.accountRepo.UpdateBalance(ctx, tx, to.ID, toBalance, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	from.Balance = fromBalance
	from.UpdatedAt = now
	to.Balance = toBalance
	to.UpdatedAt = now

	if uc.metrics != nil {
		uc.metrics.TransfersCompleted.Inc()
		uc.metrics.TransferDuration.Observe(time.Since(start).Seconds())
		uc.metrics.TransferAmount.Observe(input.Amount.InexactFloat64())
	}

	return &TransferResult{From: from, To: to, Out: out, In: in}, nil
}

// ATMMovementInput represents a cash movement between a bank's central
// repository and one of its ATMs.
type ATMMovementInput struct {
	BankID string
	ATMID  string
	Amount decimal.Decimal
}

// DepositToATM moves cash from the bank's repository into an ATM.
func (uc *TransferUseCase) DepositToATM(ctx context.Context, input ATMMovementInput) (*domain.Bank, error) {
	return uc.moveCash(ctx, input, true)
}

// WithdrawFromATM moves cash from an ATM back into the bank's
// repository.
func (uc *TransferUseCase) WithdrawFromATM(ctx context.Context, input ATMMovementInput) (*domain.Bank, error) {
	return uc.moveCash(ctx, input, false)
}

func (uc *TransferUseCase) moveCash(ctx context.Context, input ATMMovementInput, toATM bool) (*domain.Bank, error) {
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Same canonical lock order as transfers: ascending entity ID.
	var (
		bank *domain.Bank
		atm  *domain.ATM
	)
	if input.BankID < input.ATMID {
		if bank, err = uc.bankRepo.GetByIDForUpdate(ctx, tx, input.BankID); err != nil {
			return nil, err
		}
		if atm, err = uc.atmRepo.GetByIDForUpdate(ctx, tx, input.ATMID); err != nil {
			return nil, err
		}
	} else {
		if atm, err = uc.atmRepo.GetByIDForUpdate(ctx, tx, input.ATMID); err != nil {
			return nil, err
		}
		if bank, err = uc.bankRepo.GetByIDForUpdate(ctx, tx, input.BankID); err != nil {
			return nil, err
		}
	}

	// Branch ownership is immutable after provisioning, so an
	// unlocked read is enough to pin the ATM to its bank.
	branch, err := uc.branchRepo.GetByID(ctx, atm.BranchID)
	if err != nil {
		return nil, err
	}
	if branch.BankID != bank.ID {
		return nil, domain.ErrATMNotFound
	}

	var bankBalance, atmBalance decimal.Decimal
	if toATM {
		if err := bank.ValidateRepositoryDebit(input.Amount); err != nil {
			return nil, err
		}
		bankBalance = bank.RepositoryBalance.Sub(input.Amount)
		atmBalance = atm.CashBalance.Add(input.Amount)
	} else {
		if err := atm.ValidateCashDebit(input.Amount); err != nil {
			return nil, err
		}
		bankBalance = bank.RepositoryBalance.Add(input.Amount)
		atmBalance = atm.CashBalance.Sub(input.Amount)
	}

	now := time.Now().UTC()

	if err := uc.bankRepo.UpdateRepositoryBalance(ctx, tx, bank.ID, bankBalance, now); err != nil {
		return nil, err
	}
	if err := uc.atmRepo.UpdateCashBalance(ctx, tx, atm.ID, atmBalance, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	bank.RepositoryBalance = bankBalance
	bank.UpdatedAt = now

	if uc.metrics != nil {
		direction := "to_repository"
		if toATM {
			direction = "to_atm"
		}
		uc.metrics.CashMovements.WithLabelValues(direction).Inc()
		uc.metrics.CashMoved.WithLabelValues(direction).Add(input.Amount.InexactFloat64())
	}

	return bank, nil
}
