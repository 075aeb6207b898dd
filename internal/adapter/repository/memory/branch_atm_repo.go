package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mcsoftware/atmledger/internal/domain"
	"github.com/mcsoftware/atmledger/internal/usecase"
)

// BranchRepository implements usecase.BranchRepository.
type BranchRepository struct {
	store *Store
}

// NewBranchRepository creates a new BranchRepository.
func NewBranchRepository(store *Store) *BranchRepository {
	return &BranchRepository{store: store}
}

// Create stages a branch insert on the transaction.
func (r *BranchRepository) Create(ctx context.Context, tx usecase.Transaction, branch *domain.Branch) error {
	mt, err := txFrom(tx)
	if err != nil {
		return err
	}
	cp := copyBranch(branch)
	mt.stage(func(s *Store) {
		s.branches[cp.ID] = cp
	})
	return nil
}

// GetByID returns a committed snapshot of the branch.
func (r *BranchRepository) GetByID(ctx context.Context, id string) (*domain.Branch, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	branch, ok := r.store.branches[id]
	if !ok {
		return nil, domain.ErrBranchNotFound
	}
	return copyBranch(branch), nil
}

// ListByBank lists a bank's branches ordered by ID.
func (r *BranchRepository) ListByBank(ctx context.Context, bankID string) ([]*domain.Branch, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []*domain.Branch
	for _, branch := range r.store.branches {
		if branch.BankID == bankID {
			out = append(out, copyBranch(branch))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ATMRepository implements usecase.ATMRepository.
type ATMRepository struct {
	store *Store
}

// NewATMRepository creates a new ATMRepository.
func NewATMRepository(store *Store) *ATMRepository {
	return &ATMRepository{store: store}
}

// Create stages an ATM insert on the transaction.
func (r *ATMRepository) Create(ctx context.Context, tx usecase.Transaction, atm *domain.ATM) error {
	mt, err := txFrom(tx)
	if err != nil {
		return err
	}
	cp := copyATM(atm)
	mt.stage(func(s *Store) {
		s.atms[cp.ID] = cp
	})
	return nil
}

// GetByID returns a committed snapshot of the ATM.
func (r *ATMRepository) GetByID(ctx context.Context, id string) (*domain.ATM, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	atm, ok := r.store.atms[id]
	if !ok {
		return nil, domain.ErrATMNotFound
	}
	return copyATM(atm), nil
}

// GetByIDForUpdate locks the ATM for the transaction.
func (r *ATMRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.ATM, error) {
	mt, err := txFrom(tx)
	if err != nil {
		return nil, err
	}
	if err := mt.acquire(id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// UpdateCashBalance stages a cash balance write.
func (r *ATMRepository) UpdateCashBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	mt, err := txFrom(tx)
	if err != nil {
		return err
	}
	mt.stage(func(s *Store) {
		if a, ok := s.atms[id]; ok {
			a.CashBalance = balance
			a.UpdatedAt = updatedAt
		}
	})
	return nil
}

// ListByBranch lists a branch's ATMs ordered by ID.
func (r *ATMRepository) ListByBranch(ctx context.Context, branchID string) ([]*domain.ATM, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []*domain.ATM
	for _, atm := range r.store.atms {
		if atm.BranchID == branchID {
			out = append(out, copyATM(atm))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
