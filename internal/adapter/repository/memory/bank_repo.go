package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mcsoftware/atmledger/internal/domain"
	"github.com/mcsoftware/atmledger/internal/usecase"
)

// BankRepository implements usecase.BankRepository.
type BankRepository struct {
	store *Store
}

// NewBankRepository creates a new BankRepository.
func NewBankRepository(store *Store) *BankRepository {
	return &BankRepository{store: store}
}

// Create inserts a new bank.
func (r *BankRepository) Create(ctx context.Context, bank *domain.Bank) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.banks[bank.ID] = copyBank(bank)
	return nil
}

// GetByID returns a committed snapshot of the bank.
func (r *BankRepository) GetByID(ctx context.Context, id string) (*domain.Bank, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	bank, ok := r.store.banks[id]
	if !ok {
		return nil, domain.ErrBankNotFound
	}
	return copyBank(bank), nil
}

// GetByIDForUpdate locks the bank for the transaction.
func (r *BankRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Bank, error) {
	mt, err := txFrom(tx)
	if err != nil {
		return nil, err
	}
	if err := mt.acquire(id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// UpdateRepositoryBalance stages a cash-repository balance write.
func (r *BankRepository) UpdateRepositoryBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	mt, err := txFrom(tx)
	if err != nil {
		return err
	}
	mt.stage(func(s *Store) {
		if b, ok := s.banks[id]; ok {
			b.RepositoryBalance = balance
			b.UpdatedAt = updatedAt
		}
	})
	return nil
}

// SetAccountIDs stages a roster replacement.
func (r *BankRepository) SetAccountIDs(ctx context.Context, tx usecase.Transaction, id string, accountIDs []string, updatedAt time.Time) error {
	mt, err := txFrom(tx)
	if err != nil {
		return err
	}
	roster := append([]string(nil), accountIDs...)
	mt.stage(func(s *Store) {
		if b, ok := s.banks[id]; ok {
			b.AccountIDs = roster
			b.UpdatedAt = updatedAt
		}
	})
	return nil
}

// AddBranch stages appending a branch to the bank.
func (r *BankRepository) AddBranch(ctx context.Context, tx usecase.Transaction, bankID, branchID string, updatedAt time.Time) error {
	mt, err := txFrom(tx)
	if err != nil {
		return err
	}
	mt.stage(func(s *Store) {
		if b, ok := s.banks[bankID]; ok {
			b.BranchIDs = append(b.BranchIDs, branchID)
			b.UpdatedAt = updatedAt
		}
	})
	return nil
}

// List returns committed bank snapshots ordered by ID.
func (r *BankRepository) List(ctx context.Context, limit, offset int) ([]*domain.Bank, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	ids := make([]string, 0, len(r.store.banks))
	for id := range r.store.banks {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var out []*domain.Bank
	for i := offset; i < len(ids) && len(out) < limit; i++ {
		out = append(out, copyBank(r.store.banks[ids[i]]))
	}
	return out, nil
}
