package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mcsoftware/atmledger/internal/domain"
	"github.com/mcsoftware/atmledger/internal/usecase"
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	store *Store
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(store *Store) *AccountRepository {
	return &AccountRepository{store: store}
}

// Create inserts a new account outside any transaction.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.accounts[account.ID] = copyAccount(account)
	return nil
}

// CreateTx stages an account insert on the transaction.
func (r *AccountRepository) CreateTx(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	mt, err := txFrom(tx)
	if err != nil {
		return err
	}
	cp := copyAccount(account)
	mt.stage(func(s *Store) {
		s.accounts[cp.ID] = cp
	})
	return nil
}

// GetByID returns a committed snapshot of the account.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	account, ok := r.store.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return copyAccount(account), nil
}

// GetByIDForUpdate locks the account for the transaction and returns
// its committed state.
func (r *AccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	mt, err := txFrom(tx)
	if err != nil {
		return nil, err
	}

	if err := mt.acquire(id); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

// GetByIDsForUpdate locks each account in ascending ID order. Unknown
// IDs are skipped; callers compare lengths, as the row-lock backends
// do.
func (r *AccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error) {
	mt, err := txFrom(tx)
	if err != nil {
		return nil, err
	}

	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)

	var accounts []*domain.Account
	for _, id := range sorted {
		if err := mt.acquire(id); err != nil {
			return nil, err
		}

		account, err := r.GetByID(ctx, id)
		if err == nil {
			accounts = append(accounts, account)
		}
	}
	return accounts, nil
}

// UpdateBalance stages a balance write for the locked account.
func (r *AccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	mt, err := txFrom(tx)
	if err != nil {
		return err
	}
	mt.stage(func(s *Store) {
		if a, ok := s.accounts[id]; ok {
			a.Balance = balance
			a.UpdatedAt = updatedAt
		}
	})
	return nil
}

// UpdateAccountNumber stages an account-number write.
func (r *AccountRepository) UpdateAccountNumber(ctx context.Context, tx usecase.Transaction, id, accountNumber string, updatedAt time.Time) error {
	mt, err := txFrom(tx)
	if err != nil {
		return err
	}
	mt.stage(func(s *Store) {
		if a, ok := s.accounts[id]; ok {
			a.AccountNumber = accountNumber
			a.UpdatedAt = updatedAt
		}
	})
	return nil
}

// MarkDeleted stages the soft-delete write: balance zeroed, owner
// cleared, status DELETED. The transaction log is left alone.
func (r *AccountRepository) MarkDeleted(ctx context.Context, tx usecase.Transaction, id string, updatedAt time.Time) error {
	mt, err := txFrom(tx)
	if err != nil {
		return err
	}
	mt.stage(func(s *Store) {
		if a, ok := s.accounts[id]; ok {
			a.Balance = decimal.Zero
			a.OwnerID = ""
			a.Status = domain.AccountStatusDeleted
			a.UpdatedAt = updatedAt
		}
	})
	return nil
}

// Delete physically removes the account record. The account's entity
// lock is taken first, so a delete waits for any in-flight mutation
// holding that lock, matching the row-lock behavior of the SQL driver.
func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	l := r.store.entityLock(id)
	l.Lock()
	defer l.Unlock()

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.accounts[id]; !ok {
		return domain.ErrAccountNotFound
	}
	delete(r.store.accounts, id)
	return nil
}

// List returns committed account snapshots ordered by ID.
func (r *AccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	ids := make([]string, 0, len(r.store.accounts))
	for id := range r.store.accounts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var out []*domain.Account
	for i := offset; i < len(ids) && len(out) < limit; i++ {
		out = append(out, copyAccount(r.store.accounts[ids[i]]))
	}
	return out, nil
}
