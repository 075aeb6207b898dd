package memory

import (
	"context"

	"github.com/mcsoftware/atmledger/internal/domain"
	"github.com/mcsoftware/atmledger/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository over
// the append-only log. There is no update or delete path; entries for
// soft-deleted accounts stay in place.
type TransactionRepository struct {
	store *Store
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(store *Store) *TransactionRepository {
	return &TransactionRepository{store: store}
}

// Create stages an append on the transaction. Per-account order is
// the commit order of the writing transactions.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	if err := txn.Validate(); err != nil {
		return err
	}

	mt, err := txFrom(tx)
	if err != nil {
		return err
	}
	cp := copyTransaction(txn)
	mt.stage(func(s *Store) {
		s.txns[cp.ID] = cp
		s.txnsByAccount[cp.AccountID] = append(s.txnsByAccount[cp.AccountID], cp.ID)
	})
	return nil
}

// GetByID returns a log entry.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	txn, ok := r.store.txns[id]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	return copyTransaction(txn), nil
}

// ListByAccount returns an account's entries in append order.
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	ids := r.store.txnsByAccount[accountID]

	var out []*domain.Transaction
	for i := offset; i < len(ids) && len(out) < limit; i++ {
		out = append(out, copyTransaction(r.store.txns[ids[i]]))
	}
	return out, nil
}
