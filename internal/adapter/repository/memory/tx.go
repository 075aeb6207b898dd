package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/mcsoftware/atmledger/internal/domain"
	"github.com/mcsoftware/atmledger/internal/usecase"
)

// TxManager implements usecase.TransactionManager for the in-process
// store.
type TxManager struct {
	store *Store
}

// NewTxManager creates a new TxManager.
func NewTxManager(store *Store) *TxManager {
	return &TxManager{store: store}
}

// Begin starts a new transaction.
func (m *TxManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	return &Tx{store: m.store}, nil
}

// Tx is a unit of work over the store. ForUpdate reads acquire the
// entity's write lock; the lock must be acquired in ascending ID
// order within one transaction, matching the order every caller uses,
// so opposing multi-entity operations cannot deadlock. Writes are
// staged and applied together at commit; until then no reader can see
// them. Staged writes are not visible to reads within the same
// transaction.
type Tx struct {
	store *Store

	mu       sync.Mutex
	heldIDs  []string
	held     []*sync.Mutex
	staged   []func(s *Store)
	finished bool
}

// acquire takes the write lock for id. Out-of-order acquisition is a
// caller bug that could deadlock against the canonical order, so it
// is rejected instead of honored.
func (t *Tx) acquire(id string) error {
	t.mu.Lock()
	if t.finished {
		t.mu.Unlock()
		return domain.ErrConcurrencyConflict
	}
	if n := len(t.heldIDs); n > 0 && t.heldIDs[n-1] >= id {
		if t.holds(id) {
			t.mu.Unlock()
			return nil
		}
		t.mu.Unlock()
		return fmt.Errorf("%w: lock %q requested after %q", domain.ErrConcurrencyConflict, id, t.heldIDs[len(t.heldIDs)-1])
	}
	t.mu.Unlock()

	l := t.store.entityLock(id)
	l.Lock()

	t.mu.Lock()
	t.heldIDs = append(t.heldIDs, id)
	t.held = append(t.held, l)
	t.mu.Unlock()

	return nil
}

func (t *Tx) holds(id string) bool {
	for _, held := range t.heldIDs {
		if held == id {
			return true
		}
	}
	return false
}

// stage queues a write to run at commit.
func (t *Tx) stage(fn func(s *Store)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.staged = append(t.staged, fn)
}

// Commit applies all staged writes as one unit, then releases the
// entity locks.
func (t *Tx) Commit(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.finished {
		return domain.ErrConcurrencyConflict
	}
	t.finished = true

	t.store.mu.Lock()
	for _, fn := range t.staged {
		fn(t.store)
	}
	t.store.mu.Unlock()

	t.release()
	return nil
}

// Rollback discards staged writes and releases the entity locks. It
// is a no-op after Commit.
func (t *Tx) Rollback(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.finished {
		return nil
	}
	t.finished = true
	t.staged = nil

	t.release()
	return nil
}

func (t *Tx) release() {
	for i := len(t.held) - 1; i >= 0; i-- {
		t.held[i].Unlock()
	}
	t.held = nil
	t.heldIDs = nil
}

// txFrom asserts the usecase transaction back to a memory Tx.
func txFrom(tx usecase.Transaction) (*Tx, error) {
	mt, ok := tx.(*Tx)
	if !ok || mt == nil {
		return nil, fmt.Errorf("%w: not a memory transaction", domain.ErrConcurrencyConflict)
	}
	return mt, nil
}
