package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mcsoftware/atmledger/internal/domain"
)

// TransactionUseCase serves read access to the append-only
// transaction log.
type TransactionUseCase struct {
	txnRepo TransactionRepository
	cache   Cache
}

// NewTransactionUseCase creates a new TransactionUseCase. cache may be
// nil; log entries are immutable, so cached reads never go stale.
func NewTransactionUseCase(txnRepo TransactionRepository, cache Cache) *TransactionUseCase {
	return &TransactionUseCase{txnRepo: txnRepo, cache: cache}
}

// ListByAccountInput represents input for listing an account's
// history.
type ListByAccountInput struct {
	AccountID string
	Limit     int
	Offset    int
}

// ListByAccount lists an account's log entries in append order. The
// history survives soft deletion of the account.
func (uc *TransactionUseCase) ListByAccount(ctx context.Context, input ListByAccountInput) ([]*domain.Transaction, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}
	if input.Limit > 100 {
		input.Limit = 100
	}
	return uc.txnRepo.ListByAccount(ctx, input.AccountID, input.Limit, input.Offset)
}

// GetByID retrieves a single log entry, serving repeated lookups from
// the cache when one is configured.
func (uc *TransactionUseCase) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, "txn:"+id); err == nil {
			var txn domain.Transaction
			if err := json.Unmarshal([]byte(cached), &txn); err == nil {
				return &txn, nil
			}
		}
	}

	txn, err := uc.txnRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if encoded, err := json.Marshal(txn); err == nil {
			// Cache failures only cost the next lookup a repo read.
			_ = uc.cache.Set(ctx, "txn:"+id, string(encoded), time.Hour)
		}
	}

	return txn, nil
}
