package memory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mcsoftware/atmledger/internal/domain"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	store *Store
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(store *Store) *LedgerRepository {
	return &LedgerRepository{store: store}
}

// CheckConsistency recomputes each account's balance from its log
// entries and compares it with the stored balance. Because commits
// apply atomically under the store lock, the audit sees a consistent
// snapshot even while operations run concurrently.
func (r *LedgerRepository) CheckConsistency(ctx context.Context) (*domain.ConsistencyReport, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	report := &domain.ConsistencyReport{Consistent: true}

	for id, account := range r.store.accounts {
		computed := decimal.Zero
		for _, txnID := range r.store.txnsByAccount[id] {
			computed = computed.Add(r.store.txns[txnID].Signed())
		}

		if !computed.Equal(account.Balance) || account.Balance.IsNegative() {
			report.Consistent = false
			report.Violations = append(report.Violations, domain.ConsistencyViolation{
				AccountID:       id,
				StoredBalance:   account.Balance,
				ComputedBalance: computed,
			})
		}

		report.AccountsChecked++
	}

	return report, nil
}
