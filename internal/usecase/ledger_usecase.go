package usecase

import (
	"context"
	"errors"

	"github.com/mcsoftware/atmledger/internal/domain"
	"github.com/mcsoftware/atmledger/internal/infrastructure/metrics"
)

// ErrInconsistentLedger is returned when any stored balance disagrees
// with the balance recomputed from the transaction log.
var ErrInconsistentLedger = errors.New("ledger is inconsistent: stored balances do not match transaction log")

// LedgerUseCase handles ledger-wide audit operations.
type LedgerUseCase struct {
	ledgerRepo LedgerRepository
	metrics    *metrics.Metrics
}

// NewLedgerUseCase creates a new LedgerUseCase. metrics may be nil.
func NewLedgerUseCase(ledgerRepo LedgerRepository, metrics *metrics.Metrics) *LedgerUseCase {
	return &LedgerUseCase{ledgerRepo: ledgerRepo, metrics: metrics}
}

// CheckConsistency audits the whole ledger: each account's stored
// balance must equal the sum of its signed log entries and be
// non-negative.
func (uc *LedgerUseCase) CheckConsistency(ctx context.Context) (*domain.ConsistencyReport, error) {
	report, err := uc.ledgerRepo.CheckConsistency(ctx)
	if err != nil {
		return nil, err
	}

	if !report.Consistent {
		if uc.metrics != nil {
			uc.metrics.ConsistencyChecks.WithLabelValues("fail").Inc()
			uc.metrics.ConsistencyViolations.Add(float64(len(report.Violations)))
		}
		return report, ErrInconsistentLedger
	}

	if uc.metrics != nil {
		uc.metrics.ConsistencyChecks.WithLabelValues("pass").Inc()
	}

	return report, nil
}
