package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/mcsoftware/atmledger/internal/domain"
)

// LedgerRepository implements usecase.LedgerRepository with a single
// aggregate query over the transaction log.
type LedgerRepository struct {
	pool    *pgxpool.Pool
	retrier *Retrier
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool, retrier: NewRetrier()}
}

// CheckConsistency recomputes every active account's balance from its
// log entries and reports disagreements and negative balances.
// Soft-deleted accounts are skipped: their balance is zeroed while the
// log keeps the full history. The scan runs concurrently with live
// transfers, so serialization failures are retried.
func (r *LedgerRepository) CheckConsistency(ctx context.Context) (*domain.ConsistencyReport, error) {
	var report *domain.ConsistencyReport
	err := r.retrier.Retry(ctx, func() error {
		var err error
		report, err = r.checkOnce(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (r *LedgerRepository) checkOnce(ctx context.Context) (*domain.ConsistencyReport, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT a.id, a.balance, COALESCE(SUM(
			CASE WHEN t.kind IN ('WITHDRAWAL', 'TRANSFER_OUT') THEN -t.amount ELSE t.amount END
		), 0)
		FROM accounts a
		LEFT JOIN transactions t ON t.account_id = a.id
		WHERE a.status = $1
		GROUP BY a.id, a.balance
		ORDER BY a.id`, string(domain.AccountStatusActive))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	report := &domain.ConsistencyReport{Consistent: true}
	for rows.Next() {
		var (
			id       string
			stored   pgtype.Numeric
			computed pgtype.Numeric
		)
		if err := rows.Scan(&id, &stored, &computed); err != nil {
			return nil, err
		}

		report.AccountsChecked++

		storedDec := numericToDecimal(stored)
		computedDec := numericToDecimal(computed)
		if !storedDec.Equal(computedDec) || storedDec.LessThan(decimal.Zero) {
			report.Consistent = false
			report.Violations = append(report.Violations, domain.ConsistencyViolation{
				AccountID:       id,
				StoredBalance:   storedDec,
				ComputedBalance: computedDec,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return report, nil
}
