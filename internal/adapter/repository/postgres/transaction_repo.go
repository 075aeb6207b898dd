package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mcsoftware/atmledger/internal/domain"
	"github.com/mcsoftware/atmledger/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository. The
// transactions table is append-only; no update or delete statements
// exist here.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create appends a log entry inside the storage transaction.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	if err := txn.Validate(); err != nil {
		return err
	}

	pgxTx := tx.(*Tx).PgxTx()

	var counterparty pgtype.Text
	if txn.CounterpartyID != "" {
		counterparty = pgtype.Text{String: txn.CounterpartyID, Valid: true}
	}

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO transactions (id, account_id, counterparty_id, kind, amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		txn.ID, txn.AccountID, counterparty, string(txn.Kind),
		decimalToNumeric(txn.Amount), timeToPgTimestamptz(txn.CreatedAt),
	)
	return err
}

// GetByID retrieves a single log entry.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, account_id, counterparty_id, kind, amount, created_at
		FROM transactions WHERE id = $1`, id)
	return scanTransaction(row)
}

// ListByAccount lists an account's entries in append order. ULID ids
// are lexicographically time ordered, so ORDER BY id is append order.
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, account_id, counterparty_id, kind, amount, created_at
		FROM transactions WHERE account_id = $1
		ORDER BY id LIMIT $2 OFFSET $3`, accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []*domain.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}
	return txns, rows.Err()
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		txn          domain.Transaction
		counterparty pgtype.Text
		kind         string
		amount       pgtype.Numeric
		createdAt    pgtype.Timestamptz
	)

	err := row.Scan(&txn.ID, &txn.AccountID, &counterparty, &kind, &amount, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}

	if counterparty.Valid {
		txn.CounterpartyID = counterparty.String
	}
	txn.Kind = domain.TransactionKind(kind)
	txn.Amount = numericToDecimal(amount)
	txn.CreatedAt = createdAt.Time

	return &txn, nil
}
