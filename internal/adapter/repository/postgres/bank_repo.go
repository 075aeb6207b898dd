package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/mcsoftware/atmledger/internal/domain"
	"github.com/mcsoftware/atmledger/internal/usecase"
)

const bankColumns = `id, name, account_ids, branch_ids, repository_balance, created_at, updated_at`

// BankRepository implements usecase.BankRepository. Rosters and branch
// lists are stored as text arrays; membership checks run in memory on
// the loaded bank.
type BankRepository struct {
	pool *pgxpool.Pool
}

// NewBankRepository creates a new BankRepository.
func NewBankRepository(pool *pgxpool.Pool) *BankRepository {
	return &BankRepository{pool: pool}
}

// Create inserts a new bank.
func (r *BankRepository) Create(ctx context.Context, bank *domain.Bank) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO banks (id, name, account_ids, branch_ids, repository_balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		bank.ID, bank.Name, bank.AccountIDs, bank.BranchIDs,
		decimalToNumeric(bank.RepositoryBalance),
		timeToPgTimestamptz(bank.CreatedAt), timeToPgTimestamptz(bank.UpdatedAt),
	)
	return err
}

// GetByID retrieves a bank by ID.
func (r *BankRepository) GetByID(ctx context.Context, id string) (*domain.Bank, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+bankColumns+` FROM banks WHERE id = $1`, id)
	return scanBank(row)
}

// GetByIDForUpdate retrieves a bank with a FOR UPDATE row lock.
func (r *BankRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Bank, error) {
	pgxTx := tx.(*Tx).PgxTx()

	row := pgxTx.QueryRow(ctx, `SELECT `+bankColumns+` FROM banks WHERE id = $1 FOR UPDATE`, id)
	return scanBank(row)
}

// UpdateRepositoryBalance updates the central cash balance of a locked
// bank.
func (r *BankRepository) UpdateRepositoryBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		UPDATE banks SET repository_balance = $2, updated_at = $3 WHERE id = $1`,
		id, decimalToNumeric(balance), timeToPgTimestamptz(updatedAt),
	)
	return err
}

// SetAccountIDs replaces the roster of a locked bank.
func (r *BankRepository) SetAccountIDs(ctx context.Context, tx usecase.Transaction, id string, accountIDs []string, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		UPDATE banks SET account_ids = $2, updated_at = $3 WHERE id = $1`,
		id, accountIDs, timeToPgTimestamptz(updatedAt),
	)
	return err
}

// AddBranch appends a branch to the bank's branch list.
func (r *BankRepository) AddBranch(ctx context.Context, tx usecase.Transaction, bankID, branchID string, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		UPDATE banks SET branch_ids = array_append(branch_ids, $2), updated_at = $3 WHERE id = $1`,
		bankID, branchID, timeToPgTimestamptz(updatedAt),
	)
	return err
}

// List lists banks with pagination.
func (r *BankRepository) List(ctx context.Context, limit, offset int) ([]*domain.Bank, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+bankColumns+` FROM banks ORDER BY id LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var banks []*domain.Bank
	for rows.Next() {
		bank, err := scanBank(rows)
		if err != nil {
			return nil, err
		}
		banks = append(banks, bank)
	}
	return banks, rows.Err()
}

func scanBank(row pgx.Row) (*domain.Bank, error) {
	var (
		bank      domain.Bank
		balance   pgtype.Numeric
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(&bank.ID, &bank.Name, &bank.AccountIDs, &bank.BranchIDs, &balance, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBankNotFound
		}
		return nil, err
	}

	bank.RepositoryBalance = numericToDecimal(balance)
	bank.CreatedAt = createdAt.Time
	bank.UpdatedAt = updatedAt.Time

	return &bank, nil
}
