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

// BranchRepository implements usecase.BranchRepository.
type BranchRepository struct {
	pool *pgxpool.Pool
}

// NewBranchRepository creates a new BranchRepository.
func NewBranchRepository(pool *pgxpool.Pool) *BranchRepository {
	return &BranchRepository{pool: pool}
}

// Create inserts a branch inside the transaction.
func (r *BranchRepository) Create(ctx context.Context, tx usecase.Transaction, branch *domain.Branch) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO branches (id, bank_id, name, atm_ids, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		branch.ID, branch.BankID, branch.Name, branch.ATMIDs, timeToPgTimestamptz(branch.CreatedAt),
	)
	return err
}

// GetByID retrieves a branch by ID.
func (r *BranchRepository) GetByID(ctx context.Context, id string) (*domain.Branch, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, bank_id, name, atm_ids, created_at FROM branches WHERE id = $1`, id)
	return scanBranch(row)
}

// ListByBank lists a bank's branches.
func (r *BranchRepository) ListByBank(ctx context.Context, bankID string) ([]*domain.Branch, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, bank_id, name, atm_ids, created_at FROM branches
		WHERE bank_id = $1 ORDER BY id`, bankID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var branches []*domain.Branch
	for rows.Next() {
		branch, err := scanBranch(rows)
		if err != nil {
			return nil, err
		}
		branches = append(branches, branch)
	}
	return branches, rows.Err()
}

func scanBranch(row pgx.Row) (*domain.Branch, error) {
	var (
		branch    domain.Branch
		createdAt pgtype.Timestamptz
	)

	err := row.Scan(&branch.ID, &branch.BankID, &branch.Name, &branch.ATMIDs, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBranchNotFound
		}
		return nil, err
	}

	branch.CreatedAt = createdAt.Time
	return &branch, nil
}

// ATMRepository implements usecase.ATMRepository.
type ATMRepository struct {
	pool *pgxpool.Pool
}

// NewATMRepository creates a new ATMRepository.
func NewATMRepository(pool *pgxpool.Pool) *ATMRepository {
	return &ATMRepository{pool: pool}
}

// Create inserts an ATM inside the transaction.
func (r *ATMRepository) Create(ctx context.Context, tx usecase.Transaction, atm *domain.ATM) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO atms (id, branch_id, cash_balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		atm.ID, atm.BranchID, decimalToNumeric(atm.CashBalance),
		timeToPgTimestamptz(atm.CreatedAt), timeToPgTimestamptz(atm.UpdatedAt),
	)
	return err
}

// GetByID retrieves an ATM by ID.
func (r *ATMRepository) GetByID(ctx context.Context, id string) (*domain.ATM, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, branch_id, cash_balance, created_at, updated_at FROM atms WHERE id = $1`, id)
	return scanATM(row)
}

// GetByIDForUpdate retrieves an ATM with a FOR UPDATE row lock.
func (r *ATMRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.ATM, error) {
	pgxTx := tx.(*Tx).PgxTx()

	row := pgxTx.QueryRow(ctx, `
		SELECT id, branch_id, cash_balance, created_at, updated_at FROM atms WHERE id = $1 FOR UPDATE`, id)
	return scanATM(row)
}

// UpdateCashBalance updates the cash balance of a locked ATM.
func (r *ATMRepository) UpdateCashBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		UPDATE atms SET cash_balance = $2, updated_at = $3 WHERE id = $1`,
		id, decimalToNumeric(balance), timeToPgTimestamptz(updatedAt),
	)
	return err
}

// ListByBranch lists a branch's ATMs.
func (r *ATMRepository) ListByBranch(ctx context.Context, branchID string) ([]*domain.ATM, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, branch_id, cash_balance, created_at, updated_at FROM atms
		WHERE branch_id = $1 ORDER BY id`, branchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var atms []*domain.ATM
	for rows.Next() {
		atm, err := scanATM(rows)
		if err != nil {
			return nil, err
		}
		atms = append(atms, atm)
	}
	return atms, rows.Err()
}

func scanATM(row pgx.Row) (*domain.ATM, error) {
	var (
		atm       domain.ATM
		balance   pgtype.Numeric
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(&atm.ID, &atm.BranchID, &balance, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrATMNotFound
		}
		return nil, err
	}

	atm.CashBalance = numericToDecimal(balance)
	atm.CreatedAt = createdAt.Time
	atm.UpdatedAt = updatedAt.Time

	return &atm, nil
}
