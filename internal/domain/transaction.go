package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind classifies a balance-changing event.
type TransactionKind string

const (
	TransactionDeposit     TransactionKind = "DEPOSIT"
	TransactionWithdrawal  TransactionKind = "WITHDRAWAL"
	TransactionTransferOut TransactionKind = "TRANSFER_OUT"
	TransactionTransferIn  TransactionKind = "TRANSFER_IN"
)

// Transaction is one immutable entry in an account's audit log.
// Entries are append-only and survive account soft deletion. IDs are
// ULIDs, so per-account entries sort in append order.
type Transaction struct {
	ID             string
	AccountID      string
	CounterpartyID string // set for TRANSFER_OUT / TRANSFER_IN only
	Kind           TransactionKind
	Amount         decimal.Decimal
	CreatedAt      time.Time
}

// Signed returns the amount with the sign the entry applies to its
// account's balance: negative for withdrawals and outgoing transfers.
func (t *Transaction) Signed() decimal.Decimal {
	switch t.Kind {
	case TransactionWithdrawal, TransactionTransferOut:
		return t.Amount.Neg()
	default:
		return t.Amount
	}
}

// Validate checks the entry before it is appended.
func (t *Transaction) Validate() error {
	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	switch t.Kind {
	case TransactionDeposit, TransactionWithdrawal, TransactionTransferOut, TransactionTransferIn:
	default:
		return ErrInvalidTransactionKind
	}
	if (t.Kind == TransactionTransferOut || t.Kind == TransactionTransferIn) && t.CounterpartyID == "" {
		return ErrInvalidTransactionKind
	}
	return nil
}
