package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountStatus is the lifecycle state of an account.
type AccountStatus string

const (
	AccountStatusActive  AccountStatus = "ACTIVE"
	AccountStatusDeleted AccountStatus = "DELETED"
)

// Account represents a customer account holding a balance.
// Its transaction history is reachable through TransactionRepository
// by account ID; the account itself carries no back-references.
type Account struct {
	ID            string
	AccountNumber string
	OwnerID       string
	Balance       decimal.Decimal
	Status        AccountStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsActive reports whether the account accepts balance mutations.
func (a *Account) IsActive() bool {
	return a.Status == AccountStatusActive
}

// ValidateWithdrawal checks if the account can be debited by amount.
func (a *Account) ValidateWithdrawal(amount decimal.Decimal) error {
	if !a.IsActive() {
		return ErrAccountInactive
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if a.Balance.LessThan(amount) {
		return ErrInsufficientFunds
	}
	return nil
}

// ValidateDeposit checks if the account can be credited by amount.
func (a *Account) ValidateDeposit(amount decimal.Decimal) error {
	if !a.IsActive() {
		return ErrAccountInactive
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	return nil
}

// ApplyDebit returns the balance after a debit.
func (a *Account) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Sub(amount)
}

// ApplyCredit returns the balance after a credit.
func (a *Account) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Add(amount)
}
