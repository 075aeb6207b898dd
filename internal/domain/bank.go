package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bank owns a central cash repository and a roster of member accounts.
// The roster stores account IDs only; membership is resolved by lookup.
type Bank struct {
	ID                string
	Name              string
	AccountIDs        []string
	BranchIDs         []string
	RepositoryBalance decimal.Decimal
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Branch is a bank location hosting ATMs.
type Branch struct {
	ID        string
	BankID    string
	Name      string
	ATMIDs    []string
	CreatedAt time.Time
}

// ATM holds physical cash dispensed at a branch. Its balance moves
// only through bank repository transfers.
type ATM struct {
	ID          string
	BranchID    string
	CashBalance decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasAccount reports whether accountID is on the bank's roster.
func (b *Bank) HasAccount(accountID string) bool {
	for _, id := range b.AccountIDs {
		if id == accountID {
			return true
		}
	}
	return false
}

// ValidateRepositoryDebit checks that the cash repository can fund amount.
func (b *Bank) ValidateRepositoryDebit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if b.RepositoryBalance.LessThan(amount) {
		return ErrInsufficientFunds
	}
	return nil
}

// ValidateCashDebit checks that the ATM holds enough cash for amount.
func (a *ATM) ValidateCashDebit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if a.CashBalance.LessThan(amount) {
		return ErrInsufficientFunds
	}
	return nil
}
