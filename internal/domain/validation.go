package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Business-rule bounds. MinInitialDeposit is the opening-deposit
// threshold in the smallest currency unit.
const (
	MinBankAccounts = 5
	MaxBankAccounts = 20
)

// MinInitialDeposit is the minimum opening deposit for a new account.
var MinInitialDeposit = decimal.NewFromInt(500000)

// CheckMinimumDeposit validates the opening deposit of a new account.
func CheckMinimumDeposit(amount decimal.Decimal) error {
	if amount.LessThan(MinInitialDeposit) {
		return fmt.Errorf("%w: got %s, need at least %s",
			ErrInsufficientInitialDeposit, amount, MinInitialDeposit)
	}
	return nil
}

// CheckBankSize validates a bank roster size against the 5-20 bound.
func CheckBankSize(count int) error {
	if count < MinBankAccounts {
		return fmt.Errorf("%w: got %d, need at least %d", ErrBankTooSmall, count, MinBankAccounts)
	}
	if count > MaxBankAccounts {
		return fmt.Errorf("%w: got %d, at most %d allowed", ErrBankTooLarge, count, MaxBankAccounts)
	}
	return nil
}

// CheckRequestConsistency verifies that an update request targets the
// account it claims to: the account number and owner in the request
// must match the stored record.
func CheckRequestConsistency(account *Account, accountNumber, ownerID string) error {
	if account.AccountNumber != accountNumber {
		return fmt.Errorf("%w: account number %s", ErrInconsistentUpdate, accountNumber)
	}
	if account.OwnerID != ownerID {
		return fmt.Errorf("%w: owner %s", ErrInconsistentUpdate, ownerID)
	}
	return nil
}
