package domain

import "github.com/shopspring/decimal"

// ConsistencyViolation records one account whose stored balance
// disagrees with the balance recomputed from its transaction log.
type ConsistencyViolation struct {
	AccountID       string
	StoredBalance   decimal.Decimal
	ComputedBalance decimal.Decimal
}

// ConsistencyReport is the result of a full ledger audit.
type ConsistencyReport struct {
	Consistent      bool
	AccountsChecked int
	Violations      []ConsistencyViolation
}
