package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mcsoftware/atmledger/internal/domain"
)

// UserResponse represents an account owner in API responses.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// UserFromDomain converts a domain user to a response.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID            string          `json:"id"`
	AccountNumber string          `json:"account_number"`
	OwnerID       string          `json:"owner_id,omitempty"`
	Balance       decimal.Decimal `json:"balance"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:            a.ID,
		AccountNumber: a.AccountNumber,
		OwnerID:       a.OwnerID,
		Balance:       a.Balance,
		Status:        string(a.Status),
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse wraps an account listing.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// TransactionResponse represents a log entry in API responses.
type TransactionResponse struct {
	ID             string          `json:"id"`
	AccountID      string          `json:"account_id"`
	CounterpartyID string          `json:"counterparty_id,omitempty"`
	Kind           string          `json:"kind"`
	Amount         decimal.Decimal `json:"amount"`
	CreatedAt      time.Time       `json:"created_at"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:             t.ID,
		AccountID:      t.AccountID,
		CounterpartyID: t.CounterpartyID,
		Kind:           string(t.Kind),
		Amount:         t.Amount,
		CreatedAt:      t.CreatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(txns []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(txns))
	for i, t := range txns {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// ListTransactionsResponse wraps an account's transaction history.
type ListTransactionsResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
	Total        int64                  `json:"total"`
}

// TransferResponse represents a completed transfer: both post-transfer
// account views plus the pair of log entries written for it.
type TransferResponse struct {
	From *AccountResponse     `json:"from"`
	To   *AccountResponse     `json:"to"`
	Out  *TransactionResponse `json:"out"`
	In   *TransactionResponse `json:"in"`
}

// BankResponse represents a bank in API responses.
type BankResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	AccountIDs        []string        `json:"account_ids"`
	BranchIDs         []string        `json:"branch_ids,omitempty"`
	RepositoryBalance decimal.Decimal `json:"repository_balance"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// BankFromDomain converts a domain bank to a response.
func BankFromDomain(b *domain.Bank) *BankResponse {
	return &BankResponse{
		ID:                b.ID,
		Name:              b.Name,
		AccountIDs:        b.AccountIDs,
		BranchIDs:         b.BranchIDs,
		RepositoryBalance: b.RepositoryBalance,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}

// BranchResponse represents a branch in API responses.
type BranchResponse struct {
	ID        string    `json:"id"`
	BankID    string    `json:"bank_id"`
	Name      string    `json:"name"`
	ATMIDs    []string  `json:"atm_ids"`
	CreatedAt time.Time `json:"created_at"`
}

// BranchFromDomain converts a domain branch to a response.
func BranchFromDomain(b *domain.Branch) *BranchResponse {
	return &BranchResponse{
		ID:        b.ID,
		BankID:    b.BankID,
		Name:      b.Name,
		ATMIDs:    b.ATMIDs,
		CreatedAt: b.CreatedAt,
	}
}

// BranchesFromDomain converts domain branches to responses.
func BranchesFromDomain(branches []*domain.Branch) []*BranchResponse {
	result := make([]*BranchResponse, len(branches))
	for i, b := range branches {
		result[i] = BranchFromDomain(b)
	}
	return result
}

// ATMResponse represents an ATM in API responses.
type ATMResponse struct {
	ID          string          `json:"id"`
	BranchID    string          `json:"branch_id"`
	CashBalance decimal.Decimal `json:"cash_balance"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ATMFromDomain converts a domain ATM to a response.
func ATMFromDomain(a *domain.ATM) *ATMResponse {
	return &ATMResponse{
		ID:          a.ID,
		BranchID:    a.BranchID,
		CashBalance: a.CashBalance,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// ATMsFromDomain converts domain ATMs to responses.
func ATMsFromDomain(atms []*domain.ATM) []*ATMResponse {
	result := make([]*ATMResponse, len(atms))
	for i, a := range atms {
		result[i] = ATMFromDomain(a)
	}
	return result
}

// RosterResponse wraps a bank roster after an update.
type RosterResponse struct {
	BankID     string   `json:"bank_id"`
	AccountIDs []string `json:"account_ids"`
}

// ConsistencyViolationResponse reports one account whose stored balance
// disagrees with its transaction log.
type ConsistencyViolationResponse struct {
	AccountID       string          `json:"account_id"`
	StoredBalance   decimal.Decimal `json:"stored_balance"`
	ComputedBalance decimal.Decimal `json:"computed_balance"`
}

// ConsistencyReportResponse represents a full ledger audit result.
type ConsistencyReportResponse struct {
	Consistent      bool                           `json:"consistent"`
	AccountsChecked int                            `json:"accounts_checked"`
	Violations      []ConsistencyViolationResponse `json:"violations,omitempty"`
}

// ConsistencyReportFromDomain converts a domain report to a response.
func ConsistencyReportFromDomain(r *domain.ConsistencyReport) *ConsistencyReportResponse {
	resp := &ConsistencyReportResponse{
		Consistent:      r.Consistent,
		AccountsChecked: r.AccountsChecked,
	}
	for _, v := range r.Violations {
		resp.Violations = append(resp.Violations, ConsistencyViolationResponse{
			AccountID:       v.AccountID,
			StoredBalance:   v.StoredBalance,
			ComputedBalance: v.ComputedBalance,
		})
	}
	return resp
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
