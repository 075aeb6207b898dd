package dto

import (
	"github.com/shopspring/decimal"

	"github.com/mcsoftware/atmledger/internal/usecase"
)

// CreateUserRequest represents a request to register an account owner.
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateUserRequest) ToUseCaseInput() usecase.CreateUserInput {
	return usecase.CreateUserInput{
		Name:  r.Name,
		Email: r.Email,
	}
}

// CreateAccountRequest represents a request to open an account.
type CreateAccountRequest struct {
	OwnerID        string          `json:"owner_id"`
	AccountNumber  string          `json:"account_number"`
	InitialDeposit decimal.Decimal `json:"initial_deposit"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		OwnerID:        r.OwnerID,
		AccountNumber:  r.AccountNumber,
		InitialDeposit: r.InitialDeposit,
	}
}

// UpdateAccountRequest represents an account-number change. The owner
// must match the stored record for the update to be accepted.
type UpdateAccountRequest struct {
	AccountNumber string `json:"account_number"`
	OwnerID       string `json:"owner_id"`
}

// AmountRequest represents a deposit or withdrawal body.
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// CreateTransferRequest represents a request to move funds between two
// accounts.
type CreateTransferRequest struct {
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   string          `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTransferRequest) ToUseCaseInput() usecase.TransferInput {
	return usecase.TransferInput{
		FromAccountID: r.FromAccountID,
		ToAccountID:   r.ToAccountID,
		Amount:        r.Amount,
	}
}

// CreateBankRequest represents a request to found a bank.
type CreateBankRequest struct {
	Name              string          `json:"name"`
	AccountIDs        []string        `json:"account_ids"`
	RepositoryBalance decimal.Decimal `json:"repository_balance"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateBankRequest) ToUseCaseInput() usecase.CreateBankInput {
	return usecase.CreateBankInput{
		Name:              r.Name,
		AccountIDs:        r.AccountIDs,
		RepositoryBalance: r.RepositoryBalance,
	}
}

// AddAccountsRequest represents a request to grow a bank roster.
type AddAccountsRequest struct {
	AccountIDs []string `json:"account_ids"`
}

// ProvisionBranchRequest represents a request to open a branch with its
// ATMs.
type ProvisionBranchRequest struct {
	Name     string `json:"name"`
	ATMCount int    `json:"atm_count"`
}
