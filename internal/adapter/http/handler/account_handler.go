package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/mcsoftware/atmledger/internal/adapter/http/dto"
	"github.com/mcsoftware/atmledger/internal/domain"
	"github.com/mcsoftware/atmledger/internal/usecase"
)

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error)
	Deposit(ctx context.Context, accountID string, amount decimal.Decimal) (*domain.Account, error)
	Withdraw(ctx context.Context, accountID string, amount decimal.Decimal) (*domain.Account, error)
	CheckBalance(ctx context.Context, accountID string) (*domain.Account, error)
	UpdateAccountNumber(ctx context.Context, input usecase.UpdateAccountNumberInput) (*domain.Account, error)
	SoftDelete(ctx context.Context, accountID string) (*domain.Account, error)
	HardDelete(ctx context.Context, accountID string) error
	ListAccounts(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error)
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accountUC AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC AccountService) *AccountHandler {
	return &AccountHandler{accountUC: accountUC}
}

// Create opens a new account with an initial deposit.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.accountUC.CreateAccount(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create account", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.AccountFromDomain(account))
}

// Get returns the account's current balance snapshot.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	account, err := h.accountUC.CheckBalance(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get account", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// Update changes the account number after an ownership consistency
// check.
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.accountUC.UpdateAccountNumber(r.Context(), usecase.UpdateAccountNumberInput{
		AccountID:     id,
		AccountNumber: req.AccountNumber,
		OwnerID:       req.OwnerID,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update account", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// Deposit credits the account.
func (h *AccountHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.accountUC.Deposit)
}

// Withdraw debits the account.
func (h *AccountHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.accountUC.Withdraw)
}

func (h *AccountHandler) mutate(w http.ResponseWriter, r *http.Request, op func(context.Context, string, decimal.Decimal) (*domain.Account, error)) {
	id := chi.URLParam(r, "id")

	var req dto.AmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := op(r.Context(), id, req.Amount)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// Delete closes the account. By default the account is soft deleted and
// its transaction history retained; mode=hard removes the record.
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if r.URL.Query().Get("mode") == "hard" {
		if err := h.accountUC.HardDelete(r.Context(), id); err != nil {
			writeError(w, mapDomainError(err), "failed to delete account", err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	account, err := h.accountUC.SoftDelete(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to delete account", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// List lists accounts.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	accounts, err := h.accountUC.ListAccounts(r.Context(), usecase.ListAccountsInput{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list accounts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListAccountsResponse{
		Accounts: dto.AccountsFromDomain(accounts),
		Total:    int64(len(accounts)),
	})
}
