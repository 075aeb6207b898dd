package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mcsoftware/atmledger/internal/adapter/http/dto"
	"github.com/mcsoftware/atmledger/internal/domain"
	"github.com/mcsoftware/atmledger/internal/usecase"
)

// BankService defines the behavior needed by BankHandler.
type BankService interface {
	CreateBank(ctx context.Context, input usecase.CreateBankInput) (*domain.Bank, error)
	AddAccounts(ctx context.Context, bankID string, accountIDs []string) ([]string, error)
	ProvisionBranch(ctx context.Context, input usecase.ProvisionBranchInput) (*domain.Branch, error)
	GetBank(ctx context.Context, id string) (*domain.Bank, error)
	ListBranches(ctx context.Context, bankID string) ([]*domain.Branch, error)
	ListATMs(ctx context.Context, branchID string) ([]*domain.ATM, error)
}

// BankHandler handles bank, branch and ATM HTTP requests.
type BankHandler struct {
	bankUC BankService
}

// NewBankHandler creates a new BankHandler.
func NewBankHandler(bankUC BankService) *BankHandler {
	return &BankHandler{bankUC: bankUC}
}

// Create founds a bank with an initial account roster.
func (h *BankHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	bank, err := h.bankUC.CreateBank(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create bank", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.BankFromDomain(bank))
}

// Get retrieves a bank.
func (h *BankHandler) Get(w http.ResponseWriter, r *http.Request) {
	bank, err := h.bankUC.GetBank(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get bank", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BankFromDomain(bank))
}

// AddAccounts grows the bank roster and returns the updated roster.
func (h *BankHandler) AddAccounts(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.AddAccountsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	roster, err := h.bankUC.AddAccounts(r.Context(), id, req.AccountIDs)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to add accounts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RosterResponse{
		BankID:     id,
		AccountIDs: roster,
	})
}

// ProvisionBranch opens a branch under a bank with its ATMs.
func (h *BankHandler) ProvisionBranch(w http.ResponseWriter, r *http.Request) {
	var req dto.ProvisionBranchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	branch, err := h.bankUC.ProvisionBranch(r.Context(), usecase.ProvisionBranchInput{
		BankID:   chi.URLParam(r, "id"),
		Name:     req.Name,
		ATMCount: req.ATMCount,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to provision branch", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.BranchFromDomain(branch))
}

// ListBranches lists a bank's branches.
func (h *BankHandler) ListBranches(w http.ResponseWriter, r *http.Request) {
	branches, err := h.bankUC.ListBranches(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list branches", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BranchesFromDomain(branches))
}

// ListATMs lists a branch's ATMs.
func (h *BankHandler) ListATMs(w http.ResponseWriter, r *http.Request) {
	atms, err := h.bankUC.ListATMs(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list atms", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ATMsFromDomain(atms))
}
