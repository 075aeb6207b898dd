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

// TransferService defines the behavior needed by TransferHandler.
type TransferService interface {
	Transfer(ctx context.Context, input usecase.TransferInput) (*usecase.TransferResult, error)
	DepositToATM(ctx context.Context, input usecase.ATMMovementInput) (*domain.Bank, error)
	WithdrawFromATM(ctx context.Context, input usecase.ATMMovementInput) (*domain.Bank, error)
}

// TransferHandler handles transfer-related HTTP requests.
type TransferHandler struct {
	transferUC TransferService
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transferUC TransferService) *TransferHandler {
	return &TransferHandler{transferUC: transferUC}
}

// Create moves funds between two accounts and returns both resulting
// account views.
func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.transferUC.Transfer(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create transfer", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransferResponse{
		From: dto.AccountFromDomain(result.From),
		To:   dto.AccountFromDomain(result.To),
		Out:  dto.TransactionFromDomain(result.Out),
		In:   dto.TransactionFromDomain(result.In),
	})
}

// DepositToATM moves cash from a bank repository into an ATM.
func (h *TransferHandler) DepositToATM(w http.ResponseWriter, r *http.Request) {
	h.moveCash(w, r, h.transferUC.DepositToATM)
}

// WithdrawFromATM moves cash from an ATM back into a bank repository.
func (h *TransferHandler) WithdrawFromATM(w http.ResponseWriter, r *http.Request) {
	h.moveCash(w, r, h.transferUC.WithdrawFromATM)
}

func (h *TransferHandler) moveCash(w http.ResponseWriter, r *http.Request, op func(context.Context, usecase.ATMMovementInput) (*domain.Bank, error)) {
	var req dto.AmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	bank, err := op(r.Context(), usecase.ATMMovementInput{
		BankID: chi.URLParam(r, "bankID"),
		ATMID:  chi.URLParam(r, "atmID"),
		Amount: req.Amount,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to move cash", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BankFromDomain(bank))
}
