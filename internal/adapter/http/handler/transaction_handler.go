package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mcsoftware/atmledger/internal/adapter/http/dto"
	"github.com/mcsoftware/atmledger/internal/domain"
	"github.com/mcsoftware/atmledger/internal/usecase"
)

// TransactionService defines the behavior needed by TransactionHandler.
type TransactionService interface {
	ListByAccount(ctx context.Context, input usecase.ListByAccountInput) ([]*domain.Transaction, error)
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
}

// TransactionHandler serves the append-only transaction log.
type TransactionHandler struct {
	txnUC TransactionService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(txnUC TransactionService) *TransactionHandler {
	return &TransactionHandler{txnUC: txnUC}
}

// ListByAccount lists an account's history in append order.
func (h *TransactionHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	txns, err := h.txnUC.ListByAccount(r.Context(), usecase.ListByAccountInput{
		AccountID: chi.URLParam(r, "id"),
		Limit:     parseIntQuery(r, "limit", 20),
		Offset:    parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.TransactionsFromDomain(txns),
		Total:        int64(len(txns)),
	})
}

// Get retrieves a single log entry.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	txn, err := h.txnUC.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(txn))
}
