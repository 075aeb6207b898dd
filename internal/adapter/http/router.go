package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mcsoftware/atmledger/internal/adapter/http/handler"
	"github.com/mcsoftware/atmledger/internal/adapter/http/middleware"
	"github.com/mcsoftware/atmledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	UserHandler        *handler.UserHandler
	AccountHandler     *handler.AccountHandler
	TransferHandler    *handler.TransferHandler
	BankHandler        *handler.BankHandler
	TransactionHandler *handler.TransactionHandler
	LedgerHandler      *handler.LedgerHandler
	HealthHandler      *handler.HealthHandler
	IdempotencyStore   usecase.IdempotencyStore
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Users
		r.Route("/users", func(r chi.Router) {
			r.Post("/", cfg.UserHandler.Create)
			r.Get("/{id}", cfg.UserHandler.Get)
		})

		// Accounts
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Create)
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Put("/{id}", cfg.AccountHandler.Update)
			r.Delete("/{id}", cfg.AccountHandler.Delete)
			r.Post("/{id}/deposit", cfg.AccountHandler.Deposit)
			r.Post("/{id}/withdraw", cfg.AccountHandler.Withdraw)
			r.Get("/{id}/transactions", cfg.TransactionHandler.ListByAccount)
		})

		// Transfers
		r.Route("/transfers", func(r chi.Router) {
			r.Post("/", cfg.TransferHandler.Create)
			r.Get("/{id}", cfg.TransactionHandler.Get)
		})

		// Banks, branches, ATMs
		r.Route("/banks", func(r chi.Router) {
			r.Post("/", cfg.BankHandler.Create)
			r.Get("/{id}", cfg.BankHandler.Get)
			r.Post("/{id}/accounts", cfg.BankHandler.AddAccounts)
			r.Post("/{id}/branches", cfg.BankHandler.ProvisionBranch)
			r.Get("/{id}/branches", cfg.BankHandler.ListBranches)
			r.Post("/{bankID}/atms/{atmID}/deposit", cfg.TransferHandler.DepositToATM)
			r.Post("/{bankID}/atms/{atmID}/withdraw", cfg.TransferHandler.WithdrawFromATM)
		})
		r.Get("/branches/{id}/atms", cfg.BankHandler.ListATMs)

		// Ledger audit
		r.Get("/ledger/consistency", cfg.LedgerHandler.CheckConsistency)
	})

	return r
}
