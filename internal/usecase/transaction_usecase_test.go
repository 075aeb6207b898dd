package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/mcsoftware/atmledger/internal/domain"
	"github.com/mcsoftware/atmledger/internal/usecase"
	"github.com/mcsoftware/atmledger/internal/usecase/mocks"
)

func TestTransactionUseCase_GetByIDCacheHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cached := &domain.Transaction{
		ID:        "txn-1",
		AccountID: "acc-1",
		Kind:      domain.TransactionDeposit,
		Amount:    decimal.NewFromInt(1000),
	}
	encoded, _ := json.Marshal(cached)

	cache := mocks.NewMockCache(ctrl)
	cache.EXPECT().Get(gomock.Any(), "txn:txn-1").Return(string(encoded), nil)

	txnRepo := mocks.NewMockTransactionRepository()
	txnRepo.GetByIDFunc = func(ctx context.Context, id string) (*domain.Transaction, error) {
		t.Fatal("repository must not be hit on a cache hit")
		return nil, nil
	}

	uc := usecase.NewTransactionUseCase(txnRepo, cache)
	txn, err := uc.GetByID(context.Background(), "txn-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if txn.ID != "txn-1" || !txn.Amount.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("unexpected cached entry: %+v", txn)
	}
}

func TestTransactionUseCase_GetByIDCacheMissFillsCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	stored := &domain.Transaction{
		ID:        "txn-1",
		AccountID: "acc-1",
		Kind:      domain.TransactionWithdrawal,
		Amount:    decimal.NewFromInt(500),
	}

	cache := mocks.NewMockCache(ctrl)
	cache.EXPECT().Get(gomock.Any(), "txn:txn-1").Return("", errors.New("cache miss"))
	cache.EXPECT().Set(gomock.Any(), "txn:txn-1", gomock.Any(), time.Hour).Return(nil)

	txnRepo := mocks.NewMockTransactionRepository()
	txnRepo.Create(context.Background(), nil, stored)

	uc := usecase.NewTransactionUseCase(txnRepo, cache)
	txn, err := uc.GetByID(context.Background(), "txn-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if txn.ID != "txn-1" {
		t.Errorf("expected txn-1, got %s", txn.ID)
	}
}

func TestTransactionUseCase_GetByIDWithoutCache(t *testing.T) {
	txnRepo := mocks.NewMockTransactionRepository()
	txnRepo.Create(context.Background(), nil, &domain.Transaction{
		ID:        "txn-1",
		AccountID: "acc-1",
		Kind:      domain.TransactionDeposit,
		Amount:    decimal.NewFromInt(100),
	})

	uc := usecase.NewTransactionUseCase(txnRepo, nil)
	txn, err := uc.GetByID(context.Background(), "txn-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if txn.ID != "txn-1" {
		t.Errorf("expected txn-1, got %s", txn.ID)
	}

	if _, err := uc.GetByID(context.Background(), "ghost"); !errors.Is(err, domain.ErrTransactionNotFound) {
		t.Errorf("expected ErrTransactionNotFound, got %v", err)
	}
}

func TestTransactionUseCase_ListByAccountClampsLimit(t *testing.T) {
	txnRepo := mocks.NewMockTransactionRepository()

	var gotLimit int
	txnRepo.ListByAccountFunc = func(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
		gotLimit = limit
		return nil, nil
	}

	uc := usecase.NewTransactionUseCase(txnRepo, nil)

	if _, err := uc.ListByAccount(context.Background(), usecase.ListByAccountInput{AccountID: "acc-1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLimit != 20 {
		t.Errorf("expected default limit 20, got %d", gotLimit)
	}

	if _, err := uc.ListByAccount(context.Background(), usecase.ListByAccountInput{AccountID: "acc-1", Limit: 1000}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLimit != 100 {
		t.Errorf("expected capped limit 100, got %d", gotLimit)
	}
}
