package dto

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestCreateAccountRequest_ToUseCaseInput(t *testing.T) {
	req := &CreateAccountRequest{
		OwnerID:        "user-1",
		AccountNumber:  "111-222",
		InitialDeposit: decimal.RequireFromString("500000"),
	}

	got := req.ToUseCaseInput()
	if got.OwnerID != "user-1" || got.AccountNumber != "111-222" {
		t.Fatalf("ToUseCaseInput() = %+v", got)
	}
	if !got.InitialDeposit.Equal(decimal.RequireFromString("500000")) {
		t.Fatalf("expected initial deposit to carry over, got %s", got.InitialDeposit)
	}
}

func TestCreateTransferRequest_ToUseCaseInput(t *testing.T) {
	req := &CreateTransferRequest{
		FromAccountID: "from",
		ToAccountID:   "to",
		Amount:        decimal.RequireFromString("12.34"),
	}

	got := req.ToUseCaseInput()
	if got.FromAccountID != "from" || got.ToAccountID != "to" {
		t.Fatalf("ToUseCaseInput() = %+v", got)
	}
	if !got.Amount.Equal(decimal.RequireFromString("12.34")) {
		t.Fatalf("expected amount to carry over, got %s", got.Amount)
	}
}

func TestCreateBankRequest_ToUseCaseInput(t *testing.T) {
	req := &CreateBankRequest{
		Name:              "First National",
		AccountIDs:        []string{"a1", "a2", "a3", "a4", "a5"},
		RepositoryBalance: decimal.RequireFromString("1000000"),
	}

	got := req.ToUseCaseInput()
	if got.Name != "First National" || len(got.AccountIDs) != 5 {
		t.Fatalf("ToUseCaseInput() = %+v", got)
	}
}

func TestAmountRequest_DecodesDecimalString(t *testing.T) {
	var req AmountRequest
	if err := json.Unmarshal([]byte(`{"amount":"250.50"}`), &req); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if !req.Amount.Equal(decimal.RequireFromString("250.50")) {
		t.Fatalf("expected 250.50, got %s", req.Amount)
	}

	if err := json.Unmarshal([]byte(`{"amount":"not-a-number"}`), &req); err == nil {
		t.Fatal("expected error for invalid amount")
	}
}
