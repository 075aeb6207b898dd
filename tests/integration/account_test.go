package integration

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mcsoftware/atmledger/internal/domain"
	"github.com/mcsoftware/atmledger/internal/usecase"
	"github.com/mcsoftware/atmledger/tests/testutil"
)

func TestAccountLifecycle(t *testing.T) {
	ctx := context.Background()
	env := testutil.NewLedgerEnv(t)

	user := env.CreateTestUser(ctx, "alice")

	t.Run("open account with minimum deposit", func(t *testing.T) {
		account := env.CreateTestAccount(ctx, user.ID, "ACC-1000", domain.MinInitialDeposit)

		if account.Status != domain.AccountStatusActive {
			t.Errorf("expected ACTIVE, got %s", account.Status)
		}
		if !account.Balance.Equal(domain.MinInitialDeposit) {
			t.Errorf("expected balance %s, got %s", domain.MinInitialDeposit, account.Balance)
		}

		// The opening deposit must already be on the log.
		txns, err := env.TxnUC.ListByAccount(ctx, usecase.ListByAccountInput{AccountID: account.ID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(txns) != 1 || txns[0].Kind != domain.TransactionDeposit {
			t.Fatalf("expected single opening DEPOSIT entry, got %+v", txns)
		}
	})

	t.Run("reject opening below minimum", func(t *testing.T) {
		_, err := env.AccountUC.CreateAccount(ctx, usecase.CreateAccountInput{
			OwnerID:        user.ID,
			AccountNumber:  "ACC-1001",
			InitialDeposit: domain.MinInitialDeposit.Sub(decimal.NewFromInt(1)),
		})
		if !errors.Is(err, domain.ErrInsufficientInitialDeposit) {
			t.Fatalf("expected ErrInsufficientInitialDeposit, got %v", err)
		}
	})

	t.Run("deposit withdraw roundtrip", func(t *testing.T) {
		account := env.CreateTestAccount(ctx, user.ID, "ACC-1002", domain.MinInitialDeposit)

		if _, err := env.AccountUC.Deposit(ctx, account.ID, decimal.NewFromInt(250000)); err != nil {
			t.Fatalf("deposit failed: %v", err)
		}
		updated, err := env.AccountUC.Withdraw(ctx, account.ID, decimal.NewFromInt(100000))
		if err != nil {
			t.Fatalf("withdraw failed: %v", err)
		}

		want := domain.MinInitialDeposit.Add(decimal.NewFromInt(150000))
		if !updated.Balance.Equal(want) {
			t.Errorf("expected balance %s, got %s", want, updated.Balance)
		}

		txns, err := env.TxnUC.ListByAccount(ctx, usecase.ListByAccountInput{AccountID: account.ID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(txns) != 3 {
			t.Fatalf("expected 3 log entries, got %d", len(txns))
		}

		// Entries come back in append order.
		kinds := []domain.TransactionKind{txns[0].Kind, txns[1].Kind, txns[2].Kind}
		want3 := []domain.TransactionKind{domain.TransactionDeposit, domain.TransactionDeposit, domain.TransactionWithdrawal}
		for i := range want3 {
			if kinds[i] != want3[i] {
				t.Errorf("entry %d: expected %s, got %s", i, want3[i], kinds[i])
			}
		}
	})

	t.Run("update account number verifies owner", func(t *testing.T) {
		account := env.CreateTestAccount(ctx, user.ID, "ACC-1003", domain.MinInitialDeposit)

		updated, err := env.AccountUC.UpdateAccountNumber(ctx, usecase.UpdateAccountNumberInput{
			AccountID:     account.ID,
			AccountNumber: "ACC-2003",
			OwnerID:       user.ID,
		})
		if err != nil {
			t.Fatalf("update failed: %v", err)
		}
		if updated.AccountNumber != "ACC-2003" {
			t.Errorf("expected ACC-2003, got %s", updated.AccountNumber)
		}

		_, err = env.AccountUC.UpdateAccountNumber(ctx, usecase.UpdateAccountNumberInput{
			AccountID:     account.ID,
			AccountNumber: "ACC-3003",
			OwnerID:       "intruder",
		})
		if !errors.Is(err, domain.ErrInconsistentUpdate) {
			t.Fatalf("expected ErrInconsistentUpdate, got %v", err)
		}
	})
}

func TestAccountSoftDeleteRetainsHistory(t *testing.T) {
	ctx := context.Background()
	env := testutil.NewLedgerEnv(t)

	user := env.CreateTestUser(ctx, "bob")
	account := env.CreateTestAccount(ctx, user.ID, "ACC-2000", domain.MinInitialDeposit)

	deleted, err := env.AccountUC.SoftDelete(ctx, account.ID)
	if err != nil {
		t.Fatalf("soft delete failed: %v", err)
	}

	if deleted.Status != domain.AccountStatusDeleted {
		t.Errorf("expected DELETED, got %s", deleted.Status)
	}
	if !deleted.Balance.IsZero() {
		t.Errorf("expected zero balance, got %s", deleted.Balance)
	}
	if deleted.OwnerID != "" {
		t.Errorf("expected cleared owner, got %s", deleted.OwnerID)
	}

	// Opening deposit plus the closing withdrawal stay on the log.
	txns, err := env.TxnUC.ListByAccount(ctx, usecase.ListByAccountInput{AccountID: account.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(txns) != 2 {
		t.Fatalf("expected 2 retained entries, got %d", len(txns))
	}
	if txns[1].Kind != domain.TransactionWithdrawal || !txns[1].Amount.Equal(domain.MinInitialDeposit) {
		t.Errorf("expected closing withdrawal of %s, got %+v", domain.MinInitialDeposit, txns[1])
	}

	// Deposits to a closed account are rejected.
	if _, err := env.AccountUC.Deposit(ctx, account.ID, decimal.NewFromInt(100)); !errors.Is(err, domain.ErrAccountInactive) {
		t.Errorf("expected ErrAccountInactive, got %v", err)
	}

	env.MustCheckConsistency(ctx)
}

func TestAccountHardDeleteRemovesRecordKeepsLog(t *testing.T) {
	ctx := context.Background()
	env := testutil.NewLedgerEnv(t)

	user := env.CreateTestUser(ctx, "carol")
	account := env.CreateTestAccount(ctx, user.ID, "ACC-3000", domain.MinInitialDeposit)

	if err := env.AccountUC.HardDelete(ctx, account.ID); err != nil {
		t.Fatalf("hard delete failed: %v", err)
	}

	if _, err := env.AccountUC.CheckBalance(ctx, account.ID); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}

	// The audit trail has no foreign key on the account record and
	// survives physical deletion.
	txns, err := env.TxnUC.ListByAccount(ctx, usecase.ListByAccountInput{AccountID: account.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(txns) != 1 {
		t.Errorf("expected surviving opening entry, got %d entries", len(txns))
	}

	if err := env.AccountUC.HardDelete(ctx, account.ID); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound on second delete, got %v", err)
	}
}
