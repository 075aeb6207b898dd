package integration

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mcsoftware/atmledger/internal/domain"
	"github.com/mcsoftware/atmledger/internal/usecase"
	"github.com/mcsoftware/atmledger/tests/testutil"
)

func TestConcurrentDeposits(t *testing.T) {
	ctx := context.Background()
	env := testutil.NewLedgerEnv(t)

	account := env.CreateTestAccounts(ctx, 1)[0]

	numDeposits := 100
	amount := decimal.NewFromInt(10)

	var wg sync.WaitGroup
	wg.Add(numDeposits)
	for i := 0; i < numDeposits; i++ {
		go func() {
			defer wg.Done()
			if _, err := env.AccountUC.Deposit(ctx, account.ID, amount); err != nil {
				t.Errorf("deposit failed: %v", err)
			}
		}()
	}
	wg.Wait()

	final, err := env.AccountUC.CheckBalance(ctx, account.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := domain.MinInitialDeposit.Add(decimal.NewFromInt(1000))
	if !final.Balance.Equal(want) {
		t.Errorf("expected balance %s after %d deposits, got %s", want, numDeposits, final.Balance)
	}

	txns, err := env.TxnUC.ListByAccount(ctx, usecase.ListByAccountInput{AccountID: account.ID, Limit: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Opening deposit is on the log too, past the 100-entry page.
	if len(txns) != 100 {
		t.Errorf("expected a full page of 100 entries, got %d", len(txns))
	}

	env.MustCheckConsistency(ctx)
}

func TestConcurrentOpposingTransfersNoDeadlock(t *testing.T) {
	ctx := context.Background()
	env := testutil.NewLedgerEnv(t)

	accounts := env.CreateTestAccounts(ctx, 2)
	a, b := accounts[0], accounts[1]

	numRounds := 50
	amount := decimal.NewFromInt(1000)

	var wg sync.WaitGroup
	wg.Add(numRounds * 2)
	for i := 0; i < numRounds; i++ {
		go func() {
			defer wg.Done()
			if _, err := env.TransferUC.Transfer(ctx, usecase.TransferInput{
				FromAccountID: a.ID,
				ToAccountID:   b.ID,
				Amount:        amount,
			}); err != nil {
				t.Errorf("a->b transfer failed: %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			if _, err := env.TransferUC.Transfer(ctx, usecase.TransferInput{
				FromAccountID: b.ID,
				ToAccountID:   a.ID,
				Amount:        amount,
			}); err != nil {
				t.Errorf("b->a transfer failed: %v", err)
			}
		}()
	}
	wg.Wait()

	// Equal counts in both directions leave both balances unchanged.
	for _, acc := range accounts {
		current, err := env.AccountUC.CheckBalance(ctx, acc.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !current.Balance.Equal(domain.MinInitialDeposit) {
			t.Errorf("expected balance %s for %s, got %s", domain.MinInitialDeposit, acc.ID, current.Balance)
		}
	}

	env.MustCheckConsistency(ctx)
}

func TestConcurrentWithdrawalsRejectOverdraft(t *testing.T) {
	ctx := context.Background()
	env := testutil.NewLedgerEnv(t)

	account := env.CreateTestAccounts(ctx, 1)[0]

	// 60 withdrawals of 10000 against 500000: exactly 50 can succeed.
	numWithdrawals := 60
	amount := decimal.NewFromInt(10000)

	var (
		wg        sync.WaitGroup
		successes atomic.Int32
		rejects   atomic.Int32
	)

	wg.Add(numWithdrawals)
	for i := 0; i < numWithdrawals; i++ {
		go func() {
			defer wg.Done()
			if _, err := env.AccountUC.Withdraw(ctx, account.ID, amount); err != nil {
				rejects.Add(1)
			} else {
				successes.Add(1)
			}
		}()
	}
	wg.Wait()

	if successes.Load() != 50 {
		t.Errorf("expected exactly 50 successful withdrawals, got %d", successes.Load())
	}
	if rejects.Load() != 10 {
		t.Errorf("expected 10 rejected withdrawals, got %d", rejects.Load())
	}

	final, err := env.AccountUC.CheckBalance(ctx, account.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !final.Balance.IsZero() {
		t.Errorf("expected zero balance, got %s", final.Balance)
	}

	env.MustCheckConsistency(ctx)
}

func TestConcurrentTransfersConserveTotal(t *testing.T) {
	ctx := context.Background()
	env := testutil.NewLedgerEnv(t)

	accounts := env.CreateTestAccounts(ctx, 4)
	total := domain.MinInitialDeposit.Mul(decimal.NewFromInt(4))

	numTransfers := 200
	amount := decimal.NewFromInt(500)

	var wg sync.WaitGroup
	wg.Add(numTransfers)
	for i := 0; i < numTransfers; i++ {
		from := accounts[i%4]
		to := accounts[(i+1)%4]
		go func() {
			defer wg.Done()
			// Rejections are fine; only partial application would
			// break conservation.
			_, _ = env.TransferUC.Transfer(ctx, usecase.TransferInput{
				FromAccountID: from.ID,
				ToAccountID:   to.ID,
				Amount:        amount,
			})
		}()
	}
	wg.Wait()

	sum := decimal.Zero
	for _, acc := range accounts {
		current, err := env.AccountUC.CheckBalance(ctx, acc.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		sum = sum.Add(current.Balance)
	}

	if !sum.Equal(total) {
		t.Errorf("expected conserved total %s, got %s", total, sum)
	}

	env.MustCheckConsistency(ctx)
}

func TestConcurrentCashMovements(t *testing.T) {
	ctx := context.Background()
	env := testutil.NewLedgerEnv(t)

	accounts := env.CreateTestAccounts(ctx, 5)
	bank := env.CreateTestBank(ctx, accounts, decimal.NewFromInt(1000000))

	branch, err := env.BankUC.ProvisionBranch(ctx, usecase.ProvisionBranchInput{
		BankID:   bank.ID,
		Name:     "Concurrent",
		ATMCount: 2,
	})
	if err != nil {
		t.Fatalf("provision failed: %v", err)
	}

	numRounds := 50
	amount := decimal.NewFromInt(100)

	var wg sync.WaitGroup
	wg.Add(numRounds * 2)
	for i := 0; i < numRounds; i++ {
		for _, atmID := range branch.ATMIDs {
			go func(atmID string) {
				defer wg.Done()
				if _, err := env.TransferUC.DepositToATM(ctx, usecase.ATMMovementInput{
					BankID: bank.ID,
					ATMID:  atmID,
					Amount: amount,
				}); err != nil {
					t.Errorf("cash movement failed: %v", err)
				}
			}(atmID)
		}
	}
	wg.Wait()

	// 100 movements of 100 drained 10000 from the repository.
	updated, err := env.BankUC.GetBank(ctx, bank.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated.RepositoryBalance.Equal(decimal.NewFromInt(990000)) {
		t.Errorf("expected repository 990000, got %s", updated.RepositoryBalance)
	}

	atms, err := env.BankUC.ListATMs(ctx, branch.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cash := decimal.Zero
	for _, atm := range atms {
		cash = cash.Add(atm.CashBalance)
	}
	if !cash.Equal(decimal.NewFromInt(10000)) {
		t.Errorf("expected 10000 across ATMs, got %s", cash)
	}
}
