package integration

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/peerpay/peerledger/internal/adapter/repository/postgres"
	"github.com/peerpay/peerledger/internal/domain"
	"github.com/peerpay/peerledger/tests/testutil"
)

func TestConcurrentTransfers_NoDoubleSpend(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	db := testutil.NewTestDB(t)
	defer db.Cleanup()
	db.TruncateAll(ctx)

	db.CreateTestAccount(ctx, "alice", decimal.RequireFromString("100.00"))
	for i := 0; i < 10; i++ {
		db.CreateTestAccount(ctx, fmt.Sprintf("recipient-%d", i), decimal.Zero)
	}

	engine := newEngine(db)

	// 10 concurrent transfers of 30.00 against a 100.00 balance:
	// at most 3 can succeed.
	var wg sync.WaitGroup
	results := make([]error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := engine.Execute(ctx, domain.TransferRequest{
				ActorID:     "alice",
				RecipientID: fmt.Sprintf("recipient-%d", i),
				Amount:      decimal.RequireFromString("30.00"),
			})
			results[i] = err
		}(i)
	}
	wg.Wait()

	var succeeded, rejected int
	for i, err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domain.ErrInsufficientFunds):
			rejected++
		default:
			t.Errorf("transfer %d: unexpected error: %v", i, err)
		}
	}
	if succeeded != 3 {
		t.Errorf("expected exactly 3 transfers to succeed, got %d", succeeded)
	}
	if rejected != 7 {
		t.Errorf("expected 7 rejections, got %d", rejected)
	}

	accountRepo := postgres.NewAccountRepository(db.Pool)
	alice, err := accountRepo.GetByUserID(ctx, "alice")
	if err != nil {
		t.Fatalf("failed to load alice: %v", err)
	}
	if !alice.Balance.Equal(decimal.RequireFromString("10.00")) {
		t.Errorf("expected alice balance 10.00, got %s", alice.Balance)
	}

	// Money is conserved across all accounts.
	var total decimal.Decimal = alice.Balance
	for i := 0; i < 10; i++ {
		acc, err := accountRepo.GetByUserID(ctx, fmt.Sprintf("recipient-%d", i))
		if err != nil {
			t.Fatalf("failed to load recipient-%d: %v", i, err)
		}
		total = total.Add(acc.Balance)
	}
	if !total.Equal(decimal.RequireFromString("100.00")) {
		t.Errorf("total balance must be conserved: expected 100.00, got %s", total)
	}
}

func TestConcurrentTransfers_BidirectionalNoDeadlock(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	db := testutil.NewTestDB(t)
	defer db.Cleanup()
	db.TruncateAll(ctx)

	db.CreateTestAccount(ctx, "alice", decimal.RequireFromString("1000.00"))
	db.CreateTestAccount(ctx, "bob", decimal.RequireFromString("1000.00"))

	engine := newEngine(db)

	// Opposite directions between the same pair stress the lock
	// ordering; sorted acquisition must keep this deadlock-free.
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := engine.Execute(ctx, domain.TransferRequest{
				ActorID:     "alice",
				RecipientID: "bob",
				Amount:      decimal.RequireFromString("1.00"),
			})
			if err != nil {
				t.Errorf("alice->bob: %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			_, err := engine.Execute(ctx, domain.TransferRequest{
				ActorID:     "bob",
				RecipientID: "alice",
				Amount:      decimal.RequireFromString("1.00"),
			})
			if err != nil {
				t.Errorf("bob->alice: %v", err)
			}
		}()
	}
	wg.Wait()

	accountRepo := postgres.NewAccountRepository(db.Pool)
	alice, err := accountRepo.GetByUserID(ctx, "alice")
	if err != nil {
		t.Fatalf("failed to load alice: %v", err)
	}
	bob, err := accountRepo.GetByUserID(ctx, "bob")
	if err != nil {
		t.Fatalf("failed to load bob: %v", err)
	}

	if !alice.Balance.Equal(decimal.RequireFromString("1000.00")) {
		t.Errorf("expected alice balance 1000.00, got %s", alice.Balance)
	}
	if !bob.Balance.Equal(decimal.RequireFromString("1000.00")) {
		t.Errorf("expected bob balance 1000.00, got %s", bob.Balance)
	}
}
