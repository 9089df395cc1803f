package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peerpay/peerledger/internal/domain"
	"github.com/peerpay/peerledger/internal/usecase"
	"github.com/peerpay/peerledger/internal/usecase/mocks"
)

// seedHistory populates the ledger with n transfers sent by userID,
// newest first to match the repository ordering contract.
func seedHistory(ledger *mocks.MockLedgerRepository, userID string, n int) {
	for i := n; i >= 1; i-- {
		ledger.Seed(&domain.LedgerEntry{
			ID:         fmt.Sprintf("entry-%03d", i),
			Reference:  fmt.Sprintf("TXN-%03d", i),
			AccountID:  userID,
			Direction:  domain.DirectionDebit,
			SenderID:   userID,
			ReceiverID: "bob",
			Amount:     decimal.NewFromInt(int64(i)),
			Status:     domain.StatusCompleted,
		})
	}
}

func TestQueryUseCase_GetBalance(t *testing.T) {
	accounts := mocks.NewMockAccountRepository()
	accounts.Seed(&domain.Account{UserID: "alice", Balance: decimal.RequireFromString("349.50")})

	uc := usecase.NewQueryUseCase(accounts, mocks.NewMockLedgerRepository())

	balance, err := uc.GetBalance(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.RequireFromString("349.50")))

	_, err = uc.GetBalance(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestQueryUseCase_GetHistory_Pagination(t *testing.T) {
	ledger := mocks.NewMockLedgerRepository()
	seedHistory(ledger, "alice", 15)

	uc := usecase.NewQueryUseCase(mocks.NewMockAccountRepository(), ledger)

	page1, pagination, err := uc.GetHistory(context.Background(), usecase.GetHistoryInput{
		ActorID:  "alice",
		Page:     1,
		PageSize: 10,
		Type:     usecase.FilterAll,
	})
	require.NoError(t, err)
	assert.Len(t, page1, 10)
	assert.Equal(t, 1, pagination.CurrentPage)
	assert.Equal(t, 2, pagination.TotalPages)
	assert.Equal(t, int64(15), pagination.TotalEntries)
	assert.True(t, pagination.HasMore)

	page2, pagination, err := uc.GetHistory(context.Background(), usecase.GetHistoryInput{
		ActorID:  "alice",
		Page:     2,
		PageSize: 10,
		Type:     usecase.FilterAll,
	})
	require.NoError(t, err)
	assert.Len(t, page2, 5)
	assert.False(t, pagination.HasMore)

	// No overlap between pages.
	seen := make(map[string]bool)
	for _, entry := range append(page1, page2...) {
		assert.False(t, seen[entry.ID], "entry %s returned twice", entry.ID)
		seen[entry.ID] = true
	}
}

func TestQueryUseCase_GetHistory_Filters(t *testing.T) {
	ledger := mocks.NewMockLedgerRepository()
	ledger.Seed(
		&domain.LedgerEntry{ID: "e1", Reference: "TXN-001", AccountID: "alice", Direction: domain.DirectionDebit, SenderID: "alice", ReceiverID: "bob", Amount: decimal.NewFromInt(10)},
		&domain.LedgerEntry{ID: "e2", Reference: "TXN-002", AccountID: "alice", Direction: domain.DirectionCredit, SenderID: "bob", ReceiverID: "alice", Amount: decimal.NewFromInt(20)},
		&domain.LedgerEntry{ID: "e3", Reference: "TXN-003", AccountID: "alice", Direction: domain.DirectionDebit, SenderID: "alice", ReceiverID: "carol", Amount: decimal.NewFromInt(30)},
	)

	uc := usecase.NewQueryUseCase(mocks.NewMockAccountRepository(), ledger)

	sent, _, err := uc.GetHistory(context.Background(), usecase.GetHistoryInput{
		ActorID: "alice",
		Type:    usecase.FilterSent,
	})
	require.NoError(t, err)
	require.Len(t, sent, 2)
	for _, entry := range sent {
		assert.Equal(t, domain.DirectionDebit, entry.Direction)
	}

	received, pagination, err := uc.GetHistory(context.Background(), usecase.GetHistoryInput{
		ActorID: "alice",
		Type:    usecase.FilterReceived,
	})
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, int64(1), pagination.TotalEntries)
	assert.Equal(t, "e2", received[0].ID)
}

func TestQueryUseCase_GetEntry(t *testing.T) {
	ledger := mocks.NewMockLedgerRepository()
	ledger.Seed(
		&domain.LedgerEntry{ID: "e1", Reference: "TXN-001", AccountID: "alice", Direction: domain.DirectionDebit, SenderID: "alice", ReceiverID: "bob", Amount: decimal.NewFromInt(10)},
		&domain.LedgerEntry{ID: "e2", Reference: "TXN-001", AccountID: "bob", Direction: domain.DirectionCredit, SenderID: "alice", ReceiverID: "bob", Amount: decimal.NewFromInt(10)},
	)

	uc := usecase.NewQueryUseCase(mocks.NewMockAccountRepository(), ledger)

	// Each participant sees their own side.
	entry, err := uc.GetEntry(context.Background(), "TXN-001", "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.DirectionDebit, entry.Direction)

	entry, err = uc.GetEntry(context.Background(), "TXN-001", "bob")
	require.NoError(t, err)
	assert.Equal(t, domain.DirectionCredit, entry.Direction)

	// A non-participant gets the same answer as an unknown reference.
	_, errStranger := uc.GetEntry(context.Background(), "TXN-001", "carol")
	assert.ErrorIs(t, errStranger, domain.ErrEntryNotFound)

	_, errUnknown := uc.GetEntry(context.Background(), "TXN-999", "alice")
	assert.ErrorIs(t, errUnknown, domain.ErrEntryNotFound)
}
