package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/peerpay/peerledger/internal/domain"
	"github.com/peerpay/peerledger/internal/usecase"
)

// ErrorResponse is the uniform error envelope. Kind is a stable
// machine-readable identifier; Message is for humans.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// BalanceResponse returns an account's current balance.
type BalanceResponse struct {
	UserID  string          `json:"userId"`
	Balance decimal.Decimal `json:"balance"`
}

// NewBalanceResponse converts an account to a balance response.
func NewBalanceResponse(account *domain.Account) BalanceResponse {
	return BalanceResponse{
		UserID:  account.UserID,
		Balance: account.Balance,
	}
}

// TransferResponse is the confirmation returned after a committed
// transfer.
type TransferResponse struct {
	Reference  string          `json:"reference"`
	Amount     decimal.Decimal `json:"amount"`
	NewBalance decimal.Decimal `json:"newBalance"`
}

// NewTransferResponse converts a transfer result to a response.
func NewTransferResponse(result *domain.TransferResult) TransferResponse {
	return TransferResponse{
		Reference:  result.Reference,
		Amount:     result.Amount,
		NewBalance: result.SenderBalance,
	}
}

// EntryResponse is one ledger entry rendered from its owner's
// perspective.
type EntryResponse struct {
	Reference    string          `json:"reference"`
	Type         string          `json:"type"`
	Counterparty string          `json:"counterparty"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
	Status       string          `json:"status"`
	BalanceAfter decimal.Decimal `json:"balanceAfter"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// NewEntryResponse converts a ledger entry to a response.
func NewEntryResponse(entry *domain.LedgerEntry) EntryResponse {
	return EntryResponse{
		Reference:    entry.Reference,
		Type:         string(entry.Direction),
		Counterparty: entry.Counterparty(),
		Amount:       entry.Amount,
		Description:  entry.Description,
		Status:       string(entry.Status),
		BalanceAfter: entry.BalanceAfter(),
		CreatedAt:    entry.CreatedAt,
	}
}

// PaginationResponse describes the page window of a history response.
type PaginationResponse struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalEntries int64 `json:"totalEntries"`
	HasMore      bool  `json:"hasMore"`
}

// HistoryResponse is a page of the caller's ledger entries.
type HistoryResponse struct {
	Transactions []EntryResponse    `json:"transactions"`
	Pagination   PaginationResponse `json:"pagination"`
}

// NewHistoryResponse converts a history page to a response.
func NewHistoryResponse(entries []*domain.LedgerEntry, p usecase.Pagination) HistoryResponse {
	items := make([]EntryResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, NewEntryResponse(entry))
	}

	return HistoryResponse{
		Transactions: items,
		Pagination: PaginationResponse{
			CurrentPage:  p.CurrentPage,
			TotalPages:   p.TotalPages,
			TotalEntries: p.TotalEntries,
			HasMore:      p.HasMore,
		},
	}
}

// AccountResponse confirms a provisioned account.
type AccountResponse struct {
	UserID    string          `json:"userId"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"createdAt"`
}

// NewAccountResponse converts an account to a provisioning response.
func NewAccountResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		UserID:    account.UserID,
		Balance:   account.Balance,
		CreatedAt: account.CreatedAt,
	}
}

// ConsistencyResponse reports the outcome of a ledger consistency sweep.
type ConsistencyResponse struct {
	Consistent           bool            `json:"consistent"`
	TotalBalance         decimal.Decimal `json:"totalBalance"`
	TotalDelta           decimal.Decimal `json:"totalDelta"`
	UnbalancedReferences int64           `json:"unbalancedReferences"`
}

// NewConsistencyResponse converts a consistency report to a response.
func NewConsistencyResponse(report *usecase.ConsistencyReport) ConsistencyResponse {
	return ConsistencyResponse{
		Consistent:           report.Consistent,
		TotalBalance:         report.TotalBalance,
		TotalDelta:           report.TotalDelta,
		UnbalancedReferences: report.UnbalancedReferences,
	}
}
