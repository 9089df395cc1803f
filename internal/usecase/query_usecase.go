package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/peerpay/peerledger/internal/domain"
)

// QueryUseCase is the read-only path over the two stores. It never
// mutates state.
type QueryUseCase struct {
	accountRepo AccountRepository
	ledgerRepo  LedgerRepository
}

// NewQueryUseCase creates a new QueryUseCase.
func NewQueryUseCase(accountRepo AccountRepository, ledgerRepo LedgerRepository) *QueryUseCase {
	return &QueryUseCase{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
	}
}

// GetBalance returns the actor's current balance.
func (uc *QueryUseCase) GetBalance(ctx context.Context, actorID string) (decimal.Decimal, error) {
	account, err := uc.accountRepo.GetByUserID(ctx, actorID)
	if err != nil {
		return decimal.Zero, err
	}

	return account.Balance, nil
}

// HistoryFilter narrows a history query to one side of the ledger.
type HistoryFilter string

const (
	FilterAll      HistoryFilter = "all"
	FilterSent     HistoryFilter = "sent"
	FilterReceived HistoryFilter = "received"
)

func (f HistoryFilter) direction() domain.EntryDirection {
	switch f {
	case FilterSent:
		return domain.DirectionDebit
	case FilterReceived:
		return domain.DirectionCredit
	default:
		return ""
	}
}

// GetHistoryInput represents input for a history page.
type GetHistoryInput struct {
	ActorID  string
	Page     int
	PageSize int
	Type     HistoryFilter
}

// Pagination describes the position of a history page.
type Pagination struct {
	CurrentPage  int
	TotalPages   int
	TotalEntries int64
	HasMore      bool
}

// GetHistory returns one page of the actor's ledger entries, newest
// first. With the two-linked-entries model a participant's history is a
// single-sided lookup on the owning account column.
func (uc *QueryUseCase) GetHistory(ctx context.Context, input GetHistoryInput) ([]*domain.LedgerEntry, Pagination, error) {
	page, pageSize := domain.ValidatePagination(input.Page, input.PageSize)
	direction := input.Type.direction()

	total, err := uc.ledgerRepo.CountByParticipant(ctx, input.ActorID, direction)
	if err != nil {
		return nil, Pagination{}, err
	}

	offset := (page - 1) * pageSize

	entries, err := uc.ledgerRepo.QueryByParticipant(ctx, input.ActorID, direction, pageSize, offset)
	if err != nil {
		return nil, Pagination{}, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return entries, Pagination{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalEntries: total,
		HasMore:      int64(offset+len(entries)) < total,
	}, nil
}

// GetEntry returns the actor's side of a transfer. Entries the actor is
// not a party to report domain.ErrEntryNotFound, the same as unknown
// references, so the existence of arbitrary references never leaks.
func (uc *QueryUseCase) GetEntry(ctx context.Context, reference, actorID string) (*domain.LedgerEntry, error) {
	entries, err := uc.ledgerRepo.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if entry.AccountID == actorID {
			return entry, nil
		}
	}

	return nil, domain.ErrEntryNotFound
}
