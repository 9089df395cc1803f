package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/peerpay/peerledger/internal/domain"
	"github.com/peerpay/peerledger/internal/infrastructure/postgres/generated"
	"github.com/peerpay/peerledger/internal/usecase"
)

// LedgerRepository implements usecase.LedgerRepository over the
// append-only entries table. Rows are never updated or deleted; the
// schema has no UPDATE path for them.
type LedgerRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Append writes an entry inside the engine's transaction. The unique
// (reference, direction) index turns a reference collision into
// domain.ErrDuplicateReference instead of silently overwriting.
func (r *LedgerRepository) Append(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	_, err := queries.CreateEntry(ctx, generated.CreateEntryParams{
		ID:                   entry.ID,
		Reference:            entry.Reference,
		AccountID:            entry.AccountID,
		Direction:            string(entry.Direction),
		SenderID:             entry.SenderID,
		ReceiverID:           entry.ReceiverID,
		Amount:               decimalToNumeric(entry.Amount),
		Status:               string(entry.Status),
		Description:          entry.Description,
		SenderBalanceAfter:   decimalToNumeric(entry.SenderBalanceAfter),
		ReceiverBalanceAfter: decimalToNumeric(entry.ReceiverBalanceAfter),
		CreatedAt:            timeToPgTimestamptz(entry.CreatedAt),
	})
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateReference, entry.Reference)
	}

	return err
}

// GetByReference retrieves the entry pair for a transfer.
func (r *LedgerRepository) GetByReference(ctx context.Context, reference string) ([]*domain.LedgerEntry, error) {
	rows, err := r.queries.GetEntriesByReference(ctx, reference)
	if err != nil {
		return nil, err
	}

	return rowsToEntries(rows), nil
}

// QueryByParticipant lists a participant's entries newest first.
func (r *LedgerRepository) QueryByParticipant(ctx context.Context, userID string, direction domain.EntryDirection, limit, offset int) ([]*domain.LedgerEntry, error) {
	rows, err := r.queries.ListEntriesByParticipant(ctx, generated.ListEntriesByParticipantParams{
		AccountID: userID,
		Direction: string(direction),
		Limit:     int32(limit),
		Offset:    int32(offset),
	})
	if err != nil {
		return nil, err
	}

	return rowsToEntries(rows), nil
}

// CountByParticipant counts a participant's entries for pagination.
func (r *LedgerRepository) CountByParticipant(ctx context.Context, userID string, direction domain.EntryDirection) (int64, error) {
	return r.queries.CountEntriesByParticipant(ctx, generated.CountEntriesByParticipantParams{
		AccountID: userID,
		Direction: string(direction),
	})
}

// CheckConsistency returns the conservation sums: total account balance,
// the ledger's net delta, and the count of references whose rows do not
// pair up.
func (r *LedgerRepository) CheckConsistency(ctx context.Context) (decimal.Decimal, decimal.Decimal, int64, error) {
	totalBalance, err := r.queries.SumAccountBalances(ctx)
	if err != nil {
		return decimal.Zero, decimal.Zero, 0, err
	}

	totalDelta, err := r.queries.SumEntryDeltas(ctx)
	if err != nil {
		return decimal.Zero, decimal.Zero, 0, err
	}

	unbalanced, err := r.queries.CountUnbalancedReferences(ctx)
	if err != nil {
		return decimal.Zero, decimal.Zero, 0, err
	}

	return numericToDecimal(totalBalance), numericToDecimal(totalDelta), unbalanced, nil
}

func rowsToEntries(rows []generated.Entry) []*domain.LedgerEntry {
	entries := make([]*domain.LedgerEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, rowToEntry(row))
	}

	return entries
}

func rowToEntry(row generated.Entry) *domain.LedgerEntry {
	return &domain.LedgerEntry{
		ID:                   row.ID,
		Reference:            row.Reference,
		AccountID:            row.AccountID,
		Direction:            domain.EntryDirection(row.Direction),
		SenderID:             row.SenderID,
		ReceiverID:           row.ReceiverID,
		Amount:               numericToDecimal(row.Amount),
		Status:               domain.EntryStatus(row.Status),
		Description:          row.Description,
		SenderBalanceAfter:   numericToDecimal(row.SenderBalanceAfter),
		ReceiverBalanceAfter: numericToDecimal(row.ReceiverBalanceAfter),
		CreatedAt:            row.CreatedAt.Time,
	}
}
