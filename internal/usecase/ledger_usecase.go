package usecase

import (
	"context"

	"github.com/shopspring/decimal"
)

// LedgerUseCase handles ledger-wide operations.
type LedgerUseCase struct {
	ledgerRepo LedgerRepository
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(ledgerRepo LedgerRepository) *LedgerUseCase {
	return &LedgerUseCase{ledgerRepo: ledgerRepo}
}

// ConsistencyReport is the result of a conservation check.
type ConsistencyReport struct {
	Consistent bool
	// TotalBalance is the sum of all account balances.
	TotalBalance decimal.Decimal
	// TotalDelta is the net of all ledger entries (credits minus
	// debits). Since transfers only move funds between accounts it must
	// be zero: seeded capital enters accounts outside the ledger.
	TotalDelta decimal.Decimal
	// UnbalancedReferences counts transfers whose debit and credit rows
	// do not net to zero. Any value above zero means a broken pair.
	UnbalancedReferences int64
}

// CheckConsistency verifies conservation of total balance: every
// committed transfer's rows net to zero and the ledger as a whole moves
// no money in or out of the system.
func (uc *LedgerUseCase) CheckConsistency(ctx context.Context) (*ConsistencyReport, error) {
	totalBalance, totalDelta, unbalanced, err := uc.ledgerRepo.CheckConsistency(ctx)
	if err != nil {
		return nil, err
	}

	return &ConsistencyReport{
		Consistent:           totalDelta.IsZero() && unbalanced == 0,
		TotalBalance:         totalBalance,
		TotalDelta:           totalDelta,
		UnbalancedReferences: unbalanced,
	}, nil
}
