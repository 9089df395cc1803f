package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/peerpay/peerledger/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByUserID(ctx context.Context, userID string) (*domain.Account, error)
	// GetForUpdate locks the given accounts for the duration of tx.
	// Callers must pass IDs in sorted order; rows are locked in that
	// order to prevent deadlock between concurrent transfers.
	GetForUpdate(ctx context.Context, tx Transaction, userIDs []string) ([]*domain.Account, error)
	// ApplyDelta atomically adjusts the balance by delta, failing with
	// domain.ErrInsufficientFunds if the result would drop below zero.
	// It returns the new balance. This is the only balance mutation
	// primitive; the engine composes two calls inside one transaction.
	ApplyDelta(ctx context.Context, tx Transaction, userID string, delta decimal.Decimal, updatedAt time.Time) (decimal.Decimal, error)
}

// LedgerRepository defines data access for the append-only ledger.
type LedgerRepository interface {
	// Append writes an immutable entry within tx. A reference collision
	// surfaces as domain.ErrDuplicateReference.
	Append(ctx context.Context, tx Transaction, entry *domain.LedgerEntry) error
	GetByReference(ctx context.Context, reference string) ([]*domain.LedgerEntry, error)
	// QueryByParticipant returns the participant's entries newest first.
	// direction narrows to one side ("" means both).
	QueryByParticipant(ctx context.Context, userID string, direction domain.EntryDirection, limit, offset int) ([]*domain.LedgerEntry, error)
	CountByParticipant(ctx context.Context, userID string, direction domain.EntryDirection) (int64, error)
	// CheckConsistency reports the sums used by the conservation check.
	CheckConsistency(ctx context.Context) (totalBalance, totalDelta decimal.Decimal, unbalancedRefs int64, err error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// ReferenceGenerator generates collision-resistant transfer references
// and entry IDs.
type ReferenceGenerator interface {
	NewReference() string
	NewID() string
}

// Retrier retries an operation on transient storage failures with
// backoff; permanent errors pass through untouched.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// RiskEvaluator is an advisory hook invoked before the atomic unit. It
// never blocks a transfer; the engine logs the assessment and moves on.
type RiskEvaluator interface {
	Evaluate(ctx context.Context, input RiskInput) RiskAssessment
}

// RiskInput is what the evaluator sees about a transfer attempt.
type RiskInput struct {
	ActorID       string
	RecipientID   string
	Amount        decimal.Decimal
	SenderBalance decimal.Decimal
}

// RiskAssessment is the advisory signal returned by the evaluator.
type RiskAssessment struct {
	Score int
	Flags []string
}

// Flagged reports whether any pattern matched.
func (a RiskAssessment) Flagged() bool {
	return len(a.Flags) > 0
}

// Counter is an externally swappable counting service with explicit
// expiry, used for rate limiting instead of process-wide mutable maps.
type Counter interface {
	// Incr increments key inside a fixed window and returns the count
	// and the time until the window resets.
	Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, claiming it if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update stores the final response for an existing key.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
