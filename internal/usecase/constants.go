package usecase

import "time"

const (
	// MaxTransferAttempts bounds retries of the atomic unit on transient
	// storage failures and reference collisions.
	MaxTransferAttempts = 3

	// IdempotencyKeyTTL is how long idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour
)
