package domain

import (
	"github.com/shopspring/decimal"
)

// TransferRequest is a validated request handed to the transfer engine.
// ActorID comes from the identity collaborator and is trusted completely.
type TransferRequest struct {
	ActorID     string
	RecipientID string
	Amount      decimal.Decimal
	Description string
}

// Validate checks the request preconditions that need no storage access,
// in the order they are surfaced to callers.
func (r *TransferRequest) Validate() error {
	if err := ValidateAmount(r.Amount); err != nil {
		return err
	}

	if r.RecipientID == r.ActorID {
		return ErrSelfTransfer
	}

	return ValidateDescription(r.Description)
}

// TransferResult is returned after a committed transfer.
type TransferResult struct {
	Reference     string
	Amount        decimal.Decimal
	SenderBalance decimal.Decimal
}
