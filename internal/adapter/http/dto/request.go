package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/peerpay/peerledger/internal/domain"
	"github.com/peerpay/peerledger/internal/usecase"
)

// ErrMalformedBody reports a request body that does not match the
// declared shape. Unknown fields are rejected, not ignored, so malformed
// clients fail loudly instead of silently dropping data.
var ErrMalformedBody = errors.New("malformed request body")

// DecodeStrict decodes JSON into dst, rejecting unknown fields and
// trailing garbage.
func DecodeStrict(r io.Reader, dst any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}

	if dec.More() {
		return fmt.Errorf("%w: unexpected trailing data", ErrMalformedBody)
	}

	return nil
}

// TransferRequest represents a request to transfer funds. The actor is
// taken from the verified token, never from the body.
type TransferRequest struct {
	To          string          `json:"to"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
}

// Validate checks the enumerated required fields.
func (r *TransferRequest) Validate() error {
	if r.To == "" {
		return fmt.Errorf("%w: missing required field 'to'", ErrMalformedBody)
	}

	if r.Amount.IsZero() {
		return fmt.Errorf("%w: missing required field 'amount'", ErrMalformedBody)
	}

	return nil
}

// ToDomain converts to the engine's request type.
func (r *TransferRequest) ToDomain(actorID string) domain.TransferRequest {
	return domain.TransferRequest{
		ActorID:     actorID,
		RecipientID: r.To,
		Amount:      r.Amount,
		Description: r.Description,
	}
}

// OpenAccountRequest represents a provisioning request from the
// registration collaborator.
type OpenAccountRequest struct {
	UserID         string          `json:"user_id"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

// Validate checks the enumerated required fields.
func (r *OpenAccountRequest) Validate() error {
	if r.UserID == "" {
		return fmt.Errorf("%w: missing required field 'user_id'", ErrMalformedBody)
	}

	return nil
}

// ToUseCaseInput converts to use case input.
func (r *OpenAccountRequest) ToUseCaseInput() usecase.OpenAccountInput {
	return usecase.OpenAccountInput{
		UserID:         r.UserID,
		InitialBalance: r.InitialBalance,
	}
}
