package dto_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/peerpay/peerledger/internal/adapter/http/dto"
)

func TestDecodeStrict(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{
			name: "valid body",
			body: `{"to":"bob","amount":150.50,"description":"rent"}`,
		},
		{
			name: "description omitted",
			body: `{"to":"bob","amount":10}`,
		},
		{
			name:    "unknown field rejected",
			body:    `{"to":"bob","amount":10,"sender":"mallory"}`,
			wantErr: true,
		},
		{
			name:    "trailing garbage rejected",
			body:    `{"to":"bob","amount":10}{"to":"carol"}`,
			wantErr: true,
		},
		{
			name:    "wrong type rejected",
			body:    `{"to":"bob","amount":"lots"}`,
			wantErr: true,
		},
		{
			name:    "not JSON",
			body:    `to=bob&amount=10`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req dto.TransferRequest
			err := dto.DecodeStrict(strings.NewReader(tt.body), &req)

			if tt.wantErr {
				if !errors.Is(err, dto.ErrMalformedBody) {
					t.Errorf("expected ErrMalformedBody, got %v", err)
				}
				return
			}

			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestTransferRequest_Validate(t *testing.T) {
	valid := dto.TransferRequest{To: "bob", Amount: decimal.RequireFromString("10")}
	if err := valid.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	missingTo := dto.TransferRequest{Amount: decimal.RequireFromString("10")}
	if err := missingTo.Validate(); !errors.Is(err, dto.ErrMalformedBody) {
		t.Errorf("expected ErrMalformedBody for missing 'to', got %v", err)
	}

	missingAmount := dto.TransferRequest{To: "bob"}
	if err := missingAmount.Validate(); !errors.Is(err, dto.ErrMalformedBody) {
		t.Errorf("expected ErrMalformedBody for missing 'amount', got %v", err)
	}
}

func TestTransferRequest_ToDomain(t *testing.T) {
	req := dto.TransferRequest{To: "bob", Amount: decimal.RequireFromString("10"), Description: "rent"}

	domainReq := req.ToDomain("alice")
	if domainReq.ActorID != "alice" {
		t.Errorf("actor must come from the verified token, got %s", domainReq.ActorID)
	}
	if domainReq.RecipientID != "bob" {
		t.Errorf("expected recipient bob, got %s", domainReq.RecipientID)
	}
}

func TestOpenAccountRequest_Validate(t *testing.T) {
	valid := dto.OpenAccountRequest{UserID: "alice"}
	if err := valid.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	missing := dto.OpenAccountRequest{}
	if err := missing.Validate(); !errors.Is(err, dto.ErrMalformedBody) {
		t.Errorf("expected ErrMalformedBody, got %v", err)
	}
}
