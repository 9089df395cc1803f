package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/peerpay/peerledger/internal/adapter/http/handler"
)

func TestTransferHandler_Create(t *testing.T) {
	env := newTestEnv()
	env.seed("alice", "500.00")
	env.seed("bob", "0")

	h := handler.NewTransferHandler(env.transferUC, sharedMetrics())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/account/transfer",
		strings.NewReader(`{"to":"bob","amount":150.50,"description":"rent"}`))
	rec := httptest.NewRecorder()

	h.Create(rec, asActor(req, "alice"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Reference  string `json:"reference"`
		Amount     string `json:"amount"`
		NewBalance string `json:"newBalance"`
	}
	decodeBody(t, rec, &resp)

	if resp.Reference == "" {
		t.Error("expected a reference")
	}
	if resp.NewBalance != "349.5" {
		t.Errorf("expected newBalance 349.5, got %s", resp.NewBalance)
	}
	if got := env.store.Balance("bob").String(); got != "150.5" {
		t.Errorf("bob balance: expected 150.5, got %s", got)
	}
}

func TestTransferHandler_Create_Errors(t *testing.T) {
	tests := []struct {
		name       string
		actor      string
		body       string
		wantStatus int
		wantKind   string
	}{
		{
			name:       "unknown field",
			actor:      "alice",
			body:       `{"to":"bob","amount":10,"sender":"mallory"}`,
			wantStatus: http.StatusBadRequest,
			wantKind:   "MALFORMED_BODY",
		},
		{
			name:       "missing recipient",
			actor:      "alice",
			body:       `{"amount":10}`,
			wantStatus: http.StatusBadRequest,
			wantKind:   "MALFORMED_BODY",
		},
		{
			name:       "insufficient funds",
			actor:      "alice",
			body:       `{"to":"bob","amount":9999.99}`,
			wantStatus: http.StatusBadRequest,
			wantKind:   "INSUFFICIENT_FUNDS",
		},
		{
			name:       "self transfer",
			actor:      "alice",
			body:       `{"to":"alice","amount":10}`,
			wantStatus: http.StatusBadRequest,
			wantKind:   "SELF_TRANSFER",
		},
		{
			name:       "sub-cent amount",
			actor:      "alice",
			body:       `{"to":"bob","amount":10.005}`,
			wantStatus: http.StatusBadRequest,
			wantKind:   "INVALID_AMOUNT",
		},
		{
			name:       "unknown recipient",
			actor:      "alice",
			body:       `{"to":"ghost","amount":10}`,
			wantStatus: http.StatusBadRequest,
			wantKind:   "RECIPIENT_NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			env.seed("alice", "500.00")
			env.seed("bob", "0")

			h := handler.NewTransferHandler(env.transferUC, sharedMetrics())

			req := httptest.NewRequest(http.MethodPost, "/api/v1/account/transfer", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			h.Create(rec, asActor(req, tt.actor))

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
			if kind := errorKind(t, rec); kind != tt.wantKind {
				t.Errorf("expected kind %s, got %s", tt.wantKind, kind)
			}
			if env.store.Commits() != 0 {
				t.Errorf("rejected transfer must not commit, got %d", env.store.Commits())
			}
		})
	}
}

func TestTransferHandler_Create_MissingActor(t *testing.T) {
	env := newTestEnv()
	h := handler.NewTransferHandler(env.transferUC, sharedMetrics())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/account/transfer",
		strings.NewReader(`{"to":"bob","amount":10}`))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}
