package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/peerpay/peerledger/internal/adapter/http/handler"
)

func TestAccountHandler_GetBalance(t *testing.T) {
	env := newTestEnv()
	env.seed("alice", "349.50")

	h := handler.NewAccountHandler(env.accountUC, env.queryUC, sharedMetrics())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/account/balance", nil)
	rec := httptest.NewRecorder()

	h.GetBalance(rec, asActor(req, "alice"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		UserID  string `json:"userId"`
		Balance string `json:"balance"`
	}
	decodeBody(t, rec, &resp)

	if resp.UserID != "alice" || resp.Balance != "349.5" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestAccountHandler_GetBalance_UnknownAccount(t *testing.T) {
	env := newTestEnv()
	h := handler.NewAccountHandler(env.accountUC, env.queryUC, sharedMetrics())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/account/balance", nil)
	rec := httptest.NewRecorder()

	h.GetBalance(rec, asActor(req, "ghost"))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if kind := errorKind(t, rec); kind != "ACCOUNT_NOT_FOUND" {
		t.Errorf("expected ACCOUNT_NOT_FOUND, got %s", kind)
	}
}

func TestAccountHandler_Open(t *testing.T) {
	env := newTestEnv()
	h := handler.NewAccountHandler(env.accountUC, env.queryUC, sharedMetrics())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/internal/accounts",
		strings.NewReader(`{"user_id":"alice","initial_balance":500}`))
	rec := httptest.NewRecorder()

	h.Open(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if got := env.store.Balance("alice").String(); got != "500" {
		t.Errorf("expected balance 500, got %s", got)
	}
}

func TestAccountHandler_Open_Duplicate(t *testing.T) {
	env := newTestEnv()
	env.seed("alice", "100")

	h := handler.NewAccountHandler(env.accountUC, env.queryUC, sharedMetrics())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/internal/accounts",
		strings.NewReader(`{"user_id":"alice"}`))
	rec := httptest.NewRecorder()

	h.Open(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if kind := errorKind(t, rec); kind != "ACCOUNT_EXISTS" {
		t.Errorf("expected ACCOUNT_EXISTS, got %s", kind)
	}
}
