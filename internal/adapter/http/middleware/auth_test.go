package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/peerpay/peerledger/internal/adapter/http/middleware"
	"github.com/peerpay/peerledger/internal/infrastructure/auth"
)

func TestAuthMiddleware(t *testing.T) {
	manager := auth.NewJWTManager("test-secret", time.Hour)

	token, err := manager.Generate("alice")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	var gotActor string
	handler := middleware.AuthMiddleware(manager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotActor, _ = middleware.ActorFromContext(r.Context())
	}))

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantActor  string
	}{
		{name: "valid token", header: "Bearer " + token, wantStatus: http.StatusOK, wantActor: "alice"},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + token, wantStatus: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer garbage", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotActor = ""

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
			if gotActor != tt.wantActor {
				t.Errorf("expected actor %q, got %q", tt.wantActor, gotActor)
			}
		})
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	issuer := auth.NewJWTManager("test-secret", -time.Minute)
	verifier := auth.NewJWTManager("test-secret", time.Hour)

	token, err := issuer.Generate("alice")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	handler := middleware.AuthMiddleware(verifier)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}
