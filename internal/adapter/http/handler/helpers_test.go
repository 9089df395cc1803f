package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/peerpay/peerledger/internal/adapter/http/middleware"
	"github.com/peerpay/peerledger/internal/infrastructure/metrics"
	"github.com/peerpay/peerledger/internal/usecase"
	"github.com/peerpay/peerledger/internal/usecase/mocks"
)

var (
	metricsOnce sync.Once
	testMetrics *metrics.Metrics
)

// sharedMetrics returns a process-wide Metrics instance. promauto
// registers against the default registry, so it must be created once per
// test binary.
func sharedMetrics() *metrics.Metrics {
	metricsOnce.Do(func() {
		testMetrics = metrics.New()
	})
	return testMetrics
}

// testEnv wires the use cases over a FakeStore for handler tests.
type testEnv struct {
	store      *mocks.FakeStore
	transferUC *usecase.TransferUseCase
	queryUC    *usecase.QueryUseCase
	accountUC  *usecase.AccountUseCase
}

func newTestEnv() *testEnv {
	store := mocks.NewFakeStore()
	return &testEnv{
		store: store,
		transferUC: usecase.NewTransferUseCase(store, store, store,
			mocks.NewMockReferenceGenerator(), mocks.NewMockRetrier(), nil, zerolog.Nop()),
		queryUC:   usecase.NewQueryUseCase(store, store),
		accountUC: usecase.NewAccountUseCase(store),
	}
}

func (e *testEnv) seed(userID, balance string) {
	e.store.Seed(userID, decimal.RequireFromString(balance))
}

// asActor attaches a verified actor identity the way the auth middleware
// would.
func asActor(r *http.Request, actorID string) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.ActorContextKey, actorID)
	return r.WithContext(ctx)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(dst); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}

func errorKind(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	decodeBody(t, rec, &body)
	return body.Error
}
