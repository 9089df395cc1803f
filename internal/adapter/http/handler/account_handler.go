package handler

import (
	"net/http"

	"github.com/peerpay/peerledger/internal/adapter/http/dto"
	"github.com/peerpay/peerledger/internal/adapter/http/middleware"
	"github.com/peerpay/peerledger/internal/infrastructure/metrics"
	"github.com/peerpay/peerledger/internal/usecase"
)

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accountUC *usecase.AccountUseCase
	queryUC   *usecase.QueryUseCase
	metrics   *metrics.Metrics
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC *usecase.AccountUseCase, queryUC *usecase.QueryUseCase, m *metrics.Metrics) *AccountHandler {
	return &AccountHandler{accountUC: accountUC, queryUC: queryUC, metrics: m}
}

// GetBalance returns the authenticated actor's balance.
func (h *AccountHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing actor identity")
		return
	}

	balance, err := h.queryUC.GetBalance(r.Context(), actorID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceResponse{
		UserID:  actorID,
		Balance: balance,
	})
}

// Open provisions an account for a newly registered user. Called by the
// registration collaborator, not by end users.
func (h *AccountHandler) Open(w http.ResponseWriter, r *http.Request) {
	var req dto.OpenAccountRequest
	if err := dto.DecodeStrict(r.Body, &req); err != nil {
		writeDomainError(w, err)
		return
	}

	if err := req.Validate(); err != nil {
		writeDomainError(w, err)
		return
	}

	account, err := h.accountUC.OpenAccount(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	h.metrics.AccountsOpened.Inc()

	writeJSON(w, http.StatusCreated, dto.NewAccountResponse(account))
}
