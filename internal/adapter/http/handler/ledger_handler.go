package handler

import (
	"net/http"

	"github.com/peerpay/peerledger/internal/adapter/http/dto"
	"github.com/peerpay/peerledger/internal/usecase"
)

// LedgerHandler serves ledger-wide operational endpoints.
type LedgerHandler struct {
	ledgerUC *usecase.LedgerUseCase
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC *usecase.LedgerUseCase) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC}
}

// Consistency runs the conservation check over the whole ledger.
func (h *LedgerHandler) Consistency(w http.ResponseWriter, r *http.Request) {
	report, err := h.ledgerUC.CheckConsistency(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewConsistencyResponse(report))
}
