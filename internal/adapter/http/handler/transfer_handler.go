package handler

import (
	"net/http"
	"time"

	"github.com/peerpay/peerledger/internal/adapter/http/dto"
	"github.com/peerpay/peerledger/internal/adapter/http/middleware"
	"github.com/peerpay/peerledger/internal/infrastructure/metrics"
	"github.com/peerpay/peerledger/internal/usecase"
)

// TransferHandler handles transfer-related HTTP requests.
type TransferHandler struct {
	transferUC *usecase.TransferUseCase
	metrics    *metrics.Metrics
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transferUC *usecase.TransferUseCase, m *metrics.Metrics) *TransferHandler {
	return &TransferHandler{transferUC: transferUC, metrics: m}
}

// Create executes a transfer from the authenticated actor.
func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing actor identity")
		return
	}

	var req dto.TransferRequest
	if err := dto.DecodeStrict(r.Body, &req); err != nil {
		writeDomainError(w, err)
		return
	}

	if err := req.Validate(); err != nil {
		writeDomainError(w, err)
		return
	}

	start := time.Now()

	result, err := h.transferUC.Execute(r.Context(), req.ToDomain(actorID))
	if err != nil {
		_, kind := mapDomainError(err)
		h.metrics.TransferErrors.WithLabelValues(kind).Inc()
		writeDomainError(w, err)

		return
	}

	h.metrics.TransfersCreated.Inc()
	h.metrics.TransferDuration.Observe(time.Since(start).Seconds())
	h.metrics.TransferAmount.Observe(result.Amount.InexactFloat64())

	writeJSON(w, http.StatusOK, dto.NewTransferResponse(result))
}
