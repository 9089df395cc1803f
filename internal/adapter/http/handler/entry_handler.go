package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/peerpay/peerledger/internal/adapter/http/dto"
	"github.com/peerpay/peerledger/internal/adapter/http/middleware"
	"github.com/peerpay/peerledger/internal/usecase"
)

// EntryHandler serves the read path over the ledger.
type EntryHandler struct {
	queryUC *usecase.QueryUseCase
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(queryUC *usecase.QueryUseCase) *EntryHandler {
	return &EntryHandler{queryUC: queryUC}
}

// History returns one page of the actor's ledger entries, newest first.
// Supports page, pageSize and type (all|sent|received) query parameters.
func (h *EntryHandler) History(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing actor identity")
		return
	}

	filter := usecase.HistoryFilter(r.URL.Query().Get("type"))
	switch filter {
	case "", usecase.FilterAll, usecase.FilterSent, usecase.FilterReceived:
	default:
		writeError(w, http.StatusBadRequest, "MALFORMED_BODY", "type must be one of all, sent, received")
		return
	}

	entries, pagination, err := h.queryUC.GetHistory(r.Context(), usecase.GetHistoryInput{
		ActorID:  actorID,
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "pageSize", 10),
		Type:     filter,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewHistoryResponse(entries, pagination))
}

// Detail returns the actor's side of one transfer. References the actor
// was not a party to are indistinguishable from unknown references.
func (h *EntryHandler) Detail(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing actor identity")
		return
	}

	reference := chi.URLParam(r, "reference")
	if reference == "" {
		writeError(w, http.StatusBadRequest, "MALFORMED_BODY", "missing reference")
		return
	}

	entry, err := h.queryUC.GetEntry(r.Context(), reference, actorID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewEntryResponse(entry))
}
