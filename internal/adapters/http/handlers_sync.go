package http

import (
	"net/http"

	"github.com/paymentrails/monei-sync/internal/application"
)

func (h *Handler) syncCharges(w http.ResponseWriter, r *http.Request) {
	req := application.SyncRequest{}
	if r.ContentLength > 0 {
		if err := decodeBody(r, &req); err != nil {
			writeValidationError(r.Context(), w, "sync_charges", err)
			return
		}
	}

	summary, err := h.service.SyncCharges(r.Context(), req)
	if err != nil {
		writeMappedError(r.Context(), w, "sync_charges", err)
		return
	}
	writeSuccess(w, http.StatusOK, summary)
}

func (h *Handler) linkOrders(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.LinkOrders(r.Context())
	if err != nil {
		writeMappedError(r.Context(), w, "link_orders", err)
		return
	}
	writeSuccess(w, http.StatusOK, result)
}
