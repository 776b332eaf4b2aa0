package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/paymentrails/monei-sync/internal/application"
)

func (h *Handler) listCharges(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	dateFrom, err := parseTimeParam(query.Get("date_from"))
	if err != nil {
		writeValidationError(r.Context(), w, "list_charges", err)
		return
	}
	dateTo, err := parseTimeParam(query.Get("date_to"))
	if err != nil {
		writeValidationError(r.Context(), w, "list_charges", err)
		return
	}

	req := application.ListChargesRequest{
		DateFrom: dateFrom,
		DateTo:   dateTo,
		Unlinked: query.Get("unlinked") == "true",
		Limit:    parseIntDefault(query.Get("limit"), 0),
		Offset:   parseIntDefault(query.Get("offset"), 0),
	}

	charges, err := h.service.ListCharges(r.Context(), req)
	if err != nil {
		writeMappedError(r.Context(), w, "list_charges", err)
		return
	}
	writeSuccess(w, http.StatusOK, charges)
}

func (h *Handler) getCharge(w http.ResponseWriter, r *http.Request) {
	externalID := chi.URLParam(r, "external_id")

	charge, err := h.service.GetCharge(r.Context(), externalID)
	if err != nil {
		writeMappedError(r.Context(), w, "get_charge", err)
		return
	}
	writeSuccess(w, http.StatusOK, charge)
}

func (h *Handler) createPayment(w http.ResponseWriter, r *http.Request) {
	var req application.CreatePaymentRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "create_payment", err)
		return
	}

	result, err := h.service.CreatePayment(r.Context(), req)
	if err != nil {
		writeMappedError(r.Context(), w, "create_payment", err)
		return
	}
	writeSuccess(w, http.StatusCreated, result)
}

func (h *Handler) capturePayment(w http.ResponseWriter, r *http.Request) {
	externalID := chi.URLParam(r, "external_id")

	req := application.CaptureRequest{}
	if r.ContentLength > 0 {
		if err := decodeBody(r, &req); err != nil {
			writeValidationError(r.Context(), w, "capture_payment", err)
			return
		}
	}

	charge, err := h.service.CapturePayment(r.Context(), externalID, req)
	if err != nil {
		writeMappedError(r.Context(), w, "capture_payment", err)
		return
	}
	writeSuccess(w, http.StatusOK, charge)
}

func (h *Handler) refundPayment(w http.ResponseWriter, r *http.Request) {
	externalID := chi.URLParam(r, "external_id")

	var req application.RefundRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "refund_payment", err)
		return
	}

	charge, err := h.service.RefundPayment(r.Context(), externalID, req)
	if err != nil {
		writeMappedError(r.Context(), w, "refund_payment", err)
		return
	}
	writeSuccess(w, http.StatusOK, charge)
}

func (h *Handler) cancelPayment(w http.ResponseWriter, r *http.Request) {
	externalID := chi.URLParam(r, "external_id")

	req := application.CancelRequest{}
	if r.ContentLength > 0 {
		if err := decodeBody(r, &req); err != nil {
			writeValidationError(r.Context(), w, "cancel_payment", err)
			return
		}
	}

	charge, err := h.service.CancelPayment(r.Context(), externalID, req)
	if err != nil {
		writeMappedError(r.Context(), w, "cancel_payment", err)
		return
	}
	writeSuccess(w, http.StatusOK, charge)
}

func (h *Handler) sendPaymentLink(w http.ResponseWriter, r *http.Request) {
	externalID := chi.URLParam(r, "external_id")

	var req application.SendLinkRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "send_payment_link", err)
		return
	}

	if err := h.service.SendPaymentLink(r.Context(), externalID, req); err != nil {
		writeMappedError(r.Context(), w, "send_payment_link", err)
		return
	}
	writeMessage(w, http.StatusOK, "payment link sent")
}
