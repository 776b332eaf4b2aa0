package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/paymentrails/monei-sync/internal/application"
)

func (h *Handler) rotateAPIKey(w http.ResponseWriter, r *http.Request) {
	var req application.RotateAPIKeyRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "rotate_api_key", err)
		return
	}

	result, err := h.service.RotateAPIKey(r.Context(), req)
	if err != nil {
		writeMappedError(r.Context(), w, "rotate_api_key", err)
		return
	}
	writeSuccess(w, http.StatusOK, result)
}

func (h *Handler) testConnection(w http.ResponseWriter, r *http.Request) {
	if err := h.service.TestConnection(r.Context()); err != nil {
		writeMappedError(r.Context(), w, "test_connection", err)
		return
	}
	writeMessage(w, http.StatusOK, "connection ok")
}

func (h *Handler) paymentMethods(w http.ResponseWriter, r *http.Request) {
	methods, err := h.service.PaymentMethods(r.Context())
	if err != nil {
		writeMappedError(r.Context(), w, "payment_methods", err)
		return
	}
	writeSuccess(w, http.StatusOK, methods)
}

type setSettingRequest struct {
	Value string `json:"value"`
}

func (h *Handler) setSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	var req setSettingRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "set_setting", err)
		return
	}

	if err := h.service.SetSetting(r.Context(), key, req.Value); err != nil {
		writeMappedError(r.Context(), w, "set_setting", err)
		return
	}
	writeMessage(w, http.StatusOK, "setting updated")
}
