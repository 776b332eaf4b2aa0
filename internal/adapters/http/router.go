package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/paymentrails/monei-sync/internal/application"
)

// Handler is the HTTP adapter entrypoint for the sync service use-cases.
// Keeping only the application dependency here preserves clean adapter boundaries.
type Handler struct {
	service *application.Service
}

// NewHandler constructs an HTTP handler bound to the application service.
func NewHandler(service *application.Service) *Handler {
	return &Handler{service: service}
}

// NewRouter registers the sync service routes and middleware stack.
func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.healthz)
	r.Get("/readyz", handler.readyz)

	r.Route("/monei/v1", func(r chi.Router) {
		r.Post("/sync", handler.syncCharges)

		r.Get("/charges", handler.listCharges)
		r.Post("/charges", handler.createPayment)
		r.Get("/charges/{external_id}", handler.getCharge)
		r.Post("/charges/{external_id}/capture", handler.capturePayment)
		r.Post("/charges/{external_id}/refund", handler.refundPayment)
		r.Post("/charges/{external_id}/cancel", handler.cancelPayment)
		r.Post("/charges/{external_id}/send-link", handler.sendPaymentLink)
		r.Post("/charges/link-orders", handler.linkOrders)

		r.Get("/payment-methods", handler.paymentMethods)

		r.Put("/settings/api-key", handler.rotateAPIKey)
		r.Post("/settings/test-connection", handler.testConnection)
		r.Put("/settings/{key}", handler.setSetting)
	})

	return r
}

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, http.StatusOK, "ok")
}

func (h *Handler) readyz(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, http.StatusOK, "ready")
}
