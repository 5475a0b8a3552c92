package http

import (
	"errors"
	"io"
	"net/http"

	"rentloop-backend/internal/logger"
	"rentloop-backend/internal/payment"
	"rentloop-backend/internal/service"
)

// Provider payloads are small; cap the body to keep oversized requests out.
const maxWebhookBody = 1 << 20

type WebhookHandler struct {
	provider   payment.Provider
	paymentSvc service.PaymentService
}

func NewWebhookHandler(provider payment.Provider, paymentSvc service.PaymentService) *WebhookHandler {
	return &WebhookHandler{
		provider:   provider,
		paymentSvc: paymentSvc,
	}
}

// Handle receives provider webhook deliveries. The response code drives the
// provider's retry behavior: 2xx acknowledges (processed or ignored), 400
// rejects a bad signature permanently, 5xx requests redelivery.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	event, err := h.provider.VerifySignature(body, r.Header.Get("Stripe-Signature"))
	if err != nil {
		if errors.Is(err, payment.ErrInvalidSignature) {
			logger.Warn("webhook signature verification failed")
			http.Error(w, "invalid signature", http.StatusBadRequest)
			return
		}
		http.Error(w, "malformed payload", http.StatusBadRequest)
		return
	}

	if err := h.paymentSvc.ProcessWebhookEvent(r.Context(), &service.WebhookEvent{
		ID:         event.ID,
		Type:       event.Type,
		PaymentRef: event.PaymentRef,
		Metadata:   event.Metadata,
	}); err != nil {
		logger.Error("webhook processing failed", "event_id", event.ID, "error", err)
		http.Error(w, "processing failed", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
