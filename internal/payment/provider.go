package payment

import (
	"context"
	"errors"
)

// ErrInvalidSignature means the webhook payload could not be authenticated.
// The webhook endpoint fails closed (HTTP 400, no state mutation) on it.
var ErrInvalidSignature = errors.New("payment: invalid webhook signature")

// EventCheckoutCompleted is the only event type the reconciliation handler
// acts on; everything else is acknowledged and ignored.
const EventCheckoutCompleted = "checkout.session.completed"

type CheckoutParams struct {
	BookingID  string
	Title      string
	Amount     float64
	Currency   string
	SuccessURL string
	CancelURL  string
}

// Event is a verified webhook event. Metadata carries the correlation ids
// embedded at checkout-session creation time.
type Event struct {
	ID         string
	Type       string
	PaymentRef string
	Metadata   map[string]string
}

// Provider is the payment collaborator consumed by the core. The booking
// engine never talks to the provider's wire format directly.
type Provider interface {
	// CreateCheckoutSession returns an opaque redirect URL with the booking id
	// embedded as correlation metadata.
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (string, error)
	// VerifySignature authenticates a raw webhook body against the shared
	// secret and returns the parsed event, or ErrInvalidSignature.
	VerifySignature(payload []byte, signatureHeader string) (*Event, error)
	// Refund reverses the payment identified by paymentRef.
	Refund(ctx context.Context, paymentRef string) error
}
