package http

import (
	"net/http"

	"rentloop-backend/internal/payment"
	"rentloop-backend/internal/security"
	"rentloop-backend/internal/service"

	"github.com/gorilla/mux"
)

// NewRouter wires all HTTP routes. The webhook endpoint is outside the auth
// middleware: it authenticates by signature, not by bearer token.
func NewRouter(
	tokens security.TokenManager,
	provider payment.Provider,
	bookingSvc service.BookingService,
	paymentSvc service.PaymentService,
	itemSvc service.ItemService,
	reviewSvc service.ReviewService,
	noteSvc service.NotificationService,
) *mux.Router {
	bookings := NewBookingHandler(bookingSvc, paymentSvc)
	webhooks := NewWebhookHandler(provider, paymentSvc)
	items := NewItemHandler(itemSvc)
	reviews := NewReviewHandler(reviewSvc)
	notes := NewNotificationHandler(noteSvc)

	r := mux.NewRouter()
	r.Use(LoggingMiddleware)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")

	r.HandleFunc("/api/payments/webhook", webhooks.Handle).Methods("POST")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(AuthMiddleware(tokens))

	api.HandleFunc("/bookings", bookings.Create).Methods("POST")
	api.HandleFunc("/bookings", bookings.List).Methods("GET")
	api.HandleFunc("/bookings/requests", bookings.ListRequests).Methods("GET")
	api.HandleFunc("/bookings/{id}", bookings.Get).Methods("GET")
	api.HandleFunc("/bookings/{id}/approve", bookings.Approve).Methods("POST")
	api.HandleFunc("/bookings/{id}/reject", bookings.Reject).Methods("POST")
	api.HandleFunc("/bookings/{id}/cancel", bookings.Cancel).Methods("POST")
	api.HandleFunc("/bookings/{id}/checkout", bookings.Checkout).Methods("POST")
	api.HandleFunc("/bookings/{id}/refund", bookings.Refund).Methods("POST")

	api.HandleFunc("/items", items.Create).Methods("POST")
	api.HandleFunc("/items", items.List).Methods("GET")
	api.HandleFunc("/items/mine", items.ListMine).Methods("GET")
	api.HandleFunc("/items/moderation", items.ListPendingModeration).Methods("GET")
	api.HandleFunc("/items/{id}", items.Get).Methods("GET")
	api.HandleFunc("/items/{id}", items.Update).Methods("PUT")
	api.HandleFunc("/items/{id}/moderate", items.Moderate).Methods("POST")

	api.HandleFunc("/reviews", reviews.Create).Methods("POST")
	api.HandleFunc("/users/{id}/reviews", reviews.ListForUser).Methods("GET")

	api.HandleFunc("/notifications", notes.List).Methods("GET")
	api.HandleFunc("/notifications/{id}/read", notes.MarkAsRead).Methods("POST")

	return r
}
