package service

import (
	"context"

	"rentloop-backend/internal/domain"
)

type BookingService interface {
	CreateBooking(ctx context.Context, renterID, itemID, startDate, endDate string) (*domain.Booking, error)
	ApproveBooking(ctx context.Context, ownerID, bookingID string) (*domain.Booking, error)
	RejectBooking(ctx context.Context, ownerID, bookingID string) (*domain.Booking, error)
	CancelBooking(ctx context.Context, renterID, bookingID string, paidOverride bool) (*domain.CancelResult, error)
	// ConfirmPayment applies an external payment confirmation idempotently:
	// already-paid bookings are a no-op success, and the overlapping pending
	// competitors of a newly paid booking are rejected in the same call.
	ConfirmPayment(ctx context.Context, bookingID, paymentRef string) error
	GetBooking(ctx context.Context, userID, bookingID string) (*domain.Booking, error)
	ListBookings(ctx context.Context, renterID, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	ListBookingRequests(ctx context.Context, ownerID, status string, page, pageSize int32) ([]domain.Booking, int32, error)
}

type PaymentService interface {
	CreateCheckout(ctx context.Context, renterID, bookingID string) (string, error)
	// ProcessWebhookEvent reconciles a verified provider event. A nil return
	// means processed or intentionally ignored; an error means persistence
	// failed and the provider should redeliver.
	ProcessWebhookEvent(ctx context.Context, event *WebhookEvent) error
	RefundBooking(ctx context.Context, actorID string, isAdmin bool, bookingID string) (*domain.Booking, error)
}

// WebhookEvent mirrors payment.Event at the service boundary.
type WebhookEvent struct {
	ID         string
	Type       string
	PaymentRef string
	Metadata   map[string]string
}

type ItemService interface {
	CreateItem(ctx context.Context, item *domain.Item) (*domain.Item, error)
	UpdateItem(ctx context.Context, ownerID string, item *domain.Item) (*domain.Item, error)
	GetItem(ctx context.Context, id string) (*domain.Item, error)
	ListItems(ctx context.Context, city string, page, pageSize int32) ([]domain.Item, int32, error)
	ListMyItems(ctx context.Context, ownerID string) ([]domain.Item, error)
	// ModerateItem is the admin approve/reject decision on a submitted listing.
	ModerateItem(ctx context.Context, itemID string, approve bool) (*domain.Item, error)
	ListPendingModeration(ctx context.Context) ([]domain.Item, error)
}

type ReviewService interface {
	SubmitReview(ctx context.Context, reviewerID, bookingID string, rating int, comment *string) (*domain.Review, error)
	ListUserReviews(ctx context.Context, userID string, page, pageSize int32) ([]domain.Review, int32, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID string, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID string) error
}

type EmailService interface {
	SendBookingRequested(ctx context.Context, to, renterName, itemTitle string) error
	SendBookingApproved(ctx context.Context, to, itemTitle string) error
	SendBookingRejected(ctx context.Context, to, itemTitle string) error
	SendBookingPaid(ctx context.Context, to, itemTitle string) error
	SendBookingCancelled(ctx context.Context, to, renterName, itemTitle string) error
	SendBookingRefunded(ctx context.Context, to, itemTitle string, amount float64) error
	SendItemModerated(ctx context.Context, to, itemTitle string, approved bool) error
	SendReviewReminder(ctx context.Context, to, itemTitle string) error
}
