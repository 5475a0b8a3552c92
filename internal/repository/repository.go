package repository

import (
	"context"
	"time"

	"rentloop-backend/internal/domain"
)

type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) error
	GetByID(ctx context.Context, id string) (*domain.Item, error)
	Update(ctx context.Context, item *domain.Item) error
	// SetModeration flips the moderation status and active flag; returns
	// false when no such item exists.
	SetModeration(ctx context.Context, id string, status domain.ItemStatus, active bool) (bool, error)
	ListActive(ctx context.Context, city string, page, pageSize int32) ([]domain.Item, int32, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Item, error)
	ListPendingModeration(ctx context.Context) ([]domain.Item, error)
}

// BookingRepository is the only writer of booking rows; every mutation is one
// of the guarded transition statements below.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	// UpdateStatus applies status=to only if the row currently has status=from;
	// returns whether the row was updated.
	UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus) (bool, error)
	// MarkPaid is the idempotent guarded update for payment confirmation:
	// it only applies while paid_at IS NULL. Returns false (no error) when the
	// booking was already paid.
	MarkPaid(ctx context.Context, id, paymentRef string, paidAt time.Time) (bool, error)
	MarkRefunded(ctx context.Context, id string, refundedAt time.Time) (bool, error)
	// RejectOverlappingPending rejects every other pending booking on the item
	// whose date range overlaps [startDate, endDate] (strict-inequality
	// comparison, matching utils.RangesOverlap).
	RejectOverlappingPending(ctx context.Context, itemID, excludeID, startDate, endDate string) (int64, error)
	// ReopenOverlappingRejected moves previously rejected overlapping bookings
	// back to pending; the inverse cascade of RejectOverlappingPending.
	ReopenOverlappingRejected(ctx context.Context, itemID, excludeID, startDate, endDate string) (int64, error)
	// ListConfirmedForItem returns the approved and paid bookings of an item,
	// the set the no-double-booking invariant is checked against.
	ListConfirmedForItem(ctx context.Context, itemID string) ([]domain.Booking, error)
	ListByRenter(ctx context.Context, renterID string, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	ListByOwner(ctx context.Context, ownerID string, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	// ListEndedPaid returns paid bookings whose end date is before the given
	// date; input to the review-due sweep.
	ListEndedPaid(ctx context.Context, before string) ([]domain.Booking, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	GetByBookingAndReviewer(ctx context.Context, bookingID, reviewerID string) (*domain.Review, error)
	ListByReviewee(ctx context.Context, revieweeID string, page, pageSize int32) ([]domain.Review, int32, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID string, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID string) error
	// HasForBooking reports whether a notification of the given type already
	// references the booking; used to deduplicate the review-due sweep.
	HasForBooking(ctx context.Context, userID, notificationType, bookingID string) (bool, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}
