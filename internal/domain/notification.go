package domain

import "time"

// Notification types emitted by booking transitions and item moderation.
const (
	NotificationBookingRequested = "booking_requested"
	NotificationBookingApproved  = "booking_approved"
	NotificationBookingRejected  = "booking_rejected"
	NotificationBookingPaid      = "booking_paid"
	NotificationBookingCancelled = "booking_cancelled"
	NotificationBookingRefunded  = "booking_refunded"
	NotificationItemApproved     = "item_approved"
	NotificationItemRejected     = "item_rejected"
	NotificationReviewDue        = "review_due"
)

type Notification struct {
	ID        string            `json:"id"`
	UserID    string            `json:"user_id"`
	Type      string            `json:"type"`
	Data      map[string]string `json:"data,omitempty"`
	CreatedOn time.Time         `json:"created_on"`
	ReadAt    *time.Time        `json:"read_at,omitempty"`
}
