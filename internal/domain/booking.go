package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusApproved  BookingStatus = "approved"
	BookingStatusRejected  BookingStatus = "rejected"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusPaid      BookingStatus = "paid"
	BookingStatusRefunded  BookingStatus = "refunded"
)

type Booking struct {
	ID       string `json:"id"`
	ItemID   string `json:"item_id"`
	RenterID string `json:"renter_id"`
	// OwnerID is denormalized from the item at creation time.
	OwnerID   string `json:"owner_id"`
	StartDate string `json:"start_date"` // inclusive, yyyy-mm-dd
	EndDate   string `json:"end_date"`   // inclusive, yyyy-mm-dd
	// TotalPrice is fixed at creation and never recomputed on status change.
	TotalPrice float64       `json:"total_price"`
	Status     BookingStatus `json:"status"`
	PaymentRef *string       `json:"payment_ref,omitempty"`
	PaidAt     *time.Time    `json:"paid_at,omitempty"`
	RefundedAt *time.Time    `json:"refunded_at,omitempty"`
	CreatedOn  time.Time     `json:"created_on"`
	UpdatedOn  time.Time     `json:"updated_on"`
}

// IsTerminal reports whether no further transition is allowed from the status.
// Paid is semi-terminal: it can still move to cancelled or refunded.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusRejected || s == BookingStatusCancelled || s == BookingStatusRefunded
}

// CancelResult is returned by a cancel transition. RefundPercent and
// RefundAmount are nil unless the booking was actually paid; a never-paid
// booking must not surface a "0%" refund figure.
type CancelResult struct {
	Booking       *Booking `json:"booking"`
	RefundPercent *int     `json:"refund_percent"`
	RefundAmount  *float64 `json:"refund_amount"`
}
