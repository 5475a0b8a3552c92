package domain

import "time"

// Review is tied 1:1 to a completed booking; at most one review per
// (booking, reviewer).
type Review struct {
	ID         string    `json:"id"`
	BookingID  string    `json:"booking_id"`
	ReviewerID string    `json:"reviewer_id"`
	RevieweeID string    `json:"reviewee_id"`
	Rating     int       `json:"rating"`
	Comment    *string   `json:"comment,omitempty"`
	CreatedOn  time.Time `json:"created_on"`
}
