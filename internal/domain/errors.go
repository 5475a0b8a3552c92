package domain

import "errors"

// ErrorKind classifies an error for transport mapping; the HTTP layer maps
// kinds to status codes without matching on message strings.
type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindConflict     ErrorKind = "conflict"
	KindNotFound     ErrorKind = "not_found"
	KindUnauthorized ErrorKind = "unauthorized"
	KindUpstream     ErrorKind = "upstream"
)

// Error is a machine-readable error: a stable code plus a human message.
// Localization of the message is the caller's concern.
type Error struct {
	Kind    ErrorKind `json:"-"`
	Code    string    `json:"code"`
	Message string    `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

var (
	ErrInvalidRange    = &Error{Kind: KindValidation, Code: "invalid_range", Message: "end date must not be before start date"}
	ErrInvalidDuration = &Error{Kind: KindValidation, Code: "invalid_duration", Message: "duration must be at least one day"}
	ErrInvalidRating   = &Error{Kind: KindValidation, Code: "invalid_rating", Message: "rating must be between 1 and 5"}
	ErrMissingField    = &Error{Kind: KindValidation, Code: "missing_field", Message: "a required field is missing"}

	ErrDatesUnavailable  = &Error{Kind: KindConflict, Code: "dates_unavailable", Message: "the requested dates are already booked"}
	ErrNotPending        = &Error{Kind: KindConflict, Code: "not_pending", Message: "booking is not in pending state"}
	ErrNotApproved       = &Error{Kind: KindConflict, Code: "not_approved", Message: "booking is not approved"}
	ErrAlreadyPaid       = &Error{Kind: KindConflict, Code: "already_paid", Message: "booking is already paid"}
	ErrNotRefundable     = &Error{Kind: KindConflict, Code: "not_refundable", Message: "booking is not refundable"}
	ErrNotCancellable    = &Error{Kind: KindConflict, Code: "not_cancellable", Message: "booking cannot be cancelled from its current state"}
	ErrInvalidAmount     = &Error{Kind: KindConflict, Code: "invalid_amount", Message: "booking total must be positive"}
	ErrAlreadyReviewed   = &Error{Kind: KindConflict, Code: "already_reviewed", Message: "a review for this booking already exists"}
	ErrBookingNotEnded   = &Error{Kind: KindConflict, Code: "booking_not_ended", Message: "booking has not ended yet"}
	ErrItemNotModeratable = &Error{Kind: KindConflict, Code: "item_not_moderatable", Message: "item is not awaiting moderation"}

	ErrBookingNotFound      = &Error{Kind: KindNotFound, Code: "booking_not_found", Message: "booking not found"}
	ErrItemNotFound         = &Error{Kind: KindNotFound, Code: "item_not_found", Message: "item not found"}
	ErrNotificationNotFound = &Error{Kind: KindNotFound, Code: "notification_not_found", Message: "notification not found"}

	ErrNotAllowed = &Error{Kind: KindUnauthorized, Code: "not_allowed", Message: "not allowed"}

	ErrUpstreamTimeout = &Error{Kind: KindUpstream, Code: "upstream_timeout", Message: "payment provider timed out"}
	ErrUpstreamFailure = &Error{Kind: KindUpstream, Code: "upstream_failure", Message: "payment provider request failed"}
)

// KindOf returns the kind of err if it is a domain Error, KindUpstream
// otherwise. Unknown errors are treated as infrastructure failures.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUpstream
}
