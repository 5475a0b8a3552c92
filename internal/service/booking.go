package service

import (
	"context"
	"time"

	"rentloop-backend/internal/domain"
	"rentloop-backend/internal/logger"
	"rentloop-backend/internal/payment"
	"rentloop-backend/internal/repository"
	"rentloop-backend/internal/utils"

	"github.com/google/uuid"
)

type bookingService struct {
	bookingRepo repository.BookingRepository
	itemRepo    repository.ItemRepository
	userRepo    repository.UserRepository
	noteRepo    repository.NotificationRepository
	provider    payment.Provider
	emailSvc    EmailService
	now         func() time.Time
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	itemRepo repository.ItemRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
	provider payment.Provider,
	emailSvc EmailService,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		itemRepo:    itemRepo,
		userRepo:    userRepo,
		noteRepo:    noteRepo,
		provider:    provider,
		emailSvc:    emailSvc,
		now:         time.Now,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, renterID, itemID, startDate, endDate string) (*domain.Booking, error) {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !item.IsActive {
		return nil, domain.ErrItemNotFound
	}
	if item.OwnerID == renterID {
		return nil, domain.ErrNotAllowed
	}

	days, err := utils.DaysInclusive(startDate, endDate)
	if err != nil {
		return nil, err
	}
	totalPrice, err := utils.TotalPrice(days, item.PricePerDay, item.Price3Days, item.Price7Days)
	if err != nil {
		return nil, err
	}

	// Availability pre-check against confirmed bookings. Two pending requests
	// for the same dates may coexist; the authoritative guard runs again at
	// payment confirmation.
	confirmed, err := s.bookingRepo.ListConfirmedForItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	for _, other := range confirmed {
		if utils.RangesOverlap(startDate, endDate, other.StartDate, other.EndDate) {
			return nil, domain.ErrDatesUnavailable
		}
	}

	booking := &domain.Booking{
		ID:         uuid.NewString(),
		ItemID:     itemID,
		RenterID:   renterID,
		OwnerID:    item.OwnerID,
		StartDate:  startDate,
		EndDate:    endDate,
		TotalPrice: totalPrice,
		Status:     domain.BookingStatusPending,
	}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.notify(ctx, booking, item, booking.OwnerID, domain.NotificationBookingRequested)
	return booking, nil
}

func (s *bookingService) ApproveBooking(ctx context.Context, ownerID, bookingID string) (*domain.Booking, error) {
	// Approval deliberately does not reject competing pending requests; an
	// approved booking may still never get paid, so competitors are only
	// cleared out once a winner is confirmed paid.
	return s.decide(ctx, ownerID, bookingID, domain.BookingStatusApproved, domain.NotificationBookingApproved)
}

func (s *bookingService) RejectBooking(ctx context.Context, ownerID, bookingID string) (*domain.Booking, error) {
	return s.decide(ctx, ownerID, bookingID, domain.BookingStatusRejected, domain.NotificationBookingRejected)
}

func (s *bookingService) decide(ctx context.Context, ownerID, bookingID string, to domain.BookingStatus, noteType string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.OwnerID != ownerID {
		return nil, domain.ErrNotAllowed
	}

	applied, err := s.bookingRepo.UpdateStatus(ctx, bookingID, domain.BookingStatusPending, to)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, domain.ErrNotPending
	}
	booking.Status = to

	item, _ := s.itemRepo.GetByID(ctx, booking.ItemID)
	s.notify(ctx, booking, item, booking.RenterID, noteType)
	return booking, nil
}

func (s *bookingService) ConfirmPayment(ctx context.Context, bookingID, paymentRef string) error {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking.PaidAt != nil || booking.Status == domain.BookingStatusPaid {
		// Duplicate delivery; already processed.
		return nil
	}

	applied, err := s.bookingRepo.MarkPaid(ctx, bookingID, paymentRef, s.now().UTC())
	if err != nil {
		return err
	}
	if !applied {
		// A concurrent delivery won the guarded update.
		return nil
	}

	// Self-update first, cascade second. A cascade failure after the paid
	// write leaves un-rejected pending competitors; that inconsistency is
	// recoverable because every cascade recomputes its target set from
	// current stored state.
	rejected, err := s.bookingRepo.RejectOverlappingPending(ctx, booking.ItemID, bookingID, booking.StartDate, booking.EndDate)
	if err != nil {
		return err
	}
	logger.Info("payment confirmed", "booking_id", bookingID, "competitors_rejected", rejected)

	item, _ := s.itemRepo.GetByID(ctx, booking.ItemID)
	s.notify(ctx, booking, item, booking.RenterID, domain.NotificationBookingPaid)
	s.notify(ctx, booking, item, booking.OwnerID, domain.NotificationBookingPaid)
	return nil
}

func (s *bookingService) CancelBooking(ctx context.Context, renterID, bookingID string, paidOverride bool) (*domain.CancelResult, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.RenterID != renterID {
		return nil, domain.ErrNotAllowed
	}

	switch booking.Status {
	case domain.BookingStatusPending, domain.BookingStatusApproved, domain.BookingStatusPaid:
	default:
		return nil, domain.ErrNotCancellable
	}

	wasPaid := booking.Status == domain.BookingStatusPaid || booking.PaidAt != nil

	// Refund figures use the item's policy as of cancel time and the
	// booking's original start date.
	policy := domain.PolicyFlexible
	var item *domain.Item
	if it, err := s.itemRepo.GetByID(ctx, booking.ItemID); err == nil {
		item = it
		policy = it.CancellationPolicy
	}
	daysUntil, err := utils.DaysUntil(booking.StartDate, s.now())
	if err != nil {
		return nil, err
	}
	percent := utils.RefundPercent(policy, daysUntil)
	amount := utils.RefundAmount(booking.TotalPrice, percent)

	if wasPaid && percent > 0 && booking.PaymentRef != nil {
		// Refund before the state write so a provider failure leaves the
		// booking untouched and the cancel can simply be re-invoked.
		if err := s.provider.Refund(ctx, *booking.PaymentRef); err != nil {
			return nil, err
		}
		if _, err := s.bookingRepo.MarkRefunded(ctx, bookingID, s.now().UTC()); err != nil {
			return nil, err
		}
		booking.Status = domain.BookingStatusRefunded
	} else {
		applied, err := s.bookingRepo.UpdateStatus(ctx, bookingID, booking.Status, domain.BookingStatusCancelled)
		if err != nil {
			return nil, err
		}
		if !applied {
			return nil, domain.ErrNotCancellable
		}
		booking.Status = domain.BookingStatusCancelled
	}

	// Reopen the competitors that were auto-rejected when this booking won.
	reopened, err := s.bookingRepo.ReopenOverlappingRejected(ctx, booking.ItemID, bookingID, booking.StartDate, booking.EndDate)
	if err != nil {
		return nil, err
	}
	logger.Info("booking cancelled", "booking_id", bookingID, "competitors_reopened", reopened)

	s.notify(ctx, booking, item, booking.OwnerID, domain.NotificationBookingCancelled)

	result := &domain.CancelResult{Booking: booking}
	if wasPaid || paidOverride {
		result.RefundPercent = &percent
		result.RefundAmount = &amount
	}
	return result, nil
}

func (s *bookingService) GetBooking(ctx context.Context, userID, bookingID string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.RenterID != userID && booking.OwnerID != userID {
		return nil, domain.ErrNotAllowed
	}
	return booking, nil
}

func (s *bookingService) ListBookings(ctx context.Context, renterID, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return s.bookingRepo.ListByRenter(ctx, renterID, status, page, pageSize)
}

func (s *bookingService) ListBookingRequests(ctx context.Context, ownerID, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return s.bookingRepo.ListByOwner(ctx, ownerID, status, page, pageSize)
}

// notify records a user-visible notification and relays it by email, best
// effort; a delivery failure never fails the triggering transition.
func (s *bookingService) notify(ctx context.Context, booking *domain.Booking, item *domain.Item, recipientID, noteType string) {
	title := ""
	if item != nil {
		title = item.Title
	}

	note := &domain.Notification{
		ID:     uuid.NewString(),
		UserID: recipientID,
		Type:   noteType,
		Data: map[string]string{
			"booking_id": booking.ID,
			"item_id":    booking.ItemID,
			"item_title": title,
		},
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Error("failed to store notification", "type", noteType, "user_id", recipientID, "error", err)
	}

	recipient, err := s.userRepo.GetByID(ctx, recipientID)
	if err != nil || recipient == nil {
		return
	}

	switch noteType {
	case domain.NotificationBookingRequested:
		renterName := booking.RenterID
		if renter, err := s.userRepo.GetByID(ctx, booking.RenterID); err == nil && renter != nil {
			renterName = renter.Name
		}
		_ = s.emailSvc.SendBookingRequested(ctx, recipient.Email, renterName, title)
	case domain.NotificationBookingApproved:
		_ = s.emailSvc.SendBookingApproved(ctx, recipient.Email, title)
	case domain.NotificationBookingRejected:
		_ = s.emailSvc.SendBookingRejected(ctx, recipient.Email, title)
	case domain.NotificationBookingPaid:
		_ = s.emailSvc.SendBookingPaid(ctx, recipient.Email, title)
	case domain.NotificationBookingCancelled:
		renterName := booking.RenterID
		if renter, err := s.userRepo.GetByID(ctx, booking.RenterID); err == nil && renter != nil {
			renterName = renter.Name
		}
		_ = s.emailSvc.SendBookingCancelled(ctx, recipient.Email, renterName, title)
	case domain.NotificationBookingRefunded:
		_ = s.emailSvc.SendBookingRefunded(ctx, recipient.Email, title, booking.TotalPrice)
	}
}
