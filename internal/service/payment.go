package service

import (
	"context"
	"time"

	"rentloop-backend/internal/config"
	"rentloop-backend/internal/domain"
	"rentloop-backend/internal/logger"
	"rentloop-backend/internal/payment"
	"rentloop-backend/internal/repository"

	"github.com/google/uuid"
)

type paymentService struct {
	bookingRepo repository.BookingRepository
	itemRepo    repository.ItemRepository
	userRepo    repository.UserRepository
	noteRepo    repository.NotificationRepository
	bookingSvc  BookingService
	emailSvc    EmailService
	provider    payment.Provider
	cfg         config.StripeConfig
	now         func() time.Time
}

func NewPaymentService(
	bookingRepo repository.BookingRepository,
	itemRepo repository.ItemRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
	bookingSvc BookingService,
	emailSvc EmailService,
	provider payment.Provider,
	cfg config.StripeConfig,
) PaymentService {
	return &paymentService{
		bookingRepo: bookingRepo,
		itemRepo:    itemRepo,
		userRepo:    userRepo,
		noteRepo:    noteRepo,
		bookingSvc:  bookingSvc,
		emailSvc:    emailSvc,
		provider:    provider,
		cfg:         cfg,
		now:         time.Now,
	}
}

func (s *paymentService) CreateCheckout(ctx context.Context, renterID, bookingID string) (string, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return "", err
	}
	if booking.RenterID != renterID {
		return "", domain.ErrNotAllowed
	}
	if booking.PaidAt != nil || booking.Status == domain.BookingStatusPaid {
		return "", domain.ErrAlreadyPaid
	}
	if booking.Status != domain.BookingStatusApproved {
		return "", domain.ErrNotApproved
	}
	if booking.TotalPrice <= 0 {
		return "", domain.ErrInvalidAmount
	}

	title := "Rental booking"
	if item, err := s.itemRepo.GetByID(ctx, booking.ItemID); err == nil {
		title = item.Title
	}

	return s.provider.CreateCheckoutSession(ctx, payment.CheckoutParams{
		BookingID:  booking.ID,
		Title:      title,
		Amount:     booking.TotalPrice,
		Currency:   s.cfg.Currency,
		SuccessURL: s.cfg.SuccessURL,
		CancelURL:  s.cfg.CancelURL,
	})
}

func (s *paymentService) ProcessWebhookEvent(ctx context.Context, event *WebhookEvent) error {
	if event.Type != payment.EventCheckoutCompleted {
		logger.Debug("ignoring webhook event", "event_id", event.ID, "type", event.Type)
		return nil
	}

	bookingID := event.Metadata["booking_id"]
	if bookingID == "" {
		logger.Warn("webhook event without booking_id metadata", "event_id", event.ID)
		return nil
	}

	err := s.bookingSvc.ConfirmPayment(ctx, bookingID, event.PaymentRef)
	if domain.KindOf(err) == domain.KindNotFound {
		// An unknown booking is not retryable; acknowledge and move on.
		logger.Warn("webhook event for unknown booking", "event_id", event.ID, "booking_id", bookingID)
		return nil
	}
	return err
}

func (s *paymentService) RefundBooking(ctx context.Context, actorID string, isAdmin bool, bookingID string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.OwnerID != actorID && !isAdmin {
		return nil, domain.ErrNotAllowed
	}
	if booking.Status != domain.BookingStatusPaid || booking.PaymentRef == nil {
		return nil, domain.ErrNotRefundable
	}

	if err := s.provider.Refund(ctx, *booking.PaymentRef); err != nil {
		return nil, err
	}
	if _, err := s.bookingRepo.MarkRefunded(ctx, bookingID, s.now().UTC()); err != nil {
		return nil, err
	}
	booking.Status = domain.BookingStatusRefunded

	title := ""
	if item, err := s.itemRepo.GetByID(ctx, booking.ItemID); err == nil {
		title = item.Title
	}
	note := &domain.Notification{
		ID:     uuid.NewString(),
		UserID: booking.RenterID,
		Type:   domain.NotificationBookingRefunded,
		Data: map[string]string{
			"booking_id": booking.ID,
			"item_id":    booking.ItemID,
			"item_title": title,
		},
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Error("failed to store refund notification", "booking_id", bookingID, "error", err)
	}
	if renter, err := s.userRepo.GetByID(ctx, booking.RenterID); err == nil && renter != nil {
		_ = s.emailSvc.SendBookingRefunded(ctx, renter.Email, title, booking.TotalPrice)
	}

	return booking, nil
}
