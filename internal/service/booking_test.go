package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"rentloop-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func ptr(v float64) *float64 { return &v }
func strPtr(v string) *string { return &v }

type bookingFixture struct {
	svc         *bookingService
	bookingRepo *MockBookingRepo
	itemRepo    *MockItemRepo
	userRepo    *MockUserRepo
	noteRepo    *MockNotificationRepo
	provider    *MockPaymentProvider
	email       *MockEmailService
}

func newBookingFixture(now time.Time) *bookingFixture {
	f := &bookingFixture{
		bookingRepo: new(MockBookingRepo),
		itemRepo:    new(MockItemRepo),
		userRepo:    new(MockUserRepo),
		noteRepo:    new(MockNotificationRepo),
		provider:    new(MockPaymentProvider),
		email:       new(MockEmailService),
	}
	f.svc = NewBookingService(f.bookingRepo, f.itemRepo, f.userRepo, f.noteRepo, f.provider, f.email).(*bookingService)
	f.svc.now = func() time.Time { return now }
	return f
}

// allowNotifications lets the best-effort notification side effects run
// without constraining them.
func (f *bookingFixture) allowNotifications() {
	f.noteRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Maybe()
	f.userRepo.On("GetByID", mock.Anything, mock.Anything).Return(&domain.User{ID: "u", Email: "u@example.com", Name: "U"}, nil).Maybe()
	f.email.On("SendBookingRequested", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	f.email.On("SendBookingApproved", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	f.email.On("SendBookingRejected", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	f.email.On("SendBookingPaid", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	f.email.On("SendBookingCancelled", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	f.email.On("SendBookingRefunded", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
}

func activeItem() *domain.Item {
	return &domain.Item{
		ID:                 "item-1",
		OwnerID:            "owner-1",
		Title:              "Cordless drill",
		PricePerDay:        10,
		Price3Days:         ptr(25),
		Price7Days:         ptr(60),
		CancellationPolicy: domain.PolicyFlexible,
		IsActive:           true,
		Status:             domain.ItemStatusApproved,
	}
}

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		f := newBookingFixture(now)
		f.allowNotifications()
		f.itemRepo.On("GetByID", ctx, "item-1").Return(activeItem(), nil)
		f.bookingRepo.On("ListConfirmedForItem", ctx, "item-1").Return([]domain.Booking{}, nil)
		f.bookingRepo.On("Create", ctx, mock.Anything).Return(nil)

		booking, err := f.svc.CreateBooking(ctx, "renter-1", "item-1", "2026-03-10", "2026-03-19")
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusPending, booking.Status)
		assert.Equal(t, "owner-1", booking.OwnerID)
		// 10 days = 7-bundle + 3-bundle.
		assert.Equal(t, 85.0, booking.TotalPrice)
		assert.NotEmpty(t, booking.ID)
	})

	t.Run("OwnerCannotBookOwnItem", func(t *testing.T) {
		f := newBookingFixture(now)
		f.itemRepo.On("GetByID", ctx, "item-1").Return(activeItem(), nil)

		_, err := f.svc.CreateBooking(ctx, "owner-1", "item-1", "2026-03-10", "2026-03-12")
		assert.ErrorIs(t, err, domain.ErrNotAllowed)
	})

	t.Run("InactiveItem", func(t *testing.T) {
		f := newBookingFixture(now)
		item := activeItem()
		item.IsActive = false
		f.itemRepo.On("GetByID", ctx, "item-1").Return(item, nil)

		_, err := f.svc.CreateBooking(ctx, "renter-1", "item-1", "2026-03-10", "2026-03-12")
		assert.ErrorIs(t, err, domain.ErrItemNotFound)
	})

	t.Run("InvalidRange", func(t *testing.T) {
		f := newBookingFixture(now)
		f.itemRepo.On("GetByID", ctx, "item-1").Return(activeItem(), nil)

		_, err := f.svc.CreateBooking(ctx, "renter-1", "item-1", "2026-03-12", "2026-03-10")
		assert.ErrorIs(t, err, domain.ErrInvalidRange)
	})

	t.Run("DatesTakenByConfirmedBooking", func(t *testing.T) {
		f := newBookingFixture(now)
		f.itemRepo.On("GetByID", ctx, "item-1").Return(activeItem(), nil)
		f.bookingRepo.On("ListConfirmedForItem", ctx, "item-1").Return([]domain.Booking{
			{ID: "b-other", StartDate: "2026-03-11", EndDate: "2026-03-14", Status: domain.BookingStatusPaid},
		}, nil)

		_, err := f.svc.CreateBooking(ctx, "renter-1", "item-1", "2026-03-10", "2026-03-12")
		assert.ErrorIs(t, err, domain.ErrDatesUnavailable)
	})

	t.Run("AdjacentConfirmedBookingAllowed", func(t *testing.T) {
		f := newBookingFixture(now)
		f.allowNotifications()
		f.itemRepo.On("GetByID", ctx, "item-1").Return(activeItem(), nil)
		// Existing booking ends exactly where the new one starts.
		f.bookingRepo.On("ListConfirmedForItem", ctx, "item-1").Return([]domain.Booking{
			{ID: "b-other", StartDate: "2026-03-05", EndDate: "2026-03-10", Status: domain.BookingStatusPaid},
		}, nil)
		f.bookingRepo.On("Create", ctx, mock.Anything).Return(nil)

		_, err := f.svc.CreateBooking(ctx, "renter-1", "item-1", "2026-03-10", "2026-03-12")
		assert.NoError(t, err)
	})
}

func TestApproveRejectBooking(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	pending := &domain.Booking{
		ID: "b-1", ItemID: "item-1", RenterID: "renter-1", OwnerID: "owner-1",
		StartDate: "2026-03-10", EndDate: "2026-03-12",
		Status: domain.BookingStatusPending,
	}

	t.Run("ApproveSuccess", func(t *testing.T) {
		f := newBookingFixture(now)
		f.allowNotifications()
		f.bookingRepo.On("GetByID", ctx, "b-1").Return(pending, nil)
		f.itemRepo.On("GetByID", ctx, "item-1").Return(activeItem(), nil)
		f.bookingRepo.On("UpdateStatus", ctx, "b-1", domain.BookingStatusPending, domain.BookingStatusApproved).Return(true, nil)

		booking, err := f.svc.ApproveBooking(ctx, "owner-1", "b-1")
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusApproved, booking.Status)
	})

	t.Run("ApproveByNonOwner", func(t *testing.T) {
		f := newBookingFixture(now)
		f.bookingRepo.On("GetByID", ctx, "b-1").Return(pending, nil)

		_, err := f.svc.ApproveBooking(ctx, "someone-else", "b-1")
		assert.ErrorIs(t, err, domain.ErrNotAllowed)
	})

	t.Run("ApproveLostRaceToOtherTransition", func(t *testing.T) {
		f := newBookingFixture(now)
		f.bookingRepo.On("GetByID", ctx, "b-1").Return(pending, nil)
		// Guarded update applies nothing: the booking left pending concurrently.
		f.bookingRepo.On("UpdateStatus", ctx, "b-1", domain.BookingStatusPending, domain.BookingStatusApproved).Return(false, nil)

		_, err := f.svc.ApproveBooking(ctx, "owner-1", "b-1")
		assert.ErrorIs(t, err, domain.ErrNotPending)
	})

	t.Run("RejectSuccess", func(t *testing.T) {
		f := newBookingFixture(now)
		f.allowNotifications()
		f.bookingRepo.On("GetByID", ctx, "b-1").Return(pending, nil)
		f.itemRepo.On("GetByID", ctx, "item-1").Return(activeItem(), nil)
		f.bookingRepo.On("UpdateStatus", ctx, "b-1", domain.BookingStatusPending, domain.BookingStatusRejected).Return(true, nil)

		booking, err := f.svc.RejectBooking(ctx, "owner-1", "b-1")
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusRejected, booking.Status)
	})
}

func TestConfirmPayment(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)
	approved := func() *domain.Booking {
		return &domain.Booking{
			ID: "b-1", ItemID: "item-1", RenterID: "renter-1", OwnerID: "owner-1",
			StartDate: "2026-03-10", EndDate: "2026-03-12",
			TotalPrice: 30, Status: domain.BookingStatusApproved,
		}
	}

	t.Run("FirstDeliveryMarksPaidAndRejectsCompetitors", func(t *testing.T) {
		f := newBookingFixture(now)
		f.allowNotifications()
		f.bookingRepo.On("GetByID", ctx, "b-1").Return(approved(), nil)
		f.itemRepo.On("GetByID", ctx, "item-1").Return(activeItem(), nil)
		f.bookingRepo.On("MarkPaid", ctx, "b-1", "pi_123", mock.Anything).Return(true, nil)
		f.bookingRepo.On("RejectOverlappingPending", ctx, "item-1", "b-1", "2026-03-10", "2026-03-12").Return(int64(2), nil)

		err := f.svc.ConfirmPayment(ctx, "b-1", "pi_123")
		assert.NoError(t, err)
		f.bookingRepo.AssertExpectations(t)
	})

	t.Run("DuplicateDeliveryIsNoOp", func(t *testing.T) {
		f := newBookingFixture(now)
		paidAt := now.Add(-time.Hour)
		paid := approved()
		paid.Status = domain.BookingStatusPaid
		paid.PaidAt = &paidAt
		paid.PaymentRef = strPtr("pi_123")
		f.bookingRepo.On("GetByID", ctx, "b-1").Return(paid, nil)

		err := f.svc.ConfirmPayment(ctx, "b-1", "pi_123")
		assert.NoError(t, err)
		f.bookingRepo.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.bookingRepo.AssertNotCalled(t, "RejectOverlappingPending", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ConcurrentDeliveryLosesGuardedUpdate", func(t *testing.T) {
		f := newBookingFixture(now)
		f.bookingRepo.On("GetByID", ctx, "b-1").Return(approved(), nil)
		f.bookingRepo.On("MarkPaid", ctx, "b-1", "pi_123", mock.Anything).Return(false, nil)

		err := f.svc.ConfirmPayment(ctx, "b-1", "pi_123")
		assert.NoError(t, err)
		f.bookingRepo.AssertNotCalled(t, "RejectOverlappingPending", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("CascadeFailurePropagates", func(t *testing.T) {
		f := newBookingFixture(now)
		f.bookingRepo.On("GetByID", ctx, "b-1").Return(approved(), nil)
		f.bookingRepo.On("MarkPaid", ctx, "b-1", "pi_123", mock.Anything).Return(true, nil)
		f.bookingRepo.On("RejectOverlappingPending", ctx, "item-1", "b-1", "2026-03-10", "2026-03-12").
			Return(int64(0), errors.New("connection lost"))

		err := f.svc.ConfirmPayment(ctx, "b-1", "pi_123")
		assert.Error(t, err)
	})

	t.Run("UnknownBooking", func(t *testing.T) {
		f := newBookingFixture(now)
		f.bookingRepo.On("GetByID", ctx, "b-missing").Return(nil, domain.ErrBookingNotFound)

		err := f.svc.ConfirmPayment(ctx, "b-missing", "pi_123")
		assert.ErrorIs(t, err, domain.ErrBookingNotFound)
	})
}

func TestCancelBooking(t *testing.T) {
	ctx := context.Background()
	// 7 days before the booking starts.
	now := time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)

	booking := func(status domain.BookingStatus) *domain.Booking {
		b := &domain.Booking{
			ID: "b-1", ItemID: "item-1", RenterID: "renter-1", OwnerID: "owner-1",
			StartDate: "2026-03-10", EndDate: "2026-03-12",
			TotalPrice: 30, Status: status,
		}
		if status == domain.BookingStatusPaid {
			paidAt := now.Add(-24 * time.Hour)
			b.PaidAt = &paidAt
			b.PaymentRef = strPtr("pi_123")
		}
		return b
	}

	t.Run("CancelPendingHasNoRefundFigures", func(t *testing.T) {
		f := newBookingFixture(now)
		f.allowNotifications()
		f.bookingRepo.On("GetByID", ctx, "b-1").Return(booking(domain.BookingStatusPending), nil)
		f.itemRepo.On("GetByID", ctx, "item-1").Return(activeItem(), nil)
		f.bookingRepo.On("UpdateStatus", ctx, "b-1", domain.BookingStatusPending, domain.BookingStatusCancelled).Return(true, nil)
		f.bookingRepo.On("ReopenOverlappingRejected", ctx, "item-1", "b-1", "2026-03-10", "2026-03-12").Return(int64(0), nil)

		result, err := f.svc.CancelBooking(ctx, "renter-1", "b-1", false)
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusCancelled, result.Booking.Status)
		assert.Nil(t, result.RefundPercent)
		assert.Nil(t, result.RefundAmount)
	})

	t.Run("CancelPaidWithFullRefund", func(t *testing.T) {
		f := newBookingFixture(now)
		f.allowNotifications()
		f.bookingRepo.On("GetByID", ctx, "b-1").Return(booking(domain.BookingStatusPaid), nil)
		f.itemRepo.On("GetByID", ctx, "item-1").Return(activeItem(), nil)
		f.provider.On("Refund", ctx, "pi_123").Return(nil)
		f.bookingRepo.On("MarkRefunded", ctx, "b-1", mock.Anything).Return(true, nil)
		f.bookingRepo.On("ReopenOverlappingRejected", ctx, "item-1", "b-1", "2026-03-10", "2026-03-12").Return(int64(1), nil)

		result, err := f.svc.CancelBooking(ctx, "renter-1", "b-1", false)
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusRefunded, result.Booking.Status)
		assert.Equal(t, 100, *result.RefundPercent)
		assert.Equal(t, 30.0, *result.RefundAmount)
		f.provider.AssertExpectations(t)
	})

	t.Run("CancelPaidLastMinuteNoProviderRefund", func(t *testing.T) {
		// Cancelling on the start day under flexible policy: 0% refund, so the
		// booking is cancelled without touching the provider.
		lastMinute := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
		f := newBookingFixture(lastMinute)
		f.allowNotifications()
		f.bookingRepo.On("GetByID", ctx, "b-1").Return(booking(domain.BookingStatusPaid), nil)
		f.itemRepo.On("GetByID", ctx, "item-1").Return(activeItem(), nil)
		f.bookingRepo.On("UpdateStatus", ctx, "b-1", domain.BookingStatusPaid, domain.BookingStatusCancelled).Return(true, nil)
		f.bookingRepo.On("ReopenOverlappingRejected", ctx, "item-1", "b-1", "2026-03-10", "2026-03-12").Return(int64(0), nil)

		result, err := f.svc.CancelBooking(ctx, "renter-1", "b-1", false)
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusCancelled, result.Booking.Status)
		assert.Equal(t, 0, *result.RefundPercent)
		assert.Equal(t, 0.0, *result.RefundAmount)
		f.provider.AssertNotCalled(t, "Refund", mock.Anything, mock.Anything)
	})

	t.Run("ProviderRefundFailureLeavesBookingUntouched", func(t *testing.T) {
		f := newBookingFixture(now)
		f.bookingRepo.On("GetByID", ctx, "b-1").Return(booking(domain.BookingStatusPaid), nil)
		f.itemRepo.On("GetByID", ctx, "item-1").Return(activeItem(), nil)
		f.provider.On("Refund", ctx, "pi_123").Return(domain.ErrUpstreamTimeout)

		_, err := f.svc.CancelBooking(ctx, "renter-1", "b-1", false)
		assert.ErrorIs(t, err, domain.ErrUpstreamTimeout)
		f.bookingRepo.AssertNotCalled(t, "MarkRefunded", mock.Anything, mock.Anything, mock.Anything)
		f.bookingRepo.AssertNotCalled(t, "ReopenOverlappingRejected", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("CancelByNonRenter", func(t *testing.T) {
		f := newBookingFixture(now)
		f.bookingRepo.On("GetByID", ctx, "b-1").Return(booking(domain.BookingStatusPending), nil)

		_, err := f.svc.CancelBooking(ctx, "owner-1", "b-1", false)
		assert.ErrorIs(t, err, domain.ErrNotAllowed)
	})

	t.Run("CancelTerminalStates", func(t *testing.T) {
		for _, status := range []domain.BookingStatus{
			domain.BookingStatusRejected,
			domain.BookingStatusCancelled,
			domain.BookingStatusRefunded,
		} {
			f := newBookingFixture(now)
			f.bookingRepo.On("GetByID", ctx, "b-1").Return(booking(status), nil)

			_, err := f.svc.CancelBooking(ctx, "renter-1", "b-1", false)
			assert.ErrorIs(t, err, domain.ErrNotCancellable, "status %s", status)
		}
	})

	t.Run("PaidOverrideExposesRefundFigures", func(t *testing.T) {
		f := newBookingFixture(now)
		f.allowNotifications()
		f.bookingRepo.On("GetByID", ctx, "b-1").Return(booking(domain.BookingStatusApproved), nil)
		f.itemRepo.On("GetByID", ctx, "item-1").Return(activeItem(), nil)
		f.bookingRepo.On("UpdateStatus", ctx, "b-1", domain.BookingStatusApproved, domain.BookingStatusCancelled).Return(true, nil)
		f.bookingRepo.On("ReopenOverlappingRejected", ctx, "item-1", "b-1", "2026-03-10", "2026-03-12").Return(int64(0), nil)

		result, err := f.svc.CancelBooking(ctx, "renter-1", "b-1", true)
		assert.NoError(t, err)
		assert.Equal(t, 100, *result.RefundPercent)
		assert.Equal(t, 30.0, *result.RefundAmount)
	})
}

func TestGetBooking(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture(time.Now())
	b := &domain.Booking{ID: "b-1", RenterID: "renter-1", OwnerID: "owner-1"}
	f.bookingRepo.On("GetByID", ctx, "b-1").Return(b, nil)

	for _, userID := range []string{"renter-1", "owner-1"} {
		got, err := f.svc.GetBooking(ctx, userID, "b-1")
		assert.NoError(t, err)
		assert.Equal(t, "b-1", got.ID)
	}

	_, err := f.svc.GetBooking(ctx, "stranger", "b-1")
	assert.ErrorIs(t, err, domain.ErrNotAllowed)
}
