package service

import (
	"context"
	"time"

	"rentloop-backend/internal/domain"
	"rentloop-backend/internal/payment"

	"github.com/stretchr/testify/mock"
)

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}
func (m *MockBookingRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}
func (m *MockBookingRepo) MarkPaid(ctx context.Context, id, paymentRef string, paidAt time.Time) (bool, error) {
	args := m.Called(ctx, id, paymentRef, paidAt)
	return args.Bool(0), args.Error(1)
}
func (m *MockBookingRepo) MarkRefunded(ctx context.Context, id string, refundedAt time.Time) (bool, error) {
	args := m.Called(ctx, id, refundedAt)
	return args.Bool(0), args.Error(1)
}
func (m *MockBookingRepo) RejectOverlappingPending(ctx context.Context, itemID, excludeID, startDate, endDate string) (int64, error) {
	args := m.Called(ctx, itemID, excludeID, startDate, endDate)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockBookingRepo) ReopenOverlappingRejected(ctx context.Context, itemID, excludeID, startDate, endDate string) (int64, error) {
	args := m.Called(ctx, itemID, excludeID, startDate, endDate)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockBookingRepo) ListConfirmedForItem(ctx context.Context, itemID string) ([]domain.Booking, error) {
	args := m.Called(ctx, itemID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListByRenter(ctx context.Context, renterID string, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, renterID, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}
func (m *MockBookingRepo) ListByOwner(ctx context.Context, ownerID string, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, ownerID, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}
func (m *MockBookingRepo) ListEndedPaid(ctx context.Context, before string) ([]domain.Booking, error) {
	args := m.Called(ctx, before)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

// MockItemRepo
type MockItemRepo struct {
	mock.Mock
}

func (m *MockItemRepo) Create(ctx context.Context, item *domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockItemRepo) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}
func (m *MockItemRepo) Update(ctx context.Context, item *domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockItemRepo) SetModeration(ctx context.Context, id string, status domain.ItemStatus, active bool) (bool, error) {
	args := m.Called(ctx, id, status, active)
	return args.Bool(0), args.Error(1)
}
func (m *MockItemRepo) ListActive(ctx context.Context, city string, page, pageSize int32) ([]domain.Item, int32, error) {
	args := m.Called(ctx, city, page, pageSize)
	return args.Get(0).([]domain.Item), args.Get(1).(int32), args.Error(2)
}
func (m *MockItemRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Item, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.Item), args.Error(1)
}
func (m *MockItemRepo) ListPendingModeration(ctx context.Context) ([]domain.Item, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Item), args.Error(1)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID string, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}
func (m *MockNotificationRepo) HasForBooking(ctx context.Context, userID, notificationType, bookingID string) (bool, error) {
	args := m.Called(ctx, userID, notificationType, bookingID)
	return args.Bool(0), args.Error(1)
}

// MockReviewRepo
type MockReviewRepo struct {
	mock.Mock
}

func (m *MockReviewRepo) Create(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}
func (m *MockReviewRepo) GetByBookingAndReviewer(ctx context.Context, bookingID, reviewerID string) (*domain.Review, error) {
	args := m.Called(ctx, bookingID, reviewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}
func (m *MockReviewRepo) ListByReviewee(ctx context.Context, revieweeID string, page, pageSize int32) ([]domain.Review, int32, error) {
	args := m.Called(ctx, revieweeID, page, pageSize)
	return args.Get(0).([]domain.Review), args.Get(1).(int32), args.Error(2)
}

// MockPaymentProvider
type MockPaymentProvider struct {
	mock.Mock
}

func (m *MockPaymentProvider) CreateCheckoutSession(ctx context.Context, params payment.CheckoutParams) (string, error) {
	args := m.Called(ctx, params)
	return args.String(0), args.Error(1)
}
func (m *MockPaymentProvider) VerifySignature(payload []byte, signatureHeader string) (*payment.Event, error) {
	args := m.Called(payload, signatureHeader)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Event), args.Error(1)
}
func (m *MockPaymentProvider) Refund(ctx context.Context, paymentRef string) error {
	args := m.Called(ctx, paymentRef)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendBookingRequested(ctx context.Context, to, renterName, itemTitle string) error {
	args := m.Called(ctx, to, renterName, itemTitle)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingApproved(ctx context.Context, to, itemTitle string) error {
	args := m.Called(ctx, to, itemTitle)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingRejected(ctx context.Context, to, itemTitle string) error {
	args := m.Called(ctx, to, itemTitle)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingPaid(ctx context.Context, to, itemTitle string) error {
	args := m.Called(ctx, to, itemTitle)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingCancelled(ctx context.Context, to, renterName, itemTitle string) error {
	args := m.Called(ctx, to, renterName, itemTitle)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingRefunded(ctx context.Context, to, itemTitle string, amount float64) error {
	args := m.Called(ctx, to, itemTitle, amount)
	return args.Error(0)
}
func (m *MockEmailService) SendItemModerated(ctx context.Context, to, itemTitle string, approved bool) error {
	args := m.Called(ctx, to, itemTitle, approved)
	return args.Error(0)
}
func (m *MockEmailService) SendReviewReminder(ctx context.Context, to, itemTitle string) error {
	args := m.Called(ctx, to, itemTitle)
	return args.Error(0)
}
