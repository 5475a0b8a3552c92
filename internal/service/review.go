package service

import (
	"context"
	"time"

	"rentloop-backend/internal/domain"
	"rentloop-backend/internal/repository"
	"rentloop-backend/internal/utils"

	"github.com/google/uuid"
)

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	bookingRepo repository.BookingRepository
	now         func() time.Time
}

func NewReviewService(reviewRepo repository.ReviewRepository, bookingRepo repository.BookingRepository) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		bookingRepo: bookingRepo,
		now:         time.Now,
	}
}

func (s *reviewService) SubmitReview(ctx context.Context, reviewerID, bookingID string, rating int, comment *string) (*domain.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, domain.ErrInvalidRating
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	// Either party may review the other, once, after a paid rental has ended.
	var revieweeID string
	switch reviewerID {
	case booking.RenterID:
		revieweeID = booking.OwnerID
	case booking.OwnerID:
		revieweeID = booking.RenterID
	default:
		return nil, domain.ErrNotAllowed
	}

	if booking.Status != domain.BookingStatusPaid {
		return nil, domain.ErrBookingNotEnded
	}
	today := s.now().UTC().Format(utils.DateLayout)
	if booking.EndDate >= today {
		return nil, domain.ErrBookingNotEnded
	}

	existing, err := s.reviewRepo.GetByBookingAndReviewer(ctx, bookingID, reviewerID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrAlreadyReviewed
	}

	review := &domain.Review{
		ID:         uuid.NewString(),
		BookingID:  bookingID,
		ReviewerID: reviewerID,
		RevieweeID: revieweeID,
		Rating:     rating,
		Comment:    comment,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *reviewService) ListUserReviews(ctx context.Context, userID string, page, pageSize int32) ([]domain.Review, int32, error) {
	return s.reviewRepo.ListByReviewee(ctx, userID, page, pageSize)
}
