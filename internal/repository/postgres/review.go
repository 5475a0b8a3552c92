package postgres

import (
	"context"
	"database/sql"
	"time"

	"rentloop-backend/internal/domain"
	"rentloop-backend/internal/repository"
)

type reviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	query := `INSERT INTO reviews (id, booking_id, reviewer_id, reviewee_id, rating, comment, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	now := time.Now()
	rv.CreatedOn = now
	var comment sql.NullString
	if rv.Comment != nil {
		comment = sql.NullString{String: *rv.Comment, Valid: true}
	}
	_, err := r.db.ExecContext(ctx, query, rv.ID, rv.BookingID, rv.ReviewerID, rv.RevieweeID, rv.Rating, comment, now)
	return err
}

func (r *reviewRepository) GetByBookingAndReviewer(ctx context.Context, bookingID, reviewerID string) (*domain.Review, error) {
	query := `SELECT id, booking_id, reviewer_id, reviewee_id, rating, comment, created_on FROM reviews WHERE booking_id = $1 AND reviewer_id = $2`
	rv := &domain.Review{}
	var comment sql.NullString
	err := r.db.QueryRowContext(ctx, query, bookingID, reviewerID).Scan(&rv.ID, &rv.BookingID, &rv.ReviewerID, &rv.RevieweeID, &rv.Rating, &comment, &rv.CreatedOn)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if comment.Valid {
		rv.Comment = &comment.String
	}
	return rv, nil
}

func (r *reviewRepository) ListByReviewee(ctx context.Context, revieweeID string, page, pageSize int32) ([]domain.Review, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM reviews WHERE reviewee_id = $1`, revieweeID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, booking_id, reviewer_id, reviewee_id, rating, comment, created_on FROM reviews WHERE reviewee_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, revieweeID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var rv domain.Review
		var comment sql.NullString
		if err := rows.Scan(&rv.ID, &rv.BookingID, &rv.ReviewerID, &rv.RevieweeID, &rv.Rating, &comment, &rv.CreatedOn); err != nil {
			return nil, 0, err
		}
		if comment.Valid {
			rv.Comment = &comment.String
		}
		reviews = append(reviews, rv)
	}
	return reviews, count, rows.Err()
}
