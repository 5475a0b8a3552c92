package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"rentloop-backend/internal/domain"
	"rentloop-backend/internal/repository"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `id, item_id, renter_id, owner_id, start_date, end_date, total_price, status, payment_ref, paid_at, refunded_at, created_on, updated_on`

func scanBooking(row interface{ Scan(...any) error }) (*domain.Booking, error) {
	b := &domain.Booking{}
	var paymentRef sql.NullString
	var paidAt, refundedAt sql.NullTime
	err := row.Scan(&b.ID, &b.ItemID, &b.RenterID, &b.OwnerID, &b.StartDate, &b.EndDate, &b.TotalPrice, &b.Status, &paymentRef, &paidAt, &refundedAt, &b.CreatedOn, &b.UpdatedOn)
	if err != nil {
		return nil, err
	}
	if paymentRef.Valid {
		b.PaymentRef = &paymentRef.String
	}
	if paidAt.Valid {
		t := paidAt.Time
		b.PaidAt = &t
	}
	if refundedAt.Valid {
		t := refundedAt.Time
		b.RefundedAt = &t
	}
	return b, nil
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `INSERT INTO bookings (id, item_id, renter_id, owner_id, start_date, end_date, total_price, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	now := time.Now()
	b.CreatedOn = now
	b.UpdatedOn = now
	_, err := r.db.ExecContext(ctx, query, b.ID, b.ItemID, b.RenterID, b.OwnerID, b.StartDate, b.EndDate, b.TotalPrice, b.Status, now, now)
	return err
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	b, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus) (bool, error) {
	query := `UPDATE bookings SET status = $3, updated_on = $4 WHERE id = $1 AND status = $2`
	res, err := r.db.ExecContext(ctx, query, id, from, to, time.Now())
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *bookingRepository) MarkPaid(ctx context.Context, id, paymentRef string, paidAt time.Time) (bool, error) {
	// The paid_at IS NULL guard makes duplicate webhook deliveries safe:
	// first writer wins, later calls affect zero rows.
	query := `UPDATE bookings SET status = $2, paid_at = $3, payment_ref = $4, updated_on = $5 WHERE id = $1 AND paid_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, id, domain.BookingStatusPaid, paidAt, paymentRef, time.Now())
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *bookingRepository) MarkRefunded(ctx context.Context, id string, refundedAt time.Time) (bool, error) {
	query := `UPDATE bookings SET status = $2, refunded_at = $3, updated_on = $4 WHERE id = $1 AND refunded_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, id, domain.BookingStatusRefunded, refundedAt, time.Now())
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *bookingRepository) RejectOverlappingPending(ctx context.Context, itemID, excludeID, startDate, endDate string) (int64, error) {
	// Same strict-inequality overlap as utils.RangesOverlap.
	query := `UPDATE bookings SET status = $5, updated_on = $6
	          WHERE item_id = $1 AND status = $4 AND start_date < $3 AND end_date > $2 AND id <> $7`
	res, err := r.db.ExecContext(ctx, query, itemID, startDate, endDate, domain.BookingStatusPending, domain.BookingStatusRejected, time.Now(), excludeID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *bookingRepository) ReopenOverlappingRejected(ctx context.Context, itemID, excludeID, startDate, endDate string) (int64, error) {
	query := `UPDATE bookings SET status = $5, updated_on = $6
	          WHERE item_id = $1 AND status = $4 AND start_date < $3 AND end_date > $2 AND id <> $7`
	res, err := r.db.ExecContext(ctx, query, itemID, startDate, endDate, domain.BookingStatusRejected, domain.BookingStatusPending, time.Now(), excludeID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *bookingRepository) ListConfirmedForItem(ctx context.Context, itemID string) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE item_id = $1 AND status IN ($2, $3) ORDER BY start_date`
	rows, err := r.db.QueryContext(ctx, query, itemID, domain.BookingStatusApproved, domain.BookingStatusPaid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

func (r *bookingRepository) ListByRenter(ctx context.Context, renterID string, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return r.listByParty(ctx, "renter_id", renterID, status, page, pageSize)
}

func (r *bookingRepository) ListByOwner(ctx context.Context, ownerID string, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return r.listByParty(ctx, "owner_id", ownerID, status, page, pageSize)
}

func (r *bookingRepository) listByParty(ctx context.Context, column, userID, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	offset := (page - 1) * pageSize
	base := `FROM bookings WHERE ` + column + ` = $1`
	args := []interface{}{userID}
	argIdx := 2
	if status != "" {
		base += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, "SELECT count(*) "+base, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf("SELECT %s %s ORDER BY created_on DESC LIMIT $%d OFFSET $%d", bookingColumns, base, argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	bookings, err := collectBookings(rows)
	if err != nil {
		return nil, 0, err
	}
	return bookings, count, nil
}

func (r *bookingRepository) ListEndedPaid(ctx context.Context, before string) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE status = $1 AND end_date < $2`
	rows, err := r.db.QueryContext(ctx, query, domain.BookingStatusPaid, before)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

func collectBookings(rows *sql.Rows) ([]domain.Booking, error) {
	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}
