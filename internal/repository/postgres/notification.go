package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"rentloop-backend/internal/domain"
	"rentloop-backend/internal/repository"
)

type notificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, note *domain.Notification) error {
	data, err := json.Marshal(note.Data)
	if err != nil {
		return err
	}
	query := `INSERT INTO notifications (id, user_id, type, data, created_on) VALUES ($1, $2, $3, $4, $5)`
	now := time.Now()
	note.CreatedOn = now
	_, err = r.db.ExecContext(ctx, query, note.ID, note.UserID, note.Type, data, now)
	return err
}

func (r *notificationRepository) List(ctx context.Context, userID string, limit, offset int32) ([]domain.Notification, int32, error) {
	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM notifications WHERE user_id = $1`, userID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, user_id, type, data, created_on, read_at FROM notifications WHERE user_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var notes []domain.Notification
	for rows.Next() {
		var n domain.Notification
		var data []byte
		var readAt sql.NullTime
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &data, &n.CreatedOn, &readAt); err != nil {
			return nil, 0, err
		}
		if len(data) > 0 {
			if err := json.Unmarshal(data, &n.Data); err != nil {
				return nil, 0, err
			}
		}
		if readAt.Valid {
			t := readAt.Time
			n.ReadAt = &t
		}
		notes = append(notes, n)
	}
	return notes, count, rows.Err()
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id, userID string) error {
	query := `UPDATE notifications SET read_at = $3 WHERE id = $1 AND user_id = $2 AND read_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, id, userID, time.Now())
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}

func (r *notificationRepository) HasForBooking(ctx context.Context, userID, notificationType, bookingID string) (bool, error) {
	query := `SELECT count(*) FROM notifications WHERE user_id = $1 AND type = $2 AND data->>'booking_id' = $3`
	var count int
	if err := r.db.QueryRowContext(ctx, query, userID, notificationType, bookingID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
