package postgres

import (
	"database/sql"

	"rentloop-backend/internal/repository"

	_ "github.com/lib/pq"
)

// Store bundles all repositories backed by one database handle.
type Store struct {
	db *sql.DB

	Items         repository.ItemRepository
	Bookings      repository.BookingRepository
	Reviews       repository.ReviewRepository
	Notifications repository.NotificationRepository
	Users         repository.UserRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:            db,
		Items:         NewItemRepository(db),
		Bookings:      NewBookingRepository(db),
		Reviews:       NewReviewRepository(db),
		Notifications: NewNotificationRepository(db),
		Users:         NewUserRepository(db),
	}
}
