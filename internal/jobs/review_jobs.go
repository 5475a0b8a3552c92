package jobs

import (
	"context"
	"time"

	"rentloop-backend/internal/domain"
	"rentloop-backend/internal/logger"
	"rentloop-backend/internal/utils"

	"github.com/google/uuid"
)

// SendReviewReminders notifies both parties of each ended paid booking that
// they can leave a review. A reminder is sent at most once per user and
// booking, and skipped once the user has already reviewed.
func (jr *JobRunner) SendReviewReminders() {
	jr.runWithRecovery("SendReviewReminders", func() {
		ctx := context.Background()
		today := time.Now().UTC().Format(utils.DateLayout)

		bookings, err := jr.store.Bookings.ListEndedPaid(ctx, today)
		if err != nil {
			logger.Error("Failed to list ended bookings", "error", err)
			return
		}

		count := 0
		for _, booking := range bookings {
			item, err := jr.store.Items.GetByID(ctx, booking.ItemID)
			if err != nil {
				logger.Error("Failed to load item for review reminder", "booking_id", booking.ID, "error", err)
				continue
			}

			for _, userID := range []string{booking.RenterID, booking.OwnerID} {
				if jr.remindUser(ctx, &booking, item.Title, userID) {
					count++
				}
			}
		}

		logger.Info("Review reminders sent", "count", count)
	})
}

func (jr *JobRunner) remindUser(ctx context.Context, booking *domain.Booking, itemTitle, userID string) bool {
	review, err := jr.store.Reviews.GetByBookingAndReviewer(ctx, booking.ID, userID)
	if err != nil {
		logger.Error("Failed to check existing review", "booking_id", booking.ID, "user_id", userID, "error", err)
		return false
	}
	if review != nil {
		return false
	}

	already, err := jr.store.Notifications.HasForBooking(ctx, userID, domain.NotificationReviewDue, booking.ID)
	if err != nil {
		logger.Error("Failed to check existing reminder", "booking_id", booking.ID, "user_id", userID, "error", err)
		return false
	}
	if already {
		return false
	}

	note := &domain.Notification{
		ID:     uuid.NewString(),
		UserID: userID,
		Type:   domain.NotificationReviewDue,
		Data: map[string]string{
			"booking_id": booking.ID,
			"item_id":    booking.ItemID,
			"item_title": itemTitle,
		},
	}
	if err := jr.store.Notifications.Create(ctx, note); err != nil {
		logger.Error("Failed to store review reminder", "booking_id", booking.ID, "user_id", userID, "error", err)
		return false
	}

	if user, err := jr.store.Users.GetByID(ctx, userID); err == nil && user != nil {
		if err := jr.services.Email.SendReviewReminder(ctx, user.Email, itemTitle); err != nil {
			logger.Error("Failed to email review reminder", "booking_id", booking.ID, "user_id", userID, "error", err)
		}
	}

	logger.Debug("Review reminder created", "booking_id", booking.ID, "user_id", userID)
	return true
}
