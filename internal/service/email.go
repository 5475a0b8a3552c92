package service

import (
	"context"
	"fmt"

	"rentloop-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(to, subject, plainText string) error {
	logger.ExternalServiceCall("sendgrid", "send", "subject", subject)

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "send", err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		err := fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
		logger.ExternalServiceResult("sendgrid", "send", err)
		return err
	}

	logger.ExternalServiceResult("sendgrid", "send", nil)
	return nil
}

func (s *emailService) SendBookingRequested(ctx context.Context, to, renterName, itemTitle string) error {
	subject := fmt.Sprintf("New booking request: %s", itemTitle)
	body := fmt.Sprintf("%s requested to rent %s. Review the request in your booking requests.", renterName, itemTitle)
	return s.send(to, subject, body)
}

func (s *emailService) SendBookingApproved(ctx context.Context, to, itemTitle string) error {
	subject := fmt.Sprintf("Booking approved: %s", itemTitle)
	body := fmt.Sprintf("Your booking request for %s was approved. You can now complete the payment.", itemTitle)
	return s.send(to, subject, body)
}

func (s *emailService) SendBookingRejected(ctx context.Context, to, itemTitle string) error {
	subject := fmt.Sprintf("Booking rejected: %s", itemTitle)
	body := fmt.Sprintf("Your booking request for %s was rejected.", itemTitle)
	return s.send(to, subject, body)
}

func (s *emailService) SendBookingPaid(ctx context.Context, to, itemTitle string) error {
	subject := fmt.Sprintf("Booking confirmed: %s", itemTitle)
	body := fmt.Sprintf("Payment received. The booking for %s is confirmed.", itemTitle)
	return s.send(to, subject, body)
}

func (s *emailService) SendBookingCancelled(ctx context.Context, to, renterName, itemTitle string) error {
	subject := fmt.Sprintf("Booking cancelled: %s", itemTitle)
	body := fmt.Sprintf("%s cancelled the booking for %s. The dates are available again.", renterName, itemTitle)
	return s.send(to, subject, body)
}

func (s *emailService) SendBookingRefunded(ctx context.Context, to, itemTitle string, amount float64) error {
	subject := fmt.Sprintf("Refund issued: %s", itemTitle)
	body := fmt.Sprintf("A refund of %.2f was issued for your booking of %s.", amount, itemTitle)
	return s.send(to, subject, body)
}

func (s *emailService) SendItemModerated(ctx context.Context, to, itemTitle string, approved bool) error {
	if approved {
		return s.send(to, fmt.Sprintf("Listing approved: %s", itemTitle),
			fmt.Sprintf("Your listing %s was approved and is now visible to renters.", itemTitle))
	}
	return s.send(to, fmt.Sprintf("Listing rejected: %s", itemTitle),
		fmt.Sprintf("Your listing %s was rejected by moderation.", itemTitle))
}

func (s *emailService) SendReviewReminder(ctx context.Context, to, itemTitle string) error {
	subject := fmt.Sprintf("Leave a review: %s", itemTitle)
	body := fmt.Sprintf("Your rental of %s has ended. Share your experience by leaving a review.", itemTitle)
	return s.send(to, subject, body)
}
