package email

import (
	"context"
	"fmt"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/drivego/drivego-backend/internal/models"
)

// Sender dispatches a booking confirmation to a customer. Delivery is
// best effort: callers log failures and never surface them.
type Sender interface {
	SendBookingConfirmation(ctx context.Context, to string, booking models.Booking) error
}

// SendGridSender sends booking confirmations through SendGrid.
type SendGridSender struct {
	apiKey    string
	fromEmail string
	fromName  string
}

// NewSendGridSender builds a sender from SENDGRID_API_KEY,
// SENDGRID_FROM_EMAIL and SENDGRID_FROM_NAME.
func NewSendGridSender() *SendGridSender {
	fromName := os.Getenv("SENDGRID_FROM_NAME")
	if fromName == "" {
		fromName = "DriveGO"
	}
	return &SendGridSender{
		apiKey:    os.Getenv("SENDGRID_API_KEY"),
		fromEmail: os.Getenv("SENDGRID_FROM_EMAIL"),
		fromName:  fromName,
	}
}

// SendBookingConfirmation sends the confirmation email for a persisted
// booking.
func (s *SendGridSender) SendBookingConfirmation(ctx context.Context, to string, booking models.Booking) error {
	if s.apiKey == "" {
		return fmt.Errorf("SENDGRID_API_KEY is not configured")
	}
	if s.fromEmail == "" {
		return fmt.Errorf("SENDGRID_FROM_EMAIL is not configured")
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	toEmail := mail.NewEmail("", to)
	subject := "Booking Confirmed - DriveGO"

	message := mail.NewSingleEmail(from, subject, toEmail, PlainBody(booking), HTMLBody(booking))

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email via SendGrid: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("SendGrid returned status %d: %s", response.StatusCode, response.Body)
	}
	return nil
}

// PlainBody renders the plain-text confirmation.
func PlainBody(b models.Booking) string {
	return fmt.Sprintf(
		"Your booking has been successfully confirmed.\n\n"+
			"Vehicle: %s\n"+
			"Pickup Location: %s\n"+
			"Pickup Date: %s\n"+
			"Return Date: %s\n"+
			"Total Paid: LKR %.0f\n\n"+
			"Thank you for choosing DriveGO.",
		b.VehicleName, b.PickupLocation, b.PickupDate, b.ReturnDate, b.TotalPrice,
	)
}

// HTMLBody renders the HTML confirmation.
func HTMLBody(b models.Booking) string {
	return fmt.Sprintf(
		"<h2>Booking Confirmed</h2>"+
			"<p>Your booking has been successfully confirmed.</p>"+
			"<hr/>"+
			"<p><strong>Vehicle:</strong> %s</p>"+
			"<p><strong>Pickup Location:</strong> %s</p>"+
			"<p><strong>Pickup Date:</strong> %s</p>"+
			"<p><strong>Return Date:</strong> %s</p>"+
			"<p><strong>Total Paid:</strong> LKR %.0f</p>"+
			"<br/><p>Thank you for choosing <b>DriveGO</b>.</p>",
		b.VehicleName, b.PickupLocation, b.PickupDate, b.ReturnDate, b.TotalPrice,
	)
}
