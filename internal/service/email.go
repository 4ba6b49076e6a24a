package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fleetrent-backend/internal/logger"
	"fleetrent-backend/internal/utils"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// mailSender delivers one message. Implemented by SendGrid and by a
// log-only sender used when no API key is configured.
type mailSender interface {
	Send(ctx context.Context, to, toName, subject, body string) error
}

type emailService struct {
	sender mailSender
}

// NewEmailService sends through SendGrid, or only logs messages when apiKey
// is empty
func NewEmailService(apiKey, from, fromName string) EmailService {
	return &emailService{sender: newSender(apiKey, from, fromName)}
}

// NewAsyncEmailService is NewEmailService with delivery moved onto a
// started EmailQueue. Callers must Stop the queue on shutdown.
func NewAsyncEmailService(apiKey, from, fromName string, workers, queueSize, maxRetries int) (EmailService, *EmailQueue) {
	q := NewEmailQueue(newSender(apiKey, from, fromName), workers, queueSize, maxRetries)
	q.Start()
	return &emailService{sender: q}, q
}

func newSender(apiKey, from, fromName string) mailSender {
	if apiKey == "" {
		logger.Warn("SendGrid API key not configured, emails will be logged only")
		return logSender{}
	}
	return &sendGridSender{
		client:   sendgrid.NewSendClient(apiKey),
		from:     from,
		fromName: fromName,
	}
}

func (s *emailService) SendRentalConfirmation(ctx context.Context, email, name string, inv *Invoice) error {
	subject := fmt.Sprintf("Rental Confirmation - %s", inv.RentalID)
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\nYour rental of %s is confirmed.\n\n", name, inv.VehicleLabel)
	fmt.Fprintf(&b, "Rental ID: %s\nDates: %s to %s (%d days)\n", inv.RentalID, inv.StartDate, inv.EndDate, inv.Days)
	fmt.Fprintf(&b, "Daily rate: %s\nBase cost: %s\n", utils.FormatCents(inv.DailyRateCents), utils.FormatCents(inv.BaseCostCents))
	if inv.DiscountCents > 0 {
		fmt.Fprintf(&b, "Discount (%d%%): -%s\n", inv.DiscountBasisPoints/100, utils.FormatCents(inv.DiscountCents))
	}
	fmt.Fprintf(&b, "Total: %s\n\nBest regards,\nThe FleetRent Team", utils.FormatCents(inv.TotalCostCents))
	return s.sender.Send(ctx, email, name, subject, b.String())
}

func (s *emailService) SendReturnConfirmation(ctx context.Context, email, name string, inv *Invoice) error {
	subject := fmt.Sprintf("Return Receipt - %s", inv.RentalID)
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\nThank you for returning %s on %s.\n", name, inv.VehicleLabel, inv.ActualReturnDate)
	if inv.Message != "" {
		fmt.Fprintf(&b, "%s\n", inv.Message)
	}
	fmt.Fprintf(&b, "\nFinal total: %s\n\nBest regards,\nThe FleetRent Team", utils.FormatCents(inv.TotalCostCents))
	return s.sender.Send(ctx, email, name, subject, b.String())
}

func (s *emailService) SendOverdueReminder(ctx context.Context, email, name, rentalID, vehicleLabel string, dueDate time.Time) error {
	subject := fmt.Sprintf("Overdue Rental - %s", rentalID)
	body := fmt.Sprintf("Hello %s,\n\nYour rental %s of %s was due back on %s. Please return the vehicle as soon as possible.\n\nBest regards,\nThe FleetRent Team",
		name, rentalID, vehicleLabel, utils.FormatDate(dueDate))
	return s.sender.Send(ctx, email, name, subject, body)
}

type sendGridSender struct {
	client   *sendgrid.Client
	from     string
	fromName string
}

func (s *sendGridSender) Send(ctx context.Context, to, toName, subject, body string) error {
	from := mail.NewEmail(s.fromName, s.from)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, body, "")

	logger.ExternalServiceCall("sendgrid", "Send", "to", to, "subject", subject)
	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "Send", err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		err := fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
		logger.ExternalServiceResult("sendgrid", "Send", err)
		return err
	}
	logger.ExternalServiceResult("sendgrid", "Send", nil, "status", response.StatusCode)
	return nil
}

type logSender struct{}

func (logSender) Send(ctx context.Context, to, toName, subject, body string) error {
	logger.Info("Email (not sent)", "to", to, "subject", subject)
	logger.Debug("Email body", "to", to, "body", body)
	return nil
}
