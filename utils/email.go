// utils/email.go
package utils

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go-parcel/config"
	"go-parcel/models"

	"github.com/keighl/postmark"
)

const emailTimeout = 10 * time.Second

// EmailService sends payment receipts using Postmark
type EmailService struct {
	client *postmark.Client
	sender string
}

// NewEmailService returns a Postmark backed Notifier, or a no-op one when
// no API token is configured.
func NewEmailService(cfg config.Email) Notifier {
	if cfg.APIToken == "" {
		return NopNotifier{}
	}

	client := postmark.NewClient(cfg.APIToken, "")
	client.HTTPClient = &http.Client{Timeout: emailTimeout}
	return &EmailService{client: client, sender: cfg.Sender}
}

// SendEmail sends a basic email to the specified recipient
func (es *EmailService) SendEmail(toEmail, subject, htmlContent, textContent string) error {
	_, err := es.client.SendEmail(postmark.Email{
		From:     es.sender,
		To:       toEmail,
		Subject:  subject,
		HtmlBody: htmlContent,
		TextBody: textContent,
		Tag:      "payment-receipt",
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendPaymentReceipt emails the payer a receipt for payment. The Postmark
// client has no context support, so ctx is only checked before sending.
func (es *EmailService) SendPaymentReceipt(ctx context.Context, payment models.Payment) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	subject := "Payment Received - Parcel Delivery"
	htmlContent := fmt.Sprintf(
		"<strong>Thank you for your payment!</strong><br><br>Parcel: <strong>%s</strong><br>Amount: <strong>%.2f</strong><br>Transaction: <strong>%s</strong><br>Paid at: %s",
		payment.ParcelID,
		payment.Amount,
		payment.TransactionID,
		payment.PaidAt.Format(time.RFC1123),
	)
	textContent := fmt.Sprintf(
		"Thank you for your payment!\n\nParcel: %s\nAmount: %.2f\nTransaction: %s\nPaid at: %s\n",
		payment.ParcelID,
		payment.Amount,
		payment.TransactionID,
		payment.PaidAt.Format(time.RFC1123),
	)

	return es.SendEmail(payment.Email, subject, htmlContent, textContent)
}

// NopNotifier drops every receipt
type NopNotifier struct{}

func (NopNotifier) SendPaymentReceipt(context.Context, models.Payment) error { return nil }
