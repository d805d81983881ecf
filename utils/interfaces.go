package utils

import (
	"context"

	"go-parcel/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/utils_mock.go -package=mock

// Verifier turns a bearer token into the caller's identity
type Verifier interface {
	Verify(ctx context.Context, token string) (models.Identity, error)
}

// PaymentGateway creates charge intents with the external processor
type PaymentGateway interface {
	// CreatePaymentIntent returns the client secret of a new intent for amountCents.
	CreatePaymentIntent(ctx context.Context, amountCents int64) (string, error)
}

// Notifier tells payers about recorded payments
type Notifier interface {
	SendPaymentReceipt(ctx context.Context, payment models.Payment) error
}
