package utils

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go-parcel/config"

	"github.com/google/uuid"
)

const gatewayTimeout = 20 * time.Second

// paymentIntent is the part of a Stripe PaymentIntent the API needs
type paymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
}

// stripeError is Stripe's error envelope
type stripeError struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// StripeGateway creates card PaymentIntents through the Stripe REST API
type StripeGateway struct {
	client   *HTTPClient
	currency string
}

// NewStripeGateway creates a gateway authenticated with the configured secret key
func NewStripeGateway(cfg config.Payment) *StripeGateway {
	client := NewHTTPClient()
	client.
		SetBaseURL(strings.TrimRight(cfg.GatewayURL, "/")).
		SetBasicAuth(cfg.GatewayKey, "").
		SetTimeout(gatewayTimeout)

	return &StripeGateway{client: client, currency: cfg.Currency}
}

// CreatePaymentIntent requests a card intent for amountCents in the configured currency
func (g *StripeGateway) CreatePaymentIntent(ctx context.Context, amountCents int64) (string, error) {
	if amountCents <= 0 {
		return "", ErrInvalidAmount
	}

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amountCents, 10))
	form.Set("currency", g.currency)
	form.Add("payment_method_types[]", "card")

	var intent paymentIntent
	var apiErr stripeError
	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader("Idempotency-Key", uuid.NewString()).
		SetFormDataFromValues(form).
		SetResult(&intent).
		SetError(&apiErr).
		Post("/v1/payment_intents")
	if err != nil {
		return "", fmt.Errorf("create payment intent: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("%w: status %d: %s", ErrGateway, resp.StatusCode(), apiErr.Error.Message)
	}
	if intent.ClientSecret == "" {
		return "", fmt.Errorf("%w: empty client secret", ErrGateway)
	}

	return intent.ClientSecret, nil
}
