package controllers

import (
	"math"
	"net/http"

	"go-parcel/logger"
	"go-parcel/models"
	"go-parcel/utils"
)

// maxAmountInCents keeps float to int conversion exact
const maxAmountInCents = 1e12

// PaymentIntentController creates charge intents with the payment gateway
type PaymentIntentController struct {
	Gateway utils.PaymentGateway
}

// NewPaymentIntentController creates a new PaymentIntentController
func NewPaymentIntentController(gateway utils.PaymentGateway) *PaymentIntentController {
	return &PaymentIntentController{Gateway: gateway}
}

// CreatePaymentIntent validates amountInCents and returns the client secret
// of a new intent. Invalid amounts never reach the gateway.
func (ic *PaymentIntentController) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.PaymentIntentRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		log.Warn().Err(err).Msg("invalid payment intent body")
		utils.WriteJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	amount, ok := amountInCents(req)
	if !ok {
		log.Warn().Interface("amount", req.AmountInCents).Msg("invalid payment intent amount")
		utils.WriteJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid amount"})
		return
	}

	secret, err := ic.Gateway.CreatePaymentIntent(r.Context(), amount)
	if err != nil {
		log.Error().Err(err).Int64("amount", amount).Msg("payment intent creation failed")
		utils.WriteJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to create payment intent"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, models.PaymentIntentResponse{ClientSecret: secret})
}

// amountInCents accepts a JSON number in amountInCents (or the older amount
// field), rounded to whole cents, that is positive after rounding.
func amountInCents(req models.PaymentIntentRequest) (int64, bool) {
	raw := req.AmountInCents
	if raw == nil {
		raw = req.Amount
	}

	f, ok := raw.(float64)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) || f > maxAmountInCents {
		return 0, false
	}

	cents := int64(math.Round(f))
	if cents <= 0 {
		return 0, false
	}
	return cents, true
}
