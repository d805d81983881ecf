// controllers/payment.go
package controllers

import (
	"context"
	"net/http"
	"time"

	"go-parcel/logger"
	"go-parcel/middleware"
	"go-parcel/models"
	"go-parcel/store"
	"go-parcel/utils"
)

const receiptTimeout = 30 * time.Second

// PaymentController handles payment-related requests
type PaymentController struct {
	Parcels  store.ParcelStore
	Payments store.PaymentStore
	Notifier utils.Notifier
	Timeout  time.Duration
}

// NewPaymentController creates a new PaymentController
func NewPaymentController(parcels store.ParcelStore, payments store.PaymentStore, notifier utils.Notifier, timeout time.Duration) *PaymentController {
	return &PaymentController{
		Parcels:  parcels,
		Payments: payments,
		Notifier: notifier,
		Timeout:  timeout,
	}
}

// GetPayments lists the payment history of ?email=, newest first. Only the
// owner of the email may read it.
func (pc *PaymentController) GetPayments(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	email := r.URL.Query().Get("email")

	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok || identity.Email == "" || identity.Email != email {
		log.Warn().Str("email", email).Str("identity", identity.Email).Msg("payment history requested for another user")
		utils.WriteMessage(w, http.StatusForbidden, "forbidden access")
		return
	}

	ctx, cancel := storeContext(r, pc.Timeout)
	defer cancel()

	payments, err := pc.Payments.List(ctx, email)
	if err != nil {
		log.Error().Err(err).Msg("error fetching payment history")
		utils.WriteMessage(w, http.StatusInternalServerError, "Failed to get payments")
		return
	}

	utils.WriteJSON(w, http.StatusOK, payments)
}

// CreatePayment marks the parcel paid and then records the payment. The two
// writes are not atomic: when the payment insert fails, the parcel is flipped
// back to unpaid on a best-effort basis.
func (pc *PaymentController) CreatePayment(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.PaymentRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		log.Warn().Err(err).Msg("invalid payment body")
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := models.Validate(req); err != nil {
		log.Warn().Err(err).Msg("payment failed validation")
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid payment: "+err.Error())
		return
	}
	parcelID, ok := parseObjectID(w, r, req.ParcelID, "Invalid parcel id")
	if !ok {
		return
	}

	ctx, cancel := storeContext(r, pc.Timeout)
	defer cancel()

	modified, err := pc.Parcels.MarkPaid(ctx, parcelID)
	if err != nil {
		log.Error().Err(err).Msg("payment processing failed")
		utils.WriteMessage(w, http.StatusInternalServerError, "Failed to record payment")
		return
	}
	if !modified {
		utils.WriteMessage(w, http.StatusNotFound, "Parcel not found or already paid")
		return
	}

	payment := models.Payment{
		ParcelID:      parcelID.Hex(),
		Email:         req.Email,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		TransactionID: req.TransactionID,
		PaidAt:        time.Now().UTC(),
	}

	id, err := pc.Payments.Create(ctx, payment)
	if err != nil {
		log.Error().Err(err).Str("parcel_id", payment.ParcelID).Msg("payment insert failed, reverting parcel status")

		revertCtx, revertCancel := context.WithTimeout(context.WithoutCancel(r.Context()), pc.Timeout)
		defer revertCancel()
		if rerr := pc.Parcels.RevertPaid(revertCtx, parcelID); rerr != nil {
			log.Error().Err(rerr).Str("parcel_id", payment.ParcelID).Msg("parcel left paid without a payment record")
		}

		utils.WriteMessage(w, http.StatusInternalServerError, "Failed to record payment")
		return
	}
	payment.ID = id

	go pc.sendReceipt(log, payment)

	utils.WriteJSON(w, http.StatusCreated, models.PaymentResponse{
		Message:    "Payment recorded and parcel marked as paid",
		InsertedID: id,
	})
}

func (pc *PaymentController) sendReceipt(log *logger.Logger, payment models.Payment) {
	ctx, cancel := context.WithTimeout(context.Background(), receiptTimeout)
	defer cancel()

	if err := pc.Notifier.SendPaymentReceipt(ctx, payment); err != nil {
		log.Error().Err(err).Str("email", payment.Email).Msg("failed to send payment receipt")
	}
}
