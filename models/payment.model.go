package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment represents a recorded payment for a parcel
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ParcelID      string             `bson:"parcelId" json:"parcelId"` // hex id of the paid parcel
	Email         string             `bson:"email" json:"email"`
	Amount        float64            `bson:"amount" json:"amount"`
	PaymentMethod string             `bson:"paymentMethod" json:"paymentMethod"`
	TransactionID string             `bson:"transactionId" json:"transactionId"`
	PaidAt        time.Time          `bson:"paid_at" json:"paid_at"`
}

// PaymentRequest is the body of a payment confirmation
type PaymentRequest struct {
	ParcelID      string  `json:"parcelId" validate:"required"`
	Email         string  `json:"email" validate:"required,email"`
	Amount        float64 `json:"amount" validate:"gte=0"`
	PaymentMethod string  `json:"paymentMethod"`
	TransactionID string  `json:"transactionId"`
}
