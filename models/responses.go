package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InsertResult mirrors the acknowledgement clients receive after an insert
type InsertResult struct {
	Acknowledged bool               `json:"acknowledged"`
	InsertedID   primitive.ObjectID `json:"insertedId"`
}

// DeleteResult mirrors the acknowledgement clients receive after a delete
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// MessageResponse is the generic {message} body
type MessageResponse struct {
	Message string `json:"message"`
}

// UserExistsResponse is returned when a user with the same email is already stored
type UserExistsResponse struct {
	Message  string `json:"message"`
	Inserted bool   `json:"inserted"`
}

// TrackingResponse is returned after a tracking log is stored
type TrackingResponse struct {
	Success    bool               `json:"success"`
	InsertedID primitive.ObjectID `json:"insertedId"`
}

// PaymentResponse is returned after a payment is recorded
type PaymentResponse struct {
	Message    string             `json:"message"`
	InsertedID primitive.ObjectID `json:"insertedId"`
}

// PaymentIntentRequest carries the charge amount in cents. It is decoded
// loosely so a non-numeric amount can be rejected with a 400.
type PaymentIntentRequest struct {
	AmountInCents any `json:"amountInCents"`
	Amount        any `json:"amount"`
}

// PaymentIntentResponse carries the client secret of a created charge intent
type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// ErrorResponse is the {error} body used by the payment intent route
type ErrorResponse struct {
	Error string `json:"error"`
}
