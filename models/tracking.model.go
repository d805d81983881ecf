package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrackingLog is a single status entry in a parcel's delivery history
type TrackingLog struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	TrackingID string              `bson:"tracking_id" json:"tracking_id"`
	ParcelID   *primitive.ObjectID `bson:"parcel_id,omitempty" json:"parcel_id,omitempty"`
	Status     string              `bson:"status" json:"status"`
	Message    string              `bson:"message" json:"message"`
	Time       time.Time           `bson:"time" json:"time"`
	UpdatedBy  string              `bson:"updated_by" json:"updated_by"`
}

// TrackingRequest is the body of POST /tracking
type TrackingRequest struct {
	TrackingID string `json:"tracking_id" validate:"required"`
	ParcelID   string `json:"parcel_id"`
	Status     string `json:"status" validate:"required"`
	Message    string `json:"message"`
	UpdatedBy  string `json:"updated_by"`
}
