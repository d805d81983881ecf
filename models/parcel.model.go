package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Parcel payment states
const (
	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)

// Parcel represents a shipment booked by a user. Shipment attributes beyond
// the ones the API acts on are kept in Details.
type Parcel struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	CreatedBy     string             `bson:"created_by" json:"created_by" validate:"required,email"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	PaymentStatus string             `bson:"payment_status" json:"payment_status" validate:"omitempty,oneof=unpaid paid"`
	Details       Fields             `bson:",inline" json:"-"`
}

func (p Parcel) MarshalJSON() ([]byte, error) {
	type plain Parcel
	return marshalDocument(plain(p), p.Details)
}

func (p *Parcel) UnmarshalJSON(data []byte) error {
	type plain Parcel
	var v plain
	details, err := unmarshalDocument(data, &v)
	if err != nil {
		return err
	}
	*p = Parcel(v)
	p.Details = details
	return nil
}
