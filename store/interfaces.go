package store

import (
	"context"

	"go-parcel/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// ParcelStore is the "parcels" collection
type ParcelStore interface {
	// List returns parcels newest first, filtered by creator when createdBy is not empty.
	List(ctx context.Context, createdBy string) ([]models.Parcel, error)
	// Get returns ErrNotFound when no parcel has the id.
	Get(ctx context.Context, id primitive.ObjectID) (models.Parcel, error)
	Create(ctx context.Context, parcel models.Parcel) (primitive.ObjectID, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
	// MarkPaid flips an unpaid parcel to paid and reports whether it did.
	MarkPaid(ctx context.Context, id primitive.ObjectID) (bool, error)
	// RevertPaid flips a paid parcel back to unpaid.
	RevertPaid(ctx context.Context, id primitive.ObjectID) error
}

// UserStore is the "users" collection
type UserStore interface {
	// Create returns ErrAlreadyExists when a user with the same email is stored.
	Create(ctx context.Context, user models.User) (primitive.ObjectID, error)
}

// PaymentStore is the "payments" collection
type PaymentStore interface {
	// List returns payments newest first, filtered by payer when email is not empty.
	List(ctx context.Context, email string) ([]models.Payment, error)
	Create(ctx context.Context, payment models.Payment) (primitive.ObjectID, error)
}

// TrackingStore is the "tracking" collection
type TrackingStore interface {
	Create(ctx context.Context, log models.TrackingLog) (primitive.ObjectID, error)
}
