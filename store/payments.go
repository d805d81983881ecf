package store

import (
	"context"
	"fmt"

	"go-parcel/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type paymentStore struct {
	collection *mongo.Collection
}

// NewPaymentStore creates a PaymentStore backed by collection
func NewPaymentStore(collection *mongo.Collection) PaymentStore {
	return &paymentStore{collection: collection}
}

func (s *paymentStore) List(ctx context.Context, email string) ([]models.Payment, error) {
	filter := bson.M{}
	if email != "" {
		filter["email"] = email
	}
	opts := options.Find().SetSort(bson.D{{Key: "paid_at", Value: -1}})

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find payments: %w", err)
	}

	payments := []models.Payment{}
	if err = cursor.All(ctx, &payments); err != nil {
		return nil, fmt.Errorf("decode payments: %w", err)
	}
	return payments, nil
}

func (s *paymentStore) Create(ctx context.Context, payment models.Payment) (primitive.ObjectID, error) {
	result, err := s.collection.InsertOne(ctx, payment)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert payment: %w", err)
	}
	return insertedID(result)
}
