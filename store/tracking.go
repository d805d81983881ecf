package store

import (
	"context"
	"fmt"

	"go-parcel/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type trackingStore struct {
	collection *mongo.Collection
}

// NewTrackingStore creates a TrackingStore backed by collection
func NewTrackingStore(collection *mongo.Collection) TrackingStore {
	return &trackingStore{collection: collection}
}

func (s *trackingStore) Create(ctx context.Context, log models.TrackingLog) (primitive.ObjectID, error) {
	result, err := s.collection.InsertOne(ctx, log)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert tracking log: %w", err)
	}
	return insertedID(result)
}
