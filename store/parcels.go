package store

import (
	"context"
	"errors"
	"fmt"

	"go-parcel/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type parcelStore struct {
	collection *mongo.Collection
}

// NewParcelStore creates a ParcelStore backed by collection
func NewParcelStore(collection *mongo.Collection) ParcelStore {
	return &parcelStore{collection: collection}
}

func (s *parcelStore) List(ctx context.Context, createdBy string) ([]models.Parcel, error) {
	filter := bson.M{}
	if createdBy != "" {
		filter["created_by"] = createdBy
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find parcels: %w", err)
	}

	parcels := []models.Parcel{}
	if err = cursor.All(ctx, &parcels); err != nil {
		return nil, fmt.Errorf("decode parcels: %w", err)
	}
	return parcels, nil
}

func (s *parcelStore) Get(ctx context.Context, id primitive.ObjectID) (models.Parcel, error) {
	var parcel models.Parcel
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&parcel)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Parcel{}, ErrNotFound
	}
	if err != nil {
		return models.Parcel{}, fmt.Errorf("find parcel %s: %w", id.Hex(), err)
	}
	return parcel, nil
}

func (s *parcelStore) Create(ctx context.Context, parcel models.Parcel) (primitive.ObjectID, error) {
	result, err := s.collection.InsertOne(ctx, parcel)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert parcel: %w", err)
	}
	return insertedID(result)
}

func (s *parcelStore) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("delete parcel %s: %w", id.Hex(), err)
	}
	return result.DeletedCount, nil
}

func (s *parcelStore) MarkPaid(ctx context.Context, id primitive.ObjectID) (bool, error) {
	filter := bson.M{"_id": id, "payment_status": bson.M{"$ne": models.PaymentStatusPaid}}
	update := bson.M{"$set": bson.M{"payment_status": models.PaymentStatusPaid}}

	result, err := s.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("mark parcel %s paid: %w", id.Hex(), err)
	}
	return result.ModifiedCount > 0, nil
}

func (s *parcelStore) RevertPaid(ctx context.Context, id primitive.ObjectID) error {
	filter := bson.M{"_id": id, "payment_status": models.PaymentStatusPaid}
	update := bson.M{"$set": bson.M{"payment_status": models.PaymentStatusUnpaid}}

	if _, err := s.collection.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("revert parcel %s to unpaid: %w", id.Hex(), err)
	}
	return nil
}

func insertedID(result *mongo.InsertOneResult) (primitive.ObjectID, error) {
	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}
	return id, nil
}
