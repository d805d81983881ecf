package store

import (
	"context"
	"errors"
	"fmt"

	"go-parcel/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type userStore struct {
	collection *mongo.Collection
}

// NewUserStore creates a UserStore backed by collection
func NewUserStore(collection *mongo.Collection) UserStore {
	return &userStore{collection: collection}
}

// Create looks the email up first and inserts only when it is free. A
// concurrent insert that slips past the lookup is caught by the unique index.
func (s *userStore) Create(ctx context.Context, user models.User) (primitive.ObjectID, error) {
	err := s.collection.FindOne(ctx, bson.M{"email": user.Email}).Err()
	switch {
	case err == nil:
		return primitive.NilObjectID, ErrAlreadyExists
	case !errors.Is(err, mongo.ErrNoDocuments):
		return primitive.NilObjectID, fmt.Errorf("find user: %w", err)
	}

	result, err := s.collection.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return primitive.NilObjectID, ErrAlreadyExists
	}
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert user: %w", err)
	}
	return insertedID(result)
}
