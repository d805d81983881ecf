package store

import (
	"context"
	"fmt"

	"go-parcel/config"
	"go-parcel/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names
const (
	UsersCollection    = "users"
	ParcelsCollection  = "parcels"
	PaymentsCollection = "payments"
	TrackingCollection = "tracking"
)

// Storages bundles the collection adapters that share one client
type Storages struct {
	Parcels  ParcelStore
	Users    UserStore
	Payments PaymentStore
	Tracking TrackingStore
}

// NewStorages builds every adapter on top of db
func NewStorages(db *mongo.Database) *Storages {
	return &Storages{
		Parcels:  NewParcelStore(db.Collection(ParcelsCollection)),
		Users:    NewUserStore(db.Collection(UsersCollection)),
		Payments: NewPaymentStore(db.Collection(PaymentsCollection)),
		Tracking: NewTrackingStore(db.Collection(TrackingCollection)),
	}
}

// Connect opens the long-lived client, pings the deployment and returns it.
// The caller owns the client and must Disconnect it on shutdown.
func Connect(ctx context.Context, cfg config.DB, log *logger.Logger) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)
	opts := options.Client().
		ApplyURI(cfg.URI()).
		SetServerAPIOptions(serverAPI).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	log.Info().Str("database", cfg.Name).Msg("connected to MongoDB successfully")
	return client, nil
}

// EnsureIndexes creates the indexes the queries rely on. The unique email
// index is what keeps concurrent user inserts from duplicating a user.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		UsersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		ParcelsCollection: {
			{Keys: bson.D{{Key: "created_by", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		PaymentsCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}, {Key: "paid_at", Value: -1}}},
		},
		TrackingCollection: {
			{Keys: bson.D{{Key: "tracking_id", Value: 1}, {Key: "time", Value: -1}}},
		},
	}

	for name, idx := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}
