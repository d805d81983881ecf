package store

import (
	"context"
	"testing"
	"time"

	"go-parcel/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func namespace(mt *mtest.T) string {
	return mt.Coll.Database().Name() + "." + mt.Coll.Name()
}

func commandError() bson.D {
	return mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Name: "BadValue", Message: "boom"})
}

func TestParcelStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("list decodes parcels with details", func(mt *mtest.T) {
		newer := primitive.NewObjectID()
		older := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: newer},
				{Key: "created_by", Value: "ann@example.com"},
				{Key: "createdAt", Value: time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC)},
				{Key: "payment_status", Value: "paid"},
				{Key: "title", Value: "Books"},
			},
			bson.D{
				{Key: "_id", Value: older},
				{Key: "created_by", Value: "ann@example.com"},
				{Key: "createdAt", Value: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)},
				{Key: "payment_status", Value: "unpaid"},
			},
		))

		parcels, err := NewParcelStore(mt.Coll).List(ctx, "ann@example.com")
		require.NoError(mt, err)
		require.Len(mt, parcels, 2)
		assert.Equal(mt, newer, parcels[0].ID)
		assert.Equal(mt, "Books", parcels[0].Details["title"])
		assert.Equal(mt, models.PaymentStatusUnpaid, parcels[1].PaymentStatus)
	})

	mt.Run("list of nothing is an empty slice", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

		parcels, err := NewParcelStore(mt.Coll).List(ctx, "")
		require.NoError(mt, err)
		assert.NotNil(mt, parcels)
		assert.Empty(mt, parcels)
	})

	mt.Run("list error", func(mt *mtest.T) {
		mt.AddMockResponses(commandError())

		_, err := NewParcelStore(mt.Coll).List(ctx, "")
		assert.Error(mt, err)
	})

	mt.Run("get found", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "created_by", Value: "ann@example.com"},
		}))

		parcel, err := NewParcelStore(mt.Coll).Get(ctx, id)
		require.NoError(mt, err)
		assert.Equal(mt, id, parcel.ID)
		assert.Equal(mt, "ann@example.com", parcel.CreatedBy)
	})

	mt.Run("get missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

		_, err := NewParcelStore(mt.Coll).Get(ctx, primitive.NewObjectID())
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("create returns generated id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		id, err := NewParcelStore(mt.Coll).Create(ctx, models.Parcel{CreatedBy: "ann@example.com"})
		require.NoError(mt, err)
		assert.False(mt, id.IsZero())
	})

	mt.Run("delete reports count", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		deleted, err := NewParcelStore(mt.Coll).Delete(ctx, primitive.NewObjectID())
		require.NoError(mt, err)
		assert.Equal(mt, int64(1), deleted)
	})

	mt.Run("mark paid modified", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		modified, err := NewParcelStore(mt.Coll).MarkPaid(ctx, primitive.NewObjectID())
		require.NoError(mt, err)
		assert.True(mt, modified)
	})

	mt.Run("mark paid on paid or missing parcel", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		modified, err := NewParcelStore(mt.Coll).MarkPaid(ctx, primitive.NewObjectID())
		require.NoError(mt, err)
		assert.False(mt, modified)
	})

	mt.Run("revert paid error", func(mt *mtest.T) {
		mt.AddMockResponses(commandError())

		err := NewParcelStore(mt.Coll).RevertPaid(ctx, primitive.NewObjectID())
		assert.Error(mt, err)
	})
}

func TestUserStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()
	user := models.User{Email: "ann@example.com", Profile: models.Fields{"name": "Ann"}}

	mt.Run("inserts new email", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch),
			mtest.CreateSuccessResponse(),
		)

		id, err := NewUserStore(mt.Coll).Create(ctx, user)
		require.NoError(mt, err)
		assert.False(mt, id.IsZero())
	})

	mt.Run("existing email", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "email", Value: "ann@example.com"},
		}))

		_, err := NewUserStore(mt.Coll).Create(ctx, user)
		assert.ErrorIs(mt, err, ErrAlreadyExists)
	})

	mt.Run("concurrent insert hits unique index", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key error"}),
		)

		_, err := NewUserStore(mt.Coll).Create(ctx, user)
		assert.ErrorIs(mt, err, ErrAlreadyExists)
	})

	mt.Run("lookup error", func(mt *mtest.T) {
		mt.AddMockResponses(commandError())

		_, err := NewUserStore(mt.Coll).Create(ctx, user)
		require.Error(mt, err)
		assert.NotErrorIs(mt, err, ErrAlreadyExists)
	})
}

func TestPaymentStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("list", func(mt *mtest.T) {
		paidAt := time.Date(2025, 7, 2, 12, 0, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "parcelId", Value: "64b7f0c2a1b2c3d4e5f60718"},
			{Key: "email", Value: "ann@example.com"},
			{Key: "amount", Value: 120.0},
			{Key: "paymentMethod", Value: "pm_card"},
			{Key: "transactionId", Value: "pi_123"},
			{Key: "paid_at", Value: paidAt},
		}))

		payments, err := NewPaymentStore(mt.Coll).List(ctx, "ann@example.com")
		require.NoError(mt, err)
		require.Len(mt, payments, 1)
		assert.Equal(mt, "pi_123", payments[0].TransactionID)
		assert.Equal(mt, 120.0, payments[0].Amount)
		assert.True(mt, paidAt.Equal(payments[0].PaidAt))
	})

	mt.Run("create", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		id, err := NewPaymentStore(mt.Coll).Create(ctx, models.Payment{Email: "ann@example.com"})
		require.NoError(mt, err)
		assert.False(mt, id.IsZero())
	})

	mt.Run("create error", func(mt *mtest.T) {
		mt.AddMockResponses(commandError())

		_, err := NewPaymentStore(mt.Coll).Create(ctx, models.Payment{})
		assert.Error(mt, err)
	})
}

func TestTrackingStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		parcelID := primitive.NewObjectID()
		id, err := NewTrackingStore(mt.Coll).Create(context.Background(), models.TrackingLog{
			TrackingID: "TRK-1",
			ParcelID:   &parcelID,
			Status:     "picked_up",
			Time:       time.Now(),
		})
		require.NoError(mt, err)
		assert.False(mt, id.IsZero())
	})
}
