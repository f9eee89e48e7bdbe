package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/systmms/dataseeder/internal/auction"
)

func TestCollection_AgainstMockDeployment(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("insert one returns assigned id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		item := auction.NewItem("Vintage Watch", "A rare 1950s timepiece", 1000, 1500)
		id, err := NewCollection(mt.Coll).InsertOne(ctx, item.Document())

		require.NoError(mt, err)
		_, err = primitive.ObjectIDFromHex(id)
		assert.NoError(mt, err)
	})

	mt.Run("insert many returns one id per document", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		docs := []interface{}{
			bson.M{"title": "Vase"},
			bson.M{"title": "Rug"},
		}
		ids, err := NewCollection(mt.Coll).InsertMany(ctx, docs)

		require.NoError(mt, err)
		assert.Len(mt, ids, 2)
	})

	mt.Run("insert many surfaces write errors", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   1,
			Code:    11000,
			Message: "duplicate key error",
		}))

		docs := []interface{}{bson.M{"title": "Vase"}, bson.M{"title": "Vase"}}
		_, err := NewCollection(mt.Coll).InsertMany(ctx, docs)

		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "insert many")
	})

	mt.Run("find decodes every batch document", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		first := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: first}, {Key: "title", Value: "Vintage Watch"}},
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "title", Value: "Vintage Watch"}},
		))

		docs, err := NewCollection(mt.Coll).Find(ctx, auction.NewFilter("title", auction.StringValue("Vintage Watch")))

		require.NoError(mt, err)
		require.Len(mt, docs, 2)
		assert.Equal(mt, first, docs[0]["_id"])
		assert.Equal(mt, "Vintage Watch", docs[1]["title"])
	})

	mt.Run("find with no matches returns empty slice", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		docs, err := NewCollection(mt.Coll).Find(ctx, auction.Filter{})

		require.NoError(mt, err)
		assert.NotNil(mt, docs)
		assert.Empty(mt, docs)
	})

	mt.Run("find reports command errors", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Name:    "Unauthorized",
			Message: "not authorized on auctions",
		}))

		_, err := NewCollection(mt.Coll).Find(ctx, auction.Filter{})
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "not authorized")
	})

	mt.Run("delete one reports deleted count", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		n, err := NewCollection(mt.Coll).DeleteOne(ctx, auction.NewFilter("title", auction.StringValue("Vase")))

		require.NoError(mt, err)
		assert.Equal(mt, int64(1), n)
	})

	mt.Run("delete many reports deleted count", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 3}))

		n, err := NewCollection(mt.Coll).DeleteMany(ctx, auction.NewFilter("start_price", auction.IntValue(1000)))

		require.NoError(mt, err)
		assert.Equal(mt, int64(3), n)
	})
}

func TestIDString(t *testing.T) {
	t.Parallel()

	oid := primitive.NewObjectID()
	assert.Equal(t, oid.Hex(), idString(oid))
	assert.Equal(t, "42", idString(int32(42)))
	assert.Equal(t, "custom", idString("custom"))
}
