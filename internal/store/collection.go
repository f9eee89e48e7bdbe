package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/systmms/dataseeder/internal/auction"
)

// ItemCollection is the set of single-call operations run against the item
// collection. Implementations must be safe for concurrent reads.
type ItemCollection interface {
	// InsertOne inserts doc and returns the store-assigned id
	InsertOne(ctx context.Context, doc interface{}) (string, error)
	// InsertMany inserts docs in one call. On error, ids holds whatever the
	// driver reported as inserted; earlier writes are not rolled back.
	InsertMany(ctx context.Context, docs []interface{}) ([]string, error)
	// Find returns every document matching filter; a zero filter matches all
	Find(ctx context.Context, filter auction.Filter) ([]bson.M, error)
	// DeleteOne removes at most one match and returns the number removed
	DeleteOne(ctx context.Context, filter auction.Filter) (int64, error)
	// DeleteMany removes every match and returns the number removed
	DeleteMany(ctx context.Context, filter auction.Filter) (int64, error)
}

// Collection adapts a driver collection to ItemCollection
type Collection struct {
	coll *mongo.Collection
}

// NewCollection wraps a driver collection
func NewCollection(coll *mongo.Collection) *Collection {
	return &Collection{coll: coll}
}

func (c *Collection) InsertOne(ctx context.Context, doc interface{}) (string, error) {
	res, err := c.coll.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert one: %w", err)
	}
	return idString(res.InsertedID), nil
}

func (c *Collection) InsertMany(ctx context.Context, docs []interface{}) ([]string, error) {
	res, err := c.coll.InsertMany(ctx, docs)

	var ids []string
	if res != nil {
		ids = make([]string, 0, len(res.InsertedIDs))
		for _, id := range res.InsertedIDs {
			ids = append(ids, idString(id))
		}
	}
	if err != nil {
		return ids, fmt.Errorf("insert many: %w", err)
	}
	return ids, nil
}

func (c *Collection) Find(ctx context.Context, filter auction.Filter) ([]bson.M, error) {
	cursor, err := c.coll.Find(ctx, filter.Document())
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", filter, err)
	}
	defer cursor.Close(ctx)

	docs := make([]bson.M, 0)
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode document: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("find %s: %w", filter, err)
	}
	return docs, nil
}

func (c *Collection) DeleteOne(ctx context.Context, filter auction.Filter) (int64, error) {
	res, err := c.coll.DeleteOne(ctx, filter.Document())
	if err != nil {
		return 0, fmt.Errorf("delete one %s: %w", filter, err)
	}
	return res.DeletedCount, nil
}

func (c *Collection) DeleteMany(ctx context.Context, filter auction.Filter) (int64, error) {
	res, err := c.coll.DeleteMany(ctx, filter.Document())
	if err != nil {
		return 0, fmt.Errorf("delete many %s: %w", filter, err)
	}
	return res.DeletedCount, nil
}

func idString(id interface{}) string {
	if oid, ok := id.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return fmt.Sprint(id)
}

// Ensure Collection implements ItemCollection
var _ ItemCollection = (*Collection)(nil)
