// Package auction holds the auction item model and the typed filter values
// used to look items up.
package auction

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Field names of an item document
const (
	FieldID           = "_id"
	FieldTitle        = "title"
	FieldDescription  = "description"
	FieldStartPrice   = "start_price"
	FieldReservePrice = "reserve_price"
)

// Item is a single auction record. ID is assigned by the store on insert.
// No relation between StartPrice and ReservePrice is enforced.
type Item struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description" json:"description"`
	StartPrice   int64              `bson:"start_price" json:"start_price"`
	ReservePrice int64              `bson:"reserve_price" json:"reserve_price"`
}

// NewItem builds an item ready for insertion
func NewItem(title, description string, startPrice, reservePrice int64) Item {
	return Item{
		Title:        title,
		Description:  description,
		StartPrice:   startPrice,
		ReservePrice: reservePrice,
	}
}

// Document converts the item to an insertable document without an _id
func (i Item) Document() bson.D {
	return bson.D{
		{Key: FieldTitle, Value: i.Title},
		{Key: FieldDescription, Value: i.Description},
		{Key: FieldStartPrice, Value: i.StartPrice},
		{Key: FieldReservePrice, Value: i.ReservePrice},
	}
}

// Printable returns a copy of doc whose ObjectID _id is replaced by its hex
// string, so it can be rendered as plain JSON.
func Printable(doc bson.M) bson.M {
	out := make(bson.M, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	if oid, ok := doc[FieldID].(primitive.ObjectID); ok {
		out[FieldID] = oid.Hex()
	}
	return out
}

// PrintableAll applies Printable to every document and never returns nil
func PrintableAll(docs []bson.M) []bson.M {
	out := make([]bson.M, 0, len(docs))
	for _, doc := range docs {
		out = append(out, Printable(doc))
	}
	return out
}
