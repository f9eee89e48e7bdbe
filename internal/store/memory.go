package store

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/systmms/dataseeder/internal/auction"
)

// MemoryCollection is an in-process ItemCollection with the equality
// semantics of the server: numbers compare by value across int32, int64 and
// double, strings never match numbers.
type MemoryCollection struct {
	mu   sync.RWMutex
	docs []bson.M

	// FailInsertAt makes InsertMany fail after inserting that many documents
	// when positive, imitating an ordered bulk insert stopped by a write error
	FailInsertAt int
	// Err, when set, is returned by every operation
	Err error
}

// NewMemoryCollection creates an empty collection
func NewMemoryCollection() *MemoryCollection {
	return &MemoryCollection{}
}

// Len returns the number of stored documents
func (m *MemoryCollection) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs)
}

func (m *MemoryCollection) InsertOne(_ context.Context, doc interface{}) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return "", m.Err
	}
	return m.insert(doc)
}

func (m *MemoryCollection) InsertMany(_ context.Context, docs []interface{}) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}

	ids := make([]string, 0, len(docs))
	for i, doc := range docs {
		if m.FailInsertAt > 0 && i == m.FailInsertAt {
			return ids, fmt.Errorf("insert many: write error at index %d", i)
		}
		id, err := m.insert(doc)
		if err != nil {
			return ids, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (m *MemoryCollection) insert(doc interface{}) (string, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("insert: %w", err)
	}
	var stored bson.M
	if err := bson.Unmarshal(raw, &stored); err != nil {
		return "", fmt.Errorf("insert: %w", err)
	}

	if _, ok := stored[auction.FieldID]; !ok {
		stored[auction.FieldID] = primitive.NewObjectID()
	}
	m.docs = append(m.docs, stored)
	return idString(stored[auction.FieldID]), nil
}

func (m *MemoryCollection) Find(_ context.Context, filter auction.Filter) ([]bson.M, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.Err != nil {
		return nil, m.Err
	}

	out := make([]bson.M, 0)
	for _, doc := range m.docs {
		if matches(doc, filter) {
			out = append(out, copyDoc(doc))
		}
	}
	return out, nil
}

func (m *MemoryCollection) DeleteOne(_ context.Context, filter auction.Filter) (int64, error) {
	return m.delete(filter, 1)
}

func (m *MemoryCollection) DeleteMany(_ context.Context, filter auction.Filter) (int64, error) {
	return m.delete(filter, -1)
}

func (m *MemoryCollection) delete(filter auction.Filter, limit int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return 0, m.Err
	}

	var deleted int64
	kept := m.docs[:0]
	for _, doc := range m.docs {
		if (limit < 0 || deleted < int64(limit)) && matches(doc, filter) {
			deleted++
			continue
		}
		kept = append(kept, doc)
	}
	m.docs = kept
	return deleted, nil
}

func matches(doc bson.M, filter auction.Filter) bool {
	if filter.Field == "" {
		return true
	}
	stored, ok := doc[filter.Field]
	if !ok {
		return false
	}

	switch filter.Value.Kind {
	case auction.KindInt:
		n, ok := asFloat(stored)
		return ok && n == float64(filter.Value.Int)
	default:
		s, ok := stored.(string)
		return ok && s == filter.Value.Str
	}
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func copyDoc(doc bson.M) bson.M {
	out := make(bson.M, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}

// Ensure MemoryCollection implements ItemCollection
var _ ItemCollection = (*MemoryCollection)(nil)
