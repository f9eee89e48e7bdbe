// Package seeder implements the data operations of the dataseeder CLI on
// top of an injected item collection.
package seeder

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/systmms/dataseeder/internal/auction"
	"github.com/systmms/dataseeder/internal/logging"
	"github.com/systmms/dataseeder/internal/store"
)

// Service runs one operation against the item collection and reports the
// outcome on out
type Service struct {
	coll   store.ItemCollection
	out    io.Writer
	logger *logging.Logger
}

// New creates a Service
func New(coll store.ItemCollection, out io.Writer, logger *logging.Logger) *Service {
	return &Service{coll: coll, out: out, logger: logger}
}

// Add inserts a single item and returns its id. Prices are not validated.
func (s *Service) Add(ctx context.Context, item auction.Item) (string, error) {
	id, err := s.coll.InsertOne(ctx, item.Document())
	if err != nil {
		return "", err
	}
	fmt.Fprintf(s.out, "Data added (id %s)\n", id)
	return id, nil
}

// ImportResult summarises an import
type ImportResult struct {
	Read     int
	Inserted int
}

// Import bulk-inserts every record of the file at path in one call. Nothing
// is inserted when the file is missing or malformed; an insert error leaves
// the documents the store already accepted in place.
func (s *Service) Import(ctx context.Context, path, wrapperKey string) (ImportResult, error) {
	docs, err := ReadImportFile(path, wrapperKey)
	if err != nil {
		return ImportResult{}, err
	}

	result := ImportResult{Read: len(docs)}
	if len(docs) == 0 {
		fmt.Fprintf(s.out, "Nothing to import from %s\n", path)
		return result, nil
	}

	s.logger.Debug("Inserting %d documents from %s", len(docs), path)
	ids, err := s.coll.InsertMany(ctx, docs)
	result.Inserted = len(ids)
	if err != nil {
		if result.Inserted > 0 {
			s.logger.Warn("%d of %d documents were inserted before the error and were kept", result.Inserted, result.Read)
		}
		return result, fmt.Errorf("import %s: %w", path, err)
	}

	fmt.Fprintf(s.out, "Data imported successfully (%d items)\n", result.Inserted)
	return result, nil
}

// GetAll prints every document as one JSON line, _id as a hex string, and
// returns the number printed
func (s *Service) GetAll(ctx context.Context) (int, error) {
	docs, err := s.coll.Find(ctx, auction.Filter{})
	if err != nil {
		return 0, err
	}

	enc := json.NewEncoder(s.out)
	for _, doc := range docs {
		if err := enc.Encode(auction.Printable(doc)); err != nil {
			return 0, fmt.Errorf("print document: %w", err)
		}
	}
	s.logger.Debug("Listed %d documents", len(docs))
	return len(docs), nil
}

// Delete removes the first match, or every match when multi is set, and
// returns the number of documents removed
func (s *Service) Delete(ctx context.Context, filter auction.Filter, multi bool) (int64, error) {
	if multi {
		n, err := s.coll.DeleteMany(ctx, filter)
		if err != nil {
			return 0, err
		}
		fmt.Fprintf(s.out, "Deleted %d items matching %s\n", n, filter)
		return n, nil
	}

	n, err := s.coll.DeleteOne(ctx, filter)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		fmt.Fprintf(s.out, "Deleted item with %s\n", filter)
	} else {
		fmt.Fprintln(s.out, "No matching item found to delete")
	}
	return n, nil
}
