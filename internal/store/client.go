// Package store is the document store client: it opens the MongoDB
// connection once per process and hands out collection handles.
package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	dserrors "github.com/systmms/dataseeder/internal/errors"
	"github.com/systmms/dataseeder/internal/logging"
	"github.com/systmms/dataseeder/internal/secure"
)

const (
	DefaultConnectTimeout         = 10 * time.Second
	DefaultServerSelectionTimeout = 10 * time.Second
)

// Client owns the driver connection. It is safe for concurrent use.
type Client struct {
	mongoClient *mongo.Client
	logger      *logging.Logger
}

// Connect opens a connection and pings the server so that a bad connection
// string or an unreachable server is reported here rather than on first use.
// Failures are returned as ErrConnection and never retried.
func Connect(ctx context.Context, uri *secure.String, logger *logging.Logger) (*Client, error) {
	var mongoClient *mongo.Client
	err := uri.Use(func(plain string) error {
		// timeouts in the URI win over the defaults; the driver keeps
		// substrings of the URI, so give it its own copy
		clientOpts := options.Client().
			SetConnectTimeout(DefaultConnectTimeout).
			SetServerSelectionTimeout(DefaultServerSelectionTimeout).
			ApplyURI(strings.Clone(plain))

		c, err := mongo.Connect(ctx, clientOpts)
		if err != nil {
			return redactURI(fmt.Errorf("mongo connect: %w", err), plain)
		}
		if err := c.Ping(ctx, nil); err != nil {
			_ = c.Disconnect(context.Background())
			return redactURI(fmt.Errorf("mongo ping: %w", err), plain)
		}
		mongoClient = c
		return nil
	})
	if err != nil {
		return nil, dserrors.ConnectionFailed(err)
	}

	if logger != nil {
		logger.Debug("Connected to MongoDB")
	}
	return &Client{mongoClient: mongoClient, logger: logger}, nil
}

// redactedError keeps the wrapped driver error for errors.Is and errors.As
// but reports a message with the connection string credentials removed
type redactedError struct {
	msg string
	err error
}

func (e *redactedError) Error() string { return e.msg }
func (e *redactedError) Unwrap() error { return e.err }

// redactURI masks plain wherever it appears in err's message and redacts
// its password on its own
func redactURI(err error, plain string) error {
	orig := err.Error()
	msg := orig
	if plain != "" {
		msg = strings.ReplaceAll(msg, plain, logging.MaskURI(plain))
	}
	msg = logging.Redact(msg, logging.URISecrets(plain))
	if msg == orig {
		return err
	}
	return &redactedError{msg: msg, err: err}
}

// Collection resolves a collection handle. No existence check is made; the
// server creates the collection on first write.
func (c *Client) Collection(database, collection string) *Collection {
	return NewCollection(c.mongoClient.Database(database).Collection(collection))
}

// Disconnect closes the connection
func (c *Client) Disconnect(ctx context.Context) error {
	if err := c.mongoClient.Disconnect(ctx); err != nil {
		return fmt.Errorf("mongo disconnect: %w", err)
	}
	return nil
}
