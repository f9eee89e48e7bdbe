package commands

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/systmms/dataseeder/internal/config"
	"github.com/systmms/dataseeder/internal/logging"
	"github.com/systmms/dataseeder/internal/secretstore"
	"github.com/systmms/dataseeder/internal/seeder"
	"github.com/systmms/dataseeder/internal/store"
)

// Connector opens the collection described by conn. The returned close
// function releases the underlying client.
type Connector func(ctx context.Context, conn config.ConnectionConfig, logger *logging.Logger) (store.ItemCollection, func(context.Context) error, error)

// Deps are the backends shared by the commands
type Deps struct {
	Secrets *secretstore.Store
	Connect Connector
}

// DefaultDeps uses the OS keyring and a MongoDB client
func DefaultDeps() *Deps {
	return &Deps{
		Secrets: secretstore.New(),
		Connect: connectMongo,
	}
}

func connectMongo(ctx context.Context, conn config.ConnectionConfig, logger *logging.Logger) (store.ItemCollection, func(context.Context) error, error) {
	client, err := store.Connect(ctx, conn.URI, logger)
	if err != nil {
		return nil, nil, err
	}
	return client.Collection(conn.Database, conn.Collection), client.Disconnect, nil
}

// withService resolves the stored connection settings, opens the collection
// and runs fn with a seeder bound to it. collection, when set, replaces the
// stored collection name.
func withService(cmd *cobra.Command, cfg *config.Config, deps *Deps, collection string, fn func(ctx context.Context, svc *seeder.Service) error) error {
	conn, err := deps.Secrets.ConnectionConfig()
	if err != nil {
		return err
	}
	defer conn.Destroy()
	conn = conn.WithCollection(collection)

	logger := cfg.Logger
	if logger == nil {
		logger = logging.New(false, false)
	}
	logger.Debug("Connecting to %s", conn)

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	coll, closeFn, err := deps.Connect(ctx, conn, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeFn(context.Background()); err != nil {
			logger.Warn("Failed to close connection: %v", err)
		}
	}()

	return fn(ctx, seeder.New(coll, cmd.OutOrStdout(), logger))
}
