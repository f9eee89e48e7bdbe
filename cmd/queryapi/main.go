package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/systmms/dataseeder/internal/api"
	"github.com/systmms/dataseeder/internal/config"
	"github.com/systmms/dataseeder/internal/logging"
	"github.com/systmms/dataseeder/internal/secure"
	"github.com/systmms/dataseeder/internal/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	err := run()
	secure.Purge()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	serverCfg, err := config.LoadFromEnv()
	if err != nil {
		return err
	}
	defer serverCfg.Connection.Destroy()

	logger := logging.New(serverCfg.Debug, false)
	logger.Debug("Connecting to %s", serverCfg.Connection)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, store.DefaultConnectTimeout)
	client, err := store.Connect(connectCtx, serverCfg.Connection.URI, logger)
	cancel()
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			logger.Warn("Failed to disconnect from MongoDB: %v", err)
		}
	}()

	coll := client.Collection(serverCfg.Connection.Database, serverCfg.Connection.Collection)
	handler := api.NewHandler(coll, logger)

	srvCfg := api.DefaultServerConfig()
	srvCfg.Addr = serverCfg.Addr()
	srv := api.NewServer(srvCfg, handler.Router())

	errc, err := srv.Start()
	if err != nil {
		return err
	}
	logger.Info("Listening on %s", srv.Addr())

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("server stopped: %w", err)
		}
	case <-ctx.Done():
		logger.Info("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Stop(shutdownCtx)
}
