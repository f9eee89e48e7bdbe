package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	dserrors "github.com/systmms/dataseeder/internal/errors"
)

func envFrom(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func TestLoadServerConfig(t *testing.T) {
	t.Parallel()

	cfg, err := loadServerConfig(envFrom(map[string]string{
		EnvConnectionString: "mongodb://localhost:27017",
		EnvDatabaseName:     "auctions",
		EnvCollectionName:   "items",
		EnvListenPort:       "9001",
		EnvDebug:            "true",
	}))
	require.NoError(t, err)
	defer cfg.Connection.Destroy()

	uri, err := cfg.Connection.URI.Reveal()
	require.NoError(t, err)
	assert.Equal(t, "mongodb://localhost:27017", uri)
	assert.Equal(t, "auctions", cfg.Connection.Database)
	assert.Equal(t, "items", cfg.Connection.Collection)
	assert.Equal(t, ":9001", cfg.Addr())
	assert.True(t, cfg.Debug)
}

func TestLoadServerConfig_DefaultPort(t *testing.T) {
	t.Parallel()

	cfg, err := loadServerConfig(envFrom(map[string]string{
		EnvConnectionString: "mongodb://localhost:27017",
		EnvDatabaseName:     "auctions",
		EnvCollectionName:   "items",
	}))
	require.NoError(t, err)
	defer cfg.Connection.Destroy()

	assert.Equal(t, DefaultListenPort, cfg.Port)
	assert.False(t, cfg.Debug)
}

func TestLoadServerConfig_MissingConnection(t *testing.T) {
	t.Parallel()

	_, err := loadServerConfig(envFrom(map[string]string{
		EnvDatabaseName:   "auctions",
		EnvCollectionName: "items",
	}))
	require.Error(t, err)
	assert.ErrorIs(t, err, dserrors.ErrNotConfigured)
	assert.Contains(t, err.Error(), EnvConnectionString)
}

func TestLoadServerConfig_BadPort(t *testing.T) {
	t.Parallel()

	_, err := loadServerConfig(envFrom(map[string]string{
		EnvConnectionString: "mongodb://localhost:27017",
		EnvDatabaseName:     "auctions",
		EnvCollectionName:   "items",
		EnvListenPort:       "http",
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvListenPort)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv(EnvConnectionString, "mongodb://localhost:27017")
	t.Setenv(EnvDatabaseName, "auctions")
	t.Setenv(EnvCollectionName, "items")
	t.Setenv(EnvListenPort, "")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	defer cfg.Connection.Destroy()

	assert.Equal(t, "items", cfg.Connection.Collection)
}
