package config

import (
	"fmt"

	dserrors "github.com/systmms/dataseeder/internal/errors"
	"github.com/systmms/dataseeder/internal/logging"
	"github.com/systmms/dataseeder/internal/secure"
)

// ConnectionConfig locates the item collection. The connection string may
// carry credentials and is kept sealed in memory.
type ConnectionConfig struct {
	URI        *secure.String
	Database   string
	Collection string
}

// NewConnectionConfig seals uri and returns the config
func NewConnectionConfig(uri, database, collection string) ConnectionConfig {
	return ConnectionConfig{
		URI:        secure.NewString(uri),
		Database:   database,
		Collection: collection,
	}
}

// Validate fails with NotConfigured when any of the three settings is missing
func (c ConnectionConfig) Validate() error {
	if c.URI == nil || c.URI.IsEmpty() {
		return dserrors.NotConfigured("connection string")
	}
	if c.Database == "" {
		return dserrors.NotConfigured("database name")
	}
	if c.Collection == "" {
		return dserrors.NotConfigured("collection name")
	}
	return nil
}

// WithCollection returns a copy targeting another collection of the same database
func (c ConnectionConfig) WithCollection(name string) ConnectionConfig {
	if name != "" {
		c.Collection = name
	}
	return c
}

// Destroy wipes the sealed connection string
func (c ConnectionConfig) Destroy() {
	if c.URI != nil {
		c.URI.Destroy()
	}
}

// String renders the config with the connection string masked
func (c ConnectionConfig) String() string {
	uri := ""
	if c.URI != nil {
		if plain, err := c.URI.Reveal(); err == nil {
			uri = logging.MaskURI(plain)
		}
	}
	return fmt.Sprintf("%s (database %q, collection %q)", uri, c.Database, c.Collection)
}
