// Package secretstore persists the CLI connection settings in the OS
// credential store (macOS Keychain, Secret Service, Windows Credential
// Manager) under a fixed service namespace.
package secretstore

import (
	"errors"

	"github.com/zalando/go-keyring"

	"github.com/systmms/dataseeder/internal/config"
	dserrors "github.com/systmms/dataseeder/internal/errors"
)

// ServiceName is the service identifier for keyring storage
const ServiceName = "dataSeeder"

// Names of the stored secrets
const (
	KeyConnectionString = "userConnectionString"
	KeyDatabaseName     = "userDatabaseName"
	KeyCollectionName   = "userCollectionName"
)

// Keys lists the stored secrets in prompt order
var Keys = []string{KeyConnectionString, KeyDatabaseName, KeyCollectionName}

// Keyring abstracts the OS credential store for testing
type Keyring interface {
	Get(service, user string) (string, error)
	Set(service, user, password string) error
	Delete(service, user string) error
}

// ErrNotFound is returned by Keyring implementations for missing items
var ErrNotFound = keyring.ErrNotFound

// osKeyring talks to the platform credential store through go-keyring
type osKeyring struct{}

func (osKeyring) Get(service, user string) (string, error) {
	return keyring.Get(service, user)
}

func (osKeyring) Set(service, user, password string) error {
	return keyring.Set(service, user, password)
}

func (osKeyring) Delete(service, user string) error {
	return keyring.Delete(service, user)
}

// Settings are the three stored values in plain text
type Settings struct {
	ConnectionString string
	DatabaseName     string
	CollectionName   string
}

// Get returns the setting stored under key
func (s Settings) Get(key string) string {
	switch key {
	case KeyConnectionString:
		return s.ConnectionString
	case KeyDatabaseName:
		return s.DatabaseName
	case KeyCollectionName:
		return s.CollectionName
	}
	return ""
}

// Store reads and writes the connection settings
type Store struct {
	backend Keyring
	service string
}

// New creates a store backed by the OS credential store
func New() *Store {
	return NewWithKeyring(osKeyring{})
}

// NewWithKeyring creates a store over an arbitrary keyring backend
func NewWithKeyring(backend Keyring) *Store {
	return &Store{backend: backend, service: ServiceName}
}

// SetSecret persists value under name
func (s *Store) SetSecret(name, value string) error {
	if err := s.backend.Set(s.service, name, value); err != nil {
		return dserrors.StoreUnavailable("set "+name, err)
	}
	return nil
}

// GetSecret returns the value stored under name, or "" if it was never set
func (s *Store) GetSecret(name string) (string, error) {
	value, err := s.backend.Get(s.service, name)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", nil
		}
		return "", dserrors.StoreUnavailable("get "+name, err)
	}
	return value, nil
}

// DeleteSecret removes name; deleting a missing secret is not an error
func (s *Store) DeleteSecret(name string) error {
	if err := s.backend.Delete(s.service, name); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return dserrors.StoreUnavailable("delete "+name, err)
	}
	return nil
}

// Settings reads all three stored values
func (s *Store) Settings() (Settings, error) {
	var out Settings
	var err error

	if out.ConnectionString, err = s.GetSecret(KeyConnectionString); err != nil {
		return Settings{}, err
	}
	if out.DatabaseName, err = s.GetSecret(KeyDatabaseName); err != nil {
		return Settings{}, err
	}
	if out.CollectionName, err = s.GetSecret(KeyCollectionName); err != nil {
		return Settings{}, err
	}
	return out, nil
}

// ConnectionConfig loads the stored settings and checks they are complete
func (s *Store) ConnectionConfig() (config.ConnectionConfig, error) {
	settings, err := s.Settings()
	if err != nil {
		return config.ConnectionConfig{}, err
	}

	cfg := config.NewConnectionConfig(settings.ConnectionString, settings.DatabaseName, settings.CollectionName)
	if err := cfg.Validate(); err != nil {
		cfg.Destroy()
		return config.ConnectionConfig{}, err
	}
	return cfg, nil
}

// Reset deletes every stored setting
func (s *Store) Reset() error {
	for _, key := range Keys {
		if err := s.DeleteSecret(key); err != nil {
			return err
		}
	}
	return nil
}
