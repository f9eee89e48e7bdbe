package secretstore

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	dserrors "github.com/systmms/dataseeder/internal/errors"
)

func TestStore_GetSecretNeverSet(t *testing.T) {
	t.Parallel()

	store := NewWithKeyring(NewMemoryKeyring())

	value, err := store.GetSecret(KeyConnectionString)
	require.NoError(t, err)
	assert.Empty(t, value)
}

func TestMemoryKeyring_ZeroValue(t *testing.T) {
	t.Parallel()

	var backend MemoryKeyring
	store := NewWithKeyring(&backend)

	require.NoError(t, store.SetSecret(KeyDatabaseName, "auctions"))
	value, err := store.GetSecret(KeyDatabaseName)
	require.NoError(t, err)
	assert.Equal(t, "auctions", value)
}

func TestStore_SetAndGet(t *testing.T) {
	t.Parallel()

	backend := NewMemoryKeyring()
	store := NewWithKeyring(backend)

	require.NoError(t, store.SetSecret(KeyDatabaseName, "auctions"))

	value, err := store.GetSecret(KeyDatabaseName)
	require.NoError(t, err)
	assert.Equal(t, "auctions", value)

	raw, err := backend.Get(ServiceName, KeyDatabaseName)
	require.NoError(t, err)
	assert.Equal(t, "auctions", raw, "values live under the fixed service namespace")
}

func TestStore_Unavailable(t *testing.T) {
	t.Parallel()

	backend := NewMemoryKeyring()
	backend.Err = errors.New("dbus: no session bus")
	store := NewWithKeyring(backend)

	err := store.SetSecret(KeyDatabaseName, "auctions")
	assert.ErrorIs(t, err, dserrors.ErrStoreUnavailable)

	_, err = store.GetSecret(KeyDatabaseName)
	assert.ErrorIs(t, err, dserrors.ErrStoreUnavailable)

	_, err = store.Settings()
	assert.ErrorIs(t, err, dserrors.ErrStoreUnavailable)

	assert.ErrorIs(t, store.Reset(), dserrors.ErrStoreUnavailable)
}

func TestStore_ConnectionConfig(t *testing.T) {
	t.Parallel()

	store := NewWithKeyring(NewMemoryKeyring())
	require.NoError(t, store.SetSecret(KeyConnectionString, "mongodb://localhost:27017"))
	require.NoError(t, store.SetSecret(KeyDatabaseName, "auctions"))
	require.NoError(t, store.SetSecret(KeyCollectionName, "items"))

	cfg, err := store.ConnectionConfig()
	require.NoError(t, err)
	defer cfg.Destroy()

	uri, err := cfg.URI.Reveal()
	require.NoError(t, err)
	assert.Equal(t, "mongodb://localhost:27017", uri)
	assert.Equal(t, "auctions", cfg.Database)
	assert.Equal(t, "items", cfg.Collection)
}

func TestStore_ConnectionConfigNotConfigured(t *testing.T) {
	t.Parallel()

	store := NewWithKeyring(NewMemoryKeyring())
	require.NoError(t, store.SetSecret(KeyDatabaseName, "auctions"))

	_, err := store.ConnectionConfig()
	require.Error(t, err)
	assert.ErrorIs(t, err, dserrors.ErrNotConfigured)
	assert.Contains(t, err.Error(), "dataseeder setup")
}

func TestStore_Reset(t *testing.T) {
	t.Parallel()

	store := NewWithKeyring(NewMemoryKeyring())
	require.NoError(t, store.SetSecret(KeyConnectionString, "mongodb://localhost"))

	require.NoError(t, store.Reset())
	require.NoError(t, store.Reset(), "resetting twice is fine")

	settings, err := store.Settings()
	require.NoError(t, err)
	assert.Equal(t, Settings{}, settings)
}

func TestSettings_Get(t *testing.T) {
	t.Parallel()

	s := Settings{ConnectionString: "a", DatabaseName: "b", CollectionName: "c"}
	assert.Equal(t, "a", s.Get(KeyConnectionString))
	assert.Equal(t, "b", s.Get(KeyDatabaseName))
	assert.Equal(t, "c", s.Get(KeyCollectionName))
	assert.Empty(t, s.Get("other"))
}

// The OS-backed store is exercised through go-keyring's mock provider.
// MockInit swaps a package-level provider, so these tests are not parallel.
func TestOSStore_WithMockProvider(t *testing.T) {
	keyring.MockInit()

	store := New()
	require.NoError(t, store.SetSecret(KeyCollectionName, "items"))

	value, err := store.GetSecret(KeyCollectionName)
	require.NoError(t, err)
	assert.Equal(t, "items", value)

	require.NoError(t, store.DeleteSecret(KeyCollectionName))
	value, err = store.GetSecret(KeyCollectionName)
	require.NoError(t, err)
	assert.Empty(t, value)
}

func TestOSStore_MockProviderError(t *testing.T) {
	keyring.MockInitWithError(errors.New("keychain locked"))
	t.Cleanup(keyring.MockInit)

	_, err := New().GetSecret(KeyConnectionString)
	assert.ErrorIs(t, err, dserrors.ErrStoreUnavailable)
}
