// file: internal/credentials/keyring_test.go
package credentials

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestKeyringStore_RoundTrip(t *testing.T) {
	keyring.MockInit()
	store := NewKeyringStore(nil)

	key, err := store.Lookup("http://sonarr.lan:8989")
	require.NoError(t, err)
	assert.Empty(t, key, "missing entry should not be an error")

	require.NoError(t, store.Save("http://sonarr.lan:8989", "abc123"))

	key, err = store.Lookup("http://sonarr.lan:8989/")
	require.NoError(t, err)
	assert.Equal(t, "abc123", key, "lookup is keyed by host, not the full URL")

	other, err := store.Lookup("http://other.lan:8989")
	require.NoError(t, err)
	assert.Empty(t, other)

	require.NoError(t, store.Delete("http://sonarr.lan:8989"))
	key, err = store.Lookup("http://sonarr.lan:8989")
	require.NoError(t, err)
	assert.Empty(t, key)

	assert.NoError(t, store.Delete("http://sonarr.lan:8989"), "deleting twice should succeed")
}

func TestKeyringStore_Errors(t *testing.T) {
	keyring.MockInit()
	store := NewKeyringStore(nil)

	assert.Error(t, store.Save("http://sonarr.lan:8989", ""))
	assert.Error(t, store.Save("no-host", "abc"))

	_, err := store.Lookup("::bad")
	assert.Error(t, err)
}
