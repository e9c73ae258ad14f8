//go:build !integration

package credentials

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()

	_, ok := s.Get()
	assert.False(t, ok, "new store should be empty")
	assert.False(t, s.Remove(), "removing from an empty store reports false")

	require.NoError(t, s.Set("T1"))
	got, ok := s.Get()
	require.True(t, ok)
	assert.Equal(t, "T1", got)

	require.NoError(t, s.Set("T2"), "set should overwrite")
	got, _ = s.Get()
	assert.Equal(t, "T2", got)

	require.Error(t, s.Set(""), "empty tokens are rejected")

	assert.True(t, s.Remove(), "removing an existing token reports true")
	_, ok = s.Get()
	assert.False(t, ok)
	assert.False(t, s.Remove(), "second remove is a no-op")
}

func TestKeyringStore(t *testing.T) {
	keyring.MockInit()
	exerciseStore(t, NewKeyringStore("shipkit-test"))
}

func TestKeyringStoreNamespaces(t *testing.T) {
	keyring.MockInit()

	prod := NewKeyringStore("shipkit")
	staging := NewKeyringStore("shipkit-staging")
	require.NoError(t, prod.Set("prod-token"))

	_, ok := staging.Get()
	assert.False(t, ok, "namespaces must not share tokens")

	got, ok := prod.Get()
	require.True(t, ok)
	assert.Equal(t, "prod-token", got)
}

func TestKeyringStoreDefaultsService(t *testing.T) {
	s := NewKeyringStore("  ")
	assert.Equal(t, "shipkit", s.service)
	assert.Equal(t, "token", s.account)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore(""))

	preloaded := NewMemoryStore("T1")
	got, ok := preloaded.Get()
	assert.True(t, ok)
	assert.Equal(t, "T1", got)
}
