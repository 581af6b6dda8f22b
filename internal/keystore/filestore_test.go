package keystore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcfw/didreg/pkg/cryptography"
)

func TestNewFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys", "identity.yaml")

	f, err := NewFileStore(path)
	require.NoError(t, err)
	assert.Empty(t, f.List())

	var addrs []string
	for _, kt := range []cryptography.KeyType{
		cryptography.KeyTypeEd25519,
		cryptography.KeyTypeSecp256k1,
		cryptography.KeyTypeBls12381,
	} {
		k, err := cryptography.GenerateKey(kt)
		require.NoError(t, err)

		addr, err := f.Add(k)
		require.NoError(t, err)
		addrs = append(addrs, addr)
	}

	reopened, err := NewFileStore(path)
	require.NoError(t, err)
	assert.Len(t, reopened.List(), 3)

	for _, a := range addrs {
		k, err := reopened.Find(a)
		require.NoError(t, err)

		got, err := cryptography.AddressOf(k)
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}

	_, def, err := reopened.Default("")
	require.NoError(t, err)
	assert.Equal(t, addrs[0], def)
}

func TestFileStoreSetDefault(t *testing.T) {
	f, err := NewFileStore(filepath.Join(t.TempDir(), "identity.yaml"))
	require.NoError(t, err)

	_, _, err = f.Default("")
	assert.ErrorIs(t, err, ErrNoDefault)

	k1, _ := cryptography.NewEd25519PrivateKey()
	k2, _ := cryptography.NewEd25519PrivateKey()

	_, err = f.Add(k1)
	require.NoError(t, err)
	a2, err := f.Add(k2)
	require.NoError(t, err)

	require.NoError(t, f.SetDefault(a2))

	_, def, err := f.Default("")
	require.NoError(t, err)
	assert.Equal(t, a2, def)

	assert.ErrorIs(t, f.SetDefault("ed25519:unknown"), ErrNotFound)
}

func TestFileStoreAddIdempotent(t *testing.T) {
	f, err := NewFileStore(filepath.Join(t.TempDir(), "identity.yaml"))
	require.NoError(t, err)

	k, _ := cryptography.NewEd25519PrivateKey()

	a1, err := f.Add(k)
	require.NoError(t, err)
	a2, err := f.Add(k)
	require.NoError(t, err)

	assert.Equal(t, a1, a2)
	assert.Len(t, f.ids.Keys, 1)
}
