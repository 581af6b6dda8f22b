package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	t.Setenv("HOME", "/home/test")

	c, err := build()
	require.NoError(t, err)

	assert.Equal(t, "/home/test/.didreg/data", c.Storage().Path)
	assert.Equal(t, uint32(5000), c.Storage().Lease.Min)
	assert.Equal(t, uint32(5000), c.Storage().Lease.Max)
	assert.Equal(t, "/home/test/.didreg/identity.yaml", c.Keystore().Path)
	assert.Equal(t, "127.0.0.1:8712", c.API().Listen)
	assert.Equal(t, 10*time.Second, c.API().ShutdownTimeout)
}

func TestGetConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "didreg.yaml")

	err := os.WriteFile(f, []byte(`
storage:
  path: /var/lib/didreg
  lease:
    min: 100
    max: 200
api:
  listen: ":9000"
`), 0600)
	require.NoError(t, err)

	viper.SetConfigFile(f)
	t.Cleanup(resetViper)

	c, err := GetConfig()
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/didreg", c.Storage().Path)
	assert.Equal(t, uint32(100), c.Storage().Lease.Min)
	assert.Equal(t, uint32(200), c.Storage().Lease.Max)
	assert.Equal(t, ":9000", c.API().Listen)
}

func TestInvalidLease(t *testing.T) {
	viper.Set(Cfg_storage_leaseMin, 10)
	viper.Set(Cfg_storage_leaseMax, 5)
	t.Cleanup(resetViper)

	_, err := build()
	assert.ErrorIs(t, err, ErrInvalidLease)
}

func resetViper() {
	viper.Reset()

	for _, d := range []map[string]interface{}{defaults, storageDefaults, keystoreDefaults, apiDefaults} {
		for k, v := range d {
			viper.SetDefault(k, v)
		}
	}
}
