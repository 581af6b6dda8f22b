package node

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcfw/didreg/internal/config"
	"github.com/tcfw/didreg/pkg/ledger"
	"github.com/tcfw/didreg/pkg/ledger/auth"
	"github.com/tcfw/didreg/pkg/registry"
	"github.com/tcfw/didreg/pkg/storage"
)

func testConfig(t *testing.T) *config.Config {
	t.Setenv("DIDREG_STORAGE_PATH", t.TempDir())

	cfg, err := config.GetConfig()
	require.NoError(t, err)

	return cfg
}

func TestNewNodeRequiresStorage(t *testing.T) {
	_, err := NewNode(context.Background(), testConfig(t))
	assert.Error(t, err)
}

func TestNewNode(t *testing.T) {
	ctx := context.Background()
	clock := ledger.NewManualClock(10)

	n, err := NewNode(ctx, testConfig(t),
		WithClock(clock),
		WithStorage(storage.NewMemStore(clock)),
		WithAuthenticator(auth.AllowAll{}),
	)
	require.NoError(t, err)

	ok, err := n.Registry().Register(ctx, "a", "A", "1")
	require.NoError(t, err)
	assert.True(t, ok)

	srv := httptest.NewServer(n.API().Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, n.Stop(ctx))
}

func TestWithDefaultOptions(t *testing.T) {
	ctx := context.Background()

	n, err := NewNode(ctx, testConfig(t),
		WithDefaultOptions(),
		WithAuthenticator(auth.AllowAll{}),
	)
	require.NoError(t, err)

	ok, err := n.Registry().Register(ctx, registry.Address("a"), "A", "1")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, n.Stop(ctx))
}
