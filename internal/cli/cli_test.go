package cli

import (
	"bytes"
	"io"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcfw/didreg/internal/api"
	"github.com/tcfw/didreg/pkg/ledger"
	"github.com/tcfw/didreg/pkg/ledger/auth"
	"github.com/tcfw/didreg/pkg/registry"
	"github.com/tcfw/didreg/pkg/storage"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	regOnce.Do(regCommands)

	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()

	return strings.TrimSpace(buf.String()), err
}

func newDaemon(t *testing.T) string {
	clock := ledger.NewManualClock(100)
	store := storage.NewMemStore(clock)

	reg, err := registry.New(store, auth.NewSignatureAuthenticator(), clock)
	require.NoError(t, err)

	h, err := ledger.NewHost(reg)
	require.NoError(t, err)

	a, err := api.NewAPI(h, store, nil)
	require.NoError(t, err)

	srv := httptest.NewServer(a.Handler())
	t.Cleanup(srv.Close)

	return srv.URL
}

func TestRegisterFlow(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	endpoint := newDaemon(t)
	ks := filepath.Join(t.TempDir(), "identity.yaml")
	global := []string{"--keystore", ks, "--endpoint", endpoint}

	addr, err := run(t, append([]string{"keys", "gen"}, global...)...)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(addr, "ed25519:"))

	verifier, err := run(t, append([]string{"keys", "gen", "-t", "secp256k1"}, global...)...)
	require.NoError(t, err)

	out, err := run(t, append([]string{"keys", "list"}, global...)...)
	require.NoError(t, err)
	assert.Contains(t, out, addr+" (default)")
	assert.Contains(t, out, verifier)

	out, err = run(t, append([]string{"register", "--name", "John Doe", "--id", "ID123456"}, global...)...)
	require.NoError(t, err)
	assert.Contains(t, out, `"ok": true`)

	_, err = run(t, append([]string{"register", "--name", "John Doe", "--id", "ID123456"}, global...)...)
	assert.ErrorIs(t, err, registry.ErrAlreadyRegistered)

	out, err = run(t, append([]string{"verify", addr, "--from", verifier}, global...)...)
	require.NoError(t, err)
	assert.Contains(t, out, `"ok": true`)

	out, err = run(t, append([]string{"view", addr}, global...)...)
	require.NoError(t, err)
	assert.Contains(t, out, `"fullName": "John Doe"`)
	assert.Contains(t, out, `"isVerified": true`)

	out, err = run(t, append([]string{"count"}, global...)...)
	require.NoError(t, err)
	assert.Equal(t, "1", out)

	out, err = run(t, append([]string{"lease"}, global...)...)
	require.NoError(t, err)
	assert.Contains(t, out, `"liveUntil": 5100`)
}
