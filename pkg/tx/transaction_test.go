package tx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcfw/didreg/pkg/cryptography"
)

func TestMarshal(t *testing.T) {
	tx := New(OpRegister, Args{
		Caller:   "ed25519:abc",
		FullName: "John Doe",
		IDNumber: "ID123456",
	})

	b, err := tx.Marshal()
	if err != nil {
		t.Fatal(err)
	}

	txRB := &Tx{}

	if err := txRB.Unmarshal(b); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, tx, txRB)
}

func TestValidate(t *testing.T) {
	tests := map[string]struct {
		tx     *Tx
		expect error
	}{
		"register":         {New(OpRegister, Args{Caller: "a"}), nil},
		"register no args": {New(OpRegister, Args{}), ErrMissingArg},
		"verify":           {New(OpVerify, Args{Caller: "a", Target: "b"}), nil},
		"verify no target": {New(OpVerify, Args{Caller: "a"}), ErrMissingArg},
		"view":             {New(OpView, Args{Target: "b"}), nil},
		"view no target":   {New(OpView, Args{}), ErrMissingArg},
		"count":            {New(OpCount, Args{}), nil},
		"unknown":          {New(Op("delete"), Args{}), ErrUnknownOp},
		"version":          {&Tx{Version: 9, Op: OpCount}, ErrUnknownVersion},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			err := test.tx.Validate()
			if test.expect == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, test.expect)
			}
		})
	}
}

func TestSigningBytesExcludeProofs(t *testing.T) {
	tx := New(OpCount, Args{})

	before, err := tx.SigningBytes()
	require.NoError(t, err)

	k, err := cryptography.NewEd25519PrivateKey()
	require.NoError(t, err)
	require.NoError(t, tx.Sign(k))

	after, err := tx.SigningBytes()
	require.NoError(t, err)

	assert.Equal(t, before, after)
	assert.Len(t, tx.Auth, 1)
}

func TestSignAndVerifyProof(t *testing.T) {
	for _, kt := range []cryptography.KeyType{
		cryptography.KeyTypeEd25519,
		cryptography.KeyTypeSecp256k1,
		cryptography.KeyTypeBls12381,
	} {
		t.Run(string(kt), func(t *testing.T) {
			k, err := cryptography.GenerateKey(kt)
			require.NoError(t, err)

			addr, err := cryptography.AddressOf(k)
			require.NoError(t, err)

			tx := New(OpRegister, Args{Caller: addr, FullName: "John Doe"})
			require.NoError(t, tx.Sign(k))

			p, ok := tx.FindProof(addr)
			require.True(t, ok)

			msg, err := tx.SigningBytes()
			require.NoError(t, err)
			assert.NoError(t, p.Verify(msg))

			tx.Args.FullName = "Jane Doe"
			tampered, err := tx.SigningBytes()
			require.NoError(t, err)
			assert.Error(t, p.Verify(tampered))
		})
	}
}

func TestProofAddressMismatch(t *testing.T) {
	k, err := cryptography.NewEd25519PrivateKey()
	require.NoError(t, err)

	tx := New(OpCount, Args{})
	require.NoError(t, tx.Sign(k))

	msg, _ := tx.SigningBytes()
	p := tx.Auth[0]
	p.Address = "ed25519:someoneelse"

	assert.ErrorIs(t, p.Verify(msg), ErrProofMismatched)
}

func TestID(t *testing.T) {
	a := New(OpCount, Args{})
	b := New(OpCount, Args{})

	aid, err := a.ID()
	require.NoError(t, err)
	bid, err := b.ID()
	require.NoError(t, err)

	assert.NotEqual(t, aid, bid)
}

func TestContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	tx := New(OpCount, Args{})
	got, ok := FromContext(WithTx(context.Background(), tx))
	assert.True(t, ok)
	assert.Same(t, tx, got)
}
