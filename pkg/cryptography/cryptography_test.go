package cryptography

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allKeyTypes = []KeyType{KeyTypeEd25519, KeyTypeSecp256k1, KeyTypeBls12381}

func TestSignAndValidate(t *testing.T) {
	for _, kt := range allKeyTypes {
		t.Run(string(kt), func(t *testing.T) {
			sk, err := GenerateKey(kt)
			require.NoError(t, err)
			assert.Equal(t, kt, sk.Type())

			pub, err := sk.PublicBytes()
			require.NoError(t, err)

			msg := []byte("register:John Doe")
			sig, err := sk.Sign(msg)
			require.NoError(t, err)

			ok, err := Validate(kt, pub, sig, msg)
			require.NoError(t, err)
			assert.True(t, ok)

			ok, err = Validate(kt, pub, sig, []byte("register:Jane Doe"))
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestParsePrivateKeyRoundTrip(t *testing.T) {
	for _, kt := range allKeyTypes {
		t.Run(string(kt), func(t *testing.T) {
			sk, err := GenerateKey(kt)
			require.NoError(t, err)

			raw, err := sk.Bytes()
			require.NoError(t, err)

			parsed, err := ParsePrivateKey(kt, raw)
			require.NoError(t, err)

			a1, err := AddressOf(sk)
			require.NoError(t, err)
			a2, err := AddressOf(parsed)
			require.NoError(t, err)

			assert.Equal(t, a1, a2)
		})
	}
}

func TestValidateUnknownType(t *testing.T) {
	_, err := Validate(KeyType("rsa"), nil, nil, nil)
	assert.ErrorIs(t, err, ErrUnsupportedPublicKeyType)

	_, err = GenerateKey(KeyType("rsa"))
	assert.ErrorIs(t, err, ErrUnsupportedPublicKeyType)
}

func TestValidateEd25519BadKey(t *testing.T) {
	_, err := ValidateEd25519([]byte{1, 2, 3}, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidPublicKey)
}

func TestMultibaseRoundTrip(t *testing.T) {
	raw := []byte{1, 2, 3, 4, 5}

	mb, err := EncodeMultibase(raw)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, byte('z'), mb[0])

	d, err := DecodeMultibase(mb)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, raw, d)
}
