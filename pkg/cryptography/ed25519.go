package cryptography

import (
	"crypto/ed25519"
	"crypto/rand"

	"github.com/pkg/errors"
)

var (
	_ PrivateKey = (*Ed25519PrivateKey)(nil)
)

type Ed25519PrivateKey struct {
	sk ed25519.PrivateKey
}

func NewEd25519PrivateKey() (*Ed25519PrivateKey, error) {
	_, sk, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, errors.Wrap(err, "generating ed25519 key")
	}

	return &Ed25519PrivateKey{sk}, nil
}

func ParseEd25519PrivateKey(raw []byte) (*Ed25519PrivateKey, error) {
	if len(raw) != ed25519.PrivateKeySize {
		return nil, ErrInvalidPrivateKey
	}

	return &Ed25519PrivateKey{ed25519.PrivateKey(raw)}, nil
}

func (e *Ed25519PrivateKey) Type() KeyType {
	return KeyTypeEd25519
}

func (e *Ed25519PrivateKey) Sign(msg []byte) ([]byte, error) {
	return ed25519.Sign(e.sk, msg), nil
}

func (e *Ed25519PrivateKey) PublicBytes() ([]byte, error) {
	return []byte(e.sk.Public().(ed25519.PublicKey)), nil
}

func (e *Ed25519PrivateKey) Bytes() ([]byte, error) {
	return []byte(e.sk), nil
}

func ValidateEd25519(pub []byte, sig []byte, msg []byte) (bool, error) {
	if len(pub) != ed25519.PublicKeySize {
		return false, ErrInvalidPublicKey
	}

	return ed25519.Verify(ed25519.PublicKey(pub), msg, sig), nil
}
