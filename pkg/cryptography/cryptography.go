package cryptography

import (
	"github.com/pkg/errors"
	"golang.org/x/crypto/sha3"
)

type KeyType string

const (
	KeyTypeEd25519   KeyType = "ed25519"
	KeyTypeSecp256k1 KeyType = "secp256k1"
	KeyTypeBls12381  KeyType = "bls12381"
)

var (
	ErrInvalidPublicKey         = errors.New("invalid public key")
	ErrInvalidPrivateKey        = errors.New("invalid private key")
	ErrUnsupportedPublicKeyType = errors.New("unsupported public key type")
)

// PrivateKey is a signing identity able to produce authorization proofs
type PrivateKey interface {
	Type() KeyType
	Sign(msg []byte) ([]byte, error)
	PublicBytes() ([]byte, error)
	Bytes() ([]byte, error)
}

type SignatureValidator func(pub []byte, sig []byte, msg []byte) (bool, error)

var (
	validators = map[KeyType]SignatureValidator{
		KeyTypeEd25519:   ValidateEd25519,
		KeyTypeSecp256k1: ValidateEcdsaSecp256k1,
		KeyTypeBls12381:  ValidateBls12381,
	}
)

// Validate checks sig was produced over msg by the private half of pub
func Validate(t KeyType, pub []byte, sig []byte, msg []byte) (bool, error) {
	validator, ok := validators[t]
	if !ok {
		return false, errors.Wrapf(ErrUnsupportedPublicKeyType, "%s", t)
	}

	return validator(pub, sig, msg)
}

func GenerateKey(t KeyType) (PrivateKey, error) {
	switch t {
	case KeyTypeEd25519:
		return NewEd25519PrivateKey()
	case KeyTypeSecp256k1:
		return NewEcdsaSecp256k1PrivateKey()
	case KeyTypeBls12381:
		return NewBls12381PrivateKey(), nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedPublicKeyType, "%s", t)
	}
}

func ParsePrivateKey(t KeyType, raw []byte) (PrivateKey, error) {
	switch t {
	case KeyTypeEd25519:
		return ParseEd25519PrivateKey(raw)
	case KeyTypeSecp256k1:
		return ParseEcdsaSecp256k1PrivateKey(raw)
	case KeyTypeBls12381:
		return ParseBls12381PrivateKey(raw)
	default:
		return nil, errors.Wrapf(ErrUnsupportedPublicKeyType, "%s", t)
	}
}

func digest(msg []byte) []byte {
	h := sha3.Sum256(msg)
	return h[:]
}
