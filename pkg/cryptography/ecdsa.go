package cryptography

import (
	"crypto/ecdsa"

	ethCrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

var (
	_ PrivateKey = (*Secp256k1PrivateKey)(nil)
)

type Secp256k1PrivateKey struct {
	*ecdsa.PrivateKey
}

func NewEcdsaSecp256k1PrivateKey() (*Secp256k1PrivateKey, error) {
	pk, err := ethCrypto.GenerateKey()
	if err != nil {
		return nil, errors.Wrap(err, "generating ecdsa key")
	}

	return &Secp256k1PrivateKey{pk}, nil
}

func ParseEcdsaSecp256k1PrivateKey(raw []byte) (*Secp256k1PrivateKey, error) {
	pk, err := ethCrypto.ToECDSA(raw)
	if err != nil {
		return nil, errors.Wrap(err, "unmarshalling ecdsa key")
	}

	return &Secp256k1PrivateKey{pk}, nil
}

func (p *Secp256k1PrivateKey) Type() KeyType {
	return KeyTypeSecp256k1
}

func (p *Secp256k1PrivateKey) Bytes() ([]byte, error) {
	return ethCrypto.FromECDSA(p.PrivateKey), nil
}

func (p *Secp256k1PrivateKey) PublicBytes() ([]byte, error) {
	return ethCrypto.FromECDSAPub(&p.PublicKey), nil
}

// Sign produces a 65 byte [R || S || V] signature over the sha3 digest of msg
func (p *Secp256k1PrivateKey) Sign(msg []byte) ([]byte, error) {
	return ethCrypto.Sign(digest(msg), p.PrivateKey)
}

func ValidateEcdsaSecp256k1(pub []byte, sig []byte, msg []byte) (bool, error) {
	if _, err := ethCrypto.UnmarshalPubkey(pub); err != nil {
		return false, errors.Wrap(ErrInvalidPublicKey, err.Error())
	}

	//drop recovery id
	if len(sig) == 65 {
		sig = sig[:64]
	}
	if len(sig) != 64 {
		return false, nil
	}

	return ethCrypto.VerifySignature(pub, digest(msg), sig), nil
}
