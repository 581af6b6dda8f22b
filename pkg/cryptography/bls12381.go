package cryptography

import (
	"github.com/drand/kyber"
	bls "github.com/drand/kyber-bls12381"
	sig "github.com/drand/kyber/sign/bls"
	"github.com/drand/kyber/util/random"
	"github.com/pkg/errors"
)

var (
	_ PrivateKey = (*Bls12381PrivateKey)(nil)

	pairing = bls.NewBLS12381Suite()
)

func NewBls12381PrivateKey() *Bls12381PrivateKey {
	return &Bls12381PrivateKey{
		pairing.G1().Scalar().Pick(random.New()),
	}
}

func ParseBls12381PrivateKey(raw []byte) (*Bls12381PrivateKey, error) {
	sk := pairing.G1().Scalar()
	if err := sk.UnmarshalBinary(raw); err != nil {
		return nil, errors.Wrap(ErrInvalidPrivateKey, err.Error())
	}

	return &Bls12381PrivateKey{sk}, nil
}

type Bls12381PrivateKey struct {
	sk kyber.Scalar
}

func (b *Bls12381PrivateKey) Type() KeyType {
	return KeyTypeBls12381
}

func (b *Bls12381PrivateKey) Sign(msg []byte) ([]byte, error) {
	scheme := sig.NewSchemeOnG2(pairing)
	return scheme.Sign(b.sk, msg)
}

func (b *Bls12381PrivateKey) Public() kyber.Point {
	return pairing.G2().Point().Mul(b.sk, nil)
}

func (b *Bls12381PrivateKey) PublicBytes() ([]byte, error) {
	return b.Public().MarshalBinary()
}

func (b *Bls12381PrivateKey) Bytes() ([]byte, error) {
	return b.sk.MarshalBinary()
}

func ValidateBls12381(pub []byte, signature []byte, msg []byte) (bool, error) {
	pk := pairing.G2().Point()
	if err := pk.UnmarshalBinary(pub); err != nil {
		return false, errors.Wrap(ErrInvalidPublicKey, err.Error())
	}

	scheme := sig.NewSchemeOnG2(pairing)
	if err := scheme.Verify(pk, msg, signature); err != nil {
		return false, nil
	}

	return true, nil
}
