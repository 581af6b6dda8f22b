package cryptography

import (
	"strings"

	"github.com/multiformats/go-multihash"
	"github.com/pkg/errors"
)

const (
	addressSep = ":"
)

var (
	ErrInvalidAddress = errors.New("invalid address")
)

// Address derives the ledger address controlled by the given public key.
// Addresses take the form <key type>:<base58 sha3-384 multihash of key>
func Address(t KeyType, pub []byte) (string, error) {
	if _, ok := validators[t]; !ok {
		return "", errors.Wrapf(ErrUnsupportedPublicKeyType, "%s", t)
	}

	mh, err := multihash.Sum(pub, multihash.SHA3_384, multihash.DefaultLengths[multihash.SHA3_384])
	if err != nil {
		return "", errors.Wrap(err, "hashing public key")
	}

	return string(t) + addressSep + mh.B58String(), nil
}

func AddressOf(k PrivateKey) (string, error) {
	pub, err := k.PublicBytes()
	if err != nil {
		return "", errors.Wrap(err, "getting public key")
	}

	return Address(k.Type(), pub)
}

// ParseAddress splits an address into its key type and multihash
func ParseAddress(addr string) (KeyType, multihash.Multihash, error) {
	parts := strings.SplitN(addr, addressSep, 2)
	if len(parts) != 2 {
		return "", nil, ErrInvalidAddress
	}

	t := KeyType(parts[0])
	if _, ok := validators[t]; !ok {
		return "", nil, errors.Wrapf(ErrUnsupportedPublicKeyType, "%s", t)
	}

	mh, err := multihash.FromB58String(parts[1])
	if err != nil {
		return "", nil, errors.Wrap(ErrInvalidAddress, err.Error())
	}

	return t, mh, nil
}
