package registry

import "fmt"

type keyType byte

const (
	identityKeyType keyType = iota + 1
	totalCountKeyType
)

// Key addresses a value in the registry's storage region
type Key interface {
	Bytes() []byte
	String() string

	isKey()
}

var (
	_ Key = IdentityKey{}
	_ Key = TotalCountKey{}
)

// IdentityKey locates the identity record of an address
type IdentityKey struct {
	Address Address
}

func (k IdentityKey) Bytes() []byte {
	return typedKey(identityKeyType, string(k.Address))
}

func (k IdentityKey) String() string {
	return fmt.Sprintf("Identity(%s)", k.Address)
}

func (IdentityKey) isKey() {}

// TotalCountKey locates the count of registrations ever performed
type TotalCountKey struct{}

func (TotalCountKey) Bytes() []byte {
	return typedKey(totalCountKeyType)
}

func (TotalCountKey) String() string {
	return "TOTAL_ID"
}

func (TotalCountKey) isKey() {}

func typedKey(kType keyType, parts ...string) []byte {
	n := 1
	for _, p := range parts {
		n += len(p)
	}

	k := make([]byte, 0, n)
	k = append(k, byte(kType))
	for _, p := range parts {
		k = append(k, []byte(p)...)
	}

	return k
}
