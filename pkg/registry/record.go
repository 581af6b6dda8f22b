package registry

import (
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
)

// NotFoundMarker fills the text claims of the record View returns for an
// address with no registration
const NotFoundMarker = "Not_Found"

// Address identifies a ledger principal
type Address string

func (a Address) String() string {
	return string(a)
}

type IdentityRecord struct {
	Owner        Address `msgpack:"o" json:"owner"`
	FullName     string  `msgpack:"n" json:"fullName"`
	IDNumber     string  `msgpack:"i" json:"idNumber"`
	IsVerified   bool    `msgpack:"v" json:"isVerified"`
	RegisteredAt uint64  `msgpack:"r" json:"registeredAt"`
	VerifiedAt   uint64  `msgpack:"t" json:"verifiedAt"`
}

func (r *IdentityRecord) Marshal() ([]byte, error) {
	b, err := msgpack.Marshal(r)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling identity record")
	}

	return b, nil
}

func (r *IdentityRecord) Unmarshal(b []byte) error {
	if err := msgpack.Unmarshal(b, r); err != nil {
		return errors.Wrap(err, "unmarshaling identity record")
	}

	return nil
}

func notFoundRecord(a Address) IdentityRecord {
	return IdentityRecord{
		Owner:    a,
		FullName: NotFoundMarker,
		IDNumber: NotFoundMarker,
	}
}

// IsNotFound reports if r is the placeholder View returns for an
// unregistered address
func IsNotFound(r IdentityRecord) bool {
	return r.FullName == NotFoundMarker &&
		r.IDNumber == NotFoundMarker &&
		!r.IsVerified &&
		r.RegisteredAt == 0 &&
		r.VerifiedAt == 0
}
