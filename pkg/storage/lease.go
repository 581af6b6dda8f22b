package storage

import (
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
)

type Lease struct {
	LiveUntil uint64 `msgpack:"u" json:"liveUntil"`
}

// TTL is the number of seconds remaining on the lease at now
func (l Lease) TTL(now uint64) uint64 {
	if now >= l.LiveUntil {
		return 0
	}

	return l.LiveUntil - now
}

// Expired reports if the host may evict the region at now
func (l Lease) Expired(now uint64) bool {
	return l.TTL(now) == 0
}

// Renew returns the lease after applying a renewal of (minTTL, maxTTL) at now
func (l Lease) Renew(now uint64, minTTL, maxTTL uint32) Lease {
	if l.TTL(now) >= uint64(minTTL) {
		return l
	}

	return Lease{LiveUntil: now + uint64(maxTTL)}
}

func (l Lease) Marshal() ([]byte, error) {
	b, err := msgpack.Marshal(&l)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling lease")
	}

	return b, nil
}

func UnmarshalLease(b []byte) (Lease, error) {
	l := Lease{}
	if err := msgpack.Unmarshal(b, &l); err != nil {
		return Lease{}, errors.Wrap(err, "unmarshaling lease")
	}

	return l, nil
}
