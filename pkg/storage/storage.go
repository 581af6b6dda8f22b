package storage

import (
	"context"
)

// Store is a durable key-value region whose writes are applied atomically
// per Update. Keys are opaque to the store except for the reserved lease key.
type Store interface {
	// Update runs fn within a read-write transaction. All writes staged by fn,
	// including lease renewals, are committed together when fn returns nil
	// and discarded otherwise.
	Update(context.Context, func(Txn) error) error

	// View runs fn within a read-only transaction.
	View(context.Context, func(Txn) error) error

	// Lease returns the current persistence lease of the region
	Lease(context.Context) (Lease, error)

	Close() error
}

type Txn interface {
	Get(key []byte) ([]byte, error)
	Set(key, value []byte) error

	// RenewLease extends the region lease to now+maxTTL when fewer than
	// minTTL seconds remain
	RenewLease(minTTL, maxTTL uint32) error
}

type Clock interface {
	Now() uint64
}

// LeaseKey is reserved by the store to hold the region lease
var LeaseKey = []byte{0xff, 'l', 'e', 'a', 's', 'e'}

func IsReservedKey(k []byte) bool {
	return len(k) > 0 && k[0] == LeaseKey[0]
}
