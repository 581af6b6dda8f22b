package storage

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/cockroachdb/pebble"
	"github.com/pkg/errors"
)

const (
	filterCapacity = 1 << 20
	falsePositive  = 0.01
)

// keyFilter answers definite misses without touching pebble. Keys are
// added before they are written so a failed commit only costs a false
// positive.
type keyFilter struct {
	mu sync.RWMutex
	b  *bloom.BloomFilter
}

func newKeyFilter() *keyFilter {
	return &keyFilter{b: bloom.NewWithEstimates(filterCapacity, falsePositive)}
}

func (f *keyFilter) Add(key []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.b.Add(key)
}

func (f *keyFilter) MayContain(key []byte) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.b.Test(key)
}

func (f *keyFilter) load(db *pebble.DB) error {
	iter := db.NewIter(nil)

	f.mu.Lock()
	for iter.First(); iter.Valid(); iter.Next() {
		f.b.Add(iter.Key())
	}
	f.mu.Unlock()

	if err := iter.Close(); err != nil {
		return errors.Wrap(err, "loading key filter")
	}

	return nil
}
