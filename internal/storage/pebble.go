package storage

import (
	"context"
	"io"
	"sync"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/pkg/errors"

	"github.com/tcfw/didreg/internal/utils/logging"
	"github.com/tcfw/didreg/pkg/storage"
)

var (
	_ storage.Store = (*PebbleStore)(nil)
	_ storage.Txn   = (*pebbleTxn)(nil)
)

const (
	cacheSize = 1 << 20 * 100
)

type PebbleOption func(*pebble.Options)

// WithInMemory keeps all data in memory, for tests
func WithInMemory() PebbleOption {
	return func(o *pebble.Options) {
		o.FS = vfs.NewMem()
	}
}

// PebbleStore persists the registry region in a pebble database. Each Update
// is staged in an indexed batch and committed synchronously.
type PebbleStore struct {
	db     *pebble.DB
	clock  storage.Clock
	filter *keyFilter

	// serialises read-modify-write transactions
	mu sync.Mutex
}

func NewPebbleStore(repo string, clock storage.Clock, opts ...PebbleOption) (*PebbleStore, error) {
	c := pebble.NewCache(cacheSize)
	defer c.Unref()

	o := &pebble.Options{Cache: c}
	for _, opt := range opts {
		opt(o)
	}

	db, err := pebble.Open(repo, o)
	if err != nil {
		return nil, errors.Wrap(err, "opening pebble store")
	}

	f := newKeyFilter()
	if err := f.load(db); err != nil {
		db.Close()
		return nil, err
	}

	return &PebbleStore{db: db, clock: clock, filter: f}, nil
}

func (s *PebbleStore) Update(ctx context.Context, fn func(storage.Txn) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	batch := s.db.NewIndexedBatch()
	defer batch.Close()

	t := &pebbleTxn{r: batch, batch: batch, clock: s.clock, filter: s.filter}

	if err := fn(t); err != nil {
		return err
	}

	if batch.Empty() {
		return nil
	}

	if err := batch.Commit(pebble.Sync); err != nil {
		return errors.Wrap(err, "committing batch")
	}

	return nil
}

func (s *PebbleStore) View(ctx context.Context, fn func(storage.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	snap := s.db.NewSnapshot()
	defer snap.Close()

	return fn(&pebbleTxn{r: snap, clock: s.clock, filter: s.filter})
}

func (s *PebbleStore) Lease(ctx context.Context) (storage.Lease, error) {
	return readLease(s.db)
}

func (s *PebbleStore) Close() error {
	logging.Entry().Debug("closing pebble store")
	return s.db.Close()
}

type reader interface {
	Get(key []byte) ([]byte, io.Closer, error)
}

type pebbleTxn struct {
	r      reader
	batch  *pebble.Batch
	clock  storage.Clock
	filter *keyFilter
}

func (t *pebbleTxn) Get(key []byte) ([]byte, error) {
	if !t.filter.MayContain(key) {
		return nil, storage.ErrNotFound
	}

	return get(t.r, key)
}

func (t *pebbleTxn) Set(key, value []byte) error {
	if t.batch == nil {
		return storage.ErrReadOnly
	}
	if storage.IsReservedKey(key) {
		return storage.ErrReservedKey
	}

	t.filter.Add(key)

	return t.batch.Set(key, value, nil)
}

func (t *pebbleTxn) RenewLease(minTTL, maxTTL uint32) error {
	if t.batch == nil {
		return storage.ErrReadOnly
	}

	l, err := readLease(t.r)
	if err != nil {
		return err
	}

	renewed := l.Renew(t.clock.Now(), minTTL, maxTTL)
	if renewed == l {
		return nil
	}

	b, err := renewed.Marshal()
	if err != nil {
		return err
	}

	if err := t.batch.Set(storage.LeaseKey, b, nil); err != nil {
		return errors.Wrap(err, "storing lease")
	}

	return nil
}

func get(r reader, key []byte) ([]byte, error) {
	v, done, err := r.Get(key)
	if err != nil {
		if err == pebble.ErrNotFound {
			return nil, storage.ErrNotFound
		}
		return nil, errors.Wrap(err, "reading key")
	}
	defer done.Close()

	//value is only valid until closed
	out := make([]byte, len(v))
	copy(out, v)

	return out, nil
}

func readLease(r reader) (storage.Lease, error) {
	b, err := get(r, storage.LeaseKey)
	if errors.Is(err, storage.ErrNotFound) {
		return storage.Lease{}, nil
	} else if err != nil {
		return storage.Lease{}, errors.Wrap(err, "reading lease")
	}

	return storage.UnmarshalLease(b)
}
