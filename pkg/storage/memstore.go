package storage

import (
	"context"
	"sync"
)

var (
	_ Store = (*MemStore)(nil)
	_ Txn   = (*memTxn)(nil)
)

type MemStore struct {
	mu sync.RWMutex

	objects map[string][]byte
	lease   Lease
	clock   Clock

	closed bool
}

func NewMemStore(clock Clock) *MemStore {
	return &MemStore{
		objects: make(map[string][]byte),
		clock:   clock,
	}
}

func (m *MemStore) Update(_ context.Context, fn func(Txn) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	t := &memTxn{
		m:      m,
		writes: make(map[string][]byte),
		lease:  m.lease,
	}

	if err := fn(t); err != nil {
		return err
	}

	for k, v := range t.writes {
		m.objects[k] = v
	}
	m.lease = t.lease

	return nil
}

func (m *MemStore) View(_ context.Context, fn func(Txn) error) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return ErrClosed
	}

	return fn(&memTxn{m: m, readOnly: true, lease: m.lease})
}

func (m *MemStore) Lease(_ context.Context) (Lease, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.lease, nil
}

func (m *MemStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.objects)
}

func (m *MemStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	return nil
}

type memTxn struct {
	m        *MemStore
	readOnly bool

	writes map[string][]byte
	lease  Lease
}

func (t *memTxn) Get(key []byte) ([]byte, error) {
	if v, ok := t.writes[string(key)]; ok {
		return copyBytes(v), nil
	}

	v, ok := t.m.objects[string(key)]
	if !ok {
		return nil, ErrNotFound
	}

	return copyBytes(v), nil
}

func (t *memTxn) Set(key, value []byte) error {
	if t.readOnly {
		return ErrReadOnly
	}
	if IsReservedKey(key) {
		return ErrReservedKey
	}

	t.writes[string(key)] = copyBytes(value)
	return nil
}

func (t *memTxn) RenewLease(minTTL, maxTTL uint32) error {
	if t.readOnly {
		return ErrReadOnly
	}

	t.lease = t.lease.Renew(t.m.clock.Now(), minTTL, maxTTL)
	return nil
}

func copyBytes(b []byte) []byte {
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
