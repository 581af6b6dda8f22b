package storage

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

type fixedClock uint64

func (c fixedClock) Now() uint64 { return uint64(c) }

func TestMemStore(t *testing.T) {
	m := NewMemStore(fixedClock(10))
	ctx := context.Background()

	err := m.Update(ctx, func(txn Txn) error {
		return txn.Set([]byte("a"), []byte("1"))
	})
	if err != nil {
		t.Fatal(err)
	}

	var got []byte
	err = m.View(ctx, func(txn Txn) error {
		var err error
		got, err = txn.Get([]byte("a"))
		return err
	})
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, []byte("1"), got)
}

func TestMemStoreNotFound(t *testing.T) {
	m := NewMemStore(fixedClock(10))

	err := m.View(context.Background(), func(txn Txn) error {
		_, err := txn.Get([]byte("missing"))
		return err
	})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemStoreAbortDiscardsWrites(t *testing.T) {
	m := NewMemStore(fixedClock(10))
	ctx := context.Background()
	abort := errors.New("abort")

	err := m.Update(ctx, func(txn Txn) error {
		if err := txn.Set([]byte("a"), []byte("1")); err != nil {
			return err
		}
		if err := txn.RenewLease(100, 100); err != nil {
			return err
		}
		return abort
	})
	assert.ErrorIs(t, err, abort)
	assert.Equal(t, 0, m.Len())

	l, err := m.Lease(ctx)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, Lease{}, l)
}

func TestMemStoreReadYourWrites(t *testing.T) {
	m := NewMemStore(fixedClock(10))

	err := m.Update(context.Background(), func(txn Txn) error {
		if err := txn.Set([]byte("a"), []byte("1")); err != nil {
			return err
		}

		v, err := txn.Get([]byte("a"))
		if err != nil {
			return err
		}

		assert.Equal(t, []byte("1"), v)
		return nil
	})

	assert.NoError(t, err)
}

func TestMemStoreViewIsReadOnly(t *testing.T) {
	m := NewMemStore(fixedClock(10))

	err := m.View(context.Background(), func(txn Txn) error {
		return txn.Set([]byte("a"), []byte("1"))
	})
	assert.ErrorIs(t, err, ErrReadOnly)

	err = m.View(context.Background(), func(txn Txn) error {
		return txn.RenewLease(1, 1)
	})
	assert.ErrorIs(t, err, ErrReadOnly)
}

func TestMemStoreReservedKey(t *testing.T) {
	m := NewMemStore(fixedClock(10))

	err := m.Update(context.Background(), func(txn Txn) error {
		return txn.Set(LeaseKey, []byte{})
	})

	assert.ErrorIs(t, err, ErrReservedKey)
}

func TestMemStoreLeaseRenewal(t *testing.T) {
	m := NewMemStore(fixedClock(10))
	ctx := context.Background()

	err := m.Update(ctx, func(txn Txn) error {
		return txn.RenewLease(5000, 5000)
	})
	if err != nil {
		t.Fatal(err)
	}

	l, _ := m.Lease(ctx)
	assert.Equal(t, uint64(5010), l.LiveUntil)
}

func TestMemStoreClosed(t *testing.T) {
	m := NewMemStore(fixedClock(10))
	if err := m.Close(); err != nil {
		t.Fatal(err)
	}

	err := m.Update(context.Background(), func(Txn) error { return nil })
	assert.ErrorIs(t, err, ErrClosed)
}
