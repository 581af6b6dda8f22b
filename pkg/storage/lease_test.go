package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeaseRenew(t *testing.T) {
	tests := []struct {
		name   string
		lease  Lease
		now    uint64
		min    uint32
		max    uint32
		expect uint64
	}{
		{"fresh", Lease{}, 100, 5000, 5000, 5100},
		{"above threshold", Lease{LiveUntil: 6000}, 100, 5000, 5000, 6000},
		{"below threshold", Lease{LiveUntil: 1000}, 100, 5000, 5000, 5100},
		{"expired", Lease{LiveUntil: 50}, 100, 10, 20, 120},
		{"max below min", Lease{LiveUntil: 150}, 100, 100, 60, 160},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			l := test.lease.Renew(test.now, test.min, test.max)
			assert.Equal(t, test.expect, l.LiveUntil)
		})
	}
}

func TestLeaseExpired(t *testing.T) {
	l := Lease{LiveUntil: 100}

	assert.False(t, l.Expired(99))
	assert.Equal(t, uint64(1), l.TTL(99))
	assert.True(t, l.Expired(100))
	assert.True(t, Lease{}.Expired(0))
}

func TestLeaseCodec(t *testing.T) {
	l := Lease{LiveUntil: 12345}

	b, err := l.Marshal()
	if err != nil {
		t.Fatal(err)
	}

	l2, err := UnmarshalLease(b)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, l, l2)
}
