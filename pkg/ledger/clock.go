package ledger

import (
	"sync"
	"time"
)

type Clock interface {
	Now() uint64
}

var (
	_ Clock = SystemClock{}
	_ Clock = (*MonotonicClock)(nil)
	_ Clock = (*ManualClock)(nil)
)

// SystemClock reports wall time in unix seconds
type SystemClock struct{}

func (SystemClock) Now() uint64 {
	return uint64(time.Now().Unix())
}

// MonotonicClock never reports a time earlier than one it has already
// reported, even if the underlying source steps backwards
type MonotonicClock struct {
	src Clock

	mu   sync.Mutex
	last uint64
}

func NewMonotonicClock(src Clock) *MonotonicClock {
	return &MonotonicClock{src: src}
}

func (c *MonotonicClock) Now() uint64 {
	n := c.src.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if n < c.last {
		return c.last
	}

	c.last = n
	return n
}

type ManualClock struct {
	mu  sync.Mutex
	now uint64
}

func NewManualClock(start uint64) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *ManualClock) Set(n uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = n
}

func (c *ManualClock) Advance(d uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now += d
}
