package registry

import (
	"github.com/sirupsen/logrus"
)

const (
	// DefaultLeaseMin and DefaultLeaseMax are the lease renewal parameters
	// applied after each successful mutation
	DefaultLeaseMin uint32 = 5000
	DefaultLeaseMax uint32 = 5000
)

type Option func(*Registry) error

func WithLogger(l *logrus.Logger) Option {
	return func(r *Registry) error {
		r.logger = logrus.NewEntry(l)
		return nil
	}
}

func WithRecorder(rec Recorder) Option {
	return func(r *Registry) error {
		r.recorder = rec
		return nil
	}
}

func WithLease(min, max uint32) Option {
	return func(r *Registry) error {
		r.leaseMin = min
		r.leaseMax = max
		return nil
	}
}
