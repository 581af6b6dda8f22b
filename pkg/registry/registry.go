//go:generate go run github.com/vektra/mockery/v2 --name Authenticator
//go:generate go run github.com/vektra/mockery/v2 --name Clock

package registry

import (
	"context"
	"encoding/binary"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/tcfw/didreg/internal/utils/logging"
	"github.com/tcfw/didreg/pkg/storage"
)

// Authenticator proves the current invocation was issued by a principal in
// control of an address
type Authenticator interface {
	RequireAuth(ctx context.Context, addr Address) error
}

// Clock supplies ledger time in seconds. Successive readings never decrease.
type Clock interface {
	Now() uint64
}

// Recorder observes operation outcomes
type Recorder interface {
	ObserveOperation(op string, outcome string)
	SetIdentities(n uint64)
}

const (
	OpRegister = "register"
	OpVerify   = "verify"
	OpView     = "view"
	OpCount    = "count"

	OutcomeOK                = "ok"
	OutcomeAlreadyRegistered = "already_registered"
	OutcomeAlreadyVerified   = "already_verified"
	OutcomeNotFound          = "not_found"
	OutcomeUnauthorized      = "unauthorized"
	OutcomeError             = "error"
)

var (
	ErrClockUnset = errors.New("ledger clock returned zero time")
)

// Registry is the identity registration and verification state machine.
// Each mutating operation runs in a single store transaction so that an
// abort leaves no partial writes behind.
type Registry struct {
	store storage.Store
	auth  Authenticator
	clock Clock

	leaseMin uint32
	leaseMax uint32

	logger   *logrus.Entry
	recorder Recorder
}

func New(s storage.Store, auth Authenticator, clock Clock, opts ...Option) (*Registry, error) {
	r := &Registry{
		store:    s,
		auth:     auth,
		clock:    clock,
		leaseMin: DefaultLeaseMin,
		leaseMax: DefaultLeaseMax,
		logger:   logging.Entry(),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	if r.store == nil || r.auth == nil || r.clock == nil {
		return nil, errors.New("registry requires a store, authenticator and clock")
	}

	return r, nil
}

// Register creates the identity record of caller. caller must authorize the
// invocation itself.
func (r *Registry) Register(ctx context.Context, caller Address, fullName, idNumber string) (bool, error) {
	if err := r.requireAuth(ctx, OpRegister, caller); err != nil {
		return false, err
	}

	var total uint64

	err := r.store.Update(ctx, func(txn storage.Txn) error {
		key := IdentityKey{caller}

		exists, err := has(txn, key)
		if err != nil {
			return err
		}
		if exists {
			r.logger.WithField("address", caller).Warn("identity already registered for address")
			return ErrAlreadyRegistered
		}

		now := r.clock.Now()
		if now == 0 {
			return ErrClockUnset
		}

		rec := &IdentityRecord{
			Owner:        caller,
			FullName:     fullName,
			IDNumber:     idNumber,
			RegisteredAt: now,
		}

		if err := putRecord(txn, key, rec); err != nil {
			return err
		}

		total, err = getCount(txn)
		if err != nil {
			return err
		}
		total++

		if err := putCount(txn, total); err != nil {
			return err
		}

		return txn.RenewLease(r.leaseMin, r.leaseMax)
	})
	if err != nil {
		r.observe(OpRegister, outcomeOf(err))
		return false, err
	}

	r.observe(OpRegister, OutcomeOK)
	if r.recorder != nil {
		r.recorder.SetIdentities(total)
	}

	r.logger.WithField("address", caller).Info("identity registered")

	return true, nil
}

// Verify marks the record of target as verified. Any principal able to
// authorize as verifier may verify any record. Verifying an already verified
// record is not an error; it returns false and leaves the record untouched.
func (r *Registry) Verify(ctx context.Context, verifier, target Address) (bool, error) {
	if err := r.requireAuth(ctx, OpVerify, verifier); err != nil {
		return false, err
	}

	if target == "" {
		r.observe(OpVerify, OutcomeNotFound)
		return false, ErrRecordNotFound
	}

	var updated bool

	err := r.store.Update(ctx, func(txn storage.Txn) error {
		key := IdentityKey{target}

		rec, err := getRecord(txn, key)
		if err != nil {
			return err
		}

		if rec.IsVerified {
			r.logger.WithField("address", target).Info("identity already verified")
			return nil
		}

		now := r.clock.Now()
		if now == 0 {
			return ErrClockUnset
		}

		rec.IsVerified = true
		rec.VerifiedAt = now

		if err := putRecord(txn, key, rec); err != nil {
			return err
		}

		updated = true

		return txn.RenewLease(r.leaseMin, r.leaseMax)
	})
	if err != nil {
		r.observe(OpVerify, outcomeOf(err))
		return false, err
	}

	if !updated {
		r.observe(OpVerify, OutcomeAlreadyVerified)
		return false, nil
	}

	r.observe(OpVerify, OutcomeOK)
	r.logger.WithFields(logging.Fields{
		"address":  target,
		"verifier": verifier,
	}).Info("identity verified")

	return true, nil
}

// View returns the record of target. An unregistered target yields the
// NotFoundMarker placeholder record rather than an error; errors are only
// returned for storage failures.
func (r *Registry) View(ctx context.Context, target Address) (IdentityRecord, error) {
	var out IdentityRecord

	err := r.store.View(ctx, func(txn storage.Txn) error {
		rec, err := getRecord(txn, IdentityKey{target})
		if errors.Is(err, ErrRecordNotFound) {
			out = notFoundRecord(target)
			return nil
		} else if err != nil {
			return err
		}

		out = *rec
		return nil
	})
	if err != nil {
		r.observe(OpView, OutcomeError)
		return IdentityRecord{}, errors.Wrap(err, "viewing identity")
	}

	r.observe(OpView, OutcomeOK)

	return out, nil
}

// Has reports if target has a registered record
func (r *Registry) Has(ctx context.Context, target Address) (bool, error) {
	var exists bool

	err := r.store.View(ctx, func(txn storage.Txn) error {
		var err error
		exists, err = has(txn, IdentityKey{target})
		return err
	})

	return exists, err
}

// Count returns the number of successful registrations
func (r *Registry) Count(ctx context.Context) (uint64, error) {
	var total uint64

	err := r.store.View(ctx, func(txn storage.Txn) error {
		var err error
		total, err = getCount(txn)
		return err
	})
	if err != nil {
		r.observe(OpCount, OutcomeError)
		return 0, errors.Wrap(err, "reading total count")
	}

	r.observe(OpCount, OutcomeOK)

	return total, nil
}

func (r *Registry) requireAuth(ctx context.Context, op string, addr Address) error {
	if addr == "" {
		r.observe(op, OutcomeUnauthorized)
		return ErrInvalidAddress
	}

	if err := r.auth.RequireAuth(ctx, addr); err != nil {
		r.observe(op, OutcomeUnauthorized)
		r.logger.WithError(err).WithField("address", addr).Debug("authorization failed")
		return errors.WithMessagef(ErrUnauthorized, "%s: %s", addr, err)
	}

	return nil
}

func (r *Registry) observe(op, outcome string) {
	if r.recorder != nil {
		r.recorder.ObserveOperation(op, outcome)
	}
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, ErrAlreadyRegistered):
		return OutcomeAlreadyRegistered
	case errors.Is(err, ErrRecordNotFound):
		return OutcomeNotFound
	default:
		return OutcomeError
	}
}

func has(txn storage.Txn, k Key) (bool, error) {
	_, err := txn.Get(k.Bytes())
	if err == nil {
		return true, nil
	}
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}

	return false, errors.Wrapf(err, "looking up %s", k)
}

func getRecord(txn storage.Txn, k IdentityKey) (*IdentityRecord, error) {
	b, err := txn.Get(k.Bytes())
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrRecordNotFound
	} else if err != nil {
		return nil, errors.Wrapf(err, "looking up %s", k)
	}

	rec := &IdentityRecord{}
	if err := rec.Unmarshal(b); err != nil {
		return nil, err
	}

	return rec, nil
}

func putRecord(txn storage.Txn, k IdentityKey, rec *IdentityRecord) error {
	b, err := rec.Marshal()
	if err != nil {
		return err
	}

	if err := txn.Set(k.Bytes(), b); err != nil {
		return errors.Wrapf(err, "storing %s", k)
	}

	return nil
}

func getCount(txn storage.Txn) (uint64, error) {
	b, err := txn.Get(TotalCountKey{}.Bytes())
	if errors.Is(err, storage.ErrNotFound) {
		return 0, nil
	} else if err != nil {
		return 0, errors.Wrap(err, "looking up total count")
	}

	if len(b) != 8 {
		return 0, errors.New("malformed total count")
	}

	return binary.LittleEndian.Uint64(b), nil
}

func putCount(txn storage.Txn, n uint64) error {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, n)

	if err := txn.Set(TotalCountKey{}.Bytes(), b); err != nil {
		return errors.Wrap(err, "storing total count")
	}

	return nil
}
