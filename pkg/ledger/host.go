package ledger

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/tcfw/didreg/internal/utils/logging"
	"github.com/tcfw/didreg/pkg/registry"
	"github.com/tcfw/didreg/pkg/tx"
)

// Result is the outcome of a successfully executed Tx
type Result struct {
	Op     tx.Op                    `json:"op" msgpack:"o"`
	TxID   string                   `json:"txId" msgpack:"i"`
	Ok     bool                     `json:"ok" msgpack:"k"`
	Record *registry.IdentityRecord `json:"record,omitempty" msgpack:"r,omitempty"`
	Count  uint64                   `json:"count,omitempty" msgpack:"c,omitempty"`
}

type HostOption func(*Host) error

func WithLogger(l *logrus.Logger) HostOption {
	return func(h *Host) error {
		h.logger = logrus.NewEntry(l)
		return nil
	}
}

// Host executes registry invocations one at a time, exposing each Tx to the
// authenticator through the context
type Host struct {
	mu  sync.Mutex
	reg *registry.Registry

	logger *logrus.Entry
}

func NewHost(reg *registry.Registry, opts ...HostOption) (*Host, error) {
	h := &Host{
		reg:    reg,
		logger: logging.Entry(),
	}

	for _, opt := range opts {
		if err := opt(h); err != nil {
			return nil, err
		}
	}

	return h, nil
}

func (h *Host) Registry() *registry.Registry {
	return h.reg
}

func (h *Host) Invoke(ctx context.Context, t *tx.Tx) (*Result, error) {
	if err := t.Validate(); err != nil {
		return nil, errors.Wrap(err, "validating tx")
	}

	id, err := t.ID()
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	ctx = tx.WithTx(ctx, t)
	res := &Result{Op: t.Op, TxID: id}

	switch t.Op {
	case tx.OpRegister:
		res.Ok, err = h.reg.Register(ctx, registry.Address(t.Args.Caller), t.Args.FullName, t.Args.IDNumber)
	case tx.OpVerify:
		res.Ok, err = h.reg.Verify(ctx, registry.Address(t.Args.Caller), registry.Address(t.Args.Target))
	case tx.OpView:
		var rec registry.IdentityRecord
		rec, err = h.reg.View(ctx, registry.Address(t.Args.Target))
		res.Record = &rec
		res.Ok = err == nil && !registry.IsNotFound(rec)
	case tx.OpCount:
		res.Count, err = h.reg.Count(ctx)
		res.Ok = err == nil
	default:
		err = tx.ErrUnknownOp
	}

	ent := h.logger.WithFields(logging.Fields{"tx": id, "op": t.Op})
	if err != nil {
		ent.WithError(err).Debug("tx aborted")
		return nil, err
	}

	ent.WithField("ok", res.Ok).Debug("tx applied")

	return res, nil
}
