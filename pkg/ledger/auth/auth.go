package auth

import (
	"context"

	"github.com/pkg/errors"

	"github.com/tcfw/didreg/internal/utils/logging"
	"github.com/tcfw/didreg/pkg/registry"
	"github.com/tcfw/didreg/pkg/tx"
)

var (
	ErrNoValidProof = errors.New("no valid authorization proof")

	_ registry.Authenticator = (*SignatureAuthenticator)(nil)
	_ registry.Authenticator = AllowAll{}
	_ registry.Authenticator = DenyAll{}
)

// SignatureAuthenticator accepts an address when the Tx on the context
// carries a proof for it whose signature covers the Tx signing bytes
type SignatureAuthenticator struct{}

func NewSignatureAuthenticator() *SignatureAuthenticator {
	return &SignatureAuthenticator{}
}

func (a *SignatureAuthenticator) RequireAuth(ctx context.Context, addr registry.Address) error {
	t, ok := tx.FromContext(ctx)
	if !ok {
		return errors.Wrap(ErrNoValidProof, "no tx in context")
	}

	msg, err := t.SigningBytes()
	if err != nil {
		return errors.Wrap(err, "getting tx signing bytes")
	}

	var found bool

	for _, p := range t.Auth {
		if p.Address != string(addr) {
			continue
		}
		found = true

		if err := p.Verify(msg); err != nil {
			logging.Entry().WithField("address", addr).WithError(err).Debug("rejected proof")
			continue
		}

		return nil
	}

	if !found {
		return errors.Wrapf(ErrNoValidProof, "no proof for %s", addr)
	}

	return errors.Wrapf(ErrNoValidProof, "invalid proof for %s", addr)
}

type AllowAll struct{}

func (AllowAll) RequireAuth(context.Context, registry.Address) error {
	return nil
}

type DenyAll struct{}

func (DenyAll) RequireAuth(context.Context, registry.Address) error {
	return ErrNoValidProof
}
