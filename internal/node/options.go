package node

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/tcfw/didreg/internal/storage"
	"github.com/tcfw/didreg/pkg/ledger"
	"github.com/tcfw/didreg/pkg/registry"
	storageIface "github.com/tcfw/didreg/pkg/storage"
)

type NodeOption func(*Node) error

func WithStorage(s storageIface.Store) NodeOption {
	return func(n *Node) error {
		n.storage = s
		return nil
	}
}

func WithLogger(l *logrus.Logger) NodeOption {
	return func(n *Node) error {
		n.logger = l
		return nil
	}
}

func WithClock(c ledger.Clock) NodeOption {
	return func(n *Node) error {
		n.clock = c
		return nil
	}
}

func WithAuthenticator(a registry.Authenticator) NodeOption {
	return func(n *Node) error {
		n.auth = a
		return nil
	}
}

// WithDefaultOptions opens the pebble store at the configured path
func WithDefaultOptions() NodeOption {
	return func(n *Node) error {
		s, err := storage.NewPebbleStore(n.cfg.Storage().Path, n.clock)
		if err != nil {
			return errors.Wrap(err, "initing storage")
		}
		n.storage = s

		return nil
	}
}
