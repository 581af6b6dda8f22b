package node

import (
	"context"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"

	"github.com/tcfw/didreg/internal/api"
	"github.com/tcfw/didreg/internal/config"
	"github.com/tcfw/didreg/internal/metrics"
	"github.com/tcfw/didreg/pkg/ledger"
	"github.com/tcfw/didreg/pkg/ledger/auth"
	"github.com/tcfw/didreg/pkg/registry"
	"github.com/tcfw/didreg/pkg/storage"
)

// Node hosts a single registry instance and its API
type Node struct {
	cfg *config.Config

	storage storage.Store
	clock   ledger.Clock
	auth    registry.Authenticator

	reg  *registry.Registry
	host *ledger.Host
	api  *api.Api

	prom    *prometheus.Registry
	metrics *metrics.Metrics

	logger *logrus.Logger
}

func (n *Node) Storage() storage.Store {
	return n.storage
}

func (n *Node) Registry() *registry.Registry {
	return n.reg
}

func (n *Node) Host() *ledger.Host {
	return n.host
}

func (n *Node) API() *api.Api {
	return n.api
}

func NewNode(ctx context.Context, cfg *config.Config, opts ...NodeOption) (*Node, error) {
	n := &Node{
		cfg:    cfg,
		clock:  ledger.NewMonotonicClock(ledger.SystemClock{}),
		auth:   auth.NewSignatureAuthenticator(),
		prom:   prometheus.NewRegistry(),
		logger: logrus.StandardLogger(),
	}

	for _, opt := range opts {
		if err := opt(n); err != nil {
			return nil, err
		}
	}

	if n.storage == nil {
		return nil, errors.New("no storage configured")
	}

	n.prom.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	n.metrics = metrics.New(n.prom)

	var err error

	n.reg, err = registry.New(n.storage, n.auth, n.clock,
		registry.WithLogger(n.logger),
		registry.WithRecorder(n.metrics),
		registry.WithLease(cfg.Storage().Lease.Min, cfg.Storage().Lease.Max),
	)
	if err != nil {
		return nil, errors.Wrap(err, "initing registry")
	}

	total, err := n.reg.Count(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "reading identity count")
	}
	n.metrics.SetIdentities(total)

	n.host, err = ledger.NewHost(n.reg, ledger.WithLogger(n.logger))
	if err != nil {
		return nil, errors.Wrap(err, "initing host")
	}

	n.api, err = api.NewAPI(n.host, n.storage, n.prom)
	if err != nil {
		return nil, errors.Wrap(err, "initing api")
	}

	return n, nil
}

func (n *Node) ListenAndServe() error {
	listen := n.cfg.API().Listen

	n.logger.WithField("addr", listen).Info("Starting listening")

	return n.api.ListenAndServe(listen)
}

func (n *Node) Stop(ctx context.Context) error {
	n.logger.Warn("Shutting down")

	ctx, cancel := context.WithTimeout(ctx, n.cfg.API().ShutdownTimeout)
	defer cancel()

	if err := n.api.Shutdown(ctx); err != nil {
		n.logger.WithError(err).Error("stopping api")
	}

	return n.storage.Close()
}
