package api

import (
	"context"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tcfw/didreg/pkg/ledger"
	"github.com/tcfw/didreg/pkg/storage"
)

type APIHandler interface {
	Setup(*Api) error
	Routes(chi.Router)
}

var (
	reg = []func() APIHandler{}
)

type BaseHandler struct {
	a *Api
}

func (b *BaseHandler) Setup(a *Api) error {
	b.a = a
	return nil
}

// Api serves the registry over HTTP
type Api struct {
	h       *ledger.Host
	store   storage.Store
	metrics prometheus.Gatherer

	r chi.Router
	s *http.Server
}

func NewAPI(h *ledger.Host, s storage.Store, g prometheus.Gatherer) (*Api, error) {
	a := &Api{
		h:       h,
		store:   s,
		metrics: g,
		r:       newRouter(g),
	}

	a.r.Route("/v1", func(r chi.Router) {
		for _, newHandler := range reg {
			hdl := newHandler()
			if err := hdl.Setup(a); err != nil {
				panic(errors.Wrap(err, "registering handler"))
			}
			hdl.Routes(r)
		}
	})

	a.s = &http.Server{Handler: a.r}

	return a, nil
}

func (a *Api) Handler() http.Handler {
	return a.r
}

func (a *Api) ListenAndServe(l string) error {
	lis, err := net.Listen("tcp", l)
	if err != nil {
		return err
	}

	if err := a.s.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (a *Api) Shutdown(ctx context.Context) error {
	return a.s.Shutdown(ctx)
}
