package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"

	"github.com/tcfw/didreg/pkg/tx"
)

const (
	contentTypeMsgpack = "application/msgpack"
)

var (
	errBadRequest = errors.New("bad request")
)

func init() {
	reg = append(reg, func() APIHandler { return &invokeApi{} })
}

type invokeApi struct {
	BaseHandler
}

func (ia *invokeApi) Routes(r chi.Router) {
	r.Post("/invoke", ia.Invoke)
}

// Invoke submits a signed Tx, encoded as msgpack or json depending on the
// request content type
func (ia *invokeApi) Invoke(w http.ResponseWriter, r *http.Request) {
	t, err := decodeTx(r)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := ia.a.h.Invoke(r.Context(), t)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

func decodeTx(r *http.Request) (*tx.Tx, error) {
	b, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return nil, errors.Wrap(errBadRequest, err.Error())
	}

	t := &tx.Tx{}

	if r.Header.Get("Content-Type") == contentTypeMsgpack {
		if err := t.Unmarshal(b); err != nil {
			return nil, errors.Wrap(errBadRequest, err.Error())
		}
		return t, nil
	}

	if err := json.Unmarshal(b, t); err != nil {
		return nil, errors.Wrap(errBadRequest, err.Error())
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}

	return t, nil
}
