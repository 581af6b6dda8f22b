package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tcfw/didreg/pkg/tx"
)

func init() {
	reg = append(reg, func() APIHandler { return &identityApi{} })
}

type identityApi struct {
	BaseHandler
}

func (ida *identityApi) Routes(r chi.Router) {
	r.Get("/identities/{address}", ida.View)
	r.Get("/count", ida.Count)
	r.Get("/lease", ida.Lease)
}

// View never fails for an unknown address, the placeholder record is
// returned with ok=false
func (ida *identityApi) View(w http.ResponseWriter, r *http.Request) {
	t := tx.New(tx.OpView, tx.Args{Target: chi.URLParam(r, "address")})

	res, err := ida.a.h.Invoke(r.Context(), t)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

func (ida *identityApi) Count(w http.ResponseWriter, r *http.Request) {
	res, err := ida.a.h.Invoke(r.Context(), tx.New(tx.OpCount, tx.Args{}))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

func (ida *identityApi) Lease(w http.ResponseWriter, r *http.Request) {
	if ida.a.store == nil {
		writeJSON(w, http.StatusNotImplemented, &errorResponse{Error: "no store attached"})
		return
	}

	l, err := ida.a.store.Lease(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, l)
}
