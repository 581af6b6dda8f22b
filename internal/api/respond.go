package api

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"

	"github.com/tcfw/didreg/internal/utils/logging"
	"github.com/tcfw/didreg/pkg/ledger/auth"
	"github.com/tcfw/didreg/pkg/registry"
	"github.com/tcfw/didreg/pkg/tx"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.WithError(err).Error("writing response")
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		logging.WithError(err).Error("handling request")
	}

	writeJSON(w, status, &errorResponse{Error: err.Error()})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, registry.ErrAlreadyRegistered):
		return http.StatusConflict
	case errors.Is(err, registry.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, registry.ErrUnauthorized), errors.Is(err, auth.ErrNoValidProof):
		return http.StatusUnauthorized
	case errors.Is(err, registry.ErrInvalidAddress),
		errors.Is(err, tx.ErrUnknownOp),
		errors.Is(err, tx.ErrMissingArg),
		errors.Is(err, tx.ErrUnknownVersion),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
