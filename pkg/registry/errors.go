package registry

import "github.com/pkg/errors"

var (
	ErrAlreadyRegistered = errors.New("identity already registered")
	ErrRecordNotFound    = errors.New("identity not found")

	ErrUnauthorized   = errors.New("unauthorized")
	ErrInvalidAddress = errors.New("invalid address")
)
