package storage

import "github.com/pkg/errors"

var (
	ErrNotFound = errors.New("not found")

	ErrReadOnly    = errors.New("transaction is read only")
	ErrReservedKey = errors.New("key is reserved")
	ErrClosed      = errors.New("store closed")
)
