package store

import "errors"

// Sentinel errors for store operations.
var (
	ErrInvalidHandle   = errors.New("invalid handle")
	ErrInvalidName     = errors.New("invalid field name")
	ErrLoadFailed      = errors.New("load failed")
	ErrSaveFailed      = errors.New("save failed")
	ErrDeleteFailed    = errors.New("delete failed")
	ErrUnexpectedEntry = errors.New("unexpected entry in instance directory")
	ErrMalformedValue  = errors.New("malformed stored value")
)
