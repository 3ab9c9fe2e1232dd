package dbm

import "errors"

var (
	ErrUnknownStrategy = errors.New("unknown storage strategy")
	ErrInvalidConfig   = errors.New("invalid config")
)
