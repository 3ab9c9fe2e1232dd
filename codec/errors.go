package codec

import "errors"

// Sentinel errors for codec operations.
var (
	ErrInvalidLength   = errors.New("invalid length")
	ErrUnsupportedKind = errors.New("unsupported numeric kind")
	ErrKindMismatch    = errors.New("numeric kind mismatch")
	ErrMalformed       = errors.New("malformed number")
)
