package document

import "errors"

// Sentinel errors for document encoding.
var (
	ErrUnknownFormat      = errors.New("unknown document format")
	ErrUnknownCompression = errors.New("unknown document compression")
	ErrUnknownLayout      = errors.New("unknown document layout")
	ErrUnknownDeleteMode  = errors.New("unknown document delete mode")
	ErrNonStringValue     = errors.New("document value is not a string")
	ErrMalformed          = errors.New("malformed document")
)
