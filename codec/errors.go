package codec

import "errors"

// Sentinel errors for decoding.
var (
	ErrMalformedInput = errors.New("malformed input")
	ErrCommonPair     = errors.New("pair holds the common value")
	ErrDuplicateKey   = errors.New("duplicate key")
	ErrUnknownMode    = errors.New("unknown decode mode")
)
