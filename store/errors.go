package store

import "errors"

// ErrUnknownKind is returned by New when Config.Kind names no store flavor.
var ErrUnknownKind = errors.New("unknown store kind")
