package totalmap

import "errors"

// ErrUninitialized is returned when decoding into a Map that was not
// built by a constructor and so has no store or policy.
var ErrUninitialized = errors.New("totalmap: map has no store or policy")
