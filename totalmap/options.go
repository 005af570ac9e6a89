package totalmap

import (
	"github.com/google/uuid"

	"github.com/tailored-agentic-units/totalmap/codec"
	"github.com/tailored-agentic-units/totalmap/observability"
)

type options struct {
	observer observability.Observer
	id       string
	mode     codec.Mode
}

// Option configures a Map at construction.
type Option func(*options)

// WithObserver sends mutation and decode events to o. Without it a Map
// emits nothing.
func WithObserver(o observability.Observer) Option {
	return func(opts *options) { opts.observer = o }
}

// WithID sets the map_id attached to emitted events. An observed Map
// without an ID is assigned a UUIDv7.
func WithID(id string) Option {
	return func(opts *options) { opts.id = id }
}

// WithDecodeMode sets how UnmarshalJSON, UnmarshalYAML and DecodeBinary
// treat non-canonical input. The default is codec.ModeNormalize.
func WithDecodeMode(mode codec.Mode) Option {
	return func(opts *options) { opts.mode = mode }
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.observer != nil && o.id == "" {
		o.id = uuid.Must(uuid.NewV7()).String()
	}
	return o
}
