package store

import (
	"cmp"
	"fmt"
)

// Store kinds accepted by Config.
const (
	KindHash = "hash"
	KindTree = "tree"
)

// Config selects the backing-store flavor.
type Config struct {
	Kind string `json:"kind,omitempty"` // "hash" (default) or "tree".
}

// DefaultConfig returns the default store configuration (hash).
func DefaultConfig() Config {
	return Config{Kind: KindHash}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Kind != "" {
		c.Kind = source.Kind
	}
}

// New creates an empty Store from configuration. An empty Kind selects the
// hash flavor.
func New[K cmp.Ordered, V any](cfg *Config) (Store[K, V], error) {
	switch cfg.Kind {
	case "", KindHash:
		return NewHashStore[K, V](), nil
	case KindTree:
		return NewTreeStore[K, V](), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, cfg.Kind)
	}
}
