package totalmap

import (
	"cmp"
	"encoding/json"
	"fmt"
	"os"

	"github.com/tailored-agentic-units/totalmap/codec"
	"github.com/tailored-agentic-units/totalmap/commonality"
	"github.com/tailored-agentic-units/totalmap/observability"
	"github.com/tailored-agentic-units/totalmap/store"
)

// Config holds construction-time choices for a Map. The policy is not part
// of the configuration; it is a type-level decision made by the caller.
type Config struct {
	Store    store.Config `json:"store"`
	Observer string       `json:"observer,omitempty"` // registered observer name; empty or "noop" disables events.
	Decode   codec.Mode   `json:"decode,omitempty"`
}

// DefaultConfig returns a hash-backed, unobserved, normalizing configuration.
func DefaultConfig() Config {
	return Config{
		Store:  store.DefaultConfig(),
		Decode: codec.ModeNormalize,
	}
}

// Merge applies non-zero values from source into c. An observer set by an
// earlier layer is switched off by merging "noop"; a strict mode is relaxed
// by merging an explicit codec.ModeNormalize.
func (c *Config) Merge(source *Config) {
	c.Store.Merge(&source.Store)

	if source.Observer != "" {
		c.Observer = source.Observer
	}
	if source.Decode != codec.ModeDefault {
		c.Decode = source.Decode
	}
}

// LoadConfig reads a JSON config file, merges it with defaults, and returns
// the resulting Config.
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var loaded Config
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Merge(&loaded)
	return &cfg, nil
}

// NewFromConfig creates a Map from configuration and policy. opts are
// applied after the config-derived options, so they take precedence.
func NewFromConfig[K cmp.Ordered, V any](cfg *Config, policy commonality.Policy[K, V], opts ...Option) (*Map[K, V], error) {
	s, err := store.New[K, V](&cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	base := []Option{WithDecodeMode(cfg.Decode)}
	if cfg.Observer != "" {
		obs, err := observability.GetObserver(cfg.Observer)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve observer: %w", err)
		}
		base = append(base, WithObserver(obs))
	}

	return New(s, policy, append(base, opts...)...), nil
}
