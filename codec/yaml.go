package codec

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// yamlPair holds a pair whose value is still a node, so it can be decoded
// into the common value for its key.
type yamlPair[K any] struct {
	Key   K         `yaml:"key"`
	Value yaml.Node `yaml:"value"`
}

// EncodeYAML writes the pairs of src as a YAML sequence of key/value
// mappings.
func EncodeYAML[K, V any](src Source[K, V]) ([]byte, error) {
	return yaml.Marshal(Collect(src))
}

// DecodeYAML parses a YAML sequence of key/value mappings and loads it into
// dst. Values are decoded as in DecodeJSON.
func DecodeYAML[K, V any](data []byte, dst Target[K, V], mode Mode) (Stats, error) {
	var raw []yamlPair[K]
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Stats{}, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	return loadYAML(raw, dst, mode)
}

// DecodeYAMLNode loads an already parsed YAML node into dst. It backs the
// yaml.Unmarshaler implementation of the total map.
func DecodeYAMLNode[K, V any](node *yaml.Node, dst Target[K, V], mode Mode) (Stats, error) {
	var raw []yamlPair[K]
	if err := node.Decode(&raw); err != nil {
		return Stats{}, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	return loadYAML(raw, dst, mode)
}

func loadYAML[K, V any](raw []yamlPair[K], dst Target[K, V], mode Mode) (Stats, error) {
	policy := dst.Policy()
	pairs := make([]Pair[K, V], 0, len(raw))
	for i, r := range raw {
		v := policy.Common(r.Key)
		if !r.Value.IsZero() {
			if err := r.Value.Decode(&v); err != nil {
				return Stats{}, fmt.Errorf("%w: pair %d: %w", ErrMalformedInput, i, err)
			}
		}
		pairs = append(pairs, Pair[K, V]{Key: r.Key, Value: v})
	}
	return Load(dst, pairs, mode)
}
