package totalmap

import (
	"gopkg.in/yaml.v3"

	"github.com/tailored-agentic-units/totalmap/codec"
	"github.com/tailored-agentic-units/totalmap/observability"
)

// MarshalJSON encodes the uncommon entries as a JSON array of
// {"key", "value"} objects.
func (m *Map[K, V]) MarshalJSON() ([]byte, error) {
	return codec.EncodeJSON[K, V](m)
}

// UnmarshalJSON replaces the map's entries with the decoded pairs, keeping
// its store flavor and policy.
func (m *Map[K, V]) UnmarshalJSON(data []byte) error {
	if err := m.ready(); err != nil {
		return err
	}
	stats, err := codec.DecodeJSON[K, V](data, m, m.mode)
	return m.decoded("json", stats, err)
}

// MarshalYAML encodes the uncommon entries as a sequence of key/value
// mappings.
func (m *Map[K, V]) MarshalYAML() (any, error) {
	return codec.Collect[K, V](m), nil
}

// UnmarshalYAML replaces the map's entries with the decoded pairs.
func (m *Map[K, V]) UnmarshalYAML(node *yaml.Node) error {
	if err := m.ready(); err != nil {
		return err
	}
	stats, err := codec.DecodeYAMLNode[K, V](node, m, m.mode)
	return m.decoded("yaml", stats, err)
}

// EncodeBinary encodes the uncommon entries in protobuf wire format.
func (m *Map[K, V]) EncodeBinary(c codec.Binary[K, V]) ([]byte, error) {
	return c.Encode(m)
}

// DecodeBinary replaces the map's entries with pairs decoded from
// protobuf wire format.
func (m *Map[K, V]) DecodeBinary(data []byte, c codec.Binary[K, V]) error {
	if err := m.ready(); err != nil {
		return err
	}
	stats, err := c.Decode(data, m, m.mode)
	return m.decoded("binary", stats, err)
}

func (m *Map[K, V]) ready() error {
	if m == nil || m.store == nil || m.policy == nil {
		return ErrUninitialized
	}
	return nil
}

func (m *Map[K, V]) decoded(format string, stats codec.Stats, err error) error {
	if m.observer == nil {
		return err
	}

	if err != nil {
		m.emit(EventError, observability.LevelError, "totalmap.Decode", map[string]any{
			"format": format,
			"error":  err.Error(),
		})
		return err
	}

	m.emit(EventDecode, observability.LevelInfo, "totalmap.Decode", map[string]any{
		"format":  format,
		"read":    stats.Read,
		"dropped": stats.Dropped,
		"stored":  stats.Stored,
	})
	return nil
}
