package codec

import (
	"encoding/json"
	"fmt"
)

// jsonPair holds a pair whose value has not been decoded yet, so it can be
// decoded into the common value for its key.
type jsonPair[K any] struct {
	Key   K               `json:"key"`
	Value json.RawMessage `json:"value"`
}

// EncodeJSON writes the pairs of src as a JSON array of {"key", "value"}
// objects. An empty source encodes as [].
func EncodeJSON[K, V any](src Source[K, V]) ([]byte, error) {
	return json.Marshal(Collect(src))
}

// DecodeJSON parses a JSON array of {"key", "value"} objects and loads it
// into dst. JSON null decodes as an empty sequence.
//
// Each value is decoded on top of dst.Policy().Common(key), so values that
// need construction, such as inner total maps, start from a usable instance.
// A pair without a value decodes as the common value.
func DecodeJSON[K, V any](data []byte, dst Target[K, V], mode Mode) (Stats, error) {
	var raw []jsonPair[K]
	if err := json.Unmarshal(data, &raw); err != nil {
		return Stats{}, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	policy := dst.Policy()
	pairs := make([]Pair[K, V], 0, len(raw))
	for i, r := range raw {
		v := policy.Common(r.Key)
		if len(r.Value) > 0 {
			if err := json.Unmarshal(r.Value, &v); err != nil {
				return Stats{}, fmt.Errorf("%w: pair %d: %w", ErrMalformedInput, i, err)
			}
		}
		pairs = append(pairs, Pair[K, V]{Key: r.Key, Value: v})
	}
	return Load(dst, pairs, mode)
}
