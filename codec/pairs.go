// Package codec converts the stored entries of a total map to and from an
// external sequence of (key, value) pairs. Only uncommon pairs are written;
// the commonality policy is never serialized and must be supplied by the
// decoding side through the target map.
//
// Three formats are provided: JSON and YAML, both a list of
// {key, value} objects, and a protobuf wire encoding compatible with a
// `map<K, V>` field numbered 1 (see Binary).
package codec

import (
	"fmt"
	"iter"

	"github.com/tailored-agentic-units/totalmap/commonality"
)

// Pair is one serialized entry.
type Pair[K, V any] struct {
	Key   K `json:"key" yaml:"key"`
	Value V `json:"value" yaml:"value"`
}

// Source yields the pairs to encode.
type Source[K, V any] interface {
	All() iter.Seq2[K, V]
}

// Target receives decoded pairs. A *totalmap.Map satisfies Target.
type Target[K, V any] interface {
	Clear()
	Insert(key K, value V) (V, bool)
	Contains(key K) bool
	Len() int
	Policy() commonality.Policy[K, V]
}

// Stats summarizes a decode.
type Stats struct {
	Read    int // pairs present in the input
	Dropped int // pairs whose value was common for their key
	Stored  int // entries held by the target afterwards
}

// Collect materializes src into a non-nil slice of pairs.
func Collect[K, V any](src Source[K, V]) []Pair[K, V] {
	pairs := []Pair[K, V]{}
	for k, v := range src.All() {
		pairs = append(pairs, Pair[K, V]{Key: k, Value: v})
	}
	return pairs
}

// Load replaces the contents of dst with pairs.
//
// In ModeNormalize, and in ModeDefault, every pair goes through dst.Insert:
// common pairs are dropped and a repeated key keeps its last value. In ModeStrict a common
// pair fails with ErrCommonPair before dst is touched, and a repeated key
// fails with ErrDuplicateKey and leaves dst empty.
func Load[K, V any](dst Target[K, V], pairs []Pair[K, V], mode Mode) (Stats, error) {
	stats := Stats{Read: len(pairs)}
	policy := dst.Policy()

	if mode == ModeStrict {
		for i, p := range pairs {
			if policy.IsCommon(p.Key, p.Value) {
				return stats, fmt.Errorf("%w: pair %d (key %v)", ErrCommonPair, i, p.Key)
			}
		}
	}

	dst.Clear()
	for i, p := range pairs {
		if mode == ModeStrict && dst.Contains(p.Key) {
			dst.Clear()
			return stats, fmt.Errorf("%w: pair %d (key %v)", ErrDuplicateKey, i, p.Key)
		}
		if policy.IsCommon(p.Key, p.Value) {
			stats.Dropped++
		}
		dst.Insert(p.Key, p.Value)
	}

	stats.Stored = dst.Len()
	return stats, nil
}
