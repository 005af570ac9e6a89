package codec

import (
	"bytes"
	"fmt"
	"math"
	"unicode/utf8"

	"golang.org/x/exp/constraints"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/tailored-agentic-units/totalmap/commonality"
)

// Field numbers of the binary layout. The outer message is
//
//	message Entries { repeated Entry entries = 1; }
//	message Entry   { K key = 1; V value = 2; }
//
// which is the wire form of `map<K, V> entries = 1;`.
const (
	entriesField protowire.Number = 1
	keyField     protowire.Number = 1
	valueField   protowire.Number = 2
)

// Scalar encodes one key or value type as a protobuf field value.
type Scalar[T any] interface {
	WireType() protowire.Type
	Append(b []byte, v T) []byte
	// Consume parses a value from the front of b and returns it with its
	// length. Errors wrap ErrMalformedInput.
	Consume(b []byte) (T, int, error)
}

// Seeded is implemented by scalars that decode into an existing value
// instead of building one. Decode passes the key's common value as seed.
type Seeded[T any] interface {
	ConsumeInto(b []byte, seed T) (T, int, error)
}

// Binary encodes pairs in protobuf wire format using the given scalars.
type Binary[K, V any] struct {
	Key   Scalar[K]
	Value Scalar[V]
}

// Encode writes one length-delimited entry per pair of src.
func (c Binary[K, V]) Encode(src Source[K, V]) ([]byte, error) {
	var out, entry []byte
	for k, v := range src.All() {
		entry = entry[:0]
		entry = protowire.AppendTag(entry, keyField, c.Key.WireType())
		entry = c.Key.Append(entry, k)
		entry = protowire.AppendTag(entry, valueField, c.Value.WireType())
		entry = c.Value.Append(entry, v)

		out = protowire.AppendTag(out, entriesField, protowire.BytesType)
		out = protowire.AppendBytes(out, entry)
	}
	return out, nil
}

// Decode parses entries from data and loads them into dst. Unknown fields
// are skipped. A missing key decodes as the zero key; a missing value
// decodes as the common value for its key.
func (c Binary[K, V]) Decode(data []byte, dst Target[K, V], mode Mode) (Stats, error) {
	pairs, err := c.decodePairs(data, dst.Policy())
	if err != nil {
		return Stats{}, err
	}
	return Load(dst, pairs, mode)
}

func (c Binary[K, V]) decodePairs(b []byte, policy commonality.Policy[K, V]) ([]Pair[K, V], error) {
	var pairs []Pair[K, V]
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, malformed(n)
		}
		b = b[n:]

		if num != entriesField || typ != protowire.BytesType {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, malformed(n)
			}
			b = b[n:]
			continue
		}

		entry, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return nil, malformed(n)
		}
		b = b[n:]

		p, err := c.decodeEntry(entry, policy)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", len(pairs), err)
		}
		pairs = append(pairs, p)
	}
	return pairs, nil
}

// decodeEntry reads the key first and the value afterwards, so the value
// can be seeded with the common value for the key whatever the field order.
// When a field repeats, the last occurrence wins.
func (c Binary[K, V]) decodeEntry(b []byte, policy commonality.Policy[K, V]) (Pair[K, V], error) {
	var (
		p   Pair[K, V]
		raw []byte
		err error
	)
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return p, malformed(n)
		}
		b = b[n:]

		switch num {
		case keyField:
			if typ != c.Key.WireType() {
				return p, fmt.Errorf("%w: key wire type %d, want %d", ErrMalformedInput, typ, c.Key.WireType())
			}
			p.Key, n, err = c.Key.Consume(b)
			if err != nil {
				return p, fmt.Errorf("key: %w", err)
			}
		case valueField:
			if typ != c.Value.WireType() {
				return p, fmt.Errorf("%w: value wire type %d, want %d", ErrMalformedInput, typ, c.Value.WireType())
			}
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n >= 0 {
				raw = b[:n]
			}
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return p, malformed(n)
		}
		b = b[n:]
	}

	seed := policy.Common(p.Key)
	if raw == nil {
		p.Value = seed
		return p, nil
	}

	if s, ok := c.Value.(Seeded[V]); ok {
		p.Value, _, err = s.ConsumeInto(raw, seed)
	} else {
		p.Value, _, err = c.Value.Consume(raw)
	}
	if err != nil {
		return p, fmt.Errorf("value: %w", err)
	}
	return p, nil
}

func malformed(n int) error {
	return fmt.Errorf("%w: %v", ErrMalformedInput, protowire.ParseError(n))
}

func consumed(n int) error {
	if n < 0 {
		return malformed(n)
	}
	return nil
}

// String encodes string-like values as length-delimited UTF-8. Invalid
// UTF-8 is rejected on decode, as protobuf does for string fields.
type String[T ~string] struct{}

func (String[T]) WireType() protowire.Type { return protowire.BytesType }

func (String[T]) Append(b []byte, v T) []byte {
	return protowire.AppendString(b, string(v))
}

func (String[T]) Consume(b []byte) (T, int, error) {
	v, n := protowire.ConsumeString(b)
	if n < 0 {
		return "", n, malformed(n)
	}
	if !utf8.ValidString(v) {
		return "", n, fmt.Errorf("%w: invalid UTF-8 in string field", ErrMalformedInput)
	}
	return T(v), n, nil
}

// Bytes encodes byte slices as length-delimited fields. Decoded values do
// not alias the input.
type Bytes[T ~[]byte] struct{}

func (Bytes[T]) WireType() protowire.Type { return protowire.BytesType }

func (Bytes[T]) Append(b []byte, v T) []byte {
	return protowire.AppendBytes(b, v)
}

func (Bytes[T]) Consume(b []byte) (T, int, error) {
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return nil, n, malformed(n)
	}
	return T(bytes.Clone(v)), n, nil
}

// Int encodes integers as plain varints (protobuf int32/int64/uint32/uint64).
// Negative values take ten bytes; prefer Sint for signed data that is often
// negative. A decoded value that does not fit T is rejected.
type Int[T constraints.Integer] struct{}

func (Int[T]) WireType() protowire.Type { return protowire.VarintType }

func (Int[T]) Append(b []byte, v T) []byte {
	return protowire.AppendVarint(b, uint64(v))
}

func (Int[T]) Consume(b []byte) (T, int, error) {
	v, n := protowire.ConsumeVarint(b)
	if err := consumed(n); err != nil {
		return 0, n, err
	}
	// Signed values were sign-extended to 64 bits on encode.
	t := T(v)
	if uint64(int64(t)) != v {
		return 0, n, fmt.Errorf("%w: varint %d overflows %T", ErrMalformedInput, v, t)
	}
	return t, n, nil
}

// Sint encodes signed integers as zigzag varints (protobuf sint32/sint64).
type Sint[T constraints.Signed] struct{}

func (Sint[T]) WireType() protowire.Type { return protowire.VarintType }

func (Sint[T]) Append(b []byte, v T) []byte {
	return protowire.AppendVarint(b, protowire.EncodeZigZag(int64(v)))
}

func (Sint[T]) Consume(b []byte) (T, int, error) {
	v, n := protowire.ConsumeVarint(b)
	if err := consumed(n); err != nil {
		return 0, n, err
	}
	d := protowire.DecodeZigZag(v)
	t := T(d)
	if int64(t) != d {
		return 0, n, fmt.Errorf("%w: zigzag value %d overflows %T", ErrMalformedInput, d, t)
	}
	return t, n, nil
}

// Double encodes float64 values as fixed64.
type Double[T ~float64] struct{}

func (Double[T]) WireType() protowire.Type { return protowire.Fixed64Type }

func (Double[T]) Append(b []byte, v T) []byte {
	return protowire.AppendFixed64(b, math.Float64bits(float64(v)))
}

func (Double[T]) Consume(b []byte) (T, int, error) {
	v, n := protowire.ConsumeFixed64(b)
	return T(math.Float64frombits(v)), n, consumed(n)
}

// Float encodes float32 values as fixed32.
type Float[T ~float32] struct{}

func (Float[T]) WireType() protowire.Type { return protowire.Fixed32Type }

func (Float[T]) Append(b []byte, v T) []byte {
	return protowire.AppendFixed32(b, math.Float32bits(float32(v)))
}

func (Float[T]) Consume(b []byte) (T, int, error) {
	v, n := protowire.ConsumeFixed32(b)
	return T(math.Float32frombits(v)), n, consumed(n)
}

// Bool encodes booleans as varints.
type Bool[T ~bool] struct{}

func (Bool[T]) WireType() protowire.Type { return protowire.VarintType }

func (Bool[T]) Append(b []byte, v T) []byte {
	return protowire.AppendVarint(b, protowire.EncodeBool(bool(v)))
}

func (Bool[T]) Consume(b []byte) (T, int, error) {
	v, n := protowire.ConsumeVarint(b)
	return T(protowire.DecodeBool(v)), n, consumed(n)
}

// Container is a pair sequence that can be both encoded and decoded, such
// as a total map.
type Container[K, V any] interface {
	Source[K, V]
	Target[K, V]
}

// Nested encodes a value that is itself a pair sequence, such as an inner
// total map, as a length-delimited message of entries using Codec. It only
// decodes through ConsumeInto, filling the seed the outer map's policy
// supplies; Mode applies to that inner decode.
type Nested[T Container[K, V], K, V any] struct {
	Codec Binary[K, V]
	Mode  Mode
}

func (Nested[T, K, V]) WireType() protowire.Type { return protowire.BytesType }

func (c Nested[T, K, V]) Append(b []byte, v T) []byte {
	data, _ := c.Codec.Encode(v)
	return protowire.AppendBytes(b, data)
}

func (Nested[T, K, V]) Consume(b []byte) (T, int, error) {
	var zero T
	return zero, 0, fmt.Errorf("%w: nested value decoded without a seed", ErrMalformedInput)
}

func (c Nested[T, K, V]) ConsumeInto(b []byte, seed T) (T, int, error) {
	data, n := protowire.ConsumeBytes(b)
	if err := consumed(n); err != nil {
		return seed, n, err
	}
	if _, err := c.Codec.Decode(data, seed, c.Mode); err != nil {
		return seed, n, err
	}
	return seed, n, nil
}
