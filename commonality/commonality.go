// Package commonality defines which values a total map presumes for keys it
// does not store, and which values count as that presumed value.
//
// A Policy is a strategy object with two methods. Common returns the value
// every unstored key maps to; IsCommon reports whether a value should be
// treated as that value and therefore left out of storage.
//
// Implementations must agree with themselves: IsCommon(k, Common(k)) must be
// true for every key, and Common must be deterministic. Neither property is
// checked at runtime. A policy that breaks them leaves the owning map in an
// unspecified state.
package commonality

//go:generate mockgen -source=commonality.go -destination=mocks/mocks.go -package=mocks Policy

// Policy decides the common value for a key and whether a given value is
// common.
type Policy[K, V any] interface {
	// Common returns the value presumed for key when it is not stored.
	Common(key K) V
	// IsCommon reports whether value is the common value for key.
	IsCommon(key K, value V) bool
}

// Default treats the zero value of V as common.
type Default[K any, V comparable] struct{}

func (Default[K, V]) Common(K) V {
	var zero V
	return zero
}

func (Default[K, V]) IsCommon(_ K, value V) bool {
	var zero V
	return value == zero
}

// Constant treats a fixed value as common for every key.
type Constant[K any, V comparable] struct {
	Value V
}

func (c Constant[K, V]) Common(K) V {
	return c.Value
}

func (c Constant[K, V]) IsCommon(_ K, value V) bool {
	return value == c.Value
}

// Func adapts a pair of functions to a Policy. Both functions must be set
// and must agree with each other.
type Func[K, V any] struct {
	CommonFunc   func(key K) V
	IsCommonFunc func(key K, value V) bool
}

func (f Func[K, V]) Common(key K) V {
	return f.CommonFunc(key)
}

func (f Func[K, V]) IsCommon(key K, value V) bool {
	return f.IsCommonFunc(key, value)
}
