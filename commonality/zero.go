package commonality

import "golang.org/x/exp/constraints"

// Number is any type with a numeric zero.
type Number interface {
	constraints.Integer | constraints.Float | constraints.Complex
}

// Zero treats numeric zero as common. Negative zero compares equal to zero
// and is common; NaN is never common.
type Zero[K any, V Number] struct{}

func (Zero[K, V]) Common(K) V {
	return 0
}

func (Zero[K, V]) IsCommon(_ K, value V) bool {
	return value == 0
}
