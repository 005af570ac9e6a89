package totalmap

import "reflect"

// Equal reports whether a and b are the same total function: they store the
// same uncommon entries and agree on the common value. Policies are
// compared with == when both are comparable values; policies that are not,
// such as commonality.Func, are assumed to agree.
func Equal[K any, V comparable](a, b *Map[K, V]) bool {
	return EqualFunc(a, b, func(x, y V) bool { return x == y })
}

// EqualFunc is like Equal but compares values with eq.
func EqualFunc[K, V any](a, b *Map[K, V], eq func(V, V) bool) bool {
	if a.Len() != b.Len() || !samePolicy(a, b) {
		return false
	}
	for k, v := range a.store.All() {
		w, ok := b.store.Get(k)
		if !ok || !eq(v, w) {
			return false
		}
	}
	return true
}

func samePolicy[K, V any](a, b *Map[K, V]) bool {
	pa, pb := reflect.ValueOf(a.policy), reflect.ValueOf(b.policy)
	if !pa.Comparable() || !pb.Comparable() {
		return true
	}
	return a.policy == b.policy
}
