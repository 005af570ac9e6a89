package totalmap

import "iter"

// All yields the uncommon entries in the backing store's natural order:
// insertion order for a hash store, key order for a tree store. Common
// entries are never yielded.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return m.store.All()
}

// Keys yields the keys holding uncommon values.
func (m *Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range m.store.All() {
			if !yield(k) {
				return
			}
		}
	}
}

// Values yields the uncommon values.
func (m *Map[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range m.store.All() {
			if !yield(v) {
				return
			}
		}
	}
}
