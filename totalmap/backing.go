package totalmap

import (
	"iter"

	"github.com/tailored-agentic-units/totalmap/observability"
	"github.com/tailored-agentic-units/totalmap/store"
)

type readOnly[K, V any] struct {
	v store.View[K, V]
}

func (r readOnly[K, V]) Get(key K) (V, bool)  { return r.v.Get(key) }
func (r readOnly[K, V]) Len() int             { return r.v.Len() }
func (r readOnly[K, V]) All() iter.Seq2[K, V] { return r.v.All() }

// Backing returns a read-only view of the backing store. Its entries are
// exactly the uncommon entries of the map.
func (m *Map[K, V]) Backing() store.View[K, V] {
	return readOnly[K, V]{v: m.store}
}

// MutateBacking calls fn with the raw backing store and then removes every
// entry fn left holding a common value. It returns the number of entries
// removed.
func (m *Map[K, V]) MutateBacking(fn func(store.Store[K, V])) int {
	fn(m.store)
	return m.sweep()
}

// MutateValues replaces every uncommon value with fn(key, value) and then
// removes entries whose new value is common.
func (m *Map[K, V]) MutateValues(fn func(K, V) V) int {
	return m.MutateBacking(func(s store.Store[K, V]) {
		for k, v := range s.All() {
			s.Set(k, fn(k, v))
		}
	})
}

func (m *Map[K, V]) sweep() int {
	var common []K
	for k, v := range m.store.All() {
		if m.policy.IsCommon(k, v) {
			common = append(common, k)
		}
	}
	for _, k := range common {
		m.store.Delete(k)
	}

	if len(common) > 0 && m.observer != nil {
		m.emit(EventSweep, observability.LevelWarning, "totalmap.MutateBacking", map[string]any{
			"removed": len(common),
		})
	}
	return len(common)
}
