package totalmap

import "github.com/tailored-agentic-units/totalmap/observability"

// Entry is a mutation cursor over a single key of a Map. It caches the
// key's effective value; Set, Modify, Remove and Release write that value
// back, storing it when uncommon and deleting the key when common.
//
// Release must be called when the caller may have mutated a value in place
// (a map or nested total map returned by Get). No other operation may be
// performed on the parent Map while an Entry is live. Using an Entry after
// Release panics.
type Entry[K, V any] struct {
	m        *Map[K, V]
	key      K
	value    V
	occupied bool
	released bool
}

// Entry returns the entry for key. A key without a stored value starts
// vacant, holding the policy's common value.
func (m *Map[K, V]) Entry(key K) *Entry[K, V] {
	v, ok := m.store.Get(key)
	if !ok {
		v = m.policy.Common(key)
	}
	return &Entry[K, V]{m: m, key: key, value: v, occupied: ok}
}

// UncommonEntry returns the entry for key only if key holds an uncommon
// value.
func (m *Map[K, V]) UncommonEntry(key K) (*Entry[K, V], bool) {
	v, ok := m.store.Get(key)
	if !ok {
		return nil, false
	}
	return &Entry[K, V]{m: m, key: key, value: v, occupied: true}, true
}

// Key returns the entry's key.
func (e *Entry[K, V]) Key() K {
	return e.key
}

// Get returns the entry's current value.
func (e *Entry[K, V]) Get() V {
	e.live()
	return e.value
}

// Occupied reports whether the key currently holds a stored, uncommon
// value.
func (e *Entry[K, V]) Occupied() bool {
	e.live()
	return e.occupied
}

// Set replaces the entry's value and canonicalizes the key.
func (e *Entry[K, V]) Set(value V) {
	e.live()
	e.value = value
	e.apply()
}

// Modify sets the entry's value to fn applied to its current value.
func (e *Entry[K, V]) Modify(fn func(V) V) {
	e.live()
	e.Set(fn(e.value))
}

// Remove resets the key to the common value and returns the uncommon value
// it held, if any.
func (e *Entry[K, V]) Remove() (V, bool) {
	e.live()
	prev, existed := e.m.Remove(e.key)
	e.value = e.m.policy.Common(e.key)
	e.occupied = false
	return prev, existed
}

// Release canonicalizes the key one last time and ends the entry. Calling
// Release again has no effect.
func (e *Entry[K, V]) Release() {
	if e.released {
		return
	}
	e.apply()
	e.released = true
}

func (e *Entry[K, V]) apply() {
	was := e.occupied
	_, _, e.occupied = e.m.put(e.key, e.value)
	if was != e.occupied && e.m.observer != nil {
		e.m.emit(EventCanonicalize, observability.LevelVerbose, "totalmap.Entry", map[string]any{
			"key":      e.key,
			"occupied": e.occupied,
		})
	}
}

func (e *Entry[K, V]) live() {
	if e.released {
		panic("totalmap: use of released Entry")
	}
}
