// Package store provides the finite key-value containers that back a total
// map. A total map only needs the small capability set described by Store,
// so it works the same over a hash-based or an order-based container.
package store

import "iter"

// View is read access to a store.
type View[K, V any] interface {
	// Get returns the value stored for key and whether it was present.
	Get(key K) (V, bool)
	// Len returns the number of stored entries.
	Len() int
	// All yields every stored entry in the store's natural order. Each call
	// starts a fresh pass.
	All() iter.Seq2[K, V]
}

// Store is the capability set a total map requires from its container.
// Implementations are not safe for concurrent use.
type Store[K, V any] interface {
	View[K, V]
	// Set stores value under key and returns the value it replaced, if any.
	Set(key K, value V) (V, bool)
	// Delete removes key and returns the removed value, if any.
	Delete(key K) (V, bool)
	// Update performs a read-modify-write on a single key. fn receives the
	// current value and whether it exists, and returns the new value and
	// whether to keep it; keep=false deletes the key. Update returns the
	// value held before the call.
	Update(key K, fn func(value V, exists bool) (V, bool)) (V, bool)
	// Clear removes every entry.
	Clear()
	// Clone returns an independent store with the same entries.
	Clone() Store[K, V]
}
