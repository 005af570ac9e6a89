// Package totalmap provides maps in which every possible key has a value.
//
// Only entries holding an uncommon value are stored; every other key is
// presumed to map to the common value chosen by the map's
// commonality.Policy. Get therefore never misses, while Len, All and the
// serialized form cover only the stored, uncommon entries.
//
// Every mutator keeps the map canonical: no stored entry ever holds a value
// its policy considers common. A Map is not safe for concurrent use; wrap it
// in a lock if it is shared between goroutines.
package totalmap

import (
	"cmp"
	"context"
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/tailored-agentic-units/totalmap/codec"
	"github.com/tailored-agentic-units/totalmap/commonality"
	"github.com/tailored-agentic-units/totalmap/observability"
	"github.com/tailored-agentic-units/totalmap/store"
)

// Map is a total map from K to V. The zero Map is not usable: methods other
// than Len and IsEmpty panic, and decoding into it returns ErrUninitialized.
// Construct one with New or a convenience constructor.
type Map[K, V any] struct {
	store    store.Store[K, V]
	policy   commonality.Policy[K, V]
	observer observability.Observer
	id       string
	mode     codec.Mode
}

// New creates a Map over s and p. s should be empty; any entries it already
// holds that p considers common are removed.
func New[K, V any](s store.Store[K, V], p commonality.Policy[K, V], opts ...Option) *Map[K, V] {
	o := applyOptions(opts)
	m := &Map[K, V]{
		store:    s,
		policy:   p,
		observer: o.observer,
		id:       o.id,
		mode:     o.mode,
	}
	if s.Len() > 0 {
		m.sweep()
	}
	return m
}

// NewHash creates a hash-backed Map whose common value is the zero value
// of V.
func NewHash[K, V comparable](opts ...Option) *Map[K, V] {
	return New(store.NewHashStore[K, V](), commonality.Default[K, V]{}, opts...)
}

// NewTree creates a key-ordered Map whose common value is the zero value
// of V.
func NewTree[K cmp.Ordered, V comparable](opts ...Option) *Map[K, V] {
	return New(store.NewTreeStore[K, V](), commonality.Default[K, V]{}, opts...)
}

// NewNonZeroHash creates a hash-backed Map that stores only non-zero
// numbers.
func NewNonZeroHash[K comparable, V commonality.Number](opts ...Option) *Map[K, V] {
	return New(store.NewHashStore[K, V](), commonality.Zero[K, V]{}, opts...)
}

// NewNonZeroTree creates a key-ordered Map that stores only non-zero
// numbers.
func NewNonZeroTree[K cmp.Ordered, V commonality.Number](opts ...Option) *Map[K, V] {
	return New(store.NewTreeStore[K, V](), commonality.Zero[K, V]{}, opts...)
}

// FromSeq creates a Map over s and p and inserts every pair of seq, so
// common pairs are dropped and later duplicates win.
func FromSeq[K, V any](s store.Store[K, V], p commonality.Policy[K, V], seq iter.Seq2[K, V], opts ...Option) *Map[K, V] {
	m := New(s, p, opts...)
	m.Extend(seq)
	return m
}

// Policy returns the map's commonality policy.
func (m *Map[K, V]) Policy() commonality.Policy[K, V] {
	return m.policy
}

// Get returns the value for key: the stored value if key is uncommon,
// otherwise the policy's common value.
func (m *Map[K, V]) Get(key K) V {
	if v, ok := m.store.Get(key); ok {
		return v
	}
	return m.policy.Common(key)
}

// Contains reports whether key holds an uncommon value.
func (m *Map[K, V]) Contains(key K) bool {
	_, ok := m.store.Get(key)
	return ok
}

// Len returns the number of uncommon entries. A nil Map has length zero,
// which lets *Map serve as a commonality.Sized value.
func (m *Map[K, V]) Len() int {
	if m == nil || m.store == nil {
		return 0
	}
	return m.store.Len()
}

// IsEmpty reports whether every key maps to the common value.
func (m *Map[K, V]) IsEmpty() bool {
	return m.Len() == 0
}

// Insert associates value with key and returns the previously stored
// uncommon value, if any. When value is common the key is removed from
// storage.
func (m *Map[K, V]) Insert(key K, value V) (V, bool) {
	prev, existed, stored := m.put(key, value)
	if m.observer != nil {
		m.emit(EventInsert, observability.LevelVerbose, "totalmap.Insert", map[string]any{
			"key":     key,
			"stored":  stored,
			"existed": existed,
		})
	}
	return prev, existed
}

// Remove resets key to the common value and returns the uncommon value it
// held, if any.
func (m *Map[K, V]) Remove(key K) (V, bool) {
	prev, existed := m.store.Delete(key)
	if existed && m.observer != nil {
		m.emit(EventRemove, observability.LevelVerbose, "totalmap.Remove", map[string]any{"key": key})
	}
	return prev, existed
}

// Update replaces the value for key with fn applied to its current value
// and returns the new value. It is the closure form of Entry.
func (m *Map[K, V]) Update(key K, fn func(V) V) V {
	e := m.Entry(key)
	e.Modify(fn)
	v := e.Get()
	e.Release()
	return v
}

// Clear resets every key to the common value.
func (m *Map[K, V]) Clear() {
	n := m.store.Len()
	m.store.Clear()
	if m.observer != nil {
		m.emit(EventClear, observability.LevelInfo, "totalmap.Clear", map[string]any{"removed": n})
	}
}

// Extend inserts every pair of seq.
func (m *Map[K, V]) Extend(seq iter.Seq2[K, V]) {
	for k, v := range seq {
		m.Insert(k, v)
	}
}

// Retain removes every uncommon entry for which keep returns false.
func (m *Map[K, V]) Retain(keep func(K, V) bool) {
	var drop []K
	for k, v := range m.store.All() {
		if !keep(k, v) {
			drop = append(drop, k)
		}
	}
	for _, k := range drop {
		m.Remove(k)
	}
}

// Drain resets the map and returns its former uncommon entries.
func (m *Map[K, V]) Drain() iter.Seq2[K, V] {
	snapshot := m.store.Clone()
	m.Clear()
	return snapshot.All()
}

// Clone returns a shallow copy with the same policy and options. The copy
// has its own storage, but reference values such as slices, Go maps and
// inner *Map values are shared with m; use CloneFunc to copy them too. The
// copy reports events under the same map ID.
func (m *Map[K, V]) Clone() *Map[K, V] {
	c := *m
	c.store = m.store.Clone()
	return &c
}

// CloneFunc is like Clone but replaces every stored value with
// cloneValue(value) in the copy. For a map of total maps, pass
// (*Map[K2, V2]).Clone.
func (m *Map[K, V]) CloneFunc(cloneValue func(V) V) *Map[K, V] {
	c := m.Clone()
	c.MutateValues(func(_ K, v V) V { return cloneValue(v) })
	return c
}

// ID returns the identifier attached to emitted events. It is empty when
// the map has no observer and no WithID option.
func (m *Map[K, V]) ID() string {
	return m.id
}

// String renders the uncommon entries followed by "..." standing for every
// other key.
func (m *Map[K, V]) String() string {
	var b strings.Builder
	b.WriteString("totalmap[")
	for k, v := range m.store.All() {
		fmt.Fprintf(&b, "%v:%v ", k, v)
	}
	b.WriteString("...]")
	return b.String()
}

// put is the single canonicalization point: value is stored when uncommon
// and key is deleted from storage when value is common.
func (m *Map[K, V]) put(key K, value V) (prev V, existed, stored bool) {
	stored = !m.policy.IsCommon(key, value)
	prev, existed = m.store.Update(key, func(V, bool) (V, bool) {
		return value, stored
	})
	return prev, existed, stored
}

func (m *Map[K, V]) emit(t observability.EventType, level observability.Level, source string, data map[string]any) {
	data["map_id"] = m.id
	m.observer.OnEvent(context.Background(), observability.Event{
		Type:      t,
		Level:     level,
		Timestamp: time.Now(),
		Source:    source,
		Data:      data,
	})
}
