package store

import (
	"cmp"
	"iter"

	"github.com/benbjohnson/immutable"
)

type comparer[K any] func(a, b K) int

func (c comparer[K]) Compare(a, b K) int {
	return c(a, b)
}

type treeStore[K, V any] struct {
	m       *immutable.SortedMap[K, V]
	compare comparer[K]
}

// NewTreeStore creates a Store ordered by the natural ordering of K. All
// yields entries in ascending key order.
func NewTreeStore[K cmp.Ordered, V any]() Store[K, V] {
	return NewTreeStoreFunc[K, V](cmp.Compare[K])
}

// NewTreeStoreFunc creates a Store ordered by compare, which returns a
// negative number, zero, or a positive number as a sorts before, equal to,
// or after b.
//
// The store is a persistent B+tree: Clone is constant time and an All pass
// keeps iterating the snapshot it started from even if the store changes.
func NewTreeStoreFunc[K, V any](compare func(a, b K) int) Store[K, V] {
	c := comparer[K](compare)
	return &treeStore[K, V]{
		m:       immutable.NewSortedMap[K, V](c),
		compare: c,
	}
}

func (s *treeStore[K, V]) Get(key K) (V, bool) {
	return s.m.Get(key)
}

func (s *treeStore[K, V]) Len() int {
	return s.m.Len()
}

func (s *treeStore[K, V]) Set(key K, value V) (V, bool) {
	old, ok := s.m.Get(key)
	s.m = s.m.Set(key, value)
	return old, ok
}

func (s *treeStore[K, V]) Delete(key K) (V, bool) {
	old, ok := s.m.Get(key)
	if ok {
		s.m = s.m.Delete(key)
	}
	return old, ok
}

func (s *treeStore[K, V]) Update(key K, fn func(value V, exists bool) (V, bool)) (V, bool) {
	old, exists := s.m.Get(key)

	value, keep := fn(old, exists)
	switch {
	case keep:
		s.m = s.m.Set(key, value)
	case exists:
		s.m = s.m.Delete(key)
	}

	return old, exists
}

func (s *treeStore[K, V]) Clear() {
	s.m = immutable.NewSortedMap[K, V](s.compare)
}

func (s *treeStore[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		itr := s.m.Iterator()
		for !itr.Done() {
			k, v, _ := itr.Next()
			if !yield(k, v) {
				return
			}
		}
	}
}

func (s *treeStore[K, V]) Clone() Store[K, V] {
	return &treeStore[K, V]{m: s.m, compare: s.compare}
}
