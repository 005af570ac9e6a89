package store

import "iter"

// compactThreshold is the number of deleted slots tolerated before the
// entry log is rewritten.
const compactThreshold = 32

type slot[K, V any] struct {
	key   K
	value V
	live  bool
}

type hashStore[K comparable, V any] struct {
	index   map[K]int
	entries []slot[K, V]
	dead    int
	walking int
}

// NewHashStore creates a Store backed by a Go map. All yields entries in
// insertion order; overwriting a key keeps its position, deleting and
// re-inserting it moves it to the end.
func NewHashStore[K comparable, V any]() Store[K, V] {
	return &hashStore[K, V]{index: make(map[K]int)}
}

func (s *hashStore[K, V]) Get(key K) (V, bool) {
	i, ok := s.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	return s.entries[i].value, true
}

func (s *hashStore[K, V]) Len() int {
	return len(s.index)
}

func (s *hashStore[K, V]) Set(key K, value V) (V, bool) {
	if i, ok := s.index[key]; ok {
		old := s.entries[i].value
		s.entries[i].value = value
		return old, true
	}

	s.index[key] = len(s.entries)
	s.entries = append(s.entries, slot[K, V]{key: key, value: value, live: true})

	var zero V
	return zero, false
}

func (s *hashStore[K, V]) Delete(key K) (V, bool) {
	i, ok := s.index[key]
	if !ok {
		var zero V
		return zero, false
	}

	old := s.entries[i].value
	s.entries[i] = slot[K, V]{}
	delete(s.index, key)
	s.dead++
	s.compact()

	return old, true
}

func (s *hashStore[K, V]) Update(key K, fn func(value V, exists bool) (V, bool)) (V, bool) {
	var old V
	i, exists := s.index[key]
	if exists {
		old = s.entries[i].value
	}

	value, keep := fn(old, exists)

	switch {
	case keep && exists:
		s.entries[i].value = value
	case keep:
		s.Set(key, value)
	case exists:
		s.Delete(key)
	}

	return old, exists
}

func (s *hashStore[K, V]) Clear() {
	clear(s.index)
	clear(s.entries)
	s.entries = s.entries[:0]
	s.dead = 0
}

func (s *hashStore[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		s.walking++
		defer func() {
			s.walking--
			s.compact()
		}()

		for i := 0; i < len(s.entries); i++ {
			e := s.entries[i]
			if !e.live {
				continue
			}
			if !yield(e.key, e.value) {
				return
			}
		}
	}
}

func (s *hashStore[K, V]) Clone() Store[K, V] {
	c := &hashStore[K, V]{
		index:   make(map[K]int, len(s.index)),
		entries: make([]slot[K, V], 0, len(s.index)),
	}
	for _, e := range s.entries {
		if e.live {
			c.index[e.key] = len(c.entries)
			c.entries = append(c.entries, e)
		}
	}
	return c
}

// compact drops deleted slots once they outnumber live ones. It is
// deferred while an All pass is running so positions stay stable.
func (s *hashStore[K, V]) compact() {
	if s.walking > 0 || s.dead < compactThreshold || s.dead*2 < len(s.entries) {
		return
	}

	live := s.entries[:0]
	for _, e := range s.entries {
		if e.live {
			s.index[e.key] = len(live)
			live = append(live, e)
		}
	}
	clear(s.entries[len(live):])
	s.entries = live
	s.dead = 0
}
