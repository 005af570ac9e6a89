package commonality

// The empty policies treat an empty collection as common. They test length
// only, so the element types need no equality.

// EmptySlice treats a zero-length slice as common. The common value is nil.
type EmptySlice[K any, S ~[]E, E any] struct{}

func (EmptySlice[K, S, E]) Common(K) S {
	return nil
}

func (EmptySlice[K, S, E]) IsCommon(_ K, value S) bool {
	return len(value) == 0
}

// EmptyMap treats a zero-length map as common. Common returns a fresh,
// non-nil map so a caller holding an entry can write into it before
// releasing the entry.
type EmptyMap[K any, M ~map[MK]MV, MK comparable, MV any] struct{}

func (EmptyMap[K, M, MK, MV]) Common(K) M {
	return make(M)
}

func (EmptyMap[K, M, MK, MV]) IsCommon(_ K, value M) bool {
	return len(value) == 0
}

// Sized is a collection that reports its length. A total map is Sized; its
// length counts only uncommon entries.
type Sized interface {
	Len() int
}

// Empty treats a Sized value of length zero as common. New builds the
// common value; it must return an empty collection.
type Empty[K any, V Sized] struct {
	New func() V
}

func (e Empty[K, V]) Common(K) V {
	return e.New()
}

func (e Empty[K, V]) IsCommon(_ K, value V) bool {
	return value.Len() == 0
}
