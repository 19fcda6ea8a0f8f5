// Package arena implements component 1 of the design: append-only typed
// storage with stable, opaque indices. Indices are never pointers and so
// can never dangle (invariant I1); removing an entity is not supported,
// matching the "never reused" contract — later passes build a fresh model
// instead of mutating one in place (invariant I4).
package arena

import "fortio.org/safecast"

// Index is the handle identifying an element of an Arena. Callers name
// their index types as aliases (e.g. `type ExprIdx = arena.Index`), so the
// compiler does not stop an index of one arena being used with another.
type Index = uint32

// NoIndex marks the absence of an element; arenas always reserve slot 0 for
// it, so a zero-valued index types as "nothing" rather than "the first
// element" — mirroring the teacher's 1-based ast.Arena[T].
const NoIndex Index = 0

// Arena is an append-only vector of T, keyed by a stable Index. Index 0 is
// reserved and never populated.
type Arena[T any] struct {
	data []T
}

// New constructs an arena with capHint pre-allocated capacity.
func New[T any](capHint int) *Arena[T] {
	data := make([]T, 1, capHint+1) // slot 0 reserved
	return &Arena[T]{data: data}
}

// Alloc appends value and returns its newly assigned index.
func (a *Arena[T]) Alloc(value T) Index {
	idx, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic("arena: index overflow")
	}

	a.data = append(a.data, value)

	return idx
}

// Get returns the element at idx. Indexing NoIndex or an out-of-range index
// panics: per the design, "indexing a missing key is an error."
func (a *Arena[T]) Get(idx Index) T {
	if idx == NoIndex || int(idx) >= len(a.data) {
		panic("arena: invalid index")
	}

	return a.data[idx]
}

// Set overwrites the element at idx in place. Used only by transform passes
// constructing a fresh arena before it is published (invariant I4 forbids
// mutating a model once other queries may have observed it).
func (a *Arena[T]) Set(idx Index, value T) {
	if idx == NoIndex || int(idx) >= len(a.data) {
		panic("arena: invalid index")
	}

	a.data[idx] = value
}

// Len returns the number of live elements (excluding the reserved slot 0).
func (a *Arena[T]) Len() int {
	return len(a.data) - 1
}

// All returns every (index, value) pair in allocation order.
func (a *Arena[T]) All() func(yield func(Index, T) bool) {
	return func(yield func(Index, T) bool) {
		for i := 1; i < len(a.data); i++ {
			idx, err := safecast.Conv[uint32](i)
			if err != nil {
				return
			}

			if !yield(idx, a.data[i]) {
				return
			}
		}
	}
}

// Map is a sparse V-per-index side table over an Arena[T], component 1's
// `ArenaMap<T, V>`.
type Map[V any] struct {
	values map[Index]V
}

// NewMap constructs an empty ArenaMap.
func NewMap[V any]() *Map[V] {
	return &Map[V]{values: make(map[Index]V)}
}

// Get returns the value stored for idx and whether one was present.
func (m *Map[V]) Get(idx Index) (V, bool) {
	v, ok := m.values[idx]
	return v, ok
}

// Set stores value for idx.
func (m *Map[V]) Set(idx Index, value V) {
	m.values[idx] = value
}

// Has reports whether idx has an associated value.
func (m *Map[V]) Has(idx Index) bool {
	_, ok := m.values[idx]
	return ok
}

// RefMap keys by pointer identity rather than an interned index. It backs
// short-lived passes that need to associate data with a borrowed node
// without paying for interning (e.g. a fold's replacement bookkeeping before
// the new arena index is known).
type RefMap[K comparable, V any] struct {
	values map[K]V
}

// NewRefMap constructs an empty RefMap.
func NewRefMap[K comparable, V any]() *RefMap[K, V] {
	return &RefMap[K, V]{values: make(map[K]V)}
}

// Get returns the value stored for key and whether one was present.
func (m *RefMap[K, V]) Get(key K) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Set stores value for key.
func (m *RefMap[K, V]) Set(key K, value V) {
	m.values[key] = value
}
