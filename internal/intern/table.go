// Package intern provides the generic deduplicating table used to assign
// compact IDs to structurally-equal values (component 2 of the design), plus
// the "known identifier" registry (§4.2, §9.1) built once per database.
package intern

import "fortio.org/safecast"

// ID is a small integer handle into a Table. ID equality implies value
// equality and vice versa (invariant I3 / testable property P4).
type ID uint32

// NoID marks "not yet interned" / "absent".
const NoID ID = 0

// Table deduplicates comparable values of type T into compact IDs. The type
// interner in internal/types keeps its own index and does not use it.
type Table[T comparable] struct {
	byID  []T
	index map[T]ID
}

// NewTable constructs an empty table. Slot 0 is reserved for NoID and holds
// the zero value of T.
func NewTable[T comparable]() *Table[T] {
	var zero T
	return &Table[T]{
		byID:  []T{zero},
		index: map[T]ID{zero: NoID},
	}
}

// Intern returns the ID for value, allocating a new one on first sight.
// intern(intern(v)) == intern(v) holds because the map lookup is idempotent.
func (t *Table[T]) Intern(value T) ID {
	if id, ok := t.index[value]; ok {
		return id
	}

	id, err := safecast.Conv[uint32](len(t.byID))
	if err != nil {
		panic("intern: table overflow")
	}

	iid := ID(id)
	t.byID = append(t.byID, value)
	t.index[value] = iid

	return iid
}

// Lookup returns the value interned under id.
func (t *Table[T]) Lookup(id ID) T {
	return t.byID[id]
}

// Len returns the number of distinct values interned (excluding the
// reserved zero slot).
func (t *Table[T]) Len() int {
	return len(t.byID) - 1
}
