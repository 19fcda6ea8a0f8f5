package hir

import (
	"github.com/shackle-rs/mzc/internal/arena"
	"github.com/shackle-rs/mzc/internal/cst"
)

// NodeRef identifies one expression/type/pattern slot within one item, the
// unit the SourceMap tracks origins for.
type NodeRef struct {
	Item ItemRef
	Kind NodeRefKind
	Idx  arena.Index
}

// NodeRefKind discriminates which of an item's three private arenas Idx
// indexes into.
type NodeRefKind uint8

const (
	RefExpr NodeRefKind = iota
	RefType
	RefPattern
)

// Origin is either a real CST node or a named "introduced" marker — every
// HIR/TIR expression has one (invariant I2), never absent.
type Origin struct {
	Node       *cst.Node // nil for introduced nodes
	Introduced string    // non-empty when Node is nil, e.g. "desugared-call"
}

// IsIntroduced reports whether this origin has no backing CST node.
func (o Origin) IsIntroduced() bool { return o.Node == nil }

// FromNode builds a real-node origin.
func FromNode(n *cst.Node) Origin { return Origin{Node: n} }

// Introduced builds a synthesized-node origin, tagged with why it exists
// (e.g. "predicate-desugar", "generator-call-desugar").
func Introduced(why string) Origin { return Origin{Introduced: why} }

// SourceMap records the origin of every expression/type/pattern slot
// allocated during lowering.
type SourceMap struct {
	origins map[NodeRef]Origin
}

// NewSourceMap constructs an empty SourceMap.
func NewSourceMap() *SourceMap { return &SourceMap{origins: make(map[NodeRef]Origin, 256)} }

// Record stores ref's origin. Lowering calls this for every node it
// allocates; nothing downstream is ever supposed to see a ref with no
// recorded origin.
func (m *SourceMap) Record(ref NodeRef, origin Origin) { m.origins[ref] = origin }

// Lookup returns ref's origin and whether one was recorded.
func (m *SourceMap) Lookup(ref NodeRef) (Origin, bool) {
	o, ok := m.origins[ref]

	return o, ok
}
