// Package hir implements component 3.3/4.7: the High-level IR produced by
// lowering a parsed AST. An HIR Model owns nine item arenas (see model.go)
// plus a parallel source-ordered item list; each item in turn owns three
// private arenas (expressions, types, patterns) under its own ItemData,
// matching §3.3's "each item carries an ItemData bundle" wording.
package hir

import "github.com/shackle-rs/mzc/internal/arena"

// ExprIdx, TypeIdx and PatternIdx index an item's private ItemData arenas.
// They are only meaningful paired with the ItemRef of the item that owns
// them — unlike interned IDs, they are not globally comparable.
type (
	ExprIdx    = arena.Index
	TypeIdx    = arena.Index
	PatternIdx = arena.Index
)

// ItemKind discriminates which of the Model's nine arenas an ItemRef
// points into.
type ItemKind uint8

const (
	ItemAnnotation ItemKind = iota
	ItemAssignment
	ItemConstraint
	ItemDeclaration
	ItemEnumeration
	ItemFunction
	ItemOutput
	ItemSolve
	ItemTypeAlias
)

func (k ItemKind) String() string {
	switch k {
	case ItemAnnotation:
		return "annotation"
	case ItemAssignment:
		return "assignment"
	case ItemConstraint:
		return "constraint"
	case ItemDeclaration:
		return "declaration"
	case ItemEnumeration:
		return "enumeration"
	case ItemFunction:
		return "function"
	case ItemOutput:
		return "output"
	case ItemSolve:
		return "solve"
	case ItemTypeAlias:
		return "type_alias"
	default:
		return "unknown"
	}
}

// ItemRef is an interned reference composing an ItemKind with the local
// index into that kind's arena (§3.1's "item reference" interned key).
type ItemRef struct {
	Kind  ItemKind
	Index arena.Index
}
