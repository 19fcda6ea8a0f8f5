// Package tir implements component 4.11: the typed IR a model reaches after
// HIR→TIR lowering (internal/lower) and the ordered rewrite pipeline
// (internal/passes) run over. Unlike hir.Model, every expression here
// already carries its computed internal/types.TypeID, so nothing downstream
// of lowering ever needs to re-run type synthesis.
package tir

import "github.com/shackle-rs/mzc/internal/arena"

// ExprIdx and PatternIdx index an item's private arenas, exactly as in HIR —
// only meaningful paired with the ItemRef that owns them.
type (
	ExprIdx    = arena.Index
	PatternIdx = arena.Index
)

// ItemKind discriminates which of Model's item arenas an ItemRef points
// into. TIR keeps HIR's nine kinds; lowering is a one-to-one item mapping
// except for the implicit declarations a destructuring let/pattern
// introduces (§4.12).
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
// index into that kind's arena.
type ItemRef struct {
	Kind  ItemKind
	Index arena.Index
}

// ResolvedKind discriminates what a ResolvedIdentifier names (§3.4: "every
// identifier is a ResolvedIdentifier — one of declaration, annotation,
// enum-member, function").
type ResolvedKind uint8

const (
	ResolvedDeclaration ResolvedKind = iota
	ResolvedAnnotation
	ResolvedEnumMember
	ResolvedFunction
	// ResolvedLocal names a value with no top-level item of its own: a
	// function/lambda parameter, or a let/generator/case-arm pattern
	// binding. Item is the enclosing item that owns the private pattern
	// arena Local indexes into (or arena.NoIndex paired with a let-decl
	// slot — see Local's doc comment).
	ResolvedLocal
)

// ResolvedIdentifier is what an EIdent/ECall callee was resolved to during
// lowering; it replaces HIR's plain Name string once typing has run.
type ResolvedIdentifier struct {
	Kind ResolvedKind
	Item ItemRef // the declaration/annotation/function/enumeration item

	// EnumCtor is the constructor's position within Item's Constructors
	// list, meaningful only when Kind == ResolvedEnumMember.
	EnumCtor int

	// Local identifies a ResolvedLocal binding site within Item: a
	// PatternIdx for a parameter/destructured binding, or a let-decl's
	// slot index within its enclosing ELet.Decls (there being no pattern
	// arena slot for a plain let name).
	Local arena.Index
}
