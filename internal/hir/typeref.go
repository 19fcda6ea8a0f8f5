package hir

import "github.com/shackle-rs/mzc/internal/arena"

// TypeRefKind enumerates the syntactic type-inst shapes a declaration can
// spell out. Unlike internal/types.Data, this is pre-typing: it records what
// the surface syntax said, not the resolved structural type — enum/alias
// names are plain strings here, resolved during signature typing (§4.10).
type TypeRefKind uint8

const (
	TPrimitive TypeRefKind = iota // int/bool/float/string/ann
	TDomain                       // a bounded domain expression, e.g. 1..10
	TArray
	TTuple
	TRecord
	TAny // the `any` type-inst-variable placeholder (§4.9)
)

// RecordTypeField is one `name: type` member of a record type-inst.
type RecordTypeField struct {
	Name string
	Type TypeIdx
}

// TypeRef is one node of an item's private type arena.
type TypeRef struct {
	Kind TypeRefKind

	IsVar bool
	IsOpt bool
	IsSet bool

	Primitive string // TPrimitive: "int"/"bool"/"float"/"string"/"ann"

	Domain ExprIdx // TDomain: the bounding expression (range, enum name, set)

	Index   []TypeIdx // TArray: index spine
	Element TypeIdx   // TArray: element type

	TupleFields []TypeIdx // TTuple

	RecordFields []RecordTypeField // TRecord
}

// Types is one item's private type arena.
type Types = arena.Arena[TypeRef]

// NewTypes constructs an empty per-item type arena.
func NewTypes() *Types { return arena.New[TypeRef](8) }
