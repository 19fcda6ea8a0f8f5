package ast

import (
	"github.com/shackle-rs/mzc/internal/cst"
	"github.com/shackle-rs/mzc/internal/source"
)

// TypeInst wraps a surface type-inst expression (e.g. `var int`,
// `array[1..3] of opt bool`, `set of 1..10`). It is a thin CST wrapper like
// Expr — the structural Data it denotes is only built during typing
// (§4.9/§4.10).
type TypeInst struct {
	n *cst.Node
}

// FromTypeNode wraps a type-inst CST node.
func FromTypeNode(n *cst.Node) TypeInst { return TypeInst{n} }

// Node returns the underlying CST node.
func (t TypeInst) Node() *cst.Node { return t.n }

// Span returns the node's source span.
func (t TypeInst) Span() source.Span { return nodeSpan(t.n) }

// IsVar reports whether the `var` modifier is present.
func (t TypeInst) IsVar() bool { return t.n != nil && t.n.Field("var") != nil }

// IsOpt reports whether the `opt` modifier is present.
func (t TypeInst) IsOpt() bool { return t.n != nil && t.n.Field("opt") != nil }

// IsSet reports whether this is a `set of ...` type.
func (t TypeInst) IsSet() bool { return t.n != nil && t.n.Field("set") != nil }

// IsArray reports whether this is an `array[...] of ...` type.
func (t TypeInst) IsArray() bool { return t.n != nil && t.n.Kind == "array_type" }

// IndexSpine returns the array's index type-inst expressions (empty for a
// non-array type).
func (t TypeInst) IndexSpine() []TypeInst {
	idx := children(t.n, "index")
	out := make([]TypeInst, len(idx))

	for i, n := range idx {
		out[i] = FromTypeNode(n)
	}

	return out
}

// Element returns the array's element type-inst (nil for non-arrays).
func (t TypeInst) Element() TypeInst { return FromTypeNode(child(t.n, "element")) }

// Domain returns the base-type expression (e.g. `1..10`, an enum name, or
// a primitive keyword token) that the `var`/`opt`/`set of` modifiers apply
// to. For primitive base types this is nil and Primitive reports the kind.
func (t TypeInst) Domain() Expr { return FromNode(child(t.n, "domain")) }

// Primitive returns the primitive keyword text ("int", "bool", "float",
// "string", "ann") when Domain is nil, or "" otherwise.
func (t TypeInst) Primitive() string {
	if p := child(t.n, "primitive"); p != nil {
		return p.Text()
	}

	return ""
}

// IsTuple reports whether this is a `tuple(...)` type.
func (t TypeInst) IsTuple() bool { return t.n != nil && t.n.Kind == "tuple_type" }

// TupleFields returns the tuple type's member type-insts.
func (t TypeInst) TupleFields() []TypeInst {
	fs := children(t.n, "fields")
	out := make([]TypeInst, len(fs))

	for i, n := range fs {
		out[i] = FromTypeNode(n)
	}

	return out
}

// IsRecord reports whether this is a `record(...)` type.
func (t TypeInst) IsRecord() bool { return t.n != nil && t.n.Kind == "record_type" }

// RecordFields returns the record type's (name, type) members.
func (t TypeInst) RecordFields() []RecordTypeField {
	names := children(t.n, "names")
	types := children(t.n, "types")
	out := make([]RecordTypeField, len(types))

	for i, n := range types {
		out[i] = RecordTypeField{Name: names[i].Text(), Type: FromTypeNode(n)}
	}

	return out
}

// RecordTypeField is one `name: type` member of a record type.
type RecordTypeField struct {
	Name string
	Type TypeInst
}

// IsAny reports whether this is the generic placeholder type `any`, used
// in function signatures to introduce a type-inst variable (§4.9).
func (t TypeInst) IsAny() bool { return t.n != nil && t.n.Kind == "any_type" }
