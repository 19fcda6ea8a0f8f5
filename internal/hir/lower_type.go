package hir

import (
	"github.com/shackle-rs/mzc/internal/ast"
	"github.com/shackle-rs/mzc/internal/cst"
)

// lowerType lowers a surface TypeInst into this item's private type arena,
// recording its CST origin. A zero TypeInst (no node — an omitted return
// type on a declaration-only function signature) lowers to NoIndex.
func (c *ctx) lowerType(t ast.TypeInst) TypeIdx {
	if t.Node() == nil {
		return NoIndex
	}

	var ref TypeRef

	ref.IsVar = t.IsVar()
	ref.IsOpt = t.IsOpt()
	ref.IsSet = t.IsSet()

	switch {
	case t.IsAny():
		ref.Kind = TAny
	case t.IsArray():
		ref.Kind = TArray

		for _, idx := range t.IndexSpine() {
			ref.Index = append(ref.Index, c.lowerType(idx))
		}

		ref.Element = c.lowerType(t.Element())
	case t.IsTuple():
		ref.Kind = TTuple

		for _, f := range t.TupleFields() {
			ref.TupleFields = append(ref.TupleFields, c.lowerType(f))
		}
	case t.IsRecord():
		ref.Kind = TRecord

		for _, f := range t.RecordFields() {
			ref.RecordFields = append(ref.RecordFields, RecordTypeField{Name: f.Name, Type: c.lowerType(f.Type)})
		}
	case t.Primitive() != "":
		ref.Kind = TPrimitive
		ref.Primitive = t.Primitive()

		if t.Domain() != nil {
			ref.Domain = c.lowerExpr(t.Domain())
		}
	default:
		ref.Kind = TDomain
		ref.Domain = c.lowerExpr(t.Domain())
	}

	idx := c.data.Types.Alloc(ref)
	c.l.model.Source.Record(NodeRef{Item: c.ref, Kind: RefType, Idx: idx}, FromNode(t.Node()))

	return idx
}

// implicitVarBool builds the `var bool` return type implied by the
// predicate/test surface forms (§4.7's "predicate/test → function returning
// bool" desugaring).
func (c *ctx) implicitVarBool() TypeIdx {
	idx := c.data.Types.Alloc(TypeRef{Kind: TPrimitive, Primitive: "bool", IsVar: true})
	c.l.model.Source.Record(NodeRef{Item: c.ref, Kind: RefType, Idx: idx}, Introduced("predicate-return-type"))

	return idx
}

// lowerParams lowers a function/annotation's raw "param" CST nodes (§4.6 —
// Params() deliberately leaves these unwrapped for the lowerer) into
// declarations in this item's private arenas.
func (c *ctx) lowerParams(nodes []*cst.Node) []Param {
	out := make([]Param, 0, len(nodes))

	for _, n := range nodes {
		out = append(out, Param{Type: c.lowerType(ast.FromTypeNode(n.Field("type"))), Name: n.Field("name").Text()})
	}

	return out
}
