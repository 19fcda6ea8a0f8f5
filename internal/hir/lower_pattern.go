package hir

import (
	"github.com/shackle-rs/mzc/internal/ast"
	"github.com/shackle-rs/mzc/internal/cst"
)

// allocPattern appends p to this item's pattern arena and records its
// origin, same discipline as alloc/allocIntroduced for expressions.
func (c *ctx) allocPattern(p Pattern, origin *cst.Node) PatternIdx {
	idx := c.data.Patterns.Alloc(p)
	c.l.model.Source.Record(NodeRef{Item: c.ref, Kind: RefPattern, Idx: idx}, FromNode(origin))

	return idx
}

// lowerPatternExpr reinterprets an expression parsed in pattern position
// (a case arm's left side, a generator binding, a let's destructuring
// declaration) as a Pattern. The parser has no notion of pattern syntax of
// its own — §3.3's pattern shapes are a subset of the expression grammar,
// so the lowerer does the reinterpretation rather than the parser.
func (c *ctx) lowerPatternExpr(e ast.Expr) PatternIdx {
	if e == nil {
		idx := c.data.Patterns.Alloc(Pattern{Kind: PMissing})
		c.l.model.Source.Record(NodeRef{Item: c.ref, Kind: RefPattern, Idx: idx}, Introduced("missing-pattern"))

		return idx
	}

	n := e.Node()

	switch v := e.(type) {
	case ast.Ident:
		if v.Name() == "_" {
			return c.allocPattern(Pattern{Kind: PWildcard}, n)
		}

		return c.allocPattern(Pattern{Kind: PIdent, Name: v.Name()}, n)

	case ast.Absent:
		return c.allocPattern(Pattern{Kind: PAbsent}, n)

	case ast.IntLit:
		val, _ := v.Value()

		return c.allocPattern(Pattern{Kind: PLiteral, LiteralKind: EIntLit, IntVal: val}, n)

	case ast.FloatLit:
		val, _ := v.Value()

		return c.allocPattern(Pattern{Kind: PLiteral, LiteralKind: EFloatLit, FloatVal: val}, n)

	case ast.BoolLit:
		return c.allocPattern(Pattern{Kind: PLiteral, LiteralKind: EBoolLit, BoolVal: v.Value()}, n)

	case ast.StringLit:
		return c.allocPattern(Pattern{Kind: PLiteral, LiteralKind: EStringLit, StringVal: v.RawText()}, n)

	case ast.UnOp:
		return c.lowerNegatedLiteralPattern(v)

	case ast.Call:
		ctor := ""
		if id, ok := v.Callee().(ast.Ident); ok {
			ctor = id.Name()
		}

		elems := make([]PatternIdx, 0, len(v.Args()))
		for _, a := range v.Args() {
			elems = append(elems, c.lowerPatternExpr(a))
		}

		return c.allocPattern(Pattern{Kind: PCall, Ctor: ctor, Elems: elems}, n)

	case ast.TupleLit:
		elems := make([]PatternIdx, 0, len(v.Elements()))
		for _, el := range v.Elements() {
			elems = append(elems, c.lowerPatternExpr(el))
		}

		return c.allocPattern(Pattern{Kind: PTuple, Elems: elems}, n)

	case ast.RecordLit:
		fields := v.Fields()
		out := make([]RecordPatternField, 0, len(fields))

		for _, f := range fields {
			out = append(out, RecordPatternField{Name: f.Name, Pattern: c.lowerPatternExpr(f.Value)})
		}

		return c.allocPattern(Pattern{Kind: PRecord, Fields: out}, n)

	default:
		return c.allocPattern(Pattern{Kind: PMissing}, n)
	}
}

// lowerNegatedLiteralPattern handles the one UnOp shape valid in pattern
// position, `-N`/`-N.N` (a negative numeric literal pattern); any other
// operator is rejected as a malformed pattern.
func (c *ctx) lowerNegatedLiteralPattern(v ast.UnOp) PatternIdx {
	if v.Op() != "-" {
		c.l.bag.Push(diagMismatchedLiteralKinds(c.l.file.ID, v.Node().Span))

		return c.allocPattern(Pattern{Kind: PMissing}, v.Node())
	}

	switch o := v.Operand().(type) {
	case ast.IntLit:
		val, _ := o.Value()

		return c.allocPattern(Pattern{Kind: PLiteral, LiteralKind: EIntLit, IntVal: -val, IsNegative: true}, v.Node())
	case ast.FloatLit:
		val, _ := o.Value()

		return c.allocPattern(
			Pattern{Kind: PLiteral, LiteralKind: EFloatLit, FloatVal: -val, IsNegative: true}, v.Node())
	default:
		c.l.bag.Push(diagMismatchedLiteralKinds(c.l.file.ID, v.Node().Span))

		return c.allocPattern(Pattern{Kind: PMissing}, v.Node())
	}
}

// lowerEnumCtor interprets one expression from an enum declaration's
// constructor list: a bare identifier names a plain constructor, `_` is the
// anonymous-enum marker, and a call names a constructor that wraps another
// type (e.g. `C(int)`).
func (c *ctx) lowerEnumCtor(ce ast.Expr) EnumCtor {
	switch v := ce.(type) {
	case ast.AnonEnum:
		return EnumCtor{Anon: true}

	case ast.Ident:
		return EnumCtor{Name: v.Name()}

	case ast.Call:
		name := ""
		if id, ok := v.Callee().(ast.Ident); ok {
			name = id.Name()
		}

		var arg TypeIdx

		if args := v.Args(); len(args) == 1 {
			if id, ok := args[0].(ast.Ident); ok {
				arg = c.allocDomainType(id)
			}
		}

		return EnumCtor{Name: name, Arg: arg}

	default:
		return EnumCtor{}
	}
}

// allocDomainType wraps a bare identifier used as an enum constructor's
// wrapped-type argument into a TDomain TypeRef.
func (c *ctx) allocDomainType(id ast.Ident) TypeIdx {
	idx := c.data.Types.Alloc(TypeRef{Kind: TDomain, Domain: c.lowerExpr(id)})
	c.l.model.Source.Record(NodeRef{Item: c.ref, Kind: RefType, Idx: idx}, FromNode(id.Node()))

	return idx
}
