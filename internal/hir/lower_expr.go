package hir

import (
	"github.com/shackle-rs/mzc/internal/ast"
	"github.com/shackle-rs/mzc/internal/cst"
)

// alloc appends e to this item's expression arena and records its origin.
func (c *ctx) alloc(e Expr, origin *cst.Node) ExprIdx {
	idx := c.data.Exprs.Alloc(e)
	c.l.model.Source.Record(NodeRef{Item: c.ref, Kind: RefExpr, Idx: idx}, FromNode(origin))

	return idx
}

// allocIntroduced is alloc for a node synthesized by a desugaring rather
// than copied from the surface syntax (invariant I2: even introduced nodes
// get a named origin, never an absent one).
func (c *ctx) allocIntroduced(e Expr, why string) ExprIdx {
	idx := c.data.Exprs.Alloc(e)
	c.l.model.Source.Record(NodeRef{Item: c.ref, Kind: RefExpr, Idx: idx}, Introduced(why))

	return idx
}

// lowerOptExpr lowers e, returning NoIndex for a nil Expr (an omitted
// right-hand side).
func (c *ctx) lowerOptExpr(e ast.Expr) ExprIdx {
	if e == nil {
		return NoIndex
	}

	return c.lowerExpr(e)
}

func (c *ctx) lowerExprList(es []ast.Expr) []ExprIdx {
	out := make([]ExprIdx, 0, len(es))

	for _, e := range es {
		out = append(out, c.lowerExpr(e))
	}

	return out
}

// lowerExpr lowers one surface expression, performing every desugaring
// §4.7 allows at this stage: predicate/test is handled in lowerFunction;
// the rest — operator-to-call, generator-call, string interpolation,
// indexed/2-D array literals, infinite slice — happen here.
func (c *ctx) lowerExpr(e ast.Expr) ExprIdx { //nolint:gocyclo
	if e == nil {
		return NoIndex
	}

	n := e.Node()

	switch v := e.(type) {
	case ast.Ident:
		return c.alloc(Expr{Kind: EIdent, Name: v.Name()}, n)

	case ast.IntLit:
		val, err := v.Value()
		if err != nil {
			val = 0
		}

		return c.alloc(Expr{Kind: EIntLit, IntVal: val}, n)

	case ast.FloatLit:
		val, err := v.Value()
		if err != nil {
			val = 0
		}

		return c.alloc(Expr{Kind: EFloatLit, FloatVal: val}, n)

	case ast.BoolLit:
		return c.alloc(Expr{Kind: EBoolLit, BoolVal: v.Value()}, n)

	case ast.StringLit:
		return c.lowerStringLit(v)

	case ast.Absent:
		return c.alloc(Expr{Kind: EAbsent}, n)

	case ast.Infinity:
		return c.alloc(Expr{Kind: EInfinity}, n)

	case ast.AnonEnum:
		return c.alloc(Expr{Kind: EIdent, Name: "_"}, n)

	case ast.ArrayLit:
		return c.alloc(Expr{Kind: EArrayLit, Elems: c.lowerExprList(v.Elements())}, n)

	case ast.SetLit:
		return c.alloc(Expr{Kind: ESetLit, Elems: c.lowerExprList(v.Elements())}, n)

	case ast.TupleLit:
		return c.alloc(Expr{Kind: ETupleLit, Elems: c.lowerExprList(v.Elements())}, n)

	case ast.RecordLit:
		fields := v.Fields()
		names := make([]string, len(fields))
		vals := make([]ExprIdx, len(fields))

		for i, f := range fields {
			names[i] = f.Name
			vals[i] = c.lowerExpr(f.Value)
		}

		return c.alloc(Expr{Kind: ERecordLit, FieldNames: names, Elems: vals}, n)

	case ast.ArrayLit2D:
		return c.lowerArrayLit2D(v)

	case ast.IndexedArrayLit:
		return c.lowerIndexedArrayLit(v)

	case ast.Call:
		return c.lowerCall(v)

	case ast.BinOp:
		return c.allocIntroduced(Expr{
			Kind: ECall, Callee: v.Op(), Elems: []ExprIdx{c.lowerExpr(v.Left()), c.lowerExpr(v.Right())},
		}, "infix-operator-desugar")

	case ast.UnOp:
		return c.allocIntroduced(Expr{
			Kind: ECall, Callee: v.Op(), Elems: []ExprIdx{c.lowerExpr(v.Operand())},
		}, "prefix-operator-desugar")

	case ast.Range:
		return c.allocIntroduced(Expr{
			Kind: ECall, Callee: "..", Elems: []ExprIdx{c.lowerExpr(v.Lo()), c.lowerExpr(v.Hi())},
		}, "range-operator-desugar")

	case ast.InfiniteSlice:
		return c.alloc(Expr{Kind: ESlice}, n)

	case ast.IfThenElse:
		return c.lowerIfThenElse(v)

	case ast.Let:
		return c.lowerLet(v)

	case ast.GeneratorCall:
		return c.lowerGeneratorCall(v)

	case ast.Comprehension:
		return c.alloc(Expr{
			Kind: EComprehension, Elems: []ExprIdx{c.lowerExpr(v.Body())},
			Generators: c.lowerGenerators(v.Generators()),
		}, n)

	case ast.ArrayAccess:
		return c.alloc(Expr{
			Kind: EArrayAccess, Base: c.lowerExpr(v.Base()), Indices: c.lowerExprList(v.Indices()),
		}, n)

	case ast.TupleAccess:
		idx, err := v.Index()
		if err != nil {
			idx = 0
		}

		return c.alloc(Expr{Kind: ETupleAccess, Base: c.lowerExpr(v.Base()), TupleIndex: int(idx)}, n)

	case ast.RecordAccess:
		return c.alloc(Expr{Kind: ERecordAccess, Base: c.lowerExpr(v.Base()), FieldName: v.Name()}, n)

	case ast.Annotated:
		inner := c.lowerExpr(v.Inner())
		c.data.Annotations[inner] = append(c.data.Annotations[inner], c.lowerExprList(v.Annotations())...)

		return inner

	case ast.Case:
		return c.lowerCase(v)

	case ast.Lambda:
		return c.lowerLambda(v)

	default:
		return c.alloc(Expr{Kind: EIdent, Name: "<error>"}, n)
	}
}

func (c *ctx) lowerCall(v ast.Call) ExprIdx {
	callee := ""
	if id, ok := v.Callee().(ast.Ident); ok {
		callee = id.Name()
	}

	return c.alloc(Expr{Kind: ECall, Callee: callee, Elems: c.lowerExprList(v.Args())}, v.Node())
}

func (c *ctx) lowerIfThenElse(v ast.IfThenElse) ExprIdx {
	branches := v.Branches()
	conds := make([]ExprIdx, len(branches))
	thens := make([]ExprIdx, len(branches))

	for i, b := range branches {
		conds[i] = c.lowerExpr(b.Cond)
		thens[i] = c.lowerExpr(b.Then)
	}

	return c.alloc(Expr{Kind: EIfThenElse, Conds: conds, Thens: thens, Else: c.lowerExpr(v.Else())}, v.Node())
}

func (c *ctx) lowerLet(v ast.Let) ExprIdx {
	var decls []LetDecl

	for _, dn := range v.DeclNodes() {
		it := ast.ItemFromNode(dn)
		if it == nil {
			continue
		}

		if cons, ok := it.(ast.ConstraintItem); ok {
			decls = append(decls, LetDecl{IsConstraint: true, Constraint: c.lowerExpr(cons.Expr())})

			continue
		}

		if vd, ok := it.(ast.VarDeclItem); ok {
			decls = append(decls, LetDecl{Decl: Declaration{
				Type: c.lowerType(vd.Type()), Name: vd.Name(),
				Body: c.lowerOptExpr(vd.Body()), Annotations: c.lowerExprList(vd.Annotations()),
			}})
		}
	}

	return c.alloc(Expr{Kind: ELet, Decls: decls, Body: c.lowerExpr(v.Body())}, v.Node())
}

// lowerGeneratorCall desugars the surface form `op(i in S where p)(expr)`
// into a call taking a single array-comprehension argument (§4.7).
func (c *ctx) lowerGeneratorCall(v ast.GeneratorCall) ExprIdx {
	comp := c.allocIntroduced(Expr{
		Kind: EComprehension, Elems: []ExprIdx{c.lowerExpr(v.Body())},
		Generators: c.lowerGenerators(v.Generators()),
	}, "generator-call-desugar")

	return c.allocIntroduced(Expr{Kind: ECall, Callee: v.Op(), Elems: []ExprIdx{comp}}, "generator-call-desugar")
}

func (c *ctx) lowerGenerators(gs []ast.Generator) []Generator {
	out := make([]Generator, 0, len(gs))

	for _, g := range gs {
		pats := make([]PatternIdx, 0, len(g.Patterns))
		for _, p := range g.Patterns {
			pats = append(pats, c.lowerPatternExpr(p))
		}

		out = append(out, Generator{Patterns: pats, Source: c.lowerExpr(g.In), Where: c.lowerOptExpr(g.Where)})
	}

	return out
}

func (c *ctx) lowerCase(v ast.Case) ExprIdx {
	arms := v.Arms()
	out := make([]CaseArm, len(arms))

	for i, a := range arms {
		out[i] = CaseArm{Pattern: c.lowerPatternExpr(a.Pattern), Result: c.lowerExpr(a.Result)}
	}

	return c.alloc(Expr{Kind: ECase, Scrutinee: c.lowerExpr(v.Scrutinee()), Arms: out}, v.Node())
}

func (c *ctx) lowerLambda(v ast.Lambda) ExprIdx {
	var params []PatternIdx

	var paramTypes []TypeIdx

	for _, pn := range v.ParamNodes() {
		name := pn.Field("name").Text()
		params = append(params, c.data.Patterns.Alloc(Pattern{Kind: PIdent, Name: name}))
		paramTypes = append(paramTypes, c.lowerType(ast.FromTypeNode(pn.Field("type"))))
	}

	return c.alloc(Expr{
		Kind: ELambda, Params: params, ParamTypes: paramTypes, Body: c.lowerExpr(v.Body()),
	}, v.Node())
}
