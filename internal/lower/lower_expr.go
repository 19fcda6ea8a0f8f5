package lower

import (
	"github.com/shackle-rs/mzc/internal/arena"
	"github.com/shackle-rs/mzc/internal/hir"
	"github.com/shackle-rs/mzc/internal/sema"
	"github.com/shackle-rs/mzc/internal/tir"
	"github.com/shackle-rs/mzc/internal/types"
)

// lowerExpr converts one HIR expression (and, recursively, its children)
// into a TIR Expr allocated in tdata's own private arena, attaching the
// type sema.Checker already computed and the identifier resolution it
// already performed (§4.12: "consumes type results").
func (l *Lowerer) lowerExpr(ref hir.ItemRef, tdata tir.ItemData, idx hir.ExprIdx) tir.ExprIdx {
	if idx == hir.NoIndex {
		return arena.NoIndex
	}

	hdata := l.HIR.ItemData(ref)
	e := hdata.Exprs.Get(idx)
	ty := l.Check.ExprTypes[sema.IdentRef{Item: ref, Expr: idx}]
	origin := l.originOf(ref, idx)

	out := tir.Expr{Type: ty, Origin: origin}

	switch e.Kind {
	case hir.EIntLit:
		out.Kind, out.IntVal = tir.EIntLit, e.IntVal
	case hir.EFloatLit:
		out.Kind, out.FloatVal = tir.EFloatLit, e.FloatVal
	case hir.EBoolLit:
		out.Kind, out.BoolVal = tir.EBoolLit, e.BoolVal
	case hir.EStringLit:
		out.Kind, out.StringVal = tir.EStringLit, e.StringVal
	case hir.EAbsent:
		out.Kind = tir.EAbsent
	case hir.EInfinity:
		out.Kind = tir.EInfinity
	case hir.EIdent:
		out.Kind = tir.EIdent
		out.Ident = l.resolveIdentifier(ref, idx)
	case hir.ESetLit:
		out.Kind = tir.ESetLit
		out.Elems = l.lowerExprList(ref, tdata, e.Elems)
	case hir.EArrayLit:
		out.Kind = tir.EArrayLit
		out.Elems = l.lowerExprList(ref, tdata, e.Elems)
	case hir.ETupleLit:
		out.Kind = tir.ETupleLit
		out.Elems = l.lowerExprList(ref, tdata, e.Elems)
	case hir.ERecordLit:
		out.Kind = tir.ERecordLit
		out.Elems = l.lowerExprList(ref, tdata, e.Elems)
		out.FieldNames = append([]string(nil), e.FieldNames...)
	case hir.EArrayAccess:
		out.Kind = tir.EArrayAccess
		out.Base = l.lowerExpr(ref, tdata, e.Base)
		out.Indices = l.lowerExprList(ref, tdata, e.Indices)
	case hir.ESlice:
		out.Kind = tir.ESlice
	case hir.EComprehension:
		out.Kind = tir.EComprehension
		out.Elems = l.lowerExprList(ref, tdata, e.Elems)
		out.Generators = l.lowerGenerators(ref, tdata, e.Generators)
	case hir.EIfThenElse:
		out.Kind = tir.EIfThenElse
		out.Conds = l.lowerExprList(ref, tdata, e.Conds)
		out.Thens = l.lowerExprList(ref, tdata, e.Thens)
		out.Else = l.lowerExpr(ref, tdata, e.Else)
	case hir.ECall:
		l.lowerCall(ref, tdata, idx, e, &out)
	case hir.ECase:
		out.Kind = tir.ECase
		out.Scrutinee = l.lowerExpr(ref, tdata, e.Scrutinee)
		out.Arms = make([]tir.CaseArm, len(e.Arms))

		for i, arm := range e.Arms {
			out.Arms[i] = tir.CaseArm{
				Pattern: l.lowerPattern(ref, tdata, arm.Pattern),
				Result:  l.lowerExpr(ref, tdata, arm.Result),
			}
		}
	case hir.ELet:
		out.Kind = tir.ELet
		out.Decls = make([]tir.LetDecl, len(e.Decls))

		for i, decl := range e.Decls {
			if decl.IsConstraint {
				out.Decls[i] = tir.LetDecl{IsConstraint: true, Constraint: l.lowerExpr(ref, tdata, decl.Constraint)}

				continue
			}

			declTy := l.Check.LetTypes[sema.IdentRef{Item: ref, Expr: arena.Index(i)}]
			out.Decls[i] = tir.LetDecl{Decl: tir.Declaration{
				Type: declTy, Name: decl.Decl.Name,
				Body: l.lowerExpr(ref, tdata, decl.Decl.Body),
			}}
		}

		out.Body = l.lowerExpr(ref, tdata, e.Body)
	case hir.ETupleAccess:
		out.Kind = tir.ETupleAccess
		out.Base = l.lowerExpr(ref, tdata, e.Base)
		out.TupleIndex = e.TupleIndex
	case hir.ERecordAccess:
		out.Kind = tir.ERecordAccess
		out.Base = l.lowerExpr(ref, tdata, e.Base)
		out.FieldName = e.FieldName
	case hir.ELambda:
		out.Kind = tir.ELambda
		out.Params = l.lowerPatternList(ref, tdata, e.Params)
		out.ParamTypes = make([]types.TypeID, len(e.ParamTypes))

		for i, pt := range e.ParamTypes {
			out.ParamTypes[i] = l.Check.ResolveTypeRef(ref, hdata, pt)
		}

		out.RetType = l.Check.ResolveTypeRef(ref, hdata, e.RetType)
		out.Body = l.lowerExpr(ref, tdata, e.Body)
	}

	out.Annotations = l.lowerExprList(ref, tdata, hdata.Annotations[idx])

	return tdata.Exprs.Alloc(out)
}

// lowerCall fills out out for an hir.ECall expression. sema.Checker has
// already ranked overloads and recorded the winner in c.Resolved keyed by
// the call's own expr idx (§4.10's overload resolution runs once, during
// typing — lowering only has to read the result back); a call sema could
// not resolve (an error already reported during typing) lowers to
// ELookupCall instead, leaving the name open for whatever later consumer
// wants to retry resolution, rather than a dangling zero ItemRef.
func (l *Lowerer) lowerCall(ref hir.ItemRef, tdata tir.ItemData, idx hir.ExprIdx, e hir.Expr, out *tir.Expr) {
	args := l.lowerExprList(ref, tdata, e.Elems)

	id, ok := l.Check.Resolved[sema.IdentRef{Item: ref, Expr: idx}]
	if !ok {
		out.Kind = tir.ELookupCall
		out.LookupName = e.Callee
		out.Elems = args

		return
	}

	sym := l.Table.Symbol(id)

	out.Kind = tir.ECall
	out.Callee = l.mappedItem(sym.Item)
	out.Elems = args
}

func (l *Lowerer) lowerGenerators(ref hir.ItemRef, tdata tir.ItemData, gens []hir.Generator) []tir.Generator {
	out := make([]tir.Generator, len(gens))

	for i, g := range gens {
		out[i] = tir.Generator{
			Patterns: l.lowerPatternList(ref, tdata, g.Patterns),
			Source:   l.lowerExpr(ref, tdata, g.Source),
			Where:    l.lowerExpr(ref, tdata, g.Where),
		}
	}

	return out
}

func (l *Lowerer) originOf(ref hir.ItemRef, idx hir.ExprIdx) tir.Origin {
	o, ok := l.Check.Model.Source.Lookup(hir.NodeRef{Item: ref, Kind: hir.RefExpr, Idx: idx})
	if !ok {
		return tir.Introduced("lowering")
	}

	if o.IsIntroduced() {
		return tir.Introduced(o.Introduced)
	}

	return tir.FromNode(o.Node)
}
