package lower

import (
	"github.com/shackle-rs/mzc/internal/arena"
	"github.com/shackle-rs/mzc/internal/hir"
	"github.com/shackle-rs/mzc/internal/sema"
	"github.com/shackle-rs/mzc/internal/symbols"
	"github.com/shackle-rs/mzc/internal/tir"
)

// lowerPattern converts one HIR pattern leaf into TIR, attaching the type
// sema.Checker's structural pattern binding pass already computed for it
// (§4.12 mirrors lowerExpr's "consumes type results" for patterns).
func (l *Lowerer) lowerPattern(ref hir.ItemRef, tdata tir.ItemData, idx hir.PatternIdx) tir.PatternIdx {
	if idx == hir.NoIndex {
		return arena.NoIndex
	}

	hdata := l.HIR.ItemData(ref)
	p := hdata.Patterns.Get(idx)
	ty := l.Check.PatternTypes[sema.IdentRef{Item: ref, Expr: idx}]

	out := tir.Pattern{Kind: tir.PatternKind(p.Kind), Type: ty}

	switch p.Kind {
	case hir.PIdent:
		out.Name = p.Name
	case hir.PLiteral:
		out.LiteralKind = tir.ExprKind(p.LiteralKind)
		out.IntVal, out.FloatVal = p.IntVal, p.FloatVal
		out.BoolVal, out.StringVal = p.BoolVal, p.StringVal
		out.IsNegative = p.IsNegative
	case hir.PCall:
		out.Ctor = p.Ctor
		out.CtorItem = l.resolveCtorItem(p.Ctor)
		out.Elems = l.lowerPatternList(ref, tdata, p.Elems)
	case hir.PTuple:
		out.Elems = l.lowerPatternList(ref, tdata, p.Elems)
	case hir.PRecord:
		out.Fields = make([]tir.RecordPatternField, len(p.Fields))
		for i, f := range p.Fields {
			out.Fields[i] = tir.RecordPatternField{Name: f.Name, Pattern: l.lowerPattern(ref, tdata, f.Pattern)}
		}
	}

	return tdata.Patterns.Alloc(out)
}

func (l *Lowerer) lowerPatternList(ref hir.ItemRef, tdata tir.ItemData, in []hir.PatternIdx) []tir.PatternIdx {
	out := make([]tir.PatternIdx, len(in))
	for i, p := range in {
		out[i] = l.lowerPattern(ref, tdata, p)
	}

	return out
}

// resolveCtorItem looks up a PCall pattern's constructor name directly in
// the global scope the same way sema.Checker.domainBaseType resolves a
// named type: sema never records a per-pattern resolution for a
// constructor name the way it does for EIdent, since the name is unique
// (enum constructors live in one flat namespace) and carries no argument
// types to overload on.
func (l *Lowerer) resolveCtorItem(name string) tir.ItemRef {
	ids, ok := l.Table.Lookup(l.Table.Global, name)
	if !ok {
		return tir.ItemRef{}
	}

	for _, id := range ids {
		sym := l.Table.Symbol(id)
		if sym.Kind == symbols.SymEnumCtor {
			return l.mappedItem(sym.Item)
		}
	}

	return tir.ItemRef{}
}
