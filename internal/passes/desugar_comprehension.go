package passes

import (
	"github.com/shackle-rs/mzc/internal/arena"
	"github.com/shackle-rs/mzc/internal/tir"
	"github.com/shackle-rs/mzc/internal/transform"
	"github.com/shackle-rs/mzc/internal/types"
)

// DesugarComprehension implements §4.14's desugar-comprehension pass:
// `[ body | gens where w ]` becomes `concat([ if w then [body] else []
// endif | gens ])` — each generator tuple that fails its guard contributes
// an empty array instead of being skipped, and concat flattens the
// per-iteration singleton-or-empty arrays back into one array with the
// original element type. Later passes (and any backend) never see a
// Generator.Where on an array comprehension again.
//
// Only array-typed comprehensions are rewritten this way: concat has no
// set-valued counterpart in this stack, so a set comprehension carrying a
// `where` clause is left with its guard in place (documented simplification
// — sets are acceptable here because membership, unlike array indexing,
// does not depend on position).
func DesugarComprehension(ctx *Context, m *tir.Model) (*tir.Model, error) {
	dc := &desugarFolder{ctx: ctx}

	return transform.Run(dc, m), nil
}

type desugarFolder struct {
	transform.Base

	ctx *Context
}

func (dc *desugarFolder) FoldExpr(self transform.Folder, src, dst *tir.ItemData, idx tir.ExprIdx) tir.ExprIdx {
	if idx == arena.NoIndex {
		return arena.NoIndex
	}

	e := src.Exprs.Get(idx)

	if e.Kind != tir.EComprehension {
		return dc.Base.FoldExpr(self, src, dst, idx)
	}

	in := dc.ctx.Interner
	compType := in.Lookup(e.Type)

	hasWhere := false

	for _, g := range e.Generators {
		if g.Where != arena.NoIndex {
			hasWhere = true

			break
		}
	}

	if !hasWhere || compType.Kind != types.KindArray {
		return dc.Base.FoldExpr(self, src, dst, idx)
	}

	newGens := make([]tir.Generator, len(e.Generators))
	var conds []tir.ExprIdx

	for i, g := range e.Generators {
		pats := make([]tir.PatternIdx, len(g.Patterns))
		for j, p := range g.Patterns {
			pats[j] = dc.FoldPattern(self, src, dst, p)
		}

		newGens[i] = tir.Generator{
			Patterns: pats,
			Source:   dc.FoldExpr(self, src, dst, g.Source),
			Where:    arena.NoIndex,
		}

		if g.Where != arena.NoIndex {
			conds = append(conds, dc.FoldExpr(self, src, dst, g.Where))
		}
	}

	cond := conds[0]
	if len(conds) > 1 {
		cond = dst.Exprs.Alloc(tir.Expr{
			Kind: tir.ELookupCall, LookupName: "/\\", Elems: conds,
			Type: dc.ctx.Interner.Builtins().ParBool, Origin: tir.Introduced("desugar-comprehension"),
		})
	}

	elemType := compType.Element
	innerArr := in.Array([]types.TypeID{in.Builtins().ParInt}, elemType)

	body := dc.FoldExpr(self, src, dst, e.Elems[0])

	singleton := dst.Exprs.Alloc(tir.Expr{Kind: tir.EArrayLit, Type: innerArr, Elems: []tir.ExprIdx{body}, Origin: tir.Introduced("desugar-comprehension")})
	empty := dst.Exprs.Alloc(tir.Expr{Kind: tir.EArrayLit, Type: innerArr, Elems: nil, Origin: tir.Introduced("desugar-comprehension")})

	guarded := dst.Exprs.Alloc(tir.Expr{
		Kind: tir.EIfThenElse, Type: innerArr,
		Conds: []tir.ExprIdx{cond}, Thens: []tir.ExprIdx{singleton}, Else: empty,
		Origin: tir.Introduced("desugar-comprehension"),
	})

	comp := dst.Exprs.Alloc(tir.Expr{
		Kind: tir.EComprehension, Type: in.Array([]types.TypeID{in.Builtins().ParInt}, innerArr),
		Elems: []tir.ExprIdx{guarded}, Generators: newGens,
		Annotations: foldExprListFor(self, src, dst, e.Annotations), Origin: e.Origin,
	})

	return dst.Exprs.Alloc(tir.Expr{
		Kind: tir.ELookupCall, LookupName: "concat", Elems: []tir.ExprIdx{comp},
		Type: e.Type, Origin: e.Origin,
	})
}
