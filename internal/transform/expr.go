package transform

import (
	"github.com/shackle-rs/mzc/internal/arena"
	"github.com/shackle-rs/mzc/internal/tir"
)

// FoldExpr is Base's identity expression copy: it allocates e unchanged
// into dst's arena, recursing self into every child ExprIdx/PatternIdx it
// owns so that a pass overriding FoldExpr for one ExprKind still gets
// every other kind copied correctly without writing its own switch.
func (Base) FoldExpr(self Folder, src, dst *tir.ItemData, idx tir.ExprIdx) tir.ExprIdx {
	if idx == arena.NoIndex {
		return arena.NoIndex
	}

	e := src.Exprs.Get(idx)

	switch e.Kind {
	case tir.EIdent:
		e.Ident.Item = self.Remap(self, e.Ident.Item)
	case tir.ESetLit, tir.EArrayLit, tir.ETupleLit, tir.ERecordLit:
		e.Elems = foldExprList(self, src, dst, e.Elems)
	case tir.EArrayAccess:
		e.Base = self.FoldExpr(self, src, dst, e.Base)
		e.Indices = foldExprList(self, src, dst, e.Indices)
	case tir.EComprehension:
		e.Elems = foldExprList(self, src, dst, e.Elems)
		e.Generators = foldGenerators(self, src, dst, e.Generators)
	case tir.EIfThenElse:
		e.Conds = foldExprList(self, src, dst, e.Conds)
		e.Thens = foldExprList(self, src, dst, e.Thens)
		e.Else = self.FoldExpr(self, src, dst, e.Else)
	case tir.ECall:
		e.Callee = self.Remap(self, e.Callee)
		e.Elems = foldExprList(self, src, dst, e.Elems)
	case tir.ELookupCall:
		e.Elems = foldExprList(self, src, dst, e.Elems)
	case tir.ECase:
		e.Scrutinee = self.FoldExpr(self, src, dst, e.Scrutinee)
		arms := make([]tir.CaseArm, len(e.Arms))

		for i, arm := range e.Arms {
			arms[i] = tir.CaseArm{
				Pattern: self.FoldPattern(self, src, dst, arm.Pattern),
				Result:  self.FoldExpr(self, src, dst, arm.Result),
			}
		}

		e.Arms = arms
	case tir.ELet:
		decls := make([]tir.LetDecl, len(e.Decls))

		for i, decl := range e.Decls {
			if decl.IsConstraint {
				decls[i] = tir.LetDecl{IsConstraint: true, Constraint: self.FoldExpr(self, src, dst, decl.Constraint)}

				continue
			}

			d := decl.Decl
			d.Domain = self.FoldDomain(self, src, dst, d.Domain)
			d.Body = self.FoldExpr(self, src, dst, d.Body)
			d.Annotations = foldExprList(self, src, dst, d.Annotations)
			decls[i] = tir.LetDecl{Decl: d}
		}

		e.Decls = decls
		e.Body = self.FoldExpr(self, src, dst, e.Body)
	case tir.ETupleAccess:
		e.Base = self.FoldExpr(self, src, dst, e.Base)
	case tir.ERecordAccess:
		e.Base = self.FoldExpr(self, src, dst, e.Base)
	case tir.ELambda:
		e.Params = foldPatternList(self, src, dst, e.Params)
		e.Body = self.FoldExpr(self, src, dst, e.Body)
	case tir.ECallable:
		if e.CallableKind != tir.CallableExpr {
			e.CallableItem = self.Remap(self, e.CallableItem)
		} else {
			e.CallableExpr = self.FoldExpr(self, src, dst, e.CallableExpr)
		}
	}

	e.Annotations = foldExprList(self, src, dst, e.Annotations)

	return dst.Exprs.Alloc(e)
}

func foldGenerators(self Folder, src, dst *tir.ItemData, gens []tir.Generator) []tir.Generator {
	out := make([]tir.Generator, len(gens))

	for i, g := range gens {
		out[i] = tir.Generator{
			Patterns: foldPatternList(self, src, dst, g.Patterns),
			Source:   self.FoldExpr(self, src, dst, g.Source),
			Where:    self.FoldExpr(self, src, dst, g.Where),
		}
	}

	return out
}
