package symbols

import (
	"github.com/shackle-rs/mzc/internal/arena"
	"github.com/shackle-rs/mzc/internal/hir"
)

// BuildLocalScopes walks every item's expression arena, opening a child
// scope (chained to the global scope, or to whichever local scope
// lexically encloses it) at each construct §4.8 names: function/lambda
// parameter lists, let expressions, comprehension/generator-call
// generators, and case arms. The resulting scopes are recorded in
// t.ScopeOf, keyed by the construct that opens them, for sema's expression
// walk to pick back up.
func BuildLocalScopes(t *Table, model *hir.Model) {
	for _, ref := range model.Items {
		switch ref.Kind {
		case hir.ItemFunction:
			f := model.Functions.Get(ref.Index)
			paramScope := buildFunctionParamScope(t, ref, f.ItemData, f.Params)
			walkExpr(t, ref, f.ItemData, paramScope, f.Body)

		case hir.ItemConstraint:
			c := model.Constraints.Get(ref.Index)
			walkExpr(t, ref, c.ItemData, t.Global, c.Expr)

		case hir.ItemDeclaration:
			d := model.Declarations.Get(ref.Index)
			walkExpr(t, ref, d.ItemData, t.Global, d.Body)

		case hir.ItemAssignment:
			a := model.Assignments.Get(ref.Index)
			walkExpr(t, ref, a.ItemData, t.Global, a.Value)

		case hir.ItemOutput:
			o := model.Outputs.Get(ref.Index)
			walkExpr(t, ref, o.ItemData, t.Global, o.Expr)

		case hir.ItemSolve:
			sv := model.Solves.Get(ref.Index)
			walkExpr(t, ref, sv.ItemData, t.Global, sv.Objective)
		}
	}
}

func buildFunctionParamScope(t *Table, ref hir.ItemRef, data hir.ItemData, params []hir.Param) ScopeID {
	scope := t.NewScope(ScopeFunctionParams, t.Global)
	t.ScopeOf[ScopeOwner{Item: ref}] = scope

	for i, p := range params {
		if p.Name == "" || p.Name == "_" {
			continue
		}

		t.Declare(scope, Symbol{Name: p.Name, Kind: SymParam, Item: ref, Pattern: arena.Index(i)})
	}

	return scope
}

// walkExpr descends idx's subtree, opening a new scope at every
// let/comprehension/generator-call/case/lambda node and recursing into its
// children under that scope. Non-binding nodes just recurse under the
// enclosing scope unchanged.
func walkExpr(t *Table, ref hir.ItemRef, data hir.ItemData, scope ScopeID, idx hir.ExprIdx) {
	if idx == arena.NoIndex {
		return
	}

	e := data.Exprs.Get(idx)

	switch e.Kind {
	case hir.ELet:
		inner := t.NewScope(ScopeLet, scope)
		t.ScopeOf[ScopeOwner{Item: ref, Expr: idx}] = inner

		for i, decl := range e.Decls {
			if decl.IsConstraint {
				walkExpr(t, ref, data, inner, decl.Constraint)

				continue
			}

			if decl.Decl.Name != "" {
				t.Declare(inner, Symbol{Name: decl.Decl.Name, Kind: SymVariable, Item: ref, Pattern: arena.Index(i)})
			}

			walkExpr(t, ref, data, inner, decl.Decl.Body)
		}

		walkExpr(t, ref, data, inner, e.Body)

	case hir.EComprehension:
		inner := walkGenerators(t, ref, data, scope, idx, e.Generators)

		for _, el := range e.Elems {
			walkExpr(t, ref, data, inner, el)
		}

	case hir.ECase:
		walkExpr(t, ref, data, scope, e.Scrutinee)

		for i, arm := range e.Arms {
			armScope := t.NewScope(ScopeCaseArm, scope)
			t.ScopeOf[ScopeOwner{Item: ref, Expr: idx, Sub: i}] = armScope
			bindPattern(t, ref, data, armScope, arm.Pattern)
			walkExpr(t, ref, data, armScope, arm.Result)
		}

	case hir.ELambda:
		inner := t.NewScope(ScopeLambdaParams, scope)
		t.ScopeOf[ScopeOwner{Item: ref, Expr: idx}] = inner

		for _, p := range e.Params {
			bindPattern(t, ref, data, inner, p)
		}

		walkExpr(t, ref, data, inner, e.Body)

	default:
		for _, child := range e.Elems {
			walkExpr(t, ref, data, scope, child)
		}

		walkExpr(t, ref, data, scope, e.Base)

		for _, ix := range e.Indices {
			walkExpr(t, ref, data, scope, ix)
		}

		for i, cond := range e.Conds {
			walkExpr(t, ref, data, scope, cond)
			walkExpr(t, ref, data, scope, e.Thens[i])
		}

		walkExpr(t, ref, data, scope, e.Else)
	}
}

// walkGenerators opens one ScopeComprehension per comprehension/generator-
// call, chaining each successive generator's scope onto the previous one
// so a later generator's `where`/`in` clause can see earlier generators'
// bindings (MiniZinc's left-to-right generator visibility).
func walkGenerators(
	t *Table, ref hir.ItemRef, data hir.ItemData, scope ScopeID, owner hir.ExprIdx, gens []hir.Generator,
) ScopeID {
	cur := scope

	for i, g := range gens {
		walkExpr(t, ref, data, cur, g.Source)

		next := t.NewScope(ScopeComprehension, cur)
		t.ScopeOf[ScopeOwner{Item: ref, Expr: owner, Sub: i}] = next

		for _, p := range g.Patterns {
			bindPattern(t, ref, data, next, p)
		}

		walkExpr(t, ref, data, next, g.Where)
		cur = next
	}

	return cur
}

// bindPattern declares every identifier a (possibly composite) pattern
// binds, recursing through tuple/record structure; literal/wildcard/absent
// patterns bind nothing.
func bindPattern(t *Table, ref hir.ItemRef, data hir.ItemData, scope ScopeID, idx hir.PatternIdx) {
	if idx == arena.NoIndex {
		return
	}

	p := data.Patterns.Get(idx)

	switch p.Kind {
	case hir.PIdent:
		t.Declare(scope, Symbol{Name: p.Name, Kind: SymPatternBinding, Item: ref, Pattern: idx})

	case hir.PTuple, hir.PCall:
		for _, e := range p.Elems {
			bindPattern(t, ref, data, scope, e)
		}

	case hir.PRecord:
		for _, f := range p.Fields {
			bindPattern(t, ref, data, scope, f.Pattern)
		}
	}
}
