package sema

import (
	"github.com/shackle-rs/mzc/internal/diag"
	"github.com/shackle-rs/mzc/internal/hir"
	"github.com/shackle-rs/mzc/internal/symbols"
	"github.com/shackle-rs/mzc/internal/types"
)

func (c *Checker) typeLet(ref hir.ItemRef, scope symbols.ScopeID, idx hir.ExprIdx, e hir.Expr) types.TypeID {
	inner, ok := c.Table.ScopeOf[symbols.ScopeOwner{Item: ref, Expr: idx}]
	if !ok {
		inner = scope
	}

	data := c.itemData(ref)

	for i, decl := range e.Decls {
		if decl.IsConstraint {
			c.typeExprInScope(ref, inner, decl.Constraint)

			continue
		}

		var ty types.TypeID

		switch {
		case decl.Decl.Type != hir.NoIndex && data.Types.Get(decl.Decl.Type).Kind == hir.TAny:
			if decl.Decl.Body != hir.NoIndex {
				ty = c.typeExprInScope(ref, inner, decl.Decl.Body)
			} else {
				ty = c.Interner.Builtins().Error
			}
		default:
			ty = c.resolveTypeRef(ref, data, decl.Decl.Type)

			if decl.Decl.Body != hir.NoIndex {
				got := c.typeExprInScope(ref, inner, decl.Decl.Body)
				c.checkAssignable(ref, decl.Decl.Body, ty, got)
			}
		}

		c.LetTypes[IdentRef{Item: ref, Expr: hir.ExprIdx(i)}] = ty
	}

	return c.typeExprInScope(ref, inner, e.Body)
}

func (c *Checker) typeComprehension(ref hir.ItemRef, scope symbols.ScopeID, idx hir.ExprIdx, e hir.Expr) types.TypeID {
	inner := c.typeGenerators(ref, scope, idx, e.Generators)

	elem := c.Interner.Builtins().Error
	if len(e.Elems) > 0 {
		elem = c.typeExprInScope(ref, inner, e.Elems[0])
	}

	return c.Interner.Array([]types.TypeID{c.Interner.Builtins().ParInt}, elem)
}

// typeGenerators binds each generator's patterns to its source's element
// type and returns the innermost scope, so the comprehension/generator-call
// body types against every generator's bindings in scope (mirrors
// symbols.walkGenerators' left-to-right chaining).
func (c *Checker) typeGenerators(ref hir.ItemRef, scope symbols.ScopeID, owner hir.ExprIdx, gens []hir.Generator) symbols.ScopeID {
	cur := scope

	for i, g := range gens {
		sourceTy := c.typeExprInScope(ref, cur, g.Source)
		elem := c.elementTypeOf(sourceTy)

		next, ok := c.Table.ScopeOf[symbols.ScopeOwner{Item: ref, Expr: owner, Sub: i}]
		if !ok {
			next = cur
		}

		for _, p := range g.Patterns {
			c.bindPatternStructural(ref, p, elem)
		}

		if g.Where != hir.NoIndex {
			c.typeExprInScope(ref, next, g.Where)
		}

		cur = next
	}

	return cur
}

func (c *Checker) typeCase(ref hir.ItemRef, scope symbols.ScopeID, idx hir.ExprIdx, e hir.Expr) types.TypeID {
	scrutinee := c.typeExprInScope(ref, scope, e.Scrutinee)

	result := c.Interner.Builtins().Error

	for i, arm := range e.Arms {
		armScope, ok := c.Table.ScopeOf[symbols.ScopeOwner{Item: ref, Expr: idx, Sub: i}]
		if !ok {
			armScope = scope
		}

		c.bindPatternStructural(ref, arm.Pattern, scrutinee)

		t := c.typeExprInScope(ref, armScope, arm.Result)
		if i == 0 {
			result = t
		} else if j, ok := c.Interner.Join(result, t); ok {
			result = j
		}
	}

	return result
}

func (c *Checker) typeLambda(ref hir.ItemRef, scope symbols.ScopeID, idx hir.ExprIdx, e hir.Expr) types.TypeID {
	data := c.itemData(ref)

	inner, ok := c.Table.ScopeOf[symbols.ScopeOwner{Item: ref, Expr: idx}]
	if !ok {
		inner = scope
	}

	paramTypes := make([]types.TypeID, len(e.Params))

	for i, p := range e.Params {
		var pt types.TypeID
		if i < len(e.ParamTypes) && e.ParamTypes[i] != hir.NoIndex {
			pt = c.resolveTypeRef(ref, data, e.ParamTypes[i])
		} else {
			pt = c.Interner.TyVar("$T", types.CapVarifiable|types.CapEnumerable|types.CapIndexable)
		}

		paramTypes[i] = pt
		c.bindPatternStructural(ref, p, pt)
	}

	body := c.typeExprInScope(ref, inner, e.Body)

	return c.Interner.Op(body, paramTypes...)
}

func (c *Checker) typeCall(ref hir.ItemRef, scope symbols.ScopeID, idx hir.ExprIdx, e hir.Expr) types.TypeID {
	argTypes := make([]types.TypeID, len(e.Elems))
	for i, a := range e.Elems {
		argTypes[i] = c.typeExprInScope(ref, scope, a)
	}

	ids, ok := c.Table.Lookup(scope, e.Callee)
	if !ok {
		c.report(diag.TypeNoMatchingOverload, c.spanOf(ref, idx), "no matching overload for \""+e.Callee+"\"")

		return c.Interner.Builtins().Error
	}

	candidates := make([]FunctionEntry, 0, len(ids))
	candidateIDs := make([]symbols.SymbolID, 0, len(ids))

	for _, id := range ids {
		sym := c.Table.Symbol(id)
		if sym.Kind != symbols.SymFunction && sym.Kind != symbols.SymAnnotation {
			continue
		}

		var entry FunctionEntry
		if sym.Kind == symbols.SymFunction {
			entry = c.functionEntry(sym.Item)
		} else {
			entry = c.annotationEntry(sym.Item)
		}

		candidates = append(candidates, entry)
		candidateIDs = append(candidateIDs, id)
	}

	if len(candidates) == 0 {
		c.report(diag.TypeNoMatchingOverload, c.spanOf(ref, idx), "\""+e.Callee+"\" is not callable")

		return c.Interner.Builtins().Error
	}

	best, matched, ambiguous := rankOverloads(c.Interner, candidates, argTypes)
	if !matched {
		c.report(diag.TypeNoMatchingOverload, c.spanOf(ref, idx), "no matching overload for \""+e.Callee+"\"")

		return c.Interner.Builtins().Error
	}

	if ambiguous {
		c.report(diag.TypeAmbiguousOverload, c.spanOf(ref, idx), "ambiguous overload for \""+e.Callee+"\"")
	}

	for i, cand := range candidates {
		if cand.Item == best.Item {
			c.Resolved[IdentRef{Item: ref, Expr: idx}] = candidateIDs[i]

			break
		}
	}

	return best.Return
}

// elementTypeOf returns the per-iteration type a generator's source
// contributes to its bound patterns: an array's element type, or a set
// type's base value type with the Set modifier cleared.
func (c *Checker) elementTypeOf(source types.TypeID) types.TypeID {
	d := c.Interner.Lookup(source)

	if d.Kind == types.KindArray {
		return d.Element
	}

	if d.Set == types.IsSet {
		d.Set = types.NonSet

		return c.Interner.Intern(d)
	}

	return source
}

// bindPatternStructural assigns ty to every PIdent leaf destructured out of
// patIdx, matching ty's structure for PTuple/PRecord/PCall and recording
// each leaf's type under the same (Item, PatternIdx) key
// symbols.BuildLocalScopes used when it declared that leaf's SymbolID.
func (c *Checker) bindPatternStructural(ref hir.ItemRef, patIdx hir.PatternIdx, ty types.TypeID) {
	if patIdx == hir.NoIndex {
		return
	}

	data := c.itemData(ref)
	p := data.Patterns.Get(patIdx)

	switch p.Kind {
	case hir.PIdent:
		c.PatternTypes[IdentRef{Item: ref, Expr: patIdx}] = ty

	case hir.PTuple:
		d := c.Interner.Lookup(ty)
		if d.Kind != types.KindTuple || len(d.Fields) != len(p.Elems) {
			for _, e := range p.Elems {
				c.bindPatternStructural(ref, e, c.Interner.Builtins().Error)
			}

			return
		}

		for i, e := range p.Elems {
			c.bindPatternStructural(ref, e, d.Fields[i].Type)
		}

	case hir.PRecord:
		d := c.Interner.Lookup(ty)

		for _, f := range p.Fields {
			field := c.Interner.Builtins().Error

			if d.Kind == types.KindRecord {
				for _, df := range d.Fields {
					if df.Name == f.Name {
						field = df.Type

						break
					}
				}
			}

			c.bindPatternStructural(ref, f.Pattern, field)
		}

	case hir.PCall:
		argTy := c.enumCtorArgType(p.Ctor)
		for _, e := range p.Elems {
			c.bindPatternStructural(ref, e, argTy)
		}
	}
}

// enumCtorArgType finds name's declared enum-constructor argument type by
// scanning every enum item for a constructor named name — there is no
// direct ctor-name index, since §4.8's symbol table only records that the
// name exists, not which enum payload it carries.
func (c *Checker) enumCtorArgType(name string) types.TypeID {
	for _, ref := range c.Model.Items {
		if ref.Kind != hir.ItemEnumeration {
			continue
		}

		en := c.Model.Enumerations.Get(ref.Index)

		for _, ctor := range en.Constructors {
			if ctor.Name == name && ctor.Arg != hir.NoIndex {
				return c.resolveTypeRef(ref, c.itemData(ref), ctor.Arg)
			}
		}
	}

	return c.Interner.Builtins().Error
}
