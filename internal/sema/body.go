package sema

import (
	"github.com/shackle-rs/mzc/internal/diag"
	"github.com/shackle-rs/mzc/internal/hir"
	"github.com/shackle-rs/mzc/internal/symbols"
	"github.com/shackle-rs/mzc/internal/types"
)

// typeBodies is §4.10's second phase: every expression is synthesised
// bottom-up, starting from each item's own enclosing scope (the function/
// lambda parameter scope built by symbols.BuildLocalScopes, or the global
// scope for everything else), re-typing declaration/assignment values
// against their already-computed signature type from phase one.
func (c *Checker) typeBodies() {
	for _, ref := range c.Model.Items {
		data := c.itemData(ref)

		switch ref.Kind {
		case hir.ItemDeclaration:
			d := c.Model.Declarations.Get(ref.Index)
			if d.Body == hir.NoIndex {
				continue
			}

			declared := c.Sigs.Vars[ref].Type
			got := c.typeExpr(ref, d.Body)
			c.checkAssignable(ref, d.Body, declared, got)

		case hir.ItemAssignment:
			a := c.Model.Assignments.Get(ref.Index)
			c.typeExpr(ref, a.Value)

		case hir.ItemConstraint:
			cn := c.Model.Constraints.Get(ref.Index)
			got := c.typeExpr(ref, cn.Expr)
			c.checkAssignable(ref, cn.Expr, c.Interner.Builtins().VarBool, got)

		case hir.ItemOutput:
			o := c.Model.Outputs.Get(ref.Index)
			c.typeExpr(ref, o.Expr)

		case hir.ItemSolve:
			sv := c.Model.Solves.Get(ref.Index)
			if sv.Objective != hir.NoIndex {
				c.typeExpr(ref, sv.Objective)
			}

		case hir.ItemFunction:
			f := c.Model.Functions.Get(ref.Index)
			if f.Body == hir.NoIndex {
				continue
			}

			scope, ok := c.Table.ScopeOf[symbols.ScopeOwner{Item: ref}]
			if !ok {
				scope = c.Table.Global
			}

			entry := c.Sigs.Functions[ref]
			got := c.typeExprInScope(ref, scope, f.Body)
			c.checkAssignable(ref, f.Body, entry.Return, got)
		}

		_ = data
	}
}

func (c *Checker) checkAssignable(ref hir.ItemRef, expr hir.ExprIdx, want, got types.TypeID) {
	if want == types.NoType || got == types.NoType {
		return
	}

	if !c.Interner.Subtype(got, want) {
		c.report(diag.TypeMismatch, c.spanOf(ref, expr), "type mismatch: expected "+c.Interner.Lookup(want).Kind.String()+", found "+c.Interner.Lookup(got).Kind.String())
	}
}

// typeExpr types idx starting from ref's global/default scope.
func (c *Checker) typeExpr(ref hir.ItemRef, idx hir.ExprIdx) types.TypeID {
	return c.typeExprInScope(ref, c.Table.Global, idx)
}

func (c *Checker) typeExprInScope(ref hir.ItemRef, scope symbols.ScopeID, idx hir.ExprIdx) types.TypeID {
	if idx == hir.NoIndex {
		return types.NoType
	}

	if t, ok := c.ExprTypes[IdentRef{Item: ref, Expr: idx}]; ok {
		return t
	}

	ty := c.synthesize(ref, scope, idx)
	c.ExprTypes[IdentRef{Item: ref, Expr: idx}] = ty

	return ty
}

func (c *Checker) synthesize(ref hir.ItemRef, scope symbols.ScopeID, idx hir.ExprIdx) types.TypeID {
	data := c.itemData(ref)
	e := data.Exprs.Get(idx)
	b := c.Interner.Builtins()

	switch e.Kind {
	case hir.EIntLit:
		return b.ParInt
	case hir.EFloatLit:
		return b.ParFloat
	case hir.EBoolLit:
		return b.ParBool
	case hir.EStringLit:
		return b.ParString
	case hir.EAbsent:
		return c.Interner.MakeOpt(b.Bottom)
	case hir.EInfinity:
		return b.ParInt
	case hir.EIdent:
		return c.typeIdent(ref, scope, idx, e.Name)
	case hir.ESetLit:
		return c.typeContainer(ref, scope, e.Elems, true)
	case hir.EArrayLit:
		return c.typeArrayLit(ref, scope, e.Elems)
	case hir.ETupleLit:
		fields := make([]types.TypeID, len(e.Elems))
		for i, el := range e.Elems {
			fields[i] = c.typeExprInScope(ref, scope, el)
		}

		return c.Interner.Tuple(fields...)
	case hir.ERecordLit:
		fields := make([]types.Field, len(e.Elems))
		for i, el := range e.Elems {
			name := ""
			if i < len(e.FieldNames) {
				name = e.FieldNames[i]
			}

			fields[i] = types.Field{Name: name, Type: c.typeExprInScope(ref, scope, el)}
		}

		return c.Interner.Record(fields)
	case hir.EArrayAccess:
		return c.typeArrayAccess(ref, scope, e)
	case hir.EComprehension:
		return c.typeComprehension(ref, scope, idx, e)
	case hir.EIfThenElse:
		return c.typeIfThenElse(ref, scope, e)
	case hir.ECall:
		return c.typeCall(ref, scope, idx, e)
	case hir.ECase:
		return c.typeCase(ref, scope, idx, e)
	case hir.ELet:
		return c.typeLet(ref, scope, idx, e)
	case hir.ETupleAccess:
		return c.typeTupleAccess(ref, scope, e)
	case hir.ERecordAccess:
		return c.typeRecordAccess(ref, scope, e)
	case hir.ELambda:
		return c.typeLambda(ref, scope, idx, e)
	default:
		return b.Error
	}
}

func (c *Checker) typeIdent(ref hir.ItemRef, scope symbols.ScopeID, idx hir.ExprIdx, name string) types.TypeID {
	ids, ok := c.Table.Lookup(scope, name)
	if !ok {
		c.report(diag.ScopeUndefinedIdentifier, c.spanOf(ref, idx), "undefined identifier \""+name+"\"")

		return c.Interner.Builtins().Error
	}

	sym := c.Table.Symbol(ids[len(ids)-1])
	c.Resolved[IdentRef{Item: ref, Expr: idx}] = ids[len(ids)-1]

	return c.symbolType(sym)
}

func (c *Checker) symbolType(sym *symbols.Symbol) types.TypeID {
	switch sym.Kind {
	case symbols.SymVariable:
		switch sym.Item.Kind {
		case hir.ItemDeclaration:
			return c.declType(sym.Item)
		case hir.ItemAssignment:
			return c.assignmentType(sym.Item)
		default: // a let-bound name; sym.Pattern is its ELet.Decls index
			if t, ok := c.LetTypes[IdentRef{Item: sym.Item, Expr: sym.Pattern}]; ok {
				return t
			}

			return c.Interner.Builtins().Error
		}
	case symbols.SymParam:
		entry := c.functionEntry(sym.Item)
		if int(sym.Pattern) < len(entry.Params) {
			return entry.Params[sym.Pattern]
		}

		return c.Interner.Builtins().Error
	case symbols.SymPatternBinding:
		if t, ok := c.PatternTypes[IdentRef{Item: sym.Item, Expr: sym.Pattern}]; ok {
			return t
		}

		return c.Interner.Builtins().Error
	case symbols.SymEnum:
		return c.enumType(sym.Item)
	case symbols.SymEnumCtor:
		return c.enumType(sym.Item)
	case symbols.SymFunction, symbols.SymAnnotation:
		entry := c.functionEntry(sym.Item)

		return c.Interner.Op(entry.Return, entry.Params...)
	case symbols.SymTypeAlias:
		return c.aliasType(sym.Item)
	default:
		return c.Interner.Builtins().Error
	}
}

func (c *Checker) typeContainer(ref hir.ItemRef, scope symbols.ScopeID, elems []hir.ExprIdx, isSet bool) types.TypeID {
	elem := c.Interner.Builtins().Error

	for i, el := range elems {
		t := c.typeExprInScope(ref, scope, el)
		if i == 0 {
			elem = t

			continue
		}

		if j, ok := c.Interner.Join(elem, t); ok {
			elem = j
		}
	}

	if len(elems) == 0 {
		elem = c.Interner.Builtins().ParInt
	}

	if isSet {
		d := c.Interner.Lookup(elem)
		d.Set = types.IsSet

		return c.Interner.Intern(d)
	}

	return elem
}

func (c *Checker) typeArrayLit(ref hir.ItemRef, scope symbols.ScopeID, elems []hir.ExprIdx) types.TypeID {
	elem := c.typeContainer(ref, scope, elems, false)

	return c.Interner.Array([]types.TypeID{c.Interner.Builtins().ParInt}, elem)
}

func (c *Checker) typeArrayAccess(ref hir.ItemRef, scope symbols.ScopeID, e hir.Expr) types.TypeID {
	base := c.typeExprInScope(ref, scope, e.Base)

	for _, ix := range e.Indices {
		c.typeExprInScope(ref, scope, ix)
	}

	d := c.Interner.Lookup(base)
	if d.Kind != types.KindArray {
		return c.Interner.Builtins().Error
	}

	return d.Element
}

func (c *Checker) typeIfThenElse(ref hir.ItemRef, scope symbols.ScopeID, e hir.Expr) types.TypeID {
	result := c.typeExprInScope(ref, scope, e.Else)

	for i, cond := range e.Conds {
		c.typeExprInScope(ref, scope, cond)

		t := c.typeExprInScope(ref, scope, e.Thens[i])
		if j, ok := c.Interner.Join(result, t); ok {
			result = j
		}
	}

	return result
}

func (c *Checker) typeTupleAccess(ref hir.ItemRef, scope symbols.ScopeID, e hir.Expr) types.TypeID {
	base := c.typeExprInScope(ref, scope, e.Base)
	d := c.Interner.Lookup(base)

	if d.Kind != types.KindTuple || e.TupleIndex < 1 || e.TupleIndex > len(d.Fields) {
		return c.Interner.Builtins().Error
	}

	return d.Fields[e.TupleIndex-1].Type
}

func (c *Checker) typeRecordAccess(ref hir.ItemRef, scope symbols.ScopeID, e hir.Expr) types.TypeID {
	base := c.typeExprInScope(ref, scope, e.Base)
	d := c.Interner.Lookup(base)

	if d.Kind != types.KindRecord {
		return c.Interner.Builtins().Error
	}

	for _, f := range d.Fields {
		if f.Name == e.FieldName {
			return f.Type
		}
	}

	return c.Interner.Builtins().Error
}
