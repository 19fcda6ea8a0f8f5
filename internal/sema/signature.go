package sema

import (
	"github.com/shackle-rs/mzc/internal/diag"
	"github.com/shackle-rs/mzc/internal/hir"
	"github.com/shackle-rs/mzc/internal/types"
)

// computeSignatures is §4.10's first phase: a signature for every top-level
// item. Declarations/assignments/type aliases/enums are computed on first
// use (lazily, via enumType/aliasType/declType's own memoization) so that a
// domain expression naming a later-declared alias or enum still resolves;
// functions and annotations, which introduce no forward-reference problem
// for their own signature (their param/return types are never `any`-infer-
// from-body), are computed eagerly in source order.
func (c *Checker) computeSignatures() {
	for _, ref := range c.Model.Items {
		switch ref.Kind {
		case hir.ItemDeclaration:
			c.declType(ref)
		case hir.ItemAssignment:
			c.assignmentType(ref)
		case hir.ItemEnumeration:
			c.enumType(ref)
		case hir.ItemTypeAlias:
			c.aliasType(ref)
		case hir.ItemFunction:
			c.functionEntry(ref)
		case hir.ItemAnnotation:
			c.annotationEntry(ref)
		}
	}
}

func (c *Checker) declType(ref hir.ItemRef) types.TypeID {
	if v, ok := c.Sigs.Vars[ref]; ok {
		return v.Type
	}

	if c.cyclicGuard(ref) {
		return types.NoType
	}

	d := c.Model.Declarations.Get(ref.Index)
	data := c.itemData(ref)

	var ty types.TypeID

	if d.Type != hir.NoIndex && data.Types.Get(d.Type).Kind == hir.TAny {
		if d.Body != hir.NoIndex {
			ty = c.typeExpr(ref, d.Body)
		} else {
			ty = c.Interner.Builtins().Error
		}
	} else {
		ty = c.resolveTypeRef(ref, data, d.Type)
	}

	c.Sigs.Vars[ref] = VarEntry{Type: ty, Item: ref}
	c.endCyclicGuard(ref)

	return ty
}

func (c *Checker) assignmentType(ref hir.ItemRef) types.TypeID {
	if v, ok := c.Sigs.Vars[ref]; ok {
		return v.Type
	}

	if c.cyclicGuard(ref) {
		return types.NoType
	}

	a := c.Model.Assignments.Get(ref.Index)
	ty := c.typeExpr(ref, a.Value)

	c.Sigs.Vars[ref] = VarEntry{Type: ty, Item: ref}
	c.endCyclicGuard(ref)

	return ty
}

func (c *Checker) enumType(ref hir.ItemRef) types.TypeID {
	if v, ok := c.Sigs.Vars[ref]; ok {
		return v.Type
	}

	e := c.Model.Enumerations.Get(ref.Index)
	ty := c.Interner.Enum(e.Name)
	c.Sigs.Vars[ref] = VarEntry{Type: ty, Item: ref}

	return ty
}

func (c *Checker) aliasType(ref hir.ItemRef) types.TypeID {
	if v, ok := c.Sigs.Vars[ref]; ok {
		return v.Type
	}

	if c.cyclicGuard(ref) {
		return c.Interner.Builtins().Error
	}

	a := c.Model.TypeAliases.Get(ref.Index)
	data := c.itemData(ref)
	ty := c.resolveTypeRef(ref, data, a.Type)

	c.Sigs.Vars[ref] = VarEntry{Type: ty, Item: ref}
	c.endCyclicGuard(ref)

	return ty
}

func (c *Checker) functionEntry(ref hir.ItemRef) FunctionEntry {
	if e, ok := c.Sigs.Functions[ref]; ok {
		return e
	}

	f := c.Model.Functions.Get(ref.Index)
	data := c.itemData(ref)

	params := make([]types.TypeID, len(f.Params))
	for i, p := range f.Params {
		params[i] = c.resolveTypeRef(ref, data, p.Type)
	}

	entry := FunctionEntry{
		Name: f.Name, Params: params,
		Return: c.resolveTypeRef(ref, data, f.ReturnType),
		Item:   ref, FnKind: f.FnKind,
	}

	c.Sigs.Functions[ref] = entry

	return entry
}

func (c *Checker) annotationEntry(ref hir.ItemRef) FunctionEntry {
	if e, ok := c.Sigs.Annotations[ref]; ok {
		return e
	}

	a := c.Model.Annotations.Get(ref.Index)
	data := c.itemData(ref)

	params := make([]types.TypeID, len(a.Params))
	for i, p := range a.Params {
		params[i] = c.resolveTypeRef(ref, data, p.Type)
	}

	entry := FunctionEntry{Name: a.Name, Params: params, Return: c.Interner.Builtins().ParAnn, Item: ref}
	c.Sigs.Annotations[ref] = entry

	return entry
}

// cyclicGuard reports and short-circuits a true cyclic signature dependency
// (§4.10: "a true cyclic definition is reported with span"). Returns true
// when ref is already mid-computation on the call stack.
func (c *Checker) cyclicGuard(ref hir.ItemRef) bool {
	if c.inProgress[ref] {
		c.report(diag.ScopeCyclicDefinition, c.itemData(ref).Span,
			"cyclic definition involving this item's signature")

		return true
	}

	c.inProgress[ref] = true

	return false
}

func (c *Checker) endCyclicGuard(ref hir.ItemRef) { delete(c.inProgress, ref) }
