package passes

import (
	"fmt"
	"strings"

	"github.com/shackle-rs/mzc/internal/tir"
	"github.com/shackle-rs/mzc/internal/transform"
	"github.com/shackle-rs/mzc/internal/types"
)

// TypeSpecialise implements §4.14's monomorphisation pass: for each call
// site of a generic function (one whose signature mentions a type-inst
// variable), unify the declared parameter types against the argument
// types actually supplied, and emit a concrete copy of the function body
// the first time that argument-type tuple is seen. Specialisation is
// memoised by the substituted parameter-type tuple, matching the spec's
// "names are qualified by the concrete parameter type tuple".
func TypeSpecialise(ctx *Context, m *tir.Model) (*tir.Model, error) {
	dst := tir.NewModel()
	ts := &typeSpecialiseFolder{
		ctx:   ctx,
		dst:   dst,
		memo:  map[tir.ItemRef]map[string]tir.ItemRef{},
		bySrc: map[tir.ItemRef]tir.Function{},
	}

	for _, ref := range m.Items {
		if ref.Kind == tir.ItemFunction {
			fn := m.Functions.Get(ref.Index)
			if functionIsGeneric(ctx.Interner, fn) {
				ts.bySrc[ref] = fn
			}
		}
	}

	// Driven directly rather than through transform.Run: FoldExpr needs
	// to add whole new Function items to dst mid-fold (the specialised
	// copies), which Run's per-item dispatch loop has no hook for.
	for _, ref := range m.Items {
		switch ref.Kind {
		case tir.ItemAnnotation:
			dst.AddAnnotation(ts.FoldAnnotation(ts, dst, m.Annotations.Get(ref.Index)))
		case tir.ItemAssignment:
			dst.AddAssignment(ts.FoldAssignment(ts, dst, m.Assignments.Get(ref.Index)))
		case tir.ItemConstraint:
			dst.AddConstraint(ts.FoldConstraint(ts, dst, m.Constraints.Get(ref.Index)))
		case tir.ItemDeclaration:
			dst.AddDeclaration(ts.FoldDeclaration(ts, dst, m.Declarations.Get(ref.Index)))
		case tir.ItemEnumeration:
			dst.AddEnumeration(ts.FoldEnumeration(ts, dst, m.Enumerations.Get(ref.Index)))
		case tir.ItemFunction:
			dst.AddFunction(ts.FoldFunction(ts, dst, m.Functions.Get(ref.Index)))
		case tir.ItemOutput:
			dst.AddOutput(ts.FoldOutput(ts, dst, m.Outputs.Get(ref.Index)))
		case tir.ItemSolve:
			dst.AddSolve(ts.FoldSolve(ts, dst, m.Solves.Get(ref.Index)))
		case tir.ItemTypeAlias:
			dst.AddTypeAlias(ts.FoldTypeAlias(ts, dst, m.TypeAliases.Get(ref.Index)))
		}
	}

	for ref, specs := range ts.memo {
		dstFn := dst.Functions.Get(ref.Index)
		dstFn.Specializations = specs
		dst.Functions.Set(ref.Index, dstFn)
	}

	return dst, nil
}

type typeSpecialiseFolder struct {
	transform.Base

	ctx *Context
	dst *tir.Model

	// bySrc holds every generic function keyed by its ORIGINAL ItemRef —
	// Base's structural copy preserves item indices 1:1 (no item is
	// dropped or reordered by this pass' own item loop), so the same ref
	// also addresses the folded copy in dst.
	bySrc map[tir.ItemRef]tir.Function

	// memo maps a generic function's ref to its concrete-type-tuple key to
	// the specialised copy already emitted for it.
	memo map[tir.ItemRef]map[string]tir.ItemRef
}

func (ts *typeSpecialiseFolder) FoldExpr(self transform.Folder, src, dst *tir.ItemData, idx tir.ExprIdx) tir.ExprIdx {
	e := src.Exprs.Get(idx)

	if e.Kind == tir.ECall {
		if fn, ok := ts.bySrc[e.Callee]; ok {
			specRef, ok := ts.specialise(e.Callee, fn, src, e.Elems)
			if ok {
				out := ts.Base.FoldExpr(self, src, dst, idx)
				n := dst.Exprs.Get(out)
				n.Callee = specRef
				dst.Exprs.Set(out, n)

				return out
			}
		}
	}

	return ts.Base.FoldExpr(self, src, dst, idx)
}

// specialise returns the ItemRef of the concrete specialisation of fn for
// the argument types found at callArgs (indexed into src), synthesising
// and memoising one if this is the first call site to need it.
func (ts *typeSpecialiseFolder) specialise(fnRef tir.ItemRef, fn tir.Function, src *tir.ItemData, callArgs []tir.ExprIdx) (tir.ItemRef, bool) {
	if len(callArgs) != len(fn.Params) {
		return tir.ItemRef{}, false
	}

	in := ts.ctx.Interner
	bind := types.Bind{}

	for i, p := range fn.Params {
		argType := src.Exprs.Get(callArgs[i]).Type
		if !in.Unify(p.Type, argType, bind) {
			return tir.ItemRef{}, false
		}
	}

	concreteParams := make([]types.TypeID, len(fn.Params))
	for i, p := range fn.Params {
		concreteParams[i] = in.Substitute(p.Type, bind)
	}

	key := typeTupleKey(concreteParams)

	if existing, ok := ts.memo[fnRef][key]; ok {
		return existing, true
	}

	specBody := substituteItemData(in, &fn.ItemData, bind)
	spec := fn
	spec.ItemData = *specBody
	spec.ReturnType = in.Substitute(fn.ReturnType, bind)
	spec.Params = make([]tir.Param, len(fn.Params))

	for i, p := range fn.Params {
		spec.Params[i] = tir.Param{Type: concreteParams[i], Domain: p.Domain, Name: p.Name}
	}
	// The memoisation key already records the concrete instantiation; the
	// human-readable mangled form is name-mangle's job, run later in the
	// pipeline, so Name is left untouched here.

	newRef := ts.dst.AddFunction(spec)

	if ts.memo[fnRef] == nil {
		ts.memo[fnRef] = map[string]tir.ItemRef{}
	}

	ts.memo[fnRef][key] = newRef

	return newRef, true
}

func typeTupleKey(ts []types.TypeID) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = fmt.Sprintf("%d", t)
	}

	return strings.Join(parts, ",")
}

// functionIsGeneric reports whether any parameter or the return type of fn
// mentions a type-inst variable.
func functionIsGeneric(in *types.Interner, fn tir.Function) bool {
	if mentionsTyVar(in, fn.ReturnType, map[types.TypeID]bool{}) {
		return true
	}

	for _, p := range fn.Params {
		if mentionsTyVar(in, p.Type, map[types.TypeID]bool{}) {
			return true
		}
	}

	return false
}

func mentionsTyVar(in *types.Interner, t types.TypeID, seen map[types.TypeID]bool) bool {
	if t == types.NoType || seen[t] {
		return false
	}

	seen[t] = true
	d := in.Lookup(t)

	switch d.Kind {
	case types.KindTyVar:
		return true
	case types.KindArray:
		for _, ix := range d.Index {
			if mentionsTyVar(in, ix, seen) {
				return true
			}
		}

		return mentionsTyVar(in, d.Element, seen)
	case types.KindTuple, types.KindRecord:
		for _, f := range d.Fields {
			if mentionsTyVar(in, f.Type, seen) {
				return true
			}
		}

		return false
	case types.KindOp:
		if mentionsTyVar(in, d.Result, seen) {
			return true
		}

		for _, p := range d.Params {
			if mentionsTyVar(in, p, seen) {
				return true
			}
		}

		return false
	default:
		return false
	}
}

// substituteItemData deep-copies src's private arenas, rewriting every
// node's Type through bind. Allocation order exactly mirrors src's, so
// every ExprIdx/PatternIdx/DomainIdx the copy's own nodes reference stays
// valid without a ReplacementMap.
func substituteItemData(in *types.Interner, src *tir.ItemData, bind types.Bind) *tir.ItemData {
	out := tir.NewItemData(src.Span)

	for idx, e := range src.Exprs.All() {
		e.Type = in.Substitute(e.Type, bind)
		got := out.Exprs.Alloc(e)

		if got != idx {
			panic("passes: specialised expr arena diverged from source allocation order")
		}
	}

	for idx, p := range src.Patterns.All() {
		p.Type = in.Substitute(p.Type, bind)
		got := out.Patterns.Alloc(p)

		if got != idx {
			panic("passes: specialised pattern arena diverged from source allocation order")
		}
	}

	for idx, d := range src.Domains.All() {
		d.Type = in.Substitute(d.Type, bind)
		got := out.Domains.Alloc(d)

		if got != idx {
			panic("passes: specialised domain arena diverged from source allocation order")
		}
	}

	for k, v := range src.Annotations {
		out.Annotations[k] = append([]tir.ExprIdx(nil), v...)
	}

	return &out
}
