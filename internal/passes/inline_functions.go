package passes

import (
	"github.com/shackle-rs/mzc/internal/arena"
	"github.com/shackle-rs/mzc/internal/tir"
	"github.com/shackle-rs/mzc/internal/transform"
)

// InlineFunctions implements §4.14's inline-functions pass.
//
// A function annotated `mzn_inline` or `mzn_inline_call_by_name` is a
// candidate at every call site; a call whose arguments are all bare
// identifiers also qualifies without either annotation (the "macro-call"
// heuristic). Because this language has no side effects or mutation,
// call-by-value and call-by-name are observationally identical — both
// reduce to substituting the (already-evaluated) argument expression
// directly at each parameter occurrence, the only difference is how many
// times a non-trivial argument's evaluation is duplicated textually, which
// has no effect on the result. This pass therefore applies the same
// substitution for both annotations, and picks it automatically for
// macro-call sites.
//
// Substitution is restricted to bodies with no internal let/comprehension/
// case binding of their own: ResolvedLocal.Local's meaning is only defined
// relative to the enclosing binding construct it names, and this tree does
// not carry enough information at this stage to safely re-host an inner
// binding construct's own locals under a new owning item. A call to a
// function whose body contains such a construct is left uninlined —
// documented in DESIGN.md as this pass's scope limit.
func InlineFunctions(ctx *Context, m *tir.Model) (*tir.Model, error) {
	inlinable := map[tir.ItemRef]bool{}

	for _, ref := range m.Items {
		if ref.Kind != tir.ItemFunction {
			continue
		}

		fn := m.Functions.Get(ref.Index)

		for _, annIdx := range fn.Annotations {
			if name, ok := annotationName(m, &fn.ItemData, annIdx); ok {
				if name == "mzn_inline" || name == "mzn_inline_call_by_name" {
					inlinable[ref] = true
				}
			}
		}
	}

	inl := &inlineCallFolder{ctx: ctx, src: m, inlinable: inlinable}

	return transform.Run(inl, m), nil
}

func annotationName(m *tir.Model, data *tir.ItemData, idx tir.ExprIdx) (string, bool) {
	e := data.Exprs.Get(idx)
	if e.Kind == tir.EIdent && e.Ident.Kind == tir.ResolvedAnnotation {
		return m.Annotations.Get(e.Ident.Item.Index).Name, true
	}

	if e.Kind == tir.ECall && e.Callee.Kind == tir.ItemAnnotation {
		return m.Annotations.Get(e.Callee.Index).Name, true
	}

	return "", false
}

type inlineCallFolder struct {
	transform.Base

	ctx       *Context
	src       *tir.Model
	inlinable map[tir.ItemRef]bool
}

func (inl *inlineCallFolder) FoldExpr(self transform.Folder, src, dst *tir.ItemData, idx tir.ExprIdx) tir.ExprIdx {
	if idx == arena.NoIndex {
		return arena.NoIndex
	}

	e := src.Exprs.Get(idx)

	if e.Kind == tir.ECall && e.Callee.Kind == tir.ItemFunction {
		fn := inl.src.Functions.Get(e.Callee.Index)

		allIdents := true
		for _, a := range e.Elems {
			if src.Exprs.Get(a).Kind != tir.EIdent {
				allIdents = false

				break
			}
		}

		if (inl.inlinable[e.Callee] || allIdents) && fn.Body != arena.NoIndex && !exprTreeHasBinding(&fn.ItemData, fn.Body) {
			args := make([]tir.ExprIdx, len(e.Elems))
			for i, a := range e.Elems {
				args[i] = inl.FoldExpr(self, src, dst, a)
			}

			bf := &inlineBodyFolder{fnRef: e.Callee, args: args}

			return bf.FoldExpr(bf, &fn.ItemData, dst, fn.Body)
		}
	}

	return inl.Base.FoldExpr(self, src, dst, idx)
}

// inlineBodyFolder copies a to-be-inlined function's body into the call
// site's own item, substituting each parameter reference with the already
// folded argument expression. It reuses transform.Base's ordinary
// structural recursion for every other node: Base.FoldExpr only ever reads
// from src and allocates into dst, so it works unmodified across two
// different items' arenas.
type inlineBodyFolder struct {
	transform.Base

	fnRef tir.ItemRef
	args  []tir.ExprIdx
}

func (bf *inlineBodyFolder) FoldExpr(self transform.Folder, src, dst *tir.ItemData, idx tir.ExprIdx) tir.ExprIdx {
	if idx == arena.NoIndex {
		return arena.NoIndex
	}

	e := src.Exprs.Get(idx)

	if e.Kind == tir.EIdent && e.Ident.Kind == tir.ResolvedLocal && e.Ident.Item == bf.fnRef && int(e.Ident.Local) < len(bf.args) {
		return bf.args[e.Ident.Local]
	}

	return bf.Base.FoldExpr(self, src, dst, idx)
}

// exprTreeHasBinding reports whether the subtree rooted at idx introduces
// any of its own let/comprehension/case bindings.
func exprTreeHasBinding(data *tir.ItemData, idx tir.ExprIdx) bool {
	if idx == arena.NoIndex {
		return false
	}

	e := data.Exprs.Get(idx)

	switch e.Kind {
	case tir.ELet, tir.EComprehension, tir.ECase:
		return true
	}

	if exprTreeHasBinding(data, e.Base) || exprTreeHasBinding(data, e.Scrutinee) || exprTreeHasBinding(data, e.Else) || exprTreeHasBinding(data, e.Body) {
		return true
	}

	for _, c := range e.Elems {
		if exprTreeHasBinding(data, c) {
			return true
		}
	}

	for _, c := range e.Indices {
		if exprTreeHasBinding(data, c) {
			return true
		}
	}

	for _, c := range e.Conds {
		if exprTreeHasBinding(data, c) {
			return true
		}
	}

	for _, c := range e.Thens {
		if exprTreeHasBinding(data, c) {
			return true
		}
	}

	for _, c := range e.Annotations {
		if exprTreeHasBinding(data, c) {
			return true
		}
	}

	return false
}
