package passes

import (
	"fmt"

	"github.com/shackle-rs/mzc/internal/arena"
	"github.com/shackle-rs/mzc/internal/tir"
	"github.com/shackle-rs/mzc/internal/transform"
)

// Decapture implements §4.14's decapture pass (the "capturing-fn"
// transform): an ELambda that refers to a local binding from its
// enclosing item — a capture — is promoted to a brand-new top-level
// Function, with each captured value appended as an extra trailing
// parameter, and the ELambda node is replaced in place with an
// ECallable naming that new function.
//
// A lambda with no captures is left untouched (it is already
// self-contained and needs no promotion). Capture detection does not
// descend into a nested ELambda's own body: a capturing lambda nested
// inside another capturing lambda is promoted only one level per run of
// this pass — a second run would be required to decapture the inner one
// too. This tree runs the pass once per §4.14's fixed pipeline, so a
// doubly-nested capturing lambda is a known, documented scope limit
// rather than a fixpoint loop.
func Decapture(ctx *Context, m *tir.Model) (*tir.Model, error) {
	dst := tir.NewModel()

	dc := &decaptureFolder{ctx: ctx, dst: dst, lambdaCount: 0}

	for _, ref := range m.Items {
		switch ref.Kind {
		case tir.ItemAnnotation:
			dst.AddAnnotation(m.Annotations.Get(ref.Index))
		case tir.ItemAssignment:
			a := m.Assignments.Get(ref.Index)
			dc.itemRef = ref
			dst.AddAssignment(dc.foldAssignment(a))
		case tir.ItemConstraint:
			c := m.Constraints.Get(ref.Index)
			dc.itemRef = ref
			dst.AddConstraint(dc.foldConstraint(c))
		case tir.ItemDeclaration:
			d := m.Declarations.Get(ref.Index)
			dc.itemRef = ref
			dst.AddDeclaration(dc.foldDeclaration(d))
		case tir.ItemEnumeration:
			dst.AddEnumeration(m.Enumerations.Get(ref.Index))
		case tir.ItemFunction:
			fn := m.Functions.Get(ref.Index)
			dc.itemRef = ref
			dst.AddFunction(dc.foldFunction(fn))
		case tir.ItemOutput:
			dst.AddOutput(m.Outputs.Get(ref.Index))
		case tir.ItemSolve:
			dst.AddSolve(m.Solves.Get(ref.Index))
		case tir.ItemTypeAlias:
			dst.AddTypeAlias(m.TypeAliases.Get(ref.Index))
		}
	}

	return dst, nil
}

type decaptureFolder struct {
	transform.Base

	ctx         *Context
	dst         *tir.Model
	itemRef     tir.ItemRef
	lambdaCount int
}

func (dc *decaptureFolder) foldAssignment(a tir.Assignment) tir.Assignment {
	out := tir.NewItemData(a.Span)
	a.Value = dc.FoldExpr(dc, &a.ItemData, &out, a.Value)
	a.ItemData = out

	return a
}

func (dc *decaptureFolder) foldConstraint(c tir.Constraint) tir.Constraint {
	out := tir.NewItemData(c.Span)
	c.Expr = dc.FoldExpr(dc, &c.ItemData, &out, c.Expr)
	c.Annotations = foldExprListFor(dc, &c.ItemData, &out, c.Annotations)
	c.ItemData = out

	return c
}

func (dc *decaptureFolder) foldDeclaration(d tir.Declaration) tir.Declaration {
	out := tir.NewItemData(d.Span)
	d.Body = dc.FoldExpr(dc, &d.ItemData, &out, d.Body)
	d.Domain = dc.FoldDomain(dc, &d.ItemData, &out, d.Domain)
	d.Annotations = foldExprListFor(dc, &d.ItemData, &out, d.Annotations)
	d.ItemData = out

	return d
}

func (dc *decaptureFolder) foldFunction(fn tir.Function) tir.Function {
	out := tir.NewItemData(fn.Span)
	fn.Body = dc.FoldExpr(dc, &fn.ItemData, &out, fn.Body)
	fn.Annotations = foldExprListFor(dc, &fn.ItemData, &out, fn.Annotations)
	fn.ItemData = out

	return fn
}

func (dc *decaptureFolder) FoldExpr(self transform.Folder, src, dst *tir.ItemData, idx tir.ExprIdx) tir.ExprIdx {
	if idx == arena.NoIndex {
		return arena.NoIndex
	}

	e := src.Exprs.Get(idx)

	if e.Kind != tir.ELambda {
		return dc.Base.FoldExpr(self, src, dst, idx)
	}

	ownPattern := map[uint32]bool{}
	for _, p := range e.Params {
		ownPattern[uint32(p)] = true
	}

	var captured []tir.ExprIdx
	capturedSeen := map[uint32]bool{}
	collectCaptures(src, e.Body, dc.itemRef, ownPattern, capturedSeen, &captured)

	if len(captured) == 0 {
		return dc.Base.FoldExpr(self, src, dst, idx)
	}

	dc.lambdaCount++

	newData := tir.NewItemData(src.Span)

	for pidx, p := range src.Patterns.All() {
		got := newData.Patterns.Alloc(p)
		if got != pidx {
			panic("passes: decapture pattern-arena copy diverged")
		}
	}

	for didx, d := range src.Domains.All() {
		got := newData.Domains.Alloc(d)
		if got != didx {
			panic("passes: decapture domain-arena copy diverged")
		}
	}

	ownParams := make([]tir.Param, len(e.Params))
	for i, p := range e.Params {
		ownParams[i] = tir.Param{Type: e.ParamTypes[i], Name: patternName(src, p)}
	}

	captureArgPos := map[uint32]int{}
	captureParams := make([]tir.Param, len(captured))

	for i, cidx := range captured {
		ce := src.Exprs.Get(cidx)
		captureParams[i] = tir.Param{Type: ce.Type, Name: fmt.Sprintf("capture_%d", i)}
		captureArgPos[ce.Ident.Local] = len(ownParams) + i
	}

	allParams := append(append([]tir.Param(nil), ownParams...), captureParams...)

	selfRef := tir.ItemRef{Kind: tir.ItemFunction, Index: uint32(dc.dst.Functions.Len() + 1)}

	bf := &decaptureBodyFolder{fromItem: dc.itemRef, toItem: selfRef, ownPattern: ownPattern, captureArgPos: captureArgPos}
	newBody := bf.FoldExpr(bf, src, &newData, e.Body)

	newFn := tir.Function{
		ItemData:   newData,
		FnKind:     tir.FnPlain,
		Name:       fmt.Sprintf("mzn_lambda_%d", dc.lambdaCount),
		Params:     allParams,
		ReturnType: e.RetType,
		Body:       newBody,
	}

	newRef := dc.dst.AddFunction(newFn)
	if newRef != selfRef {
		panic("passes: decapture self-reference precomputation diverged")
	}

	return dst.Exprs.Alloc(tir.Expr{
		Kind: tir.ECallable, Type: e.Type, CallableKind: tir.CallableFunction, CallableItem: newRef,
		Origin: e.Origin,
	})
}

// decaptureBodyFolder copies a promoted lambda's body into its new home
// item, remapping every ResolvedLocal that pointed at the enclosing item:
// a captured local becomes a reference to its new trailing parameter, the
// lambda's own params keep their PatternIdx-based Local unchanged (the
// Patterns arena was copied index-for-index into the new item).
type decaptureBodyFolder struct {
	transform.Base

	fromItem      tir.ItemRef
	toItem        tir.ItemRef
	ownPattern    map[uint32]bool
	captureArgPos map[uint32]int
}

func (bf *decaptureBodyFolder) FoldExpr(self transform.Folder, src, dst *tir.ItemData, idx tir.ExprIdx) tir.ExprIdx {
	if idx == arena.NoIndex {
		return arena.NoIndex
	}

	e := src.Exprs.Get(idx)

	if e.Kind == tir.EIdent && e.Ident.Kind == tir.ResolvedLocal && e.Ident.Item == bf.fromItem {
		if pos, ok := bf.captureArgPos[e.Ident.Local]; ok {
			return dst.Exprs.Alloc(tir.Expr{
				Kind: tir.EIdent, Type: e.Type,
				Ident:  tir.ResolvedIdentifier{Kind: tir.ResolvedLocal, Item: bf.toItem, Local: uint32(pos)},
				Origin: e.Origin,
			})
		}

		if bf.ownPattern[e.Ident.Local] {
			return dst.Exprs.Alloc(tir.Expr{
				Kind: tir.EIdent, Type: e.Type,
				Ident:  tir.ResolvedIdentifier{Kind: tir.ResolvedLocal, Item: bf.toItem, Local: e.Ident.Local},
				Origin: e.Origin,
			})
		}
	}

	return bf.Base.FoldExpr(self, src, dst, idx)
}

// collectCaptures finds every distinct ResolvedLocal, scoped to itemRef and
// not one of the lambda's own params, reachable from idx — without
// descending into a nested ELambda's own body (see Decapture's doc
// comment).
func collectCaptures(data *tir.ItemData, idx tir.ExprIdx, itemRef tir.ItemRef, ownPattern map[uint32]bool, seen map[uint32]bool, out *[]tir.ExprIdx) {
	if idx == arena.NoIndex {
		return
	}

	e := data.Exprs.Get(idx)

	if e.Kind == tir.EIdent && e.Ident.Kind == tir.ResolvedLocal && e.Ident.Item == itemRef && !ownPattern[e.Ident.Local] {
		if !seen[e.Ident.Local] {
			seen[e.Ident.Local] = true
			*out = append(*out, idx)
		}

		return
	}

	if e.Kind == tir.ELambda {
		return
	}

	collectCaptures(data, e.Base, itemRef, ownPattern, seen, out)
	collectCaptures(data, e.Scrutinee, itemRef, ownPattern, seen, out)
	collectCaptures(data, e.Else, itemRef, ownPattern, seen, out)
	collectCaptures(data, e.Body, itemRef, ownPattern, seen, out)

	for _, c := range e.Elems {
		collectCaptures(data, c, itemRef, ownPattern, seen, out)
	}

	for _, c := range e.Indices {
		collectCaptures(data, c, itemRef, ownPattern, seen, out)
	}

	for _, c := range e.Conds {
		collectCaptures(data, c, itemRef, ownPattern, seen, out)
	}

	for _, c := range e.Thens {
		collectCaptures(data, c, itemRef, ownPattern, seen, out)
	}

	for _, g := range e.Generators {
		collectCaptures(data, g.Source, itemRef, ownPattern, seen, out)
		collectCaptures(data, g.Where, itemRef, ownPattern, seen, out)
	}

	for _, a := range e.Arms {
		collectCaptures(data, a.Result, itemRef, ownPattern, seen, out)
	}

	for _, c := range e.Annotations {
		collectCaptures(data, c, itemRef, ownPattern, seen, out)
	}
}

func patternName(data *tir.ItemData, idx tir.PatternIdx) string {
	if idx == arena.NoIndex {
		return ""
	}

	p := data.Patterns.Get(idx)
	if p.Kind == tir.PIdent {
		return p.Name
	}

	return ""
}
