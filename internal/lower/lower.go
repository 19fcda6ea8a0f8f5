// Package lower implements component 4.12: HIR→TIR lowering. It consumes an
// hir.Model plus the sema.Checker that already typed it, and produces a
// fresh tir.Model where every expression carries its computed type and
// every identifier has been resolved.
package lower

import (
	"github.com/shackle-rs/mzc/internal/arena"
	"github.com/shackle-rs/mzc/internal/hir"
	"github.com/shackle-rs/mzc/internal/sema"
	"github.com/shackle-rs/mzc/internal/symbols"
	"github.com/shackle-rs/mzc/internal/tir"
	"github.com/shackle-rs/mzc/internal/types"
)

// Lowerer carries the state one file's HIR→TIR pass needs: the typed
// source model, the table lowering consults to resolve identifiers the same
// way sema.Checker did, and the item-to-item mapping built incrementally as
// items are lowered (a later item's reference to an earlier one, e.g. a
// function call, needs the already-assigned tir.ItemRef).
type Lowerer struct {
	HIR   *hir.Model
	Check *sema.Checker
	Table *symbols.Table
	In    *types.Interner

	TIR *tir.Model

	itemMap map[hir.ItemRef]tir.ItemRef
}

// New constructs a Lowerer ready to run over hirModel.
func New(hirModel *hir.Model, check *sema.Checker, table *symbols.Table, in *types.Interner) *Lowerer {
	return &Lowerer{
		HIR: hirModel, Check: check, Table: table, In: in,
		TIR:     tir.NewModel(),
		itemMap: make(map[hir.ItemRef]tir.ItemRef, 64),
	}
}

// Run lowers every item of HIR into TIR in source order (§4.12: "for each
// HIR item, emits corresponding TIR items and fills in resolved
// identifiers"). It runs in two passes: the first allocates every item's
// TIR shell (so itemMap is complete before any body is lowered — a
// function calling one declared later in the file needs the callee's
// tir.ItemRef while lowering its own body), the second fills bodies in.
func (l *Lowerer) Run() *tir.Model {
	for _, ref := range l.HIR.Items {
		l.stubItem(ref)
	}

	for _, ref := range l.HIR.Items {
		l.fillItem(ref)
	}

	return l.TIR
}

func (l *Lowerer) stubItem(ref hir.ItemRef) {
	switch ref.Kind {
	case hir.ItemAnnotation:
		l.stubAnnotation(ref)
	case hir.ItemAssignment:
		a := l.HIR.Assignments.Get(ref.Index)
		l.itemMap[ref] = l.TIR.AddAssignment(tir.Assignment{ItemData: tir.NewItemData(a.Span), Name: a.Name})
	case hir.ItemConstraint:
		c := l.HIR.Constraints.Get(ref.Index)
		l.itemMap[ref] = l.TIR.AddConstraint(tir.Constraint{ItemData: tir.NewItemData(c.Span)})
	case hir.ItemDeclaration:
		l.stubDeclaration(ref)
	case hir.ItemEnumeration:
		l.lowerEnumeration(ref) // self-contained: no body to fill in a second pass
	case hir.ItemFunction:
		l.stubFunction(ref)
	case hir.ItemOutput:
		o := l.HIR.Outputs.Get(ref.Index)
		l.itemMap[ref] = l.TIR.AddOutput(tir.Output{ItemData: tir.NewItemData(o.Span), Section: o.Section})
	case hir.ItemSolve:
		sv := l.HIR.Solves.Get(ref.Index)
		l.itemMap[ref] = l.TIR.AddSolve(tir.Solve{ItemData: tir.NewItemData(sv.Span), Method: tir.SolveMethod(sv.Method)})
	case hir.ItemTypeAlias:
		l.lowerTypeAlias(ref) // self-contained
	}
}

func (l *Lowerer) fillItem(ref hir.ItemRef) {
	switch ref.Kind {
	case hir.ItemAssignment:
		l.fillAssignment(ref)
	case hir.ItemConstraint:
		l.fillConstraint(ref)
	case hir.ItemDeclaration:
		l.fillDeclaration(ref)
	case hir.ItemFunction:
		l.fillFunction(ref)
	case hir.ItemOutput:
		l.fillOutput(ref)
	case hir.ItemSolve:
		l.fillSolve(ref)
	}
}

func (l *Lowerer) stubAnnotation(ref hir.ItemRef) {
	a := l.HIR.Annotations.Get(ref.Index)
	entry := l.Check.Sigs.Annotations[ref]

	params := make([]tir.Param, len(a.Params))
	for i, p := range a.Params {
		ty := types.NoType
		if i < len(entry.Params) {
			ty = entry.Params[i]
		}

		params[i] = tir.Param{Type: ty, Name: p.Name}
	}

	out := tir.Annotation{ItemData: tir.NewItemData(a.Span), Name: a.Name, Params: params}
	l.itemMap[ref] = l.TIR.AddAnnotation(out)
}

func (l *Lowerer) fillAssignment(ref hir.ItemRef) {
	a := l.HIR.Assignments.Get(ref.Index)
	tref := l.itemMap[ref]

	out := l.TIR.Assignments.Get(tref.Index)
	out.Value = l.lowerExpr(ref, out.ItemData, a.Value)
	l.TIR.Assignments.Set(tref.Index, out)
}

func (l *Lowerer) fillConstraint(ref hir.ItemRef) {
	c := l.HIR.Constraints.Get(ref.Index)
	tref := l.itemMap[ref]

	out := l.TIR.Constraints.Get(tref.Index)
	out.Expr = l.lowerExpr(ref, out.ItemData, c.Expr)
	out.Annotations = l.lowerExprList(ref, out.ItemData, c.Annotations)
	l.TIR.Constraints.Set(tref.Index, out)
}

func (l *Lowerer) stubDeclaration(ref hir.ItemRef) {
	d := l.HIR.Declarations.Get(ref.Index)
	sig := l.Check.Sigs.Vars[ref]

	l.itemMap[ref] = l.TIR.AddDeclaration(tir.Declaration{
		ItemData: tir.NewItemData(d.Span), Type: sig.Type, Name: d.Name,
		Output: isImplicitOutput(sig.Type, d.Annotations, d.Body),
	})
}

func (l *Lowerer) fillDeclaration(ref hir.ItemRef) {
	d := l.HIR.Declarations.Get(ref.Index)
	tref := l.itemMap[ref]

	out := l.TIR.Declarations.Get(tref.Index)
	if d.Body != hir.NoIndex {
		out.Body = l.lowerExpr(ref, out.ItemData, d.Body)
	} else {
		out.Body = arena.NoIndex
	}

	data := l.HIR.ItemData(ref)
	out.Domain = l.lowerDomain(ref, out.ItemData, data, d.Type)
	out.Annotations = l.lowerExprList(ref, out.ItemData, d.Annotations)
	l.TIR.Declarations.Set(tref.Index, out)
}

// isImplicitOutput gives a declaration's Output flag its lowering-time
// value from the no-annotation and no-definition conditions only; the inst
// is not checked here. The output-generation pass recomputes the flag with
// the non-par condition included, and emits the `mzn_output_*`
// declarations.
func isImplicitOutput(ty types.TypeID, annotations []hir.ExprIdx, body hir.ExprIdx) bool {
	return body == hir.NoIndex && len(annotations) == 0
}

func (l *Lowerer) lowerEnumeration(ref hir.ItemRef) {
	e := l.HIR.Enumerations.Get(ref.Index)
	ctors := make([]tir.EnumCtor, len(e.Constructors))

	for i, c := range e.Constructors {
		argTy := types.NoType

		if c.Arg != hir.NoIndex {
			data := l.HIR.ItemData(ref)
			argTy = l.Check.ResolveTypeRef(ref, data, c.Arg)
		}

		ctors[i] = tir.EnumCtor{Name: c.Name, Arg: argTy, Anon: c.Anon}
	}

	out := tir.Enumeration{ItemData: tir.NewItemData(e.Span), Name: e.Name, Constructors: ctors}
	tref := l.TIR.AddEnumeration(out)
	l.itemMap[ref] = tref
}

func (l *Lowerer) stubFunction(ref hir.ItemRef) {
	f := l.HIR.Functions.Get(ref.Index)
	entry := l.Check.Sigs.Functions[ref]

	params := make([]tir.Param, len(f.Params))
	for i, p := range f.Params {
		ty := types.NoType
		if i < len(entry.Params) {
			ty = entry.Params[i]
		}

		params[i] = tir.Param{Type: ty, Name: p.Name}
	}

	l.itemMap[ref] = l.TIR.AddFunction(tir.Function{
		ItemData: tir.NewItemData(f.Span), FnKind: tir.FunctionSurface(f.FnKind),
		Name: f.Name, MangledName: f.Name, Params: params, ReturnType: entry.Return,
		Specializations: make(map[string]tir.ItemRef),
	})
}

func (l *Lowerer) fillFunction(ref hir.ItemRef) {
	f := l.HIR.Functions.Get(ref.Index)
	tref := l.itemMap[ref]

	out := l.TIR.Functions.Get(tref.Index)
	if f.Body != hir.NoIndex {
		out.Body = l.lowerExpr(ref, out.ItemData, f.Body)
	} else {
		out.Body = arena.NoIndex
	}

	out.Annotations = l.lowerExprList(ref, out.ItemData, f.Annotations)
	l.TIR.Functions.Set(tref.Index, out)
}

func (l *Lowerer) fillOutput(ref hir.ItemRef) {
	o := l.HIR.Outputs.Get(ref.Index)
	tref := l.itemMap[ref]

	out := l.TIR.Outputs.Get(tref.Index)
	out.Expr = l.lowerExpr(ref, out.ItemData, o.Expr)
	l.TIR.Outputs.Set(tref.Index, out)
}

func (l *Lowerer) fillSolve(ref hir.ItemRef) {
	sv := l.HIR.Solves.Get(ref.Index)
	tref := l.itemMap[ref]

	out := l.TIR.Solves.Get(tref.Index)
	if sv.Objective != hir.NoIndex {
		out.Objective = l.lowerExpr(ref, out.ItemData, sv.Objective)
	} else {
		out.Objective = arena.NoIndex
	}

	out.Annotations = l.lowerExprList(ref, out.ItemData, sv.Annotations)
	l.TIR.Solves.Set(tref.Index, out)
}

func (l *Lowerer) lowerTypeAlias(ref hir.ItemRef) {
	a := l.HIR.TypeAliases.Get(ref.Index)
	sig := l.Check.Sigs.Vars[ref]

	out := tir.TypeAlias{ItemData: tir.NewItemData(a.Span), Name: a.Name, Type: sig.Type}
	tref := l.TIR.AddTypeAlias(out)
	l.itemMap[ref] = tref
}

func (l *Lowerer) lowerExprList(ref hir.ItemRef, data tir.ItemData, in []hir.ExprIdx) []tir.ExprIdx {
	out := make([]tir.ExprIdx, len(in))
	for i, e := range in {
		out[i] = l.lowerExpr(ref, data, e)
	}

	return out
}
