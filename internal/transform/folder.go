// Package transform implements component 4.13: the generic machinery every
// TIR-to-TIR pass (internal/passes) is built from, so that an individual
// pass writes only the handful of methods its rewrite actually touches
// rather than re-walking the whole model by hand.
package transform

import (
	"github.com/shackle-rs/mzc/internal/arena"
	"github.com/shackle-rs/mzc/internal/tir"
)

// Folder produces a fresh tir.Model from an existing one, one item/expr/
// pattern/domain node at a time. Every method takes the Folder itself as
// its first argument (the "self" parameter): Go has no virtual dispatch
// through embedding, so a method Base provides that recurses into a
// child node must call back out through self rather than through Base
// directly, or an overriding pass's method would never be reached once
// recursion starts. A pass overrides only the node kinds its rewrite
// cares about and inherits every other method by embedding Base — the
// same "override what you touch" shape as go/ast.Visitor, adapted to
// produce a new tree rather than only read one (§3.6's "each pass takes
// ownership, produces a new arena-backed model").
type Folder interface {
	FoldAnnotation(self Folder, dst *tir.Model, a tir.Annotation) tir.Annotation
	FoldAssignment(self Folder, dst *tir.Model, a tir.Assignment) tir.Assignment
	FoldConstraint(self Folder, dst *tir.Model, c tir.Constraint) tir.Constraint
	FoldDeclaration(self Folder, dst *tir.Model, d tir.Declaration) tir.Declaration
	FoldEnumeration(self Folder, dst *tir.Model, e tir.Enumeration) tir.Enumeration
	FoldFunction(self Folder, dst *tir.Model, fn tir.Function) tir.Function
	FoldOutput(self Folder, dst *tir.Model, o tir.Output) tir.Output
	FoldSolve(self Folder, dst *tir.Model, s tir.Solve) tir.Solve
	FoldTypeAlias(self Folder, dst *tir.Model, t tir.TypeAlias) tir.TypeAlias

	FoldExpr(self Folder, src, dst *tir.ItemData, idx tir.ExprIdx) tir.ExprIdx
	FoldPattern(self Folder, src, dst *tir.ItemData, idx tir.PatternIdx) tir.PatternIdx
	FoldDomain(self Folder, src, dst *tir.ItemData, idx tir.DomainIdx) tir.DomainIdx

	// Remap translates a cross-item reference (a ResolvedIdentifier's
	// Item, an ECall's Callee, a PCall pattern's CtorItem) through
	// whatever ReplacementMap this fold is tracking. Base's default is
	// the identity — correct for any pass that keeps every item's
	// cardinality and order unchanged, which is the common case.
	Remap(self Folder, ref tir.ItemRef) tir.ItemRef
}

// Run drives self over every item of src in source order, dispatching to
// the matching Fold* method and recording the result in a freshly built
// model — invariant I4's "each pass consumes its input, produces a new
// one" applies at the model level, not just per node. Most passes' entry
// points call Run with themselves as self; the rest drive their own item
// loop.
func Run(self Folder, src *tir.Model) *tir.Model {
	dst := tir.NewModel()

	for _, ref := range src.Items {
		switch ref.Kind {
		case tir.ItemAnnotation:
			a := src.Annotations.Get(ref.Index)
			dst.AddAnnotation(self.FoldAnnotation(self, dst, a))
		case tir.ItemAssignment:
			a := src.Assignments.Get(ref.Index)
			dst.AddAssignment(self.FoldAssignment(self, dst, a))
		case tir.ItemConstraint:
			c := src.Constraints.Get(ref.Index)
			dst.AddConstraint(self.FoldConstraint(self, dst, c))
		case tir.ItemDeclaration:
			d := src.Declarations.Get(ref.Index)
			dst.AddDeclaration(self.FoldDeclaration(self, dst, d))
		case tir.ItemEnumeration:
			e := src.Enumerations.Get(ref.Index)
			dst.AddEnumeration(self.FoldEnumeration(self, dst, e))
		case tir.ItemFunction:
			fn := src.Functions.Get(ref.Index)
			dst.AddFunction(self.FoldFunction(self, dst, fn))
		case tir.ItemOutput:
			o := src.Outputs.Get(ref.Index)
			dst.AddOutput(self.FoldOutput(self, dst, o))
		case tir.ItemSolve:
			s := src.Solves.Get(ref.Index)
			dst.AddSolve(self.FoldSolve(self, dst, s))
		case tir.ItemTypeAlias:
			t := src.TypeAliases.Get(ref.Index)
			dst.AddTypeAlias(self.FoldTypeAlias(self, dst, t))
		}
	}

	return dst
}

// Base implements Folder with the identity transform: every node is
// copied into the destination model unchanged, recursing structurally
// into every child index it owns. Embed Base in a pass-specific folder
// to get every method for free, then shadow only the ones that pass
// needs to change.
type Base struct{}

func (Base) FoldAnnotation(self Folder, dst *tir.Model, a tir.Annotation) tir.Annotation {
	src := a.ItemData
	out := tir.NewItemData(a.Span)

	for i, p := range a.Params {
		a.Params[i].Domain = self.FoldDomain(self, &src, &out, p.Domain)
	}

	a.ItemData = out

	return a
}

func (Base) FoldAssignment(self Folder, dst *tir.Model, a tir.Assignment) tir.Assignment {
	src := a.ItemData
	out := tir.NewItemData(a.Span)

	a.Value = self.FoldExpr(self, &src, &out, a.Value)
	a.ItemData = out

	return a
}

func (Base) FoldConstraint(self Folder, dst *tir.Model, c tir.Constraint) tir.Constraint {
	src := c.ItemData
	out := tir.NewItemData(c.Span)

	c.Expr = self.FoldExpr(self, &src, &out, c.Expr)
	c.Annotations = foldExprList(self, &src, &out, c.Annotations)
	c.ItemData = out

	return c
}

func (Base) FoldDeclaration(self Folder, dst *tir.Model, d tir.Declaration) tir.Declaration {
	src := d.ItemData
	out := tir.NewItemData(d.Span)

	d.Domain = self.FoldDomain(self, &src, &out, d.Domain)
	d.Body = self.FoldExpr(self, &src, &out, d.Body)
	d.Annotations = foldExprList(self, &src, &out, d.Annotations)
	d.ItemData = out

	return d
}

// FoldEnumeration is the identity: an enumeration's constructor list
// carries only types and names, nothing that names an ExprIdx/PatternIdx/
// DomainIdx of its own item's arenas, so there is nothing to recurse
// into. erase-enum (§4.14) overrides this directly to attach Erased.
func (Base) FoldEnumeration(self Folder, dst *tir.Model, e tir.Enumeration) tir.Enumeration {
	return e
}

func (Base) FoldFunction(self Folder, dst *tir.Model, fn tir.Function) tir.Function {
	src := fn.ItemData
	out := tir.NewItemData(fn.Span)

	for i, p := range fn.Params {
		fn.Params[i].Domain = self.FoldDomain(self, &src, &out, p.Domain)
	}

	fn.Body = self.FoldExpr(self, &src, &out, fn.Body)
	fn.Annotations = foldExprList(self, &src, &out, fn.Annotations)
	fn.ItemData = out

	return fn
}

func (Base) FoldOutput(self Folder, dst *tir.Model, o tir.Output) tir.Output {
	src := o.ItemData
	out := tir.NewItemData(o.Span)

	o.Expr = self.FoldExpr(self, &src, &out, o.Expr)
	o.ItemData = out

	return o
}

func (Base) FoldSolve(self Folder, dst *tir.Model, s tir.Solve) tir.Solve {
	src := s.ItemData
	out := tir.NewItemData(s.Span)

	s.Objective = self.FoldExpr(self, &src, &out, s.Objective)
	s.Annotations = foldExprList(self, &src, &out, s.Annotations)
	s.ItemData = out

	return s
}

// FoldTypeAlias is the identity: an alias names only a types.TypeID, no
// private-arena data to recurse into.
func (Base) FoldTypeAlias(self Folder, dst *tir.Model, t tir.TypeAlias) tir.TypeAlias {
	return t
}

// Remap is the identity; a pass tracking a real ReplacementMap overrides
// this one method and every Fold* that calls it via self picks up the
// translation automatically.
func (Base) Remap(self Folder, ref tir.ItemRef) tir.ItemRef {
	return ref
}

// FoldDomain copies one domain node from src into dst, recursing
// structurally into whichever of Bounded/Index/Element/TupleFields/
// RecordFields its Kind populates.
func (Base) FoldDomain(self Folder, src, dst *tir.ItemData, idx tir.DomainIdx) tir.DomainIdx {
	if idx == arena.NoIndex {
		return arena.NoIndex
	}

	d := src.Domains.Get(idx)

	switch d.Kind {
	case tir.DomBounded:
		d.Bounded = self.FoldExpr(self, src, dst, d.Bounded)
	case tir.DomArray:
		index := make([]tir.DomainIdx, len(d.Index))
		for i, ix := range d.Index {
			index[i] = self.FoldDomain(self, src, dst, ix)
		}

		d.Index = index
		d.Element = self.FoldDomain(self, src, dst, d.Element)
	case tir.DomSet:
		d.Element = self.FoldDomain(self, src, dst, d.Element)
	case tir.DomTuple:
		fields := make([]tir.DomainIdx, len(d.TupleFields))
		for i, fld := range d.TupleFields {
			fields[i] = self.FoldDomain(self, src, dst, fld)
		}

		d.TupleFields = fields
	case tir.DomRecord:
		fields := make([]tir.DomainRecordField, len(d.RecordFields))
		for i, fld := range d.RecordFields {
			fields[i] = tir.DomainRecordField{Name: fld.Name, Domain: self.FoldDomain(self, src, dst, fld.Domain)}
		}

		d.RecordFields = fields
	}

	return dst.Domains.Alloc(d)
}

func foldExprList(self Folder, src, dst *tir.ItemData, in []tir.ExprIdx) []tir.ExprIdx {
	if in == nil {
		return nil
	}

	out := make([]tir.ExprIdx, len(in))
	for i, e := range in {
		out[i] = self.FoldExpr(self, src, dst, e)
	}

	return out
}

func foldPatternList(self Folder, src, dst *tir.ItemData, in []tir.PatternIdx) []tir.PatternIdx {
	if in == nil {
		return nil
	}

	out := make([]tir.PatternIdx, len(in))
	for i, p := range in {
		out[i] = self.FoldPattern(self, src, dst, p)
	}

	return out
}
