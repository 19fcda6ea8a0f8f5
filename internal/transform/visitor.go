package transform

import (
	"github.com/shackle-rs/mzc/internal/arena"
	"github.com/shackle-rs/mzc/internal/tir"
)

// Visitor is the read-only counterpart to Folder: it walks a model
// without producing a new one, for code that only needs to observe rather
// than rewrite. No pass in internal/passes uses it. Every method again takes itself as the first
// argument for the same reason Folder's methods do — Base's default
// recursion has to call back out through the overriding pass's methods.
type Visitor interface {
	VisitAnnotation(self Visitor, m *tir.Model, a tir.Annotation)
	VisitAssignment(self Visitor, m *tir.Model, a tir.Assignment)
	VisitConstraint(self Visitor, m *tir.Model, c tir.Constraint)
	VisitDeclaration(self Visitor, m *tir.Model, d tir.Declaration)
	VisitEnumeration(self Visitor, m *tir.Model, e tir.Enumeration)
	VisitFunction(self Visitor, m *tir.Model, fn tir.Function)
	VisitOutput(self Visitor, m *tir.Model, o tir.Output)
	VisitSolve(self Visitor, m *tir.Model, s tir.Solve)
	VisitTypeAlias(self Visitor, m *tir.Model, t tir.TypeAlias)

	VisitExpr(self Visitor, data *tir.ItemData, idx tir.ExprIdx)
	VisitPattern(self Visitor, data *tir.ItemData, idx tir.PatternIdx)
}

// Walk drives self over every item of m in source order.
func Walk(self Visitor, m *tir.Model) {
	for _, ref := range m.Items {
		switch ref.Kind {
		case tir.ItemAnnotation:
			self.VisitAnnotation(self, m, m.Annotations.Get(ref.Index))
		case tir.ItemAssignment:
			self.VisitAssignment(self, m, m.Assignments.Get(ref.Index))
		case tir.ItemConstraint:
			self.VisitConstraint(self, m, m.Constraints.Get(ref.Index))
		case tir.ItemDeclaration:
			self.VisitDeclaration(self, m, m.Declarations.Get(ref.Index))
		case tir.ItemEnumeration:
			self.VisitEnumeration(self, m, m.Enumerations.Get(ref.Index))
		case tir.ItemFunction:
			self.VisitFunction(self, m, m.Functions.Get(ref.Index))
		case tir.ItemOutput:
			self.VisitOutput(self, m, m.Outputs.Get(ref.Index))
		case tir.ItemSolve:
			self.VisitSolve(self, m, m.Solves.Get(ref.Index))
		case tir.ItemTypeAlias:
			self.VisitTypeAlias(self, m, m.TypeAliases.Get(ref.Index))
		}
	}
}

// BaseVisitor implements Visitor by recursing into every child node and
// doing nothing else; embed it and override only the methods a
// particular observation needs.
type BaseVisitor struct{}

func (BaseVisitor) VisitAnnotation(self Visitor, m *tir.Model, a tir.Annotation) {}

func (BaseVisitor) VisitAssignment(self Visitor, m *tir.Model, a tir.Assignment) {
	self.VisitExpr(self, &a.ItemData, a.Value)
}

func (BaseVisitor) VisitConstraint(self Visitor, m *tir.Model, c tir.Constraint) {
	self.VisitExpr(self, &c.ItemData, c.Expr)

	for _, ann := range c.Annotations {
		self.VisitExpr(self, &c.ItemData, ann)
	}
}

func (BaseVisitor) VisitDeclaration(self Visitor, m *tir.Model, d tir.Declaration) {
	self.VisitExpr(self, &d.ItemData, d.Body)

	for _, ann := range d.Annotations {
		self.VisitExpr(self, &d.ItemData, ann)
	}
}

func (BaseVisitor) VisitEnumeration(self Visitor, m *tir.Model, e tir.Enumeration) {}

func (BaseVisitor) VisitFunction(self Visitor, m *tir.Model, fn tir.Function) {
	self.VisitExpr(self, &fn.ItemData, fn.Body)

	for _, ann := range fn.Annotations {
		self.VisitExpr(self, &fn.ItemData, ann)
	}
}

func (BaseVisitor) VisitOutput(self Visitor, m *tir.Model, o tir.Output) {
	self.VisitExpr(self, &o.ItemData, o.Expr)
}

func (BaseVisitor) VisitSolve(self Visitor, m *tir.Model, s tir.Solve) {
	self.VisitExpr(self, &s.ItemData, s.Objective)

	for _, ann := range s.Annotations {
		self.VisitExpr(self, &s.ItemData, ann)
	}
}

func (BaseVisitor) VisitTypeAlias(self Visitor, m *tir.Model, t tir.TypeAlias) {}

func (BaseVisitor) VisitExpr(self Visitor, data *tir.ItemData, idx tir.ExprIdx) {
	if idx == arena.NoIndex {
		return
	}

	e := data.Exprs.Get(idx)

	switch e.Kind {
	case tir.ESetLit, tir.EArrayLit, tir.ETupleLit, tir.ERecordLit:
		for _, el := range e.Elems {
			self.VisitExpr(self, data, el)
		}
	case tir.EArrayAccess:
		self.VisitExpr(self, data, e.Base)

		for _, ix := range e.Indices {
			self.VisitExpr(self, data, ix)
		}
	case tir.EComprehension:
		for _, el := range e.Elems {
			self.VisitExpr(self, data, el)
		}

		for _, g := range e.Generators {
			for _, p := range g.Patterns {
				self.VisitPattern(self, data, p)
			}

			self.VisitExpr(self, data, g.Source)
			self.VisitExpr(self, data, g.Where)
		}
	case tir.EIfThenElse:
		for _, c := range e.Conds {
			self.VisitExpr(self, data, c)
		}

		for _, t := range e.Thens {
			self.VisitExpr(self, data, t)
		}

		self.VisitExpr(self, data, e.Else)
	case tir.ECall, tir.ELookupCall:
		for _, a := range e.Elems {
			self.VisitExpr(self, data, a)
		}
	case tir.ECase:
		self.VisitExpr(self, data, e.Scrutinee)

		for _, arm := range e.Arms {
			self.VisitPattern(self, data, arm.Pattern)
			self.VisitExpr(self, data, arm.Result)
		}
	case tir.ELet:
		for _, decl := range e.Decls {
			if decl.IsConstraint {
				self.VisitExpr(self, data, decl.Constraint)

				continue
			}

			self.VisitExpr(self, data, decl.Decl.Body)
		}

		self.VisitExpr(self, data, e.Body)
	case tir.ETupleAccess, tir.ERecordAccess:
		self.VisitExpr(self, data, e.Base)
	case tir.ELambda:
		for _, p := range e.Params {
			self.VisitPattern(self, data, p)
		}

		self.VisitExpr(self, data, e.Body)
	case tir.ECallable:
		if e.CallableKind == tir.CallableExpr {
			self.VisitExpr(self, data, e.CallableExpr)
		}
	}

	for _, ann := range e.Annotations {
		self.VisitExpr(self, data, ann)
	}
}

func (BaseVisitor) VisitPattern(self Visitor, data *tir.ItemData, idx tir.PatternIdx) {
	if idx == arena.NoIndex {
		return
	}

	p := data.Patterns.Get(idx)

	switch p.Kind {
	case tir.PCall, tir.PTuple:
		for _, el := range p.Elems {
			self.VisitPattern(self, data, el)
		}
	case tir.PRecord:
		for _, f := range p.Fields {
			self.VisitPattern(self, data, f.Pattern)
		}
	}
}
