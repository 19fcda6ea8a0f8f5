package passes

import (
	"github.com/shackle-rs/mzc/internal/arena"
	"github.com/shackle-rs/mzc/internal/tir"
	"github.com/shackle-rs/mzc/internal/transform"
	"github.com/shackle-rs/mzc/internal/types"
)

// TopDownType implements §4.14's top-down-type pass: push an expected type
// from a declaration/assignment/constraint/function-body context down into the literals and
// comprehensions nested inside it, so a context-free literal like `[]` or
// `{}` — which lowering (§4.9's typeContainer) can only default to
// `array[int] of int`/`set of int` absent any better information (B1) —
// picks up the element type its surrounding declaration actually demands.
func TopDownType(ctx *Context, m *tir.Model) (*tir.Model, error) {
	td := &topDownFolder{ctx: ctx}

	return transform.Run(td, m), nil
}

type topDownFolder struct {
	transform.Base

	ctx *Context
}

func (td *topDownFolder) FoldDeclaration(self transform.Folder, dst *tir.Model, d tir.Declaration) tir.Declaration {
	d = td.Base.FoldDeclaration(self, dst, d)
	td.propagate(&d.ItemData, d.Body, d.Type)

	return d
}

func (td *topDownFolder) FoldAssignment(self transform.Folder, dst *tir.Model, a tir.Assignment) tir.Assignment {
	a = td.Base.FoldAssignment(self, dst, a)

	if a.Item.Kind == tir.ItemDeclaration && a.Item.Index != arena.NoIndex && int(a.Item.Index) <= dst.Declarations.Len() {
		target := dst.Declarations.Get(a.Item.Index)
		td.propagate(&a.ItemData, a.Value, target.Type)
	}

	return a
}

func (td *topDownFolder) FoldConstraint(self transform.Folder, dst *tir.Model, c tir.Constraint) tir.Constraint {
	c = td.Base.FoldConstraint(self, dst, c)
	td.propagate(&c.ItemData, c.Expr, td.ctx.Interner.Builtins().VarBool)

	return c
}

func (td *topDownFolder) FoldFunction(self transform.Folder, dst *tir.Model, fn tir.Function) tir.Function {
	fn = td.Base.FoldFunction(self, dst, fn)
	td.propagate(&fn.ItemData, fn.Body, fn.ReturnType)

	return fn
}

// propagate pushes expected down into idx's node, overwriting the
// defaulted types of empty/under-determined literal nodes it finds along
// the way. It only ever descends through node shapes whose own type is
// structurally determined by their children (literals, comprehensions,
// if-then-else, let, case) — anything else keeps the type lowering/sema
// already computed for it.
func (td *topDownFolder) propagate(data *tir.ItemData, idx tir.ExprIdx, expected types.TypeID) {
	if idx == arena.NoIndex || expected == types.NoType {
		return
	}

	e := data.Exprs.Get(idx)
	ed := td.ctx.Interner.Lookup(expected)

	switch e.Kind {
	case tir.EArrayLit:
		if ed.Kind != types.KindArray {
			return
		}

		if len(e.Elems) == 0 {
			e.Type = expected
			data.Exprs.Set(idx, e)

			return
		}

		for _, el := range e.Elems {
			td.propagate(data, el, ed.Element)
		}
	case tir.ESetLit:
		if ed.Set != types.IsSet {
			return
		}

		if len(e.Elems) == 0 {
			e.Type = expected
			data.Exprs.Set(idx, e)

			return
		}

		elemData := ed
		elemData.Set = types.NonSet
		elemExpected := td.ctx.Interner.Intern(elemData)

		for _, el := range e.Elems {
			td.propagate(data, el, elemExpected)
		}
	case tir.ETupleLit:
		if ed.Kind != types.KindTuple || len(ed.Fields) != len(e.Elems) {
			return
		}

		for i, el := range e.Elems {
			td.propagate(data, el, ed.Fields[i].Type)
		}
	case tir.ERecordLit:
		if ed.Kind != types.KindRecord {
			return
		}

		for i, el := range e.Elems {
			if i >= len(e.FieldNames) {
				break
			}

			for _, f := range ed.Fields {
				if f.Name == e.FieldNames[i] {
					td.propagate(data, el, f.Type)

					break
				}
			}
		}
	case tir.EComprehension:
		for _, el := range e.Elems {
			td.propagate(data, el, expected)
		}
	case tir.EIfThenElse:
		for _, t := range e.Thens {
			td.propagate(data, t, expected)
		}

		td.propagate(data, e.Else, expected)
	case tir.ELet:
		td.propagate(data, e.Body, expected)
	case tir.ECase:
		for _, arm := range e.Arms {
			td.propagate(data, arm.Result, expected)
		}
	}
}
