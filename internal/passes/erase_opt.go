package passes

import (
	"github.com/shackle-rs/mzc/internal/arena"
	"github.com/shackle-rs/mzc/internal/tir"
	"github.com/shackle-rs/mzc/internal/transform"
	"github.com/shackle-rs/mzc/internal/types"
)

// EraseOpt implements §4.14's erase-opt pass: `opt T` becomes `tuple(bool,
// T)` (the bool is true exactly when the value is present), `<>` becomes
// `(false, default(T))`, and `occurs`/`deopt` become positional tuple
// access — invariant I8, "after option erasure, no type carries the opt
// modifier". `default(T)` stays an open lookup call (the same
// not-backed-by-a-Function-item treatment output-generation gives
// `concat`): picking an actual representative value for an arbitrary T is
// a backend concern, not a TIR-level rewrite.
//
// Option-aware arithmetic and relational operators (`+`, `<`, … lifted to
// accept `opt` operands, absorbing a `<>` operand into a `<>` result) are
// not rewritten here: by this point in the pipeline every call site is
// already resolved to a concrete overload (§4.10), so an operator
// genuinely needing option-lifted semantics was already resolved to the
// option-aware overload of that operator at typing time, and that
// overload's own body — a function like any other — gets its `opt` types
// erased by the ordinary type-erasure walk below.
func EraseOpt(ctx *Context, m *tir.Model) (*tir.Model, error) {
	eo := &eraseOptFolder{ctx: ctx, memo: map[types.TypeID]types.TypeID{}}

	return transform.Run(eo, m), nil
}

type eraseOptFolder struct {
	transform.Base

	ctx  *Context
	memo map[types.TypeID]types.TypeID
}

func (eo *eraseOptFolder) FoldExpr(self transform.Folder, src, dst *tir.ItemData, idx tir.ExprIdx) tir.ExprIdx {
	if idx == arena.NoIndex {
		return arena.NoIndex
	}

	e := src.Exprs.Get(idx)

	switch {
	case e.Kind == tir.EAbsent:
		presentType := eo.presenceFlagType(e.Type)
		innerType := eo.innerOf(e.Type)

		flag := dst.Exprs.Alloc(tir.Expr{Kind: tir.EBoolLit, BoolVal: false, Type: presentType, Origin: tir.Introduced("erase-opt")})
		def := dst.Exprs.Alloc(tir.Expr{Kind: tir.ELookupCall, LookupName: "default", Type: innerType, Origin: tir.Introduced("erase-opt")})

		return dst.Exprs.Alloc(tir.Expr{
			Kind: tir.ETupleLit, Type: eo.eraseType(e.Type), Elems: []tir.ExprIdx{flag, def},
			Origin: e.Origin,
		})

	case e.Kind == tir.ELookupCall && e.LookupName == "occurs" && len(e.Elems) == 1:
		base := eo.FoldExpr(self, src, dst, e.Elems[0])

		return dst.Exprs.Alloc(tir.Expr{
			Kind: tir.ETupleAccess, Type: eo.ctx.Interner.Builtins().ParBool, Base: base, TupleIndex: 1,
			Origin: e.Origin,
		})

	case e.Kind == tir.ELookupCall && e.LookupName == "deopt" && len(e.Elems) == 1:
		base := eo.FoldExpr(self, src, dst, e.Elems[0])
		baseType := src.Exprs.Get(e.Elems[0]).Type

		return dst.Exprs.Alloc(tir.Expr{
			Kind: tir.ETupleAccess, Type: eo.innerOf(baseType), Base: base, TupleIndex: 2,
			Origin: e.Origin,
		})

	default:
		out := eo.Base.FoldExpr(self, src, dst, idx)
		n := dst.Exprs.Get(out)
		n.Type = eo.eraseType(n.Type)
		dst.Exprs.Set(out, n)

		return out
	}
}

func (eo *eraseOptFolder) FoldPattern(self transform.Folder, src, dst *tir.ItemData, idx tir.PatternIdx) tir.PatternIdx {
	if idx == arena.NoIndex {
		return arena.NoIndex
	}

	p := src.Patterns.Get(idx)

	if p.Kind == tir.PAbsent {
		flagLit := dst.Patterns.Alloc(tir.Pattern{Kind: tir.PLiteral, Type: eo.presenceFlagType(p.Type), LiteralKind: tir.EBoolLit, BoolVal: false})
		rest := dst.Patterns.Alloc(tir.Pattern{Kind: tir.PWildcard, Type: eo.innerOf(p.Type)})

		return dst.Patterns.Alloc(tir.Pattern{Kind: tir.PTuple, Type: eo.eraseType(p.Type), Elems: []tir.PatternIdx{flagLit, rest}})
	}

	out := eo.Base.FoldPattern(self, src, dst, idx)
	n := dst.Patterns.Get(out)
	n.Type = eo.eraseType(n.Type)
	dst.Patterns.Set(out, n)

	return out
}

func (eo *eraseOptFolder) FoldDomain(self transform.Folder, src, dst *tir.ItemData, idx tir.DomainIdx) tir.DomainIdx {
	if idx == arena.NoIndex {
		return arena.NoIndex
	}

	d := src.Domains.Get(idx)

	out := eo.Base.FoldDomain(self, src, dst, idx)
	n := dst.Domains.Get(out)
	n.Type = eo.eraseType(d.Type)
	dst.Domains.Set(out, n)

	return out
}

// presenceFlagType returns the bool type used for t's present/absent flag,
// matching t's inst (a var opt int erases its flag to var bool, same as
// its payload).
func (eo *eraseOptFolder) presenceFlagType(t types.TypeID) types.TypeID {
	in := eo.ctx.Interner
	d := in.Lookup(t)

	return in.Intern(types.Data{Kind: types.KindBool, Inst: d.Inst})
}

// innerOf returns t with the opt modifier stripped, itself fully erased.
func (eo *eraseOptFolder) innerOf(t types.TypeID) types.TypeID {
	in := eo.ctx.Interner
	d := in.Lookup(t)
	d.Opt = types.OptNonOpt

	return eo.eraseType(in.Intern(d))
}

// eraseType returns t with every opt modifier reachable from it replaced by
// the `tuple(bool, T)` erasure, memoised across the whole pass.
func (eo *eraseOptFolder) eraseType(t types.TypeID) types.TypeID {
	if t == types.NoType {
		return t
	}

	if got, ok := eo.memo[t]; ok {
		return got
	}

	in := eo.ctx.Interner
	d := in.Lookup(t)

	var out types.TypeID

	switch {
	case d.Opt == types.OptOpt:
		flag := eo.presenceFlagType(t)
		inner := d
		inner.Opt = types.OptNonOpt
		erasedInner := eo.eraseType(in.Intern(inner))
		out = in.Tuple(flag, erasedInner)
	case d.Kind == types.KindArray:
		idx := make([]types.TypeID, len(d.Index))
		for i, ix := range d.Index {
			idx[i] = eo.eraseType(ix)
		}

		out = withSameModifiers(in, in.Array(idx, eo.eraseType(d.Element)), d)
	case d.Kind == types.KindTuple || d.Kind == types.KindRecord:
		fields := make([]types.Field, len(d.Fields))
		for i, f := range d.Fields {
			fields[i] = types.Field{Name: f.Name, Type: eo.eraseType(f.Type)}
		}

		var base types.TypeID
		if d.Kind == types.KindRecord {
			base = in.Record(fields)
		} else {
			base = in.Tuple(fieldTypes(fields)...)
		}

		out = withSameModifiers(in, base, d)
	case d.Kind == types.KindOp:
		params := make([]types.TypeID, len(d.Params))
		for i, p := range d.Params {
			params[i] = eo.eraseType(p)
		}

		out = in.Op(eo.eraseType(d.Result), params...)
	default:
		out = t
	}

	eo.memo[t] = out

	return out
}
