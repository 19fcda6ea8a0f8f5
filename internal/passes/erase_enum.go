package passes

import (
	"github.com/shackle-rs/mzc/internal/arena"
	"github.com/shackle-rs/mzc/internal/tir"
	"github.com/shackle-rs/mzc/internal/transform"
	"github.com/shackle-rs/mzc/internal/types"
)

// EraseEnum implements §4.14's erase-enum pass: every `enum(E)` type
// becomes a plain integer range, with a side table (tir.EnumErasure)
// recording the ordinal-to-name mapping `show` needs — invariant I7,
// "after enum erasure, no type mentions enum(E)".
//
// Constructors carrying a payload (`C(int)`) are assigned one ordinal each,
// the same as an atom constructor; a fully faithful erasure would widen
// the range to cover the payload's own cardinality and encode a tagged
// union, which this pass does not attempt.
func EraseEnum(ctx *Context, m *tir.Model) (*tir.Model, error) {
	ee := &eraseEnumFolder{
		ctx:           ctx,
		memo:          map[types.TypeID]types.TypeID{},
		ordinalByIdx:  map[tir.ItemRef]map[int]int64{},
		ordinalByName: map[tir.ItemRef]map[string]int64{},
		hiByName:      map[string]int64{},
	}

	for _, ref := range m.Items {
		if ref.Kind != tir.ItemEnumeration {
			continue
		}

		e := m.Enumerations.Get(ref.Index)
		byIdx := make(map[int]int64, len(e.Constructors))
		byCtorName := make(map[string]int64, len(e.Constructors))

		for i, c := range e.Constructors {
			byIdx[i] = int64(i + 1)
			byCtorName[c.Name] = int64(i + 1)
		}

		ee.ordinalByIdx[ref] = byIdx
		ee.ordinalByName[ref] = byCtorName
		ee.hiByName[e.Name] = int64(len(e.Constructors))
	}

	return transform.Run(ee, m), nil
}

type eraseEnumFolder struct {
	transform.Base

	ctx *Context

	memo          map[types.TypeID]types.TypeID
	ordinalByIdx  map[tir.ItemRef]map[int]int64    // enum item -> ctor index -> ordinal
	ordinalByName map[tir.ItemRef]map[string]int64 // enum item -> ctor name -> ordinal
	hiByName      map[string]int64                 // enum name -> constructor count
}

func (ee *eraseEnumFolder) FoldEnumeration(self transform.Folder, dst *tir.Model, e tir.Enumeration) tir.Enumeration {
	hi := ee.hiByName[e.Name]

	names := make([]string, len(e.Constructors))
	for i, c := range e.Constructors {
		names[i] = c.Name
	}

	e.Erased = &tir.EnumErasure{Lo: 1, Hi: hi, Names: names}

	return e
}

func (ee *eraseEnumFolder) FoldExpr(self transform.Folder, src, dst *tir.ItemData, idx tir.ExprIdx) tir.ExprIdx {
	if idx == arena.NoIndex {
		return arena.NoIndex
	}

	e := src.Exprs.Get(idx)

	if e.Kind == tir.EIdent && e.Ident.Kind == tir.ResolvedEnumMember {
		ord := ee.ordinalByIdx[e.Ident.Item][e.Ident.EnumCtor]

		return dst.Exprs.Alloc(tir.Expr{
			Kind:   tir.EIntLit,
			IntVal: ord,
			Type:   ee.eraseType(e.Type),
			Origin: e.Origin,
		})
	}

	out := ee.Base.FoldExpr(self, src, dst, idx)
	n := dst.Exprs.Get(out)
	n.Type = ee.eraseType(n.Type)
	dst.Exprs.Set(out, n)

	return out
}

func (ee *eraseEnumFolder) FoldPattern(self transform.Folder, src, dst *tir.ItemData, idx tir.PatternIdx) tir.PatternIdx {
	if idx == arena.NoIndex {
		return arena.NoIndex
	}

	p := src.Patterns.Get(idx)

	if p.Kind == tir.PCall && len(p.Elems) == 0 {
		if ord, ok := ee.ordinalByName[p.CtorItem][p.Ctor]; ok {
			return dst.Patterns.Alloc(tir.Pattern{
				Kind:        tir.PLiteral,
				Type:        ee.eraseType(p.Type),
				IntVal:      ord,
				LiteralKind: tir.EIntLit,
			})
		}
	}

	out := ee.Base.FoldPattern(self, src, dst, idx)
	n := dst.Patterns.Get(out)
	n.Type = ee.eraseType(n.Type)
	dst.Patterns.Set(out, n)

	return out
}

func (ee *eraseEnumFolder) FoldDomain(self transform.Folder, src, dst *tir.ItemData, idx tir.DomainIdx) tir.DomainIdx {
	if idx == arena.NoIndex {
		return arena.NoIndex
	}

	d := src.Domains.Get(idx)

	if d.Kind == tir.DomUnbounded && ee.ctx.Interner.Lookup(d.Type).Kind == types.KindEnum {
		enumName := ee.ctx.Interner.Lookup(d.Type).EnumName
		erasedType := ee.eraseType(d.Type)

		lo := dst.Exprs.Alloc(tir.Expr{Kind: tir.EIntLit, IntVal: 1, Type: ee.ctx.Interner.Builtins().ParInt, Origin: tir.Introduced("erase-enum")})
		hi := dst.Exprs.Alloc(tir.Expr{Kind: tir.EIntLit, IntVal: ee.hiByName[enumName], Type: ee.ctx.Interner.Builtins().ParInt, Origin: tir.Introduced("erase-enum")})
		rng := dst.Exprs.Alloc(tir.Expr{
			Kind: tir.ELookupCall, LookupName: "..", Elems: []tir.ExprIdx{lo, hi},
			Type: erasedType, Origin: tir.Introduced("erase-enum"),
		})

		return dst.Domains.Alloc(tir.Domain{Kind: tir.DomBounded, Type: erasedType, Bounded: rng})
	}

	out := ee.Base.FoldDomain(self, src, dst, idx)
	n := dst.Domains.Get(out)
	n.Type = ee.eraseType(n.Type)
	dst.Domains.Set(out, n)

	return out
}

// eraseType returns t with every enum kind reachable from it replaced by
// the equivalent bounded-int kind, memoised across the whole pass.
func (ee *eraseEnumFolder) eraseType(t types.TypeID) types.TypeID {
	if t == types.NoType {
		return t
	}

	if got, ok := ee.memo[t]; ok {
		return got
	}

	in := ee.ctx.Interner
	d := in.Lookup(t)

	var out types.TypeID

	switch d.Kind {
	case types.KindEnum:
		out = in.Intern(types.Data{Kind: types.KindInt, Inst: d.Inst, Opt: d.Opt, Set: d.Set})
	case types.KindArray:
		idx := make([]types.TypeID, len(d.Index))
		for i, ix := range d.Index {
			idx[i] = ee.eraseType(ix)
		}

		out = in.Array(idx, ee.eraseType(d.Element))
		out = withSameModifiers(in, out, d)
	case types.KindTuple, types.KindRecord:
		fields := make([]types.Field, len(d.Fields))
		for i, f := range d.Fields {
			fields[i] = types.Field{Name: f.Name, Type: ee.eraseType(f.Type)}
		}

		if d.Kind == types.KindRecord {
			out = in.Record(fields)
		} else {
			out = in.Tuple(fieldTypes(fields)...)
		}

		out = withSameModifiers(in, out, d)
	case types.KindOp:
		params := make([]types.TypeID, len(d.Params))
		for i, p := range d.Params {
			params[i] = ee.eraseType(p)
		}

		out = in.Op(ee.eraseType(d.Result), params...)
	default:
		out = t
	}

	ee.memo[t] = out

	return out
}
