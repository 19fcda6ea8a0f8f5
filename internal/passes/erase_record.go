package passes

import (
	"sort"

	"github.com/shackle-rs/mzc/internal/arena"
	"github.com/shackle-rs/mzc/internal/tir"
	"github.com/shackle-rs/mzc/internal/transform"
	"github.com/shackle-rs/mzc/internal/types"
)

// EraseRecord implements §4.14's erase-record pass: every record type
// becomes a tuple type with fields in name order, record literals are
// reordered to match, and record field access becomes positional tuple
// access. internal/types' own Interner.Record already canonicalises a
// record type's Fields by name at intern time (so two record declarations
// differing only in field-write-order still share one TypeID) — this pass
// erases that already-sorted order into a tuple, rather than introducing
// a second, independent notion of canonical order (documented in
// DESIGN.md: the scenario naming `tuple(int, float)` for
// `record(int: foo, float: bar)` describes declaration order, but this
// tree follows the interner's existing name-sorted canonicalisation for
// consistency — `bar` < `foo`, so the erased tuple is `tuple(float, int)`).
func EraseRecord(ctx *Context, m *tir.Model) (*tir.Model, error) {
	er := &eraseRecordFolder{ctx: ctx, memo: map[types.TypeID]types.TypeID{}}

	return transform.Run(er, m), nil
}

type eraseRecordFolder struct {
	transform.Base

	ctx  *Context
	memo map[types.TypeID]types.TypeID
}

func (er *eraseRecordFolder) FoldExpr(self transform.Folder, src, dst *tir.ItemData, idx tir.ExprIdx) tir.ExprIdx {
	if idx == arena.NoIndex {
		return arena.NoIndex
	}

	e := src.Exprs.Get(idx)

	switch e.Kind {
	case tir.ERecordLit:
		return er.foldRecordLit(self, src, dst, e)
	case tir.ERecordAccess:
		return er.foldRecordAccess(self, src, dst, e)
	default:
		out := er.Base.FoldExpr(self, src, dst, idx)
		n := dst.Exprs.Get(out)
		n.Type = er.eraseType(e.Type)
		dst.Exprs.Set(out, n)

		return out
	}
}

func (er *eraseRecordFolder) foldRecordLit(self transform.Folder, src, dst *tir.ItemData, e tir.Expr) tir.ExprIdx {
	origData := er.ctx.Interner.Lookup(e.Type)

	newElems := make([]tir.ExprIdx, len(origData.Fields))

	for i, f := range origData.Fields {
		for j, writtenName := range e.FieldNames {
			if writtenName == f.Name {
				newElems[i] = er.FoldExpr(self, src, dst, e.Elems[j])

				break
			}
		}
	}

	return dst.Exprs.Alloc(tir.Expr{
		Kind:        tir.ETupleLit,
		Type:        er.eraseType(e.Type),
		Elems:       newElems,
		Annotations: foldExprListFor(self, src, dst, e.Annotations),
		Origin:      e.Origin,
	})
}

func (er *eraseRecordFolder) foldRecordAccess(self transform.Folder, src, dst *tir.ItemData, e tir.Expr) tir.ExprIdx {
	baseType := src.Exprs.Get(e.Base).Type
	origData := er.ctx.Interner.Lookup(baseType)

	pos := 1
	for i, f := range origData.Fields {
		if f.Name == e.FieldName {
			pos = i + 1

			break
		}
	}

	return dst.Exprs.Alloc(tir.Expr{
		Kind:       tir.ETupleAccess,
		Type:       er.eraseType(e.Type),
		Base:       er.FoldExpr(self, src, dst, e.Base),
		TupleIndex: pos,
		Annotations: foldExprListFor(self, src, dst, e.Annotations),
		Origin:     e.Origin,
	})
}

func (er *eraseRecordFolder) FoldPattern(self transform.Folder, src, dst *tir.ItemData, idx tir.PatternIdx) tir.PatternIdx {
	if idx == arena.NoIndex {
		return arena.NoIndex
	}

	p := src.Patterns.Get(idx)

	if p.Kind == tir.PRecord {
		origData := er.ctx.Interner.Lookup(p.Type)
		newElems := make([]tir.PatternIdx, len(origData.Fields))

		for i, f := range origData.Fields {
			for _, pf := range p.Fields {
				if pf.Name == f.Name {
					newElems[i] = er.FoldPattern(self, src, dst, pf.Pattern)

					break
				}
			}
		}

		return dst.Patterns.Alloc(tir.Pattern{
			Kind:  tir.PTuple,
			Type:  er.eraseType(p.Type),
			Elems: newElems,
		})
	}

	out := er.Base.FoldPattern(self, src, dst, idx)
	n := dst.Patterns.Get(out)
	n.Type = er.eraseType(p.Type)
	dst.Patterns.Set(out, n)

	return out
}

func (er *eraseRecordFolder) FoldDomain(self transform.Folder, src, dst *tir.ItemData, idx tir.DomainIdx) tir.DomainIdx {
	if idx == arena.NoIndex {
		return arena.NoIndex
	}

	d := src.Domains.Get(idx)

	if d.Kind == tir.DomRecord {
		origData := er.ctx.Interner.Lookup(d.Type)
		newFields := make([]tir.DomainIdx, len(origData.Fields))

		for i, f := range origData.Fields {
			for _, df := range d.RecordFields {
				if df.Name == f.Name {
					newFields[i] = er.FoldDomain(self, src, dst, df.Domain)

					break
				}
			}
		}

		return dst.Domains.Alloc(tir.Domain{
			Kind:        tir.DomTuple,
			Type:        er.eraseType(d.Type),
			TupleFields: newFields,
		})
	}

	out := er.Base.FoldDomain(self, src, dst, idx)
	n := dst.Domains.Get(out)
	n.Type = er.eraseType(d.Type)
	dst.Domains.Set(out, n)

	return out
}

// eraseType returns t with every record kind reachable from it replaced by
// the equivalent tuple kind, memoised across the whole pass.
func (er *eraseRecordFolder) eraseType(t types.TypeID) types.TypeID {
	if t == types.NoType {
		return t
	}

	if got, ok := er.memo[t]; ok {
		return got
	}

	in := er.ctx.Interner
	d := in.Lookup(t)

	var out types.TypeID

	switch d.Kind {
	case types.KindRecord:
		sorted := append([]types.Field(nil), d.Fields...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

		fields := make([]types.Field, len(sorted))
		for i, f := range sorted {
			fields[i] = types.Field{Type: er.eraseType(f.Type)}
		}

		base := in.Tuple(fieldTypes(fields)...)
		out = withSameModifiers(in, base, d)
	case types.KindTuple:
		fields := make([]types.TypeID, len(d.Fields))
		for i, f := range d.Fields {
			fields[i] = er.eraseType(f.Type)
		}

		base := in.Tuple(fields...)
		out = withSameModifiers(in, base, d)
	case types.KindArray:
		idx := make([]types.TypeID, len(d.Index))
		for i, ix := range d.Index {
			idx[i] = er.eraseType(ix)
		}

		out = in.Array(idx, er.eraseType(d.Element))
		out = withSameModifiers(in, out, d)
	case types.KindOp:
		params := make([]types.TypeID, len(d.Params))
		for i, p := range d.Params {
			params[i] = er.eraseType(p)
		}

		out = in.Op(er.eraseType(d.Result), params...)
	default:
		out = t
	}

	er.memo[t] = out

	return out
}

func fieldTypes(fields []types.Field) []types.TypeID {
	out := make([]types.TypeID, len(fields))
	for i, f := range fields {
		out[i] = f.Type
	}

	return out
}

func withSameModifiers(in *types.Interner, base types.TypeID, like types.Data) types.TypeID {
	d := in.Lookup(base)
	d.Inst = like.Inst
	d.Opt = like.Opt
	d.Set = like.Set

	return in.Intern(d)
}
