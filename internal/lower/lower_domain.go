package lower

import (
	"github.com/shackle-rs/mzc/internal/hir"
	"github.com/shackle-rs/mzc/internal/tir"
)

// lowerDomain converts one surface type-inst spine into a TIR Domain tree
// (§3.4/§4.12): TDomain keeps its bounding expression as DomBounded, TArray/
// TTuple/TRecord recurse structurally, and everything else (a bare
// primitive or an `any` placeholder) lowers to DomUnbounded — the
// domain-constraint pass (§4.14) later decides which of these need lifting
// into a stand-alone constraint.
func (l *Lowerer) lowerDomain(ref hir.ItemRef, tdata tir.ItemData, hdata *hir.ItemData, idx hir.TypeIdx) tir.DomainIdx {
	ty := l.Check.ResolveTypeRef(ref, hdata, idx)

	if idx == hir.NoIndex {
		return tdata.Domains.Alloc(tir.Domain{Kind: tir.DomUnbounded, Type: ty})
	}

	t := hdata.Types.Get(idx)

	var d tir.Domain

	switch t.Kind {
	case hir.TDomain:
		d = tir.Domain{Kind: tir.DomBounded, Type: ty, Bounded: l.lowerExpr(ref, tdata, t.Domain)}
	case hir.TArray:
		index := make([]tir.DomainIdx, len(t.Index))
		for i, ix := range t.Index {
			index[i] = l.lowerDomain(ref, tdata, hdata, ix)
		}

		d = tir.Domain{
			Kind: tir.DomArray, Type: ty, Index: index,
			Element: l.lowerDomain(ref, tdata, hdata, t.Element),
		}
	case hir.TTuple:
		fields := make([]tir.DomainIdx, len(t.TupleFields))
		for i, f := range t.TupleFields {
			fields[i] = l.lowerDomain(ref, tdata, hdata, f)
		}

		d = tir.Domain{Kind: tir.DomTuple, Type: ty, TupleFields: fields}
	case hir.TRecord:
		fields := make([]tir.DomainRecordField, len(t.RecordFields))
		for i, f := range t.RecordFields {
			fields[i] = tir.DomainRecordField{Name: f.Name, Domain: l.lowerDomain(ref, tdata, hdata, f.Type)}
		}

		d = tir.Domain{Kind: tir.DomRecord, Type: ty, RecordFields: fields}
	default:
		d = tir.Domain{Kind: tir.DomUnbounded, Type: ty}
	}

	if t.IsSet && d.Kind != tir.DomArray && d.Kind != tir.DomTuple && d.Kind != tir.DomRecord {
		d = tir.Domain{Kind: tir.DomSet, Type: ty, Element: tdata.Domains.Alloc(d)}
	}

	return tdata.Domains.Alloc(d)
}
