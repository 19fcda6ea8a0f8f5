package sema

import (
	"github.com/shackle-rs/mzc/internal/hir"
	"github.com/shackle-rs/mzc/internal/symbols"
	"github.com/shackle-rs/mzc/internal/types"
)

// resolveTypeRef converts one surface type-inst (§4.9's TPrimitive/TDomain/
// TArray/TTuple/TRecord/TAny) belonging to item ref into a structural
// types.TypeID. A TDomain's bounding expression is resolved only far enough
// to tell par/var-int from par/var-float from a named enum/alias — it is
// not a general constant evaluator, since the compile-time value of an
// arbitrary domain expression belongs to the TIR passes (§4.14), not to
// signature typing.
func (c *Checker) resolveTypeRef(ref hir.ItemRef, data *hir.ItemData, idx hir.TypeIdx) types.TypeID {
	if idx == hir.NoIndex {
		return c.Interner.Builtins().Error
	}

	t := data.Types.Get(idx)

	base := c.resolveTypeRefSpine(ref, data, t)

	d := c.Interner.Lookup(base)
	if t.IsVar {
		d.Inst = types.InstVar
	}

	if t.IsOpt {
		d.Opt = types.OptOpt
	}

	if t.IsSet {
		d.Set = types.IsSet
	}

	return c.Interner.Intern(d)
}

// ResolveTypeRef exposes resolveTypeRef for internal/lower, which needs the
// same surface-type-inst-to-structural-type resolution after typing has
// already run (enum constructor argument types, a declaration's own domain
// type) without re-deriving it.
func (c *Checker) ResolveTypeRef(ref hir.ItemRef, data *hir.ItemData, idx hir.TypeIdx) types.TypeID {
	return c.resolveTypeRef(ref, data, idx)
}

func (c *Checker) resolveTypeRefSpine(ref hir.ItemRef, data *hir.ItemData, t hir.TypeRef) types.TypeID {
	switch t.Kind {
	case hir.TPrimitive:
		return c.primitiveType(t.Primitive)
	case hir.TAny:
		return c.Interner.TyVar("$T", types.CapVarifiable|types.CapEnumerable|types.CapIndexable)
	case hir.TDomain:
		return c.domainBaseType(ref, data, t.Domain)
	case hir.TArray:
		index := make([]types.TypeID, len(t.Index))
		for i, ix := range t.Index {
			index[i] = c.resolveTypeRef(ref, data, ix)
		}

		return c.Interner.Array(index, c.resolveTypeRef(ref, data, t.Element))
	case hir.TTuple:
		fields := make([]types.TypeID, len(t.TupleFields))
		for i, f := range t.TupleFields {
			fields[i] = c.resolveTypeRef(ref, data, f)
		}

		return c.Interner.Tuple(fields...)
	case hir.TRecord:
		fields := make([]types.Field, len(t.RecordFields))
		for i, f := range t.RecordFields {
			fields[i] = types.Field{Name: f.Name, Type: c.resolveTypeRef(ref, data, f.Type)}
		}

		return c.Interner.Record(fields)
	default:
		return c.Interner.Builtins().Error
	}
}

func (c *Checker) primitiveType(name string) types.TypeID {
	b := c.Interner.Builtins()

	switch name {
	case "bool":
		return b.ParBool
	case "float":
		return b.ParFloat
	case "string":
		return b.ParString
	case "ann":
		return b.ParAnn
	default: // "int" and anything unrecognised default to int
		return b.ParInt
	}
}

// domainBaseType looks at a domain's bounding expression only structurally:
// a float literal or `..`-range with a float endpoint makes a par float
// domain, a string literal a par string domain, a bare identifier naming
// an enum/alias reuses that item's type,
// and everything else (ranges, set literals, arbitrary expressions) is a
// par int domain, MiniZinc's default index/value type.
func (c *Checker) domainBaseType(ref hir.ItemRef, data *hir.ItemData, domain hir.ExprIdx) types.TypeID {
	b := c.Interner.Builtins()

	if domain == hir.NoIndex {
		return b.ParInt
	}

	e := data.Exprs.Get(domain)

	switch e.Kind {
	case hir.EFloatLit:
		return b.ParFloat
	case hir.EStringLit:
		return b.ParString
	case hir.EIdent:
		if t, ok := c.lookupNamedType(e.Name); ok {
			return t
		}

		return b.ParInt
	case hir.ECall:
		if e.Callee == ".." && len(e.Elems) == 2 {
			lo, hi := data.Exprs.Get(e.Elems[0]), data.Exprs.Get(e.Elems[1])
			if lo.Kind == hir.EFloatLit || hi.Kind == hir.EFloatLit {
				return b.ParFloat
			}
		}

		return b.ParInt
	default:
		return b.ParInt
	}
}

// lookupNamedType resolves a bare identifier appearing in domain position to
// an already-computed enum or type-alias signature, triggering that item's
// own (memoized, cycle-guarded) signature computation if needed.
func (c *Checker) lookupNamedType(name string) (types.TypeID, bool) {
	ids, ok := c.Table.Lookup(c.Table.Global, name)
	if !ok {
		return types.NoType, false
	}

	for _, id := range ids {
		sym := c.Table.Symbol(id)

		switch sym.Kind {
		case symbols.SymEnum:
			return c.enumType(sym.Item), true
		case symbols.SymTypeAlias:
			return c.aliasType(sym.Item), true
		}
	}

	return types.NoType, false
}
