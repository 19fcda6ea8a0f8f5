package lower

import (
	"github.com/shackle-rs/mzc/internal/hir"
	"github.com/shackle-rs/mzc/internal/sema"
	"github.com/shackle-rs/mzc/internal/symbols"
	"github.com/shackle-rs/mzc/internal/tir"
)

// mappedItem returns the tir.ItemRef the stub pass already allocated for
// hirRef; every top-level item has one before any body is lowered (§4.12's
// "fills in resolved identifiers" assumes the full item-to-item mapping is
// already known).
func (l *Lowerer) mappedItem(hirRef hir.ItemRef) tir.ItemRef {
	return l.itemMap[hirRef]
}

// resolveIdentifier turns the symbol sema.Checker resolved at idx into a
// tir.ResolvedIdentifier. A function/annotation/enum/declaration/alias
// resolves to the item lowering already mapped; a parameter or a pattern/
// let binding — which names no top-level item of its own — resolves to
// ResolvedLocal, keyed by the enclosing item plus the binding's slot
// (sym.Pattern, the same index symbols.BuildLocalScopes stashed there).
func (l *Lowerer) resolveIdentifier(ref hir.ItemRef, idx hir.ExprIdx) tir.ResolvedIdentifier {
	id, ok := l.Check.Resolved[sema.IdentRef{Item: ref, Expr: idx}]
	if !ok {
		return tir.ResolvedIdentifier{}
	}

	sym := l.Table.Symbol(id)

	switch sym.Kind {
	case symbols.SymFunction:
		return tir.ResolvedIdentifier{Kind: tir.ResolvedFunction, Item: l.mappedItem(sym.Item)}
	case symbols.SymAnnotation:
		return tir.ResolvedIdentifier{Kind: tir.ResolvedAnnotation, Item: l.mappedItem(sym.Item)}
	case symbols.SymEnumCtor:
		enumRef := l.mappedItem(sym.Item)
		ctorIdx := ctorIndex(l.TIR.Enumerations.Get(enumRef.Index).Constructors, sym.Name)

		return tir.ResolvedIdentifier{Kind: tir.ResolvedEnumMember, Item: enumRef, EnumCtor: ctorIdx}
	case symbols.SymVariable:
		switch sym.Item.Kind {
		case hir.ItemDeclaration, hir.ItemAssignment:
			return tir.ResolvedIdentifier{Kind: tir.ResolvedDeclaration, Item: l.mappedItem(sym.Item)}
		default:
			return tir.ResolvedIdentifier{Kind: tir.ResolvedLocal, Item: l.mappedItem(sym.Item), Local: sym.Pattern}
		}
	case symbols.SymParam, symbols.SymPatternBinding:
		return tir.ResolvedIdentifier{Kind: tir.ResolvedLocal, Item: l.mappedItem(sym.Item), Local: sym.Pattern}
	case symbols.SymEnum, symbols.SymTypeAlias:
		return tir.ResolvedIdentifier{Kind: tir.ResolvedDeclaration, Item: l.mappedItem(sym.Item)}
	default:
		return tir.ResolvedIdentifier{}
	}
}

func ctorIndex(ctors []tir.EnumCtor, name string) int {
	for i, c := range ctors {
		if c.Name == name {
			return i
		}
	}

	return -1
}
