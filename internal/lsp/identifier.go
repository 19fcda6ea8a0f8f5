package lsp

import (
	"github.com/shackle-rs/mzc/internal/hir"
	"github.com/shackle-rs/mzc/internal/sema"
	"github.com/shackle-rs/mzc/internal/source"
	"github.com/shackle-rs/mzc/internal/symbols"
)

// IdentifierAtPoint implements §6.4's "identifier at point → resolution +
// locations of all references". Like ExpressionAtPoint, this resolves at
// item granularity: sema.Checker.Resolved records which symbol an
// identifier expression names keyed by (owning item, expression slot), not
// by the identifier's own span, so every use inside one item is reported
// once, as that item's span.
//
// It reports ok == false when pos lands inside an item that contains no
// identifier reference at all (e.g. a bare `constraint true;`).
func IdentifierAtPoint(file *source.File, model *hir.Model, checker *sema.Checker, table *symbols.Table, pos Position) (Definition, []ReferenceLocation, bool) {
	offset := offsetForPosition(file, pos)

	ref, _, ok := itemAt(model, offset)
	if !ok || checker == nil || table == nil {
		return Definition{}, nil, false
	}

	var symID symbols.SymbolID

	found := false

	for ir, sid := range checker.Resolved {
		if ir.Item == ref {
			symID = sid
			found = true

			break
		}
	}

	if !found {
		return Definition{}, nil, false
	}

	sym := table.Symbol(symID)

	declData := model.ItemData(sym.Item)
	if declData == nil {
		return Definition{}, nil, false
	}

	def := Definition{
		Name:  sym.Name,
		Kind:  sym.Kind.String(),
		Range: rangeForSpan(file, sym.Span),
	}

	seen := map[hir.ItemRef]bool{sym.Item: true}
	refs := []ReferenceLocation{{
		Range:    rangeForSpan(file, declData.Span),
		IsDecl:   true,
		ItemKind: sym.Item.Kind.String(),
	}}

	for ir, sid := range checker.Resolved {
		if sid != symID || seen[ir.Item] {
			continue
		}

		seen[ir.Item] = true

		data := model.ItemData(ir.Item)
		if data == nil {
			continue
		}

		refs = append(refs, ReferenceLocation{
			Range:    rangeForSpan(file, data.Span),
			ItemKind: ir.Item.Kind.String(),
		})
	}

	return def, refs, true
}
