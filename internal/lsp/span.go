package lsp

import (
	"github.com/shackle-rs/mzc/internal/hir"
	"github.com/shackle-rs/mzc/internal/source"
)

// rangeForSpan converts a byte-offset span into a line/column Range against
// file, grounded on the teacher's span.go rangeForSpan (simplified: this
// core reports byte-based LineCol positions rather than the teacher's
// UTF-16 code-unit columns, since that translation belongs to the LSP wire
// transport this package doesn't implement).
func rangeForSpan(file *source.File, span source.Span) Range {
	return Range{Start: file.LineCol(span.Start), End: file.LineCol(span.End)}
}

// offsetForPosition is rangeForSpan's inverse, used to turn a point query's
// line/column into the byte offset the HIR/TIR item-span search needs.
func offsetForPosition(file *source.File, pos Position) uint32 {
	return file.OffsetForLineCol(pos)
}

// itemAt returns the item whose span contains offset, scanning model.Items
// in source order. HIR only tracks item-level spans (§3.1), so this is the
// finest granularity a point query can resolve to without re-deriving
// sub-item spans nothing in the pipeline currently records.
func itemAt(model *hir.Model, offset uint32) (hir.ItemRef, *hir.ItemData, bool) {
	for _, ref := range model.Items {
		data := model.ItemData(ref)
		if data == nil {
			continue
		}

		if offset >= data.Span.Start && offset <= data.Span.End {
			return ref, data, true
		}
	}

	return hir.ItemRef{}, nil, false
}

// itemName returns the declared name of ref's item, or "" for item kinds
// that don't have one (constraint, output, solve).
func itemName(model *hir.Model, ref hir.ItemRef) string {
	switch ref.Kind {
	case hir.ItemAnnotation:
		return model.Annotations.Get(ref.Index).Name
	case hir.ItemAssignment:
		return model.Assignments.Get(ref.Index).Name
	case hir.ItemDeclaration:
		return model.Declarations.Get(ref.Index).Name
	case hir.ItemEnumeration:
		return model.Enumerations.Get(ref.Index).Name
	case hir.ItemFunction:
		return model.Functions.Get(ref.Index).Name
	case hir.ItemTypeAlias:
		return model.TypeAliases.Get(ref.Index).Name
	default:
		return ""
	}
}
