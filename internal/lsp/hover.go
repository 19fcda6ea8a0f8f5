package lsp

import (
	"github.com/shackle-rs/mzc/internal/hir"
	"github.com/shackle-rs/mzc/internal/sema"
	"github.com/shackle-rs/mzc/internal/source"
	"github.com/shackle-rs/mzc/internal/types"
)

// ExpressionAtPoint implements §6.4's "expression at point → typed IR
// expression + pretty-printed type" query at item granularity (the finest
// HIR currently tracks, see span.go's itemAt doc comment): it finds the
// item enclosing pos and reports its name, kind, and — for the item kinds
// computeSignatures actually types (declarations, functions, annotations,
// enums, type aliases) — its pretty-printed type via
// types.Interner.TypeName.
func ExpressionAtPoint(file *source.File, model *hir.Model, checker *sema.Checker, in *types.Interner, pos Position) (Hover, bool) {
	offset := offsetForPosition(file, pos)

	ref, data, ok := itemAt(model, offset)
	if !ok {
		return Hover{}, false
	}

	hover := Hover{
		Name:  itemName(model, ref),
		Kind:  ref.Kind.String(),
		Range: rangeForSpan(file, data.Span),
	}

	if checker == nil || in == nil {
		return hover, true
	}

	if v, ok := checker.Sigs.Vars[ref]; ok {
		hover.Type = in.TypeName(v.Type)
	} else if f, ok := checker.Sigs.Functions[ref]; ok {
		hover.Type = functionSignatureName(in, f)
	} else if a, ok := checker.Sigs.Annotations[ref]; ok {
		hover.Type = functionSignatureName(in, a)
	}

	return hover, true
}

func functionSignatureName(in *types.Interner, f sema.FunctionEntry) string {
	out := "("

	for i, p := range f.Params {
		if i > 0 {
			out += ", "
		}

		out += in.TypeName(p)
	}

	out += ") -> " + in.TypeName(f.Return)

	return out
}
