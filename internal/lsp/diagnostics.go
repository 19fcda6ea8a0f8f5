package lsp

import (
	"fmt"

	"github.com/shackle-rs/mzc/internal/diag"
	"github.com/shackle-rs/mzc/internal/source"
)

// Diagnostics implements §6.4's "syntax errors, type errors, warnings"
// query: every diagnostic in bag attributed to file, translated to the
// §6.5 wire shape's line/column ranges via reg.
func Diagnostics(bag *diag.Bag, reg *source.Registry, file source.FileID) []Diagnostic {
	out := make([]Diagnostic, 0, bag.Len())

	for _, d := range bag.Iter() {
		if d.File != file {
			continue
		}

		out = append(out, translateDiagnostic(reg, d))
	}

	return out
}

func translateDiagnostic(reg *source.Registry, d diag.Diagnostic) Diagnostic {
	f := reg.Get(d.File)

	related := make([]RelatedDiagnostic, 0, len(d.Related))
	for _, r := range d.Related {
		related = append(related, RelatedDiagnostic{Range: rangeForSpan(f, r.Span), Label: r.Label})
	}

	return Diagnostic{
		Code:     fmt.Sprintf("%s-%d", d.Code.Group(), d.Code),
		Severity: severityString(d.Severity),
		Range:    rangeForSpan(f, d.Span),
		Message:  d.Message,
		Related:  related,
		Help:     d.Help,
	}
}

func severityString(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	default:
		return "hint"
	}
}
