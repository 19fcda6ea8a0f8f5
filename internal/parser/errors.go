package parser

import (
	"github.com/shackle-rs/mzc/internal/diag"
	"github.com/shackle-rs/mzc/internal/source"
)

// diagMixedArrayIndex reports an array literal that mixes explicit indices
// with positional members, in either order; the parser reports it while
// building the literal.
func diagMixedArrayIndex(file source.FileID, span source.Span) diag.Diagnostic {
	return diag.Errorf(diag.SynMixedIndexStyle, file, span,
		"array literal mixes explicit indices with positional members")
}
