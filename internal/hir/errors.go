package hir

import (
	"github.com/shackle-rs/mzc/internal/diag"
	"github.com/shackle-rs/mzc/internal/source"
)

// The three rejections §4.7 calls out by name, each reported with a precise
// span rather than failing the whole lowering pass.

func diagRaggedMatrixRow(file source.FileID, span source.Span) diag.Diagnostic {
	return diag.Errorf(diag.SynNonUniform2DArray, file, span,
		"2-D array literal rows have differing lengths")
}

func diagMixedArrayIndexStyle(file source.FileID, span source.Span) diag.Diagnostic {
	return diag.Errorf(diag.SynMixedIndexStyle, file, span,
		"array literal mixes explicit indices with positional members")
}

func diagMismatchedLiteralKinds(file source.FileID, span source.Span) diag.Diagnostic {
	return diag.Errorf(diag.SynMixedLiteralKinds, file, span,
		"pattern mixes incompatible numeric literal kinds")
}
