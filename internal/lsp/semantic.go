package lsp

import (
	"github.com/shackle-rs/mzc/internal/hir"
	"github.com/shackle-rs/mzc/internal/sema"
	"github.com/shackle-rs/mzc/internal/source"
	"github.com/shackle-rs/mzc/internal/types"
)

// SemanticTokens implements §6.4's "semantic-token stream → per-identifier
// (kind, is-par) sequence" query, at the item-declaration granularity
// itemAt's doc comment explains: one token per top-level item name, rather
// than one per identifier occurrence in its body (HIR carries no per-
// occurrence spans to anchor those at).
func SemanticTokens(file *source.File, model *hir.Model, checker *sema.Checker, in *types.Interner) []SemanticToken {
	tokens := make([]SemanticToken, 0, len(model.Items))

	for _, ref := range model.Items {
		data := model.ItemData(ref)
		if data == nil || itemName(model, ref) == "" {
			continue
		}

		tok, ok := semanticTokenFor(file, model, checker, in, ref, data)
		if ok {
			tokens = append(tokens, tok)
		}
	}

	return tokens
}

func semanticTokenFor(file *source.File, model *hir.Model, checker *sema.Checker, in *types.Interner, ref hir.ItemRef, data *hir.ItemData) (SemanticToken, bool) {
	tok := SemanticToken{Range: rangeForSpan(file, data.Span)}

	switch ref.Kind {
	case hir.ItemDeclaration, hir.ItemAssignment:
		tok.Kind = TokVariable
	case hir.ItemFunction:
		tok.Kind = TokFunction
	case hir.ItemEnumeration:
		tok.Kind = TokEnum
	case hir.ItemAnnotation:
		tok.Kind = TokAnnotation
	case hir.ItemTypeAlias:
		tok.Kind = TokTypeAlias
	default:
		return SemanticToken{}, false
	}

	if checker == nil || in == nil {
		return tok, true
	}

	if v, ok := checker.Sigs.Vars[ref]; ok {
		tok.IsPar = in.KnownPar(v.Type)
	}

	return tok, true
}
