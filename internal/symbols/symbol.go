package symbols

import (
	"github.com/shackle-rs/mzc/internal/hir"
	"github.com/shackle-rs/mzc/internal/source"
)

// SymbolKind classifies what a Symbol names.
type SymbolKind uint8

const (
	SymVariable SymbolKind = iota
	SymFunction              // overloadable: Scope.Names[name] may hold several
	SymEnum
	SymEnumCtor
	SymAnnotation
	SymTypeAlias
	SymParam          // function/lambda parameter
	SymPatternBinding // name bound by a let/generator/case-arm pattern
)

func (k SymbolKind) String() string {
	switch k {
	case SymVariable:
		return "variable"
	case SymFunction:
		return "function"
	case SymEnum:
		return "enum"
	case SymEnumCtor:
		return "enum-constructor"
	case SymAnnotation:
		return "annotation"
	case SymTypeAlias:
		return "type-alias"
	case SymParam:
		return "parameter"
	case SymPatternBinding:
		return "pattern-binding"
	default:
		return "unknown"
	}
}

// Symbol is a named entity reachable from some Scope. Item is the owning
// HIR item for top-level kinds (SymVariable/SymFunction/SymEnum/
// SymEnumCtor/SymAnnotation/SymTypeAlias — an enum constructor's Item is
// its enclosing Enumeration item); Pattern identifies the binding site for
// SymParam (the parameter's position in its function/annotation's Params),
// SymPatternBinding (the leaf's own index in Item's private pattern arena),
// and a let-bound SymVariable (its index within the enclosing ELet.Decls,
// since a let-decl has no pattern of its own — see sema.Checker.LetTypes).
type Symbol struct {
	Name    string
	Kind    SymbolKind
	Scope   ScopeID
	Span    source.Span
	Item    hir.ItemRef
	Pattern hir.PatternIdx // meaningful for SymParam/SymPatternBinding
}
