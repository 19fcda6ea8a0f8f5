// Package lsp implements §6.4's language-server query surface: the core
// exposes read-only queries over an already-compiled driver.Result —
// expression/identifier at point, diagnostics, document formatting, and a
// semantic-token stream — and leaves the actual LSP wire transport
// (jsonrpc framing, textDocument/* routing) out of scope, per spec.md's
// Non-goals. Grounded on the teacher's internal/lsp package's query
// helpers (span.go, hover.go, analysis.go), without its server.go/
// jsonrpc.go transport layer.
package lsp

import (
	"github.com/shackle-rs/mzc/internal/source"
)

// Position is a 1-based line/column pair, matching source.LineCol rather
// than LSP wire protocol's 0-based UTF-16 code units — the transport layer
// this core doesn't implement is responsible for that translation.
type Position = source.LineCol

// Range is a half-open [Start, End) pair of Positions.
type Range struct {
	Start Position
	End   Position
}

// Hover is the result of an expression-at-point query: the enclosing item's
// name, kind, and pretty-printed type (empty for untyped item kinds like
// constraint/output/solve).
type Hover struct {
	Name  string
	Kind  string
	Type  string
	Range Range
}

// Definition is the declaration site identifier-at-point resolves to.
type Definition struct {
	Name  string
	Kind  string
	Range Range
}

// ReferenceLocation is one use (or the declaration itself) of a symbol
// identifier-at-point resolved.
type ReferenceLocation struct {
	Range      Range
	IsDecl     bool
	ItemKind   string
}

// Diagnostic is the §6.5 wire shape: code, severity, primary span, message,
// related spans with labels, optional help text.
type Diagnostic struct {
	Code     string
	Severity string
	Range    Range
	Message  string
	Related  []RelatedDiagnostic
	Help     string
}

// RelatedDiagnostic is one secondary span attached to a Diagnostic.
type RelatedDiagnostic struct {
	Range Range
	Label string
}

// TextEdit replaces the text in Range with NewText (document formatting's
// "new text range + replacement text", §6.4).
type TextEdit struct {
	Range   Range
	NewText string
}

// SemanticTokenKind classifies one token in the semantic-token stream.
type SemanticTokenKind uint8

const (
	TokVariable SemanticTokenKind = iota
	TokFunction
	TokEnum
	TokEnumCtor
	TokAnnotation
	TokTypeAlias
	TokParameter
)

func (k SemanticTokenKind) String() string {
	switch k {
	case TokVariable:
		return "variable"
	case TokFunction:
		return "function"
	case TokEnum:
		return "enum"
	case TokEnumCtor:
		return "enumMember"
	case TokAnnotation:
		return "annotation"
	case TokTypeAlias:
		return "type"
	case TokParameter:
		return "parameter"
	default:
		return "unknown"
	}
}

// SemanticToken is one (kind, is-par) entry of §6.4's semantic-token
// stream, positioned over the identifier's declaring range. IsPar is
// MiniZinc's par/var instantiation flag (types.Interner.KnownPar) — whether
// the identifier names a fixed value rather than a decision variable — not
// whether it is a function parameter (that's Kind == TokParameter).
type SemanticToken struct {
	Range Range
	Kind  SemanticTokenKind
	IsPar bool
}
