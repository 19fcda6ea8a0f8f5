package hir

import "github.com/shackle-rs/mzc/internal/source"

// ItemData is the bundle of three private arenas every item owns (§3.3):
// its own expressions, types and patterns never escape into another item's
// arena, keeping an item independently replaceable by a transform pass.
type ItemData struct {
	Exprs    *Exprs
	Types    *Types
	Patterns *Patterns

	// Annotations maps an ExprIdx to the annotation expressions attached to
	// it via `:: ann` — kept as a side-table rather than a field on Expr so
	// that most expressions (which carry none) don't pay for an empty slice
	// header per node.
	Annotations map[ExprIdx][]ExprIdx

	Span source.Span
}

// NewItemData constructs an empty ItemData bundle.
func NewItemData(span source.Span) ItemData {
	return ItemData{
		Exprs: NewExprs(), Types: NewTypes(), Patterns: NewPatterns(),
		Annotations: make(map[ExprIdx][]ExprIdx), Span: span,
	}
}

// Annotation is `annotation name(params);` with no body (§4.7).
type Annotation struct {
	ItemData
	Name   string
	Params []Param
}

// Param is one function/annotation parameter: a declared type plus name.
type Param struct {
	Type TypeIdx
	Name string
}

// Assignment is `name = expr;` (E-Prime: `letting`).
type Assignment struct {
	ItemData
	Name  string
	Value ExprIdx
}

// Constraint is `constraint expr;` (E-Prime: `such that`).
type Constraint struct {
	ItemData
	Expr        ExprIdx
	Annotations []ExprIdx
}

// Declaration is a variable declaration, with or without a right-hand side.
type Declaration struct {
	ItemData
	Type        TypeIdx
	Name        string
	Body        ExprIdx // NoIndex if absent
	Annotations []ExprIdx
}

// Enumeration is `enum Name = {A, B, C(int)};`.
type Enumeration struct {
	ItemData
	Name         string
	Constructors []EnumCtor
}

// EnumCtor is one enum member: a bare atom (`A`), the anonymous member
// (`_`), or a constructor application (`C(int)`) introducing an argument
// type.
type EnumCtor struct {
	Name string
	Arg  TypeIdx // NoIndex for a bare atom
	Anon bool
}

// Function is a function/predicate/test/annotation-function (§4.7
// desugars predicate/test to a function returning var bool; FnKind records
// the original surface so diagnostics can still call it a "predicate").
type Function struct {
	ItemData
	FnKind      FunctionSurface
	Name        string
	Params      []Param
	ReturnType  TypeIdx
	Body        ExprIdx // NoIndex for a declaration-only signature
	Annotations []ExprIdx
}

// FunctionSurface records which of the four surface forms a Function was
// declared with, purely for diagnostics — by the time lowering finishes,
// every Function already has a var-bool ReturnType if FnKind is
// FnPredicate/FnTest.
type FunctionSurface uint8

const (
	FnPlain FunctionSurface = iota
	FnPredicate
	FnTest
	FnAnnotation
)

// Output is `output [...];`, optionally tagged with a section.
type Output struct {
	ItemData
	Expr    ExprIdx
	Section string
}

// SolveMethod discriminates the solve method.
type SolveMethod uint8

const (
	SolveSatisfy SolveMethod = iota
	SolveMinimize
	SolveMaximize
)

// Solve is `solve satisfy;` / `solve minimize expr;` / `solve maximize expr;`.
type Solve struct {
	ItemData
	Method      SolveMethod
	Objective   ExprIdx // NoIndex for satisfy
	Annotations []ExprIdx
}

// TypeAlias is `type Name = typeinst;`.
type TypeAlias struct {
	ItemData
	Name string
	Type TypeIdx
}
