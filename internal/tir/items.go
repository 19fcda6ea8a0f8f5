package tir

import (
	"github.com/shackle-rs/mzc/internal/source"
	"github.com/shackle-rs/mzc/internal/types"
)

// ItemData is the bundle of private arenas every TIR item owns, mirroring
// HIR's shape plus the Domains arena §3.4 introduces.
type ItemData struct {
	Exprs    *Exprs
	Domains  *Domains
	Patterns *Patterns

	Annotations map[ExprIdx][]ExprIdx

	Span source.Span
}

// NewItemData constructs an empty ItemData bundle.
func NewItemData(span source.Span) ItemData {
	return ItemData{
		Exprs: NewExprs(), Domains: NewDomains(), Patterns: NewPatterns(),
		Annotations: make(map[ExprIdx][]ExprIdx), Span: span,
	}
}

// Annotation is `annotation name(params);` with no body.
type Annotation struct {
	ItemData
	Name   string
	Params []Param
}

// Param is one function/annotation parameter: its declared type, optional
// domain, and name.
type Param struct {
	Type   types.TypeID
	Domain DomainIdx // NoIndex when unconstrained
	Name   string
}

// Assignment is `name = expr;`.
type Assignment struct {
	ItemData
	Name  string
	Value ExprIdx
	Item  ItemRef // the Declaration this assignment fills in, if any
}

// Constraint is `constraint expr;`.
type Constraint struct {
	ItemData
	Expr        ExprIdx
	Annotations []ExprIdx
}

// Declaration is a variable declaration, with or without a right-hand side.
// After the domain-constraint pass, Domain holds only a set-like or
// structural domain — a bounded domain expression has been lifted into a
// stand-alone Constraint item (§4.14).
type Declaration struct {
	ItemData
	Type        types.TypeID
	Domain      DomainIdx
	Name        string
	Body        ExprIdx
	Annotations []ExprIdx
	// Output marks an implicit output variable: non-par, no annotation, no
	// definition (the output-generation pass sets this, §4.14).
	Output bool
}

// Enumeration is `enum Name = {A, B, C(int)};`.
type Enumeration struct {
	ItemData
	Name         string
	Constructors []EnumCtor
	// Erased is set by the erase-enum pass: the integer range this enum
	// maps to, plus the symbolic metadata `show` needs (§4.14, invariant I7).
	Erased *EnumErasure
}

// EnumCtor is one enum member.
type EnumCtor struct {
	Name string
	Arg  types.TypeID // NoType for a bare atom
	Anon bool
}

// EnumErasure is the side table erase-enum attaches to an Enumeration once
// its type has been mapped to a plain integer range.
type EnumErasure struct {
	Lo, Hi int64
	Names  []string // per-ordinal display name, parallel to the integer range
}

// Function is a function/predicate/test/annotation-function. MangledParams
// is the "mangled parameter types" slot §4.11 names: name-mangle fills it in
// with the pretty-printable per-parameter type list once a name collision
// needs disambiguating; empty until that pass runs.
type Function struct {
	ItemData
	FnKind       FunctionSurface
	Name         string
	MangledName  string
	Params       []Param
	ReturnType   types.TypeID
	Body         ExprIdx
	Annotations  []ExprIdx
	MangledTypes []types.TypeID
	// Specializations maps a concrete argument-type tuple key (built by
	// type-specialise) to the monomorphised copy's item, memoising
	// instantiation per §4.14.
	Specializations map[string]ItemRef
}

// FunctionSurface records which surface form a Function was declared with.
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
	Objective   ExprIdx
	Annotations []ExprIdx
}

// TypeAlias is `type Name = typeinst;`.
type TypeAlias struct {
	ItemData
	Name string
	Type types.TypeID
}
