package tir

import (
	"github.com/shackle-rs/mzc/internal/arena"
	"github.com/shackle-rs/mzc/internal/types"
)

// ExprKind enumerates TIR expression kinds: HIR's set plus the two §4.11
// additions — LookupCall (a call kept by name with its overload still open;
// neither lowering nor any pass in internal/passes resolves it) and a Callable
// value (naming a function, an annotation, or wrapping a plain expression).
type ExprKind uint8

const (
	EIntLit ExprKind = iota
	EFloatLit
	EBoolLit
	EStringLit
	EAbsent
	EInfinity
	EIdent
	ESetLit
	EArrayLit
	ETupleLit
	ERecordLit
	EArrayAccess
	ESlice
	EComprehension
	EIfThenElse
	ECall
	ELookupCall // call-by-name pending overload resolution
	ECase
	ELet
	ETupleAccess
	ERecordAccess
	ELambda
	ECallable
)

// CallableKind discriminates what an ECallable expression names.
type CallableKind uint8

const (
	CallableFunction CallableKind = iota
	CallableAnnotation
	CallableExpr
)

// Generator is one `i in S [where p]` clause of a comprehension.
type Generator struct {
	Patterns []PatternIdx
	Source   ExprIdx
	Where    ExprIdx
}

// CaseArm is one `pattern -> result` arm of a case expression.
type CaseArm struct {
	Pattern PatternIdx
	Result  ExprIdx
}

// LetDecl is one local declaration inside a let expression's decl list.
type LetDecl struct {
	Decl         Declaration
	IsConstraint bool
	Constraint   ExprIdx
}

// Expr is one node of an item's private expression arena. Every Expr
// carries its computed Type, its source Origin, and its Annotations list —
// §4.11's "(data, type, origin, annotations)" tuple — in addition to the
// Kind-discriminated data fields HIR's Expr carries.
type Expr struct {
	Kind ExprKind
	Type types.TypeID

	IntVal    int64
	FloatVal  float64
	BoolVal   bool
	StringVal string

	// EIdent: the identifier this expression names, resolved during
	// lowering — TIR never carries an unresolved plain name.
	Ident ResolvedIdentifier

	Elems      []ExprIdx
	FieldNames []string

	Base    ExprIdx
	Indices []ExprIdx

	Generators []Generator

	Conds []ExprIdx
	Thens []ExprIdx
	Else  ExprIdx

	// ECall: the resolved callee function/annotation item.
	Callee ItemRef
	// ELookupCall: the callee name, still open to overload resolution.
	LookupName string

	Scrutinee ExprIdx
	Arms      []CaseArm

	Decls []LetDecl
	Body  ExprIdx

	TupleIndex int
	FieldName  string

	Params     []PatternIdx
	ParamTypes []types.TypeID
	RetType    types.TypeID

	// ECallable.
	CallableKind CallableKind
	CallableItem ItemRef // CallableFunction/CallableAnnotation
	CallableExpr ExprIdx // CallableExpr

	Annotations []ExprIdx

	Origin Origin
}

// Exprs is one item's private expression arena.
type Exprs = arena.Arena[Expr]

// NewExprs constructs an empty per-item expression arena.
func NewExprs() *Exprs { return arena.New[Expr](16) }
