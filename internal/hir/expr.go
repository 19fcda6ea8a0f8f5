package hir

import "github.com/shackle-rs/mzc/internal/arena"

// ExprKind enumerates HIR expression kinds (§3.3). Desugarings performed at
// lowering time (predicate/test, generator-call, string interpolation,
// indexed/2-D array literals, infinite slice) never appear as their surface
// form below — they are represented as the already-desugared form (Call,
// Call, Call, Call, Call, the Slice marker respectively).
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
	ESlice // the infinite-slice marker `..` used only inside array access
	EComprehension
	EIfThenElse
	ECall
	ECase
	ELet
	ETupleAccess
	ERecordAccess
	ELambda
)

// Generator is one `i in S [where p]` clause of a comprehension.
type Generator struct {
	Patterns []PatternIdx
	Source   ExprIdx
	Where    ExprIdx // NoIndex if absent
}

// CaseArm is one `pattern -> result` arm of a case expression.
type CaseArm struct {
	Pattern PatternIdx
	Result  ExprIdx
}

// LetDecl is one local declaration inside a let expression's decl list; it
// reuses Declaration rather than duplicating its shape.
type LetDecl struct {
	Decl         Declaration
	IsConstraint bool // true when the let-item is a constraint, not a decl
	Constraint   ExprIdx
}

// Expr is one node of an item's private expression arena. Kind discriminates
// which fields are populated; unused fields are left zero.
type Expr struct {
	Kind ExprKind

	// Literals.
	IntVal    int64
	FloatVal  float64
	BoolVal   bool
	StringVal string

	// EIdent: the referenced name, resolved to a ResolvedIdentifier only in
	// TIR.
	Name string

	// ESetLit/EArrayLit/ETupleLit/ECall args, ELambda body-as-single-elem.
	Elems []ExprIdx

	// ERecordLit field names parallel to Elems.
	FieldNames []string

	// EArrayAccess: base + per-dimension index expressions (ESlice allowed
	// per-dimension).
	Base    ExprIdx
	Indices []ExprIdx

	// EComprehension: element expression(s) (two for a set-of-pairs style
	// map comprehension is out of scope; array/set comprehensions have one)
	// plus generator clauses.
	Generators []Generator

	// EIfThenElse: parallel Conds/Thens, plus a mandatory Else.
	Conds []ExprIdx
	Thens []ExprIdx
	Else  ExprIdx

	// ECall: callee name (builtin/operator/user function) already resolved
	// to an identifier by the operator-desugaring rule; Elems holds args.
	Callee string

	// ECase: scrutinee + arms.
	Scrutinee ExprIdx
	Arms      []CaseArm

	// ELet: local item list + body.
	Decls []LetDecl
	Body  ExprIdx

	// ETupleAccess: field index (1-based per surface syntax); ERecordAccess:
	// field name.
	TupleIndex int
	FieldName  string

	// ELambda: parameter patterns + declared param types (TypeIdx, may be
	// NoIndex when omitted) + return type (TypeIdx, may be NoIndex).
	Params     []PatternIdx
	ParamTypes []TypeIdx
	RetType    TypeIdx

	Annotations []ExprIdx
}

// Exprs is one item's private expression arena.
type Exprs = arena.Arena[Expr]

// NewExprs constructs an empty per-item expression arena.
func NewExprs() *Exprs { return arena.New[Expr](16) }
