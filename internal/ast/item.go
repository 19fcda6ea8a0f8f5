package ast

import "github.com/shackle-rs/mzc/internal/cst"

// ItemKind discriminates a top-level item. Both dialect parsers (§4.7)
// target this shared vocabulary: E-Prime's `find`/`given`/`letting`/
// `such that` map onto the same `var_decl`/`assignment`/`constraint` node
// kinds a MiniZinc parse produces, so one HIR lowerer interface serves
// both surfaces.
type ItemKind string

const (
	IInclude    ItemKind = "include"
	IVarDecl    ItemKind = "var_decl"
	IAssignment ItemKind = "assignment"
	IConstraint ItemKind = "constraint"
	IFunction   ItemKind = "function" // covers function/predicate/test/annotation-fn
	IEnum       ItemKind = "enum"
	IAnnotation ItemKind = "annotation_decl"
	IOutput     ItemKind = "output"
	ISolve      ItemKind = "solve"
	ITypeAlias  ItemKind = "type_alias"
)

// Item is the sum type of top-level items.
type Item interface {
	Kind() ItemKind
	Node() *cst.Node
}

type itemBase struct{ n *cst.Node }

func (b itemBase) Node() *cst.Node { return b.n }

// IncludeItem is `include "path.mzn";`.
type IncludeItem struct{ itemBase }

func (IncludeItem) Kind() ItemKind { return IInclude }

// Path returns the quoted include path's raw text.
func (i IncludeItem) Path() string { return child(i.n, "path").Text() }

// VarDeclItem is a variable declaration, with or without a right-hand
// side: `var int: x;` or `int: x = 5;` (E-Prime: `find x : int(1..10)`,
// `given n : int`).
type VarDeclItem struct{ itemBase }

func (VarDeclItem) Kind() ItemKind { return IVarDecl }

// Type returns the declared type-inst.
func (v VarDeclItem) Type() TypeInst { return FromTypeNode(child(v.n, "type")) }

// Name returns the declared identifier.
func (v VarDeclItem) Name() string { return child(v.n, "name").Text() }

// Body returns the declaration's right-hand-side expression, or nil if
// absent (a pure declaration).
func (v VarDeclItem) Body() Expr { return FromNode(child(v.n, "body")) }

// Annotations returns the declaration's trailing `:: ann` expressions.
func (v VarDeclItem) Annotations() []Expr { return exprsFromNodes(children(v.n, "annotations")) }

// IsFunctionValued reports whether Type denotes a function type used as a
// function-item's parameter list placeholder (internal parser detail, not
// part of the surface grammar).
func (v VarDeclItem) IsFunctionValued() bool { return v.n.Field("fn_type") != nil }

// AssignmentItem is `name = expr;` at top level (E-Prime: `letting`).
type AssignmentItem struct{ itemBase }

func (AssignmentItem) Kind() ItemKind { return IAssignment }

// Name returns the assigned identifier.
func (a AssignmentItem) Name() string { return child(a.n, "name").Text() }

// Value returns the assigned expression.
func (a AssignmentItem) Value() Expr { return FromNode(child(a.n, "value")) }

// ConstraintItem is `constraint expr;` (E-Prime: `such that expr`).
type ConstraintItem struct{ itemBase }

func (ConstraintItem) Kind() ItemKind { return IConstraint }

// Expr returns the constraint's boolean expression.
func (c ConstraintItem) Expr() Expr { return FromNode(child(c.n, "expr")) }

// Annotations returns the constraint's trailing annotations.
func (c ConstraintItem) Annotations() []Expr { return exprsFromNodes(children(c.n, "annotations")) }

// FunctionKind distinguishes the four function-like item surfaces, which
// the HIR lowerer desugars predicate/test into a function returning bool
// (§4.7).
type FunctionKind string

const (
	FnFunction   FunctionKind = "function"
	FnPredicate  FunctionKind = "predicate"
	FnTest       FunctionKind = "test"
	FnAnnotation FunctionKind = "annotation"
)

// FunctionItem is a `function`/`predicate`/`test`/annotation-function
// declaration, with an optional body (`= expr` or `{ ... }`).
type FunctionItem struct{ itemBase }

func (FunctionItem) Kind() ItemKind { return IFunction }

// FnKind reports which of the four surfaces this item uses.
func (f FunctionItem) FnKind() FunctionKind { return FunctionKind(child(f.n, "fnkind").Text()) }

// Name returns the declared function's identifier.
func (f FunctionItem) Name() string { return child(f.n, "name").Text() }

// ReturnType returns the declared return type-inst (implicitly `var bool`
// for predicate/test).
func (f FunctionItem) ReturnType() TypeInst { return FromTypeNode(child(f.n, "ret")) }

// Params returns the function's parameter nodes (name + type-inst pairs),
// left raw for the HIR lowerer to turn into declarations.
func (f FunctionItem) Params() []*cst.Node { return children(f.n, "params") }

// Body returns the function's body expression, or nil for a declaration
// with no body (used by solver redefinitions and FlatZinc builtins).
func (f FunctionItem) Body() Expr { return FromNode(child(f.n, "body")) }

// Annotations returns the function's trailing annotations.
func (f FunctionItem) Annotations() []Expr { return exprsFromNodes(children(f.n, "annotations")) }

// EnumItem is `enum Name = {A, B, C(int)};`.
type EnumItem struct{ itemBase }

func (EnumItem) Kind() ItemKind { return IEnum }

// Name returns the enum's identifier.
func (e EnumItem) Name() string { return child(e.n, "name").Text() }

// Constructors returns the enum's constructor expressions (identifiers,
// `_` anonymous members, or `Name(type)` constructor applications).
func (e EnumItem) Constructors() []Expr { return exprsFromNodes(children(e.n, "constructors")) }

// AnnotationItem is `annotation name(params);` with no body — distinct
// from an annotation-returning FunctionItem, which has one.
type AnnotationItem struct{ itemBase }

func (AnnotationItem) Kind() ItemKind { return IAnnotation }

// Name returns the annotation's identifier.
func (a AnnotationItem) Name() string { return child(a.n, "name").Text() }

// Params returns the annotation's parameter nodes.
func (a AnnotationItem) Params() []*cst.Node { return children(a.n, "params") }

// OutputItem is `output [...];`, optionally tagged with a section
// identifier (`output ::section [...]`).
type OutputItem struct{ itemBase }

func (OutputItem) Kind() ItemKind { return IOutput }

// Expr returns the output's expression (an array of strings).
func (o OutputItem) Expr() Expr { return FromNode(child(o.n, "expr")) }

// Section returns the output's section tag, or "" if untagged.
func (o OutputItem) Section() string {
	if s := child(o.n, "section"); s != nil {
		return s.Text()
	}

	return ""
}

// SolveKind discriminates the solve method.
type SolveKind string

const (
	SolveSatisfy  SolveKind = "satisfy"
	SolveMinimize SolveKind = "minimize"
	SolveMaximize SolveKind = "maximize"
)

// SolveItem is `solve satisfy;` / `solve minimize expr;` /
// `solve maximize expr;`. Duplicate solve items across a model are rejected
// during scope collection (§4.8, diag.ScopeMultipleSolveItems).
type SolveItem struct{ itemBase }

func (SolveItem) Kind() ItemKind { return ISolve }

// Method reports the solve method.
func (s SolveItem) Method() SolveKind { return SolveKind(child(s.n, "method").Text()) }

// Objective returns the minimize/maximize objective expression, or nil for
// `satisfy`.
func (s SolveItem) Objective() Expr { return FromNode(child(s.n, "objective")) }

// Annotations returns the solve item's trailing annotations.
func (s SolveItem) Annotations() []Expr { return exprsFromNodes(children(s.n, "annotations")) }

// TypeAliasItem is `type Name = typeinst;`.
type TypeAliasItem struct{ itemBase }

func (TypeAliasItem) Kind() ItemKind { return ITypeAlias }

// Name returns the alias's identifier.
func (t TypeAliasItem) Name() string { return child(t.n, "name").Text() }

// Aliased returns the aliased type-inst.
func (t TypeAliasItem) Aliased() TypeInst { return FromTypeNode(child(t.n, "type")) }

// ItemFromNode dispatches on n.Kind to build the concrete Item wrapper.
func ItemFromNode(n *cst.Node) Item {
	if n == nil {
		return nil
	}

	b := itemBase{n}

	switch ItemKind(n.Kind) {
	case IInclude:
		return IncludeItem{b}
	case IVarDecl:
		return VarDeclItem{b}
	case IAssignment:
		return AssignmentItem{b}
	case IConstraint:
		return ConstraintItem{b}
	case IFunction:
		return FunctionItem{b}
	case IEnum:
		return EnumItem{b}
	case IAnnotation:
		return AnnotationItem{b}
	case IOutput:
		return OutputItem{b}
	case ISolve:
		return SolveItem{b}
	case ITypeAlias:
		return TypeAliasItem{b}
	default:
		return nil
	}
}

// ItemsFromTree builds a File from a parsed tree, skipping any top-level
// ERROR/MISSING nodes (surfaced separately via the tree's error scan).
func ItemsFromTree(t *cst.Tree) File {
	f := File{Tree: t}

	if t.Root == nil {
		return f
	}

	for _, n := range t.Root.Children {
		if it := ItemFromNode(n); it != nil {
			f.Items = append(f.Items, it)
		}
	}

	return f
}
