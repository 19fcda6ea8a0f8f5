package hir

import (
	"github.com/shackle-rs/mzc/internal/arena"
	"github.com/shackle-rs/mzc/internal/ast"
	"github.com/shackle-rs/mzc/internal/diag"
	"github.com/shackle-rs/mzc/internal/source"
)

// Lowerer turns one file's AST into a fresh HIR Model (§4.7). One Lowerer
// instance serves both dialects — the parser already normalizes E-Prime's
// find/given/letting/such-that surface onto the same var_decl/assignment/
// constraint/type_alias item vocabulary MiniZinc produces (§4.7's "two
// lowerers exist, one per dialect" note is honoured at the package level via
// LowerMiniZinc/LowerEPrime, two entry points that run the same lowering;
// the desugaring rules themselves — predicate/test, operator
// calls, generator-call, string interpolation, indexed/2-D array literals,
// infinite slice — are identical across dialects per §4.7's own wording).
type Lowerer struct {
	file  *source.File
	bag   *diag.Bag
	model *Model
}

// LowerMiniZinc lowers a MiniZinc-dialect AST file.
func LowerMiniZinc(file *source.File, f ast.File, bag *diag.Bag) *Model {
	return (&Lowerer{file: file, bag: bag, model: NewModel()}).run(f)
}

// LowerEPrime lowers an E-Prime-dialect AST file. The parser already folded
// find/given/letting/such-that onto the shared item vocabulary, so this is
// the same pipeline as LowerMiniZinc.
func LowerEPrime(file *source.File, f ast.File, bag *diag.Bag) *Model {
	return (&Lowerer{file: file, bag: bag, model: NewModel()}).run(f)
}

func (l *Lowerer) run(f ast.File) *Model {
	for _, it := range f.Items {
		l.lowerItem(it)
	}

	return l.model
}

// ctx bundles the per-item state a single item's lowering needs: its own
// private Exprs/Types/Patterns arenas (§3.3) plus a back-reference to the
// Lowerer for diagnostics and the shared SourceMap.
type ctx struct {
	l    *Lowerer
	data *ItemData
	ref  ItemRef // set once the item itself has been allocated
}

func (l *Lowerer) newCtx(span source.Span) *ctx {
	data := NewItemData(span)

	return &ctx{l: l, data: &data}
}

func (l *Lowerer) lowerItem(it ast.Item) {
	switch v := it.(type) {
	case ast.IncludeItem:
		// Include resolution is a separate query (§4.8); nothing to lower.
	case ast.VarDeclItem:
		l.lowerVarDecl(v)
	case ast.AssignmentItem:
		l.lowerAssignment(v)
	case ast.ConstraintItem:
		l.lowerConstraint(v)
	case ast.FunctionItem:
		l.lowerFunction(v)
	case ast.EnumItem:
		l.lowerEnum(v)
	case ast.AnnotationItem:
		l.lowerAnnotationDecl(v)
	case ast.OutputItem:
		l.lowerOutput(v)
	case ast.SolveItem:
		l.lowerSolve(v)
	case ast.TypeAliasItem:
		l.lowerTypeAlias(v)
	}
}

func (l *Lowerer) lowerVarDecl(v ast.VarDeclItem) {
	c := l.newCtx(v.Node().Span)
	ty := c.lowerType(v.Type())
	body := c.lowerOptExpr(v.Body())
	anns := c.lowerExprList(v.Annotations())

	ref := l.model.AddDeclaration(Declaration{
		ItemData: *c.data, Type: ty, Name: v.Name(), Body: body, Annotations: anns,
	})
	c.finish(ref)
}

func (l *Lowerer) lowerAssignment(v ast.AssignmentItem) {
	c := l.newCtx(v.Node().Span)
	val := c.lowerExpr(v.Value())

	ref := l.model.AddAssignment(Assignment{ItemData: *c.data, Name: v.Name(), Value: val})
	c.finish(ref)
}

func (l *Lowerer) lowerConstraint(v ast.ConstraintItem) {
	c := l.newCtx(v.Node().Span)
	e := c.lowerExpr(v.Expr())
	anns := c.lowerExprList(v.Annotations())

	ref := l.model.AddConstraint(Constraint{ItemData: *c.data, Expr: e, Annotations: anns})
	c.finish(ref)
}

func (l *Lowerer) lowerFunction(v ast.FunctionItem) {
	c := l.newCtx(v.Node().Span)

	surface := FnPlain

	retTy := c.lowerType(v.ReturnType())

	switch v.FnKind() {
	case ast.FnPredicate:
		surface = FnPredicate
		retTy = c.implicitVarBool()
	case ast.FnTest:
		surface = FnTest
		retTy = c.implicitVarBool()
	case ast.FnAnnotation:
		surface = FnAnnotation
	}

	params := c.lowerParams(v.Params())
	body := c.lowerOptExpr(v.Body())
	anns := c.lowerExprList(v.Annotations())

	ref := l.model.AddFunction(Function{
		ItemData: *c.data, FnKind: surface, Name: v.Name(), Params: params,
		ReturnType: retTy, Body: body, Annotations: anns,
	})
	c.finish(ref)
}

func (l *Lowerer) lowerEnum(v ast.EnumItem) {
	c := l.newCtx(v.Node().Span)

	var ctors []EnumCtor

	for _, ce := range v.Constructors() {
		ctors = append(ctors, c.lowerEnumCtor(ce))
	}

	ref := l.model.AddEnumeration(Enumeration{ItemData: *c.data, Name: v.Name(), Constructors: ctors})
	c.finish(ref)
}

func (l *Lowerer) lowerAnnotationDecl(v ast.AnnotationItem) {
	c := l.newCtx(v.Node().Span)
	params := c.lowerParams(v.Params())

	ref := l.model.AddAnnotation(Annotation{ItemData: *c.data, Name: v.Name(), Params: params})
	c.finish(ref)
}

func (l *Lowerer) lowerOutput(v ast.OutputItem) {
	c := l.newCtx(v.Node().Span)
	e := c.lowerExpr(v.Expr())

	ref := l.model.AddOutput(Output{ItemData: *c.data, Expr: e, Section: v.Section()})
	c.finish(ref)
}

func (l *Lowerer) lowerSolve(v ast.SolveItem) {
	c := l.newCtx(v.Node().Span)

	method := SolveSatisfy

	switch v.Method() {
	case ast.SolveMinimize:
		method = SolveMinimize
	case ast.SolveMaximize:
		method = SolveMaximize
	}

	obj := c.lowerOptExpr(v.Objective())
	anns := c.lowerExprList(v.Annotations())

	ref := l.model.AddSolve(Solve{ItemData: *c.data, Method: method, Objective: obj, Annotations: anns})
	c.finish(ref)
}

func (l *Lowerer) lowerTypeAlias(v ast.TypeAliasItem) {
	c := l.newCtx(v.Node().Span)
	ty := c.lowerType(v.Aliased())

	ref := l.model.AddTypeAlias(TypeAlias{ItemData: *c.data, Name: v.Name(), Type: ty})
	c.finish(ref)
}

// finish records ref on c so later helpers (none currently need it post
// hoc, but kept for symmetry with the source-map recording pattern) can
// look the item back up.
func (c *ctx) finish(ref ItemRef) { c.ref = ref }

// NoIndex re-exports arena.NoIndex for callers outside this package that
// need to compare against "absent" ExprIdx/TypeIdx/PatternIdx values (e.g.
// Body == hir.NoIndex for a declaration with no initializer).
const NoIndex = arena.NoIndex
