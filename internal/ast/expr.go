package ast

import (
	"strconv"
	"strings"

	"github.com/shackle-rs/mzc/internal/cst"
	"github.com/shackle-rs/mzc/internal/source"
)

// ExprKind discriminates the Expr sum type. Matched in FromNode's switch;
// since Go has no sum types, a CST kind string without a case there is not
// caught by the compiler and FromNode returns nil for it.
type ExprKind string

const (
	KIdent          ExprKind = "ident"
	KIntLit         ExprKind = "int_lit"
	KFloatLit       ExprKind = "float_lit"
	KBoolLit        ExprKind = "bool_lit"
	KStringLit      ExprKind = "string_lit"
	KArrayLit       ExprKind = "array_lit"
	KArrayLit2D     ExprKind = "array_lit_2d"
	KIndexedArray   ExprKind = "indexed_array_lit"
	KSetLit         ExprKind = "set_lit"
	KTupleLit       ExprKind = "tuple_lit"
	KRecordLit      ExprKind = "record_lit"
	KCall           ExprKind = "call"
	KBinOp          ExprKind = "binop"
	KUnOp           ExprKind = "unop"
	KIfThenElse     ExprKind = "if_then_else"
	KLet            ExprKind = "let"
	KGeneratorCall  ExprKind = "generator_call"
	KComprehension  ExprKind = "comprehension"
	KArrayAccess    ExprKind = "array_access"
	KTupleAccess    ExprKind = "tuple_access"
	KRecordAccess   ExprKind = "record_access"
	KRange          ExprKind = "range"
	KInfiniteSlice  ExprKind = "infinite_slice"
	KAnonEnum       ExprKind = "anon_enum"
	KAnnotated      ExprKind = "annotated"
	KAbsent         ExprKind = "absent"
	KInfinity       ExprKind = "infinity"
	KCase           ExprKind = "case"
	KLambda         ExprKind = "lambda"
)

// Expr is the sum type of expression AST nodes.
type Expr interface {
	Kind() ExprKind
	Node() *cst.Node
	Span() source.Span
}

type base struct{ n *cst.Node }

func (b base) Node() *cst.Node    { return b.n }
func (b base) Span() source.Span  { return nodeSpan(b.n) }

// Ident is a bare identifier reference.
type Ident struct {
	base
}

// Name returns the identifier's text.
func (i Ident) Name() string { return i.n.Text() }
func (Ident) Kind() ExprKind { return KIdent }

// IntLit is an integer literal, parsed lazily (§4.6).
type IntLit struct{ base }

func (IntLit) Kind() ExprKind { return KIntLit }

// Value parses the literal's text (decimal, 0x/0o/0b radix) into an int64.
func (l IntLit) Value() (int64, error) {
	text := strings.ReplaceAll(l.n.Text(), "_", "")

	switch {
	case strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X"):
		return strconv.ParseInt(text[2:], 16, 64)
	case strings.HasPrefix(text, "0o") || strings.HasPrefix(text, "0O"):
		return strconv.ParseInt(text[2:], 8, 64)
	case strings.HasPrefix(text, "0b") || strings.HasPrefix(text, "0B"):
		return strconv.ParseInt(text[2:], 2, 64)
	default:
		return strconv.ParseInt(text, 10, 64)
	}
}

// FloatLit is a floating literal.
type FloatLit struct{ base }

func (FloatLit) Kind() ExprKind { return KFloatLit }

// Value parses the literal's text into a float64.
func (l FloatLit) Value() (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(l.n.Text(), "_", ""), 64)
}

// BoolLit is `true`/`false`.
type BoolLit struct{ base }

func (BoolLit) Kind() ExprKind { return KBoolLit }

// Value reports the literal's boolean value.
func (l BoolLit) Value() bool { return l.n.Text() == "true" }

// StringLit is a double-quoted string, possibly containing `\(expr)`
// interpolation markers left for HIR lowering to desugar into `concat`/
// `show` calls (§4.7).
type StringLit struct{ base }

func (StringLit) Kind() ExprKind { return KStringLit }

// RawText returns the literal's unescaped source text, backslash escapes
// intact.
func (l StringLit) RawText() string { return l.n.Text() }

// ArrayLit is a 1-D array literal `[e1, e2, ...]`.
type ArrayLit struct{ base }

func (ArrayLit) Kind() ExprKind { return KArrayLit }

// Elements returns the literal's element expressions in source order.
func (l ArrayLit) Elements() []Expr {
	return exprsFromNodes(children(l.n, "elements"))
}

// ArrayLit2D is a 2-D matrix literal `[| r1c1, r1c2 | r2c1, r2c2 |]`. The
// lowerer rejects rows of differing length (§4.7).
type ArrayLit2D struct{ base }

func (ArrayLit2D) Kind() ExprKind { return KArrayLit2D }

// Rows returns each row's element expressions.
func (l ArrayLit2D) Rows() [][]Expr {
	rowNodes := children(l.n, "rows")
	out := make([][]Expr, len(rowNodes))

	for i, r := range rowNodes {
		out[i] = exprsFromNodes(r.Children)
	}

	return out
}

// IndexedArrayLit is an array literal with explicit index expressions,
// `[i1: e1, i2: e2]`. Mixing explicit and positional members is rejected by
// the lowerer (§4.7).
type IndexedArrayLit struct{ base }

func (IndexedArrayLit) Kind() ExprKind { return KIndexedArray }

// Pairs returns the (index, value) expression pairs in source order.
func (l IndexedArrayLit) Pairs() ([]Expr, []Expr) {
	idxNodes := children(l.n, "indices")
	valNodes := children(l.n, "values")

	return exprsFromNodes(idxNodes), exprsFromNodes(valNodes)
}

// SetLit is a set literal `{e1, e2}` (distinct from a range `lo..hi`).
type SetLit struct{ base }

func (SetLit) Kind() ExprKind { return KSetLit }

// Elements returns the literal's element expressions.
func (l SetLit) Elements() []Expr { return exprsFromNodes(children(l.n, "elements")) }

// TupleLit is `(e1, e2, ...)`.
type TupleLit struct{ base }

func (TupleLit) Kind() ExprKind { return KTupleLit }

// Elements returns the tuple's positional members.
func (l TupleLit) Elements() []Expr { return exprsFromNodes(children(l.n, "elements")) }

// RecordLit is `(name1: e1, name2: e2)`.
type RecordLit struct{ base }

func (RecordLit) Kind() ExprKind { return KRecordLit }

// Fields returns each (name, value) pair in source order.
func (l RecordLit) Fields() []RecordLitField {
	names := children(l.n, "names")
	vals := children(l.n, "values")
	out := make([]RecordLitField, 0, len(vals))

	for i, v := range vals {
		name := ""
		if i < len(names) {
			name = names[i].Text()
		}

		out = append(out, RecordLitField{Name: name, Value: FromNode(v)})
	}

	return out
}

// RecordLitField is one `name: value` entry in a RecordLit.
type RecordLitField struct {
	Name  string
	Value Expr
}

// Call is a function/operator application `f(a1, a2, ...)`. The HIR lowerer
// produces Call nodes for desugared prefix/infix/postfix operators too
// (§4.7), but at the AST stage a Call only represents surface call syntax.
type Call struct{ base }

func (Call) Kind() ExprKind { return KCall }

// Callee returns the called identifier expression.
func (c Call) Callee() Expr { return FromNode(child(c.n, "callee")) }

// Args returns the call's argument expressions.
func (c Call) Args() []Expr { return exprsFromNodes(children(c.n, "args")) }

// BinOp is a surface infix operator application, lowered to a Call in HIR
// (§4.7).
type BinOp struct{ base }

func (BinOp) Kind() ExprKind { return KBinOp }

// Op returns the operator token text (e.g. "+", "==", "intersect").
func (b BinOp) Op() string { return child(b.n, "op").Text() }

// Left returns the left operand.
func (b BinOp) Left() Expr { return FromNode(child(b.n, "left")) }

// Right returns the right operand.
func (b BinOp) Right() Expr { return FromNode(child(b.n, "right")) }

// UnOp is a surface prefix/postfix operator application.
type UnOp struct{ base }

func (UnOp) Kind() ExprKind { return KUnOp }

// Op returns the operator token text.
func (u UnOp) Op() string { return child(u.n, "op").Text() }

// Operand returns the operated-on expression.
func (u UnOp) Operand() Expr { return FromNode(child(u.n, "operand")) }

// IfThenElse is `if c then t elseif c2 then t2 else e endif`.
type IfThenElse struct{ base }

func (IfThenElse) Kind() ExprKind { return KIfThenElse }

// Branches returns the (condition, result) pairs for the `if`/`elseif`
// arms, in source order.
func (e IfThenElse) Branches() []IfBranch {
	conds := children(e.n, "conditions")
	thens := children(e.n, "thens")
	out := make([]IfBranch, 0, len(conds))

	for i, c := range conds {
		out = append(out, IfBranch{Cond: FromNode(c), Then: FromNode(thens[i])})
	}

	return out
}

// IfBranch is one condition/result arm of an IfThenElse.
type IfBranch struct {
	Cond Expr
	Then Expr
}

// Else returns the trailing else-branch expression.
func (e IfThenElse) Else() Expr { return FromNode(child(e.n, "else")) }

// Let is `let { decls } in body`.
type Let struct{ base }

func (Let) Kind() ExprKind { return KLet }

// Body returns the let's result expression.
func (l Let) Body() Expr { return FromNode(child(l.n, "body")) }

// DeclNodes returns the raw declaration-item CST nodes bound inside the
// let (var decls and constraints), left for the lowerer to interpret.
func (l Let) DeclNodes() []*cst.Node { return children(l.n, "decls") }

// GeneratorCall is the surface form `op(i in S where p)(expr)`, desugared
// in HIR to a call taking a single array-comprehension argument (§4.7).
type GeneratorCall struct{ base }

func (GeneratorCall) Kind() ExprKind { return KGeneratorCall }

// Op returns the reduction operator identifier (e.g. "forall", "sum").
func (g GeneratorCall) Op() string { return child(g.n, "op").Text() }

// Generators returns the comprehension's generator clauses.
func (g GeneratorCall) Generators() []Generator { return generatorsFromNode(child(g.n, "generators")) }

// Body returns the reduced expression.
func (g GeneratorCall) Body() Expr { return FromNode(child(g.n, "body")) }

// Comprehension is an array/set comprehension `[expr | generators]`.
type Comprehension struct{ base }

func (Comprehension) Kind() ExprKind { return KComprehension }

// IsSet reports whether this is a set comprehension (`{...}`) rather than
// an array comprehension (`[...]`).
func (c Comprehension) IsSet() bool { return c.n.Field("set") != nil }

// Body returns the comprehension's element expression.
func (c Comprehension) Body() Expr { return FromNode(child(c.n, "body")) }

// Generators returns the comprehension's generator clauses.
func (c Comprehension) Generators() []Generator { return generatorsFromNode(child(c.n, "generators")) }

// Generator is one `pattern in collection where cond?` clause.
type Generator struct {
	Patterns []Expr
	In       Expr
	Where    Expr // nil if absent
}

func generatorsFromNode(n *cst.Node) []Generator {
	if n == nil {
		return nil
	}

	out := make([]Generator, 0, len(n.Children))

	for _, g := range n.Children {
		out = append(out, Generator{
			Patterns: exprsFromNodes(children(g, "patterns")),
			In:       FromNode(child(g, "in")),
			Where:    FromNode(child(g, "where")),
		})
	}

	return out
}

// ArrayAccess is `base[index1, index2, ...]`.
type ArrayAccess struct{ base }

func (ArrayAccess) Kind() ExprKind { return KArrayAccess }

// Base returns the indexed expression.
func (a ArrayAccess) Base() Expr { return FromNode(child(a.n, "base")) }

// Indices returns the index expressions, one per array dimension.
func (a ArrayAccess) Indices() []Expr { return exprsFromNodes(children(a.n, "indices")) }

// TupleAccess is `base.N` for a 1-based tuple field index.
type TupleAccess struct{ base }

func (TupleAccess) Kind() ExprKind { return KTupleAccess }

// Base returns the accessed tuple expression.
func (a TupleAccess) Base() Expr { return FromNode(child(a.n, "base")) }

// Index returns the 1-based field index.
func (a TupleAccess) Index() (int64, error) {
	return strconv.ParseInt(child(a.n, "index").Text(), 10, 64)
}

// RecordAccess is `base.name`.
type RecordAccess struct{ base }

func (RecordAccess) Kind() ExprKind { return KRecordAccess }

// Base returns the accessed record expression.
func (a RecordAccess) Base() Expr { return FromNode(child(a.n, "base")) }

// Name returns the accessed field name.
func (a RecordAccess) Name() string { return child(a.n, "name").Text() }

// Range is `lo..hi`.
type Range struct{ base }

func (Range) Kind() ExprKind { return KRange }

// Lo returns the range's lower bound expression.
func (r Range) Lo() Expr { return FromNode(child(r.n, "lo")) }

// Hi returns the range's upper bound expression.
func (r Range) Hi() Expr { return FromNode(child(r.n, "hi")) }

// InfiniteSlice is the bare `..` used only inside an array access to mean
// "the rest of this dimension" (§4.7).
type InfiniteSlice struct{ base }

func (InfiniteSlice) Kind() ExprKind { return KInfiniteSlice }

// AnonEnum is the anonymous enumeration literal `_` used inside an enum
// declaration's constructor list.
type AnonEnum struct{ base }

func (AnonEnum) Kind() ExprKind { return KAnonEnum }

// Annotated is `expr :: ann1 :: ann2`.
type Annotated struct{ base }

func (Annotated) Kind() ExprKind { return KAnnotated }

// Inner returns the annotated expression.
func (a Annotated) Inner() Expr { return FromNode(child(a.n, "inner")) }

// Annotations returns the attached annotation expressions.
func (a Annotated) Annotations() []Expr { return exprsFromNodes(children(a.n, "annotations")) }

// Absent is the literal `<>`.
type Absent struct{ base }

func (Absent) Kind() ExprKind { return KAbsent }

// Infinity is the literal `infinity`.
type Infinity struct{ base }

func (Infinity) Kind() ExprKind { return KInfinity }

// Case is `case scrutinee of pattern1 => e1, pattern2 => e2 endcase`
// (§3.3). Patterns are parsed as expressions at the AST stage; the HIR
// lowerer reinterprets each arm's left side as a destructuring Pattern.
type Case struct{ base }

func (Case) Kind() ExprKind { return KCase }

// Scrutinee returns the matched expression.
func (c Case) Scrutinee() Expr { return FromNode(child(c.n, "scrutinee")) }

// Arms returns the case's (pattern, result) arms in source order.
func (c Case) Arms() []CaseArm {
	pats := children(c.n, "patterns")
	results := children(c.n, "results")
	out := make([]CaseArm, len(results))

	for i, r := range results {
		out[i] = CaseArm{Pattern: FromNode(pats[i]), Result: FromNode(r)}
	}

	return out
}

// CaseArm is one `pattern => result` arm of a Case expression.
type CaseArm struct {
	Pattern Expr
	Result  Expr
}

// Lambda is an anonymous function expression `lambda(params) => body`,
// introduced for the `inline-functions` and `decapture` passes' benefit at
// the TIR level (§4.14) but already representable at the surface (§3.3).
type Lambda struct{ base }

func (Lambda) Kind() ExprKind { return KLambda }

// ParamNodes returns the lambda's parameter type-inst/name pairs as raw nodes;
// the lowerer resolves these into HIR declarations.
func (l Lambda) ParamNodes() []*cst.Node { return children(l.n, "params") }

// Body returns the lambda's result expression.
func (l Lambda) Body() Expr { return FromNode(child(l.n, "body")) }

// FromNode dispatches on n.Kind to build the concrete Expr wrapper. Unknown
// kinds (including ERROR/MISSING CST nodes) map to nil; callers must check.
func FromNode(n *cst.Node) Expr {
	if n == nil {
		return nil
	}

	b := base{n}

	switch ExprKind(n.Kind) {
	case KIdent:
		return Ident{b}
	case KIntLit:
		return IntLit{b}
	case KFloatLit:
		return FloatLit{b}
	case KBoolLit:
		return BoolLit{b}
	case KStringLit:
		return StringLit{b}
	case KArrayLit:
		return ArrayLit{b}
	case KArrayLit2D:
		return ArrayLit2D{b}
	case KIndexedArray:
		return IndexedArrayLit{b}
	case KSetLit:
		return SetLit{b}
	case KTupleLit:
		return TupleLit{b}
	case KRecordLit:
		return RecordLit{b}
	case KCall:
		return Call{b}
	case KBinOp:
		return BinOp{b}
	case KUnOp:
		return UnOp{b}
	case KIfThenElse:
		return IfThenElse{b}
	case KLet:
		return Let{b}
	case KGeneratorCall:
		return GeneratorCall{b}
	case KComprehension:
		return Comprehension{b}
	case KArrayAccess:
		return ArrayAccess{b}
	case KTupleAccess:
		return TupleAccess{b}
	case KRecordAccess:
		return RecordAccess{b}
	case KRange:
		return Range{b}
	case KInfiniteSlice:
		return InfiniteSlice{b}
	case KAnonEnum:
		return AnonEnum{b}
	case KAnnotated:
		return Annotated{b}
	case KAbsent:
		return Absent{b}
	case KInfinity:
		return Infinity{b}
	case KCase:
		return Case{b}
	case KLambda:
		return Lambda{b}
	default:
		return nil
	}
}

func exprsFromNodes(nodes []*cst.Node) []Expr {
	out := make([]Expr, 0, len(nodes))

	for _, n := range nodes {
		if e := FromNode(n); e != nil {
			out = append(out, e)
		}
	}

	return out
}
