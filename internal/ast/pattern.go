package ast

import "github.com/shackle-rs/mzc/internal/cst"

// PatternKind discriminates a destructuring pattern (§3.3).
type PatternKind string

const (
	PIdent    PatternKind = "pat_ident"
	PWildcard PatternKind = "pat_wildcard"
	PAbsent   PatternKind = "pat_absent"
	PLiteral  PatternKind = "pat_literal"
	PCall     PatternKind = "pat_call" // enum constructor application
	PTuple    PatternKind = "pat_tuple"
	PRecord   PatternKind = "pat_record"
	PMissing  PatternKind = "pat_missing"
)

// Pattern wraps a pattern CST node.
type Pattern struct {
	n *cst.Node
}

// FromPatternNode wraps a pattern node.
func FromPatternNode(n *cst.Node) Pattern { return Pattern{n} }

// Kind reports the pattern's discriminant.
func (p Pattern) Kind() PatternKind { return PatternKind(p.n.Kind) }

// Node returns the underlying CST node.
func (p Pattern) Node() *cst.Node { return p.n }

// Name returns the bound identifier's text (PIdent only).
func (p Pattern) Name() string { return p.n.Text() }

// Negated reports whether a PLiteral pattern carries a leading `-`.
func (p Pattern) Negated() bool { return p.n.Field("negate") != nil }

// Literal returns the wrapped literal expression (PLiteral only).
func (p Pattern) Literal() Expr { return FromNode(child(p.n, "literal")) }

// Constructor returns the enum constructor name (PCall only).
func (p Pattern) Constructor() string { return child(p.n, "constructor").Text() }

// Args returns the constructor's sub-patterns (PCall only).
func (p Pattern) Args() []Pattern { return patternsFromNodes(children(p.n, "args")) }

// Elements returns a tuple pattern's member patterns (PTuple only).
func (p Pattern) Elements() []Pattern { return patternsFromNodes(children(p.n, "elements")) }

// Fields returns a record pattern's (name, pattern) members (PRecord only).
func (p Pattern) Fields() []RecordPatternField {
	names := children(p.n, "names")
	vals := children(p.n, "values")
	out := make([]RecordPatternField, len(vals))

	for i, v := range vals {
		out[i] = RecordPatternField{Name: names[i].Text(), Pattern: FromPatternNode(v)}
	}

	return out
}

// RecordPatternField is one `name: pattern` member of a record pattern.
type RecordPatternField struct {
	Name    string
	Pattern Pattern
}

// IsSingular reports whether the pattern matches exactly one value (§3.3):
// an identifier, wildcard binds everything; a literal/call/tuple/record can
// fail to match and so is not singular unless every sub-pattern is.
func (p Pattern) IsSingular() bool {
	switch p.Kind() {
	case PIdent, PWildcard, PMissing:
		return true
	case PTuple:
		for _, e := range p.Elements() {
			if !e.IsSingular() {
				return false
			}
		}

		return true
	case PRecord:
		for _, f := range p.Fields() {
			if !f.Pattern.IsSingular() {
				return false
			}
		}

		return true
	default:
		return false
	}
}

// IsRefutable reports whether the pattern can fail to match a value.
func (p Pattern) IsRefutable() bool { return !p.IsSingular() }

func patternsFromNodes(nodes []*cst.Node) []Pattern {
	out := make([]Pattern, len(nodes))
	for i, n := range nodes {
		out[i] = FromPatternNode(n)
	}

	return out
}
