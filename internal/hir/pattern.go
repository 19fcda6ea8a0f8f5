package hir

import "github.com/shackle-rs/mzc/internal/arena"

// PatternKind enumerates the destructuring-template shapes (§3.3).
type PatternKind uint8

const (
	PIdent PatternKind = iota
	PWildcard
	PAbsent
	PLiteral
	PCall // enum constructor application, e.g. `Some(x)`
	PTuple
	PRecord
	PMissing
)

// RecordPatternField is one `name: pattern` member of a record pattern.
type RecordPatternField struct {
	Name    string
	Pattern PatternIdx
}

// Pattern is one node of an item's private pattern arena.
type Pattern struct {
	Kind PatternKind

	Name string // PIdent

	// PLiteral.
	IntVal      int64
	FloatVal    float64
	BoolVal     bool
	StringVal   string
	IsNegative  bool
	LiteralKind ExprKind // EIntLit/EFloatLit/EBoolLit/EStringLit

	// PCall.
	Ctor  string
	Elems []PatternIdx // PCall args, PTuple members

	Fields []RecordPatternField // PRecord
}

// Patterns is one item's private pattern arena.
type Patterns = arena.Arena[Pattern]

// NewPatterns constructs an empty per-item pattern arena.
func NewPatterns() *Patterns { return arena.New[Pattern](8) }

// IsSingular reports whether p admits exactly one value (§3.3): an
// identifier, wildcard, or a composite all of whose members are singular.
func IsSingular(pats *Patterns, idx PatternIdx) bool {
	p := pats.Get(idx)

	switch p.Kind {
	case PIdent, PWildcard:
		return true
	case PTuple:
		for _, e := range p.Elems {
			if !IsSingular(pats, e) {
				return false
			}
		}

		return true
	case PRecord:
		for _, f := range p.Fields {
			if !IsSingular(pats, f.Pattern) {
				return false
			}
		}

		return true
	default:
		return false
	}
}

// IsRefutable reports whether p can fail to match (§3.3): literals,
// absent-markers, enum-constructor calls, and missing (error-recovery)
// patterns are refutable; identifiers/wildcards are not; composites are
// refutable if any member is.
func IsRefutable(pats *Patterns, idx PatternIdx) bool {
	p := pats.Get(idx)

	switch p.Kind {
	case PIdent, PWildcard:
		return false
	case PLiteral, PAbsent, PCall, PMissing:
		return true
	case PTuple:
		for _, e := range p.Elems {
			if IsRefutable(pats, e) {
				return true
			}
		}

		return false
	case PRecord:
		for _, f := range p.Fields {
			if IsRefutable(pats, f.Pattern) {
				return true
			}
		}

		return false
	default:
		return true
	}
}
