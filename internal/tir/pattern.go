package tir

import (
	"github.com/shackle-rs/mzc/internal/arena"
	"github.com/shackle-rs/mzc/internal/types"
)

// PatternKind enumerates the destructuring-template shapes, unchanged from
// HIR (§3.3/§4.12).
type PatternKind uint8

const (
	PIdent PatternKind = iota
	PWildcard
	PAbsent
	PLiteral
	PCall
	PTuple
	PRecord
	PMissing
)

// RecordPatternField is one `name: pattern` member of a record pattern.
type RecordPatternField struct {
	Name    string
	Pattern PatternIdx
}

// Pattern is one node of an item's private pattern arena. Type is the
// value type this pattern leaf binds to, computed during lowering from the
// sema results HIR carried.
type Pattern struct {
	Kind PatternKind
	Type types.TypeID

	Name string

	IntVal      int64
	FloatVal    float64
	BoolVal     bool
	StringVal   string
	IsNegative  bool
	LiteralKind ExprKind

	Ctor     string
	CtorItem ItemRef // the enumeration item Ctor names, once resolved
	Elems    []PatternIdx

	Fields []RecordPatternField
}

// Patterns is one item's private pattern arena.
type Patterns = arena.Arena[Pattern]

// NewPatterns constructs an empty per-item pattern arena.
func NewPatterns() *Patterns { return arena.New[Pattern](8) }

// IsSingular reports whether p admits exactly one value.
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

// IsRefutable reports whether p can fail to match.
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
