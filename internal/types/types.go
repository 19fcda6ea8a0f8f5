// Package types implements component 9: the structural type lattice with
// independent inst/opt modifiers, subtyping, and type-inst variable
// unification (§3.2, §4.9).
package types

import (
	"fmt"
	"strings"
)

// Inst is the "instance" modifier: par (fixed parameter) or var (decision
// variable). par <= var.
type Inst uint8

const (
	InstPar Inst = iota
	InstVar
)

func (i Inst) String() string {
	if i == InstVar {
		return "var"
	}

	return "par"
}

// LE reports whether i is a subtype-or-equal of other under par <= var.
func (i Inst) LE(other Inst) bool { return i <= other }

// Join returns the least upper bound of two inst modifiers.
func (i Inst) Join(other Inst) Inst {
	if i > other {
		return i
	}

	return other
}

// Opt is the modifier admitting an "absent" value. nonopt <= opt.
type Opt uint8

const (
	OptNonOpt Opt = iota
	OptOpt
)

func (o Opt) String() string {
	if o == OptOpt {
		return "opt"
	}

	return "nonopt"
}

// LE reports whether o is a subtype-or-equal of other under nonopt <= opt.
func (o Opt) LE(other Opt) bool { return o <= other }

// Join returns the least upper bound of two opt modifiers.
func (o Opt) Join(other Opt) Opt {
	if o > other {
		return o
	}

	return other
}

// SetOf is the modifier distinguishing plain values from sets of them.
type SetOf uint8

const (
	NonSet SetOf = iota
	IsSet
)

// Kind discriminates the structural spine of a type (§3.2 SPINE).
type Kind uint8

const (
	KindBottom Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindAnn
	KindEnum
	KindArray
	KindTuple
	KindRecord
	KindOp
	KindTyVar
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindBottom:
		return "bottom"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindAnn:
		return "ann"
	case KindEnum:
		return "enum"
	case KindArray:
		return "array"
	case KindTuple:
		return "tuple"
	case KindRecord:
		return "record"
	case KindOp:
		return "op"
	case KindTyVar:
		return "tyvar"
	case KindError:
		return "error"
	default:
		return "?"
	}
}

// TypeID is a compact, O(1)-comparable handle for a fully-applied type.
// Equal TypeIDs imply structurally equal types (I3).
type TypeID uint32

// NoType marks the absence of a type.
const NoType TypeID = 0

// Field is a named element of a record or tuple-with-names.
type Field struct {
	Name string // empty for a positional tuple field
	Type TypeID
}

// CapabilityFlags governs where a type-inst variable may be instantiated
// (§4.9).
type CapabilityFlags uint8

const (
	CapVarifiable CapabilityFlags = 1 << iota
	CapEnumerable
	CapIndexable
)

// Data is the structural descriptor of a type: the modifiers plus the
// spine-specific payload. Types are immutable once interned.
type Data struct {
	Kind Kind
	Inst Inst
	Opt  Opt
	Set  SetOf

	// KindEnum
	EnumName string

	// KindArray
	Index   []TypeID // index spine: a tuple of index types
	Element TypeID

	// KindTuple / KindRecord
	Fields []Field

	// KindOp
	Result TypeID
	Params []TypeID

	// KindTyVar
	TyVarName string
	TyVarCaps CapabilityFlags
}

func (d Data) key() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%d|%d|%d|%d", d.Kind, d.Inst, d.Opt, d.Set)

	switch d.Kind {
	case KindEnum:
		fmt.Fprintf(&b, "|%s", d.EnumName)
	case KindArray:
		fmt.Fprintf(&b, "|idx")
		for _, ix := range d.Index {
			fmt.Fprintf(&b, ",%d", ix)
		}
		fmt.Fprintf(&b, "|elt%d", d.Element)
	case KindTuple, KindRecord:
		for _, f := range d.Fields {
			fmt.Fprintf(&b, "|%s:%d", f.Name, f.Type)
		}
	case KindOp:
		fmt.Fprintf(&b, "|res%d|params", d.Result)
		for _, p := range d.Params {
			fmt.Fprintf(&b, ",%d", p)
		}
	case KindTyVar:
		fmt.Fprintf(&b, "|%s|%d", d.TyVarName, d.TyVarCaps)
	}

	return b.String()
}
