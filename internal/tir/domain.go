package tir

import (
	"github.com/shackle-rs/mzc/internal/arena"
	"github.com/shackle-rs/mzc/internal/types"
)

// DomainKind enumerates §3.4's domain sum type: "bounded(expr), array(index,
// elt), set(elt), tuple(ds), record(ds), unbounded".
type DomainKind uint8

const (
	DomUnbounded DomainKind = iota
	DomBounded
	DomArray
	DomSet
	DomTuple
	DomRecord
)

// DomainRecordField is one `name: domain` member of a DomRecord domain.
type DomainRecordField struct {
	Name   string
	Domain DomainIdx
}

// Domain is a first-class structured constraint on a declaration's value,
// paired with the type it constrains (§3.4). Domains live in an item's
// private Domains arena, mirroring Exprs/Patterns.
type Domain struct {
	Kind DomainKind
	Type types.TypeID

	Bounded ExprIdx // DomBounded: the bounding expression (range/enum/set)

	Index   []DomainIdx // DomArray: index spine
	Element DomainIdx   // DomArray/DomSet: element domain

	TupleFields []DomainIdx // DomTuple

	RecordFields []DomainRecordField // DomRecord
}

// DomainIdx indexes an item's private domain arena.
type DomainIdx = ExprIdx

// Domains is one item's private domain arena.
type Domains = arena.Arena[Domain]

// NewDomains constructs an empty per-item domain arena.
func NewDomains() *Domains { return arena.New[Domain](4) }

