// Package sema implements component 4.10: two-phase signature and body
// typing over an hir.Model plus the symbols.Table component 4.8 built for
// it, producing ranked overload resolution results and the cross-signature
// checks that validate an overload set is parameter-driven.
package sema

import (
	"github.com/shackle-rs/mzc/internal/hir"
	"github.com/shackle-rs/mzc/internal/types"
)

// VarEntry is the computed signature of a top-level variable-like item
// (declaration, assignment, enum, type alias): just its type, since none of
// these introduce an overload set.
type VarEntry struct {
	Type types.TypeID
	Item hir.ItemRef
}

// FunctionEntry is the computed signature of one function/predicate/test/
// annotation-function candidate (§4.10's "FunctionEntry").
type FunctionEntry struct {
	Name    string
	Params  []types.TypeID
	Return  types.TypeID
	Item    hir.ItemRef
	FnKind  hir.FunctionSurface
}

// Signatures holds every top-level item's computed signature, the first-
// phase result that body typing (Checker) consumes.
type Signatures struct {
	Vars      map[hir.ItemRef]VarEntry
	Functions map[hir.ItemRef]FunctionEntry
	Annotations map[hir.ItemRef]FunctionEntry
}

func newSignatures() *Signatures {
	return &Signatures{
		Vars:        make(map[hir.ItemRef]VarEntry, 32),
		Functions:   make(map[hir.ItemRef]FunctionEntry, 32),
		Annotations: make(map[hir.ItemRef]FunctionEntry, 8),
	}
}
