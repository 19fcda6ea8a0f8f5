package symbols

import (
	"github.com/shackle-rs/mzc/internal/arena"
	"github.com/shackle-rs/mzc/internal/hir"
)

// Table owns every scope and symbol built for one file, plus the map from
// a lexical construct's introducing expression back to the scope it opens
// — the hook sema's expression walk uses to know which scope to start
// lookups from when it descends into a let/comprehension/case/lambda.
type Table struct {
	scopes  *arena.Arena[Scope]
	symbols *arena.Arena[Symbol]

	// ScopeOf maps the NodeRef of a Let/Comprehension/GeneratorCall/Case/
	// Lambda expression, or a Function/Annotation item's ItemRef, to the
	// ScopeID it introduces.
	ScopeOf map[ScopeOwner]ScopeID

	Global ScopeID
}

// ScopeOwner identifies the HIR construct that opens a scope: either a
// whole item (a function's parameter scope) or one expression slot within
// an item (a let/comprehension/case-arm/lambda nested inside it). Sub
// distinguishes the Nth generator or case arm of one comprehension/case
// node, which otherwise share a single ExprIdx.
type ScopeOwner struct {
	Item hir.ItemRef
	Expr hir.ExprIdx // arena.NoIndex when the owner is the item itself
	Sub  int
}

// NewTable constructs an empty table with its global scope already
// allocated.
func NewTable() *Table {
	t := &Table{
		scopes:  arena.New[Scope](32),
		symbols: arena.New[Symbol](128),
		ScopeOf: make(map[ScopeOwner]ScopeID, 32),
	}
	t.Global = t.scopes.Alloc(newScope(ScopeGlobal, arena.NoIndex))

	return t
}

// NewScope allocates a child scope chained to parent.
func (t *Table) NewScope(kind ScopeKind, parent ScopeID) ScopeID {
	return t.scopes.Alloc(newScope(kind, parent))
}

// Scope returns the scope at id. Panics on an invalid id, per the arena
// contract.
func (t *Table) Scope(id ScopeID) *Scope {
	s := t.scopes.Get(id)

	return &s
}

// Symbol returns the symbol at id.
func (t *Table) Symbol(id SymbolID) *Symbol {
	s := t.symbols.Get(id)

	return &s
}

// Declare adds sym to scope, returning its SymbolID. Overloadable kinds
// (SymFunction) accumulate under the same name; every other kind's second
// declaration under one name is still recorded (so diagnostics can report
// every site) but callers are expected to have already raised the
// corresponding ScopeDuplicate* diagnostic before calling Declare again.
func (t *Table) Declare(scope ScopeID, sym Symbol) SymbolID {
	sym.Scope = scope
	id := t.symbols.Alloc(sym)

	s := t.scopes.Get(scope)
	s.Names[sym.Name] = append(s.Names[sym.Name], id)
	s.Symbols = append(s.Symbols, id)
	t.scopes.Set(scope, s)

	return id
}

// Lookup walks scope and its ancestors outward, returning the first scope
// (innermost wins) that declares name. A non-overloadable name found in an
// outer scope still shadows one in an inner scope only if the inner scope
// itself has no entry — ordinary lexical shadowing.
func (t *Table) Lookup(scope ScopeID, name string) ([]SymbolID, bool) {
	for id := scope; ; {
		s := t.scopes.Get(id)
		if ids, ok := s.Names[name]; ok {
			return ids, true
		}

		if s.Parent == arena.NoIndex {
			return nil, false
		}

		id = s.Parent
	}
}
