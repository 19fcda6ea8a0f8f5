// Package symbols implements component 4.8: include resolution plus the
// per-file global scope and the local scopes chained outward from it
// through let expressions, function/lambda parameters, comprehension
// generators and case arms.
package symbols

import "github.com/shackle-rs/mzc/internal/arena"

// ScopeID and SymbolID index this package's own arenas. Like hir's
// ExprIdx/TypeIdx, they are plain arena.Index aliases rather than interned
// IDs — a scope/symbol only ever belongs to the one Table that built it.
type (
	ScopeID  = arena.Index
	SymbolID = arena.Index
)
