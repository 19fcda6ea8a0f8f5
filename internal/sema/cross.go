package sema

import (
	"github.com/shackle-rs/mzc/internal/diag"
	"github.com/shackle-rs/mzc/internal/hir"
	"github.com/shackle-rs/mzc/internal/symbols"
	"github.com/shackle-rs/mzc/internal/types"
)

// checkCrossSignature is §4.10's validation pass over the signatures phase
// one computed: every check here needs two or more items' resolved types
// side by side, which is why it runs after computeSignatures rather than
// folding into symbols.BuildGlobalScope's single-item-at-a-time walk.
func (c *Checker) checkCrossSignature() {
	c.checkDuplicateAnnotations()
	c.checkOverloadsDifferOnlyByReturn()
	c.checkDuplicateVariableDefinitions()
}

// checkDuplicateAnnotations flags two annotation items sharing a name:
// unlike functions, annotations are never distinguished by an overload
// ranking at a call site (§4.10), so any repeat is a collision.
func (c *Checker) checkDuplicateAnnotations() {
	s := c.Table.Scope(c.Table.Global)

	for name, ids := range s.Names {
		seen := false

		for _, id := range ids {
			sym := c.Table.Symbol(id)
			if sym.Kind != symbols.SymAnnotation {
				continue
			}

			if seen {
				c.report(diag.ScopeDuplicateAnnCtor, sym.Span,
					"redefinition of annotation \""+name+"\"")

				continue
			}

			seen = true
		}
	}
}

// checkOverloadsDifferOnlyByReturn flags two functions sharing a name and an
// identical resolved parameter-type signature but a different return type:
// §4.10 overload resolution ranks candidates purely by argument types, so
// such a pair could never be distinguished at a call site.
func (c *Checker) checkOverloadsDifferOnlyByReturn() {
	s := c.Table.Scope(c.Table.Global)

	for name, ids := range s.Names {
		var kept []FunctionEntry

		for _, id := range ids {
			sym := c.Table.Symbol(id)
			if sym.Kind != symbols.SymFunction {
				continue
			}

			entry := c.functionEntry(sym.Item)

			for _, prior := range kept {
				if !sameParamTypes(prior.Params, entry.Params) {
					continue
				}

				if prior.Return == entry.Return {
					continue // identical signature: already flagged by symbols.checkDuplicateFunctionSignatures
				}

				c.report(diag.TypeIllegalOverload, c.itemData(sym.Item).Span,
					"function \""+name+"\" collides with another overload differing only in return type")
			}

			kept = append(kept, entry)
		}
	}
}

func sameParamTypes(a, b []types.TypeID) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// checkDuplicateVariableDefinitions flags two occurrences that each give a
// global variable its value: a declaration with its own initializer, or any
// assignment item. A bare `var int: x;` followed by exactly one `x = 5;`
// is the legal split-declaration idiom and is not flagged — only a second
// value-giving occurrence is (§4.10: "the first definition from the
// declaration, if any, counts").
func (c *Checker) checkDuplicateVariableDefinitions() {
	s := c.Table.Scope(c.Table.Global)

	for name, ids := range s.Names {
		defs := 0
		var dupSpan *hir.ItemRef

		for _, id := range ids {
			sym := c.Table.Symbol(id)
			if sym.Kind != symbols.SymVariable {
				continue
			}

			switch sym.Item.Kind {
			case hir.ItemDeclaration:
				d := c.Model.Declarations.Get(sym.Item.Index)
				if d.Body == hir.NoIndex {
					continue
				}
			case hir.ItemAssignment:
				// always a defining occurrence
			default:
				continue
			}

			defs++
			if defs > 1 {
				item := sym.Item
				dupSpan = &item
			}
		}

		if dupSpan != nil {
			c.report(diag.ScopeDuplicateVariable, c.itemData(*dupSpan).Span,
				"redefinition of \""+name+"\"")
		}
	}
}
