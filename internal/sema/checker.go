package sema

import (
	"github.com/shackle-rs/mzc/internal/diag"
	"github.com/shackle-rs/mzc/internal/hir"
	"github.com/shackle-rs/mzc/internal/source"
	"github.com/shackle-rs/mzc/internal/symbols"
	"github.com/shackle-rs/mzc/internal/types"
)

// IdentRef identifies one EIdent (or pattern-position identifier) expression
// slot that was resolved against the symbol table, so a later TIR-lowering
// stage can turn it into a ResolvedIdentifier without re-running lookup.
type IdentRef struct {
	Item hir.ItemRef
	Expr hir.ExprIdx
}

// Checker runs component 4.10's two phases (signatures, then bodies) over
// one file's hir.Model plus the symbols.Table built for it, and exposes the
// results body typing and later TIR lowering both need.
type Checker struct {
	File    source.FileID
	Model   *hir.Model
	Table   *symbols.Table
	Interner *types.Interner
	Bag     *diag.Bag

	Sigs *Signatures

	// ExprTypes records the synthesised type of every typed expression,
	// keyed the same way IdentRef is (one map shared across items, since
	// ExprIdx is only unique paired with its owning ItemRef).
	ExprTypes map[IdentRef]types.TypeID

	// Resolved records, for every EIdent or destructuring-pattern binding
	// site, which symbol it names (§4.10 "records a PatternRef target").
	Resolved map[IdentRef]symbols.SymbolID

	// LetTypes holds one let-expression binding's type, keyed by the
	// owning item and the binding's index within its ELet.Decls (the
	// number symbols.BuildLocalScopes stashed in Symbol.Pattern for a
	// SymVariable declared inside a let, since a let-decl has no pattern
	// of its own to index by).
	LetTypes map[IdentRef]types.TypeID

	// PatternTypes holds the type bound to a destructuring pattern leaf
	// (generator binding, case-arm binding, lambda parameter), keyed by
	// the owning item and the leaf PatternIdx symbols.BuildLocalScopes
	// declared a SymPatternBinding against.
	PatternTypes map[IdentRef]types.TypeID

	inProgress map[hir.ItemRef]bool
}

// NewChecker constructs a Checker ready to run over model/table.
func NewChecker(file source.FileID, model *hir.Model, table *symbols.Table, in *types.Interner, bag *diag.Bag) *Checker {
	return &Checker{
		File:       file,
		Model:      model,
		Table:      table,
		Interner:   in,
		Bag:        bag,
		Sigs:       newSignatures(),
		ExprTypes:    make(map[IdentRef]types.TypeID, 256),
		Resolved:     make(map[IdentRef]symbols.SymbolID, 64),
		LetTypes:     make(map[IdentRef]types.TypeID, 16),
		PatternTypes: make(map[IdentRef]types.TypeID, 16),
		inProgress:   make(map[hir.ItemRef]bool, 8),
	}
}

// Run executes both typing phases plus the cross-signature check (§4.10).
func (c *Checker) Run() {
	c.computeSignatures()
	c.typeBodies()
	c.checkCrossSignature()
}

func (c *Checker) itemData(ref hir.ItemRef) *hir.ItemData { return c.Model.ItemData(ref) }

// spanOf returns the best-effort span for one of ref's expression slots,
// falling back to the item's own span when the expression's origin is an
// introduced (non-CST-backed) node.
func (c *Checker) spanOf(ref hir.ItemRef, idx hir.ExprIdx) source.Span {
	data := c.itemData(ref)

	origin, ok := c.Model.Source.Lookup(hir.NodeRef{Item: ref, Kind: hir.RefExpr, Idx: idx})
	if ok && !origin.IsIntroduced() {
		return origin.Node.Span
	}

	return data.Span
}

func (c *Checker) report(code diag.Code, span source.Span, msg string) {
	c.Bag.Push(diag.Errorf(code, c.File, span, msg))
}
