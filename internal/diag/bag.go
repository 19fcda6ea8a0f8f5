package diag

import "sort"

// Bag accumulates diagnostics across a phase. Lowering and typing both
// append to a Bag and keep going (§7 Propagation); only the transform
// pipeline stops at the first error, which it signals via a returned error
// instead of a Bag entry.
type Bag struct {
	items []Diagnostic
}

// NewBag constructs an empty bag.
func NewBag() *Bag { return &Bag{} }

// Push appends a single diagnostic.
func (b *Bag) Push(d Diagnostic) { b.items = append(b.items, d) }

// Extend appends every diagnostic from other.
func (b *Bag) Extend(other *Bag) {
	if other == nil {
		return
	}

	b.items = append(b.items, other.items...)
}

// Iter returns the accumulated diagnostics in insertion order.
func (b *Bag) Iter() []Diagnostic { return b.items }

// Len returns the number of accumulated diagnostics.
func (b *Bag) Len() int { return len(b.items) }

// HasErrors reports whether any accumulated diagnostic is SevError.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity == SevError {
			return true
		}
	}

	return false
}

// Sort orders diagnostics by file, then span start, then code — the order
// the CLI and LSP renderers expect.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		a, c := b.items[i], b.items[j]
		if a.File != c.File {
			return a.File < c.File
		}

		if a.Span.Start != c.Span.Start {
			return a.Span.Start < c.Span.Start
		}

		return a.Code < c.Code
	})
}
