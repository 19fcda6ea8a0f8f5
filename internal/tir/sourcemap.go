package tir

import "github.com/shackle-rs/mzc/internal/cst"

// Origin is either a real CST node (carried forward from the HIR expression
// lowering produced this node from) or a named "introduced" marker for a
// node a pass synthesised — invariant I2 holds through TIR exactly as it
// does through HIR, so every Expr has one.
type Origin struct {
	Node       *cst.Node
	Introduced string
}

// IsIntroduced reports whether this origin has no backing CST node.
func (o Origin) IsIntroduced() bool { return o.Node == nil && o.Introduced != "" }

// FromNode builds a real-node origin, carried forward from the HIR node
// lowering consumed.
func FromNode(n *cst.Node) Origin { return Origin{Node: n} }

// Introduced builds a synthesized-node origin, tagged with why it exists
// (e.g. "output-generation", "erase-opt", "function-dispatch").
func Introduced(why string) Origin { return Origin{Introduced: why} }
