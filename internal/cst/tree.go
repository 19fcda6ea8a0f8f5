// Package cst implements component 5 (§4.5): a generic concrete syntax
// tree over the token stream produced by internal/parser, plus the
// error-node scan and stable id→node map the AST and source maps need.
package cst

import (
	"github.com/shackle-rs/mzc/internal/source"
	"github.com/shackle-rs/mzc/internal/token"
)

// NodeID is a stable, arena-local identifier for a CST node (§3.1 I1: never
// reused once assigned).
type NodeID uint32

// Kind names a grammar production or terminal. Unlike a fixed enum, Kind is
// a string so the parser can introduce new productions without widening a
// central type — mirrored on tree-sitter's node-kind strings, which is what
// the original grammar (out of scope here) would have emitted.
type Kind string

const (
	KindError   Kind = "ERROR"
	KindMissing Kind = "MISSING"
	KindToken   Kind = "token"
)

// Node is one CST tree node: either a terminal wrapping a single token, or
// an interior node with named and positional children.
type Node struct {
	ID       NodeID
	Kind     Kind
	Span     source.Span
	Token    *token.Token // set for terminal nodes
	Children []*Node
	Fields   map[string]*Node // named children, e.g. "condition", "then"
}

// IsError reports whether n is a parser-synthesized error or missing node.
func (n *Node) IsError() bool { return n.Kind == KindError || n.Kind == KindMissing }

// Field looks up a named child, returning nil if absent.
func (n *Node) Field(name string) *Node {
	if n == nil || n.Fields == nil {
		return nil
	}

	return n.Fields[name]
}

// Text returns the terminal node's token text, or "" for interior nodes.
func (n *Node) Text() string {
	if n.Token == nil {
		return ""
	}

	return n.Token.Text
}

// Tree wraps the root node of one parsed file plus the id→node map needed
// for AST↔HIR source maps (§4.5).
type Tree struct {
	File  *source.File
	Root  *Node
	byID  map[NodeID]*Node
	next  NodeID
}

// NewTree constructs an empty tree for file; nodes are registered via
// Builder.
func NewTree(file *source.File) *Tree {
	return &Tree{File: file, byID: make(map[NodeID]*Node, 256), next: 1}
}

// NewNode allocates and registers a node, assigning it a fresh stable ID.
func (t *Tree) NewNode(kind Kind, span source.Span) *Node {
	n := &Node{ID: t.next, Kind: kind, Span: span}
	t.byID[t.next] = n
	t.next++

	return n
}

// Lookup resolves a NodeID back to its node.
func (t *Tree) Lookup(id NodeID) *Node { return t.byID[id] }

// Walk performs a pre-order traversal, calling visit for every node
// (interior and terminal).
func (t *Tree) Walk(visit func(*Node)) {
	var rec func(*Node)
	rec = func(n *Node) {
		if n == nil {
			return
		}

		visit(n)

		for _, c := range n.Children {
			rec(c)
		}
	}
	rec(t.Root)
}

// NamedChildren returns n's children whose Kind is not KindToken, in
// source order. Whether a child is also registered in Fields is not
// consulted.
func (n *Node) NamedChildren() []*Node {
	out := make([]*Node, 0, len(n.Children))

	for _, c := range n.Children {
		if c.Kind != KindToken {
			out = append(out, c)
		}
	}

	return out
}

// ErrorNode reports an ERROR or MISSING node alongside its offending
// neighbouring token, for the CST error scan (§4.5).
type ErrorNode struct {
	Node      *Node
	Neighbour *token.Token
}

// ErrorScan walks the tree and collects every ERROR/MISSING node.
func (t *Tree) ErrorScan() []ErrorNode {
	var out []ErrorNode

	t.Walk(func(n *Node) {
		if !n.IsError() {
			return
		}

		var neighbour *token.Token

		if len(n.Children) > 0 {
			if tok := n.Children[len(n.Children)-1].Token; tok != nil {
				neighbour = tok
			}
		}

		out = append(out, ErrorNode{Node: n, Neighbour: neighbour})
	})

	return out
}
