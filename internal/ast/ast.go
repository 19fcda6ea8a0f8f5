// Package ast implements component 6 (§4.6): thin typed wrappers over the
// CST. No desugaring happens here — every wrapper is a view over a
// cst.Node, and accessor methods return child wrappers by field name.
package ast

import (
	"github.com/shackle-rs/mzc/internal/cst"
	"github.com/shackle-rs/mzc/internal/source"
)

// File is the root AST wrapper for one parsed source file.
type File struct {
	Tree  *cst.Tree
	Items []Item
}

// nodeSpan returns the node's source span, or the zero span for nil.
func nodeSpan(n *cst.Node) source.Span {
	if n == nil {
		return source.Span{}
	}

	return n.Span
}

// child resolves a named field and returns its raw node, or nil.
func child(n *cst.Node, field string) *cst.Node {
	return n.Field(field)
}

// children returns all positional (unnamed) children under field, used for
// repeated productions like item lists or call arguments stored under a
// single "items"/"args" field name.
func children(n *cst.Node, field string) []*cst.Node {
	f := n.Field(field)
	if f == nil {
		return nil
	}

	return f.Children
}
