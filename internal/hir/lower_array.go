package hir

import "github.com/shackle-rs/mzc/internal/ast"

// lowerArrayLit2D desugars a 2-D matrix literal into a call to the builtin
// array2d constructor over a flattened row-major element list (§4.7). A row
// whose length disagrees with the first row's is rejected rather than
// silently padded or truncated.
func (c *ctx) lowerArrayLit2D(v ast.ArrayLit2D) ExprIdx {
	rows := v.Rows()

	width := 0
	if len(rows) > 0 {
		width = len(rows[0])
	}

	flat := make([]ExprIdx, 0, len(rows)*width)

	for _, row := range rows {
		if len(row) != width {
			c.l.bag.Push(diagRaggedMatrixRow(c.l.file.ID, v.Node().Span))

			break
		}

		flat = append(flat, c.lowerExprList(row)...)
	}

	dims := []ExprIdx{
		c.allocIntroduced(Expr{Kind: EIntLit, IntVal: int64(len(rows))}, "array2d-row-count"),
		c.allocIntroduced(Expr{Kind: EIntLit, IntVal: int64(width)}, "array2d-col-count"),
	}

	return c.allocIntroduced(Expr{
		Kind: ECall, Callee: "array2d", Elems: append(dims, flat...),
	}, "2d-literal-desugar")
}

// lowerIndexedArrayLit desugars an array literal with explicit indices into
// a call to the builtin arrayNd constructor taking the explicit index set
// and the values in source order (§4.7). The parser builds an indexed
// literal only when every member carries an explicit index, and reports a
// literal that mixes explicit and positional members itself.
func (c *ctx) lowerIndexedArrayLit(v ast.IndexedArrayLit) ExprIdx {
	idxExprs, valExprs := v.Pairs()

	for _, ie := range idxExprs {
		if ie == nil {
			c.l.bag.Push(diagMixedArrayIndexStyle(c.l.file.ID, v.Node().Span))

			break
		}
	}

	idxSet := c.allocIntroduced(Expr{Kind: ESetLit, Elems: c.lowerExprList(idxExprs)}, "indexed-array-index-set")
	vals := c.lowerExprList(valExprs)

	return c.allocIntroduced(Expr{
		Kind: ECall, Callee: "arrayNd", Elems: append([]ExprIdx{idxSet}, vals...),
	}, "indexed-array-desugar")
}
