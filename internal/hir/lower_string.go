package hir

import (
	"strings"

	"github.com/shackle-rs/mzc/internal/ast"
	"github.com/shackle-rs/mzc/internal/parser"
	"github.com/shackle-rs/mzc/internal/source"
)

// lowerStringLit desugars a string literal's `\(expr)` interpolation
// segments into one `concat` call over the literal text segments and
// `show`-wrapped expression segments (§4.7). A literal with no
// interpolation markers lowers straight to an EStringLit.
func (c *ctx) lowerStringLit(v ast.StringLit) ExprIdx {
	raw := strings.TrimSuffix(strings.TrimPrefix(v.RawText(), `"`), `"`)
	segs := splitInterpolation(raw)
	if len(segs) == 1 && !segs[0].isExpr {
		return c.alloc(Expr{Kind: EStringLit, StringVal: segs[0].text}, v.Node())
	}

	parts := make([]ExprIdx, 0, len(segs))

	for _, s := range segs {
		if !s.isExpr {
			parts = append(parts, c.allocIntroduced(Expr{Kind: EStringLit, StringVal: s.text}, "string-interpolation-literal"))

			continue
		}

		parts = append(parts, c.lowerInterpolatedSegment(s.text, v))
	}

	return c.allocIntroduced(Expr{Kind: ECall, Callee: "concat", Elems: parts}, "string-interpolation-desugar")
}

// lowerInterpolatedSegment re-parses one `\(...)` segment's inner text as a
// standalone expression and wraps it in a `show` call. The segment is
// parsed from a synthetic file sharing the enclosing file's ID and dialect,
// so its reported spans name the right file but count offsets from the
// start of the segment text, not from the substring's true offset —
// an accepted imprecision, since the alternative is threading byte offsets
// through the lexer for a rarely-diagnosed position.
func (c *ctx) lowerInterpolatedSegment(text string, v ast.StringLit) ExprIdx {
	sub := &source.File{ID: c.l.file.ID, Path: c.l.file.Path, Content: []byte(text), Dialect: c.l.file.Dialect}

	bag := c.l.bag
	node := parser.ParseExpr(sub, bag)

	inner := c.lowerExpr(ast.FromNode(node))
	if inner == NoIndex {
		inner = c.allocIntroduced(Expr{Kind: EStringLit, StringVal: text}, "string-interpolation-parse-fallback")
	}

	return c.allocIntroduced(Expr{Kind: ECall, Callee: "show", Elems: []ExprIdx{inner}}, "string-interpolation-show")
}

type strSeg struct {
	text   string
	isExpr bool
}

// splitInterpolation scans raw string-literal text for balanced `\(...)`
// segments, returning the alternating literal/expression pieces.
func splitInterpolation(raw string) []strSeg {
	var out []strSeg

	i := 0
	for i < len(raw) {
		j := strings.Index(raw[i:], `\(`)
		if j < 0 {
			out = append(out, strSeg{text: raw[i:]})

			break
		}

		j += i
		if j > i {
			out = append(out, strSeg{text: raw[i:j]})
		}

		depth := 1
		k := j + 2

		for k < len(raw) && depth > 0 {
			switch raw[k] {
			case '(':
				depth++
			case ')':
				depth--
			}

			k++
		}

		out = append(out, strSeg{text: raw[j+2 : k-1], isExpr: true})
		i = k
	}

	if len(out) == 0 {
		out = append(out, strSeg{})
	}

	return out
}
