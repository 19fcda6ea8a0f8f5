// Package parser implements a hand-rolled recursive-descent parser over
// internal/lexer's token stream, building the internal/cst tree the AST
// wraps (§4.5). Neither the original grammar (a tree-sitter grammar, out of
// scope per the spec's Non-goals) nor a pretty-printer is reproduced here;
// this parser exists only to give the CST/AST/HIR pipeline concrete input.
package parser

import (
	"github.com/shackle-rs/mzc/internal/cst"
	"github.com/shackle-rs/mzc/internal/diag"
	"github.com/shackle-rs/mzc/internal/lexer"
	"github.com/shackle-rs/mzc/internal/source"
	"github.com/shackle-rs/mzc/internal/token"
)

// Parser drives tokens from a lexer.Lexer into a cst.Tree.
type Parser struct {
	file   *source.File
	lx     *lexer.Lexer
	tree   *cst.Tree
	bag    *diag.Bag
	cur    token.Token
	eprime bool
}

// New constructs a Parser for file, reporting lexical and syntax
// diagnostics into bag.
func New(file *source.File, bag *diag.Bag) *Parser {
	p := &Parser{
		file:   file,
		bag:    bag,
		tree:   cst.NewTree(file),
		eprime: file.Dialect == source.DialectEPrime,
	}
	p.lx = lexer.New(file, bagReporter{bag, file.ID})
	p.cur = p.lx.Next()

	return p
}

type bagReporter struct {
	bag  *diag.Bag
	file source.FileID
}

func (r bagReporter) Report(code diag.Code, sev diag.Severity, span source.Span, msg string) {
	r.bag.Push(diag.Diagnostic{Code: code, Severity: sev, File: r.file, Span: span, Message: msg})
}

func (p *Parser) advance() token.Token {
	t := p.cur
	p.cur = p.lx.Next()

	return t
}

func (p *Parser) at(k token.Kind) bool { return p.cur.Kind == k }

func (p *Parser) expect(k token.Kind, what string) token.Token {
	if p.cur.Kind == k {
		return p.advance()
	}

	span := p.cur.Span
	p.bag.Push(diag.Diagnostic{
		Code: diag.SynMissingToken, Severity: diag.SevError, File: p.file.ID, Span: span,
		Message: "expected " + what + ", found " + p.cur.Text,
	})
	// Return a zero-width token at the current position rather than
	// consuming the unexpected token, so callers can keep resyncing.
	return token.Token{Kind: token.Invalid, Span: source.Span{File: p.file.ID, Start: span.Start, End: span.Start}}
}

func (p *Parser) errorNode(span source.Span, msg string) *cst.Node {
	p.bag.Push(diag.Diagnostic{Code: diag.SynUnexpectedToken, Severity: diag.SevError, File: p.file.ID, Span: span, Message: msg})

	return p.tree.NewNode(cst.KindError, span)
}

// tokNode wraps a single consumed token as a terminal CST node.
func (p *Parser) tokNode(t token.Token) *cst.Node {
	n := p.tree.NewNode(cst.KindToken, t.Span)
	n.Token = &t

	return n
}

func (p *Parser) node(kind cst.Kind, start source.Span, fields map[string]*cst.Node, extra ...*cst.Node) *cst.Node {
	end := p.cur.Span
	span := start.Cover(end)
	n := p.tree.NewNode(kind, span)
	n.Fields = fields

	for _, f := range fields {
		if f != nil {
			n.Children = append(n.Children, f)
		}
	}

	n.Children = append(n.Children, extra...)

	return n
}

func listNode(p *Parser, kind cst.Kind, items []*cst.Node) *cst.Node {
	start := p.cur.Span
	if len(items) > 0 {
		start = items[0].Span
	}

	end := start
	if len(items) > 0 {
		end = items[len(items)-1].Span
	}

	n := p.tree.NewNode(kind, start.Cover(end))
	n.Children = items

	return n
}

// Parse parses the whole file into a cst.Tree and ast.File-ready items.
// Dialect routing happens once at construction (New); MiniZinc and
// E-Prime share this entry point and differ only in which item parser
// parseItem dispatches to.
func (p *Parser) Parse() *cst.Tree {
	start := p.cur.Span

	var items []*cst.Node

	for !p.at(token.EOF) {
		before := p.cur.Span
		it := p.parseItem()

		if it != nil && it.Kind == cst.Kind("item_group") {
			items = append(items, it.Children...)
		} else if it != nil {
			items = append(items, it)
		}

		if p.cur.Span == before && !p.at(token.EOF) {
			// Guarantee forward progress on a malformed item.
			items = append(items, p.errorNode(p.cur.Span, "unexpected token"))
			p.advance()
		}
	}

	root := p.tree.NewNode(cst.Kind("source_file"), start.Cover(p.cur.Span))
	root.Children = items
	p.tree.Root = root

	return p.tree
}

// ParseExpr parses file's content as a single standalone expression rather
// than a full item sequence. Used by the HIR lowerer to re-parse a string
// literal's `\(expr)` interpolation segments (§4.7) without threading the
// enclosing parser's state through the lexer.
func ParseExpr(file *source.File, bag *diag.Bag) *cst.Node {
	p := New(file, bag)

	return p.parseExpr()
}

func (p *Parser) parseItem() *cst.Node {
	if p.eprime {
		return p.parseEPrimeItem()
	}

	return p.parseMiniZincItem()
}
