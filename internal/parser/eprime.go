package parser

import (
	"github.com/shackle-rs/mzc/internal/cst"
	"github.com/shackle-rs/mzc/internal/source"
	"github.com/shackle-rs/mzc/internal/token"
)

// parseEPrimeItem parses one Essence Prime statement and maps it onto the
// same var_decl/assignment/constraint/type_alias CST vocabulary the
// MiniZinc parser produces (§4.7, §9.2), so internal/ast and the HIR
// lowerer need only one item shape per concern. A statement that declares
// several names (`find x, y : int(1..10)`) or several constraints
// (`such that a, b`) returns an "item_group" node; Parse flattens it.
func (p *Parser) parseEPrimeItem() *cst.Node {
	switch p.cur.Kind {
	case token.KwEPFind:
		return p.parseEPFindOrGiven()
	case token.KwEPGiven:
		return p.parseEPFindOrGiven()
	case token.KwEPLetting:
		return p.parseEPLetting()
	case token.KwEPSuchThat:
		return p.parseEPSuchThat()
	default:
		return p.parseVarDeclOrAssignment()
	}
}

func group(tree *cst.Tree, start, end source.Span, items []*cst.Node) *cst.Node {
	if len(items) == 1 {
		return items[0]
	}

	g := tree.NewNode(cst.Kind("item_group"), start.Cover(end))
	g.Children = items

	return g
}

// parseEPFindOrGiven parses `find n1, n2, ... : domain` and
// `given n1, n2, ... : domain`, both of which become var_decl items with no
// body (a pure declaration, per §9.2's mapping of `find`/`given` onto
// MiniZinc's `var`/`par` declarations).
func (p *Parser) parseEPFindOrGiven() *cst.Node {
	start := p.cur.Span
	kw := p.advance() // find / given

	names := []*cst.Node{p.tokNode(p.expect(token.Ident, "identifier"))}

	for p.at(token.Comma) {
		p.advance()
		names = append(names, p.tokNode(p.expect(token.Ident, "identifier")))
	}

	p.expect(token.Colon, "':'")

	ty := p.parseEPrimeTypeInst()

	if kw.Kind == token.KwEPFind {
		// Record `var` on the innermost element type-inst, where the
		// MiniZinc parser puts it for `array[...] of var T`.
		target := ty
		for target.Kind == cst.Kind("array_type") && target.Field("element") != nil {
			target = target.Field("element")
		}

		varTok := p.tokNode(kw)
		target.Fields["var"] = varTok
		target.Children = append(target.Children, varTok)
	}

	decls := make([]*cst.Node, len(names))
	for i, name := range names {
		decls[i] = p.node(cst.Kind("var_decl"), start, map[string]*cst.Node{
			"type": ty, "name": name, "annotations": listNode(p, cst.Kind("list"), nil),
		})
	}

	return group(p.tree, start, p.cur.Span, decls)
}

// parseEPLetting parses `letting n be expr`, `letting n be domain D`, and
// the new-type forms `letting n new type of domain D` / `... of size k`.
func (p *Parser) parseEPLetting() *cst.Node {
	start := p.cur.Span
	p.advance() // letting
	name := p.tokNode(p.expect(token.Ident, "identifier"))

	if p.at(token.Ident) && p.cur.Text == "be" {
		p.advance()
	}

	switch {
	case p.at(token.KwEPDomain):
		p.advance()

		ty := p.parseEPrimeTypeInst()

		return p.node(cst.Kind("type_alias"), start, map[string]*cst.Node{"name": name, "type": ty})

	case p.at(token.KwEPNew):
		return p.parseEPNewType(start, name)

	default:
		val := p.parseExpr()

		return p.node(cst.Kind("assignment"), start, map[string]*cst.Node{"name": name, "value": val})
	}
}

// parseEPNewType parses the tail of `letting n new type of domain D` or
// `letting n new type of size k`, recorded as a type_alias whose aliased
// type-inst carries either the underlying domain or a bare size expression
// under the "domain" field (§9.2 supplements MiniZinc's enum declarations
// with Essence Prime's unnamed new types).
func (p *Parser) parseEPNewType(start source.Span, name *cst.Node) *cst.Node {
	p.advance() // new
	p.expect(token.KwType, "'type'")
	p.expect(token.KwEPOf, "'of'")

	if p.at(token.Ident) && p.cur.Text == "size" {
		p.advance()

		size := p.parseExpr()
		ty := p.node(cst.Kind("type_inst"), start, map[string]*cst.Node{"domain": size})

		return p.node(cst.Kind("type_alias"), start, map[string]*cst.Node{"name": name, "type": ty})
	}

	p.expect(token.KwEPDomain, "'domain'")
	ty := p.parseEPrimeTypeInst()

	return p.node(cst.Kind("type_alias"), start, map[string]*cst.Node{"name": name, "type": ty})
}

// parseEPSuchThat parses `such that e1, e2, ...`, one constraint item per
// comma-separated expression.
func (p *Parser) parseEPSuchThat() *cst.Node {
	start := p.cur.Span
	p.advance() // such

	if p.at(token.KwEPSuchThat) {
		p.advance() // that
	}

	var constraints []*cst.Node

	for {
		e := p.parseExpr()
		constraints = append(constraints, p.node(cst.Kind("constraint"), start, map[string]*cst.Node{
			"expr": e, "annotations": listNode(p, cst.Kind("list"), nil),
		}))

		if !p.at(token.Comma) {
			break
		}

		p.advance()
	}

	return group(p.tree, start, p.cur.Span, constraints)
}

// parseEPrimeTypeInst parses an Essence Prime domain: `int`, `int(1..10)`,
// `int(1,3,5)`, `bool`, `set of D`, or `matrix indexed by [D,...] of D`.
// It builds the same array_type/type_inst node shapes internal/ast/typeinst.go
// already reads, so one TypeInst wrapper serves both dialects.
func (p *Parser) parseEPrimeTypeInst() *cst.Node {
	start := p.cur.Span

	switch {
	case p.at(token.KwEPMatrix):
		return p.parseEPMatrixType(start)

	case p.at(token.KwInt), p.at(token.KwBool):
		tok := p.tokNode(p.advance())

		if !p.at(token.LParen) {
			return p.node(cst.Kind("type_inst"), start, map[string]*cst.Node{"primitive": tok})
		}

		p.advance() // (

		elems := []*cst.Node{p.parseExpr()}
		for p.at(token.Comma) {
			p.advance()
			elems = append(elems, p.parseExpr())
		}

		p.expect(token.RParen, "')'")

		domain := elems[0]
		if len(elems) > 1 {
			domain = p.node(cst.Kind("set_lit"), start, nil, elems...)
		}

		return p.node(cst.Kind("type_inst"), start, map[string]*cst.Node{"primitive": tok, "domain": domain})

	case p.at(token.KwSet):
		p.advance()
		p.expect(token.KwEPOf, "'of'")

		inner := p.parseEPrimeTypeInst()

		return p.node(cst.Kind("type_inst"), start, map[string]*cst.Node{
			"set": p.markerNode(start), "domain": innerAsExpr(p, inner),
		})

	default:
		domain := p.parseExpr()

		return p.node(cst.Kind("type_inst"), start, map[string]*cst.Node{"domain": domain})
	}
}

// innerAsExpr returns a nested type-inst node (e.g. the element of a
// `set of int(1..10)`) unchanged, to be stored under a "domain" field, which
// internal/ast reads back through FromNode for the non-array/tuple/record
// case. Parenthesised type-inst nodes (type_inst/array_type) are left as-is;
// FromNode treats unrecognised kinds as an opaque expression node holding a
// CST subtree, which the HIR lowerer re-threads into a domain the same way.
func innerAsExpr(p *Parser, n *cst.Node) *cst.Node { return n }

// parseEPMatrixType parses `matrix indexed by [D1, D2, ...] of D`.
func (p *Parser) parseEPMatrixType(start source.Span) *cst.Node {
	p.advance() // matrix
	p.expect(token.KwEPIndexed, "'indexed'")
	p.expect(token.KwEPBy, "'by'")
	p.expect(token.LBracket, "'['")

	var index []*cst.Node

	for !p.at(token.RBracket) && !p.at(token.EOF) {
		index = append(index, p.parseEPrimeTypeInst())

		if !p.at(token.Comma) {
			break
		}

		p.advance()
	}

	p.expect(token.RBracket, "']'")
	p.expect(token.KwEPOf, "'of'")

	element := p.parseEPrimeTypeInst()

	return p.node(cst.Kind("array_type"), start, map[string]*cst.Node{
		"index": listNode(p, cst.Kind("list"), index), "element": element,
	})
}
