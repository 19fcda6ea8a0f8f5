package parser

import (
	"github.com/shackle-rs/mzc/internal/cst"
	"github.com/shackle-rs/mzc/internal/source"
	"github.com/shackle-rs/mzc/internal/token"
)

var primitiveTypeKeywords = map[token.Kind]bool{
	token.KwInt: true, token.KwBool: true, token.KwFloat: true,
	token.KwString: true, token.KwAnn: true,
}

// parseTypeInst parses a type-inst expression: `[var|par] [opt] base`,
// where base is a primitive keyword, a domain expression (e.g. `1..10`, an
// enum name), `set of ...`, `array[...] of ...`, `tuple(...)`, `record(...)`,
// or the generic placeholder `any` (§4.9). The var/opt modifiers are
// recorded on whichever base node results, matching the field names
// internal/ast/typeinst.go reads (IsVar/IsOpt).
func (p *Parser) parseTypeInst() *cst.Node {
	start := p.cur.Span

	var varTok, optTok *cst.Node

	switch {
	case p.at(token.KwVar):
		varTok = p.tokNode(p.advance())
	case p.at(token.KwPar):
		p.advance() // par is the default inst; consumed but not recorded
	}

	if p.at(token.KwOpt) {
		optTok = p.tokNode(p.advance())
	}

	base := p.parseTypeInstBase(start)

	if varTok != nil {
		base.Fields["var"] = varTok
		base.Children = append(base.Children, varTok)
	}

	if optTok != nil {
		base.Fields["opt"] = optTok
		base.Children = append(base.Children, optTok)
	}

	return base
}

func (p *Parser) parseTypeInstBase(start source.Span) *cst.Node {
	switch {
	case p.at(token.KwAny):
		tok := p.tokNode(p.advance())

		return p.node(cst.Kind("any_type"), start, map[string]*cst.Node{"keyword": tok})

	case p.at(token.KwSet):
		p.advance()
		p.expect(token.KwOf, "'of'")

		return p.parseTypeInstDomain(start, true)

	case p.at(token.KwArray):
		return p.parseArrayType(start)

	case p.at(token.KwTuple):
		return p.parseTupleType(start)

	case p.at(token.KwRecord):
		return p.parseRecordType(start)

	case primitiveTypeKeywords[p.cur.Kind]:
		tok := p.tokNode(p.advance())

		return p.node(cst.Kind("type_inst"), start, map[string]*cst.Node{"primitive": tok})

	default:
		// Domain expression: a range (1..10), a set literal, an enum
		// name, or any other expression usable as a variable's domain.
		return p.parseTypeInstDomain(start, false)
	}
}

// parseTypeInstDomain parses the `of <domain>` tail of a `set of` type, or a
// bare domain expression used directly as a type-inst (e.g. `1..10`).
// <domain> may itself be a primitive keyword (`set of int`).
func (p *Parser) parseTypeInstDomain(start source.Span, isSet bool) *cst.Node {
	fields := map[string]*cst.Node{}

	if isSet {
		fields["set"] = p.markerNode(start)
	}

	if primitiveTypeKeywords[p.cur.Kind] {
		fields["primitive"] = p.tokNode(p.advance())
	} else {
		fields["domain"] = p.parseExpr()
	}

	return p.node(cst.Kind("type_inst"), start, fields)
}

// parseArrayType parses `array[index, ...] of element`.
func (p *Parser) parseArrayType(start source.Span) *cst.Node {
	p.advance() // array
	p.expect(token.LBracket, "'['")

	var index []*cst.Node

	for !p.at(token.RBracket) && !p.at(token.EOF) {
		if primitiveTypeKeywords[p.cur.Kind] {
			primStart := p.cur.Span
			prim := p.tokNode(p.advance())
			index = append(index, p.node(cst.Kind("type_inst"), primStart, map[string]*cst.Node{"primitive": prim}))
		} else {
			index = append(index, p.parseExpr())
		}

		if !p.at(token.Comma) {
			break
		}

		p.advance()
	}

	p.expect(token.RBracket, "']'")
	p.expect(token.KwOf, "'of'")

	element := p.parseTypeInst()

	return p.node(cst.Kind("array_type"), start, map[string]*cst.Node{
		"index":   listNode(p, cst.Kind("list"), index),
		"element": element,
	})
}

// parseTupleType parses `tuple(t1, t2, ...)`.
func (p *Parser) parseTupleType(start source.Span) *cst.Node {
	p.advance() // tuple
	p.expect(token.LParen, "'('")

	var fields []*cst.Node

	for !p.at(token.RParen) && !p.at(token.EOF) {
		fields = append(fields, p.parseTypeInst())

		if !p.at(token.Comma) {
			break
		}

		p.advance()
	}

	p.expect(token.RParen, "')'")

	return p.node(cst.Kind("tuple_type"), start, map[string]*cst.Node{
		"fields": listNode(p, cst.Kind("list"), fields),
	})
}

// parseRecordType parses `record(t1: n1, t2: n2, ...)`.
func (p *Parser) parseRecordType(start source.Span) *cst.Node {
	p.advance() // record
	p.expect(token.LParen, "'('")

	var names, types []*cst.Node

	for !p.at(token.RParen) && !p.at(token.EOF) {
		ty := p.parseTypeInst()
		p.expect(token.Colon, "':'")
		name := p.tokNode(p.expect(token.Ident, "identifier"))

		types = append(types, ty)
		names = append(names, name)

		if !p.at(token.Comma) {
			break
		}

		p.advance()
	}

	p.expect(token.RParen, "')'")

	return p.node(cst.Kind("record_type"), start, map[string]*cst.Node{
		"names": listNode(p, cst.Kind("list"), names),
		"types": listNode(p, cst.Kind("list"), types),
	})
}

// markerNode builds a zero-width token node used purely as a boolean
// presence marker in a Fields map (e.g. "set" on a set-of type).
func (p *Parser) markerNode(span source.Span) *cst.Node {
	n := p.tree.NewNode(cst.KindToken, span)
	n.Token = &token.Token{Kind: token.KwSet, Text: "set", Span: span}

	return n
}
