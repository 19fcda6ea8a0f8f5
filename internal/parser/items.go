package parser

import (
	"github.com/shackle-rs/mzc/internal/ast"
	"github.com/shackle-rs/mzc/internal/cst"
	"github.com/shackle-rs/mzc/internal/source"
	"github.com/shackle-rs/mzc/internal/token"
)

func (p *Parser) parseMiniZincItem() *cst.Node {
	switch p.cur.Kind {
	case token.KwInclude:
		return p.parseInclude()
	case token.KwConstraint:
		return p.parseConstraint()
	case token.KwSolve:
		return p.parseSolve()
	case token.KwOutput:
		return p.parseOutput()
	case token.KwEnum:
		return p.parseEnum()
	case token.KwType:
		return p.parseTypeAlias()
	case token.KwAnnotation:
		return p.parseAnnotationOrFunction(ast.FnAnnotation)
	case token.KwFunction:
		return p.parseAnnotationOrFunction(ast.FnFunction)
	case token.KwPredicate:
		return p.parseAnnotationOrFunction(ast.FnPredicate)
	case token.KwTest:
		return p.parseAnnotationOrFunction(ast.FnTest)
	default:
		return p.parseVarDeclOrAssignment()
	}
}

func (p *Parser) parseInclude() *cst.Node {
	start := p.cur.Span
	p.advance() // include
	path := p.expect(token.StringLit, "string literal")
	p.expect(token.Semicolon, "';'")

	return p.node(cst.Kind("include"), start, map[string]*cst.Node{"path": p.tokNode(path)})
}

func (p *Parser) parseConstraint() *cst.Node {
	start := p.cur.Span
	p.advance() // constraint
	expr := p.parseExpr()
	anns := p.parseTrailingAnnotations()
	p.expect(token.Semicolon, "';'")

	return p.node(cst.Kind("constraint"), start, map[string]*cst.Node{
		"expr": expr, "annotations": listNode(p, cst.Kind("list"), anns),
	})
}

func (p *Parser) parseSolve() *cst.Node {
	start := p.cur.Span
	p.advance() // solve
	anns := p.parseTrailingAnnotations()

	var method *cst.Node

	var objective *cst.Node

	switch p.cur.Kind {
	case token.KwSatisfy:
		method = p.tokNode(p.advance())
	case token.KwMinimize:
		methodSpan := p.cur.Span
		p.advance()
		method = p.methodNode("minimize", methodSpan)
		objective = p.parseExpr()
	case token.KwMaximize:
		methodSpan := p.cur.Span
		p.advance()
		method = p.methodNode("maximize", methodSpan)
		objective = p.parseExpr()
	default:
		method = p.methodNode("satisfy", p.cur.Span)
	}

	p.expect(token.Semicolon, "';'")

	return p.node(cst.Kind("solve"), start, map[string]*cst.Node{
		"method": method, "objective": objective, "annotations": listNode(p, cst.Kind("list"), anns),
	})
}

func (p *Parser) methodNode(text string, span source.Span) *cst.Node {
	n := p.tree.NewNode(cst.KindToken, span)
	n.Token = &token.Token{Kind: token.Ident, Text: text, Span: span}

	return n
}

func (p *Parser) parseOutput() *cst.Node {
	start := p.cur.Span
	p.advance() // output

	var section *cst.Node

	if p.at(token.ColonColon) {
		p.advance()
		section = p.tokNode(p.expect(token.Ident, "section identifier"))
	}

	expr := p.parseExpr()
	p.expect(token.Semicolon, "';'")

	return p.node(cst.Kind("output"), start, map[string]*cst.Node{"expr": expr, "section": section})
}

func (p *Parser) parseEnum() *cst.Node {
	start := p.cur.Span
	p.advance() // enum
	name := p.tokNode(p.expect(token.Ident, "identifier"))

	var ctors []*cst.Node

	if p.at(token.Eq) {
		p.advance()
		p.expect(token.LBrace, "'{'")

		for !p.at(token.RBrace) && !p.at(token.EOF) {
			ctors = append(ctors, p.parseExpr())

			if !p.at(token.Comma) {
				break
			}

			p.advance()
		}

		p.expect(token.RBrace, "'}'")
	}

	p.expect(token.Semicolon, "';'")

	return p.node(cst.Kind("enum"), start, map[string]*cst.Node{
		"name": name, "constructors": listNode(p, cst.Kind("list"), ctors),
	})
}

func (p *Parser) parseTypeAlias() *cst.Node {
	start := p.cur.Span
	p.advance() // type
	name := p.tokNode(p.expect(token.Ident, "identifier"))
	p.expect(token.Eq, "'='")
	ty := p.parseTypeInst()
	p.expect(token.Semicolon, "';'")

	return p.node(cst.Kind("type_alias"), start, map[string]*cst.Node{"name": name, "type": ty})
}

func (p *Parser) parseAnnotationOrFunction(fnKind ast.FunctionKind) *cst.Node {
	startSpan := p.cur.Span
	p.advance() // function/predicate/test/annotation

	var ret *cst.Node
	if fnKind == ast.FnFunction {
		ret = p.parseTypeInst()
		p.expect(token.Colon, "':'")
	}

	name := p.tokNode(p.expect(token.Ident, "identifier"))

	var params []*cst.Node

	if p.at(token.LParen) {
		p.advance()

		for !p.at(token.RParen) && !p.at(token.EOF) {
			params = append(params, p.parseParam())

			if !p.at(token.Comma) {
				break
			}

			p.advance()
		}

		p.expect(token.RParen, "')'")
	}

	anns := p.parseTrailingAnnotations()

	var body *cst.Node

	if p.at(token.Eq) {
		p.advance()
		body = p.parseExpr()
	}

	p.expect(token.Semicolon, "';'")

	fk := p.tree.NewNode(cst.KindToken, startSpan)
	fk.Token = &token.Token{Kind: token.Ident, Text: string(fnKind), Span: startSpan}

	return p.node(cst.Kind("function"), startSpan, map[string]*cst.Node{
		"fnkind": fk, "name": name, "ret": ret, "body": body,
		"annotations": listNode(p, cst.Kind("list"), anns),
		"params":      listNode(p, cst.Kind("params"), params),
	})
}

func (p *Parser) parseParam() *cst.Node {
	start := p.cur.Span
	ty := p.parseTypeInst()
	p.expect(token.Colon, "':'")
	name := p.tokNode(p.expect(token.Ident, "identifier"))

	return p.node(cst.Kind("param"), start, map[string]*cst.Node{"type": ty, "name": name})
}

// parseVarDeclOrAssignment handles the two remaining item forms:
// `type: name [= expr];` and `name = expr;`.
func (p *Parser) parseVarDeclOrAssignment() *cst.Node {
	start := p.cur.Span

	if p.at(token.Ident) && p.peekAssignment() {
		name := p.tokNode(p.advance())
		p.expect(token.Eq, "'='")
		val := p.parseExpr()
		p.expect(token.Semicolon, "';'")

		return p.node(cst.Kind("assignment"), start, map[string]*cst.Node{"name": name, "value": val})
	}

	ty := p.parseTypeInst()
	p.expect(token.Colon, "':'")
	name := p.tokNode(p.expect(token.Ident, "identifier"))
	anns := p.parseTrailingAnnotations()

	var body *cst.Node

	if p.at(token.Eq) {
		p.advance()
		body = p.parseExpr()
	}

	p.expect(token.Semicolon, "';'")

	return p.node(cst.Kind("var_decl"), start, map[string]*cst.Node{
		"type": ty, "name": name, "body": body, "annotations": listNode(p, cst.Kind("list"), anns),
	})
}

// peekAssignment reports whether the current identifier is immediately
// followed by `=`, i.e. this is a bare `name = expr;` assignment rather
// than a `Type: name` declaration.
func (p *Parser) peekAssignment() bool {
	next := p.lx.Peek()

	return next.Kind == token.Eq
}

func (p *Parser) parseTrailingAnnotations() []*cst.Node {
	var anns []*cst.Node

	for p.at(token.ColonColon) {
		p.advance()
		anns = append(anns, p.parseAnnotationExpr())
	}

	return anns
}

// parseAnnotationExpr parses one `:: name(args)` annotation as a plain
// Call/Ident expression.
func (p *Parser) parseAnnotationExpr() *cst.Node {
	return p.parseUnary()
}
