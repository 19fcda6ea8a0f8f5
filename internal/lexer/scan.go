package lexer

import (
	"strings"

	"github.com/shackle-rs/mzc/internal/diag"
	"github.com/shackle-rs/mzc/internal/token"
)

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentCont(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isHex(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func (lx *Lexer) scanIdent() token.Token {
	start := lx.cursor.Mark()

	for isIdentCont(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])

	if k, ok := token.LookupKeyword(text, lx.eprime); ok {
		return token.Token{Kind: k, Span: sp, Text: text}
	}

	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}

// numberAfterDot reports whether the `.` at the cursor begins a leading-dot
// float literal (`.5`) rather than a range operator (`..`).
func (lx *Lexer) numberAfterDot() bool {
	_, b1, ok := lx.cursor.Peek2()

	return ok && isDigit(b1)
}

// scanNumber handles MiniZinc's integer/float grammar: decimal, 0x/0o/0b
// radix integers, and [0-9]+(.[0-9]+)?([eE][+-]?[0-9]+)? floats (§4.1).
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	if lx.cursor.Peek() == '0' {
		lx.cursor.Bump()

		switch lx.cursor.Peek() {
		case 'x', 'X':
			lx.cursor.Bump()
			for isHex(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}

			sp := lx.cursor.SpanFrom(start)

			return token.Token{Kind: token.IntLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		case 'o', 'O':
			lx.cursor.Bump()
			for lx.cursor.Peek() >= '0' && lx.cursor.Peek() <= '7' {
				lx.cursor.Bump()
			}

			sp := lx.cursor.SpanFrom(start)

			return token.Token{Kind: token.IntLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		case 'b', 'B':
			lx.cursor.Bump()
			for lx.cursor.Peek() == '0' || lx.cursor.Peek() == '1' {
				lx.cursor.Bump()
			}

			sp := lx.cursor.SpanFrom(start)

			return token.Token{Kind: token.IntLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}
	}

	for isDigit(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' {
		if b1 == '.' {
			// '..' range operator: not part of the number.
		} else if isDigit(b1) {
			kind = token.FloatLit
			lx.cursor.Bump()

			for isDigit(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
		}
	}

	if lx.cursor.Peek() == 'e' || lx.cursor.Peek() == 'E' {
		kind = token.FloatLit
		lx.cursor.Bump()

		if lx.cursor.Peek() == '+' || lx.cursor.Peek() == '-' {
			lx.cursor.Bump()
		}

		for isDigit(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}

	sp := lx.cursor.SpanFrom(start)

	return token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

// scanString handles double-quoted string literals with backslash escapes
// and `\(expr)` string interpolation markers left as raw text for the
// parser to re-lex (§4.1).
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening quote

	var b strings.Builder

	for {
		if lx.cursor.EOF() {
			sp := lx.cursor.SpanFrom(start)
			lx.report(diag.SynUnterminatedString, sp, "unterminated string literal")

			return token.Token{Kind: token.Invalid, Span: sp, Text: b.String()}
		}

		c := lx.cursor.Bump()
		if c == '"' {
			break
		}

		if c == '\\' && !lx.cursor.EOF() {
			esc := lx.cursor.Bump()
			b.WriteByte('\\')
			b.WriteByte(esc)

			continue
		}

		b.WriteByte(c)
	}

	sp := lx.cursor.SpanFrom(start)

	return token.Token{Kind: token.StringLit, Span: sp, Text: b.String()}
}

type opRule struct {
	text string
	kind token.Kind
}

// multiByteOps is tried longest-first so `<->` is not mis-split into `<-`
// then `>`.
var multiByteOps = []opRule{
	{"<->", token.DoubleArrow},
	{"...", token.DotDot},
	{"~+", token.TildePlus}, {"~-", token.TildeMinus}, {"~*", token.TildeStar},
	{"==", token.EqEq}, {"!=", token.Neq}, {"<=", token.Le}, {">=", token.Ge},
	{"->", token.Arrow}, {"<-", token.LeftArrow}, {"..", token.DotDot},
	{"++", token.PlusPlus}, {"::", token.ColonColon}, {"<>", token.AbsentLit},
	{"/\\", token.AndAnd}, {"\\/", token.OrOr},
}

var singleByteOps = map[byte]token.Kind{
	'+': token.Plus, '-': token.Minus, '*': token.Star, '/': token.Slash,
	'=': token.Eq, '<': token.Lt, '>': token.Gt, '~': token.Tilde,
	'?': token.Question, ':': token.Colon, ',': token.Comma, ';': token.Semicolon,
	'(': token.LParen, ')': token.RParen, '[': token.LBracket, ']': token.RBracket,
	'{': token.LBrace, '}': token.RBrace, '|': token.Pipe, '_': token.Underscore,
	'^': token.Caret, '\\': token.Backslash,
}

func (lx *Lexer) scanOperator() token.Token {
	start := lx.cursor.Mark()

	for _, rule := range multiByteOps {
		if lx.matchLiteral(rule.text) {
			sp := lx.cursor.SpanFrom(start)

			return token.Token{Kind: rule.kind, Span: sp, Text: rule.text}
		}
	}

	c := lx.cursor.Bump()
	if k, ok := singleByteOps[c]; ok {
		sp := lx.cursor.SpanFrom(start)

		return token.Token{Kind: k, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}

	sp := lx.cursor.SpanFrom(start)
	lx.report(diag.SynUnexpectedChar, sp, "unexpected character")

	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

func (lx *Lexer) matchLiteral(s string) bool {
	save := lx.cursor.Off

	for i := 0; i < len(s); i++ {
		if lx.cursor.Peek() != s[i] {
			lx.cursor.Off = save

			return false
		}

		lx.cursor.Bump()
	}

	return true
}
