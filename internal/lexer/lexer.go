// Package lexer turns MiniZinc/E-Prime source bytes into a stream of
// token.Token, routing keyword lookup by the file's dialect (§4.1, §9.2).
package lexer

import (
	"github.com/shackle-rs/mzc/internal/diag"
	"github.com/shackle-rs/mzc/internal/source"
	"github.com/shackle-rs/mzc/internal/token"
)

// Reporter receives lexical diagnostics.
type Reporter interface {
	Report(code diag.Code, sev diag.Severity, span source.Span, msg string)
}

// Lexer is a one-token-lookahead scanner over a single file.
type Lexer struct {
	file     *source.File
	cursor   Cursor
	eprime   bool
	reporter Reporter
	look     *token.Token
	hold     []token.Trivia
}

// New constructs a Lexer for file, routing keyword recognition by its
// dialect (E-Prime vs MiniZinc).
func New(file *source.File, reporter Reporter) *Lexer {
	return &Lexer{
		file:     file,
		cursor:   NewCursor(file),
		eprime:   file.Dialect == source.DialectEPrime,
		reporter: reporter,
	}
}

// Next returns the next significant token, with leading trivia attached.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil

		return tok
	}

	lx.collectTrivia()

	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan(), Leading: lx.takeHold()}
	}

	ch := lx.cursor.Peek()

	var tok token.Token

	switch {
	case isIdentStart(ch):
		tok = lx.scanIdent()
	case isDigit(ch):
		tok = lx.scanNumber()
	case ch == '.' && lx.numberAfterDot():
		tok = lx.scanNumber()
	case ch == '"':
		tok = lx.scanString()
	default:
		tok = lx.scanOperator()
	}

	tok.Leading = lx.takeHold()

	return tok
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t

	return t
}

func (lx *Lexer) takeHold() []token.Trivia {
	h := lx.hold
	lx.hold = nil

	return h
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) report(code diag.Code, span source.Span, msg string) {
	if lx.reporter != nil {
		lx.reporter.Report(code, diag.SevError, span, msg)
	}
}

// collectTrivia consumes whitespace and `%`-comments, accumulating them into
// lx.hold so the next real token carries them as Leading (§4.1 trivia
// preservation for the LSP surface).
func (lx *Lexer) collectTrivia() {
	for {
		switch lx.cursor.Peek() {
		case ' ', '\t', '\r':
			m := lx.cursor.Mark()
			for lx.cursor.Peek() == ' ' || lx.cursor.Peek() == '\t' || lx.cursor.Peek() == '\r' {
				lx.cursor.Bump()
			}
			lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaSpace, Span: lx.cursor.SpanFrom(m)})
		case '\n':
			m := lx.cursor.Mark()
			lx.cursor.Bump()
			lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaNewline, Span: lx.cursor.SpanFrom(m)})
		case '%':
			m := lx.cursor.Mark()
			for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
			sp := lx.cursor.SpanFrom(m)
			lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaLineComment, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])})
		case '/':
			if lx.eprime {
				if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '/' && b1 == '/' {
					m := lx.cursor.Mark()
					for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
						lx.cursor.Bump()
					}
					sp := lx.cursor.SpanFrom(m)
					lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaLineComment, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])})

					continue
				}
			}

			return
		default:
			return
		}
	}
}
