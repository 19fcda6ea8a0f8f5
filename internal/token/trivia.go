package token

import "github.com/shackle-rs/mzc/internal/source"

// TriviaKind classifies a non-code source element.
type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment  // % ...
	TriviaBlockComment // /* ... */ (E-Prime only, §9.2)
)

// Trivia is whitespace or a comment attached to the following token's
// Leading slice. The CST preserves trivia so formatting/LSP hover can
// recover the original layout (§4.1, §8 LSP surface).
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}
