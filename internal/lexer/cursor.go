package lexer

import (
	"fortio.org/safecast"

	"github.com/shackle-rs/mzc/internal/source"
)

// Cursor tracks a byte offset into a file's content.
type Cursor struct {
	File  *source.File
	Off   uint32
	Limit uint32
}

// NewCursor constructs a cursor positioned at the start of f.
func NewCursor(f *source.File) Cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic("lexer: file too large for uint32 offsets")
	}

	return Cursor{File: f, Off: 0, Limit: limit}
}

// EOF reports whether the cursor has consumed the whole file.
func (c *Cursor) EOF() bool { return c.Off >= c.Limit }

// Peek returns the current byte, or 0 at EOF.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}

	return c.File.Content[c.Off]
}

// Peek2 returns the current and following byte.
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.Off+1 >= c.Limit {
		return 0, 0, false
	}

	return c.File.Content[c.Off], c.File.Content[c.Off+1], true
}

// Bump consumes and returns the current byte.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}

	b := c.File.Content[c.Off]
	c.Off++

	return b
}

// Mark is a saved cursor position for computing a span of consumed input.
type Mark uint32

// Mark saves the current position.
func (c *Cursor) Mark() Mark { return Mark(c.Off) }

// SpanFrom builds the span covering [m, current).
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.File.ID, Start: uint32(m), End: c.Off}
}

// Eat consumes the next byte if it equals b.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.File.Content[c.Off] == b {
		c.Off++
		return true
	}

	return false
}
