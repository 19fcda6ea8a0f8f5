package lsp

import (
	"bytes"

	"github.com/shackle-rs/mzc/internal/source"
)

// FormatDocument implements §6.4's "document formatting → new text range +
// replacement text" query. No pretty-printer exists yet for this
// compiler's AST (there's no grounding material for one in the teacher or
// the rest of the pack, which format entire files by re-lexing/re-parsing
// rather than round-tripping an AST), so formatting is scoped to what can
// be done soundly without one: trimming trailing whitespace per line and
// ensuring the file ends with exactly one newline, the same
// normalisation gofmt itself always applies regardless of AST shape.
// ok is false when the file is already normalised (no edit to make).
func FormatDocument(file *source.File) (TextEdit, bool) {
	original := file.Content

	normalized := normalizeWhitespace(original)
	if bytes.Equal(original, normalized) {
		return TextEdit{}, false
	}

	return TextEdit{
		Range:   Range{Start: source.LineCol{Line: 1, Col: 1}, End: file.LineCol(uint32(len(original)))},
		NewText: string(normalized),
	}, true
}

func normalizeWhitespace(content []byte) []byte {
	lines := bytes.Split(content, []byte("\n"))

	for i, line := range lines {
		lines[i] = bytes.TrimRight(line, " \t\r")
	}

	out := bytes.Join(lines, []byte("\n"))
	out = bytes.TrimRight(out, "\n")
	out = append(out, '\n')

	return out
}
