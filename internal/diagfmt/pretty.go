// Package diagfmt renders a diag.Bag for humans (terminal) or machines
// (JSON), matching the teacher's internal/diagfmt package.
package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/shackle-rs/mzc/internal/diag"
	"github.com/shackle-rs/mzc/internal/source"
)

// Options controls Pretty's rendering.
type Options struct {
	Color   bool
	TabSize int
}

// Pretty writes a human-readable rendering of bag against reg to w. Each
// diagnostic prints as `path:line:col: severity code: message`, followed by
// the offending source line with a `^~~~` underline, then any related spans.
func Pretty(w io.Writer, bag *diag.Bag, reg *source.Registry, opts Options) {
	if opts.TabSize <= 0 {
		opts.TabSize = 4
	}

	errorColor := color.New(color.FgRed, color.Bold)
	warnColor := color.New(color.FgYellow, color.Bold)
	adviceColor := color.New(color.FgCyan, color.Bold)
	pathColor := color.New(color.FgWhite, color.Bold)
	codeColor := color.New(color.FgMagenta)
	underlineColor := color.New(color.FgRed, color.Bold)

	prevNoColor := color.NoColor
	defer func() { color.NoColor = prevNoColor }()
	color.NoColor = !opts.Color

	for _, d := range bag.Iter() {
		f := reg.Get(d.File)
		lc, line := f.Snippet(d.Span)

		sevColor := adviceColor
		switch d.Severity {
		case diag.SevError:
			sevColor = errorColor
		case diag.SevWarning:
			sevColor = warnColor
		}

		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			pathColor.Sprint(f.Path), lc.Line, lc.Col,
			sevColor.Sprint(d.Severity.String()),
			codeColor.Sprintf("E%d", d.Code), d.Message)

		if line != "" {
			fmt.Fprintf(w, "  %s\n", line)
			indent := visualWidth(line, lc.Col, opts.TabSize)
			underlineLen := int(d.Span.Len())
			if underlineLen < 1 {
				underlineLen = 1
			}
			fmt.Fprintf(w, "  %s%s\n", spaces(indent), underlineColor.Sprint("^"+repeat('~', underlineLen-1)))
		}

		for _, rel := range d.Related {
			relLC, _ := f.Snippet(rel.Span)
			fmt.Fprintf(w, "  note: %s (%d:%d)\n", rel.Label, relLC.Line, relLC.Col)
		}

		if d.Help != "" {
			fmt.Fprintf(w, "  help: %s\n", d.Help)
		}
	}
}

// JSON writes bag as a machine-readable JSON array, for editor/CI
// consumption (§6.3 `check` diagnostics-only mode).
func JSON(w io.Writer, bag *diag.Bag, reg *source.Registry) error {
	type jsonRelated struct {
		Line, Col int
		Label     string
	}

	type jsonDiag struct {
		File     string
		Line     int
		Col      int
		Severity string
		Code     uint16
		Message  string
		Related  []jsonRelated `json:"related,omitempty"`
		Help     string        `json:"help,omitempty"`
	}

	out := make([]jsonDiag, 0, bag.Len())

	for _, d := range bag.Iter() {
		f := reg.Get(d.File)
		lc, _ := f.Snippet(d.Span)

		jd := jsonDiag{
			File:     f.Path,
			Line:     int(lc.Line),
			Col:      int(lc.Col),
			Severity: d.Severity.String(),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Help:     d.Help,
		}

		for _, rel := range d.Related {
			relLC, _ := f.Snippet(rel.Span)
			jd.Related = append(jd.Related, jsonRelated{Line: int(relLC.Line), Col: int(relLC.Col), Label: rel.Label})
		}

		out = append(out, jd)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(out)
}

func visualWidth(line string, uptoCol uint32, tabSize int) int {
	width := 0
	col := uint32(1)

	for _, r := range line {
		if col >= uptoCol {
			break
		}

		if r == '\t' {
			width = (width + tabSize) / tabSize * tabSize
		} else {
			width += runewidth.RuneWidth(r)
		}

		col++
	}

	return width
}

func spaces(n int) string { return repeat(' ', n) }

func repeat(r rune, n int) string {
	out := make([]rune, n)
	for i := range out {
		out[i] = r
	}

	return string(out)
}
