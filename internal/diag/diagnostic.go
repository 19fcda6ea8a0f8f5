package diag

import "github.com/shackle-rs/mzc/internal/source"

// Related is a secondary span attached to a diagnostic with a short label
// explaining its relevance (e.g. "earlier definition here").
type Related struct {
	Span  source.Span
	Label string
}

// Diagnostic is a single compiler message: a file, a primary span, a
// machine code, a severity, the message text, zero or more related spans,
// and optional help text (§6.5).
type Diagnostic struct {
	Code     Code
	Severity Severity
	File     source.FileID
	Span     source.Span
	Message  string
	Related  []Related
	Help     string
}

// WithRelated returns a copy of d with an additional related span.
func (d Diagnostic) WithRelated(span source.Span, label string) Diagnostic {
	d.Related = append(append([]Related{}, d.Related...), Related{Span: span, Label: label})
	return d
}

// WithHelp returns a copy of d carrying help text.
func (d Diagnostic) WithHelp(help string) Diagnostic {
	d.Help = help
	return d
}

// New constructs a minimal diagnostic.
func New(code Code, sev Severity, file source.FileID, span source.Span, message string) Diagnostic {
	return Diagnostic{Code: code, Severity: sev, File: file, Span: span, Message: message}
}

// Errorf is a convenience constructor for an error-severity diagnostic.
func Errorf(code Code, file source.FileID, span source.Span, message string) Diagnostic {
	return New(code, SevError, file, span, message)
}

// Warnf is a convenience constructor for a warning-severity diagnostic.
func Warnf(code Code, file source.FileID, span source.Span, message string) Diagnostic {
	return New(code, SevWarning, file, span, message)
}
