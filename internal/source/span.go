package source

import "fmt"

// Span is a contiguous range of bytes within one file. Start is inclusive,
// End is exclusive.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

// NoSpan is the empty span used by nothing in particular; most IR nodes
// should carry a real span or an explicit Origin marker instead (see
// hir.Origin / tir.Origin), never a bare NoSpan.
var NoSpan = Span{}

// Empty reports whether the span covers zero bytes.
func (s Span) Empty() bool { return s.Start == s.End }

// Len returns the number of bytes covered by the span.
func (s Span) Len() uint32 { return s.End - s.Start }

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Cover returns the smallest span enclosing both s and other. If the spans
// belong to different files, s is returned unchanged.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}

	if other.Start < s.Start {
		s.Start = other.Start
	}

	if other.End > s.End {
		s.End = other.End
	}

	return s
}
