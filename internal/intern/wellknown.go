package intern

import "github.com/shackle-rs/mzc/internal/source"

// Wellknown interns the fixed, small set of identifiers the compiler treats
// specially — operator symbols and the annotation names inspected by TIR
// passes (§9.1: "avoid an ad-hoc string-lookup at each use site"). It is
// constructed once per compiler database and then only ever read.
type Wellknown struct {
	// Operators, by surface symbol.
	Add, Sub, Mul, Div, IntDiv, Mod, Pow             source.StringID
	Eq, Ne, Lt, Le, Gt, Ge                           source.StringID
	And, Or, Xor, Imply, RevImply, Iff, Not          source.StringID
	Concat, PlusPlus, DotDot, Negate                 source.StringID
	In, Subset, Superset, Union, Intersect, Diff     source.StringID
	// Annotation names inspected by TIR passes.
	Output, NoOutput, MznInline, MznInlineCallByName, OutputOnly source.StringID
	// Builtin function names referenced by desugaring.
	Show, Concatenate, IsFixed, Fix, Deopt, Occurs, Default source.StringID
}

// NewWellknown interns every well-known identifier against strings and
// returns the populated registry.
func NewWellknown(strings *source.Interner) *Wellknown {
	w := &Wellknown{}

	w.Add = strings.Intern("+")
	w.Sub = strings.Intern("-")
	w.Mul = strings.Intern("*")
	w.Div = strings.Intern("/")
	w.IntDiv = strings.Intern("div")
	w.Mod = strings.Intern("mod")
	w.Pow = strings.Intern("^")
	w.Eq = strings.Intern("=")
	w.Ne = strings.Intern("!=")
	w.Lt = strings.Intern("<")
	w.Le = strings.Intern("<=")
	w.Gt = strings.Intern(">")
	w.Ge = strings.Intern(">=")
	w.And = strings.Intern("/\\")
	w.Or = strings.Intern("\\/")
	w.Xor = strings.Intern("xor")
	w.Imply = strings.Intern("->")
	w.RevImply = strings.Intern("<-")
	w.Iff = strings.Intern("<->")
	w.Not = strings.Intern("not")
	w.Concat = strings.Intern("++")
	w.PlusPlus = w.Concat
	w.DotDot = strings.Intern("..")
	w.Negate = strings.Intern("negate")
	w.In = strings.Intern("in")
	w.Subset = strings.Intern("subset")
	w.Superset = strings.Intern("superset")
	w.Union = strings.Intern("union")
	w.Intersect = strings.Intern("intersect")
	w.Diff = strings.Intern("diff")

	w.Output = strings.Intern("output")
	w.NoOutput = strings.Intern("no_output")
	w.MznInline = strings.Intern("mzn_inline")
	w.MznInlineCallByName = strings.Intern("mzn_inline_call_by_name")
	w.OutputOnly = strings.Intern("output_only")

	w.Show = strings.Intern("show")
	w.Concatenate = strings.Intern("concat")
	w.IsFixed = strings.Intern("is_fixed")
	w.Fix = strings.Intern("fix")
	w.Deopt = strings.Intern("deopt")
	w.Occurs = strings.Intern("occurs")
	w.Default = strings.Intern("default")

	return w
}

// AnnotationNames lists the fixed set of annotation names a pass may inspect
// (§9.1: "any future annotations must go through the well-known identifier
// registry").
func (w *Wellknown) AnnotationNames() []source.StringID {
	return []source.StringID{w.Output, w.NoOutput, w.MznInline, w.MznInlineCallByName, w.OutputOnly}
}
