// Package passes implements component 4.14: the ordered sequence of
// TIR-to-TIR rewrites that turns the typed IR internal/lower produces into
// the fully-monomorphised, fully-erased form a backend consumes. Most
// passes are built on transform.Folder (output-generation included); the
// rest copy the model item by item. Run chains them in the fixed order §4.14 names
// and stops at the first one that reports an error (§3.6, §7: "the
// pipeline aborts at the first transform failure; it does not try to keep
// producing a model past a stage it cannot complete").
package passes

import (
	"fmt"

	"github.com/shackle-rs/mzc/internal/diag"
	"github.com/shackle-rs/mzc/internal/source"
	"github.com/shackle-rs/mzc/internal/tir"
	"github.com/shackle-rs/mzc/internal/types"
)

// Context is the read-only environment every pass needs beyond the model
// itself: the type interner lowering used (so a pass can intern fresh
// types, e.g. record erasure's tuple-of-fields), the file a diagnostic
// should be attributed to, and the bag passes not expected to fail outright
// append warnings/advice to.
type Context struct {
	Interner *types.Interner
	File     source.FileID
	Bag      *diag.Bag
}

// Stage names one ordered step of the pipeline for progress reporting and
// error attribution.
type Stage struct {
	Name string
	Run  func(ctx *Context, m *tir.Model) (*tir.Model, error)
}

// Stages is the fixed §4.14 pass order. function-dispatch adds a dispatch
// function for each par/var overload pair before name-mangle gives every
// same-named function a distinct display name; the three erasure
// passes run after type-specialise so they only ever see monomorphic
// types; inline-functions runs last among the rewriting passes so it
// inlines already-erased, already-mangled bodies; decapture runs last of
// all since it only needs to see which functions still exist.
var Stages = []Stage{
	{"output-generation", OutputGeneration},
	{"domain-constraint", DomainConstraint},
	{"top-down-type", TopDownType},
	{"type-specialise", TypeSpecialise},
	{"function-dispatch", FunctionDispatch},
	{"name-mangle", NameMangle},
	{"erase-record", EraseRecord},
	{"erase-enum", EraseEnum},
	{"desugar-comprehension", DesugarComprehension},
	{"erase-opt", EraseOpt},
	{"inline-functions", InlineFunctions},
	{"decapture", Decapture},
}

// StageError wraps the failure of a single named stage so a caller (the
// mzc driver's panic/error boundary) can report which pass in the pipeline
// aborted it.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("pass %q: %v", e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

// Run executes every stage of Stages in order over m, feeding each stage's
// output model into the next. It stops and returns the error at the first
// stage that fails.
func Run(ctx *Context, m *tir.Model) (*tir.Model, error) {
	cur := m

	for _, stage := range Stages {
		next, err := stage.Run(ctx, cur)
		if err != nil {
			return nil, &StageError{Stage: stage.Name, Err: err}
		}

		cur = next
	}

	return cur, nil
}
