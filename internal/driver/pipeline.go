// Package driver implements the one-shot compilation pipeline: Compile
// wires every earlier component (source, parser, ast, hir, symbols, sema,
// lower, passes) into a single run over a set of input files. Compile
// recomputes every stage on each call, one stage after another: it keeps
// no memoised query results, does no incremental invalidation and offers
// no snapshots. The package also defines a cross-process disk cache
// (dcache.go) that Compile does not use. Grounded on the teacher's
// internal/driver package, which plays the same "drives everything else"
// role for the Surge compiler.
package driver

import (
	"fmt"

	"github.com/shackle-rs/mzc/internal/diag"
	"github.com/shackle-rs/mzc/internal/hir"
	"github.com/shackle-rs/mzc/internal/lower"
	"github.com/shackle-rs/mzc/internal/observ"
	"github.com/shackle-rs/mzc/internal/passes"
	"github.com/shackle-rs/mzc/internal/sema"
	"github.com/shackle-rs/mzc/internal/source"
	"github.com/shackle-rs/mzc/internal/symbols"
	"github.com/shackle-rs/mzc/internal/tir"
	"github.com/shackle-rs/mzc/internal/types"
)

// Options bundles the query engine's durable inputs (§4.3: "Inputs include:
// input-file list, search directories, stdlib directory, ignore-stdlib
// flag, file contents").
type Options struct {
	SearchDirs   []string
	StdlibDir    string
	IgnoreStdlib bool
	Progress     ProgressSink
}

// Result is the terminal value of a full compile: the file registry behind
// every span in Bag, the fully-typed and fully-erased TIR model (nil if the
// TIR pass pipeline aborted), the type interner TIR types
// are named against, and the entry file diagnostics are attributed to.
type Result struct {
	Registry  *source.Registry
	Interner  *types.Interner
	Bag       *diag.Bag
	TIR       *tir.Model
	EntryFile source.FileID
}

// Compile runs the whole pipeline (§2's CST→AST→HIR→TIR chain, §4.14's
// rewrite passes) over paths as one compilation unit, exactly the way
// `mzc compile`/`mzc check` do (§6.3). Lowering and typing never abort
// early (§7 Propagation: "lowering records errors per item and continues;
// typing records errors per item and continues"); the TIR pass pipeline
// does abort at its first error, per the same section, in which case
// Result.TIR is nil and the returned error is a *passes.StageError.
func Compile(paths []string, opts Options, timer *observ.Timer) (*Result, error) {
	reg := source.NewRegistry(source.FSHandler{})
	bag := diag.NewBag()

	stdlibDir := opts.StdlibDir
	if opts.IgnoreStdlib {
		stdlibDir = ""
	}

	var graph symbols.IncludeGraph

	emitStage(opts.Progress, StageResolveIncludes, StatusWorking, nil)

	if err := timerTrack(timer, "resolve-includes", func() error {
		// ResolveIncludes queues the auto-includes with no originating
		// file, so a failed load of stdlib.mzn/solver_redefinitions.mzn
		// under an empty stdlibDir is silently skipped rather than
		// reported — exactly "ignore stdlib" behaviour, with no separate
		// code path needed.
		graph = symbols.ResolveIncludes(reg, paths, stdlibDir, opts.SearchDirs, bag)

		return nil
	}); err != nil {
		emitStage(opts.Progress, StageResolveIncludes, StatusError, err)
		return nil, err
	}

	emitStage(opts.Progress, StageResolveIncludes, StatusDone, nil)

	entry := source.NoFileID
	if len(paths) > 0 {
		if id, ok := reg.Lookup(paths[0]); ok {
			entry = id
		}
	}

	combined := hir.NewModel()

	emitStage(opts.Progress, StageLowerHIR, StatusWorking, nil)

	if err := timerTrack(timer, "lower-hir", func() error {
		for _, af := range graph.Files {
			file := reg.Get(af.Tree.File.ID)

			emitFile(opts.Progress, file.Path, StageLowerHIR, StatusWorking)

			var m *hir.Model
			if file.Dialect == source.DialectEPrime {
				m = hir.LowerEPrime(file, af, bag)
			} else {
				m = hir.LowerMiniZinc(file, af, bag)
			}

			mergeHIR(combined, m)

			emitFile(opts.Progress, file.Path, StageLowerHIR, StatusDone)
		}

		return nil
	}); err != nil {
		emitStage(opts.Progress, StageLowerHIR, StatusError, err)
		return nil, err
	}

	emitStage(opts.Progress, StageLowerHIR, StatusDone, nil)

	table := symbols.BuildGlobalScope(entry, combined, bag)

	emitStage(opts.Progress, StageScope, StatusWorking, nil)

	if err := timerTrack(timer, "scope", func() error {
		symbols.BuildLocalScopes(table, combined)

		return nil
	}); err != nil {
		emitStage(opts.Progress, StageScope, StatusError, err)
		return nil, err
	}

	emitStage(opts.Progress, StageScope, StatusDone, nil)

	in := types.NewInterner()
	checker := sema.NewChecker(entry, combined, table, in, bag)

	emitStage(opts.Progress, StageTypecheck, StatusWorking, nil)

	if err := timerTrack(timer, "typecheck", func() error {
		checker.Run()

		return nil
	}); err != nil {
		emitStage(opts.Progress, StageTypecheck, StatusError, err)
		return nil, err
	}

	emitStage(opts.Progress, StageTypecheck, StatusDone, nil)

	var tirModel *tir.Model

	emitStage(opts.Progress, StageLowerTIR, StatusWorking, nil)

	if err := timerTrack(timer, "lower-tir", func() error {
		tirModel = lower.New(combined, checker, table, in).Run()

		return nil
	}); err != nil {
		emitStage(opts.Progress, StageLowerTIR, StatusError, err)
		return nil, err
	}

	emitStage(opts.Progress, StageLowerTIR, StatusDone, nil)

	res := &Result{Registry: reg, Interner: in, Bag: bag, EntryFile: entry}

	passCtx := &passes.Context{Interner: in, File: entry, Bag: bag}

	emitStage(opts.Progress, StagePasses, StatusWorking, nil)

	err := timerTrack(timer, "passes", func() error {
		out, err := passes.Run(passCtx, tirModel)
		if err != nil {
			return err
		}

		tirModel = out

		return nil
	})
	if err != nil {
		emitStage(opts.Progress, StagePasses, StatusError, err)
		return res, err
	}

	emitStage(opts.Progress, StagePasses, StatusDone, nil)

	res.TIR = tirModel

	return res, nil
}

func timerTrack(timer *observ.Timer, name string, fn func() error) error {
	if timer == nil {
		return fn()
	}

	return timer.Track(name, fn)
}

// mergeHIR folds every item of src into dst. Each hir item owns its own
// Exprs/Types/Patterns arenas (§3.1), so re-adding an item into a different
// Model needs no index remapping — only the item's own position in the
// combined Items/arena changes, which is exactly what AddX already
// computes.
func mergeHIR(dst, src *hir.Model) {
	for _, ref := range src.Items {
		switch ref.Kind {
		case hir.ItemAnnotation:
			dst.AddAnnotation(src.Annotations.Get(ref.Index))
		case hir.ItemAssignment:
			dst.AddAssignment(src.Assignments.Get(ref.Index))
		case hir.ItemConstraint:
			dst.AddConstraint(src.Constraints.Get(ref.Index))
		case hir.ItemDeclaration:
			dst.AddDeclaration(src.Declarations.Get(ref.Index))
		case hir.ItemEnumeration:
			dst.AddEnumeration(src.Enumerations.Get(ref.Index))
		case hir.ItemFunction:
			dst.AddFunction(src.Functions.Get(ref.Index))
		case hir.ItemOutput:
			dst.AddOutput(src.Outputs.Get(ref.Index))
		case hir.ItemSolve:
			dst.AddSolve(src.Solves.Get(ref.Index))
		case hir.ItemTypeAlias:
			dst.AddTypeAlias(src.TypeAliases.Get(ref.Index))
		default:
			panic(fmt.Sprintf("driver: mergeHIR: unknown item kind %v", ref.Kind))
		}
	}
}
