package symbols

import (
	"path/filepath"

	"github.com/shackle-rs/mzc/internal/ast"
	"github.com/shackle-rs/mzc/internal/diag"
	"github.com/shackle-rs/mzc/internal/parser"
	"github.com/shackle-rs/mzc/internal/source"
)

// AutoIncludes names the files every model implicitly includes before its
// own `include` items are processed (§4.8), regardless of dialect: the
// builtin function/predicate/annotation signatures and the solver-specific
// redefinitions layered over them.
var AutoIncludes = []string{"stdlib.mzn", "solver_redefinitions.mzn"}

// IncludeGraph is the result of resolving one entry set of files' transitive
// `include` items: every file reached, in the breadth-first order it was
// first discovered, plus its parsed ast.File.
type IncludeGraph struct {
	Files []ast.File
	// ByPath maps an included file's resolved absolute path to its index
	// into Files, so a second `include` of the same file is recognized as
	// the file already loaded rather than parsed again.
	ByPath map[string]int
}

// ResolveIncludes loads entry plus AutoIncludes (resolved against
// stdlibDir) and follows every include item transitively, deduplicating by
// resolved path. An include target is searched for first in searchDirs (in
// order), then relative to the including file's own directory, per §4.8.
// Unresolvable includes are reported as diag.SynIncludeError against the
// including file and otherwise skipped — resolution continues for the
// remaining includes so a session sees every broken include at once.
func ResolveIncludes(
	reg *source.Registry, entryPaths []string, stdlibDir string, searchDirs []string, bag *diag.Bag,
) IncludeGraph {
	g := IncludeGraph{ByPath: make(map[string]int, 16)}

	queue := make([]queuedInclude, 0, len(entryPaths)+len(AutoIncludes))

	for _, p := range AutoIncludes {
		queue = append(queue, queuedInclude{path: filepath.Join(stlibOr(stdlibDir), p)})
	}

	for _, p := range entryPaths {
		queue = append(queue, queuedInclude{path: p})
	}

	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		if _, ok := g.ByPath[next.path]; ok {
			continue
		}

		af, ok := loadAndParse(reg, next.path, bag)
		if !ok {
			if next.fromFile != source.NoFileID {
				bag.Push(diag.Errorf(diag.SynIncludeError, next.fromFile, next.fromSpan,
					"cannot resolve include \""+next.rawPath+"\""))
			}

			continue
		}

		g.ByPath[next.path] = len(g.Files)
		g.Files = append(g.Files, af)

		dir := filepath.Dir(next.path)

		for _, item := range af.Items {
			inc, isInclude := item.(ast.IncludeItem)
			if !isInclude {
				continue
			}

			raw := unquote(inc.Path())

			resolved, found := resolveIncludePath(reg, raw, searchDirs, dir)
			if !found {
				bag.Push(diag.Errorf(diag.SynIncludeError, af.Tree.File.ID, inc.Node().Span,
					"cannot resolve include \""+raw+"\""))

				continue
			}

			queue = append(queue, queuedInclude{
				path: resolved, rawPath: raw,
				fromFile: af.Tree.File.ID, fromSpan: inc.Node().Span,
			})
		}
	}

	return g
}

type queuedInclude struct {
	path     string // resolved filesystem path to load
	rawPath  string // the literal include path as written, for diagnostics
	fromFile source.FileID
	fromSpan source.Span
}

// resolveIncludePath tries raw against each search dir in order, then
// against includingDir, returning the first path an os.Stat-backed registry
// load would find. The registry's handler (not this function) does the
// actual existence check, via loadAndParse's error return.
func resolveIncludePath(reg *source.Registry, raw string, searchDirs []string, includingDir string) (string, bool) {
	if filepath.IsAbs(raw) {
		return raw, true
	}

	candidates := make([]string, 0, len(searchDirs)+1)
	for _, d := range searchDirs {
		candidates = append(candidates, filepath.Join(d, raw))
	}

	candidates = append(candidates, filepath.Join(includingDir, raw))

	for _, c := range candidates {
		if fileExists(reg, c) {
			return c, true
		}
	}

	// Nothing stat'd successfully; fall back to the including-directory
	// candidate so the caller's load attempt produces one concrete "reading
	// X: ..." error rather than none.
	if len(candidates) > 0 {
		return candidates[len(candidates)-1], false
	}

	return "", false
}

func fileExists(reg *source.Registry, path string) bool {
	_, err := reg.Load(path)
	return err == nil
}

func loadAndParse(reg *source.Registry, path string, bag *diag.Bag) (ast.File, bool) {
	id, err := reg.Load(path)
	if err != nil {
		return ast.File{}, false
	}

	file := reg.Get(id)

	tree := parser.New(file, bag).Parse()

	return ast.ItemsFromTree(tree), true
}

func unquote(raw string) string {
	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		return raw[1 : len(raw)-1]
	}

	return raw
}

func stlibOr(dir string) string {
	if dir == "" {
		return "."
	}

	return dir
}
